package repositories

import (
	"time"

	"mwork_admission/internal/models"
	"mwork_admission/pkg/apperrors"

	"gorm.io/gorm"
)

type NotificationRepository interface {
	CreateNotification(db *gorm.DB, notification *models.Notification) error
	FindUserNotifications(db *gorm.DB, userID string, unreadOnly bool) ([]models.Notification, error)
	MarkAsRead(db *gorm.DB, userID, notificationID string) error
}

type NotificationRepositoryImpl struct{}

func NewNotificationRepository() NotificationRepository {
	return &NotificationRepositoryImpl{}
}

func (r *NotificationRepositoryImpl) CreateNotification(db *gorm.DB, notification *models.Notification) error {
	return db.Create(notification).Error
}

func (r *NotificationRepositoryImpl) FindUserNotifications(db *gorm.DB, userID string, unreadOnly bool) ([]models.Notification, error) {
	var notifications []models.Notification
	query := db.Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}
	err := query.Order("created_at DESC").Find(&notifications).Error
	return notifications, err
}

// MarkAsRead помечает уведомление прочитанным, только если оно принадлежит userID
func (r *NotificationRepositoryImpl) MarkAsRead(db *gorm.DB, userID, notificationID string) error {
	now := time.Now()
	result := db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": &now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}
