package events

import (
	"context"
	"encoding/json"

	"mwork_admission/internal/admission"
	"mwork_admission/internal/models"
	"mwork_admission/internal/repositories"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NotificationSink сохраняет in-app уведомление заявителю.
type NotificationSink struct {
	db            *gorm.DB
	notifications repositories.NotificationRepository
	castings      repositories.CastingRepository
}

func NewNotificationSink(db *gorm.DB, notifications repositories.NotificationRepository, castings repositories.CastingRepository) *NotificationSink {
	return &NotificationSink{db: db, notifications: notifications, castings: castings}
}

func (s *NotificationSink) Name() string { return "notifications" }

func (s *NotificationSink) Deliver(ctx context.Context, change admission.StatusChange) error {
	// Новая заявка - уведомлять заявителя не о чем
	if change.OldStatus == "" {
		return nil
	}

	db := s.db.WithContext(ctx)
	casting, err := s.castings.FindByID(db, change.CastingID)
	if err != nil {
		return err
	}

	data, err := json.Marshal(map[string]string{
		"casting_id":    change.CastingID,
		"assignment_id": change.AssignmentID,
		"status":        string(change.NewStatus),
	})
	if err != nil {
		return err
	}

	return s.notifications.CreateNotification(db, &models.Notification{
		UserID:  change.UserID,
		Type:    models.NotificationTypeAssignmentStatus,
		Title:   "Статус заявки изменен",
		Message: casting.Title + ": " + StatusLabel(change.NewStatus),
		Data:    datatypes.JSON(data),
	})
}

// StatusLabel - человекочитаемое название статуса
func StatusLabel(status models.AssignmentStatus) string {
	switch status {
	case models.AssignmentStatusPending:
		return "на рассмотрении"
	case models.AssignmentStatusActive:
		return "принята"
	case models.AssignmentStatusRejected:
		return "отклонена"
	case models.AssignmentStatusRemoved:
		return "снята"
	}
	return string(status)
}
