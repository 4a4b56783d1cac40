package services

import (
	"context"

	"mwork_admission/internal/models"
	"mwork_admission/internal/repositories"
	"mwork_admission/internal/services/dto"

	"gorm.io/gorm"
)

type NotificationService interface {
	ListNotifications(ctx context.Context, userID string, unreadOnly bool) (*dto.NotificationListResponse, error)
	MarkAsRead(ctx context.Context, userID, notificationID string) error
}

type notificationService struct {
	db               *gorm.DB
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(db *gorm.DB, notificationRepo repositories.NotificationRepository) NotificationService {
	return &notificationService{db: db, notificationRepo: notificationRepo}
}

func (s *notificationService) ListNotifications(ctx context.Context, userID string, unreadOnly bool) (*dto.NotificationListResponse, error) {
	list, err := s.notificationRepo.FindUserNotifications(s.db.WithContext(ctx), userID, unreadOnly)
	if err != nil {
		return nil, err
	}

	if list == nil {
		list = []models.Notification{}
	}
	resp := &dto.NotificationListResponse{Notifications: list}
	for _, n := range list {
		if !n.IsRead {
			resp.Unread++
		}
	}
	return resp, nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID, notificationID string) error {
	return s.notificationRepo.MarkAsRead(s.db.WithContext(ctx), userID, notificationID)
}
