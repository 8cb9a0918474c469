package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"urbanreport/internal/dto"
	"urbanreport/internal/entities"
	"urbanreport/internal/repositories"
	"urbanreport/pkg/utils"
)

type NotificationServiceInterface interface {
	CreateNotification(ctx context.Context, userID uuid.UUID, message, notificationType string, payload *entities.NotificationPayload) (*entities.Notification, error)
	GetMyNotifications(ctx context.Context) ([]dto.NotificationDTO, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	CountUnread(ctx context.Context) (uint64, error)
}

type notificationService struct {
	notificationRepo repositories.NotificationRepositoryInterface
	logger           *zap.Logger
}

func NewNotificationService(notificationRepo repositories.NotificationRepositoryInterface, logger *zap.Logger) NotificationServiceInterface {
	return &notificationService{notificationRepo: notificationRepo, logger: logger}
}

func (s *notificationService) CreateNotification(ctx context.Context, userID uuid.UUID, message, notificationType string, payload *entities.NotificationPayload) (*entities.Notification, error) {
	return s.notificationRepo.CreateNotification(ctx, &entities.Notification{
		ID:      uuid.New(),
		UserID:  userID,
		Message: message,
		Type:    notificationType,
		Payload: payload,
	})
}

func (s *notificationService) GetMyNotifications(ctx context.Context) ([]dto.NotificationDTO, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	notifications, err := s.notificationRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.NotificationDTO, 0, len(notifications))
	for i := range notifications {
		result = append(result, toNotificationDTO(&notifications[i]))
	}
	return result, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id uuid.UUID) error {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return err
	}
	return s.notificationRepo.MarkRead(ctx, id, userID)
}

func (s *notificationService) CountUnread(ctx context.Context) (uint64, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return 0, err
	}
	return s.notificationRepo.CountUnread(ctx, userID)
}
