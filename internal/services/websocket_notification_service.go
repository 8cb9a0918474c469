package services

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"urbanreport/pkg/websocket"
)

type WebSocketNotificationServiceInterface interface {
	SendNotification(userID uuid.UUID, payload interface{}, messageType string) error
}

type webSocketNotificationService struct {
	hub    *websocket.Hub
	logger *zap.Logger
}

func NewWebSocketNotificationService(hub *websocket.Hub, logger *zap.Logger) WebSocketNotificationServiceInterface {
	return &webSocketNotificationService{
		hub:    hub,
		logger: logger,
	}
}

func (s *webSocketNotificationService) SendNotification(userID uuid.UUID, payload interface{}, messageType string) error {
	s.logger.Debug("enviando notificación por websocket",
		zap.String("userID", userID.String()),
		zap.String("type", messageType),
	)
	return s.hub.SendMessageToUser(userID, payload, messageType)
}
