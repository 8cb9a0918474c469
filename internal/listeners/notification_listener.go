package listeners

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"urbanreport/internal/entities"
	"urbanreport/internal/events"
	"urbanreport/internal/services"
	"urbanreport/pkg/constants"
	"urbanreport/pkg/eventbus"
	"urbanreport/pkg/websocket"
)

// NotificationListener turns domain events into durable notifications and
// realtime pushes. Everything here is best effort; a failure is logged and
// never affects the operation that published the event.
type NotificationListener struct {
	notificationService   services.NotificationServiceInterface
	wsNotificationService services.WebSocketNotificationServiceInterface
	logger                *zap.Logger
}

func NewNotificationListener(
	notificationService services.NotificationServiceInterface,
	wsNotificationService services.WebSocketNotificationServiceInterface,
	logger *zap.Logger,
) *NotificationListener {
	return &NotificationListener{
		notificationService:   notificationService,
		wsNotificationService: wsNotificationService,
		logger:                logger,
	}
}

func (l *NotificationListener) Register(bus *eventbus.Bus) {
	bus.Subscribe("report.status.changed", l.handleReportStatusChanged)
	bus.Subscribe("entity.status.changed", l.handleEntityStatusChanged)
	l.logger.Info("NotificationListener suscrito a los eventos del dominio")
}

func notificationTypeForStatus(status string) string {
	switch status {
	case constants.StatusResolved:
		return constants.NotificationSuccess
	case constants.StatusRejected:
		return constants.NotificationError
	default:
		return constants.NotificationInfo
	}
}

func (l *NotificationListener) handleReportStatusChanged(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.ReportStatusChangedEvent)
	if !ok || e.Report == nil {
		return nil
	}

	report := e.Report
	message := fmt.Sprintf("Tu reporte #%s ha cambiado a estado: %s",
		report.TrackingCode, constants.StatusLabel(e.NewStatus))

	payload := &entities.NotificationPayload{
		ReportID:   &report.ID,
		ReportCode: report.TrackingCode,
		EntityName: e.ActorName,
		OldStatus:  e.OldStatus,
		NewStatus:  e.NewStatus,
		Address:    report.LocationAddress,
	}

	notification, err := l.notificationService.CreateNotification(ctx,
		report.UserID, message, notificationTypeForStatus(e.NewStatus), payload)
	if err != nil {
		return fmt.Errorf("no se pudo guardar la notificación del reporte %s: %w", report.TrackingCode, err)
	}

	l.push(notification)
	return nil
}

func (l *NotificationListener) handleEntityStatusChanged(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.EntityStatusChangedEvent)
	if !ok || e.Entity == nil {
		return nil
	}

	var message, notificationType string
	switch e.Action {
	case constants.EntityActionApproved:
		message = "Tu cuenta de entidad ha sido aprobada. Ya puedes acceder al sistema."
		notificationType = constants.NotificationSuccess
	case constants.EntityActionRejected:
		message = fmt.Sprintf("Tu solicitud de registro ha sido rechazada. Motivo: %s", e.Reason)
		notificationType = constants.NotificationError
	default:
		return nil
	}

	notification, err := l.notificationService.CreateNotification(ctx,
		e.Entity.UserID, message, notificationType, &entities.NotificationPayload{EntityName: e.Entity.Name})
	if err != nil {
		return fmt.Errorf("no se pudo guardar la notificación de la entidad %s: %w", e.Entity.ID, err)
	}

	l.push(notification)
	return nil
}

func (l *NotificationListener) push(n *entities.Notification) {
	payload := websocket.NotificationPayload{
		ID:        n.ID,
		Message:   n.Message,
		Type:      n.Type,
		IsRead:    n.IsRead,
		Payload:   n.Payload,
		CreatedAt: n.CreatedAt,
	}
	if err := l.wsNotificationService.SendNotification(n.UserID, payload, "notification"); err != nil {
		l.logger.Warn("no se pudo enviar la notificación por websocket",
			zap.String("userID", n.UserID.String()),
			zap.Error(err),
		)
	}
}
