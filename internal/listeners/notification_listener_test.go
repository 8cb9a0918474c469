package listeners

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"urbanreport/internal/dto"
	"urbanreport/internal/entities"
	"urbanreport/internal/events"
	"urbanreport/pkg/constants"
)

type fakeNotificationService struct {
	created []*entities.Notification
}

func (f *fakeNotificationService) CreateNotification(ctx context.Context, userID uuid.UUID, message, notificationType string, payload *entities.NotificationPayload) (*entities.Notification, error) {
	n := &entities.Notification{
		ID:      uuid.New(),
		UserID:  userID,
		Message: message,
		Type:    notificationType,
		Payload: payload,
	}
	f.created = append(f.created, n)
	return n, nil
}

func (f *fakeNotificationService) GetMyNotifications(ctx context.Context) ([]dto.NotificationDTO, error) {
	return nil, nil
}

func (f *fakeNotificationService) MarkRead(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeNotificationService) CountUnread(ctx context.Context) (uint64, error) { return 0, nil }

type fakePusher struct {
	sent []uuid.UUID
}

func (f *fakePusher) SendNotification(userID uuid.UUID, payload interface{}, messageType string) error {
	f.sent = append(f.sent, userID)
	return nil
}

func newListenerFixture() (*NotificationListener, *fakeNotificationService, *fakePusher) {
	notifications := &fakeNotificationService{}
	pusher := &fakePusher{}
	return NewNotificationListener(notifications, pusher, zap.NewNop()), notifications, pusher
}

func sampleReport() *entities.Report {
	return &entities.Report{
		ID:              uuid.New(),
		TrackingCode:    "RPT-ABCD1234",
		UserID:          uuid.New(),
		LocationAddress: "Calle 10 # 4-21",
	}
}

func TestReportStatusChangedCreatesDurableNotification(t *testing.T) {
	listener, notifications, pusher := newListenerFixture()
	report := sampleReport()

	err := listener.handleReportStatusChanged(context.Background(), events.ReportStatusChangedEvent{
		Report:    report,
		OldStatus: constants.StatusReceived,
		NewStatus: constants.StatusInProgress,
		ActorName: "Empresa de Energía",
	})
	require.NoError(t, err)

	require.Len(t, notifications.created, 1)
	n := notifications.created[0]
	assert.Equal(t, report.UserID, n.UserID)
	assert.Equal(t, "Tu reporte #RPT-ABCD1234 ha cambiado a estado: En Progreso", n.Message)
	assert.Equal(t, constants.NotificationInfo, n.Type)

	require.NotNil(t, n.Payload)
	assert.Equal(t, report.TrackingCode, n.Payload.ReportCode)
	assert.Equal(t, constants.StatusReceived, n.Payload.OldStatus)
	assert.Equal(t, constants.StatusInProgress, n.Payload.NewStatus)
	assert.Equal(t, "Empresa de Energía", n.Payload.EntityName)

	require.Len(t, pusher.sent, 1)
	assert.Equal(t, report.UserID, pusher.sent[0])
}

func TestNotificationTypeFollowsStatus(t *testing.T) {
	cases := []struct {
		status string
		want   string
	}{
		{constants.StatusResolved, constants.NotificationSuccess},
		{constants.StatusRejected, constants.NotificationError},
		{constants.StatusInReview, constants.NotificationInfo},
		{constants.StatusClosed, constants.NotificationInfo},
	}

	for _, tc := range cases {
		listener, notifications, _ := newListenerFixture()
		err := listener.handleReportStatusChanged(context.Background(), events.ReportStatusChangedEvent{
			Report:    sampleReport(),
			OldStatus: constants.StatusReceived,
			NewStatus: tc.status,
		})
		require.NoError(t, err)
		require.Len(t, notifications.created, 1)
		assert.Equal(t, tc.want, notifications.created[0].Type, "estado %s", tc.status)
	}
}

func TestEntityApprovedNotification(t *testing.T) {
	listener, notifications, pusher := newListenerFixture()
	entity := &entities.Entity{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Name:   "Empresa de Acueducto",
	}

	err := listener.handleEntityStatusChanged(context.Background(), events.EntityStatusChangedEvent{
		Entity: entity,
		Action: constants.EntityActionApproved,
	})
	require.NoError(t, err)

	require.Len(t, notifications.created, 1)
	n := notifications.created[0]
	assert.Equal(t, entity.UserID, n.UserID)
	assert.Equal(t, "Tu cuenta de entidad ha sido aprobada. Ya puedes acceder al sistema.", n.Message)
	assert.Equal(t, constants.NotificationSuccess, n.Type)
	assert.Len(t, pusher.sent, 1)
}

func TestEntityRejectedNotificationIncludesReason(t *testing.T) {
	listener, notifications, _ := newListenerFixture()
	entity := &entities.Entity{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Name:   "Empresa de Acueducto",
	}

	err := listener.handleEntityStatusChanged(context.Background(), events.EntityStatusChangedEvent{
		Entity: entity,
		Action: constants.EntityActionRejected,
		Reason: "Documentación incompleta",
	})
	require.NoError(t, err)

	require.Len(t, notifications.created, 1)
	n := notifications.created[0]
	assert.Equal(t, "Tu solicitud de registro ha sido rechazada. Motivo: Documentación incompleta", n.Message)
	assert.Equal(t, constants.NotificationError, n.Type)
}

func TestUnknownEventShapeIgnored(t *testing.T) {
	listener, notifications, pusher := newListenerFixture()

	err := listener.handleReportStatusChanged(context.Background(), events.ReportStatusChangedEvent{})
	require.NoError(t, err)
	assert.Empty(t, notifications.created)
	assert.Empty(t, pusher.sent)
}
