package repositories

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"urbanreport/internal/entities"
	apperrors "urbanreport/pkg/errors"
)

const (
	notificationTable  = "notifications"
	notificationFields = "id, user_id, message, type, is_read, payload, created_at"
)

type NotificationRepositoryInterface interface {
	CreateNotification(ctx context.Context, notification *entities.Notification) (*entities.Notification, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]entities.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
	CountUnread(ctx context.Context, userID uuid.UUID) (uint64, error)
}

type notificationRepository struct{ storage *pgxpool.Pool }

func NewNotificationRepository(storage *pgxpool.Pool) NotificationRepositoryInterface {
	return &notificationRepository{storage: storage}
}

func scanNotification(row pgx.Row) (*entities.Notification, error) {
	var n entities.Notification
	var payload []byte
	err := row.Scan(&n.ID, &n.UserID, &n.Message, &n.Type, &n.IsRead, &payload, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	if len(payload) > 0 {
		var p entities.NotificationPayload
		if err := json.Unmarshal(payload, &p); err == nil {
			n.Payload = &p
		}
	}
	return &n, nil
}

func (r *notificationRepository) CreateNotification(ctx context.Context, notification *entities.Notification) (*entities.Notification, error) {
	var payload []byte
	if notification.Payload != nil {
		var err error
		payload, err = json.Marshal(notification.Payload)
		if err != nil {
			return nil, err
		}
	}

	query := `INSERT INTO ` + notificationTable + ` (id, user_id, message, type, payload)
		VALUES ($1, $2, $3, $4, $5) RETURNING ` + notificationFields

	row := r.storage.QueryRow(ctx, query,
		notification.ID, notification.UserID, notification.Message, notification.Type, payload)
	return scanNotification(row)
}

func (r *notificationRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]entities.Notification, error) {
	query := `SELECT ` + notificationFields + ` FROM ` + notificationTable +
		` WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.storage.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]entities.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, *n)
	}
	return notifications, rows.Err()
}

// MarkRead is idempotent; marking an already read notification succeeds.
func (r *notificationRepository) MarkRead(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE `+notificationTable+` SET is_read = true WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (uint64, error) {
	var count uint64
	err := r.storage.QueryRow(ctx,
		`SELECT COUNT(*) FROM `+notificationTable+` WHERE user_id = $1 AND is_read = false`, userID).Scan(&count)
	return count, err
}
