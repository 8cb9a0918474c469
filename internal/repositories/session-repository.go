package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	apperrors "urbanreport/pkg/errors"
)

const sessionKeyPrefix = "session:"

// SessionRepositoryInterface stores the active refresh token per user. A
// refresh is only honored while the presented token matches the stored one;
// logout clears it.
type SessionRepositoryInterface interface {
	SaveRefreshToken(ctx context.Context, userID uuid.UUID, token string, ttl time.Duration) error
	GetRefreshToken(ctx context.Context, userID uuid.UUID) (string, error)
	DeleteRefreshToken(ctx context.Context, userID uuid.UUID) error
}

type sessionRepository struct{ client *redis.Client }

func NewSessionRepository(client *redis.Client) SessionRepositoryInterface {
	return &sessionRepository{client: client}
}

func (r *sessionRepository) SaveRefreshToken(ctx context.Context, userID uuid.UUID, token string, ttl time.Duration) error {
	return r.client.Set(ctx, sessionKeyPrefix+userID.String(), token, ttl).Err()
}

func (r *sessionRepository) GetRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	token, err := r.client.Get(ctx, sessionKeyPrefix+userID.String()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperrors.ErrTokenExpired
		}
		return "", err
	}
	return token, nil
}

func (r *sessionRepository) DeleteRefreshToken(ctx context.Context, userID uuid.UUID) error {
	return r.client.Del(ctx, sessionKeyPrefix+userID.String()).Err()
}
