package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"urbanreport/internal/entities"
	apperrors "urbanreport/pkg/errors"
)

const (
	userTable  = "users"
	userFields = "id, full_name, email, phone, password_hash, role, is_active, created_at"
)

type UserRepositoryInterface interface {
	CreateUser(ctx context.Context, user *entities.User) (*entities.User, error)
	FindUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	FindUserByEmail(ctx context.Context, email string) (*entities.User, error)
}

type userRepository struct{ storage *pgxpool.Pool }

func NewUserRepository(storage *pgxpool.Pool) UserRepositoryInterface {
	return &userRepository{storage: storage}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.Phone, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) CreateUser(ctx context.Context, user *entities.User) (*entities.User, error) {
	query := `INSERT INTO ` + userTable + ` (id, full_name, email, phone, password_hash, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING ` + userFields

	row := r.storage.QueryRow(ctx, query,
		user.ID, user.FullName, user.Email, user.Phone, user.PasswordHash, user.Role, user.IsActive)

	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.NewConflictError("Ya existe una cuenta con ese correo electrónico")
		}
		return nil, err
	}
	return created, nil
}

func (r *userRepository) FindUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	query := `SELECT ` + userFields + ` FROM ` + userTable + ` WHERE id = $1`
	return scanUser(r.storage.QueryRow(ctx, query, id))
}

func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := `SELECT ` + userFields + ` FROM ` + userTable + ` WHERE email = $1`
	return scanUser(r.storage.QueryRow(ctx, query, email))
}
