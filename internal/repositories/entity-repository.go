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
	entityTable  = "entities"
	entityFields = "id, user_id, name, nit, contact_email, phone, status, rejection_reason, rut_path, chamber_path, categories, created_at, updated_at"
)

type EntityRepositoryInterface interface {
	CreateEntity(ctx context.Context, entity *entities.Entity) (*entities.Entity, error)
	FindEntity(ctx context.Context, id uuid.UUID) (*entities.Entity, error)
	FindEntityByUserID(ctx context.Context, userID uuid.UUID) (*entities.Entity, error)
	GetEntities(ctx context.Context, status string) ([]entities.Entity, error)
	UpdateEntityStatus(ctx context.Context, id uuid.UUID, status string, rejectionReason *string) error
	GetCategories(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error)
	ReplaceCategories(ctx context.Context, id uuid.UUID, categoryIDs []uuid.UUID) error
}

type entityRepository struct{ storage *pgxpool.Pool }

func NewEntityRepository(storage *pgxpool.Pool) EntityRepositoryInterface {
	return &entityRepository{storage: storage}
}

func scanEntity(row pgx.Row) (*entities.Entity, error) {
	var e entities.Entity
	err := row.Scan(&e.ID, &e.UserID, &e.Name, &e.NIT, &e.ContactEmail, &e.Phone,
		&e.Status, &e.RejectionReason, &e.RutPath, &e.ChamberPath, &e.Categories,
		&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	if e.Categories == nil {
		e.Categories = []uuid.UUID{}
	}
	return &e, nil
}

func (r *entityRepository) CreateEntity(ctx context.Context, entity *entities.Entity) (*entities.Entity, error) {
	query := `INSERT INTO ` + entityTable + ` (id, user_id, name, nit, contact_email, phone, status, rut_path, chamber_path, categories)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING ` + entityFields

	row := r.storage.QueryRow(ctx, query,
		entity.ID, entity.UserID, entity.Name, entity.NIT, entity.ContactEmail, entity.Phone,
		entity.Status, entity.RutPath, entity.ChamberPath, entity.Categories)

	created, err := scanEntity(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.NewConflictError("Ya existe una entidad registrada con ese NIT")
		}
		return nil, err
	}
	return created, nil
}

func (r *entityRepository) FindEntity(ctx context.Context, id uuid.UUID) (*entities.Entity, error) {
	query := `SELECT ` + entityFields + ` FROM ` + entityTable + ` WHERE id = $1`
	return scanEntity(r.storage.QueryRow(ctx, query, id))
}

func (r *entityRepository) FindEntityByUserID(ctx context.Context, userID uuid.UUID) (*entities.Entity, error) {
	query := `SELECT ` + entityFields + ` FROM ` + entityTable + ` WHERE user_id = $1`
	return scanEntity(r.storage.QueryRow(ctx, query, userID))
}

func (r *entityRepository) GetEntities(ctx context.Context, status string) ([]entities.Entity, error) {
	query := `SELECT ` + entityFields + ` FROM ` + entityTable
	var args []interface{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]entities.Entity, 0)
	for rows.Next() {
		e, err := scanEntity(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *e)
	}
	return result, rows.Err()
}

func (r *entityRepository) UpdateEntityStatus(ctx context.Context, id uuid.UUID, status string, rejectionReason *string) error {
	query := `UPDATE ` + entityTable + ` SET status = $2, rejection_reason = $3, updated_at = NOW() WHERE id = $1`
	result, err := r.storage.Exec(ctx, query, id, status, rejectionReason)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *entityRepository) GetCategories(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	var categories []uuid.UUID
	err := r.storage.QueryRow(ctx,
		`SELECT categories FROM `+entityTable+` WHERE id = $1`, id).Scan(&categories)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	if categories == nil {
		categories = []uuid.UUID{}
	}
	return categories, nil
}

func (r *entityRepository) ReplaceCategories(ctx context.Context, id uuid.UUID, categoryIDs []uuid.UUID) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE `+entityTable+` SET categories = $2, updated_at = NOW() WHERE id = $1`, id, categoryIDs)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
