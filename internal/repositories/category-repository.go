package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"urbanreport/internal/entities"
	apperrors "urbanreport/pkg/errors"
)

const (
	categoryTable  = "categories"
	categoryFields = "id, name, description, icon, color, is_active, created_at"
)

type CategoryRepositoryInterface interface {
	GetActiveCategories(ctx context.Context) ([]entities.Category, error)
	FindCategory(ctx context.Context, id uuid.UUID) (*entities.Category, error)
	CountExisting(ctx context.Context, ids []uuid.UUID) (int, error)
}

type categoryRepository struct{ storage *pgxpool.Pool }

func NewCategoryRepository(storage *pgxpool.Pool) CategoryRepositoryInterface {
	return &categoryRepository{storage: storage}
}

func (r *categoryRepository) GetActiveCategories(ctx context.Context) ([]entities.Category, error) {
	query := `SELECT ` + categoryFields + ` FROM ` + categoryTable + ` WHERE is_active = true ORDER BY name`

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]entities.Category, 0)
	for rows.Next() {
		var c entities.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Icon, &c.Color, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *categoryRepository) FindCategory(ctx context.Context, id uuid.UUID) (*entities.Category, error) {
	query := `SELECT ` + categoryFields + ` FROM ` + categoryTable + ` WHERE id = $1`

	var c entities.Category
	err := r.storage.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Description, &c.Icon, &c.Color, &c.IsActive, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// CountExisting returns how many of the given ids exist as categories. Used
// to validate subscription sets in one round trip.
func (r *categoryRepository) CountExisting(ctx context.Context, ids []uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int
	err := r.storage.QueryRow(ctx,
		`SELECT COUNT(*) FROM `+categoryTable+` WHERE id = ANY($1)`, ids).Scan(&count)
	return count, err
}
