package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"urbanreport/internal/entities"
)

const (
	reportHistoryTable  = "report_history"
	reportHistoryFields = "id, report_id, changed_by, changed_by_name, action, old_value, new_value, comment, created_at"
)

type ReportHistoryRepositoryInterface interface {
	CreateInTx(ctx context.Context, tx pgx.Tx, history *entities.ReportHistory) error
	GetByReportID(ctx context.Context, reportID uuid.UUID) ([]entities.ReportHistory, error)
}

type reportHistoryRepository struct{ storage *pgxpool.Pool }

func NewReportHistoryRepository(storage *pgxpool.Pool) ReportHistoryRepositoryInterface {
	return &reportHistoryRepository{storage: storage}
}

func (r *reportHistoryRepository) CreateInTx(ctx context.Context, tx pgx.Tx, history *entities.ReportHistory) error {
	query := `INSERT INTO ` + reportHistoryTable + `
		(id, report_id, changed_by, changed_by_name, action, old_value, new_value, comment)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := tx.Exec(ctx, query,
		history.ID, history.ReportID, history.ChangedBy, history.ChangedByName,
		history.Action, history.OldValue, history.NewValue, history.Comment)
	return err
}

func (r *reportHistoryRepository) GetByReportID(ctx context.Context, reportID uuid.UUID) ([]entities.ReportHistory, error) {
	query := `SELECT ` + reportHistoryFields + ` FROM ` + reportHistoryTable +
		` WHERE report_id = $1 ORDER BY created_at DESC`

	rows, err := r.storage.Query(ctx, query, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]entities.ReportHistory, 0)
	for rows.Next() {
		var h entities.ReportHistory
		if err := rows.Scan(&h.ID, &h.ReportID, &h.ChangedBy, &h.ChangedByName,
			&h.Action, &h.OldValue, &h.NewValue, &h.Comment, &h.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, h)
	}
	return items, rows.Err()
}
