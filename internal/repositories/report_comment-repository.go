package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"urbanreport/internal/entities"
)

const (
	reportCommentTable  = "report_comments"
	reportCommentFields = "id, report_id, user_id, user_name, comment, is_public, is_internal, created_at"
)

type ReportCommentRepositoryInterface interface {
	CreateComment(ctx context.Context, comment *entities.ReportComment) (*entities.ReportComment, error)
	GetByReportID(ctx context.Context, reportID uuid.UUID, publicOnly bool) ([]entities.ReportComment, error)
}

type reportCommentRepository struct{ storage *pgxpool.Pool }

func NewReportCommentRepository(storage *pgxpool.Pool) ReportCommentRepositoryInterface {
	return &reportCommentRepository{storage: storage}
}

func (r *reportCommentRepository) CreateComment(ctx context.Context, comment *entities.ReportComment) (*entities.ReportComment, error) {
	query := `INSERT INTO ` + reportCommentTable + ` (id, report_id, user_id, user_name, comment, is_public, is_internal)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING ` + reportCommentFields

	var c entities.ReportComment
	err := r.storage.QueryRow(ctx, query,
		comment.ID, comment.ReportID, comment.UserID, comment.UserName, comment.Comment, comment.IsPublic, comment.IsInternal,
	).Scan(&c.ID, &c.ReportID, &c.UserID, &c.UserName, &c.Comment, &c.IsPublic, &c.IsInternal, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *reportCommentRepository) GetByReportID(ctx context.Context, reportID uuid.UUID, publicOnly bool) ([]entities.ReportComment, error) {
	query := `SELECT ` + reportCommentFields + ` FROM ` + reportCommentTable + ` WHERE report_id = $1`
	if publicOnly {
		query += ` AND is_public = true`
	}
	query += ` ORDER BY created_at ASC`

	rows, err := r.storage.Query(ctx, query, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]entities.ReportComment, 0)
	for rows.Next() {
		var c entities.ReportComment
		if err := rows.Scan(&c.ID, &c.ReportID, &c.UserID, &c.UserName, &c.Comment, &c.IsPublic, &c.IsInternal, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
