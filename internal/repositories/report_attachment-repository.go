package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"urbanreport/internal/entities"
)

const (
	reportAttachmentTable  = "report_attachments"
	reportAttachmentFields = "id, report_id, uploaded_by, file_path, file_name, file_type, attachment_type, file_size, created_at"

	reportFileTable  = "report_files"
	reportFileFields = "id, report_id, file_path, created_at"
)

type ReportAttachmentRepositoryInterface interface {
	CreateAttachment(ctx context.Context, attachment *entities.ReportAttachment) error
	GetByReportID(ctx context.Context, reportID uuid.UUID) ([]entities.ReportAttachment, error)
	CreateReportFile(ctx context.Context, file *entities.ReportFile) error
	GetFilesByReportID(ctx context.Context, reportID uuid.UUID) ([]entities.ReportFile, error)
}

type reportAttachmentRepository struct{ storage *pgxpool.Pool }

func NewReportAttachmentRepository(storage *pgxpool.Pool) ReportAttachmentRepositoryInterface {
	return &reportAttachmentRepository{storage: storage}
}

func (r *reportAttachmentRepository) CreateAttachment(ctx context.Context, attachment *entities.ReportAttachment) error {
	query := `INSERT INTO ` + reportAttachmentTable + `
		(id, report_id, uploaded_by, file_path, file_name, file_type, attachment_type, file_size)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.storage.Exec(ctx, query,
		attachment.ID, attachment.ReportID, attachment.UploadedBy, attachment.FilePath,
		attachment.FileName, attachment.FileType, attachment.AttachmentType, attachment.FileSize)
	return err
}

func (r *reportAttachmentRepository) GetByReportID(ctx context.Context, reportID uuid.UUID) ([]entities.ReportAttachment, error) {
	query := `SELECT ` + reportAttachmentFields + ` FROM ` + reportAttachmentTable +
		` WHERE report_id = $1 ORDER BY created_at DESC`

	rows, err := r.storage.Query(ctx, query, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attachments := make([]entities.ReportAttachment, 0)
	for rows.Next() {
		var a entities.ReportAttachment
		if err := rows.Scan(&a.ID, &a.ReportID, &a.UploadedBy, &a.FilePath,
			&a.FileName, &a.FileType, &a.AttachmentType, &a.FileSize, &a.CreatedAt); err != nil {
			return nil, err
		}
		attachments = append(attachments, a)
	}
	return attachments, rows.Err()
}

func (r *reportAttachmentRepository) CreateReportFile(ctx context.Context, file *entities.ReportFile) error {
	query := `INSERT INTO ` + reportFileTable + ` (id, report_id, file_path) VALUES ($1, $2, $3)`
	_, err := r.storage.Exec(ctx, query, file.ID, file.ReportID, file.FilePath)
	return err
}

func (r *reportAttachmentRepository) GetFilesByReportID(ctx context.Context, reportID uuid.UUID) ([]entities.ReportFile, error) {
	query := `SELECT ` + reportFileFields + ` FROM ` + reportFileTable +
		` WHERE report_id = $1 ORDER BY created_at ASC`

	rows, err := r.storage.Query(ctx, query, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	files := make([]entities.ReportFile, 0)
	for rows.Next() {
		var f entities.ReportFile
		if err := rows.Scan(&f.ID, &f.ReportID, &f.FilePath, &f.CreatedAt); err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}
