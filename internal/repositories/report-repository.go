package repositories

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"urbanreport/internal/entities"
	"urbanreport/internal/infrastructure/db"
	"urbanreport/pkg/constants"
	apperrors "urbanreport/pkg/errors"
	"urbanreport/pkg/types"
)

const reportTable = "reports"

var reportColumns = []string{
	"id", "tracking_code", "user_id", "category_id", "title", "description",
	"urgency_level", "status", "location_address", "lat", "lon",
	"citizen_name", "citizen_email", "citizen_phone", "prefer_contact",
	"admin_notes", "resolution_notes", "rejection_reason", "assigned_user_id",
	"citizen_rating", "citizen_comment",
	"created_at", "updated_at", "reviewed_at", "started_at", "resolved_at", "closed_at",
}

// reportFilterMap whitelists the query-string fields a client may filter or
// sort reports by.
var reportFilterMap = map[string]string{
	"status":        "status",
	"category_id":   "category_id",
	"urgency_level": "urgency_level",
	"created_at":    "created_at",
	"updated_at":    "updated_at",
}

// ReportScope narrows a listing to what the caller is allowed to see.
// Citizens see their own reports; entities see the categories they are
// subscribed to. CategoriesEnforced with an empty set yields zero rows.
type ReportScope struct {
	UserID             *uuid.UUID
	CategoryIDs        []uuid.UUID
	CategoriesEnforced bool
}

type ReportRepositoryInterface interface {
	BeginTx(ctx context.Context) (pgx.Tx, error)
	CreateReportInTx(ctx context.Context, tx pgx.Tx, report *entities.Report) (*entities.Report, error)
	FindReport(ctx context.Context, id uuid.UUID) (*entities.Report, error)
	FindReportByTrackingCode(ctx context.Context, code string) (*entities.Report, error)
	GetReports(ctx context.Context, filter types.Filter, scope ReportScope) ([]entities.Report, uint64, error)
	UpdateReportInTx(ctx context.Context, tx pgx.Tx, report *entities.Report) error
	RateReport(ctx context.Context, id uuid.UUID, rating int, comment string) (int64, error)
	GetStats(ctx context.Context) (map[string]uint64, uint64, float64, error)
}

type reportRepository struct{ storage *pgxpool.Pool }

func NewReportRepository(storage *pgxpool.Pool) ReportRepositoryInterface {
	return &reportRepository{storage: storage}
}

func (r *reportRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return r.storage.Begin(ctx)
}

func scanReport(row pgx.Row) (*entities.Report, error) {
	var rep entities.Report
	err := row.Scan(
		&rep.ID, &rep.TrackingCode, &rep.UserID, &rep.CategoryID, &rep.Title, &rep.Description,
		&rep.UrgencyLevel, &rep.Status, &rep.LocationAddress, &rep.Lat, &rep.Lon,
		&rep.CitizenName, &rep.CitizenEmail, &rep.CitizenPhone, &rep.PreferContact,
		&rep.AdminNotes, &rep.ResolutionNotes, &rep.RejectionReason, &rep.AssignedUserID,
		&rep.CitizenRating, &rep.CitizenComment,
		&rep.CreatedAt, &rep.UpdatedAt, &rep.ReviewedAt, &rep.StartedAt, &rep.ResolvedAt, &rep.ClosedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &rep, nil
}

func reportFieldsSQL() string {
	fields := ""
	for i, c := range reportColumns {
		if i > 0 {
			fields += ", "
		}
		fields += c
	}
	return fields
}

func (r *reportRepository) CreateReportInTx(ctx context.Context, tx pgx.Tx, report *entities.Report) (*entities.Report, error) {
	query := `INSERT INTO ` + reportTable + `
		(id, tracking_code, user_id, category_id, title, description, urgency_level, status,
		 location_address, lat, lon, citizen_name, citizen_email, citizen_phone, prefer_contact)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING ` + reportFieldsSQL()

	row := tx.QueryRow(ctx, query,
		report.ID, report.TrackingCode, report.UserID, report.CategoryID, report.Title, report.Description,
		report.UrgencyLevel, report.Status, report.LocationAddress, report.Lat, report.Lon,
		report.CitizenName, report.CitizenEmail, report.CitizenPhone, report.PreferContact)

	return scanReport(row)
}

func (r *reportRepository) FindReport(ctx context.Context, id uuid.UUID) (*entities.Report, error) {
	query := `SELECT ` + reportFieldsSQL() + ` FROM ` + reportTable + ` WHERE id = $1`
	return scanReport(r.storage.QueryRow(ctx, query, id))
}

func (r *reportRepository) FindReportByTrackingCode(ctx context.Context, code string) (*entities.Report, error) {
	query := `SELECT ` + reportFieldsSQL() + ` FROM ` + reportTable + ` WHERE tracking_code = $1`
	return scanReport(r.storage.QueryRow(ctx, query, code))
}

func (r *reportRepository) GetReports(ctx context.Context, filter types.Filter, scope ReportScope) ([]entities.Report, uint64, error) {
	// An entity with no subscriptions sees nothing.
	if scope.CategoriesEnforced && len(scope.CategoryIDs) == 0 {
		return []entities.Report{}, 0, nil
	}

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applyScope := func(b sq.SelectBuilder) sq.SelectBuilder {
		if scope.UserID != nil {
			b = b.Where(sq.Eq{"user_id": *scope.UserID})
		}
		if scope.CategoriesEnforced {
			b = b.Where(sq.Eq{"category_id": scope.CategoryIDs})
		}
		if filter.Search != "" {
			pattern := "%" + filter.Search + "%"
			b = b.Where(sq.Or{
				sq.ILike{"title": pattern},
				sq.ILike{"tracking_code": pattern},
				sq.ILike{"location_address": pattern},
			})
		}
		return b
	}

	countBuilder := applyScope(psql.Select("COUNT(*)").From(reportTable))
	for jsonField, val := range filter.Filter {
		if dbCol, ok := reportFilterMap[jsonField]; ok {
			countBuilder = countBuilder.Where(sq.Eq{dbCol: val})
		}
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Report{}, 0, nil
	}

	builder := applyScope(psql.Select(reportColumns...).From(reportTable))
	builder = db.ApplyListParams(builder, filter, reportFilterMap)
	if len(filter.Sort) == 0 {
		builder = builder.OrderBy("created_at DESC")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	reports := make([]entities.Report, 0)
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, 0, err
		}
		reports = append(reports, *rep)
	}
	return reports, total, rows.Err()
}

func (r *reportRepository) UpdateReportInTx(ctx context.Context, tx pgx.Tx, report *entities.Report) error {
	query := `UPDATE ` + reportTable + ` SET
		status = $2, admin_notes = $3, resolution_notes = $4, rejection_reason = $5,
		assigned_user_id = $6, updated_at = $7,
		reviewed_at = $8, started_at = $9, resolved_at = $10, closed_at = $11
		WHERE id = $1`

	result, err := tx.Exec(ctx, query,
		report.ID, report.Status, report.AdminNotes, report.ResolutionNotes, report.RejectionReason,
		report.AssignedUserID, report.UpdatedAt,
		report.ReviewedAt, report.StartedAt, report.ResolvedAt, report.ClosedAt)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// RateReport sets the citizen rating with a single compare-and-swap. The
// WHERE clause only matches a resolved, not yet rated report, so a second
// attempt affects zero rows.
func (r *reportRepository) RateReport(ctx context.Context, id uuid.UUID, rating int, comment string) (int64, error) {
	query := `UPDATE ` + reportTable + `
		SET citizen_rating = $2, citizen_comment = $3, updated_at = NOW()
		WHERE id = $1 AND status = $4 AND citizen_rating IS NULL`

	result, err := r.storage.Exec(ctx, query, id, rating, comment, constants.StatusResolved)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

func (r *reportRepository) GetStats(ctx context.Context) (map[string]uint64, uint64, float64, error) {
	byStatus := make(map[string]uint64)

	rows, err := r.storage.Query(ctx, `SELECT status, COUNT(*) FROM `+reportTable+` GROUP BY status`)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count uint64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, 0, 0, err
		}
		byStatus[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, err
	}

	var criticalOpen uint64
	err = r.storage.QueryRow(ctx,
		`SELECT COUNT(*) FROM `+reportTable+` WHERE urgency_level = $1 AND status NOT IN ($2, $3, $4)`,
		constants.UrgencyCritical, constants.StatusResolved, constants.StatusRejected, constants.StatusClosed,
	).Scan(&criticalOpen)
	if err != nil {
		return nil, 0, 0, err
	}

	var avgRating float64
	err = r.storage.QueryRow(ctx,
		`SELECT COALESCE(AVG(citizen_rating), 0) FROM `+reportTable+` WHERE citizen_rating IS NOT NULL`,
	).Scan(&avgRating)
	if err != nil {
		return nil, 0, 0, err
	}

	return byStatus, criticalOpen, avgRating, nil
}
