package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"urbanreport/internal/entities"
)

const (
	entityAuditTable  = "entity_audit_logs"
	entityAuditFields = "id, entity_id, admin_id, action, reason, created_at"
)

type EntityAuditRepositoryInterface interface {
	CreateLog(ctx context.Context, log *entities.EntityAuditLog) error
	GetLogsByEntity(ctx context.Context, entityID uuid.UUID) ([]entities.EntityAuditLog, error)
}

type entityAuditRepository struct{ storage *pgxpool.Pool }

func NewEntityAuditRepository(storage *pgxpool.Pool) EntityAuditRepositoryInterface {
	return &entityAuditRepository{storage: storage}
}

func (r *entityAuditRepository) CreateLog(ctx context.Context, log *entities.EntityAuditLog) error {
	query := `INSERT INTO ` + entityAuditTable + ` (id, entity_id, admin_id, action, reason) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.storage.Exec(ctx, query, log.ID, log.EntityID, log.AdminID, log.Action, log.Reason)
	return err
}

func (r *entityAuditRepository) GetLogsByEntity(ctx context.Context, entityID uuid.UUID) ([]entities.EntityAuditLog, error) {
	query := `SELECT ` + entityAuditFields + ` FROM ` + entityAuditTable + ` WHERE entity_id = $1 ORDER BY created_at DESC`

	rows, err := r.storage.Query(ctx, query, entityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]entities.EntityAuditLog, 0)
	for rows.Next() {
		var l entities.EntityAuditLog
		if err := rows.Scan(&l.ID, &l.EntityID, &l.AdminID, &l.Action, &l.Reason, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
