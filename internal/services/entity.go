package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"urbanreport/internal/dto"
	"urbanreport/internal/entities"
	"urbanreport/internal/events"
	"urbanreport/internal/repositories"
	"urbanreport/pkg/constants"
	apperrors "urbanreport/pkg/errors"
	"urbanreport/pkg/eventbus"
	"urbanreport/pkg/utils"
)

type EntityServiceInterface interface {
	GetEntities(ctx context.Context, status string) ([]dto.EntityDTO, error)
	FindEntity(ctx context.Context, id uuid.UUID) (*dto.EntityDTO, error)
	ApproveEntity(ctx context.Context, id uuid.UUID) (*dto.EntityDTO, error)
	RejectEntity(ctx context.Context, id uuid.UUID, reason string) (*dto.EntityDTO, error)
	GetAuditLogs(ctx context.Context, id uuid.UUID) ([]dto.EntityAuditLogDTO, error)
	GetCategories(ctx context.Context, id uuid.UUID) ([]string, error)
	ReplaceCategories(ctx context.Context, id uuid.UUID, payload dto.UpdateEntityCategoriesDTO) ([]string, error)
}

type entityService struct {
	entityRepo   repositories.EntityRepositoryInterface
	auditRepo    repositories.EntityAuditRepositoryInterface
	categoryRepo repositories.CategoryRepositoryInterface
	bus          *eventbus.Bus
	logger       *zap.Logger
}

func NewEntityService(
	entityRepo repositories.EntityRepositoryInterface,
	auditRepo repositories.EntityAuditRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	bus *eventbus.Bus,
	logger *zap.Logger,
) EntityServiceInterface {
	return &entityService{
		entityRepo:   entityRepo,
		auditRepo:    auditRepo,
		categoryRepo: categoryRepo,
		bus:          bus,
		logger:       logger,
	}
}

func (s *entityService) GetEntities(ctx context.Context, status string) ([]dto.EntityDTO, error) {
	list, err := s.entityRepo.GetEntities(ctx, status)
	if err != nil {
		return nil, err
	}

	result := make([]dto.EntityDTO, 0, len(list))
	for i := range list {
		result = append(result, toEntityDTO(&list[i]))
	}
	return result, nil
}

func (s *entityService) FindEntity(ctx context.Context, id uuid.UUID) (*dto.EntityDTO, error) {
	entity, err := s.entityRepo.FindEntity(ctx, id)
	if err != nil {
		return nil, err
	}
	result := toEntityDTO(entity)
	return &result, nil
}

// decide resolves an approval decision. Approved and rejected are terminal;
// deciding twice fails with a conflict.
func (s *entityService) decide(ctx context.Context, id uuid.UUID, action string, reason *string) (*dto.EntityDTO, error) {
	adminID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	entity, err := s.entityRepo.FindEntity(ctx, id)
	if err != nil {
		return nil, err
	}
	if entity.Status != constants.EntityPending {
		return nil, apperrors.NewConflictError("La solicitud de esta entidad ya fue procesada")
	}

	newStatus := constants.EntityApproved
	if action == constants.EntityActionRejected {
		newStatus = constants.EntityRejected
	}

	if err := s.entityRepo.UpdateEntityStatus(ctx, id, newStatus, reason); err != nil {
		return nil, err
	}

	auditLog := &entities.EntityAuditLog{
		ID:       uuid.New(),
		EntityID: id,
		AdminID:  adminID,
		Action:   action,
	}
	if reason != nil {
		auditLog.Reason.SetValid(*reason)
	}
	if err := s.auditRepo.CreateLog(ctx, auditLog); err != nil {
		// The decision already stands; the missing audit row is logged.
		s.logger.Error("no se pudo registrar la auditoría de la entidad",
			zap.String("entityID", id.String()),
			zap.Error(err),
		)
	}

	reasonText := ""
	if reason != nil {
		reasonText = *reason
	}
	s.bus.Publish(ctx, events.EntityStatusChangedEvent{
		Entity: entity,
		Action: action,
		Reason: reasonText,
	})

	return s.FindEntity(ctx, id)
}

func (s *entityService) ApproveEntity(ctx context.Context, id uuid.UUID) (*dto.EntityDTO, error) {
	return s.decide(ctx, id, constants.EntityActionApproved, nil)
}

func (s *entityService) RejectEntity(ctx context.Context, id uuid.UUID, reason string) (*dto.EntityDTO, error) {
	return s.decide(ctx, id, constants.EntityActionRejected, &reason)
}

func (s *entityService) GetAuditLogs(ctx context.Context, id uuid.UUID) ([]dto.EntityAuditLogDTO, error) {
	if _, err := s.entityRepo.FindEntity(ctx, id); err != nil {
		return nil, err
	}

	logs, err := s.auditRepo.GetLogsByEntity(ctx, id)
	if err != nil {
		return nil, err
	}

	result := make([]dto.EntityAuditLogDTO, 0, len(logs))
	for _, l := range logs {
		result = append(result, dto.EntityAuditLogDTO{
			ID:        l.ID.String(),
			EntityID:  l.EntityID.String(),
			AdminID:   l.AdminID.String(),
			Action:    l.Action,
			Reason:    nullString(l.Reason),
			CreatedAt: formatTime(l.CreatedAt),
		})
	}
	return result, nil
}

// requireSelfOrAdmin lets an entity manage only its own subscriptions.
func (s *entityService) requireSelfOrAdmin(ctx context.Context, entity *entities.Entity) error {
	role := utils.GetUserRoleFromCtx(ctx)
	if role == constants.RoleAdmin {
		return nil
	}
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return err
	}
	if entity.UserID != userID {
		return apperrors.NewForbiddenError("No puedes administrar las categorías de otra entidad")
	}
	return nil
}

func (s *entityService) GetCategories(ctx context.Context, id uuid.UUID) ([]string, error) {
	entity, err := s.entityRepo.FindEntity(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireSelfOrAdmin(ctx, entity); err != nil {
		return nil, err
	}

	result := make([]string, 0, len(entity.Categories))
	for _, categoryID := range entity.Categories {
		result = append(result, categoryID.String())
	}
	return result, nil
}

// ReplaceCategories swaps the whole subscription set. Duplicates conflict;
// unknown category ids are a validation error. The empty set is valid and
// means the entity sees no reports.
func (s *entityService) ReplaceCategories(ctx context.Context, id uuid.UUID, payload dto.UpdateEntityCategoriesDTO) ([]string, error) {
	entity, err := s.entityRepo.FindEntity(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireSelfOrAdmin(ctx, entity); err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]struct{}, len(payload.Categories))
	categoryIDs := make([]uuid.UUID, 0, len(payload.Categories))
	for _, raw := range payload.Categories {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			return nil, apperrors.NewBadRequestError("Identificador de categoría no válido", err)
		}
		if _, dup := seen[categoryID]; dup {
			return nil, apperrors.NewConflictError("La lista de categorías contiene duplicados")
		}
		seen[categoryID] = struct{}{}
		categoryIDs = append(categoryIDs, categoryID)
	}

	if len(categoryIDs) > 0 {
		count, err := s.categoryRepo.CountExisting(ctx, categoryIDs)
		if err != nil {
			return nil, err
		}
		if count != len(categoryIDs) {
			return nil, apperrors.NewBadRequestError("Una o más categorías no existen", apperrors.ErrBadRequest)
		}
	}

	if err := s.entityRepo.ReplaceCategories(ctx, id, categoryIDs); err != nil {
		return nil, err
	}

	return payload.Categories, nil
}
