package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"urbanreport/internal/dto"
	"urbanreport/internal/services"
	apperrors "urbanreport/pkg/errors"
	"urbanreport/pkg/utils"
)

type EntityController struct {
	entityService services.EntityServiceInterface
	logger        *zap.Logger
}

func NewEntityController(entityService services.EntityServiceInterface, logger *zap.Logger) *EntityController {
	return &EntityController{entityService: entityService, logger: logger}
}

func (c *EntityController) GetEntities(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	res, err := c.entityService.GetEntities(reqCtx, ctx.QueryParam("status"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Lista de entidades obtenida correctamente", http.StatusOK)
}

func (c *EntityController) FindEntity(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.entityService.FindEntity(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Entidad encontrada", http.StatusOK)
}

func (c *EntityController) ApproveEntity(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.entityService.ApproveEntity(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Entidad aprobada correctamente", http.StatusOK)
}

func (c *EntityController) RejectEntity(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.RejectEntityDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Cuerpo de la petición no válido", err), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.entityService.RejectEntity(reqCtx, id, payload.Reason)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Entidad rechazada", http.StatusOK)
}

func (c *EntityController) GetAuditLogs(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.entityService.GetAuditLogs(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Auditoría de la entidad obtenida", http.StatusOK)
}

func (c *EntityController) GetCategories(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.entityService.GetCategories(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Categorías de la entidad obtenidas", http.StatusOK)
}

func (c *EntityController) ReplaceCategories(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateEntityCategoriesDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Cuerpo de la petición no válido", err), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.entityService.ReplaceCategories(reqCtx, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Categorías de la entidad actualizadas", http.StatusOK)
}
