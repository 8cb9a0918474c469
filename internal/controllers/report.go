package controllers

import (
	"encoding/json"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"urbanreport/internal/dto"
	"urbanreport/internal/services"
	apperrors "urbanreport/pkg/errors"
	"urbanreport/pkg/utils"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	exportService services.ReportExportServiceInterface
	logger        *zap.Logger
}

func NewReportController(
	reportService services.ReportServiceInterface,
	exportService services.ReportExportServiceInterface,
	logger *zap.Logger,
) *ReportController {
	return &ReportController{reportService: reportService, exportService: exportService, logger: logger}
}

func formFiles(ctx echo.Context, field string) []*multipart.FileHeader {
	form, err := ctx.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File[field]
}

func decodeDataField(ctx echo.Context, out interface{}) error {
	dataString := ctx.FormValue("data")
	if dataString == "" {
		return apperrors.NewHttpError(http.StatusBadRequest,
			"El campo 'data' con JSON es obligatorio", apperrors.ErrBadRequest, nil)
	}
	if err := json.Unmarshal([]byte(dataString), out); err != nil {
		return apperrors.NewHttpError(http.StatusBadRequest,
			"JSON no válido en 'data'", err, map[string]interface{}{"data": dataString})
	}
	return nil
}

func (c *ReportController) CreateReport(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.CreateReportDTO
	if err := decodeDataField(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	created, err := c.reportService.CreateReport(reqCtx, payload, formFiles(ctx, "files"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, created, "Reporte creado correctamente", http.StatusCreated)
}

func (c *ReportController) GetReports(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	res, err := c.reportService.GetReports(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, res.List, "Lista de reportes obtenida correctamente",
		http.StatusOK, res.Pagination.TotalCount)
}

func (c *ReportController) FindReport(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.reportService.FindReport(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Reporte encontrado", http.StatusOK)
}

func (c *ReportController) FindReportByTrackingCode(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	res, err := c.reportService.FindReportByTrackingCode(reqCtx, ctx.Param("code"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Reporte encontrado", http.StatusOK)
}

func (c *ReportController) UpdateReport(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateReportDTO
	if err := decodeDataField(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	updated, err := c.reportService.UpdateReport(reqCtx, id, payload, formFiles(ctx, "files"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, updated, "Reporte actualizado correctamente", http.StatusOK)
}

func (c *ReportController) RateReport(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.RateReportDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Cuerpo de la petición no válido", err), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	rated, err := c.reportService.RateReport(reqCtx, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, rated, "Gracias por calificar el servicio", http.StatusOK)
}

func (c *ReportController) GetHistory(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.reportService.GetHistory(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Historial del reporte obtenido", http.StatusOK)
}

func (c *ReportController) AddComment(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.CreateReportCommentDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Cuerpo de la petición no válido", err), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	created, err := c.reportService.AddComment(reqCtx, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, created, "Comentario agregado", http.StatusCreated)
}

func (c *ReportController) GetComments(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.reportService.GetComments(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Comentarios obtenidos", http.StatusOK)
}

func (c *ReportController) GetAttachments(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.reportService.GetAttachments(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Archivos del reporte obtenidos", http.StatusOK)
}

func (c *ReportController) GetStats(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	res, err := c.reportService.GetStats(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Estadísticas obtenidas", http.StatusOK)
}

func (c *ReportController) ExportReports(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	file, err := c.exportService.ExportReports(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="reportes.xlsx"`)
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().WriteHeader(http.StatusOK)
	return file.Write(ctx.Response().Writer)
}
