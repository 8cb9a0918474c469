package services

import (
	"context"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"urbanreport/internal/dto"
	"urbanreport/internal/entities"
	"urbanreport/internal/events"
	"urbanreport/internal/repositories"
	"urbanreport/pkg/config"
	"urbanreport/pkg/constants"
	apperrors "urbanreport/pkg/errors"
	"urbanreport/pkg/eventbus"
	"urbanreport/pkg/filestorage"
	"urbanreport/pkg/types"
	"urbanreport/pkg/utils"
)

type ReportListResult struct {
	List       []dto.ReportDTO
	Pagination types.Pagination
}

type ReportServiceInterface interface {
	CreateReport(ctx context.Context, payload dto.CreateReportDTO, files []*multipart.FileHeader) (*dto.ReportDTO, error)
	UpdateReport(ctx context.Context, id uuid.UUID, payload dto.UpdateReportDTO, files []*multipart.FileHeader) (*dto.ReportDTO, error)
	RateReport(ctx context.Context, id uuid.UUID, payload dto.RateReportDTO) (*dto.ReportDTO, error)
	GetReports(ctx context.Context, filter types.Filter) (*ReportListResult, error)
	FindReport(ctx context.Context, id uuid.UUID) (*dto.ReportDTO, error)
	FindReportByTrackingCode(ctx context.Context, code string) (*dto.ReportDTO, error)
	GetHistory(ctx context.Context, reportID uuid.UUID) ([]dto.ReportHistoryDTO, error)
	AddComment(ctx context.Context, reportID uuid.UUID, payload dto.CreateReportCommentDTO) (*dto.ReportCommentDTO, error)
	GetComments(ctx context.Context, reportID uuid.UUID) ([]dto.ReportCommentDTO, error)
	GetAttachments(ctx context.Context, reportID uuid.UUID) ([]dto.ReportAttachmentDTO, error)
	GetStats(ctx context.Context) (*dto.ReportStatsDTO, error)
}

type reportService struct {
	reportRepo     repositories.ReportRepositoryInterface
	historyRepo    repositories.ReportHistoryRepositoryInterface
	commentRepo    repositories.ReportCommentRepositoryInterface
	attachmentRepo repositories.ReportAttachmentRepositoryInterface
	categoryRepo   repositories.CategoryRepositoryInterface
	entityRepo     repositories.EntityRepositoryInterface
	fileStorage    filestorage.FileStorageInterface
	bus            *eventbus.Bus
	uploadCfg      config.UploadConfig
	logger         *zap.Logger
}

func NewReportService(
	reportRepo repositories.ReportRepositoryInterface,
	historyRepo repositories.ReportHistoryRepositoryInterface,
	commentRepo repositories.ReportCommentRepositoryInterface,
	attachmentRepo repositories.ReportAttachmentRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	entityRepo repositories.EntityRepositoryInterface,
	fileStorage filestorage.FileStorageInterface,
	bus *eventbus.Bus,
	uploadCfg config.UploadConfig,
	logger *zap.Logger,
) ReportServiceInterface {
	return &reportService{
		reportRepo:     reportRepo,
		historyRepo:    historyRepo,
		commentRepo:    commentRepo,
		attachmentRepo: attachmentRepo,
		categoryRepo:   categoryRepo,
		entityRepo:     entityRepo,
		fileStorage:    fileStorage,
		bus:            bus,
		uploadCfg:      uploadCfg,
		logger:         logger,
	}
}

func newTrackingCode() string {
	return "RPT-" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
}

func (s *reportService) CreateReport(ctx context.Context, payload dto.CreateReportDTO, files []*multipart.FileHeader) (*dto.ReportDTO, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	userName := utils.GetUserNameFromCtx(ctx)

	if err := utils.ValidateUploadFiles(files, s.uploadCfg.MaxFiles, s.uploadCfg.MaxFileSize); err != nil {
		return nil, err
	}

	categoryID, err := uuid.Parse(payload.CategoryID)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Categoría no válida", err)
	}
	category, err := s.categoryRepo.FindCategory(ctx, categoryID)
	if err != nil {
		return nil, apperrors.NewBadRequestError("La categoría seleccionada no existe", err)
	}

	report := &entities.Report{
		ID:              uuid.New(),
		TrackingCode:    newTrackingCode(),
		UserID:          userID,
		CategoryID:      categoryID,
		Title:           payload.Title,
		Description:     payload.Description,
		UrgencyLevel:    payload.UrgencyLevel,
		Status:          constants.StatusReceived,
		LocationAddress: payload.LocationAddress,
		CitizenName:     payload.CitizenName,
		CitizenEmail:    payload.CitizenEmail,
		PreferContact:   payload.PreferContact,
	}
	if report.PreferContact == "" {
		report.PreferContact = "email"
	}
	if payload.Lat != nil {
		report.Lat = null.Float64From(*payload.Lat)
	}
	if payload.Lon != nil {
		report.Lon = null.Float64From(*payload.Lon)
	}
	if payload.CitizenPhone != "" {
		report.CitizenPhone = null.StringFrom(payload.CitizenPhone)
	}

	tx, err := s.reportRepo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	created, err := s.reportRepo.CreateReportInTx(ctx, tx, report)
	if err != nil {
		return nil, err
	}

	history := &entities.ReportHistory{
		ID:            uuid.New(),
		ReportID:      created.ID,
		ChangedBy:     null.StringFrom(userID.String()),
		ChangedByName: userName,
		Action:        constants.ActionCreated,
		NewValue:      null.StringFrom(constants.StatusReceived),
		Comment:       null.StringFrom("Reporte creado por el ciudadano"),
	}
	if err := s.historyRepo.CreateInTx(ctx, tx, history); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	// Creation files are best effort; a failed upload never undoes the
	// report.
	for _, f := range files {
		if err := s.saveReportFile(ctx, created.ID, f); err != nil {
			s.logger.Warn("no se pudo guardar un archivo del reporte",
				zap.String("reportID", created.ID.String()),
				zap.String("file", f.Filename),
				zap.Error(err),
			)
		}
	}

	return toReportDTO(created, category), nil
}

func (s *reportService) saveReportFile(ctx context.Context, reportID uuid.UUID, f *multipart.FileHeader) error {
	src, err := f.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	path, err := s.fileStorage.Save(src, f.Filename, reportID.String())
	if err != nil {
		return err
	}

	return s.attachmentRepo.CreateReportFile(ctx, &entities.ReportFile{
		ID:       uuid.New(),
		ReportID: reportID,
		FilePath: path,
	})
}

// UpdateReport applies a lifecycle transition. The report row and the
// history entry commit atomically; notifications and evidence files are best
// effort afterwards and never roll the update back.
func (s *reportService) UpdateReport(ctx context.Context, id uuid.UUID, payload dto.UpdateReportDTO, files []*multipart.FileHeader) (*dto.ReportDTO, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	role := utils.GetUserRoleFromCtx(ctx)
	actorName := utils.GetUserNameFromCtx(ctx)
	if role == constants.RoleAdmin {
		actorName = constants.AdminDisplayName
	}

	if err := utils.ValidateUploadFiles(files, s.uploadCfg.MaxFiles, s.uploadCfg.MaxFileSize); err != nil {
		return nil, err
	}

	// Preconditions are checked before any mutation.
	if payload.Status == constants.StatusResolved &&
		(payload.ResolutionNotes == nil || strings.TrimSpace(*payload.ResolutionNotes) == "") {
		return nil, apperrors.NewHttpError(http.StatusBadRequest,
			"Las notas de resolución son obligatorias para resolver un reporte", apperrors.ErrBadRequest, nil)
	}
	if payload.Status == constants.StatusRejected &&
		(payload.RejectionReason == nil || strings.TrimSpace(*payload.RejectionReason) == "") {
		return nil, apperrors.NewHttpError(http.StatusBadRequest,
			"El motivo de rechazo es obligatorio para rechazar un reporte", apperrors.ErrBadRequest, nil)
	}

	report, err := s.reportRepo.FindReport(ctx, id)
	if err != nil {
		return nil, err
	}

	// Entities may only act on reports within their subscribed categories.
	if role == constants.RoleEntity {
		entity, err := s.entityRepo.FindEntityByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		subscribed := false
		for _, categoryID := range entity.Categories {
			if categoryID == report.CategoryID {
				subscribed = true
				break
			}
		}
		if !subscribed {
			return nil, apperrors.NewForbiddenError("Este reporte no pertenece a tus categorías asignadas")
		}
		actorName = entity.Name
	}

	oldStatus := report.Status
	statusChanged := oldStatus != payload.Status
	now := time.Now()

	report.Status = payload.Status
	report.UpdatedAt = now
	report.AdminNotes = null.StringFromPtr(payload.AdminNotes)
	report.ResolutionNotes = null.StringFromPtr(payload.ResolutionNotes)
	report.RejectionReason = null.StringFromPtr(payload.RejectionReason)
	report.AssignedUserID = null.StringFromPtr(payload.AssignedUserID)

	// Milestone timestamps are stamped the first time the report reaches
	// the status and never overwritten.
	switch payload.Status {
	case constants.StatusInReview:
		if !report.ReviewedAt.Valid {
			report.ReviewedAt = null.TimeFrom(now)
		}
	case constants.StatusInProgress:
		if !report.StartedAt.Valid {
			report.StartedAt = null.TimeFrom(now)
		}
	case constants.StatusResolved:
		if !report.ResolvedAt.Valid {
			report.ResolvedAt = null.TimeFrom(now)
		}
	case constants.StatusClosed:
		if !report.ClosedAt.Valid {
			report.ClosedAt = null.TimeFrom(now)
		}
	}

	tx, err := s.reportRepo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := s.reportRepo.UpdateReportInTx(ctx, tx, report); err != nil {
		return nil, err
	}

	if statusChanged {
		history := &entities.ReportHistory{
			ID:            uuid.New(),
			ReportID:      report.ID,
			ChangedBy:     null.StringFrom(userID.String()),
			ChangedByName: actorName,
			Action:        constants.ActionStatusChange,
			OldValue:      null.StringFrom(oldStatus),
			NewValue:      null.StringFrom(payload.Status),
			Comment:       report.AdminNotes,
		}
		if err := s.historyRepo.CreateInTx(ctx, tx, history); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if statusChanged {
		s.bus.Publish(ctx, events.ReportStatusChangedEvent{
			Report:    report,
			OldStatus: oldStatus,
			NewStatus: payload.Status,
			ActorName: actorName,
		})
	}

	attachmentType := constants.AttachmentProgress
	if payload.Status == constants.StatusResolved {
		attachmentType = constants.AttachmentResolution
	}
	for _, f := range files {
		if err := s.saveEvidenceFile(ctx, report.ID, userID, attachmentType, f); err != nil {
			s.logger.Warn("no se pudo guardar un archivo de evidencia",
				zap.String("reportID", report.ID.String()),
				zap.String("file", f.Filename),
				zap.Error(err),
			)
		}
	}

	category, _ := s.categoryRepo.FindCategory(ctx, report.CategoryID)
	return toReportDTO(report, category), nil
}

func (s *reportService) saveEvidenceFile(ctx context.Context, reportID, uploadedBy uuid.UUID, attachmentType string, f *multipart.FileHeader) error {
	src, err := f.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	path, err := s.fileStorage.Save(src, f.Filename, reportID.String())
	if err != nil {
		return err
	}

	return s.attachmentRepo.CreateAttachment(ctx, &entities.ReportAttachment{
		ID:             uuid.New(),
		ReportID:       reportID,
		UploadedBy:     uploadedBy,
		FilePath:       path,
		FileName:       f.Filename,
		FileType:       utils.ClassifyFileType(utils.FileContentType(f)),
		AttachmentType: attachmentType,
		FileSize:       f.Size,
	})
}

// RateReport writes the citizen rating exactly once via a compare-and-swap
// in the database.
func (s *reportService) RateReport(ctx context.Context, id uuid.UUID, payload dto.RateReportDTO) (*dto.ReportDTO, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	report, err := s.reportRepo.FindReport(ctx, id)
	if err != nil {
		return nil, err
	}
	if report.UserID != userID {
		return nil, apperrors.NewForbiddenError("Solo el autor del reporte puede calificarlo")
	}

	affected, err := s.reportRepo.RateReport(ctx, id, payload.Rating, payload.Comment)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		if report.Status != constants.StatusResolved {
			return nil, apperrors.NewBadRequestError("Solo puedes calificar reportes resueltos", apperrors.ErrBadRequest)
		}
		return nil, apperrors.NewConflictError("Este reporte ya fue calificado")
	}

	return s.FindReport(ctx, id)
}

func (s *reportService) scopeForCaller(ctx context.Context) (repositories.ReportScope, error) {
	role := utils.GetUserRoleFromCtx(ctx)

	switch role {
	case constants.RoleAdmin:
		return repositories.ReportScope{}, nil
	case constants.RoleEntity:
		userID, err := utils.GetUserIDFromCtx(ctx)
		if err != nil {
			return repositories.ReportScope{}, err
		}
		entity, err := s.entityRepo.FindEntityByUserID(ctx, userID)
		if err != nil {
			return repositories.ReportScope{}, err
		}
		return repositories.ReportScope{
			CategoryIDs:        entity.Categories,
			CategoriesEnforced: true,
		}, nil
	default:
		userID, err := utils.GetUserIDFromCtx(ctx)
		if err != nil {
			return repositories.ReportScope{}, err
		}
		return repositories.ReportScope{UserID: &userID}, nil
	}
}

func (s *reportService) GetReports(ctx context.Context, filter types.Filter) (*ReportListResult, error) {
	scope, err := s.scopeForCaller(ctx)
	if err != nil {
		return nil, err
	}

	reports, total, err := s.reportRepo.GetReports(ctx, filter, scope)
	if err != nil {
		return nil, err
	}

	list := make([]dto.ReportDTO, 0, len(reports))
	for i := range reports {
		list = append(list, *toReportDTO(&reports[i], nil))
	}

	totalPages := 0
	if filter.Limit > 0 {
		totalPages = (int(total) + filter.Limit - 1) / filter.Limit
	}

	return &ReportListResult{
		List: list,
		Pagination: types.Pagination{
			TotalCount: total,
			Page:       filter.Page,
			Limit:      filter.Limit,
			TotalPages: totalPages,
		},
	}, nil
}

func (s *reportService) FindReport(ctx context.Context, id uuid.UUID) (*dto.ReportDTO, error) {
	report, err := s.reportRepo.FindReport(ctx, id)
	if err != nil {
		return nil, err
	}

	category, _ := s.categoryRepo.FindCategory(ctx, report.CategoryID)
	return toReportDTO(report, category), nil
}

func (s *reportService) FindReportByTrackingCode(ctx context.Context, code string) (*dto.ReportDTO, error) {
	report, err := s.reportRepo.FindReportByTrackingCode(ctx, code)
	if err != nil {
		return nil, err
	}

	category, _ := s.categoryRepo.FindCategory(ctx, report.CategoryID)
	return toReportDTO(report, category), nil
}

func (s *reportService) GetHistory(ctx context.Context, reportID uuid.UUID) ([]dto.ReportHistoryDTO, error) {
	if _, err := s.reportRepo.FindReport(ctx, reportID); err != nil {
		return nil, err
	}

	items, err := s.historyRepo.GetByReportID(ctx, reportID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.ReportHistoryDTO, 0, len(items))
	for i := range items {
		result = append(result, toHistoryDTO(&items[i]))
	}
	return result, nil
}

func (s *reportService) AddComment(ctx context.Context, reportID uuid.UUID, payload dto.CreateReportCommentDTO) (*dto.ReportCommentDTO, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	userName := utils.GetUserNameFromCtx(ctx)
	role := utils.GetUserRoleFromCtx(ctx)

	if _, err := s.reportRepo.FindReport(ctx, reportID); err != nil {
		return nil, err
	}

	// Citizen comments are always public; staff decide per comment.
	isPublic := true
	if payload.IsPublic != nil && role != constants.RoleCitizen {
		isPublic = *payload.IsPublic
	}

	comment, err := s.commentRepo.CreateComment(ctx, &entities.ReportComment{
		ID:         uuid.New(),
		ReportID:   reportID,
		UserID:     userID,
		UserName:   userName,
		Comment:    payload.Comment,
		IsPublic:   isPublic,
		IsInternal: !isPublic,
	})
	if err != nil {
		return nil, err
	}

	result := toCommentDTO(comment)
	return &result, nil
}

func (s *reportService) GetComments(ctx context.Context, reportID uuid.UUID) ([]dto.ReportCommentDTO, error) {
	if _, err := s.reportRepo.FindReport(ctx, reportID); err != nil {
		return nil, err
	}

	publicOnly := utils.GetUserRoleFromCtx(ctx) == constants.RoleCitizen
	comments, err := s.commentRepo.GetByReportID(ctx, reportID, publicOnly)
	if err != nil {
		return nil, err
	}

	result := make([]dto.ReportCommentDTO, 0, len(comments))
	for i := range comments {
		result = append(result, toCommentDTO(&comments[i]))
	}
	return result, nil
}

// GetAttachments lists the citizen's creation files first, then the evidence
// files added during lifecycle updates.
func (s *reportService) GetAttachments(ctx context.Context, reportID uuid.UUID) ([]dto.ReportAttachmentDTO, error) {
	report, err := s.reportRepo.FindReport(ctx, reportID)
	if err != nil {
		return nil, err
	}

	files, err := s.attachmentRepo.GetFilesByReportID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	attachments, err := s.attachmentRepo.GetByReportID(ctx, reportID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.ReportAttachmentDTO, 0, len(files)+len(attachments))
	for i := range files {
		result = append(result, toReportFileDTO(&files[i], report.UserID))
	}
	for i := range attachments {
		result = append(result, toAttachmentDTO(&attachments[i]))
	}
	return result, nil
}

func (s *reportService) GetStats(ctx context.Context) (*dto.ReportStatsDTO, error) {
	byStatus, criticalOpen, avgRating, err := s.reportRepo.GetStats(ctx)
	if err != nil {
		return nil, err
	}

	var total uint64
	for _, count := range byStatus {
		total += count
	}

	return &dto.ReportStatsDTO{
		Total:         total,
		ByStatus:      byStatus,
		CriticalOpen:  criticalOpen,
		AverageRating: avgRating,
	}, nil
}
