package services

import (
	"context"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"urbanreport/internal/dto"
	"urbanreport/internal/entities"
	"urbanreport/internal/events"
	"urbanreport/internal/repositories"
	"urbanreport/pkg/config"
	"urbanreport/pkg/constants"
	"urbanreport/pkg/contextkeys"
	apperrors "urbanreport/pkg/errors"
	"urbanreport/pkg/eventbus"
	"urbanreport/pkg/types"
)

// fakeTx satisfies pgx.Tx for the service layer, which only ever commits or
// rolls back.
type fakeTx struct{ pgx.Tx }

func (fakeTx) Commit(ctx context.Context) error   { return nil }
func (fakeTx) Rollback(ctx context.Context) error { return nil }

type fakeReportRepo struct {
	reports      map[uuid.UUID]*entities.Report
	updated      []*entities.Report
	created      []*entities.Report
	rateAffected int64
	lastScope    repositories.ReportScope
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: make(map[uuid.UUID]*entities.Report)}
}

func (f *fakeReportRepo) BeginTx(ctx context.Context) (pgx.Tx, error) { return fakeTx{}, nil }

func (f *fakeReportRepo) CreateReportInTx(ctx context.Context, tx pgx.Tx, report *entities.Report) (*entities.Report, error) {
	report.CreatedAt = time.Now()
	report.UpdatedAt = report.CreatedAt
	f.reports[report.ID] = report
	f.created = append(f.created, report)
	return report, nil
}

func (f *fakeReportRepo) FindReport(ctx context.Context, id uuid.UUID) (*entities.Report, error) {
	report, ok := f.reports[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *report
	return &copied, nil
}

func (f *fakeReportRepo) FindReportByTrackingCode(ctx context.Context, code string) (*entities.Report, error) {
	for _, report := range f.reports {
		if report.TrackingCode == code {
			copied := *report
			return &copied, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeReportRepo) GetReports(ctx context.Context, filter types.Filter, scope repositories.ReportScope) ([]entities.Report, uint64, error) {
	f.lastScope = scope
	var result []entities.Report
	for _, report := range f.reports {
		result = append(result, *report)
	}
	return result, uint64(len(result)), nil
}

func (f *fakeReportRepo) UpdateReportInTx(ctx context.Context, tx pgx.Tx, report *entities.Report) error {
	copied := *report
	f.reports[report.ID] = &copied
	f.updated = append(f.updated, &copied)
	return nil
}

func (f *fakeReportRepo) RateReport(ctx context.Context, id uuid.UUID, rating int, comment string) (int64, error) {
	if f.rateAffected == 1 {
		report := f.reports[id]
		report.CitizenRating = null.IntFrom(rating)
		report.CitizenComment = null.StringFrom(comment)
	}
	return f.rateAffected, nil
}

func (f *fakeReportRepo) GetStats(ctx context.Context) (map[string]uint64, uint64, float64, error) {
	return map[string]uint64{constants.StatusReceived: 2, constants.StatusResolved: 1}, 1, 4.5, nil
}

type fakeHistoryRepo struct {
	entries []*entities.ReportHistory
}

func (f *fakeHistoryRepo) CreateInTx(ctx context.Context, tx pgx.Tx, history *entities.ReportHistory) error {
	f.entries = append(f.entries, history)
	return nil
}

func (f *fakeHistoryRepo) GetByReportID(ctx context.Context, reportID uuid.UUID) ([]entities.ReportHistory, error) {
	var result []entities.ReportHistory
	for _, h := range f.entries {
		if h.ReportID == reportID {
			result = append(result, *h)
		}
	}
	return result, nil
}

type fakeCommentRepo struct {
	comments []*entities.ReportComment
}

func (f *fakeCommentRepo) CreateComment(ctx context.Context, comment *entities.ReportComment) (*entities.ReportComment, error) {
	comment.CreatedAt = time.Now()
	f.comments = append(f.comments, comment)
	return comment, nil
}

func (f *fakeCommentRepo) GetByReportID(ctx context.Context, reportID uuid.UUID, publicOnly bool) ([]entities.ReportComment, error) {
	var result []entities.ReportComment
	for _, c := range f.comments {
		if c.ReportID == reportID && (!publicOnly || c.IsPublic) {
			result = append(result, *c)
		}
	}
	return result, nil
}

type fakeAttachmentRepo struct {
	attachments []*entities.ReportAttachment
	files       []*entities.ReportFile
}

func (f *fakeAttachmentRepo) CreateAttachment(ctx context.Context, attachment *entities.ReportAttachment) error {
	f.attachments = append(f.attachments, attachment)
	return nil
}

func (f *fakeAttachmentRepo) GetByReportID(ctx context.Context, reportID uuid.UUID) ([]entities.ReportAttachment, error) {
	var result []entities.ReportAttachment
	for _, a := range f.attachments {
		if a.ReportID == reportID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (f *fakeAttachmentRepo) CreateReportFile(ctx context.Context, file *entities.ReportFile) error {
	f.files = append(f.files, file)
	return nil
}

func (f *fakeAttachmentRepo) GetFilesByReportID(ctx context.Context, reportID uuid.UUID) ([]entities.ReportFile, error) {
	var result []entities.ReportFile
	for _, file := range f.files {
		if file.ReportID == reportID {
			result = append(result, *file)
		}
	}
	return result, nil
}

type fakeCategoryRepo struct {
	categories map[uuid.UUID]*entities.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[uuid.UUID]*entities.Category)}
}

func (f *fakeCategoryRepo) GetActiveCategories(ctx context.Context) ([]entities.Category, error) {
	var result []entities.Category
	for _, c := range f.categories {
		result = append(result, *c)
	}
	return result, nil
}

func (f *fakeCategoryRepo) FindCategory(ctx context.Context, id uuid.UUID) (*entities.Category, error) {
	category, ok := f.categories[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return category, nil
}

func (f *fakeCategoryRepo) CountExisting(ctx context.Context, ids []uuid.UUID) (int, error) {
	count := 0
	for _, id := range ids {
		if _, ok := f.categories[id]; ok {
			count++
		}
	}
	return count, nil
}

type fakeEntityRepo struct {
	entities map[uuid.UUID]*entities.Entity
	byUser   map[uuid.UUID]*entities.Entity
}

func newFakeEntityRepo() *fakeEntityRepo {
	return &fakeEntityRepo{
		entities: make(map[uuid.UUID]*entities.Entity),
		byUser:   make(map[uuid.UUID]*entities.Entity),
	}
}

func (f *fakeEntityRepo) add(e *entities.Entity) {
	f.entities[e.ID] = e
	f.byUser[e.UserID] = e
}

func (f *fakeEntityRepo) CreateEntity(ctx context.Context, e *entities.Entity) (*entities.Entity, error) {
	f.add(e)
	return e, nil
}

func (f *fakeEntityRepo) FindEntity(ctx context.Context, id uuid.UUID) (*entities.Entity, error) {
	e, ok := f.entities[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *e
	return &copied, nil
}

func (f *fakeEntityRepo) FindEntityByUserID(ctx context.Context, userID uuid.UUID) (*entities.Entity, error) {
	e, ok := f.byUser[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *e
	return &copied, nil
}

func (f *fakeEntityRepo) GetEntities(ctx context.Context, status string) ([]entities.Entity, error) {
	var result []entities.Entity
	for _, e := range f.entities {
		if status == "" || e.Status == status {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (f *fakeEntityRepo) UpdateEntityStatus(ctx context.Context, id uuid.UUID, status string, rejectionReason *string) error {
	e, ok := f.entities[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	e.Status = status
	if rejectionReason != nil {
		e.RejectionReason = null.StringFrom(*rejectionReason)
	}
	return nil
}

func (f *fakeEntityRepo) GetCategories(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	e, ok := f.entities[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return e.Categories, nil
}

func (f *fakeEntityRepo) ReplaceCategories(ctx context.Context, id uuid.UUID, categoryIDs []uuid.UUID) error {
	e, ok := f.entities[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	e.Categories = categoryIDs
	return nil
}

type reportServiceFixture struct {
	svc        ReportServiceInterface
	reportRepo *fakeReportRepo
	history    *fakeHistoryRepo
	comments   *fakeCommentRepo
	attach     *fakeAttachmentRepo
	categories *fakeCategoryRepo
	entityRepo *fakeEntityRepo
	bus        *eventbus.Bus
}

func newReportServiceFixture() *reportServiceFixture {
	f := &reportServiceFixture{
		reportRepo: newFakeReportRepo(),
		history:    &fakeHistoryRepo{},
		comments:   &fakeCommentRepo{},
		attach:     &fakeAttachmentRepo{},
		categories: newFakeCategoryRepo(),
		entityRepo: newFakeEntityRepo(),
		bus:        eventbus.New(zap.NewNop()),
	}
	f.svc = NewReportService(
		f.reportRepo, f.history, f.comments, f.attach,
		f.categories, f.entityRepo, nil, f.bus,
		config.UploadConfig{MaxFiles: 3, MaxFileSize: 10 << 20},
		zap.NewNop(),
	)
	return f
}

func ctxWithUser(id uuid.UUID, role, name string) context.Context {
	ctx := context.WithValue(context.Background(), contextkeys.UserIDKey, id)
	ctx = context.WithValue(ctx, contextkeys.UserRoleKey, role)
	return context.WithValue(ctx, contextkeys.UserNameKey, name)
}

func seedReport(f *reportServiceFixture, status string) *entities.Report {
	categoryID := uuid.New()
	f.categories.categories[categoryID] = &entities.Category{
		ID:       categoryID,
		Name:     "Alumbrado Público",
		Color:    null.StringFrom("#f59e0b"),
		IsActive: true,
	}

	report := &entities.Report{
		ID:              uuid.New(),
		TrackingCode:    "RPT-ABCD1234",
		UserID:          uuid.New(),
		CategoryID:      categoryID,
		Title:           "Luminaria apagada",
		Description:     "La luminaria de la esquina lleva una semana apagada",
		UrgencyLevel:    constants.UrgencyMedium,
		Status:          status,
		LocationAddress: "Calle 10 # 4-21",
		CitizenName:     "Ana Gómez",
		CitizenEmail:    "ana@example.com",
		PreferContact:   "email",
		CreatedAt:       time.Now().Add(-time.Hour),
		UpdatedAt:       time.Now().Add(-time.Hour),
	}
	f.reportRepo.reports[report.ID] = report
	return report
}

func TestCreateReportWritesCreationHistory(t *testing.T) {
	f := newReportServiceFixture()
	categoryID := uuid.New()
	f.categories.categories[categoryID] = &entities.Category{ID: categoryID, Name: "Vías y Baches", IsActive: true}

	citizenID := uuid.New()
	ctx := ctxWithUser(citizenID, constants.RoleCitizen, "Ana Gómez")

	created, err := f.svc.CreateReport(ctx, dto.CreateReportDTO{
		CategoryID:      categoryID.String(),
		UrgencyLevel:    constants.UrgencyHigh,
		Title:           "Bache profundo",
		Description:     "Hay un bache profundo frente al colegio",
		LocationAddress: "Carrera 7 # 12-30",
		CitizenName:     "Ana Gómez",
		CitizenEmail:    "ana@example.com",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, constants.StatusReceived, created.Status)
	assert.Regexp(t, `^RPT-[A-Z0-9]{8}$`, created.TrackingCode)
	assert.Equal(t, "Vías y Baches", created.CategoryName)

	require.Len(t, f.history.entries, 1)
	entry := f.history.entries[0]
	assert.Equal(t, constants.ActionCreated, entry.Action)
	assert.Equal(t, constants.StatusReceived, entry.NewValue.String)
	assert.Equal(t, "Ana Gómez", entry.ChangedByName)
}

func TestCreateReportUnknownCategory(t *testing.T) {
	f := newReportServiceFixture()
	ctx := ctxWithUser(uuid.New(), constants.RoleCitizen, "Ana Gómez")

	_, err := f.svc.CreateReport(ctx, dto.CreateReportDTO{
		CategoryID:      uuid.New().String(),
		UrgencyLevel:    constants.UrgencyLow,
		Title:           "Bache profundo",
		Description:     "Hay un bache profundo frente al colegio",
		LocationAddress: "Carrera 7 # 12-30",
		CitizenName:     "Ana Gómez",
		CitizenEmail:    "ana@example.com",
	}, nil)

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Code)
	assert.Empty(t, f.reportRepo.created)
}

func TestUpdateReportStatusChangeWritesOneHistoryRow(t *testing.T) {
	f := newReportServiceFixture()
	report := seedReport(f, constants.StatusReceived)
	ctx := ctxWithUser(uuid.New(), constants.RoleAdmin, "Carlos Ruiz")

	notes := "Revisión iniciada"
	updated, err := f.svc.UpdateReport(ctx, report.ID, dto.UpdateReportDTO{
		Status:     constants.StatusInReview,
		AdminNotes: &notes,
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, constants.StatusInReview, updated.Status)
	assert.Equal(t, "En Revisión", updated.StatusLabel)

	require.Len(t, f.history.entries, 1)
	entry := f.history.entries[0]
	assert.Equal(t, constants.ActionStatusChange, entry.Action)
	assert.Equal(t, constants.StatusReceived, entry.OldValue.String)
	assert.Equal(t, constants.StatusInReview, entry.NewValue.String)
	assert.Equal(t, notes, entry.Comment.String)
	// Admin actions are recorded under the generic admin display name.
	assert.Equal(t, constants.AdminDisplayName, entry.ChangedByName)

	stored := f.reportRepo.reports[report.ID]
	assert.True(t, stored.ReviewedAt.Valid)
}

func TestUpdateReportSameStatusWritesNoHistory(t *testing.T) {
	f := newReportServiceFixture()
	report := seedReport(f, constants.StatusInReview)
	ctx := ctxWithUser(uuid.New(), constants.RoleAdmin, "Carlos Ruiz")

	notes := "Solo actualizo las notas"
	_, err := f.svc.UpdateReport(ctx, report.ID, dto.UpdateReportDTO{
		Status:     constants.StatusInReview,
		AdminNotes: &notes,
	}, nil)
	require.NoError(t, err)

	assert.Empty(t, f.history.entries)
	assert.Equal(t, notes, f.reportRepo.reports[report.ID].AdminNotes.String)
}

func TestUpdateReportResolvedRequiresNotes(t *testing.T) {
	f := newReportServiceFixture()
	report := seedReport(f, constants.StatusInProgress)
	ctx := ctxWithUser(uuid.New(), constants.RoleAdmin, "Carlos Ruiz")

	empty := "   "
	_, err := f.svc.UpdateReport(ctx, report.ID, dto.UpdateReportDTO{
		Status:          constants.StatusResolved,
		ResolutionNotes: &empty,
	}, nil)

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Code)

	// Preconditions fail before any write.
	assert.Empty(t, f.reportRepo.updated)
	assert.Empty(t, f.history.entries)
	assert.Equal(t, constants.StatusInProgress, f.reportRepo.reports[report.ID].Status)
}

func TestUpdateReportRejectedRequiresReason(t *testing.T) {
	f := newReportServiceFixture()
	report := seedReport(f, constants.StatusInReview)
	ctx := ctxWithUser(uuid.New(), constants.RoleAdmin, "Carlos Ruiz")

	_, err := f.svc.UpdateReport(ctx, report.ID, dto.UpdateReportDTO{
		Status: constants.StatusRejected,
	}, nil)

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Code)
	assert.Empty(t, f.reportRepo.updated)
}

func TestUpdateReportMilestoneStampedOnce(t *testing.T) {
	f := newReportServiceFixture()
	report := seedReport(f, constants.StatusRequiresInfo)
	firstReview := time.Now().Add(-2 * time.Hour)
	report.ReviewedAt = null.TimeFrom(firstReview)
	ctx := ctxWithUser(uuid.New(), constants.RoleAdmin, "Carlos Ruiz")

	_, err := f.svc.UpdateReport(ctx, report.ID, dto.UpdateReportDTO{
		Status: constants.StatusInReview,
	}, nil)
	require.NoError(t, err)

	stored := f.reportRepo.reports[report.ID]
	assert.True(t, stored.ReviewedAt.Time.Equal(firstReview), "el primer sello de revisión no debe sobrescribirse")
}

func TestUpdateReportSkippedStatusLeavesStampNull(t *testing.T) {
	f := newReportServiceFixture()
	report := seedReport(f, constants.StatusReceived)
	ctx := ctxWithUser(uuid.New(), constants.RoleAdmin, "Carlos Ruiz")

	// Jumping straight to in_progress never backfills reviewed_at.
	_, err := f.svc.UpdateReport(ctx, report.ID, dto.UpdateReportDTO{
		Status: constants.StatusInProgress,
	}, nil)
	require.NoError(t, err)

	stored := f.reportRepo.reports[report.ID]
	assert.False(t, stored.ReviewedAt.Valid)
	assert.True(t, stored.StartedAt.Valid)
}

func TestUpdateReportEntityOutsideCategoriesForbidden(t *testing.T) {
	f := newReportServiceFixture()
	report := seedReport(f, constants.StatusReceived)

	entityUserID := uuid.New()
	f.entityRepo.add(&entities.Entity{
		ID:         uuid.New(),
		UserID:     entityUserID,
		Name:       "Empresa de Energía",
		Status:     constants.EntityApproved,
		Categories: []uuid.UUID{uuid.New()},
	})
	ctx := ctxWithUser(entityUserID, constants.RoleEntity, "Empresa de Energía")

	_, err := f.svc.UpdateReport(ctx, report.ID, dto.UpdateReportDTO{
		Status: constants.StatusInReview,
	}, nil)

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 403, httpErr.Code)
	assert.Empty(t, f.reportRepo.updated)
}

func TestUpdateReportEntityActsUnderEntityName(t *testing.T) {
	f := newReportServiceFixture()
	report := seedReport(f, constants.StatusReceived)

	entityUserID := uuid.New()
	f.entityRepo.add(&entities.Entity{
		ID:         uuid.New(),
		UserID:     entityUserID,
		Name:       "Empresa de Energía",
		Status:     constants.EntityApproved,
		Categories: []uuid.UUID{report.CategoryID},
	})
	ctx := ctxWithUser(entityUserID, constants.RoleEntity, "Juan Pérez")

	_, err := f.svc.UpdateReport(ctx, report.ID, dto.UpdateReportDTO{
		Status: constants.StatusInProgress,
	}, nil)
	require.NoError(t, err)

	require.Len(t, f.history.entries, 1)
	assert.Equal(t, "Empresa de Energía", f.history.entries[0].ChangedByName)
}

func TestUpdateReportPublishesStatusChangedEvent(t *testing.T) {
	f := newReportServiceFixture()
	report := seedReport(f, constants.StatusReceived)

	received := make(chan events.ReportStatusChangedEvent, 1)
	f.bus.Subscribe(events.ReportStatusChangedEvent{}.Name(), func(ctx context.Context, event eventbus.Event) error {
		if e, ok := event.(events.ReportStatusChangedEvent); ok {
			received <- e
		}
		return nil
	})

	ctx := ctxWithUser(uuid.New(), constants.RoleAdmin, "Carlos Ruiz")
	_, err := f.svc.UpdateReport(ctx, report.ID, dto.UpdateReportDTO{
		Status: constants.StatusInReview,
	}, nil)
	require.NoError(t, err)

	select {
	case e := <-received:
		assert.Equal(t, constants.StatusReceived, e.OldStatus)
		assert.Equal(t, constants.StatusInReview, e.NewStatus)
		assert.Equal(t, constants.AdminDisplayName, e.ActorName)
	case <-time.After(2 * time.Second):
		t.Fatal("no se publicó el evento de cambio de estado")
	}
}

func TestRateReportOnlyOwner(t *testing.T) {
	f := newReportServiceFixture()
	report := seedReport(f, constants.StatusResolved)
	ctx := ctxWithUser(uuid.New(), constants.RoleCitizen, "Otro Ciudadano")

	_, err := f.svc.RateReport(ctx, report.ID, dto.RateReportDTO{Rating: 5})

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 403, httpErr.Code)
}

func TestRateReportNotResolved(t *testing.T) {
	f := newReportServiceFixture()
	report := seedReport(f, constants.StatusInProgress)
	f.reportRepo.rateAffected = 0
	ctx := ctxWithUser(report.UserID, constants.RoleCitizen, "Ana Gómez")

	_, err := f.svc.RateReport(ctx, report.ID, dto.RateReportDTO{Rating: 4})

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 400, httpErr.Code)
}

func TestRateReportAlreadyRatedConflict(t *testing.T) {
	f := newReportServiceFixture()
	report := seedReport(f, constants.StatusResolved)
	report.CitizenRating = null.IntFrom(5)
	f.reportRepo.rateAffected = 0
	ctx := ctxWithUser(report.UserID, constants.RoleCitizen, "Ana Gómez")

	_, err := f.svc.RateReport(ctx, report.ID, dto.RateReportDTO{Rating: 1})

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 409, httpErr.Code)
}

func TestRateReportSuccess(t *testing.T) {
	f := newReportServiceFixture()
	report := seedReport(f, constants.StatusResolved)
	f.reportRepo.rateAffected = 1
	ctx := ctxWithUser(report.UserID, constants.RoleCitizen, "Ana Gómez")

	rated, err := f.svc.RateReport(ctx, report.ID, dto.RateReportDTO{Rating: 4, Comment: "Buen servicio"})
	require.NoError(t, err)
	require.NotNil(t, rated.CitizenRating)
	assert.Equal(t, 4, *rated.CitizenRating)
	assert.Equal(t, "Buen servicio", rated.CitizenComment)
}

func TestGetReportsScopes(t *testing.T) {
	f := newReportServiceFixture()

	adminCtx := ctxWithUser(uuid.New(), constants.RoleAdmin, "Carlos Ruiz")
	_, err := f.svc.GetReports(adminCtx, types.Filter{})
	require.NoError(t, err)
	assert.Nil(t, f.reportRepo.lastScope.UserID)
	assert.False(t, f.reportRepo.lastScope.CategoriesEnforced)

	citizenID := uuid.New()
	citizenCtx := ctxWithUser(citizenID, constants.RoleCitizen, "Ana Gómez")
	_, err = f.svc.GetReports(citizenCtx, types.Filter{})
	require.NoError(t, err)
	require.NotNil(t, f.reportRepo.lastScope.UserID)
	assert.Equal(t, citizenID, *f.reportRepo.lastScope.UserID)

	entityUserID := uuid.New()
	f.entityRepo.add(&entities.Entity{
		ID:     uuid.New(),
		UserID: entityUserID,
		Name:   "Empresa de Energía",
		Status: constants.EntityApproved,
	})
	entityCtx := ctxWithUser(entityUserID, constants.RoleEntity, "Empresa de Energía")
	_, err = f.svc.GetReports(entityCtx, types.Filter{})
	require.NoError(t, err)
	// An entity with no subscriptions still gets an enforced empty scope.
	assert.True(t, f.reportRepo.lastScope.CategoriesEnforced)
	assert.Empty(t, f.reportRepo.lastScope.CategoryIDs)
}

func TestAddCommentCitizenAlwaysPublic(t *testing.T) {
	f := newReportServiceFixture()
	report := seedReport(f, constants.StatusInReview)
	ctx := ctxWithUser(report.UserID, constants.RoleCitizen, "Ana Gómez")

	private := false
	comment, err := f.svc.AddComment(ctx, report.ID, dto.CreateReportCommentDTO{
		Comment:  "¿Hay avances?",
		IsPublic: &private,
	})
	require.NoError(t, err)
	assert.True(t, comment.IsPublic)
	assert.False(t, comment.IsInternal)
}

func TestAddCommentStaffInternalFlag(t *testing.T) {
	f := newReportServiceFixture()
	report := seedReport(f, constants.StatusInReview)
	ctx := ctxWithUser(uuid.New(), constants.RoleAdmin, "Carlos Ruiz")

	private := false
	comment, err := f.svc.AddComment(ctx, report.ID, dto.CreateReportCommentDTO{
		Comment:  "Nota interna de seguimiento",
		IsPublic: &private,
	})
	require.NoError(t, err)
	assert.False(t, comment.IsPublic)
	assert.True(t, comment.IsInternal)
}

func TestGetCommentsCitizenSeesPublicOnly(t *testing.T) {
	f := newReportServiceFixture()
	report := seedReport(f, constants.StatusInReview)

	f.comments.comments = []*entities.ReportComment{
		{ID: uuid.New(), ReportID: report.ID, UserID: uuid.New(), UserName: "Administrador", Comment: "Nota interna", IsPublic: false},
		{ID: uuid.New(), ReportID: report.ID, UserID: report.UserID, UserName: "Ana Gómez", Comment: "¿Hay avances?", IsPublic: true},
	}

	citizenCtx := ctxWithUser(report.UserID, constants.RoleCitizen, "Ana Gómez")
	visible, err := f.svc.GetComments(citizenCtx, report.ID)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "¿Hay avances?", visible[0].Comment)

	adminCtx := ctxWithUser(uuid.New(), constants.RoleAdmin, "Carlos Ruiz")
	all, err := f.svc.GetComments(adminCtx, report.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestFindReportProjectsCategoryReference(t *testing.T) {
	f := newReportServiceFixture()
	report := seedReport(f, constants.StatusReceived)
	ctx := ctxWithUser(report.UserID, constants.RoleCitizen, "Ana Gómez")

	found, err := f.svc.FindReport(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alumbrado Público", found.CategoryName)
	assert.Equal(t, "#f59e0b", found.CategoryColor)
}

func TestGetAttachmentsIncludesCreationFiles(t *testing.T) {
	f := newReportServiceFixture()
	report := seedReport(f, constants.StatusInProgress)
	ctx := ctxWithUser(uuid.New(), constants.RoleAdmin, "Carlos Ruiz")

	f.attach.files = []*entities.ReportFile{
		{ID: uuid.New(), ReportID: report.ID, FilePath: "uploads/" + report.ID.String() + "/bache.jpg", CreatedAt: time.Now()},
	}
	f.attach.attachments = []*entities.ReportAttachment{
		{
			ID:             uuid.New(),
			ReportID:       report.ID,
			UploadedBy:     uuid.New(),
			FilePath:       "uploads/" + report.ID.String() + "/avance.pdf",
			FileName:       "avance.pdf",
			FileType:       constants.FileTypeDocument,
			AttachmentType: constants.AttachmentProgress,
			CreatedAt:      time.Now(),
		},
	}

	all, err := f.svc.GetAttachments(ctx, report.ID)
	require.NoError(t, err)
	require.Len(t, all, 2)

	initial := all[0]
	assert.Equal(t, constants.AttachmentInitial, initial.AttachmentType)
	assert.Equal(t, "bache.jpg", initial.FileName)
	assert.Equal(t, constants.FileTypeImage, initial.FileType)
	assert.Equal(t, report.UserID.String(), initial.UploadedBy)

	assert.Equal(t, constants.AttachmentProgress, all[1].AttachmentType)
}

func TestGetStatsAggregatesTotals(t *testing.T) {
	f := newReportServiceFixture()
	ctx := ctxWithUser(uuid.New(), constants.RoleAdmin, "Carlos Ruiz")

	stats, err := f.svc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), stats.Total)
	assert.Equal(t, uint64(1), stats.CriticalOpen)
	assert.InDelta(t, 4.5, stats.AverageRating, 0.001)
}
