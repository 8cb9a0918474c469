package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"urbanreport/internal/dto"
	"urbanreport/internal/entities"
	"urbanreport/pkg/constants"
	apperrors "urbanreport/pkg/errors"
	"urbanreport/pkg/service"
)

type fakeUserRepo struct {
	byID    map[uuid.UUID]*entities.User
	byEmail map[string]*entities.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[uuid.UUID]*entities.User),
		byEmail: make(map[string]*entities.User),
	}
}

func (f *fakeUserRepo) add(u *entities.User) {
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *entities.User) (*entities.User, error) {
	if _, exists := f.byEmail[user.Email]; exists {
		return nil, apperrors.NewConflictError("Ya existe una cuenta con ese correo electrónico")
	}
	user.CreatedAt = time.Now()
	f.add(user)
	return user, nil
}

func (f *fakeUserRepo) FindUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return u, nil
}

type fakeSessionRepo struct {
	tokens map[uuid.UUID]string
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{tokens: make(map[uuid.UUID]string)}
}

func (f *fakeSessionRepo) SaveRefreshToken(ctx context.Context, userID uuid.UUID, token string, ttl time.Duration) error {
	f.tokens[userID] = token
	return nil
}

func (f *fakeSessionRepo) GetRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	token, ok := f.tokens[userID]
	if !ok {
		return "", apperrors.ErrTokenExpired
	}
	return token, nil
}

func (f *fakeSessionRepo) DeleteRefreshToken(ctx context.Context, userID uuid.UUID) error {
	delete(f.tokens, userID)
	return nil
}

type authServiceFixture struct {
	svc        AuthServiceInterface
	userRepo   *fakeUserRepo
	entityRepo *fakeEntityRepo
	sessions   *fakeSessionRepo
	jwtSvc     service.JWTService
}

func newAuthServiceFixture() *authServiceFixture {
	f := &authServiceFixture{
		userRepo:   newFakeUserRepo(),
		entityRepo: newFakeEntityRepo(),
		sessions:   newFakeSessionRepo(),
		jwtSvc:     service.NewJWTService("clave-de-prueba", time.Hour, 24*time.Hour, zap.NewNop()),
	}
	f.svc = NewAuthService(f.userRepo, f.entityRepo, f.sessions, f.jwtSvc, nil, zap.NewNop())
	return f
}

func seedUser(f *authServiceFixture, role, password string) *entities.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	user := &entities.User{
		ID:           uuid.New(),
		FullName:     "Ana Gómez",
		Email:        "ana@example.com",
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	f.userRepo.add(user)
	return user
}

func TestLoginWrongPassword(t *testing.T) {
	f := newAuthServiceFixture()
	seedUser(f, constants.RoleCitizen, "secreta123")

	_, err := f.svc.Login(context.Background(), dto.LoginDTO{
		Email:    "ana@example.com",
		Password: "equivocada",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	f := newAuthServiceFixture()

	_, err := f.svc.Login(context.Background(), dto.LoginDTO{
		Email:    "nadie@example.com",
		Password: "loquesea1",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginCitizenIssuesTokenPair(t *testing.T) {
	f := newAuthServiceFixture()
	user := seedUser(f, constants.RoleCitizen, "secreta123")

	pair, err := f.svc.Login(context.Background(), dto.LoginDTO{
		Email:    "ana@example.com",
		Password: "secreta123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, user.ID.String(), pair.User.ID)
	assert.Equal(t, pair.RefreshToken, f.sessions.tokens[user.ID])

	claims, err := f.jwtSvc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.False(t, claims.IsRefreshToken)
}

func TestLoginPendingEntityBlocked(t *testing.T) {
	f := newAuthServiceFixture()
	user := seedUser(f, constants.RoleEntity, "secreta123")
	f.entityRepo.add(&entities.Entity{
		ID:     uuid.New(),
		UserID: user.ID,
		Name:   "Empresa de Acueducto",
		Status: constants.EntityPending,
	})

	_, err := f.svc.Login(context.Background(), dto.LoginDTO{
		Email:    "ana@example.com",
		Password: "secreta123",
	})

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 403, httpErr.Code)
	assert.Equal(t, "Tu cuenta está pendiente de aprobación por un administrador.", httpErr.Message)
}

func TestLoginRejectedEntityBlockedWithReason(t *testing.T) {
	f := newAuthServiceFixture()
	user := seedUser(f, constants.RoleEntity, "secreta123")
	entity := &entities.Entity{
		ID:     uuid.New(),
		UserID: user.ID,
		Name:   "Empresa de Acueducto",
		Status: constants.EntityRejected,
	}
	entity.RejectionReason.SetValid("Documentación incompleta")
	f.entityRepo.add(entity)

	_, err := f.svc.Login(context.Background(), dto.LoginDTO{
		Email:    "ana@example.com",
		Password: "secreta123",
	})

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 403, httpErr.Code)
	assert.Contains(t, httpErr.Message, "Motivo: Documentación incompleta")
}

func TestLoginApprovedEntitySucceeds(t *testing.T) {
	f := newAuthServiceFixture()
	user := seedUser(f, constants.RoleEntity, "secreta123")
	f.entityRepo.add(&entities.Entity{
		ID:     uuid.New(),
		UserID: user.ID,
		Name:   "Empresa de Acueducto",
		Status: constants.EntityApproved,
	})

	pair, err := f.svc.Login(context.Background(), dto.LoginDTO{
		Email:    "ana@example.com",
		Password: "secreta123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	f := newAuthServiceFixture()
	user := seedUser(f, constants.RoleCitizen, "secreta123")

	accessToken, _, err := f.jwtSvc.GenerateTokens(user.ID, user.Role, user.FullName)
	require.NoError(t, err)

	_, err = f.svc.Refresh(context.Background(), accessToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenIsNotRefresh)
}

func TestRefreshRejectsRotatedToken(t *testing.T) {
	f := newAuthServiceFixture()
	seedUser(f, constants.RoleCitizen, "secreta123")

	pair, err := f.svc.Login(context.Background(), dto.LoginDTO{
		Email:    "ana@example.com",
		Password: "secreta123",
	})
	require.NoError(t, err)

	// Rotating invalidates the previous refresh token.
	rotated, err := f.svc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, rotated.RefreshToken)

	if rotated.RefreshToken != pair.RefreshToken {
		_, err = f.svc.Refresh(context.Background(), pair.RefreshToken)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	}
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	f := newAuthServiceFixture()
	seedUser(f, constants.RoleCitizen, "secreta123")

	_, err := f.svc.Register(context.Background(), dto.RegisterDTO{
		FullName: "Ana Gómez",
		Email:    "ana@example.com",
		Password: "secreta123",
	})

	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 409, httpErr.Code)
}

func TestRegisterEntityStartsPending(t *testing.T) {
	f := newAuthServiceFixture()

	entity, err := f.svc.RegisterEntity(context.Background(), dto.RegisterEntityDTO{
		EntityName:   "Empresa de Acueducto",
		NIT:          "900123456-7",
		ContactName:  "Juan Pérez",
		ContactEmail: "contacto@acueducto.example.com",
		Password:     "secreta123",
	}, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, constants.EntityPending, entity.Status)
	assert.Empty(t, entity.Categories)

	user, err := f.userRepo.FindUserByEmail(context.Background(), "contacto@acueducto.example.com")
	require.NoError(t, err)
	assert.Equal(t, constants.RoleEntity, user.Role)
}
