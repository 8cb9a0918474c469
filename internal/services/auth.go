package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"urbanreport/internal/dto"
	"urbanreport/internal/entities"
	"urbanreport/internal/repositories"
	"urbanreport/pkg/constants"
	apperrors "urbanreport/pkg/errors"
	"urbanreport/pkg/filestorage"
	"urbanreport/pkg/service"
	"urbanreport/pkg/utils"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, payload dto.RegisterDTO) (*dto.TokenPairDTO, error)
	RegisterEntity(ctx context.Context, payload dto.RegisterEntityDTO, rutFile, chamberFile *multipart.FileHeader) (*dto.EntityDTO, error)
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairDTO, error)
	Logout(ctx context.Context) error
}

type authService struct {
	userRepo    repositories.UserRepositoryInterface
	entityRepo  repositories.EntityRepositoryInterface
	sessionRepo repositories.SessionRepositoryInterface
	jwtService  service.JWTService
	fileStorage filestorage.FileStorageInterface
	logger      *zap.Logger
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	entityRepo repositories.EntityRepositoryInterface,
	sessionRepo repositories.SessionRepositoryInterface,
	jwtService service.JWTService,
	fileStorage filestorage.FileStorageInterface,
	logger *zap.Logger,
) AuthServiceInterface {
	return &authService{
		userRepo:    userRepo,
		entityRepo:  entityRepo,
		sessionRepo: sessionRepo,
		jwtService:  jwtService,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

func (s *authService) issueTokens(ctx context.Context, user *entities.User) (*dto.TokenPairDTO, error) {
	accessToken, refreshToken, err := s.jwtService.GenerateTokens(user.ID, user.Role, user.FullName)
	if err != nil {
		return nil, err
	}

	if err := s.sessionRepo.SaveRefreshToken(ctx, user.ID, refreshToken, s.jwtService.GetRefreshTokenTTL()); err != nil {
		return nil, err
	}

	return &dto.TokenPairDTO{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         toUserDTO(user),
	}, nil
}

func (s *authService) Register(ctx context.Context, payload dto.RegisterDTO) (*dto.TokenPairDTO, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		ID:           uuid.New(),
		FullName:     payload.FullName,
		Email:        payload.Email,
		PasswordHash: string(hash),
		Role:         constants.RoleCitizen,
		IsActive:     true,
	}
	if payload.Phone != "" {
		user.Phone = null.StringFrom(payload.Phone)
	}

	created, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, created)
}

// RegisterEntity creates the entity account in pending state. No tokens are
// issued; the entity cannot log in until an admin approves it.
func (s *authService) RegisterEntity(ctx context.Context, payload dto.RegisterEntityDTO, rutFile, chamberFile *multipart.FileHeader) (*dto.EntityDTO, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		ID:           uuid.New(),
		FullName:     payload.ContactName,
		Email:        payload.ContactEmail,
		PasswordHash: string(hash),
		Role:         constants.RoleEntity,
		IsActive:     true,
	}
	if payload.Phone != "" {
		user.Phone = null.StringFrom(payload.Phone)
	}

	createdUser, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	entity := &entities.Entity{
		ID:           uuid.New(),
		UserID:       createdUser.ID,
		Name:         payload.EntityName,
		NIT:          payload.NIT,
		ContactEmail: payload.ContactEmail,
		Status:       constants.EntityPending,
		Categories:   []uuid.UUID{},
	}
	if payload.Phone != "" {
		entity.Phone = null.StringFrom(payload.Phone)
	}

	if path, err := s.saveDocument(entity.ID, rutFile); err == nil && path != "" {
		entity.RutPath = null.StringFrom(path)
	} else if err != nil {
		s.logger.Warn("no se pudo guardar el documento RUT", zap.Error(err))
	}
	if path, err := s.saveDocument(entity.ID, chamberFile); err == nil && path != "" {
		entity.ChamberPath = null.StringFrom(path)
	} else if err != nil {
		s.logger.Warn("no se pudo guardar el certificado de cámara", zap.Error(err))
	}

	created, err := s.entityRepo.CreateEntity(ctx, entity)
	if err != nil {
		return nil, err
	}

	result := toEntityDTO(created)
	return &result, nil
}

func (s *authService) saveDocument(entityID uuid.UUID, f *multipart.FileHeader) (string, error) {
	if f == nil {
		return "", nil
	}
	src, err := f.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()
	return s.fileStorage.Save(src, f.Filename, "entities/"+entityID.String())
}

func (s *authService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.NewForbiddenError("Tu cuenta está desactivada")
	}

	// Entities cannot log in until their registration was approved.
	if user.Role == constants.RoleEntity {
		entity, err := s.entityRepo.FindEntityByUserID(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		switch entity.Status {
		case constants.EntityPending:
			return nil, apperrors.NewHttpError(http.StatusForbidden,
				"Tu cuenta está pendiente de aprobación por un administrador.", apperrors.ErrForbidden, nil)
		case constants.EntityRejected:
			return nil, apperrors.NewHttpError(http.StatusForbidden,
				fmt.Sprintf("Tu solicitud de registro fue rechazada. Motivo: %s", nullString(entity.RejectionReason)),
				apperrors.ErrForbidden, nil)
		}
	}

	return s.issueTokens(ctx, user)
}

// Refresh rotates the token pair. The presented refresh token must match
// the one stored for the user; anything else invalidates the attempt.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairDTO, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	stored, err := s.sessionRepo.GetRefreshToken(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if stored != refreshToken {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) Logout(ctx context.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return err
	}
	return s.sessionRepo.DeleteRefreshToken(ctx, userID)
}
