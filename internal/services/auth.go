package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/MakMD/floor-boss-work-sub000/internal/dto"
	"github.com/MakMD/floor-boss-work-sub000/internal/repositories"
	apperrors "github.com/MakMD/floor-boss-work-sub000/pkg/errors"
	"github.com/MakMD/floor-boss-work-sub000/pkg/service"
	"github.com/MakMD/floor-boss-work-sub000/pkg/utils"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, in dto.LoginDTO) (*dto.AuthResultDTO, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairDTO, error)
}

type AuthService struct {
	workerRepo repositories.WorkerRepositoryInterface
	jwtSvc     service.JWTService
	roleSvc    *WorkerRoleService
	logger     *zap.Logger
}

func NewAuthService(
	workerRepo repositories.WorkerRepositoryInterface,
	jwtSvc service.JWTService,
	roleSvc *WorkerRoleService,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{workerRepo: workerRepo, jwtSvc: jwtSvc, roleSvc: roleSvc, logger: logger}
}

func (s *AuthService) Login(ctx context.Context, in dto.LoginDTO) (*dto.AuthResultDTO, error) {
	worker, err := s.workerRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Same error as a wrong password so the response does not leak
			// which emails exist.
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := utils.ComparePasswords(worker.PasswordHash, in.Password); err != nil {
		s.logger.Warn("failed login attempt", zap.String("email", in.Email))
		return nil, apperrors.ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.jwtSvc.GenerateTokens(worker.ID, worker.Role)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResultDTO{
		Tokens: dto.TokenPairDTO{AccessToken: accessToken, RefreshToken: refreshToken},
		Worker: dto.WorkerDTO{ID: worker.ID, Name: worker.Name, Email: worker.Email, Role: worker.Role},
	}, nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairDTO, error) {
	claims, err := s.jwtSvc.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	// Re-read the worker so a role change or removal invalidates the pair.
	worker, err := s.workerRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, err
	}

	accessToken, newRefreshToken, err := s.jwtSvc.GenerateTokens(worker.ID, worker.Role)
	if err != nil {
		return nil, err
	}

	// The new pair carries the role just read from the database; drop any
	// cached copy so the middleware resolves the same value.
	if s.roleSvc != nil {
		s.roleSvc.InvalidateRole(ctx, worker.ID)
	}

	return &dto.TokenPairDTO{AccessToken: accessToken, RefreshToken: newRefreshToken}, nil
}
