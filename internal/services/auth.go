package services

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"garment-oms/internal/dto"
	"garment-oms/internal/entities"
	"garment-oms/internal/repositories"
	apperrors "garment-oms/pkg/errors"
	"garment-oms/pkg/service"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error)
	Refresh(ctx context.Context, payload dto.RefreshDTO) (*dto.TokenPairDTO, error)
	Me(ctx context.Context, userID uint64) (*dto.UserDTO, error)
}

type AuthService struct {
	userRepo   repositories.UserRepositoryInterface
	jwtService service.JWTService
	logger     *zap.Logger
}

func NewAuthService(userRepo repositories.UserRepositoryInterface, jwtService service.JWTService, logger *zap.Logger) *AuthService {
	return &AuthService{userRepo: userRepo, jwtService: jwtService, logger: logger}
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error) {
	user, err := s.userRepo.FindByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)); err != nil {
		s.logger.Warn("failed login attempt", zap.String("email", payload.Email))
		return nil, apperrors.ErrInvalidCredentials
	}

	access, refresh, err := s.jwtService.GenerateTokens(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user logged in", zap.Uint64("user_id", user.ID), zap.String("role", user.Role))
	return &dto.TokenPairDTO{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) Refresh(ctx context.Context, payload dto.RefreshDTO) (*dto.TokenPairDTO, error) {
	claims, err := s.jwtService.ValidateToken(payload.RefreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	// The user may have been removed since the token was issued.
	user, err := s.userRepo.FindUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}

	access, refresh, err := s.jwtService.GenerateTokens(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &dto.TokenPairDTO{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) Me(ctx context.Context, userID uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return userToDTO(user), nil
}

func userToDTO(u *entities.User) *dto.UserDTO {
	return &dto.UserDTO{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Role:     u.Role,
		ClientID: u.ClientID,
	}
}
