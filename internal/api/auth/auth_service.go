package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/akua-travel/akua-api/config"
	"github.com/akua-travel/akua-api/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service defines the business logic contract for authentication.
type Service interface {
	Register(ctx context.Context, username, email, password string) error
	Login(ctx context.Context, email, password string) (string, string, error) // accessToken, refreshToken, error
	RefreshSession(ctx context.Context, refreshToken string) (string, string, error)
	Logout(ctx context.Context, refreshToken string) error
}

type ServiceImpl struct {
	logger    *slog.Logger
	repo      Repository
	secretKey []byte
	cfg       *config.Config
}

func NewService(repo Repository, cfg *config.Config, secretKey []byte, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:    logger,
		repo:      repo,
		secretKey: secretKey,
		cfg:       cfg,
	}
}

func (s *ServiceImpl) Register(ctx context.Context, username, email, password string) error {
	if username == "" || email == "" || len(password) < 8 {
		return fmt.Errorf("%w: username, email and a password of at least 8 characters are required", types.ErrValidation)
	}
	hash, err := HashPassword(password)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to hash password", slog.Any("error", err))
		return err
	}
	if err := s.repo.CreateUser(ctx, username, email, hash); err != nil {
		s.logger.ErrorContext(ctx, "Failed to create user", slog.Any("error", err))
		return err
	}
	return nil
}

func (s *ServiceImpl) Login(ctx context.Context, email, password string) (string, string, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return "", "", errors.New("invalid credentials")
		}
		return "", "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", "", errors.New("invalid credentials")
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken := uuid.NewString()
	expiresAt := time.Now().Add(s.cfg.JWT.RefreshTokenTTL)
	if err := s.repo.StoreRefreshToken(ctx, user.ID, refreshToken, expiresAt); err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func (s *ServiceImpl) RefreshSession(ctx context.Context, refreshToken string) (string, string, error) {
	userID, err := s.repo.GetRefreshTokenOwner(ctx, refreshToken)
	if err != nil {
		return "", "", errors.New("invalid or expired refresh token")
	}

	// Rotate: invalidate the used token and issue a fresh pair
	if err := s.repo.InvalidateRefreshToken(ctx, refreshToken); err != nil {
		return "", "", err
	}

	accessToken, err := s.generateAccessToken(&types.UserAuth{ID: userID})
	if err != nil {
		return "", "", fmt.Errorf("failed to generate access token: %w", err)
	}

	newRefreshToken := uuid.NewString()
	expiresAt := time.Now().Add(s.cfg.JWT.RefreshTokenTTL)
	if err := s.repo.StoreRefreshToken(ctx, userID, newRefreshToken, expiresAt); err != nil {
		return "", "", err
	}

	return accessToken, newRefreshToken, nil
}

func (s *ServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if err := s.repo.InvalidateRefreshToken(ctx, refreshToken); err != nil {
		s.logger.ErrorContext(ctx, "Failed to invalidate refresh token", slog.Any("error", err))
		return err
	}
	return nil
}

func (s *ServiceImpl) generateAccessToken(user *types.UserAuth) (string, error) {
	now := time.Now()
	claims := types.Claims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWT.AccessTokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}
