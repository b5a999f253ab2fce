package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/notes-api/internal/domain"
	"github.com/phrazzld/notes-api/internal/platform/logger"
	"github.com/phrazzld/notes-api/internal/store"
)

// TokenPair is the result of a successful login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Service authenticates users and issues tokens for them.
type Service interface {
	// Login checks the credentials of an active user and issues a token pair.
	// Returns ErrInvalidCredentials for an unknown or inactive user or a wrong password.
	Login(ctx context.Context, username, password string) (*TokenPair, error)

	// Refresh exchanges a valid refresh token for a new access token.
	// Token problems are returned as is from ValidateRefreshToken; a user that
	// no longer exists or was deactivated yields ErrInvalidCredentials.
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

type authService struct {
	users    store.UserStore
	verifier PasswordVerifier
	tokens   JWTService
	logger   *slog.Logger
}

// NewService creates an authentication Service.
func NewService(users store.UserStore, verifier PasswordVerifier, tokens JWTService, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &authService{
		users:    users,
		verifier: verifier,
		tokens:   tokens,
		logger:   logger.With("component", "auth_service"),
	}
}

func (s *authService) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("login for unknown user", "username", username)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.Active {
		log.Debug("login for inactive user", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		log.Debug("login with wrong password", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	access, err := s.tokens.GenerateToken(ctx, user.Username, domain.RoleStrings(user.Roles))
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.GenerateRefreshToken(ctx, user.Username)
	if err != nil {
		return nil, err
	}

	log.Info("user logged in", "user_id", user.ID)
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	claims, err := s.tokens.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		return "", err
	}

	user, err := s.users.GetByUsername(ctx, claims.Username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("refresh for a user that no longer exists", "username", claims.Username)
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}
	if !user.Active {
		return "", ErrInvalidCredentials
	}

	return s.tokens.GenerateToken(ctx, user.Username, domain.RoleStrings(user.Roles))
}
