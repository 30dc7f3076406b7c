package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mmynk/spendwise/internal/auth"
	"github.com/mmynk/spendwise/internal/errs"
	"github.com/mmynk/spendwise/internal/models"
	"github.com/mmynk/spendwise/internal/storage"
)

// AuthService registers users and issues their session tokens.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	users         storage.UserStore
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, users storage.UserStore, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		users:         users,
		logger:        logger,
	}
}

// Register creates a new user account and returns it with a token.
func (s *AuthService) Register(ctx context.Context, username, displayName, password string) (*models.User, string, error) {
	s.logger.InfoContext(ctx, "Register request", "username", username)

	user, err := s.authenticator.Register(ctx, username, displayName, password)
	if err != nil {
		s.logger.WarnContext(ctx, "Registration failed", "username", username, "error", err)
		switch {
		case errors.Is(err, auth.ErrUsernameExists):
			return nil, "", errs.Conflictf("%v", err)
		case errors.Is(err, auth.ErrWeakPassword), errors.Is(err, auth.ErrInvalidUsername):
			return nil, "", errs.Validationf("%v", err)
		}
		return nil, "", errs.Server(err, "failed to register")
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to generate token", "user_id", user.ID, "error", err)
		return nil, "", errs.Server(err, "failed to generate token")
	}

	s.logger.InfoContext(ctx, "User registered successfully", "user_id", user.ID, "username", user.Username)
	return user, token, nil
}

// Login authenticates a user and returns a JWT token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	s.logger.InfoContext(ctx, "Login request", "username", username)

	if username == "" || password == "" {
		return nil, "", errs.Validationf("username and password are required")
	}

	user, err := s.authenticator.Authenticate(ctx, username, password)
	if err != nil {
		s.logger.WarnContext(ctx, "Login failed", "username", username, "error", err)
		return nil, "", errs.Unauthorizedf("%v", auth.ErrInvalidCredentials)
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to generate token", "user_id", user.ID, "error", err)
		return nil, "", errs.Server(err, "failed to generate token")
	}

	s.logger.InfoContext(ctx, "User logged in successfully", "user_id", user.ID)
	return user, token, nil
}

// DeleteAccount soft-deletes the user. Their splits and expenses are kept,
// but the account can no longer be used.
func (s *AuthService) DeleteAccount(ctx context.Context, userID string) error {
	if _, err := requireActiveUser(ctx, s.users, userID); err != nil {
		return err
	}

	if err := s.users.SoftDeleteUser(ctx, userID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errs.Unauthorizedf("user %s is deleted", userID)
		}
		s.logger.ErrorContext(ctx, "DeleteAccount failed", "user_id", userID, "error", err)
		return errs.Server(err, "failed to delete account")
	}

	s.logger.InfoContext(ctx, "Account deleted", "user_id", userID)
	return nil
}
