package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mmynk/spendwise/internal/errs"
	"github.com/mmynk/spendwise/internal/models"
	"github.com/mmynk/spendwise/internal/storage"
)

// requireActiveUser resolves the acting user. A missing or soft-deleted
// account is Unauthorized.
func requireActiveUser(ctx context.Context, users storage.UserStore, userID string) (*models.User, error) {
	if userID == "" {
		return nil, errs.Unauthorizedf("authentication required")
	}
	user, err := users.GetUserByID(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, errs.Unauthorizedf("user %s does not exist", userID)
	}
	if err != nil {
		slog.ErrorContext(ctx, "GetUserByID failed", "error", err, "user_id", userID)
		return nil, errs.Server(err, "failed to load user")
	}
	if !user.IsActive() {
		return nil, errs.Unauthorizedf("user %s is deleted", userID)
	}
	return user, nil
}
