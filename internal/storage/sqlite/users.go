package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/spendwise/internal/models"
	"github.com/mmynk/spendwise/internal/storage"
)

const userColumns = "id, username, display_name, password_hash, created_at, updated_at, deleted_at"

// CreateUser inserts a new user into the database.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt == 0 {
		user.CreatedAt = time.Now().Unix()
		user.UpdatedAt = user.CreatedAt
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users ("+userColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
		user.ID, user.Username, user.DisplayName, user.PasswordHash,
		user.CreatedAt, user.UpdatedAt, user.DeletedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("username %q: %w", user.Username, storage.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUserByID retrieves a user by their ID, including soft-deleted users.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, notFound("user", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

// GetUserByUsername retrieves a user by their username, including soft-deleted users.
func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username = ?", username))
	if err == sql.ErrNoRows {
		return nil, notFound("user", username)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

// GetUsersByUsernames retrieves multiple users by username.
// Returns a map of username to User; unknown usernames are omitted.
func (s *SQLiteStore) GetUsersByUsernames(ctx context.Context, names []string) (map[string]*models.User, error) {
	users, err := s.queryUsers(ctx, "username", names)
	if err != nil {
		return nil, fmt.Errorf("failed to get users by username: %w", err)
	}
	byName := make(map[string]*models.User, len(users))
	for _, u := range users {
		byName[u.Username] = u
	}
	return byName, nil
}

// GetUsersByIDs retrieves multiple users by their IDs.
// Returns a map of user ID to User; unknown IDs are omitted.
func (s *SQLiteStore) GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	users, err := s.queryUsers(ctx, "id", ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get users by IDs: %w", err)
	}
	byID := make(map[string]*models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID, nil
}

// SoftDeleteUser marks a user as deleted without removing the row.
func (s *SQLiteStore) SoftDeleteUser(ctx context.Context, id string) error {
	now := time.Now().Unix()
	result, err := s.db.ExecContext(ctx,
		"UPDATE users SET deleted_at = ?, updated_at = ? WHERE id = ? AND deleted_at = 0",
		now, now, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return notFound("user", id)
	}
	return nil
}

// queryUsers selects users whose column matches any of values.
func (s *SQLiteStore) queryUsers(ctx context.Context, column string, values []string) ([]*models.User, error) {
	if len(values) == 0 {
		return nil, nil
	}

	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE "+column+" IN ("+placeholders(len(values))+")",
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}

func scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.DisplayName,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}
