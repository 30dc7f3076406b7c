package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered user account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Username is the unique handle used as the participant key when
	// splitting group expenses.
	Username string

	// DisplayName is the name shown in the UI.
	DisplayName string

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last account change.
	UpdatedAt int64

	// DeletedAt is the Unix timestamp of the soft delete, or 0 while the
	// account is active.
	DeletedAt int64
}

// NewUser creates a new user with a generated ID and timestamps.
func NewUser(username, displayName, passwordHash string) *User {
	now := time.Now().Unix()
	return &User{
		ID:           uuid.New().String(),
		Username:     username,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsDeleted reports whether the account has been soft-deleted.
func (u *User) IsDeleted() bool {
	return u.DeletedAt != 0
}

// IsActive reports whether u refers to an existing, non-deleted account.
func (u *User) IsActive() bool {
	return u != nil && !u.IsDeleted()
}
