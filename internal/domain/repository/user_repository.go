package repository

import (
	"context"
	"errors"

	"pantry/internal/domain/entity"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user document persistence.
type UserRepository interface {
	// FindByID retrieves a single user by their provider-assigned id.
	FindByID(ctx context.Context, id string) (*entity.User, error)

	// Create persists a new user document.
	Create(ctx context.Context, user *entity.User) error

	// Update overwrites an existing user document.
	Update(ctx context.Context, user *entity.User) error
}
