package usecase

import (
	"context"

	"pantry/internal/domain/entity"
	"pantry/internal/domain/identity"
)

// UpdatePreferencesInput defines a partial preferences update.
type UpdatePreferencesInput struct {
	Language        *string `json:"language,omitempty"`
	DefaultPantryID *string `json:"defaultPantryId,omitempty"`
}

// UserUsecase manages the account document, which lives independently from
// any pantry.
type UserUsecase interface {
	// EnsureUser creates the account document on first sign-in and returns it.
	EnsureUser(ctx context.Context, id identity.Identity) (*entity.User, error)

	// GetUser returns the signed-in user's account document.
	GetUser(ctx context.Context) (*entity.User, error)

	// UpdatePreferences applies a partial preferences update.
	UpdatePreferences(ctx context.Context, input *UpdatePreferencesInput) error
}
