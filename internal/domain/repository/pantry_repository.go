// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers
// and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"pantry/internal/domain/entity"
)

// ErrPantryNotFound is returned when a pantry document does not exist.
var ErrPantryNotFound = errors.New("pantry not found")

// ErrUnavailable is returned when the document store cannot be reached.
// The usecase layer maps it onto the RemoteUnavailable application error.
var ErrUnavailable = errors.New("document store unavailable")

// ErrNotInTransaction is returned by operations that cannot run inside a
// store transaction, such as opening a watch.
var ErrNotInTransaction = errors.New("operation not supported in a transaction")

// PantrySnapshot is one full-document push notification from the store.
// Exists is false when the document has been deleted remotely; Pantry is nil
// in that case, and ID still identifies the deleted document.
type PantrySnapshot struct {
	ID     string
	Pantry *entity.Pantry
	Exists bool
}

// CancelFunc tears down a watch. It must be invoked exactly once when the
// subscription is no longer needed; a forgotten cancel leaks a live listener.
type CancelFunc func()

// PantryRepository defines the standard operations for pantry persistence.
type PantryRepository interface {
	// Create persists a new pantry document keyed by its client-generated id.
	Create(ctx context.Context, pantry *entity.Pantry) error

	// FindByID retrieves a single pantry, or ErrPantryNotFound.
	FindByID(ctx context.Context, id string) (*entity.Pantry, error)

	// FindByInviteCode resolves an active invite code to its pantry, or
	// ErrPantryNotFound when no pantry carries the code.
	FindByInviteCode(ctx context.Context, code string) (*entity.Pantry, error)

	// Update overwrites the whole pantry document.
	Update(ctx context.Context, pantry *entity.Pantry) error

	// UpdateLists writes both item collections and the updatedAt stamp in a
	// single document write, so a move is atomic to every reader.
	UpdateLists(ctx context.Context, id string, inStock, shoppingList []entity.Item) error

	// Delete removes the pantry document. No soft delete.
	Delete(ctx context.Context, id string) error

	// Watch opens a snapshot subscription on a single pantry document. The
	// channel is closed after cancellation or a terminal stream error.
	Watch(ctx context.Context, id string) (<-chan PantrySnapshot, CancelFunc, error)

	// WatchByMember opens a snapshot subscription on the set of pantries the
	// given user is a member of, server-side filtered by membership.
	WatchByMember(ctx context.Context, userID string) (<-chan []*entity.Pantry, CancelFunc, error)
}
