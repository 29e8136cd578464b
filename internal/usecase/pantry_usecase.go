// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"pantry/internal/domain/entity"
	"pantry/internal/domain/repository"
)

// SyncStatus describes how the local projection relates to the remote store.
type SyncStatus string

const (
	// SyncStatusSynced means the projection reflects the last known remote state.
	SyncStatusSynced SyncStatus = "synced"
	// SyncStatusSyncing means an optimistic write is awaiting acknowledgment.
	SyncStatusSyncing SyncStatus = "syncing"
	// SyncStatusError means the subscription feed is broken or the selected
	// pantry disappeared remotely. It persists until the situation changes.
	SyncStatusError SyncStatus = "error"
)

// State is a copy of the controller's projection handed to the presentation
// layer. Pantry pointers inside it are treated as immutable values: every
// change installs a fresh pantry, never mutates one in place.
type State struct {
	Pantries   []*entity.Pantry `json:"pantries"`
	Current    *entity.Pantry   `json:"current,omitempty"`
	Loading    bool             `json:"loading"`
	SyncStatus SyncStatus       `json:"syncStatus"`
	Error      string           `json:"error,omitempty"`
}

// CreatePantryInput defines the data required to create a pantry.
type CreatePantryInput struct {
	Name     string `json:"name" validate:"required"`
	Location string `json:"location"`
}

// PantryUsecase is the optimistic state controller: it keeps the local
// projection of the signed-in user's pantries consistent with the remote
// store while making every mutation feel instantaneous.
//
// Each item mutation applies locally first, then issues the remote write; a
// remote failure restores the exact pre-mutation projection and re-raises
// the error. Inbound push snapshots unconditionally replace the projection.
type PantryUsecase interface {
	CreatePantry(ctx context.Context, input *CreatePantryInput) (*entity.Pantry, error)
	DeletePantry(ctx context.Context, id string) error
	SelectPantry(ctx context.Context, id string) error

	AddItem(ctx context.Context, list entity.ListName, draft entity.ItemDraft) (*entity.Item, error)
	UpdateItem(ctx context.Context, list entity.ListName, item entity.Item) error
	RemoveItem(ctx context.Context, list entity.ListName, itemID string) error
	MoveItem(ctx context.Context, from, to entity.ListName, itemID string) error

	// State returns a copy of the current projection.
	State() *State

	// SelectionChanges emits the selected pantry id whenever it changes
	// (empty string for no selection). Consumed by the subscription manager
	// to restart the detail watch; subscribing is by id, not by value, so
	// field-level updates of the same pantry never restart the watch.
	SelectionChanges() <-chan string

	// The subscription manager feeds remote pushes through these. No other
	// component may mutate the projection.
	ApplyListSnapshot(pantries []*entity.Pantry)
	ApplyPantrySnapshot(snap repository.PantrySnapshot)
	SetSyncError(msg string)
	BeginLoading()
	Reset()
}
