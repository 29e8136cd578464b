package service

import (
	"context"
	"time"
)

// Pantry event types published on successful writes.
const (
	EventPantryCreated = "pantry.created"
	EventPantryDeleted = "pantry.deleted"
	EventItemAdded     = "item.added"
	EventItemUpdated   = "item.updated"
	EventItemRemoved   = "item.removed"
	EventItemMoved     = "item.moved"
	EventMemberJoined  = "member.joined"
	EventInviteCreated = "invite.created"
)

// PantryEvent describes one committed change to a pantry aggregate. Events
// are best effort: publishing failures are logged, never surfaced to the
// user, and never roll back the write they describe.
type PantryEvent struct {
	Type       string    `json:"type"`
	PantryID   string    `json:"pantryId"`
	ActorID    string    `json:"actorId"`
	ItemID     string    `json:"itemId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// EventPublisher publishes pantry change events for downstream consumers.
type EventPublisher interface {
	PublishPantryEvent(ctx context.Context, event *PantryEvent) error
	Close() error
}
