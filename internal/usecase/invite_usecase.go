package usecase

import (
	"context"
	"time"

	"pantry/internal/domain/entity"
)

// InviteOutput describes a freshly issued invite link.
type InviteOutput struct {
	Code      string    `json:"code"`
	JoinURL   string    `json:"joinUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// InviteUsecase manages single-use invite codes. A code moves from issued to
// consumed or expired; both are terminal and rejected on redemption.
type InviteUsecase interface {
	// CreateInvite issues a new code for the pantry. Owner only.
	CreateInvite(ctx context.Context, pantryID string) (*InviteOutput, error)

	// InviteQR renders the join link of an issued code as a PNG QR code.
	InviteQR(ctx context.Context, code string) ([]byte, error)

	// ValidateInvite checks that a code is known, unconsumed and unexpired
	// without redeeming it.
	ValidateInvite(ctx context.Context, code string) error

	// RedeemInvite consumes the code and adds the caller as an editor member.
	// Both effects commit atomically: a partial failure never leaves the code
	// reusable or the membership half-applied.
	RedeemInvite(ctx context.Context, code string) (*entity.Pantry, error)
}
