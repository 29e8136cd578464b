package usecase

import (
	"context"

	"pantry/internal/domain/identity"
	"pantry/internal/domain/service"
)

// SignInInput defines the data required for password sign-in.
type SignInInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProviderSignInInput carries an OAuth ID token obtained by the presentation
// layer from a federated provider.
type ProviderSignInInput struct {
	ProviderID string `json:"providerId" validate:"required"`
	IDToken    string `json:"idToken" validate:"required"`
}

// SignUpInput defines the data required to register a new account.
type SignUpInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// InviteSignUpInput registers a new account and redeems an invite in one flow.
type InviteSignUpInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Code     string `json:"code" validate:"required"`
}

// SessionUsecase is the single source of truth for "who is signed in".
// Identity changes (sign-in, sign-out) are broadcast to the subscription
// manager so that watches follow the authenticated identity.
type SessionUsecase interface {
	SignIn(ctx context.Context, input *SignInInput) (*service.Credentials, error)
	SignInWithProvider(ctx context.Context, input *ProviderSignInInput) (*service.Credentials, error)
	SignUp(ctx context.Context, input *SignUpInput) (*service.Credentials, error)
	SignUpWithInvite(ctx context.Context, input *InviteSignUpInput) (*service.Credentials, error)
	SignOut(ctx context.Context) error

	// CurrentIdentity returns the signed-in identity, or nil.
	CurrentIdentity() *identity.Identity

	// Verify checks a presented ID token against the active session and
	// returns the identity it belongs to.
	Verify(ctx context.Context, idToken string) (*identity.Identity, error)

	// IdentityChanges emits the new identity on sign-in and nil on sign-out.
	IdentityChanges() <-chan *identity.Identity
}
