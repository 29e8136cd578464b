// Package service defines contracts for external collaborators consumed by
// the application layer: the hosted identity provider, the event publisher
// and the QR code generator.
package service

import (
	"context"

	"pantry/internal/domain/identity"
)

// Credentials is an identity plus the provider tokens the presentation layer
// needs to authenticate subsequent requests.
type Credentials struct {
	Identity     identity.Identity `json:"identity"`
	IDToken      string            `json:"idToken"`
	RefreshToken string            `json:"refreshToken"`
}

// IdentityService is the narrow contract over the hosted identity provider.
// Failure modes are surfaced as application errors by category (invalid
// credentials, unknown account, rate limited, weak password, email already
// registered), never as vendor-specific codes.
type IdentityService interface {
	// SignIn authenticates with email and password.
	SignIn(ctx context.Context, email, password string) (*Credentials, error)

	// SignInWithProvider authenticates with an OAuth ID token obtained by the
	// presentation layer from a federated provider such as google.com.
	SignInWithProvider(ctx context.Context, providerID, providerIDToken string) (*Credentials, error)

	// SignUp registers a new email/password account.
	SignUp(ctx context.Context, email, password string) (*Credentials, error)
}

// TokenVerifier checks provider-issued ID tokens presented on API requests
// and returns the user id they were minted for.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (string, error)
}
