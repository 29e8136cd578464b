package auth

import (
	"context"

	"pantry/internal/domain/service"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
)

type tokenVerifier struct {
	client *firebaseauth.Client
}

// NewTokenVerifier is the constructor for the Firebase ID token verifier.
func NewTokenVerifier(client *firebaseauth.Client) service.TokenVerifier {
	return &tokenVerifier{client: client}
}

func (v *tokenVerifier) VerifyIDToken(ctx context.Context, idToken string) (string, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", errors.Wrap(err, "failed to verify ID token")
	}

	return token.UID, nil
}
