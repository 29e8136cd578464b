package auth

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pantry/config"
	domainerrors "pantry/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *identityClient {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.Firebase.WebAPIKey = "test-key"
	cfg.Firebase.AuthEmulatorHost = strings.TrimPrefix(srv.URL, "http://")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewIdentityClient(cfg, logger).(*identityClient)
}

func providerError(code string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": code},
		})
	}
}

func TestIdentityClient_SignIn_Success(t *testing.T) {
	var gotPath, gotKey string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "u1@example.com", payload["email"])
		assert.Equal(t, true, payload["returnSecureToken"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"localId":      "u1",
			"email":        "u1@example.com",
			"displayName":  "U One",
			"idToken":      "id-token",
			"refreshToken": "refresh-token",
		})
	})

	creds, err := client.SignIn(context.Background(), "u1@example.com", "secret")

	require.NoError(t, err)
	assert.Equal(t, "/identitytoolkit.googleapis.com/v1/accounts:signInWithPassword", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "u1", creds.Identity.ID)
	assert.Equal(t, "U One", creds.Identity.DisplayName)
	assert.Equal(t, "id-token", creds.IDToken)
	assert.Equal(t, "refresh-token", creds.RefreshToken)
}

func TestIdentityClient_SignInWithProvider_PostBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/identitytoolkit.googleapis.com/v1/accounts:signInWithIdp", r.URL.Path)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		postBody, _ := payload["postBody"].(string)
		assert.Contains(t, postBody, "providerId=google.com")
		assert.Contains(t, postBody, "id_token=provider-token")

		_ = json.NewEncoder(w).Encode(map[string]any{"localId": "u1", "idToken": "id-token"})
	})

	creds, err := client.SignInWithProvider(context.Background(), "google.com", "provider-token")

	require.NoError(t, err)
	assert.Equal(t, "u1", creds.Identity.ID)
}

func TestIdentityClient_ErrorMapping(t *testing.T) {
	cases := []struct {
		code string
		want error
	}{
		{code: "EMAIL_NOT_FOUND", want: domainerrors.ErrUnknownAccount},
		{code: "USER_DISABLED", want: domainerrors.ErrUnknownAccount},
		{code: "INVALID_PASSWORD", want: domainerrors.ErrInvalidCredentials},
		{code: "INVALID_LOGIN_CREDENTIALS", want: domainerrors.ErrInvalidCredentials},
		{code: "TOO_MANY_ATTEMPTS_TRY_LATER", want: domainerrors.ErrRateLimited},
		{code: "WEAK_PASSWORD : Password should be at least 6 characters", want: domainerrors.ErrWeakPassword},
		{code: "EMAIL_EXISTS", want: domainerrors.ErrEmailAlreadyRegistered},
		{code: "SOMETHING_NEW", want: domainerrors.ErrRemoteUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			client := newTestClient(t, providerError(tc.code))

			_, err := client.SignIn(context.Background(), "u1@example.com", "secret")

			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestIdentityClient_SignUp_EmailExists(t *testing.T) {
	client := newTestClient(t, providerError("EMAIL_EXISTS"))

	_, err := client.SignUp(context.Background(), "u1@example.com", "secret")

	require.ErrorIs(t, err, domainerrors.ErrEmailAlreadyRegistered)
}

func TestIdentityClient_UnreachableProvider(t *testing.T) {
	cfg := &config.Config{}
	cfg.Firebase.WebAPIKey = "test-key"
	cfg.Firebase.AuthEmulatorHost = "127.0.0.1:1"

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := NewIdentityClient(cfg, logger)

	_, err := client.SignIn(context.Background(), "u1@example.com", "secret")

	require.ErrorIs(t, err, domainerrors.ErrRemoteUnavailable)
}
