// Package auth talks to the hosted identity provider. Sign-in and sign-up go
// through the Identity Toolkit REST API; ID token verification goes through
// the Firebase Admin SDK. Vendor error codes never leave this package.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pantry/config"
	domainerrors "pantry/internal/domain/errors"
	"pantry/internal/domain/identity"
	"pantry/internal/domain/service"

	"github.com/pkg/errors"
)

const (
	productionBaseURL = "https://identitytoolkit.googleapis.com/v1"
	requestTimeout    = 15 * time.Second
)

type identityClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewIdentityClient is the constructor for the Identity Toolkit client.
func NewIdentityClient(cfg *config.Config, logger *slog.Logger) service.IdentityService {
	baseURL := productionBaseURL
	if cfg.Firebase.AuthEmulatorHost != "" {
		baseURL = "http://" + cfg.Firebase.AuthEmulatorHost + "/identitytoolkit.googleapis.com/v1"
	}

	return &identityClient{
		baseURL:    baseURL,
		apiKey:     cfg.Firebase.WebAPIKey,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger,
	}
}

type signInResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *identityClient) SignIn(ctx context.Context, email, password string) (*service.Credentials, error) {
	payload := map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}

	return c.call(ctx, "accounts:signInWithPassword", payload)
}

func (c *identityClient) SignUp(ctx context.Context, email, password string) (*service.Credentials, error) {
	payload := map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}

	return c.call(ctx, "accounts:signUp", payload)
}

func (c *identityClient) SignInWithProvider(ctx context.Context, providerID, providerIDToken string) (*service.Credentials, error) {
	postBody := url.Values{}
	postBody.Set("id_token", providerIDToken)
	postBody.Set("providerId", providerID)

	payload := map[string]any{
		"postBody":          postBody.Encode(),
		"requestUri":        "http://localhost",
		"returnSecureToken": true,
	}

	return c.call(ctx, "accounts:signInWithIdp", payload)
}

func (c *identityClient) call(ctx context.Context, endpoint string, payload map[string]any) (*service.Credentials, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode identity request")
	}

	reqURL := c.baseURL + "/" + endpoint + "?key=" + url.QueryEscape(c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build identity request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domainerrors.ErrRemoteUnavailable.WrapMessage(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.mapProviderError(resp)
	}

	var out signInResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, errors.Wrap(err, "failed to decode identity response")
	}

	return &service.Credentials{
		Identity: identity.Identity{
			ID:          out.LocalID,
			Email:       out.Email,
			DisplayName: out.DisplayName,
		},
		IDToken:      out.IDToken,
		RefreshToken: out.RefreshToken,
	}, nil
}

// mapProviderError converts Identity Toolkit error codes into the application
// error taxonomy, so callers see failure categories instead of vendor strings.
func (c *identityClient) mapProviderError(resp *http.Response) error {
	var body errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domainerrors.ErrRemoteUnavailable.WrapMessage("unreadable identity provider error")
	}

	// Codes like WEAK_PASSWORD arrive with a trailing description.
	code, _, _ := strings.Cut(body.Error.Message, " :")

	c.logger.Debug("identity provider rejected request", slog.String("code", code))

	switch code {
	case "EMAIL_NOT_FOUND", "USER_DISABLED", "USER_NOT_FOUND":
		return domainerrors.ErrUnknownAccount
	case "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS", "INVALID_EMAIL", "INVALID_IDP_RESPONSE":
		return domainerrors.ErrInvalidCredentials
	case "TOO_MANY_ATTEMPTS_TRY_LATER":
		return domainerrors.ErrRateLimited
	case "WEAK_PASSWORD", "MISSING_PASSWORD":
		return domainerrors.ErrWeakPassword
	case "EMAIL_EXISTS":
		return domainerrors.ErrEmailAlreadyRegistered
	default:
		return domainerrors.ErrRemoteUnavailable.WithDetails(code)
	}
}
