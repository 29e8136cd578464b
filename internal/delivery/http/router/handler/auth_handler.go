// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"pantry/internal/delivery/http/response"
	"pantry/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for session-related handlers.
type AuthHandler struct {
	session usecase.SessionUsecase
	logger  *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(session usecase.SessionUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{session: session, logger: logger}
}

// Login handles email/password sign-in.
func (h *AuthHandler) Login(c echo.Context) error {
	var input *usecase.SignInInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	creds, err := h.session.SignIn(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, creds, "Login successful")
}

// LoginWithProvider handles sign-in with a federated provider ID token.
func (h *AuthHandler) LoginWithProvider(c echo.Context) error {
	var input *usecase.ProviderSignInInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid provider login input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	creds, err := h.session.SignInWithProvider(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, creds, "Login successful")
}

// SignUp handles new account registration.
func (h *AuthHandler) SignUp(c echo.Context) error {
	var input *usecase.SignUpInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid signup input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	creds, err := h.session.SignUp(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, creds, "Account created")
}

// SignUpWithInvite registers an account and joins the inviting pantry.
func (h *AuthHandler) SignUpWithInvite(c echo.Context) error {
	var input *usecase.InviteSignUpInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid invite signup input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	creds, err := h.session.SignUpWithInvite(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, creds, "Account created and pantry joined")
}

// Logout ends the active session.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.session.SignOut(c.Request().Context()); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Logged out")
}

// Me returns the signed-in identity.
func (h *AuthHandler) Me(c echo.Context) error {
	id := h.session.CurrentIdentity()
	if id == nil {
		return response.Unauthorized(c, "UNAUTHENTICATED", "No active session")
	}

	return response.Success(c, http.StatusOK, id, "")
}
