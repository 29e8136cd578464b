package handler

import (
	"log/slog"
	"net/http"

	"pantry/internal/delivery/http/response"
	"pantry/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// InviteHandler exposes invite issuing and redemption.
type InviteHandler struct {
	invites usecase.InviteUsecase
	logger  *slog.Logger
}

// NewInviteHandler is the constructor for InviteHandler, injected by Fx.
func NewInviteHandler(invites usecase.InviteUsecase, logger *slog.Logger) *InviteHandler {
	return &InviteHandler{invites: invites, logger: logger}
}

type createInviteInput struct {
	PantryID string `json:"pantryId" validate:"required"`
}

// Create issues a new invite code. Owner only.
func (h *InviteHandler) Create(c echo.Context) error {
	var input *createInviteInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid invite input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	out, err := h.invites.CreateInvite(c.Request().Context(), input.PantryID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, out, "Invite created")
}

// QR renders the invite join link as a PNG QR code.
func (h *InviteHandler) QR(c echo.Context) error {
	png, err := h.invites.InviteQR(c.Request().Context(), c.Param("code"))
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

type redeemInviteInput struct {
	Code string `json:"code" validate:"required"`
}

// Redeem consumes an invite code and joins the caller to its pantry.
func (h *InviteHandler) Redeem(c echo.Context) error {
	var input *redeemInviteInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid redeem input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	pantry, err := h.invites.RedeemInvite(c.Request().Context(), input.Code)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, pantry, "Invite redeemed")
}
