package handler

import (
	"log/slog"
	"net/http"

	"pantry/internal/delivery/http/response"
	"pantry/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// PantryHandler exposes the state controller over HTTP.
type PantryHandler struct {
	pantries usecase.PantryUsecase
	logger   *slog.Logger
}

// NewPantryHandler is the constructor for PantryHandler, injected by Fx.
func NewPantryHandler(pantries usecase.PantryUsecase, logger *slog.Logger) *PantryHandler {
	return &PantryHandler{pantries: pantries, logger: logger}
}

// State returns the controller projection, including sync status.
func (h *PantryHandler) State(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.pantries.State(), "")
}

// Create handles pantry creation.
func (h *PantryHandler) Create(c echo.Context) error {
	var input *usecase.CreatePantryInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid pantry input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	pantry, err := h.pantries.CreatePantry(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, pantry, "Pantry created")
}

// Delete removes a pantry. Owner only.
func (h *PantryHandler) Delete(c echo.Context) error {
	if err := h.pantries.DeletePantry(c.Request().Context(), c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Pantry deleted")
}

type selectPantryInput struct {
	ID string `json:"id"`
}

// Select switches the selected pantry; an empty id deselects.
func (h *PantryHandler) Select(c echo.Context) error {
	var input selectPantryInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid selection input")
	}

	if err := h.pantries.SelectPantry(c.Request().Context(), input.ID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, h.pantries.State(), "Pantry selected")
}
