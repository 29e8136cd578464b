package handler

import (
	"log/slog"
	"net/http"

	"pantry/internal/delivery/http/response"
	"pantry/internal/domain/entity"
	"pantry/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ItemHandler exposes the item list operations of the selected pantry.
type ItemHandler struct {
	pantries usecase.PantryUsecase
	logger   *slog.Logger
}

// NewItemHandler is the constructor for ItemHandler, injected by Fx.
func NewItemHandler(pantries usecase.PantryUsecase, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{pantries: pantries, logger: logger}
}

type addItemInput struct {
	List  entity.ListName  `json:"list" validate:"required"`
	Draft entity.ItemDraft `json:"draft"`
}

// Add appends a new item to one of the selected pantry's lists.
func (h *ItemHandler) Add(c echo.Context) error {
	var input *addItemInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid item input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	item, err := h.pantries.AddItem(c.Request().Context(), input.List, input.Draft)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, item, "Item added")
}

type updateItemInput struct {
	List entity.ListName `json:"list" validate:"required"`
	Item entity.Item     `json:"item"`
}

// Update replaces an item in place.
func (h *ItemHandler) Update(c echo.Context) error {
	var input *updateItemInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid item input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.pantries.UpdateItem(c.Request().Context(), input.List, input.Item); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Item updated")
}

// Remove deletes an item from a list.
func (h *ItemHandler) Remove(c echo.Context) error {
	list := entity.ListName(c.Param("list"))
	itemID := c.Param("id")

	if err := h.pantries.RemoveItem(c.Request().Context(), list, itemID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Item removed")
}

type moveItemInput struct {
	From   entity.ListName `json:"from" validate:"required"`
	To     entity.ListName `json:"to" validate:"required"`
	ItemID string          `json:"itemId" validate:"required"`
}

// Move transfers an item between the two lists.
func (h *ItemHandler) Move(c echo.Context) error {
	var input *moveItemInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid move input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.pantries.MoveItem(c.Request().Context(), input.From, input.To, input.ItemID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Item moved")
}
