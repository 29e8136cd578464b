package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quantity(f float64) *float64 { return &f }

func TestAddItem(t *testing.T) {
	now := time.Now()
	list := []Item{{ID: "i1", Name: "Bread"}}

	next, item, err := AddItem(list, ItemDraft{Name: "  Milk ", Quantity: quantity(2), Unit: " l "}, now)

	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "Milk", item.Name)
	assert.Equal(t, "l", item.Unit)
	assert.Equal(t, now, item.LastUpdated)
	assert.Len(t, next, 2)
	// The input list is never modified.
	assert.Len(t, list, 1)
}

func TestAddItem_InvalidDraft(t *testing.T) {
	cases := []struct {
		name  string
		draft ItemDraft
	}{
		{name: "empty name", draft: ItemDraft{Name: ""}},
		{name: "blank name", draft: ItemDraft{Name: "   "}},
		{name: "negative quantity", draft: ItemDraft{Name: "Milk", Quantity: quantity(-1)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := AddItem(nil, tc.draft, time.Now())

			require.ErrorIs(t, err, ErrInvalidItem)
		})
	}
}

func TestAddItem_ZeroQuantityAllowed(t *testing.T) {
	_, item, err := AddItem(nil, ItemDraft{Name: "Milk", Quantity: quantity(0)}, time.Now())

	require.NoError(t, err)
	assert.Equal(t, float64(0), *item.Quantity)
}

func TestRemoveItem(t *testing.T) {
	list := []Item{{ID: "i1", Name: "Bread"}, {ID: "i2", Name: "Milk"}}

	next, err := RemoveItem(list, "i1")

	require.NoError(t, err)
	require.Len(t, next, 1)
	assert.Equal(t, "i2", next[0].ID)
	assert.Len(t, list, 2)
}

func TestRemoveItem_NotFound(t *testing.T) {
	_, err := RemoveItem([]Item{{ID: "i1"}}, "missing")

	require.ErrorIs(t, err, ErrItemNotFound)
}

func TestUpdateItem(t *testing.T) {
	now := time.Now()
	list := []Item{{ID: "i1", Name: "Milk", Quantity: quantity(1)}}

	next, err := UpdateItem(list, Item{ID: "i1", Name: "Milk", Quantity: quantity(3)}, now)

	require.NoError(t, err)
	assert.Equal(t, float64(3), *next[0].Quantity)
	assert.Equal(t, now, next[0].LastUpdated)
	// The original keeps its value.
	assert.Equal(t, float64(1), *list[0].Quantity)
}

func TestUpdateItem_NotFound(t *testing.T) {
	_, err := UpdateItem([]Item{{ID: "i1", Name: "Milk"}}, Item{ID: "missing", Name: "Milk"}, time.Now())

	require.ErrorIs(t, err, ErrItemNotFound)
}

func TestMoveItem(t *testing.T) {
	now := time.Now()
	from := []Item{{ID: "i1", Name: "Milk", LastUpdated: now.Add(-time.Hour)}}
	to := []Item{{ID: "i2", Name: "Eggs"}}

	newFrom, newTo, err := MoveItem(from, to, "i1", now)

	require.NoError(t, err)
	assert.Empty(t, newFrom)
	require.Len(t, newTo, 2)

	moved := newTo[1]
	assert.Equal(t, "i1", moved.ID)
	assert.Equal(t, now, moved.LastUpdated)

	// Inputs stay untouched.
	assert.Len(t, from, 1)
	assert.Len(t, to, 1)
}

func TestMoveItem_NotFoundReturnsInputsUnchanged(t *testing.T) {
	from := []Item{{ID: "i1"}}
	to := []Item{{ID: "i2"}}

	newFrom, newTo, err := MoveItem(from, to, "missing", time.Now())

	require.ErrorIs(t, err, ErrItemNotFound)
	assert.Equal(t, from, newFrom)
	assert.Equal(t, to, newTo)
}

func TestListName_Valid(t *testing.T) {
	assert.True(t, ListInStock.Valid())
	assert.True(t, ListShopping.Valid())
	assert.False(t, ListName("freezer").Valid())
}
