package entity

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrItemNotFound is returned by list operations when no item carries the given id.
var ErrItemNotFound = errors.New("item not found")

// ErrInvalidItem is returned when an item draft fails validation.
var ErrInvalidItem = errors.New("invalid item")

// ListName identifies one of the two item collections of a pantry.
type ListName string

const (
	ListInStock  ListName = "inStock"
	ListShopping ListName = "shoppingList"
)

// Valid reports whether the list name refers to a known collection.
func (n ListName) Valid() bool {
	return n == ListInStock || n == ListShopping
}

// Item is a named, optionally quantified entry belonging to exactly one list
// within a pantry. The ID is client-generated at creation and stable across
// moves between lists; LastUpdated is refreshed on every mutation.
type Item struct {
	ID          string    `firestore:"id" json:"id"`
	Name        string    `firestore:"name" json:"name"`
	Quantity    *float64  `firestore:"quantity,omitempty" json:"quantity,omitempty"`
	Unit        string    `firestore:"unit,omitempty" json:"unit,omitempty"`
	LastUpdated time.Time `firestore:"lastUpdated" json:"lastUpdated"`
}

// ItemDraft carries the user-supplied fields of a new item. ID and timestamp
// are assigned by AddItem.
type ItemDraft struct {
	Name     string   `json:"name"`
	Quantity *float64 `json:"quantity,omitempty"`
	Unit     string   `json:"unit,omitempty"`
}

// Validate checks the draft against the item format policy: a non-empty name,
// an optional non-negative quantity and an optional free-text unit. No unit
// conversion or canonicalization is performed.
func (d ItemDraft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return errors.Join(ErrInvalidItem, errors.New("name must not be empty"))
	}
	if d.Quantity != nil && *d.Quantity < 0 {
		return errors.Join(ErrInvalidItem, errors.New("quantity must not be negative"))
	}

	return nil
}

// AddItem assigns a fresh id and the given timestamp to the draft and appends
// it to a copy of the list. The input slice is never modified.
func AddItem(list []Item, draft ItemDraft, now time.Time) ([]Item, Item, error) {
	if err := draft.Validate(); err != nil {
		return nil, Item{}, err
	}

	item := Item{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(draft.Name),
		Quantity:    draft.Quantity,
		Unit:        strings.TrimSpace(draft.Unit),
		LastUpdated: now,
	}

	next := make([]Item, 0, len(list)+1)
	next = append(next, list...)
	next = append(next, item)

	return next, item, nil
}

// RemoveItem returns a copy of the list without the item carrying the given
// id, or ErrItemNotFound if the id is absent.
func RemoveItem(list []Item, itemID string) ([]Item, error) {
	idx := indexOf(list, itemID)
	if idx < 0 {
		return nil, ErrItemNotFound
	}

	next := make([]Item, 0, len(list)-1)
	next = append(next, list[:idx]...)
	next = append(next, list[idx+1:]...)

	return next, nil
}

// UpdateItem replaces the item with a matching id, bumping its timestamp.
func UpdateItem(list []Item, item Item, now time.Time) ([]Item, error) {
	if err := (ItemDraft{Name: item.Name, Quantity: item.Quantity, Unit: item.Unit}).Validate(); err != nil {
		return nil, err
	}

	idx := indexOf(list, item.ID)
	if idx < 0 {
		return nil, ErrItemNotFound
	}

	next := make([]Item, len(list))
	copy(next, list)
	item.LastUpdated = now
	next[idx] = item

	return next, nil
}

// MoveItem transfers the item with the given id from one list to the other,
// preserving its id but refreshing its timestamp. On ErrItemNotFound both
// inputs are returned unchanged, so a failed move never mutates state.
func MoveItem(from, to []Item, itemID string, now time.Time) (newFrom, newTo []Item, err error) {
	idx := indexOf(from, itemID)
	if idx < 0 {
		return from, to, ErrItemNotFound
	}

	moved := from[idx]
	moved.LastUpdated = now

	newFrom = make([]Item, 0, len(from)-1)
	newFrom = append(newFrom, from[:idx]...)
	newFrom = append(newFrom, from[idx+1:]...)

	newTo = make([]Item, 0, len(to)+1)
	newTo = append(newTo, to...)
	newTo = append(newTo, moved)

	return newFrom, newTo, nil
}

func indexOf(list []Item, itemID string) int {
	for i := range list {
		if list[i].ID == itemID {
			return i
		}
	}

	return -1
}
