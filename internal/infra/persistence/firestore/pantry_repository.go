package firestore

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"pantry/internal/domain/entity"
	"pantry/internal/domain/repository"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
)

type pantryRepository struct {
	client *firestore.Client
	logger *slog.Logger
}

// NewPantryRepository is the constructor for the Firestore-backed pantry repository.
func NewPantryRepository(client *firestore.Client, logger *slog.Logger) repository.PantryRepository {
	return &pantryRepository{client: client, logger: logger}
}

func (r *pantryRepository) doc(id string) *firestore.DocumentRef {
	return r.client.Collection(pantriesCollection).Doc(id)
}

func (r *pantryRepository) Create(ctx context.Context, pantry *entity.Pantry) error {
	if _, err := r.doc(pantry.ID).Create(ctx, pantry); err != nil {
		return errors.Wrap(mapStoreErr(err, repository.ErrPantryNotFound), "failed to create pantry")
	}

	return nil
}

func (r *pantryRepository) FindByID(ctx context.Context, id string) (*entity.Pantry, error) {
	snap, err := r.doc(id).Get(ctx)
	if err != nil {
		return nil, mapStoreErr(err, repository.ErrPantryNotFound)
	}

	return pantryFromDoc(snap)
}

func (r *pantryRepository) FindByInviteCode(ctx context.Context, code string) (*entity.Pantry, error) {
	query := r.client.Collection(pantriesCollection).
		Where("inviteCodes", "array-contains", code).
		Limit(1)

	docs := query.Documents(ctx)
	defer docs.Stop()

	snap, err := docs.Next()
	if errors.Is(err, iterator.Done) {
		return nil, repository.ErrPantryNotFound
	}
	if err != nil {
		return nil, mapStoreErr(err, repository.ErrPantryNotFound)
	}

	return pantryFromDoc(snap)
}

func (r *pantryRepository) Update(ctx context.Context, pantry *entity.Pantry) error {
	pantry.UpdatedAt = time.Now()
	if _, err := r.doc(pantry.ID).Set(ctx, pantry); err != nil {
		return errors.Wrap(mapStoreErr(err, repository.ErrPantryNotFound), "failed to update pantry")
	}

	return nil
}

// UpdateLists writes both item collections in one document update so that a
// move never exposes an item absent from, or present in, both lists.
func (r *pantryRepository) UpdateLists(ctx context.Context, id string, inStock, shoppingList []entity.Item) error {
	_, err := r.doc(id).Update(ctx, listUpdates(inStock, shoppingList))
	if err != nil {
		return errors.Wrap(mapStoreErr(err, repository.ErrPantryNotFound), "failed to update item lists")
	}

	return nil
}

func (r *pantryRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.doc(id).Delete(ctx); err != nil {
		return errors.Wrap(mapStoreErr(err, repository.ErrPantryNotFound), "failed to delete pantry")
	}

	return nil
}

func (r *pantryRepository) Watch(ctx context.Context, id string) (<-chan repository.PantrySnapshot, repository.CancelFunc, error) {
	watchCtx, cancel := context.WithCancel(ctx)
	iter := r.doc(id).Snapshots(watchCtx)
	out := make(chan repository.PantrySnapshot, 1)

	go func() {
		defer close(out)
		defer iter.Stop()

		for {
			snap, err := iter.Next()
			if err != nil {
				logWatchTermination(r.logger, "pantry:"+id, err)
				return
			}

			next := repository.PantrySnapshot{ID: id}
			if snap.Exists() {
				pantry, err := pantryFromDoc(snap)
				if err != nil {
					r.logger.Error("failed to decode pantry snapshot", slog.String("pantryID", id), slog.Any("error", err))
					continue
				}
				next = repository.PantrySnapshot{ID: id, Pantry: pantry, Exists: true}
			}

			select {
			case out <- next:
			case <-watchCtx.Done():
				return
			}
		}
	}()

	return out, cancelOnce(cancel), nil
}

// WatchByMember subscribes to every pantry the user belongs to. The query is
// filtered server-side on the memberIDs index; the role check against the
// members map stays as a correctness fallback.
func (r *pantryRepository) WatchByMember(ctx context.Context, userID string) (<-chan []*entity.Pantry, repository.CancelFunc, error) {
	watchCtx, cancel := context.WithCancel(ctx)
	query := r.client.Collection(pantriesCollection).
		Where("memberIDs", "array-contains", userID)
	iter := query.Snapshots(watchCtx)
	out := make(chan []*entity.Pantry, 1)

	go func() {
		defer close(out)
		defer iter.Stop()

		for {
			qsnap, err := iter.Next()
			if err != nil {
				logWatchTermination(r.logger, "pantries:"+userID, err)
				return
			}

			pantries, err := pantriesFromQuery(qsnap, userID)
			if err != nil {
				r.logger.Error("failed to decode pantry list snapshot", slog.String("userID", userID), slog.Any("error", err))
				continue
			}

			select {
			case out <- pantries:
			case <-watchCtx.Done():
				return
			}
		}
	}()

	return out, cancelOnce(cancel), nil
}

func pantriesFromQuery(qsnap *firestore.QuerySnapshot, userID string) ([]*entity.Pantry, error) {
	pantries := make([]*entity.Pantry, 0)

	docs := qsnap.Documents
	for {
		snap, err := docs.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to iterate pantry documents")
		}

		pantry, err := pantryFromDoc(snap)
		if err != nil {
			return nil, err
		}

		role, ok := pantry.MemberRole(userID)
		if !ok || (role != entity.RoleOwner && role != entity.RoleEditor) {
			continue
		}
		pantries = append(pantries, pantry)
	}

	return pantries, nil
}

func pantryFromDoc(snap *firestore.DocumentSnapshot) (*entity.Pantry, error) {
	var pantry entity.Pantry
	if err := snap.DataTo(&pantry); err != nil {
		return nil, errors.Wrap(err, "failed to decode pantry document")
	}

	pantry.ID = snap.Ref.ID
	if pantry.InStock == nil {
		pantry.InStock = []entity.Item{}
	}
	if pantry.ShoppingList == nil {
		pantry.ShoppingList = []entity.Item{}
	}

	return &pantry, nil
}

func listUpdates(inStock, shoppingList []entity.Item) []firestore.Update {
	return []firestore.Update{
		{Path: "inStock", Value: inStock},
		{Path: "shoppingList", Value: shoppingList},
		{Path: "updatedAt", Value: time.Now()},
	}
}

func cancelOnce(cancel context.CancelFunc) repository.CancelFunc {
	var once sync.Once

	return func() {
		once.Do(cancel)
	}
}
