package firestore

import (
	"context"
	"log/slog"
	"time"

	"pantry/internal/domain/entity"
	"pantry/internal/domain/repository"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
)

type transactionManager struct {
	client *firestore.Client
	logger *slog.Logger
}

// NewTransactionManager is the constructor for the Firestore transaction manager.
// The invite redemption path depends on it: marking a code consumed and adding
// the membership record must commit together or not at all.
func NewTransactionManager(client *firestore.Client, logger *slog.Logger) repository.TransactionManager {
	return &transactionManager{client: client, logger: logger}
}

func (m *transactionManager) Execute(ctx context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	err := m.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		factory := &txRepositoryFactory{client: m.client, tx: tx}

		return fn(factory)
	})
	if err != nil {
		return mapStoreErr(err, repository.ErrPantryNotFound)
	}

	return nil
}

// txRepositoryFactory hands out repositories bound to one transaction.
type txRepositoryFactory struct {
	client *firestore.Client
	tx     *firestore.Transaction
}

func (f *txRepositoryFactory) PantryRepo() repository.PantryRepository {
	return &txPantryRepository{client: f.client, tx: f.tx}
}

func (f *txRepositoryFactory) UserRepo() repository.UserRepository {
	return &txUserRepository{client: f.client, tx: f.tx}
}

type txPantryRepository struct {
	client *firestore.Client
	tx     *firestore.Transaction
}

func (r *txPantryRepository) doc(id string) *firestore.DocumentRef {
	return r.client.Collection(pantriesCollection).Doc(id)
}

func (r *txPantryRepository) Create(_ context.Context, pantry *entity.Pantry) error {
	if err := r.tx.Create(r.doc(pantry.ID), pantry); err != nil {
		return errors.Wrap(err, "failed to create pantry in transaction")
	}

	return nil
}

func (r *txPantryRepository) FindByID(_ context.Context, id string) (*entity.Pantry, error) {
	snap, err := r.tx.Get(r.doc(id))
	if err != nil {
		return nil, mapStoreErr(err, repository.ErrPantryNotFound)
	}

	return pantryFromDoc(snap)
}

func (r *txPantryRepository) FindByInviteCode(_ context.Context, code string) (*entity.Pantry, error) {
	query := r.client.Collection(pantriesCollection).
		Where("inviteCodes", "array-contains", code).
		Limit(1)

	docs := r.tx.Documents(query)
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

func (r *txPantryRepository) Update(_ context.Context, pantry *entity.Pantry) error {
	pantry.UpdatedAt = time.Now()
	if err := r.tx.Set(r.doc(pantry.ID), pantry); err != nil {
		return errors.Wrap(err, "failed to update pantry in transaction")
	}

	return nil
}

func (r *txPantryRepository) UpdateLists(_ context.Context, id string, inStock, shoppingList []entity.Item) error {
	if err := r.tx.Update(r.doc(id), listUpdates(inStock, shoppingList)); err != nil {
		return errors.Wrap(err, "failed to update item lists in transaction")
	}

	return nil
}

func (r *txPantryRepository) Delete(_ context.Context, id string) error {
	if err := r.tx.Delete(r.doc(id)); err != nil {
		return errors.Wrap(err, "failed to delete pantry in transaction")
	}

	return nil
}

func (r *txPantryRepository) Watch(context.Context, string) (<-chan repository.PantrySnapshot, repository.CancelFunc, error) {
	return nil, nil, repository.ErrNotInTransaction
}

func (r *txPantryRepository) WatchByMember(context.Context, string) (<-chan []*entity.Pantry, repository.CancelFunc, error) {
	return nil, nil, repository.ErrNotInTransaction
}

type txUserRepository struct {
	client *firestore.Client
	tx     *firestore.Transaction
}

func (r *txUserRepository) doc(id string) *firestore.DocumentRef {
	return r.client.Collection(usersCollection).Doc(id)
}

func (r *txUserRepository) FindByID(_ context.Context, id string) (*entity.User, error) {
	snap, err := r.tx.Get(r.doc(id))
	if err != nil {
		return nil, mapStoreErr(err, repository.ErrUserNotFound)
	}

	var user entity.User
	if err := snap.DataTo(&user); err != nil {
		return nil, errors.Wrap(err, "failed to decode user document")
	}
	user.ID = snap.Ref.ID

	return &user, nil
}

func (r *txUserRepository) Create(_ context.Context, user *entity.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	if err := r.tx.Create(r.doc(user.ID), user); err != nil {
		return errors.Wrap(err, "failed to create user in transaction")
	}

	return nil
}

func (r *txUserRepository) Update(_ context.Context, user *entity.User) error {
	user.UpdatedAt = time.Now()

	if err := r.tx.Set(r.doc(user.ID), user); err != nil {
		return errors.Wrap(err, "failed to update user in transaction")
	}

	return nil
}
