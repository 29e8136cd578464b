package firestore

import (
	"context"
	"log/slog"
	"time"

	"pantry/internal/domain/entity"
	"pantry/internal/domain/repository"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
)

type userRepository struct {
	client *firestore.Client
	logger *slog.Logger
}

// NewUserRepository is the constructor for the Firestore-backed user repository.
func NewUserRepository(client *firestore.Client, logger *slog.Logger) repository.UserRepository {
	return &userRepository{client: client, logger: logger}
}

func (r *userRepository) doc(id string) *firestore.DocumentRef {
	return r.client.Collection(usersCollection).Doc(id)
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	snap, err := r.doc(id).Get(ctx)
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

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.doc(user.ID).Create(ctx, user); err != nil {
		return errors.Wrap(mapStoreErr(err, repository.ErrUserNotFound), "failed to create user")
	}

	return nil
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	user.UpdatedAt = time.Now()

	if _, err := r.doc(user.ID).Set(ctx, user); err != nil {
		return errors.Wrap(mapStoreErr(err, repository.ErrUserNotFound), "failed to update user")
	}

	return nil
}
