package impl

import (
	"context"
	"testing"

	"pantry/internal/domain/entity"
	domainerrors "pantry/internal/domain/errors"
	"pantry/internal/domain/identity"
	"pantry/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(repo *fakeUserRepo) usecase.UserUsecase {
	return NewUserService(UserServiceParams{UserRepo: repo, Logger: newDiscardLogger()})
}

func stringPtr(s string) *string { return &s }

func TestUserService_EnsureUser_CreatesOnFirstSignIn(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserService(repo)
	id := identity.Identity{ID: "u1", Email: "u1@example.com", DisplayName: "U One"}

	user, err := svc.EnsureUser(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, entity.DefaultLanguage, user.Preferences.Language)
	assert.Equal(t, 1, repo.creates)
}

func TestUserService_EnsureUser_IdempotentOnRepeatSignIn(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserService(repo)
	id := identity.Identity{ID: "u1", Email: "u1@example.com"}

	_, err := svc.EnsureUser(context.Background(), id)
	require.NoError(t, err)

	// An existing document survives untouched.
	existing, err := svc.GetUser(authedCtx("u1"))
	require.NoError(t, err)
	existing.Preferences.Language = "de"
	require.NoError(t, repo.Update(context.Background(), existing))

	user, err := svc.EnsureUser(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, "de", user.Preferences.Language)
	assert.Equal(t, 1, repo.creates)
}

func TestUserService_GetUser_Unauthenticated(t *testing.T) {
	svc := newUserService(newFakeUserRepo())

	_, err := svc.GetUser(context.Background())

	require.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}

func TestUserService_GetUser_UnknownAccount(t *testing.T) {
	svc := newUserService(newFakeUserRepo())

	_, err := svc.GetUser(authedCtx("ghost"))

	require.ErrorIs(t, err, domainerrors.ErrUnknownAccount)
}

func TestUserService_UpdatePreferences_PartialUpdate(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserService(repo)
	_, err := svc.EnsureUser(context.Background(), identity.Identity{ID: "u1", Email: "u1@example.com"})
	require.NoError(t, err)

	err = svc.UpdatePreferences(authedCtx("u1"), &usecase.UpdatePreferencesInput{
		DefaultPantryID: stringPtr("p1"),
	})

	require.NoError(t, err)
	user, err := svc.GetUser(authedCtx("u1"))
	require.NoError(t, err)
	assert.Equal(t, "p1", user.Preferences.DefaultPantryID)
	// Untouched fields keep their values.
	assert.Equal(t, entity.DefaultLanguage, user.Preferences.Language)
}
