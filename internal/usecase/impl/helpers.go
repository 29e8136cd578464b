// Package impl provides concrete implementations of the usecase interfaces.
package impl

import (
	"context"

	domainerrors "pantry/internal/domain/errors"
	"pantry/internal/domain/identity"
	"pantry/internal/domain/repository"
	"pantry/internal/errors"
)

// requireIdentity extracts the signed-in identity from the context.
func requireIdentity(ctx context.Context) (*identity.Identity, error) {
	id, ok := identity.FromContext(ctx)
	if !ok {
		return nil, domainerrors.ErrUnauthenticated
	}

	return id, nil
}

// mapRepoErr translates repository sentinels into application errors.
func mapRepoErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrPantryNotFound):
		return domainerrors.ErrPantryNotFound
	case errors.Is(err, repository.ErrUnavailable):
		return domainerrors.ErrRemoteUnavailable
	}

	return err
}
