package impl

import (
	"context"
	"log/slog"

	"pantry/internal/domain/entity"
	domainerrors "pantry/internal/domain/errors"
	"pantry/internal/domain/identity"
	"pantry/internal/domain/repository"
	"pantry/internal/errors"
	"pantry/internal/usecase"

	"go.uber.org/fx"
)

type userService struct {
	userRepo repository.UserRepository
	logger   *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Logger   *slog.Logger
}

// NewUserService creates the user usecase.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo: params.UserRepo,
		logger:   params.Logger,
	}
}

// EnsureUser creates the account document on first sign-in. Subsequent
// sign-ins return the existing document untouched.
func (s *userService) EnsureUser(ctx context.Context, id identity.Identity) (*entity.User, error) {
	user, err := s.userRepo.FindByID(ctx, id.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, mapRepoErr(err)
	}

	user = &entity.User{
		ID:          id.ID,
		Email:       id.Email,
		DisplayName: id.DisplayName,
		Preferences: entity.Preferences{Language: entity.DefaultLanguage},
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, mapRepoErr(err)
	}
	s.logger.Info("created account document", slog.String("userID", id.ID))

	return user, nil
}

func (s *userService) GetUser(ctx context.Context) (*entity.User, error) {
	actor, err := requireIdentity(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUnknownAccount
		}

		return nil, mapRepoErr(err)
	}

	return user, nil
}

func (s *userService) UpdatePreferences(ctx context.Context, input *usecase.UpdatePreferencesInput) error {
	user, err := s.GetUser(ctx)
	if err != nil {
		return err
	}

	if input.Language != nil {
		user.Preferences.Language = *input.Language
	}
	if input.DefaultPantryID != nil {
		user.Preferences.DefaultPantryID = *input.DefaultPantryID
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return mapRepoErr(err)
	}

	return nil
}
