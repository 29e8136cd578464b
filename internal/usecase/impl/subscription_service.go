package impl

import (
	"context"
	"log/slog"

	"pantry/internal/domain/entity"
	"pantry/internal/domain/repository"
	"pantry/internal/usecase"

	"go.uber.org/fx"
)

type subscriptionService struct {
	pantryRepo repository.PantryRepository
	session    usecase.SessionUsecase
	controller usecase.PantryUsecase
	logger     *slog.Logger
}

// SubscriptionServiceParams holds dependencies for SubscriptionService, injected by Fx.
type SubscriptionServiceParams struct {
	fx.In

	PantryRepo repository.PantryRepository
	Session    usecase.SessionUsecase
	Controller usecase.PantryUsecase
	Logger     *slog.Logger
}

// NewSubscriptionService creates the subscription manager.
func NewSubscriptionService(params SubscriptionServiceParams) usecase.SubscriptionUsecase {
	return &subscriptionService{
		pantryRepo: params.PantryRepo,
		session:    params.Session,
		controller: params.Controller,
		logger:     params.Logger,
	}
}

// Run drives all realtime watches from a single goroutine: the membership
// watch follows the signed-in identity, the detail watch follows the
// selected pantry. Each watch is cancelled exactly once, on replacement or
// shutdown. A nil channel never fires in the select, which is how "no watch
// open" is represented.
func (s *subscriptionService) Run(ctx context.Context) {
	var (
		listCh       <-chan []*entity.Pantry
		listCancel   repository.CancelFunc
		detailCh     <-chan repository.PantrySnapshot
		detailCancel repository.CancelFunc
		selectedID   string
	)

	stopList := func() {
		if listCancel != nil {
			listCancel()
			listCancel = nil
		}
		listCh = nil
	}
	stopDetail := func() {
		if detailCancel != nil {
			detailCancel()
			detailCancel = nil
		}
		detailCh = nil
	}
	defer stopList()
	defer stopDetail()

	identityCh := s.session.IdentityChanges()
	selectionCh := s.controller.SelectionChanges()

	for {
		select {
		case <-ctx.Done():
			return

		case id := <-identityCh:
			stopDetail()
			stopList()
			selectedID = ""
			s.controller.Reset()
			if id == nil {
				s.logger.Info("signed out, watches stopped")

				continue
			}

			s.controller.BeginLoading()
			ch, cancel, err := s.pantryRepo.WatchByMember(ctx, id.ID)
			if err != nil {
				s.logger.Error("failed to open membership watch",
					slog.String("userID", id.ID), slog.Any("error", err))
				s.controller.SetSyncError("could not subscribe to pantry updates")

				continue
			}
			listCh, listCancel = ch, cancel
			s.logger.Info("membership watch opened", slog.String("userID", id.ID))

		case pantries, ok := <-listCh:
			if !ok {
				// The store closed the stream on its own; cancellation paths
				// null the channel before the close can be observed here.
				listCh, listCancel = nil, nil
				s.controller.SetSyncError("pantry updates interrupted")

				continue
			}
			s.controller.ApplyListSnapshot(pantries)

		case id := <-selectionCh:
			if id == selectedID {
				continue
			}
			stopDetail()
			selectedID = id
			if id == "" {
				continue
			}

			ch, cancel, err := s.pantryRepo.Watch(ctx, id)
			if err != nil {
				s.logger.Error("failed to open pantry watch",
					slog.String("pantryID", id), slog.Any("error", err))
				s.controller.SetSyncError("could not subscribe to pantry updates")

				continue
			}
			detailCh, detailCancel = ch, cancel

		case snap, ok := <-detailCh:
			if !ok {
				detailCh, detailCancel = nil, nil
				s.controller.SetSyncError("pantry updates interrupted")

				continue
			}
			s.controller.ApplyPantrySnapshot(snap)
		}
	}
}
