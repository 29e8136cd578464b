package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"pantry/internal/domain/entity"
	domainerrors "pantry/internal/domain/errors"
	"pantry/internal/domain/repository"
	"pantry/internal/domain/service"
	"pantry/internal/errors"
	"pantry/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

type pantryService struct {
	pantryRepo repository.PantryRepository
	publisher  service.EventPublisher
	logger     *slog.Logger

	mu         sync.Mutex
	pantries   []*entity.Pantry
	current    *entity.Pantry
	loading    bool
	syncStatus usecase.SyncStatus
	syncErr    string

	selectionCh chan string
}

// PantryServiceParams holds dependencies for PantryService, injected by Fx.
type PantryServiceParams struct {
	fx.In

	PantryRepo repository.PantryRepository
	Publisher  service.EventPublisher
	Logger     *slog.Logger
}

// NewPantryService creates the optimistic state controller.
func NewPantryService(params PantryServiceParams) usecase.PantryUsecase {
	return &pantryService{
		pantryRepo:  params.PantryRepo,
		publisher:   params.Publisher,
		logger:      params.Logger,
		pantries:    []*entity.Pantry{},
		syncStatus:  usecase.SyncStatusSynced,
		selectionCh: make(chan string, 1),
	}
}

func (s *pantryService) CreatePantry(ctx context.Context, input *usecase.CreatePantryInput) (*entity.Pantry, error) {
	actor, err := requireIdentity(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	pantry := &entity.Pantry{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Location:     input.Location,
		CreatedBy:    actor.ID,
		InStock:      []entity.Item{},
		ShoppingList: []entity.Item{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	pantry.AddMember(actor.ID, entity.Member{
		Role:    entity.RoleOwner,
		AddedAt: now,
		AddedBy: actor.ID,
	})

	if err := s.pantryRepo.Create(ctx, pantry); err != nil {
		return nil, mapRepoErr(err)
	}

	// Install optimistically; the membership watch will confirm shortly.
	s.mu.Lock()
	pantries := make([]*entity.Pantry, 0, len(s.pantries)+1)
	pantries = append(pantries, s.pantries...)
	pantries = append(pantries, pantry)
	s.pantries = pantries
	s.current = pantry
	s.notifySelection(pantry.ID)
	s.mu.Unlock()

	s.publish(ctx, service.EventPantryCreated, pantry.ID, actor.ID, "")

	return pantry, nil
}

func (s *pantryService) DeletePantry(ctx context.Context, id string) error {
	actor, err := requireIdentity(ctx)
	if err != nil {
		return err
	}

	pantry, err := s.findPantry(ctx, id)
	if err != nil {
		return err
	}
	if !pantry.IsOwner(actor.ID) {
		return domainerrors.ErrUnauthorized
	}

	if err := s.pantryRepo.Delete(ctx, id); err != nil {
		return mapRepoErr(err)
	}

	s.mu.Lock()
	s.removeLocked(id)
	s.mu.Unlock()

	s.publish(ctx, service.EventPantryDeleted, id, actor.ID, "")

	return nil
}

func (s *pantryService) SelectPantry(ctx context.Context, id string) error {
	if _, err := requireIdentity(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" {
		if s.current != nil {
			s.current = nil
			s.notifySelection("")
		}

		return nil
	}

	if s.current != nil && s.current.ID == id {
		return nil
	}

	for _, p := range s.pantries {
		if p.ID == id {
			s.current = p
			s.syncStatus = usecase.SyncStatusSynced
			s.syncErr = ""
			s.notifySelection(id)

			return nil
		}
	}

	return domainerrors.ErrPantryNotFound
}

func (s *pantryService) AddItem(ctx context.Context, list entity.ListName, draft entity.ItemDraft) (*entity.Item, error) {
	actor, err := requireIdentity(ctx)
	if err != nil {
		return nil, err
	}
	if !list.Valid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown list: " + string(list))
	}

	var created entity.Item
	next, prev, err := s.applyOptimistic(func(p *entity.Pantry) error {
		items, item, err := entity.AddItem(p.List(list), draft, time.Now())
		if err != nil {
			return mapItemErr(err)
		}
		p.SetList(list, items)
		created = item

		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.confirm(ctx, next, prev); err != nil {
		return nil, err
	}
	s.publish(ctx, service.EventItemAdded, next.ID, actor.ID, created.ID)

	return &created, nil
}

func (s *pantryService) UpdateItem(ctx context.Context, list entity.ListName, item entity.Item) error {
	actor, err := requireIdentity(ctx)
	if err != nil {
		return err
	}
	if !list.Valid() {
		return domainerrors.ErrValidationFailed.WithDetails("unknown list: " + string(list))
	}

	next, prev, err := s.applyOptimistic(func(p *entity.Pantry) error {
		items, err := entity.UpdateItem(p.List(list), item, time.Now())
		if err != nil {
			return mapItemErr(err)
		}
		p.SetList(list, items)

		return nil
	})
	if err != nil {
		return err
	}

	if err := s.confirm(ctx, next, prev); err != nil {
		return err
	}
	s.publish(ctx, service.EventItemUpdated, next.ID, actor.ID, item.ID)

	return nil
}

func (s *pantryService) RemoveItem(ctx context.Context, list entity.ListName, itemID string) error {
	actor, err := requireIdentity(ctx)
	if err != nil {
		return err
	}
	if !list.Valid() {
		return domainerrors.ErrValidationFailed.WithDetails("unknown list: " + string(list))
	}

	next, prev, err := s.applyOptimistic(func(p *entity.Pantry) error {
		items, err := entity.RemoveItem(p.List(list), itemID)
		if err != nil {
			return mapItemErr(err)
		}
		p.SetList(list, items)

		return nil
	})
	if err != nil {
		return err
	}

	if err := s.confirm(ctx, next, prev); err != nil {
		return err
	}
	s.publish(ctx, service.EventItemRemoved, next.ID, actor.ID, itemID)

	return nil
}

func (s *pantryService) MoveItem(ctx context.Context, from, to entity.ListName, itemID string) error {
	actor, err := requireIdentity(ctx)
	if err != nil {
		return err
	}
	if !from.Valid() || !to.Valid() || from == to {
		return domainerrors.ErrValidationFailed.WithDetails("invalid list pair")
	}

	next, prev, err := s.applyOptimistic(func(p *entity.Pantry) error {
		newFrom, newTo, err := entity.MoveItem(p.List(from), p.List(to), itemID, time.Now())
		if err != nil {
			return mapItemErr(err)
		}
		p.SetList(from, newFrom)
		p.SetList(to, newTo)

		return nil
	})
	if err != nil {
		return err
	}

	if err := s.confirm(ctx, next, prev); err != nil {
		return err
	}
	s.publish(ctx, service.EventItemMoved, next.ID, actor.ID, itemID)

	return nil
}

// State returns a copy of the projection.
func (s *pantryService) State() *usecase.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	pantries := make([]*entity.Pantry, len(s.pantries))
	copy(pantries, s.pantries)

	return &usecase.State{
		Pantries:   pantries,
		Current:    s.current,
		Loading:    s.loading,
		SyncStatus: s.syncStatus,
		Error:      s.syncErr,
	}
}

func (s *pantryService) SelectionChanges() <-chan string {
	return s.selectionCh
}

// ApplyListSnapshot replaces the pantry list with the latest remote push.
// Last snapshot wins: any optimistic state for pantries in the list is
// overwritten. The selection is reconciled against the new list; with no
// prior selection the first pantry is selected automatically.
func (s *pantryService) ApplyListSnapshot(pantries []*entity.Pantry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if pantries == nil {
		pantries = []*entity.Pantry{}
	}
	s.pantries = pantries
	s.loading = false
	if s.syncStatus == usecase.SyncStatusError {
		s.syncStatus = usecase.SyncStatusSynced
		s.syncErr = ""
	}

	if s.current != nil {
		for _, p := range pantries {
			if p.ID == s.current.ID {
				s.current = p

				return
			}
		}
		// The selected pantry is gone from the membership set.
		s.current = nil
		s.notifySelection("")

		return
	}

	if len(pantries) > 0 {
		s.current = pantries[0]
		s.notifySelection(pantries[0].ID)
	}
}

// ApplyPantrySnapshot reconciles a detail-watch push for the selected pantry.
// Stale pushes for a previously selected pantry are dropped.
func (s *pantryService) ApplyPantrySnapshot(snap repository.PantrySnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil || s.current.ID != snap.ID {
		return
	}

	if !snap.Exists {
		s.removeLocked(snap.ID)
		s.syncStatus = usecase.SyncStatusError
		s.syncErr = "the selected pantry was deleted"

		return
	}

	s.replaceLocked(snap.Pantry)
	s.syncStatus = usecase.SyncStatusSynced
	s.syncErr = ""
}

func (s *pantryService) SetSyncError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.syncStatus = usecase.SyncStatusError
	s.syncErr = msg
}

func (s *pantryService) BeginLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = true
}

// Reset clears the projection, typically on sign-out.
func (s *pantryService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pantries = []*entity.Pantry{}
	s.loading = false
	s.syncStatus = usecase.SyncStatusSynced
	s.syncErr = ""
	if s.current != nil {
		s.current = nil
		s.notifySelection("")
	}
}

// applyOptimistic clones the selected pantry, applies the mutation to the
// clone and installs it as the new projection with status syncing. It returns
// the installed pantry and the untouched pre-mutation value for rollback.
func (s *pantryService) applyOptimistic(mutate func(*entity.Pantry) error) (next, prev *entity.Pantry, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, nil, domainerrors.ErrNoPantrySelected
	}

	prev = s.current
	next = prev.Clone()
	if err := mutate(next); err != nil {
		return nil, nil, err
	}
	next.UpdatedAt = time.Now()

	s.replaceLocked(next)
	s.syncStatus = usecase.SyncStatusSyncing

	return next, prev, nil
}

// confirm pushes the optimistic lists to the remote store. On failure the
// exact pre-mutation projection is restored and the mapped error returned.
func (s *pantryService) confirm(ctx context.Context, next, prev *entity.Pantry) error {
	if err := s.pantryRepo.UpdateLists(ctx, next.ID, next.InStock, next.ShoppingList); err != nil {
		s.rollback(next, prev)

		return mapRepoErr(err)
	}

	s.mu.Lock()
	if s.current != nil && s.current.ID == next.ID && s.syncStatus == usecase.SyncStatusSyncing {
		s.syncStatus = usecase.SyncStatusSynced
	}
	s.mu.Unlock()

	return nil
}

// rollback restores the pre-mutation pantry, unless the projection has moved
// on (deselection or a newer install) since the optimistic write.
func (s *pantryService) rollback(next, prev *entity.Pantry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != next {
		return
	}

	s.replaceLocked(prev)
	s.syncStatus = usecase.SyncStatusSynced
}

// replaceLocked installs the pantry as current and swaps it into the list.
// Caller holds s.mu.
func (s *pantryService) replaceLocked(p *entity.Pantry) {
	s.current = p
	pantries := make([]*entity.Pantry, len(s.pantries))
	copy(pantries, s.pantries)
	for i, existing := range pantries {
		if existing.ID == p.ID {
			pantries[i] = p

			break
		}
	}
	s.pantries = pantries
}

// removeLocked drops the pantry from the list and deselects it if selected.
// Caller holds s.mu.
func (s *pantryService) removeLocked(id string) {
	pantries := make([]*entity.Pantry, 0, len(s.pantries))
	for _, p := range s.pantries {
		if p.ID != id {
			pantries = append(pantries, p)
		}
	}
	s.pantries = pantries

	if s.current != nil && s.current.ID == id {
		s.current = nil
		s.notifySelection("")
	}
}

// notifySelection coalesces selection changes to the latest value. Caller
// holds s.mu, so there is never a second concurrent sender and the send
// after the drain cannot block.
func (s *pantryService) notifySelection(id string) {
	select {
	case <-s.selectionCh:
	default:
	}
	s.selectionCh <- id
}

// findPantry resolves a pantry from the projection, falling back to the store.
func (s *pantryService) findPantry(ctx context.Context, id string) (*entity.Pantry, error) {
	s.mu.Lock()
	for _, p := range s.pantries {
		if p.ID == id {
			s.mu.Unlock()

			return p, nil
		}
	}
	s.mu.Unlock()

	pantry, err := s.pantryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}

	return pantry, nil
}

func (s *pantryService) publish(ctx context.Context, eventType, pantryID, actorID, itemID string) {
	event := &service.PantryEvent{
		Type:       eventType,
		PantryID:   pantryID,
		ActorID:    actorID,
		ItemID:     itemID,
		OccurredAt: time.Now(),
	}
	if err := s.publisher.PublishPantryEvent(ctx, event); err != nil {
		s.logger.Warn("failed to publish pantry event",
			slog.String("type", eventType),
			slog.String("pantryID", pantryID),
			slog.Any("error", err))
	}
}

func mapItemErr(err error) error {
	switch {
	case errors.Is(err, entity.ErrItemNotFound):
		return domainerrors.ErrItemNotFound
	case errors.Is(err, entity.ErrInvalidItem):
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return err
}
