package impl

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"pantry/config"
	"pantry/internal/domain/entity"
	"pantry/internal/domain/identity"
	"pantry/internal/domain/repository"
	"pantry/internal/domain/service"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func authedCtx(userID string) context.Context {
	return identity.WithIdentity(context.Background(), &identity.Identity{
		ID:    userID,
		Email: userID + "@example.com",
	})
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Invite.TTL = 72 * time.Hour
	cfg.Invite.CodeLength = 8
	cfg.Invite.BaseURL = "https://pantry.example.com"

	return cfg
}

// listWrite records one UpdateLists call.
type listWrite struct {
	id           string
	inStock      []entity.Item
	shoppingList []entity.Item
}

// fakePantryRepo is an in-memory PantryRepository with injectable failures.
type fakePantryRepo struct {
	mu       sync.Mutex
	pantries map[string]*entity.Pantry

	createErr      error
	findErr        error
	updateErr      error
	updateListsErr error
	deleteErr      error
	watchErr       error

	listWrites []listWrite

	detailCh chan repository.PantrySnapshot
	listCh   chan []*entity.Pantry
	cancels  int
}

func newFakePantryRepo(pantries ...*entity.Pantry) *fakePantryRepo {
	repo := &fakePantryRepo{
		pantries: make(map[string]*entity.Pantry),
		detailCh: make(chan repository.PantrySnapshot, 4),
		listCh:   make(chan []*entity.Pantry, 4),
	}
	for _, p := range pantries {
		repo.pantries[p.ID] = p.Clone()
	}

	return repo
}

func (r *fakePantryRepo) Create(_ context.Context, pantry *entity.Pantry) error {
	if r.createErr != nil {
		return r.createErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.pantries[pantry.ID] = pantry.Clone()

	return nil
}

func (r *fakePantryRepo) FindByID(_ context.Context, id string) (*entity.Pantry, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	pantry, ok := r.pantries[id]
	if !ok {
		return nil, repository.ErrPantryNotFound
	}

	return pantry.Clone(), nil
}

func (r *fakePantryRepo) FindByInviteCode(_ context.Context, code string) (*entity.Pantry, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, pantry := range r.pantries {
		if slices.Contains(pantry.InviteCodes, code) {
			return pantry.Clone(), nil
		}
	}

	return nil, repository.ErrPantryNotFound
}

func (r *fakePantryRepo) Update(_ context.Context, pantry *entity.Pantry) error {
	if r.updateErr != nil {
		return r.updateErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pantries[pantry.ID]; !ok {
		return repository.ErrPantryNotFound
	}
	r.pantries[pantry.ID] = pantry.Clone()

	return nil
}

func (r *fakePantryRepo) UpdateLists(_ context.Context, id string, inStock, shoppingList []entity.Item) error {
	if r.updateListsErr != nil {
		return r.updateListsErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	pantry, ok := r.pantries[id]
	if !ok {
		return repository.ErrPantryNotFound
	}
	pantry.InStock = slices.Clone(inStock)
	pantry.ShoppingList = slices.Clone(shoppingList)
	r.listWrites = append(r.listWrites, listWrite{id: id, inStock: inStock, shoppingList: shoppingList})

	return nil
}

func (r *fakePantryRepo) Delete(_ context.Context, id string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pantries, id)

	return nil
}

func (r *fakePantryRepo) Watch(_ context.Context, _ string) (<-chan repository.PantrySnapshot, repository.CancelFunc, error) {
	if r.watchErr != nil {
		return nil, nil, r.watchErr
	}

	return r.detailCh, r.countCancel, nil
}

func (r *fakePantryRepo) WatchByMember(_ context.Context, _ string) (<-chan []*entity.Pantry, repository.CancelFunc, error) {
	if r.watchErr != nil {
		return nil, nil, r.watchErr
	}

	return r.listCh, r.countCancel, nil
}

func (r *fakePantryRepo) countCancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancels++
}

func (r *fakePantryRepo) cancelCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.cancels
}

func (r *fakePantryRepo) stored(id string) *entity.Pantry {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.pantries[id].Clone()
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User

	createErr error
	creates   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *user

	return &clone, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	if r.createErr != nil {
		return r.createErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *user
	r.users[user.ID] = &clone
	r.creates++

	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	clone := *user
	r.users[user.ID] = &clone

	return nil
}

// fakeTxManager runs the transaction function directly against the fakes.
type fakeTxManager struct {
	pantryRepo repository.PantryRepository
	userRepo   repository.UserRepository
	execErr    error
}

type fakeRepoFactory struct {
	pantryRepo repository.PantryRepository
	userRepo   repository.UserRepository
}

func (f fakeRepoFactory) PantryRepo() repository.PantryRepository { return f.pantryRepo }
func (f fakeRepoFactory) UserRepo() repository.UserRepository     { return f.userRepo }

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	if m.execErr != nil {
		return m.execErr
	}

	return fn(fakeRepoFactory{pantryRepo: m.pantryRepo, userRepo: m.userRepo})
}

// fakePublisher records published events.
type fakePublisher struct {
	mu     sync.Mutex
	events []*service.PantryEvent
	err    error
}

func (p *fakePublisher) PublishPantryEvent(_ context.Context, event *service.PantryEvent) error {
	if p.err != nil {
		return p.err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)

	return nil
}

func (p *fakePublisher) Close() error { return nil }

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	types := make([]string, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.Type)
	}

	return types
}

// fakeIdentityService returns canned credentials or a canned error.
type fakeIdentityService struct {
	creds *service.Credentials
	err   error

	signUps int
}

func (s *fakeIdentityService) SignIn(context.Context, string, string) (*service.Credentials, error) {
	return s.creds, s.err
}

func (s *fakeIdentityService) SignInWithProvider(context.Context, string, string) (*service.Credentials, error) {
	return s.creds, s.err
}

func (s *fakeIdentityService) SignUp(context.Context, string, string) (*service.Credentials, error) {
	s.signUps++

	return s.creds, s.err
}

// fakeVerifier resolves every token to a fixed uid.
type fakeVerifier struct {
	uid string
	err error
}

func (v *fakeVerifier) VerifyIDToken(context.Context, string) (string, error) {
	return v.uid, v.err
}

// fakeQRCode returns a recognizable payload instead of a real PNG.
type fakeQRCode struct {
	lastURL string
}

func (q *fakeQRCode) GenerateInviteQR(joinURL string) ([]byte, error) {
	q.lastURL = joinURL

	return []byte("png:" + joinURL), nil
}

func testPantry(id, owner string, members ...string) *entity.Pantry {
	now := time.Now().Add(-time.Hour)
	pantry := &entity.Pantry{
		ID:           id,
		Name:         "Home",
		CreatedBy:    owner,
		InStock:      []entity.Item{},
		ShoppingList: []entity.Item{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	pantry.AddMember(owner, entity.Member{Role: entity.RoleOwner, AddedAt: now, AddedBy: owner})
	for _, m := range members {
		pantry.AddMember(m, entity.Member{Role: entity.RoleEditor, AddedAt: now, AddedBy: owner})
	}

	return pantry
}
