package impl

import (
	"context"
	"log/slog"
	"sync"

	domainerrors "pantry/internal/domain/errors"
	"pantry/internal/domain/identity"
	"pantry/internal/domain/service"
	"pantry/internal/usecase"

	"go.uber.org/fx"
)

type sessionService struct {
	identityService service.IdentityService
	verifier        service.TokenVerifier
	userUsecase     usecase.UserUsecase
	inviteUsecase   usecase.InviteUsecase
	logger          *slog.Logger

	mu      sync.Mutex
	current *identity.Identity
	idToken string

	changes chan *identity.Identity
}

// SessionServiceParams holds dependencies for SessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	IdentityService service.IdentityService
	Verifier        service.TokenVerifier
	UserUsecase     usecase.UserUsecase
	InviteUsecase   usecase.InviteUsecase
	Logger          *slog.Logger
}

// NewSessionService creates the session usecase, the single holder of the
// signed-in identity.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	return &sessionService{
		identityService: params.IdentityService,
		verifier:        params.Verifier,
		userUsecase:     params.UserUsecase,
		inviteUsecase:   params.InviteUsecase,
		logger:          params.Logger,
		changes:         make(chan *identity.Identity, 1),
	}
}

func (s *sessionService) SignIn(ctx context.Context, input *usecase.SignInInput) (*service.Credentials, error) {
	creds, err := s.identityService.SignIn(ctx, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	return s.establish(ctx, creds)
}

func (s *sessionService) SignInWithProvider(ctx context.Context, input *usecase.ProviderSignInInput) (*service.Credentials, error) {
	creds, err := s.identityService.SignInWithProvider(ctx, input.ProviderID, input.IDToken)
	if err != nil {
		return nil, err
	}

	return s.establish(ctx, creds)
}

func (s *sessionService) SignUp(ctx context.Context, input *usecase.SignUpInput) (*service.Credentials, error) {
	creds, err := s.identityService.SignUp(ctx, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	return s.establish(ctx, creds)
}

// SignUpWithInvite registers a new account and joins it to the inviting
// pantry in one flow. The invite is checked before the account is created so
// a dead code fails fast; if redemption still fails afterwards the account
// exists but no session is established.
func (s *sessionService) SignUpWithInvite(ctx context.Context, input *usecase.InviteSignUpInput) (*service.Credentials, error) {
	if err := s.inviteUsecase.ValidateInvite(ctx, input.Code); err != nil {
		return nil, err
	}

	creds, err := s.identityService.SignUp(ctx, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	// The new identity is not installed yet, so pass it explicitly.
	actorCtx := identity.WithIdentity(ctx, &creds.Identity)
	if _, err := s.userUsecase.EnsureUser(actorCtx, creds.Identity); err != nil {
		return nil, err
	}
	if _, err := s.inviteUsecase.RedeemInvite(actorCtx, input.Code); err != nil {
		return nil, err
	}

	return s.install(creds), nil
}

func (s *sessionService) SignOut(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}

	s.current = nil
	s.idToken = ""
	s.notify(nil)

	return nil
}

func (s *sessionService) CurrentIdentity() *identity.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.current
}

// Verify checks the presented ID token cryptographically and against the
// active session: a valid token for a different account is still rejected.
func (s *sessionService) Verify(ctx context.Context, idToken string) (*identity.Identity, error) {
	uid, err := s.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, domainerrors.ErrUnauthenticated.WithDetails(err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil || s.current.ID != uid {
		return nil, domainerrors.ErrUnauthenticated
	}

	return s.current, nil
}

func (s *sessionService) IdentityChanges() <-chan *identity.Identity {
	return s.changes
}

// establish ensures the account document exists and installs the session.
func (s *sessionService) establish(ctx context.Context, creds *service.Credentials) (*service.Credentials, error) {
	actorCtx := identity.WithIdentity(ctx, &creds.Identity)
	if _, err := s.userUsecase.EnsureUser(actorCtx, creds.Identity); err != nil {
		return nil, err
	}

	return s.install(creds), nil
}

func (s *sessionService) install(creds *service.Credentials) *service.Credentials {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := creds.Identity
	s.current = &id
	s.idToken = creds.IDToken
	s.notify(s.current)
	s.logger.Info("session established", slog.String("userID", id.ID))

	return creds
}

// notify coalesces identity changes to the latest value. Caller holds s.mu,
// so the send after the drain cannot block.
func (s *sessionService) notify(id *identity.Identity) {
	select {
	case <-s.changes:
	default:
	}
	s.changes <- id
}
