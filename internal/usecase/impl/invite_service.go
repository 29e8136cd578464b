package impl

import (
	"context"
	"crypto/rand"
	"log/slog"
	"strings"
	"time"

	"pantry/config"
	"pantry/internal/domain/entity"
	domainerrors "pantry/internal/domain/errors"
	"pantry/internal/domain/repository"
	"pantry/internal/domain/service"
	"pantry/internal/errors"
	"pantry/internal/usecase"

	"go.uber.org/fx"
)

// inviteAlphabet excludes visually ambiguous characters (0/o, 1/l/i) since
// codes are typed off QR-less invites.
const inviteAlphabet = "abcdefghjkmnpqrstuvwxyz23456789"

type inviteService struct {
	pantryRepo    repository.PantryRepository
	txManager     repository.TransactionManager
	qrcodeService service.QRCodeService
	publisher     service.EventPublisher
	config        *config.Config
	logger        *slog.Logger
}

// InviteServiceParams holds dependencies for InviteService, injected by Fx.
type InviteServiceParams struct {
	fx.In

	PantryRepo    repository.PantryRepository
	TxManager     repository.TransactionManager
	QRCodeService service.QRCodeService
	Publisher     service.EventPublisher
	Config        *config.Config
	Logger        *slog.Logger
}

// NewInviteService creates the invite usecase.
func NewInviteService(params InviteServiceParams) usecase.InviteUsecase {
	return &inviteService{
		pantryRepo:    params.PantryRepo,
		txManager:     params.TxManager,
		qrcodeService: params.QRCodeService,
		publisher:     params.Publisher,
		config:        params.Config,
		logger:        params.Logger,
	}
}

func (s *inviteService) CreateInvite(ctx context.Context, pantryID string) (*usecase.InviteOutput, error) {
	actor, err := requireIdentity(ctx)
	if err != nil {
		return nil, err
	}

	code, err := generateInviteCode(s.config.Invite.CodeLength)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	link := entity.InviteLink{
		CreatedAt: now,
		CreatedBy: actor.ID,
		ExpiresAt: now.Add(s.config.Invite.TTL),
	}

	err = s.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		pantry, err := repos.PantryRepo().FindByID(ctx, pantryID)
		if err != nil {
			return mapRepoErr(err)
		}
		if !pantry.IsOwner(actor.ID) {
			return domainerrors.ErrUnauthorized
		}

		pantry.AddInviteLink(code, link)

		return mapRepoErr(repos.PantryRepo().Update(ctx, pantry))
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, service.EventInviteCreated, pantryID, actor.ID)

	return &usecase.InviteOutput{
		Code:      code,
		JoinURL:   s.joinURL(code),
		ExpiresAt: link.ExpiresAt,
	}, nil
}

func (s *inviteService) InviteQR(ctx context.Context, code string) ([]byte, error) {
	if err := s.ValidateInvite(ctx, code); err != nil {
		return nil, err
	}

	png, err := s.qrcodeService.GenerateInviteQR(s.joinURL(code))
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate invite QR")
	}

	return png, nil
}

// ValidateInvite checks a code without consuming it. Consumed codes are
// absent from the lookup index, so they resolve to no pantry and report as
// invalid rather than leaking which pantry they once belonged to.
func (s *inviteService) ValidateInvite(ctx context.Context, code string) error {
	pantry, err := s.pantryRepo.FindByInviteCode(ctx, code)
	if err != nil {
		return mapInviteLookupErr(err)
	}

	_, err = activeLink(pantry, code, time.Now())

	return err
}

// RedeemInvite consumes the code and adds the caller as an editor, atomically.
// Two concurrent redemptions of the same code commit at most once; the loser
// reruns against the consumed state and fails with ErrInvalidInvite.
func (s *inviteService) RedeemInvite(ctx context.Context, code string) (*entity.Pantry, error) {
	actor, err := requireIdentity(ctx)
	if err != nil {
		return nil, err
	}

	var joined *entity.Pantry
	err = s.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		pantry, err := repos.PantryRepo().FindByInviteCode(ctx, code)
		if err != nil {
			return mapInviteLookupErr(err)
		}

		link, err := activeLink(pantry, code, time.Now())
		if err != nil {
			return err
		}
		if _, ok := pantry.MemberRole(actor.ID); ok {
			return domainerrors.ErrAlreadyMember
		}

		pantry.ConsumeInviteLink(code)
		pantry.AddMember(actor.ID, entity.Member{
			Role:    entity.RoleEditor,
			AddedAt: time.Now(),
			AddedBy: link.CreatedBy,
		})
		joined = pantry

		return mapRepoErr(repos.PantryRepo().Update(ctx, pantry))
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, service.EventMemberJoined, joined.ID, actor.ID)

	return joined, nil
}

func (s *inviteService) joinURL(code string) string {
	return strings.TrimSuffix(s.config.Invite.BaseURL, "/") + "/join/" + code
}

func (s *inviteService) publishEvent(ctx context.Context, eventType, pantryID, actorID string) {
	event := &service.PantryEvent{
		Type:       eventType,
		PantryID:   pantryID,
		ActorID:    actorID,
		OccurredAt: time.Now(),
	}
	if err := s.publisher.PublishPantryEvent(ctx, event); err != nil {
		s.logger.Warn("failed to publish invite event",
			slog.String("type", eventType),
			slog.String("pantryID", pantryID),
			slog.Any("error", err))
	}
}

// activeLink returns the link record if the code is still redeemable.
func activeLink(pantry *entity.Pantry, code string, now time.Time) (entity.InviteLink, error) {
	link, ok := pantry.InviteLinks[code]
	if !ok || link.Used {
		return entity.InviteLink{}, domainerrors.ErrInvalidInvite
	}
	if link.Expired(now) {
		return entity.InviteLink{}, domainerrors.ErrInviteExpired
	}

	return link, nil
}

func mapInviteLookupErr(err error) error {
	if errors.Is(err, repository.ErrPantryNotFound) {
		return domainerrors.ErrInvalidInvite
	}

	return mapRepoErr(err)
}

func generateInviteCode(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "failed to generate invite code")
	}
	for i, b := range buf {
		buf[i] = inviteAlphabet[int(b)%len(inviteAlphabet)]
	}

	return string(buf), nil
}
