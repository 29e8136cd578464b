package impl

import (
	"strings"
	"testing"
	"time"

	"pantry/internal/domain/entity"
	domainerrors "pantry/internal/domain/errors"
	"pantry/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInviteService(repo *fakePantryRepo) (usecase.InviteUsecase, *fakePublisher, *fakeQRCode) {
	publisher := &fakePublisher{}
	qr := &fakeQRCode{}
	svc := NewInviteService(InviteServiceParams{
		PantryRepo:    repo,
		TxManager:     &fakeTxManager{pantryRepo: repo, userRepo: newFakeUserRepo()},
		QRCodeService: qr,
		Publisher:     publisher,
		Config:        testConfig(),
		Logger:        newDiscardLogger(),
	})

	return svc, publisher, qr
}

func issueInvite(t *testing.T, svc usecase.InviteUsecase, owner, pantryID string) *usecase.InviteOutput {
	t.Helper()

	out, err := svc.CreateInvite(authedCtx(owner), pantryID)
	require.NoError(t, err)

	return out
}

func TestInviteService_CreateInvite_Success(t *testing.T) {
	repo := newFakePantryRepo(testPantry("p1", "alice"))
	svc, publisher, _ := newInviteService(repo)

	out := issueInvite(t, svc, "alice", "p1")

	assert.Len(t, out.Code, 8)
	for _, c := range out.Code {
		assert.Contains(t, inviteAlphabet, string(c))
	}
	assert.Equal(t, "https://pantry.example.com/join/"+out.Code, out.JoinURL)
	assert.WithinDuration(t, time.Now().Add(72*time.Hour), out.ExpiresAt, time.Minute)

	stored := repo.stored("p1")
	require.Contains(t, stored.InviteLinks, out.Code)
	assert.Contains(t, stored.InviteCodes, out.Code)
	assert.Equal(t, "alice", stored.InviteLinks[out.Code].CreatedBy)
	assert.Contains(t, publisher.types(), "invite.created")
}

func TestInviteService_CreateInvite_NotOwner(t *testing.T) {
	repo := newFakePantryRepo(testPantry("p1", "alice", "bob"))
	svc, _, _ := newInviteService(repo)

	_, err := svc.CreateInvite(authedCtx("bob"), "p1")

	require.ErrorIs(t, err, domainerrors.ErrUnauthorized)
	assert.Empty(t, repo.stored("p1").InviteLinks)
}

func TestInviteService_CreateInvite_PantryGone(t *testing.T) {
	svc, _, _ := newInviteService(newFakePantryRepo())

	_, err := svc.CreateInvite(authedCtx("alice"), "missing")

	require.ErrorIs(t, err, domainerrors.ErrPantryNotFound)
}

func TestInviteService_ValidateInvite_UnknownCode(t *testing.T) {
	svc, _, _ := newInviteService(newFakePantryRepo(testPantry("p1", "alice")))

	err := svc.ValidateInvite(authedCtx("bob"), "nosuchcode")

	require.ErrorIs(t, err, domainerrors.ErrInvalidInvite)
}

func TestInviteService_ValidateInvite_Expired(t *testing.T) {
	pantry := testPantry("p1", "alice")
	pantry.AddInviteLink("expired99", entity.InviteLink{
		CreatedAt: time.Now().Add(-100 * time.Hour),
		CreatedBy: "alice",
		ExpiresAt: time.Now().Add(-time.Hour),
	})
	svc, _, _ := newInviteService(newFakePantryRepo(pantry))

	err := svc.ValidateInvite(authedCtx("bob"), "expired99")

	require.ErrorIs(t, err, domainerrors.ErrInviteExpired)
}

func TestInviteService_InviteQR_EncodesJoinURL(t *testing.T) {
	repo := newFakePantryRepo(testPantry("p1", "alice"))
	svc, _, qr := newInviteService(repo)
	out := issueInvite(t, svc, "alice", "p1")

	png, err := svc.InviteQR(authedCtx("bob"), out.Code)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(png), "png:"))
	assert.Equal(t, out.JoinURL, qr.lastURL)
}

func TestInviteService_RedeemInvite_Success(t *testing.T) {
	repo := newFakePantryRepo(testPantry("p1", "alice"))
	svc, publisher, _ := newInviteService(repo)
	out := issueInvite(t, svc, "alice", "p1")

	joined, err := svc.RedeemInvite(authedCtx("bob"), out.Code)

	require.NoError(t, err)
	role, ok := joined.MemberRole("bob")
	require.True(t, ok)
	assert.Equal(t, entity.RoleEditor, role)
	assert.Equal(t, "alice", joined.Members["bob"].AddedBy)

	stored := repo.stored("p1")
	assert.True(t, stored.InviteLinks[out.Code].Used)
	assert.NotContains(t, stored.InviteCodes, out.Code)
	assert.Contains(t, stored.MemberIDs, "bob")
	assert.Contains(t, publisher.types(), "member.joined")
}

func TestInviteService_RedeemInvite_SecondRedeemRejected(t *testing.T) {
	repo := newFakePantryRepo(testPantry("p1", "alice"))
	svc, _, _ := newInviteService(repo)
	out := issueInvite(t, svc, "alice", "p1")

	_, err := svc.RedeemInvite(authedCtx("bob"), out.Code)
	require.NoError(t, err)

	_, err = svc.RedeemInvite(authedCtx("carol"), out.Code)

	require.ErrorIs(t, err, domainerrors.ErrInvalidInvite)
	_, isMember := repo.stored("p1").MemberRole("carol")
	assert.False(t, isMember)
}

func TestInviteService_RedeemInvite_AlreadyMember(t *testing.T) {
	repo := newFakePantryRepo(testPantry("p1", "alice", "bob"))
	svc, _, _ := newInviteService(repo)
	out := issueInvite(t, svc, "alice", "p1")

	_, err := svc.RedeemInvite(authedCtx("bob"), out.Code)

	require.ErrorIs(t, err, domainerrors.ErrAlreadyMember)
	// The code survives a rejected redemption.
	assert.Contains(t, repo.stored("p1").InviteCodes, out.Code)
}

func TestInviteService_RedeemInvite_Expired(t *testing.T) {
	pantry := testPantry("p1", "alice")
	pantry.AddInviteLink("expired99", entity.InviteLink{
		CreatedAt: time.Now().Add(-100 * time.Hour),
		CreatedBy: "alice",
		ExpiresAt: time.Now().Add(-time.Hour),
	})
	repo := newFakePantryRepo(pantry)
	svc, _, _ := newInviteService(repo)

	_, err := svc.RedeemInvite(authedCtx("bob"), "expired99")

	require.ErrorIs(t, err, domainerrors.ErrInviteExpired)
	assert.NotContains(t, repo.stored("p1").MemberIDs, "bob")
}
