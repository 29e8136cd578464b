package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPantry() *Pantry {
	now := time.Now()
	p := &Pantry{
		ID:           "p1",
		Name:         "Home",
		CreatedBy:    "alice",
		InStock:      []Item{{ID: "i1", Name: "Eggs"}},
		ShoppingList: []Item{{ID: "i2", Name: "Milk"}},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	p.AddMember("alice", Member{Role: RoleOwner, AddedAt: now, AddedBy: "alice"})

	return p
}

func TestPantry_AddMember_KeepsIndexInSync(t *testing.T) {
	p := newTestPantry()

	p.AddMember("bob", Member{Role: RoleEditor, AddedBy: "alice"})
	p.AddMember("bob", Member{Role: RoleEditor, AddedBy: "alice"})

	assert.Equal(t, []string{"alice", "bob"}, p.MemberIDs)
	role, ok := p.MemberRole("bob")
	require.True(t, ok)
	assert.Equal(t, RoleEditor, role)
}

func TestPantry_IsOwner(t *testing.T) {
	p := newTestPantry()
	p.AddMember("bob", Member{Role: RoleEditor})

	assert.True(t, p.IsOwner("alice"))
	assert.False(t, p.IsOwner("bob"))
	assert.False(t, p.IsOwner("stranger"))
}

func TestPantry_InviteLinkLifecycle(t *testing.T) {
	p := newTestPantry()
	link := InviteLink{
		CreatedAt: time.Now(),
		CreatedBy: "alice",
		ExpiresAt: time.Now().Add(time.Hour),
	}

	p.AddInviteLink("code1234", link)
	assert.Contains(t, p.InviteCodes, "code1234")

	p.ConsumeInviteLink("code1234")

	assert.True(t, p.InviteLinks["code1234"].Used)
	assert.NotContains(t, p.InviteCodes, "code1234")
}

func TestPantry_ConsumeInviteLink_UnknownCodeIsNoop(t *testing.T) {
	p := newTestPantry()

	p.ConsumeInviteLink("missing")

	assert.Empty(t, p.InviteCodes)
}

func TestInviteLink_Expired(t *testing.T) {
	link := InviteLink{ExpiresAt: time.Now().Add(time.Hour)}

	assert.False(t, link.Expired(time.Now()))
	assert.True(t, link.Expired(time.Now().Add(2*time.Hour)))
}

func TestPantry_ListAccessors(t *testing.T) {
	p := newTestPantry()

	assert.Equal(t, "i1", p.List(ListInStock)[0].ID)
	assert.Equal(t, "i2", p.List(ListShopping)[0].ID)

	p.SetList(ListShopping, nil)
	assert.Nil(t, p.ShoppingList)
	assert.Len(t, p.InStock, 1)
}

func TestPantry_Clone_IsDeep(t *testing.T) {
	p := newTestPantry()
	p.AddInviteLink("code1234", InviteLink{CreatedBy: "alice", ExpiresAt: time.Now().Add(time.Hour)})

	clone := p.Clone()
	require.Equal(t, p, clone)

	clone.InStock[0].Name = "Bacon"
	clone.AddMember("bob", Member{Role: RoleEditor})
	clone.ConsumeInviteLink("code1234")

	assert.Equal(t, "Eggs", p.InStock[0].Name)
	_, ok := p.MemberRole("bob")
	assert.False(t, ok)
	assert.False(t, p.InviteLinks["code1234"].Used)
	assert.Contains(t, p.InviteCodes, "code1234")
}

func TestPantry_Clone_Nil(t *testing.T) {
	var p *Pantry

	assert.Nil(t, p.Clone())
}
