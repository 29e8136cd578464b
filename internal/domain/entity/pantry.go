// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"slices"
	"time"
)

// Role describes what a member may do within a pantry.
type Role string

const (
	// RoleOwner may manage membership, invite links and delete the pantry.
	RoleOwner Role = "owner"
	// RoleEditor may mutate the item lists but not manage the pantry itself.
	RoleEditor Role = "editor"
)

// Member is a membership record of a pantry, keyed by user id in Pantry.Members.
type Member struct {
	Role    Role      `firestore:"role" json:"role"`
	AddedAt time.Time `firestore:"addedAt" json:"addedAt"`
	AddedBy string    `firestore:"addedBy" json:"addedBy"`
}

// InviteLink is a single-use invite code record. A code transitions from
// issued to consumed (Used=true) or expires once ExpiresAt has passed; both
// states are terminal and must be rejected on redemption.
type InviteLink struct {
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	CreatedBy string    `firestore:"createdBy" json:"createdBy"`
	ExpiresAt time.Time `firestore:"expiresAt" json:"expiresAt"`
	Used      bool      `firestore:"used" json:"used"`
}

// Expired reports whether the code is past its expiry at the given time.
func (l InviteLink) Expired(now time.Time) bool {
	return now.After(l.ExpiresAt)
}

// Pantry is the shared, owned unit of data: two item lists, a membership map
// and the invite links granting access to it.
//
// MemberIDs and InviteCodes are derived index fields kept in sync with the
// Members and InviteLinks maps on every write. Firestore cannot query over
// dynamic map keys, so the membership watch and invite lookup run
// array-contains queries against these fields instead.
type Pantry struct {
	ID           string                `firestore:"id" json:"id"`
	Name         string                `firestore:"name" json:"name"`
	Location     string                `firestore:"location" json:"location"`
	CreatedBy    string                `firestore:"createdBy" json:"createdBy"`
	InStock      []Item                `firestore:"inStock" json:"inStock"`
	ShoppingList []Item                `firestore:"shoppingList" json:"shoppingList"`
	Members      map[string]Member     `firestore:"members" json:"members"`
	MemberIDs    []string              `firestore:"memberIDs" json:"-"`
	InviteLinks  map[string]InviteLink `firestore:"inviteLinks" json:"inviteLinks,omitempty"`
	InviteCodes  []string              `firestore:"inviteCodes" json:"-"`
	CreatedAt    time.Time             `firestore:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time             `firestore:"updatedAt" json:"updatedAt"`
}

// List returns the named item collection.
func (p *Pantry) List(name ListName) []Item {
	if name == ListInStock {
		return p.InStock
	}

	return p.ShoppingList
}

// SetList replaces the named item collection.
func (p *Pantry) SetList(name ListName, items []Item) {
	if name == ListInStock {
		p.InStock = items
		return
	}
	p.ShoppingList = items
}

// MemberRole returns the role of the given user and whether they are a member.
func (p *Pantry) MemberRole(userID string) (Role, bool) {
	m, ok := p.Members[userID]

	return m.Role, ok
}

// IsOwner reports whether the given user holds the owner role.
func (p *Pantry) IsOwner(userID string) bool {
	role, ok := p.MemberRole(userID)

	return ok && role == RoleOwner
}

// AddMember records a membership and keeps the MemberIDs index in sync.
func (p *Pantry) AddMember(userID string, member Member) {
	if p.Members == nil {
		p.Members = make(map[string]Member)
	}
	p.Members[userID] = member
	if !slices.Contains(p.MemberIDs, userID) {
		p.MemberIDs = append(p.MemberIDs, userID)
	}
}

// AddInviteLink records an invite link and keeps the InviteCodes index in sync.
func (p *Pantry) AddInviteLink(code string, link InviteLink) {
	if p.InviteLinks == nil {
		p.InviteLinks = make(map[string]InviteLink)
	}
	p.InviteLinks[code] = link
	if !slices.Contains(p.InviteCodes, code) {
		p.InviteCodes = append(p.InviteCodes, code)
	}
}

// ConsumeInviteLink marks the code used and drops it from the active index.
func (p *Pantry) ConsumeInviteLink(code string) {
	link, ok := p.InviteLinks[code]
	if !ok {
		return
	}
	link.Used = true
	p.InviteLinks[code] = link
	p.InviteCodes = slices.DeleteFunc(p.InviteCodes, func(c string) bool { return c == code })
}

// Clone returns a deep copy of the pantry. The optimistic controller snapshots
// the projection through Clone before every mutation so that a failed remote
// write can restore the exact pre-mutation state.
func (p *Pantry) Clone() *Pantry {
	if p == nil {
		return nil
	}

	clone := *p
	clone.InStock = slices.Clone(p.InStock)
	clone.ShoppingList = slices.Clone(p.ShoppingList)
	clone.MemberIDs = slices.Clone(p.MemberIDs)
	clone.InviteCodes = slices.Clone(p.InviteCodes)
	if p.Members != nil {
		clone.Members = make(map[string]Member, len(p.Members))
		for id, m := range p.Members {
			clone.Members[id] = m
		}
	}
	if p.InviteLinks != nil {
		clone.InviteLinks = make(map[string]InviteLink, len(p.InviteLinks))
		for code, l := range p.InviteLinks {
			clone.InviteLinks[code] = l
		}
	}

	return &clone
}
