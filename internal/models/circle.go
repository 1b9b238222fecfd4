package models

import "time"

// Role is a member's permission level inside a circle.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	}
	return false
}

// Circle is the closed membership group that owns a settlement ledger.
// Membership itself is managed by the surrounding application; the ledger
// keeps a roster so it can validate participants and snapshot names.
type Circle struct {
	// ID is the unique identifier for the circle (UUID format).
	ID string

	// Name is the display name of the circle (e.g., "Roommates").
	Name string

	// Members is the roster in join order.
	Members []Member

	CreatedAt time.Time
}

// Member is one entry of a circle roster.
type Member struct {
	MemberID    string
	DisplayName string
	Role        Role
	JoinedAt    time.Time
}

// Member looks up a roster entry by id.
func (c *Circle) Member(memberID string) (Member, bool) {
	for _, m := range c.Members {
		if m.MemberID == memberID {
			return m, true
		}
	}
	return Member{}, false
}

// IsMember reports whether memberID is on the roster.
func (c *Circle) IsMember(memberID string) bool {
	_, ok := c.Member(memberID)
	return ok
}

// CanManage reports whether the member is an owner or admin of the circle.
func (c *Circle) CanManage(memberID string) bool {
	m, ok := c.Member(memberID)
	return ok && (m.Role == RoleOwner || m.Role == RoleAdmin)
}
