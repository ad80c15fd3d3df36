package models

import (
	"time"

	"github.com/google/uuid"
)

// Member roles within a group. RoleNone is the resolved role of a caller with
// no membership; it is never stored.
const (
	RoleNone   = ""
	RoleMember = "member"
	RoleElder  = "elder"
	RoleAdmin  = "admin"
)

var roleRank = map[string]int{
	RoleNone:   0,
	RoleMember: 1,
	RoleElder:  2,
	RoleAdmin:  3,
}

// RoleAtLeast reports whether role meets the required minimum role.
func RoleAtLeast(role, minimum string) bool {
	return roleRank[role] >= roleRank[minimum]
}

// ValidRole reports whether r is a storable member role.
func ValidRole(r string) bool {
	return r == RoleMember || r == RoleElder || r == RoleAdmin
}

// Member links a user to a group. CyclePosition is the member's slot in the
// payout rotation, unique within the group.
type Member struct {
	ID            uuid.UUID `json:"id"`
	GroupID       uuid.UUID `json:"groupId"`
	UserID        string    `json:"userId"`
	Role          string    `json:"role"`
	CyclePosition int       `json:"cyclePosition"`
	JoinedAt      time.Time `json:"joinedAt"`
}

// MemberUpdate carries the mutable member fields. Nil means "leave unchanged".
type MemberUpdate struct {
	Role          *string `json:"role,omitempty"`
	CyclePosition *int    `json:"cyclePosition,omitempty"`
}
