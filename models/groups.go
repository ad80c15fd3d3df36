package models

import (
	"time"

	"github.com/google/uuid"
)

// Contribution frequencies supported for a group schedule.
const (
	FrequencyWeekly   = "weekly"
	FrequencyBiWeekly = "bi-weekly"
	FrequencyMonthly  = "monthly"
)

// ValidFrequency reports whether f is one of the supported schedules.
func ValidFrequency(f string) bool {
	switch f {
	case FrequencyWeekly, FrequencyBiWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// Group is a rotating-savings circle. CurrentCycle is the next cycle number
// to assign; it is a monotonic sequence counter, not a count of completed
// cycles.
type Group struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Description        string    `json:"description,omitempty"`
	ContributionAmount float64   `json:"contributionAmount"`
	Frequency          string    `json:"frequency"`
	TotalMembers       int       `json:"totalMembers"`
	CurrentCycle       int       `json:"currentCycle"`
	AdminID            string    `json:"adminId"`
	IsActive           bool      `json:"isActive"`
	CreatedAt          time.Time `json:"createdAt"`
	MemberCount        int       `json:"memberCount,omitempty"`
}

// GroupUpdate carries the mutable group fields. Nil means "leave unchanged".
type GroupUpdate struct {
	Name               *string  `json:"name,omitempty"`
	Description        *string  `json:"description,omitempty"`
	ContributionAmount *float64 `json:"contributionAmount,omitempty"`
	Frequency          *string  `json:"frequency,omitempty"`
	TotalMembers       *int     `json:"totalMembers,omitempty"`
	IsActive           *bool    `json:"isActive,omitempty"`
}
