package models

import (
	"time"

	"github.com/google/uuid"
)

// Contribution statuses. A contribution only moves forward through
// pending -> confirmed -> verified.
const (
	ContributionPending   = "pending"
	ContributionConfirmed = "confirmed"
	ContributionVerified  = "verified"
)

var contributionRank = map[string]int{
	ContributionPending:   1,
	ContributionConfirmed: 2,
	ContributionVerified:  3,
}

// ContributionStatusRank orders statuses so transitions can be checked for
// forward movement. Unknown statuses rank zero.
func ContributionStatusRank(status string) int {
	return contributionRank[status]
}

// ValidContributionStatus reports whether s is a known contribution status.
func ValidContributionStatus(s string) bool {
	return contributionRank[s] != 0
}

// NextContributionStatus returns the status a contribution holds once it has
// total verifications: one attestation confirms, two or more reach quorum
// and verify. Status never moves backward, so a current status ranking above
// the computed one is kept.
func NextContributionStatus(current string, total int) string {
	next := ContributionConfirmed
	if total >= 2 {
		next = ContributionVerified
	}
	if ContributionStatusRank(next) > ContributionStatusRank(current) {
		return next
	}
	return current
}

// DefaultVerificationMethod is recorded when a verifier does not name one.
const DefaultVerificationMethod = "digital"

// Contribution is one member's payment record for a cycle. Amount is
// immutable once the contribution is verified.
type Contribution struct {
	ID            uuid.UUID `json:"id"`
	GroupID       uuid.UUID `json:"groupId"`
	CycleID       uuid.UUID `json:"cycleId"`
	MemberID      uuid.UUID `json:"memberId"`
	Amount        float64   `json:"amount"`
	Status        string    `json:"status"`
	ContributedAt time.Time `json:"contributedAt"`

	// ContributorUserID is the user behind MemberID, joined in on reads so
	// the self-verification rule can be applied without a second lookup.
	ContributorUserID string `json:"contributorUserId,omitempty"`

	// Verifications is ordered most recent first.
	Verifications []Verification `json:"verifications,omitempty"`
}

// Verification is one independent attestation of a contribution. At most one
// exists per (contribution, verifier) pair, enforced by the store.
type Verification struct {
	ID             uuid.UUID `json:"id"`
	ContributionID uuid.UUID `json:"contributionId"`
	VerifierID     string    `json:"verifierId"`
	Method         string    `json:"method"`
	Notes          string    `json:"notes,omitempty"`
	VerifiedAt     time.Time `json:"verifiedAt"`
}

// ContributionFilter selects contributions within a group. Optional fields
// are ignored when zero.
type ContributionFilter struct {
	GroupID  uuid.UUID
	CycleID  uuid.UUID
	MemberID uuid.UUID
	Status   string
}

// ContributionUpdate carries the mutable contribution fields. Nil means
// "leave unchanged".
type ContributionUpdate struct {
	Amount *float64 `json:"amount,omitempty"`
	Status *string  `json:"status,omitempty"`
}
