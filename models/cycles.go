package models

import (
	"time"

	"github.com/google/uuid"
)

// Cycle statuses. Active cycles may move to completed or cancelled; both are
// terminal.
const (
	CycleActive    = "active"
	CycleCompleted = "completed"
	CycleCancelled = "cancelled"
)

// Cycle is one rotation period with exactly one designated recipient.
// CycleNumber is assigned from the group counter at creation and is never
// reused within a group.
type Cycle struct {
	ID          uuid.UUID `json:"id"`
	GroupID     uuid.UUID `json:"groupId"`
	CycleNumber int       `json:"cycleNumber"`
	RecipientID uuid.UUID `json:"recipientId"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`

	// Contributions is populated on detail reads only.
	Contributions []Contribution `json:"contributions,omitempty"`
}
