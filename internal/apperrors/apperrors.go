// Package apperrors defines the business-rule errors surfaced by the ayuuto
// engine. Handlers map them onto HTTP statuses; anything not listed here is
// treated as an infrastructure fault.
package apperrors

import "errors"

// Access errors. Never retried.
var ErrAccessDenied = errors.New("access denied")

// NotFound covers both unresolvable ids and ids belonging to another group,
// so callers cannot distinguish the two.
var ErrNotFound = errors.New("not found")

// Validation errors.
var (
	ErrInvalidAmount    = errors.New("amount must be greater than zero")
	ErrInvalidCycle     = errors.New("invalid cycle for this group")
	ErrInvalidDateRange = errors.New("start date must be before end date")
	ErrInvalidInput     = errors.New("invalid input")

	ErrRecipientNotInGroup = errors.New("recipient is not a member of this group")
)

// Conflict errors: terminal business-rule rejections, not server faults.
var (
	ErrSelfVerification       = errors.New("cannot verify your own contribution")
	ErrDuplicateVerification  = errors.New("contribution already verified by this user")
	ErrImmutableRecord        = errors.New("cannot modify a verified contribution")
	ErrMemberHasReceivedFunds = errors.New("cannot remove a member who has already received funds")
	ErrDuplicateMember        = errors.New("user is already a member of this group")
	ErrDuplicatePosition      = errors.New("cycle position is already assigned in this group")
	ErrMemberHasLedgerRecords = errors.New("cannot remove a member with recorded contributions")
	ErrCycleNotActive         = errors.New("cycle is not active")
	ErrActiveCycleExists      = errors.New("group already has an active cycle")
	ErrRotationOrder          = errors.New("recipient is not next in the rotation order")
)
