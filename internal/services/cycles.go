package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hagbad-hub/ayuuto-services/internal/apperrors"
	"github.com/hagbad-hub/ayuuto-services/internal/events"
	"github.com/hagbad-hub/ayuuto-services/models"
)

// OpenCycleInput names the recipient and the period of a new cycle. The
// optional RecipientEmail, when notifications are enabled, receives the
// payout announcement.
type OpenCycleInput struct {
	RecipientID    uuid.UUID `json:"recipientId"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	RecipientEmail string    `json:"recipientEmail,omitempty"`
}

// CycleUpdateInput carries a terminal status and an optional corrected end
// date.
type CycleUpdateInput struct {
	Status  string     `json:"status"`
	EndDate *time.Time `json:"endDate,omitempty"`
}

// ListCycles returns the group's cycles, newest first.
func (s *Service) ListCycles(groupID uuid.UUID, userID string) ([]models.Cycle, error) {
	if _, err := s.requireRole(groupID, userID, models.RoleMember); err != nil {
		return nil, err
	}
	return s.DB.ListCycles(groupID)
}

// GetCycle returns one cycle with its contributions and their verifications.
func (s *Service) GetCycle(groupID, cycleID uuid.UUID, userID string) (*models.Cycle, error) {
	if _, err := s.requireRole(groupID, userID, models.RoleMember); err != nil {
		return nil, err
	}

	cycle, err := s.DB.GetCycle(cycleID)
	if err != nil {
		return nil, err
	}
	if cycle == nil || cycle.GroupID != groupID {
		return nil, apperrors.ErrNotFound
	}

	contributions, err := s.DB.ListCycleContributions(groupID, cycleID)
	if err != nil {
		return nil, err
	}
	cycle.Contributions = contributions

	return cycle, nil
}

// OpenCycle starts a new rotation period. Admin only. The cycle number is
// taken from the group counter, which the store bumps atomically so numbers
// strictly increase and are never reused, even across concurrent opens.
func (s *Service) OpenCycle(ctx context.Context, groupID uuid.UUID, in OpenCycleInput, userID string) (*models.Cycle, error) {
	if _, err := s.requireRole(groupID, userID, models.RoleAdmin); err != nil {
		return nil, err
	}

	if !in.StartDate.Before(in.EndDate) {
		return nil, apperrors.ErrInvalidDateRange
	}

	recipient, err := s.DB.GetMember(in.RecipientID)
	if err != nil {
		return nil, err
	}
	if recipient == nil || recipient.GroupID != groupID {
		return nil, apperrors.ErrRecipientNotInGroup
	}

	if !s.Config.Engine.AllowParallelCycles {
		active, err := s.DB.HasActiveCycle(groupID)
		if err != nil {
			return nil, err
		}
		if active {
			return nil, apperrors.ErrActiveCycleExists
		}
	}

	if s.Config.Engine.EnforceRotationOrder {
		next, err := s.DB.NextUnpaidMember(groupID)
		if err != nil {
			return nil, err
		}
		if next != nil && next.ID != recipient.ID {
			return nil, apperrors.ErrRotationOrder
		}
	}

	cycle := models.Cycle{
		GroupID:     groupID,
		RecipientID: in.RecipientID,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
	}
	created, err := s.DB.CreateCycle(&cycle)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventPayload{
		Type:     events.CycleOpened,
		GroupID:  groupID.String(),
		EntityID: created.ID.String(),
		ActorID:  userID,
	})

	s.announceRecipient(ctx, groupID, created, in.RecipientEmail)

	return created, nil
}

// UpdateCycleStatus closes or cancels a cycle. Admin only. Both transitions
// are terminal; nothing leaves completed or cancelled.
func (s *Service) UpdateCycleStatus(ctx context.Context, groupID, cycleID uuid.UUID, in CycleUpdateInput, userID string) (*models.Cycle, error) {
	if _, err := s.requireRole(groupID, userID, models.RoleAdmin); err != nil {
		return nil, err
	}

	if in.Status != models.CycleCompleted && in.Status != models.CycleCancelled {
		return nil, apperrors.ErrInvalidInput
	}

	cycle, err := s.DB.GetCycle(cycleID)
	if err != nil {
		return nil, err
	}
	if cycle == nil || cycle.GroupID != groupID {
		return nil, apperrors.ErrNotFound
	}
	if cycle.Status != models.CycleActive {
		return nil, apperrors.ErrCycleNotActive
	}

	updated, err := s.DB.UpdateCycleStatus(cycleID, in.Status, in.EndDate)
	if err != nil {
		return nil, err
	}

	eventType := events.CycleClosed
	if in.Status == models.CycleCancelled {
		eventType = events.CycleCancelled
	}
	s.publish(ctx, events.EventPayload{
		Type:     eventType,
		GroupID:  groupID.String(),
		EntityID: cycleID.String(),
		ActorID:  userID,
	})

	return updated, nil
}

// announceRecipient sends the payout email when notifications are configured
// and an address was provided. Best effort only.
func (s *Service) announceRecipient(ctx context.Context, groupID uuid.UUID, cycle *models.Cycle, email string) {
	if s.Announcer == nil || email == "" {
		return
	}

	group, err := s.DB.GetGroup(groupID)
	if err != nil || group == nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("could not load group for recipient announcement")
		return
	}

	if err := s.Announcer.AnnounceRecipient(ctx, email, group.Name, cycle.CycleNumber, group.ContributionAmount); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).
			Str("cycle_id", cycle.ID.String()).
			Msg("failed to send recipient announcement")
	}
}
