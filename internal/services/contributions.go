package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/hagbad-hub/ayuuto-services/internal/apperrors"
	"github.com/hagbad-hub/ayuuto-services/internal/events"
	"github.com/hagbad-hub/ayuuto-services/models"
)

// RecordContributionInput captures a payment against a cycle. MemberID is
// set when an admin or elder records on behalf of another member; left nil,
// the contribution is the caller's own and a self-verification is written
// with it.
type RecordContributionInput struct {
	CycleID  uuid.UUID  `json:"cycleId"`
	MemberID *uuid.UUID `json:"memberId,omitempty"`
	Amount   float64    `json:"amount"`
}

// RecordContribution validates and records a contribution against the given
// cycle. Any member of the group may record.
func (s *Service) RecordContribution(ctx context.Context, groupID uuid.UUID, in RecordContributionInput, userID string) (*models.Contribution, error) {
	if _, err := s.requireRole(groupID, userID, models.RoleMember); err != nil {
		return nil, err
	}

	if in.Amount <= 0 {
		return nil, apperrors.ErrInvalidAmount
	}

	cycle, err := s.DB.GetCycle(in.CycleID)
	if err != nil {
		return nil, err
	}
	if cycle == nil || cycle.GroupID != groupID {
		return nil, apperrors.ErrInvalidCycle
	}

	var contributorID uuid.UUID
	selfVerifierID := ""
	if in.MemberID != nil {
		contributor, err := s.DB.GetMember(*in.MemberID)
		if err != nil {
			return nil, err
		}
		if contributor == nil || contributor.GroupID != groupID {
			return nil, apperrors.ErrNotFound
		}
		contributorID = contributor.ID
	} else {
		// Self-recording requires a member row of the caller's own; an admin
		// without one must name the contributing member explicitly.
		membership, err := s.DB.GetMembership(groupID, userID)
		if err != nil {
			return nil, err
		}
		if membership == nil {
			return nil, apperrors.ErrInvalidInput
		}
		contributorID = membership.ID
		selfVerifierID = userID
	}

	contribution := models.Contribution{
		GroupID:  groupID,
		CycleID:  in.CycleID,
		MemberID: contributorID,
		Amount:   in.Amount,
	}
	created, err := s.DB.CreateContribution(&contribution, selfVerifierID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventPayload{
		Type:     events.ContributionRecorded,
		GroupID:  groupID.String(),
		EntityID: created.ID.String(),
		ActorID:  userID,
		Amount:   created.Amount,
	})

	return created, nil
}

// ListContributions returns the group's contributions, optionally narrowed
// by cycle, member or status.
func (s *Service) ListContributions(groupID uuid.UUID, filter models.ContributionFilter, userID string) ([]models.Contribution, error) {
	if _, err := s.requireRole(groupID, userID, models.RoleMember); err != nil {
		return nil, err
	}
	filter.GroupID = groupID
	if filter.Status != "" && !models.ValidContributionStatus(filter.Status) {
		return nil, apperrors.ErrInvalidInput
	}
	return s.DB.ListContributions(filter)
}

// GetContribution returns one contribution with its verifications, newest
// first.
func (s *Service) GetContribution(groupID, contributionID uuid.UUID, userID string) (*models.Contribution, error) {
	if _, err := s.requireRole(groupID, userID, models.RoleMember); err != nil {
		return nil, err
	}

	contribution, err := s.DB.GetContribution(contributionID)
	if err != nil {
		return nil, err
	}
	if contribution == nil || contribution.GroupID != groupID {
		return nil, apperrors.ErrNotFound
	}
	return contribution, nil
}

// UpdateContribution edits a contribution. Only the admin or the original
// contributor may edit at all; only the admin may set status; the amount is
// frozen once the contribution is verified.
func (s *Service) UpdateContribution(groupID, contributionID uuid.UUID, update models.ContributionUpdate, userID string) (*models.Contribution, error) {
	role, err := s.RoleOf(groupID, userID)
	if err != nil {
		return nil, err
	}

	contribution, err := s.DB.GetContribution(contributionID)
	if err != nil {
		return nil, err
	}
	if contribution == nil || contribution.GroupID != groupID {
		return nil, apperrors.ErrNotFound
	}

	isAdmin := role == models.RoleAdmin
	isContributor := contribution.ContributorUserID == userID
	if !isAdmin && !isContributor {
		return nil, apperrors.ErrAccessDenied
	}

	if update.Status != nil {
		if !isAdmin {
			return nil, apperrors.ErrAccessDenied
		}
		if !models.ValidContributionStatus(*update.Status) {
			return nil, apperrors.ErrInvalidInput
		}
	}

	if update.Amount != nil {
		if contribution.Status == models.ContributionVerified {
			return nil, apperrors.ErrImmutableRecord
		}
		if *update.Amount <= 0 {
			return nil, apperrors.ErrInvalidAmount
		}
	}

	return s.DB.UpdateContribution(contributionID, update)
}
