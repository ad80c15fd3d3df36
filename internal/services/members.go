package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hagbad-hub/ayuuto-services/internal/apperrors"
	"github.com/hagbad-hub/ayuuto-services/internal/events"
	"github.com/hagbad-hub/ayuuto-services/models"
)

// AddMemberInput identifies the user joining and their optional rotation
// slot. A zero CyclePosition puts them at the end of the rotation.
type AddMemberInput struct {
	UserID        string `json:"userId"`
	Role          string `json:"role"`
	CyclePosition int    `json:"cyclePosition"`
}

// ListMembers returns the group roster in rotation order.
func (s *Service) ListMembers(groupID uuid.UUID, userID string) ([]models.Member, error) {
	if _, err := s.requireRole(groupID, userID, models.RoleMember); err != nil {
		return nil, err
	}
	return s.DB.ListMembers(groupID)
}

// GetMember returns one member of the caller's group. Ids resolving to a
// different group report NotFound, not the other group's record.
func (s *Service) GetMember(groupID, memberID uuid.UUID, userID string) (*models.Member, error) {
	if _, err := s.requireRole(groupID, userID, models.RoleMember); err != nil {
		return nil, err
	}

	member, err := s.DB.GetMember(memberID)
	if err != nil {
		return nil, err
	}
	if member == nil || member.GroupID != groupID {
		return nil, apperrors.ErrNotFound
	}
	return member, nil
}

// AddMember adds a user to the group. Elders and the admin may add members.
func (s *Service) AddMember(groupID uuid.UUID, in AddMemberInput, userID string) (*models.Member, error) {
	if _, err := s.requireRole(groupID, userID, models.RoleElder); err != nil {
		return nil, err
	}

	if in.UserID == "" {
		return nil, apperrors.ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = models.RoleMember
	}
	if !models.ValidRole(role) {
		return nil, apperrors.ErrInvalidInput
	}
	if in.CyclePosition < 0 {
		return nil, apperrors.ErrInvalidInput
	}

	member := models.Member{
		GroupID:       groupID,
		UserID:        in.UserID,
		Role:          role,
		CyclePosition: in.CyclePosition,
	}
	return s.DB.AddMember(&member)
}

// UpdateMember changes a member's role or rotation position. Admin only.
func (s *Service) UpdateMember(groupID, memberID uuid.UUID, update models.MemberUpdate, userID string) (*models.Member, error) {
	if _, err := s.requireRole(groupID, userID, models.RoleAdmin); err != nil {
		return nil, err
	}

	member, err := s.DB.GetMember(memberID)
	if err != nil {
		return nil, err
	}
	if member == nil || member.GroupID != groupID {
		return nil, apperrors.ErrNotFound
	}

	if update.Role != nil && !models.ValidRole(*update.Role) {
		return nil, apperrors.ErrInvalidInput
	}
	if update.CyclePosition != nil && *update.CyclePosition < 1 {
		return nil, apperrors.ErrInvalidInput
	}

	return s.DB.UpdateMember(memberID, update)
}

// RemoveMember deletes a member from the group. Admin only. A member who has
// been the recipient of any cycle, whatever that cycle's status, can never be
// removed; this is the one hard guard protecting rotation history.
func (s *Service) RemoveMember(ctx context.Context, groupID, memberID uuid.UUID, userID string) error {
	if _, err := s.requireRole(groupID, userID, models.RoleAdmin); err != nil {
		return err
	}

	member, err := s.DB.GetMember(memberID)
	if err != nil {
		return err
	}
	if member == nil || member.GroupID != groupID {
		return apperrors.ErrNotFound
	}

	received, err := s.DB.CountCyclesForRecipient(memberID)
	if err != nil {
		return err
	}
	if received > 0 {
		return apperrors.ErrMemberHasReceivedFunds
	}

	if err := s.DB.DeleteMember(memberID); err != nil {
		return err
	}

	s.publish(ctx, events.EventPayload{
		Type:      events.MemberRemoved,
		GroupID:   groupID.String(),
		EntityID:  memberID.String(),
		ActorID:   userID,
		Timestamp: time.Now().UTC().Unix(),
	})

	return nil
}
