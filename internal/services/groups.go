package services

import (
	"github.com/google/uuid"

	"github.com/hagbad-hub/ayuuto-services/internal/apperrors"
	"github.com/hagbad-hub/ayuuto-services/models"
)

// CreateGroupInput carries the fields needed to open a new savings circle.
type CreateGroupInput struct {
	Name               string  `json:"name"`
	Description        string  `json:"description"`
	ContributionAmount float64 `json:"contributionAmount"`
	Frequency          string  `json:"frequency"`
	TotalMembers       int     `json:"totalMembers"`
}

// CreateGroup opens a new group with the caller as admin and first member of
// the rotation.
func (s *Service) CreateGroup(in CreateGroupInput, userID string) (*models.Group, error) {
	if in.Name == "" || in.TotalMembers < 1 {
		return nil, apperrors.ErrInvalidInput
	}
	if in.ContributionAmount <= 0 {
		return nil, apperrors.ErrInvalidAmount
	}
	if !models.ValidFrequency(in.Frequency) {
		return nil, apperrors.ErrInvalidInput
	}

	group := models.Group{
		Name:               in.Name,
		Description:        in.Description,
		ContributionAmount: in.ContributionAmount,
		Frequency:          in.Frequency,
		TotalMembers:       in.TotalMembers,
		AdminID:            userID,
	}

	return s.DB.CreateGroup(&group)
}

// ListGroups returns the groups the caller administers or belongs to.
func (s *Service) ListGroups(userID string, includeArchived bool) ([]models.Group, error) {
	return s.DB.ListGroupsForUser(userID, includeArchived)
}

// GetGroup returns a group to one of its members.
func (s *Service) GetGroup(groupID uuid.UUID, userID string) (*models.Group, error) {
	if _, err := s.requireRole(groupID, userID, models.RoleMember); err != nil {
		return nil, err
	}
	return s.DB.GetGroup(groupID)
}

// UpdateGroup applies group changes. Admin only. Reactivating an archived
// group is rejected: archival is terminal.
func (s *Service) UpdateGroup(groupID uuid.UUID, update models.GroupUpdate, userID string) (*models.Group, error) {
	if _, err := s.requireRole(groupID, userID, models.RoleAdmin); err != nil {
		return nil, err
	}

	group, err := s.DB.GetGroup(groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, apperrors.ErrNotFound
	}
	if !group.IsActive {
		return nil, apperrors.ErrNotFound
	}

	if update.ContributionAmount != nil && *update.ContributionAmount <= 0 {
		return nil, apperrors.ErrInvalidAmount
	}
	if update.Frequency != nil && !models.ValidFrequency(*update.Frequency) {
		return nil, apperrors.ErrInvalidInput
	}
	if update.IsActive != nil && *update.IsActive && !group.IsActive {
		return nil, apperrors.ErrInvalidInput
	}

	return s.DB.UpdateGroup(groupID, update)
}

// ArchiveGroup soft-deletes a group. Admin only.
func (s *Service) ArchiveGroup(groupID uuid.UUID, userID string) error {
	if _, err := s.requireRole(groupID, userID, models.RoleAdmin); err != nil {
		return err
	}
	return s.DB.ArchiveGroup(groupID)
}
