package services

import (
	"github.com/google/uuid"

	"github.com/hagbad-hub/ayuuto-services/internal/apperrors"
	"github.com/hagbad-hub/ayuuto-services/models"
)

// RoleOf resolves the caller's role within a group. Group.AdminID is the
// single source of truth for admin; the member row's role value covers elder
// and member. The result must be resolved fresh per request and never cached,
// since promotions and demotions take effect between calls.
//
// Returns apperrors.ErrNotFound when the group does not resolve.
func (s *Service) RoleOf(groupID uuid.UUID, userID string) (string, error) {
	group, err := s.DB.GetGroup(groupID)
	if err != nil {
		return models.RoleNone, err
	}
	if group == nil {
		return models.RoleNone, apperrors.ErrNotFound
	}

	if group.AdminID == userID {
		return models.RoleAdmin, nil
	}

	member, err := s.DB.GetMembership(groupID, userID)
	if err != nil {
		return models.RoleNone, err
	}
	if member == nil {
		return models.RoleNone, nil
	}
	// A stored admin role label is display convenience only; authority comes
	// from Group.AdminID above.
	if member.Role == models.RoleAdmin {
		return models.RoleMember, nil
	}
	return member.Role, nil
}

// requireRole resolves the caller's role and rejects callers below the
// minimum with ErrAccessDenied.
func (s *Service) requireRole(groupID uuid.UUID, userID, minimum string) (string, error) {
	role, err := s.RoleOf(groupID, userID)
	if err != nil {
		return models.RoleNone, err
	}
	if !models.RoleAtLeast(role, minimum) {
		return role, apperrors.ErrAccessDenied
	}
	return role, nil
}
