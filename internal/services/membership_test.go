package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/hagbad-hub/ayuuto-services/internal/apperrors"
	"github.com/hagbad-hub/ayuuto-services/models"
)

func TestRoleOfAdminComesFromGroup(t *testing.T) {
	f := newFixture()
	store := new(MockStore)
	svc := newTestService(store)

	store.On("GetGroup", f.group.ID).Return(f.group, nil)

	role, err := svc.RoleOf(f.group.ID, adminUser)

	assert.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, role)
	store.AssertExpectations(t)
}

func TestRoleOfStoredAdminLabelCarriesNoAuthority(t *testing.T) {
	f := newFixture()
	store := new(MockStore)
	svc := newTestService(store)

	// A member row labelled admin, but the group names someone else.
	labelled := &models.Member{ID: uuid.New(), GroupID: f.group.ID, UserID: otherUser, Role: models.RoleAdmin}
	store.On("GetGroup", f.group.ID).Return(f.group, nil)
	store.On("GetMembership", f.group.ID, otherUser).Return(labelled, nil)

	role, err := svc.RoleOf(f.group.ID, otherUser)

	assert.NoError(t, err)
	assert.Equal(t, models.RoleMember, role)
}

func TestRoleOfNonMember(t *testing.T) {
	f := newFixture()
	store := new(MockStore)
	svc := newTestService(store)

	store.On("GetGroup", f.group.ID).Return(f.group, nil)
	store.On("GetMembership", f.group.ID, "stranger").Return(nil, nil)

	role, err := svc.RoleOf(f.group.ID, "stranger")

	assert.NoError(t, err)
	assert.Equal(t, models.RoleNone, role)
}

func TestRoleOfUnknownGroup(t *testing.T) {
	store := new(MockStore)
	svc := newTestService(store)

	groupID := uuid.New()
	store.On("GetGroup", groupID).Return(nil, nil)

	_, err := svc.RoleOf(groupID, adminUser)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRequireRoleRejectsBelowMinimum(t *testing.T) {
	f := newFixture()
	store := new(MockStore)
	svc := newTestService(store)

	f.expectRole(store, memberUser, f.member)

	_, err := svc.requireRole(f.group.ID, memberUser, models.RoleElder)

	assert.ErrorIs(t, err, apperrors.ErrAccessDenied)
}
