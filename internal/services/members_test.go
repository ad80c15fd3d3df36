package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/hagbad-hub/ayuuto-services/internal/apperrors"
	"github.com/hagbad-hub/ayuuto-services/internal/events"
	"github.com/hagbad-hub/ayuuto-services/models"
)

func TestAddMemberRequiresElder(t *testing.T) {
	f := newFixture()
	store := new(MockStore)
	svc := newTestService(store)

	f.expectRole(store, memberUser, f.member)

	_, err := svc.AddMember(f.group.ID, AddMemberInput{UserID: "newcomer"}, memberUser)

	assert.ErrorIs(t, err, apperrors.ErrAccessDenied)
}

func TestAddMemberDefaultsRole(t *testing.T) {
	f := newFixture()
	store := new(MockStore)
	svc := newTestService(store)

	f.expectRole(store, elderUser, f.elder)
	store.On("AddMember", mock.MatchedBy(func(m *models.Member) bool {
		return m.UserID == "newcomer" && m.Role == models.RoleMember
	})).Return(&models.Member{GroupID: f.group.ID, UserID: "newcomer", Role: models.RoleMember, CyclePosition: 5}, nil)

	member, err := svc.AddMember(f.group.ID, AddMemberInput{UserID: "newcomer"}, elderUser)

	assert.NoError(t, err)
	assert.Equal(t, models.RoleMember, member.Role)
}

func TestRemoveMemberBlockedAfterPayout(t *testing.T) {
	f := newFixture()
	store := new(MockStore)
	svc := newTestService(store)

	store.On("GetGroup", f.group.ID).Return(f.group, nil)
	store.On("GetMember", f.member.ID).Return(f.member, nil)
	store.On("CountCyclesForRecipient", f.member.ID).Return(1, nil)

	err := svc.RemoveMember(context.Background(), f.group.ID, f.member.ID, adminUser)

	assert.ErrorIs(t, err, apperrors.ErrMemberHasReceivedFunds)
	store.AssertNotCalled(t, "DeleteMember", mock.Anything)
}

func TestRemoveMemberPublishesEvent(t *testing.T) {
	f := newFixture()
	store := new(MockStore)
	publisher := new(MockEventPublisher)
	svc := newTestService(store)
	svc.Publisher = publisher

	store.On("GetGroup", f.group.ID).Return(f.group, nil)
	store.On("GetMember", f.member.ID).Return(f.member, nil)
	store.On("CountCyclesForRecipient", f.member.ID).Return(0, nil)
	store.On("DeleteMember", f.member.ID).Return(nil)
	publisher.On("Notify", mock.MatchedBy(func(e events.EventPayload) bool {
		return e.Type == events.MemberRemoved
	})).Return(nil)

	err := svc.RemoveMember(context.Background(), f.group.ID, f.member.ID, adminUser)

	assert.NoError(t, err)
	publisher.AssertExpectations(t)
}

func TestGetMemberCrossGroupNotFound(t *testing.T) {
	f := newFixture()
	other := newFixture()
	store := new(MockStore)
	svc := newTestService(store)

	f.expectRole(store, memberUser, f.member)
	store.On("GetMember", other.member.ID).Return(other.member, nil)

	_, err := svc.GetMember(f.group.ID, other.member.ID, memberUser)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateMemberRejectsZeroPosition(t *testing.T) {
	f := newFixture()
	store := new(MockStore)
	svc := newTestService(store)

	store.On("GetGroup", f.group.ID).Return(f.group, nil)
	store.On("GetMember", f.member.ID).Return(f.member, nil)

	position := 0
	_, err := svc.UpdateMember(f.group.ID, f.member.ID, models.MemberUpdate{CyclePosition: &position}, adminUser)

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
