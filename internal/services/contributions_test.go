package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/hagbad-hub/ayuuto-services/internal/apperrors"
	"github.com/hagbad-hub/ayuuto-services/models"
)

func activeCycle(f *fixture, recipient *models.Member) *models.Cycle {
	return &models.Cycle{
		ID:          uuid.New(),
		GroupID:     f.group.ID,
		CycleNumber: 1,
		RecipientID: recipient.ID,
		Status:      models.CycleActive,
	}
}

// Self-recording writes the contribution and its self-verification together.
func TestRecordContributionSelf(t *testing.T) {
	f := newFixture()
	store := new(MockStore)
	svc := newTestService(store)

	cycle := activeCycle(f, f.admin)

	f.expectRole(store, memberUser, f.member)
	store.On("GetCycle", cycle.ID).Return(cycle, nil)
	store.On("GetMembership", f.group.ID, memberUser).Return(f.member, nil)
	store.On("CreateContribution", mock.AnythingOfType("*models.Contribution"), memberUser).
		Return(&models.Contribution{ID: uuid.New(), GroupID: f.group.ID, CycleID: cycle.ID, MemberID: f.member.ID, Amount: 100, Status: models.ContributionPending}, nil)

	created, err := svc.RecordContribution(context.Background(), f.group.ID, RecordContributionInput{CycleID: cycle.ID, Amount: 100}, memberUser)

	assert.NoError(t, err)
	assert.Equal(t, models.ContributionPending, created.Status)
	store.AssertExpectations(t)
}

// Recording on behalf of another member must not self-verify.
func TestRecordContributionOnBehalf(t *testing.T) {
	f := newFixture()
	store := new(MockStore)
	svc := newTestService(store)

	cycle := activeCycle(f, f.admin)

	f.expectRole(store, elderUser, f.elder)
	store.On("GetCycle", cycle.ID).Return(cycle, nil)
	store.On("GetMember", f.member.ID).Return(f.member, nil)
	store.On("CreateContribution", mock.AnythingOfType("*models.Contribution"), "").
		Return(&models.Contribution{ID: uuid.New(), GroupID: f.group.ID, CycleID: cycle.ID, MemberID: f.member.ID, Amount: 100, Status: models.ContributionPending}, nil)

	_, err := svc.RecordContribution(context.Background(), f.group.ID, RecordContributionInput{CycleID: cycle.ID, MemberID: &f.member.ID, Amount: 100}, elderUser)

	assert.NoError(t, err)
	store.AssertExpectations(t)
}

func TestRecordContributionRejectsNonPositiveAmount(t *testing.T) {
	f := newFixture()
	store := new(MockStore)
	svc := newTestService(store)

	f.expectRole(store, memberUser, f.member)

	_, err := svc.RecordContribution(context.Background(), f.group.ID, RecordContributionInput{CycleID: uuid.New(), Amount: 0}, memberUser)

	assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)
}

func TestRecordContributionRejectsForeignCycle(t *testing.T) {
	f := newFixture()
	other := newFixture()
	store := new(MockStore)
	svc := newTestService(store)

	foreignCycle := activeCycle(other, other.admin)

	f.expectRole(store, memberUser, f.member)
	store.On("GetCycle", foreignCycle.ID).Return(foreignCycle, nil)

	_, err := svc.RecordContribution(context.Background(), f.group.ID, RecordContributionInput{CycleID: foreignCycle.ID, Amount: 100}, memberUser)

	assert.ErrorIs(t, err, apperrors.ErrInvalidCycle)
}

func TestRecordContributionOnBehalfForeignMemberNotFound(t *testing.T) {
	f := newFixture()
	other := newFixture()
	store := new(MockStore)
	svc := newTestService(store)

	cycle := activeCycle(f, f.admin)

	f.expectRole(store, elderUser, f.elder)
	store.On("GetCycle", cycle.ID).Return(cycle, nil)
	store.On("GetMember", other.member.ID).Return(other.member, nil)

	_, err := svc.RecordContribution(context.Background(), f.group.ID, RecordContributionInput{CycleID: cycle.ID, MemberID: &other.member.ID, Amount: 100}, elderUser)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateContributionAmountFrozenOnceVerified(t *testing.T) {
	f := newFixture()
	store := new(MockStore)
	svc := newTestService(store)

	contribution := pendingContribution(f, f.member)
	contribution.Status = models.ContributionVerified

	f.expectRole(store, memberUser, f.member)
	store.On("GetContribution", contribution.ID).Return(contribution, nil)

	amount := 150.0
	_, err := svc.UpdateContribution(f.group.ID, contribution.ID, models.ContributionUpdate{Amount: &amount}, memberUser)

	assert.ErrorIs(t, err, apperrors.ErrImmutableRecord)
}

func TestUpdateContributionStatusAdminOnly(t *testing.T) {
	f := newFixture()
	store := new(MockStore)
	svc := newTestService(store)

	contribution := pendingContribution(f, f.member)

	f.expectRole(store, memberUser, f.member)
	store.On("GetContribution", contribution.ID).Return(contribution, nil)

	status := models.ContributionVerified
	_, err := svc.UpdateContribution(f.group.ID, contribution.ID, models.ContributionUpdate{Status: &status}, memberUser)

	assert.ErrorIs(t, err, apperrors.ErrAccessDenied)
}

func TestUpdateContributionAdminOverridesStatus(t *testing.T) {
	f := newFixture()
	store := new(MockStore)
	svc := newTestService(store)

	contribution := pendingContribution(f, f.member)
	updated := *contribution
	updated.Status = models.ContributionVerified

	store.On("GetGroup", f.group.ID).Return(f.group, nil)
	store.On("GetContribution", contribution.ID).Return(contribution, nil)
	status := models.ContributionVerified
	store.On("UpdateContribution", contribution.ID, models.ContributionUpdate{Status: &status}).Return(&updated, nil)

	result, err := svc.UpdateContribution(f.group.ID, contribution.ID, models.ContributionUpdate{Status: &status}, adminUser)

	assert.NoError(t, err)
	assert.Equal(t, models.ContributionVerified, result.Status)
}

func TestUpdateContributionOutsiderDenied(t *testing.T) {
	f := newFixture()
	store := new(MockStore)
	svc := newTestService(store)

	contribution := pendingContribution(f, f.member)

	f.expectRole(store, otherUser, f.member2)
	store.On("GetContribution", contribution.ID).Return(contribution, nil)

	amount := 120.0
	_, err := svc.UpdateContribution(f.group.ID, contribution.ID, models.ContributionUpdate{Amount: &amount}, otherUser)

	assert.ErrorIs(t, err, apperrors.ErrAccessDenied)
}

func TestListContributionsRejectsUnknownStatus(t *testing.T) {
	f := newFixture()
	store := new(MockStore)
	svc := newTestService(store)

	f.expectRole(store, memberUser, f.member)

	_, err := svc.ListContributions(f.group.ID, models.ContributionFilter{Status: "approved"}, memberUser)

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
