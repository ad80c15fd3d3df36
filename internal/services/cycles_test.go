package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/hagbad-hub/ayuuto-services/internal/apperrors"
	"github.com/hagbad-hub/ayuuto-services/models"
)

func openInput(recipient *models.Member) OpenCycleInput {
	start := time.Now().UTC()
	return OpenCycleInput{
		RecipientID: recipient.ID,
		StartDate:   start,
		EndDate:     start.AddDate(0, 1, 0),
	}
}

func TestOpenCycleAdminOnly(t *testing.T) {
	f := newFixture()
	store := new(MockStore)
	svc := newTestService(store)

	f.expectRole(store, elderUser, f.elder)

	_, err := svc.OpenCycle(context.Background(), f.group.ID, openInput(f.member), elderUser)

	assert.ErrorIs(t, err, apperrors.ErrAccessDenied)
}

func TestOpenCycleRejectsBadDateRange(t *testing.T) {
	f := newFixture()
	store := new(MockStore)
	svc := newTestService(store)

	store.On("GetGroup", f.group.ID).Return(f.group, nil)

	in := openInput(f.member)
	in.EndDate = in.StartDate

	_, err := svc.OpenCycle(context.Background(), f.group.ID, in, adminUser)

	assert.ErrorIs(t, err, apperrors.ErrInvalidDateRange)
}

func TestOpenCycleRejectsForeignRecipient(t *testing.T) {
	f := newFixture()
	other := newFixture()
	store := new(MockStore)
	svc := newTestService(store)

	store.On("GetGroup", f.group.ID).Return(f.group, nil)
	store.On("GetMember", other.member.ID).Return(other.member, nil)

	_, err := svc.OpenCycle(context.Background(), f.group.ID, openInput(other.member), adminUser)

	assert.ErrorIs(t, err, apperrors.ErrRecipientNotInGroup)
}

func TestOpenCycleRejectsSecondActiveCycle(t *testing.T) {
	f := newFixture()
	store := new(MockStore)
	svc := newTestService(store)

	store.On("GetGroup", f.group.ID).Return(f.group, nil)
	store.On("GetMember", f.member.ID).Return(f.member, nil)
	store.On("HasActiveCycle", f.group.ID).Return(true, nil)

	_, err := svc.OpenCycle(context.Background(), f.group.ID, openInput(f.member), adminUser)

	assert.ErrorIs(t, err, apperrors.ErrActiveCycleExists)
	store.AssertNotCalled(t, "CreateCycle", mock.Anything)
}

func TestOpenCycleParallelCyclesAllowedWhenConfigured(t *testing.T) {
	f := newFixture()
	store := new(MockStore)
	svc := newTestService(store)
	svc.Config.Engine.AllowParallelCycles = true

	store.On("GetGroup", f.group.ID).Return(f.group, nil)
	store.On("GetMember", f.member.ID).Return(f.member, nil)
	store.On("CreateCycle", mock.AnythingOfType("*models.Cycle")).
		Return(&models.Cycle{ID: uuid.New(), GroupID: f.group.ID, CycleNumber: 2, RecipientID: f.member.ID, Status: models.CycleActive}, nil)

	_, err := svc.OpenCycle(context.Background(), f.group.ID, openInput(f.member), adminUser)

	assert.NoError(t, err)
	store.AssertNotCalled(t, "HasActiveCycle", mock.Anything)
}

func TestOpenCycleRotationOrderEnforced(t *testing.T) {
	f := newFixture()
	store := new(MockStore)
	svc := newTestService(store)
	svc.Config.Engine.EnforceRotationOrder = true

	store.On("GetGroup", f.group.ID).Return(f.group, nil)
	store.On("GetMember", f.member.ID).Return(f.member, nil)
	store.On("HasActiveCycle", f.group.ID).Return(false, nil)
	store.On("NextUnpaidMember", f.group.ID).Return(f.elder, nil)

	_, err := svc.OpenCycle(context.Background(), f.group.ID, openInput(f.member), adminUser)

	assert.ErrorIs(t, err, apperrors.ErrRotationOrder)
}

// Back-to-back opens take distinct, increasing numbers from the group
// counter.
func TestOpenCycleNumbersStrictlyIncrease(t *testing.T) {
	f := newFixture()
	store := new(MockStore)
	svc := newTestService(store)
	svc.Config.Engine.AllowParallelCycles = true

	store.On("GetGroup", f.group.ID).Return(f.group, nil)
	store.On("GetMember", f.member.ID).Return(f.member, nil)

	store.On("CreateCycle", mock.AnythingOfType("*models.Cycle")).
		Return(&models.Cycle{ID: uuid.New(), GroupID: f.group.ID, CycleNumber: 1, RecipientID: f.member.ID, Status: models.CycleActive}, nil).Once()
	store.On("CreateCycle", mock.AnythingOfType("*models.Cycle")).
		Return(&models.Cycle{ID: uuid.New(), GroupID: f.group.ID, CycleNumber: 2, RecipientID: f.member.ID, Status: models.CycleActive}, nil).Once()

	first, err := svc.OpenCycle(context.Background(), f.group.ID, openInput(f.member), adminUser)
	assert.NoError(t, err)
	second, err := svc.OpenCycle(context.Background(), f.group.ID, openInput(f.member), adminUser)
	assert.NoError(t, err)

	assert.Greater(t, second.CycleNumber, first.CycleNumber)
}

func TestUpdateCycleStatusOnlyTerminalTargets(t *testing.T) {
	f := newFixture()
	store := new(MockStore)
	svc := newTestService(store)

	store.On("GetGroup", f.group.ID).Return(f.group, nil)

	_, err := svc.UpdateCycleStatus(context.Background(), f.group.ID, uuid.New(), CycleUpdateInput{Status: models.CycleActive}, adminUser)

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestUpdateCycleStatusRejectsClosedCycle(t *testing.T) {
	f := newFixture()
	store := new(MockStore)
	svc := newTestService(store)

	closed := &models.Cycle{ID: uuid.New(), GroupID: f.group.ID, Status: models.CycleCompleted}

	store.On("GetGroup", f.group.ID).Return(f.group, nil)
	store.On("GetCycle", closed.ID).Return(closed, nil)

	_, err := svc.UpdateCycleStatus(context.Background(), f.group.ID, closed.ID, CycleUpdateInput{Status: models.CycleCancelled}, adminUser)

	assert.ErrorIs(t, err, apperrors.ErrCycleNotActive)
}

func TestUpdateCycleStatusCompletes(t *testing.T) {
	f := newFixture()
	store := new(MockStore)
	svc := newTestService(store)

	cycle := &models.Cycle{ID: uuid.New(), GroupID: f.group.ID, Status: models.CycleActive}
	completed := *cycle
	completed.Status = models.CycleCompleted

	store.On("GetGroup", f.group.ID).Return(f.group, nil)
	store.On("GetCycle", cycle.ID).Return(cycle, nil)
	store.On("UpdateCycleStatus", cycle.ID, models.CycleCompleted, (*time.Time)(nil)).Return(&completed, nil)

	result, err := svc.UpdateCycleStatus(context.Background(), f.group.ID, cycle.ID, CycleUpdateInput{Status: models.CycleCompleted}, adminUser)

	assert.NoError(t, err)
	assert.Equal(t, models.CycleCompleted, result.Status)
}

func TestGetCycleAttachesContributions(t *testing.T) {
	f := newFixture()
	store := new(MockStore)
	svc := newTestService(store)

	cycle := &models.Cycle{ID: uuid.New(), GroupID: f.group.ID, Status: models.CycleActive}
	contributions := []models.Contribution{*pendingContribution(f, f.member)}

	f.expectRole(store, memberUser, f.member)
	store.On("GetCycle", cycle.ID).Return(cycle, nil)
	store.On("ListCycleContributions", f.group.ID, cycle.ID).Return(contributions, nil)

	result, err := svc.GetCycle(f.group.ID, cycle.ID, memberUser)

	assert.NoError(t, err)
	assert.Len(t, result.Contributions, 1)
}
