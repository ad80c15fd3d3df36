package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/hagbad-hub/ayuuto-services/internal/events"
	"github.com/hagbad-hub/ayuuto-services/models"
)

type MockStore struct {
	mock.Mock
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Notify(event events.EventPayload) error {
	args := m.Called(event)
	return args.Error(0)
}

func (m *MockEventPublisher) Close() {
	m.Called()
}

func (m *MockStore) CreateGroup(g *models.Group) (*models.Group, error) {
	args := m.Called(g)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Group), args.Error(1)
}

func (m *MockStore) GetGroup(groupID uuid.UUID) (*models.Group, error) {
	args := m.Called(groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Group), args.Error(1)
}

func (m *MockStore) ListGroupsForUser(userID string, includeArchived bool) ([]models.Group, error) {
	args := m.Called(userID, includeArchived)
	return args.Get(0).([]models.Group), args.Error(1)
}

func (m *MockStore) UpdateGroup(groupID uuid.UUID, update models.GroupUpdate) (*models.Group, error) {
	args := m.Called(groupID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Group), args.Error(1)
}

func (m *MockStore) ArchiveGroup(groupID uuid.UUID) error {
	args := m.Called(groupID)
	return args.Error(0)
}

func (m *MockStore) GetMembership(groupID uuid.UUID, userID string) (*models.Member, error) {
	args := m.Called(groupID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *MockStore) GetMember(memberID uuid.UUID) (*models.Member, error) {
	args := m.Called(memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *MockStore) ListMembers(groupID uuid.UUID) ([]models.Member, error) {
	args := m.Called(groupID)
	return args.Get(0).([]models.Member), args.Error(1)
}

func (m *MockStore) AddMember(member *models.Member) (*models.Member, error) {
	args := m.Called(member)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *MockStore) UpdateMember(memberID uuid.UUID, update models.MemberUpdate) (*models.Member, error) {
	args := m.Called(memberID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *MockStore) DeleteMember(memberID uuid.UUID) error {
	args := m.Called(memberID)
	return args.Error(0)
}

func (m *MockStore) CountCyclesForRecipient(memberID uuid.UUID) (int, error) {
	args := m.Called(memberID)
	return args.Int(0), args.Error(1)
}

func (m *MockStore) CreateCycle(c *models.Cycle) (*models.Cycle, error) {
	args := m.Called(c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cycle), args.Error(1)
}

func (m *MockStore) GetCycle(cycleID uuid.UUID) (*models.Cycle, error) {
	args := m.Called(cycleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cycle), args.Error(1)
}

func (m *MockStore) ListCycles(groupID uuid.UUID) ([]models.Cycle, error) {
	args := m.Called(groupID)
	return args.Get(0).([]models.Cycle), args.Error(1)
}

func (m *MockStore) UpdateCycleStatus(cycleID uuid.UUID, status string, endDate *time.Time) (*models.Cycle, error) {
	args := m.Called(cycleID, status, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cycle), args.Error(1)
}

func (m *MockStore) HasActiveCycle(groupID uuid.UUID) (bool, error) {
	args := m.Called(groupID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStore) NextUnpaidMember(groupID uuid.UUID) (*models.Member, error) {
	args := m.Called(groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *MockStore) CreateContribution(c *models.Contribution, selfVerifierID string) (*models.Contribution, error) {
	args := m.Called(c, selfVerifierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contribution), args.Error(1)
}

func (m *MockStore) GetContribution(contributionID uuid.UUID) (*models.Contribution, error) {
	args := m.Called(contributionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contribution), args.Error(1)
}

func (m *MockStore) ListContributions(filter models.ContributionFilter) ([]models.Contribution, error) {
	args := m.Called(filter)
	return args.Get(0).([]models.Contribution), args.Error(1)
}

func (m *MockStore) ListCycleContributions(groupID, cycleID uuid.UUID) ([]models.Contribution, error) {
	args := m.Called(groupID, cycleID)
	return args.Get(0).([]models.Contribution), args.Error(1)
}

func (m *MockStore) UpdateContribution(contributionID uuid.UUID, update models.ContributionUpdate) (*models.Contribution, error) {
	args := m.Called(contributionID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contribution), args.Error(1)
}

func (m *MockStore) AddVerification(contributionID uuid.UUID, v *models.Verification) (*models.Verification, string, error) {
	args := m.Called(contributionID, v)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*models.Verification), args.String(1), args.Error(2)
}
