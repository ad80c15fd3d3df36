package services

import (
	"github.com/google/uuid"

	"github.com/hagbad-hub/ayuuto-services/internal/appconfig"
	"github.com/hagbad-hub/ayuuto-services/models"
)

const (
	adminUser  = "amina"
	elderUser  = "hodan"
	memberUser = "fatima"
	otherUser  = "zahra"
)

// fixture is a group with an admin, an elder and two plain members, enough
// to exercise every role path.
type fixture struct {
	group   *models.Group
	admin   *models.Member
	elder   *models.Member
	member  *models.Member
	member2 *models.Member
}

func newFixture() *fixture {
	groupID := uuid.New()
	return &fixture{
		group: &models.Group{
			ID:                 groupID,
			Name:               "Qaraan",
			ContributionAmount: 100,
			Frequency:          models.FrequencyMonthly,
			TotalMembers:       4,
			CurrentCycle:       1,
			AdminID:            adminUser,
			IsActive:           true,
		},
		admin:   &models.Member{ID: uuid.New(), GroupID: groupID, UserID: adminUser, Role: models.RoleMember, CyclePosition: 1},
		elder:   &models.Member{ID: uuid.New(), GroupID: groupID, UserID: elderUser, Role: models.RoleElder, CyclePosition: 2},
		member:  &models.Member{ID: uuid.New(), GroupID: groupID, UserID: memberUser, Role: models.RoleMember, CyclePosition: 3},
		member2: &models.Member{ID: uuid.New(), GroupID: groupID, UserID: otherUser, Role: models.RoleMember, CyclePosition: 4},
	}
}

func newTestService(store *MockStore) *Service {
	return &Service{
		Config: &appconfig.Config{},
		DB:     store,
	}
}

// expectRole wires the lookups RoleOf performs for the given caller.
func (f *fixture) expectRole(store *MockStore, userID string, member *models.Member) {
	store.On("GetGroup", f.group.ID).Return(f.group, nil)
	if userID != f.group.AdminID {
		if member != nil {
			store.On("GetMembership", f.group.ID, userID).Return(member, nil)
		} else {
			store.On("GetMembership", f.group.ID, userID).Return(nil, nil)
		}
	}
}
