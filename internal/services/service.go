// Package services implements the ayuuto engine: membership authority,
// contribution ledger, verification engine and cycle rotation controller.
// All state lives in the store; every operation re-reads what it needs so
// role and status changes between requests are always observed.
package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hagbad-hub/ayuuto-services/internal/appconfig"
	"github.com/hagbad-hub/ayuuto-services/internal/events"
	"github.com/hagbad-hub/ayuuto-services/internal/notify"
	"github.com/hagbad-hub/ayuuto-services/models"
)

// Store is the record-store boundary the engine depends on, implemented by
// db.AyuutoDB and mocked in tests. Lookups return nil, nil when the id does
// not resolve.
type Store interface {
	CreateGroup(g *models.Group) (*models.Group, error)
	GetGroup(groupID uuid.UUID) (*models.Group, error)
	ListGroupsForUser(userID string, includeArchived bool) ([]models.Group, error)
	UpdateGroup(groupID uuid.UUID, update models.GroupUpdate) (*models.Group, error)
	ArchiveGroup(groupID uuid.UUID) error

	GetMembership(groupID uuid.UUID, userID string) (*models.Member, error)
	GetMember(memberID uuid.UUID) (*models.Member, error)
	ListMembers(groupID uuid.UUID) ([]models.Member, error)
	AddMember(m *models.Member) (*models.Member, error)
	UpdateMember(memberID uuid.UUID, update models.MemberUpdate) (*models.Member, error)
	DeleteMember(memberID uuid.UUID) error
	CountCyclesForRecipient(memberID uuid.UUID) (int, error)

	CreateCycle(c *models.Cycle) (*models.Cycle, error)
	GetCycle(cycleID uuid.UUID) (*models.Cycle, error)
	ListCycles(groupID uuid.UUID) ([]models.Cycle, error)
	UpdateCycleStatus(cycleID uuid.UUID, status string, endDate *time.Time) (*models.Cycle, error)
	HasActiveCycle(groupID uuid.UUID) (bool, error)
	NextUnpaidMember(groupID uuid.UUID) (*models.Member, error)

	CreateContribution(c *models.Contribution, selfVerifierID string) (*models.Contribution, error)
	GetContribution(contributionID uuid.UUID) (*models.Contribution, error)
	ListContributions(filter models.ContributionFilter) ([]models.Contribution, error)
	ListCycleContributions(groupID, cycleID uuid.UUID) ([]models.Contribution, error)
	UpdateContribution(contributionID uuid.UUID, update models.ContributionUpdate) (*models.Contribution, error)
	AddVerification(contributionID uuid.UUID, v *models.Verification) (*models.Verification, string, error)
}

// Service contains all shared dependencies for handlers.
type Service struct {
	Config    *appconfig.Config
	DB        Store
	Publisher events.Notifier
	Announcer *notify.Announcer
}

// publish sends an engine event. Publishing is best effort after commit;
// failures are logged and never surfaced to the caller.
func (s *Service) publish(ctx context.Context, event events.EventPayload) {
	if s.Publisher == nil {
		return
	}
	if err := s.Publisher.Notify(event); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("event", event.Type).Msg("failed to publish event")
	}
}
