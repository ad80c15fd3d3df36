package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/hagbad-hub/ayuuto-services/internal/apperrors"
	"github.com/hagbad-hub/ayuuto-services/internal/events"
	"github.com/hagbad-hub/ayuuto-services/models"
)

// VerifyInput describes one attestation. Method defaults to "digital".
type VerifyInput struct {
	Method string `json:"method"`
	Notes  string `json:"notes"`
}

// VerifyResult is the created verification together with the contribution
// status it produced.
type VerifyResult struct {
	Verification *models.Verification `json:"verification"`
	Status       string               `json:"status"`
}

// Verify appends an independent attestation to a contribution and advances
// its status under the two-verifier quorum rule:
//
//   - the contributor may verify their own contribution only while it has no
//     verifications at all (this is what permits the record-and-self-verify
//     path at creation time);
//   - a verifier attests a given contribution at most once;
//   - the first verification confirms, the second verifies.
//
// The attestation insert and the status transition are applied atomically by
// the store.
func (s *Service) Verify(ctx context.Context, groupID, contributionID uuid.UUID, in VerifyInput, userID string) (*VerifyResult, error) {
	if _, err := s.requireRole(groupID, userID, models.RoleMember); err != nil {
		return nil, err
	}

	contribution, err := s.DB.GetContribution(contributionID)
	if err != nil {
		return nil, err
	}
	if contribution == nil || contribution.GroupID != groupID {
		return nil, apperrors.ErrNotFound
	}

	for _, v := range contribution.Verifications {
		if v.VerifierID == userID {
			return nil, apperrors.ErrDuplicateVerification
		}
	}

	if contribution.ContributorUserID == userID && len(contribution.Verifications) > 0 {
		return nil, apperrors.ErrSelfVerification
	}

	verification := models.Verification{
		VerifierID: userID,
		Method:     in.Method,
		Notes:      in.Notes,
	}
	created, status, err := s.DB.AddVerification(contributionID, &verification)
	if err != nil {
		return nil, err
	}

	if status == models.ContributionVerified && contribution.Status != models.ContributionVerified {
		s.publish(ctx, events.EventPayload{
			Type:     events.ContributionVerified,
			GroupID:  groupID.String(),
			EntityID: contributionID.String(),
			ActorID:  userID,
			Amount:   contribution.Amount,
		})
	}

	return &VerifyResult{Verification: created, Status: status}, nil
}
