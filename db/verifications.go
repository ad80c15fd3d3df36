package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hagbad-hub/ayuuto-services/internal/apperrors"
	"github.com/hagbad-hub/ayuuto-services/models"
)

// AddVerification appends an attestation and applies the quorum transition in
// one transaction. The contribution row is locked first so two concurrent
// verifiers serialize: each sees a consistent prior-verification count, and
// the second of two "first" verifications lands the verified transition
// instead of a duplicate confirmed. The (contribution_id, verifier_id) unique
// constraint closes the remaining check-then-create window.
//
// Returns the created verification and the contribution status after the
// transition.
func (a *AyuutoDB) AddVerification(contributionID uuid.UUID, req *models.Verification) (*models.Verification, string, error) {
	tx, err := a.DB.Begin()
	if err != nil {
		return nil, "", fmt.Errorf("error starting transaction: %w", err)
	}

	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	var currentStatus string
	err = tx.QueryRow(`SELECT status FROM contributions WHERE id = $1 FOR UPDATE`, contributionID).Scan(&currentStatus)
	if err != nil {
		return nil, "", fmt.Errorf("error locking contribution: %w", err)
	}

	verification := *req
	verification.ID = uuid.New()
	verification.ContributionID = contributionID
	if verification.Method == "" {
		verification.Method = models.DefaultVerificationMethod
	}
	verification.VerifiedAt = time.Now().UTC()

	_, err = tx.Exec(`
		INSERT INTO verifications (id, contribution_id, verifier_id, method, notes, verified_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		verification.ID, verification.ContributionID, verification.VerifierID,
		verification.Method, verification.Notes, verification.VerifiedAt)
	if err != nil {
		if isUniqueViolation(err) {
			err = apperrors.ErrDuplicateVerification
			return nil, "", err
		}
		return nil, "", fmt.Errorf("error inserting verification: %w", err)
	}

	// Total now includes the row just inserted: one verification means first
	// independent confirmation, two or more reaches quorum.
	var total int
	err = tx.QueryRow(`SELECT COUNT(*) FROM verifications WHERE contribution_id = $1`, contributionID).Scan(&total)
	if err != nil {
		return nil, "", fmt.Errorf("error counting verifications: %w", err)
	}

	// Forward-only transition; an admin override to verified is never
	// downgraded by a late confirmation.
	newStatus := models.NextContributionStatus(currentStatus, total)
	if newStatus != currentStatus {
		err = a.execQuery(tx, `UPDATE contributions SET status = $1 WHERE id = $2`, newStatus, contributionID)
		if err != nil {
			return nil, "", fmt.Errorf("error updating contribution status: %w", err)
		}
	}

	if err = a.CommitTransaction(tx); err != nil {
		return nil, "", err
	}

	return &verification, newStatus, nil
}
