package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hagbad-hub/ayuuto-services/internal/apperrors"
	"github.com/hagbad-hub/ayuuto-services/models"
)

// CreateContribution inserts a contribution at status pending. When
// selfVerifierID is non-empty the contributor recorded it themselves and the
// initial self-verification is written in the same transaction, so a crash
// can never leave one without the other.
func (a *AyuutoDB) CreateContribution(req *models.Contribution, selfVerifierID string) (*models.Contribution, error) {
	tx, err := a.DB.Begin()
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}

	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	contributionID := uuid.New()
	contributedAt := time.Now().UTC()

	err = a.execQuery(tx, `
		INSERT INTO contributions (id, group_id, cycle_id, member_id, amount, status, contributed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		contributionID, req.GroupID, req.CycleID, req.MemberID, req.Amount, models.ContributionPending, contributedAt)
	if err != nil {
		return nil, fmt.Errorf("error inserting contribution: %w", err)
	}

	contribution := *req
	contribution.ID = contributionID
	contribution.Status = models.ContributionPending
	contribution.ContributedAt = contributedAt

	if selfVerifierID != "" {
		verification := models.Verification{
			ID:             uuid.New(),
			ContributionID: contributionID,
			VerifierID:     selfVerifierID,
			Method:         models.DefaultVerificationMethod,
			Notes:          "Self-recorded contribution",
			VerifiedAt:     contributedAt,
		}
		err = a.execQuery(tx, `
			INSERT INTO verifications (id, contribution_id, verifier_id, method, notes, verified_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			verification.ID, verification.ContributionID, verification.VerifierID,
			verification.Method, verification.Notes, verification.VerifiedAt)
		if err != nil {
			return nil, fmt.Errorf("error inserting self-verification: %w", err)
		}
		contribution.Verifications = []models.Verification{verification}
	}

	if err = a.CommitTransaction(tx); err != nil {
		return nil, err
	}

	return &contribution, nil
}

// GetContribution retrieves a contribution with its verifications ordered
// most recent first, and the contributor's user id joined in. Returns
// nil, nil when missing.
func (a *AyuutoDB) GetContribution(contributionID uuid.UUID) (*models.Contribution, error) {
	query := `SELECT c.id, c.group_id, c.cycle_id, c.member_id, c.amount, c.status, c.contributed_at, m.user_id
		FROM contributions c
		INNER JOIN ayuuto_members m ON m.id = c.member_id
		WHERE c.id = $1`
	row := a.DB.QueryRow(query, contributionID)

	var c models.Contribution
	if err := row.Scan(&c.ID, &c.GroupID, &c.CycleID, &c.MemberID, &c.Amount, &c.Status, &c.ContributedAt, &c.ContributorUserID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error scanning contribution: %w", err)
	}

	verifications, err := a.getVerifications(contributionID)
	if err != nil {
		return nil, err
	}
	c.Verifications = verifications

	return &c, nil
}

// ListContributions retrieves contributions matching the filter, newest
// first. Optional filter fields are folded into the query rather than built
// ad hoc at call sites.
func (a *AyuutoDB) ListContributions(filter models.ContributionFilter) ([]models.Contribution, error) {
	query := `SELECT c.id, c.group_id, c.cycle_id, c.member_id, c.amount, c.status, c.contributed_at, m.user_id
		FROM contributions c
		INNER JOIN ayuuto_members m ON m.id = c.member_id
		WHERE c.group_id = $1
			AND ($2::uuid IS NULL OR c.cycle_id = $2)
			AND ($3::uuid IS NULL OR c.member_id = $3)
			AND ($4::varchar IS NULL OR c.status = $4)
		ORDER BY c.contributed_at DESC`

	var cycleID, memberID interface{}
	if filter.CycleID != uuid.Nil {
		cycleID = filter.CycleID
	}
	if filter.MemberID != uuid.Nil {
		memberID = filter.MemberID
	}
	var status interface{}
	if filter.Status != "" {
		status = filter.Status
	}

	rows, err := a.DB.Query(query, filter.GroupID, cycleID, memberID, status)
	if err != nil {
		return nil, fmt.Errorf("error retrieving contributions: %w", err)
	}
	defer rows.Close()

	var contributions []models.Contribution
	for rows.Next() {
		var c models.Contribution
		if err := rows.Scan(&c.ID, &c.GroupID, &c.CycleID, &c.MemberID, &c.Amount, &c.Status, &c.ContributedAt, &c.ContributorUserID); err != nil {
			return nil, fmt.Errorf("error scanning contribution: %w", err)
		}
		contributions = append(contributions, c)
	}
	return contributions, nil
}

// ListCycleContributions retrieves all contributions of one cycle with their
// verifications attached, for the cycle detail view.
func (a *AyuutoDB) ListCycleContributions(groupID, cycleID uuid.UUID) ([]models.Contribution, error) {
	contributions, err := a.ListContributions(models.ContributionFilter{GroupID: groupID, CycleID: cycleID})
	if err != nil {
		return nil, err
	}
	for i := range contributions {
		verifications, err := a.getVerifications(contributions[i].ID)
		if err != nil {
			return nil, err
		}
		contributions[i].Verifications = verifications
	}
	return contributions, nil
}

// UpdateContribution applies amount and status changes and returns the
// stored row. The WHERE clause rejects amount edits on a verified
// contribution, so a verification landing between the caller's read and this
// update cannot be raced past the amount freeze.
func (a *AyuutoDB) UpdateContribution(contributionID uuid.UUID, update models.ContributionUpdate) (*models.Contribution, error) {
	tx, err := a.DB.Begin()
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}

	res, err := tx.Exec(`
		UPDATE contributions
		SET amount = COALESCE($1, amount),
			status = COALESCE($2, status)
		WHERE id = $3
			AND (status <> $4 OR $1 IS NULL)`,
		update.Amount, update.Status, contributionID, models.ContributionVerified)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("error updating contribution: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		tx.Rollback()
		return nil, apperrors.ErrImmutableRecord
	}

	if err := a.CommitTransaction(tx); err != nil {
		return nil, err
	}

	return a.GetContribution(contributionID)
}

func (a *AyuutoDB) getVerifications(contributionID uuid.UUID) ([]models.Verification, error) {
	query := `SELECT id, contribution_id, verifier_id, method, notes, verified_at
		FROM verifications WHERE contribution_id = $1 ORDER BY verified_at DESC`
	rows, err := a.DB.Query(query, contributionID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving verifications: %w", err)
	}
	defer rows.Close()

	var verifications []models.Verification
	for rows.Next() {
		var v models.Verification
		if err := rows.Scan(&v.ID, &v.ContributionID, &v.VerifierID, &v.Method, &v.Notes, &v.VerifiedAt); err != nil {
			return nil, fmt.Errorf("error scanning verification: %w", err)
		}
		verifications = append(verifications, v)
	}
	return verifications, nil
}
