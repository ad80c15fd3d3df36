package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/hagbad-hub/ayuuto-services/internal/apperrors"
	"github.com/hagbad-hub/ayuuto-services/models"
)

// GetMembership retrieves the member row for (groupID, userID). Returns
// nil, nil when the user is not a member. Callers must not cache the result
// across requests, since roles change between calls.
func (a *AyuutoDB) GetMembership(groupID uuid.UUID, userID string) (*models.Member, error) {
	query := `SELECT id, group_id, user_id, role, cycle_position, joined_at
		FROM ayuuto_members WHERE group_id = $1 AND user_id = $2`
	return a.scanMember(a.DB.QueryRow(query, groupID, userID))
}

// GetMember retrieves a single member by id. Returns nil, nil when missing.
func (a *AyuutoDB) GetMember(memberID uuid.UUID) (*models.Member, error) {
	query := `SELECT id, group_id, user_id, role, cycle_position, joined_at
		FROM ayuuto_members WHERE id = $1`
	return a.scanMember(a.DB.QueryRow(query, memberID))
}

func (a *AyuutoDB) scanMember(row *sql.Row) (*models.Member, error) {
	var m models.Member
	if err := row.Scan(&m.ID, &m.GroupID, &m.UserID, &m.Role, &m.CyclePosition, &m.JoinedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error scanning member: %w", err)
	}
	return &m, nil
}

// ListMembers retrieves all members of a group in rotation order.
func (a *AyuutoDB) ListMembers(groupID uuid.UUID) ([]models.Member, error) {
	query := `SELECT id, group_id, user_id, role, cycle_position, joined_at
		FROM ayuuto_members WHERE group_id = $1 ORDER BY cycle_position ASC`
	rows, err := a.DB.Query(query, groupID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.GroupID, &m.UserID, &m.Role, &m.CyclePosition, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("error scanning member: %w", err)
		}
		members = append(members, m)
	}
	return members, nil
}

// AddMember inserts a member. A zero CyclePosition is assigned the next free
// position at the end of the rotation, computed inside the same transaction.
func (a *AyuutoDB) AddMember(req *models.Member) (*models.Member, error) {
	tx, err := a.DB.Begin()
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}

	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	position := req.CyclePosition
	if position == 0 {
		// Lock the group row so two concurrent adds serialize on the MAX+1
		// read; the position unique constraint backstops direct collisions.
		var groupID uuid.UUID
		if err = tx.QueryRow(`SELECT id FROM ayuuto_groups WHERE id = $1 FOR UPDATE`,
			req.GroupID).Scan(&groupID); err != nil {
			return nil, fmt.Errorf("error locking group: %w", err)
		}
		if err = tx.QueryRow(`SELECT COALESCE(MAX(cycle_position), 0) + 1 FROM ayuuto_members WHERE group_id = $1`,
			req.GroupID).Scan(&position); err != nil {
			return nil, fmt.Errorf("error computing next cycle position: %w", err)
		}
	}

	memberID := uuid.New()
	joinedAt := time.Now().UTC()

	_, err = tx.Exec(`
		INSERT INTO ayuuto_members (id, group_id, user_id, role, cycle_position, joined_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		memberID, req.GroupID, req.UserID, req.Role, position, joinedAt)
	if err != nil {
		err = memberConstraintErr(err, "error inserting member")
		return nil, err
	}

	if err = a.CommitTransaction(tx); err != nil {
		return nil, err
	}

	member := *req
	member.ID = memberID
	member.CyclePosition = position
	member.JoinedAt = joinedAt

	return &member, nil
}

// UpdateMember applies role and rotation-position changes.
func (a *AyuutoDB) UpdateMember(memberID uuid.UUID, update models.MemberUpdate) (*models.Member, error) {
	tx, err := a.DB.Begin()
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}

	_, err = tx.Exec(`
		UPDATE ayuuto_members
		SET role = COALESCE($1, role),
			cycle_position = COALESCE($2, cycle_position)
		WHERE id = $3`,
		update.Role, update.CyclePosition, memberID)
	if err != nil {
		tx.Rollback()
		return nil, memberConstraintErr(err, "error updating member")
	}

	if err := a.CommitTransaction(tx); err != nil {
		return nil, err
	}

	return a.GetMember(memberID)
}

// DeleteMember removes a member row.
func (a *AyuutoDB) DeleteMember(memberID uuid.UUID) error {
	tx, err := a.DB.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}

	_, err = tx.Exec(`DELETE FROM ayuuto_members WHERE id = $1`, memberID)
	if err != nil {
		tx.Rollback()
		if isForeignKeyViolation(err) {
			return apperrors.ErrMemberHasLedgerRecords
		}
		return fmt.Errorf("error deleting member: %w", err)
	}

	return a.CommitTransaction(tx)
}

// CountCyclesForRecipient counts cycles naming the member as recipient,
// regardless of cycle status. Any hit blocks removal.
func (a *AyuutoDB) CountCyclesForRecipient(memberID uuid.UUID) (int, error) {
	var count int
	err := a.DB.QueryRow(`SELECT COUNT(*) FROM ayuuto_cycles WHERE recipient_id = $1`, memberID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting received cycles: %w", err)
	}
	return count, nil
}

// Named in the migration so violations can be told apart here.
const (
	memberUserConstraint     = "ayuuto_members_group_user_key"
	memberPositionConstraint = "ayuuto_members_group_position_key"
)

// memberConstraintErr maps an ayuuto_members unique violation onto its
// business error; anything else is wrapped with msg.
func memberConstraintErr(err error, msg string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		switch pqErr.Constraint {
		case memberPositionConstraint:
			return apperrors.ErrDuplicatePosition
		case memberUserConstraint:
			return apperrors.ErrDuplicateMember
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

// isForeignKeyViolation reports whether err is a Postgres foreign-key
// violation, surfaced when a member still has ledger records.
func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23503"
	}
	return false
}
