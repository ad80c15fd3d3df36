package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hagbad-hub/ayuuto-services/models"
)

// CreateCycle inserts a cycle and advances the group's cycle counter in one
// transaction. The counter is read and bumped in a single UPDATE ... RETURNING
// so two concurrent opens can never be handed the same cycle number.
func (a *AyuutoDB) CreateCycle(req *models.Cycle) (*models.Cycle, error) {
	tx, err := a.DB.Begin()
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}

	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	var cycleNumber int
	err = tx.QueryRow(`
		UPDATE ayuuto_groups
		SET current_cycle = current_cycle + 1
		WHERE id = $1
		RETURNING current_cycle - 1`,
		req.GroupID).Scan(&cycleNumber)
	if err != nil {
		return nil, fmt.Errorf("error advancing cycle counter: %w", err)
	}

	cycleID := uuid.New()
	createdAt := time.Now().UTC()

	_, err = tx.Exec(`
		INSERT INTO ayuuto_cycles (id, group_id, cycle_number, recipient_id, start_date, end_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		cycleID, req.GroupID, cycleNumber, req.RecipientID, req.StartDate, req.EndDate, models.CycleActive, createdAt)
	if err != nil {
		return nil, fmt.Errorf("error inserting cycle: %w", err)
	}

	if err = a.CommitTransaction(tx); err != nil {
		return nil, err
	}

	cycle := *req
	cycle.ID = cycleID
	cycle.CycleNumber = cycleNumber
	cycle.Status = models.CycleActive
	cycle.CreatedAt = createdAt

	return &cycle, nil
}

// GetCycle retrieves a single cycle. Returns nil, nil when missing.
func (a *AyuutoDB) GetCycle(cycleID uuid.UUID) (*models.Cycle, error) {
	query := `SELECT id, group_id, cycle_number, recipient_id, start_date, end_date, status, created_at
		FROM ayuuto_cycles WHERE id = $1`
	row := a.DB.QueryRow(query, cycleID)

	var c models.Cycle
	if err := row.Scan(&c.ID, &c.GroupID, &c.CycleNumber, &c.RecipientID, &c.StartDate, &c.EndDate, &c.Status, &c.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error scanning cycle: %w", err)
	}

	return &c, nil
}

// ListCycles retrieves the group's cycles, newest first.
func (a *AyuutoDB) ListCycles(groupID uuid.UUID) ([]models.Cycle, error) {
	query := `SELECT id, group_id, cycle_number, recipient_id, start_date, end_date, status, created_at
		FROM ayuuto_cycles WHERE group_id = $1 ORDER BY cycle_number DESC`
	rows, err := a.DB.Query(query, groupID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving cycles: %w", err)
	}
	defer rows.Close()

	var cycles []models.Cycle
	for rows.Next() {
		var c models.Cycle
		if err := rows.Scan(&c.ID, &c.GroupID, &c.CycleNumber, &c.RecipientID, &c.StartDate, &c.EndDate, &c.Status, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning cycle: %w", err)
		}
		cycles = append(cycles, c)
	}
	return cycles, nil
}

// UpdateCycleStatus sets a terminal status and optionally moves the end date.
func (a *AyuutoDB) UpdateCycleStatus(cycleID uuid.UUID, status string, endDate *time.Time) (*models.Cycle, error) {
	tx, err := a.DB.Begin()
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}

	err = a.execQuery(tx, `
		UPDATE ayuuto_cycles
		SET status = $1, end_date = COALESCE($2, end_date)
		WHERE id = $3`,
		status, endDate, cycleID)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("error updating cycle: %w", err)
	}

	if err := a.CommitTransaction(tx); err != nil {
		return nil, err
	}

	return a.GetCycle(cycleID)
}

// HasActiveCycle checks whether the group already has an active cycle.
func (a *AyuutoDB) HasActiveCycle(groupID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM ayuuto_cycles WHERE group_id = $1 AND status = $2)`
	var exists bool
	err := a.DB.QueryRow(query, groupID, models.CycleActive).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking active cycle: %w", err)
	}
	return exists, nil
}

// NextUnpaidMember returns the member with the lowest cycle position not yet
// named as recipient of any non-cancelled cycle, or nil, nil when every
// member has been paid out.
func (a *AyuutoDB) NextUnpaidMember(groupID uuid.UUID) (*models.Member, error) {
	query := `SELECT m.id, m.group_id, m.user_id, m.role, m.cycle_position, m.joined_at
		FROM ayuuto_members m
		WHERE m.group_id = $1
			AND NOT EXISTS (
				SELECT 1 FROM ayuuto_cycles c
				WHERE c.recipient_id = m.id AND c.status <> $2
			)
		ORDER BY m.cycle_position ASC
		LIMIT 1`
	return a.scanMember(a.DB.QueryRow(query, groupID, models.CycleCancelled))
}
