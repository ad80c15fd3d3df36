package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hagbad-hub/ayuuto-services/models"
)

// CreateGroup inserts a new group and its admin member in one transaction.
// The creator always joins at cycle position 1.
func (a *AyuutoDB) CreateGroup(req *models.Group) (*models.Group, error) {
	tx, err := a.DB.Begin()
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}

	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	groupID := uuid.New()
	createdAt := time.Now().UTC()

	err = a.execQuery(tx, `
		INSERT INTO ayuuto_groups (id, name, description, contribution_amount, frequency, total_members, current_cycle, admin_id, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, 1, $7, TRUE, $8)`,
		groupID, req.Name, req.Description, req.ContributionAmount, req.Frequency, req.TotalMembers, req.AdminID, createdAt)
	if err != nil {
		return nil, fmt.Errorf("error inserting group: %w", err)
	}

	err = a.execQuery(tx, `
		INSERT INTO ayuuto_members (id, group_id, user_id, role, cycle_position, joined_at)
		VALUES ($1, $2, $3, $4, 1, $5)`,
		uuid.New(), groupID, req.AdminID, models.RoleAdmin, createdAt)
	if err != nil {
		return nil, fmt.Errorf("error inserting admin member: %w", err)
	}

	if err = a.CommitTransaction(tx); err != nil {
		return nil, err
	}

	group := *req
	group.ID = groupID
	group.CurrentCycle = 1
	group.IsActive = true
	group.CreatedAt = createdAt
	group.MemberCount = 1

	return &group, nil
}

// GetGroup retrieves a single group. Returns nil, nil when the id does not
// resolve.
func (a *AyuutoDB) GetGroup(groupID uuid.UUID) (*models.Group, error) {
	query := `SELECT id, name, description, contribution_amount, frequency, total_members, current_cycle, admin_id, is_active, created_at
		FROM ayuuto_groups WHERE id = $1`
	row := a.DB.QueryRow(query, groupID)

	var g models.Group
	if err := row.Scan(
		&g.ID,
		&g.Name,
		&g.Description,
		&g.ContributionAmount,
		&g.Frequency,
		&g.TotalMembers,
		&g.CurrentCycle,
		&g.AdminID,
		&g.IsActive,
		&g.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error scanning group: %w", err)
	}

	return &g, nil
}

// ListGroupsForUser retrieves the groups the user administers or belongs to.
// Archived groups are hidden unless includeArchived is set.
func (a *AyuutoDB) ListGroupsForUser(userID string, includeArchived bool) ([]models.Group, error) {
	query := `SELECT g.id, g.name, g.description, g.contribution_amount, g.frequency, g.total_members, g.current_cycle, g.admin_id, g.is_active, g.created_at,
			(SELECT COUNT(*) FROM ayuuto_members m2 WHERE m2.group_id = g.id) AS member_count
		FROM ayuuto_groups g
		WHERE (g.admin_id = $1 OR EXISTS (SELECT 1 FROM ayuuto_members m WHERE m.group_id = g.id AND m.user_id = $1))
			AND (g.is_active OR $2)
		ORDER BY g.created_at DESC`
	rows, err := a.DB.Query(query, userID, includeArchived)
	if err != nil {
		return nil, fmt.Errorf("error retrieving groups: %w", err)
	}
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.Description, &g.ContributionAmount, &g.Frequency, &g.TotalMembers,
			&g.CurrentCycle, &g.AdminID, &g.IsActive, &g.CreatedAt, &g.MemberCount); err != nil {
			return nil, fmt.Errorf("error scanning group: %w", err)
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// UpdateGroup applies the provided fields and returns the stored row.
func (a *AyuutoDB) UpdateGroup(groupID uuid.UUID, update models.GroupUpdate) (*models.Group, error) {
	tx, err := a.DB.Begin()
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}

	err = a.execQuery(tx, `
		UPDATE ayuuto_groups
		SET name = COALESCE($1, name),
			description = COALESCE($2, description),
			contribution_amount = COALESCE($3, contribution_amount),
			frequency = COALESCE($4, frequency),
			total_members = COALESCE($5, total_members),
			is_active = COALESCE($6, is_active)
		WHERE id = $7`,
		update.Name, update.Description, update.ContributionAmount, update.Frequency, update.TotalMembers, update.IsActive, groupID)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("error updating group: %w", err)
	}

	if err := a.CommitTransaction(tx); err != nil {
		return nil, err
	}

	return a.GetGroup(groupID)
}

// ArchiveGroup soft-deletes a group. Archival is terminal; archived groups
// only surface through explicit include-archived queries.
func (a *AyuutoDB) ArchiveGroup(groupID uuid.UUID) error {
	tx, err := a.DB.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}

	err = a.execQuery(tx, `UPDATE ayuuto_groups SET is_active = FALSE WHERE id = $1`, groupID)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("error archiving group: %w", err)
	}

	return a.CommitTransaction(tx)
}
