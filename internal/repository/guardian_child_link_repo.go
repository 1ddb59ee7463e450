package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"childcare/internal/database"
	"childcare/internal/models"
)

const guardianLinkColumns = "guardian_id, child_id, relationship, created_at, updated_at"

// GuardianChildLinkRepository stores guardian/child links keyed by the
// (guardian_id, child_id) primary key
type GuardianChildLinkRepository struct {
	db database.DBTX
}

// NewGuardianChildLinkRepository creates a new guardian link repository
func NewGuardianChildLinkRepository(db database.DBTX) *GuardianChildLinkRepository {
	return &GuardianChildLinkRepository{db: db}
}

func scanGuardianChildLink(row rowScanner) (*models.GuardianChildLink, error) {
	link := &models.GuardianChildLink{}
	var relationship sql.NullString
	if err := row.Scan(&link.GuardianID, &link.ChildID, &relationship, &link.CreatedAt, &link.UpdatedAt); err != nil {
		return nil, err
	}
	link.Relationship = relationship.String
	return link, nil
}

// FindByPair returns the link for the pair, or nil if none is stored
func (r *GuardianChildLinkRepository) FindByPair(ctx context.Context, pair models.Pair) (*models.GuardianChildLink, error) {
	query := "SELECT " + guardianLinkColumns + " FROM guardian_child_links WHERE guardian_id = ? AND child_id = ?"
	link, err := scanGuardianChildLink(r.db.QueryRowContext(ctx, query, pair.ParentID, pair.ChildID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get guardian link: %w", err)
	}
	return link, nil
}

func (r *GuardianChildLinkRepository) ExistsByPair(ctx context.Context, pair models.Pair) (bool, error) {
	var count int
	query := "SELECT COUNT(*) FROM guardian_child_links WHERE guardian_id = ? AND child_id = ?"
	if err := r.db.QueryRowContext(ctx, query, pair.ParentID, pair.ChildID).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check guardian link: %w", err)
	}
	return count > 0, nil
}

// ListByChild returns the guardians linked to a child, ordered by guardian ID
func (r *GuardianChildLinkRepository) ListByChild(ctx context.Context, childID int64) ([]models.GuardianChildLink, error) {
	query := "SELECT " + guardianLinkColumns + " FROM guardian_child_links WHERE child_id = ? ORDER BY guardian_id ASC"
	return r.list(ctx, query, childID)
}

// ListByParent returns the children linked to a guardian, ordered by child ID
func (r *GuardianChildLinkRepository) ListByParent(ctx context.Context, guardianID int64) ([]models.GuardianChildLink, error) {
	query := "SELECT " + guardianLinkColumns + " FROM guardian_child_links WHERE guardian_id = ? ORDER BY child_id ASC"
	return r.list(ctx, query, guardianID)
}

func (r *GuardianChildLinkRepository) list(ctx context.Context, query string, id int64) ([]models.GuardianChildLink, error) {
	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query guardian links: %w", err)
	}
	defer rows.Close()

	links := []models.GuardianChildLink{}
	for rows.Next() {
		link, err := scanGuardianChildLink(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan guardian link: %w", err)
		}
		links = append(links, *link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate guardian links: %w", err)
	}
	return links, nil
}

// Insert stores a new link. Returns ErrDuplicateLink when the pair is taken.
func (r *GuardianChildLinkRepository) Insert(ctx context.Context, link models.GuardianChildLink) error {
	query := "INSERT INTO guardian_child_links (guardian_id, child_id, relationship) VALUES (?, ?, ?)"
	_, err := r.db.ExecContext(ctx, query, link.GuardianID, link.ChildID, nullString(link.Relationship))
	if err != nil && r.db.GetDialect().IsUniqueViolation(err) {
		return ErrDuplicateLink
	}
	if err != nil {
		return fmt.Errorf("failed to insert guardian link: %w", err)
	}
	return nil
}

// Update overwrites the relationship of the link addressed by the pair
func (r *GuardianChildLinkRepository) Update(ctx context.Context, link models.GuardianChildLink) error {
	query := `
		UPDATE guardian_child_links
		SET relationship = ?, updated_at = CURRENT_TIMESTAMP
		WHERE guardian_id = ? AND child_id = ?
	`
	result, err := r.db.ExecContext(ctx, query, nullString(link.Relationship), link.GuardianID, link.ChildID)
	if err != nil {
		return fmt.Errorf("failed to update guardian link: %w", err)
	}
	return checkAffected(result)
}

func (r *GuardianChildLinkRepository) DeleteByPair(ctx context.Context, pair models.Pair) error {
	query := "DELETE FROM guardian_child_links WHERE guardian_id = ? AND child_id = ?"
	result, err := r.db.ExecContext(ctx, query, pair.ParentID, pair.ChildID)
	if err != nil {
		return fmt.Errorf("failed to delete guardian link: %w", err)
	}
	return checkAffected(result)
}
