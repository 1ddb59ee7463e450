package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"childcare/internal/database"
	"childcare/internal/models"
)

const authorizedPersonLinkColumns = "authorized_person_id, child_id, relationship, emergency_contact, comment, created_at, updated_at"

// AuthorizedPersonChildLinkRepository stores authorized person/child links
type AuthorizedPersonChildLinkRepository struct {
	db database.DBTX
}

func NewAuthorizedPersonChildLinkRepository(db database.DBTX) *AuthorizedPersonChildLinkRepository {
	return &AuthorizedPersonChildLinkRepository{db: db}
}

func scanAuthorizedPersonChildLink(row rowScanner) (*models.AuthorizedPersonChildLink, error) {
	link := &models.AuthorizedPersonChildLink{}
	var relationship, comment sql.NullString
	if err := row.Scan(
		&link.AuthorizedPersonID,
		&link.ChildID,
		&relationship,
		&link.EmergencyContact,
		&comment,
		&link.CreatedAt,
		&link.UpdatedAt,
	); err != nil {
		return nil, err
	}
	link.Relationship = relationship.String
	link.Comment = comment.String
	return link, nil
}

func (r *AuthorizedPersonChildLinkRepository) FindByPair(ctx context.Context, pair models.Pair) (*models.AuthorizedPersonChildLink, error) {
	query := "SELECT " + authorizedPersonLinkColumns + " FROM authorized_person_child_links WHERE authorized_person_id = ? AND child_id = ?"
	link, err := scanAuthorizedPersonChildLink(r.db.QueryRowContext(ctx, query, pair.ParentID, pair.ChildID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get authorized person link: %w", err)
	}
	return link, nil
}

func (r *AuthorizedPersonChildLinkRepository) ExistsByPair(ctx context.Context, pair models.Pair) (bool, error) {
	var count int
	query := "SELECT COUNT(*) FROM authorized_person_child_links WHERE authorized_person_id = ? AND child_id = ?"
	if err := r.db.QueryRowContext(ctx, query, pair.ParentID, pair.ChildID).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check authorized person link: %w", err)
	}
	return count > 0, nil
}

func (r *AuthorizedPersonChildLinkRepository) ListByChild(ctx context.Context, childID int64) ([]models.AuthorizedPersonChildLink, error) {
	query := "SELECT " + authorizedPersonLinkColumns + " FROM authorized_person_child_links WHERE child_id = ? ORDER BY authorized_person_id ASC"
	return r.list(ctx, query, childID)
}

func (r *AuthorizedPersonChildLinkRepository) ListByParent(ctx context.Context, authorizedPersonID int64) ([]models.AuthorizedPersonChildLink, error) {
	query := "SELECT " + authorizedPersonLinkColumns + " FROM authorized_person_child_links WHERE authorized_person_id = ? ORDER BY child_id ASC"
	return r.list(ctx, query, authorizedPersonID)
}

func (r *AuthorizedPersonChildLinkRepository) list(ctx context.Context, query string, id int64) ([]models.AuthorizedPersonChildLink, error) {
	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query authorized person links: %w", err)
	}
	defer rows.Close()

	links := []models.AuthorizedPersonChildLink{}
	for rows.Next() {
		link, err := scanAuthorizedPersonChildLink(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan authorized person link: %w", err)
		}
		links = append(links, *link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate authorized person links: %w", err)
	}
	return links, nil
}

func (r *AuthorizedPersonChildLinkRepository) Insert(ctx context.Context, link models.AuthorizedPersonChildLink) error {
	query := `
		INSERT INTO authorized_person_child_links (authorized_person_id, child_id, relationship, emergency_contact, comment)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		link.AuthorizedPersonID, link.ChildID, nullString(link.Relationship), link.EmergencyContact, nullString(link.Comment))
	if err != nil && r.db.GetDialect().IsUniqueViolation(err) {
		return ErrDuplicateLink
	}
	if err != nil {
		return fmt.Errorf("failed to insert authorized person link: %w", err)
	}
	return nil
}

func (r *AuthorizedPersonChildLinkRepository) Update(ctx context.Context, link models.AuthorizedPersonChildLink) error {
	query := `
		UPDATE authorized_person_child_links
		SET relationship = ?, emergency_contact = ?, comment = ?, updated_at = CURRENT_TIMESTAMP
		WHERE authorized_person_id = ? AND child_id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		nullString(link.Relationship), link.EmergencyContact, nullString(link.Comment), link.AuthorizedPersonID, link.ChildID)
	if err != nil {
		return fmt.Errorf("failed to update authorized person link: %w", err)
	}
	return checkAffected(result)
}

func (r *AuthorizedPersonChildLinkRepository) DeleteByPair(ctx context.Context, pair models.Pair) error {
	query := "DELETE FROM authorized_person_child_links WHERE authorized_person_id = ? AND child_id = ?"
	result, err := r.db.ExecContext(ctx, query, pair.ParentID, pair.ChildID)
	if err != nil {
		return fmt.Errorf("failed to delete authorized person link: %w", err)
	}
	return checkAffected(result)
}
