package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"childcare/internal/database"
	"childcare/internal/models"
)

const childColumns = "id, first_name, last_name, birth_date, created_at, updated_at"

// ChildRepository handles database operations for children
type ChildRepository struct {
	db database.DBTX
}

// NewChildRepository creates a new child repository
func NewChildRepository(db database.DBTX) *ChildRepository {
	return &ChildRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanChild(row rowScanner) (*models.Child, error) {
	child := &models.Child{}
	var birthDate sql.NullString
	if err := row.Scan(&child.ID, &child.FirstName, &child.LastName, &birthDate, &child.CreatedAt, &child.UpdatedAt); err != nil {
		return nil, err
	}
	child.BirthDate = birthDate.String
	return child, nil
}

// Create inserts a child and returns the stored row
func (r *ChildRepository) Create(ctx context.Context, child models.Child) (*models.Child, error) {
	query := "INSERT INTO children (first_name, last_name, birth_date) VALUES (?, ?, ?)"
	id, err := r.db.ExecReturningID(ctx, query, child.FirstName, child.LastName, nullString(child.BirthDate))
	if err != nil {
		return nil, fmt.Errorf("failed to create child: %w", err)
	}
	return r.GetByID(ctx, id)
}

// GetByID retrieves a child by ID, returning nil if it does not exist
func (r *ChildRepository) GetByID(ctx context.Context, id int64) (*models.Child, error) {
	query := "SELECT " + childColumns + " FROM children WHERE id = ?"
	child, err := scanChild(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get child: %w", err)
	}
	return child, nil
}

// List returns all children ordered by ID
func (r *ChildRepository) List(ctx context.Context) ([]models.Child, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+childColumns+" FROM children ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query children: %w", err)
	}
	defer rows.Close()

	children := []models.Child{}
	for rows.Next() {
		child, err := scanChild(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan child: %w", err)
		}
		children = append(children, *child)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate children: %w", err)
	}
	return children, nil
}

// Update overwrites a child's fields. Returns ErrNotFound for an unknown ID.
func (r *ChildRepository) Update(ctx context.Context, child models.Child) (*models.Child, error) {
	query := `
		UPDATE children
		SET first_name = ?, last_name = ?, birth_date = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query, child.FirstName, child.LastName, nullString(child.BirthDate), child.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update child: %w", err)
	}
	if err := checkAffected(result); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, child.ID)
}

// Delete removes a child and, through cascading keys, its links
func (r *ChildRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM children WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete child: %w", err)
	}
	return checkAffected(result)
}

// Exists reports whether a child with the given ID is stored
func (r *ChildRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM children WHERE id = ?", id).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check child: %w", err)
	}
	return count > 0, nil
}
