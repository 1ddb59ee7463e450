package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"childcare/internal/database"
	"childcare/internal/models"
)

const guardianColumns = "id, first_name, last_name, phone, email, created_at, updated_at"

// GuardianRepository handles database operations for guardians
type GuardianRepository struct {
	db database.DBTX
}

// NewGuardianRepository creates a new guardian repository
func NewGuardianRepository(db database.DBTX) *GuardianRepository {
	return &GuardianRepository{db: db}
}

func scanGuardian(row rowScanner) (*models.Guardian, error) {
	guardian := &models.Guardian{}
	var phone, email sql.NullString
	if err := row.Scan(&guardian.ID, &guardian.FirstName, &guardian.LastName, &phone, &email, &guardian.CreatedAt, &guardian.UpdatedAt); err != nil {
		return nil, err
	}
	guardian.Phone = phone.String
	guardian.Email = email.String
	return guardian, nil
}

func (r *GuardianRepository) Create(ctx context.Context, guardian models.Guardian) (*models.Guardian, error) {
	query := "INSERT INTO guardians (first_name, last_name, phone, email) VALUES (?, ?, ?, ?)"
	id, err := r.db.ExecReturningID(ctx, query, guardian.FirstName, guardian.LastName, nullString(guardian.Phone), nullString(guardian.Email))
	if err != nil {
		return nil, fmt.Errorf("failed to create guardian: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *GuardianRepository) GetByID(ctx context.Context, id int64) (*models.Guardian, error) {
	query := "SELECT " + guardianColumns + " FROM guardians WHERE id = ?"
	guardian, err := scanGuardian(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get guardian: %w", err)
	}
	return guardian, nil
}

func (r *GuardianRepository) List(ctx context.Context) ([]models.Guardian, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+guardianColumns+" FROM guardians ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query guardians: %w", err)
	}
	defer rows.Close()

	guardians := []models.Guardian{}
	for rows.Next() {
		guardian, err := scanGuardian(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan guardian: %w", err)
		}
		guardians = append(guardians, *guardian)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate guardians: %w", err)
	}
	return guardians, nil
}

func (r *GuardianRepository) Update(ctx context.Context, guardian models.Guardian) (*models.Guardian, error) {
	query := `
		UPDATE guardians
		SET first_name = ?, last_name = ?, phone = ?, email = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		guardian.FirstName, guardian.LastName, nullString(guardian.Phone), nullString(guardian.Email), guardian.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update guardian: %w", err)
	}
	if err := checkAffected(result); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, guardian.ID)
}

func (r *GuardianRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM guardians WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete guardian: %w", err)
	}
	return checkAffected(result)
}

// Exists reports whether a guardian with the given ID is stored
func (r *GuardianRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM guardians WHERE id = ?", id).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check guardian: %w", err)
	}
	return count > 0, nil
}
