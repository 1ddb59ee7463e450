package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"childcare/internal/database"
	"childcare/internal/models"
)

const authorizedPersonColumns = "id, first_name, last_name, phone, created_at, updated_at"

// AuthorizedPersonRepository handles database operations for authorized pickup persons
type AuthorizedPersonRepository struct {
	db database.DBTX
}

func NewAuthorizedPersonRepository(db database.DBTX) *AuthorizedPersonRepository {
	return &AuthorizedPersonRepository{db: db}
}

func scanAuthorizedPerson(row rowScanner) (*models.AuthorizedPerson, error) {
	person := &models.AuthorizedPerson{}
	var phone sql.NullString
	if err := row.Scan(&person.ID, &person.FirstName, &person.LastName, &phone, &person.CreatedAt, &person.UpdatedAt); err != nil {
		return nil, err
	}
	person.Phone = phone.String
	return person, nil
}

func (r *AuthorizedPersonRepository) Create(ctx context.Context, person models.AuthorizedPerson) (*models.AuthorizedPerson, error) {
	query := "INSERT INTO authorized_persons (first_name, last_name, phone) VALUES (?, ?, ?)"
	id, err := r.db.ExecReturningID(ctx, query, person.FirstName, person.LastName, nullString(person.Phone))
	if err != nil {
		return nil, fmt.Errorf("failed to create authorized person: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *AuthorizedPersonRepository) GetByID(ctx context.Context, id int64) (*models.AuthorizedPerson, error) {
	query := "SELECT " + authorizedPersonColumns + " FROM authorized_persons WHERE id = ?"
	person, err := scanAuthorizedPerson(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get authorized person: %w", err)
	}
	return person, nil
}

func (r *AuthorizedPersonRepository) List(ctx context.Context) ([]models.AuthorizedPerson, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+authorizedPersonColumns+" FROM authorized_persons ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query authorized persons: %w", err)
	}
	defer rows.Close()

	persons := []models.AuthorizedPerson{}
	for rows.Next() {
		person, err := scanAuthorizedPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan authorized person: %w", err)
		}
		persons = append(persons, *person)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate authorized persons: %w", err)
	}
	return persons, nil
}

func (r *AuthorizedPersonRepository) Update(ctx context.Context, person models.AuthorizedPerson) (*models.AuthorizedPerson, error) {
	query := `
		UPDATE authorized_persons
		SET first_name = ?, last_name = ?, phone = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query, person.FirstName, person.LastName, nullString(person.Phone), person.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update authorized person: %w", err)
	}
	if err := checkAffected(result); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, person.ID)
}

func (r *AuthorizedPersonRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM authorized_persons WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete authorized person: %w", err)
	}
	return checkAffected(result)
}

func (r *AuthorizedPersonRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM authorized_persons WHERE id = ?", id).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check authorized person: %w", err)
	}
	return count > 0, nil
}
