package repository

import (
	"database/sql"
	"errors"
)

var (
	// ErrNotFound is returned by Update and Delete when no row matched
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateLink is returned when a link for the pair is already stored
	ErrDuplicateLink = errors.New("link already exists")
)

// nullString stores empty optional text as NULL
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// checkAffected maps an UPDATE/DELETE that touched nothing to ErrNotFound
func checkAffected(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
