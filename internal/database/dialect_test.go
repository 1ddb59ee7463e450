package database

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

func TestDialectDriverNames(t *testing.T) {
	tests := []struct {
		name             string
		dialect          Dialect
		driver           string
		subdir           string
		lastInsertIDSafe bool
	}{
		{name: "SQLite", dialect: NewSQLiteDialect(), driver: "sqlite3", subdir: "sqlite", lastInsertIDSafe: true},
		{name: "PostgreSQL", dialect: NewPostgresDialect(), driver: "postgres", subdir: "postgres", lastInsertIDSafe: false},
		{name: "MySQL", dialect: NewMySQLDialect(), driver: "mysql", subdir: "mysql", lastInsertIDSafe: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dialect.DriverName(); got != tt.driver {
				t.Errorf("DriverName() = %v, want %v", got, tt.driver)
			}
			if got := tt.dialect.MigrationsSubdir(); got != tt.subdir {
				t.Errorf("MigrationsSubdir() = %v, want %v", got, tt.subdir)
			}
			if got := tt.dialect.SupportsLastInsertId(); got != tt.lastInsertIDSafe {
				t.Errorf("SupportsLastInsertId() = %v, want %v", got, tt.lastInsertIDSafe)
			}
			if !strings.Contains(tt.dialect.CreateMigrationsTableQuery(), "migrations") {
				t.Error("CreateMigrationsTableQuery() should create the migrations table")
			}
		})
	}
}

func TestRewriteQuery(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		query    string
		expected string
	}{
		{
			name:     "SQLite no change",
			dialect:  NewSQLiteDialect(),
			query:    "SELECT * FROM children WHERE id = ?",
			expected: "SELECT * FROM children WHERE id = ?",
		},
		{
			name:     "PostgreSQL single placeholder",
			dialect:  NewPostgresDialect(),
			query:    "SELECT * FROM children WHERE id = ?",
			expected: "SELECT * FROM children WHERE id = $1",
		},
		{
			name:     "PostgreSQL pair lookup",
			dialect:  NewPostgresDialect(),
			query:    "SELECT relationship FROM guardian_child_links WHERE guardian_id = ? AND child_id = ?",
			expected: "SELECT relationship FROM guardian_child_links WHERE guardian_id = $1 AND child_id = $2",
		},
		{
			name:     "MySQL no change",
			dialect:  NewMySQLDialect(),
			query:    "UPDATE guardians SET phone = ?, email = ? WHERE id = ?",
			expected: "UPDATE guardians SET phone = ?, email = ? WHERE id = ?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dialect.RewriteQuery(tt.query); got != tt.expected {
				t.Errorf("RewriteQuery() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSQLiteDSN(t *testing.T) {
	dialect := NewSQLiteDialect()

	dsn := dialect.DSN(DialectConfig{Path: "./childcare.db"})
	for _, param := range []string{"file:./childcare.db?", "_foreign_keys=on", "_busy_timeout=5000"} {
		if !strings.Contains(dsn, param) {
			t.Errorf("DSN() = %q, missing %q", dsn, param)
		}
	}

	explicit := "file:test.db?mode=memory"
	if got := dialect.DSN(DialectConfig{Path: explicit}); got != explicit {
		t.Errorf("DSN() = %q, want explicit DSN kept as-is", got)
	}
}

func TestMySQLDSN(t *testing.T) {
	dialect := NewMySQLDialect()

	dsn := dialect.DSN(DialectConfig{URL: "user:pass@tcp(localhost:3306)/childcare"})
	if !strings.Contains(dsn, "parseTime=true") {
		t.Errorf("DSN() = %q, want parseTime=true", dsn)
	}
	if !strings.Contains(dsn, "clientFoundRows=true") {
		t.Errorf("DSN() = %q, want clientFoundRows=true", dsn)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		err      error
		expected bool
	}{
		{
			name:     "SQLite primary key",
			dialect:  NewSQLiteDialect(),
			err:      fmt.Errorf("failed to insert: %w", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintPrimaryKey}),
			expected: true,
		},
		{
			name:     "SQLite unique",
			dialect:  NewSQLiteDialect(),
			err:      sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique},
			expected: true,
		},
		{
			name:     "SQLite foreign key",
			dialect:  NewSQLiteDialect(),
			err:      sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey},
			expected: false,
		},
		{
			name:     "PostgreSQL unique_violation",
			dialect:  NewPostgresDialect(),
			err:      fmt.Errorf("failed to insert: %w", &pq.Error{Code: "23505"}),
			expected: true,
		},
		{
			name:     "PostgreSQL foreign_key_violation",
			dialect:  NewPostgresDialect(),
			err:      &pq.Error{Code: "23503"},
			expected: false,
		},
		{
			name:     "MySQL duplicate entry",
			dialect:  NewMySQLDialect(),
			err:      fmt.Errorf("failed to insert: %w", &mysql.MySQLError{Number: 1062}),
			expected: true,
		},
		{
			name:     "MySQL other error",
			dialect:  NewMySQLDialect(),
			err:      &mysql.MySQLError{Number: 1452},
			expected: false,
		},
		{
			name:     "plain error",
			dialect:  NewSQLiteDialect(),
			err:      errors.New("disk full"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dialect.IsUniqueViolation(tt.err); got != tt.expected {
				t.Errorf("IsUniqueViolation() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSplitStatements(t *testing.T) {
	statements := splitStatements("CREATE TABLE a (id INT);\n\n  CREATE INDEX i ON a(id);\n")
	if len(statements) != 2 {
		t.Fatalf("splitStatements() returned %d statements, want 2", len(statements))
	}
	if statements[1] != "CREATE INDEX i ON a(id)" {
		t.Errorf("statements[1] = %q", statements[1])
	}
}
