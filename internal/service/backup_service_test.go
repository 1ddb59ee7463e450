package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"childcare/internal/models"
	"childcare/internal/repository"
)

func TestBackupRoundTrip(t *testing.T) {
	ctx := context.Background()
	source := setupRosterDB(t)

	children := repository.NewChildRepository(source)
	guardians := repository.NewGuardianRepository(source)
	persons := repository.NewAuthorizedPersonRepository(source)

	// An orphan row shifts ids so the import has to remap them.
	_, err := children.Create(ctx, models.Child{FirstName: "Temp", LastName: "Row"})
	require.NoError(t, err)
	require.NoError(t, children.Delete(ctx, 1))

	alice, err := children.Create(ctx, models.Child{FirstName: "Alice", LastName: "Dupont", BirthDate: "2019-04-12"})
	require.NoError(t, err)
	marie, err := guardians.Create(ctx, models.Guardian{FirstName: "Marie", LastName: "Dupont", Email: "marie@example.com"})
	require.NoError(t, err)
	jeanne, err := persons.Create(ctx, models.AuthorizedPerson{FirstName: "Jeanne", LastName: "Martin", Phone: "+33 6 12 34 56 78"})
	require.NoError(t, err)

	require.NoError(t, repository.NewGuardianChildLinkRepository(source).Insert(ctx, models.GuardianChildLink{
		GuardianID: marie.ID, ChildID: alice.ID, Relationship: "mother",
	}))
	require.NoError(t, repository.NewAuthorizedPersonChildLinkRepository(source).Insert(ctx, models.AuthorizedPersonChildLink{
		AuthorizedPersonID: jeanne.ID, ChildID: alice.ID, Relationship: "grandmother", EmergencyContact: true, Comment: "Wednesdays",
	}))

	exporter := NewBackupService(source)
	exporter.now = func() time.Time { return time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC) }

	var buf bytes.Buffer
	require.NoError(t, exporter.ExportToWriter(ctx, &buf))
	assert.Contains(t, buf.String(), `"version": "1.0"`)
	assert.Contains(t, buf.String(), `"exported_at": "2026-03-01T08:00:00Z"`)

	target := setupRosterDB(t)
	summary, err := NewBackupService(target).ImportFromReader(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, ImportSummary{Children: 1, Guardians: 1, AuthorizedPersons: 1, GuardianChildLinks: 1, AuthorizedPersonChildLinks: 1}, *summary)

	restored, err := repository.NewChildRepository(target).List(ctx)
	require.NoError(t, err)
	require.Len(t, restored, 1)
	assert.Equal(t, "Alice", restored[0].FirstName)
	assert.Equal(t, "2019-04-12", restored[0].BirthDate)
	assert.Equal(t, int64(1), restored[0].ID)

	guardianLinks, err := repository.NewGuardianChildLinkRepository(target).ListByChild(ctx, restored[0].ID)
	require.NoError(t, err)
	require.Len(t, guardianLinks, 1)
	assert.Equal(t, "mother", guardianLinks[0].Relationship)

	personLinks, err := repository.NewAuthorizedPersonChildLinkRepository(target).ListByChild(ctx, restored[0].ID)
	require.NoError(t, err)
	require.Len(t, personLinks, 1)
	assert.True(t, personLinks[0].EmergencyContact)
	assert.Equal(t, "Wednesdays", personLinks[0].Comment)
}

func TestBackupImportRollsBackOnDanglingLink(t *testing.T) {
	ctx := context.Background()
	db := setupRosterDB(t)

	backup := &BackupData{
		Version:   BackupVersion,
		Children:  []models.Child{{ID: 7, FirstName: "Alice", LastName: "Dupont"}},
		Guardians: []models.Guardian{{ID: 3, FirstName: "Marie", LastName: "Dupont"}},
		GuardianChildLinks: []models.GuardianChildLink{
			{GuardianID: 3, ChildID: 7},
			{GuardianID: 3, ChildID: 99},
		},
	}

	_, err := NewBackupService(db).Import(ctx, backup)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown child 99")

	children, err := repository.NewChildRepository(db).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, children)
	guardians, err := repository.NewGuardianRepository(db).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, guardians)
}

func TestBackupImportRejectsDuplicateLinks(t *testing.T) {
	ctx := context.Background()
	db := setupRosterDB(t)

	backup := &BackupData{
		Version:           BackupVersion,
		Children:          []models.Child{{ID: 1, FirstName: "Alice", LastName: "Dupont"}},
		AuthorizedPersons: []models.AuthorizedPerson{{ID: 1, FirstName: "Jeanne", LastName: "Martin"}},
		AuthorizedPersonChildLinks: []models.AuthorizedPersonChildLink{
			{AuthorizedPersonID: 1, ChildID: 1},
			{AuthorizedPersonID: 1, ChildID: 1},
		},
	}

	_, err := NewBackupService(db).Import(ctx, backup)
	assert.ErrorIs(t, err, repository.ErrDuplicateLink)
}

func TestBackupImportValidatesInput(t *testing.T) {
	ctx := context.Background()
	svc := NewBackupService(setupRosterDB(t))

	_, err := svc.ImportFromReader(ctx, strings.NewReader("{not json"))
	assert.ErrorContains(t, err, "failed to decode backup")

	_, err = svc.ImportFromReader(ctx, strings.NewReader(`{"version":"0.1"}`))
	assert.EqualError(t, err, `unsupported backup version: "0.1"`)
}
