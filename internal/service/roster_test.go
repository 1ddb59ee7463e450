package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"childcare/internal/database"
	"childcare/internal/domainerrors"
	"childcare/internal/models"
	"childcare/internal/repository"
)

func setupRosterDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.Initialize(filepath.Join(t.TempDir(), "roster.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.RunMigrations())
	return db
}

func TestChildRoster(t *testing.T) {
	ctx := context.Background()
	roster := NewChildRoster(repository.NewChildRepository(setupRosterDB(t)))

	child, err := roster.Create(ctx, models.ChildRequest{FirstName: "Alice", LastName: "Dupont", BirthDate: "2019-04-12"})
	require.NoError(t, err)
	assert.Positive(t, child.ID)

	got, err := roster.Get(ctx, child.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.FirstName)

	updated, err := roster.Update(ctx, child.ID, models.ChildRequest{FirstName: "Alice", LastName: "Martin"})
	require.NoError(t, err)
	assert.Equal(t, "Martin", updated.LastName)
	assert.Empty(t, updated.BirthDate)

	list, err := roster.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, roster.Delete(ctx, child.ID))

	_, err = roster.Get(ctx, child.ID)
	assert.EqualError(t, err, "child not found")
	assert.True(t, domainerrors.HasCode(roster.Delete(ctx, child.ID), domainerrors.CodeNotFound))
}

func TestRosterValidation(t *testing.T) {
	ctx := context.Background()
	db := setupRosterDB(t)
	guardians := NewGuardianRoster(repository.NewGuardianRepository(db))

	_, err := guardians.Create(ctx, models.GuardianRequest{FirstName: "Marie", LastName: "Dupont", Email: "nope"})
	assert.True(t, domainerrors.HasCode(err, domainerrors.CodeBadRequest))
	assert.Equal(t, "email: invalid email format", domainerrors.MessageOf(err))

	_, err = guardians.Update(ctx, 1, models.GuardianRequest{LastName: "Dupont"})
	assert.True(t, domainerrors.HasCode(err, domainerrors.CodeBadRequest))
}

func TestRosterUnknownIDs(t *testing.T) {
	ctx := context.Background()
	db := setupRosterDB(t)
	persons := NewAuthorizedPersonRoster(repository.NewAuthorizedPersonRepository(db))
	guardians := NewGuardianRoster(repository.NewGuardianRepository(db))

	_, err := persons.Update(ctx, 404, models.AuthorizedPersonRequest{FirstName: "Jeanne", LastName: "Martin"})
	assert.EqualError(t, err, "authorized person not found")

	_, err = guardians.Get(ctx, 404)
	assert.EqualError(t, err, "guardian not found")
}

func TestRosterFeedsLinkManager(t *testing.T) {
	ctx := context.Background()
	db := setupRosterDB(t)
	childRepo := repository.NewChildRepository(db)
	guardianRepo := repository.NewGuardianRepository(db)
	manager := NewGuardianChildLinkManager(repository.NewGuardianChildLinkRepository(db), childRepo, guardianRepo)

	child, err := NewChildRoster(childRepo).Create(ctx, models.ChildRequest{FirstName: "Alice", LastName: "Dupont"})
	require.NoError(t, err)
	guardians := NewGuardianRoster(guardianRepo)
	guardian, err := guardians.Create(ctx, models.GuardianRequest{FirstName: "Marie", LastName: "Dupont"})
	require.NoError(t, err)

	_, err = manager.CreateLink(ctx, models.GuardianChildLink{GuardianID: guardian.ID, ChildID: child.ID, Relationship: "mother"})
	require.NoError(t, err)

	require.NoError(t, guardians.Delete(ctx, guardian.ID))

	links, err := manager.GuardiansForChild(ctx, child.ID)
	require.NoError(t, err)
	assert.Empty(t, links)
}
