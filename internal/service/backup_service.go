package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"childcare/internal/database"
	"childcare/internal/models"
	"childcare/internal/repository"
)

// BackupVersion is written into every export and checked on import
const BackupVersion = "1.0"

// BackupData is the complete export document. Record ids are the ids of the
// exporting database; links refer to them.
type BackupData struct {
	Version                    string                             `json:"version"`
	ExportedAt                 time.Time                          `json:"exported_at"`
	Children                   []models.Child                     `json:"children"`
	Guardians                  []models.Guardian                  `json:"guardians"`
	AuthorizedPersons          []models.AuthorizedPerson          `json:"authorized_persons"`
	GuardianChildLinks         []models.GuardianChildLink         `json:"guardian_child_links"`
	AuthorizedPersonChildLinks []models.AuthorizedPersonChildLink `json:"authorized_person_child_links"`
}

// ImportSummary counts the rows written by an import
type ImportSummary struct {
	Children                   int
	Guardians                  int
	AuthorizedPersons          int
	GuardianChildLinks         int
	AuthorizedPersonChildLinks int
}

// BackupService handles export and restore of all association data
type BackupService struct {
	db  *database.DB
	now func() time.Time
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db, now: time.Now}
}

// Export reads every record and link into a BackupData document
func (s *BackupService) Export(ctx context.Context) (*BackupData, error) {
	backup := &BackupData{
		Version:    BackupVersion,
		ExportedAt: s.now().UTC(),
	}

	var err error
	if backup.Children, err = repository.NewChildRepository(s.db).List(ctx); err != nil {
		return nil, fmt.Errorf("failed to export children: %w", err)
	}
	if backup.Guardians, err = repository.NewGuardianRepository(s.db).List(ctx); err != nil {
		return nil, fmt.Errorf("failed to export guardians: %w", err)
	}
	if backup.AuthorizedPersons, err = repository.NewAuthorizedPersonRepository(s.db).List(ctx); err != nil {
		return nil, fmt.Errorf("failed to export authorized persons: %w", err)
	}

	guardianLinks := repository.NewGuardianChildLinkRepository(s.db)
	personLinks := repository.NewAuthorizedPersonChildLinkRepository(s.db)
	backup.GuardianChildLinks = []models.GuardianChildLink{}
	backup.AuthorizedPersonChildLinks = []models.AuthorizedPersonChildLink{}
	for _, child := range backup.Children {
		gl, err := guardianLinks.ListByChild(ctx, child.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to export guardian links: %w", err)
		}
		backup.GuardianChildLinks = append(backup.GuardianChildLinks, gl...)

		pl, err := personLinks.ListByChild(ctx, child.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to export authorized person links: %w", err)
		}
		backup.AuthorizedPersonChildLinks = append(backup.AuthorizedPersonChildLinks, pl...)
	}

	log.Info().
		Int("children", len(backup.Children)).
		Int("guardians", len(backup.Guardians)).
		Int("authorized_persons", len(backup.AuthorizedPersons)).
		Int("guardian_links", len(backup.GuardianChildLinks)).
		Int("authorized_person_links", len(backup.AuthorizedPersonChildLinks)).
		Msg("Export complete")
	return backup, nil
}

// ExportToWriter writes an indented JSON export to w
func (s *BackupService) ExportToWriter(ctx context.Context, w io.Writer) error {
	backup, err := s.Export(ctx)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}
	return nil
}

// ImportFromReader decodes a JSON export and imports it
func (s *BackupService) ImportFromReader(ctx context.Context, r io.Reader) (*ImportSummary, error) {
	var backup BackupData
	if err := json.NewDecoder(r).Decode(&backup); err != nil {
		return nil, fmt.Errorf("failed to decode backup: %w", err)
	}
	return s.Import(ctx, &backup)
}

// Import adds the records of backup to the database in one transaction.
// Records get fresh ids and links are rewritten to point at them, so an
// import merges into existing data. Any failure rolls the whole import back.
func (s *BackupService) Import(ctx context.Context, backup *BackupData) (*ImportSummary, error) {
	if backup.Version != BackupVersion {
		return nil, fmt.Errorf("unsupported backup version: %q", backup.Version)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	summary, err := importInto(ctx, tx, backup)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit import: %w", err)
	}

	log.Info().
		Int("children", summary.Children).
		Int("guardians", summary.Guardians).
		Int("authorized_persons", summary.AuthorizedPersons).
		Int("guardian_links", summary.GuardianChildLinks).
		Int("authorized_person_links", summary.AuthorizedPersonChildLinks).
		Msg("Import complete")
	return summary, nil
}

func importInto(ctx context.Context, tx *database.Tx, backup *BackupData) (*ImportSummary, error) {
	summary := &ImportSummary{}

	childIDs := make(map[int64]int64, len(backup.Children))
	children := repository.NewChildRepository(tx)
	for _, child := range backup.Children {
		created, err := children.Create(ctx, child)
		if err != nil {
			return nil, fmt.Errorf("failed to import child %d: %w", child.ID, err)
		}
		childIDs[child.ID] = created.ID
		summary.Children++
	}

	guardianIDs := make(map[int64]int64, len(backup.Guardians))
	guardians := repository.NewGuardianRepository(tx)
	for _, guardian := range backup.Guardians {
		created, err := guardians.Create(ctx, guardian)
		if err != nil {
			return nil, fmt.Errorf("failed to import guardian %d: %w", guardian.ID, err)
		}
		guardianIDs[guardian.ID] = created.ID
		summary.Guardians++
	}

	personIDs := make(map[int64]int64, len(backup.AuthorizedPersons))
	persons := repository.NewAuthorizedPersonRepository(tx)
	for _, person := range backup.AuthorizedPersons {
		created, err := persons.Create(ctx, person)
		if err != nil {
			return nil, fmt.Errorf("failed to import authorized person %d: %w", person.ID, err)
		}
		personIDs[person.ID] = created.ID
		summary.AuthorizedPersons++
	}

	guardianLinks := repository.NewGuardianChildLinkRepository(tx)
	for _, link := range backup.GuardianChildLinks {
		guardianID, childID, err := remapPair(guardianIDs, childIDs, link.GuardianID, link.ChildID)
		if err != nil {
			return nil, fmt.Errorf("failed to import guardian link: %w", err)
		}
		link.GuardianID, link.ChildID = guardianID, childID
		if err := guardianLinks.Insert(ctx, link); err != nil {
			return nil, fmt.Errorf("failed to import guardian link %d/%d: %w", guardianID, childID, err)
		}
		summary.GuardianChildLinks++
	}

	personLinks := repository.NewAuthorizedPersonChildLinkRepository(tx)
	for _, link := range backup.AuthorizedPersonChildLinks {
		personID, childID, err := remapPair(personIDs, childIDs, link.AuthorizedPersonID, link.ChildID)
		if err != nil {
			return nil, fmt.Errorf("failed to import authorized person link: %w", err)
		}
		link.AuthorizedPersonID, link.ChildID = personID, childID
		if err := personLinks.Insert(ctx, link); err != nil {
			return nil, fmt.Errorf("failed to import authorized person link %d/%d: %w", personID, childID, err)
		}
		summary.AuthorizedPersonChildLinks++
	}

	return summary, nil
}

func remapPair(parents, children map[int64]int64, parentID, childID int64) (int64, int64, error) {
	newParent, ok := parents[parentID]
	if !ok {
		return 0, 0, fmt.Errorf("link references unknown parent record %d", parentID)
	}
	newChild, ok := children[childID]
	if !ok {
		return 0, 0, fmt.Errorf("link references unknown child %d", childID)
	}
	return newParent, newChild, nil
}
