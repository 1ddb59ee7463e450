package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"childcare/internal/service"
)

var (
	backupOutput string
	backupInput  string
)

func newBackupCmd() *cobra.Command {
	backupCmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or import all records as JSON",
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export the database to a JSON file",
		RunE:  exportBackup,
	}
	exportCmd.Flags().StringVarP(&backupOutput, "output", "o", "", "Output file path (default: backup_YYYYMMDD_HHMMSS.json)")

	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Import a JSON export, merging it with existing data",
		RunE:  importBackup,
	}
	importCmd.Flags().StringVarP(&backupInput, "input", "i", "", "Input file path")
	_ = importCmd.MarkFlagRequired("input")

	backupCmd.AddCommand(exportCmd, importCmd)
	return backupCmd
}

func exportBackup(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	outputPath := backupOutput
	if outputPath == "" {
		outputPath = fmt.Sprintf("backup_%s.json", time.Now().Format("20060102_150405"))
	}
	if dir := filepath.Dir(outputPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create backup file: %w", err)
	}
	defer file.Close()

	log.Info().Str("path", outputPath).Msg("Exporting database")
	if err := service.NewBackupService(db).ExportToWriter(cmd.Context(), file); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	return file.Close()
}

func importBackup(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)

	file, err := os.Open(backupInput)
	if err != nil {
		return fmt.Errorf("failed to open backup file: %w", err)
	}
	defer file.Close()

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	log.Info().Str("path", backupInput).Msg("Importing database")
	if _, err := service.NewBackupService(db).ImportFromReader(cmd.Context(), file); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	return nil
}
