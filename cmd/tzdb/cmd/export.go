package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ngrash/go-tzdb/internal/store"
)

var exportSQLite string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the database to SQLite",
	Long: `Parses the configured source files and replaces the contents of the
SQLite database at --sqlite (default: sqlite_path) with their records.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportSQLite, "sqlite", "", "SQLite database path (overrides sqlite_path)")
}

func runExport(cmd *cobra.Command, args []string) error {
	path := cfg.SQLitePath
	if cmd.Flags().Changed("sqlite") {
		path = exportSQLite
	}

	db, err := loadDatabase(cfg.SourceDir, nil)
	if err != nil {
		return err
	}

	s, err := store.Open(path)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := cmd.Context()
	if err := s.Save(ctx, readVersion(cfg.SourceDir), db); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	counts, err := s.Counts(ctx)
	if err != nil {
		return err
	}
	logger.Info().
		Str("path", path).
		Int("rules", counts.Rules).
		Int("segments", counts.Segments).
		Int("links", counts.Aliases).
		Msg("exported")
	return nil
}
