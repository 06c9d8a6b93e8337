// Package cmd implements the tzdb command line tool.
package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ngrash/go-tzdb/internal/compile"
	"github.com/ngrash/go-tzdb/internal/config"
	"github.com/ngrash/go-tzdb/tzdata"
)

var (
	cfgFile   string
	verbose   bool
	sourceDir string
	onError   string

	cfg    = config.Default()
	logger = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "tzdb",
	Short: "Parse and inspect IANA time zone database sources",
	Long: `tzdb reads the source files of the IANA time zone database
(africa, europe, northamerica, ...) into an in-memory database of rules,
zones and links.

Commands:
  parse   - parse source files and print the database
  fetch   - download the latest release from IANA
  rules   - show the transitions of a rule set in a year
  zone    - show the segments of a zone
  export  - write the database to SQLite
  diff    - compare two source directories`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (TOML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&sourceDir, "dir", "", "source directory (overrides source_dir)")
	rootCmd.PersistentFlags().StringVar(&onError, "on-error", "", "abort or skip files that fail to parse (overrides on_error)")
}

// setup loads the configuration and the logger before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	cfg = config.Default()
	if cfgFile != "" {
		c, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = c
	}
	if cmd.Flags().Changed("dir") {
		cfg.SourceDir = sourceDir
	}
	if cmd.Flags().Changed("on-error") {
		cfg.OnError = onError
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	output := zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.RFC3339}
	logger = zerolog.New(output).Level(level).With().Timestamp().Str("app", "tzdb").Logger()
	return nil
}

// loadDatabase parses the given files, or the configured files of dir if
// there are none. Files skipped under the skip policy are only logged.
func loadDatabase(dir string, files []string) (*tzdata.Database, error) {
	l := &compile.Loader{Log: logger, OnError: compile.Policy(cfg.OnError)}

	var (
		db  *tzdata.Database
		err error
	)
	if len(files) > 0 {
		db, err = l.LoadFiles(files)
	} else {
		db, err = l.LoadDir(dir, cfg.Files)
	}
	if err != nil && l.OnError != compile.Skip {
		return nil, err
	}

	s := db.Stats()
	logger.Info().
		Int("rules", s.Rules).
		Int("zones", s.Zones).
		Int("links", s.Aliases).
		Msg("database loaded")
	return db, nil
}

// readVersion returns the content of the version file of dir, if any.
func readVersion(dir string) string {
	b, err := os.ReadFile(filepath.Join(dir, "version"))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}
