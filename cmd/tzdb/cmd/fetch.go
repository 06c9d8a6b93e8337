package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ngrash/go-tzdb/tzdata"
	"github.com/ngrash/go-tzdb/tzdb/ianadist"
)

var (
	fetchForce bool

	distClient = ianadist.DefaultClient
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the latest release from IANA",
	Long: `Downloads the latest tzdata release, checks that every data file
parses and writes the files to the source directory.

The ETag of the download is kept in etag_file, if configured, so that an
unchanged release is not downloaded again.`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().BoolVar(&fetchForce, "force", false, "ignore the stored ETag")
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
	defer cancel()

	var etag string
	if cfg.EtagFile != "" && !fetchForce {
		b, err := os.ReadFile(cfg.EtagFile)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("read etag: %w", err)
		}
		etag = strings.TrimSpace(string(b))
	}

	release, newEtag, err := distClient.Latest(ctx, etag)
	if err != nil {
		return fmt.Errorf("fetch latest release: %w", err)
	}
	if release == nil {
		logger.Info().Str("etag", etag).Msg("release not modified")
		return nil
	}

	db := tzdata.NewDatabase()
	if err := release.Parse(db); err != nil {
		return fmt.Errorf("release %s: %w", release.Version, err)
	}
	s := db.Stats()
	logger.Info().
		Str("version", release.Version).
		Int("files", len(release.DataFiles)).
		Int("rules", s.Rules).
		Int("zones", s.Zones).
		Int("links", s.Aliases).
		Msg("release parsed")

	if err := writeRelease(cfg.SourceDir, release); err != nil {
		return err
	}
	if cfg.EtagFile != "" {
		if err := os.WriteFile(cfg.EtagFile, []byte(newEtag+"\n"), 0o644); err != nil {
			return fmt.Errorf("write etag: %w", err)
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s written to %s\n", release.Version, cfg.SourceDir)
	return nil
}

// writeRelease writes the data files, the version and the leapseconds file of r to dir.
func writeRelease(dir string, r *ianadist.Release) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	files := map[string][]byte{"version": []byte(r.Version + "\n")}
	if len(r.LeapSecondsFile) > 0 {
		files["leapseconds"] = r.LeapSecondsFile
	}
	for name, data := range r.DataFiles {
		files[name] = data
	}
	for name, data := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		logger.Debug().Str("file", path).Int("bytes", len(data)).Msg("written")
	}
	return nil
}
