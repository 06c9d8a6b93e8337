package compile

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/ngrash/go-tzdb/tzdata"
)

var sources = map[string]string{
	"northamerica": `# tzdb data for North and Central America and environs
Rule	US	2007	max	-	Mar	Sun>=8	2:00	1:00	D
Rule	US	2007	max	-	Nov	Sun>=1	2:00	0	S
Zone America/New_York	-4:56:02 -	LMT	1883 Nov 18 17:00u
			-5:00	US	E%sT
`,
	"backward": `# tzdb links for backward compatibility
Link	America/New_York	US/Eastern
`,
	"broken": `# broken data
Zone Broken/Zone	-5:00	-	BZT
Rule	US	2007	2006	-	Mar	Sun>=8	2:00	1:00	D
`,
	"README": "This is not a source file.\nZone X 0 - X\n",
}

func writeSources(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range sources {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestLoadDir(t *testing.T) {
	dir := writeSources(t)
	var logs bytes.Buffer
	l := &Loader{Log: zerolog.New(&logs).Level(zerolog.DebugLevel)}

	db, err := l.LoadDir(dir, []string{"northamerica", "backward", "README"})
	if err != nil {
		t.Fatalf("LoadDir() unexpected error: %v", err)
	}
	want := tzdata.Stats{RuleSets: 1, Rules: 2, Zones: 1, Segments: 2, Aliases: 1}
	if diff := cmp.Diff(want, db.Stats()); diff != "" {
		t.Errorf("Stats() mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(logs.String(), `"zones":1`) || !strings.Contains(logs.String(), `"links":1`) {
		t.Errorf("missing per-file counts in log output:\n%s", logs.String())
	}
}

func TestLoadFiles_Abort(t *testing.T) {
	dir := writeSources(t)
	l := &Loader{Log: zerolog.Nop(), OnError: Abort}

	db, err := l.LoadDir(dir, []string{"broken", "northamerica"})
	var ferr *FileError
	if !errors.As(err, &ferr) {
		t.Fatalf("LoadDir() error = %v, want *FileError", err)
	}
	if ferr.Path != filepath.Join(dir, "broken") {
		t.Errorf("FileError.Path = %q", ferr.Path)
	}
	if !errors.Is(err, tzdata.ErrInvalidRange) {
		t.Errorf("LoadDir() error = %v, want %v", err, tzdata.ErrInvalidRange)
	}
	var perr *tzdata.ParseError
	if !errors.As(err, &perr) || perr.Line != 3 {
		t.Errorf("LoadDir() error = %v, want ParseError on line 3", err)
	}
	// The zone before the malformed line is kept, northamerica is never read.
	if diff := cmp.Diff([]string{"Broken/Zone"}, db.ZoneNames()); diff != "" {
		t.Errorf("ZoneNames() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFiles_Skip(t *testing.T) {
	dir := writeSources(t)
	var logs bytes.Buffer
	l := &Loader{Log: zerolog.New(&logs), OnError: Skip}

	db, err := l.LoadDir(dir, []string{"broken", "missing", "northamerica"})
	if err == nil {
		t.Fatal("LoadDir() returned nil error")
	}
	if !errors.Is(err, tzdata.ErrInvalidRange) || !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadDir() error = %v, want both file errors", err)
	}
	if diff := cmp.Diff([]string{"Broken/Zone", "America/New_York"}, db.ZoneNames()); diff != "" {
		t.Errorf("ZoneNames() mismatch (-want +got):\n%s", diff)
	}
	if got := strings.Count(logs.String(), "skipping file"); got != 2 {
		t.Errorf("logged %d skipped files, want 2", got)
	}
}
