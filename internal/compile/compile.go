// Package compile loads a set of tzdb source files into one database.
package compile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/ngrash/go-tzdb/tzdata"
)

// Policy decides what happens when a file fails to parse.
type Policy string

const (
	// Abort stops at the first failing file.
	Abort Policy = "abort"
	// Skip logs the failure and continues with the next file.
	Skip Policy = "skip"
)

// FileError attributes an error to a source file.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Loader parses source files into a shared database.
type Loader struct {
	Log     zerolog.Logger
	OnError Policy
}

// LoadDir loads the named files of dir. See LoadFiles.
func (l *Loader) LoadDir(dir string, names []string) (*tzdata.Database, error) {
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
	}
	return l.LoadFiles(paths)
}

// LoadFiles parses the files in the given order into a new database.
//
// With the Abort policy, LoadFiles returns the database built so far and the
// *FileError of the first failing file. With Skip, it parses every file and
// returns the errors of all failing files joined with errors.Join. Records
// that precede the malformed line of a failing file remain in the database.
func (l *Loader) LoadFiles(paths []string) (*tzdata.Database, error) {
	db := tzdata.NewDatabase()
	var errs []error
	for _, path := range paths {
		err := l.loadFile(db, path)
		if err == nil {
			continue
		}
		ferr := &FileError{Path: path, Err: err}
		if l.OnError != Skip {
			return db, ferr
		}
		l.Log.Warn().Err(err).Str("file", path).Msg("skipping file")
		errs = append(errs, ferr)
	}
	return db, errors.Join(errs...)
}

func (l *Loader) loadFile(db *tzdata.Database, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	start := time.Now()
	before := db.Stats()
	if err := tzdata.Parse(f, db); err != nil {
		return err
	}
	after := db.Stats()

	l.Log.Debug().
		Str("file", path).
		Int("rules", after.Rules-before.Rules).
		Int("zones", after.Zones-before.Zones).
		Int("links", after.Aliases-before.Aliases).
		Dur("duration", time.Since(start)).
		Msg("parsed")
	return nil
}
