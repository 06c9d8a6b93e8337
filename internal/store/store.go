// Package store exports a tzdata.Database to SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ngrash/go-tzdb/internal/render"
	"github.com/ngrash/go-tzdb/tzdata"
)

// Store is a SQLite database holding the records of one tzdb database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	-- One row per rule line; seq keeps the source order within a rule set.
	CREATE TABLE IF NOT EXISTS rules (
		name TEXT NOT NULL,
		seq INTEGER NOT NULL,
		from_year TEXT NOT NULL,
		to_year TEXT NOT NULL,
		type TEXT NOT NULL DEFAULT '',
		month TEXT NOT NULL,
		day TEXT NOT NULL,
		at TEXT NOT NULL,
		save TEXT NOT NULL,
		save_seconds INTEGER NOT NULL,
		letter TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (name, seq)
	);

	-- One row per zone or continuation line.
	CREATE TABLE IF NOT EXISTS zones (
		name TEXT NOT NULL,
		seq INTEGER NOT NULL,
		stdoff TEXT NOT NULL,
		stdoff_seconds INTEGER NOT NULL,
		rules TEXT NOT NULL,
		format TEXT NOT NULL,
		until TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (name, seq)
	);

	CREATE TABLE IF NOT EXISTS links (
		seq INTEGER PRIMARY KEY,
		target TEXT NOT NULL,
		name TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_links_name ON links(name);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save replaces the stored records with those of db in a single transaction.
func (s *Store) Save(ctx context.Context, version string, db *tzdata.Database) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"rules", "zones", "links"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO meta (key, value) VALUES ('version', ?), ('exported_at', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		version, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("write meta: %w", err)
	}

	if err := insertRules(ctx, tx, db); err != nil {
		return err
	}
	if err := insertZones(ctx, tx, db); err != nil {
		return err
	}
	if err := insertLinks(ctx, tx, db); err != nil {
		return err
	}
	return tx.Commit()
}

func insertRules(ctx context.Context, tx *sql.Tx, db *tzdata.Database) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO rules (name, seq, from_year, to_year, type, month, day, at, save, save_seconds, letter)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare rules: %w", err)
	}
	defer stmt.Close()

	doc := render.NewDocument(db)
	for _, rs := range doc.Rules {
		records, _ := db.RuleSet(rs.Name)
		for i, r := range rs.Rules {
			if _, err := stmt.ExecContext(ctx, rs.Name, i, r.From, r.To, r.Type, r.In, r.On, r.At, r.Save,
				int64(records[i].Save/time.Second), r.Letter); err != nil {
				return fmt.Errorf("insert rule %s: %w", rs.Name, err)
			}
		}
	}
	return nil
}

func insertZones(ctx context.Context, tx *sql.Tx, db *tzdata.Database) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO zones (name, seq, stdoff, stdoff_seconds, rules, format, until)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare zones: %w", err)
	}
	defer stmt.Close()

	for _, z := range render.NewDocument(db).Zones {
		def, _ := db.Zone(z.Name)
		for i, seg := range z.Segments {
			if _, err := stmt.ExecContext(ctx, z.Name, i, seg.Offset, int64(def.Segments[i].Offset/time.Second),
				seg.Rules, seg.Format, seg.Until); err != nil {
				return fmt.Errorf("insert zone %s: %w", z.Name, err)
			}
		}
	}
	return nil
}

func insertLinks(ctx context.Context, tx *sql.Tx, db *tzdata.Database) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO links (seq, target, name) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare links: %w", err)
	}
	defer stmt.Close()

	for i, a := range db.Aliases() {
		if _, err := stmt.ExecContext(ctx, i, a.Target, a.Name); err != nil {
			return fmt.Errorf("insert link %s: %w", a.Name, err)
		}
	}
	return nil
}

// Counts returns the number of stored records.
func (s *Store) Counts(ctx context.Context) (tzdata.Stats, error) {
	var st tzdata.Stats
	row := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(DISTINCT name) FROM rules),
			(SELECT COUNT(*) FROM rules),
			(SELECT COUNT(DISTINCT name) FROM zones),
			(SELECT COUNT(*) FROM zones),
			(SELECT COUNT(*) FROM links)`)
	if err := row.Scan(&st.RuleSets, &st.Rules, &st.Zones, &st.Segments, &st.Aliases); err != nil {
		return st, fmt.Errorf("count records: %w", err)
	}
	return st, nil
}

// Version returns the release version recorded by the last Save.
func (s *Store) Version(ctx context.Context) (string, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'version'`).Scan(&v)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read version: %w", err)
	}
	return v, nil
}

// ResolveLink follows links starting at name until it reaches a zone.
// It reports false if name is neither a zone nor a link to one.
func (s *Store) ResolveLink(ctx context.Context, name string) (string, bool, error) {
	seen := make(map[string]bool)
	for !seen[name] {
		seen[name] = true

		var n int
		if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM zones WHERE name = ?`, name).Scan(&n); err != nil {
			return "", false, fmt.Errorf("look up zone %s: %w", name, err)
		}
		if n > 0 {
			return name, true, nil
		}

		var target string
		err := s.db.QueryRowContext(ctx, `SELECT target FROM links WHERE name = ? ORDER BY seq DESC LIMIT 1`, name).Scan(&target)
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		if err != nil {
			return "", false, fmt.Errorf("look up link %s: %w", name, err)
		}
		name = target
	}
	return "", false, nil
}
