// Package tzdata parses the source files of the IANA time zone database
// provided at https://www.iana.org/time-zones.
//
// Source files consist of rule lines, zone lines with their continuation
// lines, and link lines:
//
//	# Rule  NAME  FROM  TO    -  IN   ON       AT    SAVE  LETTER/S
//	Rule    US    2007  max   -  Mar  Sun>=8   2:00  1:00  D
//	Rule    US    2007  max   -  Nov  Sun>=1   2:00  0     S
//
//	# Zone  NAME              STDOFF  RULES  FORMAT  [UNTIL]
//	Zone    America/New_York  -4:56:02 -     LMT     1883 Nov 18 17:00u
//	                          -5:00   US     E%sT
//
//	Link    America/New_York  US/Eastern
//
// Parse adds the records of a file to a Database. The same Database can be
// passed to Parse once per file to build the database of a whole release.
// Resolving rules into transitions is left to consumers of the Database.
package tzdata

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// Parse reads a tzdb source file from r and adds its records to db.
//
// The first line of a source file is a comment starting with "# ". If the
// first line of r is anything else, r is not considered a source file and
// Parse returns without adding anything.
//
// Parsing stops at the first malformed line. The returned error is then a
// *ParseError wrapping one of the Err* values of this package. Records of the
// lines before the malformed one remain in db. Parse does not close r.
func Parse(r io.Reader, db *Database) error {
	scanner := bufio.NewScanner(r)

	var (
		lineNumber int
		zone       = db.current
	)
	for scanner.Scan() {
		lineNumber++
		text := scanner.Text()
		if lineNumber == 1 && !strings.HasPrefix(text, "# ") {
			return nil // not a source file
		}
		line, ok := stripComment(text)
		if !ok {
			continue // skip comment or empty line
		}
		var err error
		if zone, err = parseLine(db, zone, line); err != nil {
			return &ParseError{Line: lineNumber, Text: text, Err: err}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner: %w", err)
	}
	return nil
}

// stripComment removes the comment and trailing white space from a line.
// It returns false if nothing is left. Leading white space is kept because it
// marks continuation lines.
func stripComment(line string) (string, bool) {
	if i := strings.IndexByte(line, '#'); i != -1 {
		line = line[:i]
	}
	line = strings.TrimRightFunc(line, unicode.IsSpace)
	return line, line != ""
}

// parseLine adds the record of a single line to db. It takes and returns the
// zone that continuation lines extend.
func parseLine(db *Database, zone *ZoneDefinition, line string) (*ZoneDefinition, error) {
	t := tokenize(line)
	keyword, err := t.next("keyword")
	if err != nil {
		return zone, err
	}

	switch keyword {
	case "Rule":
		r, err := parseRule(t)
		if err != nil {
			return zone, fmt.Errorf("parse rule: %w", err)
		}
		db.AddRule(r)
		return zone, nil

	case "Link":
		a, err := parseLink(t)
		if err != nil {
			return zone, fmt.Errorf("parse link: %w", err)
		}
		db.AddAlias(a)
		return zone, nil

	case "Zone":
		name, err := t.next("NAME")
		if err != nil {
			return zone, fmt.Errorf("parse zone: %w", err)
		}
		s, err := parseZoneSegment(t)
		if err != nil {
			return zone, fmt.Errorf("parse zone %s: %w", name, err)
		}
		return db.AddZone(name, s), nil

	case "":
		if zone == nil {
			return zone, ErrNoOpenZone
		}
		s, err := parseZoneSegment(t)
		if err != nil {
			return zone, fmt.Errorf("parse zone continuation of %s: %w", zone.Name, err)
		}
		zone.Segments = append(zone.Segments, s)
		return zone, nil

	default:
		return zone, fmt.Errorf("%w %q", ErrUnexpectedKeyword, keyword)
	}
}
