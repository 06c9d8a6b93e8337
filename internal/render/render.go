// Package render writes a tzdata.Database as YAML, JSON or a short summary.
//
// All renderers go through Document, which spells every field the way the
// source files do: offsets as "-5:00", day selectors as "lastSun" or
// "Sun>=8", and transition modes as an "s" or "u" suffix.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ngrash/go-tzdb/tzdata"
)

// Document is the serializable form of a database.
type Document struct {
	Rules []RuleSet `yaml:"rules" json:"rules"`
	Zones []Zone    `yaml:"zones" json:"zones"`
	Links []Link    `yaml:"links" json:"links"`
}

// RuleSet is a named rule set with its rules in source order.
type RuleSet struct {
	Name  string `yaml:"name" json:"name"`
	Rules []Rule `yaml:"rules" json:"rules"`
}

// Rule is a rule line with every field spelled as in the source.
type Rule struct {
	From   string `yaml:"from" json:"from"`
	To     string `yaml:"to" json:"to"`
	Type   string `yaml:"type,omitempty" json:"type,omitempty"`
	In     string `yaml:"in" json:"in"`
	On     string `yaml:"on" json:"on"`
	At     string `yaml:"at" json:"at"`
	Save   string `yaml:"save" json:"save"`
	Letter string `yaml:"letter,omitempty" json:"letter,omitempty"`
}

// Zone is a named zone with its segments in source order.
type Zone struct {
	Name     string    `yaml:"name" json:"name"`
	Segments []Segment `yaml:"segments" json:"segments"`
}

// Segment is a zone or continuation line. Until is empty for open-ended segments.
type Segment struct {
	Offset string `yaml:"offset" json:"offset"`
	Rules  string `yaml:"rules" json:"rules"`
	Format string `yaml:"format" json:"format"`
	Until  string `yaml:"until,omitempty" json:"until,omitempty"`
}

// Link is a link line.
type Link struct {
	Target string `yaml:"target" json:"target"`
	Name   string `yaml:"name" json:"name"`
}

// NewDocument converts db, keeping the order in which records were added.
func NewDocument(db *tzdata.Database) Document {
	doc := Document{
		Rules: []RuleSet{},
		Zones: []Zone{},
		Links: []Link{},
	}
	for _, name := range db.RuleSetNames() {
		records, _ := db.RuleSet(name)
		rs := RuleSet{Name: name}
		for _, r := range records {
			rs.Rules = append(rs.Rules, newRule(r))
		}
		doc.Rules = append(doc.Rules, rs)
	}
	for _, name := range db.ZoneNames() {
		def, _ := db.Zone(name)
		z := Zone{Name: name}
		for _, s := range def.Segments {
			z.Segments = append(z.Segments, newSegment(s))
		}
		doc.Zones = append(doc.Zones, z)
	}
	for _, a := range db.Aliases() {
		doc.Links = append(doc.Links, Link{Target: a.Target, Name: a.Name})
	}
	return doc
}

func newRule(r tzdata.RuleRecord) Rule {
	to := FormatYear(r.To)
	if r.To == r.From {
		to = "only"
	}
	return Rule{
		From:   FormatYear(r.From),
		To:     to,
		Type:   r.Type,
		In:     r.YearOffset.Month.String()[:3],
		On:     r.YearOffset.Day.String(),
		At:     FormatAt(r.YearOffset),
		Save:   tzdata.FormatClock(r.Save),
		Letter: r.Letter,
	}
}

func newSegment(s tzdata.ZoneSegment) Segment {
	seg := Segment{
		Offset: tzdata.FormatClock(s.Offset),
		Rules:  s.Rules.String(),
		Format: s.Format,
	}
	if s.Bounded() {
		seg.Until = fmt.Sprintf("%d %s", int(s.UntilYear), s.UntilYearOffset)
	}
	return seg
}

// FormatYear formats a FROM or TO year, using "min" and "max" for the
// unbounded ends.
func FormatYear(y tzdata.Year) string {
	switch y {
	case tzdata.MinYear:
		return "min"
	case tzdata.MaxYear:
		return "max"
	}
	return fmt.Sprint(int(y))
}

// FormatAt formats the AT field of o, e.g. "2:00", "1:00u" or "24:00".
func FormatAt(o tzdata.YearOffset) string {
	t := o.TimeOfDay.Duration()
	if o.NextDay {
		t += 24 * time.Hour
	}
	switch o.Mode {
	case tzdata.Standard:
		return tzdata.FormatClock(t) + "s"
	case tzdata.UTC:
		return tzdata.FormatClock(t) + "u"
	}
	return tzdata.FormatClock(t)
}

// YAML writes db as a YAML document.
func YAML(w io.Writer, db *tzdata.Database) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(db)); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// JSON writes db as an indented JSON document.
func JSON(w io.Writer, db *tzdata.Database) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(db)); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// Summary writes the record counts of db and one line per zone.
func Summary(w io.Writer, db *tzdata.Database) error {
	s := db.Stats()
	if _, err := fmt.Fprintf(w, "%d rule sets (%d rules), %d zones (%d segments), %d links\n",
		s.RuleSets, s.Rules, s.Zones, s.Segments, s.Aliases); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	for _, name := range db.ZoneNames() {
		z, _ := db.Zone(name)
		last := z.Segments[len(z.Segments)-1]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", name, tzdata.FormatClock(last.Offset), last.Rules, last.Format)
	}
	return tw.Flush()
}
