package tzdata

import (
	"fmt"
	"time"
)

// ZoneRules is the RULES field of a zone line. It is one of NoRules,
// FixedSavings or NamedRules.
type ZoneRules interface {
	fmt.Stringer
	zoneRules()
}

// NoRules means standard time always applies. The field was "-".
type NoRules struct{}

// FixedSavings means a fixed amount of time is added to standard time.
type FixedSavings struct {
	Save time.Duration
}

// NamedRules references the rule set with the given name.
// Whether such a rule set exists is not checked while parsing.
type NamedRules struct {
	Name string
}

func (NoRules) zoneRules()      {}
func (FixedSavings) zoneRules() {}
func (NamedRules) zoneRules()   {}

func (NoRules) String() string        { return "-" }
func (r FixedSavings) String() string { return FormatClock(r.Save) }
func (r NamedRules) String() string   { return r.Name }

// ZoneSegment represents a zone line or a continuation line.
// It is valid from the UNTIL point of the preceding segment, if any,
// up to its own UNTIL point.
type ZoneSegment struct {
	Offset          time.Duration // The STDOFF field.
	Rules           ZoneRules     // The RULES field.
	Format          string        // The FORMAT field, verbatim.
	UntilYear       Year          // The UNTIL year, or MaxYear if the segment is open-ended.
	UntilYearOffset YearOffset    // The rest of the UNTIL column, defaulted to StartOfYear.
}

// Bounded reports whether the segment has an UNTIL column.
func (s ZoneSegment) Bounded() bool {
	return s.UntilYear != MaxYear
}

// ZoneDefinition is a named zone and its segments in the order they were written.
// The last segment is normally open-ended.
type ZoneDefinition struct {
	Name     string
	Segments []ZoneSegment
}

// parseZoneSegment parses the fields of a zone line that follow the name, or
// the fields of a continuation line.
//
// zic(8) says:
//
//	A zone line has the form
//
//	     Zone  NAME        STDOFF  RULES   FORMAT  [UNTIL]
//
//	For example:
//
//	     Zone  Asia/Amman  2:00    Jordan  EE%sT   2017 Oct 27 01:00
func parseZoneSegment(t *tokens) (ZoneSegment, error) {
	z := ZoneSegment{UntilYear: MaxYear, UntilYearOffset: StartOfYear}

	s, err := t.next("STDOFF")
	if err != nil {
		return z, err
	}
	if z.Offset, err = parseOffset(s); err != nil {
		return z, fmt.Errorf("STDOFF: %w", err)
	}

	if s, err = t.next("RULES"); err != nil {
		return z, err
	}
	if z.Rules, err = parseZoneRULES(s); err != nil {
		return z, fmt.Errorf("RULES: %w", err)
	}

	if z.Format, err = t.next("FORMAT"); err != nil {
		return z, err
	}

	s, ok := t.tryNext()
	if !ok {
		return z, nil
	}
	if z.UntilYear, err = parseYear(s); err != nil {
		return z, fmt.Errorf("UNTIL: %w", err)
	}
	if z.UntilYearOffset, err = parseYearOffset(t, false); err != nil {
		return z, fmt.Errorf("UNTIL: %w", err)
	}
	return z, t.done()
}

// parseZoneRULES parses the RULES field of a zone line.
//
// zic(8) says:
//
//	The name of the rules that apply in the timezone or,
//	alternatively, a field in the same format as a rule-line
//	SAVE column, giving the amount of time to be added to
//	local standard time and whether the resulting time is
//	standard or daylight saving.  If this field is - then
//	standard time always applies.
//
// Rule names cannot start with a digit or a sign, which is what tells the
// two apart.
func parseZoneRULES(s string) (ZoneRules, error) {
	if s == "-" {
		return NoRules{}, nil
	}
	if isNumeric(s) {
		d, err := parseSave(s)
		if err != nil {
			return nil, err
		}
		return FixedSavings{Save: d}, nil
	}
	return NamedRules{Name: s}, nil
}

func isNumeric(s string) bool {
	c := s[0]
	return ('0' <= c && c <= '9') || ((c == '-' || c == '+') && len(s) > 1)
}
