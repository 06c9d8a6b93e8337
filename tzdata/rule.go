package tzdata

import (
	"fmt"
	"time"
)

// RuleRecord represents a rule line.
type RuleRecord struct {
	Name       string        // The NAME field.
	From       Year          // The FROM field. May be MinYear.
	To         Year          // The TO field. May be MaxYear. Never before From.
	Type       string        // The reserved TYPE field; empty if "-".
	YearOffset YearOffset    // The IN, ON and AT fields.
	Save       time.Duration // The SAVE field. May be zero or negative.
	Letter     string        // The LETTER/S field; empty if "-" or omitted.
}

// parseRule parses the fields of a rule line following the "Rule" keyword.
//
// zic(8) says:
//
//	A rule line has the form
//
//	    Rule  NAME  FROM  TO    -  IN   ON       AT     SAVE   LETTER/S
//
//	For example:
//
//	    Rule  US    1967  1973  -  Apr  lastSun  2:00w  1:00d  D
func parseRule(t *tokens) (RuleRecord, error) {
	var r RuleRecord

	s, err := t.next("NAME")
	if err != nil {
		return r, err
	}
	r.Name = s

	if s, err = t.next("FROM"); err != nil {
		return r, err
	}
	if r.From, err = parseRuleFROM(s); err != nil {
		return r, fmt.Errorf("FROM: %w", err)
	}

	if s, err = t.next("TO"); err != nil {
		return r, err
	}
	if r.To, err = parseRuleTO(s, r.From); err != nil {
		return r, fmt.Errorf("TO: %w", err)
	}
	if r.To < r.From {
		return r, fmt.Errorf("%w: %v to %v", ErrInvalidRange, r.From, r.To)
	}

	if s, err = t.next("TYPE"); err != nil {
		return r, err
	}
	if s != "-" {
		r.Type = s
	}

	if r.YearOffset, err = parseYearOffset(t, true); err != nil {
		return r, err
	}

	if s, err = t.next("SAVE"); err != nil {
		return r, err
	}
	if r.Save, err = parseSave(s); err != nil {
		return r, fmt.Errorf("SAVE: %w", err)
	}

	if s, ok := t.tryNext(); ok && s != "-" {
		r.Letter = s
	}
	return r, t.done()
}

// parseRuleFROM parses the FROM field of a rule line.
//
// zic(8) says:
//
//	Gives the first year in which the rule applies.  Any
//	signed integer year can be supplied; the proleptic
//	Gregorian calendar is assumed, with year 0 preceding year
//	1.  The word minimum (or an abbreviation) means the
//	indefinite past.  The word maximum (or an abbreviation)
//	means the indefinite future.
func parseRuleFROM(s string) (Year, error) {
	if isAbbrev(s, "minimum", "mi") {
		return MinYear, nil
	}
	if isAbbrev(s, "maximum", "ma") {
		return MaxYear, nil
	}
	return parseYear(s)
}

// parseRuleTO parses the TO field of a rule line.
//
// zic(8) says:
//
//	Gives the final year in which the rule applies.  In
//	addition to minimum and maximum (as above), the word only
//	(or an abbreviation) may be used to repeat the value of
//	the FROM field.
func parseRuleTO(s string, from Year) (Year, error) {
	if isAbbrev(s, "only", "o") {
		return from, nil
	}
	return parseRuleFROM(s)
}
