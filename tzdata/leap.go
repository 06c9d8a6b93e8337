package tzdata

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// LeapCorr represents the correction direction of a leap second.
type LeapCorr string

const (
	// LeapAdded means a second was added.
	LeapAdded LeapCorr = "+"
	// LeapSkipped means a second was skipped.
	LeapSkipped LeapCorr = "-"
)

// LeapTimeMode represents the mode of a leap second.
type LeapTimeMode int

const (
	// StationaryLeapTime means the leap second time given
	// by the other fields should be interpreted as UTC.
	StationaryLeapTime LeapTimeMode = iota

	// RollingLeapTime means the leap second time given by the
	// other fields should be interpreted as local (wall clock) time.
	// Rolling leap seconds are not used in practice.
	RollingLeapTime
)

// HMS represents the time that is shown on a watch.
// Seconds can be 60 during an added leap second.
type HMS struct {
	Hours   int
	Minutes int
	Seconds int
}

func (t HMS) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hours, t.Minutes, t.Seconds)
}

// LeapSecond represents a leap line.
type LeapSecond struct {
	Year  int          // YEAR column
	Month time.Month   // MONTH column
	Day   int          // DAY column
	Time  HMS          // HH:MM:SS column
	Corr  LeapCorr     // CORR column
	Mode  LeapTimeMode // R/S column
}

// Expiry represents an expires line, the point after which the leap second
// table is no longer known to be complete.
type Expiry struct {
	Year  int
	Month time.Month
	Day   int
	Time  HMS
}

// LeapSeconds is the content of a leapseconds file.
type LeapSeconds struct {
	Leaps   []LeapSecond
	Expires []Expiry
}

// ParseLeapSeconds parses a leapseconds file as distributed with tzdb
// releases. Lines other than Leap and Expires lines, comments and blank
// lines are rejected with ErrUnexpectedKeyword.
func ParseLeapSeconds(r io.Reader) (LeapSeconds, error) {
	var (
		result     LeapSeconds
		scanner    = bufio.NewScanner(r)
		lineNumber int
	)
	for scanner.Scan() {
		lineNumber++
		text := scanner.Text()
		line, ok := stripComment(text)
		if !ok {
			continue
		}
		t := tokenize(strings.TrimSpace(line))
		keyword, _ := t.next("keyword")
		switch keyword {
		case "Leap":
			l, err := parseLeap(t)
			if err != nil {
				return result, &ParseError{Line: lineNumber, Text: text, Err: fmt.Errorf("parse leap: %w", err)}
			}
			result.Leaps = append(result.Leaps, l)
		case "Expires":
			e, err := parseExpires(t)
			if err != nil {
				return result, &ParseError{Line: lineNumber, Text: text, Err: fmt.Errorf("parse expires: %w", err)}
			}
			result.Expires = append(result.Expires, e)
		default:
			return result, &ParseError{Line: lineNumber, Text: text, Err: fmt.Errorf("%w %q", ErrUnexpectedKeyword, keyword)}
		}
	}

	if err := scanner.Err(); err != nil {
		return result, fmt.Errorf("scanner: %w", err)
	}
	return result, nil
}

// parseLeap parses the fields of a leap line following the "Leap" keyword.
//
// zic(8) says:
//
//	A leap line has the form
//
//	     Leap  YEAR  MONTH  DAY  HH:MM:SS  CORR  R/S
func parseLeap(t *tokens) (LeapSecond, error) {
	var l LeapSecond
	date, err := parseLeapDate(t)
	if err != nil {
		return l, err
	}
	l.Year, l.Month, l.Day, l.Time = date.Year, date.Month, date.Day, date.Time

	s, err := t.next("CORR")
	if err != nil {
		return l, err
	}
	switch s {
	case "+":
		l.Corr = LeapAdded
	case "-":
		l.Corr = LeapSkipped
	default:
		return l, fmt.Errorf("CORR: invalid leap correction %q", s)
	}

	if s, err = t.next("R/S"); err != nil {
		return l, err
	}
	switch {
	case isAbbrev(s, "rolling", "r"):
		l.Mode = RollingLeapTime
	case isAbbrev(s, "stationary", "s"):
		l.Mode = StationaryLeapTime
	default:
		return l, fmt.Errorf("R/S: invalid leap mode %q", s)
	}
	return l, t.done()
}

// parseExpires parses the fields of an expires line following the "Expires" keyword.
func parseExpires(t *tokens) (Expiry, error) {
	e, err := parseLeapDate(t)
	if err != nil {
		return e, err
	}
	return e, t.done()
}

// parseLeapDate parses the YEAR, MONTH, DAY and HH:MM:SS columns shared by
// leap and expires lines.
func parseLeapDate(t *tokens) (Expiry, error) {
	var e Expiry
	s, err := t.next("YEAR")
	if err != nil {
		return e, err
	}
	if e.Year, err = strconv.Atoi(s); err != nil {
		return e, fmt.Errorf("YEAR: %w %q", ErrInvalidNumber, s)
	}
	if s, err = t.next("MONTH"); err != nil {
		return e, err
	}
	if e.Month, err = parseMonth(s); err != nil {
		return e, fmt.Errorf("MONTH: %w", err)
	}
	if s, err = t.next("DAY"); err != nil {
		return e, err
	}
	if e.Day, err = strconv.Atoi(s); err != nil {
		return e, fmt.Errorf("DAY: %w %q", ErrInvalidNumber, s)
	}
	if s, err = t.next("HH:MM:SS"); err != nil {
		return e, err
	}
	if e.Time, err = parseHMS(s); err != nil {
		return e, fmt.Errorf("HH:MM:SS: %w", err)
	}
	return e, nil
}

// parseHMS parses a time in HH:MM:SS format.
func parseHMS(s string) (HMS, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return HMS{}, fmt.Errorf("%w %q: expected 3 parts, got %d", ErrInvalidTime, s, len(parts))
	}
	var hms [3]int
	for i, p := range parts {
		n, err := parseDigits(p)
		if err != nil {
			return HMS{}, fmt.Errorf("%w %q", ErrInvalidTime, s)
		}
		hms[i] = n
	}
	if hms[0] > 23 || hms[1] > 59 || hms[2] > 60 {
		return HMS{}, fmt.Errorf("%w %q: out of range", ErrInvalidTime, s)
	}
	return HMS{Hours: hms[0], Minutes: hms[1], Seconds: hms[2]}, nil
}
