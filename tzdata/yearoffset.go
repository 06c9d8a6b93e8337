package tzdata

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TransitionMode is the reference frame a transition time is expressed in.
type TransitionMode int

const (
	// Wall means local wall clock time, the default.
	Wall TransitionMode = iota
	// Standard means local standard time, without daylight saving.
	Standard
	// UTC means universal time.
	UTC
)

func (m TransitionMode) String() string {
	switch m {
	case Wall:
		return "Wall"
	case Standard:
		return "Standard"
	case UTC:
		return "UTC"
	default:
		return "<UNDEFINED>"
	}
}

// DaySelector selects a day within a month. It is one of ExactDay,
// LastWeekday, OnOrAfter or OnOrBefore.
type DaySelector interface {
	fmt.Stringer
	daySelector()
}

// ExactDay is a fixed day of the month, e.g. "5".
type ExactDay struct {
	Day int
}

// LastWeekday is the last given weekday of the month, e.g. "lastSun".
type LastWeekday struct {
	Weekday time.Weekday
}

// OnOrAfter is the first given weekday on or after Day, e.g. "Sun>=8".
// The result can fall into the following month.
type OnOrAfter struct {
	Weekday time.Weekday
	Day     int
}

// OnOrBefore is the last given weekday on or before Day, e.g. "Sun<=25".
// The result can fall into the preceding month.
type OnOrBefore struct {
	Weekday time.Weekday
	Day     int
}

func (ExactDay) daySelector()    {}
func (LastWeekday) daySelector() {}
func (OnOrAfter) daySelector()   {}
func (OnOrBefore) daySelector()  {}

func (d ExactDay) String() string    { return strconv.Itoa(d.Day) }
func (d LastWeekday) String() string { return "last" + weekdayAbbrev(d.Weekday) }
func (d OnOrAfter) String() string   { return weekdayAbbrev(d.Weekday) + ">=" + strconv.Itoa(d.Day) }
func (d OnOrBefore) String() string  { return weekdayAbbrev(d.Weekday) + "<=" + strconv.Itoa(d.Day) }

func weekdayAbbrev(d time.Weekday) string {
	return d.String()[:3]
}

// YearOffset is a point within a year, given by the IN, ON and AT fields of a
// rule line or the trailing fields of a zone line's UNTIL column.
type YearOffset struct {
	Month     time.Month
	Day       DaySelector
	TimeOfDay TimeOfDay
	Mode      TransitionMode
	// NextDay is set when the source said 24:00 or later. TimeOfDay then
	// holds the time on the day after the selected day.
	NextDay bool
}

// StartOfYear is the YearOffset of 00:00 wall clock time on January 1st.
// It is what an UNTIL column defaults to when only the year is given.
var StartOfYear = YearOffset{Month: time.January, Day: ExactDay{Day: 1}, Mode: Wall}

func (o YearOffset) String() string {
	var suffix string
	switch o.Mode {
	case Standard:
		suffix = "s"
	case UTC:
		suffix = "u"
	}
	t := o.TimeOfDay.Duration()
	if o.NextDay {
		t += 24 * time.Hour
	}
	return fmt.Sprintf("%s %v %s%s", o.Month.String()[:3], o.Day, FormatClock(t), suffix)
}

// parseYearOffset parses the IN, ON and AT fields.
// Rule lines require all three fields. On a zone line's UNTIL column each of
// them may be omitted together with the fields that follow it; missing fields
// default to the earliest possible value.
func parseYearOffset(t *tokens, mandatory bool) (YearOffset, error) {
	o := StartOfYear
	if !mandatory && !t.hasNext() {
		return o, nil
	}

	s, err := t.next("IN")
	if err != nil {
		return o, err
	}
	if o.Month, err = parseMonth(s); err != nil {
		return o, fmt.Errorf("IN: %w", err)
	}

	if !mandatory && !t.hasNext() {
		return o, nil
	}
	if s, err = t.next("ON"); err != nil {
		return o, err
	}
	if o.Day, err = parseDaySelector(s); err != nil {
		return o, fmt.Errorf("ON: %w", err)
	}
	if err := checkDayInMonth(o.Day, o.Month); err != nil {
		return o, fmt.Errorf("ON: %w", err)
	}

	if !mandatory && !t.hasNext() {
		return o, nil
	}
	if s, err = t.next("AT"); err != nil {
		return o, err
	}
	if o.TimeOfDay, o.Mode, o.NextDay, err = parseAt(s); err != nil {
		return o, fmt.Errorf("AT: %w", err)
	}
	return o, nil
}

// parseDaySelector parses the ON field.
//
// zic(8) says:
//
//	Recognized forms include:
//
//	     5        the fifth of the month
//	     lastSun  the last Sunday in the month
//	     lastMon  the last Monday in the month
//	     Sun>=8   first Sunday on or after the eighth
//	     Sun<=25  last Sunday on or before the 25th
func parseDaySelector(s string) (DaySelector, error) {
	if name, ok := strings.CutPrefix(s, "last"); ok {
		d, err := parseWeekday(name)
		if err != nil {
			return nil, err
		}
		return LastWeekday{Weekday: d}, nil
	}
	if name, num, ok := strings.Cut(s, ">="); ok {
		d, n, err := parseWeekdayAndDay(name, num)
		if err != nil {
			return nil, err
		}
		return OnOrAfter{Weekday: d, Day: n}, nil
	}
	if name, num, ok := strings.Cut(s, "<="); ok {
		d, n, err := parseWeekdayAndDay(name, num)
		if err != nil {
			return nil, err
		}
		return OnOrBefore{Weekday: d, Day: n}, nil
	}
	n, err := parseDayOfMonth(s)
	if err != nil {
		return nil, err
	}
	return ExactDay{Day: n}, nil
}

func parseWeekdayAndDay(name, num string) (time.Weekday, int, error) {
	d, err := parseWeekday(name)
	if err != nil {
		return 0, 0, err
	}
	n, err := parseDayOfMonth(num)
	if err != nil {
		return 0, 0, err
	}
	return d, n, nil
}

func parseDayOfMonth(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %v", ErrInvalidDaySelector, s, err)
	}
	if n < 1 || n > 31 {
		return 0, fmt.Errorf("%w %q: day of month out of range", ErrInvalidDaySelector, s)
	}
	return n, nil
}

// maxDays is the length of each month in a leap year.
var maxDays = [...]int{31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// checkDayInMonth rejects day numbers the month never has, like zic does.
func checkDayInMonth(d DaySelector, m time.Month) error {
	var n int
	switch d := d.(type) {
	case ExactDay:
		n = d.Day
	case OnOrAfter:
		n = d.Day
	case OnOrBefore:
		n = d.Day
	default:
		return nil
	}
	if n > maxDays[m-1] {
		return fmt.Errorf("%w %v: %s has at most %d days", ErrInvalidDaySelector, d, m, maxDays[m-1])
	}
	return nil
}

// parseAt parses the AT field.
//
// zic(8) says:
//
//	Any of these forms may be followed by the letter w if the
//	given time is local or “wall clock” time, s if the given
//	time is standard time without any adjustment for daylight
//	saving, or u (or g or z) if the given time is universal
//	time; in the absence of an indicator, local (wall clock)
//	time is assumed.
//
// Times from 24:00 up to but excluding 48:00 are folded onto the next day.
func parseAt(s string) (TimeOfDay, TransitionMode, bool, error) {
	mode := Wall
	clock := s
	if n := len(s); n > 0 && isASCIILetter(s[n-1]) {
		switch s[n-1] {
		case 's', 'S':
			mode = Standard
		case 'u', 'U', 'g', 'G', 'z', 'Z':
			mode = UTC
		}
		clock = s[:n-1]
	}

	d, err := parseClock(clock)
	if err != nil {
		return 0, 0, false, fmt.Errorf("%w %q: %v", ErrInvalidTime, s, err)
	}
	switch {
	case d < 0:
		return 0, 0, false, fmt.Errorf("%w %q: negative", ErrInvalidTime, s)
	case d < 24*time.Hour:
		return TimeOfDay(d), mode, false, nil
	case d < 48*time.Hour:
		return TimeOfDay(d - 24*time.Hour), mode, true, nil
	default:
		return 0, 0, false, fmt.Errorf("%w %q: more than a day past midnight", ErrInvalidTime, s)
	}
}

func isASCIILetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
