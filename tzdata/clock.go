package tzdata

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Year represents a year in the proleptic Gregorian calendar.
type Year int

func (y Year) String() string {
	if y == MinYear {
		return "<indefinite past>"
	}
	if y == MaxYear {
		return "<indefinite future>"
	}
	return strconv.Itoa(int(y))
}

const (
	// MinYear means the indefinite past.
	MinYear = math.MinInt
	// MaxYear means the indefinite future.
	MaxYear = math.MaxInt
)

// TimeOfDay is the time shown by a clock, as the duration since 00:00,
// the start of a calendar day. Values are always in [0, 24h).
type TimeOfDay time.Duration

// Duration returns the time since 00:00.
func (t TimeOfDay) Duration() time.Duration {
	return time.Duration(t)
}

func (t TimeOfDay) String() string {
	return FormatClock(time.Duration(t))
}

// FormatClock formats d in the H:MM[:SS] notation of the source files, e.g. "-5:00" or "0:34:08".
func FormatClock(d time.Duration) string {
	var sign string
	if d < 0 {
		sign = "-"
		d = -d
	}
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	frac := d % time.Second
	switch {
	case frac != 0:
		fs := strings.TrimRight(fmt.Sprintf("%09d", int64(frac)), "0")
		return fmt.Sprintf("%s%d:%02d:%02d.%s", sign, h, m, s, fs)
	case s != 0:
		return fmt.Sprintf("%s%d:%02d:%02d", sign, h, m, s)
	default:
		return fmt.Sprintf("%s%d:%02d", sign, h, m)
	}
}

var errClockSyntax = errors.New("expected [-]H[:MM[:SS[.fraction]]]")

// parseClock parses the time notation shared by the STDOFF, AT and SAVE fields.
//
// zic(8) says:
//
//	Recognized forms include:
//
//	     2            time in hours
//	     2:00         time in hours and minutes
//	     01:28:14     time in hours, minutes, and seconds
//	     00:19:32.13  time with fractional seconds
//	     12:00        midday, 12 hours after 00:00
//	     15:00        3 PM, 15 hours after 00:00
//	     24:00        end of day, 24 hours after 00:00
//	     260:00       260 hours after 00:00
//	     -2:30        2.5 hours before 00:00
//	     -            equivalent to 0
func parseClock(s string) (time.Duration, error) {
	if s == "-" {
		return 0, nil
	}

	negative := false
	switch {
	case strings.HasPrefix(s, "-"):
		negative = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, errClockSyntax
	}

	var fraction string
	if len(parts) == 3 {
		var found bool
		parts[2], fraction, found = strings.Cut(parts[2], ".")
		if found && fraction == "" {
			return 0, errClockSyntax
		}
	}

	var hms [3]int
	for i, p := range parts {
		n, err := parseDigits(p)
		if err != nil {
			return 0, err
		}
		if i > 0 && (len(p) != 2 || n > 59) {
			return 0, fmt.Errorf("%q: want two digits between 00 and 59", p)
		}
		hms[i] = n
	}

	d := time.Duration(hms[0])*time.Hour +
		time.Duration(hms[1])*time.Minute +
		time.Duration(hms[2])*time.Second

	if fraction != "" {
		if _, err := parseDigits(fraction); err != nil {
			return 0, err
		}
		// Nanoseconds are the finest precision a time.Duration can carry.
		if len(fraction) > 9 {
			fraction = fraction[:9]
		}
		n, _ := strconv.Atoi(fraction + strings.Repeat("0", 9-len(fraction)))
		d += time.Duration(n)
	}

	if negative {
		d = -d
	}
	return d, nil
}

// parseDigits parses a non-empty run of ASCII digits.
// Unlike strconv.Atoi it rejects signs.
func parseDigits(s string) (int, error) {
	if s == "" {
		return 0, errClockSyntax
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, errClockSyntax
		}
	}
	return strconv.Atoi(s)
}

// parseOffset parses a signed UT offset such as the STDOFF field of a zone line.
func parseOffset(s string) (time.Duration, error) {
	d, err := parseClock(s)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %v", ErrInvalidOffset, s, err)
	}
	return d, nil
}

// parseSave parses the SAVE field of a rule line, or a RULES field holding
// an amount of time.
//
// zic(8) says:
//
//	This field has the same format as the AT field except with a
//	different set of suffix letters: s for standard time and d for
//	daylight saving time.
//
// The suffix only restates whether the amount is zero, so it is dropped.
func parseSave(s string) (time.Duration, error) {
	trimmed := s
	if n := len(s); n > 1 && (s[n-1] == 's' || s[n-1] == 'd') {
		trimmed = s[:n-1]
	}
	d, err := parseClock(trimmed)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %v", ErrInvalidOffset, s, err)
	}
	return d, nil
}

// parseYear parses a plain integer year.
func parseYear(s string) (Year, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w %q", ErrInvalidNumber, s)
	}
	return Year(n), nil
}
