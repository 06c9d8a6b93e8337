package tzdata

import (
	"fmt"
	"strings"
	"time"
)

var monthAbbrevs = map[string]time.Month{
	"Jan": time.January,
	"Feb": time.February,
	"Mar": time.March,
	"Apr": time.April,
	"May": time.May,
	"Jun": time.June,
	"Jul": time.July,
	"Aug": time.August,
	"Sep": time.September,
	"Oct": time.October,
	"Nov": time.November,
	"Dec": time.December,
}

// Some historical entries spell out the month.
var monthNames = map[string]time.Month{
	"January":   time.January,
	"February":  time.February,
	"March":     time.March,
	"April":     time.April,
	"June":      time.June,
	"July":      time.July,
	"August":    time.August,
	"September": time.September,
	"October":   time.October,
	"November":  time.November,
	"December":  time.December,
}

var weekdayAbbrevs = map[string]time.Weekday{
	"Mon": time.Monday,
	"Tue": time.Tuesday,
	"Wed": time.Wednesday,
	"Thu": time.Thursday,
	"Fri": time.Friday,
	"Sat": time.Saturday,
	"Sun": time.Sunday,
}

func parseMonth(s string) (time.Month, error) {
	if m, ok := monthAbbrevs[s]; ok {
		return m, nil
	}
	if m, ok := monthNames[s]; ok {
		return m, nil
	}
	return 0, fmt.Errorf("%w %q", ErrInvalidMonth, s)
}

func parseWeekday(s string) (time.Weekday, error) {
	if d, ok := weekdayAbbrevs[s]; ok {
		return d, nil
	}
	return 0, fmt.Errorf("%w %q", ErrInvalidWeekday, s)
}

// isAbbrev reports whether s is an abbreviation of long that is at least as long as min.
// The comparison ignores case, like zic does for its keywords.
func isAbbrev(s string, long string, min string) bool {
	l := strings.ToLower(s)
	return strings.HasPrefix(l, min) && strings.HasPrefix(long, l)
}
