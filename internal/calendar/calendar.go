// Package calendar resolves the day selectors of tzdb rule and zone lines
// to civil dates.
package calendar

import (
	"fmt"
	"sort"
	"time"

	"github.com/ngrash/go-tzdb/tzdata"
)

// DayOfMonth resolves d in the given month. OnOrAfter and OnOrBefore
// selectors may yield a date in a neighbouring month or year.
func DayOfMonth(year int, month time.Month, d tzdata.DaySelector) (int, time.Month, int) {
	switch d := d.(type) {
	case tzdata.ExactDay:
		return year, month, d.Day
	case tzdata.LastWeekday:
		return year, month, lastWeekdayOfMonth(year, month, d.Weekday)
	case tzdata.OnOrAfter:
		return onOrAfter(year, month, d.Day, d.Weekday)
	case tzdata.OnOrBefore:
		return onOrBefore(year, month, d.Day, d.Weekday)
	}
	panic(fmt.Errorf("calendar: unknown day selector %T", d))
}

// Moment is a YearOffset expanded for a given year.
type Moment struct {
	Year  int
	Month time.Month
	Day   int
	Time  tzdata.TimeOfDay
	Mode  tzdata.TransitionMode
}

func (m Moment) String() string {
	var suffix string
	switch m.Mode {
	case tzdata.Standard:
		suffix = "s"
	case tzdata.UTC:
		suffix = "u"
	}
	return fmt.Sprintf("%04d-%02d-%02d %s%s", m.Year, int(m.Month), m.Day, m.Time, suffix)
}

// Date resolves o in year. Offsets with NextDay set land on the day after
// the selected one.
func Date(year int, o tzdata.YearOffset) Moment {
	y, m, d := DayOfMonth(year, o.Month, o.Day)
	if o.NextDay {
		y, m, d = addDay(y, m, d)
	}
	return Moment{Year: y, Month: m, Day: d, Time: o.TimeOfDay, Mode: o.Mode}
}

// UntilDate resolves the UNTIL column of s. It reports false for
// open-ended segments.
func UntilDate(s tzdata.ZoneSegment) (Moment, bool) {
	if !s.Bounded() {
		return Moment{}, false
	}
	return Date(int(s.UntilYear), s.UntilYearOffset), true
}

// Transition is a rule applied in a specific year.
type Transition struct {
	At   Moment
	Rule tzdata.RuleRecord
}

// Transitions returns the transitions of the given rules in year, ordered
// by date and time of day.
func Transitions(rules []tzdata.RuleRecord, year int) []Transition {
	var tr []Transition
	for _, r := range rules {
		if tzdata.Year(year) < r.From || tzdata.Year(year) > r.To {
			continue
		}
		tr = append(tr, Transition{At: Date(year, r.YearOffset), Rule: r})
	}

	sort.SliceStable(tr, func(i, j int) bool {
		a, b := tr[i].At, tr[j].At
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Month != b.Month {
			return a.Month < b.Month
		}
		if a.Day != b.Day {
			return a.Day < b.Day
		}
		return a.Time < b.Time
	})
	return tr
}
