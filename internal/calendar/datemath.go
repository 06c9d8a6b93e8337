package calendar

import "time"

// isLeapYear determines if the year is a leap year in the proleptic
// Gregorian calendar.
func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// daysIn returns the number of days of month in year.
func daysIn(month time.Month, year int) int {
	switch month {
	case time.February:
		if isLeapYear(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	}
	return 31
}

// weekdayOf calculates the day of the week of a date using Zeller's
// congruence for the Gregorian calendar.
func weekdayOf(year int, month time.Month, day int) time.Weekday {
	m := int(month)
	if m < 3 {
		m += 12
		year--
	}
	k := mod(year, 100)
	j := floorDiv(year, 100)
	h := mod(day+(13*(m+1))/5+k+k/4+floorDiv(j, 4)+5*j, 7)
	// h is 0 for Saturday.
	return time.Weekday((h + 6) % 7)
}

func mod(a, b int) int {
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// lastWeekdayOfMonth finds the last instance of weekday in month.
func lastWeekdayOfMonth(year int, month time.Month, weekday time.Weekday) int {
	last := daysIn(month, year)
	back := (int(weekdayOf(year, month, last)) - int(weekday) + 7) % 7
	return last - back
}

// onOrAfter finds the first weekday on or after day, rolling into the
// following month or year when needed.
func onOrAfter(year int, month time.Month, day int, weekday time.Weekday) (int, time.Month, int) {
	day += (int(weekday) - int(weekdayOf(year, month, day)) + 7) % 7
	if n := daysIn(month, year); day > n {
		day -= n
		year, month = nextMonth(year, month)
	}
	return year, month, day
}

// onOrBefore finds the last weekday on or before day, rolling into the
// preceding month or year when needed.
func onOrBefore(year int, month time.Month, day int, weekday time.Weekday) (int, time.Month, int) {
	day -= (int(weekdayOf(year, month, day)) - int(weekday) + 7) % 7
	if day < 1 {
		year, month = prevMonth(year, month)
		day += daysIn(month, year)
	}
	return year, month, day
}

// addDay returns the day after the given date.
func addDay(year int, month time.Month, day int) (int, time.Month, int) {
	if day < daysIn(month, year) {
		return year, month, day + 1
	}
	year, month = nextMonth(year, month)
	return year, month, 1
}

func nextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}

func prevMonth(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}
