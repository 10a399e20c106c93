package dateparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// relativeRe matches relative-age shorthand like "3d", "2 mo", "5h".
var relativeRe = regexp.MustCompile(`^(?i)(\d+)\s*(d|w|mo|m|y|yr|h|hr|hrs|hours)$`)

// ParseRelative resolves a relative-age token against a reference instant.
// Month arithmetic borrows years and clamps the day to the target month's
// length; year arithmetic clamps a Feb-29 reference to Feb-28.
func ParseRelative(token string, ref time.Time) (time.Time, bool) {
	cleaned := Clean(token)
	cleaned = strings.TrimSpace(strings.TrimSuffix(cleaned, "ago"))
	m := relativeRe.FindStringSubmatch(cleaned)
	if m == nil {
		return time.Time{}, false
	}
	value, err := strconv.Atoi(m[1])
	if err != nil {
		return time.Time{}, false
	}
	unit := strings.ToLower(m[2])

	switch unit {
	case "d":
		return ref.AddDate(0, 0, -value), true
	case "w":
		return ref.AddDate(0, 0, -7*value), true
	case "h", "hr", "hrs", "hours":
		return ref.Add(-time.Duration(value) * time.Hour), true
	case "y", "yr":
		return shiftYears(ref, -value), true
	case "mo", "m":
		return shiftMonths(ref, -value), true
	}
	return time.Time{}, false
}

// IsDateLine reports whether the line carries a date the pipeline can
// resolve, either absolute or relative.
func IsDateLine(line string) bool {
	cleaned := Clean(line)
	if cleaned == "" {
		return false
	}
	if _, ok := Parse(cleaned); ok {
		return true
	}
	return relativeRe.MatchString(cleaned)
}

func shiftYears(ref time.Time, delta int) time.Time {
	year := ref.Year() + delta
	day := ref.Day()
	if ref.Month() == time.February && day == 29 && !isLeap(year) {
		day = 28
	}
	return time.Date(year, ref.Month(), day, 0, 0, 0, 0, time.UTC)
}

func shiftMonths(ref time.Time, delta int) time.Time {
	year := ref.Year()
	month := int(ref.Month()) + delta
	for month <= 0 {
		month += 12
		year--
	}
	day := ref.Day()
	if max := daysInMonth(month, year); day > max {
		day = max
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

var monthDays = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func daysInMonth(month, year int) int {
	if month == 2 && isLeap(year) {
		return 29
	}
	return monthDays[month-1]
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
