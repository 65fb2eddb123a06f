package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ISODateLayout is the canonical calendar-date format used across the service.
const ISODateLayout = "2006-01-02"

// MonthCell is one day cell inside a month grid. Nil cells are alignment padding.
type MonthCell struct {
	Date string `json:"date"` // "2006-01-02"
	Day  int    `json:"day"`  // 1-based day of month
}

// ParseISODate parses a "YYYY-MM-DD" string. Malformed input is an error,
// never a silent zero value.
func ParseISODate(iso string) (time.Time, error) {
	t, err := time.ParseInLocation(ISODateLayout, iso, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid calendar date %q: %w", iso, err)
	}
	return t, nil
}

// FormatISODate renders t as a "YYYY-MM-DD" string.
func FormatISODate(t time.Time) string {
	return t.Format(ISODateLayout)
}

// AddDays returns the calendar date n days after iso, crossing month and
// year boundaries. n may be negative.
func AddDays(iso string, n int) (string, error) {
	t, err := ParseISODate(iso)
	if err != nil {
		return "", err
	}
	return FormatISODate(t.AddDate(0, 0, n)), nil
}

// DayOfWeek returns the weekday of iso with Sunday = 0.
func DayOfWeek(iso string) (int, error) {
	t, err := ParseISODate(iso)
	if err != nil {
		return 0, err
	}
	return int(t.Weekday()), nil
}

// IsSunday reports whether iso falls on a Sunday.
func IsSunday(iso string) (bool, error) {
	wd, err := DayOfWeek(iso)
	if err != nil {
		return false, err
	}
	return wd == 0, nil
}

// MonthKey returns the "YYYY-MM" key of the month containing iso.
func MonthKey(iso string) (string, error) {
	t, err := ParseISODate(iso)
	if err != nil {
		return "", err
	}
	return t.Format("2006-01"), nil
}

// BuildMonthGrid expands a "YYYY-MM" key into a 7-column calendar grid:
// nil leading cells so day 1 aligns under its weekday (Sunday first),
// one cell per day of the month, then nil trailing cells to a multiple of 7.
func BuildMonthGrid(monthKey string) ([]*MonthCell, error) {
	first, err := time.ParseInLocation("2006-01", monthKey, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid month key %q: %w", monthKey, err)
	}
	daysInMonth := first.AddDate(0, 1, -1).Day()

	grid := make([]*MonthCell, 0, 42)
	for i := 0; i < int(first.Weekday()); i++ {
		grid = append(grid, nil)
	}
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
		grid = append(grid, &MonthCell{Date: FormatISODate(date), Day: day})
	}
	for len(grid)%7 != 0 {
		grid = append(grid, nil)
	}
	return grid, nil
}

// DateRange returns days consecutive dates starting at startISO (inclusive).
func DateRange(startISO string, days int) ([]string, error) {
	start, err := ParseISODate(startISO)
	if err != nil {
		return nil, err
	}
	if days < 0 {
		return nil, fmt.Errorf("negative range length %d", days)
	}
	dates := make([]string, 0, days)
	for d := 0; d < days; d++ {
		dates = append(dates, FormatISODate(start.AddDate(0, 0, d)))
	}
	return dates, nil
}

// DaysBetween returns the calendar-day difference toISO - fromISO.
func DaysBetween(fromISO, toISO string) (int, error) {
	from, err := ParseISODate(fromISO)
	if err != nil {
		return 0, err
	}
	to, err := ParseISODate(toISO)
	if err != nil {
		return 0, err
	}
	return int(to.Sub(from).Hours() / 24), nil
}

// ResolveDateAlias maps the client-side "Today"/"Tomorrow" aliases to a
// concrete date relative to now; ISO dates pass through validated.
func ResolveDateAlias(date string, now time.Time) (string, error) {
	switch strings.ToLower(strings.TrimSpace(date)) {
	case "today":
		return FormatISODate(now), nil
	case "tomorrow":
		return FormatISODate(now.AddDate(0, 0, 1)), nil
	}
	if _, err := ParseISODate(date); err != nil {
		return "", err
	}
	return date, nil
}

// ParseClockTime converts a 12-hour clock label such as "9:00 AM" into
// minutes from midnight.
func ParseClockTime(label string) (int, error) {
	s := strings.TrimSpace(label)
	var meridiem string
	switch {
	case strings.HasSuffix(strings.ToUpper(s), "AM"):
		meridiem = "AM"
	case strings.HasSuffix(strings.ToUpper(s), "PM"):
		meridiem = "PM"
	default:
		return 0, fmt.Errorf("invalid clock time %q: missing AM/PM", label)
	}
	s = strings.TrimSpace(s[:len(s)-2])

	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock time %q", label)
	}
	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || hour < 1 || hour > 12 {
		return 0, fmt.Errorf("invalid clock time %q: bad hour", label)
	}
	minute, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid clock time %q: bad minute", label)
	}

	if meridiem == "PM" && hour != 12 {
		hour += 12
	}
	if meridiem == "AM" && hour == 12 {
		hour = 0
	}
	return hour*60 + minute, nil
}

// ParseSlotWindow splits a slot label such as "9:00 AM - 11:00 AM" into
// start and end minutes from midnight.
func ParseSlotWindow(label string) (start, end int, err error) {
	parts := strings.SplitN(label, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid slot window %q", label)
	}
	start, err = ParseClockTime(parts[0])
	if err != nil {
		return 0, 0, err
	}
	end, err = ParseClockTime(parts[1])
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// FormatClockTime renders minutes from midnight as a 12-hour clock label.
func FormatClockTime(minutes int) string {
	minutes %= 24 * 60
	if minutes < 0 {
		minutes += 24 * 60
	}
	hour := minutes / 60
	minute := minutes % 60
	meridiem := "AM"
	if hour >= 12 {
		meridiem = "PM"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, minute, meridiem)
}
