// Package dates handles the DD/MM/YYYY calendar-date strings used across
// persisted bookings and reminders.
package dates

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDMY parses a zero-padded DD/MM/YYYY string into a local calendar
// date at midnight. Day and month are handed to time.Date as-is, so
// out-of-range values normalize forward rather than failing, matching how
// existing records were always interpreted.
func ParseDMY(s string) (time.Time, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 || len(parts[0]) != 2 || len(parts[1]) != 2 || len(parts[2]) != 4 {
		return time.Time{}, fmt.Errorf("date %q is not DD/MM/YYYY", s)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		for _, r := range p {
			if r < '0' || r > '9' {
				return time.Time{}, fmt.Errorf("date %q is not DD/MM/YYYY", s)
			}
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}, fmt.Errorf("date %q is not DD/MM/YYYY", s)
		}
		nums[i] = n
	}
	day, month, year := nums[0], nums[1], nums[2]
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local), nil
}

// FormatDMY renders t as a zero-padded DD/MM/YYYY string.
func FormatDMY(t time.Time) string {
	return t.Format("02/01/2006")
}

// DayOf truncates t to midnight in its own location.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
