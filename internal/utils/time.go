package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/quickhire/internal/constants"
)

// ExpandPath expands a leading "~" to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// Timestamp formats t as an RFC3339 string in UTC, the format used for every stored timestamp.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ParseDate parses a date string (YYYY-MM-DD). "today" resolves against now in loc.
func ParseDate(dateStr string, now time.Time, loc *time.Location) (time.Time, error) {
	if strings.EqualFold(strings.TrimSpace(dateStr), "today") {
		n := now.In(loc)
		return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, loc), nil
	}
	t, err := time.ParseInLocation(constants.DateFormat, strings.TrimSpace(dateStr), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", dateStr, err)
	}
	return t, nil
}

// ParseDateTime accepts either RFC3339 or "YYYY-MM-DD HH:MM" interpreted in loc.
// A bare date is treated as midnight.
func ParseDateTime(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(constants.DateTimeFormat, value, loc); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(constants.DateFormat, value, loc); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date/time %q (expected RFC3339 or YYYY-MM-DD HH:MM)", value)
}

// FormatHours renders a fractional hour count without trailing zeros, e.g. 1.5h or 2h.
func FormatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64) + "h"
}
