// Package dateutils provides the date parsing and formatting conventions used
// throughout the bot.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// Layouts used across the bot.
const (
	DateLayoutISO   = "2006-01-02"
	MonthSheetName  = "Jan-2006" // ledger sheet and Drive folder per month
	DateLayoutIndia = "02-01-2006"
)

// CommonFormats is the list of formats tried when parsing user-entered dates.
var CommonFormats = []string{
	DateLayoutISO,
	DateLayoutIndia,
	"02/01/2006",
	"2006/01/02",
	"02.01.2006",
	"2-Jan-2006",
	"Jan 2, 2006",
}

// ParseDate parses a user-entered date string, trying each common format.
func ParseDate(raw string) (time.Time, error) {
	s := strings.Join(strings.Fields(strings.TrimSpace(raw)), " ")
	for _, format := range CommonFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", raw)
}

// ToISODate formats a time as YYYY-MM-DD.
func ToISODate(t time.Time) string {
	return t.Format(DateLayoutISO)
}

// NormalizeISO parses a user-entered date and re-renders it as YYYY-MM-DD.
func NormalizeISO(raw string) (string, error) {
	t, err := ParseDate(raw)
	if err != nil {
		return "", err
	}
	return ToISODate(t), nil
}

// MonthName returns the per-month sheet/folder name for a point in time.
func MonthName(t time.Time) string {
	return t.Format(MonthSheetName)
}
