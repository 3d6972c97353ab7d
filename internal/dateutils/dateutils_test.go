package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name       string
		dateStr    string
		expectedOk bool
		expectedY  int
		expectedM  time.Month
		expectedD  int
	}{
		{"ISO format", "2026-08-15", true, 2026, time.August, 15},
		{"Indian format", "15-08-2026", true, 2026, time.August, 15},
		{"Slash format", "15/08/2026", true, 2026, time.August, 15},
		{"Dotted format", "15.08.2026", true, 2026, time.August, 15},
		{"With month name", "15-Aug-2026", true, 2026, time.August, 15},
		{"Extra whitespace", "  2026-08-15  ", true, 2026, time.August, 15},
		{"Empty string", "", false, 0, 0, 0},
		{"Invalid format", "not a date", false, 0, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			date, err := ParseDate(tc.dateStr)

			if tc.expectedOk {
				assert.NoError(t, err)
				assert.Equal(t, tc.expectedY, date.Year())
				assert.Equal(t, tc.expectedM, date.Month())
				assert.Equal(t, tc.expectedD, date.Day())
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestNormalizeISO(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{"Already ISO", "2026-08-15", "2026-08-15", false},
		{"Indian to ISO", "15-08-2026", "2026-08-15", false},
		{"Slash to ISO", "15/08/2026", "2026-08-15", false},
		{"Garbage", "soon", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeISO(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestMonthName(t *testing.T) {
	when := time.Date(2026, time.August, 25, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "Aug-2026", MonthName(when))
}

func TestToISODate(t *testing.T) {
	when := time.Date(2026, time.January, 3, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "2026-01-03", ToISODate(when))
}
