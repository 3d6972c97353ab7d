package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validTestConfig() *Config {
	c := &Config{}
	c.Log.Level = "info"
	c.Log.Format = "text"
	c.Telegram.Token = "token"
	c.Telegram.AllowedUserIDs = []int64{100}
	c.AI.APIKey = "key"
	c.AI.TimeoutSeconds = 30
	c.AI.ConfidenceThreshold = 0.7
	c.Sheets.LedgerSpreadsheetID = "ledger-id"
	c.Sheets.CollectionSpreadsheetID = "collection-id"
	c.Drive.RootFolderID = "folder-id"
	c.Session.TTLMinutes = 30
	return c
}

func TestValidateConfig(t *testing.T) {
	assert.NoError(t, validateConfig(validTestConfig()))
}

func TestValidateConfigFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"Bad log level", func(c *Config) { c.Log.Level = "loud" }},
		{"Bad log format", func(c *Config) { c.Log.Format = "xml" }},
		{"Missing token", func(c *Config) { c.Telegram.Token = "" }},
		{"Empty allow-list", func(c *Config) { c.Telegram.AllowedUserIDs = nil }},
		{"Missing API key", func(c *Config) { c.AI.APIKey = "" }},
		{"Timeout too small", func(c *Config) { c.AI.TimeoutSeconds = 0 }},
		{"Timeout too large", func(c *Config) { c.AI.TimeoutSeconds = 301 }},
		{"Threshold out of range", func(c *Config) { c.AI.ConfidenceThreshold = 1.5 }},
		{"Missing ledger sheet", func(c *Config) { c.Sheets.LedgerSpreadsheetID = "" }},
		{"Missing collection sheet", func(c *Config) { c.Sheets.CollectionSpreadsheetID = "" }},
		{"Missing drive folder", func(c *Config) { c.Drive.RootFolderID = "" }},
		{"Negative TTL", func(c *Config) { c.Session.TTLMinutes = -1 }},
		{"Reminder without schedule", func(c *Config) {
			c.Reminder.Enabled = true
			c.Reminder.ChatID = 1
			c.Reminder.Schedule = ""
		}},
		{"Reminder without chat", func(c *Config) {
			c.Reminder.Enabled = true
			c.Reminder.Schedule = "0 10 5 * *"
			c.Reminder.ChatID = 0
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := validTestConfig()
			tc.mutate(c)
			assert.Error(t, validateConfig(c))
		})
	}
}

func TestDurationHelpers(t *testing.T) {
	c := validTestConfig()
	assert.Equal(t, 30*time.Second, c.AITimeout())
	assert.Equal(t, 30*time.Minute, c.SessionTTL())

	c.Session.TTLMinutes = 0
	assert.Equal(t, time.Duration(0), c.SessionTTL())
}
