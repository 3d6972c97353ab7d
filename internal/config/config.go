// Package config provides Viper-based hierarchical configuration for the bot.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config is the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`

	Telegram struct {
		Token          string  `mapstructure:"token"`
		AllowedUserIDs []int64 `mapstructure:"allowed_user_ids"`
	} `mapstructure:"telegram"`

	AI struct {
		Model               string  `mapstructure:"model"`
		APIKey              string  `mapstructure:"api_key"`
		TimeoutSeconds      int     `mapstructure:"timeout_seconds"`
		ConfidenceThreshold float64 `mapstructure:"confidence_threshold"`
	} `mapstructure:"ai"`

	Google struct {
		CredentialsFile string `mapstructure:"credentials_file"`
	} `mapstructure:"google"`

	Sheets struct {
		LedgerSpreadsheetID     string `mapstructure:"ledger_spreadsheet_id"`
		CollectionSpreadsheetID string `mapstructure:"collection_spreadsheet_id"`
	} `mapstructure:"sheets"`

	Drive struct {
		RootFolderID string `mapstructure:"root_folder_id"`
	} `mapstructure:"drive"`

	Session struct {
		TTLMinutes int `mapstructure:"ttl_minutes"`
	} `mapstructure:"session"`

	Reminder struct {
		Enabled  bool   `mapstructure:"enabled"`
		Schedule string `mapstructure:"schedule"`
		ChatID   int64  `mapstructure:"chat_id"`
	} `mapstructure:"reminder"`

	Categories struct {
		File string `mapstructure:"file"`
	} `mapstructure:"categories"`
}

// AITimeout returns the extraction call timeout as a duration.
func (c *Config) AITimeout() time.Duration {
	return time.Duration(c.AI.TimeoutSeconds) * time.Second
}

// SessionTTL returns the idle session lifetime; zero disables expiry.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Session.TTLMinutes) * time.Minute
}

// InitializeConfig loads configuration with hierarchical precedence:
// defaults, then an optional YAML config file, then environment variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.flatbot")
	v.AddConfigPath(".flatbot")
	v.AddConfigPath(".")

	v.SetEnvPrefix("FLATBOT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Log the error but continue with defaults and env vars.
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// Secrets are always taken from unprefixed environment variables.
	bindings := map[string]string{
		"telegram.token":                 "TELEGRAM_BOT_TOKEN",
		"ai.api_key":                     "GEMINI_API_KEY",
		"google.credentials_file":        "GOOGLE_APPLICATION_CREDENTIALS",
		"sheets.ledger_spreadsheet_id":   "LEDGER_SPREADSHEET_ID",
		"sheets.collection_spreadsheet_id": "COLLECTION_SPREADSHEET_ID",
		"drive.root_folder_id":           "DRIVE_ROOT_FOLDER_ID",
		"telegram.allowed_user_ids":      "ALLOWED_USER_IDS",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			fmt.Printf("Warning: failed to bind %s environment variable: %v\n", env, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.timeout_seconds", 30)
	v.SetDefault("ai.confidence_threshold", 0.7)

	v.SetDefault("session.ttl_minutes", 30)

	v.SetDefault("reminder.enabled", false)
	v.SetDefault("reminder.schedule", "0 10 5 * *")
	v.SetDefault("reminder.chat_id", 0)

	v.SetDefault("categories.file", "categories.yaml")
}

// validateConfig validates the configuration values. Failures here are fatal
// at startup: the process does not begin serving with a broken configuration.
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Telegram.Token == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	if len(config.Telegram.AllowedUserIDs) == 0 {
		return fmt.Errorf("telegram.allowed_user_ids must list at least one authorized user")
	}

	if config.AI.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if config.AI.TimeoutSeconds < 1 || config.AI.TimeoutSeconds > 300 {
		return fmt.Errorf("ai.timeout_seconds must be between 1 and 300, got: %d", config.AI.TimeoutSeconds)
	}
	if config.AI.ConfidenceThreshold < 0.0 || config.AI.ConfidenceThreshold > 1.0 {
		return fmt.Errorf("ai.confidence_threshold must be between 0.0 and 1.0, got: %f", config.AI.ConfidenceThreshold)
	}

	if config.Sheets.LedgerSpreadsheetID == "" {
		return fmt.Errorf("LEDGER_SPREADSHEET_ID is required")
	}
	if config.Sheets.CollectionSpreadsheetID == "" {
		return fmt.Errorf("COLLECTION_SPREADSHEET_ID is required")
	}
	if config.Drive.RootFolderID == "" {
		return fmt.Errorf("DRIVE_ROOT_FOLDER_ID is required")
	}

	if config.Session.TTLMinutes < 0 {
		return fmt.Errorf("session.ttl_minutes must not be negative, got: %d", config.Session.TTLMinutes)
	}
	if config.Reminder.Enabled {
		if config.Reminder.Schedule == "" {
			return fmt.Errorf("reminder.schedule is required when reminders are enabled")
		}
		if config.Reminder.ChatID == 0 {
			return fmt.Errorf("reminder.chat_id is required when reminders are enabled")
		}
	}

	return nil
}
