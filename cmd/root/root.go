// Package root contains the root command for the application
package root

import (
	"fjacquet/flatbot/internal/config"
	"fjacquet/flatbot/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Output string
	Format string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "flatbot",
		Short: "A Telegram bot that keeps a flat association's books in Google Sheets.",
		Long: `flatbot is a conversational Telegram bot for residential flat associations.
It records expenses and income from free text or receipt photos, manages the
flat register, and tracks periodic dues collections, persisting everything to
Google Sheets with receipts archived in Google Drive.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to flatbot!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
			Log = config.ConfigureLogging()
			logging.SetDefault(logging.NewLogrusAdapterFromLogger(Log))
		},
	}

	// Common flags accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Format, "format", "f", "csv", "Export format (csv or xlsx)")
}
