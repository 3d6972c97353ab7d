// Package serve contains the command that runs the bot.
package serve

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/api/option"

	"fjacquet/flatbot/cmd/root"
	"fjacquet/flatbot/internal/access"
	"fjacquet/flatbot/internal/categories"
	"fjacquet/flatbot/internal/config"
	"fjacquet/flatbot/internal/dialog"
	"fjacquet/flatbot/internal/drivestore"
	"fjacquet/flatbot/internal/extractor"
	"fjacquet/flatbot/internal/logging"
	"fjacquet/flatbot/internal/ocr"
	"fjacquet/flatbot/internal/reminders"
	"fjacquet/flatbot/internal/session"
	"fjacquet/flatbot/internal/sheetstore"
	"fjacquet/flatbot/internal/telegram"
)

// janitorInterval is how often expired sessions are swept.
const janitorInterval = 5 * time.Minute

// Cmd is the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Telegram bot",
	Long:  `Connect to Telegram and serve the association's chats until interrupted.`,
	Run:   serveFunc,
}

func serveFunc(cmd *cobra.Command, args []string) {
	cfg, err := config.InitializeConfig()
	if err != nil {
		root.Log.Fatalf("Configuration error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := logging.GetLogger()
	creds := option.WithCredentialsFile(cfg.Google.CredentialsFile)

	ledger, err := sheetstore.New(ctx, cfg.Sheets.LedgerSpreadsheetID, cfg.Sheets.CollectionSpreadsheetID, log, creds)
	if err != nil {
		root.Log.Fatalf("Failed to connect to Google Sheets: %v", err)
	}

	receipts, err := drivestore.New(ctx, cfg.Drive.RootFolderID, log, creds)
	if err != nil {
		root.Log.Fatalf("Failed to connect to Google Drive: %v", err)
	}

	recognizer, err := ocr.New(ctx, log, creds)
	if err != nil {
		root.Log.Fatalf("Failed to connect to Vision API: %v", err)
	}

	gemini, err := extractor.NewGemini(ctx, cfg.AI.APIKey, cfg.AI.Model, cfg.AITimeout(), log)
	if err != nil {
		root.Log.Fatalf("Failed to connect to Gemini: %v", err)
	}
	defer func() {
		_ = gemini.Close()
	}()

	cats, err := categories.NewStore(cfg.Categories.File, log).Load()
	if err != nil {
		root.Log.Fatalf("Failed to load categories: %v", err)
	}

	sessions := session.NewStore(cfg.SessionTTL(), log)
	go sessions.Janitor(ctx, janitorInterval)

	engine := dialog.New(dialog.Deps{
		Sessions:            sessions,
		Ledger:              ledger,
		Receipts:            receipts,
		OCR:                 recognizer,
		Extractor:           gemini,
		Categories:          cats,
		Logger:              log,
		ConfidenceThreshold: cfg.AI.ConfidenceThreshold,
	})

	allow := access.New(cfg.Telegram.AllowedUserIDs, log)
	bot, err := telegram.New(cfg.Telegram.Token, engine, allow, log)
	if err != nil {
		root.Log.Fatalf("Failed to start Telegram bot: %v", err)
	}

	if cfg.Reminder.Enabled {
		scheduler, err := reminders.New(cfg.Reminder.Schedule, ledger, bot, cfg.Reminder.ChatID, log)
		if err != nil {
			root.Log.Fatalf("Failed to schedule reminders: %v", err)
		}
		scheduler.Start(ctx)
	}

	log.Info("Bot is up, waiting for updates")
	if err := bot.Run(ctx); err != nil && ctx.Err() == nil {
		root.Log.Fatalf("Bot stopped: %v", err)
	}
	log.Info("Shutting down")
}
