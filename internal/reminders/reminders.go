// Package reminders posts scheduled dues reminders for flats still pending in
// the current maintenance period.
package reminders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"fjacquet/flatbot/internal/dateutils"
	"fjacquet/flatbot/internal/dialog"
	"fjacquet/flatbot/internal/logging"
	"fjacquet/flatbot/internal/models"
)

// Sender posts a plain message to a chat; satisfied by the telegram bot.
type Sender interface {
	Send(chatID int64, text string) error
}

// Scheduler runs the reminder job on a cron schedule.
type Scheduler struct {
	c   *cron.Cron
	log logging.Logger
}

// New creates a scheduler that posts pending-dues reminders for the current
// month's maintenance collection to the given chat.
func New(schedule string, ledger dialog.Ledger, sender Sender, chatID int64, log logging.Logger) (*Scheduler, error) {
	if log == nil {
		log = logging.GetLogger()
	}

	c := cron.New()
	job := duesReminder(ledger, sender, chatID, time.Now, log)
	if _, err := c.AddFunc(schedule, job); err != nil {
		return nil, fmt.Errorf("failed to schedule reminder job: %w", err)
	}

	return &Scheduler{c: c, log: log}, nil
}

// Start begins firing the schedule and stops when ctx is done.
func (s *Scheduler) Start(ctx context.Context) {
	s.c.Start()
	go func() {
		<-ctx.Done()
		s.c.Stop()
	}()
	s.log.Info("Reminder scheduler started")
}

// duesReminder builds the job closure run on each cron fire.
func duesReminder(ledger dialog.Ledger, sender Sender, chatID int64, clock func() time.Time, log logging.Logger) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		cctx := models.CollectionContext{Type: "maintenance", Period: dateutils.MonthName(clock())}
		entries, err := ledger.CollectionEntries(ctx, cctx)
		if err != nil {
			log.WithError(err).Error("Reminder: collection read failed",
				logging.Field{Key: logging.FieldPeriod, Value: cctx.Period})
			return
		}

		msg := BuildMessage(cctx.Period, entries)
		if msg == "" {
			log.Debug("Reminder: nothing pending",
				logging.Field{Key: logging.FieldPeriod, Value: cctx.Period})
			return
		}
		if err := sender.Send(chatID, msg); err != nil {
			log.WithError(err).Error("Reminder: send failed",
				logging.Field{Key: logging.FieldChatID, Value: chatID})
		}
	}
}

// BuildMessage renders the reminder text, or "" when nothing is pending.
func BuildMessage(period string, entries []models.CollectionEntry) string {
	var pending []models.CollectionEntry
	for _, e := range entries {
		if e.Status == models.StatusPending {
			pending = append(pending, e)
		}
	}
	if len(pending) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Maintenance reminder for %s — %d flats pending:\n", period, len(pending))
	for _, e := range pending {
		fmt.Fprintf(&b, "%s %s — %s\n", e.FlatNumber, e.OwnerName, models.FormatAmount(e.Amount))
	}
	return strings.TrimRight(b.String(), "\n")
}
