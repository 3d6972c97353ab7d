package dialog

import (
	"context"
	"fmt"
	"strings"

	"fjacquet/flatbot/internal/action"
	"fjacquet/flatbot/internal/dateutils"
	"fjacquet/flatbot/internal/logging"
	"fjacquet/flatbot/internal/models"
	"fjacquet/flatbot/internal/session"
	"fjacquet/flatbot/internal/textutils"
)

// startCollection begins the collection-setup script.
func (e *Engine) startCollection(s *session.Session) []Reply {
	s.StartFlow(session.ModeCollection)
	s.PushQuestions(collectionQuestions()...)
	e.sessions.Put(s)
	return textReply(s.CurrentQuestion().Prompt)
}

// answerCollection fills the short setup script. Completing the amount
// question initializes the period immediately and ends the session.
func (e *Engine) answerCollection(ctx context.Context, s *session.Session, q session.Question, answer string) []Reply {
	switch q.Field {
	case session.FieldCollectionLabel:
		if strings.EqualFold(answer, "skip") || answer == "" {
			s.Collection.Label = maintenanceType
		} else {
			s.Collection.Label = textutils.Slugify(answer)
		}
		s.PopQuestion()
		e.sessions.Put(s)
		return textReply(s.CurrentQuestion().Prompt)

	case session.FieldCollectionAmount:
		amount, err := models.ParseAmount(answer)
		if err != nil {
			e.sessions.Put(s)
			return textReply("That doesn't look like a valid amount. " + q.Prompt)
		}
		s.Collection.Amount = &amount
		s.PopQuestion()
		return e.initCollection(ctx, s)
	}

	e.sessions.Put(s)
	return textReply(msgIdleHint)
}

// initCollection creates one Pending entry per known flat for the new period
// and ends the session. Re-initialization is idempotent: flats that already
// have an entry are left untouched.
func (e *Engine) initCollection(ctx context.Context, s *session.Session) []Reply {
	cctx := models.CollectionContext{
		Type:        s.Collection.Label,
		Period:      dateutils.MonthName(e.clock()),
		Amount:      *s.Collection.Amount,
		Description: s.Collection.Label,
	}

	flats, err := e.ledger.Flats(ctx)
	if err != nil {
		e.log.WithError(err).Error("Collection init: flat list read failed",
			logging.Field{Key: logging.FieldChatID, Value: s.ChatID})
		e.sessions.Delete(s.ChatID)
		return textReply(msgAdapterFailed)
	}
	if len(flats) == 0 {
		e.sessions.Delete(s.ChatID)
		return textReply("No flats on record yet. Add flats before starting a collection.")
	}

	entries := make([]models.CollectionEntry, 0, len(flats))
	for _, f := range flats {
		entries = append(entries, models.CollectionEntry{
			FlatNumber: f.FlatNumber,
			OwnerName:  f.OwnerName,
			Amount:     cctx.Amount,
			Status:     models.StatusPending,
		})
	}

	added, err := e.ledger.InitCollection(ctx, cctx, entries)
	if err != nil {
		e.log.WithError(err).Error("Collection init failed",
			logging.Field{Key: logging.FieldChatID, Value: s.ChatID},
			logging.Field{Key: logging.FieldSheet, Value: cctx.SheetName()})
		e.sessions.Delete(s.ChatID)
		return textReply(msgAdapterFailed)
	}

	e.sessions.Delete(s.ChatID)
	return []Reply{{
		Text: fmt.Sprintf("Collection %s for %s is ready: %d of %d flats added.",
			cctx.Type, cctx.Period, added, len(entries)),
		Buttons: [][]Button{{{
			Label:  "View " + cctx.Type,
			Action: action.Action{Kind: action.ViewCollection, CollectionType: cctx.Type, Period: cctx.Period},
		}}},
	}}
}

// maintenanceView initializes (idempotently) and shows the current month's
// maintenance collection, using each flat's own maintenance amount.
func (e *Engine) maintenanceView(ctx context.Context, s *session.Session) []Reply {
	e.sessions.Put(s)

	cctx := models.CollectionContext{
		Type:   maintenanceType,
		Period: dateutils.MonthName(e.clock()),
	}

	flats, err := e.ledger.Flats(ctx)
	if err != nil {
		e.log.WithError(err).Error("Maintenance view: flat list read failed",
			logging.Field{Key: logging.FieldChatID, Value: s.ChatID})
		return textReply(msgAdapterFailed)
	}
	if len(flats) == 0 {
		return textReply("No flats on record yet. Add flats before collecting maintenance.")
	}

	entries := make([]models.CollectionEntry, 0, len(flats))
	for _, f := range flats {
		entries = append(entries, models.CollectionEntry{
			FlatNumber: f.FlatNumber,
			OwnerName:  f.OwnerName,
			Amount:     f.MaintenanceAmount,
			Status:     models.StatusPending,
		})
	}
	if _, err := e.ledger.InitCollection(ctx, cctx, entries); err != nil {
		e.log.WithError(err).Error("Maintenance init failed",
			logging.Field{Key: logging.FieldChatID, Value: s.ChatID})
		return textReply(msgAdapterFailed)
	}

	return e.renderCollection(ctx, cctx)
}

// togglePayment flips a flat's Pending/Paid state and re-renders the view.
func (e *Engine) togglePayment(ctx context.Context, s *session.Session, act action.Action) []Reply {
	e.sessions.Put(s)

	cctx := models.CollectionContext{Type: act.CollectionType, Period: act.Period}
	entry, err := e.ledger.TogglePayment(ctx, cctx, act.FlatNumber, s.UserName)
	if err != nil {
		e.log.WithError(err).Error("Payment toggle failed",
			logging.Field{Key: logging.FieldChatID, Value: s.ChatID},
			logging.Field{Key: logging.FieldFlat, Value: act.FlatNumber})
		return textReply(msgAdapterFailed)
	}

	replies := textReply(fmt.Sprintf("Flat %s marked %s.", entry.FlatNumber, entry.Status))
	return append(replies, e.renderCollection(ctx, cctx)...)
}

// renderCollection shows a collection period with per-flat toggle buttons.
func (e *Engine) renderCollection(ctx context.Context, cctx models.CollectionContext) []Reply {
	entries, err := e.ledger.CollectionEntries(ctx, cctx)
	if err != nil {
		e.log.WithError(err).Error("Collection read failed",
			logging.Field{Key: logging.FieldSheet, Value: cctx.SheetName()})
		return textReply(msgAdapterFailed)
	}
	if len(entries) == 0 {
		return textReply(fmt.Sprintf("No entries for %s %s yet.", cctx.Type, cctx.Period))
	}

	var b strings.Builder
	paid := 0
	fmt.Fprintf(&b, "%s — %s\n", cctx.Type, cctx.Period)
	for _, entry := range entries {
		line := fmt.Sprintf("%s %s — %s — %s", entry.FlatNumber, entry.OwnerName,
			models.FormatAmount(entry.Amount), entry.Status)
		if entry.Status == models.StatusPaid {
			paid++
			if entry.PaymentDate != "" {
				line += fmt.Sprintf(" (%s by %s)", entry.PaymentDate, entry.MarkedBy)
			}
		}
		b.WriteString(line + "\n")
	}
	fmt.Fprintf(&b, "%d of %d paid.", paid, len(entries))

	var buttons [][]Button
	var row []Button
	for _, entry := range entries {
		row = append(row, Button{
			Label: fmt.Sprintf("%s: %s", entry.FlatNumber, entry.Status.Toggle()),
			Action: action.Action{
				Kind:           action.TogglePayment,
				CollectionType: cctx.Type,
				Period:         cctx.Period,
				FlatNumber:     entry.FlatNumber,
			},
		})
		if len(row) == 3 {
			buttons = append(buttons, row)
			row = nil
		}
	}
	if len(row) > 0 {
		buttons = append(buttons, row)
	}

	return []Reply{{Text: b.String(), Buttons: buttons}}
}
