package dialog

import (
	"context"
	"fmt"
	"strings"

	"fjacquet/flatbot/internal/action"
	"fjacquet/flatbot/internal/categories"
	"fjacquet/flatbot/internal/dateutils"
	"fjacquet/flatbot/internal/logging"
	"fjacquet/flatbot/internal/models"
	"fjacquet/flatbot/internal/session"
	"fjacquet/flatbot/internal/textutils"
)

// startTransaction begins an expense/income flow, discarding any in-progress
// draft for this chat.
func (e *Engine) startTransaction(s *session.Session, mode session.Mode) []Reply {
	s.StartFlow(mode)
	e.sessions.Put(s)
	return textReply(msgStartHint)
}

// handlePhoto runs the photo path: upload, OCR, extraction, then either
// confirmation or follow-up questions. Upload and OCR failures abort the flow;
// extraction failure keeps the session so the user can type the entry instead.
func (e *Engine) handlePhoto(ctx context.Context, s *session.Session, photo []byte) []Reply {
	if s.Mode != session.ModeExpense && s.Mode != session.ModeIncome {
		e.sessions.Put(s)
		return textReply(msgPhotoHint)
	}

	url, err := e.receipts.UploadReceipt(ctx, photo)
	if err != nil {
		e.log.WithError(err).Error("Receipt upload failed",
			logging.Field{Key: logging.FieldChatID, Value: s.ChatID})
		e.sessions.Delete(s.ChatID)
		return textReply(msgUploadFailed)
	}
	s.ReceiptURL = url

	rawText, err := e.ocr.RecognizeText(ctx, photo)
	if err != nil {
		e.log.WithError(err).Error("OCR failed",
			logging.Field{Key: logging.FieldChatID, Value: s.ChatID})
		e.sessions.Delete(s.ChatID)
		return textReply(msgOCRFailed)
	}

	fields, err := e.extractor.ExtractFields(ctx, rawText)
	if err != nil {
		e.log.WithError(err).Warn("Field extraction failed",
			logging.Field{Key: logging.FieldChatID, Value: s.ChatID})
		e.sessions.Put(s)
		return textReply(msgExtractFailed)
	}

	e.applyExtraction(s.Tx, fields)

	if fields.Confidence > e.threshold {
		s.AwaitingConfirm = true
		e.sessions.Put(s)
		return textReply(confirmationText(s))
	}

	s.Questions = transactionQuestions(s.Tx.Missing())
	if q := s.CurrentQuestion(); q != nil {
		e.sessions.Put(s)
		return e.transactionPrompt(*q)
	}

	// Everything extracted despite the low confidence; confirm anyway.
	s.AwaitingConfirm = true
	e.sessions.Put(s)
	return textReply(confirmationText(s))
}

// applyExtraction copies every non-empty extracted field into the draft.
func (e *Engine) applyExtraction(d *session.TransactionDraft, fields models.ExtractedFields) {
	if fields.Amount != nil {
		d.Amount = fields.Amount
	}
	if fields.Category != "" {
		if known := categories.Match(e.cats, fields.Category); known != "" {
			d.Category = known
		} else {
			d.Category = fields.Category
		}
	}
	if fields.Description != "" {
		d.Description = fields.Description
	}
	if fields.Date != "" {
		d.Date = fields.Date
	}
}

// handleFreeText handles typed entry in Expense/Income mode: a comma-separated
// triple is trusted fully (confidence 1) and goes straight to confirmation.
func (e *Engine) handleFreeText(s *session.Session, text string) []Reply {
	if !strings.Contains(text, ",") {
		e.sessions.Put(s)
		return textReply(msgFormatHint)
	}

	parts := strings.Split(text, ",")
	if len(parts) != 3 {
		e.sessions.Put(s)
		return textReply(msgFormatHint)
	}

	amount, err := models.ParseAmount(parts[0])
	if err != nil {
		e.sessions.Put(s)
		return textReply("That amount doesn't look like a number. " + msgFormatHint)
	}

	s.Tx.Amount = &amount
	s.Tx.Category = strings.TrimSpace(parts[1])
	s.Tx.Description = strings.TrimSpace(parts[2])
	s.Tx.Date = dateutils.ToISODate(e.clock())

	s.AwaitingConfirm = true
	e.sessions.Put(s)
	return textReply(confirmationText(s))
}

// answerTransaction fills the tagged draft field from a follow-up answer.
func (e *Engine) answerTransaction(s *session.Session, q session.Question, answer string) []Reply {
	switch q.Field {
	case session.FieldAmount:
		amount, err := models.ParseAmount(answer)
		if err != nil {
			e.sessions.Put(s)
			return textReply("That doesn't look like a valid amount. " + q.Prompt)
		}
		s.Tx.Amount = &amount
	case session.FieldDate:
		iso, err := dateutils.NormalizeISO(answer)
		if err != nil {
			e.sessions.Put(s)
			return textReply("I couldn't read that date. " + q.Prompt)
		}
		s.Tx.Date = iso
	case session.FieldCategory:
		s.Tx.Category = answer
	case session.FieldDescription:
		s.Tx.Description = answer
	}

	s.PopQuestion()
	if next := s.CurrentQuestion(); next != nil {
		e.sessions.Put(s)
		return e.transactionPrompt(*next)
	}

	s.AwaitingConfirm = true
	e.sessions.Put(s)
	return textReply(confirmationText(s))
}

// transactionPrompt renders a follow-up question, attaching the category
// keyboard when the category is being asked.
func (e *Engine) transactionPrompt(q session.Question) []Reply {
	reply := Reply{Text: q.Prompt}
	if q.Field == session.FieldCategory {
		reply.Buttons = e.categoryKeyboard()
	}
	return []Reply{reply}
}

// categoryKeyboard lists the configured categories, three per row.
func (e *Engine) categoryKeyboard() [][]Button {
	var rows [][]Button
	var row []Button
	for _, c := range e.cats {
		row = append(row, Button{
			Label:  c.Name,
			Action: action.Action{Kind: action.PickCategory, Category: textutils.Slugify(c.Name)},
		})
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}

// pickCategory answers the pending category question from a keyboard tap.
func (e *Engine) pickCategory(s *session.Session, slug string) []Reply {
	q := s.CurrentQuestion()
	if (s.Mode != session.ModeExpense && s.Mode != session.ModeIncome) || q == nil || q.Field != session.FieldCategory {
		e.sessions.Put(s)
		return textReply(msgIdleHint)
	}

	for _, c := range e.cats {
		if textutils.Slugify(c.Name) == slug {
			return e.answerTransaction(s, *q, c.Name)
		}
	}
	e.sessions.Put(s)
	return textReply("That category is no longer configured. " + q.Prompt)
}

// handleConfirmation processes the literal yes/no answer of the confirmation
// step. A persistence failure keeps the session so confirmation can be
// retried; this is the one adapter failure that does not clear state.
func (e *Engine) handleConfirmation(ctx context.Context, s *session.Session, text string) []Reply {
	switch {
	case textutils.IsYes(text):
		return e.commitTransaction(ctx, s)
	case textutils.IsNo(text):
		s.AwaitingConfirm = false
		missing := s.Tx.Missing()
		if len(missing) == 0 {
			e.sessions.Put(s)
			return textReply(msgNothingToFix)
		}
		s.Questions = transactionQuestions(missing)
		e.sessions.Put(s)
		return e.transactionPrompt(*s.CurrentQuestion())
	default:
		e.sessions.Put(s)
		return textReply(msgYesOrNo)
	}
}

func (e *Engine) commitTransaction(ctx context.Context, s *session.Session) []Reply {
	if missing := s.Tx.Missing(); len(missing) > 0 && missing[0] != session.FieldDate {
		// Should not happen from a normal flow; recover by re-asking.
		s.AwaitingConfirm = false
		s.Questions = transactionQuestions(missing)
		e.sessions.Put(s)
		return e.transactionPrompt(*s.CurrentQuestion())
	}

	now := e.clock()
	date := s.Tx.Date
	if date == "" {
		date = dateutils.ToISODate(now)
	}

	tx := models.Transaction{
		Date:        date,
		Type:        s.Mode.EntryType(),
		Category:    s.Tx.Category,
		Description: s.Tx.Description,
		Amount:      *s.Tx.Amount,
		ReceiptURL:  s.ReceiptURL,
		AddedBy:     s.UserName,
		Timestamp:   now,
	}

	if err := e.ledger.AppendTransaction(ctx, tx); err != nil {
		e.log.WithError(err).Error("Transaction commit failed",
			logging.Field{Key: logging.FieldChatID, Value: s.ChatID},
			logging.Field{Key: logging.FieldAmount, Value: tx.Amount.StringFixed(2)})
		e.sessions.Put(s)
		return textReply(msgCommitFailed)
	}

	e.log.Info("Committed transaction",
		logging.Field{Key: logging.FieldChatID, Value: s.ChatID},
		logging.Field{Key: logging.FieldMode, Value: string(s.Mode)},
		logging.Field{Key: logging.FieldAmount, Value: tx.Amount.StringFixed(2)})
	e.sessions.Delete(s.ChatID)
	return textReply(fmt.Sprintf("Saved: %s of %s recorded.", tx.Type, models.FormatAmount(tx.Amount)))
}
