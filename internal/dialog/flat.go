package dialog

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"fjacquet/flatbot/internal/logging"
	"fjacquet/flatbot/internal/models"
	"fjacquet/flatbot/internal/session"
	"fjacquet/flatbot/internal/textutils"
)

// handleAnswer routes a follow-up answer to the flow that queued the question.
func (e *Engine) handleAnswer(ctx context.Context, s *session.Session, q session.Question, answer string) []Reply {
	switch s.Mode {
	case session.ModeExpense, session.ModeIncome:
		return e.answerTransaction(s, q, answer)
	case session.ModeFlat:
		return e.answerFlat(ctx, s, q, answer)
	case session.ModeCollection:
		return e.answerCollection(ctx, s, q, answer)
	}
	e.sessions.Put(s)
	return textReply(msgIdleHint)
}

// startFlat begins the flat-info script. A non-empty flatNumber (from an
// update button) pre-fills the key and skips its question.
func (e *Engine) startFlat(s *session.Session, flatNumber string) []Reply {
	s.StartFlow(session.ModeFlat)

	qs := flatQuestions()
	if flatNumber != "" {
		s.Flat.FlatNumber = flatNumber
		qs = qs[1:]
	}
	s.PushQuestions(qs...)

	e.sessions.Put(s)
	return textReply(s.CurrentQuestion().Prompt)
}

// answerFlat fills one scripted flat field. Required fields reject the
// literal answer "skip" and re-prompt; optional fields accept it and stay
// unset.
func (e *Engine) answerFlat(ctx context.Context, s *session.Session, q session.Question, answer string) []Reply {
	if strings.EqualFold(answer, "skip") {
		if !q.Optional {
			e.sessions.Put(s)
			return textReply(msgSkipRejected + q.Prompt)
		}
		return e.nextFlatQuestion(ctx, s)
	}

	switch q.Field {
	case session.FieldFlatNumber:
		if answer == "" || strings.ContainsAny(answer, "_ ") {
			e.sessions.Put(s)
			return textReply("Flat numbers cannot contain spaces or underscores. " + q.Prompt)
		}
		s.Flat.FlatNumber = answer
	case session.FieldFloorNumber:
		floor, err := strconv.Atoi(answer)
		if err != nil {
			e.sessions.Put(s)
			return textReply("Floor must be a whole number. " + q.Prompt)
		}
		s.Flat.FloorNumber = &floor
	case session.FieldOwnerName:
		if answer == "" {
			e.sessions.Put(s)
			return textReply(msgSkipRejected + q.Prompt)
		}
		s.Flat.OwnerName = answer
	case session.FieldMaintenanceAmount:
		amount, err := models.ParseAmount(answer)
		if err != nil {
			e.sessions.Put(s)
			return textReply("That doesn't look like a valid amount. " + q.Prompt)
		}
		s.Flat.MaintenanceAmount = &amount
	case session.FieldPhoneNumber:
		if answer == "" {
			e.sessions.Put(s)
			return textReply(msgSkipRejected + q.Prompt)
		}
		s.Flat.PhoneNumber = answer
	case session.FieldOccupied:
		switch {
		case textutils.IsYes(answer):
			occupied := true
			s.Flat.IsOccupied = &occupied
		case textutils.IsNo(answer):
			occupied := false
			s.Flat.IsOccupied = &occupied
		default:
			e.sessions.Put(s)
			return textReply(msgYesOrNo + " " + q.Prompt)
		}
	case session.FieldTenantName:
		s.Flat.TenantName = answer
	case session.FieldEmail:
		s.Flat.Email = answer
	}

	return e.nextFlatQuestion(ctx, s)
}

func (e *Engine) nextFlatQuestion(ctx context.Context, s *session.Session) []Reply {
	s.PopQuestion()
	if next := s.CurrentQuestion(); next != nil {
		e.sessions.Put(s)
		return textReply(next.Prompt)
	}
	return e.commitFlat(ctx, s)
}

// commitFlat normalizes names and upserts the completed record, keyed by flat
// number.
func (e *Engine) commitFlat(ctx context.Context, s *session.Session) []Reply {
	d := s.Flat
	flat := models.FlatInfo{
		FlatNumber:  d.FlatNumber,
		OwnerName:   textutils.TitleCase(d.OwnerName),
		TenantName:  textutils.TitleCase(d.TenantName),
		PhoneNumber: d.PhoneNumber,
		Email:       d.Email,
		LastUpdated: e.clock(),
	}
	if d.FloorNumber != nil {
		flat.FloorNumber = *d.FloorNumber
	}
	if d.MaintenanceAmount != nil {
		flat.MaintenanceAmount = *d.MaintenanceAmount
	}
	if d.IsOccupied != nil {
		flat.IsOccupied = *d.IsOccupied
	}

	if err := e.ledger.UpsertFlat(ctx, flat); err != nil {
		e.log.WithError(err).Error("Flat upsert failed",
			logging.Field{Key: logging.FieldChatID, Value: s.ChatID},
			logging.Field{Key: logging.FieldFlat, Value: flat.FlatNumber})
		e.sessions.Delete(s.ChatID)
		return textReply(msgAdapterFailed)
	}

	e.sessions.Delete(s.ChatID)
	return textReply(fmt.Sprintf("Flat %s saved (owner: %s).", flat.FlatNumber, flat.OwnerName))
}
