// Package session holds the per-chat conversation state: which flow the chat
// is in, the partially filled draft, and the queue of unanswered questions.
package session

import (
	"time"

	"github.com/shopspring/decimal"

	"fjacquet/flatbot/internal/models"
)

// Mode tags which record shape the session is building.
type Mode string

const (
	ModeIdle       Mode = "idle"
	ModeExpense    Mode = "expense"
	ModeIncome     Mode = "income"
	ModeFlat       Mode = "flat"
	ModeCollection Mode = "collection"
)

// EntryType maps a transaction mode to the ledger entry type it commits.
func (m Mode) EntryType() models.EntryType {
	if m == ModeIncome {
		return models.EntryIncome
	}
	return models.EntryExpense
}

// Field identifies which draft field a queued question fills. Questions carry
// this tag explicitly so answers are never dispatched by matching prompt text.
type Field string

const (
	FieldAmount      Field = "amount"
	FieldCategory    Field = "category"
	FieldDescription Field = "description"
	FieldDate        Field = "date"

	FieldFlatNumber        Field = "flat_number"
	FieldFloorNumber       Field = "floor_number"
	FieldOwnerName         Field = "owner_name"
	FieldMaintenanceAmount Field = "maintenance_amount"
	FieldPhoneNumber       Field = "phone_number"
	FieldOccupied          Field = "occupied"
	FieldTenantName        Field = "tenant_name"
	FieldEmail             Field = "email"

	FieldCollectionLabel  Field = "collection_label"
	FieldCollectionAmount Field = "collection_amount"
)

// Question is a queued prompt awaiting an answer. Optional questions accept
// the literal answer "skip".
type Question struct {
	Field    Field
	Prompt   string
	Optional bool
}

// TransactionDraft is a partially filled expense/income record. Nil or empty
// members are unfilled.
type TransactionDraft struct {
	Amount      *decimal.Decimal
	Category    string
	Description string
	Date        string // ISO date
}

// TransactionFieldOrder is the fixed order in which missing required fields
// are asked.
var TransactionFieldOrder = []Field{FieldAmount, FieldCategory, FieldDescription, FieldDate}

// Missing returns the unfilled required fields in the fixed asking order.
func (d *TransactionDraft) Missing() []Field {
	var missing []Field
	for _, f := range TransactionFieldOrder {
		if !d.Filled(f) {
			missing = append(missing, f)
		}
	}
	return missing
}

// Filled reports whether a required field has a value.
func (d *TransactionDraft) Filled(f Field) bool {
	switch f {
	case FieldAmount:
		return d.Amount != nil
	case FieldCategory:
		return d.Category != ""
	case FieldDescription:
		return d.Description != ""
	case FieldDate:
		return d.Date != ""
	}
	return false
}

// FlatDraft is a partially filled flat record. Pointer members distinguish
// "unanswered" from zero values.
type FlatDraft struct {
	FlatNumber        string
	FloorNumber       *int
	OwnerName         string
	TenantName        string
	MaintenanceAmount *decimal.Decimal
	PhoneNumber       string
	Email             string
	IsOccupied        *bool
}

// CollectionDraft is the in-progress setup of a new collection period.
type CollectionDraft struct {
	Label  string
	Amount *decimal.Decimal
}

// Session is the complete per-chat conversation state. Exactly one exists per
// chat at a time.
type Session struct {
	ChatID   int64
	UserName string
	Mode     Mode

	Tx         *TransactionDraft
	Flat       *FlatDraft
	Collection *CollectionDraft

	Questions       []Question
	AwaitingConfirm bool

	// ReceiptURL survives question/answer turns and flow restarts within the
	// same session.
	ReceiptURL string

	UpdatedAt time.Time
}

// New creates an idle session for a chat.
func New(chatID int64, userName string) *Session {
	return &Session{
		ChatID:   chatID,
		UserName: userName,
		Mode:     ModeIdle,
	}
}

// StartFlow switches the session to a new flow, discarding any previous draft
// and question queue. UserName and ReceiptURL are preserved.
func (s *Session) StartFlow(mode Mode) {
	s.Mode = mode
	s.Tx = nil
	s.Flat = nil
	s.Collection = nil
	s.Questions = nil
	s.AwaitingConfirm = false

	switch mode {
	case ModeExpense, ModeIncome:
		s.Tx = &TransactionDraft{}
	case ModeFlat:
		s.Flat = &FlatDraft{}
	case ModeCollection:
		s.Collection = &CollectionDraft{}
	}
}

// CurrentQuestion returns the head of the question queue, or nil.
func (s *Session) CurrentQuestion() *Question {
	if len(s.Questions) == 0 {
		return nil
	}
	return &s.Questions[0]
}

// PopQuestion removes the head of the question queue.
func (s *Session) PopQuestion() {
	if len(s.Questions) > 0 {
		s.Questions = s.Questions[1:]
	}
}

// PushQuestions appends questions to the queue; consumption is strictly FIFO.
func (s *Session) PushQuestions(qs ...Question) {
	s.Questions = append(s.Questions, qs...)
}
