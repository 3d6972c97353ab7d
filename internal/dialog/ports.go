// Package dialog implements the conversation state machine that drives
// multi-turn data entry: it consumes inbound chat events plus the current
// session, produces the next session state and outbound replies, and decides
// when a completed record is committed.
package dialog

import (
	"context"
	"time"

	"fjacquet/flatbot/internal/action"
	"fjacquet/flatbot/internal/models"
)

// Ledger is the persistence collaborator (spreadsheet-backed in production).
type Ledger interface {
	AppendTransaction(ctx context.Context, tx models.Transaction) error
	MonthTransactions(ctx context.Context, month time.Time) ([]models.Transaction, error)

	Flats(ctx context.Context) ([]models.FlatInfo, error)
	Flat(ctx context.Context, flatNumber string) (*models.FlatInfo, error)
	UpsertFlat(ctx context.Context, flat models.FlatInfo) error

	InitCollection(ctx context.Context, cctx models.CollectionContext, entries []models.CollectionEntry) (int, error)
	CollectionEntries(ctx context.Context, cctx models.CollectionContext) ([]models.CollectionEntry, error)
	TogglePayment(ctx context.Context, cctx models.CollectionContext, flatNumber, markedBy string) (models.CollectionEntry, error)
}

// ReceiptStore uploads a receipt image and returns a shareable URL.
type ReceiptStore interface {
	UploadReceipt(ctx context.Context, data []byte) (string, error)
}

// Recognizer extracts raw text from a receipt image.
type Recognizer interface {
	RecognizeText(ctx context.Context, image []byte) (string, error)
}

// FieldExtractor structures raw receipt text into a transaction guess.
type FieldExtractor interface {
	ExtractFields(ctx context.Context, rawText string) (models.ExtractedFields, error)
}

// EventKind discriminates inbound events.
type EventKind int

const (
	EventCommand EventKind = iota
	EventText
	EventPhoto
	EventCallback
)

// Event is one inbound chat event, already authorized and decoded by the
// transport.
type Event struct {
	Kind     EventKind
	ChatID   int64
	UserName string
	Command  string // without the leading slash
	Text     string
	Photo    []byte
	Action   action.Action
}

// Button is one inline-keyboard button.
type Button struct {
	Label  string
	Action action.Action
}

// Reply is one outbound message, optionally with an inline keyboard.
type Reply struct {
	Text    string
	Buttons [][]Button
}

func textReply(text string) []Reply {
	return []Reply{{Text: text}}
}
