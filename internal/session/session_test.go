package session

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartFlow(t *testing.T) {
	s := New(42, "Ramesh")
	assert.Equal(t, ModeIdle, s.Mode)

	s.StartFlow(ModeExpense)
	require.NotNil(t, s.Tx)
	assert.Nil(t, s.Flat)
	assert.Nil(t, s.Collection)
	assert.Equal(t, ModeExpense, s.Mode)

	// A restart discards the draft and queue but keeps identity and receipt.
	amount := decimal.NewFromInt(500)
	s.Tx.Amount = &amount
	s.ReceiptURL = "https://drive.example/receipt"
	s.PushQuestions(Question{Field: FieldCategory, Prompt: "What is the category?"})
	s.AwaitingConfirm = true

	s.StartFlow(ModeFlat)
	assert.Nil(t, s.Tx)
	require.NotNil(t, s.Flat)
	assert.Empty(t, s.Questions)
	assert.False(t, s.AwaitingConfirm)
	assert.Equal(t, "Ramesh", s.UserName)
	assert.Equal(t, "https://drive.example/receipt", s.ReceiptURL)
}

func TestQuestionQueueIsFIFO(t *testing.T) {
	s := New(1, "")
	s.StartFlow(ModeExpense)

	s.PushQuestions(
		Question{Field: FieldAmount, Prompt: "a"},
		Question{Field: FieldCategory, Prompt: "b"},
	)
	s.PushQuestions(Question{Field: FieldDate, Prompt: "c"})

	require.NotNil(t, s.CurrentQuestion())
	assert.Equal(t, FieldAmount, s.CurrentQuestion().Field)

	s.PopQuestion()
	assert.Equal(t, FieldCategory, s.CurrentQuestion().Field)

	s.PopQuestion()
	assert.Equal(t, FieldDate, s.CurrentQuestion().Field)

	s.PopQuestion()
	assert.Nil(t, s.CurrentQuestion())

	// Popping an empty queue is a no-op.
	s.PopQuestion()
	assert.Nil(t, s.CurrentQuestion())
}

func TestTransactionDraftMissing(t *testing.T) {
	d := &TransactionDraft{}
	assert.Equal(t, []Field{FieldAmount, FieldCategory, FieldDescription, FieldDate}, d.Missing())

	amount := decimal.NewFromInt(100)
	d.Amount = &amount
	d.Description = "lift repair"
	assert.Equal(t, []Field{FieldCategory, FieldDate}, d.Missing())

	d.Category = "Repairs"
	d.Date = "2026-08-25"
	assert.Empty(t, d.Missing())
}

func TestModeEntryType(t *testing.T) {
	assert.Equal(t, "expense", string(ModeExpense.EntryType()))
	assert.Equal(t, "income", string(ModeIncome.EntryType()))
}
