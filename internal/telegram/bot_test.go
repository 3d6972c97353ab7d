package telegram

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/flatbot/internal/action"
	"fjacquet/flatbot/internal/dialog"
)

func TestToKeyboard(t *testing.T) {
	rows := [][]dialog.Button{
		{
			{Label: "Add Expense", Action: action.Action{Kind: action.AddExpense}},
			{Label: "Add Income", Action: action.Action{Kind: action.AddIncome}},
		},
		{
			{Label: "Update 101", Action: action.Action{Kind: action.UpdateFlat, FlatNumber: "101"}},
		},
	}

	keyboard := toKeyboard(rows)
	require.Len(t, keyboard.InlineKeyboard, 2)
	require.Len(t, keyboard.InlineKeyboard[0], 2)

	first := keyboard.InlineKeyboard[0][0]
	assert.Equal(t, "Add Expense", first.Text)
	require.NotNil(t, first.CallbackData)
	assert.Equal(t, "add_expense", *first.CallbackData)

	update := keyboard.InlineKeyboard[1][0]
	require.NotNil(t, update.CallbackData)
	assert.Equal(t, "update_flat_101", *update.CallbackData)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Ramesh", displayName(&tgbotapi.User{FirstName: "Ramesh", UserName: "ramesh_k"}))
	assert.Equal(t, "ramesh_k", displayName(&tgbotapi.User{UserName: "ramesh_k"}))
	assert.Equal(t, "", displayName(nil))
}

func TestUpdateChatID(t *testing.T) {
	msg := tgbotapi.Update{Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 42}}}
	id, ok := updateChatID(msg)
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	cb := tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 7}},
	}}
	id, ok = updateChatID(cb)
	assert.True(t, ok)
	assert.Equal(t, int64(7), id)

	_, ok = updateChatID(tgbotapi.Update{})
	assert.False(t, ok)
}
