package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"fjacquet/flatbot/internal/models"
)

func tx(t models.EntryType, category string, amount int64) models.Transaction {
	return models.Transaction{Type: t, Category: category, Amount: decimal.NewFromInt(amount)}
}

func TestBuild(t *testing.T) {
	txs := []models.Transaction{
		tx(models.EntryIncome, "", 25000),
		tx(models.EntryExpense, "Repairs", 1500),
		tx(models.EntryExpense, "Repairs", 500),
		tx(models.EntryExpense, "Security", 8000),
		tx(models.EntryExpense, "", 200),
	}

	s := Build(txs)
	assert.Equal(t, 5, s.Transactions)
	assert.Equal(t, "25000.00", s.Income.StringFixed(2))
	assert.Equal(t, "10200.00", s.Expense.StringFixed(2))
	assert.Equal(t, "14800.00", s.Net.StringFixed(2))
	assert.Equal(t, "2000.00", s.ByCategory["Repairs"].StringFixed(2))
	assert.Equal(t, "8000.00", s.ByCategory["Security"].StringFixed(2))
	assert.Equal(t, "200.00", s.ByCategory["Uncategorized"].StringFixed(2))
}

func TestBuildEmpty(t *testing.T) {
	s := Build(nil)
	assert.Equal(t, 0, s.Transactions)
	assert.True(t, s.Net.IsZero())
	assert.Empty(t, s.ByCategory)
}

func TestFormatChat(t *testing.T) {
	s := Build([]models.Transaction{
		tx(models.EntryIncome, "", 5000),
		tx(models.EntryExpense, "Cleaning", 1200),
	})

	out := FormatChat(s, "Aug-2026")
	assert.Contains(t, out, "Report for Aug-2026")
	assert.Contains(t, out, "Income: 5000.00")
	assert.Contains(t, out, "Expense: 1200.00")
	assert.Contains(t, out, "Net: 3800.00")
	assert.Contains(t, out, "Cleaning: 1200.00")
}

func TestFormatChatEmpty(t *testing.T) {
	out := FormatChat(Build(nil), "Aug-2026")
	assert.Contains(t, out, "No transactions recorded yet.")
}

func TestSortedCategories(t *testing.T) {
	byCategory := map[string]decimal.Decimal{
		"Security": decimal.NewFromInt(8000),
		"Repairs":  decimal.NewFromInt(2000),
		"Cleaning": decimal.NewFromInt(2000),
	}
	assert.Equal(t, []string{"Security", "Cleaning", "Repairs"}, sortedCategories(byCategory))
}
