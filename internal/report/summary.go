// Package report builds monthly summaries of the ledger and exports them to
// CSV and XLSX files.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"fjacquet/flatbot/internal/models"
)

// Summary aggregates one month of ledger activity.
type Summary struct {
	Income       decimal.Decimal
	Expense      decimal.Decimal
	Net          decimal.Decimal
	ByCategory   map[string]decimal.Decimal // expenses only
	Transactions int
}

// Build aggregates the given transactions.
func Build(txs []models.Transaction) Summary {
	s := Summary{
		Income:     decimal.Zero,
		Expense:    decimal.Zero,
		ByCategory: make(map[string]decimal.Decimal),
	}
	for _, tx := range txs {
		s.Transactions++
		if tx.Type == models.EntryIncome {
			s.Income = s.Income.Add(tx.Amount)
			continue
		}
		s.Expense = s.Expense.Add(tx.Amount)
		category := tx.Category
		if category == "" {
			category = "Uncategorized"
		}
		s.ByCategory[category] = s.ByCategory[category].Add(tx.Amount)
	}
	s.Net = s.Income.Sub(s.Expense)
	return s
}

// FormatChat renders the summary as a chat message.
func FormatChat(s Summary, month string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Report for %s\n", month)
	if s.Transactions == 0 {
		b.WriteString("No transactions recorded yet.")
		return b.String()
	}

	fmt.Fprintf(&b, "Income: %s\n", models.FormatAmount(s.Income))
	fmt.Fprintf(&b, "Expense: %s\n", models.FormatAmount(s.Expense))
	fmt.Fprintf(&b, "Net: %s\n", models.FormatAmount(s.Net))

	if len(s.ByCategory) > 0 {
		b.WriteString("\nExpenses by category:\n")
		for _, category := range sortedCategories(s.ByCategory) {
			fmt.Fprintf(&b, "  %s: %s\n", category, models.FormatAmount(s.ByCategory[category]))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// sortedCategories orders categories by descending amount, ties by name.
func sortedCategories(byCategory map[string]decimal.Decimal) []string {
	names := make([]string, 0, len(byCategory))
	for name := range byCategory {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := byCategory[names[i]], byCategory[names[j]]
		if !a.Equal(b) {
			return a.GreaterThan(b)
		}
		return names[i] < names[j]
	})
	return names
}
