package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"fjacquet/flatbot/internal/models"
)

func exportFixture() []models.Transaction {
	return []models.Transaction{
		{
			Date:        "2026-08-10",
			Type:        models.EntryIncome,
			Category:    "Maintenance",
			Description: "Flat 101 dues",
			Amount:      decimal.NewFromInt(2500),
			AddedBy:     "Ramesh",
		},
		{
			Date:        "2026-08-12",
			Type:        models.EntryExpense,
			Category:    "Repairs",
			Description: "Lift motor service",
			Amount:      decimal.NewFromFloat(1500.50),
			ReceiptURL:  "https://drive.example/receipt",
			AddedBy:     "Meena",
		},
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, WriteCSV(path, exportFixture()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "Date,Type,Category,Description,Amount,Receipt,Added By")
	assert.Contains(t, content, "2026-08-12,expense,Repairs,Lift motor service,1500.50")
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	txs := exportFixture()
	require.NoError(t, WriteXLSX(path, "Aug-2026", txs, Build(txs)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() {
		_ = f.Close()
	}()

	assert.Equal(t, "Aug-2026", f.GetSheetName(0))

	got, err := f.GetCellValue("Aug-2026", "C3")
	require.NoError(t, err)
	assert.Equal(t, "Repairs", got)

	label, err := f.GetCellValue("Aug-2026", "A5")
	require.NoError(t, err)
	assert.Equal(t, "Income", label)
}
