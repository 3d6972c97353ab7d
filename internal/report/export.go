package report

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"

	"fjacquet/flatbot/internal/models"
)

// csvRow maps a transaction onto the exported CSV columns.
type csvRow struct {
	Date        string `csv:"Date"`
	Type        string `csv:"Type"`
	Category    string `csv:"Category"`
	Description string `csv:"Description"`
	Amount      string `csv:"Amount"`
	Receipt     string `csv:"Receipt"`
	AddedBy     string `csv:"Added By"`
}

func toCSVRows(txs []models.Transaction) []*csvRow {
	rows := make([]*csvRow, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, &csvRow{
			Date:        tx.Date,
			Type:        string(tx.Type),
			Category:    tx.Category,
			Description: tx.Description,
			Amount:      tx.Amount.StringFixed(2),
			Receipt:     tx.ReceiptURL,
			AddedBy:     tx.AddedBy,
		})
	}
	return rows
}

// WriteCSV exports one month of transactions to a CSV file.
func WriteCSV(path string, txs []models.Transaction) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	if err := gocsv.MarshalFile(toCSVRows(txs), file); err != nil {
		return fmt.Errorf("error writing CSV file: %w", err)
	}
	return nil
}

// WriteXLSX exports one month of transactions plus the summary block to an
// XLSX workbook.
func WriteXLSX(path, month string, txs []models.Transaction, summary Summary) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetName(sheet, month); err != nil {
		return fmt.Errorf("error naming sheet: %w", err)
	}
	sheet = month

	header := []interface{}{"Date", "Type", "Category", "Description", "Amount", "Receipt", "Added By"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}

	for i, tx := range txs {
		amount, _ := tx.Amount.Float64()
		row := []interface{}{tx.Date, string(tx.Type), tx.Category, tx.Description, amount, tx.ReceiptURL, tx.AddedBy}
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("error computing cell reference: %w", err)
		}
		if err := f.SetSheetRow(sheet, cellRef, &row); err != nil {
			return fmt.Errorf("error writing row %d: %w", i+2, err)
		}
	}

	// Summary block two rows under the data.
	base := len(txs) + 3
	income, _ := summary.Income.Float64()
	expense, _ := summary.Expense.Float64()
	net, _ := summary.Net.Float64()
	for i, pair := range [][2]interface{}{
		{"Income", income},
		{"Expense", expense},
		{"Net", net},
	} {
		cellRef, err := excelize.CoordinatesToCellName(1, base+i)
		if err != nil {
			return fmt.Errorf("error computing summary cell: %w", err)
		}
		row := []interface{}{pair[0], pair[1]}
		if err := f.SetSheetRow(sheet, cellRef, &row); err != nil {
			return fmt.Errorf("error writing summary row: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("error saving XLSX file: %w", err)
	}
	return nil
}
