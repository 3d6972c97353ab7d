package sheetstore

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fjacquet/flatbot/internal/models"
)

// Column layouts. Data rows start after the header (and, on ledger sheets,
// the totals row).
var (
	ledgerHeader = []interface{}{
		"Date", "Type", "Category", "Description", "Amount", "Receipt", "Added By", "Timestamp",
	}
	flatHeader = []interface{}{
		"Flat Number", "Floor", "Owner Name", "Tenant Name", "Maintenance Amount",
		"Phone", "Email", "Occupied", "Last Updated",
	}
	collectionHeader = []interface{}{
		"Flat Number", "Owner Name", "Amount", "Status", "Payment Date", "Marked By",
	}
)

const (
	ledgerDataStartRow     = 3 // header + totals row
	flatDataStartRow       = 2
	collectionDataStartRow = 2
	timestampLayout        = "2006-01-02 15:04:05"
)

// ledgerTotalsRow builds the running-totals row kept directly under the
// ledger header. The SUM range is open-ended so appended rows are included.
func ledgerTotalsRow(title string) []interface{} {
	return []interface{}{
		"Totals", "", "", "",
		fmt.Sprintf("=SUM(E%d:E)", ledgerDataStartRow),
		"", "", "",
	}
}

func transactionRow(tx models.Transaction) []interface{} {
	return []interface{}{
		tx.Date,
		string(tx.Type),
		tx.Category,
		tx.Description,
		tx.Amount.StringFixed(2),
		tx.ReceiptURL,
		tx.AddedBy,
		tx.Timestamp.Format(timestampLayout),
	}
}

func parseTransactionRow(row []interface{}) (models.Transaction, error) {
	if len(row) < 5 {
		return models.Transaction{}, fmt.Errorf("transaction row too short: %d cells", len(row))
	}

	amount, err := decimal.NewFromString(cell(row, 4))
	if err != nil {
		return models.Transaction{}, fmt.Errorf("bad amount %q: %w", cell(row, 4), err)
	}

	tx := models.Transaction{
		Date:        cell(row, 0),
		Type:        models.EntryType(strings.ToLower(cell(row, 1))),
		Category:    cell(row, 2),
		Description: cell(row, 3),
		Amount:      amount,
		ReceiptURL:  cell(row, 5),
		AddedBy:     cell(row, 6),
	}
	if ts := cell(row, 7); ts != "" {
		if t, err := time.Parse(timestampLayout, ts); err == nil {
			tx.Timestamp = t
		}
	}
	return tx, nil
}

func flatRow(f models.FlatInfo) []interface{} {
	occupied := "no"
	if f.IsOccupied {
		occupied = "yes"
	}
	return []interface{}{
		f.FlatNumber,
		strconv.Itoa(f.FloorNumber),
		f.OwnerName,
		f.TenantName,
		f.MaintenanceAmount.StringFixed(2),
		f.PhoneNumber,
		f.Email,
		occupied,
		f.LastUpdated.Format(timestampLayout),
	}
}

func parseFlatRow(row []interface{}) (models.FlatInfo, error) {
	if len(row) < 5 {
		return models.FlatInfo{}, fmt.Errorf("flat row too short: %d cells", len(row))
	}

	floor, err := strconv.Atoi(cell(row, 1))
	if err != nil {
		return models.FlatInfo{}, fmt.Errorf("bad floor %q: %w", cell(row, 1), err)
	}
	amount, err := decimal.NewFromString(cell(row, 4))
	if err != nil {
		return models.FlatInfo{}, fmt.Errorf("bad maintenance amount %q: %w", cell(row, 4), err)
	}

	f := models.FlatInfo{
		FlatNumber:        cell(row, 0),
		FloorNumber:       floor,
		OwnerName:         cell(row, 2),
		TenantName:        cell(row, 3),
		MaintenanceAmount: amount,
		PhoneNumber:       cell(row, 5),
		Email:             cell(row, 6),
		IsOccupied:        strings.EqualFold(cell(row, 7), "yes"),
	}
	if ts := cell(row, 8); ts != "" {
		if t, err := time.Parse(timestampLayout, ts); err == nil {
			f.LastUpdated = t
		}
	}
	return f, nil
}

func collectionRow(e models.CollectionEntry) []interface{} {
	return []interface{}{
		e.FlatNumber,
		e.OwnerName,
		e.Amount.StringFixed(2),
		string(e.Status),
		e.PaymentDate,
		e.MarkedBy,
	}
}

func parseCollectionRow(row []interface{}) (models.CollectionEntry, error) {
	if len(row) < 4 {
		return models.CollectionEntry{}, fmt.Errorf("collection row too short: %d cells", len(row))
	}

	amount, err := decimal.NewFromString(cell(row, 2))
	if err != nil {
		return models.CollectionEntry{}, fmt.Errorf("bad amount %q: %w", cell(row, 2), err)
	}

	status := models.StatusPending
	if strings.EqualFold(cell(row, 3), string(models.StatusPaid)) {
		status = models.StatusPaid
	}

	return models.CollectionEntry{
		FlatNumber:  cell(row, 0),
		OwnerName:   cell(row, 1),
		Amount:      amount,
		Status:      status,
		PaymentDate: cell(row, 4),
		MarkedBy:    cell(row, 5),
	}, nil
}

// cell returns the i-th cell as a trimmed string, tolerating short rows and
// non-string values the Sheets API sometimes returns.
func cell(row []interface{}, i int) string {
	if i >= len(row) {
		return ""
	}
	switch v := row[i].(type) {
	case string:
		return strings.TrimSpace(v)
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
