package sheetstore

import (
	"context"
	"fmt"
	"time"

	"fjacquet/flatbot/internal/dateutils"
	"fjacquet/flatbot/internal/logging"
	"fjacquet/flatbot/internal/models"
)

// AppendTransaction appends a committed transaction to the current month's
// ledger sheet, creating the sheet (header + totals row) on first use.
func (s *Store) AppendTransaction(ctx context.Context, tx models.Transaction) error {
	title := dateutils.MonthName(s.clock())

	created, err := s.ensureSheet(ctx, s.ledgerID, title, ledgerHeader)
	if err != nil {
		return err
	}
	if created {
		if err := s.writeRow(ctx, s.ledgerID, fmt.Sprintf("%s!A2", title), ledgerTotalsRow(title)); err != nil {
			return err
		}
	}

	if err := s.appendRow(ctx, s.ledgerID, title, transactionRow(tx)); err != nil {
		return err
	}

	s.log.Info("Appended transaction",
		logging.Field{Key: logging.FieldSheet, Value: title},
		logging.Field{Key: logging.FieldCategory, Value: tx.Category},
		logging.Field{Key: logging.FieldAmount, Value: tx.Amount.StringFixed(2)})
	return nil
}

// MonthTransactions reads all committed transactions for the month containing
// the given time. A month with no sheet yet yields an empty slice.
func (s *Store) MonthTransactions(ctx context.Context, month time.Time) ([]models.Transaction, error) {
	title := dateutils.MonthName(month)

	exists, err := s.sheetExists(ctx, s.ledgerID, title)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}

	rows, err := s.readRows(ctx, s.ledgerID, fmt.Sprintf("%s!A%d:H", title, ledgerDataStartRow))
	if err != nil {
		return nil, err
	}

	txs := make([]models.Transaction, 0, len(rows))
	for i, row := range rows {
		tx, err := parseTransactionRow(row)
		if err != nil {
			// Tolerate hand-edited rows rather than failing the whole read.
			s.log.Warn("Skipping unparseable ledger row",
				logging.Field{Key: logging.FieldSheet, Value: title},
				logging.Field{Key: "row", Value: ledgerDataStartRow + i},
				logging.Field{Key: logging.FieldError, Value: err.Error()})
			continue
		}
		txs = append(txs, tx)
	}
	return txs, nil
}
