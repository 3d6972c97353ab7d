package sheetstore

import (
	"context"
	"fmt"

	"fjacquet/flatbot/internal/logging"
	"fjacquet/flatbot/internal/models"
)

// flatSheet is the register of flats inside the ledger spreadsheet.
const flatSheet = "Flat Information"

// Flats returns every flat in the register.
func (s *Store) Flats(ctx context.Context) ([]models.FlatInfo, error) {
	if _, err := s.ensureSheet(ctx, s.ledgerID, flatSheet, flatHeader); err != nil {
		return nil, err
	}

	rows, err := s.readRows(ctx, s.ledgerID, fmt.Sprintf("%s!A%d:I", flatSheet, flatDataStartRow))
	if err != nil {
		return nil, err
	}

	flats := make([]models.FlatInfo, 0, len(rows))
	for i, row := range rows {
		f, err := parseFlatRow(row)
		if err != nil {
			s.log.Warn("Skipping unparseable flat row",
				logging.Field{Key: "row", Value: flatDataStartRow + i},
				logging.Field{Key: logging.FieldError, Value: err.Error()})
			continue
		}
		flats = append(flats, f)
	}
	return flats, nil
}

// Flat returns the flat with the given number, or nil when absent.
func (s *Store) Flat(ctx context.Context, flatNumber string) (*models.FlatInfo, error) {
	flats, err := s.Flats(ctx)
	if err != nil {
		return nil, err
	}
	for i := range flats {
		if flats[i].FlatNumber == flatNumber {
			return &flats[i], nil
		}
	}
	return nil, nil
}

// UpsertFlat updates the register row keyed by flat number, appending when
// the flat is new.
func (s *Store) UpsertFlat(ctx context.Context, f models.FlatInfo) error {
	if _, err := s.ensureSheet(ctx, s.ledgerID, flatSheet, flatHeader); err != nil {
		return err
	}

	rows, err := s.readRows(ctx, s.ledgerID, fmt.Sprintf("%s!A%d:A", flatSheet, flatDataStartRow))
	if err != nil {
		return err
	}

	for i, row := range rows {
		if cell(row, 0) == f.FlatNumber {
			a1 := fmt.Sprintf("%s!A%d", flatSheet, flatDataStartRow+i)
			if err := s.writeRow(ctx, s.ledgerID, a1, flatRow(f)); err != nil {
				return err
			}
			s.log.Info("Updated flat",
				logging.Field{Key: logging.FieldFlat, Value: f.FlatNumber})
			return nil
		}
	}

	if err := s.appendRow(ctx, s.ledgerID, flatSheet, flatRow(f)); err != nil {
		return err
	}
	s.log.Info("Added flat",
		logging.Field{Key: logging.FieldFlat, Value: f.FlatNumber})
	return nil
}
