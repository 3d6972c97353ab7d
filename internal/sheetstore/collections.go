package sheetstore

import (
	"context"
	"fmt"

	"fjacquet/flatbot/internal/dateutils"
	"fjacquet/flatbot/internal/logging"
	"fjacquet/flatbot/internal/models"
)

// InitCollection creates the collection period's sheet if needed and appends
// one entry per flat that does not already have a row. Re-initializing an
// existing period adds nothing for flats already present, so the call is
// idempotent. Returns the number of entries actually added.
func (s *Store) InitCollection(ctx context.Context, cctx models.CollectionContext, entries []models.CollectionEntry) (int, error) {
	title := cctx.SheetName()

	if _, err := s.ensureSheet(ctx, s.collectionID, title, collectionHeader); err != nil {
		return 0, err
	}

	existing, err := s.readRows(ctx, s.collectionID, fmt.Sprintf("%s!A%d:A", title, collectionDataStartRow))
	if err != nil {
		return 0, err
	}
	present := make(map[string]bool, len(existing))
	for _, row := range existing {
		if n := cell(row, 0); n != "" {
			present[n] = true
		}
	}

	added := 0
	for _, e := range entries {
		if present[e.FlatNumber] {
			continue
		}
		if err := s.appendRow(ctx, s.collectionID, title, collectionRow(e)); err != nil {
			return added, err
		}
		present[e.FlatNumber] = true
		added++
	}

	s.log.Info("Initialized collection period",
		logging.Field{Key: logging.FieldSheet, Value: title},
		logging.Field{Key: logging.FieldCount, Value: added})
	return added, nil
}

// CollectionEntries reads every entry of a collection period.
func (s *Store) CollectionEntries(ctx context.Context, cctx models.CollectionContext) ([]models.CollectionEntry, error) {
	title := cctx.SheetName()

	exists, err := s.sheetExists(ctx, s.collectionID, title)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}

	rows, err := s.readRows(ctx, s.collectionID, fmt.Sprintf("%s!A%d:F", title, collectionDataStartRow))
	if err != nil {
		return nil, err
	}

	entries := make([]models.CollectionEntry, 0, len(rows))
	for i, row := range rows {
		e, err := parseCollectionRow(row)
		if err != nil {
			s.log.Warn("Skipping unparseable collection row",
				logging.Field{Key: logging.FieldSheet, Value: title},
				logging.Field{Key: "row", Value: collectionDataStartRow + i},
				logging.Field{Key: logging.FieldError, Value: err.Error()})
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// TogglePayment flips a flat's entry between Pending and Paid, stamping the
// acting user and the date when it becomes Paid.
func (s *Store) TogglePayment(ctx context.Context, cctx models.CollectionContext, flatNumber, markedBy string) (models.CollectionEntry, error) {
	title := cctx.SheetName()

	rows, err := s.readRows(ctx, s.collectionID, fmt.Sprintf("%s!A%d:F", title, collectionDataStartRow))
	if err != nil {
		return models.CollectionEntry{}, err
	}

	for i, row := range rows {
		if cell(row, 0) != flatNumber {
			continue
		}
		e, err := parseCollectionRow(row)
		if err != nil {
			return models.CollectionEntry{}, err
		}

		e.Status = e.Status.Toggle()
		if e.Status == models.StatusPaid {
			e.PaymentDate = dateutils.ToISODate(s.clock())
			e.MarkedBy = markedBy
		} else {
			e.PaymentDate = ""
			e.MarkedBy = markedBy
		}

		a1 := fmt.Sprintf("%s!A%d", title, collectionDataStartRow+i)
		if err := s.writeRow(ctx, s.collectionID, a1, collectionRow(e)); err != nil {
			return models.CollectionEntry{}, err
		}

		s.log.Info("Toggled payment status",
			logging.Field{Key: logging.FieldSheet, Value: title},
			logging.Field{Key: logging.FieldFlat, Value: flatNumber},
			logging.Field{Key: logging.FieldStatus, Value: string(e.Status)})
		return e, nil
	}

	return models.CollectionEntry{}, fmt.Errorf("no entry for flat %s in %s", flatNumber, title)
}
