// Package sheetstore persists the association's records into Google Sheets:
// a ledger spreadsheet (one sheet per month plus the flat register) and a
// collection spreadsheet (one sheet per collection type and period).
package sheetstore

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"fjacquet/flatbot/internal/boterror"
	"fjacquet/flatbot/internal/logging"
)

// Store is the Sheets-backed persistence adapter.
type Store struct {
	svc          *sheets.Service
	ledgerID     string
	collectionID string
	log          logging.Logger
	clock        func() time.Time
}

// New creates a Store for the two configured spreadsheets.
func New(ctx context.Context, ledgerID, collectionID string, log logging.Logger, opts ...option.ClientOption) (*Store, error) {
	if log == nil {
		log = logging.GetLogger()
	}
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, &boterror.AdapterError{Adapter: "sheets", Op: "create client", Err: err}
	}
	return &Store{
		svc:          svc,
		ledgerID:     ledgerID,
		collectionID: collectionID,
		log:          log,
		clock:        time.Now,
	}, nil
}

// SetClock replaces the time source, for tests.
func (s *Store) SetClock(clock func() time.Time) {
	s.clock = clock
}

// sheetExists reports whether a sheet with the given title exists in the
// spreadsheet.
func (s *Store) sheetExists(ctx context.Context, spreadsheetID, title string) (bool, error) {
	resp, err := s.svc.Spreadsheets.Get(spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).Do()
	if err != nil {
		return false, &boterror.AdapterError{Adapter: "sheets", Op: "get spreadsheet", Err: err}
	}
	for _, sh := range resp.Sheets {
		if sh.Properties != nil && sh.Properties.Title == title {
			return true, nil
		}
	}
	return false, nil
}

// ensureSheet creates the named sheet with a header row if it does not exist
// yet. Returns true when the sheet was created by this call.
func (s *Store) ensureSheet(ctx context.Context, spreadsheetID, title string, header []interface{}) (bool, error) {
	exists, err := s.sheetExists(ctx, spreadsheetID, title)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	_, err = s.svc.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{Title: title},
				},
			},
		},
	}).Context(ctx).Do()
	if err != nil {
		return false, &boterror.AdapterError{Adapter: "sheets", Op: "add sheet " + title, Err: err}
	}

	if err := s.writeRow(ctx, spreadsheetID, fmt.Sprintf("%s!A1", title), header); err != nil {
		return false, err
	}

	s.log.Info("Created sheet",
		logging.Field{Key: logging.FieldSheet, Value: title})
	return true, nil
}

// writeRow updates a single row starting at the given A1 range.
func (s *Store) writeRow(ctx context.Context, spreadsheetID, a1 string, row []interface{}) error {
	_, err := s.svc.Spreadsheets.Values.Update(spreadsheetID, a1, &sheets.ValueRange{
		Values: [][]interface{}{row},
	}).ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return &boterror.AdapterError{Adapter: "sheets", Op: "update " + a1, Err: err}
	}
	return nil
}

// appendRow appends a single data row to the named sheet.
func (s *Store) appendRow(ctx context.Context, spreadsheetID, title string, row []interface{}) error {
	_, err := s.svc.Spreadsheets.Values.Append(spreadsheetID, fmt.Sprintf("%s!A1", title), &sheets.ValueRange{
		Values: [][]interface{}{row},
	}).ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return &boterror.AdapterError{Adapter: "sheets", Op: "append to " + title, Err: err}
	}
	return nil
}

// readRows returns all value rows in the given A1 range.
func (s *Store) readRows(ctx context.Context, spreadsheetID, a1 string) ([][]interface{}, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(spreadsheetID, a1).Context(ctx).Do()
	if err != nil {
		return nil, &boterror.AdapterError{Adapter: "sheets", Op: "read " + a1, Err: err}
	}
	return resp.Values, nil
}
