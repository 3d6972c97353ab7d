// Package models defines the record shapes the bot persists: ledger
// transactions, per-flat records and recurring-collection entries.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType distinguishes money going out from money coming in on the ledger.
type EntryType string

const (
	EntryExpense EntryType = "expense"
	EntryIncome  EntryType = "income"
)

// Transaction is a single committed ledger row.
type Transaction struct {
	Date        string // ISO date (YYYY-MM-DD)
	Type        EntryType
	Category    string
	Description string
	Amount      decimal.Decimal
	ReceiptURL  string
	AddedBy     string
	Timestamp   time.Time
}

// FlatInfo is one row of the flat register. FlatNumber is the natural key;
// writes use upsert semantics.
type FlatInfo struct {
	FlatNumber        string
	FloorNumber       int
	OwnerName         string
	TenantName        string
	MaintenanceAmount decimal.Decimal
	PhoneNumber       string
	Email             string
	IsOccupied        bool
	LastUpdated       time.Time
}

// CollectionStatus is the payment state of a single flat within a collection
// period.
type CollectionStatus string

const (
	StatusPending CollectionStatus = "Pending"
	StatusPaid    CollectionStatus = "Paid"
)

// Toggle returns the opposite status.
func (s CollectionStatus) Toggle() CollectionStatus {
	if s == StatusPaid {
		return StatusPending
	}
	return StatusPaid
}

// CollectionEntry is one flat's row within a collection period sheet.
type CollectionEntry struct {
	FlatNumber  string
	OwnerName   string
	Amount      decimal.Decimal
	Status      CollectionStatus
	PaymentDate string // ISO date, set when marked paid
	MarkedBy    string
}

// CollectionContext identifies which recurring-collection sheet a session or
// an action refers to.
type CollectionContext struct {
	Type        string // e.g. "maintenance", "painting-fund"
	Period      string // e.g. "Aug-2026"
	Amount      decimal.Decimal
	Description string
}

// SheetName returns the per-period sheet name for this collection.
func (c CollectionContext) SheetName() string {
	return c.Type + "_" + c.Period
}

// ExtractedFields is the best-effort structured guess produced by the field
// extractor. Nil/empty members mean the extractor could not find that field.
type ExtractedFields struct {
	Amount      *decimal.Decimal
	Category    string
	Description string
	Date        string // ISO date when present
	Type        EntryType
	Confidence  float64 // in [0,1]
}
