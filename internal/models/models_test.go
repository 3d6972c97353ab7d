package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectionStatusToggle(t *testing.T) {
	assert.Equal(t, StatusPaid, StatusPending.Toggle())
	assert.Equal(t, StatusPending, StatusPaid.Toggle())
}

func TestCollectionContextSheetName(t *testing.T) {
	cctx := CollectionContext{Type: "maintenance", Period: "Aug-2026"}
	assert.Equal(t, "maintenance_Aug-2026", cctx.SheetName())

	cctx = CollectionContext{Type: "painting-fund", Period: "Sep-2026"}
	assert.Equal(t, "painting-fund_Sep-2026", cctx.SheetName())
}
