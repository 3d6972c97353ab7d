package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		action Action
		wire   string
	}{
		{"Bare kind", Action{Kind: AddExpense}, "add_expense"},
		{"Menu kind", Action{Kind: CollectMaintenance}, "collect_maintenance"},
		{"Update flat", Action{Kind: UpdateFlat, FlatNumber: "101"}, "update_flat_101"},
		{"Pick category", Action{Kind: PickCategory, Category: "repairs"}, "pick_category_repairs"},
		{
			"View collection",
			Action{Kind: ViewCollection, CollectionType: "maintenance", Period: "Aug-2026"},
			"view_collection_maintenance_Aug-2026",
		},
		{
			"Toggle payment",
			Action{Kind: TogglePayment, CollectionType: "painting-fund", Period: "Sep-2026", FlatNumber: "G2"},
			"toggle_payment_painting-fund_Sep-2026_G2",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wire, tc.action.Encode())

			decoded, err := Decode(tc.wire)
			require.NoError(t, err)
			assert.Equal(t, tc.action, decoded)
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		wire string
	}{
		{"Unknown action", "delete_everything"},
		{"Empty", ""},
		{"Missing flat number", "update_flat"},
		{"Too few collection params", "view_collection_maintenance"},
		{"Too many toggle params", "toggle_payment_a_b_c_d"},
		{"Empty parameter", "update_flat_"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.wire)
			assert.Error(t, err)
		})
	}
}

// add_expense must not shadow a longer kind that shares its prefix.
func TestDecodePrefixDisambiguation(t *testing.T) {
	decoded, err := Decode("add_flat")
	require.NoError(t, err)
	assert.Equal(t, AddFlat, decoded.Kind)

	decoded, err = Decode("collect_maintenance")
	require.NoError(t, err)
	assert.Equal(t, CollectMaintenance, decoded.Kind)
}
