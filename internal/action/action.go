// Package action defines the structured descriptors behind inline-keyboard
// callbacks. The underscore-joined wire form exists only at the transport
// boundary; everything inside the bot works with the typed Action.
package action

import (
	"fmt"
	"strings"
)

// Kind enumerates the callback actions the bot understands.
type Kind string

const (
	AddExpense         Kind = "add_expense"
	AddIncome          Kind = "add_income"
	MonthlyReport      Kind = "monthly_report"
	ManageFlats        Kind = "manage_flats"
	AddFlat            Kind = "add_flat"
	ListFlats          Kind = "list_flats"
	CollectMaintenance Kind = "collect_maintenance"
	CreateCollection   Kind = "create_collection"
	UpdateFlat         Kind = "update_flat"     // + FlatNumber
	ViewCollection     Kind = "view_collection" // + CollectionType, Period
	TogglePayment      Kind = "toggle_payment"  // + CollectionType, Period, FlatNumber
	PickCategory       Kind = "pick_category"   // + Category (slug)
)

// parameterized kinds, longest kind first so prefix matching is unambiguous.
var kinds = []Kind{
	CollectMaintenance,
	CreateCollection,
	ViewCollection,
	TogglePayment,
	MonthlyReport,
	PickCategory,
	ManageFlats,
	AddExpense,
	UpdateFlat,
	AddIncome,
	ListFlats,
	AddFlat,
}

// Action is a decoded callback.
type Action struct {
	Kind           Kind
	FlatNumber     string
	CollectionType string
	Period         string
	Category       string // slug form, resolved against the configured list
}

// Encode renders the wire form, e.g. "toggle_payment_maintenance_Aug-2026_101".
// Parameters must not contain underscores; flat numbers and collection slugs
// never do, and periods use the Jan-2006 form.
func (a Action) Encode() string {
	parts := []string{string(a.Kind)}
	switch a.Kind {
	case UpdateFlat:
		parts = append(parts, a.FlatNumber)
	case ViewCollection:
		parts = append(parts, a.CollectionType, a.Period)
	case TogglePayment:
		parts = append(parts, a.CollectionType, a.Period, a.FlatNumber)
	case PickCategory:
		parts = append(parts, a.Category)
	}
	return strings.Join(parts, "_")
}

// Decode parses the wire form back into an Action.
func Decode(data string) (Action, error) {
	for _, kind := range kinds {
		prefix := string(kind)
		if data == prefix {
			return decodeParams(kind, nil)
		}
		if strings.HasPrefix(data, prefix+"_") {
			rest := strings.TrimPrefix(data, prefix+"_")
			return decodeParams(kind, strings.Split(rest, "_"))
		}
	}
	return Action{}, fmt.Errorf("unknown callback action: %q", data)
}

func decodeParams(kind Kind, params []string) (Action, error) {
	a := Action{Kind: kind}
	want := 0
	switch kind {
	case UpdateFlat, PickCategory:
		want = 1
	case ViewCollection:
		want = 2
	case TogglePayment:
		want = 3
	}
	if len(params) != want {
		return Action{}, fmt.Errorf("callback %s: want %d parameters, got %d", kind, want, len(params))
	}
	for _, p := range params {
		if p == "" {
			return Action{}, fmt.Errorf("callback %s: empty parameter", kind)
		}
	}

	switch kind {
	case UpdateFlat:
		a.FlatNumber = params[0]
	case ViewCollection:
		a.CollectionType, a.Period = params[0], params[1]
	case TogglePayment:
		a.CollectionType, a.Period, a.FlatNumber = params[0], params[1], params[2]
	case PickCategory:
		a.Category = params[0]
	}
	return a, nil
}
