package dialog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fjacquet/flatbot/internal/action"
	"fjacquet/flatbot/internal/categories"
	"fjacquet/flatbot/internal/dateutils"
	"fjacquet/flatbot/internal/logging"
	"fjacquet/flatbot/internal/models"
	"fjacquet/flatbot/internal/report"
	"fjacquet/flatbot/internal/session"
	"fjacquet/flatbot/internal/textutils"
)

// maintenanceType is the collection type used for the recurring monthly dues.
const maintenanceType = "maintenance"

// Deps bundles the engine's collaborators.
type Deps struct {
	Sessions   *session.Store
	Ledger     Ledger
	Receipts   ReceiptStore
	OCR        Recognizer
	Extractor  FieldExtractor
	Categories []categories.Category
	Logger     logging.Logger

	// ConfidenceThreshold above which extraction skips follow-up questions.
	// Zero falls back to 0.7.
	ConfidenceThreshold float64

	// Clock overrides the time source, for tests.
	Clock func() time.Time
}

// Engine is the dialogue state machine. It is safe for concurrent use across
// chats; events for a single chat must be delivered in order, one at a time
// (the transport guarantees this).
type Engine struct {
	sessions  *session.Store
	ledger    Ledger
	receipts  ReceiptStore
	ocr       Recognizer
	extractor FieldExtractor
	cats      []categories.Category
	threshold float64
	log       logging.Logger
	clock     func() time.Time
}

// New creates an Engine from its collaborators.
func New(d Deps) *Engine {
	if d.Logger == nil {
		d.Logger = logging.GetLogger()
	}
	if d.Clock == nil {
		d.Clock = time.Now
	}
	if d.ConfidenceThreshold == 0 {
		d.ConfidenceThreshold = 0.7
	}
	if len(d.Categories) == 0 {
		d.Categories = categories.Defaults
	}
	return &Engine{
		sessions:  d.Sessions,
		ledger:    d.Ledger,
		receipts:  d.Receipts,
		ocr:       d.OCR,
		extractor: d.Extractor,
		cats:      d.Categories,
		threshold: d.ConfidenceThreshold,
		log:       d.Logger,
		clock:     d.Clock,
	}
}

// Handle processes one inbound event and returns the outbound replies. It
// runs to completion, including all adapter calls, before returning.
func (e *Engine) Handle(ctx context.Context, ev Event) []Reply {
	s := e.sessions.GetOrCreate(ev.ChatID, ev.UserName)

	switch ev.Kind {
	case EventCommand:
		return e.handleCommand(ctx, s, ev.Command)
	case EventCallback:
		return e.handleCallback(ctx, s, ev.Action)
	case EventPhoto:
		return e.handlePhoto(ctx, s, ev.Photo)
	case EventText:
		return e.handleText(ctx, s, ev.Text)
	}
	return nil
}

func (e *Engine) handleCommand(ctx context.Context, s *session.Session, command string) []Reply {
	e.log.Debug("Handling command",
		logging.Field{Key: logging.FieldChatID, Value: s.ChatID},
		logging.Field{Key: logging.FieldCommand, Value: command})

	switch command {
	case "start":
		e.sessions.Put(s)
		return e.mainMenu()
	case "expense":
		return e.startTransaction(s, session.ModeExpense)
	case "income":
		return e.startTransaction(s, session.ModeIncome)
	case "report":
		return e.monthlyReport(ctx, s)
	case "flats":
		return e.flatsMenu(ctx, s)
	case "maintenance":
		return e.maintenanceView(ctx, s)
	case "collection":
		return e.startCollection(s)
	default:
		e.sessions.Put(s)
		return textReply("Unknown command. " + msgIdleHint)
	}
}

func (e *Engine) handleCallback(ctx context.Context, s *session.Session, act action.Action) []Reply {
	e.log.Debug("Handling callback",
		logging.Field{Key: logging.FieldChatID, Value: s.ChatID},
		logging.Field{Key: logging.FieldAction, Value: string(act.Kind)})

	switch act.Kind {
	case action.AddExpense:
		return e.startTransaction(s, session.ModeExpense)
	case action.AddIncome:
		return e.startTransaction(s, session.ModeIncome)
	case action.MonthlyReport:
		return e.monthlyReport(ctx, s)
	case action.ManageFlats, action.ListFlats:
		return e.flatsMenu(ctx, s)
	case action.AddFlat:
		return e.startFlat(s, "")
	case action.UpdateFlat:
		return e.startFlat(s, act.FlatNumber)
	case action.CollectMaintenance:
		return e.maintenanceView(ctx, s)
	case action.CreateCollection:
		return e.startCollection(s)
	case action.ViewCollection:
		cctx := models.CollectionContext{Type: act.CollectionType, Period: act.Period}
		e.sessions.Put(s)
		return e.renderCollection(ctx, cctx)
	case action.TogglePayment:
		return e.togglePayment(ctx, s, act)
	case action.PickCategory:
		return e.pickCategory(s, act.Category)
	}
	e.sessions.Put(s)
	return textReply(msgIdleHint)
}

func (e *Engine) handleText(ctx context.Context, s *session.Session, raw string) []Reply {
	text := textutils.CleanAnswer(raw)

	if s.AwaitingConfirm {
		return e.handleConfirmation(ctx, s, text)
	}
	if q := s.CurrentQuestion(); q != nil {
		return e.handleAnswer(ctx, s, *q, text)
	}

	switch s.Mode {
	case session.ModeExpense, session.ModeIncome:
		return e.handleFreeText(s, text)
	default:
		e.sessions.Put(s)
		return textReply(msgIdleHint)
	}
}

// mainMenu is the /start reply.
func (e *Engine) mainMenu() []Reply {
	return []Reply{{
		Text: "What would you like to do?",
		Buttons: [][]Button{
			{
				{Label: "Add Expense", Action: action.Action{Kind: action.AddExpense}},
				{Label: "Add Income", Action: action.Action{Kind: action.AddIncome}},
			},
			{
				{Label: "Monthly Report", Action: action.Action{Kind: action.MonthlyReport}},
				{Label: "Manage Flats", Action: action.Action{Kind: action.ManageFlats}},
			},
			{
				{Label: "Collect Maintenance", Action: action.Action{Kind: action.CollectMaintenance}},
				{Label: "New Collection", Action: action.Action{Kind: action.CreateCollection}},
			},
		},
	}}
}

// monthlyReport renders the current month's summary.
func (e *Engine) monthlyReport(ctx context.Context, s *session.Session) []Reply {
	e.sessions.Put(s)

	now := e.clock()
	txs, err := e.ledger.MonthTransactions(ctx, now)
	if err != nil {
		e.log.WithError(err).Error("Monthly report read failed",
			logging.Field{Key: logging.FieldChatID, Value: s.ChatID})
		return textReply(msgAdapterFailed)
	}

	summary := report.Build(txs)
	return textReply(report.FormatChat(summary, dateutils.MonthName(now)))
}

// flatsMenu lists the register with per-flat update buttons.
func (e *Engine) flatsMenu(ctx context.Context, s *session.Session) []Reply {
	e.sessions.Put(s)

	flats, err := e.ledger.Flats(ctx)
	if err != nil {
		e.log.WithError(err).Error("Flat list read failed",
			logging.Field{Key: logging.FieldChatID, Value: s.ChatID})
		return textReply(msgAdapterFailed)
	}

	var b strings.Builder
	if len(flats) == 0 {
		b.WriteString("No flats on record yet.")
	} else {
		fmt.Fprintf(&b, "%d flats on record:\n", len(flats))
		for _, f := range flats {
			occupied := "vacant"
			if f.IsOccupied {
				occupied = "occupied"
			}
			fmt.Fprintf(&b, "%s (floor %d) — %s — %s\n", f.FlatNumber, f.FloorNumber, f.OwnerName, occupied)
		}
	}

	buttons := [][]Button{{{Label: "Add Flat", Action: action.Action{Kind: action.AddFlat}}}}
	var row []Button
	for _, f := range flats {
		row = append(row, Button{
			Label:  "Update " + f.FlatNumber,
			Action: action.Action{Kind: action.UpdateFlat, FlatNumber: f.FlatNumber},
		})
		if len(row) == 3 {
			buttons = append(buttons, row)
			row = nil
		}
	}
	if len(row) > 0 {
		buttons = append(buttons, row)
	}

	return []Reply{{Text: b.String(), Buttons: buttons}}
}
