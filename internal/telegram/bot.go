// Package telegram is the transport layer: it receives updates from the
// Telegram Bot API, enforces the allow-list, decodes updates into dialogue
// events, and delivers the engine's replies back to the chat.
package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"fjacquet/flatbot/internal/access"
	"fjacquet/flatbot/internal/action"
	"fjacquet/flatbot/internal/dialog"
	"fjacquet/flatbot/internal/logging"
)

// commands registered with Telegram so they show up in the chat UI.
var commands = []tgbotapi.BotCommand{
	{Command: "start", Description: "Show the main menu"},
	{Command: "expense", Description: "Record an expense"},
	{Command: "income", Description: "Record an income"},
	{Command: "report", Description: "Monthly summary"},
	{Command: "flats", Description: "Manage flat records"},
	{Command: "maintenance", Description: "Collect this month's maintenance"},
	{Command: "collection", Description: "Start a new collection"},
}

// Bot connects the dialogue engine to Telegram long polling.
type Bot struct {
	api    *tgbotapi.BotAPI
	engine *dialog.Engine
	allow  *access.Allowlist
	log    logging.Logger
	http   *http.Client

	mu    sync.Mutex
	inbox map[int64]chan tgbotapi.Update
	wg    sync.WaitGroup
}

// New authenticates with the Bot API and prepares the dispatcher.
func New(token string, engine *dialog.Engine, allow *access.Allowlist, log logging.Logger) (*Bot, error) {
	if log == nil {
		log = logging.GetLogger()
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Telegram: %w", err)
	}
	log.Info("Authorized with Telegram",
		logging.Field{Key: "account", Value: api.Self.UserName})

	return &Bot{
		api:    api,
		engine: engine,
		allow:  allow,
		log:    log,
		http:   &http.Client{Timeout: 30 * time.Second},
		inbox:  make(map[int64]chan tgbotapi.Update),
	}, nil
}

// Run polls for updates until ctx is cancelled. Updates are fanned out to one
// worker per chat so each chat's events are handled strictly in arrival
// order, while distinct chats proceed concurrently.
func (b *Bot) Run(ctx context.Context) error {
	if _, err := b.api.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		b.log.WithError(err).Warn("Failed to register bot commands")
	}

	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	updates := b.api.GetUpdatesChan(cfg)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.drain()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				b.drain()
				return nil
			}
			b.dispatch(ctx, update)
		}
	}
}

// Send posts a plain message; used by the reminder scheduler.
func (b *Bot) Send(chatID int64, text string) error {
	_, err := b.api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

// dispatch routes an update onto its chat's ordered queue, starting a worker
// for chats seen for the first time.
func (b *Bot) dispatch(ctx context.Context, update tgbotapi.Update) {
	chatID, ok := updateChatID(update)
	if !ok {
		return
	}

	b.mu.Lock()
	ch, exists := b.inbox[chatID]
	if !exists {
		ch = make(chan tgbotapi.Update, 16)
		b.inbox[chatID] = ch
		b.wg.Add(1)
		go b.chatWorker(ctx, ch)
	}
	b.mu.Unlock()

	select {
	case ch <- update:
	default:
		b.log.Warn("Dropping update, chat queue full",
			logging.Field{Key: logging.FieldChatID, Value: chatID})
	}
}

func (b *Bot) chatWorker(ctx context.Context, ch <-chan tgbotapi.Update) {
	defer b.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-ch:
			if !ok {
				return
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) drain() {
	b.mu.Lock()
	for _, ch := range b.inbox {
		close(ch)
	}
	b.mu.Unlock()
	b.wg.Wait()
}

// handleUpdate authorizes, decodes and runs one update through the engine.
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	chatID, _ := updateChatID(update)
	from := updateFrom(update)
	if from == nil {
		return
	}

	if !b.allow.Allowed(from.ID) {
		if err := b.Send(chatID, access.RefusalMessage); err != nil {
			b.log.WithError(err).Error("Failed to send refusal",
				logging.Field{Key: logging.FieldChatID, Value: chatID})
		}
		return
	}

	ev, err := b.toEvent(ctx, update)
	if err != nil {
		b.log.WithError(err).Error("Failed to decode update",
			logging.Field{Key: logging.FieldChatID, Value: chatID})
		b.sendReplies(chatID, []dialog.Reply{{Text: "Sorry, I couldn't read that. Please try again."}})
		return
	}

	if update.CallbackQuery != nil {
		ack := tgbotapi.NewCallback(update.CallbackQuery.ID, "")
		if _, err := b.api.Request(ack); err != nil {
			b.log.WithError(err).Debug("Callback ack failed")
		}
	}

	replies := b.engine.Handle(ctx, ev)
	b.sendReplies(chatID, replies)
}

// toEvent converts a Telegram update into a dialogue event, downloading the
// photo payload when present.
func (b *Bot) toEvent(ctx context.Context, update tgbotapi.Update) (dialog.Event, error) {
	chatID, _ := updateChatID(update)
	ev := dialog.Event{ChatID: chatID, UserName: displayName(updateFrom(update))}

	if cb := update.CallbackQuery; cb != nil {
		act, err := action.Decode(cb.Data)
		if err != nil {
			return dialog.Event{}, err
		}
		ev.Kind = dialog.EventCallback
		ev.Action = act
		return ev, nil
	}

	msg := update.Message
	switch {
	case msg.IsCommand():
		ev.Kind = dialog.EventCommand
		ev.Command = msg.Command()
	case len(msg.Photo) > 0:
		data, err := b.downloadPhoto(ctx, msg.Photo)
		if err != nil {
			return dialog.Event{}, err
		}
		ev.Kind = dialog.EventPhoto
		ev.Photo = data
	default:
		ev.Kind = dialog.EventText
		ev.Text = msg.Text
	}
	return ev, nil
}

// downloadPhoto fetches the largest size of the photo from Telegram's file
// servers.
func (b *Bot) downloadPhoto(ctx context.Context, sizes []tgbotapi.PhotoSize) ([]byte, error) {
	largest := sizes[0]
	for _, size := range sizes[1:] {
		if size.FileSize > largest.FileSize {
			largest = size
		}
	}

	url, err := b.api.GetFileDirectURL(largest.FileID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve photo URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := b.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download photo: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("photo download returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (b *Bot) sendReplies(chatID int64, replies []dialog.Reply) {
	for _, reply := range replies {
		msg := tgbotapi.NewMessage(chatID, reply.Text)
		if len(reply.Buttons) > 0 {
			msg.ReplyMarkup = toKeyboard(reply.Buttons)
		}
		if _, err := b.api.Send(msg); err != nil {
			b.log.WithError(err).Error("Failed to send reply",
				logging.Field{Key: logging.FieldChatID, Value: chatID})
		}
	}
}

// toKeyboard converts reply buttons into an inline keyboard, encoding each
// action into its callback-data wire form.
func toKeyboard(rows [][]dialog.Button) tgbotapi.InlineKeyboardMarkup {
	keyboard := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(btn.Label, btn.Action.Encode()))
		}
		keyboard = append(keyboard, buttons)
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...)
}

func updateChatID(update tgbotapi.Update) (int64, bool) {
	switch {
	case update.Message != nil:
		return update.Message.Chat.ID, true
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil:
		return update.CallbackQuery.Message.Chat.ID, true
	}
	return 0, false
}

func updateFrom(update tgbotapi.Update) *tgbotapi.User {
	switch {
	case update.Message != nil:
		return update.Message.From
	case update.CallbackQuery != nil:
		return update.CallbackQuery.From
	}
	return nil
}

// displayName prefers the first name, falling back to the handle.
func displayName(u *tgbotapi.User) string {
	if u == nil {
		return ""
	}
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.UserName
}
