// Package telegram serves the calculator as a Telegram inline keyboard. Each
// chat member gets their own session in the session store.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"calcpad/internal/calculator"
	"calcpad/internal/keypad"
	"calcpad/internal/session"
)

var (
	ErrClosed         = errors.New("bot has closed")
	ErrSessionExpired = errors.New("session has expired")
	ErrAlreadyStarted = errors.New("bot already started")
	ErrUnsupported    = errors.New("unsupported button")
)

const (
	expiredText  = "Your session has expired, please /open a new one."
	closingText  = "The calculator is shutting down, try again later."
	unknownText  = "Unknown command. Try /help"
	noTokensText = "Nothing to calculate. Use the keypad or type keys like 12*3="
)

// API is the part of tgbotapi.BotAPI the bot uses.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type Options struct {
	Offset     int
	Timeout    int
	SessionTTL time.Duration
}

type Bot struct {
	api        API
	store      *session.Store
	opts       Options
	welcome    string
	help       string
	isStarted  atomic.Bool
	inShutdown atomic.Bool
	stopOnce   sync.Once
	isDone     chan struct{}
	logger     *zap.Logger
}

// NewBot connects to Telegram with token.
func NewBot(token string, opts Options, store *session.Store, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connect telegram: %w", err)
	}
	logger.Info("authorized on telegram", zap.String("username", api.Self.UserName))
	return newBot(api, opts, store, logger), nil
}

func newBot(api API, opts Options, store *session.Store, logger *zap.Logger) *Bot {
	return &Bot{
		api:    api,
		store:  store,
		opts:   opts,
		logger: logger,
		isDone: make(chan struct{}),
		welcome: fmt.Sprintf(
			"Welcome! Type /open to get started.\nNote: the session expires after %s of inactivity.",
			opts.SessionTTL,
		),
		help: strings.Join([]string{
			"Help:",
			"/start - welcome message.",
			"/open - open a new calculator.",
			"/help - send this message.",
			"You can also type keys, e.g. 12*3=",
		}, "\n"),
	}
}

// Run polls for updates until Shutdown or Close stops it, then returns
// ErrClosed.
func (b *Bot) Run() error {
	if !b.isStarted.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	defer close(b.isDone)

	updateConfig := tgbotapi.NewUpdate(b.opts.Offset)
	updateConfig.Timeout = b.opts.Timeout
	updates := b.api.GetUpdatesChan(updateConfig)

	for update := range updates {
		if b.inShutdown.Load() && b.store.IsEmpty() {
			continue
		}
		b.handleUpdate(update)
	}

	return ErrClosed
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		if err := b.handleCallback(update.CallbackQuery); err != nil {
			b.logger.Warn("handle callback",
				zap.String("data", update.CallbackQuery.Data),
				zap.Error(err),
			)
		}
	}

	if update.Message == nil {
		return
	}

	if err := b.handleMessage(update.Message); err != nil {
		b.logger.Warn("handle message", zap.Error(err))
	}
}

func sessionKey(chatID, userID int64) string {
	return fmt.Sprintf("%d_%d", chatID, userID)
}

func (b *Bot) sendText(chatID int64, text string) error {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

func (b *Bot) sendKeyboard(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard

	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("send keyboard: %w", err)
	}
	return nil
}

// editKeyboard rewrites the calculator message. Telegram rejects edits that
// change nothing, so an unchanged text is skipped.
func (b *Bot) editKeyboard(msg *tgbotapi.Message, text string) error {
	if text == msg.Text {
		return nil
	}

	edit := tgbotapi.NewEditMessageText(msg.Chat.ID, msg.MessageID, text)
	edit.ReplyMarkup = &keyboard

	if _, err := b.api.Send(edit); err != nil {
		return fmt.Errorf("edit message: %w", err)
	}
	return nil
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) error {
	if msg.Chat == nil || msg.From == nil {
		return nil
	}
	chatID := msg.Chat.ID
	key := sessionKey(chatID, msg.From.ID)

	if !msg.IsCommand() {
		return b.handleTyped(chatID, key, msg.Text)
	}

	switch msg.Command() {
	case "start":
		return b.sendText(chatID, b.welcome)
	case "help":
		return b.sendText(chatID, b.help)
	case "open":
		state, err := b.store.Open(key)
		if errors.Is(err, session.ErrClosed) {
			return b.sendText(chatID, closingText)
		}
		if err != nil {
			return err
		}
		b.logger.Info("session opened", zap.String("session", key))
		return b.sendKeyboard(chatID, renderText(state))
	default:
		return b.sendText(chatID, unknownText)
	}
}

// handleTyped applies keys typed as a plain message to the sender's session
// and answers with a fresh keypad.
func (b *Bot) handleTyped(chatID int64, key, text string) error {
	tokens, ignored := calculator.ParseSequence(text)
	if len(tokens) == 0 {
		return b.sendText(chatID, noTokensText)
	}

	state, err := b.store.Apply(key, tokens...)
	if errors.Is(err, session.ErrNotFound) {
		return b.sendText(chatID, expiredText)
	}
	if err != nil {
		return err
	}

	if len(ignored) > 0 {
		b.logger.Debug("ignored typed keys", zap.String("session", key), zap.Strings("ignored", ignored))
	}
	return b.sendKeyboard(chatID, renderText(state))
}

func (b *Bot) handleCallback(callback *tgbotapi.CallbackQuery) error {
	if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		return fmt.Errorf("answer callback: %w", err)
	}

	msg := callback.Message
	if msg == nil || msg.Chat == nil || callback.From == nil {
		return ErrUnsupported
	}

	// Only labels on the keyboard are accepted as callback data.
	button, ok := keypad.Find(callback.Data)
	if !ok {
		return ErrUnsupported
	}

	key := sessionKey(msg.Chat.ID, callback.From.ID)
	state, err := b.store.Apply(key, button.Token)
	if errors.Is(err, session.ErrNotFound) {
		if err := b.editKeyboard(msg, expiredText); err != nil {
			return err
		}
		return ErrSessionExpired
	}
	if err != nil {
		return err
	}

	return b.editKeyboard(msg, renderText(state))
}

// Shutdown stops new sessions, waits for open ones to expire and stops
// polling. It returns ctx.Err() if ctx ends first.
func (b *Bot) Shutdown(ctx context.Context) error {
	b.inShutdown.Store(true)
	err := b.store.Shutdown(ctx)
	b.stopReceiving()

	if !b.isStarted.Load() {
		return closedErr(err)
	}

	select {
	case <-b.isDone:
		return closedErr(err)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close drops every session and stops polling at once.
func (b *Bot) Close() error {
	b.inShutdown.Store(true)
	err := b.store.Close()
	b.stopReceiving()

	if b.isStarted.Load() {
		<-b.isDone
	}
	return closedErr(err)
}

// stopReceiving stops polling once. The API closes its shutdown channel on
// every call.
func (b *Bot) stopReceiving() {
	b.stopOnce.Do(b.api.StopReceivingUpdates)
}

func closedErr(err error) error {
	if errors.Is(err, session.ErrClosed) {
		return ErrClosed
	}
	return err
}
