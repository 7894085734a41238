package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"support-relay-backend/internal/common/logger"
)

// Handler consumes decoded inbound events. Implemented by the routing
// engine; wired in cmd to keep this package free of routing logic.
type Handler interface {
	HandleEvent(ctx context.Context, event *Event)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, event *Event)

func (f HandlerFunc) HandleEvent(ctx context.Context, event *Event) {
	f(ctx, event)
}

// Bot runs the long-poll update loop and feeds decoded events to the
// handler. Each event is handled in its own goroutine: the router is
// reentrant, and ordering between independent senders is not guaranteed.
type Bot struct {
	api     *tgbotapi.BotAPI
	handler Handler
}

func New(token string, debug bool, handler Handler) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	api.Debug = debug

	logger.Info().Str("username", api.Self.UserName).Msg("Authorized bot account")

	return &Bot{api: api, handler: handler}, nil
}

// API exposes the underlying client for the outbound sender.
func (b *Bot) API() *tgbotapi.BotAPI {
	return b.api
}

// Run blocks until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if cq := update.CallbackQuery; cq != nil {
				// Ack the button press so the client stops its spinner.
				if _, err := b.api.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
					logger.Warn().Err(err).Msg("Failed to answer callback query")
				}
			}
			event, ok := DecodeUpdate(update)
			if !ok {
				continue
			}
			go b.handler.HandleEvent(ctx, event)
		}
	}
}
