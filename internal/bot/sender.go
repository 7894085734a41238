package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"support-relay-backend/internal/features/ticket/models"
)

// Button is an opaque label/payload pair rendered as one inline button.
type Button struct {
	Label   string
	Payload string
}

// Sender is the outbound half of the chat transport.
type Sender interface {
	SendText(ctx context.Context, chatID int64, text string, rows ...[]Button) error
	// SendMarkdown sends text with Markdown formatting enabled.
	SendMarkdown(ctx context.Context, chatID int64, text string, rows ...[]Button) error
	SendMedia(ctx context.Context, chatID int64, kind models.MediaKind, fileID, caption string) error
	EditMessage(ctx context.Context, ref MessageRef, text string) error
}

// TelegramSender delivers outbound messages through the Bot API.
type TelegramSender struct {
	api *tgbotapi.BotAPI
}

func NewTelegramSender(api *tgbotapi.BotAPI) *TelegramSender {
	return &TelegramSender{api: api}
}

func (s *TelegramSender) SendText(ctx context.Context, chatID int64, text string, rows ...[]Button) error {
	return s.send(ctx, chatID, text, "", rows)
}

func (s *TelegramSender) SendMarkdown(ctx context.Context, chatID int64, text string, rows ...[]Button) error {
	return s.send(ctx, chatID, text, tgbotapi.ModeMarkdown, rows)
}

func (s *TelegramSender) send(ctx context.Context, chatID int64, text, parseMode string, rows [][]Button) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = parseMode
	if markup, ok := inlineMarkup(rows); ok {
		msg.ReplyMarkup = markup
	}

	if _, err := s.api.Send(msg); err != nil {
		return fmt.Errorf("send message to %d: %w", chatID, err)
	}
	return nil
}

func (s *TelegramSender) SendMedia(ctx context.Context, chatID int64, kind models.MediaKind, fileID, caption string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var msg tgbotapi.Chattable
	switch kind {
	case models.MediaPhoto:
		m := tgbotapi.NewPhoto(chatID, tgbotapi.FileID(fileID))
		m.Caption = caption
		msg = m
	case models.MediaVoice:
		m := tgbotapi.NewVoice(chatID, tgbotapi.FileID(fileID))
		m.Caption = caption
		msg = m
	case models.MediaVideo:
		m := tgbotapi.NewVideo(chatID, tgbotapi.FileID(fileID))
		m.Caption = caption
		msg = m
	default:
		return fmt.Errorf("unsupported media kind: %s", kind)
	}

	if _, err := s.api.Send(msg); err != nil {
		return fmt.Errorf("send %s to %d: %w", kind, chatID, err)
	}
	return nil
}

func (s *TelegramSender) EditMessage(ctx context.Context, ref MessageRef, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	edit := tgbotapi.NewEditMessageText(ref.ChatID, ref.MessageID, text)
	if _, err := s.api.Send(edit); err != nil {
		return fmt.Errorf("edit message %d/%d: %w", ref.ChatID, ref.MessageID, err)
	}
	return nil
}

func inlineMarkup(rows [][]Button) (tgbotapi.InlineKeyboardMarkup, bool) {
	if len(rows) == 0 {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}
	keyboard := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Payload))
		}
		keyboard = append(keyboard, buttons)
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...), true
}
