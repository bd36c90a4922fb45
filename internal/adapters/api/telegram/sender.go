package telegram

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/playmixer/studybot/internal/core/studybot"
)

// api is the slice of the Bot API client the adapter actually calls.
type api interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
}

// Sender implements the core's Notifier over the Telegram Bot API.
type Sender struct {
	api api
}

func NewSender(api api) *Sender {
	return &Sender{api: api}
}

func (s *Sender) SendText(ctx context.Context, chatID int64, text string, keyboard studybot.Keyboard) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if len(keyboard) > 0 {
		msg.ReplyMarkup = markup(keyboard)
	}
	if _, err := s.api.Send(msg); err != nil {
		return fmt.Errorf("failed send message: %w", err)
	}
	return nil
}

// SendFile delivers a stored file as a photo or a document depending on the
// extension, so payment screenshots arrive previewable.
func (s *Sender) SendFile(ctx context.Context, chatID int64, path, caption string, keyboard studybot.Keyboard) error {
	var msg tgbotapi.Chattable
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png":
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FilePath(path))
		photo.Caption = caption
		if len(keyboard) > 0 {
			photo.ReplyMarkup = markup(keyboard)
		}
		msg = photo
	default:
		doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(path))
		doc.Caption = caption
		if len(keyboard) > 0 {
			doc.ReplyMarkup = markup(keyboard)
		}
		msg = doc
	}

	if _, err := s.api.Send(msg); err != nil {
		return fmt.Errorf("failed send file: %w", err)
	}
	return nil
}
