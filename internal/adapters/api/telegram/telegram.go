package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/playmixer/studybot/internal/adapters/store/model"
	"github.com/playmixer/studybot/internal/core/studybot"
)

type service interface {
	IsAdmin(telegramID int64) bool
	PaymentCard() string

	StartWizard(chatID int64) *studybot.Session
	WizardState(chatID int64) (studybot.WizardState, bool)
	CancelWizard(chatID int64)
	SetWorkType(chatID int64, workType string) error
	SetSubject(chatID int64, text string) error
	SetVolume(chatID int64, text string) error
	SetDeadline(chatID int64, text string) error
	SetAttachment(chatID int64, fileName string, data []byte) error
	SetComment(chatID int64, text string) error
	FinalizeOrder(ctx context.Context, chatID int64, contact string, from studybot.TgUser) (model.Order, error)

	StartPayment(ctx context.Context, chatID int64, from studybot.TgUser, orderID uint) (model.Order, error)
	PaymentPending(chatID int64) (uint, bool)
	CancelPayment(chatID int64)
	AttachPaymentProof(ctx context.Context, chatID int64, from studybot.TgUser, fileName string, data []byte) (model.Order, error)
	ConfirmPayment(ctx context.Context, orderID uint) error
	RejectPayment(ctx context.Context, orderID uint) error

	AdminAction() (studybot.AdminAction, uint)
	ResetAdminAction()
	AcceptOrder(ctx context.Context, orderID uint) error
	SetOrderPrice(ctx context.Context, text string) (model.Order, error)
	RejectOrder(ctx context.Context, orderID uint) error
	PendingOrders(ctx context.Context) ([]studybot.OrderDetails, error)
	StartBroadcast()
	Broadcast(ctx context.Context, text string) (studybot.BroadcastReport, error)
	GetStats(ctx context.Context) (studybot.Stats, error)
	Reviews(ctx context.Context) ([]studybot.ReviewDetails, error)
	StartReviewReply(reviewID uint)
	ReplyToReview(ctx context.Context, text string) error
	Messages(ctx context.Context) ([]studybot.MessageDetails, error)
	StartMessageReply(messageID uint)
	ReplyToMessage(ctx context.Context, text string) error

	ChatMode(chatID int64) studybot.ChatMode
	AwaitSupport(chatID int64)
	AwaitReview(chatID int64)
	ClearMode(chatID int64)
	UserOrders(ctx context.Context, telegramID int64) ([]*model.Order, error)
	SupportMessage(ctx context.Context, chatID int64, from studybot.TgUser, text string) error
	LeaveReview(ctx context.Context, chatID int64, from studybot.TgUser, text string) error
	RecentReviews(ctx context.Context) ([]studybot.ReviewDetails, error)
}

// Bot receives updates via long polling and routes them into the core.
type Bot struct {
	log     *zap.Logger
	cfg     *Config
	bot     *tgbotapi.BotAPI
	api     api
	service service
	client  *http.Client
}

type option func(*Bot)

func Logger(log *zap.Logger) option {
	return func(b *Bot) {
		if log != nil {
			b.log = log
		}
	}
}

func HTTPClient(client *http.Client) option {
	return func(b *Bot) {
		if client != nil {
			b.client = client
		}
	}
}

func New(cfg *Config, botAPI *tgbotapi.BotAPI, service service, options ...option) *Bot {
	b := &Bot{
		log:     zap.NewNop(),
		cfg:     cfg,
		bot:     botAPI,
		api:     botAPI,
		service: service,
		client:  http.DefaultClient,
	}

	for _, opt := range options {
		opt(b)
	}

	return b
}

// Run polls for updates until the context is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.PollTimeout

	updates := b.bot.GetUpdatesChan(u)
	b.log.Info("bot started", zap.String("username", b.bot.Self.UserName))

	for {
		select {
		case <-ctx.Done():
			b.bot.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

// download fetches a file uploaded by the user from the Telegram file
// servers.
func (b *Bot) download(fileID string) ([]byte, error) {
	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("failed get file url: %w", err)
	}

	resp, err := b.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed download file: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed download file: status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed read file body: %w", err)
	}
	return data, nil
}

func (b *Bot) send(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.log.Error("failed send message", zap.Int64("chatID", chatID), zap.Error(err))
	}
}

func (b *Bot) sendKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("failed send message", zap.Int64("chatID", chatID), zap.Error(err))
	}
}

func tgUser(u *tgbotapi.User) studybot.TgUser {
	if u == nil {
		return studybot.TgUser{}
	}
	return studybot.TgUser{
		ID:        u.ID,
		Username:  u.UserName,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
