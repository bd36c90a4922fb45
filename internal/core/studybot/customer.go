package studybot

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/playmixer/studybot/internal/adapters/store/errstore"
	"github.com/playmixer/studybot/internal/adapters/store/model"
)

const recentReviewsLimit = 5

func (b *Studybot) ChatMode(chatID int64) ChatMode {
	return b.sessions.getMode(chatID)
}

func (b *Studybot) AwaitSupport(chatID int64) {
	b.sessions.setMode(chatID, ModeSupport)
}

func (b *Studybot) AwaitReview(chatID int64) {
	b.sessions.setMode(chatID, ModeReview)
}

func (b *Studybot) ClearMode(chatID int64) {
	b.sessions.setMode(chatID, ModeNone)
}

func (b *Studybot) UserOrders(ctx context.Context, telegramID int64) ([]*model.Order, error) {
	user, err := b.store.GetOrCreateUser(ctx, telegramID, "", "", "")
	if err != nil {
		return nil, fmt.Errorf("failed get or create user: %w", err)
	}

	orders, err := b.store.GetUserOrders(ctx, user.ID)
	if err != nil {
		if errors.Is(err, errstore.ErrNotFoundData) {
			return nil, err
		}
		return nil, fmt.Errorf("failed get user orders: %w", err)
	}

	return orders, nil
}

// SupportMessage stores the customer's question and forwards it to the
// administrator with a reply control. A failed forward is logged, not
// returned: the message is already persisted and reachable from the admin
// panel.
func (b *Studybot) SupportMessage(ctx context.Context, chatID int64, from TgUser, text string) error {
	user, err := b.store.GetOrCreateUser(ctx, from.ID, from.Username, from.FirstName, from.LastName)
	if err != nil {
		return fmt.Errorf("failed get or create user: %w", err)
	}

	message := model.Message{
		UserID: user.ID,
		Text:   text,
	}
	if err := b.store.CreateMessage(ctx, &message); err != nil {
		return fmt.Errorf("failed create message: %w", err)
	}

	b.sessions.setMode(chatID, ModeNone)

	notification := fmt.Sprintf("💬 Новое сообщение от %s (@%s):\n\n%s", user.FirstName, user.Username, text)
	keyboard := Keyboard{{{Label: "💬 Ответить", Action: action(PrefixMessageReply, message.ID)}}}
	if err := b.notify.SendText(ctx, b.cfg.AdminID, notification, keyboard); err != nil {
		b.log.Warn("failed forward support message",
			zap.Uint("messageID", message.ID),
			zap.Error(err),
		)
	}

	return nil
}

func (b *Studybot) LeaveReview(ctx context.Context, chatID int64, from TgUser, text string) error {
	user, err := b.store.GetOrCreateUser(ctx, from.ID, from.Username, from.FirstName, from.LastName)
	if err != nil {
		return fmt.Errorf("failed get or create user: %w", err)
	}

	review := model.Review{
		UserID: user.ID,
		Text:   text,
	}
	if err := b.store.CreateReview(ctx, &review); err != nil {
		return fmt.Errorf("failed create review: %w", err)
	}

	b.sessions.setMode(chatID, ModeNone)

	return nil
}

func (b *Studybot) RecentReviews(ctx context.Context) ([]ReviewDetails, error) {
	reviews, err := b.store.GetRecentReviews(ctx, recentReviewsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed get recent reviews: %w", err)
	}

	details := make([]ReviewDetails, 0, len(reviews))
	for _, review := range reviews {
		user, err := b.store.GetUserByID(ctx, review.UserID)
		if err != nil {
			b.log.Error("review without user", zap.Uint("reviewID", review.ID), zap.Error(err))
			continue
		}
		details = append(details, ReviewDetails{Review: *review, User: user})
	}

	return details, nil
}
