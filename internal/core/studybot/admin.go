package studybot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/playmixer/studybot/internal/adapters/store/model"
)

// OrderDetails pairs an order with its owner for admin listings.
type OrderDetails struct {
	User  model.User
	Order model.Order
}

type ReviewDetails struct {
	User   model.User
	Review model.Review
}

type MessageDetails struct {
	User    model.User
	Message model.Message
}

type Stats struct {
	ByStatus map[model.OrderStatus]int64
	Users    int64
	Orders   int64
	Revenue  float64
}

type BroadcastReport struct {
	Sent   int
	Failed int
}

func (b *Studybot) AdminAction() (AdminAction, uint) {
	state := b.sessions.getAdmin()
	return state.Action, state.TargetID
}

func (b *Studybot) ResetAdminAction() {
	b.sessions.resetAdmin()
}

// AcceptOrder puts the admin conversation into awaiting-price mode for the
// order.
func (b *Studybot) AcceptOrder(ctx context.Context, orderID uint) error {
	if _, err := b.store.GetOrder(ctx, orderID); err != nil {
		return fmt.Errorf("failed get order: %w", err)
	}

	b.sessions.setAdmin(AdminAwaitingPrice, orderID)
	return nil
}

// SetOrderPrice parses the admin's price input for the order accepted
// earlier. The customer is notified with the price and a payment button
// first, and only after the send succeeds is the price persisted. On a
// delivery failure the price stays unchanged and the error names the
// recipient for manual follow-up.
func (b *Studybot) SetOrderPrice(ctx context.Context, text string) (model.Order, error) {
	order := model.Order{}
	state := b.sessions.getAdmin()
	if state.Action != AdminAwaitingPrice {
		return order, ErrNoSession
	}

	price, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(text), ",", "."), 64)
	if err != nil {
		return order, ErrPriceNotNumber
	}
	if price <= 0 {
		return order, ErrPriceNotPositive
	}

	order, err = b.store.GetOrder(ctx, state.TargetID)
	if err != nil {
		return order, fmt.Errorf("failed get order: %w", err)
	}
	user, err := b.store.GetUserByID(ctx, order.UserID)
	if err != nil {
		return order, fmt.Errorf("failed get user: %w", err)
	}

	notification := fmt.Sprintf(
		"✅ Ваш заказ #%d принят!\n💰 Стоимость: %.0f ₽\nДля подтверждения заказа — перейдите к оплате:",
		order.ID, price,
	)
	keyboard := Keyboard{{{Label: "Оплатить", Action: action(PrefixPay, order.ID)}}}
	if err := b.notify.SendText(ctx, user.TelegramID, notification, keyboard); err != nil {
		return order, &DeliveryError{Recipient: user.TelegramID, Err: err}
	}

	if err := b.store.SetOrderPrice(ctx, order.ID, price); err != nil {
		return order, fmt.Errorf("failed set order price: %w", err)
	}
	order.Price = price

	b.sessions.resetAdmin()
	return order, nil
}

// RejectOrder cancels the order. The same commit-after-notify policy as
// price setting applies: if the customer cannot be reached, the order stays
// pending and the admin is told why.
func (b *Studybot) RejectOrder(ctx context.Context, orderID uint) error {
	order, err := b.store.GetOrder(ctx, orderID)
	if err != nil {
		return fmt.Errorf("failed get order: %w", err)
	}
	user, err := b.store.GetUserByID(ctx, order.UserID)
	if err != nil {
		return fmt.Errorf("failed get user: %w", err)
	}

	text := fmt.Sprintf("❌ Ваш заказ #%d отклонен.", order.ID)
	if err := b.notify.SendText(ctx, user.TelegramID, text, nil); err != nil {
		return &DeliveryError{Recipient: user.TelegramID, Err: err}
	}

	if err := b.store.SetOrderStatus(ctx, order.ID, model.OrderStateCancelled); err != nil {
		return fmt.Errorf("failed set order status: %w", err)
	}

	return nil
}

func (b *Studybot) PendingOrders(ctx context.Context) ([]OrderDetails, error) {
	orders, err := b.store.GetOrdersByStatus(ctx, model.OrderStatePending)
	if err != nil {
		return nil, fmt.Errorf("failed get pending orders: %w", err)
	}

	details := make([]OrderDetails, 0, len(orders))
	for _, order := range orders {
		user, err := b.store.GetUserByID(ctx, order.UserID)
		if err != nil {
			b.log.Error("order without user", zap.Uint("orderID", order.ID), zap.Error(err))
			continue
		}
		details = append(details, OrderDetails{Order: *order, User: user})
	}

	return details, nil
}

func (b *Studybot) StartBroadcast() {
	b.sessions.setAdmin(AdminAwaitingBroadcast, 0)
}

// Broadcast delivers the text to every known user. Per-recipient failures
// are counted, logged and reported, never fatal.
func (b *Studybot) Broadcast(ctx context.Context, text string) (BroadcastReport, error) {
	report := BroadcastReport{}
	users, err := b.store.GetUsers(ctx)
	if err != nil {
		return report, fmt.Errorf("failed get users: %w", err)
	}

	for _, user := range users {
		if err := b.notify.SendText(ctx, user.TelegramID, text, nil); err != nil {
			b.log.Warn("failed send broadcast",
				zap.Int64("telegramID", user.TelegramID),
				zap.Error(err),
			)
			report.Failed++
			continue
		}
		report.Sent++
	}

	b.sessions.resetAdmin()
	return report, nil
}

func (b *Studybot) GetStats(ctx context.Context) (Stats, error) {
	stats := Stats{}

	users, err := b.store.CountUsers(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed count users: %w", err)
	}

	byStatus, err := b.store.CountOrdersByStatus(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed count orders: %w", err)
	}
	var total int64
	for _, count := range byStatus {
		total += count
	}

	revenue, err := b.store.SumCompletedPayments(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed sum payments: %w", err)
	}

	stats.Users = users
	stats.Orders = total
	stats.ByStatus = byStatus
	stats.Revenue = revenue
	return stats, nil
}

func (b *Studybot) Reviews(ctx context.Context) ([]ReviewDetails, error) {
	reviews, err := b.store.GetReviews(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed get reviews: %w", err)
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

func (b *Studybot) StartReviewReply(reviewID uint) {
	b.sessions.setAdmin(AdminAwaitingReviewReply, reviewID)
}

// ReplyToReview attaches the response to the review and forwards it to the
// author.
func (b *Studybot) ReplyToReview(ctx context.Context, text string) error {
	state := b.sessions.getAdmin()
	if state.Action != AdminAwaitingReviewReply {
		return ErrNoSession
	}

	review, err := b.store.GetReview(ctx, state.TargetID)
	if err != nil {
		return fmt.Errorf("failed get review: %w", err)
	}
	if err := b.store.SetReviewResponse(ctx, review.ID, text); err != nil {
		return fmt.Errorf("failed set review response: %w", err)
	}

	b.sessions.resetAdmin()

	user, err := b.store.GetUserByID(ctx, review.UserID)
	if err != nil {
		return fmt.Errorf("failed get user: %w", err)
	}
	notification := fmt.Sprintf("💬 Администратор ответил на ваш отзыв:\n\n%s", text)
	if err := b.notify.SendText(ctx, user.TelegramID, notification, nil); err != nil {
		return &DeliveryError{Recipient: user.TelegramID, Err: err}
	}

	return nil
}

func (b *Studybot) Messages(ctx context.Context) ([]MessageDetails, error) {
	messages, err := b.store.GetMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed get messages: %w", err)
	}

	details := make([]MessageDetails, 0, len(messages))
	for _, message := range messages {
		user, err := b.store.GetUserByID(ctx, message.UserID)
		if err != nil {
			b.log.Error("message without user", zap.Uint("messageID", message.ID), zap.Error(err))
			continue
		}
		details = append(details, MessageDetails{Message: *message, User: user})
	}

	return details, nil
}

func (b *Studybot) StartMessageReply(messageID uint) {
	b.sessions.setAdmin(AdminAwaitingMessageReply, messageID)
}

// ReplyToMessage attaches the response to the support message, marks it read
// and forwards the text to the author.
func (b *Studybot) ReplyToMessage(ctx context.Context, text string) error {
	state := b.sessions.getAdmin()
	if state.Action != AdminAwaitingMessageReply {
		return ErrNoSession
	}

	message, err := b.store.GetMessage(ctx, state.TargetID)
	if err != nil {
		return fmt.Errorf("failed get message: %w", err)
	}
	if err := b.store.SetMessageResponse(ctx, message.ID, text); err != nil {
		return fmt.Errorf("failed set message response: %w", err)
	}

	b.sessions.resetAdmin()

	user, err := b.store.GetUserByID(ctx, message.UserID)
	if err != nil {
		return fmt.Errorf("failed get user: %w", err)
	}
	notification := fmt.Sprintf("💬 Администратор ответил на ваше сообщение:\n\n%s", text)
	if err := b.notify.SendText(ctx, user.TelegramID, notification, nil); err != nil {
		return &DeliveryError{Recipient: user.TelegramID, Err: err}
	}

	return nil
}
