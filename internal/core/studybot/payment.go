package studybot

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/playmixer/studybot/internal/adapters/store/model"
)

// StartPayment checks that the order belongs to the caller and still awaits
// payment, creates a pending Payment and marks the order as this chat's
// active payment. Only one order per chat can await a proof at a time.
func (b *Studybot) StartPayment(ctx context.Context, chatID int64, from TgUser, orderID uint) (model.Order, error) {
	order, err := b.store.GetOrder(ctx, orderID)
	if err != nil {
		return order, fmt.Errorf("failed get order: %w", err)
	}

	user, err := b.store.GetOrCreateUser(ctx, from.ID, from.Username, from.FirstName, from.LastName)
	if err != nil {
		return order, fmt.Errorf("failed get or create user: %w", err)
	}
	if order.UserID != user.ID {
		return order, ErrNotOrderOwner
	}
	if order.Status != model.OrderStatePending {
		return order, ErrOrderNotPayable
	}

	payment := model.Payment{
		UserID:  user.ID,
		OrderID: order.ID,
		Amount:  order.Price,
		Status:  model.PaymentStatePending,
	}
	if err := b.store.CreatePayment(ctx, &payment); err != nil {
		return order, fmt.Errorf("failed create payment: %w", err)
	}

	b.sessions.startPayment(chatID, order.ID)

	return order, nil
}

// PaymentPending reports the order this chat is uploading a proof for.
func (b *Studybot) PaymentPending(chatID int64) (uint, bool) {
	return b.sessions.getPayment(chatID)
}

func (b *Studybot) CancelPayment(chatID int64) {
	b.sessions.dropPayment(chatID)
}

// AttachPaymentProof stores the uploaded evidence, links it to the payment
// and forwards it to the administrator with confirm/reject controls.
func (b *Studybot) AttachPaymentProof(
	ctx context.Context,
	chatID int64,
	from TgUser,
	fileName string,
	data []byte,
) (model.Order, error) {
	order := model.Order{}
	orderID, ok := b.sessions.getPayment(chatID)
	if !ok {
		return order, ErrNoSession
	}

	order, err := b.store.GetOrder(ctx, orderID)
	if err != nil {
		return order, fmt.Errorf("failed get order: %w", err)
	}
	user, err := b.store.GetOrCreateUser(ctx, from.ID, from.Username, from.FirstName, from.LastName)
	if err != nil {
		return order, fmt.Errorf("failed get or create user: %w", err)
	}
	if order.UserID != user.ID {
		return order, ErrNotOrderOwner
	}

	payment, err := b.store.GetOrderPayment(ctx, order.ID)
	if err != nil {
		return order, fmt.Errorf("failed get payment: %w", err)
	}

	path, err := b.files.Save(fileName, data)
	if err != nil {
		return order, fmt.Errorf("failed store payment proof: %w", err)
	}

	if err := b.store.SetPaymentProof(ctx, payment.ID, path); err != nil {
		b.deleteFile(path)
		return order, fmt.Errorf("failed set payment proof: %w", err)
	}

	b.sessions.dropPayment(chatID)

	caption := fmt.Sprintf(
		"💰 Получено подтверждение оплаты за заказ #%d\n👤 От: %s\n💵 Сумма: %.0f ₽",
		order.ID, user.FirstName, order.Price,
	)
	keyboard := Keyboard{
		{
			{Label: "✅ Подтвердить оплату", Action: action(PrefixAdminConfirmPayment, order.ID)},
			{Label: "❌ Отклонить", Action: action(PrefixAdminRejectPayment, order.ID)},
		},
	}
	if err := b.notify.SendFile(ctx, b.cfg.AdminID, path, caption, keyboard); err != nil {
		b.log.Warn("failed notify admin about payment proof",
			zap.Uint("orderID", order.ID),
			zap.Error(err),
		)
	}

	return order, nil
}

// ConfirmPayment moves the order to paid and the payment to completed, then
// tells the customer. The state change is committed first: a lost
// notification must not undo an accepted payment, so the delivery error is
// returned for the admin to follow up on.
func (b *Studybot) ConfirmPayment(ctx context.Context, orderID uint) error {
	order, err := b.store.GetOrder(ctx, orderID)
	if err != nil {
		return fmt.Errorf("failed get order: %w", err)
	}
	user, err := b.store.GetUserByID(ctx, order.UserID)
	if err != nil {
		return fmt.Errorf("failed get user: %w", err)
	}

	if err := b.store.CompletePayment(ctx, order.ID); err != nil {
		return fmt.Errorf("failed complete payment: %w", err)
	}

	text := fmt.Sprintf("✅ Оплата заказа #%d подтверждена!\n\nМы приступим к выполнению вашего заказа.", order.ID)
	if err := b.notify.SendText(ctx, user.TelegramID, text, nil); err != nil {
		return &DeliveryError{Recipient: user.TelegramID, Err: err}
	}

	return nil
}

// RejectPayment fails the payment and leaves the order pending so the
// customer can retry with corrected evidence.
func (b *Studybot) RejectPayment(ctx context.Context, orderID uint) error {
	order, err := b.store.GetOrder(ctx, orderID)
	if err != nil {
		return fmt.Errorf("failed get order: %w", err)
	}
	user, err := b.store.GetUserByID(ctx, order.UserID)
	if err != nil {
		return fmt.Errorf("failed get user: %w", err)
	}

	if err := b.store.FailPayment(ctx, order.ID); err != nil {
		return fmt.Errorf("failed fail payment: %w", err)
	}

	text := fmt.Sprintf(
		"❌ Оплата заказа #%d отклонена.\n\nПожалуйста, проверьте правильность оплаты и попробуйте снова.",
		order.ID,
	)
	if err := b.notify.SendText(ctx, user.TelegramID, text, nil); err != nil {
		return &DeliveryError{Recipient: user.TelegramID, Err: err}
	}

	return nil
}
