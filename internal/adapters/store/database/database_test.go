package database_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playmixer/studybot/internal/adapters/store/database"
	"github.com/playmixer/studybot/internal/adapters/store/errstore"
	"github.com/playmixer/studybot/internal/adapters/store/model"
)

func newTestStore(t *testing.T) *database.Store {
	t.Helper()
	s, err := database.New(context.Background(), &database.Config{
		DSN: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, s.CloseDB())
	})
	return s
}

func TestStore_GetOrCreateUser(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	created, err := s.GetOrCreateUser(ctx, 700, "ivan", "Иван", "Иванов")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	// second call finds the same row
	found, err := s.GetOrCreateUser(ctx, 700, "", "", "")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "ivan", found.Username)

	count, err := s.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestStore_OrderLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	user, err := s.GetOrCreateUser(ctx, 700, "ivan", "Иван", "")
	require.NoError(t, err)

	order := model.Order{
		UserID:   user.ID,
		WorkType: "essay",
		Subject:  "Философия",
		Volume:   "10",
		Status:   model.OrderStatePending,
		Price:    500,
	}
	require.NoError(t, s.CreateOrder(ctx, &order))
	require.NotZero(t, order.ID)

	require.NoError(t, s.SetOrderPrice(ctx, order.ID, 1500))

	got, err := s.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(1500), got.Price)
	assert.Equal(t, model.OrderStatePending, got.Status)

	pending, err := s.GetOrdersByStatus(ctx, model.OrderStatePending)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	require.NoError(t, s.SetOrderStatus(ctx, order.ID, model.OrderStateCancelled))
	pending, err = s.GetOrdersByStatus(ctx, model.OrderStatePending)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestStore_GetOrder_NotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetOrder(context.Background(), 99)
	assert.ErrorIs(t, err, errstore.ErrNotFoundData)
}

func TestStore_GetUserOrders_Empty(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetUserOrders(context.Background(), 1)
	assert.ErrorIs(t, err, errstore.ErrNotFoundData)
}

func TestStore_CompletePayment(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	user, err := s.GetOrCreateUser(ctx, 700, "ivan", "Иван", "")
	require.NoError(t, err)

	order := model.Order{UserID: user.ID, WorkType: "essay", Status: model.OrderStatePending, Price: 1500}
	require.NoError(t, s.CreateOrder(ctx, &order))

	payment := model.Payment{
		UserID:  user.ID,
		OrderID: order.ID,
		Amount:  1500,
		Status:  model.PaymentStatePending,
	}
	require.NoError(t, s.CreatePayment(ctx, &payment))
	require.NoError(t, s.SetPaymentProof(ctx, payment.ID, "files/check.jpg"))

	require.NoError(t, s.CompletePayment(ctx, order.ID))

	gotOrder, err := s.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatePaid, gotOrder.Status)

	gotPayment, err := s.GetOrderPayment(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStateCompleted, gotPayment.Status)
	assert.Equal(t, "files/check.jpg", gotPayment.ProofFile)

	sum, err := s.SumCompletedPayments(ctx)
	require.NoError(t, err)
	assert.Equal(t, float64(1500), sum)
}

func TestStore_FailPayment(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	user, err := s.GetOrCreateUser(ctx, 700, "ivan", "Иван", "")
	require.NoError(t, err)

	order := model.Order{UserID: user.ID, WorkType: "essay", Status: model.OrderStatePending, Price: 1500}
	require.NoError(t, s.CreateOrder(ctx, &order))

	payment := model.Payment{UserID: user.ID, OrderID: order.ID, Amount: 1500, Status: model.PaymentStatePending}
	require.NoError(t, s.CreatePayment(ctx, &payment))

	require.NoError(t, s.FailPayment(ctx, order.ID))

	// the order is untouched, only the payment is failed
	gotOrder, err := s.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatePending, gotOrder.Status)

	gotPayment, err := s.GetOrderPayment(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStateFailed, gotPayment.Status)

	sum, err := s.SumCompletedPayments(ctx)
	require.NoError(t, err)
	assert.Zero(t, sum)
}

func TestStore_CompletePayment_NoPayment(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	user, err := s.GetOrCreateUser(ctx, 700, "ivan", "Иван", "")
	require.NoError(t, err)

	order := model.Order{UserID: user.ID, WorkType: "essay", Status: model.OrderStatePending}
	require.NoError(t, s.CreateOrder(ctx, &order))

	err = s.CompletePayment(ctx, order.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, errstore.ErrNoActivePayment)

	// the transaction rolled back, the order is still pending
	gotOrder, err := s.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatePending, gotOrder.Status)
}

func TestStore_Messages(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	user, err := s.GetOrCreateUser(ctx, 700, "ivan", "Иван", "")
	require.NoError(t, err)

	message := model.Message{UserID: user.ID, Text: "Когда будет готово?"}
	require.NoError(t, s.CreateMessage(ctx, &message))

	require.NoError(t, s.SetMessageResponse(ctx, message.ID, "Завтра"))

	got, err := s.GetMessage(ctx, message.ID)
	require.NoError(t, err)
	assert.Equal(t, "Завтра", got.AdminResponse)
	assert.True(t, got.IsRead)
}

func TestStore_Reviews(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	user, err := s.GetOrCreateUser(ctx, 700, "ivan", "Иван", "")
	require.NoError(t, err)

	for i := 0; i < 7; i++ {
		review := model.Review{UserID: user.ID, Text: "Отлично"}
		require.NoError(t, s.CreateReview(ctx, &review))
	}

	recent, err := s.GetRecentReviews(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, recent, 5)

	all, err := s.GetReviews(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 7)
}

func TestStore_CountOrdersByStatus(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	user, err := s.GetOrCreateUser(ctx, 700, "ivan", "Иван", "")
	require.NoError(t, err)

	statuses := []model.OrderStatus{
		model.OrderStatePending,
		model.OrderStatePending,
		model.OrderStatePaid,
		model.OrderStateCompleted,
		model.OrderStateCompleted,
		model.OrderStateCompleted,
	}
	for _, status := range statuses {
		order := model.Order{UserID: user.ID, WorkType: "essay", Status: status}
		require.NoError(t, s.CreateOrder(ctx, &order))
	}

	counts, err := s.CountOrdersByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[model.OrderStatePending])
	assert.Equal(t, int64(1), counts[model.OrderStatePaid])
	assert.Equal(t, int64(3), counts[model.OrderStateCompleted])
}
