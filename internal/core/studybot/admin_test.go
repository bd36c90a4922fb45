package studybot_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playmixer/studybot/internal/adapters/store/model"
	"github.com/playmixer/studybot/internal/core/studybot"
)

func TestStudybot_SetOrderPrice(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		err         error
		name        string
		input       string
		price       float64
		unreachable bool
		persisted   bool
	}{
		{name: "ok", input: "1500", price: 1500, persisted: true},
		{name: "comma decimal", input: "1500,50", price: 1500.5, persisted: true},
		{name: "not a number", input: "дорого", err: studybot.ErrPriceNotNumber},
		{name: "negative", input: "-100", err: studybot.ErrPriceNotPositive},
		{name: "zero", input: "0", err: studybot.ErrPriceNotPositive},
		{name: "customer unreachable", input: "1500", unreachable: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storeMock := newMockStore(t)
			notify := &fakeNotifier{}
			if tt.unreachable {
				notify.failChat = customerID
			}
			bot := newTestBot(t, storeMock, notify, newFakeFiles())

			order := model.Order{ID: 5, UserID: 1, Status: model.OrderStatePending}
			storeMock.EXPECT().GetOrder(ctx, uint(5)).Return(order, nil).Times(1)
			require.NoError(t, bot.AcceptOrder(ctx, 5))

			if tt.err == nil {
				storeMock.EXPECT().GetOrder(ctx, uint(5)).Return(order, nil).Times(1)
				storeMock.EXPECT().
					GetUserByID(ctx, uint(1)).
					Return(model.User{ID: 1, TelegramID: customerID}, nil).
					Times(1)
			}
			if tt.persisted {
				storeMock.EXPECT().SetOrderPrice(ctx, uint(5), tt.price).Return(nil).Times(1)
			}

			got, err := bot.SetOrderPrice(ctx, tt.input)

			if tt.unreachable {
				var dErr *studybot.DeliveryError
				require.ErrorAs(t, err, &dErr)
				assert.Equal(t, customerID, dErr.Recipient)
				// the admin session survives for a retry
				action, target := bot.AdminAction()
				assert.Equal(t, studybot.AdminAwaitingPrice, action)
				assert.Equal(t, uint(5), target)
				return
			}
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.price, got.Price)

			// the customer got the price with a pay button
			require.Len(t, notify.texts, 1)
			assert.Equal(t, customerID, notify.texts[0].chatID)
			require.Len(t, notify.texts[0].keyboard, 1)
			assert.Equal(t, "pay_5", notify.texts[0].keyboard[0][0].Action)

			action, _ := bot.AdminAction()
			assert.Equal(t, studybot.AdminIdle, action)
		})
	}
}

func TestStudybot_SetOrderPrice_NoSession(t *testing.T) {
	bot := newTestBot(t, newMockStore(t), &fakeNotifier{}, newFakeFiles())
	_, err := bot.SetOrderPrice(context.Background(), "1500")
	assert.ErrorIs(t, err, studybot.ErrNoSession)
}

func TestStudybot_RejectOrder(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name        string
		unreachable bool
	}{
		{name: "ok"},
		{name: "customer unreachable", unreachable: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storeMock := newMockStore(t)
			notify := &fakeNotifier{}
			if tt.unreachable {
				notify.failChat = customerID
			}
			bot := newTestBot(t, storeMock, notify, newFakeFiles())

			storeMock.EXPECT().
				GetOrder(ctx, uint(5)).
				Return(model.Order{ID: 5, UserID: 1, Status: model.OrderStatePending}, nil).
				Times(1)
			storeMock.EXPECT().
				GetUserByID(ctx, uint(1)).
				Return(model.User{ID: 1, TelegramID: customerID}, nil).
				Times(1)
			if !tt.unreachable {
				storeMock.EXPECT().
					SetOrderStatus(ctx, uint(5), model.OrderStateCancelled).
					Return(nil).
					Times(1)
			}

			err := bot.RejectOrder(ctx, 5)

			if tt.unreachable {
				// the order stays pending when the customer cannot be told
				var dErr *studybot.DeliveryError
				require.ErrorAs(t, err, &dErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestStudybot_Broadcast(t *testing.T) {
	ctx := context.Background()
	storeMock := newMockStore(t)
	notify := &fakeNotifier{failChat: 702}
	bot := newTestBot(t, storeMock, notify, newFakeFiles())

	storeMock.EXPECT().GetUsers(ctx).Return([]*model.User{
		{ID: 1, TelegramID: 701},
		{ID: 2, TelegramID: 702},
		{ID: 3, TelegramID: 703},
	}, nil).Times(1)

	bot.StartBroadcast()
	report, err := bot.Broadcast(ctx, "Скидка 10% до конца недели!")
	require.NoError(t, err)

	assert.Equal(t, 2, report.Sent)
	assert.Equal(t, 1, report.Failed)
	assert.Len(t, notify.texts, 2)

	action, _ := bot.AdminAction()
	assert.Equal(t, studybot.AdminIdle, action)
}

func TestStudybot_GetStats(t *testing.T) {
	ctx := context.Background()
	storeMock := newMockStore(t)
	bot := newTestBot(t, storeMock, &fakeNotifier{}, newFakeFiles())

	storeMock.EXPECT().CountUsers(ctx).Return(int64(5), nil).Times(1)
	storeMock.EXPECT().CountOrdersByStatus(ctx).Return(map[model.OrderStatus]int64{
		model.OrderStatePending:   2,
		model.OrderStatePaid:      1,
		model.OrderStateCompleted: 3,
	}, nil).Times(1)
	storeMock.EXPECT().SumCompletedPayments(ctx).Return(float64(4500), nil).Times(1)

	stats, err := bot.GetStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(5), stats.Users)
	assert.Equal(t, int64(6), stats.Orders)
	assert.Equal(t, int64(2), stats.ByStatus[model.OrderStatePending])
	assert.Equal(t, float64(4500), stats.Revenue)
}

func TestStudybot_ReplyToReview(t *testing.T) {
	ctx := context.Background()
	storeMock := newMockStore(t)
	notify := &fakeNotifier{}
	bot := newTestBot(t, storeMock, notify, newFakeFiles())

	storeMock.EXPECT().
		GetReview(ctx, uint(3)).
		Return(model.Review{ID: 3, UserID: 1, Text: "Отличная работа"}, nil).
		Times(1)
	storeMock.EXPECT().SetReviewResponse(ctx, uint(3), "Спасибо!").Return(nil).Times(1)
	storeMock.EXPECT().
		GetUserByID(ctx, uint(1)).
		Return(model.User{ID: 1, TelegramID: customerID}, nil).
		Times(1)

	bot.StartReviewReply(3)
	require.NoError(t, bot.ReplyToReview(ctx, "Спасибо!"))

	require.Len(t, notify.texts, 1)
	assert.Equal(t, customerID, notify.texts[0].chatID)
	assert.True(t, strings.Contains(notify.texts[0].text, "Спасибо!"))
}

func TestStudybot_ReplyToMessage_NoSession(t *testing.T) {
	bot := newTestBot(t, newMockStore(t), &fakeNotifier{}, newFakeFiles())
	err := bot.ReplyToMessage(context.Background(), "ответ")
	assert.ErrorIs(t, err, studybot.ErrNoSession)
}

func TestStudybot_IsAdmin(t *testing.T) {
	bot := newTestBot(t, newMockStore(t), &fakeNotifier{}, newFakeFiles())
	assert.True(t, bot.IsAdmin(adminID))
	assert.False(t, bot.IsAdmin(customerID))
}
