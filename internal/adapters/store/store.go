package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/playmixer/studybot/internal/adapters/store/database"
	"github.com/playmixer/studybot/internal/adapters/store/model"
)

type Config struct {
	Database *database.Config
}

type Store interface {
	GetOrCreateUser(ctx context.Context, telegramID int64, username, firstName, lastName string) (model.User, error)
	GetUserByID(ctx context.Context, id uint) (model.User, error)
	GetUsers(ctx context.Context) ([]*model.User, error)

	CreateOrder(ctx context.Context, order *model.Order) error
	GetOrder(ctx context.Context, id uint) (model.Order, error)
	GetUserOrders(ctx context.Context, userID uint) ([]*model.Order, error)
	GetOrdersByStatus(ctx context.Context, status model.OrderStatus) ([]*model.Order, error)
	SetOrderPrice(ctx context.Context, id uint, price float64) error
	SetOrderStatus(ctx context.Context, id uint, status model.OrderStatus) error

	CreatePayment(ctx context.Context, payment *model.Payment) error
	GetOrderPayment(ctx context.Context, orderID uint) (model.Payment, error)
	SetPaymentProof(ctx context.Context, paymentID uint, path string) error
	CompletePayment(ctx context.Context, orderID uint) error
	FailPayment(ctx context.Context, orderID uint) error

	CreateMessage(ctx context.Context, message *model.Message) error
	GetMessage(ctx context.Context, id uint) (model.Message, error)
	GetMessages(ctx context.Context) ([]*model.Message, error)
	SetMessageResponse(ctx context.Context, id uint, response string) error

	CreateReview(ctx context.Context, review *model.Review) error
	GetReview(ctx context.Context, id uint) (model.Review, error)
	GetReviews(ctx context.Context) ([]*model.Review, error)
	GetRecentReviews(ctx context.Context, limit int) ([]*model.Review, error)
	SetReviewResponse(ctx context.Context, id uint, response string) error

	CountUsers(ctx context.Context) (int64, error)
	CountOrdersByStatus(ctx context.Context) (map[model.OrderStatus]int64, error)
	SumCompletedPayments(ctx context.Context) (float64, error)
}

func New(ctx context.Context, cfg *Config, log *zap.Logger) (Store, error) {
	s, err := database.New(ctx, cfg.Database, database.Logger(log))
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	return s, nil
}
