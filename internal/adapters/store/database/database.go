package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/playmixer/studybot/internal/adapters/store/errstore"
	"github.com/playmixer/studybot/internal/adapters/store/model"
)

type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

type option func(*Store)

func Logger(log *zap.Logger) option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

func open(dsn string) gorm.Dialector {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return postgres.Open(dsn)
	}
	return sqlite.Open(dsn)
}

func New(ctx context.Context, cfg *Config, options ...option) (*Store, error) {
	s := &Store{
		log: zap.NewNop(),
	}
	db, err := gorm.Open(open(cfg.DSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed connect to database: %w", err)
	}

	s.db = db.WithContext(ctx)

	for _, opt := range options {
		opt(s)
	}

	err = s.db.AutoMigrate(
		&model.User{},
		&model.Order{},
		&model.Payment{},
		&model.Message{},
		&model.Review{},
	)

	if err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return s, nil
}

func (s *Store) CloseDB() error {
	db, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed getting database connection: %w", err)
	}
	if err := db.Close(); err != nil {
		return fmt.Errorf("failed close database connection: %w", err)
	}

	return nil
}

func (s *Store) GetOrCreateUser(
	ctx context.Context,
	telegramID int64,
	username, firstName, lastName string,
) (model.User, error) {
	tx := s.db.WithContext(ctx)
	user := model.User{}
	err := tx.Where(&model.User{TelegramID: telegramID}).First(&user).Error
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return user, fmt.Errorf("failed select user: %w", err)
	}

	user = model.User{
		TelegramID: telegramID,
		Username:   username,
		FirstName:  firstName,
		LastName:   lastName,
	}
	if err := tx.Create(&user).Error; err != nil {
		var sqlError *pgconn.PgError
		if errors.As(err, &sqlError) && sqlError.Code == pgerrcode.UniqueViolation {
			return user, errstore.ErrTelegramIDNotUnique
		}
		return user, fmt.Errorf("failed save user: %w", err)
	}

	return user, nil
}

func (s *Store) GetUserByID(ctx context.Context, id uint) (model.User, error) {
	user := model.User{}
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user, errstore.ErrNotFoundData
		}
		return user, fmt.Errorf("failed get user: %w", err)
	}

	return user, nil
}

func (s *Store) GetUsers(ctx context.Context) ([]*model.User, error) {
	users := []*model.User{}
	if err := s.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed get users: %w", err)
	}

	return users, nil
}

func (s *Store) CreateOrder(ctx context.Context, order *model.Order) error {
	if err := s.db.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("failed create order: %w", err)
	}

	return nil
}

func (s *Store) GetOrder(ctx context.Context, id uint) (model.Order, error) {
	order := model.Order{}
	if err := s.db.WithContext(ctx).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return order, errstore.ErrNotFoundData
		}
		return order, fmt.Errorf("failed get order: %w", err)
	}

	return order, nil
}

func (s *Store) GetUserOrders(ctx context.Context, userID uint) ([]*model.Order, error) {
	orders := []*model.Order{}
	if err := s.db.WithContext(ctx).Where(&model.Order{UserID: userID}).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed get orders: %w", err)
	}
	if len(orders) == 0 {
		return orders, errstore.ErrNotFoundData
	}

	return orders, nil
}

func (s *Store) GetOrdersByStatus(ctx context.Context, status model.OrderStatus) ([]*model.Order, error) {
	orders := []*model.Order{}
	if err := s.db.WithContext(ctx).Where("status = ?", status).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed get orders by status: %w", err)
	}

	return orders, nil
}

func (s *Store) SetOrderPrice(ctx context.Context, id uint, price float64) error {
	result := s.db.WithContext(ctx).Model(&model.Order{}).Where("id = ?", id).Update("price", price)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed update order price: %w", err)
	}
	if result.RowsAffected == 0 {
		return errstore.ErrNotFoundData
	}

	return nil
}

func (s *Store) SetOrderStatus(ctx context.Context, id uint, status model.OrderStatus) error {
	result := s.db.WithContext(ctx).Model(&model.Order{}).Where("id = ?", id).Update("status", status)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed update order status: %w", err)
	}
	if result.RowsAffected == 0 {
		return errstore.ErrNotFoundData
	}

	return nil
}

func (s *Store) CreatePayment(ctx context.Context, payment *model.Payment) error {
	if err := s.db.WithContext(ctx).Create(payment).Error; err != nil {
		return fmt.Errorf("failed create payment: %w", err)
	}

	return nil
}

func (s *Store) GetOrderPayment(ctx context.Context, orderID uint) (model.Payment, error) {
	payment := model.Payment{}
	err := s.db.WithContext(ctx).
		Where(&model.Payment{OrderID: orderID}).
		Order("created_at desc").
		First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return payment, errstore.ErrNoActivePayment
		}
		return payment, fmt.Errorf("failed get payment: %w", err)
	}

	return payment, nil
}

func (s *Store) SetPaymentProof(ctx context.Context, paymentID uint, path string) error {
	result := s.db.WithContext(ctx).Model(&model.Payment{}).Where("id = ?", paymentID).Update("proof_file", path)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed update payment proof: %w", err)
	}
	if result.RowsAffected == 0 {
		return errstore.ErrNotFoundData
	}

	return nil
}

// CompletePayment moves the order to paid and its payment to completed in one
// transaction, so a storage failure never leaves the pair half-updated.
func (s *Store) CompletePayment(ctx context.Context, orderID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order := model.Order{}
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errstore.ErrNotFoundData
			}
			return fmt.Errorf("failed get order: %w", err)
		}

		order.Status = model.OrderStatePaid
		if err := tx.Save(&order).Error; err != nil {
			return fmt.Errorf("failed save order: %w", err)
		}

		payment := model.Payment{}
		err := tx.Where(&model.Payment{OrderID: orderID}).Order("created_at desc").First(&payment).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errstore.ErrNoActivePayment
			}
			return fmt.Errorf("failed get payment: %w", err)
		}

		payment.Status = model.PaymentStateCompleted
		if err := tx.Save(&payment).Error; err != nil {
			return fmt.Errorf("failed save payment: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed complete payment transaction: %w", err)
	}

	return nil
}

// FailPayment marks the payment failed and leaves the order pending so the
// customer can retry.
func (s *Store) FailPayment(ctx context.Context, orderID uint) error {
	payment, err := s.GetOrderPayment(ctx, orderID)
	if err != nil {
		return err
	}

	result := s.db.WithContext(ctx).
		Model(&model.Payment{}).
		Where("id = ?", payment.ID).
		Update("status", model.PaymentStateFailed)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed update payment status: %w", err)
	}

	return nil
}

func (s *Store) CreateMessage(ctx context.Context, message *model.Message) error {
	if err := s.db.WithContext(ctx).Create(message).Error; err != nil {
		return fmt.Errorf("failed create message: %w", err)
	}

	return nil
}

func (s *Store) GetMessage(ctx context.Context, id uint) (model.Message, error) {
	message := model.Message{}
	if err := s.db.WithContext(ctx).First(&message, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return message, errstore.ErrNotFoundData
		}
		return message, fmt.Errorf("failed get message: %w", err)
	}

	return message, nil
}

func (s *Store) GetMessages(ctx context.Context) ([]*model.Message, error) {
	messages := []*model.Message{}
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed get messages: %w", err)
	}

	return messages, nil
}

func (s *Store) SetMessageResponse(ctx context.Context, id uint, response string) error {
	result := s.db.WithContext(ctx).Model(&model.Message{}).Where("id = ?", id).
		Updates(map[string]interface{}{"admin_response": response, "is_read": true})
	if err := result.Error; err != nil {
		return fmt.Errorf("failed update message response: %w", err)
	}
	if result.RowsAffected == 0 {
		return errstore.ErrNotFoundData
	}

	return nil
}

func (s *Store) CreateReview(ctx context.Context, review *model.Review) error {
	if err := s.db.WithContext(ctx).Create(review).Error; err != nil {
		return fmt.Errorf("failed create review: %w", err)
	}

	return nil
}

func (s *Store) GetReview(ctx context.Context, id uint) (model.Review, error) {
	review := model.Review{}
	if err := s.db.WithContext(ctx).First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return review, errstore.ErrNotFoundData
		}
		return review, fmt.Errorf("failed get review: %w", err)
	}

	return review, nil
}

func (s *Store) GetReviews(ctx context.Context) ([]*model.Review, error) {
	reviews := []*model.Review{}
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed get reviews: %w", err)
	}

	return reviews, nil
}

func (s *Store) GetRecentReviews(ctx context.Context, limit int) ([]*model.Review, error) {
	reviews := []*model.Review{}
	if err := s.db.WithContext(ctx).Order("created_at desc").Limit(limit).Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed get recent reviews: %w", err)
	}

	return reviews, nil
}

func (s *Store) SetReviewResponse(ctx context.Context, id uint, response string) error {
	result := s.db.WithContext(ctx).Model(&model.Review{}).Where("id = ?", id).Update("admin_response", response)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed update review response: %w", err)
	}
	if result.RowsAffected == 0 {
		return errstore.ErrNotFoundData
	}

	return nil
}

func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.User{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed count users: %w", err)
	}

	return count, nil
}

func (s *Store) CountOrdersByStatus(ctx context.Context) (map[model.OrderStatus]int64, error) {
	type row struct {
		Status model.OrderStatus
		Count  int64
	}
	rows := []row{}
	err := s.db.WithContext(ctx).Model(&model.Order{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed count orders by status: %w", err)
	}

	counts := map[model.OrderStatus]int64{}
	for _, r := range rows {
		counts[r.Status] = r.Count
	}

	return counts, nil
}

func (s *Store) SumCompletedPayments(ctx context.Context) (float64, error) {
	var sum float64
	err := s.db.WithContext(ctx).Model(&model.Payment{}).
		Where("status = ?", model.PaymentStateCompleted).
		Select("coalesce(sum(amount), 0)").
		Scan(&sum).Error
	if err != nil {
		return 0, fmt.Errorf("failed sum completed payments: %w", err)
	}

	return sum, nil
}
