package studybot

import (
	"context"

	"go.uber.org/zap"

	"github.com/playmixer/studybot/internal/adapters/store/model"
)

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

type Config struct {
	PaymentCard string `env:"PAYMENT_CARD" envDefault:"2202 2050 0031 5959"`
	AdminID     int64  `env:"ADMIN_ID"`
}

// Studybot is the conversational core: the order wizard, the admin workflow
// and the payment workflow over the entity store and the chat transport.
type Studybot struct {
	log      *zap.Logger
	cfg      *Config
	store    Store
	files    FileStore
	notify   Notifier
	sessions *sessions
}

type option func(*Studybot)

func Logger(log *zap.Logger) option {
	return func(b *Studybot) {
		if log != nil {
			b.log = log
		}
	}
}

func Files(files FileStore) option {
	return func(b *Studybot) {
		b.files = files
	}
}

func Notify(notify Notifier) option {
	return func(b *Studybot) {
		b.notify = notify
	}
}

func New(cfg *Config, store Store, options ...option) *Studybot {
	b := &Studybot{
		log:      zap.NewNop(),
		cfg:      cfg,
		store:    store,
		notify:   nopNotifier{},
		sessions: newSessions(),
	}

	for _, opt := range options {
		opt(b)
	}

	return b
}

// IsAdmin is the single capability check every admin entry point goes
// through.
func (b *Studybot) IsAdmin(telegramID int64) bool {
	return telegramID == b.cfg.AdminID
}

func (b *Studybot) PaymentCard() string {
	return b.cfg.PaymentCard
}

func (b *Studybot) deleteFile(path string) {
	if b.files == nil || path == "" {
		return
	}
	if err := b.files.Delete(path); err != nil {
		b.log.Error("failed delete file", zap.String("path", path), zap.Error(err))
	}
}
