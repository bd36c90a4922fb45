package model

import "time"

type User struct {
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Username   string
	FirstName  string
	LastName   string
	ID         uint  `gorm:"primarykey"`
	TelegramID int64 `gorm:"unique;index"`
}

type OrderStatus string

const (
	OrderStatePending    OrderStatus = "pending"
	OrderStatePaid       OrderStatus = "paid"
	OrderStateInProgress OrderStatus = "in_progress"
	OrderStateCompleted  OrderStatus = "completed"
	OrderStateCancelled  OrderStatus = "cancelled"
)

type Order struct {
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Deadline    time.Time
	WorkType    string `gorm:"index"`
	Subject     string
	Volume      string
	Status      OrderStatus `gorm:"default:pending;index"`
	FilePath    string
	Comment     string
	ContactInfo string
	User        User
	ID          uint `gorm:"primarykey"`
	UserID      uint `gorm:"index"`
	Price       float64
}

type PaymentStatus string

const (
	PaymentStatePending   PaymentStatus = "pending"
	PaymentStateCompleted PaymentStatus = "completed"
	PaymentStateFailed    PaymentStatus = "failed"
	PaymentStateRefunded  PaymentStatus = "refunded"
)

type Payment struct {
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Status        PaymentStatus `gorm:"default:pending;index"`
	Method        string
	TransactionID string
	ProofFile     string
	User          User
	Order         Order
	ID            uint `gorm:"primarykey"`
	UserID        uint `gorm:"index"`
	OrderID       uint `gorm:"index"`
	Amount        float64
}

type Message struct {
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Text          string
	AdminResponse string
	User          User
	ID            uint `gorm:"primarykey"`
	UserID        uint `gorm:"index"`
	IsRead        bool `gorm:"index"`
}

type Review struct {
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Text          string
	AdminResponse string
	User          User
	ID            uint `gorm:"primarykey"`
	UserID        uint `gorm:"index"`
	Rating        int
}
