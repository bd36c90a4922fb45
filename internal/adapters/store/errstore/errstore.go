package errstore

import "errors"

var (
	ErrNotFoundData        = errors.New("data not found")
	ErrTelegramIDNotUnique = errors.New("telegram id already registered")
	ErrNoActivePayment     = errors.New("order has no payment")
)
