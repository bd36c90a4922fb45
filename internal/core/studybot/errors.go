package studybot

import (
	"errors"
	"fmt"
)

var (
	ErrWorkTypeUnknown  = errors.New("unknown work type")
	ErrSubjectTooShort  = errors.New("subject is too short")
	ErrVolumeNotNumeric = errors.New("volume is not a number")
	ErrDeadlineFormat   = errors.New("deadline has invalid format")
	ErrDeadlinePast     = errors.New("deadline is in the past")
	ErrDeadlineTooFar   = errors.New("deadline is more than a year ahead")
	ErrAttachmentType   = errors.New("unsupported attachment type")
	ErrNoSession        = errors.New("no active session")
	ErrOrderIncomplete  = errors.New("order data is incomplete")
	ErrPriceNotNumber   = errors.New("price is not a number")
	ErrPriceNotPositive = errors.New("price must be positive")
	ErrNotOrderOwner    = errors.New("order belongs to another user")
	ErrOrderNotPayable  = errors.New("order is not awaiting payment")
)

// DeliveryError carries the recipient of a failed notification so the
// administrator can follow up manually.
type DeliveryError struct {
	Err       error
	Recipient int64
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery to %d failed: %s", e.Recipient, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
