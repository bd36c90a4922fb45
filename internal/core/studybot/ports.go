package studybot

import (
	"context"
	"strconv"
	"strings"
)

// Button is a transport-agnostic inline control: Label is shown to the user,
// Action comes back as the callback payload.
type Button struct {
	Label  string
	Action string
}

type Keyboard [][]Button

// Notifier is the outbound side of the chat transport. Delivery errors are
// returned to the caller, which decides whether they block a transition.
type Notifier interface {
	SendText(ctx context.Context, chatID int64, text string, keyboard Keyboard) error
	SendFile(ctx context.Context, chatID int64, path, caption string, keyboard Keyboard) error
}

// FileStore keeps uploaded attachments and payment proofs.
type FileStore interface {
	Save(nameHint string, data []byte) (string, error)
	Delete(path string) error
}

// Callback action prefixes shared between core-built keyboards and the
// transport adapter that routes the answers back.
const (
	PrefixPay                 = "pay_"
	PrefixAdminAccept         = "admin_accept_"
	PrefixAdminReject         = "admin_reject_"
	PrefixAdminConfirmPayment = "admin_confirm_payment_"
	PrefixAdminRejectPayment  = "admin_reject_payment_"
	PrefixReviewReply         = "admin_review_response_"
	PrefixMessageReply        = "admin_message_response_"
)

func action(prefix string, id uint) string {
	return prefix + strconv.FormatUint(uint64(id), 10)
}

func ParseActionID(data, prefix string) (uint, bool) {
	if !strings.HasPrefix(data, prefix) {
		return 0, false
	}
	id, err := strconv.ParseUint(strings.TrimPrefix(data, prefix), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

type nopNotifier struct{}

func (nopNotifier) SendText(ctx context.Context, chatID int64, text string, keyboard Keyboard) error {
	return nil
}

func (nopNotifier) SendFile(ctx context.Context, chatID int64, path, caption string, keyboard Keyboard) error {
	return nil
}
