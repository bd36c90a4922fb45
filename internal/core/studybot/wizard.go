package studybot

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/playmixer/studybot/internal/adapters/store/model"
)

const (
	deadlineLayout  = "02.01.2006"
	maxDeadlineDays = 365
	minSubjectLen   = 3
)

var allowedAttachments = map[string]struct{}{
	".pdf":  {},
	".doc":  {},
	".docx": {},
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

// TgUser identifies the chat participant as the transport reports them.
type TgUser struct {
	Username  string
	FirstName string
	LastName  string
	ID        int64
}

// StartWizard opens a fresh order session for the chat, replacing any
// previous one.
func (b *Studybot) StartWizard(chatID int64) *Session {
	if session, ok := b.sessions.getWizard(chatID); ok {
		b.deleteFile(session.FilePath)
	}
	return b.sessions.startWizard(chatID)
}

func (b *Studybot) WizardState(chatID int64) (WizardState, bool) {
	session, ok := b.sessions.getWizard(chatID)
	if !ok {
		return 0, false
	}
	return session.State, true
}

// CancelWizard discards the session and any attachment already stored.
func (b *Studybot) CancelWizard(chatID int64) {
	session, ok := b.sessions.getWizard(chatID)
	if !ok {
		return
	}
	b.deleteFile(session.FilePath)
	b.sessions.dropWizard(chatID)
}

func (b *Studybot) SetWorkType(chatID int64, workType string) error {
	session, ok := b.sessions.getWizard(chatID)
	if !ok {
		return ErrNoSession
	}
	if !knownWorkType(workType) {
		return ErrWorkTypeUnknown
	}

	session.WorkType = workType
	session.State = StateSubject
	return nil
}

func (b *Studybot) SetSubject(chatID int64, text string) error {
	session, ok := b.sessions.getWizard(chatID)
	if !ok {
		return ErrNoSession
	}
	subject := strings.TrimSpace(text)
	if len([]rune(subject)) < minSubjectLen {
		return ErrSubjectTooShort
	}

	session.Subject = subject
	session.State = StateVolume
	return nil
}

func (b *Studybot) SetVolume(chatID int64, text string) error {
	session, ok := b.sessions.getWizard(chatID)
	if !ok {
		return ErrNoSession
	}
	volume := strings.TrimSpace(text)
	v, err := strconv.ParseFloat(volume, 64)
	if err != nil || v <= 0 {
		return ErrVolumeNotNumeric
	}

	session.Volume = volume
	session.State = StateDeadline
	return nil
}

func (b *Studybot) SetDeadline(chatID int64, text string) error {
	session, ok := b.sessions.getWizard(chatID)
	if !ok {
		return ErrNoSession
	}
	deadline, err := time.Parse(deadlineLayout, strings.TrimSpace(text))
	if err != nil {
		return ErrDeadlineFormat
	}
	now := time.Now()
	if deadline.Before(now) {
		return ErrDeadlinePast
	}
	if deadline.After(now.AddDate(0, 0, maxDeadlineDays)) {
		return ErrDeadlineTooFar
	}

	session.Deadline = deadline
	session.State = StateAttachment
	return nil
}

// SetAttachment validates the extension and stores the file. A previously
// stored attachment for this session is replaced.
func (b *Studybot) SetAttachment(chatID int64, fileName string, data []byte) error {
	session, ok := b.sessions.getWizard(chatID)
	if !ok {
		return ErrNoSession
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	if _, ok := allowedAttachments[ext]; !ok {
		return ErrAttachmentType
	}

	path, err := b.files.Save(fileName, data)
	if err != nil {
		return fmt.Errorf("failed store attachment: %w", err)
	}

	b.deleteFile(session.FilePath)
	session.FilePath = path
	session.State = StateComment
	return nil
}

func (b *Studybot) SetComment(chatID int64, text string) error {
	session, ok := b.sessions.getWizard(chatID)
	if !ok {
		return ErrNoSession
	}
	comment := strings.TrimSpace(text)
	if comment == "-" {
		comment = ""
	}

	session.Comment = comment
	session.State = StateContact
	return nil
}

// FinalizeOrder takes the contact string, persists the user and the order
// with the base price for the chosen work type, notifies the administrator
// and drops the session. A failed admin notification does not undo the
// already persisted order; the admin can still find it via the pending list.
func (b *Studybot) FinalizeOrder(ctx context.Context, chatID int64, contact string, from TgUser) (model.Order, error) {
	order := model.Order{}
	session, ok := b.sessions.getWizard(chatID)
	if !ok {
		return order, ErrNoSession
	}

	session.Contact = strings.TrimSpace(contact)
	if !session.complete() {
		return order, ErrOrderIncomplete
	}

	user, err := b.store.GetOrCreateUser(ctx, from.ID, from.Username, from.FirstName, from.LastName)
	if err != nil {
		return order, fmt.Errorf("failed get or create user: %w", err)
	}

	order = model.Order{
		UserID:      user.ID,
		WorkType:    session.WorkType,
		Subject:     session.Subject,
		Volume:      session.Volume,
		Deadline:    session.Deadline,
		Status:      model.OrderStatePending,
		Price:       BasePrice(session.WorkType),
		FilePath:    session.FilePath,
		Comment:     session.Comment,
		ContactInfo: session.Contact,
	}
	if err := b.store.CreateOrder(ctx, &order); err != nil {
		return order, fmt.Errorf("failed create order: %w", err)
	}

	b.sessions.dropWizard(chatID)

	if err := b.notifyAdminNewOrder(ctx, order, user); err != nil {
		b.log.Warn("failed notify admin about new order",
			zap.Uint("orderID", order.ID),
			zap.Error(err),
		)
	}

	return order, nil
}

func (b *Studybot) notifyAdminNewOrder(ctx context.Context, order model.Order, user model.User) error {
	text := fmt.Sprintf(
		"🆕 Новый заказ #%d\n👤 От: %s\n📚 Тип: %s\n📝 Предмет: %s\n📊 Объём: %s\n"+
			"⏰ Дедлайн: %s\n💰 Базовая цена: %.0f ₽\n📞 Контакты: %s\n💬 Комментарий: %s",
		order.ID, user.FirstName, WorkTypeLabel(order.WorkType), order.Subject, order.Volume,
		order.Deadline.Format(deadlineLayout), order.Price, order.ContactInfo, orEmptyMark(order.Comment),
	)
	keyboard := Keyboard{
		{
			{Label: "✅ Принять", Action: action(PrefixAdminAccept, order.ID)},
			{Label: "❌ Отклонить", Action: action(PrefixAdminReject, order.ID)},
		},
	}

	if order.FilePath != "" {
		if err := b.notify.SendFile(ctx, b.cfg.AdminID, order.FilePath, text, keyboard); err != nil {
			return &DeliveryError{Recipient: b.cfg.AdminID, Err: err}
		}
		return nil
	}
	if err := b.notify.SendText(ctx, b.cfg.AdminID, text, keyboard); err != nil {
		return &DeliveryError{Recipient: b.cfg.AdminID, Err: err}
	}
	return nil
}

func orEmptyMark(s string) string {
	if s == "" {
		return "Нет"
	}
	return s
}
