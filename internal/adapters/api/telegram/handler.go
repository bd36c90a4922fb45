package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/playmixer/studybot/internal/adapters/store/errstore"
	"github.com/playmixer/studybot/internal/adapters/store/model"
	"github.com/playmixer/studybot/internal/core/studybot"
)

const (
	textGreeting = "👋 Добро пожаловать в StudyBot!\n\n" +
		"Мы выполняем учебные работы любой сложности: курсовые, дипломы, " +
		"контрольные, эссе и многое другое.\n\nВыберите действие:"
	textHelp = "ℹ️ Как сделать заказ:\n\n" +
		"1. Нажмите «Создать заказ» и ответьте на вопросы бота.\n" +
		"2. Администратор рассмотрит заказ и назначит цену.\n" +
		"3. Оплатите заказ и отправьте подтверждение оплаты.\n\n" +
		"Команды:\n/start — главное меню\n/cancel — отменить текущее действие\n/help — эта справка"
	textNoAccess      = "⛔ У вас нет доступа к админ-панели."
	textCancelled     = "Действие отменено."
	textInternalError = "😔 Произошла ошибка. Попробуйте ещё раз."
	textUnknown       = "Я вас не понял. Нажмите /start, чтобы открыть меню."

	textAskSubject  = "📝 Укажите предмет и тему работы:"
	textAskVolume   = "📊 Укажите объём работы (количество страниц или заданий):"
	textAskDeadline = "⏰ Укажите срок сдачи в формате ДД.ММ.ГГГГ:"
	textAskFile     = "📎 Прикрепите файл с заданием (pdf, doc, docx) или фото:"
	textAskComment  = "💬 Добавьте комментарий к заказу или отправьте «-», если его нет:"
	textAskContact  = "📞 Оставьте контакт для связи (телефон или @username):"

	textSubjectShort    = "Тема слишком короткая, нужно минимум 3 символа. Попробуйте ещё раз:"
	textVolumeInvalid   = "Объём должен быть положительным числом. Попробуйте ещё раз:"
	textDeadlineFormat  = "Не понял дату. Укажите срок в формате ДД.ММ.ГГГГ:"
	textDeadlinePast    = "Срок уже прошёл. Укажите дату в будущем:"
	textDeadlineTooFar  = "Срок не может быть больше года. Укажите более близкую дату:"
	textAttachmentType  = "Такой файл не подойдёт. Прикрепите pdf, doc, docx или фото:"
	textNeedAttachment  = "Пожалуйста, прикрепите файл или фото с заданием:"
	textNeedProof       = "Пожалуйста, отправьте фото или файл с подтверждением оплаты:"
	textChooseWorkType  = "Пожалуйста, выберите тип работы кнопкой ниже."
	textProofAccepted   = "✅ Подтверждение оплаты получено!\n\nОжидайте, администратор проверит оплату."
	textSupportPrompt   = "💬 Напишите ваш вопрос, и администратор ответит вам здесь:"
	textReviewPrompt    = "⭐ Напишите свой отзыв о нашей работе:"
	textReviewThanks    = "Спасибо за отзыв! ❤️"
	textSupportAccepted = "✅ Сообщение отправлено. Администратор ответит вам здесь."
	textNoOrders        = "У вас пока нет заказов."
	textNotYourOrder    = "Это не ваш заказ."
	textOrderNotPayable = "Этот заказ сейчас нельзя оплатить."

	textAdminPanel      = "🔧 Админ-панель. Выберите раздел:"
	textNoPendingOrders = "Новых заказов нет."
	textNoReviews       = "Отзывов пока нет."
	textNoMessages      = "Сообщений пока нет."
	textAskPrice        = "Введите цену для заказа #%d (в рублях):"
	textPriceInvalid    = "Цена должна быть положительным числом. Попробуйте ещё раз:"
	textAskBroadcast    = "📢 Введите текст рассылки:"
	textAskReviewReply  = "Введите ответ на отзыв:"
	textAskMessageReply = "Введите ответ на сообщение:"
	textReplySent       = "✅ Ответ отправлен."
	textDeliveryFailed  = "⚠️ Не удалось отправить уведомление пользователю %d. Действие не выполнено, попробуйте позже."
	textDeliveredAnyway = "⚠️ Статус обновлён, но уведомить пользователя %d не удалось. Свяжитесь с ним вручную."
)

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	if b.service.IsAdmin(msg.From.ID) {
		if action, _ := b.service.AdminAction(); action != studybot.AdminIdle {
			b.handleAdminInput(ctx, msg)
			return
		}
	}

	if state, ok := b.service.WizardState(chatID); ok {
		b.handleWizardInput(ctx, msg, state)
		return
	}

	if _, ok := b.service.PaymentPending(chatID); ok {
		b.handlePaymentProof(ctx, msg)
		return
	}

	switch b.service.ChatMode(chatID) {
	case studybot.ModeReview:
		b.handleReview(ctx, msg)
	case studybot.ModeSupport:
		b.handleSupport(ctx, msg)
	default:
		// Free text outside any flow is treated as a question for the
		// administrator, same as the support flow.
		if msg.Text != "" && !b.service.IsAdmin(msg.From.ID) {
			b.handleSupport(ctx, msg)
			return
		}
		b.send(chatID, textUnknown)
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		b.resetChat(chatID, msg.From.ID)
		b.sendKeyboard(chatID, textGreeting, mainKeyboard())
	case "help":
		b.send(chatID, textHelp)
	case "admin":
		if !b.service.IsAdmin(msg.From.ID) {
			b.send(chatID, textNoAccess)
			return
		}
		b.sendKeyboard(chatID, textAdminPanel, adminKeyboard())
	case "cancel":
		b.resetChat(chatID, msg.From.ID)
		b.sendKeyboard(chatID, textCancelled, mainKeyboard())
	default:
		b.send(chatID, textUnknown)
	}
}

func (b *Bot) resetChat(chatID, telegramID int64) {
	b.service.CancelWizard(chatID)
	b.service.CancelPayment(chatID)
	b.service.ClearMode(chatID)
	if b.service.IsAdmin(telegramID) {
		b.service.ResetAdminAction()
	}
}

func (b *Bot) handleWizardInput(ctx context.Context, msg *tgbotapi.Message, state studybot.WizardState) {
	chatID := msg.Chat.ID

	switch state {
	case studybot.StateWorkType:
		b.sendKeyboard(chatID, textChooseWorkType, workTypeKeyboard())
	case studybot.StateSubject:
		if err := b.service.SetSubject(chatID, msg.Text); err != nil {
			b.send(chatID, textSubjectShort)
			return
		}
		b.sendKeyboard(chatID, textAskVolume, cancelKeyboard())
	case studybot.StateVolume:
		if err := b.service.SetVolume(chatID, msg.Text); err != nil {
			b.send(chatID, textVolumeInvalid)
			return
		}
		b.sendKeyboard(chatID, textAskDeadline, cancelKeyboard())
	case studybot.StateDeadline:
		if err := b.service.SetDeadline(chatID, msg.Text); err != nil {
			switch {
			case errors.Is(err, studybot.ErrDeadlinePast):
				b.send(chatID, textDeadlinePast)
			case errors.Is(err, studybot.ErrDeadlineTooFar):
				b.send(chatID, textDeadlineTooFar)
			default:
				b.send(chatID, textDeadlineFormat)
			}
			return
		}
		b.sendKeyboard(chatID, textAskFile, cancelKeyboard())
	case studybot.StateAttachment:
		name, fileID := attachment(msg)
		if fileID == "" {
			b.send(chatID, textNeedAttachment)
			return
		}
		data, err := b.download(fileID)
		if err != nil {
			b.log.Error("failed download attachment", zap.Int64("chatID", chatID), zap.Error(err))
			b.send(chatID, textInternalError)
			return
		}
		if err := b.service.SetAttachment(chatID, name, data); err != nil {
			if errors.Is(err, studybot.ErrAttachmentType) {
				b.send(chatID, textAttachmentType)
				return
			}
			b.log.Error("failed store attachment", zap.Int64("chatID", chatID), zap.Error(err))
			b.send(chatID, textInternalError)
			return
		}
		b.sendKeyboard(chatID, textAskComment, cancelKeyboard())
	case studybot.StateComment:
		if err := b.service.SetComment(chatID, msg.Text); err != nil {
			b.send(chatID, textInternalError)
			return
		}
		b.sendKeyboard(chatID, textAskContact, cancelKeyboard())
	case studybot.StateContact:
		order, err := b.service.FinalizeOrder(ctx, chatID, msg.Text, tgUser(msg.From))
		if err != nil {
			b.log.Error("failed finalize order", zap.Int64("chatID", chatID), zap.Error(err))
			b.send(chatID, textInternalError)
			return
		}
		text := fmt.Sprintf(
			"✅ Заказ #%d создан!\n\nАдминистратор рассмотрит его и сообщит цену. Уведомление придёт сюда.",
			order.ID,
		)
		b.sendKeyboard(chatID, text, mainKeyboard())
	}
}

func (b *Bot) handlePaymentProof(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	name, fileID := attachment(msg)
	if fileID == "" {
		b.send(chatID, textNeedProof)
		return
	}
	data, err := b.download(fileID)
	if err != nil {
		b.log.Error("failed download proof", zap.Int64("chatID", chatID), zap.Error(err))
		b.send(chatID, textInternalError)
		return
	}

	if _, err := b.service.AttachPaymentProof(ctx, chatID, tgUser(msg.From), name, data); err != nil {
		if errors.Is(err, studybot.ErrNotOrderOwner) {
			b.send(chatID, textNotYourOrder)
			return
		}
		b.log.Error("failed attach payment proof", zap.Int64("chatID", chatID), zap.Error(err))
		b.send(chatID, textInternalError)
		return
	}

	b.sendKeyboard(chatID, textProofAccepted, mainKeyboard())
}

func (b *Bot) handleSupport(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	if err := b.service.SupportMessage(ctx, chatID, tgUser(msg.From), msg.Text); err != nil {
		b.log.Error("failed save support message", zap.Int64("chatID", chatID), zap.Error(err))
		b.send(chatID, textInternalError)
		return
	}
	b.sendKeyboard(chatID, textSupportAccepted, mainKeyboard())
}

func (b *Bot) handleReview(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	if err := b.service.LeaveReview(ctx, chatID, tgUser(msg.From), msg.Text); err != nil {
		b.log.Error("failed save review", zap.Int64("chatID", chatID), zap.Error(err))
		b.send(chatID, textInternalError)
		return
	}
	b.sendKeyboard(chatID, textReviewThanks, mainKeyboard())
}

func (b *Bot) handleAdminInput(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	action, _ := b.service.AdminAction()

	switch action {
	case studybot.AdminAwaitingPrice:
		order, err := b.service.SetOrderPrice(ctx, msg.Text)
		if err != nil {
			if errors.Is(err, studybot.ErrPriceNotNumber) || errors.Is(err, studybot.ErrPriceNotPositive) {
				b.send(chatID, textPriceInvalid)
				return
			}
			var dErr *studybot.DeliveryError
			if errors.As(err, &dErr) {
				b.send(chatID, fmt.Sprintf(textDeliveryFailed, dErr.Recipient))
				return
			}
			b.log.Error("failed set order price", zap.Error(err))
			b.send(chatID, textInternalError)
			return
		}
		b.send(chatID, fmt.Sprintf("✅ Цена %.0f ₽ назначена заказу #%d, клиент уведомлен.", order.Price, order.ID))
	case studybot.AdminAwaitingBroadcast:
		report, err := b.service.Broadcast(ctx, msg.Text)
		if err != nil {
			b.log.Error("failed broadcast", zap.Error(err))
			b.send(chatID, textInternalError)
			return
		}
		b.send(chatID, fmt.Sprintf("📢 Рассылка завершена: доставлено %d, не доставлено %d.", report.Sent, report.Failed))
	case studybot.AdminAwaitingReviewReply:
		if err := b.service.ReplyToReview(ctx, msg.Text); err != nil {
			b.reportAdminError(chatID, err)
			return
		}
		b.send(chatID, textReplySent)
	case studybot.AdminAwaitingMessageReply:
		if err := b.service.ReplyToMessage(ctx, msg.Text); err != nil {
			b.reportAdminError(chatID, err)
			return
		}
		b.send(chatID, textReplySent)
	}
}

func (b *Bot) reportAdminError(chatID int64, err error) {
	var dErr *studybot.DeliveryError
	if errors.As(err, &dErr) {
		b.send(chatID, fmt.Sprintf(textDeliveredAnyway, dErr.Recipient))
		return
	}
	b.log.Error("admin action failed", zap.Error(err))
	b.send(chatID, textInternalError)
}

func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		b.log.Warn("failed answer callback", zap.Error(err))
	}
	if cq.Message == nil {
		return
	}

	chatID := cq.Message.Chat.ID
	data := cq.Data

	if strings.HasPrefix(data, "admin_") {
		if !b.service.IsAdmin(cq.From.ID) {
			b.send(chatID, textNoAccess)
			return
		}
		b.handleAdminCallback(ctx, chatID, data)
		return
	}

	switch {
	case data == cbCreateOrder:
		b.service.StartWizard(chatID)
		b.sendKeyboard(chatID, "📚 Выберите тип работы:", workTypeKeyboard())
	case strings.HasPrefix(data, cbWorkTypePrefix):
		code := strings.TrimPrefix(data, cbWorkTypePrefix)
		if err := b.service.SetWorkType(chatID, code); err != nil {
			if errors.Is(err, studybot.ErrNoSession) {
				b.sendKeyboard(chatID, textUnknown, mainKeyboard())
				return
			}
			b.sendKeyboard(chatID, textChooseWorkType, workTypeKeyboard())
			return
		}
		b.sendKeyboard(chatID, textAskSubject, cancelKeyboard())
	case data == cbPriceList:
		b.sendKeyboard(chatID, priceListText(), backKeyboard())
	case data == cbMyOrders:
		b.sendUserOrders(ctx, chatID, cq.From.ID)
	case data == cbSupport:
		b.service.AwaitSupport(chatID)
		b.sendKeyboard(chatID, textSupportPrompt, cancelKeyboard())
	case data == cbReviews:
		b.sendRecentReviews(ctx, chatID)
	case data == cbBack:
		b.sendKeyboard(chatID, textGreeting, mainKeyboard())
	case data == cbCancel:
		b.resetChat(chatID, cq.From.ID)
		b.sendKeyboard(chatID, textCancelled, mainKeyboard())
	default:
		if orderID, ok := studybot.ParseActionID(data, studybot.PrefixPay); ok {
			b.startPayment(ctx, chatID, tgUser(cq.From), orderID)
			return
		}
		b.log.Warn("unknown callback", zap.String("data", data))
	}
}

func (b *Bot) startPayment(ctx context.Context, chatID int64, from studybot.TgUser, orderID uint) {
	order, err := b.service.StartPayment(ctx, chatID, from, orderID)
	if err != nil {
		switch {
		case errors.Is(err, studybot.ErrNotOrderOwner):
			b.send(chatID, textNotYourOrder)
		case errors.Is(err, studybot.ErrOrderNotPayable):
			b.send(chatID, textOrderNotPayable)
		default:
			b.log.Error("failed start payment", zap.Uint("orderID", orderID), zap.Error(err))
			b.send(chatID, textInternalError)
		}
		return
	}

	text := fmt.Sprintf(
		"💳 Оплата заказа #%d\n\nСумма: %.0f ₽\nКарта для перевода:\n`%s`\n\n"+
			"После оплаты отправьте сюда фото или скриншот чека.",
		order.ID, order.Price, b.service.PaymentCard(),
	)
	b.sendKeyboard(chatID, text, cancelKeyboard())
}

func (b *Bot) sendUserOrders(ctx context.Context, chatID, telegramID int64) {
	orders, err := b.service.UserOrders(ctx, telegramID)
	if err != nil {
		if errors.Is(err, errstore.ErrNotFoundData) {
			b.sendKeyboard(chatID, textNoOrders, backKeyboard())
			return
		}
		b.log.Error("failed get user orders", zap.Int64("telegramID", telegramID), zap.Error(err))
		b.send(chatID, textInternalError)
		return
	}
	if len(orders) == 0 {
		b.sendKeyboard(chatID, textNoOrders, backKeyboard())
		return
	}

	for _, order := range orders {
		text := fmt.Sprintf(
			"%s Заказ #%d\n📚 %s — %s\n⏰ до %s\n💰 %.0f ₽\nСтатус: %s",
			statusEmoji[order.Status], order.ID,
			studybot.WorkTypeLabel(order.WorkType), order.Subject,
			order.Deadline.Format("02.01.2006"), order.Price,
			statusLabel[order.Status],
		)
		if order.Status == model.OrderStatePending && order.Price > 0 {
			b.sendKeyboard(chatID, text, tgbotapi.NewInlineKeyboardMarkup(
				tgbotapi.NewInlineKeyboardRow(
					tgbotapi.NewInlineKeyboardButtonData("💳 Оплатить", studybot.PrefixPay+fmt.Sprint(order.ID)),
				),
			))
			continue
		}
		b.send(chatID, text)
	}
	b.sendKeyboard(chatID, "Главное меню:", mainKeyboard())
}

func (b *Bot) sendRecentReviews(ctx context.Context, chatID int64) {
	reviews, err := b.service.RecentReviews(ctx)
	if err != nil {
		b.log.Error("failed get reviews", zap.Error(err))
		b.send(chatID, textInternalError)
		return
	}

	if len(reviews) == 0 {
		b.send(chatID, textNoReviews)
	} else {
		sb := strings.Builder{}
		sb.WriteString("⭐ Последние отзывы:\n\n")
		for _, r := range reviews {
			sb.WriteString(fmt.Sprintf("👤 %s:\n%s\n", r.User.FirstName, r.Review.Text))
			if r.Review.AdminResponse != "" {
				sb.WriteString(fmt.Sprintf("↳ Ответ: %s\n", r.Review.AdminResponse))
			}
			sb.WriteString("\n")
		}
		b.send(chatID, sb.String())
	}

	b.service.AwaitReview(chatID)
	b.sendKeyboard(chatID, textReviewPrompt, cancelKeyboard())
}

func (b *Bot) handleAdminCallback(ctx context.Context, chatID int64, data string) {
	switch data {
	case cbAdminNewOrders:
		b.sendPendingOrders(ctx, chatID)
		return
	case cbAdminStats:
		b.sendStats(ctx, chatID)
		return
	case cbAdminBroadcast:
		b.service.StartBroadcast()
		b.sendKeyboard(chatID, textAskBroadcast, cancelKeyboard())
		return
	case cbAdminReviews:
		b.sendAdminReviews(ctx, chatID)
		return
	case cbAdminMessages:
		b.sendAdminMessages(ctx, chatID)
		return
	}

	if orderID, ok := studybot.ParseActionID(data, studybot.PrefixAdminConfirmPayment); ok {
		if err := b.service.ConfirmPayment(ctx, orderID); err != nil {
			b.reportAdminError(chatID, err)
			return
		}
		b.send(chatID, fmt.Sprintf("✅ Оплата заказа #%d подтверждена, клиент уведомлен.", orderID))
		return
	}
	if orderID, ok := studybot.ParseActionID(data, studybot.PrefixAdminRejectPayment); ok {
		if err := b.service.RejectPayment(ctx, orderID); err != nil {
			b.reportAdminError(chatID, err)
			return
		}
		b.send(chatID, fmt.Sprintf("❌ Оплата заказа #%d отклонена, клиент уведомлен.", orderID))
		return
	}
	if orderID, ok := studybot.ParseActionID(data, studybot.PrefixAdminAccept); ok {
		if err := b.service.AcceptOrder(ctx, orderID); err != nil {
			b.log.Error("failed accept order", zap.Uint("orderID", orderID), zap.Error(err))
			b.send(chatID, textInternalError)
			return
		}
		b.send(chatID, fmt.Sprintf(textAskPrice, orderID))
		return
	}
	if orderID, ok := studybot.ParseActionID(data, studybot.PrefixAdminReject); ok {
		if err := b.service.RejectOrder(ctx, orderID); err != nil {
			var dErr *studybot.DeliveryError
			if errors.As(err, &dErr) {
				b.send(chatID, fmt.Sprintf(textDeliveryFailed, dErr.Recipient))
				return
			}
			b.log.Error("failed reject order", zap.Uint("orderID", orderID), zap.Error(err))
			b.send(chatID, textInternalError)
			return
		}
		b.send(chatID, fmt.Sprintf("❌ Заказ #%d отклонен, клиент уведомлен.", orderID))
		return
	}
	if reviewID, ok := studybot.ParseActionID(data, studybot.PrefixReviewReply); ok {
		b.service.StartReviewReply(reviewID)
		b.send(chatID, textAskReviewReply)
		return
	}
	if messageID, ok := studybot.ParseActionID(data, studybot.PrefixMessageReply); ok {
		b.service.StartMessageReply(messageID)
		b.send(chatID, textAskMessageReply)
		return
	}

	b.log.Warn("unknown admin callback", zap.String("data", data))
}

func (b *Bot) sendPendingOrders(ctx context.Context, chatID int64) {
	orders, err := b.service.PendingOrders(ctx)
	if err != nil {
		b.log.Error("failed get pending orders", zap.Error(err))
		b.send(chatID, textInternalError)
		return
	}
	if len(orders) == 0 {
		b.send(chatID, textNoPendingOrders)
		return
	}

	for _, d := range orders {
		text := fmt.Sprintf(
			"⏳ Заказ #%d\n👤 %s (@%s)\n📚 %s — %s\n📊 Объём: %s\n⏰ до %s\n💰 %.0f ₽\n📞 %s",
			d.Order.ID, d.User.FirstName, d.User.Username,
			studybot.WorkTypeLabel(d.Order.WorkType), d.Order.Subject, d.Order.Volume,
			d.Order.Deadline.Format("02.01.2006"), d.Order.Price, d.Order.ContactInfo,
		)
		b.sendKeyboard(chatID, text, tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("✅ Принять", studybot.PrefixAdminAccept+fmt.Sprint(d.Order.ID)),
				tgbotapi.NewInlineKeyboardButtonData("❌ Отклонить", studybot.PrefixAdminReject+fmt.Sprint(d.Order.ID)),
			),
		))
	}
}

func (b *Bot) sendStats(ctx context.Context, chatID int64) {
	stats, err := b.service.GetStats(ctx)
	if err != nil {
		b.log.Error("failed get stats", zap.Error(err))
		b.send(chatID, textInternalError)
		return
	}

	sb := strings.Builder{}
	sb.WriteString("📊 Статистика\n\n")
	sb.WriteString(fmt.Sprintf("👥 Пользователей: %d\n", stats.Users))
	sb.WriteString(fmt.Sprintf("📦 Заказов: %d\n", stats.Orders))
	for _, status := range []model.OrderStatus{
		model.OrderStatePending,
		model.OrderStatePaid,
		model.OrderStateInProgress,
		model.OrderStateCompleted,
		model.OrderStateCancelled,
	} {
		if count, ok := stats.ByStatus[status]; ok {
			sb.WriteString(fmt.Sprintf("  %s: %d\n", statusLabel[status], count))
		}
	}
	sb.WriteString(fmt.Sprintf("💰 Выручка: %.0f ₽", stats.Revenue))
	b.send(chatID, sb.String())
}

func (b *Bot) sendAdminReviews(ctx context.Context, chatID int64) {
	reviews, err := b.service.Reviews(ctx)
	if err != nil {
		b.log.Error("failed get reviews", zap.Error(err))
		b.send(chatID, textInternalError)
		return
	}
	if len(reviews) == 0 {
		b.send(chatID, textNoReviews)
		return
	}

	for _, d := range reviews {
		text := fmt.Sprintf("⭐ Отзыв #%d от %s (@%s):\n\n%s", d.Review.ID, d.User.FirstName, d.User.Username, d.Review.Text)
		if d.Review.AdminResponse != "" {
			b.send(chatID, text+"\n\n↳ Ответ: "+d.Review.AdminResponse)
			continue
		}
		b.sendKeyboard(chatID, text, tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("💬 Ответить", studybot.PrefixReviewReply+fmt.Sprint(d.Review.ID)),
			),
		))
	}
}

func (b *Bot) sendAdminMessages(ctx context.Context, chatID int64) {
	messages, err := b.service.Messages(ctx)
	if err != nil {
		b.log.Error("failed get messages", zap.Error(err))
		b.send(chatID, textInternalError)
		return
	}
	if len(messages) == 0 {
		b.send(chatID, textNoMessages)
		return
	}

	for _, d := range messages {
		text := fmt.Sprintf("📨 Сообщение #%d от %s (@%s):\n\n%s", d.Message.ID, d.User.FirstName, d.User.Username, d.Message.Text)
		if d.Message.AdminResponse != "" {
			b.send(chatID, text+"\n\n↳ Ответ: "+d.Message.AdminResponse)
			continue
		}
		b.sendKeyboard(chatID, text, tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("💬 Ответить", studybot.PrefixMessageReply+fmt.Sprint(d.Message.ID)),
			),
		))
	}
}

func priceListText() string {
	sb := strings.Builder{}
	sb.WriteString("💰 Базовые цены:\n\n")
	for _, wt := range studybot.WorkTypes() {
		sb.WriteString(fmt.Sprintf("• %s — от %.0f ₽\n", wt.Label, wt.BasePrice))
	}
	sb.WriteString("\nИтоговая цена зависит от объёма и срока и назначается администратором.")
	return sb.String()
}

func attachment(msg *tgbotapi.Message) (name, fileID string) {
	if msg.Document != nil {
		return msg.Document.FileName, msg.Document.FileID
	}
	if len(msg.Photo) > 0 {
		photo := msg.Photo[len(msg.Photo)-1]
		return photo.FileUniqueID + ".jpg", photo.FileID
	}
	return "", ""
}
