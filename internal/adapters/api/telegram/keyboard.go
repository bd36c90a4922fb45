package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/playmixer/studybot/internal/adapters/store/model"
	"github.com/playmixer/studybot/internal/core/studybot"
)

// Menu callback payloads the adapter owns; admin/payment actions come from
// the core's action prefixes.
const (
	cbCreateOrder = "create_order"
	cbPriceList   = "price"
	cbMyOrders    = "orders"
	cbSupport     = "support"
	cbReviews     = "reviews"
	cbBack        = "back"
	cbCancel      = "cancel"

	cbWorkTypePrefix = "work_type_"

	cbAdminNewOrders = "admin_new_orders"
	cbAdminStats     = "admin_stats"
	cbAdminBroadcast = "admin_broadcast"
	cbAdminReviews   = "admin_reviews"
	cbAdminMessages  = "admin_messages"
)

var statusEmoji = map[model.OrderStatus]string{
	model.OrderStatePending:    "⏳",
	model.OrderStatePaid:       "💰",
	model.OrderStateInProgress: "🔄",
	model.OrderStateCompleted:  "✅",
	model.OrderStateCancelled:  "❌",
}

var statusLabel = map[model.OrderStatus]string{
	model.OrderStatePending:    "⏳ Ожидает оплаты",
	model.OrderStatePaid:       "💰 Оплачен",
	model.OrderStateInProgress: "⚙️ В работе",
	model.OrderStateCompleted:  "✅ Выполнен",
	model.OrderStateCancelled:  "❌ Отменен",
}

func markup(keyboard studybot.Keyboard) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(keyboard))
	for _, row := range keyboard {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, button := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(button.Label, button.Action))
		}
		rows = append(rows, buttons)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func mainKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("📝 Создать заказ", cbCreateOrder)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("💰 Цены", cbPriceList)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("📦 Мои заказы", cbMyOrders)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("💬 Поддержка", cbSupport)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("⭐ Отзывы", cbReviews)),
	)
}

func cancelKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", cbCancel)),
	)
}

func backKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("◀️ Назад", cbBack)),
	)
}

func adminKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("📥 Новые заказы", cbAdminNewOrders)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("📊 Статистика", cbAdminStats)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("📢 Рассылка", cbAdminBroadcast)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("⭐ Отзывы", cbAdminReviews)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("📨 Сообщения", cbAdminMessages)),
	)
}

func workTypeKeyboard() tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{}
	row := []tgbotapi.InlineKeyboardButton{}
	for _, wt := range studybot.WorkTypes() {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(wt.Label, cbWorkTypePrefix+wt.Code))
		if len(row) == 2 {
			rows = append(rows, row)
			row = []tgbotapi.InlineKeyboardButton{}
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", cbCancel)))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
