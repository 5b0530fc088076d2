package bot

import (
	"strconv"

	"github.com/m3rciful/servicebot/internal/telegram/keyboard"

	tele "gopkg.in/telebot.v4"
)

// Callback keys. Inline buttons carry these as their unique identifiers.
const (
	cbStartWork     = "start_work"
	cbAdminPanel    = "admin_panel"
	cbShowStats     = "show_stats"
	cbListNewOrders = "list_new_orders"
	cbAddAdmin      = "add_admin"
	cbRemoveAdmin   = "remove_admin"
	cbConfirmRemove = "confirm_remove_admin"

	cbServices      = "services"
	cbApplyRequest  = "apply_request"
	cbStatusRequest = "status_request"
	cbEditRequest   = "edit_request"
	cbCancelRequest = "cancel_request"
	cbLeaveFeedback = "leave_feedback"
	cbShowFAQ       = "show_faq"
	cbBackToMain    = "back_to_main"
	cbBackToStart   = "back_to_start"

	cbServiceComputers = "service_1"
	cbServiceMounting  = "service_2"
	cbServiceVisit     = "service_3"

	cbEditFullName = "edit_full_name"
	cbEditAddress  = "edit_address"
	cbEditPhone    = "edit_phone_number"
	cbEditReason   = "edit_reason"

	cbStatusProcessed  = "status_processed"
	cbStatusInProgress = "status_in_progress"
)

func startKeyboard(admin bool) *tele.ReplyMarkup {
	buttons := []keyboard.InlineBtn{
		{Text: "🚀 Старт", Unique: cbStartWork},
	}
	if admin {
		buttons = append(buttons,
			keyboard.InlineBtn{Text: "🔧 Панель администратора", Unique: cbAdminPanel},
			keyboard.InlineBtn{Text: "📊 Аналитика заявок", Unique: cbShowStats},
			keyboard.InlineBtn{Text: "Список новых заявок", Unique: cbListNewOrders},
			keyboard.InlineBtn{Text: "Добавить администратора", Unique: cbAddAdmin},
			keyboard.InlineBtn{Text: "Удалить администратора", Unique: cbRemoveAdmin},
		)
	}
	return keyboard.InlineButtons(buttons)
}

func mainMenuKeyboard(admin bool) *tele.ReplyMarkup {
	buttons := []keyboard.InlineBtn{
		{Text: "📋 Услуги", Unique: cbServices},
		{Text: "📝 Оформить заявку", Unique: cbApplyRequest},
		{Text: "📦 Статус заявки", Unique: cbStatusRequest},
		{Text: "✏️ Редактировать заявку", Unique: cbEditRequest},
		{Text: "❓ FAQ", Unique: cbShowFAQ},
	}
	if admin {
		buttons = append(buttons,
			keyboard.InlineBtn{Text: "📊 Аналитика заявок", Unique: cbShowStats},
			keyboard.InlineBtn{Text: "🔧 Панель администратора", Unique: cbAdminPanel},
		)
	}
	return keyboard.InlineButtons(buttons)
}

func servicesKeyboard() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "Компьютерная помощь", Unique: cbServiceComputers},
		{Text: "Предложения по монтажным работам", Unique: cbServiceMounting},
		{Text: "Заказ на выезд", Unique: cbServiceVisit},
		{Text: "Отменить заявку", Unique: cbCancelRequest},
		{Text: "Оставить отзыв", Unique: cbLeaveFeedback},
		{Text: "⬅️ Назад", Unique: cbBackToMain},
	})
}

func editFieldKeyboard() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "Редактировать имя", Unique: cbEditFullName},
		{Text: "Редактировать адрес", Unique: cbEditAddress},
		{Text: "Редактировать телефон", Unique: cbEditPhone},
		{Text: "Редактировать причину", Unique: cbEditReason},
		{Text: "⬅️ Назад", Unique: cbBackToMain},
	})
}

func adminStatusKeyboard() *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "Обработано", Unique: cbStatusProcessed},
		{Text: "В работе", Unique: cbStatusInProgress},
		{Text: "⬅️ Назад", Unique: cbBackToStart},
	})
}

func removeAdminKeyboard(adminIDs []int64) *tele.ReplyMarkup {
	buttons := make([]keyboard.InlineBtn, 0, len(adminIDs)+1)
	for _, id := range adminIDs {
		idStr := strconv.FormatInt(id, 10)
		buttons = append(buttons, keyboard.InlineBtn{
			Text:   "Удалить администратора " + idStr,
			Unique: cbConfirmRemove,
			Data:   idStr,
		})
	}
	buttons = append(buttons, keyboard.InlineBtn{Text: "⬅️ Назад", Unique: cbBackToStart})
	return keyboard.InlineButtons(buttons)
}
