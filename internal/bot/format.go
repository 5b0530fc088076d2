package bot

import (
	"fmt"
	"strings"

	"github.com/m3rciful/servicebot/internal/orders"
	"github.com/m3rciful/servicebot/internal/telegram/format"
)

func orderCard(o orders.Order) string {
	return fmt.Sprintf(
		"Имя: %s\nАдрес: %s\nТелефон: %s\nПричина обращения: %s\nСтатус: %s",
		o.FullName, o.Address, o.PhoneNumber, o.Reason, o.Status.Label(),
	)
}

func orderCreatedText(o orders.Order) string {
	return fmt.Sprintf("Заявка #%d успешно оформлена!\n%s", o.ID, orderCard(o))
}

func orderUpdatedText(o orders.Order) string {
	return fmt.Sprintf("Заявка #%d успешно обновлена!\n%s", o.ID, orderCard(o))
}

func orderStatusText(o orders.Order) string {
	return fmt.Sprintf("Заявка #%d\n%s", o.ID, orderCard(o))
}

func statusChangedText(o orders.Order) string {
	return fmt.Sprintf("Статус заявки #%d изменен на '%s'.\n%s", o.ID, o.Status.Label(), orderCard(o))
}

func ordersListText(list []orders.Order) string {
	if len(list) == 0 {
		return textNoOrders
	}
	var b strings.Builder
	b.WriteString("Список новых заявок:\n\n")
	for _, o := range list {
		fmt.Fprintf(&b,
			"ID заявки: %d\nФИО: %s\nАдрес: %s\nТелефон: %s\nПричина: %s\nСтатус: %s\n\n",
			o.ID, o.FullName, o.Address, o.PhoneNumber, o.Reason, o.Status.Label(),
		)
	}
	return strings.TrimRight(b.String(), "\n")
}

// statsText renders aggregate numbers as MarkdownV2.
func statsText(st orders.Stats) string {
	avg := fmt.Sprintf("%.0f сек", st.AvgProcessingSeconds)
	lines := []string{
		"📊 *Аналитика заявок*",
		"",
		fmt.Sprintf("Всего заявок: %d", st.Total),
		fmt.Sprintf("Ожидают обработки: %d", st.Pending),
		fmt.Sprintf("В работе: %d", st.InProgress),
		fmt.Sprintf("Обработано: %d", st.Processed),
		fmt.Sprintf("Среднее время обработки: %s", avg),
	}
	for i, l := range lines {
		if strings.HasPrefix(l, "📊") || l == "" {
			continue
		}
		lines[i] = format.EscapeMDV2(l)
	}
	return strings.Join(lines, "\n")
}
