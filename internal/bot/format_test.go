package bot

import (
	"strings"
	"testing"
	"time"

	"github.com/m3rciful/servicebot/internal/orders"
)

func sampleOrder() orders.Order {
	return orders.Order{
		ID:          3,
		FullName:    "Иван Иванов",
		Address:     "Москва, Тверская 1",
		PhoneNumber: "+79161234567",
		Reason:      "Не работает интернет",
		Status:      orders.StatusPending,
		UserID:      100,
		CreatedAt:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestOrderCreatedText(t *testing.T) {
	text := orderCreatedText(sampleOrder())
	for _, want := range []string{
		"Заявка #3 успешно оформлена!",
		"Имя: Иван Иванов",
		"Телефон: +79161234567",
		"Статус: Ожидает обработки",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("created text lacks %q:\n%s", want, text)
		}
	}
}

func TestOrdersListText(t *testing.T) {
	if got := ordersListText(nil); got != textNoOrders {
		t.Fatalf("empty list text = %q; want %q", got, textNoOrders)
	}

	text := ordersListText([]orders.Order{sampleOrder()})
	for _, want := range []string{"Список новых заявок:", "ID заявки: 3", "ФИО: Иван Иванов"} {
		if !strings.Contains(text, want) {
			t.Errorf("list text lacks %q:\n%s", want, text)
		}
	}
}

func TestStatsTextEscapesMarkdown(t *testing.T) {
	text := statsText(orders.Stats{Total: 4, Pending: 1, InProgress: 1, Processed: 2, AvgProcessingSeconds: 90})

	if !strings.Contains(text, "*Аналитика заявок*") {
		t.Fatalf("stats header missing:\n%s", text)
	}
	if !strings.Contains(text, `Всего заявок: 4`) {
		t.Fatalf("totals missing:\n%s", text)
	}
	if !strings.Contains(text, `90 сек`) {
		t.Fatalf("average missing:\n%s", text)
	}
}

func TestStatusChangedText(t *testing.T) {
	o := sampleOrder()
	o.Status = orders.StatusInProgress
	text := statusChangedText(o)
	if !strings.Contains(text, "Статус заявки #3 изменен на 'В работе'.") {
		t.Fatalf("status line missing:\n%s", text)
	}
}
