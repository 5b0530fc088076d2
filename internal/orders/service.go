package orders

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/m3rciful/servicebot/internal/logger"
	"log/slog"
)

var (
	// ErrNotFound is returned when no order with the requested id exists.
	ErrNotFound = errors.New("orders: order not found")
	// ErrBadField is returned when a field outside the editable set is updated.
	ErrBadField = errors.New("orders: field is not editable")
)

// Notifier delivers lifecycle notifications. The engine decides what to say
// and to whom; delivery mechanics live behind this interface.
type Notifier interface {
	NotifyAdmins(ctx context.Context, text string)
	NotifyUser(ctx context.Context, userID int64, text string)
}

// Service is the order lifecycle engine. Every mutation runs the full
// load-mutate-save cycle under a single writer mutex: the store holds one
// snapshot, so per-order locking would still lose concurrent writes.
type Service struct {
	store    Store
	notifier Notifier

	mu sync.Mutex
	// lastID is a high-water mark so ids are never reissued, even when the
	// newest order is cancelled before another is created.
	lastID int

	now func() time.Time
}

// NewService builds the lifecycle engine on the given store and notifier.
func NewService(store Store, notifier Notifier) *Service {
	return &Service{
		store:    store,
		notifier: notifier,
		now:      time.Now,
	}
}

// CreateParams carries the validated draft of a new order.
type CreateParams struct {
	FullName    string
	Address     string
	PhoneNumber string
	Reason      string
	UserID      int64
}

// Create persists a new pending order and notifies all administrators.
// History starts empty: the first entry is appended by the first status change.
func (s *Service) Create(ctx context.Context, p CreateParams) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.store.LoadAll(ctx)
	if err != nil {
		return Order{}, fmt.Errorf("load orders: %w", err)
	}

	id := NextID(list)
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id

	order := Order{
		ID:          id,
		FullName:    p.FullName,
		Address:     p.Address,
		PhoneNumber: p.PhoneNumber,
		Reason:      p.Reason,
		Status:      StatusPending,
		UserID:      p.UserID,
		CreatedAt:   s.now(),
		History:     []HistoryEntry{},
		Feedback:    []FeedbackEntry{},
	}
	list = append(list, order)

	if err := s.store.SaveAll(ctx, list); err != nil {
		return Order{}, fmt.Errorf("save orders: %w", err)
	}

	logger.Info(ctx, "orders", "order.created",
		slog.String("status", "ok"),
		slog.Int("order_id", order.ID),
		slog.Int64("user_id", order.UserID),
	)
	if s.notifier != nil {
		s.notifier.NotifyAdmins(ctx, "Новая заявка #"+Summary(order))
	}
	return order, nil
}

// UpdateField changes one editable field of an existing order.
// On an unknown id or a non-editable field nothing is written back.
func (s *Service) UpdateField(ctx context.Context, id int, field, value string) (Order, error) {
	if !EditableField(field) {
		return Order{}, fmt.Errorf("%w: %s", ErrBadField, field)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.store.LoadAll(ctx)
	if err != nil {
		return Order{}, fmt.Errorf("load orders: %w", err)
	}

	idx := indexOf(list, id)
	if idx < 0 {
		return Order{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}

	switch field {
	case FieldFullName:
		list[idx].FullName = value
	case FieldAddress:
		list[idx].Address = value
	case FieldPhoneNumber:
		list[idx].PhoneNumber = value
	case FieldReason:
		list[idx].Reason = value
	}

	if err := s.store.SaveAll(ctx, list); err != nil {
		return Order{}, fmt.Errorf("save orders: %w", err)
	}
	logger.Info(ctx, "orders", "order.updated",
		slog.String("status", "ok"),
		slog.Int("order_id", id),
		slog.String("field", field),
	)
	return list[idx], nil
}

// ChangeStatus sets a new status, appends a history entry, and notifies the
// owning user. Resubmitting the same status appends another entry; the
// history is an audit trail, not a deduplicated set.
func (s *Service) ChangeStatus(ctx context.Context, id int, status Status) (Order, error) {
	if !status.Valid() {
		return Order{}, fmt.Errorf("orders: invalid status %q", status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.store.LoadAll(ctx)
	if err != nil {
		return Order{}, fmt.Errorf("load orders: %w", err)
	}

	idx := indexOf(list, id)
	if idx < 0 {
		return Order{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}

	list[idx].Status = status
	list[idx].History = append(list[idx].History, HistoryEntry{
		Timestamp: s.now(),
		Status:    status,
	})

	if err := s.store.SaveAll(ctx, list); err != nil {
		return Order{}, fmt.Errorf("save orders: %w", err)
	}

	order := list[idx]
	logger.Info(ctx, "orders", "order.status",
		slog.String("status", "ok"),
		slog.Int("order_id", id),
		slog.String("outcome", "ok"),
		slog.String("payload", string(status)),
	)
	if s.notifier != nil {
		s.notifier.NotifyUser(ctx, order.UserID,
			fmt.Sprintf("Статус Вашей заявки #%d изменен на '%s'.", order.ID, status.Label()))
	}
	return order, nil
}

// Cancel removes the order from the store entirely and notifies administrators.
func (s *Service) Cancel(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load orders: %w", err)
	}

	idx := indexOf(list, id)
	if idx < 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	list = append(list[:idx], list[idx+1:]...)

	if err := s.store.SaveAll(ctx, list); err != nil {
		return fmt.Errorf("save orders: %w", err)
	}
	logger.Info(ctx, "orders", "order.cancelled",
		slog.String("status", "ok"),
		slog.Int("order_id", id),
	)
	if s.notifier != nil {
		s.notifier.NotifyAdmins(ctx, fmt.Sprintf("Заявка #%d отменена пользователем.", id))
	}
	return nil
}

// AddFeedback appends a feedback entry and notifies administrators.
func (s *Service) AddFeedback(ctx context.Context, id int, text string) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.store.LoadAll(ctx)
	if err != nil {
		return Order{}, fmt.Errorf("load orders: %w", err)
	}

	idx := indexOf(list, id)
	if idx < 0 {
		return Order{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}

	list[idx].Feedback = append(list[idx].Feedback, FeedbackEntry{
		Timestamp: s.now(),
		Feedback:  text,
	})

	if err := s.store.SaveAll(ctx, list); err != nil {
		return Order{}, fmt.Errorf("save orders: %w", err)
	}

	order := list[idx]
	logger.Info(ctx, "orders", "order.feedback",
		slog.String("status", "ok"),
		slog.Int("order_id", id),
	)
	if s.notifier != nil {
		s.notifier.NotifyAdmins(ctx,
			fmt.Sprintf("Отзыв по заявке #%d:\n%s", order.ID, text))
	}
	return order, nil
}

// GetByID returns the order with the given id.
func (s *Service) GetByID(ctx context.Context, id int) (Order, error) {
	list, err := s.store.LoadAll(ctx)
	if err != nil {
		return Order{}, fmt.Errorf("load orders: %w", err)
	}
	idx := indexOf(list, id)
	if idx < 0 {
		return Order{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return list[idx], nil
}

// Exists reports whether an order with the given id is in the current snapshot.
func (s *Service) Exists(ctx context.Context, id int) bool {
	list, err := s.store.LoadAll(ctx)
	if err != nil {
		return false
	}
	return ContainsID(list, id)
}

// ListAll returns the full snapshot.
func (s *Service) ListAll(ctx context.Context) ([]Order, error) {
	return s.store.LoadAll(ctx)
}

// ListActive returns orders still pending or in progress.
func (s *Service) ListActive(ctx context.Context) ([]Order, error) {
	list, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]Order, 0, len(list))
	for _, o := range list {
		if o.Active() {
			active = append(active, o)
		}
	}
	return active, nil
}

// Stats aggregates order counts and the average processing time.
type Stats struct {
	Total                int
	Processed            int
	InProgress           int
	Pending              int
	AvgProcessingSeconds float64
}

// ComputeStats builds aggregate statistics over the current snapshot.
// The average covers processed orders with at least two history entries,
// measuring first transition to last; with none of those it stays zero.
func (s *Service) ComputeStats(ctx context.Context) (Stats, error) {
	list, err := s.store.LoadAll(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("load orders: %w", err)
	}

	var st Stats
	st.Total = len(list)

	var processedSeconds float64
	var processedSamples int
	for _, o := range list {
		switch o.Status {
		case StatusProcessed:
			st.Processed++
		case StatusInProgress:
			st.InProgress++
		case StatusPending:
			st.Pending++
		}
		if o.Status == StatusProcessed && len(o.History) >= 2 {
			first := o.History[0].Timestamp
			last := o.History[len(o.History)-1].Timestamp
			processedSeconds += last.Sub(first).Seconds()
			processedSamples++
		}
	}
	if processedSamples > 0 {
		st.AvgProcessingSeconds = processedSeconds / float64(processedSamples)
	}
	return st, nil
}

func indexOf(list []Order, id int) int {
	for i, o := range list {
		if o.ID == id {
			return i
		}
	}
	return -1
}

// Summary renders the standard multi-line order card used in messages.
func Summary(o Order) string {
	return fmt.Sprintf(
		"%d:\nИмя: %s\nАдрес: %s\nТелефон: %s\nПричина обращения: %s\nСтатус: %s",
		o.ID, o.FullName, o.Address, o.PhoneNumber, o.Reason, o.Status.Label(),
	)
}
