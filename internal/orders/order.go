// Package orders holds the order data model, the record stores, and the
// lifecycle engine that owns every mutation of an order.
package orders

import "time"

// Status is the lifecycle state of an order.
type Status string

const (
	// StatusPending is the initial status of every new order.
	StatusPending Status = "pending"
	// StatusInProgress marks an order an administrator has taken on.
	StatusInProgress Status = "in_progress"
	// StatusProcessed marks a completed order.
	StatusProcessed Status = "processed"
)

// Label returns the user-facing (Russian) name of the status.
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Ожидает обработки"
	case StatusInProgress:
		return "В работе"
	case StatusProcessed:
		return "Обработано"
	}
	return string(s)
}

// Valid reports whether the status belongs to the closed lifecycle set.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusProcessed:
		return true
	}
	return false
}

// HistoryEntry records a single status transition.
type HistoryEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Status    Status    `json:"status"`
}

// FeedbackEntry records one piece of user feedback on an order.
type FeedbackEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Feedback  string    `json:"feedback"`
}

// Order is a service request tracked through its lifecycle.
// JSON keys follow the persisted record layout of the orders file.
type Order struct {
	ID          int             `json:"id" db:"id"`
	FullName    string          `json:"full_name" db:"full_name"`
	Address     string          `json:"address" db:"address"`
	PhoneNumber string          `json:"phone_number" db:"phone_number"`
	Reason      string          `json:"reason" db:"reason"`
	Status      Status          `json:"status" db:"status"`
	UserID      int64           `json:"user_id" db:"user_id"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	History     []HistoryEntry  `json:"history"`
	Feedback    []FeedbackEntry `json:"feedback"`
}

// Active reports whether the order still needs administrator attention.
func (o Order) Active() bool {
	return o.Status == StatusPending || o.Status == StatusInProgress
}

// Field names of the editable order fields, matching the persisted keys.
const (
	FieldFullName    = "full_name"
	FieldAddress     = "address"
	FieldPhoneNumber = "phone_number"
	FieldReason      = "reason"
)

// EditableField reports whether the named field may be changed after creation.
func EditableField(field string) bool {
	switch field {
	case FieldFullName, FieldAddress, FieldPhoneNumber, FieldReason:
		return true
	}
	return false
}

// ContainsID reports whether an order with the given id exists in the snapshot.
func ContainsID(list []Order, id int) bool {
	for _, o := range list {
		if o.ID == id {
			return true
		}
	}
	return false
}

// NextID returns the id for a new order based on the snapshot alone:
// one past the highest existing id, starting at 1. The lifecycle engine
// additionally keeps a high-water mark so an id freed by cancelling the
// newest order is still never reissued.
func NextID(list []Order) int {
	max := 0
	for _, o := range list {
		if o.ID > max {
			max = o.ID
		}
	}
	return max + 1
}
