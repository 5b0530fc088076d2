// Package fsm tracks per-user dialog state for multi-step conversations.
//
// Each user has at most one active flow. Starting a flow resets the whole
// session, so drafts from an abandoned flow never leak into a new one.
package fsm

import tele "gopkg.in/telebot.v4"

// Flow identifies a multi-step conversation.
type Flow string

const (
	FlowNone        Flow = ""
	FlowOrder       Flow = "order"
	FlowEdit        Flow = "edit"
	FlowStatus      Flow = "status"
	FlowCancel      Flow = "cancel"
	FlowFeedback    Flow = "feedback"
	FlowAdminStatus Flow = "admin_status"
	FlowRosterAdd   Flow = "roster_add"
)

// State identifies a step within a flow.
type State string

const (
	StateIdle State = "idle"

	StateOrderName    State = "order.full_name"
	StateOrderAddress State = "order.address"
	StateOrderPhone   State = "order.phone_number"
	StateOrderReason  State = "order.reason"

	StateEditID    State = "edit.id"
	StateEditField State = "edit.field"
	StateEditValue State = "edit.value"

	StateStatusID State = "status.id"

	StateCancelID State = "cancel.id"

	StateFeedbackID   State = "feedback.id"
	StateFeedbackText State = "feedback.text"

	StateAdminStatusID     State = "admin_status.id"
	StateAdminStatusChoice State = "admin_status.choice"

	StateRosterAddID State = "roster.add_id"
)

// OrderDraft accumulates answers of the order intake flow.
type OrderDraft struct {
	FullName    string
	Address     string
	PhoneNumber string
	Reason      string
}

// EditDraft holds the target of an in-flight field edit.
type EditDraft struct {
	OrderID int
	Field   string
}

// FeedbackDraft holds the target of an in-flight feedback submission.
type FeedbackDraft struct {
	OrderID int
}

// AdminStatusDraft holds the target of an admin status change.
type AdminStatusDraft struct {
	OrderID int
}

// Session is one user's dialog position and the drafts of the active flow.
// Only the draft of the active flow is ever meaningful.
type Session struct {
	Flow  Flow
	State State

	Order       OrderDraft
	Edit        EditDraft
	Feedback    FeedbackDraft
	AdminStatus AdminStatusDraft
}

// Manager orchestrates user sessions and state transitions. Handlers are
// registered on the instance so each bot run wires its own dispatch table.
type Manager interface {
	StartFlow(userID int64, flow Flow, st State)
	SetState(userID int64, st State)
	GetState(userID int64) State
	GetFlow(userID int64) Flow
	InProgress(userID int64) bool
	Clear(userID int64)

	Snapshot(userID int64) Session
	Mutate(userID int64, fn func(*Session))

	RegisterHandler(st State, h tele.HandlerFunc)
	ManagerHandler(c tele.Context) error
}
