package fsm

import (
	"sync"

	"github.com/m3rciful/servicebot/internal/logger"
	tghelpers "github.com/m3rciful/servicebot/internal/telegram/helpers"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

type memoryManager struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
	handlers map[State]tele.HandlerFunc
}

// NewMemoryManager constructs an in-memory Manager implementation.
func NewMemoryManager() Manager {
	return &memoryManager{
		sessions: make(map[int64]*Session),
		handlers: make(map[State]tele.HandlerFunc),
	}
}

// StartFlow replaces the user's session with a fresh one positioned at the
// first step of the flow. Any draft of a previous flow is discarded.
func (m *memoryManager) StartFlow(userID int64, flow Flow, st State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[userID] = &Session{Flow: flow, State: st}
}

// SetState advances the user within the current flow.
func (m *memoryManager) SetState(userID int64, st State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[userID]
	if !ok {
		sess = &Session{}
		m.sessions[userID] = sess
	}
	sess.State = st
}

// GetState returns the current state of a user, or StateIdle if none exists.
func (m *memoryManager) GetState(userID int64) State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if sess, ok := m.sessions[userID]; ok && sess.State != "" {
		return sess.State
	}
	return StateIdle
}

// GetFlow returns the active flow of a user, or FlowNone.
func (m *memoryManager) GetFlow(userID int64) Flow {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if sess, ok := m.sessions[userID]; ok {
		return sess.Flow
	}
	return FlowNone
}

// InProgress reports whether the user is in the middle of a flow.
func (m *memoryManager) InProgress(userID int64) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[userID]
	return ok && sess.State != "" && sess.State != StateIdle
}

// Clear removes the entire session for a user.
func (m *memoryManager) Clear(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

// Snapshot returns a copy of the user's session.
func (m *memoryManager) Snapshot(userID int64) Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if sess, ok := m.sessions[userID]; ok {
		return *sess
	}
	return Session{State: StateIdle}
}

// Mutate applies fn to the user's session under the lock, creating the
// session if it does not exist yet.
func (m *memoryManager) Mutate(userID int64, fn func(*Session)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[userID]
	if !ok {
		sess = &Session{}
		m.sessions[userID] = sess
	}
	fn(sess)
}

// RegisterHandler associates a state with its handler.
func (m *memoryManager) RegisterHandler(st State, h tele.HandlerFunc) {
	if h == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[st] = h
}

// ManagerHandler executes the handler registered for the user's current
// state, if any.
func (m *memoryManager) ManagerHandler(c tele.Context) error {
	userID := c.Sender().ID
	sess := m.Snapshot(userID)
	ctx := tghelpers.BuildContext(c)
	logger.Debug(ctx, "tg", "fsm.manager",
		slog.String("status", "ok"),
		slog.Int64("user_id", userID),
		slog.String("state", string(sess.State)),
		slog.String("flow", string(sess.Flow)),
	)

	m.mu.RLock()
	handler, ok := m.handlers[sess.State]
	m.mu.RUnlock()
	if ok {
		return handler(c)
	}
	return nil
}
