package fsm

import "testing"

func TestStartFlowDiscardsPreviousDraft(t *testing.T) {
	m := NewMemoryManager()

	m.StartFlow(1, FlowOrder, StateOrderName)
	m.Mutate(1, func(s *Session) {
		s.Order.FullName = "Иван Иванов"
		s.Order.Address = "Москва, Тверская 1"
	})

	m.StartFlow(1, FlowFeedback, StateFeedbackID)

	sess := m.Snapshot(1)
	if sess.Flow != FlowFeedback || sess.State != StateFeedbackID {
		t.Fatalf("session = %+v; want feedback flow at id step", sess)
	}
	if sess.Order.FullName != "" || sess.Order.Address != "" {
		t.Fatalf("order draft survived flow switch: %+v", sess.Order)
	}
}

func TestStateAdvancesWithinFlow(t *testing.T) {
	m := NewMemoryManager()

	m.StartFlow(1, FlowOrder, StateOrderName)
	m.SetState(1, StateOrderAddress)

	if got := m.GetState(1); got != StateOrderAddress {
		t.Fatalf("state = %q; want %q", got, StateOrderAddress)
	}
	if got := m.GetFlow(1); got != FlowOrder {
		t.Fatalf("flow = %q; want %q", got, FlowOrder)
	}
}

func TestInProgress(t *testing.T) {
	m := NewMemoryManager()

	if m.InProgress(1) {
		t.Fatal("fresh user reported in progress")
	}
	m.StartFlow(1, FlowCancel, StateCancelID)
	if !m.InProgress(1) {
		t.Fatal("active flow not reported in progress")
	}
	m.Clear(1)
	if m.InProgress(1) {
		t.Fatal("cleared user still in progress")
	}
	if got := m.GetState(1); got != StateIdle {
		t.Fatalf("state after clear = %q; want idle", got)
	}
}

func TestSessionsAreIsolatedPerUser(t *testing.T) {
	m := NewMemoryManager()

	m.StartFlow(1, FlowOrder, StateOrderName)
	m.StartFlow(2, FlowStatus, StateStatusID)
	m.Mutate(1, func(s *Session) { s.Order.FullName = "Иван" })

	if got := m.Snapshot(2); got.Flow != FlowStatus || got.Order.FullName != "" {
		t.Fatalf("user 2 session = %+v; want untouched status flow", got)
	}
}

func TestMutateCreatesSession(t *testing.T) {
	m := NewMemoryManager()

	m.Mutate(7, func(s *Session) { s.Edit.OrderID = 42 })

	if got := m.Snapshot(7); got.Edit.OrderID != 42 {
		t.Fatalf("edit draft = %+v; want order id 42", got.Edit)
	}
}
