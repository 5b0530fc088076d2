package bot

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/m3rciful/servicebot/internal/access"
	"github.com/m3rciful/servicebot/internal/config"
	"github.com/m3rciful/servicebot/internal/fsm"
	"github.com/m3rciful/servicebot/internal/orders"

	tele "gopkg.in/telebot.v4"
)

// fakeContext implements the slice of tele.Context the handlers touch.
type fakeContext struct {
	tele.Context
	sender *tele.User
	text   string
	store  map[string]any
	sent   []string
}

func newFakeContext(userID int64, text string) *fakeContext {
	return &fakeContext{
		sender: &tele.User{ID: userID},
		text:   text,
		store:  map[string]any{},
	}
}

func (f *fakeContext) Sender() *tele.User  { return f.sender }
func (f *fakeContext) Chat() *tele.Chat    { return nil }
func (f *fakeContext) Update() tele.Update { return tele.Update{} }
func (f *fakeContext) Text() string        { return f.text }
func (f *fakeContext) Set(k string, v any) { f.store[k] = v }
func (f *fakeContext) Get(k string) any    { return f.store[k] }

func (f *fakeContext) Send(what interface{}, _ ...interface{}) error {
	if s, ok := what.(string); ok {
		f.sent = append(f.sent, s)
	}
	return nil
}

func (f *fakeContext) EditOrSend(what interface{}, _ ...interface{}) error {
	return f.Send(what)
}

func (f *fakeContext) replied(substr string) bool {
	for _, s := range f.sent {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}

const testAdminID = int64(99)

func newTestApp(t *testing.T) (*App, *orders.Service) {
	t.Helper()
	dir := t.TempDir()
	roster, err := access.Load(filepath.Join(dir, "admins.txt"), []int64{testAdminID})
	if err != nil {
		t.Fatalf("load roster: %v", err)
	}
	notifier := NewNotifier(roster)
	store := orders.NewFileStore(filepath.Join(dir, "orders.json"))
	svc := orders.NewService(store, notifier)
	return New(&config.Config{}, svc, roster, notifier), svc
}

func TestAdminPanelDeniedLeavesStateIdle(t *testing.T) {
	app, _ := newTestApp(t)

	handler, ok := app.Registry().GetCallback(cbAdminPanel)
	if !ok {
		t.Fatal("admin panel callback not registered")
	}

	c := newFakeContext(7, "")
	if err := handler(c); err != nil {
		t.Fatalf("handler: %v", err)
	}

	if st := app.States().GetState(7); st != fsm.StateIdle {
		t.Fatalf("denied entry point changed state to %q", st)
	}
	if !c.replied(textAccessDenied) {
		t.Fatalf("expected access denied reply, got %v", c.sent)
	}
}

func TestAdminPanelStartsFlowForRosterMember(t *testing.T) {
	app, _ := newTestApp(t)

	handler, ok := app.Registry().GetCallback(cbAdminPanel)
	if !ok {
		t.Fatal("admin panel callback not registered")
	}

	c := newFakeContext(testAdminID, "")
	if err := handler(c); err != nil {
		t.Fatalf("handler: %v", err)
	}

	if st := app.States().GetState(testAdminID); st != fsm.StateAdminStatusID {
		t.Fatalf("expected admin status flow, got state %q", st)
	}
}

func TestStatusLookupHidesForeignOrder(t *testing.T) {
	app, svc := newTestApp(t)

	order, err := svc.Create(context.Background(), orders.CreateParams{
		FullName:    "Иван Иванов",
		Address:     "Москва, Ленина 1",
		PhoneNumber: "+79161234567",
		Reason:      "не работает",
		UserID:      100,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	app.States().StartFlow(7, fsm.FlowStatus, fsm.StateStatusID)
	c := newFakeContext(7, strconv.Itoa(order.ID))
	if err := app.States().ManagerHandler(c); err != nil {
		t.Fatalf("handler: %v", err)
	}

	if !c.replied(textBadRequestID) {
		t.Fatalf("expected the unknown-id reply, got %v", c.sent)
	}
	if c.replied(order.PhoneNumber) || c.replied(order.FullName) {
		t.Fatalf("foreign order details leaked: %v", c.sent)
	}
	if st := app.States().GetState(7); st != fsm.StateStatusID {
		t.Fatalf("denied lookup should re-prompt, got state %q", st)
	}
}

func TestStatusLookupOwnerSeesOrder(t *testing.T) {
	app, svc := newTestApp(t)

	order, err := svc.Create(context.Background(), orders.CreateParams{
		FullName:    "Иван Иванов",
		Address:     "Москва, Ленина 1",
		PhoneNumber: "+79161234567",
		Reason:      "не работает",
		UserID:      100,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	app.States().StartFlow(100, fsm.FlowStatus, fsm.StateStatusID)
	c := newFakeContext(100, strconv.Itoa(order.ID))
	if err := app.States().ManagerHandler(c); err != nil {
		t.Fatalf("handler: %v", err)
	}

	if !c.replied(order.FullName) {
		t.Fatalf("owner did not get the order card: %v", c.sent)
	}
	if st := app.States().GetState(100); st != fsm.StateIdle {
		t.Fatalf("completed lookup should clear state, got %q", st)
	}
}

func TestStatusLookupAdminSeesAnyOrder(t *testing.T) {
	app, svc := newTestApp(t)

	order, err := svc.Create(context.Background(), orders.CreateParams{
		FullName:    "Иван Иванов",
		Address:     "Москва, Ленина 1",
		PhoneNumber: "+79161234567",
		Reason:      "не работает",
		UserID:      100,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	app.States().StartFlow(testAdminID, fsm.FlowStatus, fsm.StateStatusID)
	c := newFakeContext(testAdminID, strconv.Itoa(order.ID))
	if err := app.States().ManagerHandler(c); err != nil {
		t.Fatalf("handler: %v", err)
	}

	if !c.replied(order.FullName) {
		t.Fatalf("admin did not get the order card: %v", c.sent)
	}
}
