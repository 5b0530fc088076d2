package middleware

import (
	"testing"

	tele "gopkg.in/telebot.v4"
)

type staticRoster map[int64]bool

func (r staticRoster) IsAdmin(userID int64) bool { return r[userID] }

// fakeContext implements the handful of tele.Context methods the
// access middleware and its logging path touch.
type fakeContext struct {
	tele.Context
	sender *tele.User
	store  map[string]any
	sent   []string
}

func newFakeContext(userID int64) *fakeContext {
	var u *tele.User
	if userID != 0 {
		u = &tele.User{ID: userID}
	}
	return &fakeContext{sender: u, store: map[string]any{}}
}

func (f *fakeContext) Sender() *tele.User  { return f.sender }
func (f *fakeContext) Chat() *tele.Chat    { return nil }
func (f *fakeContext) Update() tele.Update { return tele.Update{} }
func (f *fakeContext) Set(k string, v any) { f.store[k] = v }
func (f *fakeContext) Get(k string) any    { return f.store[k] }

func (f *fakeContext) Send(what interface{}, _ ...interface{}) error {
	if s, ok := what.(string); ok {
		f.sent = append(f.sent, s)
	}
	return nil
}

func TestWithAdminCheckAllowsRosterMember(t *testing.T) {
	roster := staticRoster{42: true}
	called := false
	h := WithAdminCheck(AdminOptions{Roster: roster}, func(c tele.Context) error {
		called = true
		return nil
	})

	if err := h(newFakeContext(42)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if !called {
		t.Fatal("expected wrapped handler to run for roster member")
	}
}

func TestWithAdminCheckRejectsOutsider(t *testing.T) {
	roster := staticRoster{42: true}
	called := false
	rejected := false
	h := WithAdminCheck(AdminOptions{
		Roster: roster,
		OnReject: func(c tele.Context) error {
			rejected = true
			return c.Send("denied")
		},
	}, func(c tele.Context) error {
		called = true
		return nil
	})

	c := newFakeContext(7)
	if err := h(c); err != nil {
		t.Fatalf("reject path returned error: %v", err)
	}
	if called {
		t.Fatal("wrapped handler must not run for non-member")
	}
	if !rejected {
		t.Fatal("expected OnReject to be invoked")
	}
	if len(c.sent) != 1 || c.sent[0] != "denied" {
		t.Fatalf("unexpected replies: %v", c.sent)
	}
}

func TestWithAdminCheckRejectsMissingSender(t *testing.T) {
	roster := staticRoster{42: true}
	called := false
	h := WithAdminCheck(AdminOptions{Roster: roster}, func(c tele.Context) error {
		called = true
		return nil
	})

	if err := h(newFakeContext(0)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if called {
		t.Fatal("wrapped handler must not run without a sender")
	}
}

func TestWithAdminCheckNilRosterIsUnguarded(t *testing.T) {
	called := false
	h := WithAdminCheck(AdminOptions{}, func(c tele.Context) error {
		called = true
		return nil
	})

	if err := h(newFakeContext(7)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if !called {
		t.Fatal("nil roster must leave the handler unguarded")
	}
}
