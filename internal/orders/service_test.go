package orders

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type captureNotifier struct {
	adminTexts []string
	userTexts  []string
	userIDs    []int64
}

func (n *captureNotifier) NotifyAdmins(_ context.Context, text string) {
	n.adminTexts = append(n.adminTexts, text)
}

func (n *captureNotifier) NotifyUser(_ context.Context, userID int64, text string) {
	n.userIDs = append(n.userIDs, userID)
	n.userTexts = append(n.userTexts, text)
}

func newTestService(t *testing.T) (*Service, *captureNotifier, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orders.json")
	notifier := &captureNotifier{}
	svc := NewService(NewFileStore(path), notifier)
	return svc, notifier, path
}

func testParams(userID int64) CreateParams {
	return CreateParams{
		FullName:    "Иван Иванов",
		Address:     "Москва, Тверская 1",
		PhoneNumber: "+79161234567",
		Reason:      "Не работает интернет",
		UserID:      userID,
	}
}

func TestCreateAssignsSequentialIDs(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	first, err := svc.Create(ctx, testParams(100))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := svc.Create(ctx, testParams(200))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.ID != 1 || second.ID != 2 {
		t.Fatalf("ids = %d, %d; want 1, 2", first.ID, second.ID)
	}
}

func TestIDsNeverReissuedAfterCancel(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	if _, err := svc.Create(ctx, testParams(100)); err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := svc.Create(ctx, testParams(200))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Cancel(ctx, second.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	third, err := svc.Create(ctx, testParams(300))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if third.ID != 3 {
		t.Fatalf("id after cancel = %d; want 3", third.ID)
	}
}

func TestCreateStartsPendingWithEmptyHistory(t *testing.T) {
	ctx := context.Background()
	svc, notifier, _ := newTestService(t)

	order, err := svc.Create(ctx, testParams(100))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if order.Status != StatusPending {
		t.Fatalf("status = %q; want %q", order.Status, StatusPending)
	}
	if len(order.History) != 0 {
		t.Fatalf("history length = %d; want 0", len(order.History))
	}
	if len(order.Feedback) != 0 {
		t.Fatalf("feedback length = %d; want 0", len(order.Feedback))
	}
	if len(notifier.adminTexts) != 1 {
		t.Fatalf("admin notifications = %d; want 1", len(notifier.adminTexts))
	}
}

func TestChangeStatusAppendsHistoryAndNotifiesOwner(t *testing.T) {
	ctx := context.Background()
	svc, notifier, _ := newTestService(t)

	order, err := svc.Create(ctx, testParams(100))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.ChangeStatus(ctx, order.ID, StatusInProgress)
	if err != nil {
		t.Fatalf("change status: %v", err)
	}
	if updated.Status != StatusInProgress {
		t.Fatalf("status = %q; want %q", updated.Status, StatusInProgress)
	}
	if len(updated.History) != 1 {
		t.Fatalf("history length = %d; want 1", len(updated.History))
	}
	if updated.History[0].Status != StatusInProgress {
		t.Fatalf("history status = %q; want %q", updated.History[0].Status, StatusInProgress)
	}
	if len(notifier.userIDs) != 1 || notifier.userIDs[0] != 100 {
		t.Fatalf("owner notification ids = %v; want [100]", notifier.userIDs)
	}

	// Resubmitting the same status is still an audit event.
	again, err := svc.ChangeStatus(ctx, order.ID, StatusInProgress)
	if err != nil {
		t.Fatalf("change status: %v", err)
	}
	if len(again.History) != 2 {
		t.Fatalf("history length = %d; want 2", len(again.History))
	}
}

func TestUpdateFieldUnknownIDLeavesFileUnchanged(t *testing.T) {
	ctx := context.Background()
	svc, _, path := newTestService(t)

	if _, err := svc.Create(ctx, testParams(100)); err != nil {
		t.Fatalf("create: %v", err)
	}
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}

	_, err = svc.UpdateField(ctx, 999, FieldAddress, "Санкт-Петербург, Невский 10")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v; want ErrNotFound", err)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if string(before) != string(after) {
		t.Fatal("store changed by a failed update")
	}
}

func TestUpdateFieldRejectsNonEditableField(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	order, err := svc.Create(ctx, testParams(100))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.UpdateField(ctx, order.ID, "status", "processed"); !errors.Is(err, ErrBadField) {
		t.Fatalf("error = %v; want ErrBadField", err)
	}
}

func TestUpdateFieldChangesValue(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	order, err := svc.Create(ctx, testParams(100))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	updated, err := svc.UpdateField(ctx, order.ID, FieldPhoneNumber, "+79990001122")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.PhoneNumber != "+79990001122" {
		t.Fatalf("phone = %q; want +79990001122", updated.PhoneNumber)
	}
}

func TestCancelRemovesOrderAndNotifiesAdmins(t *testing.T) {
	ctx := context.Background()
	svc, notifier, _ := newTestService(t)

	order, err := svc.Create(ctx, testParams(100))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Cancel(ctx, order.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if svc.Exists(ctx, order.ID) {
		t.Fatal("cancelled order still exists")
	}
	if err := svc.Cancel(ctx, order.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second cancel error = %v; want ErrNotFound", err)
	}
	// One for create, one for cancel.
	if len(notifier.adminTexts) != 2 {
		t.Fatalf("admin notifications = %d; want 2", len(notifier.adminTexts))
	}
}

func TestAddFeedbackAppends(t *testing.T) {
	ctx := context.Background()
	svc, notifier, _ := newTestService(t)

	order, err := svc.Create(ctx, testParams(100))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	updated, err := svc.AddFeedback(ctx, order.ID, "Спасибо, все отлично")
	if err != nil {
		t.Fatalf("feedback: %v", err)
	}
	if len(updated.Feedback) != 1 || updated.Feedback[0].Feedback != "Спасибо, все отлично" {
		t.Fatalf("feedback = %+v; want one entry", updated.Feedback)
	}
	if len(notifier.adminTexts) != 2 {
		t.Fatalf("admin notifications = %d; want 2", len(notifier.adminTexts))
	}
}

func TestListActiveSkipsProcessed(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	first, _ := svc.Create(ctx, testParams(100))
	second, _ := svc.Create(ctx, testParams(200))
	if _, err := svc.ChangeStatus(ctx, first.ID, StatusProcessed); err != nil {
		t.Fatalf("change status: %v", err)
	}

	active, err := svc.ListActive(ctx)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 1 || active[0].ID != second.ID {
		t.Fatalf("active = %+v; want only order %d", active, second.ID)
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	st, err := svc.ComputeStats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.Total != 0 || st.AvgProcessingSeconds != 0 {
		t.Fatalf("stats = %+v; want zeroes", st)
	}
}

func TestComputeStatsAverage(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := base
	svc.now = func() time.Time { return clock }

	order, err := svc.Create(ctx, testParams(100))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.ChangeStatus(ctx, order.ID, StatusInProgress); err != nil {
		t.Fatalf("change status: %v", err)
	}
	clock = base.Add(90 * time.Second)
	if _, err := svc.ChangeStatus(ctx, order.ID, StatusProcessed); err != nil {
		t.Fatalf("change status: %v", err)
	}
	// Processed without transitions does not enter the average.
	clock = base
	second, err := svc.Create(ctx, testParams(200))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.ChangeStatus(ctx, second.ID, StatusProcessed); err != nil {
		t.Fatalf("change status: %v", err)
	}

	st, err := svc.ComputeStats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.Total != 2 || st.Processed != 2 {
		t.Fatalf("stats = %+v; want 2 processed of 2", st)
	}
	if st.AvgProcessingSeconds != 90 {
		t.Fatalf("avg = %v; want 90", st.AvgProcessingSeconds)
	}
}

func TestLifecycleScenario(t *testing.T) {
	ctx := context.Background()
	svc, notifier, _ := newTestService(t)

	order, err := svc.Create(ctx, testParams(100))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.ChangeStatus(ctx, order.ID, StatusInProgress); err != nil {
		t.Fatalf("in progress: %v", err)
	}
	if _, err := svc.ChangeStatus(ctx, order.ID, StatusProcessed); err != nil {
		t.Fatalf("processed: %v", err)
	}
	final, err := svc.AddFeedback(ctx, order.ID, "Быстро и качественно")
	if err != nil {
		t.Fatalf("feedback: %v", err)
	}

	if final.Status != StatusProcessed {
		t.Fatalf("status = %q; want %q", final.Status, StatusProcessed)
	}
	if len(final.History) != 2 {
		t.Fatalf("history length = %d; want 2", len(final.History))
	}
	if len(final.Feedback) != 1 {
		t.Fatalf("feedback length = %d; want 1", len(final.Feedback))
	}
	if len(notifier.userTexts) != 2 {
		t.Fatalf("owner notifications = %d; want 2", len(notifier.userTexts))
	}
	if len(notifier.adminTexts) != 2 {
		t.Fatalf("admin notifications = %d; want 2", len(notifier.adminTexts))
	}
}
