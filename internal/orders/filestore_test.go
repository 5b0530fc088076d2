package orders

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileStoreMissingFileIsEmpty(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "orders.json"))

	list, err := store.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("orders = %d; want 0", len(list))
	}
}

func TestFileStoreCorruptFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	store := NewFileStore(path)

	list, err := store.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("orders = %d; want 0", len(list))
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "orders.json")
	store := NewFileStore(path)

	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	orig := []Order{{
		ID:          1,
		FullName:    "Иван Иванов",
		Address:     "Москва, Тверская 1",
		PhoneNumber: "+79161234567",
		Reason:      "Не работает интернет",
		Status:      StatusInProgress,
		UserID:      100,
		CreatedAt:   created,
		History: []HistoryEntry{
			{Timestamp: created.Add(time.Minute), Status: StatusInProgress},
		},
		Feedback: []FeedbackEntry{},
	}}

	if err := store.SaveAll(ctx, orig); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("orders = %d; want 1", len(got))
	}
	o := got[0]
	if o.ID != 1 || o.FullName != orig[0].FullName || o.Status != StatusInProgress {
		t.Fatalf("order = %+v; want %+v", o, orig[0])
	}
	if len(o.History) != 1 || !o.History[0].Timestamp.Equal(created.Add(time.Minute)) {
		t.Fatalf("history = %+v", o.History)
	}
}

func TestFileStoreSaveReplacesSnapshot(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(filepath.Join(t.TempDir(), "orders.json"))

	if err := store.SaveAll(ctx, []Order{{ID: 1}, {ID: 2}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.SaveAll(ctx, []Order{{ID: 2}}); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("orders = %+v; want only id 2", got)
	}
}
