package helpers

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/m3rciful/servicebot/internal/telegram/sender"
)

func TestSendSplitChunksLongText(t *testing.T) {
	SetDispatcher(nil)

	line := strings.Repeat("ж", 100)
	text := strings.Repeat(line+"\n", 50) // 5050 runes, over the limit

	var chunks []string
	err := sendSplit(context.Background(), text, func(chunk string) error {
		chunks = append(chunks, chunk)
		return nil
	})
	if err != nil {
		t.Fatalf("sendSplit: %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected long text to be chunked, got %d chunk(s)", len(chunks))
	}
	for i, chunk := range chunks {
		if n := len([]rune(chunk)); n > MaxMessageRunes {
			t.Fatalf("chunk %d has %d runes, over the limit", i, n)
		}
	}
	joined := strings.Join(chunks, "\n")
	if !strings.HasPrefix(joined, line) {
		t.Fatal("chunking lost leading content")
	}
}

func TestSendSplitShortTextSingleSend(t *testing.T) {
	SetDispatcher(nil)

	var chunks []string
	err := sendSplit(context.Background(), "привет", func(chunk string) error {
		chunks = append(chunks, chunk)
		return nil
	})
	if err != nil {
		t.Fatalf("sendSplit: %v", err)
	}
	if len(chunks) != 1 || chunks[0] != "привет" {
		t.Fatalf("unexpected chunks: %v", chunks)
	}
}

func TestSendSplitGoesThroughDispatcher(t *testing.T) {
	d := sender.NewDispatcher(sender.Options{
		QueueSize:    8,
		Workers:      1,
		RetryBackoff: time.Millisecond,
	})
	SetDispatcher(d)
	defer SetDispatcher(nil)

	var mu sync.Mutex
	var chunks []string
	err := sendSplit(context.Background(), "тест", func(chunk string) error {
		mu.Lock()
		chunks = append(chunks, chunk)
		mu.Unlock()
		return nil
	})
	if err != nil {
		t.Fatalf("sendSplit: %v", err)
	}

	// Close drains the queue and waits for workers.
	d.Close()

	mu.Lock()
	defer mu.Unlock()
	if len(chunks) != 1 || chunks[0] != "тест" {
		t.Fatalf("dispatcher did not run the send: %v", chunks)
	}
}
