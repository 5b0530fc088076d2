package helpers

import (
	"strings"
	"testing"
)

func TestSplitMessageShortTextIsUntouched(t *testing.T) {
	parts := SplitMessage("привет")
	if len(parts) != 1 || parts[0] != "привет" {
		t.Fatalf("parts = %q; want single untouched chunk", parts)
	}
}

func TestSplitMessagePrefersNewline(t *testing.T) {
	line := strings.Repeat("а", 100)
	var b strings.Builder
	for b.Len() == 0 || len([]rune(b.String())) < MaxMessageRunes+500 {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	parts := SplitMessage(b.String())

	if len(parts) < 2 {
		t.Fatalf("parts = %d; want at least 2", len(parts))
	}
	for i, p := range parts {
		if n := len([]rune(p)); n > MaxMessageRunes {
			t.Fatalf("chunk %d has %d runes; limit is %d", i, n, MaxMessageRunes)
		}
		if strings.HasPrefix(p, "\n") || strings.HasSuffix(p, "\n") {
			t.Fatalf("chunk %d keeps a boundary newline", i)
		}
	}
	// Lines stay whole when newlines are available.
	for _, l := range strings.Split(parts[0], "\n") {
		if len([]rune(l)) != 100 {
			t.Fatalf("line of %d runes after split; want 100", len([]rune(l)))
		}
	}
}

func TestSplitMessageHardCutsSingleLongLine(t *testing.T) {
	text := strings.Repeat("б", MaxMessageRunes+10)
	parts := SplitMessage(text)

	if len(parts) != 2 {
		t.Fatalf("parts = %d; want 2", len(parts))
	}
	if len([]rune(parts[0])) != MaxMessageRunes {
		t.Fatalf("first chunk = %d runes; want %d", len([]rune(parts[0])), MaxMessageRunes)
	}
	if len([]rune(parts[1])) != 10 {
		t.Fatalf("second chunk = %d runes; want 10", len([]rune(parts[1])))
	}
}
