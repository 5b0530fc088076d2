package validate

import "testing"

func TestIsValidPhone(t *testing.T) {
	valid := []string{"+79161234567", "79161234567", "+12025550123", " +79161234567 ", "+19"}
	for _, p := range valid {
		if !IsValidPhone(p) {
			t.Errorf("IsValidPhone(%q) = false; want true", p)
		}
	}
	invalid := []string{"", "+0123", "0123456", "abc", "+7 916 123", "+7-916", "+", "9"}
	for _, p := range invalid {
		if IsValidPhone(p) {
			t.Errorf("IsValidPhone(%q) = true; want false", p)
		}
	}
}

func TestIsValidAddress(t *testing.T) {
	if IsValidAddress("кор.5") {
		t.Error("five-rune address accepted")
	}
	if IsValidAddress("   ул.1   ") {
		t.Error("padding should not count toward length")
	}
	if !IsValidAddress("Москва, Тверская 1") {
		t.Error("normal address rejected")
	}
	// six runes is the shortest accepted value
	if !IsValidAddress("Тверск") {
		t.Error("six-rune address rejected")
	}
}

func TestSanitizeEscapesMarkup(t *testing.T) {
	got := Sanitize("  <b>Иван</b> & Ко  ")
	want := "&lt;b&gt;Иван&lt;/b&gt; &amp; Ко"
	if got != want {
		t.Fatalf("Sanitize = %q; want %q", got, want)
	}
}

func TestSanitizePlainTextUntouched(t *testing.T) {
	if got := Sanitize("Иван Иванов"); got != "Иван Иванов" {
		t.Fatalf("Sanitize = %q; want unchanged", got)
	}
}
