package helpers

import "strings"

// MaxMessageRunes is the Telegram limit for a single text message.
const MaxMessageRunes = 4096

// SplitMessage cuts text into chunks that fit a Telegram message.
// Each cut prefers the last newline inside the window so lines stay whole;
// a single line longer than the window is cut mid-line.
func SplitMessage(text string) []string {
	runes := []rune(text)
	if len(runes) <= MaxMessageRunes {
		return []string{text}
	}

	var parts []string
	for len(runes) > MaxMessageRunes {
		window := string(runes[:MaxMessageRunes])
		cut := strings.LastIndexByte(window, '\n')
		if cut <= 0 {
			cut = len(window)
		}
		parts = append(parts, string(runes[:len([]rune(window[:cut]))]))
		rest := runes[len([]rune(window[:cut])):]
		// Drop the newline the cut landed on.
		if len(rest) > 0 && rest[0] == '\n' {
			rest = rest[1:]
		}
		runes = rest
	}
	if len(runes) > 0 {
		parts = append(parts, string(runes))
	}
	return parts
}
