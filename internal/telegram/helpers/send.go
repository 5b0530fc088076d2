package helpers

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/m3rciful/servicebot/internal/logger"
	"github.com/m3rciful/servicebot/internal/telegram/sender"

	tele "gopkg.in/telebot.v4"
)

var globalDispatcher atomic.Pointer[sender.Dispatcher]

// SetDispatcher wires the asynchronous sender used by helper functions.
func SetDispatcher(d *sender.Dispatcher) {
	globalDispatcher.Store(d)
}

func currentDispatcher() *sender.Dispatcher {
	return globalDispatcher.Load()
}

func sendAsync(c tele.Context, action, endpoint string, run func() error) error {
	return dispatch(BuildContext(c), action, endpoint, run)
}

func dispatch(ctx context.Context, action, endpoint string, run func() error) error {
	disp := currentDispatcher()
	if disp == nil {
		return run()
	}

	if err := disp.Enqueue(ctx, action, endpoint, run); err != nil {
		if errors.Is(err, sender.ErrQueueFull) || errors.Is(err, sender.ErrQueueClosed) {
			logger.Warn(ctx, "tg.sender", "queue.fallback",
				slog.String("payload", action),
				slog.String("err", err.Error()),
			)
			return run()
		}
		return err
	}
	return nil
}

// SendText sends raw text (no parse mode) to the current recipient.
// Long texts are split into Telegram-sized chunks before sending.
func SendText(c tele.Context, text string, opts ...*tele.SendOptions) error {
	var sendOpts *tele.SendOptions
	if len(opts) > 0 {
		sendOpts = opts[0]
	}
	parts := SplitMessage(text)
	for i, part := range parts {
		chunk := part
		// Keyboard goes with the last chunk only.
		var chunkOpts *tele.SendOptions
		if sendOpts != nil {
			if i == len(parts)-1 {
				chunkOpts = sendOpts
			} else if sendOpts.ParseMode != "" {
				chunkOpts = &tele.SendOptions{ParseMode: sendOpts.ParseMode}
			}
		}
		err := sendAsync(c, "send.text", "sendMessage", func() error {
			if chunkOpts != nil {
				return c.Send(chunk, chunkOpts)
			}
			return c.Send(chunk)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// SendTo delivers raw text to an explicit recipient, outside any update
// context. Long texts are split into Telegram-sized chunks and every chunk
// goes through the async dispatcher, same as context-bound sends.
func SendTo(ctx context.Context, b *tele.Bot, to tele.Recipient, text string) error {
	return sendSplit(ctx, text, func(chunk string) error {
		_, err := b.Send(to, chunk)
		return err
	})
}

func sendSplit(ctx context.Context, text string, send func(string) error) error {
	for _, part := range SplitMessage(text) {
		chunk := part
		err := dispatch(ctx, "send.notify", "sendMessage", func() error {
			return send(chunk)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// SendKB sends plain text with an optional reply markup.
func SendKB(c tele.Context, text string, markup ...*tele.ReplyMarkup) error {
	var rm *tele.ReplyMarkup
	if len(markup) > 0 {
		rm = markup[0]
	}
	return SendText(c, text, &tele.SendOptions{ReplyMarkup: rm})
}

// SendMDV2 sends a message with MarkdownV2 parse mode and optional reply markup.
func SendMDV2(c tele.Context, text string, markup ...*tele.ReplyMarkup) error {
	var rm *tele.ReplyMarkup
	if len(markup) > 0 {
		rm = markup[0]
	}
	opts := &tele.SendOptions{ParseMode: tele.ModeMarkdownV2, ReplyMarkup: rm}
	return SendText(c, text, opts)
}

// EditOrSend tries to edit the originating message or sends a new one if edit fails.
func EditOrSend(c tele.Context, text string, markup ...*tele.ReplyMarkup) error {
	var rm *tele.ReplyMarkup
	if len(markup) > 0 {
		rm = markup[0]
	}
	return c.EditOrSend(text, &tele.SendOptions{ReplyMarkup: rm})
}
