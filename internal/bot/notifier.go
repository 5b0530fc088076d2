package bot

import (
	"context"
	"sync/atomic"

	"github.com/m3rciful/servicebot/internal/access"
	"github.com/m3rciful/servicebot/internal/logger"
	tghelpers "github.com/m3rciful/servicebot/internal/telegram/helpers"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// Notifier fans lifecycle notifications out over Telegram. The bot instance
// is bound after startup, so notifications fired before Bind are dropped
// with a warning instead of panicking.
type Notifier struct {
	bot    atomic.Pointer[tele.Bot]
	roster *access.Roster
}

// NewNotifier builds a notifier over the given admin roster.
func NewNotifier(roster *access.Roster) *Notifier {
	return &Notifier{roster: roster}
}

// Bind attaches the running bot instance.
func (n *Notifier) Bind(b *tele.Bot) {
	n.bot.Store(b)
}

// NotifyAdmins sends the text to every roster member.
func (n *Notifier) NotifyAdmins(ctx context.Context, text string) {
	b := n.bot.Load()
	if b == nil {
		logger.Warn(ctx, "tg", "notify.skip",
			slog.String("cause", "bot_not_bound"),
		)
		return
	}
	for _, id := range n.roster.IDs() {
		if err := tghelpers.SendTo(ctx, b, &tele.User{ID: id}, text); err != nil {
			logger.Warn(ctx, "tg", "notify.admin.fail",
				slog.Int64("user_id", id),
				slog.String("err", err.Error()),
			)
		}
	}
}

// NotifyUser sends the text to one user.
func (n *Notifier) NotifyUser(ctx context.Context, userID int64, text string) {
	b := n.bot.Load()
	if b == nil {
		logger.Warn(ctx, "tg", "notify.skip",
			slog.Int64("user_id", userID),
			slog.String("cause", "bot_not_bound"),
		)
		return
	}
	if err := tghelpers.SendTo(ctx, b, &tele.User{ID: userID}, text); err != nil {
		logger.Warn(ctx, "tg", "notify.user.fail",
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
	}
}
