package middleware

import (
	"github.com/m3rciful/servicebot/internal/logger"
	tghelpers "github.com/m3rciful/servicebot/internal/telegram/helpers"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// AdminChecker answers membership queries against the live admin roster.
type AdminChecker interface {
	IsAdmin(userID int64) bool
}

// AdminOptions defines how admin-only checks should behave.
type AdminOptions struct {
	Roster   AdminChecker
	OnReject tele.HandlerFunc
}

// WithAdminCheck wraps a handler enforcing roster membership.
// With a nil roster the handler is returned unguarded.
func WithAdminCheck(opts AdminOptions, h tele.HandlerFunc) tele.HandlerFunc {
	if opts.Roster == nil {
		return h
	}
	return func(c tele.Context) error {
		user := c.Sender()
		if user == nil || !opts.Roster.IsAdmin(user.ID) {
			return reject(c, opts)
		}
		return h(c)
	}
}

// AdminOnlyMiddleware ensures that only roster members reach downstream handlers.
func AdminOnlyMiddleware(opts AdminOptions) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if opts.Roster != nil && (user == nil || !opts.Roster.IsAdmin(user.ID)) {
				return reject(c, opts)
			}
			return next(c)
		}
	}
}

func reject(c tele.Context, opts AdminOptions) error {
	var userID int64
	if u := c.Sender(); u != nil {
		userID = u.ID
	}
	logger.Warn(tghelpers.BuildContext(c), "access", "access.denied",
		slog.Int64("user_id", userID),
	)
	if opts.OnReject != nil {
		return opts.OnReject(c)
	}
	return nil
}
