// Package bot wires the order intake dialogs, admin tooling, and
// notifications on top of the telegram runtime.
package bot

import (
	"context"

	"github.com/m3rciful/servicebot/internal/access"
	"github.com/m3rciful/servicebot/internal/config"
	"github.com/m3rciful/servicebot/internal/fsm"
	"github.com/m3rciful/servicebot/internal/orders"
	tg "github.com/m3rciful/servicebot/internal/telegram"
	"github.com/m3rciful/servicebot/internal/telegram/middleware"
	"github.com/m3rciful/servicebot/internal/telegram/router"

	tele "gopkg.in/telebot.v4"
)

// App assembles the bot: registry, dialog manager, lifecycle engine, roster.
type App struct {
	cfg      *config.Config
	svc      *orders.Service
	roster   *access.Roster
	notifier *Notifier
	states   fsm.Manager
	reg      *tg.Registry
}

// New builds the application and registers all commands, callbacks,
// and dialog states.
func New(cfg *config.Config, svc *orders.Service, roster *access.Roster, notifier *Notifier) *App {
	a := &App{
		cfg:      cfg,
		svc:      svc,
		roster:   roster,
		notifier: notifier,
		states:   fsm.NewMemoryManager(),
		reg:      tg.NewRegistry(),
	}
	a.registerCommands()
	a.registerUserCallbacks()
	a.registerAdminCallbacks()
	a.registerUserStates()
	a.registerAdminStates()
	return a
}

// Registry exposes the command/callback registry, mostly for tests.
func (a *App) Registry() *tg.Registry {
	return a.reg
}

// States exposes the dialog manager, mostly for tests.
func (a *App) States() fsm.Manager {
	return a.states
}

// Run starts the bot and blocks until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	adminOpts := middleware.AdminOptions{
		Roster: a.roster,
		OnReject: func(c tele.Context) error {
			return c.Send(textAccessDenied)
		},
	}

	routes := router.CommandRoutes(a.reg, router.CommandRouteOptions{
		Roster:        a.roster,
		OnAdminReject: adminOpts.OnReject,
	})
	routes = append(routes, router.TextRoutes(a.states, a.reg, router.TextOptions{})...)
	routes = append(routes, router.CallbackRoute(a.reg, router.CallbackOptions{}))

	onLimited := func(c tele.Context) error {
		return c.Send(textTooManyRequests)
	}
	mws := tg.DefaultMiddlewares(a.cfg, onLimited)
	mws = append(mws, tg.Middleware{Name: "metrics", Use: middleware.MessageMetricsMiddleware})

	return tg.RunTelegram(ctx, tg.RunOptions{
		Config:      a.cfg,
		Registry:    a.reg,
		Middlewares: mws,
		Routes:      routes,
		OnStart: func(_ context.Context, rt tg.Runtime) error {
			a.notifier.Bind(rt.Bot)
			return nil
		},
	})
}

func (a *App) isAdmin(c tele.Context) bool {
	u := c.Sender()
	return u != nil && a.roster.IsAdmin(u.ID)
}

// adminOnly guards a callback handler with a roster check.
func (a *App) adminOnly(h tele.HandlerFunc) tele.HandlerFunc {
	return middleware.WithAdminCheck(middleware.AdminOptions{
		Roster: a.roster,
		OnReject: func(c tele.Context) error {
			return c.Send(textAccessDenied)
		},
	}, h)
}
