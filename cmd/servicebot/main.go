package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"log/slog"

	"github.com/m3rciful/servicebot/internal/access"
	"github.com/m3rciful/servicebot/internal/bot"
	"github.com/m3rciful/servicebot/internal/buildinfo"
	"github.com/m3rciful/servicebot/internal/config"
	"github.com/m3rciful/servicebot/internal/database"
	"github.com/m3rciful/servicebot/internal/logger"
	"github.com/m3rciful/servicebot/internal/orders"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("servicebot: %v", err)
	}
}

func run() error {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	if err := logger.Init(cfg); err != nil {
		return err
	}
	defer func() {
		if err := logger.Shutdown(); err != nil {
			log.Printf("logger shutdown error: %v", err)
		}
	}()

	ctx := logger.Background()
	logger.Info(ctx, "app", "starting",
		slog.String("version", buildinfo.Version),
		slog.String("commit", buildinfo.Commit),
		slog.String("storage", cfg.Storage.Driver),
	)

	var store orders.Store
	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		db, err := database.Connect(cfg.Storage.Database)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := database.RunMigrations(cfg.Storage.Database); err != nil {
			return err
		}
		store = orders.NewSQLStore(db)
	default:
		store = orders.NewFileStore(cfg.Storage.OrdersFile)
	}

	seed, err := config.ParseAdminIDs(cfg.Admins.IDs)
	if err != nil {
		return err
	}
	roster, err := access.Load(cfg.Admins.RosterFile, seed)
	if err != nil {
		return err
	}

	notifier := bot.NewNotifier(roster)
	svc := orders.NewService(store, notifier)
	app := bot.New(cfg, svc, roster, notifier)

	runCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return app.Run(runCtx)
}
