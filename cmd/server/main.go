package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"gorm.io/gorm"

	"mixup/internal/config"
	"mixup/internal/db"
	"mixup/internal/db/mock"
	applog "mixup/internal/log"
	"mixup/internal/server"
)

type serverLifecycle interface {
	Start() error
	Stop() error
}

var (
	loadConfigFunc      = config.Load
	setLogLevelFunc     = applog.SetLevel
	newMockDatabaseFunc = mock.New
	configureDatabase   = db.Configure
	closeDatabaseFunc   = db.Close
	newServerFunc       = func(cfg server.Config) (serverLifecycle, error) {
		return server.New(cfg)
	}
	subscribeShutdownSig = func() (<-chan os.Signal, func()) {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT)
		return ch, func() { signal.Stop(ch) }
	}
)

func main() {
	os.Exit(run(context.Background()))
}

func run(ctx context.Context) int {
	cfg, err := loadConfigFunc()
	if err != nil {
		applog.Error(ctx, "failed to load configuration", "error", err)
		return 1
	}

	if err := setLogLevelFunc(cfg.Logging.Level); err != nil {
		applog.Error(ctx, "invalid log level", "level", cfg.Logging.Level, "error", err)
		return 1
	}

	var database *gorm.DB
	if cfg.Database.UseMock {
		applog.Info(ctx, "using in-memory mock database")
		database, err = newMockDatabaseFunc(ctx)
	} else {
		database, err = configureDatabase(cfg.Database)
	}
	if err != nil {
		applog.Error(ctx, "failed to configure database", "error", err)
		return 1
	}

	srv, err := newServerFunc(server.Config{
		Addr:           cfg.Server.Addr,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Database:       database,
		CatalogWorkers: cfg.Catalog.Workers,
		Session: server.SessionConfig{
			Lifetime:     cfg.Auth.Session.Lifetime,
			CookieName:   cfg.Auth.Session.CookieName,
			CookieDomain: cfg.Auth.Session.CookieDomain,
			CookieSecure: cfg.Auth.Session.CookieSecure,
		},
	})
	if err != nil {
		applog.Error(ctx, "failed to build server", "error", err)
		return 1
	}

	shutdown, unsubscribe := subscribeShutdownSig()
	defer unsubscribe()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			applog.Error(ctx, "server encountered an error", "error", err)
			return 1
		}
		return 0
	case sig := <-shutdown:
		applog.Info(ctx, "shutting down http server", "signal", sig.String())
	case <-ctx.Done():
		applog.Info(ctx, "shutting down http server", "reason", ctx.Err())
	}

	stopErr := srv.Stop()
	if err := closeDatabaseFunc(database); err != nil {
		applog.Warn(ctx, "failed to close database", "error", err)
	}
	if stopErr != nil {
		applog.Error(ctx, "graceful shutdown failed", "error", stopErr)
		return 1
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		applog.Error(ctx, "server encountered an error", "error", err)
		return 1
	}
	applog.Info(ctx, "server stopped")
	return 0
}
