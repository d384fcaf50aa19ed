package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"gorm.io/gorm"

	"banktrack/internal/config"
	"banktrack/internal/db"
	"banktrack/internal/db/mock"
	applog "banktrack/internal/log"
	"banktrack/internal/server"
)

// appServer is the slice of server.Server the entrypoint depends on.
type appServer interface {
	Start() error
	Stop() error
}

// Seams for tests.
var (
	loadConfigFunc      = config.Load
	setLogLevelFunc     = applog.SetLevel
	newMockDatabaseFunc = mock.New
	configureDatabase   = db.Configure
	newServerFunc       = func(cfg server.Config) (appServer, error) {
		return server.New(cfg)
	}
	subscribeShutdownSig = func(sigCh chan<- os.Signal) {
		signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	}
)

func main() {
	if err := run(); err != nil {
		applog.Error(context.Background(), "server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := loadConfigFunc()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := setLogLevelFunc(cfg.Logging.Level); err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}

	var database *gorm.DB
	if cfg.Database.UseMock || strings.TrimSpace(cfg.Database.URL) == "" {
		applog.Info(ctx, "using in-memory mock database")
		database, err = newMockDatabaseFunc(ctx)
	} else {
		database, err = configureDatabase(cfg.Database)
	}
	if err != nil {
		return fmt.Errorf("configure database: %w", err)
	}

	srv, err := newServerFunc(server.Config{
		Addr: cfg.Server.Addr,
		Session: server.SessionConfig{
			Lifetime:     cfg.Session.Lifetime,
			CookieName:   cfg.Session.CookieName,
			CookieDomain: cfg.Session.CookieDomain,
			CookieSecure: cfg.Session.CookieSecure,
		},
		Database: database,
		Universe: cfg.Pipeline.UniverseSize,
	})
	if err != nil {
		return fmt.Errorf("build server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		applog.Info(ctx, "starting http server", "addr", cfg.Server.Addr)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	sigCh := make(chan os.Signal, 1)
	subscribeShutdownSig(sigCh)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		applog.Info(ctx, "shutdown signal received", "signal", fmt.Sprint(sig))
		if err := srv.Stop(); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return <-errCh
	}
}
