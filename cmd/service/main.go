package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"gitlab.com/dirk.krummacker/contacts-store/internal/config"
	"gitlab.com/dirk.krummacker/contacts-store/internal/logging"
	"gitlab.com/dirk.krummacker/contacts-store/internal/service"
	"gitlab.com/dirk.krummacker/contacts-store/internal/store"
)

// Usage example on the command line:
// > PORT=3000 DATA_FILE=database/contacts.json GIN_MODE=release GIN_LOGGING=OFF go run main.go
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	contacts, closeStore, err := openStore(cfg, logger)
	if err != nil {
		logger.Error("could not open the contacts store", "backend", cfg.StoreBackend, "err", err)
		os.Exit(1)
	}
	defer closeStore()

	options := service.Options{PublicDir: cfg.PublicDir, HTTPLogging: cfg.HTTPLogging, Logger: logger}
	if cfg.Metrics {
		options.Metrics = metrics.NewSet()
	}
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           service.SetupHttpRouter(contacts, options),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", server.Addr, "backend", cfg.StoreBackend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
}

// openStore creates the store selected in the configuration and a function that releases it.
func openStore(cfg *config.Config, logger *slog.Logger) (store.Store, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendMySQL:
		sqlDB, err := store.OpenMySQL(cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBName)
		if err != nil {
			return nil, nil, err
		}
		sqlStore, err := store.NewSQLStore(sqlDB)
		if err != nil {
			sqlDB.Close()
			return nil, nil, err
		}
		return sqlStore, func() { sqlStore.Close() }, nil
	case config.BackendMemory:
		return store.NewMemStore(), func() {}, nil
	default:
		fileStore := store.NewFileStore(cfg.DataFile)
		if err := fileStore.Init(context.Background()); err != nil {
			return nil, nil, err
		}
		if err := fileStore.CheckAccess(); err != nil {
			logger.Warn("Can not be accessed", "file", fileStore.Path(), "err", err)
		} else {
			logger.Info("Can be accessed", "file", fileStore.Path())
		}
		return fileStore, func() {}, nil
	}
}
