package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cwrk-planet/club-service/config"
	"github.com/cwrk-planet/club-service/internal/repository"
	"github.com/cwrk-planet/club-service/internal/repository/postgres"
	"github.com/cwrk-planet/club-service/internal/repository/sqlite"
	"github.com/cwrk-planet/club-service/internal/security"
	"github.com/cwrk-planet/club-service/internal/service"
	httpx "github.com/cwrk-planet/club-service/internal/transport/http"
	"github.com/cwrk-planet/club-service/internal/transport/ws"
	"github.com/cwrk-planet/club-service/pkg/logger"
)

func main() {
	// --- config ---
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger.Init(logger.Config{
		Env:       logger.Env(cfg.Logging.Env),
		Service:   cfg.Logging.Service,
		Version:   cfg.Logging.Version,
		Backend:   logger.Backend(cfg.Logging.Backend),
		AddSource: cfg.Logging.AddSource,
		Debug:     cfg.Logging.Debug,
	})
	slog.Info("starting club-service",
		"env", cfg.Logging.Env, "version", cfg.Logging.Version, "storage", cfg.Storage.Driver)

	// --- storage ---
	ctx := context.Background()
	var store repository.Store
	switch cfg.Storage.Driver {
	case "sqlite":
		store, err = sqlite.New(ctx, cfg.Storage.Path)
	default:
		store, err = postgres.New(ctx, cfg.Storage.DSN)
	}
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	defer store.Close()

	// --- services ---
	authSvc := service.NewAuthService(store, security.BcryptConfig{})
	chatSvc := service.NewChatService(store)
	memberSvc := service.NewMemberService(store)

	// --- WS Hub & Server ---
	hub := ws.NewHub()
	wsServer := ws.NewServer(hub, chatSvc)

	// --- HTTP ---
	handler := httpx.NewHandler(authSvc, memberSvc, hub)
	router := httpx.NewRouter(handler, wsServer)
	httpSrv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http listen", "addr", cfg.HTTP.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// --- graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal", "sig", sig)
	case err := <-errCh:
		slog.Error("server error", "err", err)
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = httpSrv.Shutdown(ctxShutdown)
	slog.Info("stopped")
}
