package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mergington-hs/activities/internal/api"
	"github.com/mergington-hs/activities/internal/config"
	"github.com/mergington-hs/activities/internal/events"
	"github.com/mergington-hs/activities/internal/httpui"
	"github.com/mergington-hs/activities/internal/registry"
)

func main() {
	os.Exit(runCLI(os.Args[1:], os.Stdout, os.Stderr))
}

func serve() int {
	cfg := config.Load()
	initLogger(cfg.LogLevel)

	seed := registry.Seed()
	if cfg.SeedPath != "" {
		loaded, err := registry.LoadSeedFile(cfg.SeedPath)
		if err != nil {
			slog.Error("seed file load failed", "path", cfg.SeedPath, "err", err)
			return 1
		}
		seed = loaded
	}
	reg, err := registry.New(seed)
	if err != nil {
		slog.Error("registry init failed", "err", err)
		return 1
	}

	eventHub := events.NewHub()

	mux := http.NewServeMux()
	if err := httpui.Register(mux); err != nil {
		slog.Error("frontend init failed", "err", err)
		return 1
	}
	api.Register(mux, reg, eventHub)

	return run(cfg, mux, reg.Len())
}

type commandContext struct {
	stdout io.Writer
	stderr io.Writer
}

func run(cfg config.Config, mux *http.ServeMux, activityCount int) int {
	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      requestLog(mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-shutdownCh
		slog.Info("shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("shutdown error", "err", err)
		}
	}()

	slog.Info("activities service started",
		"listen", cfg.ListenAddr,
		"activities", activityCount,
		"seed_file", cfg.SeedPath,
		"log_level", cfg.LogLevel,
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", "err", err)
		return 1
	}
	slog.Info("activities service stopped")
	return 0
}

func requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start).Truncate(time.Millisecond))
	})
}

func initLogger(level string) {
	var lv slog.Level
	switch level {
	case "debug":
		lv = slog.LevelDebug
	case "warn":
		lv = slog.LevelWarn
	case "error":
		lv = slog.LevelError
	default:
		lv = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lv})))
}
