package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/mtse/marketing-engine/internal/auth"
	"github.com/mtse/marketing-engine/internal/config"
	"github.com/mtse/marketing-engine/internal/fetch"
	"github.com/mtse/marketing-engine/internal/httpx"
	"github.com/mtse/marketing-engine/internal/quota"
	"github.com/mtse/marketing-engine/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	var users store.UserStore
	if cfg.DBPath != "" {
		st, err := store.OpenSQLite(cfg.DBPath)
		if err != nil {
			logger.Error("open store", slog.String("err", err.Error()))
			os.Exit(1)
		}
		users = st
	} else {
		logger.Warn("DB_PATH not set, users are in-memory only")
		users = store.NewMemoryStore()
	}
	defer users.Close()

	authSvc := auth.NewService(users)
	seedAdmin(logger, authSvc, cfg)

	prom := prometheus.NewRegistry()
	prom.MustRegister(collectors.NewGoCollector())
	meter := quota.NewMeter(users, prom)

	client := fetch.NewHTTPClient(cfg.HTTPTimeout)
	r := httpx.NewRouter(logger, cfg, users, authSvc, meter, client, prom)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("starting server", slog.String("port", cfg.Port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", slog.String("err", err.Error()))
		os.Exit(1)
	}
}

// seedAdmin creates the admin account on first boot. Skipped when no admin
// password is configured; an existing admin is left untouched.
func seedAdmin(logger *slog.Logger, authSvc *auth.Service, cfg config.Config) {
	if cfg.AdminPassword == "" {
		logger.Warn("ADMIN_PASSWORD not set, no admin account seeded")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := authSvc.Register(ctx, cfg.AdminUser, cfg.AdminPassword, "admin", quota.PlanPro)
	if err != nil && !errors.Is(err, store.ErrUserExists) {
		logger.Error("seed admin", slog.String("err", err.Error()))
		os.Exit(1)
	}
}
