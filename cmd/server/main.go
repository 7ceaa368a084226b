package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sentratech/roi-engine/internal/config"
	"github.com/sentratech/roi-engine/internal/db"
	"github.com/sentratech/roi-engine/internal/logging"
	"github.com/sentratech/roi-engine/internal/metrics"
	"github.com/sentratech/roi-engine/internal/migrations"
	"github.com/sentratech/roi-engine/internal/roi"
	"github.com/sentratech/roi-engine/internal/seed"
)

type server struct {
	auth   *authService
	db     *sql.DB
	engine *roi.Engine
	log    *zap.Logger
}

func main() {
	cfg := config.Load()

	logger := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	defer func() { _ = logger.Sync() }()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}
	if cfg.SessionSecret == "" {
		logger.Warn("SESSION_SECRET is not set; using a random key, admin sessions end on restart")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer database.Close()

	if err := migrations.Up(ctx, database, logger); err != nil {
		logger.Fatal("failed to run database migrations", zap.Error(err))
	}

	stats, err := seed.Run(ctx, database, seed.Config{
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
		Rates:         roi.DefaultRates(),
	})
	if err != nil {
		logger.Fatal("failed to seed database", zap.Error(err))
	}
	logger.Info("seed complete", zap.Int("inserts", stats.Inserts))

	rates, err := seed.LoadRates(ctx, database)
	if err != nil {
		logger.Fatal("failed to load rate table", zap.Error(err))
	}
	engine, err := roi.New(rates)
	if err != nil {
		logger.Fatal("invalid rate table", zap.Error(err))
	}

	auth := newAuthService(database, cfg.SessionSecret)

	srv := &server{auth: auth, db: database, engine: engine, log: logger}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", zap.String("addr", httpServer.Addr), zap.String("env", cfg.Env), zap.Int("countries", engine.Rates().Len()))
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/countries", s.handleCountries)
		r.Post("/roi", s.handleCalculate)
		r.Post("/agents", s.handleAgents)
		r.Post("/reports", s.handleReportCreate)
		r.Get("/reports/{id}", s.handleReportDetail)
		r.Get("/reports/{id}/text", s.handleReportText)
		r.Get("/reports/{id}/xlsx", s.handleReportXLSX)
	})

	r.Post("/login", s.handleLoginSubmit)
	r.Post("/logout", s.handleLogout)
	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Get("/admin/reports", s.handleAdminReports)
	})

	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.PingContext(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
