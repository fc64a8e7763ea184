package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wobot-todo/backend/internal/auth"
	"github.com/wobot-todo/backend/internal/config"
	"github.com/wobot-todo/backend/internal/db"
	"github.com/wobot-todo/backend/internal/handler"
	"github.com/wobot-todo/backend/internal/obs"
	"github.com/wobot-todo/backend/internal/service"
)

// @title Wobot ToDo API
// @version 1.0
// @description Multi-user todo API with JWT authentication.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		// The logger is not configured yet.
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := obs.NewLogger(cfg.Log.Level)
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	tokens, err := auth.NewTokenService(cfg.Auth.TokenConfig())
	if err != nil {
		log.Fatal("token service", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dsn, err := cfg.Postgres.DSN()
	if err != nil {
		log.Fatal("postgres config", zap.Error(err))
	}
	pool, err := db.NewPostgresPool(ctx, dsn)
	if err != nil {
		log.Fatal("postgres", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		log.Fatal("migrate", zap.Error(err))
	}

	store := &db.Postgres{Pool: pool}
	metrics := obs.NewMetrics()

	gin.SetMode(gin.ReleaseMode)
	router := handler.NewRouter(handler.Deps{
		Auth:    service.NewAuthService(store, tokens, log, metrics),
		Todos:   service.NewTodoService(store),
		Log:     log,
		Metrics: metrics,
		DB:      store,
		HTTP:    cfg.HTTP,
	})

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("http listening", zap.String("addr", cfg.HTTP.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http serve", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown", zap.Error(err))
	}
}
