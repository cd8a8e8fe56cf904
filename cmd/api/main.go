package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"erp/internal/config"
	"erp/internal/logger"
	"erp/internal/store"
)

func main() {
	cfg := config.Load()

	// Set Gin mode based on environment
	if !cfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}

	appLog := logger.New("API : ", logger.Options{
		Token:       cfg.RollbarToken,
		Environment: cfg.Env,
		CodeVersion: cfg.Build,
		Enabled:     !cfg.Debug(),
	})

	if err := runHTTP(cfg, appLog); err != nil {
		log.Fatalf("http server failed: %v", err)
	}
}

func runHTTP(cfg config.App, appLog logger.Logger) error {
	db, err := store.NewDB(cfg.DBDriver, cfg.DatabaseURL)
	if db == nil {
		return err
	}
	if err != nil {
		appLog.Warn("db not reachable, read paths will degrade", err)
	}
	defer func() { _ = db.Close() }()

	if cfg.AutoMigrate {
		if err := store.MigrateUp(db.Client.DB, cfg.DBDriver); err != nil {
			appLog.Error("auto migrate failed", err)
		}
	}

	var redisClient *store.Redis
	if cfg.RateLimitBackend == "redis" {
		if redisClient, err = store.NewRedis(cfg.RedisAddr); err != nil {
			return err
		}
		defer func() { _ = redisClient.Close() }()
	}

	r, err := newRouter(cfg, appLog, db, redisClient)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: r,
	}

	go func() {
		appLog.Info("http listening", "addr", srv.Addr, "env", cfg.Env, "build", cfg.Build)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal("listen failed", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
