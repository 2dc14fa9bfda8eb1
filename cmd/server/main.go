package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arnavshah/sandwich-orders-api/pkg/bootstrap"
	"github.com/arnavshah/sandwich-orders-api/pkg/config"
	"github.com/arnavshah/sandwich-orders-api/pkg/handlers"
	"github.com/arnavshah/sandwich-orders-api/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	zlog, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("could not initialize logger: %v", err)
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// run returns only after every deferred close has happened
	if err := run(cfg, zlog); err != nil {
		zlog.Error("server stopped", zap.Error(err))
		zlog.Sync()
		os.Exit(1)
	}
	zlog.Sync()
}

func run(cfg *config.Config, zlog *zap.Logger) error {
	h, cleanup, err := bootstrap.Build(context.Background(), cfg, zlog)
	defer cleanup()
	if err != nil {
		return fmt.Errorf("could not start: %w", err)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: handlers.NewRouter(h),
	}

	serveErr := make(chan error, 1)
	go func() {
		zlog.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return fmt.Errorf("could not run server: %w", err)
	case <-quit:
	}
	zlog.Info("server is shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("server forced to shutdown", zap.Error(err))
	}
	return nil
}
