package handler

import (
	"context"
	"log"
	"net/http"

	"github.com/arnavshah/sandwich-orders-api/pkg/bootstrap"
	"github.com/arnavshah/sandwich-orders-api/pkg/config"
	"github.com/arnavshah/sandwich-orders-api/pkg/handlers"
	"github.com/arnavshah/sandwich-orders-api/pkg/logger"
	"github.com/gin-gonic/gin"
)

var r http.Handler

func init() {
	// Load .env if it exists (for local testing with vercel dev)
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	zlog, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("could not initialize logger: %v", err)
	}

	// connections live for the lifetime of the function instance
	h, _, err := bootstrap.Build(context.Background(), cfg, zlog)
	if err != nil {
		log.Fatalf("could not start: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)
	r = handlers.NewRouter(h)
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, req *http.Request) {
	r.ServeHTTP(w, req)
}
