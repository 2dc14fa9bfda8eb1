package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/arnavshah/sandwich-orders-api/pkg/auth"
	"github.com/arnavshah/sandwich-orders-api/pkg/config"
	"github.com/arnavshah/sandwich-orders-api/pkg/database"
	"github.com/arnavshah/sandwich-orders-api/pkg/handlers"
	"github.com/arnavshah/sandwich-orders-api/pkg/menu"
	"github.com/arnavshah/sandwich-orders-api/pkg/orders"
	"go.uber.org/zap"
)

// Build wires storage, caches and services into a Handler.
// The returned cleanup closes every client that was opened.
func Build(ctx context.Context, cfg *config.Config, log *zap.Logger) (*handlers.Handler, func(), error) {
	var closers []func() error
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				log.Warn("cleanup failed", zap.Error(err))
			}
		}
	}

	db, err := database.Open(database.Options{
		DatabaseURL: cfg.DatabaseURL,
		DataPath:    cfg.DataPath,
		Debug:       !cfg.IsProduction() && cfg.LogLevel == "debug",
	})
	if err != nil {
		return nil, cleanup, err
	}
	if sqlDB, err := db.DB(); err == nil {
		closers = append(closers, sqlDB.Close)
	}

	if cfg.JWTSecret == "" || cfg.APIMasterSecret == "" {
		if cfg.IsProduction() {
			return nil, cleanup, fmt.Errorf("JWT_SECRET and API_MASTER_SECRET are required in production")
		}
		log.Warn("JWT_SECRET or API_MASTER_SECRET is empty; tokens and keys are not secure")
	}
	authn := auth.New(cfg.JWTSecret, cfg.APIMasterSecret)
	created, err := authn.EnsureAdminExists(db, cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		return nil, cleanup, fmt.Errorf("seed admin: %w", err)
	}
	if created {
		log.Info("Default admin user created", zap.String("username", cfg.AdminUsername))
	}

	var cache menu.Cache
	if cfg.RedisAddr != "" {
		rc, err := menu.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.MenuCacheTTL)
		if err != nil {
			// the form is still served from the database
			log.Warn("menu cache disabled", zap.Error(err))
		} else {
			cache = rc
			closers = append(closers, rc.Close)
		}
	}
	menuSvc := menu.NewService(menu.NewGormStore(db), cache, log.Named("menu"))

	var store orders.Store
	switch cfg.OrderStore {
	case "firestore":
		client, err := orders.NewFirestoreClient(ctx, cfg.FirebaseProjectID, cfg.FirebaseCredentials)
		if err != nil {
			return nil, cleanup, err
		}
		closers = append(closers, client.Close)
		store = orders.NewFirestoreStore(client)
	default:
		store = orders.NewGormStore(db)
	}

	calc, err := cfg.Calculator()
	if err != nil {
		return nil, cleanup, err
	}
	log.Info("order dates configured",
		zap.String("cutoff", calc.Cutoff.String()),
		zap.Int("window", calc.Window),
		zap.Int("cycle", calc.Schedule.Len()),
		zap.String("timezone", calc.Location.String()),
		zap.String("store", cfg.OrderStore),
	)

	h := &handlers.Handler{
		DB:     db,
		Auth:   authn,
		Orders: orders.NewService(store, calc, menuSvc),
		Menu:   menuSvc,
		Log:    log,
		Now:    time.Now,
	}
	if cfg.RequestsPerMinute > 0 {
		h.Throttle = handlers.NewKeyThrottle(cfg.RequestsPerMinute)
	}
	return h, cleanup, nil
}
