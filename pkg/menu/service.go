package menu

import (
	"context"
	"errors"
	"time"

	"github.com/arnavshah/sandwich-orders-api/pkg/models"
	"go.uber.org/zap"
)

// Service serves the current order form, reading through an optional cache
type Service struct {
	Store Store
	Cache Cache // may be nil
	Log   *zap.Logger
}

func NewService(store Store, cache Cache, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{Store: store, Cache: cache, Log: log}
}

// Current returns the latest published form
func (s *Service) Current(ctx context.Context) (*models.FormSchema, error) {
	if s.Cache != nil {
		cached, err := s.Cache.Get(ctx)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			s.Log.Warn("menu cache read failed", zap.Error(err))
		}
	}

	schema, err := s.Store.Latest(ctx)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, schema); err != nil {
			s.Log.Warn("menu cache write failed", zap.Error(err))
		}
	}
	return schema, nil
}

// Publish stores schema as the next version and drops the cached copy.
// A concurrent publish of the same version fails with ErrVersionConflict.
func (s *Service) Publish(ctx context.Context, schema models.FormSchema, now time.Time) (*models.FormSchema, error) {
	if err := ValidateSchema(&schema); err != nil {
		return nil, err
	}

	schema.UpdatedAt = now.UTC()

	if err := s.Store.Save(ctx, &schema); err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if err := s.Cache.Clear(ctx); err != nil {
			s.Log.Warn("menu cache clear failed", zap.Error(err))
		}
	}
	s.Log.Info("order form published", zap.Int("version", schema.Version))
	return &schema, nil
}
