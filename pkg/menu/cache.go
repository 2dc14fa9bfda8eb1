package menu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/arnavshah/sandwich-orders-api/pkg/models"
	"github.com/go-redis/redis/v8"
)

// CacheKey holds the last-seen order form
const CacheKey = "menu:form_schema"

// ErrCacheMiss is returned by a Cache that holds no form
var ErrCacheMiss = errors.New("form schema not cached")

// Cache holds the most recently read order form
type Cache interface {
	Get(ctx context.Context) (*models.FormSchema, error)
	Set(ctx context.Context, s *models.FormSchema) error
	Clear(ctx context.Context) error
}

// RedisCache stores the form as JSON under CacheKey
type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewRedisCache connects and pings Redis
func NewRedisCache(addr, password string, db int, ttl time.Duration) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis (menu cache): %w", err)
	}
	return &RedisCache{Client: client, TTL: ttl}, nil
}

func (c *RedisCache) Get(ctx context.Context) (*models.FormSchema, error) {
	raw, err := c.Client.Get(ctx, CacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	var s models.FormSchema
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *RedisCache) Set(ctx context.Context, s *models.FormSchema) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, CacheKey, raw, c.TTL).Err()
}

func (c *RedisCache) Clear(ctx context.Context) error {
	return c.Client.Del(ctx, CacheKey).Err()
}

func (c *RedisCache) Close() error {
	return c.Client.Close()
}
