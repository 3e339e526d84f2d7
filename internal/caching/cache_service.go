package caching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"esatalim/internal/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "esatalim"

type CacheService interface {
	// Category caching
	GetActiveCategories(ctx context.Context) ([]*models.Category, error)
	SetActiveCategories(ctx context.Context, categories []*models.Category, ttl time.Duration) error
	InvalidateCategories(ctx context.Context) error

	// Rate limiting
	IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
	ResetRateLimit(ctx context.Context, key string) error

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

// NewRedisClient builds a client for addr. A redis:// or rediss:// scheme
// prefix is accepted and stripped.
func NewRedisClient(addr, password string, db int, log *zap.Logger) *redis.Client {
	parsedAddr := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://")

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	// The service still runs without Redis; cache calls fail and are logged
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Warn("Redis ping failed on initialization", zap.String("addr", parsedAddr), zap.Error(err))
	} else {
		log.Debug("Redis connection established", zap.String("addr", parsedAddr))
	}

	return client
}

func NewRedisCacheService(client *redis.Client) CacheService {
	return &redisCacheService{client: client}
}

func activeCategoriesKey() string {
	return keyPrefix + ":categories:active"
}

func rateLimitKey(key string) string {
	return fmt.Sprintf("%s:ratelimit:%s", keyPrefix, key)
}

// GetActiveCategories returns nil, nil on a cache miss
func (r *redisCacheService) GetActiveCategories(ctx context.Context) ([]*models.Category, error) {
	data, err := r.client.Get(ctx, activeCategoriesKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var categories []*models.Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *redisCacheService) SetActiveCategories(ctx context.Context, categories []*models.Category, ttl time.Duration) error {
	data, err := json.Marshal(categories)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, activeCategoriesKey(), data, ttl).Err()
}

func (r *redisCacheService) InvalidateCategories(ctx context.Context) error {
	return r.client.Del(ctx, activeCategoriesKey()).Err()
}

// IsRateLimited counts one attempt against key and reports whether the
// limit within window has been exceeded.
func (r *redisCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	cacheKey := rateLimitKey(key)
	count, err := r.client.Incr(ctx, cacheKey).Result()
	if err != nil {
		return false, err
	}

	// Set expiry on first attempt
	if count == 1 {
		if err := r.client.Expire(ctx, cacheKey, window).Err(); err != nil {
			return false, err
		}
	}

	return count > int64(limit), nil
}

func (r *redisCacheService) ResetRateLimit(ctx context.Context, key string) error {
	return r.client.Del(ctx, rateLimitKey(key)).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
