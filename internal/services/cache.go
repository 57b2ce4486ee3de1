package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"print3d-service/internal/repositories"
)

const (
	portfolioPublicCacheKey = "portfolio:public"
	clientsPublicCacheKey   = "clients:public"
)

// publicCache кеширует публичные списки в Redis. Ошибки кеша не фатальны: читаем из БД.
type publicCache struct {
	cache  repositories.CacheRepositoryInterface
	ttl    time.Duration
	logger *zap.Logger
}

func newPublicCache(cache repositories.CacheRepositoryInterface, ttl time.Duration, logger *zap.Logger) *publicCache {
	return &publicCache{cache: cache, ttl: ttl, logger: logger}
}

func loadCached[T any](ctx context.Context, c *publicCache, key string, load func(context.Context) (T, error)) (T, error) {
	if c == nil || c.cache == nil || c.ttl <= 0 {
		return load(ctx)
	}

	raw, err := c.cache.Get(ctx, key)
	if err == nil {
		var cached T
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return cached, nil
		}
		c.logger.Warn("Повреждённая запись в кеше, перечитываем из БД", zap.String("key", key))
	} else if !errors.Is(err, repositories.ErrCacheMiss) {
		c.logger.Warn("Кеш недоступен", zap.String("key", key), zap.Error(err))
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if payload, err := json.Marshal(value); err == nil {
		if err := c.cache.Set(ctx, key, payload, c.ttl); err != nil {
			c.logger.Warn("Не удалось записать в кеш", zap.String("key", key), zap.Error(err))
		}
	}
	return value, nil
}

func (c *publicCache) invalidate(ctx context.Context, key string) {
	if c == nil || c.cache == nil {
		return
	}
	if err := c.cache.Del(ctx, key); err != nil {
		c.logger.Warn("Не удалось сбросить кеш", zap.String("key", key), zap.Error(err))
	}
}
