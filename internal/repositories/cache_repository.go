package repositories

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss возвращается из Get, когда ключа нет в кеше.
var ErrCacheMiss = errors.New("cache miss")

type CacheRepositoryInterface interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, key ...string) error
	Incr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, expiration time.Duration) (bool, error)
	TTL(ctx context.Context, key string) (time.Duration, error)
}
