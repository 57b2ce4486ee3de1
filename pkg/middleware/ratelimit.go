package middleware

import (
	"context"
	"fmt"
	"time"

	apperrors "print3d-service/pkg/errors"
	"print3d-service/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Counter - атомарный счётчик с временем жизни (Redis INCR + EXPIRE + TTL).
type Counter interface {
	Incr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, expiration time.Duration) (bool, error)
	// TTL возвращает отрицательное значение, если у ключа нет срока жизни.
	TTL(ctx context.Context, key string) (time.Duration, error)
}

// RateLimit ограничивает число запросов с одного IP за окно. При недоступности
// счётчика запрос пропускается: приём заявок важнее ограничения.
func RateLimit(counter Counter, scope string, limit int, window time.Duration, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if limit <= 0 {
				return next(c)
			}
			ctx := c.Request().Context()
			key := fmt.Sprintf("ratelimit:%s:%s", scope, c.RealIP())

			n, err := counter.Incr(ctx, key)
			if err != nil {
				logger.Warn("RateLimit: счётчик недоступен", zap.String("key", key), zap.Error(err))
				return next(c)
			}
			// Ключ без срока жизни (например, EXPIRE не прошёл на первом запросе)
			// получает окно заново, иначе IP остался бы заблокирован навсегда.
			if n == 1 || !hasTTL(ctx, counter, key) {
				if _, err := counter.Expire(ctx, key, window); err != nil {
					logger.Warn("RateLimit: не удалось выставить TTL", zap.String("key", key), zap.Error(err))
				}
			}
			if n > int64(limit) {
				logger.Warn("RateLimit: превышен лимит", zap.String("key", key), zap.Int64("count", n))
				return utils.ErrorResponse(c, apperrors.ErrTooManyRequests, logger)
			}
			return next(c)
		}
	}
}

func hasTTL(ctx context.Context, counter Counter, key string) bool {
	ttl, err := counter.TTL(ctx, key)
	if err != nil {
		return true
	}
	return ttl >= 0
}
