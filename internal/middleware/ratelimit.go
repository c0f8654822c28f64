package middleware

import (
	"fmt"

	"docflow_backend/internal/logger"
	"docflow_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	ginlimiter "github.com/ulule/limiter/v3/drivers/middleware/gin"
	memory "github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

// RateLimiter ограничивает запросы с одного IP.
// rate в формате limiter, например "10-M". Если redisClient задан, счетчики общие для всех инстансов.
func RateLimiter(rate string, prefix string, redisClient *redis.Client) (gin.HandlerFunc, error) {
	parsed, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, fmt.Errorf("invalid rate %q: %w", rate, err)
	}

	var store limiter.Store
	if redisClient != nil {
		store, err = sredis.NewStoreWithOptions(redisClient, limiter.StoreOptions{Prefix: prefix})
		if err != nil {
			return nil, fmt.Errorf("failed to create redis limiter store: %w", err)
		}
	} else {
		store = memory.NewStoreWithOptions(limiter.StoreOptions{
			Prefix:          prefix,
			CleanUpInterval: limiter.DefaultCleanUpInterval,
		})
	}

	return ginlimiter.NewMiddleware(
		limiter.New(store, parsed),
		ginlimiter.WithLimitReachedHandler(func(c *gin.Context) {
			logger.Failure(c.Request.Context(), "Rate limit exceeded",
				"path", c.Request.URL.Path,
				"ip", c.ClientIP(),
			)
			apperrors.HandleError(c, apperrors.ErrTooManyRequests)
		}),
		ginlimiter.WithErrorHandler(func(c *gin.Context, err error) {
			logger.CtxWithError(c.Request.Context(), "Rate limiter failure", err)
			c.Next()
		}),
	), nil
}
