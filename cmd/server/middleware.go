package main

import (
	"fmt"
	"time"

	"codeberg.org/lessonplanner/server/internal/errors"
	"codeberg.org/lessonplanner/server/internal/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

const rateLimitKeyPrefix = "lessonplanner:ratelimit"

// allows every origin when none are configured, otherwise only the allowlist
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}

	if len(allowedOrigins) == 0 || (len(allowedOrigins) == 1 && allowedOrigins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowedOrigins
	}

	return cors.New(cfg)
}

// per-IP request limit; counters live in Redis when rdb is set so replicas share them
func RateLimitMiddleware(formatted string, rdb *redis.Client) (gin.HandlerFunc, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit %q: %w", formatted, err)
	}

	var store limiter.Store
	if rdb != nil {
		store, err = sredis.NewStoreWithOptions(rdb, limiter.StoreOptions{Prefix: rateLimitKeyPrefix})
		if err != nil {
			return nil, fmt.Errorf("failed to create rate limit store: %w", err)
		}
	} else {
		store = memory.NewStore()
	}

	instance := limiter.New(store, rate, limiter.WithTrustForwardHeader(true))

	return mgin.NewMiddleware(instance,
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			errors.TooManyRequests(c, "rate limit exceeded, please slow down")
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			// fail open when the store is unreachable
			logger.ErrorErr(err, "rate limiter unavailable", "path", c.Request.URL.Path)
			c.Next()
		}),
	), nil
}
