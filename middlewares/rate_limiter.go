package middleware

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	ginmiddleware "github.com/ulule/limiter/v3/drivers/middleware/gin"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/petersfiske/booking/logger"
)

// ParseCustomRate allows formats like "10-2m", "30-20m", "5-1h", "20-10s".
func ParseCustomRate(rateStr string) (limiter.Rate, error) {
	parts := strings.Split(rateStr, "-")
	if len(parts) != 2 {
		return limiter.Rate{}, fmt.Errorf("invalid rate format: %s", rateStr)
	}

	limit, err := strconv.Atoi(parts[0])
	if err != nil {
		return limiter.Rate{}, fmt.Errorf("invalid limit: %s", parts[0])
	}

	durationStr := parts[1]
	if len(durationStr) < 2 {
		return limiter.Rate{}, fmt.Errorf("unsupported period: %s", durationStr)
	}
	unit := durationStr[len(durationStr)-1:]
	count, err := strconv.Atoi(durationStr[:len(durationStr)-1])
	if err != nil {
		return limiter.Rate{}, fmt.Errorf("invalid period: %s", durationStr)
	}

	var period time.Duration
	switch unit {
	case "s":
		period = time.Duration(count) * time.Second
	case "m":
		period = time.Duration(count) * time.Minute
	case "h":
		period = time.Duration(count) * time.Hour
	default:
		return limiter.Rate{}, fmt.Errorf("unsupported period: %s", durationStr)
	}

	return limiter.Rate{
		Period: period,
		Limit:  int64(limit),
	}, nil
}

// NewRateLimiter limits a route per client IP using a Redis-backed window,
// e.g. NewRateLimiter(client, "5-1m", "submit-booking"). The booking form is
// public and unauthenticated, so the client IP is the only identity there
// is. A limiter that cannot be constructed degrades to a pass-through
// rather than blocking bookings.
func NewRateLimiter(client *goredis.Client, rateStr, routeID string) gin.HandlerFunc {
	rate, err := ParseCustomRate(rateStr)
	if err != nil {
		logger.ErrorLogger.Errorf("Error parsing rate for route %s: %v", routeID, err)
		return func(c *gin.Context) {
			c.Next()
		}
	}

	store, err := redisstore.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix:          fmt.Sprintf("rate_limiter:%s", routeID),
		MaxRetry:        3,
		CleanUpInterval: rate.Period,
	})
	if err != nil {
		logger.ErrorLogger.Errorf("Error creating Redis store for route %s: %v", routeID, err)
		return func(c *gin.Context) {
			c.Next()
		}
	}

	limiterInstance := limiter.New(store, rate)

	return ginmiddleware.NewMiddleware(limiterInstance, ginmiddleware.WithKeyGetter(func(c *gin.Context) string {
		return c.ClientIP()
	}))
}
