package middleware

import (
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	stdlibmw "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/stormnotes/suite/internal/request"
)

const defaultRatelimitRate = "10-S"

// RateLimit returns middleware that uses ulule/limiter with Redis.
// The rate string uses limiter's format, e.g. "10-S" or "200-M".
// Uses request.ClientIP for the limit key.
func RateLimit(redisClient *redis.Client, rateStr string) (func(http.Handler) http.Handler, error) {
	if rateStr == "" {
		rateStr = defaultRatelimitRate
	}
	rate, err := limiter.NewRateFromFormatted(rateStr)
	if err != nil {
		return nil, err
	}
	store, err := redisstore.NewStore(redisClient)
	if err != nil {
		return nil, err
	}
	return limitHandler(store, rate), nil
}

// RateLimitInMemory is RateLimit backed by an in-process store, for
// deployments running without Redis. Counters reset on restart.
func RateLimitInMemory(rateStr string) (func(http.Handler) http.Handler, error) {
	if rateStr == "" {
		rateStr = defaultRatelimitRate
	}
	rate, err := limiter.NewRateFromFormatted(rateStr)
	if err != nil {
		return nil, err
	}
	return limitHandler(memorystore.NewStore(), rate), nil
}

func limitHandler(store limiter.Store, rate limiter.Rate) func(http.Handler) http.Handler {
	instance := limiter.New(store, rate)
	keyGetter := func(r *http.Request) string {
		return request.ClientIP(r)
	}
	mw := stdlibmw.NewMiddleware(instance, stdlibmw.WithKeyGetter(keyGetter))
	return mw.Handler
}
