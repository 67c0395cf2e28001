package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-faster/errors"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"
	mhttp "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/iota-uz/boxoffice/pkg/composables"
	"github.com/iota-uz/boxoffice/pkg/configuration"
	"github.com/iota-uz/boxoffice/pkg/httpapi"
)

type RateLimitConfig struct {
	RequestsPerPeriod int
	Period            time.Duration
	Store             limiter.Store
	// Prefix separates the counters of independent limiters sharing a store.
	Prefix string
	// TrustForwardHeader makes the limiter key on X-Forwarded-For / X-Real-IP.
	TrustForwardHeader bool
}

func NewMemoryStore() limiter.Store {
	return memory.NewStore()
}

func NewRedisStore(redisURL string) (limiter.Store, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse redis url")
	}
	client := redis.NewClient(opts)
	store, err := sredis.NewStore(client)
	if err != nil {
		return nil, errors.Wrap(err, "redis limiter store")
	}
	return store, nil
}

// ConfiguredStore returns the limiter store named by the rate limit
// options, falling back to memory when redis cannot be reached.
func ConfiguredStore(opts configuration.RateLimitOptions, logger *logrus.Logger) limiter.Store {
	if opts.Storage != "redis" {
		return NewMemoryStore()
	}
	store, err := NewRedisStore(opts.RedisURL)
	if err != nil {
		if logger != nil {
			logger.WithError(err).Warn("redis rate limit store unavailable, falling back to memory")
		}
		return NewMemoryStore()
	}
	return store
}

func RateLimit(cfg RateLimitConfig) mux.MiddlewareFunc {
	if cfg.Period == 0 {
		cfg.Period = time.Second
	}
	if cfg.Store == nil {
		cfg.Store = NewMemoryStore()
	}
	rate := limiter.Rate{Period: cfg.Period, Limit: int64(cfg.RequestsPerPeriod)}
	instance := limiter.New(cfg.Store, rate, limiter.WithTrustForwardHeader(cfg.TrustForwardHeader))
	prefix := cfg.Prefix

	mw := mhttp.NewMiddleware(instance,
		mhttp.WithKeyGetter(func(r *http.Request) string {
			return prefix + instance.GetIPKey(r)
		}),
		mhttp.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			composables.TryUseLogger(r.Context()).WithField("path", r.URL.Path).Warn("rate limit reached")
			w.Header().Set("Retry-After", strconv.Itoa(int(cfg.Period.Seconds())))
			_ = httpapi.WriteError(w, http.StatusTooManyRequests, httpapi.CodeRateLimited, "too many requests", nil)
		}),
	)
	return mw.Handler
}
