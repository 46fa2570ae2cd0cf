package ratelimit

type RateLimitConfig struct {
	RequestsPerMinute int
	RequestsPerHour   int
}

// RateLimiter throttles send requests per caller so one tenant cannot
// monopolize the dispatch workers.
type RateLimiter interface {
	Allow(key string, config RateLimitConfig) (bool, error)
}

// NoopRateLimiter allows everything; used when redis is disabled.
type NoopRateLimiter struct{}

func (NoopRateLimiter) Allow(_ string, _ RateLimitConfig) (bool, error) {
	return true, nil
}
