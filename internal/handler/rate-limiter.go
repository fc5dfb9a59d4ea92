package handler

import (
	"sync"

	"golang.org/x/time/rate"
)

// userLimiter throttles generation-triggering messages per user
type userLimiter struct {
	mu       sync.Mutex
	limiters map[int64]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func newUserLimiter(perMinute, burst int) *userLimiter {
	return &userLimiter{
		limiters: make(map[int64]*rate.Limiter),
		limit:    rate.Limit(float64(perMinute) / 60.0),
		burst:    burst,
	}
}

func (l *userLimiter) Allow(telegramID int64) bool {
	l.mu.Lock()
	limiter, ok := l.limiters[telegramID]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[telegramID] = limiter
	}
	l.mu.Unlock()

	return limiter.Allow()
}
