package ws

import (
	"sync"
	"time"
)

// FloodLimiter is a sliding-window message limiter keyed by sender name.
type FloodLimiter struct {
	mu       sync.Mutex
	history  map[string][]time.Time
	limit    int
	interval time.Duration
}

func NewFloodLimiter(limit int, interval time.Duration) *FloodLimiter {
	return &FloodLimiter{
		history:  make(map[string][]time.Time),
		limit:    limit,
		interval: interval,
	}
}

func (fl *FloodLimiter) Allow(sender string) bool {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	now := time.Now()
	windowStart := now.Add(-fl.interval)

	attempts := fl.history[sender]
	fresh := make([]time.Time, 0, len(attempts))
	for _, t := range attempts {
		if t.After(windowStart) {
			fresh = append(fresh, t)
		}
	}

	if len(fresh) >= fl.limit {
		fl.history[sender] = fresh
		return false
	}

	fresh = append(fresh, now)
	fl.history[sender] = fresh
	return true
}
