package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Policy is a token bucket: Burst tokens, refilled at Per/Burst intervals.
type Policy struct {
	Burst int
	Per   time.Duration
}

func (p Policy) limit() rate.Limit {
	if p.Burst <= 0 || p.Per <= 0 {
		return rate.Inf
	}
	return rate.Every(p.Per / time.Duration(p.Burst))
}

const (
	ActionGeneral    = "general"
	ActionAuth       = "auth"
	ActionChatStream = "chat_stream"
	ActionUpload     = "upload"
	ActionPayment    = "payment"
	ActionContact    = "contact"
)

func DefaultPolicies(chatPerMinute int) map[string]Policy {
	return map[string]Policy{
		ActionGeneral:    {Burst: 60, Per: time.Minute},
		ActionAuth:       {Burst: 5, Per: time.Minute},
		ActionChatStream: {Burst: chatPerMinute, Per: time.Minute},
		ActionUpload:     {Burst: 10, Per: time.Minute},
		ActionPayment:    {Burst: 10, Per: time.Minute},
		ActionContact:    {Burst: 5, Per: time.Hour},
	}
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one bucket per (key, action), where key is a user id or
// client IP.
type RateLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	policies map[string]Policy
	now      func() time.Time
}

func NewRateLimiter(policies map[string]Policy) *RateLimiter {
	return &RateLimiter{
		buckets:  make(map[string]*bucket),
		policies: policies,
		now:      time.Now,
	}
}

func (rl *RateLimiter) policy(action string) Policy {
	if p, ok := rl.policies[action]; ok {
		return p
	}
	return rl.policies[ActionGeneral]
}

// Allow consumes a token if one is available. Otherwise it reports how long
// until the next token.
func (rl *RateLimiter) Allow(key, action string) (bool, time.Duration) {
	now := rl.now()
	id := key + ":" + action

	rl.mu.Lock()
	b, ok := rl.buckets[id]
	if !ok {
		p := rl.policy(action)
		burst := p.Burst
		if burst <= 0 {
			burst = 1
		}
		b = &bucket{limiter: rate.NewLimiter(p.limit(), burst)}
		rl.buckets[id] = b
	}
	b.lastSeen = now
	rl.mu.Unlock()

	r := b.limiter.ReserveN(now, 1)
	if !r.OK() {
		return false, time.Minute
	}
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// Cleanup drops buckets idle for longer than maxIdle.
func (rl *RateLimiter) Cleanup(maxIdle time.Duration) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	removed := 0
	cutoff := rl.now().Add(-maxIdle)
	for id, b := range rl.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(rl.buckets, id)
			removed++
		}
	}
	return removed
}

// StartCleanupRoutine runs Cleanup every interval until stop is closed.
func (rl *RateLimiter) StartCleanupRoutine(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				rl.Cleanup(time.Hour)
			case <-stop:
				return
			}
		}
	}()
}
