package middleware

import (
	"net/http"
	"sync"
	"time"

	"guestcal/pkg/logger"
)

// HolderExtractor pulls the visitor/holder identity a request acts for.
type HolderExtractor func(r *http.Request) string

// HolderRateLimiter throttles requests per holder id. Anonymous visitors
// toggling days can generate bursts; capping per holder keeps one client
// from starving the rest without penalizing everyone behind a NAT.
type HolderRateLimiter struct {
	mu        sync.RWMutex
	requests  map[string][]time.Time
	limit     int
	window    time.Duration
	extractor HolderExtractor
	log       *logger.Logger
	stopCh    chan struct{}
}

func NewHolderRateLimiter(limit int, window time.Duration, extractor HolderExtractor, log *logger.Logger) *HolderRateLimiter {
	limiter := &HolderRateLimiter{
		requests:  make(map[string][]time.Time),
		limit:     limit,
		window:    window,
		extractor: extractor,
		log:       log,
		stopCh:    make(chan struct{}),
	}

	go limiter.cleanup()

	return limiter
}

func (rl *HolderRateLimiter) cleanup() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			for holder, timestamps := range rl.requests {
				if len(timestamps) == 0 || time.Since(timestamps[len(timestamps)-1]) > rl.window {
					delete(rl.requests, holder)
				}
			}
			rl.mu.Unlock()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *HolderRateLimiter) Stop() {
	close(rl.stopCh)
}

func (rl *HolderRateLimiter) Allow(holder string) bool {
	if holder == "" {
		return true
	}

	now := time.Now()

	rl.mu.RLock()
	timestamps := rl.requests[holder]
	rl.mu.RUnlock()

	validTimestamps := make([]time.Time, 0)
	for _, ts := range timestamps {
		if now.Sub(ts) < rl.window {
			validTimestamps = append(validTimestamps, ts)
		}
	}

	if len(validTimestamps) >= rl.limit {
		return false
	}

	validTimestamps = append(validTimestamps, now)

	rl.mu.Lock()
	rl.requests[holder] = validTimestamps
	rl.mu.Unlock()

	return true
}

func HolderRateLimit(limiter *HolderRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			holder := extractHolder(r, limiter.extractor)

			if holder == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !limiter.Allow(holder) {
				rejectRateLimited(w, limiter.log, r, holder)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func extractHolder(r *http.Request, extractor HolderExtractor) string {
	if extractor == nil {
		return DefaultHolderExtractor(r)
	}
	return extractor(r)
}

func rejectRateLimited(w http.ResponseWriter, log *logger.Logger, r *http.Request, holder string) {
	log.Warn("Rate limit exceeded",
		"request_id", requestIDFrom(r),
		"holder_id", holder,
		"path", r.URL.Path,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	_, _ = w.Write([]byte(`{"error":"Rate limit exceeded"}`))
}

// DefaultHolderExtractor reads the holder id from the X-Holder-ID header,
// falling back to the holder_id query parameter used by read endpoints.
func DefaultHolderExtractor(r *http.Request) string {
	if holder := r.Header.Get("X-Holder-ID"); holder != "" {
		return holder
	}
	return r.URL.Query().Get("holder_id")
}
