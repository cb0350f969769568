package server

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"resumelens/internal/errors"
	"resumelens/internal/observability"

	"golang.org/x/time/rate"
)

// RateLimiter manages per-client token buckets with periodic cleanup of
// idle entries.
type RateLimiter struct {
	limiters map[string]*rate.Limiter
	lastSeen map[string]time.Time
	mu       sync.RWMutex
	rate     rate.Limit
	burst    int
	logger   *errors.Logger
	done     chan struct{}
}

// NewRateLimiter creates a rate limiter allowing requestsPerMin sustained
// requests with the given burst capacity.
func NewRateLimiter(requestsPerMin, burstCapacity int, logger *errors.Logger) *RateLimiter {
	rl := &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		lastSeen: make(map[string]time.Time),
		rate:     rate.Limit(float64(requestsPerMin) / 60.0),
		burst:    burstCapacity,
		logger:   logger,
		done:     make(chan struct{}),
	}

	go rl.cleanupRoutine()

	return rl
}

// GetLimiter returns the limiter for the given key, creating one if needed.
func (rl *RateLimiter) GetLimiter(key string) *rate.Limiter {
	rl.mu.RLock()
	limiter, exists := rl.limiters[key]
	rl.mu.RUnlock()

	if exists {
		rl.mu.Lock()
		rl.lastSeen[key] = time.Now()
		rl.mu.Unlock()
		return limiter
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	// Another goroutine may have created it between lock transitions
	if limiter, exists := rl.limiters[key]; exists {
		rl.lastSeen[key] = time.Now()
		return limiter
	}

	limiter = rate.NewLimiter(rl.rate, rl.burst)
	rl.limiters[key] = limiter
	rl.lastSeen[key] = time.Now()

	rl.logger.Debug("Created rate limiter", "key", key, "rate", float64(rl.rate), "burst", rl.burst)

	return limiter
}

// Allow reports whether a request for the given key may proceed.
func (rl *RateLimiter) Allow(key string) bool {
	return rl.GetLimiter(key).Allow()
}

// GetStats returns current rate limiter statistics.
func (rl *RateLimiter) GetStats() map[string]any {
	rl.mu.RLock()
	defer rl.mu.RUnlock()

	return map[string]any{
		"enabled":         true,
		"active_limiters": len(rl.limiters),
		"rate_per_second": float64(rl.rate),
		"burst_capacity":  rl.burst,
	}
}

// cleanupRoutine removes limiters that have been idle for over an hour.
func (rl *RateLimiter) cleanupRoutine() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.done:
			return
		}
	}
}

func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-time.Hour)
	removed := 0

	for key, seen := range rl.lastSeen {
		if seen.Before(cutoff) {
			delete(rl.limiters, key)
			delete(rl.lastSeen, key)
			removed++
		}
	}

	if removed > 0 {
		rl.logger.Debug("Cleaned up idle rate limiters", "removed", removed, "remaining", len(rl.limiters))
	}
}

// Close stops the cleanup routine.
func (rl *RateLimiter) Close() {
	close(rl.done)
}

// getRateLimitKey derives the limiter key for a request. API key identity is
// preferred over client IP when both strategies are enabled.
func (s *Server) getRateLimitKey(r *http.Request) string {
	if s.RateLimit.ByAPIKey {
		apiKey := r.Header.Get("X-API-Key")
		if apiKey == "" {
			if after, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
				apiKey = after
			}
		}
		if apiKey != "" {
			return "api:" + apiKey
		}
	}

	if s.RateLimit.ByIP {
		return "ip:" + getClientIP(r)
	}

	return "global"
}

// getClientIP extracts the client address, honoring proxy headers.
func getClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if ip := parseFirstIP(forwarded); ip != "" {
			return ip
		}
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return strings.TrimSpace(realIP)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// parseFirstIP takes the first entry from a comma-separated IP list.
func parseFirstIP(forwarded string) string {
	for part := range strings.SplitSeq(forwarded, ",") {
		ip := strings.TrimSpace(part)
		if ip != "" {
			return ip
		}
	}
	return ""
}

// createRateLimitMiddleware returns middleware enforcing per-client limits.
// A no-op wrapper is returned when rate limiting is disabled.
func (s *Server) createRateLimitMiddleware(obs *observability.Manager) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		if s.RateLimiter == nil || !s.RateLimit.Enabled {
			return next
		}

		return func(w http.ResponseWriter, r *http.Request) {
			key := s.getRateLimitKey(r)

			if !s.RateLimiter.Allow(key) {
				s.Logger.Info("Rate limit exceeded", "key", key, "path", r.URL.Path)
				obs.GetMetrics().RecordRateLimitHit(r.Context(), key)

				w.Header().Set("Retry-After", fmt.Sprintf("%d", int(60.0/float64(s.RateLimit.RequestsPerMin))+1))
				writeErrorResponse(w, "Rate limit exceeded",
					fmt.Sprintf("Too many requests. Limit is %d requests per minute.", s.RateLimit.RequestsPerMin),
					http.StatusTooManyRequests)
				return
			}

			next(w, r)
		}
	}
}
