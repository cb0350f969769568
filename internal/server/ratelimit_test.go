package server

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"resumelens/internal/config"
	"resumelens/internal/errors"
)

func TestRateLimiterBurst(t *testing.T) {
	rl := NewRateLimiter(60, 3, errors.NewLogger(slog.LevelError))
	defer rl.Close()

	for i := range 3 {
		if !rl.Allow("client") {
			t.Fatalf("request %d within burst should be allowed", i+1)
		}
	}

	if rl.Allow("client") {
		t.Error("request beyond burst capacity should be denied")
	}

	// A different client gets its own bucket
	if !rl.Allow("other") {
		t.Error("independent client should not be affected")
	}
}

func TestRateLimiterGetStats(t *testing.T) {
	rl := NewRateLimiter(120, 5, errors.NewLogger(slog.LevelError))
	defer rl.Close()

	rl.Allow("a")
	rl.Allow("b")

	stats := rl.GetStats()
	if stats["enabled"] != true {
		t.Errorf("enabled = %v, want true", stats["enabled"])
	}
	if stats["active_limiters"] != 2 {
		t.Errorf("active_limiters = %v, want 2", stats["active_limiters"])
	}
	if stats["burst_capacity"] != 5 {
		t.Errorf("burst_capacity = %v, want 5", stats["burst_capacity"])
	}
}

func TestGetRateLimitKey(t *testing.T) {
	tests := []struct {
		name     string
		byIP     bool
		byAPIKey bool
		headers  map[string]string
		want     string
	}{
		{
			name:     "api key preferred",
			byIP:     true,
			byAPIKey: true,
			headers:  map[string]string{"X-API-Key": "key123"},
			want:     "api:key123",
		},
		{
			name:     "bearer token used for key",
			byAPIKey: true,
			headers:  map[string]string{"Authorization": "Bearer tok456"},
			want:     "api:tok456",
		},
		{
			name: "falls back to ip",
			byIP: true,
			want: "ip:192.0.2.1",
		},
		{
			name:     "no key falls through to ip",
			byIP:     true,
			byAPIKey: true,
			want:     "ip:192.0.2.1",
		},
		{
			name: "global when both strategies off",
			want: "global",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := &Server{
				RateLimit: &config.RateLimitConfig{ByIP: tt.byIP, ByAPIKey: tt.byAPIKey},
			}
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "192.0.2.1:5555"
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			if got := srv.getRateLimitKey(req); got != tt.want {
				t.Errorf("getRateLimitKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	cfg := testConfig()
	cfg.Server.RateLimit.Enabled = true
	cfg.Server.RateLimit.RequestsPerMin = 60
	cfg.Server.RateLimit.BurstCapacity = 2
	cfg.Server.RateLimit.ByIP = true
	srv, obs := newTestServer(t, cfg)

	handler := srv.createRateLimitMiddleware(obs)(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for i := range 2 {
		req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
		req.RemoteAddr = "192.0.2.7:1000"
		rec := httptest.NewRecorder()
		handler(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want %d", i+1, rec.Code, http.StatusOK)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
	req.RemoteAddr = "192.0.2.7:1000"
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want %d after burst exhausted", rec.Code, http.StatusTooManyRequests)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header on 429")
	}
}
