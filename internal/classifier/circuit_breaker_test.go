package classifier

import (
	"errors"
	"testing"
	"time"

	"resumelens/internal/config"

	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

func TestNewCircuitBreaker(t *testing.T) {
	cfg := &config.CircuitBreakerConfig{
		Enabled:          true,
		MaxRequests:      3,
		Interval:         60 * time.Second,
		Timeout:          60 * time.Second,
		MinRequests:      3,
		FailureThreshold: 0.6,
	}

	cb := NewCircuitBreaker(cfg, nil)
	if cb == nil {
		t.Fatal("Circuit breaker should not be nil when enabled")
	}

	stats := cb.GetStats()

	name, ok := stats["name"].(string)
	if !ok {
		t.Fatal("Circuit breaker name not found")
	}
	if name != "classifier" {
		t.Errorf("Expected circuit breaker name 'classifier', got '%s'", name)
	}

	state, ok := stats["state"].(string)
	if !ok {
		t.Fatal("Circuit breaker state not found")
	}
	if state != "closed" {
		t.Errorf("Expected initial state 'closed', got '%s'", state)
	}

	if !cb.IsHealthy() {
		t.Error("Circuit breaker should be healthy initially")
	}
}

func TestCircuitBreakerDisabled(t *testing.T) {
	cfg := &config.CircuitBreakerConfig{
		Enabled: false,
	}

	cb := NewCircuitBreaker(cfg, nil)
	if cb != nil {
		t.Fatal("Circuit breaker should be nil when disabled")
	}

	// A nil breaker still passes calls through.
	called := false
	_, err := cb.Execute(func() (*genai.GenerateContentResponse, error) {
		called = true
		return nil, nil
	})
	if err != nil {
		t.Fatalf("Execute on nil breaker returned error: %v", err)
	}
	if !called {
		t.Error("Execute on nil breaker should call the function directly")
	}

	if !cb.IsHealthy() {
		t.Error("Nil circuit breaker should report healthy")
	}

	stats := cb.GetStats()
	if enabled, _ := stats["enabled"].(bool); enabled {
		t.Error("Nil circuit breaker stats should report enabled=false")
	}
}

func TestCircuitBreakerPropagatesErrors(t *testing.T) {
	cfg := &config.CircuitBreakerConfig{
		Enabled:          true,
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		MinRequests:      100, // High enough that these failures never trip it
		FailureThreshold: 0.99,
	}

	cb := NewCircuitBreaker(cfg, nil)

	want := errors.New("model unavailable")
	_, err := cb.Execute(func() (*genai.GenerateContentResponse, error) {
		return nil, want
	})
	if !errors.Is(err, want) {
		t.Fatalf("Execute error = %v, want %v", err, want)
	}

	if !cb.IsHealthy() {
		t.Error("A single failure below the threshold should not open the circuit")
	}
}

func TestNormalizeRoleLabel(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"DevOps Engineer", "DevOps Engineer", true},
		{"devops engineer", "DevOps Engineer", true},
		{"  Data Scientist  ", "Data Scientist", true},
		{"Wizard", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := normalizeRoleLabel(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("normalizeRoleLabel(%q) = (%q, %v), want (%q, %v)",
				tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestIsRetryableError(t *testing.T) {
	if isRetryableError(nil) {
		t.Error("nil error should not be retryable")
	}
	if isRetryableError(errors.New("bad request")) {
		t.Error("plain errors should not be retryable")
	}

	for _, code := range []int{429, 500, 502, 503, 504} {
		if !isRetryableError(&googleapi.Error{Code: code}) {
			t.Errorf("HTTP %d should be retryable", code)
		}
	}
	if isRetryableError(&googleapi.Error{Code: 401}) {
		t.Error("HTTP 401 should not be retryable")
	}
}
