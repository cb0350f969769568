// Package server exposes the résumé analysis engine over HTTP.
package server

import (
	"time"

	"resumelens/internal/analyzer"
	"resumelens/internal/classifier"
	"resumelens/internal/config"
	"resumelens/internal/errors"
	"resumelens/internal/observability"
)

// AnalyzeTextRequest is the JSON request body for the analyze endpoint.
// Binary résumés are uploaded as multipart form data instead.
type AnalyzeTextRequest struct {
	Text           string `json:"text"`
	FileName       string `json:"fileName,omitempty"`
	JobTitle       string `json:"jobTitle,omitempty"`
	JobDescription string `json:"jobDescription,omitempty"`
}

// MatchRequest is the request body for the match endpoint.
type MatchRequest struct {
	Text           string `json:"text"`
	JobTitle       string `json:"jobTitle"`
	JobDescription string `json:"jobDescription,omitempty"`
}

// MatchResponse is the response body for the match endpoint.
type MatchResponse struct {
	JobTitle      string   `json:"jobTitle"`
	JobMatchScore int      `json:"jobMatchScore"`
	PrimaryRole   string   `json:"primaryRole"`
	MissingSkills []string `json:"missingSkills"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	// Analysis components
	Engine     *analyzer.Engine
	Classifier classifier.Provider

	// TLS Configuration
	TLSConfig config.TLSConfig

	// Certificate management
	CertManager *CertManager

	// API Authentication
	APIKeys map[string]bool

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Request size limit
	MaxRequestSize int64

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	// Logger
	Logger *errors.Logger

	obs *observability.Manager
}

// New creates a new Server instance from the application configuration.
func New(cfg *config.Config, version string, engine *analyzer.Engine, cls classifier.Provider, logger *errors.Logger) *Server {
	// Convert API keys slice to map for O(1) lookup
	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.Server.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *RateLimiter
	if cfg.Server.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(
			cfg.Server.RateLimit.RequestsPerMin,
			cfg.Server.RateLimit.BurstCapacity,
			logger,
		)
	}

	return &Server{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		Version:        version,
		AppConfig:      cfg,
		Engine:         engine,
		Classifier:     cls,
		TLSConfig:      cfg.Server.TLS,
		APIKeys:        apiKeyMap,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxRequestSize: cfg.App.MaxFileSize,
		RateLimit:      &cfg.Server.RateLimit,
		RateLimiter:    rateLimiter,
		Logger:         logger,
	}
}
