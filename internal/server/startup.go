package server

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resumelens/internal/observability"
)

// Start runs the HTTP server until the context is canceled or a shutdown
// signal arrives.
func (s *Server) Start(ctx context.Context) error {
	obs, err := observability.NewManager(s.AppConfig, s.Version)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	s.obs = obs
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			s.Logger.Warn("Observability shutdown error", "error", err)
		}
	}()

	server, err := s.setupHTTPServer(obs)
	if err != nil {
		return err
	}

	if s.CertManager != nil {
		s.CertManager.Start(ctx)
	}

	s.displayServerInfo()

	return s.startWithGracefulShutdown(ctx, server)
}

// setupHTTPServer builds the http.Server with routes, observability
// middleware and TLS configuration.
func (s *Server) setupHTTPServer(obs *observability.Manager) (*http.Server, error) {
	mux := s.setupRoutes(obs)

	server := &http.Server{
		Addr:         s.Host + ":" + s.Port,
		Handler:      obs.HTTPMiddleware()(mux),
		ReadTimeout:  s.ReadTimeout,
		WriteTimeout: s.WriteTimeout,
		IdleTimeout:  s.IdleTimeout,
	}

	if s.TLSConfig.TLSEnabled() {
		tlsConfig, err := s.configureTLS(obs)
		if err != nil {
			return nil, err
		}
		server.TLSConfig = tlsConfig
	}

	return server, nil
}

// configureTLS builds the tls.Config, routing certificate lookups through
// the manager so reloads take effect without a restart.
func (s *Server) configureTLS(obs *observability.Manager) (*tls.Config, error) {
	if s.CertManager == nil {
		cm, err := NewCertManager(s.TLSConfig, s.Logger, obs.GetMetrics())
		if err != nil {
			return nil, fmt.Errorf("failed to initialize certificate manager: %w", err)
		}
		s.CertManager = cm
	}

	tlsConfig, err := s.TLSConfig.BuildTLSConfig()
	if err != nil {
		return nil, err
	}

	tlsConfig.Certificates = nil
	tlsConfig.GetCertificate = s.CertManager.GetCertificate

	return tlsConfig, nil
}

// displayServerInfo prints startup information to the console.
func (s *Server) displayServerInfo() {
	scheme := "http"
	if s.TLSConfig.TLSEnabled() {
		scheme = "https"
	}

	fmt.Printf("Starting resumelens server v%s\n", s.Version)
	fmt.Printf("Listening on %s://%s:%s\n", scheme, s.Host, s.Port)
	fmt.Println("Endpoints:")
	fmt.Println("  GET  /health")
	fmt.Println("  GET  /stats")
	fmt.Println("  POST /analyze")
	fmt.Println("  POST /match")

	if len(s.APIKeys) > 0 {
		fmt.Printf("API key authentication: enabled (%d keys)\n", len(s.APIKeys))
	} else {
		fmt.Println("API key authentication: disabled")
	}

	if s.RateLimit != nil && s.RateLimit.Enabled {
		fmt.Printf("Rate limiting: %d requests/min (burst %d)\n",
			s.RateLimit.RequestsPerMin, s.RateLimit.BurstCapacity)
	} else {
		fmt.Println("Rate limiting: disabled")
	}

	if s.MaxRequestSize > 0 {
		fmt.Printf("Max request size: %d bytes\n", s.MaxRequestSize)
	}

	if s.Classifier != nil {
		fmt.Println("Role classifier: enabled")
	} else {
		fmt.Println("Role classifier: disabled (rule-based prediction only)")
	}
}

// startWithGracefulShutdown runs the server and drains connections on
// SIGINT or SIGTERM.
func (s *Server) startWithGracefulShutdown(ctx context.Context, server *http.Server) error {
	serverErrors := make(chan error, 1)

	go func() {
		if server.TLSConfig != nil {
			// Certificate paths are already wired through GetCertificate
			serverErrors <- server.ListenAndServeTLS("", "")
		} else {
			serverErrors <- server.ListenAndServe()
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case sig := <-shutdown:
		log.Printf("Shutdown signal received: %v", sig)
	case <-ctx.Done():
		log.Println("Context canceled, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if s.CertManager != nil {
		s.CertManager.Stop()
	}
	if s.RateLimiter != nil {
		s.RateLimiter.Close()
	}

	if err := server.Shutdown(shutdownCtx); err != nil {
		if closeErr := server.Close(); closeErr != nil {
			return fmt.Errorf("failed to force close server: %w", closeErr)
		}
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}
