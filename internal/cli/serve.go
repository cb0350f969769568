package cli

import (
	"fmt"

	"resumelens/internal/analyzer"
	"resumelens/internal/classifier"
	"resumelens/internal/server"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP server for resume analysis",
	Long: `Start an HTTP server that provides REST API endpoints for resume analysis.

Available endpoints:
- POST /analyze: Analyze a resume (JSON text or multipart file upload)
- POST /match: Score a resume against a target job title
- GET /health: Health check endpoint
- GET /stats: Server statistics and rate limiting info

TLS Configuration:
- Use --tls-mode to set TLS mode: disabled, server, mutual
- Use --cert-file and --key-file for TLS certificates
- Use --ca-file for mutual TLS client certificate verification`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on (default from config)")
	serveCmd.Flags().String("host", "", "Host to bind to (default from config)")
	serveCmd.Flags().String("tls-mode", "", "TLS mode: disabled, server, mutual (overrides config)")
	serveCmd.Flags().String("cert-file", "", "Server certificate file (PEM, overrides config)")
	serveCmd.Flags().String("key-file", "", "Server private key file (PEM, overrides config)")
	serveCmd.Flags().String("ca-file", "", "CA certificate file for client cert verification (PEM, overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	// Flags override file and environment configuration
	applyFlag := func(flagName string, target *string) {
		if value, _ := cmd.Flags().GetString(flagName); value != "" {
			*target = value
		}
	}
	applyFlag("port", &cfg.Server.Port)
	applyFlag("host", &cfg.Server.Host)
	applyFlag("tls-mode", &cfg.Server.TLS.Mode)
	applyFlag("cert-file", &cfg.Server.TLS.CertFile)
	applyFlag("key-file", &cfg.Server.TLS.KeyFile)
	applyFlag("ca-file", &cfg.Server.TLS.CAFile)

	// Validate TLS configuration after applying flag overrides
	if err := cfg.ValidateTLSConfig(); err != nil {
		return fmt.Errorf("invalid TLS configuration: %w", err)
	}

	cls, err := classifier.New(&cfg.Classifier, logger)
	if err != nil {
		return fmt.Errorf("failed to create role classifier: %w", err)
	}

	engine := analyzer.New(analyzer.Config{
		Classifier: cls,
		Logger:     logger,
	})

	return server.New(cfg, Version, engine, cls, logger).Start(cmd.Context())
}
