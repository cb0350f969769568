package classifier

import (
	"context"
	"crypto/rand"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"math"
	"math/big"
	"net"
	"net/http"
	"strings"
	"time"

	"resumelens/internal/analyzer"
	"resumelens/internal/config"
	"resumelens/internal/errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

// GeminiClassifier predicts the primary role of a résumé from its extracted
// skills using Google Gemini. Predictions are advisory: callers fall back to
// the rule-based ranking when a prediction fails or returns an unknown label.
type GeminiClassifier struct {
	client         *genai.Client
	config         *config.ClassifierConfig
	circuitBreaker *CircuitBreaker
	logger         *errors.Logger
}

var _ analyzer.RoleClassifier = (*GeminiClassifier)(nil)

// rolePrediction is the schema-constrained model response.
type rolePrediction struct {
	Role       string  `json:"role"`
	Confidence float64 `json:"confidence"`
}

// NewGeminiClassifier creates a Gemini-backed role classifier.
func NewGeminiClassifier(cfg *config.ClassifierConfig, logger *errors.Logger) (*GeminiClassifier, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, errors.NewClassifierError(errors.ErrCodeClassifierFailed,
			"Failed to create Gemini client", err)
	}

	return &GeminiClassifier{
		client:         client,
		config:         cfg,
		circuitBreaker: NewCircuitBreaker(&cfg.CircuitBreaker, logger),
		logger:         logger,
	}, nil
}

// Predict returns a role label for the given feature text. The label is
// validated against the known role vocabulary.
func (g *GeminiClassifier) Predict(ctx context.Context, features string) (string, error) {
	tracer := otel.Tracer("resumelens.classifier.gemini")
	ctx, span := tracer.Start(ctx, "gemini.predict_role")
	defer span.End()

	span.SetAttributes(
		attribute.String("classifier.provider", "gemini"),
		attribute.String("classifier.model", g.config.Model),
		attribute.Int("input.features_length", len(features)),
	)

	callCtx, cancel := context.WithTimeout(ctx, g.config.Timeout)
	defer cancel()

	prompt := buildPredictPrompt(features)
	genaiConfig := g.buildPredictSchema()

	result, err := g.circuitBreaker.Execute(func() (*genai.GenerateContentResponse, error) {
		return g.executeWithRetry(callCtx, "predict_role", func() (*genai.GenerateContentResponse, error) {
			return g.client.Models.GenerateContent(callCtx, g.config.Model, genai.Text(prompt), genaiConfig)
		})
	})
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return "", errors.NewClassifierError(errors.ErrCodeClassifierFailed,
			"Failed to generate role prediction", err)
	}

	var prediction rolePrediction
	if err := json.Unmarshal([]byte(result.Text()), &prediction); err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return "", errors.NewClassifierError("CLASSIFIER_RESPONSE_PARSE_FAILED",
			"Failed to parse role prediction response", err)
	}

	label, ok := normalizeRoleLabel(prediction.Role)
	if !ok {
		span.SetAttributes(attribute.Bool("success", false))
		return "", errors.NewClassifierError(errors.ErrCodeClassifierFailed,
			fmt.Sprintf("Model returned unknown role label: %q", prediction.Role), nil)
	}

	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.String("output.role", label),
		attribute.Float64("output.confidence", prediction.Confidence),
	)
	return label, nil
}

// GetStats exposes circuit breaker statistics for the stats endpoint.
func (g *GeminiClassifier) GetStats() map[string]any {
	return g.circuitBreaker.GetStats()
}

// IsHealthy reports whether the classifier circuit is closed.
func (g *GeminiClassifier) IsHealthy() bool {
	return g.circuitBreaker.IsHealthy()
}

func buildPredictPrompt(features string) string {
	var sb strings.Builder
	sb.WriteString("You are a résumé screening assistant. Given the candidate features below, ")
	sb.WriteString("pick the single best-fitting role from this list:\n")
	for _, role := range analyzer.KnownRoles() {
		sb.WriteString("- ")
		sb.WriteString(role)
		sb.WriteString("\n")
	}
	sb.WriteString("\nCandidate features:\n")
	sb.WriteString(features)
	return sb.String()
}

func (g *GeminiClassifier) buildPredictSchema() *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"role":       {Type: genai.TypeString},
				"confidence": {Type: genai.TypeNumber},
			},
			Required: []string{"role", "confidence"},
		},
	}

	if g.config.Temperature > 0 {
		cfg.Temperature = genai.Ptr(g.config.Temperature)
	}

	return cfg
}

// normalizeRoleLabel maps a model response to a known role label,
// case-insensitively.
func normalizeRoleLabel(label string) (string, bool) {
	trimmed := strings.TrimSpace(label)
	for _, role := range analyzer.KnownRoles() {
		if strings.EqualFold(role, trimmed) {
			return role, true
		}
	}
	return "", false
}

// executeWithRetry executes a model call with retry logic and exponential backoff.
func (g *GeminiClassifier) executeWithRetry(ctx context.Context, operation string, fn func() (*genai.GenerateContentResponse, error)) (*genai.GenerateContentResponse, error) {
	var lastErr error

	for attempt := 0; attempt <= g.config.MaxRetries; attempt++ {
		if attempt > 0 {
			g.logger.Warn("Retrying classifier operation",
				"operation", operation,
				"attempt", attempt,
				"max_retries", g.config.MaxRetries,
				"error", lastErr.Error())

			// Exponential backoff with jitter to prevent thundering herd
			baseDelay := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			jitterMax := big.NewInt(int64(float64(baseDelay) * 0.1))
			jitterBig, _ := rand.Int(rand.Reader, jitterMax)
			jitter := time.Duration(jitterBig.Int64())
			backoff := min(baseDelay+jitter, 30*time.Second)

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		result, err := fn()
		if err == nil {
			if attempt > 0 {
				g.logger.Info("Classifier operation succeeded after retry",
					"operation", operation,
					"successful_attempt", attempt+1)
			}
			return result, nil
		}

		lastErr = err

		if !isRetryableError(err) {
			g.logger.Debug("Error is not retryable, stopping retry attempts",
				"operation", operation,
				"error", err.Error())
			break
		}
	}

	g.logger.LogError(lastErr, "Classifier operation failed after all retry attempts",
		"operation", operation,
		"total_attempts", g.config.MaxRetries+1)

	return nil, fmt.Errorf("operation '%s' failed after %d retries: %w", operation, g.config.MaxRetries, lastErr)
}

// isRetryableError determines if an error should trigger a retry.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if stderrors.As(err, &netErr) {
		return true
	}

	var apiErr *googleapi.Error
	if stderrors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
	}

	return false
}
