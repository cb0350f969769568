// Package classifier provides optional model-assisted role prediction on
// top of the rule-based analysis engine.
package classifier

import (
	"fmt"

	"resumelens/internal/analyzer"
	"resumelens/internal/config"
	"resumelens/internal/errors"
)

// Provider is a role classifier with health and stats introspection.
type Provider interface {
	analyzer.RoleClassifier
	GetStats() map[string]any
	IsHealthy() bool
}

// New creates a classifier provider from configuration. Returns nil when
// the classifier is disabled; analysis then runs purely rule-based.
func New(cfg *config.ClassifierConfig, logger *errors.Logger) (Provider, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	switch cfg.Provider {
	case "gemini":
		return NewGeminiClassifier(cfg, logger)
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("unsupported classifier provider: %s", cfg.Provider), nil)
	}
}
