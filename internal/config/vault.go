package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	vault "github.com/hashicorp/vault/api"
)

// VaultConfig holds HashiCorp Vault connection configuration.
type VaultConfig struct {
	Enabled   bool         `mapstructure:"enabled"`
	Address   string       `mapstructure:"address"`
	Token     string       `mapstructure:"token"`
	TokenFile string       `mapstructure:"tokenFile"`
	Namespace string       `mapstructure:"namespace"`
	Secrets   VaultSecrets `mapstructure:"secrets"`
}

// VaultSecrets maps logical secrets to Vault KVv2 paths.
type VaultSecrets struct {
	// APIKeys is the path to the server API key list (comma-separated value
	// under the "value" key).
	APIKeys string `mapstructure:"apiKeys"`
	// ClassifierKey is the path to the classifier provider API key.
	ClassifierKey string `mapstructure:"classifierKey"`
}

// VaultClient wraps the Vault API client.
type VaultClient struct {
	client *vault.Client
	config *VaultConfig
}

// NewVaultClient creates and validates a Vault client connection.
func NewVaultClient(cfg *VaultConfig) (*VaultClient, error) {
	if !cfg.Enabled {
		return nil, fmt.Errorf("vault is not enabled in configuration")
	}
	if cfg.Address == "" {
		return nil, fmt.Errorf("vault address is required")
	}

	vaultConfig := vault.DefaultConfig()
	vaultConfig.Address = cfg.Address
	vaultConfig.Timeout = 10 * time.Second

	client, err := vault.NewClient(vaultConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create vault client: %w", err)
	}

	if cfg.Namespace != "" {
		client.SetNamespace(cfg.Namespace)
	}

	token, err := resolveVaultToken(cfg)
	if err != nil {
		return nil, err
	}
	client.SetToken(token)

	vc := &VaultClient{client: client, config: cfg}
	if err := vc.testConnection(); err != nil {
		return nil, fmt.Errorf("vault connection test failed: %w", err)
	}

	return vc, nil
}

func resolveVaultToken(cfg *VaultConfig) (string, error) {
	if cfg.Token != "" {
		return cfg.Token, nil
	}
	if cfg.TokenFile != "" {
		data, err := os.ReadFile(cfg.TokenFile)
		if err != nil {
			return "", fmt.Errorf("failed to read vault token file: %w", err)
		}
		token := strings.TrimSpace(string(data))
		if token == "" {
			return "", fmt.Errorf("vault token file %s is empty", cfg.TokenFile)
		}
		return token, nil
	}
	if token := os.Getenv("VAULT_TOKEN"); token != "" {
		return token, nil
	}
	return "", fmt.Errorf("no vault token available (set vault.token, vault.tokenFile, or VAULT_TOKEN)")
}

func (vc *VaultClient) testConnection() error {
	health, err := vc.client.Sys().Health()
	if err != nil {
		return err
	}
	if health.Sealed {
		return fmt.Errorf("vault is sealed")
	}
	return nil
}

// GetSecretV2 reads a KVv2 secret and returns its data map.
func (vc *VaultClient) GetSecretV2(ctx context.Context, path string) (map[string]interface{}, error) {
	secret, err := vc.client.Logical().ReadWithContext(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read secret at %s: %w", path, err)
	}
	if secret == nil || secret.Data == nil {
		return nil, fmt.Errorf("no secret found at %s", path)
	}

	// KVv2 nests the payload under "data".
	if data, ok := secret.Data["data"].(map[string]interface{}); ok {
		return data, nil
	}
	return secret.Data, nil
}

// GetStringSecret reads one string value from a KVv2 secret.
func (vc *VaultClient) GetStringSecret(ctx context.Context, path, key string) (string, error) {
	data, err := vc.GetSecretV2(ctx, path)
	if err != nil {
		return "", err
	}
	value, ok := data[key].(string)
	if !ok {
		return "", fmt.Errorf("secret at %s has no string value for key %q", path, key)
	}
	return value, nil
}

// GetStringSliceSecret reads a comma-separated string value from a KVv2
// secret and splits it.
func (vc *VaultClient) GetStringSliceSecret(ctx context.Context, path, key string) ([]string, error) {
	raw, err := vc.GetStringSecret(ctx, path, key)
	if err != nil {
		return nil, err
	}
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values, nil
}

// ApplyVaultSecrets loads secrets from Vault into the configuration. When
// Vault is disabled this is a no-op.
func (c *Config) ApplyVaultSecrets(ctx context.Context) error {
	if !c.Vault.Enabled {
		return nil
	}

	vc, err := NewVaultClient(&c.Vault)
	if err != nil {
		return err
	}

	if path := c.Vault.Secrets.ClassifierKey; path != "" {
		key, err := vc.GetStringSecret(ctx, path, "value")
		if err != nil {
			return fmt.Errorf("failed to load classifier API key from vault: %w", err)
		}
		c.Classifier.APIKey = key
		log.Println("[VAULT] Loaded classifier API key")
	}

	if path := c.Vault.Secrets.APIKeys; path != "" {
		keys, err := vc.GetStringSliceSecret(ctx, path, "value")
		if err != nil {
			return fmt.Errorf("failed to load server API keys from vault: %w", err)
		}
		c.Server.APIKeys = keys
		log.Printf("[VAULT] Loaded %d server API key(s)", len(keys))
	}

	return nil
}
