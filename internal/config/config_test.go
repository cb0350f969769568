package config

import (
	"strings"
	"testing"
)

func TestValidateTLSConfig(t *testing.T) {
	tests := []struct {
		name    string
		tls     TLSConfig
		wantErr string
	}{
		{
			name: "disabled mode",
			tls:  TLSConfig{Mode: "disabled"},
		},
		{
			name: "server mode valid",
			tls: TLSConfig{
				Mode:     "server",
				CertFile: "/path/to/cert.pem",
				KeyFile:  "/path/to/key.pem",
			},
		},
		{
			name: "server mode missing key",
			tls: TLSConfig{
				Mode:     "server",
				CertFile: "/path/to/cert.pem",
			},
			wantErr: "certificate and key files are required",
		},
		{
			name: "mutual mode valid",
			tls: TLSConfig{
				Mode:       "mutual",
				CertFile:   "/path/to/cert.pem",
				KeyFile:    "/path/to/key.pem",
				CAFile:     "/path/to/ca.pem",
				MinVersion: "1.3",
			},
		},
		{
			name: "mutual mode missing CA",
			tls: TLSConfig{
				Mode:     "mutual",
				CertFile: "/path/to/cert.pem",
				KeyFile:  "/path/to/key.pem",
			},
			wantErr: "CA certificate file is required",
		},
		{
			name:    "invalid mode",
			tls:     TLSConfig{Mode: "sideways"},
			wantErr: "invalid TLS mode: sideways",
		},
		{
			name: "invalid min version",
			tls: TLSConfig{
				Mode:       "server",
				CertFile:   "/path/to/cert.pem",
				KeyFile:    "/path/to/key.pem",
				MinVersion: "1.0",
			},
			wantErr: "invalid TLS minVersion",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Server: ServerConfig{TLS: tt.tls}}
			err := cfg.ValidateTLSConfig()

			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("ValidateTLSConfig() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ValidateTLSConfig() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Classifier: ClassifierConfig{Enabled: false},
			Server: ServerConfig{
				Port: "8080",
				TLS:  TLSConfig{Mode: "disabled"},
			},
			App: AppConfig{
				DefaultFormat:    "json",
				SupportedFormats: []string{"json", "text", "markdown"},
				MaxFileSize:      5 * 1024 * 1024,
			},
		}
	}

	t.Run("valid config", func(t *testing.T) {
		if err := valid().Validate(); err != nil {
			t.Fatalf("Validate() = %v, want nil", err)
		}
	})

	t.Run("classifier enabled without key", func(t *testing.T) {
		cfg := valid()
		cfg.Classifier.Enabled = true
		if err := cfg.Validate(); err == nil {
			t.Fatal("Validate() = nil, want API key error")
		}
	})

	t.Run("classifier enabled with key", func(t *testing.T) {
		cfg := valid()
		cfg.Classifier.Enabled = true
		cfg.Classifier.APIKey = "test-key"
		if err := cfg.Validate(); err != nil {
			t.Fatalf("Validate() = %v, want nil", err)
		}
	})

	t.Run("missing port", func(t *testing.T) {
		cfg := valid()
		cfg.Server.Port = ""
		if err := cfg.Validate(); err == nil {
			t.Fatal("Validate() = nil, want port error")
		}
	})

	t.Run("unsupported default format", func(t *testing.T) {
		cfg := valid()
		cfg.App.DefaultFormat = "xml"
		if err := cfg.Validate(); err == nil {
			t.Fatal("Validate() = nil, want format error")
		}
	})

	t.Run("non-positive max file size", func(t *testing.T) {
		cfg := valid()
		cfg.App.MaxFileSize = 0
		if err := cfg.Validate(); err == nil {
			t.Fatal("Validate() = nil, want maxFileSize error")
		}
	})
}

func TestApplyFallbacks(t *testing.T) {
	t.Run("api keys from environment", func(t *testing.T) {
		t.Setenv("RESUMELENS_SERVER_APIKEYS", "key-one, key-two ,key-three")

		cfg := &Config{}
		cfg.applyFallbacks()

		want := []string{"key-one", "key-two", "key-three"}
		if len(cfg.Server.APIKeys) != len(want) {
			t.Fatalf("APIKeys = %v, want %v", cfg.Server.APIKeys, want)
		}
		for i, key := range want {
			if cfg.Server.APIKeys[i] != key {
				t.Errorf("APIKeys[%d] = %q, want %q", i, cfg.Server.APIKeys[i], key)
			}
		}
	})

	t.Run("config keys win over environment", func(t *testing.T) {
		t.Setenv("RESUMELENS_SERVER_APIKEYS", "env-key")

		cfg := &Config{Server: ServerConfig{APIKeys: []string{"file-key"}}}
		cfg.applyFallbacks()

		if len(cfg.Server.APIKeys) != 1 || cfg.Server.APIKeys[0] != "file-key" {
			t.Errorf("APIKeys = %v, want [file-key]", cfg.Server.APIKeys)
		}
	})

	t.Run("service instance derived from service name", func(t *testing.T) {
		cfg := &Config{Observability: ObservabilityConfig{ServiceName: "resumelens"}}
		cfg.applyFallbacks()

		if cfg.Observability.ServiceInstance == "" {
			t.Error("ServiceInstance should be derived when empty")
		}
		if !strings.HasPrefix(cfg.Observability.ServiceInstance, "resumelens-") {
			t.Errorf("ServiceInstance = %q, want resumelens- prefix", cfg.Observability.ServiceInstance)
		}
	})

	t.Run("debug log level enables console output", func(t *testing.T) {
		cfg := &Config{App: AppConfig{LogLevel: "debug"}}
		cfg.applyFallbacks()

		if !cfg.Observability.ConsoleOutput {
			t.Error("ConsoleOutput should be enabled for debug log level")
		}
	})
}

func TestTLSEnabled(t *testing.T) {
	tests := []struct {
		mode string
		want bool
	}{
		{"disabled", false},
		{"server", true},
		{"mutual", true},
	}

	for _, tt := range tests {
		cfg := TLSConfig{Mode: tt.mode}
		if got := cfg.TLSEnabled(); got != tt.want {
			t.Errorf("TLSEnabled() with mode %q = %v, want %v", tt.mode, got, tt.want)
		}
	}
}
