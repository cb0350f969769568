package config

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
)

// TLSEnabled reports whether the server should listen with TLS.
func (t TLSConfig) TLSEnabled() bool {
	return t.Mode == "server" || t.Mode == "mutual"
}

// BuildTLSConfig constructs a tls.Config from the server TLS settings.
// Returns nil when TLS is disabled. The certificate is loaded once here;
// hot-reload is layered on by the server's certificate watcher.
func (t TLSConfig) BuildTLSConfig() (*tls.Config, error) {
	tlsCfg := t
	if !t.TLSEnabled() {
		return nil, nil
	}

	cert, err := tls.LoadX509KeyPair(tlsCfg.CertFile, tlsCfg.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load server certificate: %w", err)
	}

	config := &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   minTLSVersion(tlsCfg.MinVersion),
	}

	if tlsCfg.Mode == "mutual" {
		caPool, err := loadCAPool(tlsCfg.CAFile)
		if err != nil {
			return nil, err
		}
		config.ClientCAs = caPool
		config.ClientAuth = tls.RequireAndVerifyClientCert
	}

	return config, nil
}

func minTLSVersion(version string) uint16 {
	if version == "1.3" {
		return tls.VersionTLS13
	}
	return tls.VersionTLS12
}

func loadCAPool(caFile string) (*x509.CertPool, error) {
	caPEM, err := os.ReadFile(caFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA certificate: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(caPEM) {
		return nil, fmt.Errorf("failed to parse CA certificate from %s", caFile)
	}
	return pool, nil
}
