package server

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"resumelens/internal/config"
	"resumelens/internal/errors"
	"resumelens/internal/observability"

	"github.com/fsnotify/fsnotify"
)

// CertManager holds the active TLS certificate and reloads it from disk when
// the underlying files change.
type CertManager struct {
	certFile string
	keyFile  string
	logger   *errors.Logger
	metrics  *observability.Metrics

	mu   sync.RWMutex
	cert *tls.Certificate

	reloadCount    int64
	reloadFailures int64
	lastReload     time.Time

	watcher *certWatcher
}

// NewCertManager loads the certificate pair and prepares it for hot reload.
func NewCertManager(cfg config.TLSConfig, logger *errors.Logger, metrics *observability.Metrics) (*CertManager, error) {
	cm := &CertManager{
		certFile: cfg.CertFile,
		keyFile:  cfg.KeyFile,
		logger:   logger,
		metrics:  metrics,
	}

	if err := cm.loadCertificate(); err != nil {
		return nil, err
	}

	if cfg.Reload.Enabled {
		watcher, err := newCertWatcher([]string{cfg.CertFile, cfg.KeyFile}, cfg.Reload.DebounceDelay, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create certificate watcher: %w", err)
		}
		cm.watcher = watcher
	}

	return cm, nil
}

// Start begins watching certificate files for changes. No-op when hot
// reload is disabled.
func (cm *CertManager) Start(ctx context.Context) {
	if cm.watcher == nil {
		return
	}

	cm.watcher.Start(ctx, func() {
		if err := cm.Reload(ctx); err != nil {
			cm.logger.LogError(err, "Certificate reload failed")
		}
	})
}

// Stop stops the certificate watcher.
func (cm *CertManager) Stop() {
	if cm.watcher != nil {
		cm.watcher.Stop()
	}
}

// GetCertificate is the tls.Config callback returning the current certificate.
func (cm *CertManager) GetCertificate(*tls.ClientHelloInfo) (*tls.Certificate, error) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	if cm.cert == nil {
		return nil, fmt.Errorf("no certificate loaded")
	}
	return cm.cert, nil
}

// Reload re-reads the certificate pair from disk. The previous certificate
// stays active if loading fails.
func (cm *CertManager) Reload(ctx context.Context) error {
	err := cm.loadCertificate()

	cm.mu.Lock()
	if err != nil {
		cm.reloadFailures++
	} else {
		cm.reloadCount++
		cm.lastReload = time.Now()
	}
	cm.mu.Unlock()

	if cm.metrics != nil {
		cm.metrics.RecordCertReload(ctx, err == nil)
	}

	if err != nil {
		return fmt.Errorf("certificate reload failed: %w", err)
	}

	cm.logger.Info("Certificate reloaded", "cert_file", cm.certFile)
	return nil
}

func (cm *CertManager) loadCertificate() error {
	cert, err := tls.LoadX509KeyPair(cm.certFile, cm.keyFile)
	if err != nil {
		return fmt.Errorf("failed to load certificate pair: %w", err)
	}

	// Parse the leaf so CheckExpiry does not have to re-parse on every call
	if cert.Leaf == nil && len(cert.Certificate) > 0 {
		leaf, err := x509.ParseCertificate(cert.Certificate[0])
		if err != nil {
			return fmt.Errorf("failed to parse leaf certificate: %w", err)
		}
		cert.Leaf = leaf
	}

	cm.mu.Lock()
	cm.cert = &cert
	cm.mu.Unlock()

	return nil
}

// CheckExpiry returns the time remaining until the active certificate
// expires. Negative values mean the certificate has already expired.
func (cm *CertManager) CheckExpiry() (time.Duration, error) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	if cm.cert == nil || cm.cert.Leaf == nil {
		return 0, fmt.Errorf("no certificate loaded")
	}

	return time.Until(cm.cert.Leaf.NotAfter), nil
}

// ReloadStats reports reload activity for health reporting.
func (cm *CertManager) ReloadStats() map[string]any {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	stats := map[string]any{
		"watcher_enabled": cm.watcher != nil,
		"reload_count":    cm.reloadCount,
		"reload_failures": cm.reloadFailures,
	}
	if !cm.lastReload.IsZero() {
		stats["last_reload"] = cm.lastReload.Format(time.RFC3339)
	}
	return stats
}

// certWatcher watches certificate files via fsnotify and fires a debounced
// callback when they change. The parent directories are watched too because
// tools like certbot replace files atomically via rename.
type certWatcher struct {
	files    map[string]time.Time
	debounce time.Duration
	logger   *errors.Logger

	watcher *fsnotify.Watcher
	timer   *time.Timer
	mu      sync.Mutex
	running bool
	done    chan struct{}
}

func newCertWatcher(files []string, debounce time.Duration, logger *errors.Logger) (*certWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	cw := &certWatcher{
		files:    make(map[string]time.Time),
		debounce: debounce,
		logger:   logger,
		watcher:  watcher,
		done:     make(chan struct{}),
	}

	dirs := make(map[string]bool)
	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			watcher.Close()
			return nil, fmt.Errorf("failed to resolve path %s: %w", file, err)
		}

		info, err := os.Stat(abs)
		if err != nil {
			watcher.Close()
			return nil, fmt.Errorf("failed to stat %s: %w", abs, err)
		}
		cw.files[abs] = info.ModTime()

		if err := watcher.Add(abs); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", abs, err)
		}

		dir := filepath.Dir(abs)
		if !dirs[dir] {
			if err := watcher.Add(dir); err != nil {
				watcher.Close()
				return nil, fmt.Errorf("failed to watch directory %s: %w", dir, err)
			}
			dirs[dir] = true
		}
	}

	return cw, nil
}

// Start runs the watch loop in the background, invoking onChange after the
// debounce window whenever a watched file is modified.
func (cw *certWatcher) Start(ctx context.Context, onChange func()) {
	cw.mu.Lock()
	if cw.running {
		cw.mu.Unlock()
		return
	}
	cw.running = true
	cw.mu.Unlock()

	go cw.watchLoop(ctx, onChange)
}

func (cw *certWatcher) watchLoop(ctx context.Context, onChange func()) {
	for {
		select {
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if cw.isRelevant(event) {
				cw.scheduleReload(onChange)
			}
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.logger.Warn("Certificate watcher error", "error", err)
		case <-ctx.Done():
			return
		case <-cw.done:
			return
		}
	}
}

// isRelevant reports whether the event touches a watched file and its
// modification time actually changed.
func (cw *certWatcher) isRelevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}

	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}

	cw.mu.Lock()
	defer cw.mu.Unlock()

	prev, watched := cw.files[abs]
	if !watched {
		return false
	}

	info, err := os.Stat(abs)
	if err != nil {
		// File may be mid-replacement; treat as changed
		return true
	}
	if info.ModTime().Equal(prev) {
		return false
	}

	cw.files[abs] = info.ModTime()
	return true
}

// scheduleReload debounces rapid sequences of events into one callback.
func (cw *certWatcher) scheduleReload(onChange func()) {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if cw.timer != nil {
		cw.timer.Stop()
	}
	cw.timer = time.AfterFunc(cw.debounce, onChange)
}

// Stop shuts down the watcher and cancels any pending reload.
func (cw *certWatcher) Stop() {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if !cw.running {
		return
	}
	cw.running = false

	if cw.timer != nil {
		cw.timer.Stop()
	}
	close(cw.done)
	if err := cw.watcher.Close(); err != nil {
		cw.logger.Warn("Failed to close certificate watcher", "error", err)
	}
}
