package observability

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"resumelens/internal/config"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Metrics holds all custom metrics for the analysis service
type Metrics struct {
	// Analysis metrics
	AnalysisDuration metric.Float64Histogram
	AnalysisCount    metric.Int64Counter
	AnalysisErrors   metric.Int64Counter
	OverallScore     metric.Int64Histogram

	// Extraction metrics
	ExtractionFailures metric.Int64Counter

	// Certificate metrics
	CertReloadCount metric.Int64Counter
	CertExpiryTime  metric.Float64Gauge

	// Rate limiting metrics
	RateLimitHits metric.Int64Counter
}

// Manager manages OpenTelemetry setup
type Manager struct {
	config           *config.Config
	serviceVersion   string
	tracerProvider   *trace.TracerProvider
	meterProvider    *sdkmetric.MeterProvider
	metrics          *Metrics
	shutdownFuncs    []func(context.Context) error
	prometheusServer *http.ServeMux
}

// NewManager creates a new observability manager. When observability is
// disabled the manager is inert: tracers are no-ops and metrics are nil-safe.
func NewManager(cfg *config.Config, version string) (*Manager, error) {
	m := &Manager{
		config:         cfg,
		serviceVersion: version,
		shutdownFuncs:  make([]func(context.Context) error, 0),
	}

	if !cfg.Observability.Enabled {
		return m, nil
	}

	if err := m.initTracing(); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	if err := m.initMetrics(); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	return m, nil
}

func (m *Manager) createResource() (*resource.Resource, error) {
	version := m.config.Observability.ServiceVersion
	if version == "" {
		version = m.serviceVersion
	}

	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(m.config.Observability.ServiceName),
			semconv.ServiceVersion(version),
			attribute.String("service.instance.id", m.config.Observability.ServiceInstance),
		),
	)
}

// initTracing sets up OpenTelemetry tracing
func (m *Manager) initTracing() error {
	if !m.config.Observability.Tracing.Enabled {
		return nil
	}

	var exporter trace.SpanExporter
	var err error

	if m.config.Observability.ConsoleOutput {
		// Console exporter for development
		exporter, err = stdouttrace.New(stdouttrace.WithPrettyPrint())
	} else if m.config.Observability.OTLP.Enabled {
		exporter, err = m.createOTLPTraceExporter()
	} else {
		exporter = &noOpSpanExporter{}
	}
	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res, err := m.createResource()
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
		trace.WithSampler(trace.TraceIDRatioBased(m.config.Observability.Tracing.SampleRate)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	m.tracerProvider = tp
	m.shutdownFuncs = append(m.shutdownFuncs, tp.Shutdown)

	return nil
}

// initMetrics sets up OpenTelemetry metrics
func (m *Manager) initMetrics() error {
	if !m.config.Observability.Metrics.Enabled {
		return nil
	}

	readers, err := m.setupMetricReaders()
	if err != nil {
		return err
	}

	res, err := m.createResource()
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	meterProviderOptions := []sdkmetric.Option{
		sdkmetric.WithResource(res),
	}
	for _, reader := range readers {
		meterProviderOptions = append(meterProviderOptions, sdkmetric.WithReader(reader))
	}

	mp := sdkmetric.NewMeterProvider(meterProviderOptions...)

	otel.SetMeterProvider(mp)
	m.meterProvider = mp
	m.shutdownFuncs = append(m.shutdownFuncs, mp.Shutdown)

	return m.initCustomMetrics()
}

// setupMetricReaders sets up all metric readers based on configuration
func (m *Manager) setupMetricReaders() ([]sdkmetric.Reader, error) {
	var readers []sdkmetric.Reader

	if m.config.Observability.ConsoleOutput {
		exporter, err := stdoutmetric.New()
		if err != nil {
			return nil, fmt.Errorf("failed to create console metric exporter: %w", err)
		}
		interval := m.config.Observability.Metrics.CollectionInterval
		readers = append(readers, sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval)))
	}

	if m.config.Observability.OTLP.Enabled {
		otlpReader, err := m.createOTLPMetricsReader()
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP metrics reader: %w", err)
		}
		readers = append(readers, otlpReader)
	}

	if m.config.Observability.Prometheus.Enabled {
		promCfg := PrometheusConfig{
			Enabled:  true,
			Endpoint: m.config.Observability.Prometheus.Endpoint,
			Port:     m.config.Observability.Prometheus.Port,
		}
		prometheusReader, prometheusMux, err := SetupPrometheusExporter(promCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create Prometheus exporter: %w", err)
		}
		if prometheusReader != nil {
			readers = append(readers, prometheusReader)
			m.prometheusServer = prometheusMux

			if err := StartPrometheusServer(prometheusMux, promCfg.Port); err != nil {
				return nil, fmt.Errorf("failed to start Prometheus server: %w", err)
			}
		}
	}

	// If no readers configured, use manual reader as fallback
	if len(readers) == 0 {
		readers = append(readers, sdkmetric.NewManualReader())
	}

	return readers, nil
}

// initCustomMetrics creates all custom metrics
func (m *Manager) initCustomMetrics() error {
	meter := m.meterProvider.Meter(m.config.Observability.ServiceName)
	m.metrics = &Metrics{}

	var err error

	m.metrics.AnalysisDuration, err = meter.Float64Histogram(
		"resumelens_analysis_duration_seconds",
		metric.WithDescription("Time spent analyzing resumes"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create analysis duration metric: %w", err)
	}

	m.metrics.AnalysisCount, err = meter.Int64Counter(
		"resumelens_analyses_total",
		metric.WithDescription("Total number of resume analyses"),
	)
	if err != nil {
		return fmt.Errorf("failed to create analysis count metric: %w", err)
	}

	m.metrics.AnalysisErrors, err = meter.Int64Counter(
		"resumelens_analysis_errors_total",
		metric.WithDescription("Total number of failed analyses"),
	)
	if err != nil {
		return fmt.Errorf("failed to create analysis error metric: %w", err)
	}

	m.metrics.OverallScore, err = meter.Int64Histogram(
		"resumelens_overall_score",
		metric.WithDescription("Distribution of overall resume scores"),
	)
	if err != nil {
		return fmt.Errorf("failed to create overall score metric: %w", err)
	}

	m.metrics.ExtractionFailures, err = meter.Int64Counter(
		"resumelens_extraction_failures_total",
		metric.WithDescription("Total number of failed text extractions"),
	)
	if err != nil {
		return fmt.Errorf("failed to create extraction failure metric: %w", err)
	}

	m.metrics.CertReloadCount, err = meter.Int64Counter(
		"resumelens_cert_reloads_total",
		metric.WithDescription("Total number of certificate reloads"),
	)
	if err != nil {
		return fmt.Errorf("failed to create certificate reload count metric: %w", err)
	}

	m.metrics.CertExpiryTime, err = meter.Float64Gauge(
		"resumelens_cert_expiry_seconds",
		metric.WithDescription("Seconds until certificate expiry"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create certificate expiry time metric: %w", err)
	}

	m.metrics.RateLimitHits, err = meter.Int64Counter(
		"resumelens_rate_limit_hits_total",
		metric.WithDescription("Total number of rate limit hits"),
	)
	if err != nil {
		return fmt.Errorf("failed to create rate limit hits metric: %w", err)
	}

	return nil
}

// GetMetrics returns the metrics instance
func (m *Manager) GetMetrics() *Metrics {
	if m.metrics == nil {
		return &Metrics{} // Return empty metrics if not initialized
	}
	return m.metrics
}

// HTTPMiddleware returns HTTP middleware with OpenTelemetry instrumentation
func (m *Manager) HTTPMiddleware() func(http.Handler) http.Handler {
	if !m.config.Observability.Enabled {
		return func(h http.Handler) http.Handler { return h }
	}

	return otelhttp.NewMiddleware(
		m.config.Observability.ServiceName,
		otelhttp.WithTracerProvider(m.tracerProvider),
		otelhttp.WithMeterProvider(m.meterProvider),
	)
}

// Tracer returns a tracer for the service
func (m *Manager) Tracer(name string) oteltrace.Tracer {
	if !m.config.Observability.Enabled {
		return noop.NewTracerProvider().Tracer(name)
	}
	return otel.Tracer(name)
}

// Shutdown gracefully shuts down all observability components
func (m *Manager) Shutdown(ctx context.Context) error {
	for _, shutdown := range m.shutdownFuncs {
		if err := shutdown(ctx); err != nil {
			return err
		}
	}
	return nil
}

// TrackAnalysis instruments a resume analysis with tracing and metrics. The
// returned report score is recorded only on success.
func (mt *Metrics) TrackAnalysis(ctx context.Context, operation string, fn func(context.Context) (int, error)) error {
	if mt.AnalysisDuration == nil {
		// Metrics not initialized, just run the function
		_, err := fn(ctx)
		return err
	}

	tracer := otel.Tracer("resumelens.analysis")
	ctx, span := tracer.Start(ctx, "analysis."+operation)
	defer span.End()

	start := time.Now()
	score, err := fn(ctx)
	duration := time.Since(start).Seconds()

	attrs := []attribute.KeyValue{
		attribute.String("operation", operation),
		attribute.Bool("success", err == nil),
	}

	mt.AnalysisDuration.Record(ctx, duration, metric.WithAttributes(attrs...))
	mt.AnalysisCount.Add(ctx, 1, metric.WithAttributes(attrs...))

	if err != nil {
		mt.AnalysisErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("error", true))
	} else {
		mt.OverallScore.Record(ctx, int64(score), metric.WithAttributes(attrs...))
		span.SetAttributes(attribute.Int("analysis.overall_score", score))
	}

	span.SetAttributes(attrs...)
	return err
}

// RecordExtractionFailure counts a failed text extraction.
func (mt *Metrics) RecordExtractionFailure(ctx context.Context, fileType string) {
	if mt.ExtractionFailures != nil {
		mt.ExtractionFailures.Add(ctx, 1, metric.WithAttributes(
			attribute.String("file_type", fileType),
		))
	}
}

// RecordRateLimitHit counts a rejected request.
func (mt *Metrics) RecordRateLimitHit(ctx context.Context, key string) {
	if mt.RateLimitHits != nil {
		mt.RateLimitHits.Add(ctx, 1, metric.WithAttributes(
			attribute.String("limiter_key", key),
		))
	}
}

// RecordCertExpiry reports the seconds remaining until certificate expiry.
func (mt *Metrics) RecordCertExpiry(ctx context.Context, remaining time.Duration) {
	if mt.CertExpiryTime != nil {
		mt.CertExpiryTime.Record(ctx, remaining.Seconds())
	}
}

// RecordCertReload counts a certificate reload.
func (mt *Metrics) RecordCertReload(ctx context.Context, success bool) {
	if mt.CertReloadCount != nil {
		mt.CertReloadCount.Add(ctx, 1, metric.WithAttributes(
			attribute.Bool("success", success),
		))
	}
}

// No-op exporter for when no trace backend is configured
type noOpSpanExporter struct{}

func (n *noOpSpanExporter) ExportSpans(ctx context.Context, spans []trace.ReadOnlySpan) error {
	return nil
}

func (n *noOpSpanExporter) Shutdown(ctx context.Context) error {
	return nil
}

// createOTLPTraceExporter creates an OTLP HTTP trace exporter
func (m *Manager) createOTLPTraceExporter() (trace.SpanExporter, error) {
	otlpConfig := m.config.Observability.OTLP

	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpointURL(otlpConfig.Endpoint),
	}
	if otlpConfig.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	if len(otlpConfig.Headers) > 0 {
		opts = append(opts, otlptracehttp.WithHeaders(otlpConfig.Headers))
	}

	exporter, err := otlptracehttp.New(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	return exporter, nil
}

// createOTLPMetricsReader creates an OTLP HTTP metrics reader
func (m *Manager) createOTLPMetricsReader() (sdkmetric.Reader, error) {
	otlpConfig := m.config.Observability.OTLP

	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpointURL(otlpConfig.Endpoint),
	}
	if otlpConfig.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	if len(otlpConfig.Headers) > 0 {
		opts = append(opts, otlpmetrichttp.WithHeaders(otlpConfig.Headers))
	}

	exporter, err := otlpmetrichttp.New(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP metrics exporter: %w", err)
	}

	interval := m.config.Observability.Metrics.CollectionInterval
	return sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval)), nil
}
