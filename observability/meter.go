package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/BonEvil/DPSessionManager/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// Enabled turns on metric export.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// ServiceName is the name reported in the resource.
	ServiceName string `yaml:"service_name" mapstructure:"service_name"`
	// ServiceVersion is the version reported in the resource.
	ServiceVersion string `yaml:"service_version" mapstructure:"service_version"`
	// Environment is the deployment environment (development, staging, production).
	Environment string `yaml:"environment" mapstructure:"environment"`
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
	// Insecure allows plaintext connections to the collector.
	Insecure bool `yaml:"insecure" mapstructure:"insecure"`
	// Interval is the metric export interval.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// DefaultMeterConfig returns defaults for a local collector.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter installs a periodic OTLP meter provider as the global one.
// The caller shuts it down on exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Get("observability").Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metric names.
const (
	MetricDispatchTotal    = "dpsession.dispatch.total"
	MetricDispatchDuration = "dpsession.dispatch.duration"
	MetricDispatchActive   = "dpsession.dispatch.active"
	MetricAdmissionWait    = "dpsession.admission.wait"
	MetricResponseSize     = "dpsession.response.size"
)

// Metrics holds the instruments recorded for dispatches.
type Metrics struct {
	dispatchTotal    metric.Int64Counter
	dispatchDuration metric.Float64Histogram
	dispatchActive   metric.Int64UpDownCounter
	admissionWait    metric.Float64Histogram
	responseSize     metric.Int64Histogram
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	dispatchTotal, err := meter.Int64Counter(MetricDispatchTotal,
		metric.WithDescription("Completed dispatches by method and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricDispatchTotal, err)
	}

	dispatchDuration, err := meter.Float64Histogram(MetricDispatchDuration,
		metric.WithDescription("Time from submission to outcome in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricDispatchDuration, err)
	}

	dispatchActive, err := meter.Int64UpDownCounter(MetricDispatchActive,
		metric.WithDescription("Dispatches submitted and not yet resolved"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s gauge: %w", MetricDispatchActive, err)
	}

	admissionWait, err := meter.Float64Histogram(MetricAdmissionWait,
		metric.WithDescription("Time spent waiting for a transfer slot in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricAdmissionWait, err)
	}

	responseSize, err := meter.Int64Histogram(MetricResponseSize,
		metric.WithDescription("Response body size in bytes"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricResponseSize, err)
	}

	return &Metrics{
		dispatchTotal:    dispatchTotal,
		dispatchDuration: dispatchDuration,
		dispatchActive:   dispatchActive,
		admissionWait:    admissionWait,
		responseSize:     responseSize,
	}, nil
}

// RecordStart counts a submitted dispatch as active.
func (m *Metrics) RecordStart(ctx context.Context) {
	m.dispatchActive.Add(ctx, 1)
}

// RecordEnd marks a dispatch resolved and records its outcome. outcome is
// "success" or the failure kind.
func (m *Metrics) RecordEnd(ctx context.Context, method, outcome string, duration time.Duration) {
	m.dispatchActive.Add(ctx, -1)
	m.dispatchTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("outcome", outcome),
	))
	m.dispatchDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("method", method),
	))
}

// RecordAdmissionWait records time spent queued for a transfer slot.
func (m *Metrics) RecordAdmissionWait(ctx context.Context, wait time.Duration) {
	m.admissionWait.Record(ctx, wait.Seconds())
}

// RecordResponseSize records the size of a received body.
func (m *Metrics) RecordResponseSize(ctx context.Context, contentType string, size int) {
	m.responseSize.Record(ctx, int64(size), metric.WithAttributes(
		attribute.String("content_type", contentType),
	))
}
