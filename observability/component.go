package observability

import (
	"context"
	"errors"
	"fmt"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/BonEvil/DPSessionManager/component"
)

// Config groups tracing and metrics configuration.
type Config struct {
	Tracing TracerConfig `yaml:"tracing" mapstructure:"tracing"`
	Metrics MeterConfig  `yaml:"metrics" mapstructure:"metrics"`
}

// ApplyDefaults fills unset fields from the defaults for serviceName.
func (c *Config) ApplyDefaults(serviceName string) {
	td := DefaultTracerConfig(serviceName)
	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = td.ServiceName
	}
	if c.Tracing.ServiceVersion == "" {
		c.Tracing.ServiceVersion = td.ServiceVersion
	}
	if c.Tracing.Environment == "" {
		c.Tracing.Environment = td.Environment
	}
	if c.Tracing.Endpoint == "" {
		c.Tracing.Endpoint = td.Endpoint
	}

	md := DefaultMeterConfig(serviceName)
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = md.ServiceName
	}
	if c.Metrics.ServiceVersion == "" {
		c.Metrics.ServiceVersion = md.ServiceVersion
	}
	if c.Metrics.Environment == "" {
		c.Metrics.Environment = md.Environment
	}
	if c.Metrics.Endpoint == "" {
		c.Metrics.Endpoint = md.Endpoint
	}
	if c.Metrics.Interval == 0 {
		c.Metrics.Interval = md.Interval
	}
}

// Telemetry runs the tracer and meter providers as a component.
type Telemetry struct {
	cfg Config
	tp  *sdktrace.TracerProvider
	mp  *sdkmetric.MeterProvider
}

// NewTelemetry creates a telemetry component. Providers are only installed
// for the signals that are enabled.
func NewTelemetry(cfg Config) *Telemetry {
	return &Telemetry{cfg: cfg}
}

// Name implements component.Component.
func (t *Telemetry) Name() string { return "telemetry" }

// Start installs the enabled providers.
func (t *Telemetry) Start(ctx context.Context) error {
	if t.cfg.Tracing.Enabled {
		tp, err := InitTracer(ctx, &t.cfg.Tracing)
		if err != nil {
			return err
		}
		t.tp = tp
	}
	if t.cfg.Metrics.Enabled {
		mp, err := InitMeter(ctx, &t.cfg.Metrics)
		if err != nil {
			return err
		}
		t.mp = mp
	}
	return nil
}

// Stop flushes and shuts down the providers.
func (t *Telemetry) Stop(ctx context.Context) error {
	var errs []error
	if t.tp != nil {
		if err := t.tp.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
		t.tp = nil
	}
	if t.mp != nil {
		if err := t.mp.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
		t.mp = nil
	}
	return errors.Join(errs...)
}

// Health implements component.Component.
func (t *Telemetry) Health(ctx context.Context) component.Health {
	return component.Health{Name: t.Name(), Status: component.StatusHealthy}
}

// Describe implements component.Describable.
func (t *Telemetry) Describe() component.Description {
	return component.Description{
		Type: "telemetry",
		Details: fmt.Sprintf("tracing=%t metrics=%t endpoint=%s",
			t.cfg.Tracing.Enabled, t.cfg.Metrics.Enabled, t.cfg.Tracing.Endpoint),
	}
}

var (
	_ component.Component   = (*Telemetry)(nil)
	_ component.Describable = (*Telemetry)(nil)
)
