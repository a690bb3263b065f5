package session

import (
	"time"

	"github.com/BonEvil/DPSessionManager/security"
	"github.com/BonEvil/DPSessionManager/validation"
)

// Config configures a Manager.
type Config struct {
	// Name identifies the manager in logs and its bulkhead.
	Name string `yaml:"name" mapstructure:"name"`
	// MaxConcurrent bounds the transfers in flight. Further dispatches queue.
	MaxConcurrent int `yaml:"max_concurrent" mapstructure:"max_concurrent"`
	// DeliveryBuffer is the number of outcomes that may wait for the
	// delivery goroutine before finished transfers block.
	DeliveryBuffer int `yaml:"delivery_buffer" mapstructure:"delivery_buffer"`
	// DisableHTTP2 keeps the pool on HTTP/1.1. HTTP/2 is otherwise
	// negotiated over TLS when the server offers it.
	DisableHTTP2 bool `yaml:"disable_http2" mapstructure:"disable_http2"`
	// MaxIdleConns bounds idle connections across all hosts.
	MaxIdleConns int `yaml:"max_idle_conns" mapstructure:"max_idle_conns"`
	// MaxIdleConnsPerHost bounds idle connections per host.
	MaxIdleConnsPerHost int `yaml:"max_idle_conns_per_host" mapstructure:"max_idle_conns_per_host"`
	// IdleConnTimeout closes connections idle for longer.
	IdleConnTimeout time.Duration `yaml:"idle_conn_timeout" mapstructure:"idle_conn_timeout"`
	// TLSHandshakeTimeout bounds each TLS handshake.
	TLSHandshakeTimeout time.Duration `yaml:"tls_handshake_timeout" mapstructure:"tls_handshake_timeout"`
	// TLS configures server verification. Client certificates come from
	// descriptors, not from here.
	TLS *security.TLSConfig `yaml:"tls" mapstructure:"tls"`
}

// DefaultConfig returns a configuration with defaults applied.
func DefaultConfig() Config {
	cfg := Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "dpsession"
	}
	if c.MaxConcurrent == 0 {
		c.MaxConcurrent = 4
	}
	if c.DeliveryBuffer == 0 {
		c.DeliveryBuffer = 64
	}
	if c.MaxIdleConns == 0 {
		c.MaxIdleConns = 100
	}
	if c.MaxIdleConnsPerHost == 0 {
		c.MaxIdleConnsPerHost = c.MaxConcurrent
	}
	if c.IdleConnTimeout == 0 {
		c.IdleConnTimeout = 90 * time.Second
	}
	if c.TLSHandshakeTimeout == 0 {
		c.TLSHandshakeTimeout = 10 * time.Second
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	v := validation.New("session").
		Check(c.Name != "", "name", "is required").
		Positive("max_concurrent", c.MaxConcurrent).
		Positive("delivery_buffer", c.DeliveryBuffer).
		NonNegative("max_idle_conns", int64(c.MaxIdleConns)).
		NonNegative("max_idle_conns_per_host", int64(c.MaxIdleConnsPerHost)).
		NonNegative("idle_conn_timeout", int64(c.IdleConnTimeout)).
		NonNegative("tls_handshake_timeout", int64(c.TLSHandshakeTimeout))
	if err := c.TLS.Validate(); err != nil {
		v.AddError("tls", err.Error())
	}
	return v.Err()
}
