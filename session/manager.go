package session

import (
	"context"
	"crypto/tls"
	stderrors "errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/http2"

	"github.com/BonEvil/DPSessionManager/logger"
	"github.com/BonEvil/DPSessionManager/observability"
	"github.com/BonEvil/DPSessionManager/resilience"
	"github.com/BonEvil/DPSessionManager/service"
)

// ErrClosed is the outcome error of a dispatch submitted after Close.
var ErrClosed = stderrors.New("session: manager is closed")

// Manager dispatches descriptors over a shared connection pool.
type Manager struct {
	cfg  Config
	opts options
	log  *logger.Logger

	tracer   trace.Tracer
	metrics  *observability.Metrics
	bulkhead *resilience.Bulkhead
	delivery *delivery

	client     atomic.Pointer[http.Client]
	credential atomic.Pointer[service.Credential]

	mu       sync.RWMutex
	closed   bool
	inflight sync.WaitGroup
	stopOnce sync.Once
}

// New creates a manager and starts its delivery goroutine.
func New(cfg Config, opts ...Option) (*Manager, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.Get("session")
	}
	if o.tracerProvider == nil {
		o.tracerProvider = otel.GetTracerProvider()
	}
	if o.meterProvider == nil {
		o.meterProvider = otel.GetMeterProvider()
	}

	m := &Manager{
		cfg:    cfg,
		opts:   o,
		log:    o.log,
		tracer: o.tracerProvider.Tracer(observability.InstrumentationName),
	}

	metrics, err := observability.NewMetrics(o.meterProvider.Meter(observability.InstrumentationName))
	if err != nil {
		m.log.Warn("dispatch metrics disabled", logger.Fields(logger.FieldError, err.Error()))
	} else {
		m.metrics = metrics
	}

	client, err := m.newClient()
	if err != nil {
		return nil, err
	}
	m.client.Store(client)

	m.bulkhead = resilience.NewBulkhead(resilience.BulkheadConfig{
		Name:          cfg.Name,
		MaxConcurrent: cfg.MaxConcurrent,
		MaxWait:       resilience.WaitForever,
		OnAcquire: func(name string, waited time.Duration) {
			if m.metrics != nil {
				m.metrics.RecordAdmissionWait(context.Background(), waited)
			}
		},
	})
	m.delivery = newDelivery(cfg.DeliveryBuffer, m.log)

	m.log.Debug("session manager created", logger.Fields(
		"name", cfg.Name,
		"max_concurrent", cfg.MaxConcurrent,
		"http2", !cfg.DisableHTTP2,
	))
	return m, nil
}

// Config returns the configuration the manager was created with.
func (m *Manager) Config() Config { return m.cfg }

// newClient builds a connection pool whose TLS handshakes ask the manager
// for client certificates.
func (m *Manager) newClient() (*http.Client, error) {
	tlsCfg, err := m.cfg.TLS.Build(m.clientCertificate)
	if err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = tlsCfg
	transport.MaxIdleConns = m.cfg.MaxIdleConns
	transport.MaxIdleConnsPerHost = m.cfg.MaxIdleConnsPerHost
	transport.IdleConnTimeout = m.cfg.IdleConnTimeout
	transport.TLSHandshakeTimeout = m.cfg.TLSHandshakeTimeout

	if !m.cfg.DisableHTTP2 {
		if _, err := http2.ConfigureTransports(transport); err != nil {
			return nil, fmt.Errorf("session: configuring HTTP/2: %w", err)
		}
	} else {
		transport.ForceAttemptHTTP2 = false
		transport.TLSNextProto = map[string]func(string, *tls.Conn) http.RoundTripper{}
	}

	var rt http.RoundTripper = transport
	if m.opts.wrapTransport != nil {
		rt = m.opts.wrapTransport(rt)
	}
	return &http.Client{Transport: rt}, nil
}

// Reset replaces the connection pool and forgets the remembered credential.
// It must not be called while dispatches are in flight.
func (m *Manager) Reset() error {
	client, err := m.newClient()
	if err != nil {
		return err
	}
	old := m.client.Swap(client)
	m.credential.Store(nil)
	if old != nil {
		old.CloseIdleConnections()
	}
	m.log.Debug("session reset")
	return nil
}

// InFlight returns the number of transfers currently holding a slot.
func (m *Manager) InFlight() int {
	return m.bulkhead.InUse()
}

// Close stops accepting dispatches, waits for in-flight ones to finish and
// for queued Start callbacks to run, then idles the pool. If ctx ends first,
// Close returns its error and may be called again. Called from a Start
// callback, Close cannot see the delivery goroutine drain until that
// callback returns, so it waits for ctx.
func (m *Manager) Close(ctx context.Context) error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()

	drained := make(chan struct{})
	go func() {
		m.inflight.Wait()
		close(drained)
	}()

	select {
	case <-drained:
	case <-ctx.Done():
		return ctx.Err()
	}

	m.stopOnce.Do(func() {
		m.delivery.stop()
		m.client.Load().CloseIdleConnections()
	})

	select {
	case <-m.delivery.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	m.log.Debug("session manager closed")
	return nil
}

// Closed reports whether Close has been called.
func (m *Manager) Closed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.closed
}
