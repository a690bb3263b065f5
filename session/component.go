package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/BonEvil/DPSessionManager/component"
)

// Component runs a Manager inside a component.Registry. The manager is
// created on Start so that it picks up telemetry providers installed by
// components started before it.
type Component struct {
	cfg  Config
	opts []Option

	mu      sync.RWMutex
	manager *Manager
}

// NewComponent creates a session component.
func NewComponent(cfg Config, opts ...Option) *Component {
	return &Component{cfg: cfg, opts: opts}
}

// Name implements component.Component.
func (c *Component) Name() string { return "session" }

// Start creates the manager.
func (c *Component) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.manager != nil {
		return nil
	}
	m, err := New(c.cfg, c.opts...)
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}
	c.manager = m
	c.cfg = m.Config()
	return nil
}

// Stop closes the manager, waiting for in-flight dispatches until ctx ends.
func (c *Component) Stop(ctx context.Context) error {
	c.mu.Lock()
	m := c.manager
	c.manager = nil
	c.mu.Unlock()
	if m == nil {
		return nil
	}
	return m.Close(ctx)
}

// Health reports unhealthy before Start and degraded while every transfer
// slot is taken.
func (c *Component) Health(ctx context.Context) component.Health {
	m := c.Manager()
	h := component.Health{Name: c.Name(), Status: component.StatusHealthy}
	switch {
	case m == nil || m.Closed():
		h.Status = component.StatusUnhealthy
		h.Message = "not started"
	case m.InFlight() >= m.Config().MaxConcurrent:
		h.Status = component.StatusDegraded
		h.Message = "all transfer slots in use"
	}
	return h
}

// Manager returns the running manager, or nil before Start.
func (c *Component) Manager() *Manager {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.manager
}

// Describe implements component.Describable.
func (c *Component) Describe() component.Description {
	c.mu.RLock()
	cfg := c.cfg
	c.mu.RUnlock()
	return component.Description{
		Name: cfg.Name,
		Type: "session",
		Details: fmt.Sprintf("max_concurrent=%d http2=%t tls=%t",
			cfg.MaxConcurrent, !cfg.DisableHTTP2, cfg.TLS.IsEnabled()),
	}
}

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)
