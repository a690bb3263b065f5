package component

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/BonEvil/DPSessionManager/logger"
)

// mockComponent implements Component for testing.
type mockComponent struct {
	name       string
	startErr   error
	stopErr    error
	health     Health
	startOrder *[]string
	stopOrder  *[]string
}

func (m *mockComponent) Name() string { return m.name }
func (m *mockComponent) Start(ctx context.Context) error {
	if m.startOrder != nil {
		*m.startOrder = append(*m.startOrder, m.name)
	}
	return m.startErr
}
func (m *mockComponent) Stop(ctx context.Context) error {
	if m.stopOrder != nil {
		*m.stopOrder = append(*m.stopOrder, m.name)
	}
	return m.stopErr
}
func (m *mockComponent) Health(ctx context.Context) Health {
	return m.health
}

type describedComponent struct {
	mockComponent
}

func (d *describedComponent) Describe() Description {
	return Description{Type: "session", Details: "max_concurrent=4"}
}

func newRegistry() *Registry {
	return NewRegistry(logger.Nop())
}

func TestRegisterDuplicate(t *testing.T) {
	r := newRegistry()
	if err := r.Register(&mockComponent{name: "session"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := r.Register(&mockComponent{name: "session"}); err == nil {
		t.Error("expected error for duplicate registration")
	}
}

func TestGet(t *testing.T) {
	r := newRegistry()
	_ = r.Register(&mockComponent{name: "session"})

	got := r.Get("session")
	if got == nil || got.Name() != "session" {
		t.Fatalf("expected registered component, got %v", got)
	}
	if r.Get("missing") != nil {
		t.Error("expected nil for unregistered component")
	}
	if len(r.All()) != 1 {
		t.Errorf("expected 1 component, got %d", len(r.All()))
	}
}

func TestNewRegistryNilLogger(t *testing.T) {
	if NewRegistry(nil) == nil {
		t.Fatal("expected registry")
	}
}

func TestStartAll(t *testing.T) {
	r := newRegistry()
	order := []string{}
	_ = r.Register(&mockComponent{name: "telemetry", startOrder: &order})
	_ = r.Register(&describedComponent{mockComponent{name: "session", startOrder: &order}})

	if err := r.StartAll(context.Background()); err != nil {
		t.Fatalf("StartAll failed: %v", err)
	}
	if len(order) != 2 || order[0] != "telemetry" || order[1] != "session" {
		t.Errorf("expected start order [telemetry session], got %v", order)
	}

	// Starting again does not restart.
	if err := r.StartAll(context.Background()); err != nil {
		t.Fatalf("second StartAll failed: %v", err)
	}
	if len(order) != 2 {
		t.Errorf("expected components to start once, got %v", order)
	}
}

func TestStartAllErrorRollsBack(t *testing.T) {
	r := newRegistry()
	stops := []string{}
	_ = r.Register(&mockComponent{name: "telemetry", stopOrder: &stops})
	_ = r.Register(&mockComponent{name: "session", stopOrder: &stops})
	_ = r.Register(&mockComponent{name: "echo", startErr: fmt.Errorf("address in use"), stopOrder: &stops})

	err := r.StartAll(context.Background())
	if err == nil || !strings.Contains(err.Error(), "failed to start echo") {
		t.Fatalf("expected start error, got %v", err)
	}
	if len(stops) != 2 || stops[0] != "session" || stops[1] != "telemetry" {
		t.Errorf("expected started components stopped in reverse, got %v", stops)
	}
}

func TestStopAllReverseOrder(t *testing.T) {
	r := newRegistry()
	order := []string{}
	_ = r.Register(&mockComponent{name: "telemetry", stopOrder: &order})
	_ = r.Register(&mockComponent{name: "session", stopOrder: &order})
	_ = r.Register(&mockComponent{name: "echo", stopOrder: &order})

	_ = r.StartAll(context.Background())
	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll failed: %v", err)
	}
	if len(order) != 3 || order[0] != "echo" || order[1] != "session" || order[2] != "telemetry" {
		t.Errorf("expected reverse stop order, got %v", order)
	}
}

func TestStopAllSkipsUnstarted(t *testing.T) {
	r := newRegistry()
	order := []string{}
	_ = r.Register(&mockComponent{name: "session", stopOrder: &order})

	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll failed: %v", err)
	}
	if len(order) != 0 {
		t.Errorf("expected 0 stops for unstarted components, got %d", len(order))
	}
}

func TestStopAllWithErrors(t *testing.T) {
	r := newRegistry()
	_ = r.Register(&mockComponent{name: "session", stopErr: fmt.Errorf("stop failed")})
	_ = r.StartAll(context.Background())

	err := r.StopAll(context.Background())
	if err == nil || !strings.Contains(err.Error(), "stop failed") {
		t.Errorf("expected stop error, got %v", err)
	}
}

func TestHealthAll(t *testing.T) {
	r := newRegistry()
	_ = r.Register(&mockComponent{
		name:   "session",
		health: Health{Name: "session", Status: StatusHealthy},
	})
	_ = r.Register(&mockComponent{
		name:   "echo",
		health: Health{Name: "echo", Status: StatusUnhealthy, Message: "not listening"},
	})

	results := r.HealthAll(context.Background())
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Status != StatusHealthy {
		t.Errorf("expected session healthy, got %s", results[0].Status)
	}
	if results[1].Status != StatusUnhealthy {
		t.Errorf("expected echo unhealthy, got %s", results[1].Status)
	}
}
