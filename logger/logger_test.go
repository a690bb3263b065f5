package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
)

func newJSONLogger(t *testing.T, level string) (*Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	cfg := &Config{Level: level, Format: FormatJSON}
	return NewWithWriter(cfg, "test", &buf), &buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatal("expected a log line, got nothing")
	}
	if i := strings.LastIndex(line, "\n"); i >= 0 {
		line = line[i+1:]
	}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		t.Fatalf("decode %q: %v", line, err)
	}
	return m
}

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.Name() != "test-svc" {
		t.Errorf("expected name 'test-svc', got %q", l.Name())
	}
}

func TestNewInvalidLevel(t *testing.T) {
	l, buf := newJSONLogger(t, "invalid-level")
	l.Debug("hidden")
	l.Info("shown")
	if strings.Contains(buf.String(), "hidden") {
		t.Error("expected invalid level to fall back to info")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Error("expected info message to be written")
	}
}

func TestLevelFiltering(t *testing.T) {
	l, buf := newJSONLogger(t, "warn")
	l.Info("quiet")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered, got %q", buf.String())
	}
	l.Warn("loud")
	if got := decodeLine(t, buf); got["level"] != "warn" || got["message"] != "loud" {
		t.Errorf("unexpected entry %v", got)
	}
}

func TestFieldsAreWritten(t *testing.T) {
	l, buf := newJSONLogger(t, "debug")
	l.Info("dispatch completed", Fields(FieldMethod, "GET", FieldStatusCode, 200))

	got := decodeLine(t, buf)
	if got[FieldMethod] != "GET" {
		t.Errorf("expected method field, got %v", got)
	}
	if got[FieldStatusCode] != float64(200) {
		t.Errorf("expected status_code 200, got %v", got[FieldStatusCode])
	}
}

func TestWithComponent(t *testing.T) {
	l, buf := newJSONLogger(t, "info")
	l.WithComponent("session").Info("hello")
	if got := decodeLine(t, buf); got[FieldComponent] != "session" {
		t.Errorf("expected component field, got %v", got)
	}
}

func TestWithError(t *testing.T) {
	l, buf := newJSONLogger(t, "info")
	l.WithError(errors.New("boom")).Error("failed")
	if got := decodeLine(t, buf); got["error"] != "boom" {
		t.Errorf("expected error field, got %v", got)
	}
}

func TestWithFields(t *testing.T) {
	l, buf := newJSONLogger(t, "info")
	l.WithFields(map[string]interface{}{FieldURL: "http://x"}).Info("x")
	if got := decodeLine(t, buf); got[FieldURL] != "http://x" {
		t.Errorf("expected url field, got %v", got)
	}
}

func TestWithContext(t *testing.T) {
	l, buf := newJSONLogger(t, "info")

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)
	ctx = ContextWithDispatchID(ctx, "d-1")

	l.WithContext(ctx).Info("x")
	got := decodeLine(t, buf)
	if got[FieldDispatchID] != "d-1" {
		t.Errorf("expected dispatch id, got %v", got)
	}
	if got[FieldTraceID] != "4bf92f3577b34da6a3ce929d0e0e4736" {
		t.Errorf("expected trace id, got %v", got[FieldTraceID])
	}
	if got[FieldSpanID] != "00f067aa0ba902b7" {
		t.Errorf("expected span id, got %v", got[FieldSpanID])
	}
}

func TestWithContextEmpty(t *testing.T) {
	l, buf := newJSONLogger(t, "info")
	l.WithContext(context.Background()).Info("x")
	got := decodeLine(t, buf)
	for _, k := range []string{FieldDispatchID, FieldTraceID, FieldSpanID} {
		if _, ok := got[k]; ok {
			t.Errorf("did not expect %s in %v", k, got)
		}
	}
}

func TestDispatchIDFromContext(t *testing.T) {
	if id := DispatchIDFromContext(context.Background()); id != "" {
		t.Errorf("expected empty id, got %q", id)
	}
	ctx := ContextWithDispatchID(context.Background(), "abc")
	if id := DispatchIDFromContext(ctx); id != "abc" {
		t.Errorf("expected abc, got %q", id)
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Error("discarded")
	l.WithComponent("x").Info("discarded")
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: FormatConsole, NoColor: true}, "session", &buf)
	l.Info("hello", Fields("k", "v"))
	out := buf.String()
	for _, want := range []string{"[SES]", "[INF]", "hello", "k:"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in console output %q", want, out)
		}
	}
}

func TestSetGlobalLogger(t *testing.T) {
	prev := GetGlobalLogger()
	defer SetGlobalLogger(prev)

	l, buf := newJSONLogger(t, "info")
	SetGlobalLogger(l)
	Info("global")
	if got := decodeLine(t, buf); got["message"] != "global" {
		t.Errorf("expected message via global logger, got %v", got)
	}
	WithComponent("cmd").Warn("tagged")
	if got := decodeLine(t, buf); got[FieldComponent] != "cmd" {
		t.Errorf("expected component tag, got %v", got)
	}
}

func TestRegisterAndGet(t *testing.T) {
	l, buf := newJSONLogger(t, "info")
	Register("registered", l)
	t.Cleanup(func() { Unregister("registered") })
	Get("registered").Info("via registry")
	if !strings.Contains(buf.String(), "via registry") {
		t.Error("expected registered logger to be returned")
	}
}

func TestGetUnregistered(t *testing.T) {
	l := Get("never-registered")
	if l == nil {
		t.Fatal("expected a fallback logger")
	}
}

func TestUnregister(t *testing.T) {
	l := Nop()
	Register("transient", l)
	Unregister("transient")
	if Get("transient") == l {
		t.Error("expected the fallback logger after Unregister")
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{Level: "DEBUG"}
	cfg.ApplyDefaults()
	if cfg.Level != "debug" {
		t.Errorf("expected lower-cased level, got %q", cfg.Level)
	}
	if cfg.Format != FormatConsole {
		t.Errorf("expected console format, got %q", cfg.Format)
	}
	if cfg.Output != "stderr" {
		t.Errorf("expected stderr output, got %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected timestamps enabled")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"valid", Config{Level: "info", Format: "json", Output: "stdout"}, ""},
		{"bad level", Config{Level: "loud", Format: "json", Output: "stdout"}, "logging.level"},
		{"bad format", Config{Level: "info", Format: "xml", Output: "stdout"}, "logging.format"},
		{"bad output", Config{Level: "info", Format: "json", Output: "file"}, "logging.output"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestErrorFields(t *testing.T) {
	f := ErrorFields("PARSE", errors.New("bad body"))
	if f[FieldKind] != "PARSE" || f[FieldError] != "bad body" {
		t.Errorf("unexpected fields %v", f)
	}
}

func TestMergeWithDuration(t *testing.T) {
	f := MergeWithDuration(nil, 1500*time.Millisecond)
	if f[FieldDuration] != int64(1500) {
		t.Errorf("expected 1500ms, got %v", f[FieldDuration])
	}
	f = MergeWithDuration(Fields("a", 1), time.Second)
	if f["a"] != 1 || f[FieldDuration] != int64(1000) {
		t.Errorf("unexpected fields %v", f)
	}
}

func TestFieldsOddArguments(t *testing.T) {
	f := Fields("a", 1, "dangling")
	if len(f) != 1 || f["a"] != 1 {
		t.Errorf("unexpected fields %v", f)
	}
}
