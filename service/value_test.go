package service

import (
	"encoding/json"
	"math"
	"testing"
)

func TestValue_Kinds(t *testing.T) {
	tests := []struct {
		v    Value
		kind Kind
		want any
	}{
		{String("a"), KindString, "a"},
		{Number(1.5), KindNumber, 1.5},
		{Int(7), KindNumber, float64(7)},
		{Bool(true), KindBool, true},
		{Null(), KindNull, nil},
		{Value{}, KindNull, nil},
	}
	for _, tt := range tests {
		if tt.v.Kind() != tt.kind {
			t.Errorf("Kind() = %s, want %s", tt.v.Kind(), tt.kind)
		}
		if got := tt.v.Interface(); got != tt.want {
			t.Errorf("Interface() = %v, want %v", got, tt.want)
		}
	}
}

func TestValue_Accessors(t *testing.T) {
	if s, ok := String("x").AsString(); !ok || s != "x" {
		t.Errorf("AsString() = %q, %v", s, ok)
	}
	if _, ok := Number(1).AsString(); ok {
		t.Error("number should not be a string")
	}
	m := Map(map[string]Value{"k": Bool(false)})
	if got, ok := m.AsMap(); !ok || len(got) != 1 {
		t.Errorf("AsMap() = %v, %v", got, ok)
	}
	l := List(String("a"), Int(1))
	if got, ok := l.AsList(); !ok || len(got) != 2 {
		t.Errorf("AsList() = %v, %v", got, ok)
	}
}

func TestValue_MapIsCopied(t *testing.T) {
	src := map[string]Value{"a": String("1")}
	v := Map(src)
	src["b"] = String("2")
	if m, _ := v.AsMap(); len(m) != 1 {
		t.Errorf("expected Map to copy its input, got %d entries", len(m))
	}
}

func TestValue_JSONRoundTrip(t *testing.T) {
	in := Map(map[string]Value{
		"name":   String("alice"),
		"age":    Int(30),
		"admin":  Bool(false),
		"nick":   Null(),
		"tags":   List(String("a"), String("b")),
		"nested": Map(map[string]Value{"x": Number(0.25)}),
	})
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out Value
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !in.Equal(out) {
		t.Errorf("round trip mismatch:\n in: %#v\nout: %#v", in, out)
	}
}

func TestValue_MarshalNonFinite(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := json.Marshal(Number(f)); err == nil {
			t.Errorf("expected error for %v", f)
		}
	}
}

func TestValue_EmptyListMarshalsAsArray(t *testing.T) {
	data, err := json.Marshal(List())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("got %s, want []", data)
	}
}

func TestFromAny(t *testing.T) {
	v, err := FromAny(map[string]any{
		"s": "x",
		"i": 3,
		"f": 1.25,
		"b": true,
		"n": nil,
		"l": []any{"a", 2},
		"m": map[any]any{"k": "v"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, ok := v.AsMap()
	if !ok {
		t.Fatalf("expected map, got %s", v.Kind())
	}
	if n, _ := m["i"].AsNumber(); n != 3 {
		t.Errorf("expected i=3, got %v", n)
	}
	if !m["n"].IsNull() {
		t.Error("expected n to be null")
	}
	if inner, _ := m["m"].AsMap(); !inner["k"].Equal(String("v")) {
		t.Errorf("expected nested k=v, got %#v", m["m"])
	}
}

func TestFromAny_Unsupported(t *testing.T) {
	if _, err := FromAny(struct{}{}); err == nil {
		t.Error("expected error for struct")
	}
	if _, err := FromAny(map[string]any{"ch": make(chan int)}); err == nil {
		t.Error("expected error for nested channel")
	}
	if _, err := FromAny(map[any]any{1: "x"}); err == nil {
		t.Error("expected error for non-string key")
	}
}

func TestParams(t *testing.T) {
	p := StringParams(map[string]string{"a": "1"})
	cp := p.Clone()
	cp["b"] = String("2")
	if len(p) != 1 {
		t.Error("Clone should not share the map")
	}
	if Params(nil).Clone() != nil {
		t.Error("Clone of nil should be nil")
	}
	if got := p.Interface()["a"]; got != "1" {
		t.Errorf("Interface()[a] = %v", got)
	}

	if _, err := ParamsFrom(map[string]any{"bad": func() {}}); err == nil {
		t.Error("expected error for func value")
	}
}
