package tool

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// fakeTool is a configurable test double.
type fakeTool struct {
	name   string
	desc   string
	params []Parameter
	result Result
	err    error
	panics bool
}

func (f *fakeTool) Name() string            { return f.name }
func (f *fakeTool) Description() string     { return f.desc }
func (f *fakeTool) Parameters() []Parameter { return f.params }

func (f *fakeTool) Execute(ctx context.Context, args map[string]any) (Result, error) {
	if f.panics {
		panic("tool blew up")
	}
	return f.result, f.err
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&fakeTool{name: "a"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Len() != 1 {
		t.Errorf("expected 1 tool, got %d", r.Len())
	}
}

func TestRegistry_RegisterDuplicate(t *testing.T) {
	r := NewRegistry()
	first := &fakeTool{name: "a", desc: "original"}
	if err := r.Register(first); err != nil {
		t.Fatal(err)
	}

	err := r.Register(&fakeTool{name: "a", desc: "impostor"})
	if !errors.Is(err, ErrDuplicateTool) {
		t.Fatalf("expected ErrDuplicateTool, got %v", err)
	}

	// The first registration stays intact.
	got, ok := r.Get("a")
	if !ok || got.Description() != "original" {
		t.Errorf("expected original tool to survive, got %v", got)
	}
}

func TestRegistry_Unregister(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&fakeTool{name: "a"}); err != nil {
		t.Fatal(err)
	}
	if err := r.Unregister("a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := r.Get("a"); ok {
		t.Error("expected tool removed")
	}
}

func TestRegistry_UnregisterMissing(t *testing.T) {
	r := NewRegistry()
	if err := r.Unregister("ghost"); !errors.Is(err, ErrToolNotFound) {
		t.Errorf("expected ErrToolNotFound, got %v", err)
	}
}

func TestRegistry_NamesInRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	for _, n := range []string{"zebra", "apple", "mango"} {
		if err := r.Register(&fakeTool{name: n}); err != nil {
			t.Fatal(err)
		}
	}
	names := r.Names()
	want := []string{"zebra", "apple", "mango"}
	for i, n := range want {
		if names[i] != n {
			t.Errorf("position %d: expected %s, got %s", i, n, names[i])
		}
	}
}

func TestRegistry_NamesOrderAfterUnregister(t *testing.T) {
	r := NewRegistry()
	for _, n := range []string{"a", "b", "c"} {
		if err := r.Register(&fakeTool{name: n}); err != nil {
			t.Fatal(err)
		}
	}
	if err := r.Unregister("b"); err != nil {
		t.Fatal(err)
	}
	names := r.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "c" {
		t.Errorf("expected [a c], got %v", names)
	}
}

func TestRegistry_SchemasInRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&fakeTool{name: "second_registered_first"}); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(&fakeTool{name: "alpha"}); err != nil {
		t.Fatal(err)
	}
	schemas := r.Schemas()
	if len(schemas) != 2 {
		t.Fatalf("expected 2 schemas, got %d", len(schemas))
	}
	if schemas[0].Name != "second_registered_first" || schemas[1].Name != "alpha" {
		t.Errorf("expected registration order, got %s, %s", schemas[0].Name, schemas[1].Name)
	}
}

func TestRegistry_ExecuteNotFound(t *testing.T) {
	r := NewRegistry()
	res := r.Execute(context.Background(), "ghost", nil)
	if res.Success {
		t.Fatal("expected failure for unknown tool")
	}
	if !strings.Contains(res.Error, "not found") {
		t.Errorf("expected not-found error, got %q", res.Error)
	}
}

func TestRegistry_ExecuteSuccessPassesThrough(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&fakeTool{name: "a", result: Result{Success: true, Output: "done"}}); err != nil {
		t.Fatal(err)
	}
	res := r.Execute(context.Background(), "a", nil)
	if !res.Success || res.Output != "done" {
		t.Errorf("expected pass-through result, got %+v", res)
	}
}

func TestRegistry_ExecuteToolError(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&fakeTool{name: "a", err: errors.New("boom")}); err != nil {
		t.Fatal(err)
	}
	res := r.Execute(context.Background(), "a", nil)
	if res.Success {
		t.Fatal("expected failure")
	}
	if !strings.Contains(res.Error, "boom") {
		t.Errorf("expected cause in error, got %q", res.Error)
	}
}

func TestRegistry_ExecutePanicRecovered(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&fakeTool{name: "a", panics: true}); err != nil {
		t.Fatal(err)
	}
	res := r.Execute(context.Background(), "a", nil)
	if res.Success {
		t.Fatal("expected failure")
	}
	if !strings.Contains(res.Error, "tool blew up") {
		t.Errorf("expected panic cause captured, got %q", res.Error)
	}
}

func TestSchema_WireShape(t *testing.T) {
	ft := &fakeTool{
		name: "demo",
		desc: "a demo tool",
		params: []Parameter{
			{Name: "query", Type: "string", Description: "the query", Required: true},
			{Name: "mode", Type: "string", Description: "the mode", Enum: []string{"fast", "slow"}},
		},
	}

	schema := Schema(ft)
	if schema.Name != "demo" || schema.Description != "a demo tool" {
		t.Errorf("unexpected header: %+v", schema)
	}
	if schema.Parameters["type"] != "object" {
		t.Errorf("expected object parameters, got %v", schema.Parameters["type"])
	}

	props, ok := schema.Parameters["properties"].(map[string]any)
	if !ok {
		t.Fatalf("expected properties map, got %T", schema.Parameters["properties"])
	}
	query, ok := props["query"].(map[string]any)
	if !ok || query["type"] != "string" || query["description"] != "the query" {
		t.Errorf("unexpected query property: %v", props["query"])
	}
	mode := props["mode"].(map[string]any)
	if enum, ok := mode["enum"].([]string); !ok || len(enum) != 2 {
		t.Errorf("expected enum carried over, got %v", mode["enum"])
	}

	required, ok := schema.Parameters["required"].([]string)
	if !ok || len(required) != 1 || required[0] != "query" {
		t.Errorf("expected required [query], got %v", schema.Parameters["required"])
	}
}

func TestSchema_NoParameters(t *testing.T) {
	schema := Schema(&fakeTool{name: "bare"})
	props := schema.Parameters["properties"].(map[string]any)
	if len(props) != 0 {
		t.Errorf("expected empty properties, got %v", props)
	}
	required := schema.Parameters["required"].([]string)
	if len(required) != 0 {
		t.Errorf("expected empty required, got %v", required)
	}
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	names := r.Names()
	want := []string{"calculator", "datetime", "web_search"}
	if len(names) != len(want) {
		t.Fatalf("expected %d tools, got %v", len(want), names)
	}
	for i, n := range want {
		if names[i] != n {
			t.Errorf("position %d: expected %s, got %s", i, n, names[i])
		}
	}
}
