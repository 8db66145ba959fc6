package tool

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/helios-agent/helios/internal/llm"
)

var (
	// ErrDuplicateTool is returned when registering a name already in use.
	ErrDuplicateTool = errors.New("tool already registered")

	// ErrToolNotFound is returned when unregistering an unknown name.
	ErrToolNotFound = errors.New("tool not registered")
)

// Registry keeps the mapping between tool names and implementations,
// preserving registration order for schema export.
//
// Execute is the error boundary for tool bodies: lookup misses, returned
// errors, and panics all come back as a failed Result, never as an error
// or a propagated panic. Callers only ever branch on Result.Success.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
	order []string
}

func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register stores a tool under its name.
func (r *Registry) Register(t Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := t.Name()
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTool, name)
	}

	r.tools[name] = t
	r.order = append(r.order, name)
	return nil
}

// Unregister removes a tool by name.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[name]; !exists {
		return fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}

	delete(r.tools, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Get fetches a tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// Names lists registered tool names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// Schemas exports function-calling schemas for all registered tools, in
// registration order.
func (r *Registry) Schemas() []llm.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	schemas := make([]llm.Tool, 0, len(r.order))
	for _, name := range r.order {
		schemas = append(schemas, Schema(r.tools[name]))
	}
	return schemas
}

// Execute runs a registered tool by name. It never returns an error: an
// unknown name, a tool error, or a tool panic all produce a failed Result.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) (result Result) {
	t, ok := r.Get(name)
	if !ok {
		return Result{Success: false, Error: fmt.Sprintf("tool %q not found", name)}
	}

	defer func() {
		if rec := recover(); rec != nil {
			result = Result{Success: false, Error: fmt.Sprintf("tool execution failed: %v", rec)}
		}
	}()

	res, err := t.Execute(ctx, args)
	if err != nil {
		return Result{Success: false, Error: fmt.Sprintf("tool execution failed: %v", err)}
	}
	return res
}
