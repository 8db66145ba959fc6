package tool

// DefaultRegistry builds a registry with the builtin tools: calculator,
// datetime, and web_search.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	// Registering fresh tools into an empty registry cannot collide.
	_ = r.Register(NewCalculator())
	_ = r.Register(NewClock())
	_ = r.Register(NewWebSearch())
	return r
}
