// Package keymap maps key presses to command ids, scoped by UI context.
// Context-specific bindings shadow global ones; user overrides shadow both.
package keymap

// Binding ties a key to a command within a context. The "global" context
// applies everywhere a more specific context has no binding.
type Binding struct {
	Key     string
	Command string
	Context string
}

// Registry resolves keys to commands.
type Registry struct {
	bindings  map[string]map[string]string // context -> key -> command
	overrides map[string]string            // key -> command, user supplied
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		bindings:  make(map[string]map[string]string),
		overrides: make(map[string]string),
	}
}

// RegisterBinding adds a binding. Later registrations win.
func (r *Registry) RegisterBinding(b Binding) {
	ctx := b.Context
	if ctx == "" {
		ctx = "global"
	}
	if r.bindings[ctx] == nil {
		r.bindings[ctx] = make(map[string]string)
	}
	r.bindings[ctx][b.Key] = b.Command
}

// SetUserOverride maps a key to a command regardless of context.
func (r *Registry) SetUserOverride(key, command string) {
	r.overrides[key] = command
}

// Lookup resolves a key within a context. Precedence: user override,
// context binding, global binding. Returns "" when unbound.
func (r *Registry) Lookup(key, context string) string {
	if cmd, ok := r.overrides[key]; ok {
		return cmd
	}
	if m := r.bindings[context]; m != nil {
		if cmd, ok := m[key]; ok {
			return cmd
		}
	}
	if m := r.bindings["global"]; m != nil {
		if cmd, ok := m[key]; ok {
			return cmd
		}
	}
	return ""
}

// BindingsFor returns the key/command pairs active in a context, global
// bindings included, for the help footer.
func (r *Registry) BindingsFor(context string) []Binding {
	var out []Binding
	seen := make(map[string]bool)
	for _, ctx := range []string{context, "global"} {
		for key, cmd := range r.bindings[ctx] {
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, Binding{Key: key, Command: cmd, Context: ctx})
		}
	}
	return out
}
