package keymap

// DefaultBindings returns the default key bindings.
func DefaultBindings() []Binding {
	return []Binding{
		// Global bindings
		{Key: "ctrl+c", Command: "quit", Context: "global"},
		{Key: "?", Command: "toggle-help", Context: "global"},
		{Key: "ctrl+h", Command: "toggle-footer", Context: "global"},

		// Note list context
		{Key: "q", Command: "quit", Context: "list"},
		{Key: "j", Command: "cursor-down", Context: "list"},
		{Key: "down", Command: "cursor-down", Context: "list"},
		{Key: "k", Command: "cursor-up", Context: "list"},
		{Key: "up", Command: "cursor-up", Context: "list"},
		{Key: "g g", Command: "cursor-top", Context: "list"}, // chord, second key resolved as "g <key>"
		{Key: "G", Command: "cursor-bottom", Context: "list"},
		{Key: "enter", Command: "open-note", Context: "list"},
		{Key: "n", Command: "new-note", Context: "list"},
		{Key: "/", Command: "search", Context: "list"},
		{Key: "p", Command: "toggle-pin", Context: "list"},
		{Key: "A", Command: "archive-note", Context: "list"},
		{Key: "a", Command: "toggle-archived-view", Context: "list"},
		{Key: "X", Command: "delete-note", Context: "list"},
		{Key: "u", Command: "undo", Context: "list"},
		{Key: "s", Command: "cycle-sort", Context: "list"},
		{Key: "f", Command: "cycle-due-filter", Context: "list"},
		{Key: "t", Command: "cycle-tag-filter", Context: "list"},
		{Key: "c", Command: "cycle-category-filter", Context: "list"},
		{Key: "F", Command: "clear-filters", Context: "list"},
		{Key: "y", Command: "yank-content", Context: "list"},
		{Key: "Y", Command: "yank-title", Context: "list"},
		{Key: "T", Command: "toggle-theme", Context: "list"},
		{Key: "v", Command: "toggle-select", Context: "list"},
		{Key: "V", Command: "clear-selection", Context: "list"},
		{Key: "d", Command: "bulk-delete", Context: "list"},
		{Key: "z", Command: "bulk-archive", Context: "list"},
		{Key: "e", Command: "export-text", Context: "list"},
		{Key: "E", Command: "export-html", Context: "list"},
		{Key: "i", Command: "import-notes", Context: "list"},

		// Editor context
		{Key: "esc", Command: "close-editor", Context: "editor"},
		{Key: "ctrl+s", Command: "save-note", Context: "editor"},
		{Key: "tab", Command: "next-field", Context: "editor"},
		{Key: "shift+tab", Command: "prev-field", Context: "editor"},
		{Key: "ctrl+p", Command: "toggle-preview", Context: "editor"},
		{Key: "ctrl+j", Command: "cycle-priority", Context: "editor"},
		{Key: "ctrl+r", Command: "toggle-voice", Context: "editor"},
		{Key: "alt+c", Command: "copy-content", Context: "editor"},

		// Search context
		{Key: "esc", Command: "cancel-search", Context: "search"},
		{Key: "enter", Command: "confirm-search", Context: "search"},

		// Confirm dialog context
		{Key: "esc", Command: "cancel", Context: "confirm"},
		{Key: "enter", Command: "confirm", Context: "confirm"},
		{Key: "tab", Command: "switch-button", Context: "confirm"},
		{Key: "left", Command: "switch-button", Context: "confirm"},
		{Key: "right", Command: "switch-button", Context: "confirm"},
	}
}

// RegisterDefaults registers all default bindings with the registry.
func RegisterDefaults(r *Registry) {
	for _, b := range DefaultBindings() {
		r.RegisterBinding(b)
	}
}
