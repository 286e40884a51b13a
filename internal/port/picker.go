package port

import (
	"fmt"
	"os"
)

// StaticPicker always resolves the same path. The CLI wires it to the
// -import flag or the default import file in the working directory.
type StaticPicker struct {
	Path string
}

// Pick returns the configured path if a regular file exists there.
func (p StaticPicker) Pick() (string, error) {
	info, err := os.Stat(p.Path)
	if err != nil {
		return "", fmt.Errorf("pick %s: %w", p.Path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("pick %s: is a directory", p.Path)
	}
	return p.Path, nil
}
