package port

import "github.com/atotto/clipboard"

// SystemClipboard writes through the OS clipboard.
type SystemClipboard struct{}

// Write copies text to the system clipboard.
func (SystemClipboard) Write(text string) error {
	return clipboard.WriteAll(text)
}
