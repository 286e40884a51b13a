// Package port defines the narrow capability interfaces the core consumes
// without knowing the capture mechanism: clipboard, voice transcription,
// and file picking are all UI-adjacent concerns hidden behind these types.
package port

import "context"

// ClipboardSink writes text to the system clipboard.
type ClipboardSink interface {
	Write(text string) error
}

// TranscriptSource is a long-lived, cancellable stream of text fragments.
// Start returns a channel of fragments; the stream ends when the context
// is cancelled or the underlying source stops. Fragments have no effect on
// the repository until the caller commits the draft they were appended to.
type TranscriptSource interface {
	Start(ctx context.Context) (<-chan string, error)
}

// FilePicker resolves a path for import/export. Implementations may prompt
// the user or return a fixed location.
type FilePicker interface {
	Pick() (string, error)
}
