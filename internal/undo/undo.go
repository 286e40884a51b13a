// Package undo holds the single restoration slot for the most recent
// destructive action. It is a bounded history of depth one, not a stack:
// each destructive action replaces whatever was held before.
package undo

import "github.com/marcus/scribble/internal/note"

// Kind tags what produced the held notes, for user-facing messages.
type Kind string

const (
	KindDelete  Kind = "delete"
	KindArchive Kind = "archive"
)

// Unit is one restorable action: a single note or a bulk batch.
type Unit struct {
	Kind  Kind
	Notes []note.Note
}

// Single reports whether the unit holds exactly one note.
func (u Unit) Single() bool { return len(u.Notes) == 1 }

// Buffer is the one-slot undo history. The zero value is ready to use.
type Buffer struct {
	unit *Unit
}

// NewBuffer creates an empty Buffer.
func NewBuffer() *Buffer { return &Buffer{} }

// Put replaces the slot with a new restoration unit. Empty snapshots are
// ignored so a no-op bulk action cannot clobber a real one.
func (b *Buffer) Put(kind Kind, notes []note.Note) {
	if len(notes) == 0 {
		return
	}
	held := make([]note.Note, len(notes))
	for i, n := range notes {
		held[i] = n.Clone()
	}
	b.unit = &Unit{Kind: kind, Notes: held}
}

// Take removes and returns the held unit, or false when empty.
func (b *Buffer) Take() (Unit, bool) {
	if b.unit == nil {
		return Unit{}, false
	}
	u := *b.unit
	b.unit = nil
	return u, true
}

// Peek returns the held unit without clearing it.
func (b *Buffer) Peek() (Unit, bool) {
	if b.unit == nil {
		return Unit{}, false
	}
	return *b.unit, true
}

// Empty reports whether there is nothing to restore.
func (b *Buffer) Empty() bool { return b.unit == nil }
