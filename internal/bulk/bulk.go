// Package bulk coordinates destructive actions with the undo buffer: it
// snapshots the affected notes before delegating to the repository, so the
// most recent delete or archive can always be taken back.
package bulk

import (
	"github.com/marcus/scribble/internal/note"
	"github.com/marcus/scribble/internal/repo"
	"github.com/marcus/scribble/internal/undo"
)

// Coordinator pairs the repository with the undo buffer.
type Coordinator struct {
	repo   *repo.Repository
	buffer *undo.Buffer
}

// New creates a Coordinator.
func New(r *repo.Repository, b *undo.Buffer) *Coordinator {
	return &Coordinator{repo: r, buffer: b}
}

// Buffer exposes the undo buffer for presentation (e.g. "undo available").
func (c *Coordinator) Buffer() *undo.Buffer { return c.buffer }

// Delete removes one note, capturing it for undo first.
func (c *Coordinator) Delete(id int64) (note.Note, error) {
	removed, err := c.repo.Remove(id)
	if err != nil {
		return note.Note{}, err
	}
	c.buffer.Put(undo.KindDelete, []note.Note{removed})
	return removed, nil
}

// Archive archives one note, capturing its prior state for undo.
func (c *Coordinator) Archive(id int64) error {
	n, ok := c.repo.Get(id)
	if !ok {
		// Let the repository produce the canonical NotFound error.
		return c.repo.SetArchived(id, true)
	}
	if err := c.repo.SetArchived(id, true); err != nil {
		return err
	}
	c.buffer.Put(undo.KindArchive, []note.Note{n})
	return nil
}

// BulkDelete removes every existing id, skipping misses, and captures the
// removed notes for undo. Confirmation is the caller's concern.
func (c *Coordinator) BulkDelete(ids []int64) ([]note.Note, error) {
	removed, err := c.repo.BulkRemove(ids)
	if err != nil {
		return removed, err
	}
	c.buffer.Put(undo.KindDelete, removed)
	return removed, nil
}

// BulkArchive archives every existing id, skipping misses, and captures
// the prior states for undo.
func (c *Coordinator) BulkArchive(ids []int64) ([]note.Note, error) {
	affected, err := c.repo.BulkSetArchived(ids, true)
	if err != nil {
		return affected, err
	}
	c.buffer.Put(undo.KindArchive, affected)
	return affected, nil
}

// Restore re-inserts every held note back into the repository via
// ImportMerge, ids intact, and clears the buffer. Restoring an empty
// buffer is a no-op.
func (c *Coordinator) Restore() (undo.Unit, error) {
	unit, ok := c.buffer.Take()
	if !ok {
		return undo.Unit{}, nil
	}
	if err := c.repo.ImportMerge(unit.Notes); err != nil {
		return unit, err
	}
	return unit, nil
}
