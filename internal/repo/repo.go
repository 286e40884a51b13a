// Package repo owns the authoritative in-memory note collection. Every
// mutation writes the whole collection through to the persister
// immediately; a failed persist is reported but never rolls back the
// in-memory change.
package repo

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/marcus/scribble/internal/note"
)

// ErrNotFound is returned by single-target mutations referencing an id that
// is not in the collection. Bulk operations skip missing ids instead.
var ErrNotFound = errors.New("note not found")

// Persister saves the whole collection. The SQLite store satisfies this.
type Persister interface {
	SaveNotes([]note.Note) error
}

// Draft carries the user-entered fields for a new note.
type Draft struct {
	Title    string
	Content  string
	Tags     []string
	Category string
	Priority note.Priority
	DueDate  *time.Time
	Color    string
}

// Fields describes a partial update. Nil members leave the existing value
// untouched. The due date needs a tri-state (unchanged / set / cleared), so
// it only applies when SetDueDate is true.
type Fields struct {
	Title      *string
	Content    *string
	Tags       []string
	Category   *string
	Priority   *note.Priority
	DueDate    *time.Time
	SetDueDate bool
	Color      *string
}

// Repository holds the collection and writes through to the persister.
// The mutex exists because Bubble Tea runs persistence commands off the
// update goroutine; logically there is a single actor.
type Repository struct {
	mu     sync.Mutex
	notes  []note.Note
	lastID int64
	store  Persister
	logger *slog.Logger

	now func() time.Time
}

// New constructs a Repository seeded with the persisted collection.
func New(store Persister, initial []note.Note, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Repository{
		notes:  append([]note.Note(nil), initial...),
		store:  store,
		logger: logger,
		now:    time.Now,
	}
	for _, n := range initial {
		if n.ID > r.lastID {
			r.lastID = n.ID
		}
	}
	return r
}

// newID issues a fresh unique id: the creation timestamp in unix
// milliseconds, bumped past the last issued id when two creations land in
// the same millisecond.
func (r *Repository) newID() int64 {
	id := r.now().UnixMilli()
	if id <= r.lastID {
		id = r.lastID + 1
	}
	r.lastID = id
	return id
}

// Add constructs a note from the draft. A draft whose title and content are
// both empty after trimming is silently dropped and Add returns (0, false).
func (r *Repository) Add(d Draft) (int64, bool, error) {
	if strings.TrimSpace(d.Title) == "" && strings.TrimSpace(d.Content) == "" {
		return 0, false, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	priority := d.Priority
	if priority == "" {
		priority = note.PriorityMedium
	}

	// Tags always persist as an array, never null.
	tags := make([]string, len(d.Tags))
	copy(tags, d.Tags)

	n := note.Note{
		ID:        r.newID(),
		Title:     d.Title,
		Content:   d.Content,
		Tags:      tags,
		Category:  strings.TrimSpace(d.Category),
		Priority:  priority,
		DueDate:   d.DueDate,
		Color:     d.Color,
		CreatedAt: r.now(),
	}
	r.notes = append(r.notes, n)

	return n.ID, true, r.persist()
}

// Update merges fields into the note and stamps updatedAt. CreatedAt is
// never altered.
func (r *Repository) Update(id int64, f Fields) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(id)
	if i < 0 {
		return fmt.Errorf("update %d: %w", id, ErrNotFound)
	}

	n := &r.notes[i]
	if f.Title != nil {
		n.Title = *f.Title
	}
	if f.Content != nil {
		n.Content = *f.Content
	}
	if f.Tags != nil {
		n.Tags = make([]string, len(f.Tags))
		copy(n.Tags, f.Tags)
	}
	if f.Category != nil {
		n.Category = strings.TrimSpace(*f.Category)
	}
	if f.Priority != nil {
		n.Priority = *f.Priority
	}
	if f.SetDueDate {
		n.DueDate = f.DueDate
	}
	if f.Color != nil {
		n.Color = *f.Color
	}
	now := r.now()
	n.UpdatedAt = &now

	return r.persist()
}

// Remove deletes the note permanently and returns the removed note so the
// caller can offer undo.
func (r *Repository) Remove(id int64) (note.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(id)
	if i < 0 {
		return note.Note{}, fmt.Errorf("remove %d: %w", id, ErrNotFound)
	}

	removed := r.notes[i].Clone()
	r.notes = append(r.notes[:i], r.notes[i+1:]...)

	return removed, r.persist()
}

// SetArchived sets the archive flag. Pinned state is untouched.
func (r *Repository) SetArchived(id int64, archived bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(id)
	if i < 0 {
		return fmt.Errorf("archive %d: %w", id, ErrNotFound)
	}
	r.notes[i].IsArchived = archived

	return r.persist()
}

// SetPinned sets the pin flag.
func (r *Repository) SetPinned(id int64, pinned bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(id)
	if i < 0 {
		return fmt.Errorf("pin %d: %w", id, ErrNotFound)
	}
	r.notes[i].Pinned = pinned

	return r.persist()
}

// TogglePin flips the pin flag and returns the new state.
func (r *Repository) TogglePin(id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(id)
	if i < 0 {
		return false, fmt.Errorf("pin %d: %w", id, ErrNotFound)
	}
	r.notes[i].Pinned = !r.notes[i].Pinned

	return r.notes[i].Pinned, r.persist()
}

// BulkSetArchived archives or unarchives every listed id that exists.
// Missing ids are skipped. Returns the affected notes (pre-mutation state)
// in collection order.
func (r *Repository) BulkSetArchived(ids []int64, archived bool) ([]note.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	want := idSet(ids)
	var affected []note.Note
	for i := range r.notes {
		if want[r.notes[i].ID] {
			affected = append(affected, r.notes[i].Clone())
			r.notes[i].IsArchived = archived
		}
	}
	if len(affected) == 0 {
		return nil, nil
	}

	return affected, r.persist()
}

// BulkRemove deletes every listed id that exists, skipping misses. Returns
// the removed notes in collection order.
func (r *Repository) BulkRemove(ids []int64) ([]note.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	want := idSet(ids)
	var removed []note.Note
	kept := r.notes[:0]
	for _, n := range r.notes {
		if want[n.ID] {
			removed = append(removed, n.Clone())
			continue
		}
		kept = append(kept, n)
	}
	r.notes = kept
	if len(removed) == 0 {
		return nil, nil
	}

	return removed, r.persist()
}

// ImportMerge appends the given notes as-is: no deduplication, no id
// renumbering. Callers are responsible for well-formed values.
func (r *Repository) ImportMerge(notes []note.Note) error {
	if len(notes) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, n := range notes {
		r.notes = append(r.notes, n.Clone())
		if n.ID > r.lastID {
			r.lastID = n.ID
		}
	}

	return r.persist()
}

// Get returns a copy of the note, if present.
func (r *Repository) Get(id int64) (note.Note, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(id)
	if i < 0 {
		return note.Note{}, false
	}
	return r.notes[i].Clone(), true
}

// All returns a defensive copy of the collection in stable iteration
// order. Mutating the result has no effect on the Repository.
func (r *Repository) All() []note.Note {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]note.Note, len(r.notes))
	for i, n := range r.notes {
		out[i] = n.Clone()
	}
	return out
}

// Len returns the collection size.
func (r *Repository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.notes)
}

// Flush persists the current collection. Called once at shutdown.
func (r *Repository) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.persist()
}

// persist writes through to the store. Callers must hold the mutex. The
// in-memory collection stays authoritative whether or not the write lands.
func (r *Repository) persist() error {
	snapshot := make([]note.Note, len(r.notes))
	copy(snapshot, r.notes)

	if err := r.store.SaveNotes(snapshot); err != nil {
		r.logger.Error("persist failed", "notes", len(snapshot), "err", err)
		return fmt.Errorf("persist notes: %w", err)
	}
	return nil
}

func (r *Repository) index(id int64) int {
	for i := range r.notes {
		if r.notes[i].ID == id {
			return i
		}
	}
	return -1
}

func idSet(ids []int64) map[int64]bool {
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
