package repo

import (
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/marcus/scribble/internal/note"
)

// fakeStore records every persisted snapshot.
type fakeStore struct {
	saves [][]note.Note
	err   error
}

func (f *fakeStore) SaveNotes(notes []note.Note) error {
	if f.err != nil {
		return f.err
	}
	f.saves = append(f.saves, notes)
	return nil
}

func newTestRepo(initial ...note.Note) (*Repository, *fakeStore) {
	fs := &fakeStore{}
	r := New(fs, initial, slog.Default())
	return r, fs
}

func TestAddRejectsEmptyDraft(t *testing.T) {
	r, fs := newTestRepo()

	tests := []struct {
		name  string
		draft Draft
		want  bool
	}{
		{"both empty", Draft{}, false},
		{"whitespace only", Draft{Title: "  ", Content: "\n\t"}, false},
		{"title only", Draft{Title: "x"}, true},
		{"content only", Draft{Content: "x"}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, added, err := r.Add(tc.draft)
			if err != nil {
				t.Fatalf("Add failed: %v", err)
			}
			if added != tc.want {
				t.Errorf("added = %v, want %v", added, tc.want)
			}
		})
	}

	if r.Len() != 2 {
		t.Errorf("collection has %d notes, want 2", r.Len())
	}
	if len(fs.saves) != 2 {
		t.Errorf("persisted %d times, want 2 (rejected drafts must not persist)", len(fs.saves))
	}
}

func TestAddPersistsTagsAsArray(t *testing.T) {
	r, fs := newTestRepo()

	id, _, err := r.Add(Draft{Title: "untagged"})
	if err != nil {
		t.Fatal(err)
	}

	n, ok := r.Get(id)
	if !ok {
		t.Fatal("note missing")
	}
	if n.Tags == nil {
		t.Error("Get returned nil tags for an untagged note")
	}

	data, err := json.Marshal(fs.saves[len(fs.saves)-1])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"tags":[]`) {
		t.Errorf("persisted blob holds null tags: %s", data)
	}
}

func TestAddDefaultsAndIDs(t *testing.T) {
	r, _ := newTestRepo()

	id1, _, _ := r.Add(Draft{Title: "first"})
	id2, _, _ := r.Add(Draft{Title: "second"})

	if id1 == id2 {
		t.Fatalf("ids must be unique, both %d", id1)
	}
	if id2 < id1 {
		t.Errorf("ids should be monotonic: %d then %d", id1, id2)
	}

	n, ok := r.Get(id1)
	if !ok {
		t.Fatal("note not found after Add")
	}
	if n.Priority != note.PriorityMedium {
		t.Errorf("priority = %q, want default Medium", n.Priority)
	}
	if n.CreatedAt.IsZero() {
		t.Error("createdAt not set")
	}
	if n.UpdatedAt != nil {
		t.Error("updatedAt must be absent until first update")
	}
	if n.Pinned || n.IsArchived {
		t.Error("new note should be unpinned and unarchived")
	}
}

func TestUpdateMergesFields(t *testing.T) {
	r, _ := newTestRepo()
	id, _, _ := r.Add(Draft{Title: "old", Content: "body", Category: "work"})

	before, _ := r.Get(id)

	title := "new"
	pr := note.PriorityHigh
	if err := r.Update(id, Fields{Title: &title, Priority: &pr}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	n, _ := r.Get(id)
	if n.Title != "new" {
		t.Errorf("title = %q, want new", n.Title)
	}
	if n.Content != "body" || n.Category != "work" {
		t.Error("unprovided fields must not change")
	}
	if n.Priority != note.PriorityHigh {
		t.Errorf("priority = %q, want High", n.Priority)
	}
	if n.UpdatedAt == nil {
		t.Fatal("updatedAt not set by Update")
	}
	if n.UpdatedAt.Before(n.CreatedAt) {
		t.Error("updatedAt before createdAt")
	}
	if !n.CreatedAt.Equal(before.CreatedAt) {
		t.Error("createdAt must never change")
	}
}

func TestUpdateDueDateTriState(t *testing.T) {
	r, _ := newTestRepo()
	id, _, _ := r.Add(Draft{Title: "n"})

	due := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	if err := r.Update(id, Fields{DueDate: &due, SetDueDate: true}); err != nil {
		t.Fatal(err)
	}
	n, _ := r.Get(id)
	if n.DueDate == nil || !n.DueDate.Equal(due) {
		t.Fatalf("due date not set: %v", n.DueDate)
	}

	// Fields without SetDueDate leave it alone.
	title := "renamed"
	if err := r.Update(id, Fields{Title: &title}); err != nil {
		t.Fatal(err)
	}
	n, _ = r.Get(id)
	if n.DueDate == nil {
		t.Fatal("due date cleared by unrelated update")
	}

	// SetDueDate with nil clears.
	if err := r.Update(id, Fields{SetDueDate: true}); err != nil {
		t.Fatal(err)
	}
	n, _ = r.Get(id)
	if n.DueDate != nil {
		t.Fatal("due date not cleared")
	}
}

func TestMutationsOnMissingID(t *testing.T) {
	r, _ := newTestRepo()

	if err := r.Update(99, Fields{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update: got %v, want ErrNotFound", err)
	}
	if _, err := r.Remove(99); !errors.Is(err, ErrNotFound) {
		t.Errorf("Remove: got %v, want ErrNotFound", err)
	}
	if err := r.SetArchived(99, true); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetArchived: got %v, want ErrNotFound", err)
	}
	if _, err := r.TogglePin(99); !errors.Is(err, ErrNotFound) {
		t.Errorf("TogglePin: got %v, want ErrNotFound", err)
	}
}

func TestRemoveReturnsNote(t *testing.T) {
	r, _ := newTestRepo()
	id, _, _ := r.Add(Draft{Title: "doomed", Tags: []string{"t"}})

	removed, err := r.Remove(id)
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if removed.ID != id || removed.Title != "doomed" {
		t.Errorf("removed note mismatch: %+v", removed)
	}
	if _, ok := r.Get(id); ok {
		t.Error("note still present after Remove")
	}
}

func TestArchiveDoesNotTouchPin(t *testing.T) {
	r, _ := newTestRepo()
	id, _, _ := r.Add(Draft{Title: "n"})

	if _, err := r.TogglePin(id); err != nil {
		t.Fatal(err)
	}
	if err := r.SetArchived(id, true); err != nil {
		t.Fatal(err)
	}

	n, _ := r.Get(id)
	if !n.IsArchived {
		t.Error("not archived")
	}
	if !n.Pinned {
		t.Error("archiving must not alter pinned")
	}

	if err := r.SetArchived(id, false); err != nil {
		t.Fatal(err)
	}
	n, _ = r.Get(id)
	if n.IsArchived {
		t.Error("not unarchived")
	}
}

func TestBulkSkipsMissingIDs(t *testing.T) {
	r, _ := newTestRepo()
	id1, _, _ := r.Add(Draft{Title: "a"})
	id2, _, _ := r.Add(Draft{Title: "b"})

	affected, err := r.BulkSetArchived([]int64{id1, 424242, id2}, true)
	if err != nil {
		t.Fatalf("BulkSetArchived failed: %v", err)
	}
	if len(affected) != 2 {
		t.Fatalf("affected %d notes, want 2", len(affected))
	}
	// Collection order, pre-mutation state.
	if affected[0].ID != id1 || affected[1].ID != id2 {
		t.Error("affected notes not in collection order")
	}
	if affected[0].IsArchived {
		t.Error("affected snapshot should hold pre-mutation state")
	}

	removed, err := r.BulkRemove([]int64{id2, 99})
	if err != nil {
		t.Fatalf("BulkRemove failed: %v", err)
	}
	if len(removed) != 1 || removed[0].ID != id2 {
		t.Errorf("removed %v, want just %d", removed, id2)
	}
	if r.Len() != 1 {
		t.Errorf("collection has %d notes, want 1", r.Len())
	}
}

func TestBulkNoMatchesDoesNotPersist(t *testing.T) {
	r, fs := newTestRepo()
	r.Add(Draft{Title: "a"})
	persists := len(fs.saves)

	if _, err := r.BulkRemove([]int64{12345}); err != nil {
		t.Fatal(err)
	}
	if len(fs.saves) != persists {
		t.Error("no-op bulk operation should not persist")
	}
}

func TestImportMergePreservesIDs(t *testing.T) {
	r, _ := newTestRepo(
		note.Note{ID: 1, Title: "a", CreatedAt: time.Now()},
		note.Note{ID: 2, Title: "b", CreatedAt: time.Now()},
	)

	imported := note.Note{ID: 777, Title: "Imported", Content: "hi", CreatedAt: time.Now()}
	if err := r.ImportMerge([]note.Note{imported}); err != nil {
		t.Fatalf("ImportMerge failed: %v", err)
	}

	if r.Len() != 3 {
		t.Fatalf("collection has %d notes, want 3", r.Len())
	}
	n, ok := r.Get(777)
	if !ok || n.Title != "Imported" {
		t.Error("imported note id not preserved as given")
	}
}

func TestAllIsDefensiveCopy(t *testing.T) {
	r, _ := newTestRepo()
	id, _, _ := r.Add(Draft{Title: "keep", Tags: []string{"a"}})

	snapshot := r.All()
	snapshot[0].Title = "clobbered"
	snapshot[0].Tags[0] = "clobbered"

	n, _ := r.Get(id)
	if n.Title != "keep" || n.Tags[0] != "a" {
		t.Error("mutating the snapshot affected the repository")
	}
}

func TestPersistFailureKeepsMemoryAuthoritative(t *testing.T) {
	fs := &fakeStore{err: errors.New("disk full")}
	r := New(fs, nil, slog.Default())

	id, added, err := r.Add(Draft{Title: "survives"})
	if !added {
		t.Fatal("draft should have been accepted")
	}
	if err == nil {
		t.Fatal("persist failure must be reported")
	}

	// The in-memory change stands despite the failed write.
	if _, ok := r.Get(id); !ok {
		t.Error("note missing after persist failure; memory must not roll back")
	}
}

func TestWriteThroughOnEveryMutation(t *testing.T) {
	r, fs := newTestRepo()

	id, _, _ := r.Add(Draft{Title: "n"})
	title := "m"
	r.Update(id, Fields{Title: &title})
	r.TogglePin(id)
	r.SetArchived(id, true)
	r.Remove(id)

	if len(fs.saves) != 5 {
		t.Errorf("persisted %d times, want 5", len(fs.saves))
	}
	last := fs.saves[len(fs.saves)-1]
	if len(last) != 0 {
		t.Errorf("final snapshot has %d notes, want 0", len(last))
	}
}
