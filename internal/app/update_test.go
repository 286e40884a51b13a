package app

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/scribble/internal/bulk"
	"github.com/marcus/scribble/internal/config"
	"github.com/marcus/scribble/internal/keymap"
	"github.com/marcus/scribble/internal/note"
	"github.com/marcus/scribble/internal/repo"
	"github.com/marcus/scribble/internal/undo"
)

type nopStore struct{}

func (nopStore) SaveNotes([]note.Note) error { return nil }

type fakeClipboard struct {
	text string
}

func (c *fakeClipboard) Write(text string) error {
	c.text = text
	return nil
}

func newTestModel(t *testing.T, seed []note.Note) (*Model, *fakeClipboard) {
	t.Helper()

	r := repo.New(nopStore{}, seed, nil)
	km := keymap.NewRegistry()
	keymap.RegisterDefaults(km)
	clip := &fakeClipboard{}

	m := New(Options{
		Config:      config.Default(),
		Repo:        r,
		Coordinator: bulk.New(r, undo.NewBuffer()),
		Keymap:      km,
		Clipboard:   clip,
	})
	m.width = 100
	m.height = 40
	return m, clip
}

// press feeds one key through Update.
func press(m *Model, key string) tea.Cmd {
	msg := keyMsg(key)
	_, cmd := m.Update(msg)
	return cmd
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+j":
		return tea.KeyMsg{Type: tea.KeyCtrlJ}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

func typeString(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func seedNotes() []note.Note {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []note.Note{
		{ID: 1, Title: "alpha", Content: "first", Tags: []string{"work"}, Priority: note.PriorityMedium, CreatedAt: base},
		{ID: 2, Title: "beta", Content: "second", Tags: []string{"home"}, Priority: note.PriorityHigh, CreatedAt: base.Add(time.Hour)},
		{ID: 3, Title: "gamma", Content: "third", Priority: note.PriorityLow, CreatedAt: base.Add(2 * time.Hour)},
	}
}

func TestCursorNavigation(t *testing.T) {
	m, _ := newTestModel(t, seedNotes())

	press(m, "j")
	press(m, "j")
	if m.cursor != 2 {
		t.Fatalf("cursor = %d, want 2", m.cursor)
	}
	press(m, "j")
	if m.cursor != 2 {
		t.Fatalf("cursor moved past last row: %d", m.cursor)
	}
	press(m, "k")
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", m.cursor)
	}
	press(m, "g")
	press(m, "g")
	if m.cursor != 0 {
		t.Fatalf("gg should jump to top, cursor = %d", m.cursor)
	}
	press(m, "G")
	if m.cursor != 2 {
		t.Fatalf("G should jump to bottom, cursor = %d", m.cursor)
	}
}

func TestNewNoteSaveAddsToRepository(t *testing.T) {
	m, _ := newTestModel(t, nil)

	press(m, "n")
	if m.mode != ModeEditor {
		t.Fatal("n should open the editor")
	}
	typeString(m, "groceries")
	press(m, "ctrl+s")

	if m.repo.Len() != 1 {
		t.Fatalf("repo has %d notes, want 1", m.repo.Len())
	}
	all := m.repo.All()
	if all[0].Title != "groceries" {
		t.Errorf("title = %q", all[0].Title)
	}
	if all[0].Priority != note.PriorityMedium {
		t.Errorf("default priority = %q, want Medium", all[0].Priority)
	}
	if m.editor.editID == 0 {
		t.Error("save should adopt the new note's id for further edits")
	}
}

func TestEmptyDraftIsDiscardedSilently(t *testing.T) {
	m, _ := newTestModel(t, nil)

	press(m, "n")
	press(m, "esc")

	if m.mode != ModeList {
		t.Fatal("esc should close the editor")
	}
	if m.repo.Len() != 0 {
		t.Fatalf("empty draft created %d notes", m.repo.Len())
	}
	if m.toast != "" {
		t.Errorf("empty draft produced a toast: %q", m.toast)
	}
}

func TestCloseEditorCommitsDirtyDraft(t *testing.T) {
	m, _ := newTestModel(t, nil)

	press(m, "n")
	typeString(m, "draft")
	press(m, "esc")

	if m.repo.Len() != 1 {
		t.Fatalf("dirty draft not committed on close, repo has %d", m.repo.Len())
	}
}

func TestEditExistingNote(t *testing.T) {
	m, _ := newTestModel(t, seedNotes())

	press(m, "enter")
	if m.mode != ModeEditor {
		t.Fatal("enter should open the editor")
	}
	typeString(m, "X")
	press(m, "ctrl+s")

	n, ok := m.repo.Get(m.editor.editID)
	if !ok {
		t.Fatal("edited note missing")
	}
	if n.UpdatedAt == nil {
		t.Error("edit should stamp updatedAt")
	}
	if n.Title == "" {
		t.Error("title lost on edit")
	}
}

func TestDeleteRequiresConfirmAndDefaultsToCancel(t *testing.T) {
	m, _ := newTestModel(t, seedNotes())

	press(m, "X")
	if m.mode != ModeConfirm {
		t.Fatal("X should open the confirm dialog")
	}
	press(m, "enter")
	if m.repo.Len() != 3 {
		t.Fatal("bare enter should cancel, not delete")
	}

	press(m, "X")
	press(m, "tab")
	press(m, "enter")
	if m.repo.Len() != 2 {
		t.Fatalf("repo has %d notes after confirmed delete, want 2", m.repo.Len())
	}
}

func TestUndoRestoresLastDelete(t *testing.T) {
	m, _ := newTestModel(t, seedNotes())

	press(m, "X")
	press(m, "tab")
	press(m, "enter")
	if m.repo.Len() != 2 {
		t.Fatal("delete did not land")
	}

	press(m, "u")
	if m.repo.Len() != 3 {
		t.Fatalf("undo left %d notes, want 3", m.repo.Len())
	}

	// The slot is depth one: a second undo has nothing to restore.
	press(m, "u")
	if m.repo.Len() != 3 {
		t.Fatal("second undo should be a no-op")
	}
}

func TestSearchFiltersList(t *testing.T) {
	m, _ := newTestModel(t, seedNotes())

	press(m, "/")
	if m.mode != ModeSearch {
		t.Fatal("/ should enter search mode")
	}
	typeString(m, "beta")
	press(m, "enter")

	notes := m.visibleNotes()
	if len(notes) != 1 || notes[0].Title != "beta" {
		t.Fatalf("search result = %v", notes)
	}

	press(m, "F")
	if len(m.visibleNotes()) != 3 {
		t.Fatal("F should clear filters")
	}
}

func TestSearchEscClears(t *testing.T) {
	m, _ := newTestModel(t, seedNotes())

	press(m, "/")
	typeString(m, "beta")
	press(m, "esc")

	if m.searchTerm != "" {
		t.Fatalf("esc kept searchTerm %q", m.searchTerm)
	}
	if len(m.visibleNotes()) != 3 {
		t.Fatal("esc should restore the unfiltered list")
	}
}

func TestArchiveAndArchivedView(t *testing.T) {
	m, _ := newTestModel(t, seedNotes())

	press(m, "A")
	if got := len(m.visibleNotes()); got != 2 {
		t.Fatalf("active list has %d notes after archive, want 2", got)
	}

	press(m, "a")
	notes := m.visibleNotes()
	if len(notes) != 1 || !notes[0].IsArchived {
		t.Fatalf("archived view = %v", notes)
	}
}

func TestUnarchiveFromArchivedView(t *testing.T) {
	m, _ := newTestModel(t, seedNotes())

	press(m, "A") // archive the note under the cursor
	press(m, "a") // switch to the archived view
	if len(m.visibleNotes()) != 1 {
		t.Fatal("archived view should show the archived note")
	}

	press(m, "A") // same key restores here
	if len(m.visibleNotes()) != 0 {
		t.Fatal("unarchive should empty the archived view")
	}

	press(m, "a")
	notes := m.visibleNotes()
	if len(notes) != 3 {
		t.Fatalf("active view has %d notes after unarchive, want 3", len(notes))
	}
	for _, n := range notes {
		if n.IsArchived {
			t.Errorf("note %d still archived", n.ID)
		}
	}

	// Restoring is not destructive: the archive snapshot must survive so
	// the original archive can still be undone.
	if unit, ok := m.coord.Buffer().Peek(); !ok || unit.Kind != undo.KindArchive {
		t.Error("unarchive clobbered the undo slot")
	}
}

func TestCursorTopHonorsUserOverride(t *testing.T) {
	m, _ := newTestModel(t, seedNotes())
	m.keymap.SetUserOverride("b", "cursor-top")

	press(m, "G")
	press(m, "b")
	if m.cursor != 0 {
		t.Fatalf("override to cursor-top ignored, cursor = %d", m.cursor)
	}
}

func TestStaleAutoSaveTickIsDropped(t *testing.T) {
	m, _ := newTestModel(t, nil)

	press(m, "n")
	stale := m.autoSaveGen
	press(m, "esc")
	press(m, "n")
	typeString(m, "draft")

	// The tick from the first session must neither save nor re-arm.
	_, cmd := m.Update(autoSaveMsg{gen: stale})
	if cmd != nil {
		t.Fatal("stale autosave tick re-armed")
	}
	if m.repo.Len() != 0 {
		t.Fatal("stale autosave tick saved the draft")
	}

	_, cmd = m.Update(autoSaveMsg{gen: m.autoSaveGen})
	if cmd == nil {
		t.Fatal("live autosave tick should re-arm")
	}
	if m.repo.Len() != 1 {
		t.Fatalf("live autosave tick saved %d notes, want 1", m.repo.Len())
	}
}

func TestBulkArchiveSelection(t *testing.T) {
	m, _ := newTestModel(t, seedNotes())

	press(m, "v") // select row 0, cursor advances
	press(m, "v") // select row 1
	press(m, "z")

	archived := 0
	for _, n := range m.repo.All() {
		if n.IsArchived {
			archived++
		}
	}
	if archived != 2 {
		t.Fatalf("archived %d notes, want 2", archived)
	}
	if len(m.selection) != 0 {
		t.Error("selection should clear after a bulk action")
	}
}

func TestBulkDeleteThenUndo(t *testing.T) {
	m, _ := newTestModel(t, seedNotes())

	press(m, "v")
	press(m, "v")
	press(m, "d")
	if m.mode != ModeConfirm {
		t.Fatal("d should confirm before deleting")
	}
	press(m, "tab")
	press(m, "enter")
	if m.repo.Len() != 1 {
		t.Fatalf("repo has %d notes after bulk delete, want 1", m.repo.Len())
	}

	press(m, "u")
	if m.repo.Len() != 3 {
		t.Fatalf("undo restored to %d notes, want 3", m.repo.Len())
	}
}

func TestTogglePin(t *testing.T) {
	m, _ := newTestModel(t, seedNotes())

	first := m.visibleNotes()[0]
	press(m, "p")

	n, _ := m.repo.Get(first.ID)
	if !n.Pinned {
		t.Fatal("p should pin the selected note")
	}
}

func TestYankContent(t *testing.T) {
	m, clip := newTestModel(t, seedNotes())

	first := m.visibleNotes()[0]
	cmd := press(m, "y")
	if cmd == nil {
		t.Fatal("yank should produce a toast command")
	}
	if clip.text != first.Content {
		t.Fatalf("clipboard = %q, want %q", clip.text, first.Content)
	}
}

func TestCycleSortAndDueFilter(t *testing.T) {
	m, _ := newTestModel(t, seedNotes())

	press(m, "s")
	if sortCycle[m.sortIdx] == sortCycle[0] {
		t.Fatal("s should advance the sort key")
	}

	start := m.dueIdx
	for range dueCycle {
		press(m, "f")
	}
	if m.dueIdx != start {
		t.Fatal("due filter should cycle back around")
	}
}

func TestPriorityCycleInEditor(t *testing.T) {
	m, _ := newTestModel(t, nil)

	press(m, "n")
	if m.editor.priority != note.PriorityMedium {
		t.Fatalf("new draft priority = %q", m.editor.priority)
	}
	press(m, "ctrl+j")
	if m.editor.priority != note.PriorityHigh {
		t.Fatalf("priority = %q, want High", m.editor.priority)
	}
	press(m, "ctrl+j")
	if m.editor.priority != note.PriorityLow {
		t.Fatalf("priority = %q, want Low", m.editor.priority)
	}
}

func TestEditorDirtyTracking(t *testing.T) {
	m, _ := newTestModel(t, seedNotes())

	press(m, "enter")
	if m.editorDirty() {
		t.Fatal("freshly opened note should not be dirty")
	}
	typeString(m, "x")
	if !m.editorDirty() {
		t.Fatal("typing should dirty the draft")
	}
	press(m, "ctrl+s")
	if m.editorDirty() {
		t.Fatal("save should reset the dirty hash")
	}
}
