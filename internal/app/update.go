package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/scribble/internal/config"
	"github.com/marcus/scribble/internal/msg"
	"github.com/marcus/scribble/internal/note"
	"github.com/marcus/scribble/internal/query"
	"github.com/marcus/scribble/internal/repo"
	"github.com/marcus/scribble/internal/styles"
	"github.com/marcus/scribble/internal/ui"
)

// autoSaveMsg fires the editor autosave timer. The generation ties a tick
// to one editing session so a stale chain dies instead of stacking up.
type autoSaveMsg struct {
	gen int
}

func autoSaveTick(d time.Duration, gen int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return autoSaveMsg{gen: gen}
	})
}

// Update is the single event loop.
func (m *Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		m.width = message.Width
		m.height = message.Height
		m.resizeEditor()
		return m, nil

	case msg.ToastMsg:
		m.toast = message.Message
		m.toastError = message.IsError
		return m, clearToastAfter(message.Duration)

	case msg.ClearToastMsg:
		m.toast = ""
		m.toastError = false
		return m, nil

	case configReloadedMsg:
		m.applyConfig(message.cfg)
		return m, waitForConfig(m.configUpdates)

	case transcriptMsg:
		if m.listening {
			m.appendTranscript(message.fragment)
			return m, listenTranscript(m.voiceFrags)
		}
		return m, nil

	case transcriptClosedMsg:
		m.listening = false
		m.voiceStop = nil
		m.voiceFrags = nil
		return m, nil

	case autoSaveMsg:
		if m.mode != ModeEditor || message.gen != m.autoSaveGen {
			return m, nil
		}
		var cmd tea.Cmd
		if m.editorDirty() {
			cmd = m.saveEditor(false)
		}
		return m, tea.Batch(cmd, autoSaveTick(m.cfg.Editor.AutoSaveInterval, m.autoSaveGen))

	case tea.KeyMsg:
		return m.handleKey(message)
	}

	return m, nil
}

func (m *Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeSearch:
		return m.handleSearchKey(key)
	case ModeEditor:
		return m.handleEditorKey(key)
	case ModeConfirm:
		return m.handleConfirmKey(key)
	default:
		return m.handleListKey(key)
	}
}

func (m *Model) handleListKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := key.String()

	// Two-key chord, vim style: the second key completes a "g <key>"
	// binding resolved through the registry like any other.
	if m.pendingG {
		m.pendingG = false
		k = "g " + k
	} else if k == "g" {
		m.pendingG = true
		return m, nil
	}

	switch m.keymap.Lookup(k, "list") {
	case "quit":
		return m, tea.Quit

	case "toggle-help":
		m.showHelp = !m.showHelp
		return m, nil

	case "toggle-footer":
		m.showFooter = !m.showFooter
		return m, nil

	case "cursor-down":
		if m.cursor < len(m.visibleNotes())-1 {
			m.cursor++
		}
		return m, nil

	case "cursor-up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "cursor-top":
		m.cursor = 0
		m.scrollOff = 0
		return m, nil

	case "cursor-bottom":
		if n := len(m.visibleNotes()); n > 0 {
			m.cursor = n - 1
		}
		return m, nil

	case "open-note":
		if n, ok := m.selectedNote(); ok {
			m.openEditor(n)
			return m, autoSaveTick(m.cfg.Editor.AutoSaveInterval, m.autoSaveGen)
		}
		return m, nil

	case "new-note":
		m.openEditor(note.Note{})
		return m, autoSaveTick(m.cfg.Editor.AutoSaveInterval, m.autoSaveGen)

	case "search":
		m.mode = ModeSearch
		m.searchInput.SetValue(m.searchTerm)
		m.searchInput.CursorEnd()
		return m, m.searchInput.Focus()

	case "toggle-pin":
		n, ok := m.selectedNote()
		if !ok {
			return m, nil
		}
		pinned, err := m.repo.TogglePin(n.ID)
		if err != nil {
			return m, msg.ShowError(fmt.Sprintf("Pin: %v", err), toastDuration)
		}
		if pinned {
			return m, msg.ShowToast("Pinned", toastDuration)
		}
		return m, msg.ShowToast("Unpinned", toastDuration)

	case "archive-note":
		n, ok := m.selectedNote()
		if !ok {
			return m, nil
		}
		// In the archived view the same key unarchives. Restoring is not
		// destructive, so it never touches the undo slot.
		if m.showArchived {
			if err := m.repo.SetArchived(n.ID, false); err != nil {
				return m, msg.ShowError(fmt.Sprintf("Unarchive: %v", err), toastDuration)
			}
			m.clampCursor()
			return m, msg.ShowToast("Unarchived", toastDuration)
		}
		if err := m.coord.Archive(n.ID); err != nil {
			return m, msg.ShowError(fmt.Sprintf("Archive: %v", err), toastDuration)
		}
		m.clampCursor()
		return m, msg.ShowToast("Archived (u to undo)", toastDuration)

	case "toggle-archived-view":
		m.showArchived = !m.showArchived
		m.cursor = 0
		m.scrollOff = 0
		return m, nil

	case "delete-note":
		n, ok := m.selectedNote()
		if !ok {
			return m, nil
		}
		m.openConfirm(confirmDeleteOne, []int64{n.ID},
			"Delete note",
			fmt.Sprintf("Delete %q? The last delete can be undone with u.", n.Title))
		return m, nil

	case "undo":
		unit, err := m.coord.Restore()
		if err != nil {
			return m, msg.ShowError(fmt.Sprintf("Undo: %v", err), toastDuration)
		}
		if len(unit.Notes) == 0 {
			return m, msg.ShowToast("Nothing to undo", toastDuration)
		}
		m.clampCursor()
		return m, msg.ShowToast(fmt.Sprintf("Restored %d notes", len(unit.Notes)), toastDuration)

	case "cycle-sort":
		m.sortIdx = (m.sortIdx + 1) % len(sortCycle)
		return m, msg.ShowToast("Sort: "+string(sortCycle[m.sortIdx]), toastDuration)

	case "cycle-due-filter":
		m.dueIdx = (m.dueIdx + 1) % len(dueCycle)
		m.clampCursor()
		label := string(dueCycle[m.dueIdx])
		if label == "" {
			label = "all"
		}
		return m, msg.ShowToast("Due filter: "+label, toastDuration)

	case "cycle-tag-filter":
		return m, m.cycleTagFilter()

	case "cycle-category-filter":
		return m, m.cycleCategoryFilter()

	case "clear-filters":
		m.searchTerm = ""
		m.searchInput.SetValue("")
		m.tagIdx = -1
		m.categoryIdx = -1
		m.dueIdx = 0
		m.clampCursor()
		return m, msg.ShowToast("Filters cleared", toastDuration)

	case "yank-content":
		if n, ok := m.selectedNote(); ok {
			return m, m.yank(n.Content, "Content")
		}
		return m, nil

	case "yank-title":
		if n, ok := m.selectedNote(); ok {
			return m, m.yank(n.Title, "Title")
		}
		return m, nil

	case "toggle-theme":
		return m, m.toggleTheme()

	case "toggle-select":
		if n, ok := m.selectedNote(); ok {
			if m.selection[n.ID] {
				delete(m.selection, n.ID)
			} else {
				m.selection[n.ID] = true
			}
			if m.cursor < len(m.visibleNotes())-1 {
				m.cursor++
			}
		}
		return m, nil

	case "clear-selection":
		m.selection = make(map[int64]bool)
		return m, nil

	case "bulk-delete":
		ids := m.selectedIDs()
		if len(ids) == 0 {
			return m, msg.ShowToast("No notes selected", toastDuration)
		}
		m.openConfirm(confirmBulkDelete, ids,
			fmt.Sprintf("Delete %d notes", len(ids)),
			"The last delete can be undone with u.")
		return m, nil

	case "bulk-archive":
		ids := m.selectedIDs()
		if len(ids) == 0 {
			return m, msg.ShowToast("No notes selected", toastDuration)
		}
		affected, err := m.coord.BulkArchive(ids)
		if err != nil {
			return m, msg.ShowError(fmt.Sprintf("Archive: %v", err), toastDuration)
		}
		m.selection = make(map[int64]bool)
		m.clampCursor()
		return m, msg.ShowToast(fmt.Sprintf("Archived %d notes (u to undo)", len(affected)), toastDuration)

	case "export-text":
		return m, m.exportText()

	case "export-html":
		return m, m.exportHTML()

	case "import-notes":
		return m, m.importNotes()
	}

	return m, nil
}

func (m *Model) handleSearchKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Plain runes are text for the input, never commands.
	if key.Type == tea.KeyRunes && !key.Alt {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(key)
		m.searchTerm = m.searchInput.Value()
		m.clampCursor()
		return m, cmd
	}

	switch m.keymap.Lookup(key.String(), "search") {
	case "quit":
		return m, tea.Quit

	case "cancel-search":
		m.searchTerm = ""
		m.searchInput.SetValue("")
		m.searchInput.Blur()
		m.mode = ModeList
		m.clampCursor()
		return m, nil

	case "confirm-search":
		m.searchInput.Blur()
		m.mode = ModeList
		m.clampCursor()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(key)
	m.searchTerm = m.searchInput.Value()
	m.clampCursor()
	return m, cmd
}

func (m *Model) handleConfirmKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keymap.Lookup(key.String(), "confirm") {
	case "quit":
		return m, tea.Quit

	case "cancel":
		m.closeConfirm()
		return m, nil

	case "switch-button":
		m.confirm.Toggle()
		return m, nil

	case "confirm":
		if !m.confirm.Confirmed() {
			m.closeConfirm()
			return m, nil
		}
		kind, ids := m.confirmKind, m.confirmTarget
		m.closeConfirm()
		return m, m.runConfirmed(kind, ids)
	}
	return m, nil
}

func (m *Model) runConfirmed(kind confirmAction, ids []int64) tea.Cmd {
	switch kind {
	case confirmDeleteOne:
		if _, err := m.coord.Delete(ids[0]); err != nil {
			return msg.ShowError(fmt.Sprintf("Delete: %v", err), toastDuration)
		}
		m.clampCursor()
		return msg.ShowToast("Deleted (u to undo)", toastDuration)

	case confirmBulkDelete:
		removed, err := m.coord.BulkDelete(ids)
		if err != nil {
			return msg.ShowError(fmt.Sprintf("Delete: %v", err), toastDuration)
		}
		m.selection = make(map[int64]bool)
		m.clampCursor()
		return msg.ShowToast(fmt.Sprintf("Deleted %d notes (u to undo)", len(removed)), toastDuration)
	}
	return nil
}

func (m *Model) handleEditorKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Plain runes are text for the focused field, never commands.
	if key.Type == tea.KeyRunes && !key.Alt {
		return m, m.updateFocusedField(key)
	}

	switch m.keymap.Lookup(key.String(), "editor") {
	case "quit":
		m.stopVoice()
		return m, tea.Quit

	case "close-editor":
		var cmd tea.Cmd
		if m.editorDirty() {
			cmd = m.saveEditor(false)
		}
		m.closeEditor()
		return m, cmd

	case "save-note":
		return m, m.saveEditor(true)

	case "next-field":
		m.focusField((m.editor.focus + 1) % fieldCount)
		return m, nil

	case "prev-field":
		m.focusField((m.editor.focus + fieldCount - 1) % fieldCount)
		return m, nil

	case "toggle-preview":
		m.editor.previewOn = !m.editor.previewOn
		m.editor.previewText = ""
		return m, nil

	case "cycle-priority":
		m.editor.priority = nextPriority(m.editor.priority)
		return m, nil

	case "toggle-voice":
		return m, m.toggleVoice()

	case "copy-content":
		return m, m.yank(m.editor.content.Value(), "Content")
	}

	return m, m.updateFocusedField(key)
}

func (m *Model) updateFocusedField(key tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch m.editor.focus {
	case fieldTitle:
		m.editor.title, cmd = m.editor.title.Update(key)
	case fieldContent:
		m.editor.content, cmd = m.editor.content.Update(key)
	case fieldTags:
		m.editor.tags, cmd = m.editor.tags.Update(key)
	case fieldCategory:
		m.editor.category, cmd = m.editor.category.Update(key)
	case fieldDue:
		m.editor.due, cmd = m.editor.due.Update(key)
	case fieldColor:
		m.editor.color, cmd = m.editor.color.Update(key)
	}
	return cmd
}

// openEditor loads a note into the editor. The zero Note starts a new
// draft.
func (m *Model) openEditor(n note.Note) {
	m.autoSaveGen++
	m.resetEditor()
	m.editor.editID = n.ID
	m.editor.title.SetValue(n.Title)
	m.editor.content.SetValue(n.Content)
	m.editor.tags.SetValue(strings.Join(n.Tags, ", "))
	m.editor.category.SetValue(n.Category)
	if n.DueDate != nil {
		m.editor.due.SetValue(n.DueDate.Format("2006-01-02"))
	}
	m.editor.color.SetValue(n.Color)
	if n.Priority != "" {
		m.editor.priority = n.Priority
	}
	m.editor.savedHash = m.editorHash()
	m.resizeEditor()
	m.focusField(fieldTitle)
	m.mode = ModeEditor
}

func (m *Model) closeEditor() {
	m.autoSaveGen++
	m.stopVoice()
	m.resetEditor()
	m.mode = ModeList
	m.clampCursor()
}

func (m *Model) focusField(f editorField) {
	m.editor.focus = f
	m.editor.title.Blur()
	m.editor.content.Blur()
	m.editor.tags.Blur()
	m.editor.category.Blur()
	m.editor.due.Blur()
	m.editor.color.Blur()
	switch f {
	case fieldTitle:
		m.editor.title.Focus()
	case fieldContent:
		m.editor.content.Focus()
	case fieldTags:
		m.editor.tags.Focus()
	case fieldCategory:
		m.editor.category.Focus()
	case fieldDue:
		m.editor.due.Focus()
	case fieldColor:
		m.editor.color.Focus()
	}
}

func (m *Model) resizeEditor() {
	if m.width <= 0 {
		return
	}
	w := m.width - 8
	if w < 20 {
		w = 20
	}
	m.editor.content.SetWidth(w)
	h := m.height - 16
	if h < 4 {
		h = 4
	}
	m.editor.content.SetHeight(h)
}

// editorHash fingerprints the draft so dirty checks stay cheap even for
// large notes.
func (m *Model) editorHash() uint64 {
	var b strings.Builder
	b.WriteString(m.editor.title.Value())
	b.WriteByte(0)
	b.WriteString(m.editor.content.Value())
	b.WriteByte(0)
	b.WriteString(m.editor.tags.Value())
	b.WriteByte(0)
	b.WriteString(m.editor.category.Value())
	b.WriteByte(0)
	b.WriteString(m.editor.due.Value())
	b.WriteByte(0)
	b.WriteString(m.editor.color.Value())
	b.WriteByte(0)
	b.WriteString(string(m.editor.priority))
	return xxhash.Sum64String(b.String())
}

func (m *Model) editorDirty() bool {
	return m.editorHash() != m.editor.savedHash
}

// saveEditor commits the draft. An empty new draft is dropped without
// comment. Save keeps the editor open; close is a separate action.
func (m *Model) saveEditor(announce bool) tea.Cmd {
	due, err := parseDue(m.editor.due.Value())
	if err != nil {
		return msg.ShowError("Due date must be YYYY-MM-DD", toastDuration)
	}
	tags := note.ParseTags(m.editor.tags.Value())

	if m.editor.editID == 0 {
		id, added, err := m.repo.Add(repo.Draft{
			Title:    m.editor.title.Value(),
			Content:  m.editor.content.Value(),
			Tags:     tags,
			Category: m.editor.category.Value(),
			Priority: m.editor.priority,
			DueDate:  due,
			Color:    m.editor.color.Value(),
		})
		if err != nil {
			return msg.ShowError(fmt.Sprintf("Save: %v", err), toastDuration)
		}
		if !added {
			return nil
		}
		m.editor.editID = id
	} else {
		title := m.editor.title.Value()
		content := m.editor.content.Value()
		category := m.editor.category.Value()
		color := m.editor.color.Value()
		priority := m.editor.priority
		if tags == nil {
			tags = []string{}
		}
		err := m.repo.Update(m.editor.editID, repo.Fields{
			Title:      &title,
			Content:    &content,
			Tags:       tags,
			Category:   &category,
			Priority:   &priority,
			DueDate:    due,
			SetDueDate: true,
			Color:      &color,
		})
		if err != nil {
			return msg.ShowError(fmt.Sprintf("Save: %v", err), toastDuration)
		}
	}

	m.editor.savedHash = m.editorHash()
	if announce {
		return msg.ShowToast("Saved", toastDuration)
	}
	return nil
}

func parseDue(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func nextPriority(p note.Priority) note.Priority {
	switch p {
	case note.PriorityLow:
		return note.PriorityMedium
	case note.PriorityMedium:
		return note.PriorityHigh
	default:
		return note.PriorityLow
	}
}

func (m *Model) openConfirm(kind confirmAction, ids []int64, title, message string) {
	d := ui.NewConfirmDialog(title, message)
	d.ConfirmLabel = " Delete "
	d.Danger = true
	m.confirm = d
	m.confirmKind = kind
	m.confirmTarget = ids
	m.mode = ModeConfirm
}

func (m *Model) closeConfirm() {
	m.confirm = nil
	m.confirmKind = confirmNone
	m.confirmTarget = nil
	m.mode = ModeList
}

// cycleTagFilter steps through no-filter then each known tag.
func (m *Model) cycleTagFilter() tea.Cmd {
	tags := query.UniqueTags(m.repo.All())
	if len(tags) == 0 {
		m.tagIdx = -1
		return msg.ShowToast("No tags", toastDuration)
	}
	m.tagIdx++
	if m.tagIdx >= len(tags) {
		m.tagIdx = -1
	}
	m.clampCursor()
	if m.tagIdx < 0 {
		return msg.ShowToast("Tag filter: all", toastDuration)
	}
	return msg.ShowToast("Tag filter: "+tags[m.tagIdx], toastDuration)
}

func (m *Model) cycleCategoryFilter() tea.Cmd {
	cats := query.UniqueCategories(m.repo.All())
	if len(cats) == 0 {
		m.categoryIdx = -1
		return msg.ShowToast("No categories", toastDuration)
	}
	m.categoryIdx++
	if m.categoryIdx >= len(cats) {
		m.categoryIdx = -1
	}
	m.clampCursor()
	if m.categoryIdx < 0 {
		return msg.ShowToast("Category filter: all", toastDuration)
	}
	return msg.ShowToast("Category filter: "+cats[m.categoryIdx], toastDuration)
}

// toggleTheme flips between the built-in palettes and persists the choice.
func (m *Model) toggleTheme() tea.Cmd {
	next := "light"
	if styles.CurrentTheme() == "light" {
		next = "dark"
	}
	styles.ApplyTheme(next)
	m.editor.previewText = ""
	if m.themes != nil {
		if err := m.themes.SetTheme(next); err != nil {
			return msg.ShowError(fmt.Sprintf("Theme: %v", err), toastDuration)
		}
	}
	return msg.ShowToast("Theme: "+next, toastDuration)
}

func (m *Model) toggleVoice() tea.Cmd {
	if m.listening {
		m.stopVoice()
		return msg.ShowToast("Voice capture stopped", toastDuration)
	}
	if m.transcript == nil {
		return msg.ShowError("No transcriber configured", toastDuration)
	}
	ctx, cancel := context.WithCancel(context.Background())
	frags, err := m.transcript.Start(ctx)
	if err != nil {
		cancel()
		return msg.ShowError(fmt.Sprintf("Voice: %v", err), toastDuration)
	}
	m.voiceStop = cancel
	m.voiceFrags = frags
	m.listening = true
	return tea.Batch(
		msg.ShowToast("Listening...", toastDuration),
		listenTranscript(frags),
	)
}

func (m *Model) stopVoice() {
	if m.voiceStop != nil {
		m.voiceStop()
	}
	m.voiceStop = nil
	m.listening = false
}

// appendTranscript pastes a voice fragment at the end of the content.
func (m *Model) appendTranscript(fragment string) {
	cur := m.editor.content.Value()
	if cur != "" && !strings.HasSuffix(cur, " ") && !strings.HasSuffix(cur, "\n") {
		cur += " "
	}
	m.editor.content.SetValue(cur + fragment)
}

func (m *Model) applyConfig(cfg *config.Config) {
	m.cfg = cfg
	m.showFooter = cfg.UI.ShowFooter
	styles.ApplyTheme(cfg.UI.Theme)
	m.editor.previewText = ""
}
