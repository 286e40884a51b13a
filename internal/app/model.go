// Package app is the Bubble Tea front end. It owns no note state of its
// own: every list it shows is a fresh pull through the query engine, and
// every mutation goes through the repository or the bulk coordinator.
package app

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/scribble/internal/bulk"
	"github.com/marcus/scribble/internal/config"
	"github.com/marcus/scribble/internal/keymap"
	"github.com/marcus/scribble/internal/note"
	"github.com/marcus/scribble/internal/port"
	"github.com/marcus/scribble/internal/query"
	"github.com/marcus/scribble/internal/repo"
	"github.com/marcus/scribble/internal/ui"
)

// Mode identifies which input surface currently owns the keyboard.
type Mode int

const (
	ModeList Mode = iota
	ModeSearch
	ModeEditor
	ModeConfirm
)

// sortCycle is the order the sort key steps through on each press.
var sortCycle = []query.SortKey{
	query.SortNewest,
	query.SortOldest,
	query.SortTitleAsc,
	query.SortTitleDesc,
	query.SortDueSoon,
}

// dueCycle steps through the due-date buckets.
var dueCycle = []note.DueBucket{
	note.BucketAll,
	note.BucketThisWeek,
	note.BucketOverdue,
	note.BucketNoDate,
}

// editorField indexes the focusable editor inputs.
type editorField int

const (
	fieldTitle editorField = iota
	fieldContent
	fieldTags
	fieldCategory
	fieldDue
	fieldColor
	fieldCount
)

// editorState holds the in-progress draft. Nothing here touches the
// repository until save commits it.
type editorState struct {
	editID   int64 // 0 = creating a new note
	title    textinput.Model
	content  textarea.Model
	tags     textinput.Model
	category textinput.Model
	due      textinput.Model
	color    textinput.Model
	priority note.Priority
	focus    editorField

	savedHash   uint64 // xxhash of last saved title+content+meta
	previewOn   bool
	previewText string // glamour-rendered markdown, cached per toggle
}

// confirmAction is what the confirm dialog commits when accepted.
type confirmAction int

const (
	confirmNone confirmAction = iota
	confirmDeleteOne
	confirmBulkDelete
)

// Model is the root Bubble Tea model.
type Model struct {
	cfg    *config.Config
	repo   *repo.Repository
	coord  *bulk.Coordinator
	themes ThemeStore
	keymap *keymap.Registry

	clip       port.ClipboardSink
	transcript port.TranscriptSource
	picker     port.FilePicker

	// View criteria, fed to query.View on every render
	searchInput  textinput.Model
	searchTerm   string
	tagFilter    []string
	tagIdx       int // -1 = no tag filter
	categoryIdx  int // -1 = no category filter
	dueIdx       int
	sortIdx      int
	showArchived bool

	// List state
	mode      Mode
	cursor    int
	scrollOff int
	selection map[int64]bool
	pendingG  bool

	// Editor state
	editor      editorState
	autoSaveGen int // bumped on every editor open/close; stale ticks check it

	// Confirm dialog state
	confirm       *ui.ConfirmDialog
	confirmKind   confirmAction
	confirmTarget []int64

	// Voice capture
	listening  bool
	voiceStop  context.CancelFunc
	voiceFrags <-chan string

	// Config hot reload
	configUpdates <-chan *config.Config

	// Chrome
	width, height int
	showFooter    bool
	showHelp      bool
	toast         string
	toastError    bool

	now func() time.Time
}

// ThemeStore is the slice of the store the app needs for the theme
// preference.
type ThemeStore interface {
	Theme() (string, error)
	SetTheme(name string) error
}

// Options carries the collaborators the model needs.
type Options struct {
	Config        *config.Config
	Repo          *repo.Repository
	Coordinator   *bulk.Coordinator
	ThemeStore    ThemeStore
	Keymap        *keymap.Registry
	Clipboard     port.ClipboardSink
	Transcript    port.TranscriptSource
	Picker        port.FilePicker
	ConfigUpdates <-chan *config.Config
}

// New creates the root model.
func New(opts Options) *Model {
	search := textinput.New()
	search.Placeholder = "search notes"
	search.Prompt = "/ "
	search.CharLimit = 0

	m := &Model{
		cfg:           opts.Config,
		repo:          opts.Repo,
		coord:         opts.Coordinator,
		themes:        opts.ThemeStore,
		keymap:        opts.Keymap,
		clip:          opts.Clipboard,
		transcript:    opts.Transcript,
		picker:        opts.Picker,
		configUpdates: opts.ConfigUpdates,
		searchInput:   search,
		tagIdx:        -1,
		categoryIdx:   -1,
		selection:     make(map[int64]bool),
		showFooter:    opts.Config.UI.ShowFooter,
		now:           time.Now,
	}
	m.resetEditor()
	return m
}

// Init starts background listeners.
func (m *Model) Init() tea.Cmd {
	if m.configUpdates != nil {
		return waitForConfig(m.configUpdates)
	}
	return nil
}

// criteria assembles the current view request.
func (m *Model) criteria() query.Criteria {
	c := query.Criteria{
		Search:       m.searchTerm,
		DueBucket:    dueCycle[m.dueIdx],
		SortKey:      sortCycle[m.sortIdx],
		ShowArchived: m.showArchived,
	}
	if m.tagIdx >= 0 {
		tags := query.UniqueTags(m.repo.All())
		if m.tagIdx < len(tags) {
			c.Tags = []string{tags[m.tagIdx]}
		}
	}
	if m.categoryIdx >= 0 {
		cats := query.UniqueCategories(m.repo.All())
		if m.categoryIdx < len(cats) {
			c.Category = cats[m.categoryIdx]
		}
	}
	return c
}

// visibleNotes pulls a fresh ordered view.
func (m *Model) visibleNotes() []note.Note {
	return query.View(m.repo.All(), m.criteria(), m.now())
}

// selectedNote returns the note under the cursor.
func (m *Model) selectedNote() (note.Note, bool) {
	notes := m.visibleNotes()
	if m.cursor < 0 || m.cursor >= len(notes) {
		return note.Note{}, false
	}
	return notes[m.cursor], true
}

// clampCursor keeps the cursor inside the visible list after the
// collection or criteria change.
func (m *Model) clampCursor() {
	n := len(m.visibleNotes())
	if n == 0 {
		m.cursor = 0
		m.scrollOff = 0
		return
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// selectedIDs returns the bulk selection in collection order.
func (m *Model) selectedIDs() []int64 {
	var ids []int64
	for _, n := range m.repo.All() {
		if m.selection[n.ID] {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

func (m *Model) resetEditor() {
	title := textinput.New()
	title.Placeholder = "title"
	title.CharLimit = 0

	content := textarea.New()
	content.Placeholder = "write markdown here"
	content.CharLimit = 0
	content.ShowLineNumbers = false

	tags := textinput.New()
	tags.Placeholder = "tags, comma, separated"
	tags.CharLimit = 0

	category := textinput.New()
	category.Placeholder = "category"
	category.CharLimit = 0

	due := textinput.New()
	due.Placeholder = "due YYYY-MM-DD"
	due.CharLimit = 0

	color := textinput.New()
	color.Placeholder = "color"
	color.CharLimit = 0

	m.editor = editorState{
		title:    title,
		content:  content,
		tags:     tags,
		category: category,
		due:      due,
		color:    color,
		priority: note.PriorityMedium,
	}
}
