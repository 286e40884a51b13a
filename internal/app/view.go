package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/marcus/scribble/internal/note"
	"github.com/marcus/scribble/internal/styles"
)

const minListHeight = 3

// View renders the whole screen for the current mode.
func (m *Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	var body string
	switch m.mode {
	case ModeEditor:
		body = m.viewEditor()
	case ModeConfirm:
		body = lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, m.confirm.View())
	default:
		body = m.viewList()
	}

	sections := []string{body}
	if m.showHelp {
		sections = append(sections, m.viewHelp())
	}
	if m.showFooter {
		sections = append(sections, m.viewFooter())
	}
	if m.toast != "" {
		sections = append(sections, m.viewToast())
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) viewList() string {
	notes := m.visibleNotes()

	var b strings.Builder
	b.WriteString(m.viewListHeader(len(notes)))
	b.WriteString("\n")

	if m.mode == ModeSearch || m.searchTerm != "" {
		b.WriteString(m.searchInput.View())
		b.WriteString("\n")
	}

	if len(notes) == 0 {
		b.WriteString(styles.Muted.Render("No notes. Press n to create one."))
		return styles.PanelActive.Width(m.width - 2).Render(b.String())
	}

	visible := m.listHeight()
	if m.cursor < m.scrollOff {
		m.scrollOff = m.cursor
	}
	if m.cursor >= m.scrollOff+visible {
		m.scrollOff = m.cursor - visible + 1
	}
	end := m.scrollOff + visible
	if end > len(notes) {
		end = len(notes)
	}

	for i := m.scrollOff; i < end; i++ {
		b.WriteString(m.viewRow(notes[i], i == m.cursor))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	if end < len(notes) {
		b.WriteString("\n")
		b.WriteString(styles.Subtle.Render(fmt.Sprintf("… %d more", len(notes)-end)))
	}

	return styles.PanelActive.Width(m.width - 2).Render(b.String())
}

func (m *Model) viewListHeader(count int) string {
	title := "Notes"
	if m.showArchived {
		title = "Archived"
	}
	left := styles.PanelHeader.Render(fmt.Sprintf("%s (%d)", title, count))

	var filters []string
	if m.searchTerm != "" {
		filters = append(filters, "search:"+m.searchTerm)
	}
	if c := m.criteria(); len(c.Tags) > 0 {
		filters = append(filters, "tag:"+c.Tags[0])
	} else if c.Category != "" {
		filters = append(filters, "cat:"+c.Category)
	}
	if dueCycle[m.dueIdx] != note.BucketAll {
		filters = append(filters, "due:"+string(dueCycle[m.dueIdx]))
	}
	filters = append(filters, "sort:"+string(sortCycle[m.sortIdx]))
	if len(m.selection) > 0 {
		filters = append(filters, fmt.Sprintf("%d selected", len(m.selection)))
	}

	right := styles.Muted.Render(strings.Join(filters, "  "))
	gap := m.width - 6 - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m *Model) viewRow(n note.Note, current bool) string {
	marker := "  "
	if current {
		marker = "> "
	}

	var flags strings.Builder
	if m.selection[n.ID] {
		flags.WriteString(styles.RowMarked.Render("✓"))
	} else {
		flags.WriteString(" ")
	}
	if n.Pinned {
		flags.WriteString(styles.RowPinned.Render("★"))
	} else {
		flags.WriteString(" ")
	}

	title := n.Title
	if title == "" {
		title = "(untitled)"
	}
	title = runewidth.FillRight(ansi.Truncate(title, 40, "…"), 40)

	badge := styles.PriorityStyle(string(n.Priority)).Render(string(n.Priority))

	var due string
	if n.DueDate != nil {
		switch {
		case note.IsOverdue(n, m.now()):
			due = styles.ToastError.Render(n.DueDate.Format("Jan 2"))
		case note.IsDueSoon(n, m.now()):
			due = lipgloss.NewStyle().Foreground(styles.Warning).Render(n.DueDate.Format("Jan 2"))
		default:
			due = styles.Muted.Render(n.DueDate.Format("Jan 2"))
		}
	}

	meta := strings.TrimRight(badge+" "+due, " ")
	tags := ""
	if len(n.Tags) > 0 {
		tags = styles.Subtle.Render("#" + strings.Join(n.Tags, " #"))
	}

	row := strings.TrimRight(fmt.Sprintf("%s%s %s  %s  %s", marker, flags.String(), title, meta, tags), " ")
	row = ansi.Truncate(row, m.width-6, "…")
	if current {
		return styles.RowSelected.Render(row)
	}
	return styles.RowNormal.Render(row)
}

func (m *Model) listHeight() int {
	h := m.height - 8
	if m.showHelp {
		h -= len(m.keymap.BindingsFor("list"))/4 + 2
	}
	if h < minListHeight {
		h = minListHeight
	}
	return h
}

func (m *Model) viewEditor() string {
	var b strings.Builder

	header := "Edit note"
	if m.editor.editID == 0 {
		header = "New note"
	}
	if m.editorDirty() {
		header += " *"
	}
	if m.listening {
		header += "  " + styles.ToastError.Render(" REC ")
	}
	b.WriteString(styles.PanelHeader.Render(header))
	b.WriteString("\n")

	b.WriteString(m.editorRow(fieldTitle, "Title", m.editor.title.View()))
	b.WriteString("\n")

	if m.editor.previewOn {
		b.WriteString(styles.Muted.Render("Preview"))
		b.WriteString("\n")
		b.WriteString(m.renderPreview())
	} else {
		b.WriteString(m.editorRow(fieldContent, "Content", m.editor.content.View()))
	}
	b.WriteString("\n")

	b.WriteString(m.editorRow(fieldTags, "Tags", m.editor.tags.View()))
	b.WriteString("\n")
	b.WriteString(m.editorRow(fieldCategory, "Category", m.editor.category.View()))
	b.WriteString("\n")
	b.WriteString(m.editorRow(fieldDue, "Due", m.editor.due.View()))
	b.WriteString("\n")
	b.WriteString(m.editorRow(fieldColor, "Color", m.editor.color.View()))
	b.WriteString("\n")

	prio := styles.PriorityStyle(string(m.editor.priority)).Render(string(m.editor.priority))
	b.WriteString(styles.Muted.Render("Priority ") + prio + styles.Subtle.Render("  (ctrl+j to cycle)"))
	b.WriteString("\n")
	b.WriteString(styles.Subtle.Render(fmt.Sprintf("%d words", note.WordCount(m.editor.content.Value()))))

	return styles.PanelActive.Width(m.width - 2).Render(b.String())
}

func (m *Model) editorRow(f editorField, label, input string) string {
	style := styles.Muted
	if m.editor.focus == f {
		style = styles.Title
	}
	return style.Render(runewidth.FillRight(label, 9)) + input
}

// renderPreview runs the draft through glamour, cached until the next
// toggle or theme change.
func (m *Model) renderPreview() string {
	if m.editor.previewText != "" {
		return m.editor.previewText
	}
	w := m.width - 10
	if w < 20 {
		w = 20
	}
	out, err := glamour.Render(m.editor.content.Value(), styles.CurrentMarkdownTheme)
	if err != nil {
		return styles.Muted.Render(m.editor.content.Value())
	}
	m.editor.previewText = ansi.Hardwrap(out, w, true)
	return m.editor.previewText
}

func (m *Model) viewFooter() string {
	ctx := "list"
	switch m.mode {
	case ModeEditor:
		ctx = "editor"
	case ModeSearch:
		ctx = "search"
	case ModeConfirm:
		ctx = "confirm"
	}

	hints := footerHints(ctx)
	var parts []string
	for _, h := range hints {
		parts = append(parts, styles.KeyHint.Render(h[0])+" "+styles.Muted.Render(h[1]))
	}
	return ansi.Truncate(strings.Join(parts, "  "), m.width, "…")
}

// footerHints is the curated short list; the full set lives behind ?.
func footerHints(ctx string) [][2]string {
	switch ctx {
	case "editor":
		return [][2]string{
			{"ctrl+s", "save"}, {"esc", "close"}, {"tab", "field"},
			{"ctrl+p", "preview"}, {"ctrl+r", "voice"},
		}
	case "search":
		return [][2]string{{"enter", "apply"}, {"esc", "clear"}}
	case "confirm":
		return [][2]string{{"tab", "switch"}, {"enter", "choose"}, {"esc", "cancel"}}
	default:
		return [][2]string{
			{"n", "new"}, {"enter", "open"}, {"/", "search"}, {"p", "pin"},
			{"A", "archive"}, {"X", "delete"}, {"u", "undo"}, {"s", "sort"},
			{"?", "help"}, {"q", "quit"},
		}
	}
}

func (m *Model) viewHelp() string {
	ctx := "list"
	if m.mode == ModeEditor {
		ctx = "editor"
	}
	bindings := m.keymap.BindingsFor(ctx)

	var parts []string
	for _, b := range bindings {
		parts = append(parts, fmt.Sprintf("%s %s",
			styles.KeyHint.Render(b.Key), styles.Muted.Render(b.Command)))
	}
	return styles.PanelInactive.Width(m.width - 2).Render(strings.Join(parts, "  "))
}

func (m *Model) viewToast() string {
	style := styles.ToastSuccess
	if m.toastError {
		style = styles.ToastError
	}
	return style.Render(m.toast)
}
