// Package ui holds small reusable view components.
package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/scribble/internal/styles"
)

// ConfirmDialog is a keyboard-driven confirmation modal.
type ConfirmDialog struct {
	Title        string
	Message      string
	ConfirmLabel string // e.g. " Delete "
	CancelLabel  string // e.g. " Cancel "
	Danger       bool   // red border for destructive actions
	Width        int

	focusConfirm bool
}

// NewConfirmDialog creates a dialog with sensible defaults. Focus starts
// on Cancel so a stray Enter never destroys anything.
func NewConfirmDialog(title, message string) *ConfirmDialog {
	return &ConfirmDialog{
		Title:        title,
		Message:      message,
		ConfirmLabel: " Confirm ",
		CancelLabel:  " Cancel ",
		Width:        50,
	}
}

// Toggle moves focus between the two buttons.
func (d *ConfirmDialog) Toggle() { d.focusConfirm = !d.focusConfirm }

// Confirmed reports whether the confirm button currently has focus.
func (d *ConfirmDialog) Confirmed() bool { return d.focusConfirm }

// View renders the dialog box.
func (d *ConfirmDialog) View() string {
	borderColor := styles.Primary
	if d.Danger {
		borderColor = styles.Error
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(1, 2).
		Width(d.Width)

	focused := lipgloss.NewStyle().
		Foreground(styles.TextPrimary).
		Background(borderColor).
		Bold(true)
	blurred := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Background(styles.BgTertiary)

	confirm := blurred.Render(d.ConfirmLabel)
	cancel := focused.Render(d.CancelLabel)
	if d.focusConfirm {
		confirm = focused.Render(d.ConfirmLabel)
		cancel = blurred.Render(d.CancelLabel)
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Top, confirm, "  ", cancel)

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.Title.Render(d.Title),
		"",
		styles.Body.Render(d.Message),
		"",
		buttons,
	)

	return box.Render(content)
}
