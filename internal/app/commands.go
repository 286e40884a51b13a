package app

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/scribble/internal/config"
	"github.com/marcus/scribble/internal/export"
	"github.com/marcus/scribble/internal/msg"
)

const toastDuration = 2 * time.Second

// transcriptMsg carries one voice fragment into the update loop.
type transcriptMsg struct {
	fragment string
}

// transcriptClosedMsg signals the transcript stream ended.
type transcriptClosedMsg struct{}

// configReloadedMsg delivers a hot-reloaded config.
type configReloadedMsg struct {
	cfg *config.Config
}

// waitForConfig blocks on the watcher channel and re-arms after each
// delivery.
func waitForConfig(ch <-chan *config.Config) tea.Cmd {
	return func() tea.Msg {
		cfg, ok := <-ch
		if !ok {
			return nil
		}
		return configReloadedMsg{cfg: cfg}
	}
}

// listenTranscript waits for the next voice fragment.
func listenTranscript(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		frag, ok := <-ch
		if !ok {
			return transcriptClosedMsg{}
		}
		return transcriptMsg{fragment: frag}
	}
}

// clearToastAfter hides the toast once it has been shown long enough.
func clearToastAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return msg.ClearToastMsg{}
	})
}

// yank copies text to the clipboard and reports the outcome.
func (m *Model) yank(text, label string) tea.Cmd {
	if err := m.clip.Write(text); err != nil {
		return msg.ShowError(fmt.Sprintf("Copy failed: %v", err), toastDuration)
	}
	return msg.ShowToast(label+" copied to clipboard", toastDuration)
}

// exportText writes the plain-text backup next to the working directory.
func (m *Model) exportText() tea.Cmd {
	name := export.ExportFilename("txt", m.now())
	content := export.Text(m.repo.All())
	return writeExport(name, []byte(content))
}

// exportHTML writes the rendered HTML backup.
func (m *Model) exportHTML() tea.Cmd {
	name := export.ExportFilename("html", m.now())
	content, err := export.HTML(m.repo.All())
	if err != nil {
		return msg.ShowError(fmt.Sprintf("Export failed: %v", err), toastDuration)
	}
	return writeExport(name, []byte(content))
}

func writeExport(name string, data []byte) tea.Cmd {
	return func() tea.Msg {
		if err := os.WriteFile(name, data, 0644); err != nil {
			return msg.ToastMsg{
				Message:  fmt.Sprintf("Export failed: %v", err),
				Duration: toastDuration,
				IsError:  true,
			}
		}
		return msg.ToastMsg{
			Message:  "Exported " + name,
			Duration: toastDuration,
		}
	}
}

// importNotes reads the picked file and merges its notes. A malformed
// payload merges nothing.
func (m *Model) importNotes() tea.Cmd {
	if m.picker == nil {
		return msg.ShowError("No import source configured", toastDuration)
	}
	path, err := m.picker.Pick()
	if err != nil {
		return msg.ShowError(fmt.Sprintf("Import: %v", err), toastDuration)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return msg.ShowError(fmt.Sprintf("Import: %v", err), toastDuration)
	}
	notes, err := export.ParseImport(data)
	if err != nil {
		return msg.ShowError("Import failed: invalid JSON", toastDuration)
	}
	if err := m.repo.ImportMerge(notes); err != nil {
		return msg.ShowError(fmt.Sprintf("Import: %v", err), toastDuration)
	}
	m.clampCursor()
	return msg.ShowToast(fmt.Sprintf("Imported %d notes", len(notes)), toastDuration)
}
