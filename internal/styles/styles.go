package styles

import "github.com/charmbracelet/lipgloss"

// Color palette - default dark theme. ApplyTheme rewrites these in place so
// styles built from them pick up the active theme.
var (
	// Primary colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#3B82F6") // Blue
	Accent    = lipgloss.Color("#F59E0B") // Amber

	// Status colors
	Success = lipgloss.Color("#10B981") // Green
	Warning = lipgloss.Color("#F59E0B") // Amber
	Error   = lipgloss.Color("#EF4444") // Red
	Info    = lipgloss.Color("#3B82F6") // Blue

	// Text colors
	TextPrimary   = lipgloss.Color("#F9FAFB")
	TextSecondary = lipgloss.Color("#9CA3AF")
	TextMuted     = lipgloss.Color("#6B7280")
	TextSubtle    = lipgloss.Color("#4B5563")

	// Background colors
	BgPrimary   = lipgloss.Color("#111827")
	BgSecondary = lipgloss.Color("#1F2937")
	BgTertiary  = lipgloss.Color("#374151")

	// Border colors
	BorderNormal = lipgloss.Color("#374151")
	BorderActive = lipgloss.Color("#7C3AED")

	// Priority colors, High / Medium / Low
	PriorityHighColor   = lipgloss.Color("#EF4444")
	PriorityMediumColor = lipgloss.Color("#F59E0B")
	PriorityLowColor    = lipgloss.Color("#10B981")

	// Glamour style name for markdown preview (updated by ApplyTheme)
	CurrentMarkdownTheme = "dark"
)

// Panel styles
var (
	// Active panel with highlighted border
	PanelActive = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderActive).
			Padding(0, 1)

	// Inactive panel with subtle border
	PanelInactive = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderNormal).
			Padding(0, 1)

	// Panel header
	PanelHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextPrimary).
			MarginBottom(1)
)

// Text styles
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	Body = lipgloss.NewStyle().
		Foreground(TextPrimary)

	Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	Subtle = lipgloss.NewStyle().
		Foreground(TextSubtle)

	KeyHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(BgTertiary).
		Padding(0, 1)
)

// List row styles
var (
	RowSelected = lipgloss.NewStyle().
			Foreground(TextPrimary).
			Background(BgTertiary).
			Bold(true)

	RowNormal = lipgloss.NewStyle().
			Foreground(TextSecondary)

	RowPinned = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	RowMarked = lipgloss.NewStyle().
			Foreground(Warning)
)

// Toast styles
var (
	ToastSuccess = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(Success).
			Padding(0, 1)

	ToastError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(Error).
			Padding(0, 1)
)

// PriorityStyle returns the style for a priority badge.
func PriorityStyle(priority string) lipgloss.Style {
	switch priority {
	case "High":
		return lipgloss.NewStyle().Foreground(PriorityHighColor).Bold(true)
	case "Medium":
		return lipgloss.NewStyle().Foreground(PriorityMediumColor)
	case "Low":
		return lipgloss.NewStyle().Foreground(PriorityLowColor)
	default:
		return lipgloss.NewStyle().Foreground(TextMuted)
	}
}

// rebuildStyles recomputes the derived styles after a palette swap.
func rebuildStyles() {
	PanelActive = PanelActive.BorderForeground(BorderActive)
	PanelInactive = PanelInactive.BorderForeground(BorderNormal)
	PanelHeader = PanelHeader.Foreground(TextPrimary)

	Title = Title.Foreground(TextPrimary)
	Body = Body.Foreground(TextPrimary)
	Muted = Muted.Foreground(TextMuted)
	Subtle = Subtle.Foreground(TextSubtle)
	KeyHint = KeyHint.Foreground(TextMuted).Background(BgTertiary)

	RowSelected = RowSelected.Foreground(TextPrimary).Background(BgTertiary)
	RowNormal = RowNormal.Foreground(TextSecondary)
	RowPinned = RowPinned.Foreground(Accent)
	RowMarked = RowMarked.Foreground(Warning)

	ToastSuccess = ToastSuccess.Background(Success)
	ToastError = ToastError.Background(Error)
}
