package styles

import (
	"sort"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// themeMu protects the registry and currentTheme.
var themeMu sync.RWMutex

// ColorPalette holds all theme colors.
type ColorPalette struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`

	Success string `json:"success"`
	Warning string `json:"warning"`
	Error   string `json:"error"`
	Info    string `json:"info"`

	TextPrimary   string `json:"textPrimary"`
	TextSecondary string `json:"textSecondary"`
	TextMuted     string `json:"textMuted"`
	TextSubtle    string `json:"textSubtle"`

	BgPrimary   string `json:"bgPrimary"`
	BgSecondary string `json:"bgSecondary"`
	BgTertiary  string `json:"bgTertiary"`

	BorderNormal string `json:"borderNormal"`
	BorderActive string `json:"borderActive"`

	PriorityHigh   string `json:"priorityHigh"`
	PriorityMedium string `json:"priorityMedium"`
	PriorityLow    string `json:"priorityLow"`

	// Glamour style name for markdown rendering
	MarkdownTheme string `json:"markdownTheme"`
}

// Theme represents a complete theme configuration.
type Theme struct {
	Name        string       `json:"name"`
	DisplayName string       `json:"displayName"`
	Colors      ColorPalette `json:"colors"`
}

// Built-in themes: the persisted theme contract names exactly these two.
var (
	DarkTheme = Theme{
		Name:        "dark",
		DisplayName: "Dark",
		Colors: ColorPalette{
			Primary:   "#7C3AED",
			Secondary: "#3B82F6",
			Accent:    "#F59E0B",

			Success: "#10B981",
			Warning: "#F59E0B",
			Error:   "#EF4444",
			Info:    "#3B82F6",

			TextPrimary:   "#F9FAFB",
			TextSecondary: "#9CA3AF",
			TextMuted:     "#6B7280",
			TextSubtle:    "#4B5563",

			BgPrimary:   "#111827",
			BgSecondary: "#1F2937",
			BgTertiary:  "#374151",

			BorderNormal: "#374151",
			BorderActive: "#7C3AED",

			PriorityHigh:   "#EF4444",
			PriorityMedium: "#F59E0B",
			PriorityLow:    "#10B981",

			MarkdownTheme: "dark",
		},
	}

	LightTheme = Theme{
		Name:        "light",
		DisplayName: "Light",
		Colors: ColorPalette{
			Primary:   "#6D28D9",
			Secondary: "#2563EB",
			Accent:    "#D97706",

			Success: "#059669",
			Warning: "#D97706",
			Error:   "#DC2626",
			Info:    "#2563EB",

			TextPrimary:   "#111827",
			TextSecondary: "#4B5563",
			TextMuted:     "#6B7280",
			TextSubtle:    "#9CA3AF",

			BgPrimary:   "#FFFFFF",
			BgSecondary: "#F3F4F6",
			BgTertiary:  "#E5E7EB",

			BorderNormal: "#D1D5DB",
			BorderActive: "#6D28D9",

			PriorityHigh:   "#DC2626",
			PriorityMedium: "#D97706",
			PriorityLow:    "#059669",

			MarkdownTheme: "light",
		},
	}
)

var (
	themeRegistry = map[string]Theme{
		"dark":  DarkTheme,
		"light": LightTheme,
	}
	currentTheme = "dark"
)

// ThemeNames returns the registered theme names, sorted.
func ThemeNames() []string {
	themeMu.RLock()
	defer themeMu.RUnlock()

	names := make([]string, 0, len(themeRegistry))
	for name := range themeRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CurrentTheme returns the active theme name.
func CurrentTheme() string {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}

// GetTheme looks up a registered theme.
func GetTheme(name string) (Theme, bool) {
	themeMu.RLock()
	defer themeMu.RUnlock()
	t, ok := themeRegistry[name]
	return t, ok
}

// ApplyTheme swaps the active palette. Unknown names are ignored and the
// current theme stays in effect.
func ApplyTheme(name string) {
	themeMu.Lock()
	theme, ok := themeRegistry[name]
	if !ok {
		themeMu.Unlock()
		return
	}
	currentTheme = name
	themeMu.Unlock()

	c := theme.Colors

	Primary = lipgloss.Color(c.Primary)
	Secondary = lipgloss.Color(c.Secondary)
	Accent = lipgloss.Color(c.Accent)

	Success = lipgloss.Color(c.Success)
	Warning = lipgloss.Color(c.Warning)
	Error = lipgloss.Color(c.Error)
	Info = lipgloss.Color(c.Info)

	TextPrimary = lipgloss.Color(c.TextPrimary)
	TextSecondary = lipgloss.Color(c.TextSecondary)
	TextMuted = lipgloss.Color(c.TextMuted)
	TextSubtle = lipgloss.Color(c.TextSubtle)

	BgPrimary = lipgloss.Color(c.BgPrimary)
	BgSecondary = lipgloss.Color(c.BgSecondary)
	BgTertiary = lipgloss.Color(c.BgTertiary)

	BorderNormal = lipgloss.Color(c.BorderNormal)
	BorderActive = lipgloss.Color(c.BorderActive)

	PriorityHighColor = lipgloss.Color(c.PriorityHigh)
	PriorityMediumColor = lipgloss.Color(c.PriorityMedium)
	PriorityLowColor = lipgloss.Color(c.PriorityLow)

	CurrentMarkdownTheme = c.MarkdownTheme

	rebuildStyles()
}
