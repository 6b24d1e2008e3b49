package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/stickpad/stickpad/internal/config"
)

// Theme bundles the styles for one color scheme
type Theme struct {
	Primary   lipgloss.Color
	Text      lipgloss.Color
	TextMuted lipgloss.Color
	Surface   lipgloss.Color
	Border    lipgloss.Color
	Danger    lipgloss.Color

	Header       lipgloss.Style
	Sidebar      lipgloss.Style
	NoteList     lipgloss.Style
	Item         lipgloss.Style
	ItemSelected lipgloss.Style
	Trashed      lipgloss.Style
	StatusBar    lipgloss.Style
	Modal        lipgloss.Style
	Help         lipgloss.Style
	Divider      lipgloss.Style
}

// NewTheme builds the style set for the configured theme. "system" falls
// back to dark, the scheme most terminals run.
func NewTheme(name string) Theme {
	t := Theme{
		Primary:   lipgloss.Color("#4ECDC4"),
		Text:      lipgloss.Color("#FFFFFF"),
		TextMuted: lipgloss.Color("#888888"),
		Surface:   lipgloss.Color("#16213e"),
		Border:    lipgloss.Color("#333333"),
		Danger:    lipgloss.Color("#FF6B6B"),
	}
	if name == config.ThemeLight {
		t.Text = lipgloss.Color("#1a1a2e")
		t.TextMuted = lipgloss.Color("#6C757D")
		t.Surface = lipgloss.Color("#e8e8e8")
		t.Border = lipgloss.Color("#cccccc")
	}

	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		Padding(0, 1)

	t.Sidebar = lipgloss.NewStyle().
		Width(22).
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(t.Border).
		Padding(1, 1)

	t.NoteList = lipgloss.NewStyle().Padding(1, 2)

	t.Item = lipgloss.NewStyle().Padding(0, 1)

	t.ItemSelected = lipgloss.NewStyle().
		Padding(0, 1).
		Background(t.Surface).
		Bold(true)

	t.Trashed = lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Strikethrough(true).
		Padding(0, 1)

	t.StatusBar = lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Padding(0, 1).
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(t.Border)

	t.Modal = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 2)

	t.Help = lipgloss.NewStyle().Foreground(t.TextMuted)

	t.Divider = lipgloss.NewStyle().Foreground(t.Border)

	return t
}

// noteSwatch renders the color marker shown next to a note title
func noteSwatch(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("●")
}
