// ABOUTME: Shared lipgloss styles for consistent TUI appearance
// ABOUTME: Defines the TalentID palette, panels, banners, and the huh form theme

package styles

import (
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors - Core palette
	Primary   = lipgloss.Color("#652D96") // TalentID purple
	Secondary = lipgloss.Color("#10B981") // Green
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Danger    = lipgloss.Color("#EF4444") // Red
	Muted     = lipgloss.Color("#6B7280") // Gray
	Text      = lipgloss.Color("#F9FAFB") // Light
	BgDark    = lipgloss.Color("#1F2937") // Dark gray

	// Colors - Extended palette
	Accent  = lipgloss.Color("#8B5CF6") // Lighter purple for highlights
	Surface = lipgloss.Color("#374151") // Elevated surface background
	Star    = lipgloss.Color("#FACC15") // Rating stars
	Info    = lipgloss.Color("#3B82F6") // Blue - links and notices

	// Base styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			MarginBottom(1)

	// Status indicators
	StatusOK = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	StatusWarning = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	StatusCritical = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)

	// Panels
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(1, 2)

	ActivePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	// Dropdowns hang below the header, so they carry no vertical padding.
	Dropdown = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Accent).
			Padding(0, 1)

	// Banner is the dismissible error strip at the top of a page.
	Banner = lipgloss.NewStyle().
		Foreground(Text).
		Background(Danger).
		Bold(true).
		Padding(0, 1)

	Notice = lipgloss.NewStyle().
		Foreground(Secondary).
		Padding(0, 1)

	// Help text
	Help = lipgloss.NewStyle().
		Foreground(Muted).
		MarginTop(1)

	// Frame styles for header/footer
	HeaderStyle = lipgloss.NewStyle().
			Border(lipgloss.Border{
			Top:   "─",
			Left:  "╭",
			Right: "╮",
		}).
		BorderForeground(Muted).
		Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Border(lipgloss.Border{
			Bottom: "─",
			Left:   "╰",
			Right:  "╯",
		}).
		BorderForeground(Muted).
		Padding(0, 1)

	// Key style for keyboard shortcuts
	KeyStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	// Value style for emphasized data
	ValueStyle = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true)

	Label = lipgloss.NewStyle().
		Foreground(Muted)

	Link = lipgloss.NewStyle().
		Foreground(Info).
		Underline(true)

	Selected = lipgloss.NewStyle().
			Foreground(Text).
			Background(Primary).
			Bold(true)

	StarStyle = lipgloss.NewStyle().
			Foreground(Star)
)

// Stars colors the filled part of a rating string and dims the rest.
func Stars(rating string) string {
	filled := strings.Count(rating, "★")
	return StarStyle.Render(strings.Repeat("★", filled)) +
		Label.Render(strings.Repeat("☆", strings.Count(rating, "☆")))
}

// FormTheme returns the huh theme shared by the login, signup and recovery forms.
func FormTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = t.Focused.Title.Foreground(Accent).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(Muted)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(Accent)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(Text)
	t.Focused.UnselectedOption = t.Focused.UnselectedOption.Foreground(Muted)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(Accent)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(Accent)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(Danger)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(Danger)

	t.Focused.FocusedButton = t.Focused.FocusedButton.
		Foreground(Text).
		Background(Primary)
	t.Focused.BlurredButton = t.Focused.BlurredButton.
		Foreground(Muted).
		Background(Surface)

	t.Blurred.Title = t.Blurred.Title.Foreground(Muted)
	t.Blurred.Description = t.Blurred.Description.Foreground(Muted)

	return t
}
