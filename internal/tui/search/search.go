// ABOUTME: Header search box with a results dropdown
// ABOUTME: Wraps directory.Search with a text input, cursor list, and selection messages

package search

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Talentid15/Candidate/internal/client"
	"github.com/Talentid15/Candidate/internal/directory"
	"github.com/Talentid15/Candidate/internal/routes"
	"github.com/Talentid15/Candidate/internal/tui/icons"
	"github.com/Talentid15/Candidate/internal/tui/styles"
)

// MaxVisible is the number of dropdown rows shown at once
const MaxVisible = 8

// InputWidth is the width of the text input in cells
const InputWidth = 36

// CompanySelectedMsg is sent when a result is chosen
type CompanySelectedMsg struct {
	Company client.Company
	Route   routes.Route
}

// Styles
var (
	selectedStyle = lipgloss.NewStyle().Foreground(styles.Text).Background(styles.Primary).Bold(true)
	normalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	errorStyle    = lipgloss.NewStyle().Foreground(styles.Danger)
	helpStyle     = lipgloss.NewStyle().Foreground(styles.Muted)
)

// Box is the search component mounted in the header
type Box struct {
	input     textinput.Model
	search    directory.Search
	companies []client.Company
	focused   bool
	loading   bool
	err       string
}

// New creates an unfocused search box
func New() *Box {
	ti := textinput.New()
	ti.Placeholder = "Search companies..."
	ti.Prompt = icons.Search.String() + " "
	ti.CharLimit = 80
	ti.Width = InputWidth

	return &Box{input: ti}
}

// SetCompanies replaces the directory the box filters. An open dropdown is
// recomputed against the new list.
func (b *Box) SetCompanies(companies []client.Company) {
	b.companies = companies
	b.loading = false
	b.err = ""
	if b.focused {
		b.reopen()
	}
}

// SetLoading marks the directory as being fetched
func (b *Box) SetLoading(loading bool) {
	b.loading = loading
}

// SetError sets an error message to display in the dropdown
func (b *Box) SetError(msg string) {
	b.err = msg
	b.loading = false
}

// Focus puts the cursor in the box and opens the dropdown
func (b *Box) Focus() tea.Cmd {
	b.focused = true
	b.reopen()
	return b.input.Focus()
}

// Dismiss closes the dropdown and releases focus, keeping the query
func (b *Box) Dismiss() {
	b.focused = false
	b.input.Blur()
	b.search.Dismiss()
}

func (b *Box) Focused() bool { return b.focused }

// Open reports whether the dropdown is showing
func (b *Box) Open() bool { return b.focused && (b.search.Open() || b.err != "" || b.loading) }

func (b *Box) Query() string { return b.search.Query() }

func (b *Box) Results() []client.Company { return b.search.Results() }

// Update handles keys while the box is focused
func (b *Box) Update(msg tea.Msg) (*Box, tea.Cmd) {
	if !b.focused {
		return b, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			b.Dismiss()
			return b, nil
		case "up", "ctrl+p":
			b.search.Move(-1)
			return b, nil
		case "down", "ctrl+n", "tab":
			b.search.Move(1)
			return b, nil
		case "enter":
			return b, b.choose(b.search.SelectCurrent())
		}
	}

	before := b.input.Value()
	var cmd tea.Cmd
	b.input, cmd = b.input.Update(msg)
	if b.input.Value() != before {
		b.search.SetQuery(b.input.Value(), b.companies)
	}
	return b, cmd
}

// SelectAt chooses the i-th visible dropdown row, as for a mouse click
func (b *Box) SelectAt(row int) tea.Cmd {
	return b.choose(b.search.Select(b.offset() + row))
}

func (b *Box) choose(company client.Company, route routes.Route, ok bool) tea.Cmd {
	if !ok {
		return nil
	}
	b.input.SetValue("")
	b.Dismiss()
	return func() tea.Msg {
		return CompanySelectedMsg{Company: company, Route: route}
	}
}

// reopen recomputes results on focus. Unlike typing, an empty query here
// lists the whole directory.
func (b *Box) reopen() {
	b.search.SetQuery(b.input.Value(), b.companies)
	b.search.Focus(b.companies)
}

// offset is the index of the first visible row
func (b *Box) offset() int {
	cursor := b.search.Cursor()
	if cursor < MaxVisible {
		return 0
	}
	return cursor - MaxVisible + 1
}

// View renders the input line
func (b *Box) View() string {
	return b.input.View()
}

// DropdownView renders the results list, or an empty string when closed
func (b *Box) DropdownView() string {
	if !b.Open() {
		return ""
	}

	var lines []string
	switch {
	case b.err != "":
		lines = append(lines, errorStyle.Render(icons.Critical.String()+" "+b.err))
	case b.loading:
		lines = append(lines, helpStyle.Render("Loading companies..."))
	default:
		results := b.search.Results()
		start := b.offset()
		end := min(len(results), start+MaxVisible)
		for i := start; i < end; i++ {
			label := truncate(results[i].CompanyName, InputWidth)
			if i == b.search.Cursor() {
				lines = append(lines, selectedStyle.Render("> "+label))
			} else {
				lines = append(lines, normalStyle.Render("  "+label))
			}
		}
		if len(results) > MaxVisible {
			lines = append(lines, helpStyle.Render(fmt.Sprintf("  %d of %d", b.search.Cursor()+1, len(results))))
		}
	}

	return styles.Dropdown.Width(InputWidth + 4).Render(strings.Join(lines, "\n"))
}

// DropdownHeight is the rendered height of the dropdown, zero when closed
func (b *Box) DropdownHeight() int {
	view := b.DropdownView()
	if view == "" {
		return 0
	}
	return lipgloss.Height(view)
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+3 > width {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}
