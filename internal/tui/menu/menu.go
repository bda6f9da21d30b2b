// ABOUTME: Profile dropdown menu shown from the header
// ABOUTME: Embedded huh select over profile, offer preferences, settings, and logout

package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/Talentid15/Candidate/internal/routes"
	"github.com/Talentid15/Candidate/internal/tui/icons"
	"github.com/Talentid15/Candidate/internal/tui/styles"
)

// Action is a profile menu entry
type Action int

const (
	ActionProfile Action = iota
	ActionPreferences
	ActionSettings
	ActionLogout
)

// ActionSelectedMsg is sent when an enabled entry is chosen
type ActionSelectedMsg struct {
	Action Action
}

// ClosedMsg is sent when the menu is closed with esc
type ClosedMsg struct{}

type option struct {
	label   string
	value   Action
	enabled bool
}

// Menu is the profile dropdown
type Menu struct {
	options    []option
	selected   Action
	form       *huh.Form
	name       string
	email      string
	loggingOut bool
	err        string
	note       string
}

// New creates the dropdown for the signed-in user
func New(name, email string) *Menu {
	m := &Menu{
		options: []option{
			{label: "My Profile", value: ActionProfile, enabled: true},
			{label: "Offer Preferences", value: ActionPreferences, enabled: true},
			{label: "Settings", value: ActionSettings, enabled: false},
			{label: "Logout", value: ActionLogout, enabled: true},
		},
		selected: ActionProfile,
		name:     name,
		email:    email,
	}
	m.form = m.createForm()
	return m
}

func (m *Menu) createForm() *huh.Form {
	var options []huh.Option[Action]
	for _, opt := range m.options {
		label := opt.label
		if opt.value == ActionLogout && m.loggingOut {
			label = "Logging out..."
		}
		if !opt.enabled {
			label = fmt.Sprintf("%s (not available)", label)
		}
		options = append(options, huh.NewOption(label, opt.value))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[Action]().
				Options(options...).
				Value(&m.selected),
		),
	).WithTheme(styles.FormTheme()).
		WithShowHelp(false)
}

// Init implements tea.Model
func (m *Menu) Init() tea.Cmd {
	return m.form.Init()
}

// Update implements tea.Model
func (m *Menu) Update(msg tea.Msg) (*Menu, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		if key.String() == "esc" {
			return m, func() tea.Msg { return ClosedMsg{} }
		}
		if m.loggingOut {
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.choose(m.selected)
	}
	return m, cmd
}

// choose emits the action, or rebuilds the form with a note for disabled entries
func (m *Menu) choose(action Action) tea.Cmd {
	for _, opt := range m.options {
		if opt.value == action && !opt.enabled {
			m.note = fmt.Sprintf("%s is not available yet", opt.label)
			m.form = m.createForm()
			return m.form.Init()
		}
	}
	m.note = ""
	return func() tea.Msg { return ActionSelectedMsg{Action: action} }
}

// SetLoggingOut switches the logout entry to its pending label
func (m *Menu) SetLoggingOut(pending bool) {
	if m.loggingOut == pending {
		return
	}
	m.loggingOut = pending
	m.form = m.createForm()
}

// SetError shows the session error under the entries
func (m *Menu) SetError(msg string) {
	m.err = msg
}

func (m *Menu) LoggingOut() bool { return m.loggingOut }

// View renders the dropdown
func (m *Menu) View() string {
	var b strings.Builder

	b.WriteString(styles.ValueStyle.Render(icons.User.String() + " " + m.name))
	if m.email != "" {
		b.WriteString("\n")
		b.WriteString(styles.Label.Render(m.email))
	}
	b.WriteString("\n\n")
	b.WriteString(m.form.View())

	if m.note != "" {
		b.WriteString("\n")
		b.WriteString(styles.Label.Render(m.note))
	}
	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(styles.StatusCritical.Render(m.err))
	}

	return styles.Dropdown.Render(strings.TrimRight(b.String(), "\n"))
}

// String returns the string representation of an Action
func (a Action) String() string {
	switch a {
	case ActionProfile:
		return "profile"
	case ActionPreferences:
		return "preferences"
	case ActionSettings:
		return "settings"
	case ActionLogout:
		return "logout"
	default:
		return "unknown"
	}
}

// Route is the screen an action navigates to, if any
func (a Action) Route() (routes.Route, bool) {
	switch a {
	case ActionProfile:
		return routes.Profile, true
	case ActionPreferences:
		return routes.Formula, true
	default:
		return "", false
	}
}
