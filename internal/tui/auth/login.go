// ABOUTME: Login screen as a bubbletea model
// ABOUTME: Collects email and password with a huh form and emits a submit message

package auth

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/Talentid15/Candidate/internal/client"
	"github.com/Talentid15/Candidate/internal/forms"
	"github.com/Talentid15/Candidate/internal/tui/icons"
	"github.com/Talentid15/Candidate/internal/tui/styles"
)

// LoginSubmittedMsg is sent when the form passes local validation
type LoginSubmittedMsg struct {
	Credentials client.Credentials
}

// Login is the login screen
type Login struct {
	form    *huh.Form
	pending bool
	err     string
	notice  string

	// Form field values
	email    string
	password string
}

// NewLogin creates the login screen with email prefilled
func NewLogin(email string) *Login {
	l := &Login{email: email}
	l.form = l.createForm()
	return l
}

func (l *Login) createForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&l.email).
				Validate(func(s string) error { return forms.Check("Email", s, "required,email") }),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&l.password).
				Validate(func(s string) error { return forms.Check("Password", s, "required") }),
		),
	).WithTheme(styles.FormTheme()).
		WithShowHelp(false)
}

// Init implements tea.Model
func (l *Login) Init() tea.Cmd {
	return l.form.Init()
}

// Update implements tea.Model
func (l *Login) Update(msg tea.Msg) (*Login, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok && l.pending {
		return l, nil
	}

	form, cmd := l.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		l.form = f
	}

	if l.form.State == huh.StateCompleted && !l.pending {
		return l, l.submit()
	}
	return l, cmd
}

func (l *Login) submit() tea.Cmd {
	l.pending = true
	l.err = ""
	creds := client.Credentials{Email: strings.TrimSpace(l.email), Password: l.password}
	return func() tea.Msg { return LoginSubmittedMsg{Credentials: creds} }
}

// Fail shows msg and reopens the form with the email kept
func (l *Login) Fail(msg string) tea.Cmd {
	l.pending = false
	l.err = msg
	l.password = ""
	l.form = l.createForm()
	return l.form.Init()
}

// SetNotice shows an informational line above the form
func (l *Login) SetNotice(msg string) {
	l.notice = msg
}

func (l *Login) Pending() bool { return l.pending }

func (l *Login) Email() string { return l.email }

// View implements tea.Model
func (l *Login) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render(icons.App.String() + " Candidate Login"))
	b.WriteString("\n")

	if l.notice != "" {
		b.WriteString(styles.Notice.Render(icons.CheckOK.String() + " " + l.notice))
		b.WriteString("\n\n")
	}
	if l.err != "" {
		b.WriteString(styles.StatusCritical.Render(icons.Critical.String() + " " + l.err))
		b.WriteString("\n\n")
	}

	if l.pending {
		b.WriteString(styles.Subtitle.Render("Logging in..."))
	} else {
		b.WriteString(l.form.View())
	}

	b.WriteString("\n")
	b.WriteString(styles.Help.Render("Forgot password? ctrl+f    New here? ctrl+n to sign up"))

	return styles.ActivePanel.Render(b.String())
}
