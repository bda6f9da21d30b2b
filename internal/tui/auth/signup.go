// ABOUTME: Signup screen as a bubbletea model
// ABOUTME: Validates full name, email, and password locally and emits a submit message

package auth

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/Talentid15/Candidate/internal/forms"
	"github.com/Talentid15/Candidate/internal/tui/icons"
	"github.com/Talentid15/Candidate/internal/tui/styles"
)

// SignupSubmittedMsg is sent when all signup fields are valid
type SignupSubmittedMsg struct {
	Form forms.SignupForm
}

// Signup is the account creation screen
type Signup struct {
	form *huh.Form
	err  string

	// Form field values
	name     string
	email    string
	password string
}

// NewSignup creates an empty signup screen
func NewSignup() *Signup {
	s := &Signup{}
	s.form = s.createForm()
	return s
}

func (s *Signup) createForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Full name").
				Placeholder("Enter your name").
				Value(&s.name).
				Validate(func(v string) error { return forms.Check("Full name", v, "required") }),
			huh.NewInput().
				Title("Email").
				Placeholder("Enter your email").
				Value(&s.email).
				Validate(func(v string) error { return forms.Check("Email", v, "required,email") }),
			huh.NewInput().
				Title("Password").
				Placeholder("Create new password").
				EchoMode(huh.EchoModePassword).
				Value(&s.password).
				Validate(func(v string) error {
					return forms.Check("Password", v, fmt.Sprintf("required,min=%d", forms.MinPasswordLength))
				}),
		),
	).WithTheme(styles.FormTheme()).
		WithShowHelp(false)
}

// Init implements tea.Model
func (s *Signup) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *Signup) Update(msg tea.Msg) (*Signup, tea.Cmd) {
	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		return s, s.submit()
	}
	return s, cmd
}

// submit validates the whole form once more and reopens it on failure
func (s *Signup) submit() tea.Cmd {
	details := forms.SignupForm{
		Name:     strings.TrimSpace(s.name),
		Email:    strings.TrimSpace(s.email),
		Password: s.password,
	}
	if err := forms.Validate(details); err != nil {
		var ve *forms.ValidationError
		if errors.As(err, &ve) {
			s.err = ve.First()
		} else {
			s.err = err.Error()
		}
		s.form = s.createForm()
		return s.form.Init()
	}
	s.err = ""
	return func() tea.Msg { return SignupSubmittedMsg{Form: details} }
}

// View implements tea.Model
func (s *Signup) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render(icons.App.String() + " Candidate SignUp"))
	b.WriteString("\n")
	if s.err != "" {
		b.WriteString(styles.StatusCritical.Render(icons.Critical.String() + " " + s.err))
		b.WriteString("\n\n")
	}
	b.WriteString(s.form.View())
	b.WriteString("\n")
	b.WriteString(styles.Help.Render("Already have an account? esc to log in"))

	return styles.ActivePanel.Render(b.String())
}
