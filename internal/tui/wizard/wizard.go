// ABOUTME: Password recovery popup as a bubbletea model
// ABOUTME: Drives recovery.Flow with one huh form per step and a progress indicator

package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/Talentid15/Candidate/internal/forms"
	"github.com/Talentid15/Candidate/internal/recovery"
	"github.com/Talentid15/Candidate/internal/tui/icons"
	"github.com/Talentid15/Candidate/internal/tui/styles"
)

// RecoveryDoneMsg is sent when the new password was accepted
type RecoveryDoneMsg struct {
	Notice string
}

// RecoveryCancelledMsg is sent when the popup is closed before finishing
type RecoveryCancelledMsg struct{}

// stepResultMsg carries the outcome of one submit back into Update
type stepResultMsg struct {
	stage recovery.Stage
	err   error
}

// Wizard is the forgot-password popup. All state transitions belong to the
// flow; the wizard only collects input and renders.
type Wizard struct {
	ctx     context.Context
	flow    *recovery.Flow
	form    *huh.Form
	width   int
	pending bool

	// Form field values
	email    string
	otp      string
	password string
	confirm  string
}

// Step names for progress indicator
var stepNames = []string{"Email", "Verify OTP", "Reset Password"}

// New opens the popup at the flow's current stage
func New(ctx context.Context, flow *recovery.Flow) *Wizard {
	w := &Wizard{ctx: ctx, flow: flow, email: flow.Email()}
	w.form = w.formFor(flow.Stage())
	return w
}

func (w *Wizard) formFor(stage recovery.Stage) *huh.Form {
	var group *huh.Group
	switch stage {
	case recovery.AwaitingOTP:
		w.otp = ""
		group = huh.NewGroup(
			huh.NewInput().
				Title("One-time password").
				Description(fmt.Sprintf("Enter the code sent to %s", w.flow.Email())).
				Placeholder("123456").
				CharLimit(12).
				Value(&w.otp).
				Validate(func(s string) error { return forms.Check("OTP", s, "required") }),
		).Title("Step 2: Verify OTP")

	case recovery.AwaitingReset:
		w.password, w.confirm = "", ""
		group = huh.NewGroup(
			huh.NewInput().
				Title("New password").
				EchoMode(huh.EchoModePassword).
				Value(&w.password).
				Validate(func(s string) error {
					return forms.Check("Password", s, fmt.Sprintf("required,min=%d", forms.MinPasswordLength))
				}),
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Value(&w.confirm).
				Validate(func(s string) error {
					return forms.Validate(forms.ResetForm{Password: w.password, Confirm: s})
				}),
		).Title("Step 3: Reset Password")

	default:
		group = huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Description("We will send a one-time password to this address").
				Placeholder("you@example.com").
				Value(&w.email).
				Validate(func(s string) error { return forms.Check("Email", s, "required,email") }),
		).Title("Step 1: Email")
	}

	return huh.NewForm(group).
		WithTheme(styles.FormTheme()).
		WithShowHelp(false)
}

// Init implements tea.Model
func (w *Wizard) Init() tea.Cmd {
	return w.form.Init()
}

// Update implements tea.Model
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		form, cmd := w.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			w.form = f
		}
		return w, cmd

	case tea.KeyMsg:
		if msg.String() == "esc" {
			w.flow.Cancel()
			w.pending = false
			return w, func() tea.Msg { return RecoveryCancelledMsg{} }
		}
		if w.pending {
			return w, nil
		}

	case stepResultMsg:
		return w.handleResult(msg)
	}

	form, cmd := w.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.form = f
	}

	if w.form.State == huh.StateCompleted && !w.pending {
		return w, w.submit()
	}

	return w, cmd
}

// submit sends the current step's values to the flow off the UI goroutine
func (w *Wizard) submit() tea.Cmd {
	stage := w.flow.Stage()
	ctx := w.ctx
	email, otp, password, confirm := strings.TrimSpace(w.email), strings.TrimSpace(w.otp), w.password, w.confirm
	w.pending = true

	return func() tea.Msg {
		var err error
		switch stage {
		case recovery.AwaitingOTP:
			err = w.flow.SubmitOTP(ctx, otp)
		case recovery.AwaitingReset:
			err = w.flow.SubmitReset(ctx, password, confirm)
		default:
			err = w.flow.SubmitEmail(ctx, email)
		}
		return stepResultMsg{stage: stage, err: err}
	}
}

func (w *Wizard) handleResult(msg stepResultMsg) (tea.Model, tea.Cmd) {
	if errors.Is(msg.err, context.Canceled) || errors.Is(msg.err, recovery.ErrInFlight) {
		return w, nil
	}
	w.pending = false

	if msg.err == nil && w.flow.Completed() {
		return w, func() tea.Msg { return RecoveryDoneMsg{Notice: recovery.MsgResetDone} }
	}

	// Success moves to the next stage's form; failure rebuilds the same one
	// and the flow's error is shown above it.
	w.form = w.formFor(w.flow.Stage())
	return w, w.form.Init()
}

// Step is the 1-based progress position for the flow's stage
func (w *Wizard) Step() int {
	switch w.flow.Stage() {
	case recovery.AwaitingOTP:
		return 2
	case recovery.AwaitingReset:
		return 3
	default:
		return 1
	}
}

// Pending reports whether a submit is waiting on the server
func (w *Wizard) Pending() bool {
	return w.pending
}

// SetWidth sets the wizard width for proper rendering
func (w *Wizard) SetWidth(width int) {
	w.width = width
}

// View implements tea.Model
func (w *Wizard) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Lock.String() + " Forgot Password"))
	sb.WriteString("\n")
	sb.WriteString(w.renderProgress())
	sb.WriteString("\n\n")

	if msg := w.flow.Error(); msg != "" {
		sb.WriteString(styles.StatusCritical.Render(icons.Critical.String() + " " + msg))
		sb.WriteString("\n\n")
	}

	if w.pending {
		sb.WriteString(styles.Subtitle.Render(pendingLabel(w.flow.Stage())))
	} else {
		sb.WriteString(w.form.View())
	}

	return styles.ActivePanel.Render(sb.String())
}

func pendingLabel(stage recovery.Stage) string {
	switch stage {
	case recovery.AwaitingOTP:
		return "Verifying..."
	case recovery.AwaitingReset:
		return "Updating password..."
	default:
		return "Sending OTP..."
	}
}

// renderProgress renders the step progress indicator
func (w *Wizard) renderProgress() string {
	width := w.width - 8
	if width < 56 {
		width = 56
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	current := w.Step()

	var steps []string
	for i, name := range stepNames {
		stepNum := i + 1
		var indicator string
		var nameStyle lipgloss.Style

		if stepNum < current {
			indicator = lipgloss.NewStyle().Foreground(styles.Secondary).Render(icons.CheckOK.String())
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		} else if stepNum == current {
			indicator = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).Render("●")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
		} else {
			indicator = lipgloss.NewStyle().Foreground(styles.Muted).Render("○")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		}

		steps = append(steps, fmt.Sprintf("%s %s", indicator, nameStyle.Render(name)))
	}

	stepsLine := strings.Join(steps, "    ")

	// "│  " + bar + " │" = 5 chars overhead
	barWidth := width - 5
	filledWidth := (current * barWidth) / len(stepNames)
	emptyWidth := barWidth - filledWidth

	filledBar := lipgloss.NewStyle().Foreground(styles.Primary).Render(strings.Repeat("━", filledWidth))
	emptyBar := lipgloss.NewStyle().Foreground(styles.Surface).Render(strings.Repeat("─", emptyWidth))

	styledTitle := titleStyle.Render("Progress")
	topFillWidth := max(0, width-5-lipgloss.Width("Progress"))
	topBorder := "┌─ " + styledTitle + " " + strings.Repeat("─", topFillWidth) + "┐"

	stepsPadding := max(0, width-4-lipgloss.Width(stepsLine))
	stepsLinePadded := "│ " + stepsLine + strings.Repeat(" ", stepsPadding) + " │"
	progressLinePadded := "│  " + filledBar + emptyBar + " │"
	bottomBorder := "└" + strings.Repeat("─", width-2) + "┘"

	return borderStyle.Render(strings.Join([]string{
		topBorder,
		stepsLinePadded,
		progressLinePadded,
		bottomBorder,
	}, "\n"))
}
