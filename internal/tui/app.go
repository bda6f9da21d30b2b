// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Routes screens by path, applies the auth guard, and manages the header frame

package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Talentid15/Candidate/internal/career"
	"github.com/Talentid15/Candidate/internal/client"
	"github.com/Talentid15/Candidate/internal/directory"
	"github.com/Talentid15/Candidate/internal/recent"
	"github.com/Talentid15/Candidate/internal/recovery"
	"github.com/Talentid15/Candidate/internal/routes"
	"github.com/Talentid15/Candidate/internal/session"
	"github.com/Talentid15/Candidate/internal/tui/auth"
	"github.com/Talentid15/Candidate/internal/tui/careerview"
	"github.com/Talentid15/Candidate/internal/tui/icons"
	"github.com/Talentid15/Candidate/internal/tui/menu"
	"github.com/Talentid15/Candidate/internal/tui/overlay"
	"github.com/Talentid15/Candidate/internal/tui/search"
	"github.com/Talentid15/Candidate/internal/tui/styles"
	"github.com/Talentid15/Candidate/internal/tui/widgets"
	"github.com/Talentid15/Candidate/internal/tui/wizard"
)

// Layout constants
const (
	minTerminalWidth = 80 // Minimum frame width
	panelPadding     = 4  // Total horizontal padding from panel borders (2 each side)
	navRow           = 1  // Row of the search box and profile toggle, below the frame header
)

// MsgFetchCompaniesFailed is shown in the search dropdown when the directory cannot load
const MsgFetchCompaniesFailed = "Failed to fetch companies"

// MsgSignupRecorded is the login notice after a valid signup
const MsgSignupRecorded = "Signup details received. Log in with your TalentID account."

// sessionRestoredMsg is sent when the persisted session has been read
type sessionRestoredMsg struct {
	err error
}

// loginDoneMsg is sent when a login attempt finishes
type loginDoneMsg struct {
	err error
}

// logoutDoneMsg is sent when the remote logout finishes
type logoutDoneMsg struct {
	err error
}

// profileLoadedMsg is sent when the header refreshed the session user
type profileLoadedMsg struct {
	err error
}

// companiesLoadedMsg is sent when the search directory is loaded
type companiesLoadedMsg struct {
	companies []client.Company
	err       error
}

// careerLoadedMsg is sent when a career page finishes loading
type careerLoadedMsg struct {
	route routes.Route
	page  career.Page
	err   error
}

// Deps are the services the screens drive
type Deps struct {
	Session   *session.Manager
	Directory *directory.Directory
	Careers   *career.Loader
	Recovery  *recovery.Flow
	Recent    *recent.Companies
}

// App is the root model for the TUI
type App struct {
	ctx        context.Context
	deps       Deps
	route      routes.Route
	ready      bool
	width      int
	height     int
	notice     string
	lastUpdate time.Time

	// Child models
	login         *auth.Login
	signup        *auth.Signup
	recoveryPopup *wizard.Wizard
	search        *search.Box
	profileMenu   *menu.Menu
	careerView    *careerview.View

	overlays      *overlay.Listeners
	headerRelease []func()
	unsubscribe   func()
}

// New creates the TUI application at start. The first route is only applied
// once the stored session has been restored.
func New(ctx context.Context, deps Deps, start routes.Route) *App {
	if start == "" {
		start = routes.Home
	}
	a := &App{
		ctx:      ctx,
		deps:     deps,
		route:    start,
		overlays: overlay.New(),
	}
	a.unsubscribe = deps.Session.Subscribe(func(s session.State) {
		if !s.IsAuthenticated && !s.Loading {
			deps.Directory.Reset()
		}
	})
	return a
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return func() tea.Msg {
		return sessionRestoredMsg{err: a.deps.Session.Init(a.ctx)}
	}
}

// Update implements tea.Model. The route guard runs after every message.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := a.update(msg)
	return a, tea.Batch(cmd, a.guard())
}

// guard redirects when the session and the current route disagree. It waits
// for the session to be restored and for pending auth requests to settle.
func (a *App) guard() tea.Cmd {
	if !a.ready {
		return nil
	}
	s := a.deps.Session.Snapshot()
	if s.Loading {
		return nil
	}
	next, redirect := routes.Guard(a.route, s.IsAuthenticated)
	if !redirect {
		return nil
	}
	slog.Debug("Route guard redirect", "from", a.route, "to", next, "authenticated", s.IsAuthenticated)
	return a.navigate(next)
}

func (a *App) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.careerView != nil {
			a.careerView.SetSize(a.contentWidth(), a.contentHeight())
		}
		return a.forwardToForms(msg)

	case tea.MouseMsg:
		return a.handleMouse(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a.quit()
		}
		return a.handleKey(msg)

	case sessionRestoredMsg:
		a.ready = true
		if msg.err != nil {
			slog.Warn("Stored session could not be restored", "error", msg.err)
		}
		start := a.route
		if next, redirect := routes.Guard(start, a.deps.Session.Snapshot().IsAuthenticated); redirect {
			start = next
		}
		return a.navigate(start)

	case auth.LoginSubmittedMsg:
		return a.submitLogin(msg.Credentials)

	case loginDoneMsg:
		if msg.err != nil && a.login != nil {
			return a.login.Fail(a.deps.Session.Snapshot().Error)
		}
		return nil

	case auth.SignupSubmittedMsg:
		slog.Info("Signup submitted", "email", msg.Form.Email, "name", msg.Form.Name)
		a.notice = MsgSignupRecorded
		return a.navigate(routes.Login)

	case wizard.RecoveryDoneMsg:
		a.recoveryPopup = nil
		if a.login != nil {
			a.login.SetNotice(msg.Notice)
		}
		return nil

	case wizard.RecoveryCancelledMsg:
		a.recoveryPopup = nil
		return nil

	case search.CompanySelectedMsg:
		return a.navigate(msg.Route)

	case menu.ActionSelectedMsg:
		return a.handleMenuAction(msg.Action)

	case menu.ClosedMsg:
		a.closeMenu()
		return nil

	case logoutDoneMsg:
		if msg.err != nil {
			slog.Warn("Remote logout failed, local session cleared", "error", msg.err)
		}
		a.profileMenu = nil
		return nil

	case profileLoadedMsg:
		if msg.err != nil && !errors.Is(msg.err, client.ErrUnauthorized) {
			slog.Warn("Profile refresh failed", "error", msg.err)
		}
		return nil

	case companiesLoadedMsg:
		a.handleCompaniesLoaded(msg)
		return nil

	case careerLoadedMsg:
		a.handleCareerLoaded(msg)
		return nil

	default:
		// huh forms and text inputs need their internal messages
		return a.forwardToForms(msg)
	}
}

// forwardToForms passes non-key messages to whichever form-bearing children exist
func (a *App) forwardToForms(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	if a.recoveryPopup != nil {
		_, cmd := a.recoveryPopup.Update(msg)
		cmds = append(cmds, cmd)
	}
	if a.login != nil {
		_, cmd := a.login.Update(msg)
		cmds = append(cmds, cmd)
	}
	if a.signup != nil {
		_, cmd := a.signup.Update(msg)
		cmds = append(cmds, cmd)
	}
	if a.profileMenu != nil {
		_, cmd := a.profileMenu.Update(msg)
		cmds = append(cmds, cmd)
	}
	if a.search != nil && a.search.Focused() {
		_, cmd := a.search.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case a.route == routes.Login:
		return a.updateLogin(msg)
	case a.route == routes.Signup:
		return a.updateSignup(msg)
	case routes.RequiresAuth(a.route):
		return a.updateHeaderScreen(msg)
	}
	return nil
}

func (a *App) updateLogin(msg tea.KeyMsg) tea.Cmd {
	if a.recoveryPopup != nil {
		_, cmd := a.recoveryPopup.Update(msg)
		return cmd
	}
	if a.login == nil {
		return nil
	}
	switch msg.String() {
	case "ctrl+f":
		return a.openRecovery()
	case "ctrl+n":
		return a.navigate(routes.Signup)
	}
	_, cmd := a.login.Update(msg)
	return cmd
}

func (a *App) updateSignup(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "esc" {
		return a.navigate(routes.Login)
	}
	if a.signup == nil {
		return nil
	}
	_, cmd := a.signup.Update(msg)
	return cmd
}

// updateHeaderScreen handles keys on the authenticated screens. Open
// dropdowns take the keys first.
func (a *App) updateHeaderScreen(msg tea.KeyMsg) tea.Cmd {
	if a.search != nil && a.search.Focused() {
		_, cmd := a.search.Update(msg)
		return cmd
	}
	if a.profileMenu != nil {
		_, cmd := a.profileMenu.Update(msg)
		return cmd
	}

	switch msg.String() {
	case "q":
		return a.quit()
	case "esc":
		a.overlays.DismissAll()
		return nil
	case "/":
		return a.focusSearch()
	case "p":
		return a.openMenu()
	case "h":
		return a.navigate(routes.Home)
	}

	switch {
	case a.route.IsCareer():
		return a.updateCareer(msg)
	case a.route == routes.Home:
		return a.updateHome(msg)
	}
	return nil
}

func (a *App) updateCareer(msg tea.KeyMsg) tea.Cmd {
	if a.careerView == nil {
		return nil
	}
	switch msg.String() {
	case "a":
		a.careerView.ToggleAbout()
	case "x":
		a.careerView.DismissError()
	case "r":
		return a.navigate(a.route)
	}
	return nil
}

// updateHome opens a recently viewed company by its number
func (a *App) updateHome(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return nil
	}
	names := a.deps.Recent.Names()
	i := int(key[0] - '1')
	if i >= len(names) {
		return nil
	}
	return a.navigate(routes.CareerPath(names[i]))
}

func (a *App) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	if a.search == nil {
		return nil
	}

	// A press on a dropdown row selects it before outside presses are dispatched
	if a.search.Open() {
		row := msg.Y - (navRow + 2)
		if msg.X < search.InputWidth+6 && row >= 0 && row < len(a.search.Results()) && row < search.MaxVisible {
			return a.search.SelectAt(row)
		}
	}

	dismissed := a.overlays.Press(msg.X, msg.Y)
	if dismissed > 0 {
		slog.Debug("Dismissed dropdowns on outside press", "count", dismissed, "x", msg.X, "y", msg.Y)
	}

	if msg.Y == navRow {
		switch {
		case msg.X < search.InputWidth+6:
			return a.focusSearch()
		case msg.X >= a.frameWidth()-lipgloss.Width(a.profileToggle())-1:
			return a.openMenu()
		}
	}
	return nil
}

// navigate shows route r, mounting or tearing down the header as needed
func (a *App) navigate(r routes.Route) tea.Cmd {
	slog.Debug("Navigating", "from", a.route, "to", r)
	a.route = r

	var cmds []tea.Cmd
	if routes.RequiresAuth(r) {
		cmds = append(cmds, a.mountHeader())
	} else {
		a.unmountHeader()
	}

	a.login, a.signup, a.careerView = nil, nil, nil
	if r != routes.Login {
		a.recoveryPopup = nil
	}

	switch {
	case r == routes.Login:
		a.login = auth.NewLogin("")
		a.login.SetNotice(a.notice)
		a.notice = ""
		cmds = append(cmds, a.login.Init())
	case r == routes.Signup:
		a.signup = auth.NewSignup()
		cmds = append(cmds, a.signup.Init())
	case r.IsCareer():
		name, _ := r.Company()
		a.careerView = careerview.New(name, a.contentWidth(), a.contentHeight())
		cmds = append(cmds, a.loadCareer(r, name))
	}

	return tea.Batch(cmds...)
}

// mountHeader creates the search box and registers the click-outside
// listeners. It is a no-op when the header is already mounted.
func (a *App) mountHeader() tea.Cmd {
	if a.search != nil {
		return nil
	}
	a.search = search.New()
	a.headerRelease = append(a.headerRelease,
		a.overlays.Register(a.searchRegion, a.search.Dismiss),
		a.overlays.Register(a.menuRegion, a.closeMenu),
	)

	var cmds []tea.Cmd
	if a.deps.Directory.Loaded() {
		a.search.SetCompanies(a.deps.Directory.Companies())
	} else {
		cmds = append(cmds, a.loadCompanies())
	}
	if a.deps.Session.Snapshot().User == nil {
		cmds = append(cmds, a.fetchProfile())
	}
	return tea.Batch(cmds...)
}

// unmountHeader releases the header listeners and drops its dropdowns
func (a *App) unmountHeader() {
	for _, release := range a.headerRelease {
		release()
	}
	a.headerRelease = nil
	a.search = nil
	a.profileMenu = nil
}

func (a *App) focusSearch() tea.Cmd {
	if a.search == nil {
		return nil
	}
	a.closeMenu()
	return a.search.Focus()
}

func (a *App) openMenu() tea.Cmd {
	if a.search == nil {
		return nil
	}
	if a.profileMenu != nil {
		a.closeMenu()
		return nil
	}
	a.search.Dismiss()
	s := a.deps.Session.Snapshot()
	a.profileMenu = menu.New(s.User.DisplayName(), s.User.DisplayEmail())
	a.profileMenu.SetError(s.Error)
	return a.profileMenu.Init()
}

func (a *App) closeMenu() {
	if a.profileMenu != nil && a.profileMenu.LoggingOut() {
		return
	}
	a.profileMenu = nil
}

func (a *App) openRecovery() tea.Cmd {
	a.deps.Recovery.Cancel()
	a.recoveryPopup = wizard.New(a.ctx, a.deps.Recovery)
	a.recoveryPopup.SetWidth(a.contentWidth())
	return a.recoveryPopup.Init()
}

func (a *App) handleMenuAction(action menu.Action) tea.Cmd {
	if r, ok := action.Route(); ok {
		a.closeMenu()
		return a.navigate(r)
	}
	if action == menu.ActionLogout {
		if a.profileMenu != nil {
			a.profileMenu.SetLoggingOut(true)
		}
		return a.logout()
	}
	return nil
}

func (a *App) handleCompaniesLoaded(msg companiesLoadedMsg) {
	if a.search == nil {
		return
	}
	if msg.err != nil {
		if errors.Is(msg.err, client.ErrUnauthorized) {
			return
		}
		slog.Warn("Company directory failed to load", "error", msg.err)
		a.search.SetError(client.MessageOf(msg.err, MsgFetchCompaniesFailed))
		return
	}
	a.search.SetCompanies(msg.companies)
	a.lastUpdate = time.Now()
}

func (a *App) handleCareerLoaded(msg careerLoadedMsg) {
	if a.careerView == nil || msg.route != a.route {
		return
	}
	a.careerView.SetPage(msg.page, msg.err)
	if msg.err == nil {
		name, _ := msg.route.Company()
		if err := a.deps.Recent.Add(name); err != nil {
			slog.Warn("Could not record recent company", "company", name, "error", err)
		}
	}
}

// quit releases the session observer and the header before exiting
func (a *App) quit() tea.Cmd {
	a.unmountHeader()
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
	return tea.Quit
}

// submitLogin runs the login off the UI goroutine
func (a *App) submitLogin(creds client.Credentials) tea.Cmd {
	return func() tea.Msg {
		return loginDoneMsg{err: a.deps.Session.Login(a.ctx, creds)}
	}
}

// logout runs the best-effort remote logout
func (a *App) logout() tea.Cmd {
	return func() tea.Msg {
		return logoutDoneMsg{err: a.deps.Session.Logout(a.ctx)}
	}
}

// fetchProfile refreshes the session user for the header
func (a *App) fetchProfile() tea.Cmd {
	return func() tea.Msg {
		_, err := a.deps.Session.FetchProfile(a.ctx)
		return profileLoadedMsg{err: err}
	}
}

// loadCompanies creates a command to fetch the search directory
func (a *App) loadCompanies() tea.Cmd {
	if a.search != nil {
		a.search.SetLoading(true)
	}
	return func() tea.Msg {
		companies, err := a.deps.Directory.Load(a.ctx)
		return companiesLoadedMsg{companies: companies, err: err}
	}
}

// loadCareer creates a command to fetch the career page for route r
func (a *App) loadCareer(r routes.Route, name string) tea.Cmd {
	return func() tea.Msg {
		page, err := a.deps.Careers.Load(a.ctx, name)
		return careerLoadedMsg{route: r, page: page, err: err}
	}
}

// searchRegion covers the search input and its dropdown
func (a *App) searchRegion() overlay.Region {
	if a.search == nil {
		return overlay.Region{}
	}
	return overlay.Region{X: 0, Y: navRow, W: search.InputWidth + 6, H: 1 + a.search.DropdownHeight()}
}

// menuRegion covers the profile toggle and the open dropdown
func (a *App) menuRegion() overlay.Region {
	if a.profileMenu == nil {
		return overlay.Region{}
	}
	view := a.profileMenu.View()
	w := lipgloss.Width(view)
	return overlay.Region{X: a.frameWidth() - w, Y: navRow, W: w, H: 1 + lipgloss.Height(view)}
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch {
	case !a.ready:
		content = styles.Subtitle.Render("Restoring session...")
	case a.route == routes.Login:
		content = a.viewLogin()
	case a.route == routes.Signup:
		content = a.viewSignup()
	default:
		content = a.viewHeaderScreen()
	}

	return a.wrapWithFrame(content)
}

func (a *App) viewLogin() string {
	if a.recoveryPopup != nil {
		return a.recoveryPopup.View()
	}
	if a.login != nil {
		return a.login.View()
	}
	return ""
}

func (a *App) viewSignup() string {
	if a.signup != nil {
		return a.signup.View()
	}
	return ""
}

// viewHeaderScreen renders the nav row, any open dropdown, and the page
func (a *App) viewHeaderScreen() string {
	var sb strings.Builder

	sb.WriteString(a.renderNav())
	sb.WriteString("\n")

	if a.search != nil && a.search.Open() {
		sb.WriteString(a.search.DropdownView())
		sb.WriteString("\n")
	}
	if a.profileMenu != nil {
		sb.WriteString(lipgloss.PlaceHorizontal(a.frameWidth(), lipgloss.Right, a.profileMenu.View()))
		sb.WriteString("\n")
	}

	switch {
	case a.route.IsCareer():
		if a.careerView != nil {
			sb.WriteString(a.careerView.View())
		}
	case a.route == routes.Profile:
		sb.WriteString(a.viewProfile())
	case a.route == routes.Formula:
		sb.WriteString(a.viewFormula())
	default:
		sb.WriteString(a.viewHome())
	}

	return sb.String()
}

// renderNav renders the search box on the left and the profile toggle on the right
func (a *App) renderNav() string {
	left := ""
	if a.search != nil {
		left = a.search.View()
	}
	right := a.profileToggle()
	fill := max(1, a.frameWidth()-lipgloss.Width(left)-lipgloss.Width(right))
	return left + strings.Repeat(" ", fill) + right
}

func (a *App) profileToggle() string {
	name := a.deps.Session.Snapshot().User.DisplayName()
	arrow := icons.Expand.String()
	if a.profileMenu != nil {
		arrow = icons.Collapse.String()
	}
	return styles.ValueStyle.Render(icons.User.String()+" "+name) + " " + styles.KeyStyle.Render(arrow)
}

func (a *App) viewHome() string {
	var sb strings.Builder

	name := a.deps.Session.Snapshot().User.DisplayName()
	sb.WriteString(styles.Title.Render("Welcome, " + name))
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render("Press / to search companies and open their career pages."))
	sb.WriteString("\n")

	entries := a.deps.Recent.List()
	if len(entries) > 0 {
		sb.WriteString(styles.ValueStyle.Render(icons.Recent.String() + " Recently viewed"))
		sb.WriteString("\n")
		for i, e := range entries {
			sb.WriteString(fmt.Sprintf("  %s %s %s\n",
				styles.KeyStyle.Render(fmt.Sprintf("%d", i+1)),
				e.Name,
				styles.Label.Render(formatTimeSince(e.ViewedAt)),
			))
		}
	}

	return styles.Panel.Width(a.contentWidth()).Render(strings.TrimRight(sb.String(), "\n"))
}

func (a *App) viewProfile() string {
	user := a.deps.Session.Snapshot().User
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.User.String() + " My Profile"))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%s %s\n", styles.Label.Render("Name: "), styles.ValueStyle.Render(user.DisplayName())))

	email, phone := "N/A", "N/A"
	if user != nil && user.Data.Email != "" {
		email = user.Data.Email
	}
	if user != nil && user.Data.Phone != "" {
		phone = user.Data.Phone
	}
	sb.WriteString(fmt.Sprintf("%s %s\n", styles.Label.Render("Email:"), email))
	sb.WriteString(fmt.Sprintf("%s %s\n\n", styles.Label.Render("Phone:"), phone))
	sb.WriteString(widgets.StatusText("Signed in", widgets.StatusOK))

	return styles.Panel.Width(a.contentWidth()).Render(sb.String())
}

func (a *App) viewFormula() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Formula.String() + " Offer Preferences"))
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render("Offer preferences are not available yet."))
	return styles.Panel.Width(a.contentWidth()).Render(sb.String())
}

// frameWidth is the width of the header and footer. One column is left free
// to prevent wrapping on some terminals, with a floor for usability.
func (a *App) frameWidth() int {
	return max(a.width-1, minTerminalWidth)
}

// contentWidth calculates the width available inside a panel
func (a *App) contentWidth() int {
	return a.frameWidth() - panelPadding
}

// contentHeight calculates the height available for page content
func (a *App) contentHeight() int {
	// Header, nav row, footer and the panel border
	return max(a.height-5, 10)
}

// renderHeader creates the header bar with app branding and context
func (a *App) renderHeader() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := fmt.Sprintf(" %s %s ", icons.App.String(), titleStyle.Render("TalentID Candidate"))

	rightText := ""
	if a.ready {
		rightText = " " + contextStyle.Render(a.routeLabel()) + " "
	}

	fillWidth := max(0, width-4-lipgloss.Width(leftText)-lipgloss.Width(rightText)) // -4 for ╭─ and ─╮
	header := "╭─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╮"

	return borderStyle.Render(header)
}

// routeLabel names the current screen for the header
func (a *App) routeLabel() string {
	switch {
	case a.route.IsCareer():
		name, _ := a.route.Company()
		return name
	case a.route == routes.Login:
		return "Login"
	case a.route == routes.Signup:
		return "Sign up"
	case a.route == routes.Profile:
		return "My Profile"
	case a.route == routes.Formula:
		return "Offer Preferences"
	default:
		return "Home"
	}
}

// shortcuts lists the keyboard shortcuts for the current screen
func (a *App) shortcuts() []string {
	switch {
	case !a.ready:
		return []string{"ctrl+c Quit"}
	case a.recoveryPopup != nil:
		return []string{"Enter Confirm", "Esc Cancel"}
	case a.route == routes.Login:
		return []string{"Enter Submit", "ctrl+f Forgot password", "ctrl+n Sign up", "ctrl+c Quit"}
	case a.route == routes.Signup:
		return []string{"Enter Submit", "Esc Back", "ctrl+c Quit"}
	case a.search != nil && a.search.Focused():
		return []string{"↑↓ Navigate", "Enter Open", "Esc Close"}
	case a.profileMenu != nil:
		return []string{"↑↓ Select", "Enter Confirm", "Esc Close"}
	case a.route.IsCareer():
		return []string{"/ Search", "a About", "x Dismiss", "r Reload", "p Profile", "h Home", "q Quit"}
	case a.route == routes.Home:
		return []string{"/ Search", "1-5 Recent", "p Profile", "q Quit"}
	default:
		return []string{"/ Search", "p Profile", "h Home", "q Quit"}
	}
}

// renderFooter creates the footer with keyboard shortcuts and status
func (a *App) renderFooter() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	rightText := ""
	if !a.lastUpdate.IsZero() && routes.RequiresAuth(a.route) {
		rightText = statusStyle.Render("Directory "+formatTimeSince(a.lastUpdate)) + " "
	}

	// Drop trailing shortcuts until the line fits
	shortcuts := a.shortcuts()
	plain := func(s []string) string { return " " + strings.Join(s, "  ") + " " }
	for len(shortcuts) > 1 && lipgloss.Width(plain(shortcuts))+lipgloss.Width(rightText)+4 > width {
		shortcuts = shortcuts[:len(shortcuts)-1]
	}

	var styledShortcuts []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styledShortcuts = append(styledShortcuts, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styledShortcuts = append(styledShortcuts, s)
		}
	}
	leftText := " " + strings.Join(styledShortcuts, "  ") + " "

	fillWidth := max(0, width-4-lipgloss.Width(plain(shortcuts))-lipgloss.Width(rightText)) // -4 for ╰─ and ─╯
	footer := "╰─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╯"

	return borderStyle.Render(footer)
}

// formatTimeSince formats a duration since the given time in human-readable form
func formatTimeSince(t time.Time) string {
	d := time.Since(t)

	if d < time.Minute {
		secs := int(d.Seconds())
		if secs < 5 {
			return "just now"
		}
		return fmt.Sprintf("%ds ago", secs)
	}

	if d < time.Hour {
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	}

	if d < 24*time.Hour {
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
	return fmt.Sprintf("%dd ago", int(d.Hours()/24))
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// Run starts the TUI at start and blocks until the user quits
func Run(ctx context.Context, deps Deps, start routes.Route) error {
	app := New(ctx, deps, start)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
