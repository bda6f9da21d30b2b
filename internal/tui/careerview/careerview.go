// ABOUTME: Career page component for a single company
// ABOUTME: Renders hero, stats, contact, location, about, and highlights from a career.Page

package careerview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Talentid15/Candidate/internal/career"
	"github.com/Talentid15/Candidate/internal/tui/icons"
	"github.com/Talentid15/Candidate/internal/tui/styles"
	"github.com/Talentid15/Candidate/internal/tui/widgets"
)

// CollapsedAboutLines is how many wrapped lines the about section shows
// before it is expanded
const CollapsedAboutLines = 3

// View displays one company's career page
type View struct {
	page     career.Page
	loading  bool
	err      string
	expanded bool
	width    int
	height   int
}

// New creates a view showing the placeholder for name while it loads
func New(name string, width, height int) *View {
	return &View{
		page:    career.Placeholder(name),
		loading: true,
		width:   width,
		height:  height,
	}
}

// SetPage replaces the page after a load. A failed load passes the
// placeholder page together with the error.
func (v *View) SetPage(page career.Page, err error) {
	v.page = page
	v.loading = false
	v.err = ""
	if err != nil {
		v.err = err.Error()
	}
}

// SetSize updates the view dimensions
func (v *View) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// ToggleAbout expands or collapses the about section
func (v *View) ToggleAbout() {
	v.expanded = !v.expanded
}

// DismissError hides the error banner
func (v *View) DismissError() {
	v.err = ""
}

func (v *View) Page() career.Page { return v.page }

func (v *View) Loading() bool { return v.loading }

func (v *View) Error() string { return v.err }

func (v *View) Expanded() bool { return v.expanded }

// View renders the career page
func (v *View) View() string {
	width := max(v.width, 60)
	var sections []string

	if v.err != "" {
		banner := styles.Banner.Width(width - 2).Render(icons.Warning.String() + " " + v.err + "  (x to dismiss)")
		sections = append(sections, banner)
	}

	sections = append(sections, v.renderHero(width))

	// Three cards side by side when there is room, stacked otherwise
	cardWidth := (width - 6) / 3
	cards := []string{v.renderStats(), v.renderContact(), v.renderLocation()}
	if cardWidth >= 26 {
		for i, c := range cards {
			cards[i] = styles.Panel.Width(cardWidth).Render(c)
		}
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	} else {
		for _, c := range cards {
			sections = append(sections, styles.Panel.Width(width-4).Render(c))
		}
	}

	sections = append(sections,
		styles.Panel.Width(width-4).Render(v.renderAbout(width-10)),
		styles.Panel.Width(width-4).Render(v.renderHighlights()),
	)

	return lipgloss.NewStyle().
		Width(width).
		Render(strings.Join(sections, "\n"))
}

func (v *View) renderHero(width int) string {
	var sb strings.Builder

	name := v.page.CompanyName
	if v.page.HasLogo() {
		name = icons.Building.String() + " " + name
	}
	sb.WriteString(styles.Title.Render(name))
	sb.WriteString("\n")

	if v.loading {
		sb.WriteString(styles.Subtitle.Render("Loading company data..."))
		sb.WriteString("\n")
	}

	sb.WriteString(clamp(v.page.About, width-8, 2))
	sb.WriteString("\n\n")
	sb.WriteString(styles.Stars(v.page.Stars()))
	sb.WriteString(" ")
	sb.WriteString(widgets.RatingBadge(v.page.Rating, v.page.RatingLabel()))
	sb.WriteString(" ")
	sb.WriteString(widgets.IndustryBadge(v.page.Industry))

	return styles.ActivePanel.Width(width - 4).Render(sb.String())
}

func (v *View) renderStats() string {
	var sb strings.Builder
	sb.WriteString(styles.ValueStyle.Render("Company Stats"))
	sb.WriteString("\n\n")
	sb.WriteString(field(icons.Globe, "Headquarters", v.page.HQLocation))
	return sb.String()
}

func (v *View) renderContact() string {
	var sb strings.Builder
	sb.WriteString(styles.ValueStyle.Render("Contact Information"))
	sb.WriteString("\n\n")
	sb.WriteString(field(icons.Phone, "Phone", v.page.ContactPhone))
	sb.WriteString("\n")

	email := v.page.ContactEmail
	if v.page.MailTo() != "" {
		email = styles.Link.Render(email)
	}
	sb.WriteString(field(icons.Mail, "Email", email))
	sb.WriteString("\n")

	website := v.page.WebsiteLabel()
	if v.page.HasWebsite() {
		website = styles.Link.Render(website)
	}
	sb.WriteString(field(icons.Globe, "Website", website))
	return sb.String()
}

func (v *View) renderLocation() string {
	var sb strings.Builder
	sb.WriteString(styles.ValueStyle.Render("Location"))
	sb.WriteString("\n\n")
	sb.WriteString(icons.MapPin.String() + " " + v.page.Address)
	sb.WriteString("\n\n")
	sb.WriteString(styles.Label.Render("View on Map"))
	sb.WriteString("\n")
	sb.WriteString(styles.Link.Render(v.page.MapsURL()))
	return sb.String()
}

func (v *View) renderAbout(width int) string {
	var sb strings.Builder

	toggle := icons.Expand.String() + " a to expand"
	if v.expanded {
		toggle = icons.Collapse.String() + " a to collapse"
	}
	sb.WriteString(styles.ValueStyle.Render("About " + v.page.CompanyName))
	sb.WriteString("  ")
	sb.WriteString(styles.Label.Render(toggle))
	sb.WriteString("\n\n")

	if v.expanded {
		sb.WriteString(lipgloss.NewStyle().Width(max(width, 20)).Render(v.page.About))
	} else {
		sb.WriteString(clamp(v.page.About, width, CollapsedAboutLines))
	}
	return sb.String()
}

// clamp wraps text to width and keeps at most n lines, marking the cut
func clamp(text string, width, n int) string {
	body := lipgloss.NewStyle().Width(max(width, 20)).Render(text)
	lines := strings.Split(body, "\n")
	if len(lines) <= n {
		return body
	}
	return strings.Join(append(lines[:n], styles.Label.Render("...")), "\n")
}

func (v *View) renderHighlights() string {
	var sb strings.Builder
	sb.WriteString(styles.ValueStyle.Render("Company Highlights"))
	sb.WriteString("\n")
	for _, h := range v.page.Highlights() {
		sb.WriteString(fmt.Sprintf("\n%s %s", styles.KeyStyle.Render("•"), h))
	}
	return sb.String()
}

func field(icon icons.Icon, label, value string) string {
	return fmt.Sprintf("%s %s\n  %s", icon.String(), styles.Label.Render(label), value)
}
