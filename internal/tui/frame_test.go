// ABOUTME: Test to verify header/footer width alignment
// ABOUTME: Ensures frame renders at correct terminal width on every screen

package tui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Talentid15/Candidate/internal/routes"
)

func checkFrame(t *testing.T, app *App, targetWidth int) {
	t.Helper()

	// Frame uses width-1 to prevent wrapping on some terminals,
	// but clamps to minimum of 80 for usability
	expectedWidth := max(targetWidth-1, 80)

	lines := strings.Split(app.View(), "\n")
	header := lines[0]
	footer := lines[len(lines)-1]

	if !strings.HasPrefix(header, "╭─") || !strings.HasSuffix(header, "─╮") {
		t.Fatalf("Header not found in output: %q", header)
	}
	if w := lipgloss.Width(header); w != expectedWidth {
		t.Errorf("Header width mismatch at width %d: expected %d, got %d", targetWidth, expectedWidth, w)
		t.Logf("Header line: %q", header)
	}

	if !strings.HasPrefix(footer, "╰─") || !strings.HasSuffix(footer, "─╯") {
		t.Fatalf("Footer not found in output: %q", footer)
	}
	if w := lipgloss.Width(footer); w != expectedWidth {
		t.Errorf("Footer width mismatch at width %d: expected %d, got %d", targetWidth, expectedWidth, w)
		t.Logf("Footer line: %q", footer)
	}
}

func TestFrameAlignment(t *testing.T) {
	for _, targetWidth := range []int{60, 80, 100, 120} {
		t.Run(fmt.Sprintf("login-%d", targetWidth), func(t *testing.T) {
			app, _ := newTestApp(t, routes.Home)
			restore(app)
			app.Update(tea.WindowSizeMsg{Width: targetWidth, Height: 30})
			checkFrame(t, app, targetWidth)
		})

		t.Run(fmt.Sprintf("career-%d", targetWidth), func(t *testing.T) {
			app, _ := loggedIn(t, routes.Home)
			app.Update(tea.WindowSizeMsg{Width: targetWidth, Height: 30})
			target := routes.CareerPath("Umbrella Health")
			app.navigate(target)
			checkFrame(t, app, targetWidth)
		})
	}
}

func TestFooterDropsShortcutsToFit(t *testing.T) {
	app, _ := loggedIn(t, routes.CareerPath("Acme Corp"))
	app.route = routes.CareerPath("Acme Corp")
	app.width = 60

	footer := app.renderFooter()
	if w := lipgloss.Width(footer); w != 80 {
		t.Errorf("expected footer width 80, got %d", w)
	}
	if strings.Contains(footer, "Quit") {
		t.Error("expected trailing shortcut dropped on the narrow frame")
	}
}

func TestFormatTimeSince(t *testing.T) {
	if got := formatTimeSince(timeAgo(2)); got != "just now" {
		t.Errorf("expected just now, got %s", got)
	}
	if got := formatTimeSince(timeAgo(90)); got != "1m ago" {
		t.Errorf("expected 1m ago, got %s", got)
	}
	if got := formatTimeSince(timeAgo(3 * 3600)); got != "3h ago" {
		t.Errorf("expected 3h ago, got %s", got)
	}
	if got := formatTimeSince(timeAgo(50 * 3600)); got != "2d ago" {
		t.Errorf("expected 2d ago, got %s", got)
	}
}

func timeAgo(secs int) time.Time {
	return time.Now().Add(-time.Duration(secs) * time.Second)
}
