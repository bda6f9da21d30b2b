// ABOUTME: Company command for the candidate CLI
// ABOUTME: Prints career pages for one or more companies, fetched concurrently

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Talentid15/Candidate/internal/career"
	"github.com/Talentid15/Candidate/internal/tui/styles"
	"github.com/Talentid15/Candidate/internal/tui/widgets"
)

// maxConcurrentLookups bounds the company requests in flight
const maxConcurrentLookups = 4

var companyCmd = &cobra.Command{
	Use:   "company <name>...",
	Short: "Show career pages",
	Long: `Show the career page of each named company. The company endpoint needs no
login. A company that cannot be loaded is shown as a placeholder page
together with the error.`,
	Args: cobra.MinimumNArgs(1),
	Run: command(func(ctx context.Context, rt *runtime, cmd *cobra.Command, args []string) int {
		return runCompany(ctx, rt, cmd.OutOrStdout(), args)
	}),
}

func init() {
	rootCmd.AddCommand(companyCmd)
}

// companyResult is one looked-up page and its load error, if any
type companyResult struct {
	Page  career.Page `json:"page"`
	Error string      `json:"error,omitempty"`

	err error
}

// runCompany loads every page and returns the worst exit code
func runCompany(ctx context.Context, rt *runtime, w io.Writer, names []string) int {
	results := loadPages(ctx, rt, names)

	exitCode := exitOK
	for i, r := range results {
		if r.err == nil {
			if err := rt.recent.Add(names[i]); err != nil {
				slog.WarnContext(ctx, "Could not record recent company", "company", names[i], "error", err)
			}
			continue
		}
		var loadErr *career.LoadError
		if errors.As(r.err, &loadErr) && loadErr.NotFound {
			exitCode = max(exitCode, exitFailure)
		} else {
			exitCode = exitError
		}
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatCompanyJSON(results))
	} else {
		pages := make([]string, len(results))
		for i, r := range results {
			pages[i] = formatCompanyHuman(r)
		}
		fmt.Fprintln(w, strings.Join(pages, "\n\n"))
	}
	return exitCode
}

// loadPages fetches the pages concurrently, keeping the argument order.
// Failures never cancel the other lookups; each keeps its placeholder.
func loadPages(ctx context.Context, rt *runtime, names []string) []companyResult {
	results := make([]companyResult, len(names))

	var g errgroup.Group
	g.SetLimit(maxConcurrentLookups)
	for i, name := range names {
		g.Go(func() error {
			page, err := rt.careers.Load(ctx, name)
			results[i] = companyResult{Page: page, err: err}
			if err != nil {
				results[i].Error = err.Error()
			}
			return nil
		})
	}
	g.Wait()
	return results
}

// formatCompanyHuman renders a career page as a text card
func formatCompanyHuman(r companyResult) string {
	p := r.Page
	var lines []string
	if r.err != nil {
		lines = append(lines, styles.StatusCritical.Render("Error: "+r.Error))
	}
	lines = append(lines,
		styles.Title.Render(p.CompanyName),
		fmt.Sprintf("%s %s", styles.StarStyle.Render(p.Stars()), widgets.RatingBadge(p.Rating, p.RatingLabel())),
		p.ShortDescription,
		"",
		field("Industry", p.Industry),
		field("Headquarters", p.HQLocation),
	)
	if p.EmployeeCount > 0 {
		lines = append(lines, field("Employees", fmt.Sprintf("%d", p.EmployeeCount)))
	}
	if p.FoundedYear > 0 {
		lines = append(lines, field("Founded", fmt.Sprintf("%d", p.FoundedYear)))
	}
	lines = append(lines,
		field("Website", p.WebsiteLabel()),
		field("Phone", p.ContactPhone),
		field("Email", p.ContactEmail),
		field("Address", p.Address),
		field("Map", p.MapsURL()),
		"",
		p.About,
	)
	for _, h := range p.Highlights() {
		lines = append(lines, "  • "+h)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func field(label, value string) string {
	return fmt.Sprintf("%-13s %s", label+":", value)
}

// formatCompanyJSON formats the results as a JSON array
func formatCompanyJSON(results []companyResult) string {
	data, _ := json.MarshalIndent(results, "", "  ")
	return string(data)
}
