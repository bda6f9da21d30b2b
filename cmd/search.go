// ABOUTME: Search command for the candidate CLI
// ABOUTME: Filters the company directory by name the way the header search box does

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Talentid15/Candidate/internal/client"
	"github.com/Talentid15/Candidate/internal/directory"
)

// MsgFetchCompaniesFailed is printed when the directory cannot load
const MsgFetchCompaniesFailed = "Failed to fetch companies"

var searchAll bool

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the company directory",
	Long: `Search the company directory by name, ignoring case.

An empty query matches nothing unless --all is given, in which case the whole
directory is listed.`,
	Args: cobra.MaximumNArgs(1),
	Run: command(func(ctx context.Context, rt *runtime, cmd *cobra.Command, args []string) int {
		var query string
		if len(args) == 1 {
			query = args[0]
		}
		return runSearch(ctx, rt, cmd.OutOrStdout(), query, searchAll)
	}),
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().BoolVar(&searchAll, "all", false, "List the whole directory for an empty query")
}

// runSearch loads the directory and prints the matches
func runSearch(ctx context.Context, rt *runtime, w io.Writer, query string, all bool) int {
	rt.restore(ctx)
	if !rt.session.Snapshot().IsAuthenticated {
		fmt.Fprintln(w, "Not logged in. Run `candidate login` first.")
		return exitFailure
	}

	companies, err := rt.directory.Load(ctx)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			fmt.Fprintln(w, "Session expired. Run `candidate login` again.")
			return exitFailure
		}
		fmt.Fprintf(w, "Error: %s\n", client.MessageOf(err, MsgFetchCompaniesFailed))
		return exitError
	}

	var results []client.Company
	if all {
		results = directory.OnFocus(query, companies)
	} else {
		results = directory.Filter(query, companies)
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatCompaniesJSON(results))
	} else {
		fmt.Fprintln(w, formatCompaniesHuman(query, results))
	}
	return exitOK
}

// formatCompaniesHuman lists one company per line with its industry
func formatCompaniesHuman(query string, companies []client.Company) string {
	if len(companies) == 0 {
		if query == "" {
			return "No companies. Pass a query or --all."
		}
		return fmt.Sprintf("No companies match %q.", query)
	}

	width := 0
	for _, c := range companies {
		width = max(width, len(c.CompanyName))
	}

	var b strings.Builder
	for i, c := range companies {
		if i > 0 {
			b.WriteByte('\n')
		}
		if c.Industry == "" {
			b.WriteString(c.CompanyName)
			continue
		}
		fmt.Fprintf(&b, "%-*s  %s", width, c.CompanyName, c.Industry)
	}
	return b.String()
}

// formatCompaniesJSON formats the results as a JSON array
func formatCompaniesJSON(companies []client.Company) string {
	data, _ := json.MarshalIndent(companies, "", "  ")
	return string(data)
}
