// ABOUTME: Recent command for the candidate CLI
// ABOUTME: Lists the career pages viewed most recently, newest first

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Talentid15/Candidate/internal/config"
	"github.com/Talentid15/Candidate/internal/recent"
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently viewed companies",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(cmd.Flags())
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			os.Exit(exitError)
		}
		exitCode := runRecent(recent.New(cfg.ConfigDir), cmd.OutOrStdout(), time.Now())
		if exitCode != exitOK {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(recentCmd)
}

// runRecent prints the recent list relative to now
func runRecent(companies *recent.Companies, w io.Writer, now time.Time) int {
	entries, err := companies.Load()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitError
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(entries, "", "  ")
		fmt.Fprintln(w, string(data))
		return exitOK
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No recently viewed companies.")
		return exitOK
	}
	var b strings.Builder
	for i, e := range entries {
		fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, e.Name, formatAgo(now.Sub(e.ViewedAt)))
	}
	fmt.Fprint(w, b.String())
	return exitOK
}

// formatAgo formats a duration as a coarse "N units ago" label
func formatAgo(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
