// ABOUTME: TUI command for the candidate CLI, also run when no subcommand is given
// ABOUTME: Logs to debug.log in the config dir so the display stays clean

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Talentid15/Candidate/internal/logger"
	"github.com/Talentid15/Candidate/internal/routes"
	"github.com/Talentid15/Candidate/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui [path]",
	Short: "Start the interactive portal",
	Long: `Start the interactive portal. An optional path opens a screen directly,
for example /profile or /career/Acme%20Corp. Protected screens ask for a
login first.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runTUICommand,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUICommand(cmd *cobra.Command, args []string) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rt, err := newRuntime(cmd.Flags())
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		os.Exit(exitError)
	}
	defer rt.Close()

	closeLog, err := logger.InitFile(rt.cfg.ConfigDir, rt.cfg.LogLevel, rt.cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: logging disabled: %v\n", err)
	}
	defer closeLog()

	start, err := startRoute(args)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		os.Exit(exitError)
	}

	slog.Info("Starting TUI", "route", start, "api_url", rt.cfg.APIURL)
	if err := tui.Run(ctx, rt.deps(), start); err != nil {
		slog.Error("TUI exited with error", "error", err)
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		rt.Close()
		os.Exit(exitError)
	}
}

// startRoute parses the optional path argument, defaulting to home
func startRoute(args []string) (routes.Route, error) {
	if len(args) == 0 {
		return routes.Home, nil
	}
	return routes.Parse(args[0])
}

// deps hands the runtime's services to the TUI
func (r *runtime) deps() tui.Deps {
	return tui.Deps{
		Session:   r.session,
		Directory: r.directory,
		Careers:   r.careers,
		Recovery:  r.recovery,
		Recent:    r.recent,
	}
}
