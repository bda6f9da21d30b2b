// ABOUTME: Root command for the candidate CLI
// ABOUTME: Handles global flags and builds the client, session and loaders they configure

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Talentid15/Candidate/internal/cache"
	"github.com/Talentid15/Candidate/internal/career"
	"github.com/Talentid15/Candidate/internal/client"
	"github.com/Talentid15/Candidate/internal/config"
	"github.com/Talentid15/Candidate/internal/directory"
	"github.com/Talentid15/Candidate/internal/logger"
	"github.com/Talentid15/Candidate/internal/recent"
	"github.com/Talentid15/Candidate/internal/recovery"
	"github.com/Talentid15/Candidate/internal/session"
)

// Exit codes
const (
	exitOK      = 0
	exitFailure = 1 // auth failures, unknown companies, bad OTP
	exitError   = 2 // connectivity, invalid input
)

var jsonOutput bool

// rootCmd is the base command. Without a subcommand it starts the TUI.
var rootCmd = &cobra.Command{
	Use:   "candidate",
	Short: "Terminal client for the TalentID candidate portal",
	Long: `candidate is a terminal client for the TalentID candidate portal.

Log in, search the company directory and read career pages from the
interactive TUI (the default) or from scripts via subcommands.

Environment Variables:
  CANDIDATE_API_URL       Companies API URL (default: ` + config.DefaultAPIURL + `)
  CANDIDATE_AUTH_API_URL  Candidate auth API URL (default: the companies API URL)
  CANDIDATE_CONFIG_DIR    Session, recent companies and debug.log location
  CANDIDATE_LOG_LEVEL     debug, info, warn or error

Exit codes:
  0 - Success
  1 - Failure (not logged in, wrong credentials, company not found)
  2 - Error (connectivity, invalid input)`,
	Args: cobra.NoArgs,
	Run:  runTUICommand,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	configFlags(rootCmd.PersistentFlags())
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// configFlags registers the flags config.Load binds. Values are read back
// through the flag set, so no package variables are involved.
func configFlags(fs *pflag.FlagSet) {
	fs.String("api-url", "", "Companies API URL (overrides CANDIDATE_API_URL)")
	fs.String("auth-api-url", "", "Candidate auth API URL (overrides CANDIDATE_AUTH_API_URL)")
	fs.String("config-dir", "", "Directory for the session file, recent companies and debug.log")
	fs.String("log-level", "", "Log level: debug, info, warn, error")
	fs.String("log-format", "", "Log format: text, json")
	fs.Duration("timeout", 0, "HTTP request timeout")
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// runtime is everything a command needs, built from one Config
type runtime struct {
	cfg       *config.Config
	client    *client.Client
	session   *session.Manager
	directory *directory.Directory
	pages     *cache.Cache[career.Page]
	careers   *career.Loader
	recovery  *recovery.Flow
	recent    *recent.Companies
}

// newRuntime loads the configuration from flags and wires the services.
// Call Close when done.
func newRuntime(flags *pflag.FlagSet) (*runtime, error) {
	cfg, err := config.Load(flags)
	if err != nil {
		return nil, err
	}

	c := client.New(cfg.APIURL,
		client.WithAuthBaseURL(cfg.AuthAPIURL),
		client.WithTimeout(cfg.Timeout),
		client.WithProfilePath(cfg.ProfilePath),
		client.WithLogoutPath(cfg.LogoutPath),
	)
	sess := session.NewManager(c, session.NewStore(cfg.SessionFile()))

	var pages *cache.Cache[career.Page]
	if cfg.CareerCacheTTL > 0 {
		pages = cache.New[career.Page](cfg.CareerCacheTTL)
		// Career pages do not outlive the session they were read in.
		sess.Subscribe(func(s session.State) {
			if !s.IsAuthenticated {
				pages.Purge()
			}
		})
	}

	return &runtime{
		cfg:       cfg,
		client:    c,
		session:   sess,
		directory: directory.New(c, sess),
		pages:     pages,
		careers:   career.NewLoader(c, pages),
		recovery:  recovery.New(c),
		recent:    recent.New(cfg.ConfigDir),
	}, nil
}

// Close stops background work and drops session subscribers
func (r *runtime) Close() {
	r.session.Teardown()
	if r.pages != nil {
		r.pages.Close()
	}
}

// restore reads the persisted session; a broken file only costs the login
func (r *runtime) restore(ctx context.Context) {
	if err := r.session.Init(ctx); err != nil {
		slog.WarnContext(ctx, "Could not restore session", "error", err)
	}
}

// command wraps a run function with signal handling, stderr logging and the
// runtime lifecycle, exiting with the code it returns.
func command(run func(ctx context.Context, rt *runtime, cmd *cobra.Command, args []string) int) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		rt, err := newRuntime(cmd.Flags())
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			os.Exit(exitError)
		}
		logger.Init(os.Stderr, rt.cfg.LogLevel, rt.cfg.LogFormat)

		exitCode := run(ctx, rt, cmd, args)
		rt.Close()
		if exitCode != exitOK {
			os.Exit(exitCode)
		}
	}
}
