package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"stayreal/internal/app"
	"stayreal/internal/domain"
	"stayreal/internal/logging"
)

// Exit codes.
const (
	exitOK         = 0
	exitError      = 1
	exitNeedsLogin = 2
)

var (
	home            string
	logLevel        string
	httpTimeout     time.Duration
	tokenURL        string
	momentsURL      string
	metricsTextfile string

	wire *app.Wire
)

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(os.Stderr)
	err := root.ExecuteContext(ctx)
	return exitCode(err, root.ErrOrStderr())
}

func exitCode(err error, stderr io.Writer) int {
	switch {
	case err == nil:
		return exitOK
	case domain.NeedsLogin(err):
		fmt.Fprintln(stderr, "Error:", err)
		fmt.Fprintln(stderr, "The session is no longer valid; log in again and run `stayreal auth set`.")
		return exitNeedsLogin
	default:
		fmt.Fprintln(stderr, "Error:", err)
		return exitError
	}
}

// newRootCmd builds the command tree. Logs go to logOut.
func newRootCmd(logOut io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "stayreal",
		Short:         "Device-authenticated session client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}
			applyFlags(cmd, &cfg)
			if err := cfg.ResolveHome(); err != nil {
				return err
			}

			logger := logging.New(cfg.LogLevel, logOut)
			w, err := app.NewWire(cfg, logger)
			if err != nil {
				return err
			}
			wire = w
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if wire == nil {
				return nil
			}
			return wire.FlushMetrics()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&home, "home", "", "data dir (default per-user local data dir, or $STAYREAL_HOME)")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.DurationVar(&httpTimeout, "timeout", 0, "HTTP request timeout")
	pf.StringVar(&tokenURL, "token-url", "", "token endpoint override")
	pf.StringVar(&momentsURL, "moments-url", "", "moments endpoint prefix override")
	pf.StringVar(&metricsTextfile, "metrics-textfile", "", "write Prometheus metrics to this file after each command")

	root.AddCommand(
		authCmd(),
		refreshCmd(),
		statusCmd(),
		regionCmd(),
		momentCmd(),
		balancesCmd(),
		backupCmd(),
		postsCmd(),
		headersCmd(),
	)
	return root
}

// applyFlags overrides cfg with the persistent flags the user set.
func applyFlags(cmd *cobra.Command, cfg *app.Config) {
	flags := cmd.Flags()
	if flags.Changed("home") {
		cfg.Home = home
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("timeout") {
		cfg.HTTPTimeout = httpTimeout
	}
	if flags.Changed("token-url") {
		cfg.Profile.TokenURL = tokenURL
	}
	if flags.Changed("moments-url") {
		cfg.Profile.MomentsURL = momentsURL
	}
	if flags.Changed("metrics-textfile") {
		cfg.MetricsTextfile = metricsTextfile
	}
}

// notFoundHint turns a missing session into an actionable message.
func notFoundHint(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%w: no stored session, run `stayreal auth set` first", err)
	}
	return err
}
