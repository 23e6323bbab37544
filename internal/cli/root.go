// Package cli implements the namematch command tree.
package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/samvad-hq/namematch-console/internal/app"
	"github.com/samvad-hq/namematch-console/internal/config"
	"github.com/samvad-hq/namematch-console/internal/display"
	"github.com/samvad-hq/namematch-console/internal/logger"
	"github.com/spf13/cobra"
)

// ErrReported marks failures that were already printed for the user. Callers
// should exit non-zero without printing them again.
var ErrReported = errors.New("error already reported")

// Deps carries the process-level collaborators of the command tree.
type Deps struct {
	Version string
	// NewLogger builds the logger once flags are applied; a no-op logger is used when nil.
	NewLogger func(*config.Config) (logger.Logger, error)
	// SessionOptions are passed to every session the commands open.
	SessionOptions []app.Option
}

type runtime struct {
	cfg  *config.Config
	deps Deps
	log  logger.Logger

	apiURL   string
	timeout  time.Duration
	logLevel string
	noColor  bool
}

// NewRootCommand builds the namematch command tree around cfg.
func NewRootCommand(cfg *config.Config, deps Deps) *cobra.Command {
	if deps.Version == "" {
		deps.Version = "dev"
	}
	rt := &runtime{cfg: cfg, deps: deps, log: logger.NopLogger{}}

	root := &cobra.Command{
		Use:           "namematch",
		Short:         "Console for the name matching API",
		Long:          `Compares two names through a remote name matching API and shows the verdict, confidence, reasoning and routing target.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return rt.prepare()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&rt.apiURL, "api-url", "", "API base URL (default from API_BASE_URL)")
	flags.DurationVar(&rt.timeout, "timeout", 0, "Comparison request timeout, e.g. 10s")
	flags.StringVar(&rt.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.BoolVar(&rt.noColor, "no-color", false, "Disable colored output")

	root.AddCommand(
		newCompareCommand(rt),
		newHealthCommand(rt),
		newScenariosCommand(),
		newBatchCommand(rt),
		newShellCommand(rt),
		newVersionCommand(deps.Version),
	)
	return root
}

// prepare applies flag overrides and initializes logging.
func (rt *runtime) prepare() error {
	if rt.cfg == nil {
		return fmt.Errorf("config must not be nil")
	}
	if err := rt.cfg.Apply(config.Overrides{
		APIBaseURL:     rt.apiURL,
		RequestTimeout: rt.timeout,
		LogLevel:       rt.logLevel,
	}); err != nil {
		return err
	}
	if rt.noColor {
		display.SetColor(false)
	}

	if rt.deps.NewLogger != nil {
		log, err := rt.deps.NewLogger(rt.cfg)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		rt.log = logger.Ensure(log)
	}
	return nil
}

func (rt *runtime) openSession(cmd *cobra.Command) (*app.Session, error) {
	return app.NewSession(cmd.Context(), rt.cfg, rt.log, rt.deps.SessionOptions...)
}

func (rt *runtime) closeSession(s *app.Session) {
	if err := s.Close(); err != nil {
		rt.log.ErrorObj("session close failed", "error", err.Error())
	}
}

func newVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "namematch %s\n", version)
		},
	}
}
