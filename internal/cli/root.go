// Package cli implements the expense-tracker command line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/expense-tracker/backend/config"
	"github.com/expense-tracker/backend/internal/application/usecase/analytics"
	"github.com/expense-tracker/backend/internal/domain/dateutil"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/infra/dependency"
)

// globalFlags holds the persistent flags shared by every command.
type globalFlags struct {
	dbURL   string
	asOf    string
	output  string
	verbose bool
}

// session is the per-invocation state built before a command runs.
type session struct {
	flags   globalFlags
	cfg     *config.Config
	app     *dependency.App
	ref     time.Time
	printer *printer
	now     func() time.Time
}

// Option customizes the root command.
type Option func(*session)

// WithClock overrides the clock used when --as-of is not given.
func WithClock(now func() time.Time) Option {
	return func(s *session) {
		s.now = now
	}
}

// NewRootCommand builds the expense-tracker command tree.
func NewRootCommand(opts ...Option) *cobra.Command {
	s := &session{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	cmd := &cobra.Command{
		Use:   "expense-tracker",
		Short: "Track personal expenses and analyze spending",
		Long: `expense-tracker records expenses in a local ledger and reports on them:
period summaries, category breakdowns, monthly trends, month-end projections,
budget status and plain-language insights.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return s.open(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&s.flags.dbURL, "db", "", "ledger database (file path, sqlite:// or postgres:// URL); overrides DATABASE_URL")
	flags.StringVar(&s.flags.asOf, "as-of", "", "reference date YYYY-MM-DD used as \"today\" (default: current date)")
	flags.StringVarP(&s.flags.output, "output", "o", OutputTable, "output format: table, json or yaml")
	flags.BoolVarP(&s.flags.verbose, "verbose", "v", false, "enable debug logging on stderr")

	cmd.AddCommand(
		newAddCommand(s),
		newListCommand(s),
		newRecentCommand(s),
		newSearchCommand(s),
		newEditCommand(s),
		newDeleteCommand(s),
		newSummaryCommand(s),
		newBreakdownCommand(s),
		newTrendsCommand(s),
		newPredictCommand(s),
		newInsightsCommand(s),
		newCompareCommand(s),
		newBudgetCommand(s),
		newCategoryCommand(s),
		newExportCommand(s),
		newImportCommand(s),
		newSeedCommand(s),
		newServeCommand(s),
	)

	return cmd
}

func (s *session) open(cmd *cobra.Command) error {
	level := slog.LevelWarn
	if s.flags.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	})))

	p, err := newPrinter(cmd.OutOrStdout(), s.flags.output)
	if err != nil {
		return err
	}
	s.printer = p

	s.ref = dateutil.Truncate(s.now().UTC())
	if s.flags.asOf != "" {
		ref, err := analytics.ParseDate(s.flags.asOf)
		if err != nil {
			return err
		}
		s.ref = ref
	}

	s.cfg = config.Load()
	if s.flags.dbURL != "" {
		s.cfg.Database.URL = s.flags.dbURL
	}
	// Only the server shares rate-limit counters.
	if cmd.Name() != "serve" {
		s.cfg.Redis.Enabled = false
	}

	app, err := dependency.Bootstrap(cmd.Context(), s.cfg, dependency.WithClock(s.now))
	if err != nil {
		return fmt.Errorf("failed to open ledger: %w", err)
	}
	s.app = app
	slog.Debug("Ledger opened", "database", s.cfg.Database.URL, "reference_date", dateutil.FormatDate(s.ref))
	return nil
}

func (s *session) close() error {
	if s.app == nil {
		return nil
	}
	err := s.app.Close()
	s.app = nil
	return err
}

// run wraps a command body so the ledger is closed whether or not it fails.
func (s *session) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd, args)
		return errors.Join(err, s.close())
	}
}

func (s *session) useCases() *dependency.UseCases {
	return s.app.UseCases
}

// Execute runs the command tree and reports a failure as "Error: <message>"
// on stderr. It returns the process exit code.
func Execute(cmd *cobra.Command, stderr io.Writer) int {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(stderr, "Error:", ErrorMessage(err))
		return 1
	}
	return 0
}

// ErrorMessage returns the user-facing message of err, preferring the
// message of a domain error over its wrapped chain.
func ErrorMessage(err error) string {
	var (
		expErr *domainerror.ExpenseError
		bdgErr *domainerror.BudgetError
		catErr *domainerror.CategoryError
		anlErr *domainerror.AnalyticsError
	)

	switch {
	case errors.As(err, &expErr):
		return expErr.Message
	case errors.As(err, &bdgErr):
		return bdgErr.Message
	case errors.As(err, &catErr):
		return catErr.Message
	case errors.As(err, &anlErr):
		return anlErr.Message
	default:
		return err.Error()
	}
}
