package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sonphnt/mathjs/internal/batch"
	"github.com/sonphnt/mathjs/internal/input"
	"github.com/sonphnt/mathjs/internal/store"
)

// EvalOptions holds flags for the eval command.
type EvalOptions struct {
	*RootOptions
	Fn       string // registered function name
	File     string // input file (.json, .yaml, .yml, .cue)
	Database string // optional journal path
	Limit    int    // concurrent evaluations
	RunID    string // explicit run ID instead of a UUIDv7
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "eval --file <inputs>",
		Short: "Evaluate a function over every value in a file",
		Long: `Evaluate a function over every input listed in a JSON, YAML or CUE file.

Each input is evaluated independently; failures are reported per input and
do not stop the run. With --db the run is journaled to a SQLite database
and can be inspected later with "mathjs history".

Exit codes:
  0 - Every input evaluated
  1 - One or more inputs failed
  2 - Command error (unreadable file, unknown function, journal error)

Examples:
  mathjs eval --file inputs.yaml
  mathjs eval --fn log --file inputs.cue --db journal.db
  mathjs eval --file inputs.json --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Fn, "fn", "exp", "function to evaluate")
	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "input file (required)")
	_ = cmd.MarkFlagRequired("file")
	cmd.Flags().StringVar(&opts.Database, "db", "", "journal the run to this SQLite database")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum concurrent evaluations (0 = GOMAXPROCS)")
	cmd.Flags().StringVar(&opts.RunID, "run-id", "", "run ID to record instead of a generated UUIDv7")

	return cmd
}

func runEval(opts *EvalOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())
	ctx := cmd.Context()

	runner, err := batch.NewRunner(opts.Fn)
	if err != nil {
		return commandError(formatter, ErrCodeNotFound, "unknown function", err)
	}
	runner.Limit = opts.Limit
	runner.Logger = logger
	if opts.RunID != "" {
		runner.IDs = batch.NewFixedGenerator(opts.RunID)
	}

	entries, err := input.Load(opts.File)
	if err != nil {
		return commandError(formatter, ErrCodeLoadFailed, "failed to load inputs", err)
	}
	formatter.VerboseLog("loaded %d input(s) from %s", len(entries), opts.File)

	report, err := runner.Run(ctx, entries)
	if err != nil {
		return WrapExitError(ExitCommandError, "evaluation aborted", err)
	}

	var seq int64
	if opts.Database != "" {
		st, err := store.Open(opts.Database)
		if err != nil {
			return commandError(formatter, ErrCodeStore, "failed to open database", err)
		}
		defer st.Close()

		seq, err = st.WriteReport(ctx, report)
		if err != nil {
			return commandError(formatter, ErrCodeStore, "failed to journal run", err)
		}
		logger.Info("run journaled", "run_id", report.RunID, "db", opts.Database, "seq", seq)
	}

	if err := outputReport(formatter, report, seq); err != nil {
		return err
	}

	if n := report.Failed(); n > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d input(s) failed", n, len(report.Results)))
	}
	return nil
}

// commandError reports err through the formatter and returns it as a
// command error.
func commandError(formatter *OutputFormatter, code, message string, err error) error {
	if ferr := formatter.Error(code, fmt.Sprintf("%s: %v", message, err)); ferr != nil {
		return errors.Join(err, ferr)
	}
	return WrapExitError(ExitCommandError, message, err)
}
