package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sonphnt/mathjs/internal/store"
	"github.com/sonphnt/mathjs/internal/value"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string // journal path
	Lookup   string // value JSON to look up instead of listing runs
	Fn       string // function for --lookup
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history --db <journal> [run-id]",
		Short: "Inspect journaled evaluation runs",
		Long: `Inspect runs journaled by "mathjs eval --db".

Without arguments, lists every run in journal order. With a run ID, prints
that run's results. With --lookup, prints the most recent successful output
recorded for an input value.

Examples:
  mathjs history --db journal.db
  mathjs history --db journal.db 0190a5c8-7d3e-7c4f-9a4e-6a2f1c3b9d10
  mathjs history --db journal.db --lookup '[1, 2]'`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite journal (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Lookup, "lookup", "", "input value (JSON) to look up")
	cmd.Flags().StringVar(&opts.Fn, "fn", "exp", "function for --lookup")

	return cmd
}

// RunListOutput is the JSON form of the run list.
type RunListOutput struct {
	Runs []store.RunSummary `json:"runs"`
}

// LookupOutput is the JSON form of a lookup.
type LookupOutput struct {
	Fn     string          `json:"fn"`
	Found  bool            `json:"found"`
	Output json.RawMessage `json:"output,omitempty"`
}

func runHistory(opts *HistoryOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	ctx := cmd.Context()

	// Opening would create an empty journal.
	if _, err := os.Stat(opts.Database); err != nil {
		return commandError(formatter, ErrCodeNotFound, "database not found", err)
	}
	st, err := store.Open(opts.Database)
	if err != nil {
		return commandError(formatter, ErrCodeStore, "failed to open database", err)
	}
	defer st.Close()

	switch {
	case opts.Lookup != "":
		return lookupHistory(opts, st, formatter, cmd)
	case len(args) == 1:
		report, err := st.ReadRun(ctx, args[0])
		if errors.Is(err, store.ErrRunNotFound) {
			return commandError(formatter, ErrCodeNotFound, "unknown run", err)
		}
		if err != nil {
			return commandError(formatter, ErrCodeStore, "failed to read run", err)
		}
		return outputReport(formatter, report, 0)
	}

	runs, err := st.ListRuns(ctx)
	if err != nil {
		return commandError(formatter, ErrCodeStore, "failed to list runs", err)
	}
	return formatter.Success(RunListOutput{Runs: runs}, func(w io.Writer) {
		if len(runs) == 0 {
			fmt.Fprintln(w, "No runs found in database.")
			return
		}
		for _, r := range runs {
			fmt.Fprintf(w, "%d  %s  %s  %d inputs, %d failed\n", r.Seq, r.ID, r.Fn, r.Inputs, r.Failed)
		}
	})
}

func lookupHistory(opts *HistoryOptions, st *store.Store, formatter *OutputFormatter, cmd *cobra.Command) error {
	v, err := value.Unmarshal([]byte(opts.Lookup))
	if err != nil {
		return commandError(formatter, ErrCodeBadValue, "invalid --lookup value", err)
	}

	out, found, err := st.LookupOutput(cmd.Context(), opts.Fn, v)
	if err != nil {
		return commandError(formatter, ErrCodeStore, "lookup failed", err)
	}

	result := LookupOutput{Fn: opts.Fn, Found: found}
	if found {
		raw, err := value.Marshal(out)
		if err != nil {
			return err
		}
		result.Output = raw
	}
	return formatter.Success(result, func(w io.Writer) {
		if !found {
			fmt.Fprintf(w, "No recorded %s(%s).\n", opts.Fn, value.Format(v))
			return
		}
		fmt.Fprintf(w, "%s(%s) = %s\n", opts.Fn, value.Format(v), value.Format(out))
	})
}
