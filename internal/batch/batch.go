// Package batch evaluates a function over many independent inputs.
//
// Each input is evaluated on its own: an input that fails records its
// error in the report and the remaining inputs still run. Only context
// cancellation aborts a run.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/sonphnt/mathjs/internal/arith"
	"github.com/sonphnt/mathjs/internal/input"
	"github.com/sonphnt/mathjs/internal/value"
)

// ErrCodeEval is recorded for evaluation errors that carry no code of
// their own.
const ErrCodeEval = "EVAL"

// Report is the outcome of one batch run.
type Report struct {
	RunID   string
	Fn      string
	Results []Result
}

// Result is the outcome of evaluating one input. Exactly one of Output and
// ErrorCode is set.
type Result struct {
	Index     int
	Name      string
	Input     value.Value
	Output    value.Value
	ErrorCode string
	Error     string
}

// OK reports whether the evaluation succeeded.
func (r Result) OK() bool { return r.ErrorCode == "" }

// Failed returns the number of results that carry an error.
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if !res.OK() {
			n++
		}
	}
	return n
}

// Runner evaluates a function over a list of inputs.
type Runner struct {
	// Name is the registered function name recorded in reports.
	Name string

	// Fn is called with each input as its only argument.
	Fn arith.Func

	// Limit caps the number of concurrent evaluations. Zero means
	// GOMAXPROCS.
	Limit int

	// IDs generates run IDs. Nil means UUIDv7Generator.
	IDs RunIDGenerator

	// Logger receives per-run and per-input records. Nil means
	// slog.Default().
	Logger *slog.Logger
}

// NewRunner creates a Runner for the function registered under name.
func NewRunner(name string) (*Runner, error) {
	fn, ok := arith.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown function %q", name)
	}
	return &Runner{Name: name, Fn: fn}, nil
}

// Run evaluates every entry and returns the results in input order.
// It returns an error only if ctx is cancelled before all inputs finish.
func (r *Runner) Run(ctx context.Context, entries []input.Entry) (*Report, error) {
	ids := r.IDs
	if ids == nil {
		ids = UUIDv7Generator{}
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	limit := r.Limit
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	report := &Report{
		RunID:   ids.Generate(),
		Fn:      r.Name,
		Results: make([]Result, len(entries)),
	}
	logger = logger.With("run_id", report.RunID, "fn", r.Name)
	logger.Info("batch run starting", "inputs", len(entries), "limit", limit)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, entry := range entries {
		if gctx.Err() != nil {
			break
		}
		i, entry := i, entry
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// Each goroutine writes only its own slot.
			report.Results[i] = r.evaluate(logger, i, entry)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch run %s: %w", report.RunID, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("batch run %s: %w", report.RunID, err)
	}

	logger.Info("batch run finished", "inputs", len(entries), "failed", report.Failed())
	return report, nil
}

func (r *Runner) evaluate(logger *slog.Logger, i int, entry input.Entry) Result {
	res := Evaluate(r.Fn, entry.Value)
	res.Index = i
	res.Name = entry.Name
	res.Input = entry.Value

	if !res.OK() {
		logger.Debug("input failed", "index", i, "name", entry.Name, "code", res.ErrorCode, "error", res.Error)
		return res
	}
	logger.Debug("input evaluated", "index", i, "name", entry.Name)
	return res
}

// Evaluate calls fn with args and records the output, or the error with
// its code. Errors without a code of their own get ErrCodeEval. Index, Name
// and Input are left for the caller to fill in.
func Evaluate(fn arith.Func, args ...value.Value) Result {
	out, err := fn(args...)
	if err != nil {
		code := string(arith.CodeOf(err))
		if code == "" {
			code = ErrCodeEval
		}
		return Result{ErrorCode: code, Error: err.Error()}
	}
	return Result{Output: out}
}
