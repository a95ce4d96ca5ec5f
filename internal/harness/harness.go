package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/sonphnt/mathjs/internal/arith"
	"github.com/sonphnt/mathjs/internal/batch"
	"github.com/sonphnt/mathjs/internal/store"
	"github.com/sonphnt/mathjs/internal/value"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every case passed.
	Pass bool

	// Cases holds per-case outcomes in scenario order.
	Cases []CaseResult

	// Errors collects the failure messages of all cases.
	Errors []string

	// Report is the run as read back from the journal.
	Report *batch.Report
}

// CaseResult is the outcome of one case.
type CaseResult struct {
	Name string
	Pass bool

	// Failure explains why the case failed. Empty if Pass is true.
	Failure string
}

func (r *Result) addCase(name, failure string) {
	r.Cases = append(r.Cases, CaseResult{Name: name, Pass: failure == "", Failure: failure})
	if failure != "" {
		r.Errors = append(r.Errors, fmt.Sprintf("%s: %s", name, failure))
		r.Pass = false
	}
}

// Harness evaluates scenario cases and journals them.
type Harness struct {
	store  *store.Store
	fn     arith.Func
	logger *slog.Logger
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs against a fresh in-memory journal. An error is returned
// only when the scenario cannot be executed (unknown function, undecodable
// value, journal failure); failing cases are reported in the Result.
func Run(scenario *Scenario) (*Result, error) {
	fn, ok := arith.Lookup(scenario.Fn)
	if !ok {
		return nil, fmt.Errorf("unknown fn %q", scenario.Fn)
	}

	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	h := &Harness{
		store:  st,
		fn:     fn,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}
	return h.run(context.Background(), scenario)
}

func (h *Harness) run(ctx context.Context, scenario *Scenario) (*Result, error) {
	runID := scenario.RunID
	if runID == "" {
		runID = "scenario-" + scenario.Name
	}
	tol := scenario.Tolerance
	if tol == 0 {
		tol = DefaultTolerance
	}

	result := &Result{Pass: true}
	report := &batch.Report{RunID: runID, Fn: scenario.Fn}

	for i := range scenario.Cases {
		c := &scenario.Cases[i]

		args, err := caseArgs(c)
		if err != nil {
			return nil, fmt.Errorf("case %q: %w", c.Name, err)
		}
		res := batch.Evaluate(h.fn, args...)
		res.Index = i
		res.Name = c.Name
		res.Input = inputOf(c, args)
		report.Results = append(report.Results, res)

		failure, err := checkCase(c, res, tol)
		if err != nil {
			return nil, fmt.Errorf("case %q: %w", c.Name, err)
		}
		h.logger.Debug("case evaluated", "scenario", scenario.Name, "case", c.Name, "pass", failure == "")
		result.addCase(c.Name, failure)
	}

	if _, err := h.store.WriteReport(ctx, report); err != nil {
		return nil, fmt.Errorf("journal scenario: %w", err)
	}
	journaled, err := h.store.ReadRun(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("journal scenario: %w", err)
	}
	result.Report = journaled

	return result, nil
}

// checkCase compares an evaluation against the case's expectation and
// returns a failure message, or "" if it matches.
func checkCase(c *Case, res batch.Result, scenarioTol float64) (string, error) {
	if c.Error != "" {
		if res.ErrorCode == "" {
			return fmt.Sprintf("expected error %s, got %s", c.Error, value.Format(res.Output)), nil
		}
		if res.ErrorCode != c.Error {
			return fmt.Sprintf("expected error %s, got %s: %s", c.Error, res.ErrorCode, res.Error), nil
		}
		if c.Message != "" && res.Error != c.Message {
			return fmt.Sprintf("expected message %q, got %q", c.Message, res.Error), nil
		}
		return "", nil
	}

	want, err := decodeNode(&c.Expect)
	if err != nil {
		return "", fmt.Errorf("expect: %w", err)
	}
	if res.ErrorCode != "" {
		return fmt.Sprintf("unexpected error %s: %s", res.ErrorCode, res.Error), nil
	}

	tol := c.Tolerance
	if tol == 0 {
		tol = scenarioTol
	}
	if err := compareValues(want, res.Output, tol); err != nil {
		return err.Error(), nil
	}
	return "", nil
}

// caseArgs decodes the arguments a case passes to the function.
func caseArgs(c *Case) ([]value.Value, error) {
	if c.hasInput() {
		v, err := decodeNode(&c.Input)
		if err != nil {
			return nil, fmt.Errorf("input: %w", err)
		}
		return []value.Value{v}, nil
	}

	args := make([]value.Value, len(c.Args.Content))
	for i, n := range c.Args.Content {
		v, err := decodeNode(n)
		if err != nil {
			return nil, fmt.Errorf("args[%d]: %w", i, err)
		}
		args[i] = v
	}
	return args, nil
}

// inputOf is the journaled input: the single argument, or the argument list
// as an Array.
func inputOf(c *Case, args []value.Value) value.Value {
	if c.hasInput() {
		return args[0]
	}
	return value.NewArray(args...)
}

func decodeNode(n *yaml.Node) (value.Value, error) {
	var raw any
	if err := n.Decode(&raw); err != nil {
		return nil, err
	}
	return value.FromPlain(raw)
}
