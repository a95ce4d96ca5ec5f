package harness

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/sonphnt/mathjs/internal/batch"
	"github.com/sonphnt/mathjs/internal/value"
)

// Snapshot renders a journaled report as JSON Lines: a header line with the
// run and function, then one line per result with sorted keys. Values use
// their canonical JSON form, so equal runs produce identical bytes.
func Snapshot(scenarioName string, report *batch.Report) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	header := map[string]any{
		"fn":       report.Fn,
		"run_id":   report.RunID,
		"scenario": scenarioName,
	}
	if err := enc.Encode(header); err != nil {
		return nil, err
	}

	for _, r := range report.Results {
		input, err := value.Marshal(r.Input)
		if err != nil {
			return nil, fmt.Errorf("result %d input: %w", r.Index, err)
		}
		line := map[string]any{
			"index": r.Index,
			"name":  r.Name,
			"input": json.RawMessage(input),
		}
		if r.OK() {
			output, err := value.Marshal(r.Output)
			if err != nil {
				return nil, fmt.Errorf("result %d output: %w", r.Index, err)
			}
			line["output"] = json.RawMessage(output)
		} else {
			line["error"] = map[string]string{"code": r.ErrorCode, "message": r.Error}
		}
		if err := enc.Encode(line); err != nil {
			return nil, fmt.Errorf("result %d: %w", r.Index, err)
		}
	}

	return buf.Bytes(), nil
}

// RunWithGolden executes a scenario and compares its journaled report
// against testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails. Test failure (via goldie) occurs
// if the snapshot doesn't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	snapshot, err := Snapshot(scenario.Name, result.Report)
	if err != nil {
		return nil, err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, snapshot)

	return result, nil
}
