package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/sonphnt/mathjs/internal/batch"
	"github.com/sonphnt/mathjs/internal/value"
)

// ReportOutput is the JSON form of a batch report.
type ReportOutput struct {
	RunID   string         `json:"run_id"`
	Fn      string         `json:"fn"`
	Seq     int64          `json:"seq,omitempty"`
	Total   int            `json:"total"`
	Failed  int            `json:"failed"`
	Results []ResultOutput `json:"results"`
}

// ResultOutput is the JSON form of a single result.
type ResultOutput struct {
	Index  int             `json:"index"`
	Name   string          `json:"name"`
	Input  json.RawMessage `json:"input"`
	Output json.RawMessage `json:"output,omitempty"`
	Error  *CLIError       `json:"error,omitempty"`
}

func newReportOutput(report *batch.Report, seq int64) (*ReportOutput, error) {
	out := &ReportOutput{
		RunID:   report.RunID,
		Fn:      report.Fn,
		Seq:     seq,
		Total:   len(report.Results),
		Failed:  report.Failed(),
		Results: make([]ResultOutput, 0, len(report.Results)),
	}
	for _, r := range report.Results {
		in, err := value.Marshal(r.Input)
		if err != nil {
			return nil, fmt.Errorf("result %d input: %w", r.Index, err)
		}
		ro := ResultOutput{Index: r.Index, Name: r.Name, Input: in}
		if r.OK() {
			o, err := value.Marshal(r.Output)
			if err != nil {
				return nil, fmt.Errorf("result %d output: %w", r.Index, err)
			}
			ro.Output = o
		} else {
			ro.Error = &CLIError{Code: r.ErrorCode, Message: r.Error}
		}
		out.Results = append(out.Results, ro)
	}
	return out, nil
}

// writeReportText renders a report as one header line and one line per
// result.
func writeReportText(w io.Writer, report *batch.Report) {
	fmt.Fprintf(w, "run %s (%s): %d inputs, %d failed\n", report.RunID, report.Fn, len(report.Results), report.Failed())
	for _, r := range report.Results {
		if r.OK() {
			fmt.Fprintf(w, "  ✓ %s: %s(%s) = %s\n", r.Name, report.Fn, value.Format(r.Input), value.Format(r.Output))
			continue
		}
		fmt.Fprintf(w, "  ✗ %s: %s(%s): %s [%s]\n", r.Name, report.Fn, value.Format(r.Input), r.Error, r.ErrorCode)
	}
}

func outputReport(formatter *OutputFormatter, report *batch.Report, seq int64) error {
	out, err := newReportOutput(report, seq)
	if err != nil {
		return err
	}
	return formatter.Success(out, func(w io.Writer) { writeReportText(w, report) })
}
