package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sonphnt/mathjs/internal/batch"
	"github.com/sonphnt/mathjs/internal/value"
)

// RunSummary describes a journaled run without its results.
type RunSummary struct {
	ID     string `json:"id"`
	Fn     string `json:"fn"`
	Seq    int64  `json:"seq"`
	Inputs int    `json:"inputs"`
	Failed int    `json:"failed"`
}

// ListRuns returns every journaled run ordered by sequence number.
// Returns an empty slice (not nil) for an empty journal.
func (s *Store) ListRuns(ctx context.Context) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.fn, r.created_seq,
		       COUNT(res.idx),
		       COUNT(res.error_code)
		FROM runs r
		LEFT JOIN results res ON res.run_id = r.id
		GROUP BY r.id
		ORDER BY r.created_seq ASC, r.id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []RunSummary{}
	for rows.Next() {
		var rs RunSummary
		if err := rows.Scan(&rs.ID, &rs.Fn, &rs.Seq, &rs.Inputs, &rs.Failed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, rs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ReadRun rebuilds the report of a journaled run, results in input order.
// Returns ErrRunNotFound if runID is unknown.
func (s *Store) ReadRun(ctx context.Context, runID string) (*batch.Report, error) {
	report := &batch.Report{RunID: runID}
	err := s.db.QueryRowContext(ctx, `SELECT fn FROM runs WHERE id = ?`, runID).Scan(&report.Fn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("read run %s: %w", runID, ErrRunNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read run %s: %w", runID, err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT idx, name, input, output, error_code, error_message
		FROM results
		WHERE run_id = ?
		ORDER BY idx ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	report.Results = []batch.Result{}
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		report.Results = append(report.Results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return report, nil
}

// LookupOutput returns the output of the most recent successful evaluation
// of fn on an input equal to v. The bool is false when there is none.
func (s *Store) LookupOutput(ctx context.Context, fn string, v value.Value) (value.Value, bool, error) {
	hash, err := value.Hash(v)
	if err != nil {
		return nil, false, fmt.Errorf("lookup output: %w", err)
	}

	var output string
	err = s.db.QueryRowContext(ctx, `
		SELECT res.output
		FROM results res
		JOIN runs r ON r.id = res.run_id
		WHERE res.input_hash = ? AND r.fn = ? AND res.output IS NOT NULL
		ORDER BY r.created_seq DESC, res.idx DESC
		LIMIT 1
	`, hash, fn).Scan(&output)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("lookup output: %w", err)
	}

	out, err := unmarshalValue(output)
	if err != nil {
		return nil, false, fmt.Errorf("lookup output: %w", err)
	}
	return out, true, nil
}

func scanResult(rows *sql.Rows) (batch.Result, error) {
	var (
		r                       batch.Result
		input                   string
		output, code, errorText sql.NullString
	)
	if err := rows.Scan(&r.Index, &r.Name, &input, &output, &code, &errorText); err != nil {
		return batch.Result{}, fmt.Errorf("scan result: %w", err)
	}

	in, err := unmarshalValue(input)
	if err != nil {
		return batch.Result{}, fmt.Errorf("result %d input: %w", r.Index, err)
	}
	r.Input = in

	if output.Valid {
		out, err := unmarshalValue(output.String)
		if err != nil {
			return batch.Result{}, fmt.Errorf("result %d output: %w", r.Index, err)
		}
		r.Output = out
	}
	r.ErrorCode = code.String
	r.Error = errorText.String
	return r, nil
}
