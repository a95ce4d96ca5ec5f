package store

import (
	"context"
	"fmt"

	"github.com/sonphnt/mathjs/internal/batch"
	"github.com/sonphnt/mathjs/internal/value"
)

// WriteReport journals a batch run and all of its results in a single
// transaction, stamping the run with the next logical sequence number.
// It returns that sequence number.
//
// Writing a run ID twice returns ErrRunExists and leaves the journal
// unchanged.
func (s *Store) WriteReport(ctx context.Context, report *batch.Report) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("write report: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(created_seq), 0) + 1 FROM runs`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("write report: next seq: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, fn, created_seq)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, report.RunID, report.Fn, seq)
	if err != nil {
		return 0, fmt.Errorf("write report: insert run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("write report: rows affected: %w", err)
	}
	if n == 0 {
		return 0, fmt.Errorf("write report %s: %w", report.RunID, ErrRunExists)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO results
		(run_id, idx, name, input, input_hash, output, error_code, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("write report: prepare: %w", err)
	}
	defer stmt.Close()

	for _, r := range report.Results {
		input, err := marshalValue(r.Input)
		if err != nil {
			return 0, fmt.Errorf("write report: result %d input: %w", r.Index, err)
		}
		hash, err := value.Hash(r.Input)
		if err != nil {
			return 0, fmt.Errorf("write report: result %d input: %w", r.Index, err)
		}
		output, err := marshalOptional(r.Output)
		if err != nil {
			return 0, fmt.Errorf("write report: result %d output: %w", r.Index, err)
		}

		if _, err := stmt.ExecContext(ctx,
			report.RunID,
			r.Index,
			r.Name,
			input,
			hash,
			output,
			nullable(r.ErrorCode),
			nullable(r.Error),
		); err != nil {
			return 0, fmt.Errorf("write report: result %d: %w", r.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("write report: commit: %w", err)
	}
	return seq, nil
}
