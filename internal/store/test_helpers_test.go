package store

import (
	"path/filepath"
	"testing"

	"github.com/sonphnt/mathjs/internal/batch"
	"github.com/sonphnt/mathjs/internal/value"
)

// createTestStore creates a new store in a temporary directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestReport creates a report with one success and one failure.
func createTestReport(runID string) *batch.Report {
	return &batch.Report{
		RunID: runID,
		Fn:    "exp",
		Results: []batch.Result{
			{Index: 0, Name: "zero", Input: value.Real(0), Output: value.Real(1)},
			{
				Index:     1,
				Name:      "text",
				Input:     value.String("abc"),
				ErrorCode: "UNSUPPORTED_TYPE",
				Error:     "Function exp(string) not supported",
			},
		},
	}
}
