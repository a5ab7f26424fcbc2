package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writePredFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pred.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadPredictions(t *testing.T) {
	path := writePredFile(t, `
100 100 40 40 0.9 0.95 0.05
300 240 60 30 0.85 0.10 0.90
`)

	rows, width, err := readPredictions(path)
	if err != nil {
		t.Fatalf("readPredictions: %v", err)
	}
	if width != 7 {
		t.Errorf("width = %d, want 7", width)
	}
	if len(rows) != 14 {
		t.Errorf("len(rows) = %d, want 14", len(rows))
	}
	if rows[0] != 100 || rows[13] != 0.90 {
		t.Errorf("unexpected values: first %v, last %v", rows[0], rows[13])
	}
}

func TestReadPredictions_ColumnMismatch(t *testing.T) {
	path := writePredFile(t, "1 2 3 4 5 6\n1 2 3 4 5 6 7\n")

	if _, _, err := readPredictions(path); err == nil {
		t.Error("Expected error for ragged rows")
	}
}

func TestReadPredictions_TooFewColumns(t *testing.T) {
	path := writePredFile(t, "1 2 3 4 5\n")

	if _, _, err := readPredictions(path); err == nil {
		t.Error("Expected error for a 5-column row")
	}
}

func TestReadPredictions_BadNumber(t *testing.T) {
	path := writePredFile(t, "1 2 3 4 5 x\n")

	if _, _, err := readPredictions(path); err == nil {
		t.Error("Expected error for a non-numeric field")
	}
}

func TestReadPredictions_Empty(t *testing.T) {
	path := writePredFile(t, "\n\n")

	if _, _, err := readPredictions(path); err == nil {
		t.Error("Expected error for an empty file")
	}
}

func TestRunDetect(t *testing.T) {
	path := writePredFile(t, `
100 100 40 40 0.90 0.95 0.05
104 102 42 38 0.80 0.90 0.10
300 240 60 30 0.85 0.10 0.90
`)

	if err := runDetect([]string{path}); err != nil {
		t.Errorf("runDetect: %v", err)
	}
}

func TestRunDetect_BadClassFilter(t *testing.T) {
	path := writePredFile(t, "100 100 40 40 0.9 0.95 0.05\n")

	if err := runDetect([]string{"-classes", "a,b", path}); err == nil {
		t.Error("Expected error for a non-numeric class filter")
	}
}
