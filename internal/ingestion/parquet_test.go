package ingestion

import "testing"

func TestColumnLengthsMatch(t *testing.T) {
	if err := columnLengthsMatch(100, 100, 100, 100, 100, 100, 100, 100); err != nil {
		t.Errorf("equal lengths rejected: %v", err)
	}
	if err := columnLengthsMatch(0, 0, 0); err != nil {
		t.Errorf("empty columns rejected: %v", err)
	}
	// A short column read must surface as an error, never as a silently
	// truncated table.
	if err := columnLengthsMatch(100, 100, 99, 100, 100, 100, 100, 100); err == nil {
		t.Error("expected error for mismatched column lengths")
	}
}
