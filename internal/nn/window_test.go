package nn

import (
	"testing"

	"github.com/keel-ml/keel/internal/backend/cpu"
	"github.com/keel-ml/keel/internal/tensor"
)

// TestWindowPartition_Content tests exact window extraction ordering.
func TestWindowPartition_Content(t *testing.T) {
	backend := cpu.New()

	data := make([]float32, 16)
	for i := range data {
		data[i] = float32(i)
	}
	input, err := tensor.FromSlice[float32](data, tensor.Shape{1, 1, 4, 4}, backend)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}

	windows := WindowPartition(input, 2)

	expectedShape := tensor.Shape{4, 1, 2, 2}
	if !windows.Shape().Equal(expectedShape) {
		t.Fatalf("Window shape: expected %v, got %v", expectedShape, windows.Shape())
	}

	// Row-major window order: top-left, top-right, bottom-left, bottom-right.
	expected := []float32{
		0, 1, 4, 5,
		2, 3, 6, 7,
		8, 9, 12, 13,
		10, 11, 14, 15,
	}
	got := windows.Data()
	for i, exp := range expected {
		if got[i] != exp {
			t.Errorf("Window data[%d]: expected %.0f, got %.0f", i, exp, got[i])
		}
	}
}

// TestWindowRoundTrip tests that reverse(partition(x)) == x exactly.
func TestWindowRoundTrip(t *testing.T) {
	backend := cpu.New()

	input := tensor.Randn[float32](tensor.Shape{2, 3, 6, 8}, backend)
	original := append([]float32(nil), input.Data()...)

	windows := WindowPartition(input, 2)
	expectedShape := tensor.Shape{2 * 3 * 4, 3, 2, 2}
	if !windows.Shape().Equal(expectedShape) {
		t.Fatalf("Window shape: expected %v, got %v", expectedShape, windows.Shape())
	}

	restored := WindowReverse(windows, 2, 6, 8)
	if !restored.Shape().Equal(input.Shape()) {
		t.Fatalf("Restored shape: expected %v, got %v", input.Shape(), restored.Shape())
	}

	got := restored.Data()
	for i, exp := range original {
		if got[i] != exp {
			t.Fatalf("Restored data[%d]: expected %v, got %v", i, exp, got[i])
		}
	}
}

// TestWindowPartition_IndivisiblePanics tests the divisibility contract.
func TestWindowPartition_IndivisiblePanics(t *testing.T) {
	backend := cpu.New()
	input := tensor.Randn[float32](tensor.Shape{1, 1, 6, 6}, backend)

	defer func() {
		if recover() == nil {
			t.Error("Expected panic for indivisible window size")
		}
	}()
	WindowPartition(input, 4)
}

// TestWindowReverse_CountMismatchPanics tests the tiling contract.
func TestWindowReverse_CountMismatchPanics(t *testing.T) {
	backend := cpu.New()
	windows := tensor.Randn[float32](tensor.Shape{3, 1, 2, 2}, backend)

	defer func() {
		if recover() == nil {
			t.Error("Expected panic for window count mismatch")
		}
	}()
	WindowReverse(windows, 2, 4, 4)
}
