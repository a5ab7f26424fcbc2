package cpu

import (
	"testing"

	"github.com/keel-ml/keel/internal/tensor"
)

func TestSum(t *testing.T) {
	backend := New()

	input := rawFrom(t, tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6})
	result := backend.Sum(input)

	if !result.Shape().Equal(tensor.Shape{1}) {
		t.Fatalf("Sum shape: expected [1], got %v", result.Shape())
	}
	assertValues(t, result, []float32{21})
}

func TestSumDim(t *testing.T) {
	backend := New()

	input := rawFrom(t, tensor.Shape{2, 3}, []float32{
		1, 2, 3,
		4, 5, 6,
	})

	rows := backend.SumDim(input, 0, false)
	if !rows.Shape().Equal(tensor.Shape{3}) {
		t.Fatalf("SumDim shape: expected [3], got %v", rows.Shape())
	}
	assertValues(t, rows, []float32{5, 7, 9})

	cols := backend.SumDim(input, 1, true)
	if !cols.Shape().Equal(tensor.Shape{2, 1}) {
		t.Fatalf("SumDim shape: expected [2 1], got %v", cols.Shape())
	}
	assertValues(t, cols, []float32{6, 15})
}

func TestMeanDim(t *testing.T) {
	backend := New()

	input := rawFrom(t, tensor.Shape{1, 2, 2, 2}, []float32{
		1, 2, 3, 4, // channel 0
		5, 6, 7, 8, // channel 1
	})

	// Global average pooling: mean over width, then height, keeping dims.
	pooled := backend.MeanDim(backend.MeanDim(input, 3, true), 2, true)
	if !pooled.Shape().Equal(tensor.Shape{1, 2, 1, 1}) {
		t.Fatalf("MeanDim shape: expected [1 2 1 1], got %v", pooled.Shape())
	}
	assertValues(t, pooled, []float32{2.5, 6.5})
}

func TestMaxDim(t *testing.T) {
	backend := New()

	input := rawFrom(t, tensor.Shape{1, 2, 2, 2}, []float32{
		1, 8, 3, 4,
		-5, -6, -7, -8,
	})

	// Channel-wise max as used by spatial attention.
	result := backend.MaxDim(input, 1, true)
	if !result.Shape().Equal(tensor.Shape{1, 1, 2, 2}) {
		t.Fatalf("MaxDim shape: expected [1 1 2 2], got %v", result.Shape())
	}
	assertValues(t, result, []float32{1, 8, 3, 4})
}

func TestMaxDim_AllNegative(t *testing.T) {
	backend := New()

	input := rawFrom(t, tensor.Shape{3}, []float32{-3, -1, -2})
	result := backend.MaxDim(input, 0, false)

	if !result.Shape().Equal(tensor.Shape{1}) {
		t.Fatalf("MaxDim shape: expected [1], got %v", result.Shape())
	}
	assertValues(t, result, []float32{-1})
}

func TestReduce_NegativeDim(t *testing.T) {
	backend := New()

	input := rawFrom(t, tensor.Shape{2, 3}, []float32{
		1, 2, 3,
		4, 5, 6,
	})

	result := backend.SumDim(input, -1, false)
	if !result.Shape().Equal(tensor.Shape{2}) {
		t.Fatalf("SumDim shape: expected [2], got %v", result.Shape())
	}
	assertValues(t, result, []float32{6, 15})
}

func TestReduce_OutOfRangePanics(t *testing.T) {
	backend := New()
	input := rawFrom(t, tensor.Shape{2, 3}, make([]float32, 6))

	defer func() {
		if recover() == nil {
			t.Error("Expected panic for axis out of range")
		}
	}()
	backend.SumDim(input, 2, false)
}
