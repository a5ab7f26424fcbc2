package nn

import (
	"math"
	"testing"

	"github.com/keel-ml/keel/internal/backend/cpu"
	"github.com/keel-ml/keel/internal/tensor"
)

// TestBatchNorm2d_IdentityInit tests that a fresh layer is (up to eps) the
// identity: mean 0, variance 1, scale 1, shift 0.
func TestBatchNorm2d_IdentityInit(t *testing.T) {
	backend := cpu.New()

	bn := NewBatchNorm2d(3, backend)
	input := tensor.Randn[float32](tensor.Shape{2, 3, 4, 4}, backend)
	original := append([]float32(nil), input.Data()...)

	output := bn.Forward(input)

	if !output.Shape().Equal(input.Shape()) {
		t.Fatalf("Output shape: expected %v, got %v", input.Shape(), output.Shape())
	}
	got := output.Data()
	for i, exp := range original {
		if math.Abs(float64(got[i]-exp)) > 1e-4 {
			t.Fatalf("Output[%d]: expected ~%v, got %v", i, exp, got[i])
		}
	}
}

// TestBatchNorm2d_Statistics tests normalization against hand-set running
// statistics and affine parameters.
func TestBatchNorm2d_Statistics(t *testing.T) {
	backend := cpu.New()

	bn := NewBatchNorm2d(2, backend)

	// channel 0: mean 1, var 4 -> (x-1)/2; channel 1: mean -2, var 1 -> x+2
	mean := bn.RunningMean().Raw().AsFloat32()
	mean[0], mean[1] = 1, -2
	variance := bn.RunningVar().Raw().AsFloat32()
	variance[0], variance[1] = 4, 1

	// gamma doubles channel 1, beta lifts channel 0 by 10
	gamma := bn.weight.Tensor().Raw().AsFloat32()
	gamma[1] = 2
	beta := bn.bias.Tensor().Raw().AsFloat32()
	beta[0] = 10

	input, err := tensor.FromSlice[float32](
		[]float32{3, 5, -1, 0},
		tensor.Shape{1, 2, 2, 1}, backend)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}

	output := bn.Forward(input)

	// channel 0: (3-1)/2 + 10 = 11, (5-1)/2 + 10 = 12
	// channel 1: 2*(-1+2) = 2, 2*(0+2) = 4
	expected := []float32{11, 12, 2, 4}
	got := output.Data()
	for i, exp := range expected {
		if math.Abs(float64(got[i]-exp)) > 1e-3 {
			t.Errorf("Output[%d]: expected %v, got %v", i, exp, got[i])
		}
	}
}

// TestBatchNorm2d_DoesNotMutateState tests that Forward leaves parameters
// and running statistics untouched.
func TestBatchNorm2d_DoesNotMutateState(t *testing.T) {
	backend := cpu.New()

	bn := NewBatchNorm2d(4, backend)
	input := tensor.Randn[float32](tensor.Shape{1, 4, 3, 3}, backend)

	bn.Forward(input)
	bn.Forward(input)

	for i, v := range bn.weight.Tensor().Data() {
		if v != 1 {
			t.Errorf("gamma[%d] mutated: %v", i, v)
		}
	}
	for i, v := range bn.bias.Tensor().Data() {
		if v != 0 {
			t.Errorf("beta[%d] mutated: %v", i, v)
		}
	}
	for i, v := range bn.RunningVar().Data() {
		if v != 1 {
			t.Errorf("running var[%d] mutated: %v", i, v)
		}
	}
}

// TestBatchNorm2d_ChannelMismatchPanics tests the shape contract.
func TestBatchNorm2d_ChannelMismatchPanics(t *testing.T) {
	backend := cpu.New()

	bn := NewBatchNorm2d(3, backend)
	input := tensor.Randn[float32](tensor.Shape{1, 4, 2, 2}, backend)

	defer func() {
		if recover() == nil {
			t.Error("Expected panic for channel mismatch")
		}
	}()
	bn.Forward(input)
}
