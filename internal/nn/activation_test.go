package nn

import (
	"testing"

	"github.com/keel-ml/keel/internal/backend/cpu"
	"github.com/keel-ml/keel/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fromValues(t *testing.T, backend *cpu.CPUBackend, values []float32) *tensor.Tensor[float32, *cpu.CPUBackend] {
	t.Helper()
	x, err := tensor.FromSlice[float32](values, tensor.Shape{len(values)}, backend)
	require.NoError(t, err)
	return x
}

// TestReLU_Values tests the clamp at zero.
func TestReLU_Values(t *testing.T) {
	backend := cpu.New()
	input := fromValues(t, backend, []float32{-2, -0.5, 0, 0.5, 2})

	output := NewReLU[*cpu.CPUBackend]().Forward(input)

	assert.Equal(t, []float32{0, 0, 0, 0.5, 2}, output.Data())
}

// TestLeakyReLU_Values tests the negative slope.
func TestLeakyReLU_Values(t *testing.T) {
	backend := cpu.New()
	input := fromValues(t, backend, []float32{-2, -1, 0, 1, 2})

	output := NewLeakyReLU[*cpu.CPUBackend](0.1).Forward(input)

	expected := []float32{-0.2, -0.1, 0, 1, 2}
	got := output.Data()
	for i, exp := range expected {
		assert.InDelta(t, exp, got[i], 1e-6, "index %d", i)
	}
}

// TestSigmoid_Values tests midpoint and symmetry.
func TestSigmoid_Values(t *testing.T) {
	backend := cpu.New()
	input := fromValues(t, backend, []float32{-2, 0, 2})

	output := NewSigmoid[*cpu.CPUBackend]().Forward(input)
	got := output.Data()

	assert.InDelta(t, 0.5, got[1], 1e-6)
	assert.InDelta(t, 1.0, got[0]+got[2], 1e-6, "sigmoid(-x) + sigmoid(x) = 1")
	assertGate(t, output)
}

// TestHardswish_Values tests the three pieces: zero below -3, identity above
// 3, x*(x+3)/6 in between.
func TestHardswish_Values(t *testing.T) {
	backend := cpu.New()
	input := fromValues(t, backend, []float32{-5, -3, -1, 0, 1, 3, 5})

	output := NewHardswish[*cpu.CPUBackend]().Forward(input)

	expected := []float32{0, 0, -1.0 / 3.0, 0, 4.0 / 6.0, 3, 5}
	got := output.Data()
	for i, exp := range expected {
		assert.InDelta(t, exp, got[i], 1e-6, "index %d", i)
	}
}

// TestActivation_DoesNotMutateInput tests that activations allocate rather
// than writing through the input buffer.
func TestActivation_DoesNotMutateInput(t *testing.T) {
	backend := cpu.New()
	input := fromValues(t, backend, []float32{-2, -1, 1, 2})
	original := append([]float32(nil), input.Data()...)

	NewReLU[*cpu.CPUBackend]().Forward(input)

	assert.Equal(t, original, input.Data())
}
