package nn

import (
	"testing"

	"github.com/keel-ml/keel/internal/backend/cpu"
	"github.com/keel-ml/keel/internal/tensor"
	"github.com/stretchr/testify/assert"
)

// TestSequential_Chain tests a small backbone fragment end to end.
func TestSequential_Chain(t *testing.T) {
	backend := cpu.New()

	model := NewSequential[*cpu.CPUBackend](
		NewConv(3, 8, 3, 2, backend),
		NewBottleneck(8, 8, true, 1, 0.5, backend),
		NewSPP(8, 16, DefaultSPPKernels(), backend),
	)
	assert.Equal(t, 3, model.Len())

	input := tensor.Randn[float32](tensor.Shape{1, 3, 32, 32}, backend)
	output := model.Forward(input)

	expected := tensor.Shape{1, 16, 16, 16}
	assert.True(t, output.Shape().Equal(expected),
		"expected %v, got %v", expected, output.Shape())
}

// TestSequential_Parameters tests aggregation across modules, including
// parameter-free ones.
func TestSequential_Parameters(t *testing.T) {
	backend := cpu.New()

	model := NewSequential[*cpu.CPUBackend](
		NewConv(3, 8, 1, 1, backend),
		NewReLU[*cpu.CPUBackend](),
		NewConv(8, 8, 1, 1, backend),
	)

	assert.Len(t, model.Parameters(), 6)
}

// TestSequential_Empty tests the empty container's pass-through.
func TestSequential_Empty(t *testing.T) {
	backend := cpu.New()

	model := NewSequential[*cpu.CPUBackend]()
	input := tensor.Randn[float32](tensor.Shape{1, 2, 2, 2}, backend)

	assert.Same(t, input, model.Forward(input))
}
