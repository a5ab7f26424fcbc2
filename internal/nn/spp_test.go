package nn

import (
	"testing"

	"github.com/keel-ml/keel/internal/backend/cpu"
	"github.com/keel-ml/keel/internal/tensor"
	"github.com/stretchr/testify/assert"
)

// TestSPP_ForwardShape tests that pyramid pooling preserves spatial size and
// projects to the target channel count.
func TestSPP_ForwardShape(t *testing.T) {
	backend := cpu.New()

	spp := NewSPP(8, 16, DefaultSPPKernels(), backend)
	input := tensor.Randn[float32](tensor.Shape{1, 8, 16, 16}, backend)
	output := spp.Forward(input)

	expected := tensor.Shape{1, 16, 16, 16}
	assert.True(t, output.Shape().Equal(expected),
		"expected %v, got %v", expected, output.Shape())
	assert.Equal(t, 16, spp.OutChannels())
}

// TestSPP_SingleKernel tests the degenerate one-level pyramid.
func TestSPP_SingleKernel(t *testing.T) {
	backend := cpu.New()

	spp := NewSPP(4, 4, []int{3}, backend)
	input := tensor.Randn[float32](tensor.Shape{2, 4, 7, 9}, backend)
	output := spp.Forward(input)

	expected := tensor.Shape{2, 4, 7, 9}
	assert.True(t, output.Shape().Equal(expected),
		"expected %v, got %v", expected, output.Shape())
}

// TestSPP_InvalidKernels tests construction contracts.
func TestSPP_InvalidKernels(t *testing.T) {
	backend := cpu.New()

	assert.Panics(t, func() { NewSPP(8, 8, nil, backend) })
	assert.Panics(t, func() { NewSPP(8, 8, []int{4}, backend) }, "even kernel cannot preserve size")
	assert.Panics(t, func() { NewSPP(1, 8, []int{5}, backend) }, "one channel cannot be halved")
}

// TestMaxPool2D_Values tests the pooling module against a hand-computed map.
func TestMaxPool2D_Values(t *testing.T) {
	backend := cpu.New()

	pool := NewMaxPool2D[*cpu.CPUBackend](2, 2, 0)

	data := []float32{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	}
	input, err := tensor.FromSlice[float32](data, tensor.Shape{1, 1, 4, 4}, backend)
	assert.NoError(t, err)

	output := pool.Forward(input)
	assert.True(t, output.Shape().Equal(tensor.Shape{1, 1, 2, 2}))
	assert.Equal(t, []float32{6, 8, 14, 16}, output.Data())
}

// TestMaxPool2D_SamePadding tests the stride-1 size-preserving form used by
// the pyramid.
func TestMaxPool2D_SamePadding(t *testing.T) {
	backend := cpu.New()

	pool := NewMaxPool2D[*cpu.CPUBackend](5, 1, 2)
	input := tensor.Randn[float32](tensor.Shape{1, 3, 10, 10}, backend)
	output := pool.Forward(input)

	assert.True(t, output.Shape().Equal(input.Shape()))
}
