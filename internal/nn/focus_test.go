package nn

import (
	"testing"

	"github.com/keel-ml/keel/internal/backend/cpu"
	"github.com/keel-ml/keel/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFocus_ForwardShape tests the space-to-depth shape contract.
func TestFocus_ForwardShape(t *testing.T) {
	backend := cpu.New()

	focus := NewFocus(3, 16, 1, 1, backend)
	input := tensor.Randn[float32](tensor.Shape{2, 3, 8, 8}, backend)
	output := focus.Forward(input)

	expected := tensor.Shape{2, 16, 4, 4}
	assert.True(t, output.Shape().Equal(expected),
		"expected %v, got %v", expected, output.Shape())
}

// TestFocus_PhaseOrdering tests the exact channel-group ordering of the
// regrouped pixels. The projection is forced to the identity (eye weight,
// fresh norm with zero shift) and all inputs sit in the activation's linear
// region, so the output is the raw regrouping up to the norm's epsilon.
func TestFocus_PhaseOrdering(t *testing.T) {
	backend := cpu.New()

	focus := NewFocus(1, 4, 1, 1, backend)
	weight := focus.conv.conv.weight.Tensor().Raw().AsFloat32() // shape (4, 4, 1, 1)
	for i := range weight {
		weight[i] = 0
	}
	for o := 0; o < 4; o++ {
		weight[o*4+o] = 1
	}

	// Value at (row, col) is 3 + row*4 + col; everything is >= 3, where the
	// hard-swish is (nearly) the identity.
	data := make([]float32, 16)
	for i := range data {
		data[i] = float32(3 + i)
	}
	input, err := tensor.FromSlice[float32](data, tensor.Shape{1, 1, 4, 4}, backend)
	require.NoError(t, err)

	output := focus.Forward(input)
	require.True(t, output.Shape().Equal(tensor.Shape{1, 4, 2, 2}))

	// Phase groups: (row 0, col 0), (row 1, col 0), (row 0, col 1),
	// (row 1, col 1), each scanned row-major.
	expected := []float32{
		3, 5, 11, 13,
		7, 9, 15, 17,
		4, 6, 12, 14,
		8, 10, 16, 18,
	}
	got := output.Data()
	for i, exp := range expected {
		assert.InDelta(t, exp, got[i], 1e-3, "channel group value %d", i)
	}
}

// TestFocus_OddSizePanics tests the even-size contract.
func TestFocus_OddSizePanics(t *testing.T) {
	backend := cpu.New()

	focus := NewFocus(1, 4, 1, 1, backend)
	input := tensor.Randn[float32](tensor.Shape{1, 1, 5, 4}, backend)

	assert.Panics(t, func() { focus.Forward(input) })
}
