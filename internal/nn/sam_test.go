package nn

import (
	"testing"

	"github.com/keel-ml/keel/internal/backend/cpu"
	"github.com/keel-ml/keel/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSAM_GateShape tests that the height/width interaction produces a full
// (n, c, h, w) gate on a non-square input.
func TestSAM_GateShape(t *testing.T) {
	backend := cpu.New()

	sam := NewSAM(8, 4, 6, backend)
	input := tensor.Randn[float32](tensor.Shape{2, 8, 4, 6}, backend)
	gate := sam.Forward(input)

	expected := tensor.Shape{2, 8, 4, 6}
	assert.True(t, gate.Shape().Equal(expected),
		"expected %v, got %v", expected, gate.Shape())
	assertGate(t, gate)
}

// TestSAM_SizeMismatchPanics tests the fixed-size binding.
func TestSAM_SizeMismatchPanics(t *testing.T) {
	backend := cpu.New()

	sam := NewSAM(8, 4, 4, backend)
	input := tensor.Randn[float32](tensor.Shape{1, 8, 4, 6}, backend)

	assert.Panics(t, func() { sam.Forward(input) })
}

// TestSAM_Parameters tests that both projections carry weight and bias.
func TestSAM_Parameters(t *testing.T) {
	backend := cpu.New()

	sam := NewSAM(8, 4, 6, backend)
	assert.Len(t, sam.Parameters(), 4)
}

// TestDAM_PreservesShape tests the dual gate composition.
func TestDAM_PreservesShape(t *testing.T) {
	backend := cpu.New()

	dam := NewDAM(16, 4, 4, backend)
	input := tensor.Randn[float32](tensor.Shape{2, 16, 4, 4}, backend)
	output := dam.Forward(input)

	assert.True(t, output.Shape().Equal(input.Shape()))
}

// TestBDAM_WindowSize tests the derived window edge.
func TestBDAM_WindowSize(t *testing.T) {
	backend := cpu.New()

	tests := []struct {
		height, width int
		expected      int
	}{
		{8, 8, 2},
		{16, 16, 4},
		{12, 8, 2},  // min of the two quarters
		{32, 16, 4},
	}

	for _, tt := range tests {
		b := NewBDAM(16, tt.height, tt.width, backend)
		assert.Equal(t, tt.expected, b.WindowSize(),
			"height=%d width=%d", tt.height, tt.width)
	}
}

// TestBDAM_PreservesShape tests partition -> gate -> reverse on a non-square
// map.
func TestBDAM_PreservesShape(t *testing.T) {
	backend := cpu.New()

	bdam := NewBDAM(16, 8, 12, backend)
	require.Equal(t, 2, bdam.WindowSize())

	input := tensor.Randn[float32](tensor.Shape{2, 16, 8, 12}, backend)
	output := bdam.Forward(input)

	assert.True(t, output.Shape().Equal(input.Shape()))
}

// TestBDAM_FullResolution tests the block at a realistic deep-feature size:
// 256 planes on a 64x64 map, where the derived window edge is 16 and the
// ratio-16 channel squeeze runs at full width.
func TestBDAM_FullResolution(t *testing.T) {
	backend := cpu.New()

	bdam := NewBDAM(256, 64, 64, backend)
	require.Equal(t, 16, bdam.WindowSize())

	input := tensor.Randn[float32](tensor.Shape{4, 256, 64, 64}, backend)
	output := bdam.Forward(input)

	expected := tensor.Shape{4, 256, 64, 64}
	assert.True(t, output.Shape().Equal(expected),
		"expected %v, got %v", expected, output.Shape())
}

// TestBDAM_TooSmallPanics tests the minimum-size contract.
func TestBDAM_TooSmallPanics(t *testing.T) {
	backend := cpu.New()
	assert.Panics(t, func() { NewBDAM(16, 2, 2, backend) })
}

// TestBDAM_SizeMismatchPanics tests the fixed-size binding.
func TestBDAM_SizeMismatchPanics(t *testing.T) {
	backend := cpu.New()

	bdam := NewBDAM(16, 8, 8, backend)
	input := tensor.Randn[float32](tensor.Shape{1, 16, 8, 12}, backend)

	assert.Panics(t, func() { bdam.Forward(input) })
}
