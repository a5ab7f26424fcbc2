package nn

import (
	"testing"

	"github.com/keel-ml/keel/internal/backend/cpu"
	"github.com/keel-ml/keel/internal/tensor"
	"github.com/stretchr/testify/assert"
)

// TestAutopad tests the same-size padding rule.
func TestAutopad(t *testing.T) {
	tests := []struct {
		kernel, pad int
		expected    int
	}{
		{1, -1, 0},
		{3, -1, 1},
		{5, -1, 2},
		{7, -1, 3},
		{3, 0, 0},  // explicit padding wins
		{5, 1, 1},  // explicit padding wins
		{13, -1, 6},
	}

	for _, tt := range tests {
		got := autopad(tt.kernel, tt.pad)
		if got != tt.expected {
			t.Errorf("autopad(%d, %d): expected %d, got %d", tt.kernel, tt.pad, tt.expected, got)
		}
	}
}

// TestConv_ForwardShape tests the fused block's downsampling shape math.
func TestConv_ForwardShape(t *testing.T) {
	backend := cpu.New()

	// 3 -> 16 channels, 3x3 kernel, stride 2, autopad 1
	conv := NewConv(3, 16, 3, 2, backend)

	input := tensor.Randn[float32](tensor.Shape{1, 3, 64, 64}, backend)
	output := conv.Forward(input)

	// out = (64 + 2*1 - 3)/2 + 1 = 32
	expected := tensor.Shape{1, 16, 32, 32}
	assert.True(t, output.Shape().Equal(expected),
		"expected %v, got %v", expected, output.Shape())
	assert.Equal(t, 16, conv.OutChannels())
}

// TestConv_FullResolutionStem tests the standard first-stage geometry on a
// full detector input: 640x640 RGB halved to a 16-channel 320x320 map.
func TestConv_FullResolutionStem(t *testing.T) {
	backend := cpu.New()

	conv := NewConv(3, 16, 3, 2, backend)

	input := tensor.Randn[float32](tensor.Shape{1, 3, 640, 640}, backend)
	output := conv.Forward(input)

	expected := tensor.Shape{1, 16, 320, 320}
	assert.True(t, output.Shape().Equal(expected),
		"expected %v, got %v", expected, output.Shape())
}

// TestConv_StrideOnePreservesSize tests that autopad keeps spatial size at
// stride 1.
func TestConv_StrideOnePreservesSize(t *testing.T) {
	backend := cpu.New()

	for _, k := range []int{1, 3, 5} {
		conv := NewConv(4, 4, k, 1, backend)
		input := tensor.Randn[float32](tensor.Shape{2, 4, 9, 11}, backend)
		output := conv.Forward(input)

		assert.True(t, output.Shape().Equal(input.Shape()),
			"kernel %d: expected %v, got %v", k, input.Shape(), output.Shape())
	}
}

// TestConv_FuseForwardShape tests that the fused path produces the same shape
// as the normalized path.
func TestConv_FuseForwardShape(t *testing.T) {
	backend := cpu.New()

	conv := NewConv(3, 8, 3, 2, backend)
	input := tensor.Randn[float32](tensor.Shape{1, 3, 16, 16}, backend)

	normal := conv.Forward(input)
	fused := conv.FuseForward(input)

	assert.True(t, fused.Shape().Equal(normal.Shape()))
}

// TestConv_NoActivation tests that disabling the activation leaves negative
// normalized values in place.
func TestConv_NoActivation(t *testing.T) {
	backend := cpu.New()

	conv := NewConvFull(2, 4, 3, 3, 1, -1, -1, 1, false, backend)
	input := tensor.Randn[float32](tensor.Shape{1, 2, 8, 8}, backend)
	output := conv.Forward(input)

	hasNegative := false
	for _, v := range output.Data() {
		if v < 0 {
			hasNegative = true
			break
		}
	}
	assert.True(t, hasNegative, "unactivated output should contain negative values")
}

// TestConv_Parameters tests the parameter set: conv weight plus norm gamma
// and beta.
func TestConv_Parameters(t *testing.T) {
	backend := cpu.New()

	conv := NewConv(3, 8, 1, 1, backend)
	params := conv.Parameters()
	assert.Len(t, params, 3)
}

// TestDWConv_Grouping tests the depthwise variant on channel counts whose
// gcd is neither 1 nor c1.
func TestDWConv_Grouping(t *testing.T) {
	backend := cpu.New()

	// gcd(4, 8) = 4 groups
	conv := NewDWConv(4, 8, 3, 1, true, backend)
	input := tensor.Randn[float32](tensor.Shape{1, 4, 8, 8}, backend)
	output := conv.Forward(input)

	expected := tensor.Shape{1, 8, 8, 8}
	assert.True(t, output.Shape().Equal(expected),
		"expected %v, got %v", expected, output.Shape())
}

// TestConv_InputChannelMismatchPanics tests the shape contract.
func TestConv_InputChannelMismatchPanics(t *testing.T) {
	backend := cpu.New()

	conv := NewConv(3, 8, 3, 1, backend)
	input := tensor.Randn[float32](tensor.Shape{1, 4, 8, 8}, backend)

	assert.Panics(t, func() { conv.Forward(input) })
}
