package nn

import (
	"fmt"

	"github.com/keel-ml/keel/internal/tensor"
)

// attentionRatio is the channel squeeze factor used by the dual attention
// blocks.
const attentionRatio = 16

// SAM produces a structured spatial gate of shape (n, c, h, w) from the
// interaction of a height view and a width view of the input.
//
// The input is transposed so that height (then width) takes the channel
// position, each view is projected by a biased 1x1 convolution back to the
// channel width, and the batched product of the two projections scores every
// (channel, row, column) cell. Unlike the other gates, SAM is bound to a
// fixed spatial size at construction.
type SAM[B tensor.Backend] struct {
	ham    *Conv2d[B]
	wam    *Conv2d[B]
	height int
	width  int
}

// NewSAM creates a structured gate for inputs of exactly
// (n, inChannels, height, width).
func NewSAM[B tensor.Backend](inChannels, height, width int, backend B) *SAM[B] {
	return &SAM[B]{
		ham:    NewConv2d(height, inChannels, 1, 1, 1, 0, 0, 1, true, backend),
		wam:    NewConv2d(width, inChannels, 1, 1, 1, 0, 0, 1, true, backend),
		height: height,
		width:  width,
	}
}

// Forward returns the gate, not the gated input.
func (s *SAM[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	shape := input.Shape()
	if len(shape) != 4 {
		panic(fmt.Sprintf("sam: expected 4D input, got %dD", len(shape)))
	}
	if shape[2] != s.height || shape[3] != s.width {
		panic(fmt.Sprintf("sam: input spatial size (%d, %d) does not match bound size (%d, %d)",
			shape[2], shape[3], s.height, s.width))
	}

	// (n, c, h, w) -> (n, h, c, w): height becomes the channel axis.
	xh := input.Permute(0, 2, 1, 3)
	// (n, c, h, w) -> (n, w, h, c): width becomes the channel axis.
	xw := input.Permute(0, 3, 2, 1)

	yh := s.ham.Forward(xh) // (n, c, c, w) projected over height
	yw := s.wam.Forward(xw) // (n, c, h, c) projected over width
	return yw.BatchMatMul(yh).Sigmoid()
}

// Parameters returns both projection weights and biases.
func (s *SAM[B]) Parameters() []*Parameter[B] {
	params := s.ham.Parameters()
	return append(params, s.wam.Parameters()...)
}

// DAM is the dual attention block: a channel gate followed by a structured
// spatial gate, each computed from the map it modulates. Like SAM it is bound
// to a fixed spatial size.
type DAM[B tensor.Backend] struct {
	ca *ChannelAttention[B]
	sa *SAM[B]
}

// NewDAM creates a dual attention block for inputs of exactly
// (n, inPlanes, height, width).
func NewDAM[B tensor.Backend](inPlanes, height, width int, backend B) *DAM[B] {
	return &DAM[B]{
		ca: NewChannelAttention(inPlanes, attentionRatio, backend),
		sa: NewSAM(inPlanes, height, width, backend),
	}
}

// Forward gates the input twice; the output shape equals the input shape.
func (d *DAM[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	gated := input.Mul(d.ca.Forward(input))
	return gated.Mul(d.sa.Forward(gated))
}

// Parameters returns both gates' parameters.
func (d *DAM[B]) Parameters() []*Parameter[B] {
	params := d.ca.Parameters()
	return append(params, d.sa.Parameters()...)
}

// BDAM applies dual attention within non-overlapping square windows, which
// keeps the structured gate's size-bound weights small and the batched
// product cheap on large feature maps.
//
// The window size is min(width/4, height/4); both spatial extents must be
// divisible by it.
type BDAM[B tensor.Backend] struct {
	dam    *DAM[B]
	window int
	height int
	width  int
}

// NewBDAM creates a windowed dual attention block for inputs of exactly
// (n, inPlanes, height, width).
func NewBDAM[B tensor.Backend](inPlanes, height, width int, backend B) *BDAM[B] {
	ws := min(width/4, height/4)
	if ws < 1 {
		panic(fmt.Sprintf("bdam: spatial size (%d, %d) too small to window", height, width))
	}
	if height%ws != 0 || width%ws != 0 {
		panic(fmt.Sprintf("bdam: spatial size (%d, %d) not divisible by window %d", height, width, ws))
	}
	return &BDAM[B]{
		dam:    NewDAM(inPlanes, ws, ws, backend),
		window: ws,
		height: height,
		width:  width,
	}
}

// WindowSize reports the derived window edge length.
func (b *BDAM[B]) WindowSize() int {
	return b.window
}

// Forward partitions, gates each window, and reassembles; the output shape
// equals the input shape.
func (b *BDAM[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	shape := input.Shape()
	if len(shape) != 4 || shape[2] != b.height || shape[3] != b.width {
		panic(fmt.Sprintf("bdam: input shape %v does not match bound size (%d, %d)",
			shape, b.height, b.width))
	}
	windows := WindowPartition(input, b.window)
	return WindowReverse(b.dam.Forward(windows), b.window, b.height, b.width)
}

// Parameters returns the windowed block's parameters.
func (b *BDAM[B]) Parameters() []*Parameter[B] {
	return b.dam.Parameters()
}
