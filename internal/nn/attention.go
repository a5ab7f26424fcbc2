package nn

import (
	"fmt"

	"github.com/keel-ml/keel/internal/tensor"
)

// ChannelAttention produces a per-channel sigmoid gate of shape (n, c, 1, 1).
//
// Global average and global max descriptors are passed through a shared
// bias-free squeeze/excite pair of 1x1 convolutions and the two excitations
// are summed before the sigmoid.
type ChannelAttention[B tensor.Backend] struct {
	fc1 *Conv2d[B]
	fc2 *Conv2d[B]
}

// NewChannelAttention creates a channel gate. ratio is the squeeze factor;
// inPlanes must be divisible into a nonzero hidden width.
func NewChannelAttention[B tensor.Backend](inPlanes, ratio int, backend B) *ChannelAttention[B] {
	if ratio <= 0 {
		panic(fmt.Sprintf("channel attention: invalid ratio %d", ratio))
	}
	hidden := inPlanes / ratio
	if hidden <= 0 {
		panic(fmt.Sprintf("channel attention: %d planes collapse at ratio %d", inPlanes, ratio))
	}
	return &ChannelAttention[B]{
		fc1: NewConv2d(inPlanes, hidden, 1, 1, 1, 0, 0, 1, false, backend),
		fc2: NewConv2d(hidden, inPlanes, 1, 1, 1, 0, 0, 1, false, backend),
	}
}

func (ca *ChannelAttention[B]) excite(descriptor *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return ca.fc2.Forward(ca.fc1.Forward(descriptor).ReLU())
}

// Forward returns the gate, not the gated input.
func (ca *ChannelAttention[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	avg := input.MeanDim(3, true).MeanDim(2, true)
	max := input.MaxDim(3, true).MaxDim(2, true)
	return ca.excite(avg).Add(ca.excite(max)).Sigmoid()
}

// Parameters returns the shared squeeze/excite weights.
func (ca *ChannelAttention[B]) Parameters() []*Parameter[B] {
	params := ca.fc1.Parameters()
	return append(params, ca.fc2.Parameters()...)
}

// SpatialAttention produces a per-position sigmoid gate of shape (n, 1, h, w).
//
// The channel axis is reduced to a mean map and a max map, and a single
// bias-free convolution over the stacked pair scores each position.
type SpatialAttention[B tensor.Backend] struct {
	conv *Conv2d[B]
}

// NewSpatialAttention creates a spatial gate. kernel must be odd so the gate
// keeps the input's spatial size.
func NewSpatialAttention[B tensor.Backend](kernel int, backend B) *SpatialAttention[B] {
	if kernel <= 0 || kernel%2 == 0 {
		panic(fmt.Sprintf("spatial attention: kernel must be odd and positive, got %d", kernel))
	}
	return &SpatialAttention[B]{
		conv: NewConv2d(2, 1, kernel, kernel, 1, kernel/2, kernel/2, 1, false, backend),
	}
}

// Forward returns the gate, not the gated input.
func (sa *SpatialAttention[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	avg := input.MeanDim(1, true)
	max := input.MaxDim(1, true)
	stacked := tensor.Cat([]*tensor.Tensor[float32, B]{avg, max}, 1)
	return sa.conv.Forward(stacked).Sigmoid()
}

// Parameters returns the scoring convolution's weight.
func (sa *SpatialAttention[B]) Parameters() []*Parameter[B] {
	return sa.conv.Parameters()
}

// CBAM applies channel attention then spatial attention, each gate computed
// from the map it is about to modulate.
type CBAM[B tensor.Backend] struct {
	ca *ChannelAttention[B]
	sa *SpatialAttention[B]
}

// NewCBAM creates the sequential attention block.
func NewCBAM[B tensor.Backend](c1, ratio, kernel int, backend B) *CBAM[B] {
	return &CBAM[B]{
		ca: NewChannelAttention(c1, ratio, backend),
		sa: NewSpatialAttention[B](kernel, backend),
	}
}

// Forward gates the input twice; the output shape equals the input shape.
func (c *CBAM[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	gated := input.Mul(c.ca.Forward(input))
	return gated.Mul(c.sa.Forward(gated))
}

// Parameters returns both gates' parameters.
func (c *CBAM[B]) Parameters() []*Parameter[B] {
	params := c.ca.Parameters()
	return append(params, c.sa.Parameters()...)
}
