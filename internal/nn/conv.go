package nn

import (
	"github.com/keel-ml/keel/internal/tensor"
)

// autopad returns "same-size" padding for a kernel axis when the caller did
// not give one (pad < 0): kernel/2. With stride 1 this keeps the spatial
// size unchanged.
func autopad(kernel, pad int) int {
	if pad < 0 {
		return kernel / 2
	}
	return pad
}

// Conv is the fused convolution block: bias-free Conv2d, then BatchNorm2d,
// then a hard-swish activation (identity when act is false). The norm's
// learned shift replaces the conv bias.
//
// All higher blocks in the backbone compose from this primitive.
type Conv[B tensor.Backend] struct {
	conv *Conv2d[B]
	bn   *BatchNorm2d[B]
	act  bool
}

// NewConv creates the common square-kernel form: autopadded, ungrouped,
// activated.
func NewConv[B tensor.Backend](c1, c2, k, s int, backend B) *Conv[B] {
	return NewConvFull(c1, c2, k, k, s, -1, -1, 1, true, backend)
}

// NewConvFull creates a fused conv block with full control over the kernel,
// padding (negative = autopad per axis), group count, and activation flag.
func NewConvFull[B tensor.Backend](
	c1, c2 int,
	kernelH, kernelW int,
	stride, padH, padW, groups int,
	act bool,
	backend B,
) *Conv[B] {
	return &Conv[B]{
		conv: NewConv2d(c1, c2, kernelH, kernelW, stride,
			autopad(kernelH, padH), autopad(kernelW, padW), groups, false, backend),
		bn:  NewBatchNorm2d(c2, backend),
		act: act,
	}
}

// NewDWConv creates the depthwise-separable variant: group count is
// gcd(c1, c2), so each group convolves its own channel slice.
func NewDWConv[B tensor.Backend](c1, c2, k, s int, act bool, backend B) *Conv[B] {
	return NewConvFull(c1, c2, k, k, s, -1, -1, gcd(c1, c2), act, backend)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Forward runs conv -> batch norm -> activation.
func (c *Conv[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	out := c.bn.Forward(c.conv.Forward(input))
	if c.act {
		out = out.Hardswish()
	}
	return out
}

// FuseForward skips batch normalization. It matches Forward only after the
// norm parameters have been algebraically folded into the conv weights by an
// external fusion step; this block does not perform that folding.
func (c *Conv[B]) FuseForward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	out := c.conv.Forward(input)
	if c.act {
		out = out.Hardswish()
	}
	return out
}

// Parameters returns the conv weight and the norm's learnable parameters.
func (c *Conv[B]) Parameters() []*Parameter[B] {
	return append(c.conv.Parameters(), c.bn.Parameters()...)
}

// OutChannels returns the output channel count.
func (c *Conv[B]) OutChannels() int {
	return c.conv.OutChannels()
}
