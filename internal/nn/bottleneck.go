package nn

import (
	"fmt"

	"github.com/keel-ml/keel/internal/tensor"
)

// Bottleneck is the standard residual bottleneck: a 1x1 conv squeezes the
// channel count to c2*expansion, a 3x3 conv (optionally grouped) restores
// it. When shortcut is requested and c1 == c2 the input is added back in.
//
// A requested shortcut with c1 != c2 is silently disabled rather than
// rejected, so assembly code can toggle shortcuts globally without checking
// channel counts.
//
// Both convolutions use stride 1, so H and W are preserved.
type Bottleneck[B tensor.Backend] struct {
	cv1 *Conv[B]
	cv2 *Conv[B]
	add bool
}

// NewBottleneck creates a bottleneck block. expansion scales the hidden
// channel count (0.5 halves it; 1.0 keeps it, as the CSP block's stacked
// bottlenecks do).
func NewBottleneck[B tensor.Backend](c1, c2 int, shortcut bool, groups int, expansion float64, backend B) *Bottleneck[B] {
	hidden := int(float64(c2) * expansion)
	if hidden <= 0 {
		panic(fmt.Sprintf("bottleneck: expansion %v of %d channels leaves no hidden channels", expansion, c2))
	}

	return &Bottleneck[B]{
		cv1: NewConv(c1, hidden, 1, 1, backend),
		cv2: NewConvFull(hidden, c2, 3, 3, 1, -1, -1, groups, true, backend),
		add: shortcut && c1 == c2,
	}
}

// Forward applies the two convolutions, plus the residual when enabled.
func (b *Bottleneck[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	out := b.cv2.Forward(b.cv1.Forward(input))
	if b.add {
		return input.Add(out)
	}
	return out
}

// Parameters returns the parameters of both convolutions.
func (b *Bottleneck[B]) Parameters() []*Parameter[B] {
	return append(b.cv1.Parameters(), b.cv2.Parameters()...)
}

// BottleneckCSP is the cross-stage partial bottleneck. The input splits into
// two paths:
//
//	path A: cv1 (fused conv) -> n stacked bottlenecks -> cv3 (bias-free 1x1)
//	path B: cv2 (bias-free 1x1) straight from the raw input
//
// The paths concatenate along the channel axis, pass through a shared batch
// norm and a leaky ReLU (slope 0.1), and a final fused conv reduces to the
// target channel count:
//
//	cv4( leakyReLU( BN( cat(cv3(m(cv1(x))), cv2(x)) ) ) )
//
// The cheap path keeps information flowing even when the expensive stacked
// path contributes nothing.
type BottleneckCSP[B tensor.Backend] struct {
	cv1    *Conv[B]
	cv2    *Conv2d[B]
	cv3    *Conv2d[B]
	cv4    *Conv[B]
	bn     *BatchNorm2d[B]
	m      *Sequential[B]
	hidden int
}

// NewBottleneckCSP creates a CSP block with n stacked bottlenecks (each with
// expansion 1.0). expansion scales the width of both internal paths.
func NewBottleneckCSP[B tensor.Backend](c1, c2, n int, shortcut bool, groups int, expansion float64, backend B) *BottleneckCSP[B] {
	if n <= 0 {
		panic(fmt.Sprintf("bottleneck_csp: invalid repeat count %d", n))
	}
	hidden := int(float64(c2) * expansion)
	if hidden <= 0 {
		panic(fmt.Sprintf("bottleneck_csp: expansion %v of %d channels leaves no hidden channels", expansion, c2))
	}

	stack := make([]Module[B], n)
	for i := range stack {
		stack[i] = NewBottleneck(hidden, hidden, shortcut, groups, 1.0, backend)
	}

	return &BottleneckCSP[B]{
		cv1:    NewConv(c1, hidden, 1, 1, backend),
		cv2:    NewConv2d(c1, hidden, 1, 1, 1, 0, 0, 1, false, backend),
		cv3:    NewConv2d(hidden, hidden, 1, 1, 1, 0, 0, 1, false, backend),
		cv4:    NewConv(2*hidden, c2, 1, 1, backend),
		bn:     NewBatchNorm2d(2*hidden, backend),
		m:      NewSequential(stack...),
		hidden: hidden,
	}
}

// Forward evaluates both paths and merges them.
func (c *BottleneckCSP[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	y1 := c.cv3.Forward(c.m.Forward(c.cv1.Forward(input)))
	y2 := c.cv2.Forward(input)
	merged := tensor.Cat([]*tensor.Tensor[float32, B]{y1, y2}, 1)
	return c.cv4.Forward(c.bn.Forward(merged).LeakyReLU(0.1))
}

// Parameters returns the parameters of every sub-layer.
func (c *BottleneckCSP[B]) Parameters() []*Parameter[B] {
	params := c.cv1.Parameters()
	params = append(params, c.cv2.Parameters()...)
	params = append(params, c.cv3.Parameters()...)
	params = append(params, c.cv4.Parameters()...)
	params = append(params, c.bn.Parameters()...)
	params = append(params, c.m.Parameters()...)
	return params
}

// HiddenChannels returns the per-path width before the merge; the
// concatenated tensor entering the shared norm has twice this many channels.
func (c *BottleneckCSP[B]) HiddenChannels() int {
	return c.hidden
}
