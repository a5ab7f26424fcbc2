package nn

import (
	"fmt"

	"github.com/keel-ml/keel/internal/tensor"
)

// Conv2d is a plain 2D convolution layer: no normalization, no activation.
// The fused Conv block and the attention projections build on it; the
// cross-stage partial block also uses it directly for its bias-free
// shortcut convolutions.
//
// Input shape:  [batch, in_channels, height, width]
// Weight shape: [out_channels, in_channels/groups, kernel_h, kernel_w]
// Bias shape:   [out_channels] (optional)
// Output shape: [batch, out_channels, out_h, out_w]
//
// where out = floor((in + 2*padding - kernel)/stride) + 1 per spatial axis.
type Conv2d[B tensor.Backend] struct {
	inChannels  int
	outChannels int
	kernel      [2]int
	stride      int
	pad         [2]int
	groups      int

	weight *Parameter[B]
	bias   *Parameter[B] // nil when bias is disabled

	backend B
}

// NewConv2d creates a 2D convolution layer with Xavier-initialized weights
// and zero bias. groups > 1 selects grouped convolution and must evenly
// divide both channel counts.
func NewConv2d[B tensor.Backend](
	inChannels, outChannels int,
	kernelH, kernelW int,
	stride, padH, padW, groups int,
	useBias bool,
	backend B,
) *Conv2d[B] {
	if inChannels <= 0 || outChannels <= 0 {
		panic(fmt.Sprintf("conv2d: invalid channels in=%d out=%d", inChannels, outChannels))
	}
	if kernelH <= 0 || kernelW <= 0 {
		panic(fmt.Sprintf("conv2d: invalid kernel size %dx%d", kernelH, kernelW))
	}
	if stride <= 0 {
		panic(fmt.Sprintf("conv2d: invalid stride %d", stride))
	}
	if padH < 0 || padW < 0 {
		panic(fmt.Sprintf("conv2d: invalid padding (%d,%d)", padH, padW))
	}
	if groups <= 0 || inChannels%groups != 0 || outChannels%groups != 0 {
		panic(fmt.Sprintf("conv2d: group count %d must evenly divide in=%d and out=%d channels",
			groups, inChannels, outChannels))
	}

	weightShape := tensor.Shape{outChannels, inChannels / groups, kernelH, kernelW}
	fanIn := (inChannels / groups) * kernelH * kernelW
	fanOut := (outChannels / groups) * kernelH * kernelW
	weight := NewParameter("conv2d.weight", Xavier(fanIn, fanOut, weightShape, backend))

	var bias *Parameter[B]
	if useBias {
		bias = NewParameter("conv2d.bias", Zeros(tensor.Shape{outChannels}, backend))
	}

	return &Conv2d[B]{
		inChannels:  inChannels,
		outChannels: outChannels,
		kernel:      [2]int{kernelH, kernelW},
		stride:      stride,
		pad:         [2]int{padH, padW},
		groups:      groups,
		weight:      weight,
		bias:        bias,
		backend:     backend,
	}
}

// Forward applies the convolution (plus bias when enabled).
func (c *Conv2d[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	shape := input.Shape()
	if len(shape) != 4 {
		panic(fmt.Sprintf("conv2d: expected 4D input [N,C,H,W], got %dD", len(shape)))
	}
	if shape[1] != c.inChannels {
		panic(fmt.Sprintf("conv2d: expected %d input channels, got %d", c.inChannels, shape[1]))
	}

	raw := c.backend.Conv2D(input.Raw(), c.weight.Tensor().Raw(),
		c.stride, c.pad[0], c.pad[1], c.groups)
	out := tensor.New[float32, B](raw, c.backend)

	if c.bias != nil {
		out = out.Add(c.bias.Tensor().Reshape(1, c.outChannels, 1, 1))
	}
	return out
}

// Parameters returns the weight (and bias, when present).
func (c *Conv2d[B]) Parameters() []*Parameter[B] {
	if c.bias == nil {
		return []*Parameter[B]{c.weight}
	}
	return []*Parameter[B]{c.weight, c.bias}
}

// Weight returns the weight parameter.
func (c *Conv2d[B]) Weight() *Parameter[B] {
	return c.weight
}

// OutChannels returns the output channel count.
func (c *Conv2d[B]) OutChannels() int {
	return c.outChannels
}
