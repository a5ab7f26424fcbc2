// Copyright 2025 Keel ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/keel-ml/keel/internal/nn"
	"github.com/keel-ml/keel/tensor"
)

// Module interface defines the common interface for all network blocks.
type Module[B tensor.Backend] = nn.Module[B]

// Parameter represents a named weight tensor in a network block.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// NewParameter creates a new parameter with the given name and tensor.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}

// Layers

// Conv2d is a plain 2D convolution layer with optional bias.
type Conv2d[B tensor.Backend] = nn.Conv2d[B]

// NewConv2d creates a 2D convolution layer with Xavier-initialized weights.
//
// Example:
//
//	backend := cpu.New()
//	conv := nn.NewConv2d(3, 32, 3, 3, 1, 1, 1, 1, true, backend)
func NewConv2d[B tensor.Backend](
	inChannels, outChannels int,
	kernelH, kernelW int,
	stride, padH, padW, groups int,
	useBias bool,
	backend B,
) *Conv2d[B] {
	return nn.NewConv2d(inChannels, outChannels, kernelH, kernelW, stride, padH, padW, groups, useBias, backend)
}

// Conv is the fused convolution block: bias-free conv, batch norm, and
// hardswish activation.
type Conv[B tensor.Backend] = nn.Conv[B]

// NewConv creates a fused conv block with a square kernel and autopadding.
//
// Example:
//
//	backend := cpu.New()
//	conv := nn.NewConv(3, 64, 3, 1, backend) // 3x3, stride 1, pad 1
func NewConv[B tensor.Backend](c1, c2, k, s int, backend B) *Conv[B] {
	return nn.NewConv(c1, c2, k, s, backend)
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
	return nn.NewConvFull(c1, c2, kernelH, kernelW, stride, padH, padW, groups, act, backend)
}

// NewDWConv creates the depthwise-separable variant of the fused conv block:
// group count is gcd(c1, c2).
func NewDWConv[B tensor.Backend](c1, c2, k, s int, act bool, backend B) *Conv[B] {
	return nn.NewDWConv(c1, c2, k, s, act, backend)
}

// BatchNorm2d is 2D batch normalization in inference mode, using stored
// running statistics.
type BatchNorm2d[B tensor.Backend] = nn.BatchNorm2d[B]

// NewBatchNorm2d creates a batch norm layer with identity initialization.
func NewBatchNorm2d[B tensor.Backend](numFeatures int, backend B) *BatchNorm2d[B] {
	return nn.NewBatchNorm2d(numFeatures, backend)
}

// MaxPool2D is a 2D max pooling layer with a square window.
type MaxPool2D[B tensor.Backend] = nn.MaxPool2D[B]

// NewMaxPool2D creates a max pooling layer.
//
// Example:
//
//	pool := nn.NewMaxPool2D(5, 1, 2) // same-size pooling
func NewMaxPool2D[B tensor.Backend](kernel, stride, padding int) *MaxPool2D[B] {
	return nn.NewMaxPool2D[B](kernel, stride, padding)
}

// Backbone blocks

// Bottleneck is the standard residual bottleneck: two convolutions with an
// optional shortcut when input and output channels match.
type Bottleneck[B tensor.Backend] = nn.Bottleneck[B]

// NewBottleneck creates a residual bottleneck block.
//
// Example:
//
//	b := nn.NewBottleneck(64, 64, true, 1, 0.5, backend)
func NewBottleneck[B tensor.Backend](c1, c2 int, shortcut bool, groups int, expansion float64, backend B) *Bottleneck[B] {
	return nn.NewBottleneck(c1, c2, shortcut, groups, expansion, backend)
}

// BottleneckCSP is the cross-stage-partial bottleneck stack: a chain of
// bottlenecks on one branch merged with a skip projection of the input.
type BottleneckCSP[B tensor.Backend] = nn.BottleneckCSP[B]

// NewBottleneckCSP creates a CSP block with n stacked bottlenecks.
//
// Example:
//
//	csp := nn.NewBottleneckCSP(64, 128, 3, true, 1, 0.5, backend)
func NewBottleneckCSP[B tensor.Backend](c1, c2, n int, shortcut bool, groups int, expansion float64, backend B) *BottleneckCSP[B] {
	return nn.NewBottleneckCSP(c1, c2, n, shortcut, groups, expansion, backend)
}

// SPP is the spatial pyramid pooling block: parallel same-size max pools at
// several window sizes, concatenated and projected.
type SPP[B tensor.Backend] = nn.SPP[B]

// NewSPP creates a spatial pyramid pooling block. Kernels must be odd.
//
// Example:
//
//	spp := nn.NewSPP(512, 512, nn.DefaultSPPKernels(), backend)
func NewSPP[B tensor.Backend](c1, c2 int, kernels []int, backend B) *SPP[B] {
	return nn.NewSPP(c1, c2, kernels, backend)
}

// DefaultSPPKernels returns the standard pyramid window sizes {5, 9, 13}.
func DefaultSPPKernels() []int {
	return nn.DefaultSPPKernels()
}

// Focus is the space-to-depth stem: it slices every second pixel into four
// phase images, stacks them on the channel axis, and convolves.
type Focus[B tensor.Backend] = nn.Focus[B]

// NewFocus creates a focus block. Input height and width must be even.
//
// Example:
//
//	focus := nn.NewFocus(3, 64, 3, 1, backend) // (N,3,H,W) -> (N,64,H/2,W/2)
func NewFocus[B tensor.Backend](c1, c2, kernel, stride int, backend B) *Focus[B] {
	return nn.NewFocus(c1, c2, kernel, stride, backend)
}

// Concat concatenates feature maps from multiple branches along one axis.
type Concat[B tensor.Backend] = nn.Concat[B]

// NewConcat creates a concat block for the given axis (1 = channels).
func NewConcat[B tensor.Backend](dim int) *Concat[B] {
	return nn.NewConcat[B](dim)
}

// Attention blocks

// ChannelAttention produces a per-channel gate from pooled descriptors
// passed through a shared two-layer excitation.
type ChannelAttention[B tensor.Backend] = nn.ChannelAttention[B]

// NewChannelAttention creates a channel attention block with the given
// squeeze ratio.
func NewChannelAttention[B tensor.Backend](inPlanes, ratio int, backend B) *ChannelAttention[B] {
	return nn.NewChannelAttention(inPlanes, ratio, backend)
}

// SpatialAttention produces a per-position gate from channel-pooled maps.
type SpatialAttention[B tensor.Backend] = nn.SpatialAttention[B]

// NewSpatialAttention creates a spatial attention block. Kernel must be odd.
func NewSpatialAttention[B tensor.Backend](kernel int, backend B) *SpatialAttention[B] {
	return nn.NewSpatialAttention(kernel, backend)
}

// CBAM chains channel attention and spatial attention.
type CBAM[B tensor.Backend] = nn.CBAM[B]

// NewCBAM creates a convolutional block attention module.
//
// Example:
//
//	cbam := nn.NewCBAM(256, 16, 7, backend)
func NewCBAM[B tensor.Backend](c1, ratio, kernel int, backend B) *CBAM[B] {
	return nn.NewCBAM(c1, ratio, kernel, backend)
}

// SAM computes a full-resolution spatial gate from row and column
// projections of the input. It is bound to a fixed input height and width.
type SAM[B tensor.Backend] = nn.SAM[B]

// NewSAM creates a spatial attention matrix block for inputs of the given
// spatial size.
func NewSAM[B tensor.Backend](inChannels, height, width int, backend B) *SAM[B] {
	return nn.NewSAM(inChannels, height, width, backend)
}

// DAM combines channel attention with the SAM spatial gate.
type DAM[B tensor.Backend] = nn.DAM[B]

// NewDAM creates a dual attention module for inputs of the given spatial size.
func NewDAM[B tensor.Backend](inPlanes, height, width int, backend B) *DAM[B] {
	return nn.NewDAM(inPlanes, height, width, backend)
}

// BDAM applies DAM within square windows and stitches the result back,
// keeping the quadratic SAM cost bounded on large feature maps.
type BDAM[B tensor.Backend] = nn.BDAM[B]

// NewBDAM creates a block dual attention module. The window size is
// min(width, height)/4 and must evenly divide both axes.
func NewBDAM[B tensor.Backend](inPlanes, height, width int, backend B) *BDAM[B] {
	return nn.NewBDAM(inPlanes, height, width, backend)
}

// WindowPartition splits (N,C,H,W) into non-overlapping size x size windows,
// each a batch entry of the result.
func WindowPartition[B tensor.Backend](input *tensor.Tensor[float32, B], size int) *tensor.Tensor[float32, B] {
	return nn.WindowPartition(input, size)
}

// WindowReverse reassembles windows produced by WindowPartition into a
// (N,C,H,W) feature map.
func WindowReverse[B tensor.Backend](windows *tensor.Tensor[float32, B], size, h, w int) *tensor.Tensor[float32, B] {
	return nn.WindowReverse(windows, size, h, w)
}

// Head blocks

// Flatten collapses all axes after the batch axis.
type Flatten[B tensor.Backend] = nn.Flatten[B]

// NewFlatten creates a flatten block.
func NewFlatten[B tensor.Backend]() *Flatten[B] {
	return nn.NewFlatten[B]()
}

// Classify is the classification head: global average pooling over each
// input, channel concat, projection, flatten.
type Classify[B tensor.Backend] = nn.Classify[B]

// NewClassify creates a classification head.
//
// Example:
//
//	head := nn.NewClassify(512, 1000, 1, 1, backend)
func NewClassify[B tensor.Backend](c1, c2, kernel, stride int, backend B) *Classify[B] {
	return nn.NewClassify(c1, c2, kernel, stride, backend)
}

// Activations

// ReLU applies max(0, x).
type ReLU[B tensor.Backend] = nn.ReLU[B]

// NewReLU creates a ReLU activation block.
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return nn.NewReLU[B]()
}

// Sigmoid applies 1/(1+exp(-x)).
type Sigmoid[B tensor.Backend] = nn.Sigmoid[B]

// NewSigmoid creates a sigmoid activation block.
func NewSigmoid[B tensor.Backend]() *Sigmoid[B] {
	return nn.NewSigmoid[B]()
}

// LeakyReLU applies x for x >= 0 and negativeSlope*x otherwise.
type LeakyReLU[B tensor.Backend] = nn.LeakyReLU[B]

// NewLeakyReLU creates a leaky ReLU activation block.
func NewLeakyReLU[B tensor.Backend](negativeSlope float64) *LeakyReLU[B] {
	return nn.NewLeakyReLU[B](negativeSlope)
}

// Hardswish applies x * clamp(x+3, 0, 6) / 6.
type Hardswish[B tensor.Backend] = nn.Hardswish[B]

// NewHardswish creates a hardswish activation block.
func NewHardswish[B tensor.Backend]() *Hardswish[B] {
	return nn.NewHardswish[B]()
}

// Utilities

// Sequential chains modules, feeding each output to the next input.
type Sequential[B tensor.Backend] = nn.Sequential[B]

// NewSequential creates a sequential container.
//
// Example:
//
//	model := nn.NewSequential(
//	    nn.NewFocus(3, 64, 3, 1, backend),
//	    nn.NewConv(64, 128, 3, 2, backend),
//	    nn.NewBottleneckCSP(128, 128, 3, true, 1, 0.5, backend),
//	)
func NewSequential[B tensor.Backend](modules ...Module[B]) *Sequential[B] {
	return nn.NewSequential(modules...)
}

// Initialization

// Xavier returns a tensor initialized with Xavier/Glorot uniform values.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Xavier(fanIn, fanOut, shape, backend)
}

// Zeros returns a zero-initialized float32 tensor.
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Zeros(shape, backend)
}

// Ones returns a one-initialized float32 tensor.
func Ones[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Ones(shape, backend)
}
