// Package nn implements the layer library of the Keel detection backbone.
//
// Every block maps a 4-axis feature map (batch, channels, height, width) to
// another feature map through a uniform Forward contract, so blocks can be
// chained into arbitrary pipelines by an external model-assembly component:
//   - Conv: fused convolution + batch norm + activation, the atomic block
//   - Bottleneck / BottleneckCSP: residual and cross-stage partial blocks
//   - SPP: multi-scale max pooling
//   - Focus: pixel regrouping into channel space
//   - ChannelAttention / SpatialAttention / CBAM / SAM / DAM / BDAM:
//     the attention stack, from per-channel gates to windowed dual attention
//   - Classify / Flatten: the classification head
//
// Blocks are immutable in structure after construction; their weight tensors
// are mutated only by an external training procedure.
package nn

import (
	"github.com/keel-ml/keel/internal/tensor"
)

// Module is the base interface for all layer blocks.
//
// Forward is a pure function of the input and the module's owned weights.
// When the input holds the only reference to its buffer, element-wise steps
// may reuse it, so callers that need the input afterwards should Clone first.
//
// Shape-contract violations panic; they are model-assembly bugs, not
// recoverable runtime conditions.
type Module[B tensor.Backend] interface {
	// Forward computes the block's output for a 4D feature map input.
	Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// Parameters returns all learnable parameters of this module, including
	// nested module parameters. Modules without learnable state return nil.
	Parameters() []*Parameter[B]
}
