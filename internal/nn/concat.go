package nn

import (
	"github.com/keel-ml/keel/internal/tensor"
)

// Concat joins a list of feature maps along a fixed axis. It exists so that
// multi-input junction points can be expressed as a module in an assembled
// pipeline; the dimension is usually 1, the channel axis.
type Concat[B tensor.Backend] struct {
	dim int
}

// NewConcat creates a concatenation block over the given axis.
func NewConcat[B tensor.Backend](dim int) *Concat[B] {
	return &Concat[B]{dim: dim}
}

// Forward is the single-input degenerate case and returns its input.
func (c *Concat[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return input
}

// ForwardList concatenates the inputs along the configured axis. All inputs
// must agree on every other axis.
func (c *Concat[B]) ForwardList(inputs []*tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	if len(inputs) == 0 {
		panic("concat: no inputs")
	}
	if len(inputs) == 1 {
		return inputs[0]
	}
	return tensor.Cat(inputs, c.dim)
}

// Parameters returns nil.
func (c *Concat[B]) Parameters() []*Parameter[B] {
	return nil
}
