package nn

import (
	"fmt"

	"github.com/keel-ml/keel/internal/tensor"
)

// MaxPool2D is a square-window max pooling module with no learnable state.
//
// Output spatial size per axis: (in + 2*padding - kernel)/stride + 1.
// kernel k with stride 1 and padding k/2 preserves the spatial size, the
// configuration the multi-scale pooling block depends on.
type MaxPool2D[B tensor.Backend] struct {
	kernel  int
	stride  int
	padding int
}

// NewMaxPool2D creates a max pooling module.
func NewMaxPool2D[B tensor.Backend](kernel, stride, padding int) *MaxPool2D[B] {
	if kernel <= 0 || stride <= 0 {
		panic(fmt.Sprintf("maxpool2d: invalid kernel %d or stride %d", kernel, stride))
	}
	if padding < 0 {
		panic(fmt.Sprintf("maxpool2d: invalid padding %d", padding))
	}
	return &MaxPool2D[B]{kernel: kernel, stride: stride, padding: padding}
}

// Forward pools the input.
func (m *MaxPool2D[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	raw := input.Backend().MaxPool2D(input.Raw(), m.kernel, m.stride, m.padding)
	return tensor.New[float32, B](raw, input.Backend())
}

// Parameters returns nil.
func (m *MaxPool2D[B]) Parameters() []*Parameter[B] {
	return nil
}
