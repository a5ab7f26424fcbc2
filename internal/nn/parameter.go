package nn

import (
	"github.com/keel-ml/keel/internal/tensor"
)

// Parameter is a learnable weight tensor owned by exactly one module.
// An external training procedure mutates the tensor's data; the library
// itself only reads it during Forward.
type Parameter[B tensor.Backend] struct {
	name   string
	tensor *tensor.Tensor[float32, B]
}

// NewParameter creates a named parameter around an initialized tensor.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return &Parameter[B]{name: name, tensor: t}
}

// Name returns the parameter name (e.g. "conv.weight").
func (p *Parameter[B]) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter[B]) Tensor() *tensor.Tensor[float32, B] {
	return p.tensor
}

// Shape returns the parameter tensor's shape.
func (p *Parameter[B]) Shape() tensor.Shape {
	return p.tensor.Shape()
}

// NumElements returns the parameter tensor's element count.
func (p *Parameter[B]) NumElements() int {
	return p.tensor.NumElements()
}
