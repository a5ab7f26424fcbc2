package nn

import (
	"github.com/keel-ml/keel/internal/tensor"
)

// Activation modules wrap the backend's element-wise activations so they can
// sit inside a Sequential pipeline. None of them own parameters.

// ReLU applies f(x) = max(0, x).
type ReLU[B tensor.Backend] struct{}

// NewReLU creates a ReLU activation module.
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return &ReLU[B]{}
}

// Forward applies the activation.
func (r *ReLU[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return input.ReLU()
}

// Parameters returns nil.
func (r *ReLU[B]) Parameters() []*Parameter[B] {
	return nil
}

// Sigmoid applies f(x) = 1/(1+exp(-x)), mapping onto (0,1).
type Sigmoid[B tensor.Backend] struct{}

// NewSigmoid creates a sigmoid activation module.
func NewSigmoid[B tensor.Backend]() *Sigmoid[B] {
	return &Sigmoid[B]{}
}

// Forward applies the activation.
func (s *Sigmoid[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return input.Sigmoid()
}

// Parameters returns nil.
func (s *Sigmoid[B]) Parameters() []*Parameter[B] {
	return nil
}

// LeakyReLU applies f(x) = x for x >= 0 and slope*x otherwise.
type LeakyReLU[B tensor.Backend] struct {
	slope float64
}

// NewLeakyReLU creates a leaky ReLU with the given negative slope.
func NewLeakyReLU[B tensor.Backend](negativeSlope float64) *LeakyReLU[B] {
	return &LeakyReLU[B]{slope: negativeSlope}
}

// Forward applies the activation.
func (l *LeakyReLU[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return input.LeakyReLU(l.slope)
}

// Parameters returns nil.
func (l *LeakyReLU[B]) Parameters() []*Parameter[B] {
	return nil
}

// Hardswish applies f(x) = x * clamp(x+3, 0, 6)/6, the default activation of
// the fused conv block.
type Hardswish[B tensor.Backend] struct{}

// NewHardswish creates a hard-swish activation module.
func NewHardswish[B tensor.Backend]() *Hardswish[B] {
	return &Hardswish[B]{}
}

// Forward applies the activation.
func (h *Hardswish[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return input.Hardswish()
}

// Parameters returns nil.
func (h *Hardswish[B]) Parameters() []*Parameter[B] {
	return nil
}
