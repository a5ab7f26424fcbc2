package nn

import (
	"fmt"

	"github.com/keel-ml/keel/internal/tensor"
)

// BatchNorm2d normalizes each channel of a 4D feature map using running
// statistics, then applies a learned per-channel scale and shift:
//
//	y = (x - running_mean) / sqrt(running_var + eps) * weight + bias
//
// Forward always evaluates in inference mode: the running statistics are
// read-only here and updated only by an external training procedure (which
// owns eps/momentum semantics during training).
type BatchNorm2d[B tensor.Backend] struct {
	numFeatures int
	eps         float64
	momentum    float64

	weight *Parameter[B] // per-channel scale (gamma)
	bias   *Parameter[B] // per-channel shift (beta)

	runningMean *tensor.Tensor[float32, B]
	runningVar  *tensor.Tensor[float32, B]
}

// NewBatchNorm2d creates a batch norm layer with identity initialization:
// scale 1, shift 0, running mean 0, running variance 1.
func NewBatchNorm2d[B tensor.Backend](numFeatures int, backend B) *BatchNorm2d[B] {
	if numFeatures <= 0 {
		panic(fmt.Sprintf("batchnorm2d: invalid feature count %d", numFeatures))
	}

	shape := tensor.Shape{numFeatures}
	return &BatchNorm2d[B]{
		numFeatures: numFeatures,
		eps:         1e-5,
		momentum:    0.1,
		weight:      NewParameter("bn.weight", Ones(shape, backend)),
		bias:        NewParameter("bn.bias", Zeros(shape, backend)),
		runningMean: Zeros(shape, backend),
		runningVar:  Ones(shape, backend),
	}
}

// Forward applies the normalization channel-wise via broadcasting.
func (bn *BatchNorm2d[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	shape := input.Shape()
	if len(shape) != 4 {
		panic(fmt.Sprintf("batchnorm2d: expected 4D input [N,C,H,W], got %dD", len(shape)))
	}
	if shape[1] != bn.numFeatures {
		panic(fmt.Sprintf("batchnorm2d: expected %d channels, got %d", bn.numFeatures, shape[1]))
	}

	// Fold the statistics into one scale and shift per channel. Clones keep
	// the in-place element-wise fast path away from the stored parameters.
	std := bn.runningVar.AddScalar(float32(bn.eps)).Sqrt()
	scale := bn.weight.Tensor().Clone().Div(std)
	shift := bn.bias.Tensor().Clone().Sub(scale.Clone().Mul(bn.runningMean))

	c := bn.numFeatures
	return input.
		Mul(scale.Reshape(1, c, 1, 1)).
		Add(shift.Reshape(1, c, 1, 1))
}

// Parameters returns the learnable scale and shift. Running statistics are
// buffers, not parameters.
func (bn *BatchNorm2d[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{bn.weight, bn.bias}
}

// RunningMean returns the running mean buffer.
func (bn *BatchNorm2d[B]) RunningMean() *tensor.Tensor[float32, B] {
	return bn.runningMean
}

// RunningVar returns the running variance buffer.
func (bn *BatchNorm2d[B]) RunningVar() *tensor.Tensor[float32, B] {
	return bn.runningVar
}
