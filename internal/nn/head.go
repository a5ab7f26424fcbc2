package nn

import (
	"github.com/keel-ml/keel/internal/tensor"
)

// Flatten collapses everything after the batch axis: (n, c, h, w) becomes
// (n, c*h*w).
type Flatten[B tensor.Backend] struct{}

// NewFlatten creates a Flatten block.
func NewFlatten[B tensor.Backend]() *Flatten[B] {
	return &Flatten[B]{}
}

// Forward flattens the input.
func (f *Flatten[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return input.Flatten2D()
}

// Parameters returns nil.
func (f *Flatten[B]) Parameters() []*Parameter[B] {
	return nil
}

// Classify is the classification head. Each input feature map is pooled to a
// (n, c, 1, 1) descriptor by global average pooling, the descriptors are
// concatenated on the channel axis, projected by a bias-free convolution, and
// flattened to (n, c2) class scores.
type Classify[B tensor.Backend] struct {
	conv *Conv2d[B]
}

// NewClassify creates a head whose projection sees c1 pooled channels; when
// fed multiple maps, c1 is the sum of their channel counts.
func NewClassify[B tensor.Backend](c1, c2, kernel, stride int, backend B) *Classify[B] {
	pad := autopad(kernel, -1)
	return &Classify[B]{
		conv: NewConv2d(c1, c2, kernel, kernel, stride, pad, pad, 1, false, backend),
	}
}

func globalAvgPool[B tensor.Backend](x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return x.MeanDim(3, true).MeanDim(2, true)
}

// Forward classifies a single feature map.
func (c *Classify[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return c.ForwardList([]*tensor.Tensor[float32, B]{input})
}

// ForwardList classifies from several feature maps at once; the maps may
// differ in spatial size but must share the batch size.
func (c *Classify[B]) ForwardList(inputs []*tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	if len(inputs) == 0 {
		panic("classify: no inputs")
	}
	pooled := make([]*tensor.Tensor[float32, B], len(inputs))
	for i, x := range inputs {
		pooled[i] = globalAvgPool(x)
	}
	var z *tensor.Tensor[float32, B]
	if len(pooled) == 1 {
		z = pooled[0]
	} else {
		z = tensor.Cat(pooled, 1)
	}
	return c.conv.Forward(z).Flatten2D()
}

// Parameters returns the projection weight.
func (c *Classify[B]) Parameters() []*Parameter[B] {
	return c.conv.Parameters()
}
