package nn

import (
	"fmt"

	"github.com/keel-ml/keel/internal/tensor"
)

// Focus regroups 2x2 pixel neighborhoods into the channel axis: the input
// (n, c, h, w) becomes (n, 4c, h/2, w/2) with no information loss, then a
// Conv projects the regrouped map to the output width. Height and width must
// both be even.
//
// The four channel groups are ordered by sample phase: (row 0, col 0),
// (row 1, col 0), (row 0, col 1), (row 1, col 1).
type Focus[B tensor.Backend] struct {
	conv *Conv[B]
}

// NewFocus creates a Focus block. The projection convolution sees 4*c1 input
// channels.
func NewFocus[B tensor.Backend](c1, c2, kernel, stride int, backend B) *Focus[B] {
	return &Focus[B]{
		conv: NewConv(c1*4, c2, kernel, stride, backend),
	}
}

// Forward regroups and projects.
func (f *Focus[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	shape := input.Shape()
	if len(shape) != 4 {
		panic(fmt.Sprintf("focus: expected 4D input, got %dD", len(shape)))
	}
	n, c, h, w := shape[0], shape[1], shape[2], shape[3]
	if h%2 != 0 || w%2 != 0 {
		panic(fmt.Sprintf("focus: spatial size (%d, %d) must be even", h, w))
	}

	// (n, c, h/2, 2, w/2, 2) -> (n, 2, 2, c, h/2, w/2) -> (n, 4c, h/2, w/2).
	// The two size-2 axes are the row and column phases; moving them in front
	// of the channel axis makes each phase a contiguous channel group.
	x := input.Reshape(n, c, h/2, 2, w/2, 2)
	x = x.Permute(0, 5, 3, 1, 2, 4)
	x = x.Reshape(n, c*4, h/2, w/2)
	return f.conv.Forward(x)
}

// Parameters returns the projection convolution's parameters.
func (f *Focus[B]) Parameters() []*Parameter[B] {
	return f.conv.Parameters()
}

// OutChannels reports the channel count produced by Forward.
func (f *Focus[B]) OutChannels() int {
	return f.conv.OutChannels()
}
