package nn

import (
	"fmt"

	"github.com/keel-ml/keel/internal/tensor"
)

// SPP is the spatial pyramid pooling block.
//
// The input is squeezed to half its channels with a 1x1 Conv, pooled at each
// configured window size (stride 1, padding k/2, so spatial size is
// preserved), and the squeezed map plus all pooled maps are concatenated on
// the channel axis before a final 1x1 Conv projects to the output width.
type SPP[B tensor.Backend] struct {
	cv1   *Conv[B]
	cv2   *Conv[B]
	pools []*MaxPool2D[B]
}

// NewSPP creates a spatial pyramid pooling block. kernels is the set of
// pooling window sizes; every kernel must be odd so that padding k/2
// preserves the spatial size.
func NewSPP[B tensor.Backend](c1, c2 int, kernels []int, backend B) *SPP[B] {
	if len(kernels) == 0 {
		panic("spp: at least one pooling kernel required")
	}
	for _, k := range kernels {
		if k <= 0 || k%2 == 0 {
			panic(fmt.Sprintf("spp: pooling kernel must be odd and positive, got %d", k))
		}
	}
	hidden := c1 / 2
	if hidden <= 0 {
		panic(fmt.Sprintf("spp: input channels %d too small to halve", c1))
	}

	pools := make([]*MaxPool2D[B], len(kernels))
	for i, k := range kernels {
		pools[i] = NewMaxPool2D[B](k, 1, k/2)
	}
	return &SPP[B]{
		cv1:   NewConv(c1, hidden, 1, 1, backend),
		cv2:   NewConv(hidden*(len(kernels)+1), c2, 1, 1, backend),
		pools: pools,
	}
}

// DefaultSPPKernels is the standard pooling window set.
func DefaultSPPKernels() []int {
	return []int{5, 9, 13}
}

// Forward applies the pyramid.
func (s *SPP[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	x := s.cv1.Forward(input)

	branches := make([]*tensor.Tensor[float32, B], 0, len(s.pools)+1)
	branches = append(branches, x)
	for _, p := range s.pools {
		branches = append(branches, p.Forward(x))
	}
	return s.cv2.Forward(tensor.Cat(branches, 1))
}

// Parameters returns the parameters of both projection convolutions.
func (s *SPP[B]) Parameters() []*Parameter[B] {
	params := s.cv1.Parameters()
	return append(params, s.cv2.Parameters()...)
}

// OutChannels reports the channel count produced by Forward.
func (s *SPP[B]) OutChannels() int {
	return s.cv2.OutChannels()
}
