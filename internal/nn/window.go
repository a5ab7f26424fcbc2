package nn

import (
	"fmt"

	"github.com/keel-ml/keel/internal/tensor"
)

// WindowPartition splits a feature map (n, c, h, w) into non-overlapping
// square windows of the given size, stacked on the batch axis as
// (n * h/size * w/size, c, size, size). Windows are ordered row-major within
// each batch element. Panics if h or w is not divisible by size.
func WindowPartition[B tensor.Backend](input *tensor.Tensor[float32, B], size int) *tensor.Tensor[float32, B] {
	shape := input.Shape()
	if len(shape) != 4 {
		panic(fmt.Sprintf("window partition: expected 4D input, got %dD", len(shape)))
	}
	n, c, h, w := shape[0], shape[1], shape[2], shape[3]
	if size <= 0 || h%size != 0 || w%size != 0 {
		panic(fmt.Sprintf("window partition: spatial size (%d, %d) not divisible by window %d", h, w, size))
	}
	hn, wn := h/size, w/size

	x := input.Reshape(n, c, hn, size, wn, size)
	x = x.Permute(0, 2, 4, 1, 3, 5)
	return x.Reshape(n*hn*wn, c, size, size)
}

// WindowReverse is the inverse of WindowPartition: windows stacked on the
// batch axis are reassembled into (n, c, h, w). The window count must equal
// n * h/size * w/size for the given target size.
func WindowReverse[B tensor.Backend](windows *tensor.Tensor[float32, B], size, h, w int) *tensor.Tensor[float32, B] {
	shape := windows.Shape()
	if len(shape) != 4 {
		panic(fmt.Sprintf("window reverse: expected 4D input, got %dD", len(shape)))
	}
	if size <= 0 || h%size != 0 || w%size != 0 {
		panic(fmt.Sprintf("window reverse: target size (%d, %d) not divisible by window %d", h, w, size))
	}
	if shape[2] != size || shape[3] != size {
		panic(fmt.Sprintf("window reverse: window shape (%d, %d) does not match size %d", shape[2], shape[3], size))
	}
	hn, wn := h/size, w/size
	if shape[0]%(hn*wn) != 0 {
		panic(fmt.Sprintf("window reverse: %d windows do not tile a (%d, %d) map", shape[0], h, w))
	}
	n, c := shape[0]/(hn*wn), shape[1]

	x := windows.Reshape(n, hn, wn, c, size, size)
	x = x.Permute(0, 3, 1, 4, 2, 5)
	return x.Reshape(n, c, h, w)
}
