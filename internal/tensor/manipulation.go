package tensor

import "fmt"

// Cat concatenates tensors along the given axis. All other axes must match
// exactly; a mismatch panics in the backend kernel.
//
// Example:
//
//	y := tensor.Cat([]*tensor.Tensor[float32, B]{a, b}, 1) // channel concat
func Cat[T DType, B Backend](tensors []*Tensor[T, B], dim int) *Tensor[T, B] {
	if len(tensors) == 0 {
		panic("cat: empty tensor list")
	}
	raws := make([]*RawTensor, len(tensors))
	for i, t := range tensors {
		raws[i] = t.raw
	}
	b := tensors[0].backend
	return New[T, B](b.Cat(raws, dim), b)
}

// Chunk splits the tensor into n equal parts along an axis.
func (t *Tensor[T, B]) Chunk(n, dim int) []*Tensor[T, B] {
	raws := t.backend.Chunk(t.raw, n, dim)
	out := make([]*Tensor[T, B], len(raws))
	for i, r := range raws {
		out[i] = New[T, B](r, t.backend)
	}
	return out
}

// Unsqueeze inserts a size-1 axis at dim.
func (t *Tensor[T, B]) Unsqueeze(dim int) *Tensor[T, B] {
	return New[T, B](t.backend.Unsqueeze(t.raw, dim), t.backend)
}

// Squeeze removes a size-1 axis at dim. Panics if the axis size is not 1.
func (t *Tensor[T, B]) Squeeze(dim int) *Tensor[T, B] {
	return New[T, B](t.backend.Squeeze(t.raw, dim), t.backend)
}

// Flatten2D collapses all axes after the first into one, producing
// (N, rest). The classification head uses this after global pooling.
func (t *Tensor[T, B]) Flatten2D() *Tensor[T, B] {
	shape := t.Shape()
	if len(shape) < 2 {
		panic(fmt.Sprintf("flatten: need at least 2 axes, got shape %v", shape))
	}
	return t.Reshape(shape[0], t.NumElements()/shape[0])
}
