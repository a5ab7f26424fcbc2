package cpu

import (
	"fmt"

	"github.com/keel-ml/keel/internal/tensor"
)

// Cat concatenates tensors along the given axis. Every other axis must match
// exactly across all inputs; a mismatch panics rather than broadcasting.
func (cpu *CPUBackend) Cat(tensors []*tensor.RawTensor, dim int) *tensor.RawTensor {
	if len(tensors) == 0 {
		panic("cat: empty tensor list")
	}

	first := tensors[0].Shape()
	ndim := len(first)
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("cat: axis %d out of range for %dD tensor", dim, ndim))
	}

	catSize := 0
	for i, t := range tensors {
		s := t.Shape()
		if len(s) != ndim {
			panic(fmt.Sprintf("cat: tensor %d has rank %d, want %d", i, len(s), ndim))
		}
		if t.DType() != tensors[0].DType() {
			panic(fmt.Sprintf("cat: tensor %d has dtype %s, want %s", i, t.DType(), tensors[0].DType()))
		}
		for d := 0; d < ndim; d++ {
			if d != dim && s[d] != first[d] {
				panic(fmt.Sprintf("cat: tensor %d axis %d is %d, want %d", i, d, s[d], first[d]))
			}
		}
		catSize += s[dim]
	}

	outShape := first.Clone()
	outShape[dim] = catSize
	result := cpu.newRaw("cat", outShape, tensors[0].DType())

	// Copy rows bytewise: each outer index owns one contiguous span per input.
	outer := 1
	for d := 0; d < dim; d++ {
		outer *= first[d]
	}

	dst := result.Data()
	dstRow := result.ByteSize() / outer
	rowOffset := 0
	for _, t := range tensors {
		src := t.Data()
		srcRow := t.ByteSize() / outer
		for o := 0; o < outer; o++ {
			copy(dst[o*dstRow+rowOffset:], src[o*srcRow:(o+1)*srcRow])
		}
		rowOffset += srcRow
	}
	return result
}

// Chunk splits the tensor into n equal parts along an axis.
// The axis size must be divisible by n.
func (cpu *CPUBackend) Chunk(x *tensor.RawTensor, n, dim int) []*tensor.RawTensor {
	shape := x.Shape()
	if dim < 0 || dim >= len(shape) {
		panic(fmt.Sprintf("chunk: axis %d out of range for %dD tensor", dim, len(shape)))
	}
	if n <= 0 || shape[dim]%n != 0 {
		panic(fmt.Sprintf("chunk: cannot split axis of size %d into %d parts", shape[dim], n))
	}

	partShape := shape.Clone()
	partShape[dim] = shape[dim] / n

	outer := 1
	for d := 0; d < dim; d++ {
		outer *= shape[d]
	}

	src := x.Data()
	srcRow := x.ByteSize() / outer
	partRow := srcRow / n

	parts := make([]*tensor.RawTensor, n)
	for i := range parts {
		part := cpu.newRaw("chunk", partShape, x.DType())
		dst := part.Data()
		for o := 0; o < outer; o++ {
			copy(dst[o*partRow:(o+1)*partRow], src[o*srcRow+i*partRow:])
		}
		parts[i] = part
	}
	return parts
}

// Unsqueeze inserts a size-1 axis at dim (zero-copy view).
func (cpu *CPUBackend) Unsqueeze(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	if dim < 0 || dim > len(shape) {
		panic(fmt.Sprintf("unsqueeze: axis %d out of range for %dD tensor", dim, len(shape)))
	}
	newShape := make(tensor.Shape, 0, len(shape)+1)
	newShape = append(newShape, shape[:dim]...)
	newShape = append(newShape, 1)
	newShape = append(newShape, shape[dim:]...)
	return x.View(newShape)
}

// Squeeze removes a size-1 axis at dim (zero-copy view).
func (cpu *CPUBackend) Squeeze(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	if dim < 0 || dim >= len(shape) {
		panic(fmt.Sprintf("squeeze: axis %d out of range for %dD tensor", dim, len(shape)))
	}
	if shape[dim] != 1 {
		panic(fmt.Sprintf("squeeze: axis %d has size %d, want 1", dim, shape[dim]))
	}
	newShape := make(tensor.Shape, 0, len(shape)-1)
	newShape = append(newShape, shape[:dim]...)
	newShape = append(newShape, shape[dim+1:]...)
	return x.View(newShape)
}
