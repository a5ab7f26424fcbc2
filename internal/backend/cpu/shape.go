package cpu

import (
	"fmt"

	"github.com/keel-ml/keel/internal/tensor"
)

// Reshape returns a view with a new shape sharing the same buffer.
// CPU tensors are always contiguous, so this is zero-copy.
func (cpu *CPUBackend) Reshape(x *tensor.RawTensor, shape tensor.Shape) *tensor.RawTensor {
	if err := shape.Validate(); err != nil {
		panic(fmt.Sprintf("reshape: %v", err))
	}
	return x.View(shape)
}

// Permute reorders the tensor's axes, materializing the result.
// The window partition/reverse pair and the cross-axis attention transposes
// are all built on this.
func (cpu *CPUBackend) Permute(x *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	shape := x.Shape()
	ndim := len(shape)

	if len(axes) == 0 {
		// Default: reverse all axes.
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}
	if len(axes) != ndim {
		panic(fmt.Sprintf("permute: got %d axes for %dD tensor", len(axes), ndim))
	}

	seen := make([]bool, ndim)
	for _, ax := range axes {
		if ax < 0 || ax >= ndim {
			panic(fmt.Sprintf("permute: axis %d out of range for %dD tensor", ax, ndim))
		}
		if seen[ax] {
			panic(fmt.Sprintf("permute: duplicate axis %d", ax))
		}
		seen[ax] = true
	}

	outShape := make(tensor.Shape, ndim)
	for i, ax := range axes {
		outShape[i] = shape[ax]
	}

	result := cpu.newRaw("permute", outShape, x.DType())
	switch x.DType() {
	case tensor.Float32:
		permuteKernel(asSlice[float32](result), asSlice[float32](x), shape, outShape, axes)
	case tensor.Float64:
		permuteKernel(asSlice[float64](result), asSlice[float64](x), shape, outShape, axes)
	default:
		panic(fmt.Sprintf("permute: unsupported dtype %s", x.DType()))
	}
	return result
}

func permuteKernel[T tensor.DType](dst, src []T, inShape, outShape tensor.Shape, axes []int) {
	inStrides := inShape.ComputeStrides()

	// srcStride[i] is the source stride of output axis i, so walking output
	// coordinates in order gives the source index directly.
	srcStride := make([]int, len(axes))
	for i, ax := range axes {
		srcStride[i] = inStrides[ax]
	}

	coords := make([]int, len(outShape))
	for i := range dst {
		si := 0
		for d := range coords {
			si += coords[d] * srcStride[d]
		}
		dst[i] = src[si]

		for d := len(coords) - 1; d >= 0; d-- {
			coords[d]++
			if coords[d] < outShape[d] {
				break
			}
			coords[d] = 0
		}
	}
}

// Expand materializes a broadcast of x to the given shape.
func (cpu *CPUBackend) Expand(x *tensor.RawTensor, shape tensor.Shape) *tensor.RawTensor {
	xs := x.Shape()
	if len(shape) < len(xs) {
		panic(fmt.Sprintf("expand: target shape %v has fewer axes than %v", shape, xs))
	}
	offset := len(shape) - len(xs)
	for i, dim := range xs {
		if dim != 1 && dim != shape[offset+i] {
			panic(fmt.Sprintf("expand: cannot expand axis %d from %d to %d", i, dim, shape[offset+i]))
		}
	}

	result := cpu.newRaw("expand", shape, x.DType())
	switch x.DType() {
	case tensor.Float32:
		expandKernel(asSlice[float32](result), asSlice[float32](x), x.Shape(), shape)
	case tensor.Float64:
		expandKernel(asSlice[float64](result), asSlice[float64](x), x.Shape(), shape)
	default:
		panic(fmt.Sprintf("expand: unsupported dtype %s", x.DType()))
	}
	return result
}

func expandKernel[T tensor.DType](dst, src []T, inShape, outShape tensor.Shape) {
	eff := effectiveStrides(inShape, outShape)
	coords := make([]int, len(outShape))
	for i := range dst {
		si := 0
		for d := range coords {
			si += coords[d] * eff[d]
		}
		dst[i] = src[si]

		for d := len(coords) - 1; d >= 0; d-- {
			coords[d]++
			if coords[d] < outShape[d] {
				break
			}
			coords[d] = 0
		}
	}
}
