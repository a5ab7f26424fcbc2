package cpu

import (
	"fmt"

	"github.com/keel-ml/keel/internal/tensor"
)

// binaryOp applies op element-wise. Same-shape inputs take a vectorized fast
// path (in-place into a when its buffer is unique); mismatched shapes fall
// back to the broadcast loop.
func binaryOp[T tensor.DType](cpu *CPUBackend, name string, a, b *tensor.RawTensor, op func(T, T) T) *tensor.RawTensor {
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("%s: dtype mismatch %s vs %s", name, a.DType(), b.DType()))
	}

	outShape, expands, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	if !expands && a.Shape().Equal(b.Shape()) {
		if a.IsUnique() {
			dst := asSlice[T](a)
			src := asSlice[T](b)
			for i := range dst {
				dst[i] = op(dst[i], src[i])
			}
			return a
		}
		result := cpu.newRaw(name, outShape, a.DType())
		dst := asSlice[T](result)
		xs := asSlice[T](a)
		ys := asSlice[T](b)
		for i := range dst {
			dst[i] = op(xs[i], ys[i])
		}
		return result
	}

	result := cpu.newRaw(name, outShape, a.DType())
	binaryBroadcast(result, a, b, outShape, op)
	return result
}

// effectiveStrides returns strides for shape aligned to the (longer) output
// shape, with broadcast axes (size 1 or missing) given stride 0.
func effectiveStrides(shape, out tensor.Shape) []int {
	strides := shape.ComputeStrides()
	eff := make([]int, len(out))
	offset := len(out) - len(shape)
	for i := range out {
		if i < offset {
			continue
		}
		if shape[i-offset] != 1 {
			eff[i] = strides[i-offset]
		}
	}
	return eff
}

func binaryBroadcast[T tensor.DType](result, a, b *tensor.RawTensor, out tensor.Shape, op func(T, T) T) {
	dst := asSlice[T](result)
	xs := asSlice[T](a)
	ys := asSlice[T](b)
	effA := effectiveStrides(a.Shape(), out)
	effB := effectiveStrides(b.Shape(), out)

	coords := make([]int, len(out))
	for i := range dst {
		ai, bi := 0, 0
		for d := range coords {
			ai += coords[d] * effA[d]
			bi += coords[d] * effB[d]
		}
		dst[i] = op(xs[ai], ys[bi])

		for d := len(coords) - 1; d >= 0; d-- {
			coords[d]++
			if coords[d] < out[d] {
				break
			}
			coords[d] = 0
		}
	}
}

// unaryOp applies op element-wise into a fresh tensor.
func unaryOp[T tensor.DType](cpu *CPUBackend, name string, x *tensor.RawTensor, op func(T) T) *tensor.RawTensor {
	result := cpu.newRaw(name, x.Shape(), x.DType())
	dst := asSlice[T](result)
	src := asSlice[T](x)
	for i := range dst {
		dst[i] = op(src[i])
	}
	return result
}
