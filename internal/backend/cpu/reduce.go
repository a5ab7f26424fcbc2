package cpu

import (
	"fmt"
	"math"

	"github.com/keel-ml/keel/internal/tensor"
)

// Sum reduces all elements to a single-element tensor of shape [1].
func (cpu *CPUBackend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	result := cpu.newRaw("sum", tensor.Shape{1}, x.DType())
	switch x.DType() {
	case tensor.Float32:
		var total float32
		for _, v := range asSlice[float32](x) {
			total += v
		}
		asSlice[float32](result)[0] = total
	case tensor.Float64:
		var total float64
		for _, v := range asSlice[float64](x) {
			total += v
		}
		asSlice[float64](result)[0] = total
	default:
		panic(fmt.Sprintf("sum: unsupported dtype %s", x.DType()))
	}
	return result
}

// SumDim sums along one axis.
func (cpu *CPUBackend) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	return cpu.reduceDim("sum_dim", x, dim, keepDim, reduceSum)
}

// MeanDim averages along one axis. Global average pooling is MeanDim over
// height then width with keepDim.
func (cpu *CPUBackend) MeanDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	return cpu.reduceDim("mean_dim", x, dim, keepDim, reduceMean)
}

// MaxDim takes the maximum along one axis. The spatial attention block uses
// this over the channel axis, the channel attention block over H and W.
func (cpu *CPUBackend) MaxDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	return cpu.reduceDim("max_dim", x, dim, keepDim, reduceMax)
}

type reduceKind int

const (
	reduceSum reduceKind = iota
	reduceMean
	reduceMax
)

func (cpu *CPUBackend) reduceDim(name string, x *tensor.RawTensor, dim int, keepDim bool, kind reduceKind) *tensor.RawTensor {
	shape := x.Shape()
	if dim < 0 {
		dim = len(shape) + dim
	}
	if dim < 0 || dim >= len(shape) {
		panic(fmt.Sprintf("%s: axis %d out of range for %dD tensor", name, dim, len(shape)))
	}

	outShape := make(tensor.Shape, 0, len(shape))
	for d, size := range shape {
		switch {
		case d != dim:
			outShape = append(outShape, size)
		case keepDim:
			outShape = append(outShape, 1)
		}
	}
	if len(outShape) == 0 {
		outShape = tensor.Shape{1}
	}

	result := cpu.newRaw(name, outShape, x.DType())

	outer := 1
	for d := 0; d < dim; d++ {
		outer *= shape[d]
	}
	size := shape[dim]
	inner := 1
	for d := dim + 1; d < len(shape); d++ {
		inner *= shape[d]
	}

	switch x.DType() {
	case tensor.Float32:
		reduceKernel(asSlice[float32](result), asSlice[float32](x), outer, size, inner, kind)
	case tensor.Float64:
		reduceKernel(asSlice[float64](result), asSlice[float64](x), outer, size, inner, kind)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", name, x.DType()))
	}
	return result
}

func reduceKernel[T tensor.DType](dst, src []T, outer, size, inner int, kind reduceKind) {
	negInf := T(math.Inf(-1))
	for o := 0; o < outer; o++ {
		for i := 0; i < inner; i++ {
			var acc T
			if kind == reduceMax {
				acc = negInf
			}
			for d := 0; d < size; d++ {
				v := src[(o*size+d)*inner+i]
				if kind == reduceMax {
					if v > acc {
						acc = v
					}
				} else {
					acc += v
				}
			}
			if kind == reduceMean {
				acc /= T(size)
			}
			dst[o*inner+i] = acc
		}
	}
}
