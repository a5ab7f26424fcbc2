package cpu

import (
	"fmt"
	"math"

	"github.com/keel-ml/keel/internal/tensor"
)

// toFloat64 normalizes the scalar argument of the *Scalar operations.
func toFloat64(name string, scalar any) float64 {
	switch s := scalar.(type) {
	case float32:
		return float64(s)
	case float64:
		return s
	case int:
		return float64(s)
	default:
		panic(fmt.Sprintf("%s: unsupported scalar type %T", name, scalar))
	}
}

func scalarOp[T tensor.DType](cpu *CPUBackend, name string, x *tensor.RawTensor, s T, op func(T, T) T) *tensor.RawTensor {
	result := cpu.newRaw(name, x.Shape(), x.DType())
	dst := asSlice[T](result)
	src := asSlice[T](x)
	for i := range dst {
		dst[i] = op(src[i], s)
	}
	return result
}

func dispatchScalar(cpu *CPUBackend, name string, x *tensor.RawTensor, scalar any,
	op32 func(float32, float32) float32, op64 func(float64, float64) float64,
) *tensor.RawTensor {
	s := toFloat64(name, scalar)
	switch x.DType() {
	case tensor.Float32:
		return scalarOp(cpu, name, x, float32(s), op32)
	case tensor.Float64:
		return scalarOp(cpu, name, x, s, op64)
	default:
		panic(fmt.Sprintf("%s: unsupported dtype %s", name, x.DType()))
	}
}

// AddScalar adds a scalar to every element.
func (cpu *CPUBackend) AddScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return dispatchScalar(cpu, "add_scalar", x, scalar,
		func(v, s float32) float32 { return v + s },
		func(v, s float64) float64 { return v + s })
}

// SubScalar subtracts a scalar from every element.
func (cpu *CPUBackend) SubScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return dispatchScalar(cpu, "sub_scalar", x, scalar,
		func(v, s float32) float32 { return v - s },
		func(v, s float64) float64 { return v - s })
}

// MulScalar multiplies every element by a scalar.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return dispatchScalar(cpu, "mul_scalar", x, scalar,
		func(v, s float32) float32 { return v * s },
		func(v, s float64) float64 { return v * s })
}

// DivScalar divides every element by a scalar.
func (cpu *CPUBackend) DivScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	return dispatchScalar(cpu, "div_scalar", x, scalar,
		func(v, s float32) float32 { return v / s },
		func(v, s float64) float64 { return v / s })
}

// Sqrt computes the element-wise square root.
func (cpu *CPUBackend) Sqrt(x *tensor.RawTensor) *tensor.RawTensor {
	switch x.DType() {
	case tensor.Float32:
		return unaryOp(cpu, "sqrt", x, func(v float32) float32 { return float32(math.Sqrt(float64(v))) })
	case tensor.Float64:
		return unaryOp(cpu, "sqrt", x, math.Sqrt)
	default:
		panic(fmt.Sprintf("sqrt: unsupported dtype %s", x.DType()))
	}
}
