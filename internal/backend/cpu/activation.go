package cpu

import (
	"fmt"
	"math"

	"github.com/keel-ml/keel/internal/tensor"
)

// ReLU computes max(0, x) element-wise.
func (cpu *CPUBackend) ReLU(x *tensor.RawTensor) *tensor.RawTensor {
	switch x.DType() {
	case tensor.Float32:
		return unaryOp(cpu, "relu", x, func(v float32) float32 {
			if v > 0 {
				return v
			}
			return 0
		})
	case tensor.Float64:
		return unaryOp(cpu, "relu", x, func(v float64) float64 {
			if v > 0 {
				return v
			}
			return 0
		})
	default:
		panic(fmt.Sprintf("relu: unsupported dtype %s", x.DType()))
	}
}

// LeakyReLU computes x for x >= 0 and negativeSlope*x otherwise.
func (cpu *CPUBackend) LeakyReLU(x *tensor.RawTensor, negativeSlope float64) *tensor.RawTensor {
	switch x.DType() {
	case tensor.Float32:
		slope := float32(negativeSlope)
		return unaryOp(cpu, "leaky_relu", x, func(v float32) float32 {
			if v >= 0 {
				return v
			}
			return slope * v
		})
	case tensor.Float64:
		return unaryOp(cpu, "leaky_relu", x, func(v float64) float64 {
			if v >= 0 {
				return v
			}
			return negativeSlope * v
		})
	default:
		panic(fmt.Sprintf("leaky_relu: unsupported dtype %s", x.DType()))
	}
}

// Sigmoid computes 1/(1+exp(-x)) element-wise.
func (cpu *CPUBackend) Sigmoid(x *tensor.RawTensor) *tensor.RawTensor {
	switch x.DType() {
	case tensor.Float32:
		return unaryOp(cpu, "sigmoid", x, func(v float32) float32 {
			return float32(1.0 / (1.0 + math.Exp(float64(-v))))
		})
	case tensor.Float64:
		return unaryOp(cpu, "sigmoid", x, func(v float64) float64 {
			return 1.0 / (1.0 + math.Exp(-v))
		})
	default:
		panic(fmt.Sprintf("sigmoid: unsupported dtype %s", x.DType()))
	}
}

// Hardswish computes x * clamp(x+3, 0, 6) / 6 element-wise, the
// hard-sigmoid-gated linear activation used by the fused conv block.
func (cpu *CPUBackend) Hardswish(x *tensor.RawTensor) *tensor.RawTensor {
	switch x.DType() {
	case tensor.Float32:
		return unaryOp(cpu, "hardswish", x, hardswish[float32])
	case tensor.Float64:
		return unaryOp(cpu, "hardswish", x, hardswish[float64])
	default:
		panic(fmt.Sprintf("hardswish: unsupported dtype %s", x.DType()))
	}
}

func hardswish[T tensor.DType](v T) T {
	switch {
	case v <= -3:
		return 0
	case v >= 3:
		return v
	default:
		return v * (v + 3) / 6
	}
}
