// Package cpu implements the pure-Go CPU backend for tensor operations.
package cpu

import (
	"fmt"

	"github.com/keel-ml/keel/internal/parallel"
	"github.com/keel-ml/keel/internal/tensor"
)

// CPUBackend implements tensor.Backend with pure-Go kernels.
// Convolution and pooling fan out across goroutines via internal/parallel.
type CPUBackend struct {
	device tensor.Device
	par    parallel.Config
}

// New creates a new CPU backend with default parallelism.
func New() *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
		par:    parallel.HeavyConfig(),
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// asSlice returns the typed view of a raw tensor's buffer.
func asSlice[T tensor.DType](r *tensor.RawTensor) []T {
	var dummy T
	switch any(dummy).(type) {
	case float32:
		return any(r.AsFloat32()).([]T)
	case float64:
		return any(r.AsFloat64()).([]T)
	default:
		panic("unsupported element type")
	}
}

// newRaw allocates a result tensor or panics; kernel-level allocation
// failures are structural bugs (invalid shapes), not runtime conditions.
func (cpu *CPUBackend) newRaw(name string, shape tensor.Shape, dtype tensor.DataType) *tensor.RawTensor {
	r, err := tensor.NewRaw(shape, dtype, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}
	return r
}

// Add performs element-wise addition with broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	switch a.DType() {
	case tensor.Float32:
		return binaryOp(cpu, "add", a, b, func(x, y float32) float32 { return x + y })
	case tensor.Float64:
		return binaryOp(cpu, "add", a, b, func(x, y float64) float64 { return x + y })
	default:
		panic(fmt.Sprintf("add: unsupported dtype %s", a.DType()))
	}
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	switch a.DType() {
	case tensor.Float32:
		return binaryOp(cpu, "sub", a, b, func(x, y float32) float32 { return x - y })
	case tensor.Float64:
		return binaryOp(cpu, "sub", a, b, func(x, y float64) float64 { return x - y })
	default:
		panic(fmt.Sprintf("sub: unsupported dtype %s", a.DType()))
	}
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	switch a.DType() {
	case tensor.Float32:
		return binaryOp(cpu, "mul", a, b, func(x, y float32) float32 { return x * y })
	case tensor.Float64:
		return binaryOp(cpu, "mul", a, b, func(x, y float64) float64 { return x * y })
	default:
		panic(fmt.Sprintf("mul: unsupported dtype %s", a.DType()))
	}
}

// Div performs element-wise division with broadcasting.
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	switch a.DType() {
	case tensor.Float32:
		return binaryOp(cpu, "div", a, b, func(x, y float32) float32 { return x / y })
	case tensor.Float64:
		return binaryOp(cpu, "div", a, b, func(x, y float64) float64 { return x / y })
	default:
		panic(fmt.Sprintf("div: unsupported dtype %s", a.DType()))
	}
}
