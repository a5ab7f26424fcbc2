//go:build windows

package webgpu

import (
	"fmt"

	"github.com/keel-ml/keel/internal/tensor"
)

// Element-wise binary operations.

// Add performs element-wise addition on GPU.
func (b *Backend) Add(a, other *tensor.RawTensor) *tensor.RawTensor {
	result, err := b.runBinaryOp(a, other, "add", addShader)
	if err != nil {
		panic("webgpu: Add: " + err.Error())
	}
	return result
}

// Sub performs element-wise subtraction on GPU.
func (b *Backend) Sub(a, other *tensor.RawTensor) *tensor.RawTensor {
	result, err := b.runBinaryOp(a, other, "sub", subShader)
	if err != nil {
		panic("webgpu: Sub: " + err.Error())
	}
	return result
}

// Mul performs element-wise multiplication on GPU.
func (b *Backend) Mul(a, other *tensor.RawTensor) *tensor.RawTensor {
	result, err := b.runBinaryOp(a, other, "mul", mulShader)
	if err != nil {
		panic("webgpu: Mul: " + err.Error())
	}
	return result
}

// Div performs element-wise division on GPU.
func (b *Backend) Div(a, other *tensor.RawTensor) *tensor.RawTensor {
	result, err := b.runBinaryOp(a, other, "div", divShader)
	if err != nil {
		panic("webgpu: Div: " + err.Error())
	}
	return result
}

// Scalar operations. The scalar rides in the uniform's alpha slot.

// AddScalar adds a scalar to tensor elements on GPU.
func (b *Backend) AddScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result, err := b.runUnaryOp(x, "scalarAdd", scalarAddShader, toFloat32(scalar))
	if err != nil {
		panic("webgpu: AddScalar: " + err.Error())
	}
	return result
}

// SubScalar subtracts a scalar from tensor elements on GPU.
func (b *Backend) SubScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	// x - s = x + (-s)
	result, err := b.runUnaryOp(x, "scalarAdd", scalarAddShader, -toFloat32(scalar))
	if err != nil {
		panic("webgpu: SubScalar: " + err.Error())
	}
	return result
}

// MulScalar multiplies tensor elements by a scalar on GPU.
func (b *Backend) MulScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	result, err := b.runUnaryOp(x, "scalarMul", scalarMulShader, toFloat32(scalar))
	if err != nil {
		panic("webgpu: MulScalar: " + err.Error())
	}
	return result
}

// DivScalar divides tensor elements by a scalar on GPU.
func (b *Backend) DivScalar(x *tensor.RawTensor, scalar any) *tensor.RawTensor {
	s := toFloat32(scalar)
	if s == 0 {
		panic("webgpu: DivScalar: division by zero")
	}
	// x / s = x * (1/s)
	result, err := b.runUnaryOp(x, "scalarMul", scalarMulShader, 1.0/s)
	if err != nil {
		panic("webgpu: DivScalar: " + err.Error())
	}
	return result
}

// Sqrt computes the element-wise square root on GPU.
func (b *Backend) Sqrt(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := b.runUnaryOp(x, "sqrt", sqrtShader, 0)
	if err != nil {
		panic("webgpu: Sqrt: " + err.Error())
	}
	return result
}

// Activations.

// ReLU applies max(0, x) element-wise on GPU.
func (b *Backend) ReLU(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := b.runUnaryOp(x, "relu", reluShader, 0)
	if err != nil {
		panic("webgpu: ReLU: " + err.Error())
	}
	return result
}

// LeakyReLU applies x for x >= 0 and negativeSlope*x otherwise on GPU.
func (b *Backend) LeakyReLU(x *tensor.RawTensor, negativeSlope float64) *tensor.RawTensor {
	result, err := b.runUnaryOp(x, "leakyRelu", leakyReluShader, float32(negativeSlope))
	if err != nil {
		panic("webgpu: LeakyReLU: " + err.Error())
	}
	return result
}

// Sigmoid applies 1/(1+exp(-x)) element-wise on GPU.
func (b *Backend) Sigmoid(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := b.runUnaryOp(x, "sigmoid", sigmoidShader, 0)
	if err != nil {
		panic("webgpu: Sigmoid: " + err.Error())
	}
	return result
}

// Hardswish applies x * clamp(x+3, 0, 6)/6 element-wise on GPU.
func (b *Backend) Hardswish(x *tensor.RawTensor) *tensor.RawTensor {
	result, err := b.runUnaryOp(x, "hardswish", hardswishShader, 0)
	if err != nil {
		panic("webgpu: Hardswish: " + err.Error())
	}
	return result
}

// MatMul multiplies 2D matrices on GPU.
func (b *Backend) MatMul(a, other *tensor.RawTensor) *tensor.RawTensor {
	result, err := b.runMatMul(a, other)
	if err != nil {
		panic("webgpu: MatMul: " + err.Error())
	}
	return result
}

// Zero-copy shape views; no GPU work required.

// Reshape returns a view with a new shape.
func (b *Backend) Reshape(x *tensor.RawTensor, shape tensor.Shape) *tensor.RawTensor {
	return x.View(shape)
}

// Unsqueeze inserts a size-1 axis at dim (zero-copy view).
func (b *Backend) Unsqueeze(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	if dim < 0 || dim > len(shape) {
		panic(fmt.Sprintf("webgpu: unsqueeze: axis %d out of range for %dD tensor", dim, len(shape)))
	}
	newShape := make(tensor.Shape, 0, len(shape)+1)
	newShape = append(newShape, shape[:dim]...)
	newShape = append(newShape, 1)
	newShape = append(newShape, shape[dim:]...)
	return x.View(newShape)
}

// Squeeze removes a size-1 axis at dim (zero-copy view).
func (b *Backend) Squeeze(x *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := x.Shape()
	if dim < 0 || dim >= len(shape) {
		panic(fmt.Sprintf("webgpu: squeeze: axis %d out of range for %dD tensor", dim, len(shape)))
	}
	if shape[dim] != 1 {
		panic(fmt.Sprintf("webgpu: squeeze: axis %d has size %d, want 1", dim, shape[dim]))
	}
	newShape := make(tensor.Shape, 0, len(shape)-1)
	newShape = append(newShape, shape[:dim]...)
	newShape = append(newShape, shape[dim+1:]...)
	return x.View(newShape)
}

// Operations without a GPU implementation; run these on the CPU backend.

// BatchMatMul is not implemented on GPU.
func (b *Backend) BatchMatMul(a, other *tensor.RawTensor) *tensor.RawTensor {
	panic("webgpu: BatchMatMul not implemented; use the CPU backend")
}

// Conv2D is not implemented on GPU.
func (b *Backend) Conv2D(input, kernel *tensor.RawTensor, stride, padH, padW, groups int) *tensor.RawTensor {
	panic("webgpu: Conv2D not implemented; use the CPU backend")
}

// MaxPool2D is not implemented on GPU.
func (b *Backend) MaxPool2D(input *tensor.RawTensor, kernel, stride, padding int) *tensor.RawTensor {
	panic("webgpu: MaxPool2D not implemented; use the CPU backend")
}

// Permute is not implemented on GPU.
func (b *Backend) Permute(x *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	panic("webgpu: Permute not implemented; use the CPU backend")
}

// Expand is not implemented on GPU.
func (b *Backend) Expand(x *tensor.RawTensor, shape tensor.Shape) *tensor.RawTensor {
	panic("webgpu: Expand not implemented; use the CPU backend")
}

// Cat is not implemented on GPU.
func (b *Backend) Cat(tensors []*tensor.RawTensor, dim int) *tensor.RawTensor {
	panic("webgpu: Cat not implemented; use the CPU backend")
}

// Chunk is not implemented on GPU.
func (b *Backend) Chunk(x *tensor.RawTensor, n, dim int) []*tensor.RawTensor {
	panic("webgpu: Chunk not implemented; use the CPU backend")
}

// Sum is not implemented on GPU.
func (b *Backend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	panic("webgpu: Sum not implemented; use the CPU backend")
}

// SumDim is not implemented on GPU.
func (b *Backend) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	panic("webgpu: SumDim not implemented; use the CPU backend")
}

// MeanDim is not implemented on GPU.
func (b *Backend) MeanDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	panic("webgpu: MeanDim not implemented; use the CPU backend")
}

// MaxDim is not implemented on GPU.
func (b *Backend) MaxDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	panic("webgpu: MaxDim not implemented; use the CPU backend")
}

// toFloat32 converts any numeric type to float32.
func toFloat32(v any) float32 {
	switch val := v.(type) {
	case float32:
		return val
	case float64:
		return float32(val)
	case int:
		return float32(val)
	case int32:
		return float32(val)
	case int64:
		return float32(val)
	default:
		panic("webgpu: unsupported scalar type")
	}
}
