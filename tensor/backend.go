// Copyright 2025 Keel ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

// Backend defines the interface that all compute backends must implement.
// Backends handle the actual computation for tensor operations.
//
// Implementations:
//   - backend/cpu: Pure Go, parallelized across physical cores
//   - backend/webgpu: Zero-CGO GPU compute via WebGPU (Windows)
//
// Operations never mutate their inputs unless the input buffer is uniquely
// referenced and the backend takes an in-place fast path, in which case the
// input is also the return value. Shape-contract violations panic.
//
// Example:
//
//	import (
//	    "github.com/keel-ml/keel/tensor"
//	    "github.com/keel-ml/keel/backend/cpu"
//	)
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
//	y := tensor.Ones[float32](tensor.Shape{2, 3}, backend)
//	z := x.Add(y) // uses backend.Add under the hood
type Backend interface {
	// Element-wise binary operations with NumPy-style broadcasting.
	Add(a, b *RawTensor) *RawTensor // Element-wise addition.
	Sub(a, b *RawTensor) *RawTensor // Element-wise subtraction.
	Mul(a, b *RawTensor) *RawTensor // Element-wise multiplication.
	Div(a, b *RawTensor) *RawTensor // Element-wise division.

	// Scalar operations (element-wise with scalar).
	AddScalar(x *RawTensor, scalar any) *RawTensor // Add scalar.
	SubScalar(x *RawTensor, scalar any) *RawTensor // Subtract scalar.
	MulScalar(x *RawTensor, scalar any) *RawTensor // Multiply by scalar.
	DivScalar(x *RawTensor, scalar any) *RawTensor // Divide by scalar.

	// Math operations (element-wise).
	Sqrt(x *RawTensor) *RawTensor // Square root.

	// Matrix operations.
	MatMul(a, b *RawTensor) *RawTensor      // 2D matrix multiplication.
	BatchMatMul(a, b *RawTensor) *RawTensor // Batched matmul for 3D/4D tensors.

	// Convolutional operations.
	Conv2D(input, kernel *RawTensor, stride, padH, padW, groups int) *RawTensor // Grouped 2D cross-correlation.
	MaxPool2D(input *RawTensor, kernel, stride, padding int) *RawTensor         // 2D max pooling, -Inf padding.

	// Shape operations.
	Reshape(x *RawTensor, shape Shape) *RawTensor // Reshape tensor (zero-copy view).
	Permute(x *RawTensor, axes ...int) *RawTensor // Reorder axes.
	Expand(x *RawTensor, shape Shape) *RawTensor  // Materialize a broadcast.

	// Manipulation operations.
	Cat(tensors []*RawTensor, dim int) *RawTensor // Concatenate along an axis.
	Chunk(x *RawTensor, n, dim int) []*RawTensor  // Split into n equal parts.
	Unsqueeze(x *RawTensor, dim int) *RawTensor   // Insert a size-1 axis.
	Squeeze(x *RawTensor, dim int) *RawTensor     // Remove a size-1 axis.

	// Reductions.
	Sum(x *RawTensor) *RawTensor                            // Total sum, shape [1].
	SumDim(x *RawTensor, dim int, keepDim bool) *RawTensor  // Sum along an axis.
	MeanDim(x *RawTensor, dim int, keepDim bool) *RawTensor // Mean along an axis.
	MaxDim(x *RawTensor, dim int, keepDim bool) *RawTensor  // Max along an axis.

	// Activation functions.
	ReLU(x *RawTensor) *RawTensor                             // max(0, x).
	LeakyReLU(x *RawTensor, negativeSlope float64) *RawTensor // x or slope*x.
	Sigmoid(x *RawTensor) *RawTensor                          // 1/(1+exp(-x)).
	Hardswish(x *RawTensor) *RawTensor                        // x * clamp(x+3, 0, 6)/6.

	// Metadata.
	Name() string   // Backend name ("cpu", "webgpu").
	Device() Device // Device tensors live on.
}
