package tensor

// Backend is the compute interface every device implementation satisfies.
// All operations are pure: they never mutate their inputs unless the input
// buffer is unique and the backend chooses an in-place fast path, in which
// case the input is also the return value.
//
// Shape-contract violations (mismatched axes, indivisible group counts,
// invalid permutations) panic: they are structural bugs in model assembly,
// not recoverable runtime conditions.
type Backend interface {
	// Element-wise binary operations with NumPy-style broadcasting.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// Element-wise operations against a scalar.
	AddScalar(x *RawTensor, scalar any) *RawTensor
	SubScalar(x *RawTensor, scalar any) *RawTensor
	MulScalar(x *RawTensor, scalar any) *RawTensor
	DivScalar(x *RawTensor, scalar any) *RawTensor

	// Element-wise math.
	Sqrt(x *RawTensor) *RawTensor

	// MatMul multiplies 2D matrices: [M,K] @ [K,N] -> [M,N].
	MatMul(a, b *RawTensor) *RawTensor

	// BatchMatMul multiplies batched matrices.
	// For 3D: [B,M,K] @ [B,K,N] -> [B,M,N]
	// For 4D: [B,G,M,K] @ [B,G,K,N] -> [B,G,M,N]
	BatchMatMul(a, b *RawTensor) *RawTensor

	// Conv2D performs grouped 2D cross-correlation without bias.
	// input [N,C_in,H,W], kernel [C_out,C_in/groups,K_h,K_w].
	// groups must evenly divide both C_in and C_out.
	Conv2D(input, kernel *RawTensor, stride, padH, padW, groups int) *RawTensor

	// MaxPool2D pools with a square window. Padding cells count as -Inf so
	// they never win the max; stride-1 same-size pooling uses padding = k/2.
	MaxPool2D(input *RawTensor, kernel, stride, padding int) *RawTensor

	// Shape operations.
	Reshape(x *RawTensor, shape Shape) *RawTensor
	Permute(x *RawTensor, axes ...int) *RawTensor
	Expand(x *RawTensor, shape Shape) *RawTensor

	// Manipulation operations.
	Cat(tensors []*RawTensor, dim int) *RawTensor
	Chunk(x *RawTensor, n, dim int) []*RawTensor
	Unsqueeze(x *RawTensor, dim int) *RawTensor
	Squeeze(x *RawTensor, dim int) *RawTensor

	// Reductions.
	Sum(x *RawTensor) *RawTensor
	SumDim(x *RawTensor, dim int, keepDim bool) *RawTensor
	MeanDim(x *RawTensor, dim int, keepDim bool) *RawTensor
	MaxDim(x *RawTensor, dim int, keepDim bool) *RawTensor

	// Activations.
	ReLU(x *RawTensor) *RawTensor
	LeakyReLU(x *RawTensor, negativeSlope float64) *RawTensor
	Sigmoid(x *RawTensor) *RawTensor
	Hardswish(x *RawTensor) *RawTensor

	// Metadata.
	Name() string
	Device() Device
}
