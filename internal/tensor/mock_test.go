package tensor

// mockBackend satisfies Backend for tests that exercise tensor bookkeeping
// (creation, indexing, cloning) without running any kernels.
type mockBackend struct{}

var _ Backend = (*mockBackend)(nil)

func (m *mockBackend) Name() string   { return "mock" }
func (m *mockBackend) Device() Device { return CPU }

func (m *mockBackend) Add(a, b *RawTensor) *RawTensor { panic("mock: Add not implemented") }
func (m *mockBackend) Sub(a, b *RawTensor) *RawTensor { panic("mock: Sub not implemented") }
func (m *mockBackend) Mul(a, b *RawTensor) *RawTensor { panic("mock: Mul not implemented") }
func (m *mockBackend) Div(a, b *RawTensor) *RawTensor { panic("mock: Div not implemented") }

func (m *mockBackend) AddScalar(x *RawTensor, scalar any) *RawTensor {
	panic("mock: AddScalar not implemented")
}

func (m *mockBackend) SubScalar(x *RawTensor, scalar any) *RawTensor {
	panic("mock: SubScalar not implemented")
}

func (m *mockBackend) MulScalar(x *RawTensor, scalar any) *RawTensor {
	panic("mock: MulScalar not implemented")
}

func (m *mockBackend) DivScalar(x *RawTensor, scalar any) *RawTensor {
	panic("mock: DivScalar not implemented")
}

func (m *mockBackend) Sqrt(x *RawTensor) *RawTensor { panic("mock: Sqrt not implemented") }

func (m *mockBackend) MatMul(a, b *RawTensor) *RawTensor { panic("mock: MatMul not implemented") }

func (m *mockBackend) BatchMatMul(a, b *RawTensor) *RawTensor {
	panic("mock: BatchMatMul not implemented")
}

func (m *mockBackend) Conv2D(input, kernel *RawTensor, stride, padH, padW, groups int) *RawTensor {
	panic("mock: Conv2D not implemented")
}

func (m *mockBackend) MaxPool2D(input *RawTensor, kernel, stride, padding int) *RawTensor {
	panic("mock: MaxPool2D not implemented")
}

func (m *mockBackend) Reshape(x *RawTensor, shape Shape) *RawTensor { return x.View(shape) }

func (m *mockBackend) Permute(x *RawTensor, axes ...int) *RawTensor {
	panic("mock: Permute not implemented")
}

func (m *mockBackend) Expand(x *RawTensor, shape Shape) *RawTensor {
	panic("mock: Expand not implemented")
}

func (m *mockBackend) Cat(tensors []*RawTensor, dim int) *RawTensor {
	panic("mock: Cat not implemented")
}

func (m *mockBackend) Chunk(x *RawTensor, n, dim int) []*RawTensor {
	panic("mock: Chunk not implemented")
}

func (m *mockBackend) Unsqueeze(x *RawTensor, dim int) *RawTensor {
	panic("mock: Unsqueeze not implemented")
}

func (m *mockBackend) Squeeze(x *RawTensor, dim int) *RawTensor {
	panic("mock: Squeeze not implemented")
}

func (m *mockBackend) Sum(x *RawTensor) *RawTensor { panic("mock: Sum not implemented") }

func (m *mockBackend) SumDim(x *RawTensor, dim int, keepDim bool) *RawTensor {
	panic("mock: SumDim not implemented")
}

func (m *mockBackend) MeanDim(x *RawTensor, dim int, keepDim bool) *RawTensor {
	panic("mock: MeanDim not implemented")
}

func (m *mockBackend) MaxDim(x *RawTensor, dim int, keepDim bool) *RawTensor {
	panic("mock: MaxDim not implemented")
}

func (m *mockBackend) ReLU(x *RawTensor) *RawTensor { panic("mock: ReLU not implemented") }

func (m *mockBackend) LeakyReLU(x *RawTensor, negativeSlope float64) *RawTensor {
	panic("mock: LeakyReLU not implemented")
}

func (m *mockBackend) Sigmoid(x *RawTensor) *RawTensor { panic("mock: Sigmoid not implemented") }

func (m *mockBackend) Hardswish(x *RawTensor) *RawTensor { panic("mock: Hardswish not implemented") }
