package cpu

import (
	"fmt"

	"github.com/keel-ml/keel/internal/parallel"
	"github.com/keel-ml/keel/internal/tensor"
)

// MatMul multiplies 2D matrices: [M,K] @ [K,N] -> [M,N].
func (cpu *CPUBackend) MatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	as, bs := a.Shape(), b.Shape()
	if len(as) != 2 || len(bs) != 2 {
		panic(fmt.Sprintf("matmul: expected 2D tensors, got %v @ %v", as, bs))
	}
	if as[1] != bs[0] {
		panic(fmt.Sprintf("matmul: inner dimensions differ: %v @ %v", as, bs))
	}

	result := cpu.newRaw("matmul", tensor.Shape{as[0], bs[1]}, a.DType())
	switch a.DType() {
	case tensor.Float32:
		matmulKernel(asSlice[float32](result), asSlice[float32](a), asSlice[float32](b), as[0], as[1], bs[1])
	case tensor.Float64:
		matmulKernel(asSlice[float64](result), asSlice[float64](a), asSlice[float64](b), as[0], as[1], bs[1])
	default:
		panic(fmt.Sprintf("matmul: unsupported dtype %s", a.DType()))
	}
	return result
}

// matmulKernel computes dst[M,N] = a[M,K] @ b[K,N] with an ikj loop order
// so the inner loop streams through contiguous rows of b.
func matmulKernel[T tensor.DType](dst, a, b []T, m, k, n int) {
	for i := 0; i < m; i++ {
		row := dst[i*n : (i+1)*n]
		for x := range row {
			row[x] = 0
		}
		for p := 0; p < k; p++ {
			av := a[i*k+p]
			if av == 0 {
				continue
			}
			brow := b[p*n : (p+1)*n]
			for j, bv := range brow {
				row[j] += av * bv
			}
		}
	}
}

// BatchMatMul multiplies batched matrices over the two trailing axes.
// For 3D: [B,M,K] @ [B,K,N] -> [B,M,N]
// For 4D: [B,G,M,K] @ [B,G,K,N] -> [B,G,M,N]
//
// The cross-axis attention gate relies on the 4D form: its two projected
// views multiply per (batch, channel) pair.
func (cpu *CPUBackend) BatchMatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	as, bs := a.Shape(), b.Shape()
	if len(as) != len(bs) || (len(as) != 3 && len(as) != 4) {
		panic(fmt.Sprintf("batch_matmul: expected matching 3D or 4D tensors, got %v @ %v", as, bs))
	}

	batch := 1
	for i := 0; i < len(as)-2; i++ {
		if as[i] != bs[i] {
			panic(fmt.Sprintf("batch_matmul: batch axes differ: %v @ %v", as, bs))
		}
		batch *= as[i]
	}

	m, k := as[len(as)-2], as[len(as)-1]
	if bs[len(bs)-2] != k {
		panic(fmt.Sprintf("batch_matmul: inner dimensions differ: %v @ %v", as, bs))
	}
	n := bs[len(bs)-1]

	outShape := as.Clone()
	outShape[len(outShape)-1] = n
	result := cpu.newRaw("batch_matmul", outShape, a.DType())

	switch a.DType() {
	case tensor.Float32:
		batchMatmulKernel(asSlice[float32](result), asSlice[float32](a), asSlice[float32](b), batch, m, k, n, cpu.par)
	case tensor.Float64:
		batchMatmulKernel(asSlice[float64](result), asSlice[float64](a), asSlice[float64](b), batch, m, k, n, cpu.par)
	default:
		panic(fmt.Sprintf("batch_matmul: unsupported dtype %s", a.DType()))
	}
	return result
}

func batchMatmulKernel[T tensor.DType](dst, a, b []T, batch, m, k, n int, par parallel.Config) {
	parallel.For(batch, func(i int) {
		matmulKernel(dst[i*m*n:(i+1)*m*n], a[i*m*k:(i+1)*m*k], b[i*k*n:(i+1)*k*n], m, k, n)
	}, par)
}
