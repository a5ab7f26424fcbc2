package cpu

import (
	"fmt"
	"math"

	"github.com/keel-ml/keel/internal/parallel"
	"github.com/keel-ml/keel/internal/tensor"
)

// MaxPool2D performs 2D max pooling with a square window.
//
// Input shape:  [N, C, H, W]
// Output shape: [N, C, (H+2*padding-kernel)/stride+1, (W+2*padding-kernel)/stride+1]
//
// Padding cells are -Inf, so they never win the max. The multi-scale pooling
// block relies on stride-1 pooling with padding = kernel/2 to keep the
// spatial size unchanged.
func (cpu *CPUBackend) MaxPool2D(input *tensor.RawTensor, kernel, stride, padding int) *tensor.RawTensor {
	in := input.Shape()
	if len(in) != 4 {
		panic(fmt.Sprintf("maxpool2d: input must be 4D [N,C,H,W], got %dD", len(in)))
	}
	if kernel <= 0 || stride <= 0 {
		panic(fmt.Sprintf("maxpool2d: invalid kernel %d or stride %d", kernel, stride))
	}
	if padding < 0 || padding > kernel/2 {
		panic(fmt.Sprintf("maxpool2d: padding %d must be in [0, %d]", padding, kernel/2))
	}

	n, c, h, w := in[0], in[1], in[2], in[3]
	hOut := (h+2*padding-kernel)/stride + 1
	wOut := (w+2*padding-kernel)/stride + 1
	if hOut <= 0 || wOut <= 0 {
		panic(fmt.Sprintf("maxpool2d: invalid output size %dx%d", hOut, wOut))
	}

	output := cpu.newRaw("maxpool2d", tensor.Shape{n, c, hOut, wOut}, input.DType())

	switch input.DType() {
	case tensor.Float32:
		maxpoolKernel(asSlice[float32](output), asSlice[float32](input), n, c, h, w, hOut, wOut, kernel, stride, padding, cpu.par)
	case tensor.Float64:
		maxpoolKernel(asSlice[float64](output), asSlice[float64](input), n, c, h, w, hOut, wOut, kernel, stride, padding, cpu.par)
	default:
		panic(fmt.Sprintf("maxpool2d: unsupported dtype %s", input.DType()))
	}
	return output
}

func maxpoolKernel[T tensor.DType](dst, src []T, n, c, h, w, hOut, wOut, kernel, stride, padding int, par parallel.Config) {
	negInf := T(math.Inf(-1))

	parallel.ForBatch(n, c, func(ni, ci int) {
		in := src[(ni*c+ci)*h*w : (ni*c+ci+1)*h*w]
		out := dst[(ni*c+ci)*hOut*wOut : (ni*c+ci+1)*hOut*wOut]
		for oh := 0; oh < hOut; oh++ {
			for ow := 0; ow < wOut; ow++ {
				best := negInf
				for kh := 0; kh < kernel; kh++ {
					ih := oh*stride - padding + kh
					if ih < 0 || ih >= h {
						continue
					}
					for kw := 0; kw < kernel; kw++ {
						iw := ow*stride - padding + kw
						if iw < 0 || iw >= w {
							continue
						}
						if v := in[ih*w+iw]; v > best {
							best = v
						}
					}
				}
				out[oh*wOut+ow] = best
			}
		}
	}, par)
}
