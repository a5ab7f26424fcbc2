package cpu

import (
	"fmt"

	"github.com/keel-ml/keel/internal/parallel"
	"github.com/keel-ml/keel/internal/tensor"
)

// Conv2D performs grouped 2D cross-correlation using the im2col algorithm.
//
// Input shape:  [N, C_in, H, W]
// Kernel shape: [C_out, C_in/groups, K_h, K_w]
// Output shape: [N, C_out, H_out, W_out]
//
// where
//
//	H_out = (H + 2*padH - K_h)/stride + 1
//	W_out = (W + 2*padW - K_w)/stride + 1
//
// groups must evenly divide both C_in and C_out; groups = gcd(C_in, C_out)
// gives the depthwise-separable variant. Each (sample, group) pair lowers
// its patch window into a column matrix and multiplies it against the
// group's kernel slice, so the hot loop is a plain matrix product.
func (cpu *CPUBackend) Conv2D(input, kernel *tensor.RawTensor, stride, padH, padW, groups int) *tensor.RawTensor {
	in, k := input.Shape(), kernel.Shape()
	if len(in) != 4 {
		panic(fmt.Sprintf("conv2d: input must be 4D [N,C,H,W], got %dD", len(in)))
	}
	if len(k) != 4 {
		panic(fmt.Sprintf("conv2d: kernel must be 4D [C_out,C_in/g,K_h,K_w], got %dD", len(k)))
	}
	if stride <= 0 {
		panic(fmt.Sprintf("conv2d: invalid stride %d", stride))
	}
	if padH < 0 || padW < 0 {
		panic(fmt.Sprintf("conv2d: invalid padding (%d,%d)", padH, padW))
	}
	if groups <= 0 {
		panic(fmt.Sprintf("conv2d: invalid group count %d", groups))
	}

	n, cIn, h, w := in[0], in[1], in[2], in[3]
	cOut, kh, kw := k[0], k[2], k[3]

	if cIn%groups != 0 || cOut%groups != 0 {
		panic(fmt.Sprintf("conv2d: group count %d must divide input channels %d and output channels %d",
			groups, cIn, cOut))
	}
	if k[1]*groups != cIn {
		panic(fmt.Sprintf("conv2d: kernel channels %d*%d do not match input channels %d", k[1], groups, cIn))
	}

	hOut := (h+2*padH-kh)/stride + 1
	wOut := (w+2*padW-kw)/stride + 1
	if hOut <= 0 || wOut <= 0 {
		panic(fmt.Sprintf("conv2d: invalid output size %dx%d (input %dx%d, kernel %dx%d, stride %d, padding %d,%d)",
			hOut, wOut, h, w, kh, kw, stride, padH, padW))
	}

	output := cpu.newRaw("conv2d", tensor.Shape{n, cOut, hOut, wOut}, input.DType())

	args := convArgs{
		n: n, cIn: cIn, h: h, w: w,
		cOut: cOut, kh: kh, kw: kw,
		hOut: hOut, wOut: wOut,
		stride: stride, padH: padH, padW: padW, groups: groups,
	}

	switch input.DType() {
	case tensor.Float32:
		conv2dKernel(asSlice[float32](output), asSlice[float32](input), asSlice[float32](kernel), args, cpu.par)
	case tensor.Float64:
		conv2dKernel(asSlice[float64](output), asSlice[float64](input), asSlice[float64](kernel), args, cpu.par)
	default:
		panic(fmt.Sprintf("conv2d: unsupported dtype %s", input.DType()))
	}
	return output
}

type convArgs struct {
	n, cIn, h, w       int
	cOut, kh, kw       int
	hOut, wOut         int
	stride, padH, padW int
	groups             int
}

func conv2dKernel[T tensor.DType](dst, src, kernel []T, a convArgs, par parallel.Config) {
	cg := a.cIn / a.groups     // input channels per group
	cOutG := a.cOut / a.groups // output channels per group
	colW := cg * a.kh * a.kw
	spatial := a.hOut * a.wOut

	parallel.ForBatch(a.n, a.groups, func(n, g int) {
		colBuf := make([]T, spatial*colW)
		im2col(colBuf, src, n, g*cg, cg, a)

		// kernel rows for this group: [cOutG, colW], contiguous per filter
		for oc := 0; oc < cOutG; oc++ {
			co := g*cOutG + oc
			krow := kernel[co*colW : (co+1)*colW]
			out := dst[((n*a.cOut+co)*spatial) : ((n*a.cOut+co)*spatial + spatial)]
			for p := 0; p < spatial; p++ {
				col := colBuf[p*colW : (p+1)*colW]
				var sum T
				for i, kv := range krow {
					sum += kv * col[i]
				}
				out[p] = sum
			}
		}
	}, par)
}

// im2col lowers the patch windows of one (sample, group) pair into rows of
// colBuf. Out-of-bounds taps read as zero, which implements zero padding.
func im2col[T tensor.DType](colBuf, src []T, n, cFirst, cg int, a convArgs) {
	idx := 0
	for oh := 0; oh < a.hOut; oh++ {
		for ow := 0; ow < a.wOut; ow++ {
			for c := 0; c < cg; c++ {
				base := ((n*a.cIn + cFirst + c) * a.h) * a.w
				for kh := 0; kh < a.kh; kh++ {
					ih := oh*a.stride - a.padH + kh
					for kw := 0; kw < a.kw; kw++ {
						iw := ow*a.stride - a.padW + kw
						if ih >= 0 && ih < a.h && iw >= 0 && iw < a.w {
							colBuf[idx] = src[base+ih*a.w+iw]
						} else {
							colBuf[idx] = 0
						}
						idx++
					}
				}
			}
		}
	}
}
