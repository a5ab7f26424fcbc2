// Copyright 2025 Keel ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides type-safe tensor operations for the Keel vision library.
//
// # Overview
//
// Tensors are the fundamental data structure in Keel. This package provides:
//   - Generic type-safe tensors (Tensor[T, B])
//   - NumPy-style broadcasting
//   - Zero-copy views and reference-counted buffers
//   - Device abstraction (CPU, WebGPU)
//
// # Basic Usage
//
//	import (
//	    "github.com/keel-ml/keel/tensor"
//	    "github.com/keel-ml/keel/backend/cpu"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    // Create tensors
//	    x := tensor.Zeros[float32](tensor.Shape{1, 3, 640, 640}, backend)
//	    y := tensor.Ones[float32](tensor.Shape{1, 3, 640, 640}, backend)
//
//	    // Tensor operations
//	    z := x.Add(y)
//	    gated := z.Mul(z.Sigmoid())
//	}
//
// # Supported Data Types
//
// Feature maps, weights and attention gates are all floating point, so the
// DType constraint admits float32 and float64 only.
//
// # Axis Convention
//
// Image tensors use the fixed axis order (batch, channels, height, width).
// Every layer in the nn package assumes NCHW input.
//
// # Broadcasting
//
// Element-wise operations follow NumPy broadcasting rules:
//
//	x := tensor.Zeros[float32](tensor.Shape{1, 64, 80, 80}, backend) // feature map
//	g := tensor.Ones[float32](tensor.Shape{1, 64, 1, 1}, backend)   // channel gate
//	y := x.Mul(g)                                                    // (1, 64, 80, 80)
//
// # Memory Management
//
// Buffers are reference-counted. Reshape, Unsqueeze and Squeeze return
// zero-copy views; element-wise kernels reuse the input buffer when it is
// uniquely referenced.
package tensor
