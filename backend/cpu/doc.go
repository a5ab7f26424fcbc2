// Copyright 2025 Keel ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - Im2col algorithm for efficient grouped convolutions
//   - Float32 and Float64 support
//   - NumPy-compatible broadcasting
//   - Automatic parallelization across physical cores
//
// # Basic Usage
//
//	import (
//	    "github.com/keel-ml/keel/backend/cpu"
//	    "github.com/keel-ml/keel/nn"
//	    "github.com/keel-ml/keel/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    // Use with tensors
//	    x := tensor.Zeros[float32](tensor.Shape{1, 3, 640, 640}, backend)
//
//	    // Use with network blocks
//	    focus := nn.NewFocus(3, 64, 3, 1, backend)
//	    y := focus.Forward(x)
//	}
//
// # In-Place Fast Path
//
// Element-wise binary kernels reuse the first operand's buffer when it is
// the only reference and both shapes match. Clone an input first if it must
// survive the operation.
//
// # Thread Safety
//
// The CPU backend is safe for concurrent use. Each tensor operation is
// isolated and does not share mutable state.
package cpu
