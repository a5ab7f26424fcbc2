// Copyright 2025 Keel ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the building blocks of convolutional detection
// backbones.
//
// # Overview
//
// This package contains:
//   - Fused convolution: Conv (conv + batch norm + hardswish), DWConv
//   - Backbone blocks: Focus, Bottleneck, BottleneckCSP, SPP, Concat
//   - Attention: ChannelAttention, SpatialAttention, CBAM, SAM, DAM, BDAM
//   - Heads: Classify, Flatten
//   - Activations: ReLU, Sigmoid, LeakyReLU, Hardswish
//   - Utilities: Sequential, Module interface, Parameter
//   - Initialization: Xavier, Zeros, Ones
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
//	    // A small backbone stem
//	    model := nn.NewSequential(
//	        nn.NewFocus(3, 64, 3, 1, backend),
//	        nn.NewConv(64, 128, 3, 2, backend),
//	        nn.NewBottleneckCSP(128, 128, 3, true, 1, 0.5, backend),
//	        nn.NewSPP(128, 128, nn.DefaultSPPKernels(), backend),
//	    )
//
//	    x := tensor.Randn[float32](tensor.Shape{1, 3, 64, 64}, backend)
//	    y := model.Forward(x)
//	    _ = y
//	}
//
// # Shape Contracts
//
// All blocks operate on NCHW float32 tensors. Channel counts, group counts
// and window sizes are checked at construction or on the first forward pass;
// violations panic rather than returning errors, since they are structural
// bugs in model assembly.
//
// # Inference Only
//
// Blocks run in inference mode: batch norm uses stored running statistics
// and no gradients are tracked. Parameters() exposes weight tensors for
// loading externally trained checkpoints.
package nn
