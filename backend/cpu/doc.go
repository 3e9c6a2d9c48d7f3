// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - Im2col/col2im convolutions and transposed convolutions on gonum BLAS
//   - Nearest and bilinear upsampling
//   - Batch and instance normalization moments
//   - NumPy-compatible broadcasting
//
// Batch and channel loops fan out over goroutines; see Config.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/gan/backend/cpu"
//	    "github.com/born-ml/gan/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    x := tensor.Randn[float32](tensor.Shape{1, 3, 256, 256}, backend)
//	}
//
// Compute kernels support float32 only and panic with "<op>: ..." messages
// on shape mismatches.
package cpu
