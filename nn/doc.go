// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the convolutional layers GAN stages are built from.
//
// # Overview
//
// This package contains:
//   - Layers: Conv2D, ConvTranspose2D, Upsample
//   - Normalization: InstanceNorm2D, BatchNorm2D
//   - Activations: ReLU, LeakyReLU, Tanh
//   - Utilities: Sequential, Module interface, Parameter
//   - Initialization: Seed, Xavier, Zeros, Ones
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/gan/backend/cpu"
//	    "github.com/born-ml/gan/nn"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    block := nn.NewSequential[*cpu.Backend](
//	        nn.NewConvTranspose2D(128, 256, 4, 4, 2, 1, false, backend),
//	        nn.NewInstanceNorm2D(256, true, true, backend),
//	        nn.NewLeakyReLU[*cpu.Backend](0.2),
//	    )
//	    y := block.Forward(x) // [N, 128, H, W] -> [N, 256, 2H, 2W]
//	}
//
// # State dicts
//
// StateDict keys follow the PyTorch layout: "weight", "bias",
// "running_mean" and "running_var" for leaf modules, prefixed by the
// child index inside a Sequential ("1.running_mean").
package nn
