// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package gan assembles GAN generators and discriminators from a small
// configuration.
//
// # Overview
//
// Every stage of a network is described by a StageDescriptor (up, down or
// same, with input and output channels). Build turns a descriptor and a
// Config into an ordered LayerSequence:
//
//	up   -> conv_transpose 4x4/2 (or upsample x2 + conv 3x3/1), norm, activation
//	same -> conv 3x3/1, norm, activation
//	down -> conv 4x4/2, activation
//
// Three architectures are provided:
//   - CompactGenerator: 1x1 latent to a 128x128 RGB image in seven up-stages
//   - ExtendedGenerator: up, same and bare conv stages on a fixed width schedule
//   - Discriminator: seven down-stages and a 1x1 projection to a score map
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/gan/backend/cpu"
//	    "github.com/born-ml/gan/gan"
//	    "github.com/born-ml/gan/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    cfg := gan.DefaultConfig()
//
//	    g, err := gan.NewCompactGenerator(cfg, backend)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    z := tensor.Randn[float32](tensor.Shape{4, cfg.LatentDim}, backend)
//	    images := g.Forward(z) // [4, 3, 128, 128] in [-1, 1]
//	}
//
// Invalid configurations are reported at construction as
// *ConfigurationError; errors.Is(err, ErrInvalidConfig) holds for all of
// them. Shape mismatches at forward time panic in the engine.
package gan
