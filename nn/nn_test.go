// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/gan/backend/cpu"
	"github.com/born-ml/gan/nn"
	"github.com/born-ml/gan/tensor"
)

func upBlock(backend *cpu.Backend) *nn.Sequential[*cpu.Backend] {
	return nn.NewSequential[*cpu.Backend](
		nn.NewConvTranspose2D(4, 8, 4, 4, 2, 1, false, backend),
		nn.NewInstanceNorm2D(8, true, true, backend),
		nn.NewLeakyReLU[*cpu.Backend](0.2),
	)
}

func TestPublicAPI_Block(t *testing.T) {
	backend := cpu.New()
	block := upBlock(backend)

	x := tensor.Randn[float32](tensor.Shape{2, 4, 3, 3}, backend)
	y := block.Forward(x)
	assert.Equal(t, tensor.Shape{2, 8, 6, 6}, y.Shape())

	keys := make([]string, 0)
	for k := range block.StateDict() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	assert.Equal(t, []string{"0.weight", "1.bias", "1.running_mean", "1.running_var", "1.weight"}, keys)
	assert.Equal(t, 4*8*16+2*8, nn.CountParameters(block.Parameters()))
}

func TestPublicAPI_Seed(t *testing.T) {
	backend := cpu.New()

	nn.Seed(11)
	a := upBlock(backend).StateDict()
	nn.Seed(11)
	b := upBlock(backend).StateDict()

	for k, raw := range a {
		require.Contains(t, b, k)
		assert.Equal(t, raw.Data(), b[k].Data(), k)
	}
}

func TestPublicAPI_OutputSizes(t *testing.T) {
	assert.Equal(t, [2]int{128, 128}, nn.Conv2DOutputSize(256, 256, [2]int{4, 4}, 2, 1))
	assert.Equal(t, [2]int{64, 64}, nn.ConvTranspose2DOutputSize(32, 32, [2]int{4, 4}, 2, 1))
	assert.Equal(t, [2]int{8, 8}, nn.Conv2DOutputSize(8, 8, [2]int{3, 3}, 1, 1))
}

func TestPublicAPI_Activations(t *testing.T) {
	backend := cpu.New()
	x, err := tensor.FromSlice([]float32{-2, 0, 3}, tensor.Shape{3}, backend)
	require.NoError(t, err)

	assert.Equal(t, []float32{0, 0, 3}, nn.NewReLU[*cpu.Backend]().Forward(x).Data())
	assert.InDeltaSlice(t, []float32{-0.4, 0, 3}, nn.NewLeakyReLU[*cpu.Backend](0.2).Forward(x).Data(), 1e-6)
	assert.InDelta(t, 0.99505, nn.NewTanh[*cpu.Backend]().Forward(x).Data()[2], 1e-4)
}
