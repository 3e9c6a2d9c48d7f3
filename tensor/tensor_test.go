// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/gan/backend/cpu"
	"github.com/born-ml/gan/tensor"
)

func TestPublicAPI_Creation(t *testing.T) {
	backend := cpu.New()

	x, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3}, x.Shape())
	assert.Equal(t, tensor.Float32, x.DType())
	assert.Equal(t, tensor.CPU, x.Device())

	y := tensor.Full[float32](tensor.Shape{2, 3}, 0.5, backend)
	assert.Equal(t, []float32{1.5, 2.5, 3.5, 4.5, 5.5, 6.5}, x.Add(y).Data())

	zeros := tensor.Zeros[float32](tensor.Shape{4}, backend)
	ones := tensor.Ones[float32](tensor.Shape{4}, backend)
	assert.Equal(t, []float32{0, 0, 0, 0}, zeros.Mul(ones).Data())

	_, err = tensor.FromSlice([]float32{1, 2}, tensor.Shape{3}, backend)
	assert.Error(t, err)
}

func TestPublicAPI_RandnFrom(t *testing.T) {
	backend := cpu.New()

	a := tensor.RandnFrom[float32](rand.New(rand.NewSource(42)), tensor.Shape{3, 8}, backend)
	b := tensor.RandnFrom[float32](rand.New(rand.NewSource(42)), tensor.Shape{3, 8}, backend)
	assert.Equal(t, a.Data(), b.Data())
}

func TestPublicAPI_Raw(t *testing.T) {
	raw, err := tensor.NewRaw(tensor.Shape{2, 2}, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	assert.Equal(t, 16, raw.ByteSize())

	x := tensor.New[float32](raw, cpu.New())
	x.Set(3, 1, 0)
	assert.Equal(t, float32(3), raw.AsFloat32()[2])
}

func TestPublicAPI_BroadcastShapes(t *testing.T) {
	shape, broadcast, err := tensor.BroadcastShapes(tensor.Shape{1, 8, 1, 1}, tensor.Shape{4, 8, 2, 2})
	require.NoError(t, err)
	assert.True(t, broadcast)
	assert.Equal(t, tensor.Shape{4, 8, 2, 2}, shape)

	_, _, err = tensor.BroadcastShapes(tensor.Shape{3, 4}, tensor.Shape{3, 5})
	assert.Error(t, err)
}
