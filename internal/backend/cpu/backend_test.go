package cpu

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/gan/internal/parallel"
	"github.com/born-ml/gan/internal/tensor"
)

// rawFrom builds a float32 RawTensor with the given data.
func rawFrom(t *testing.T, shape tensor.Shape, data []float32) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	require.Len(t, data, shape.NumElements())
	copy(raw.AsFloat32(), data)
	return raw
}

// rawRandom builds a float32 RawTensor with deterministic values in [-1, 1).
func rawRandom(t *testing.T, rng *rand.Rand, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	data := make([]float32, shape.NumElements())
	for i := range data {
		data[i] = rng.Float32()*2 - 1
	}
	return rawFrom(t, shape, data)
}

func TestCPUBackend_New(t *testing.T) {
	backend := New()
	require.NotNil(t, backend)
	assert.Equal(t, "CPU", backend.Name())
	assert.Equal(t, tensor.CPU, backend.Device())
}

func TestCPUBackend_Add(t *testing.T) {
	backend := NewWithConfig(parallel.Sequential())

	t.Run("SameShape", func(t *testing.T) {
		a := rawFrom(t, tensor.Shape{2, 3}, []float32{1, 2, 3, 4, 5, 6})
		b := rawFrom(t, tensor.Shape{2, 3}, []float32{10, 11, 12, 13, 14, 15})

		result := backend.Add(a, b)

		assert.Equal(t, []float32{11, 13, 15, 17, 19, 21}, result.AsFloat32())
		assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, a.AsFloat32(), "inputs must not be modified")
	})

	t.Run("ChannelBias", func(t *testing.T) {
		// [1, 2, 2, 2] + [1, 2, 1, 1]: per-channel bias
		x := rawFrom(t, tensor.Shape{1, 2, 2, 2}, []float32{0, 1, 2, 3, 4, 5, 6, 7})
		bias := rawFrom(t, tensor.Shape{1, 2, 1, 1}, []float32{100, 200})

		result := backend.Add(x, bias)

		assert.Equal(t, tensor.Shape{1, 2, 2, 2}, result.Shape())
		assert.Equal(t, []float32{100, 101, 102, 103, 204, 205, 206, 207}, result.AsFloat32())
	})

	t.Run("RankMismatch", func(t *testing.T) {
		x := rawFrom(t, tensor.Shape{2, 2}, []float32{1, 2, 3, 4})
		row := rawFrom(t, tensor.Shape{2}, []float32{10, 20})

		result := backend.Add(x, row)

		assert.Equal(t, []float32{11, 22, 13, 24}, result.AsFloat32())
	})

	t.Run("Incompatible", func(t *testing.T) {
		a := rawFrom(t, tensor.Shape{2, 3}, make([]float32, 6))
		b := rawFrom(t, tensor.Shape{2, 4}, make([]float32, 8))
		assert.Panics(t, func() { backend.Add(a, b) })
	})
}

func TestCPUBackend_Mul(t *testing.T) {
	backend := New()
	x := rawFrom(t, tensor.Shape{1, 2, 1, 2}, []float32{1, 2, 3, 4})
	scale := rawFrom(t, tensor.Shape{1, 2, 1, 1}, []float32{2, -1})

	result := backend.Mul(x, scale)

	assert.Equal(t, []float32{2, 4, -3, -4}, result.AsFloat32())
}

func TestCPUBackend_Reshape(t *testing.T) {
	backend := New()
	x := rawFrom(t, tensor.Shape{2, 4}, []float32{1, 2, 3, 4, 5, 6, 7, 8})

	view := backend.Reshape(x, tensor.Shape{2, 4, 1, 1})
	assert.Equal(t, tensor.Shape{2, 4, 1, 1}, view.Shape())
	assert.Equal(t, x.AsFloat32(), view.AsFloat32())

	// Reshape is a view: writes are visible through the source.
	view.AsFloat32()[0] = 42
	assert.Equal(t, float32(42), x.AsFloat32()[0])

	assert.Panics(t, func() { backend.Reshape(x, tensor.Shape{3, 3}) })
}

func TestCPUBackend_RejectsFloat64(t *testing.T) {
	backend := New()
	raw, err := tensor.NewRaw(tensor.Shape{1, 1, 2, 2}, tensor.Float64, tensor.CPU)
	require.NoError(t, err)

	assert.PanicsWithValue(t, "relu: unsupported dtype float64 (only float32 supported)", func() {
		backend.ReLU(raw)
	})
}
