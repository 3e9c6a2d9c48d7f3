package cpu

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/gan/internal/tensor"
)

func TestCPUBackend_Moments2D(t *testing.T) {
	backend := New()
	// N=2, C=2, 1x2 planes.
	x := rawFrom(t, tensor.Shape{2, 2, 1, 2}, []float32{
		1, 3, // n0 c0
		10, 10, // n0 c1
		5, 7, // n1 c0
		0, 4, // n1 c1
	})

	t.Run("Batch", func(t *testing.T) {
		mean, variance := backend.Moments2D(x, false)
		require.Equal(t, tensor.Shape{2}, mean.Shape())
		// c0: {1,3,5,7} mean 4 var 5; c1: {10,10,0,4} mean 6 var 18
		assert.InDeltaSlice(t, []float32{4, 6}, mean.AsFloat32(), 1e-6)
		assert.InDeltaSlice(t, []float32{5, 18}, variance.AsFloat32(), 1e-5)
	})

	t.Run("Instance", func(t *testing.T) {
		mean, variance := backend.Moments2D(x, true)
		require.Equal(t, tensor.Shape{2, 2}, mean.Shape())
		assert.InDeltaSlice(t, []float32{2, 10, 6, 2}, mean.AsFloat32(), 1e-6)
		assert.InDeltaSlice(t, []float32{1, 0, 1, 4}, variance.AsFloat32(), 1e-6)
	})
}

func TestCPUBackend_Normalize2D(t *testing.T) {
	backend := New()
	x := rawFrom(t, tensor.Shape{1, 1, 2, 2}, []float32{1, 2, 3, 4})
	mean, variance := backend.Moments2D(x, true)

	t.Run("NoAffine", func(t *testing.T) {
		out := backend.Normalize2D(x, mean, variance, nil, nil, 0)
		s := float32(1 / math.Sqrt(1.25))
		assert.InDeltaSlice(t, []float32{-1.5 * s, -0.5 * s, 0.5 * s, 1.5 * s}, out.AsFloat32(), 1e-5)
	})

	t.Run("Affine", func(t *testing.T) {
		weight := rawFrom(t, tensor.Shape{1}, []float32{2})
		bias := rawFrom(t, tensor.Shape{1}, []float32{1})
		out := backend.Normalize2D(x, mean, variance, weight, bias, 0)
		s := float32(2 / math.Sqrt(1.25))
		assert.InDeltaSlice(t, []float32{1 - 1.5*s, 1 - 0.5*s, 1 + 0.5*s, 1 + 1.5*s}, out.AsFloat32(), 1e-5)
	})

	t.Run("SharedStatistics", func(t *testing.T) {
		two := rawFrom(t, tensor.Shape{2, 1, 1, 1}, []float32{3, 5})
		m := rawFrom(t, tensor.Shape{1}, []float32{1})
		v := rawFrom(t, tensor.Shape{1}, []float32{4})
		out := backend.Normalize2D(two, m, v, nil, nil, 0)
		assert.InDeltaSlice(t, []float32{1, 2}, out.AsFloat32(), 1e-6)
	})

	t.Run("BadStatisticsShape", func(t *testing.T) {
		m := rawFrom(t, tensor.Shape{3}, make([]float32, 3))
		assert.Panics(t, func() { backend.Normalize2D(x, m, m, nil, nil, 1e-5) })
	})
}
