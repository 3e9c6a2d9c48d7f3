package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/born-ml/gan/internal/tensor"
)

func TestCPUBackend_Activations(t *testing.T) {
	backend := New()
	x := rawFrom(t, tensor.Shape{5}, []float32{-2, -0.5, 0, 0.5, 40})

	tests := []struct {
		name string
		fn   func(*tensor.RawTensor) *tensor.RawTensor
		want []float32
	}{
		{"relu", backend.ReLU, []float32{0, 0, 0, 0.5, 40}},
		{"leaky_0.2", func(r *tensor.RawTensor) *tensor.RawTensor { return backend.LeakyReLU(r, 0.2) }, []float32{-0.4, -0.1, 0, 0.5, 40}},
		{"leaky_0.02", func(r *tensor.RawTensor) *tensor.RawTensor { return backend.LeakyReLU(r, 0.02) }, []float32{-0.04, -0.01, 0, 0.5, 40}},
		{"tanh", backend.Tanh, []float32{-0.9640276, -0.46211717, 0, 0.46211717, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDeltaSlice(t, tt.want, tt.fn(x).AsFloat32(), 1e-6)
		})
	}
}

func TestCPUBackend_Tanh_Bounded(t *testing.T) {
	backend := New()
	x := rawFrom(t, tensor.Shape{4}, []float32{-1e30, -100, 100, 1e30})

	for _, v := range backend.Tanh(x).AsFloat32() {
		assert.GreaterOrEqual(t, v, float32(-1))
		assert.LessOrEqual(t, v, float32(1))
	}
}
