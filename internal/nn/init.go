package nn

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/born-ml/gan/internal/tensor"
)

var (
	rngMu sync.Mutex
	//nolint:gosec // Using math/rand for weight initialization (not security-critical)
	rng = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// Seed resets the source used by weight initializers.
//
// Two models built after the same Seed call on the same configuration have
// identical weights.
func Seed(seed int64) {
	rngMu.Lock()
	defer rngMu.Unlock()
	//nolint:gosec // Using math/rand for weight initialization (not security-critical)
	rng = rand.New(rand.NewSource(seed))
}

// Xavier (Glorot) initialization for weights.
//
// Initializes weights with values drawn from a uniform distribution:
// U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out)))
//
// This initialization helps maintain variance of activations across layers.
//
// Parameters:
//   - fanIn: Number of input units
//   - fanOut: Number of output units
//   - shape: Shape of the weight tensor
//   - backend: Backend to use for tensor creation
//
// Returns a tensor initialized with Xavier distribution.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))

	t := tensor.Zeros[float32](shape, backend)
	data := t.Data()

	rngMu.Lock()
	defer rngMu.Unlock()
	for i := range data {
		data[i] = float32((rng.Float64()*2.0 - 1.0) * bound)
	}

	return t
}

// Zeros creates a tensor filled with zeros.
//
// This is commonly used for bias initialization.
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Zeros[float32](shape, backend)
}

// Ones creates a tensor filled with ones.
//
// Used for normalization scales and running variances.
func Ones[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Ones[float32](shape, backend)
}
