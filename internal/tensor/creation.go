package tensor

import (
	"math"
	"math/rand"
)

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	backend := cpu.New()
//	t := tensor.Zeros[float32](Shape{3, 4}, backend)
func Zeros[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	var dummy T
	raw, err := NewRaw(shape, inferDataType(dummy), b.Device())
	if err != nil {
		panic(err) // Shape validation should prevent this
	}

	// Data is already zero-initialized by make()
	return New[T, B](raw, b)
}

// Ones creates a tensor filled with ones.
func Ones[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return Full[T, B](shape, 1, b)
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	t := tensor.Full[float32](Shape{3, 3}, 3.14, backend)
func Full[T DType, B Backend](shape Shape, value T, b B) *Tensor[T, B] {
	t := Zeros[T, B](shape, b)
	data := t.Data()
	for i := range data {
		data[i] = value
	}
	return t
}

// Randn creates a tensor with random values from a normal distribution (mean=0, std=1).
// Note: Uses math/rand (not crypto/rand) - appropriate for ML/statistical purposes.
//
// Example:
//
//	z := tensor.Randn[float32](Shape{4, 128}, backend) // latent batch
func Randn[T DType, B Backend](shape Shape, b B) *Tensor[T, B] {
	return RandnFrom[T, B](nil, shape, b)
}

// RandnFrom is Randn drawing from r. A nil r uses the global source.
//
// Uses the Box-Muller transform.
func RandnFrom[T DType, B Backend](r *rand.Rand, shape Shape, b B) *Tensor[T, B] {
	uniform := rand.Float64 //nolint:gosec // G404: ML uses math/rand intentionally for reproducibility
	if r != nil {
		uniform = r.Float64
	}

	t := Zeros[T, B](shape, b)
	data := t.Data()
	for i := 0; i < len(data); i += 2 {
		u1 := 1 - uniform() // (0, 1], keeps Log finite
		u2 := uniform()
		radius := math.Sqrt(-2.0 * math.Log(u1))
		data[i] = T(radius * math.Cos(2.0*math.Pi*u2))
		if i+1 < len(data) {
			data[i+1] = T(radius * math.Sin(2.0*math.Pi*u2))
		}
	}
	return t
}
