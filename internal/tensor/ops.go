package tensor

import "fmt"

// Add performs element-wise addition with broadcasting.
//
// Example:
//
//	x := tensor.Ones[float32](Shape{4, 8, 2, 2}, backend)
//	bias := tensor.Ones[float32](Shape{1, 8, 1, 1}, backend)
//	y := x.Add(bias) // Shape: [4, 8, 2, 2] (broadcasted)
func (t *Tensor[T, B]) Add(other *Tensor[T, B]) *Tensor[T, B] {
	result := t.backend.Add(t.raw, other.raw)
	return New[T, B](result, t.backend)
}

// Mul performs element-wise multiplication with broadcasting.
func (t *Tensor[T, B]) Mul(other *Tensor[T, B]) *Tensor[T, B] {
	result := t.backend.Mul(t.raw, other.raw)
	return New[T, B](result, t.backend)
}

// Reshape returns a tensor with the same data but different shape.
// The new shape must have the same number of elements; at most one
// dimension may be -1, in which case it is inferred.
//
// Panics if the shape cannot hold the tensor's elements.
//
// Example:
//
//	z := tensor.Zeros[float32](Shape{4, 128}, backend)
//	x := z.Reshape(-1, 128, 1, 1) // Shape: [4, 128, 1, 1]
func (t *Tensor[T, B]) Reshape(newShape ...int) *Tensor[T, B] {
	resolved, err := Shape(newShape).Resolve(t.NumElements())
	if err != nil {
		panic(fmt.Sprintf("reshape: %v", err))
	}
	result := t.backend.Reshape(t.raw, resolved)
	return New[T, B](result, t.backend)
}
