package nn

import (
	"fmt"

	"github.com/born-ml/gan/internal/tensor"
)

// stateless provides the Module bookkeeping for layers without weights.
type stateless[B tensor.Backend] struct{}

// Parameters returns nil (no trainable parameters).
func (stateless[B]) Parameters() []*Parameter[B] {
	return nil
}

// StateDict returns an empty map.
func (stateless[B]) StateDict() map[string]*tensor.RawTensor {
	return map[string]*tensor.RawTensor{}
}

// LoadStateDict accepts only an empty state.
func (stateless[B]) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	for name := range stateDict {
		return fmt.Errorf("unexpected tensor %q for a layer without state", name)
	}
	return nil
}

// ReLU is a Rectified Linear Unit activation module.
//
// Applies the element-wise function: f(x) = max(0, x)
//
// Example:
//
//	relu := nn.NewReLU[Backend]()
//	output := relu.Forward(input)  // All negative values become 0
type ReLU[B tensor.Backend] struct {
	stateless[B]
}

// NewReLU creates a new ReLU activation module.
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return &ReLU[B]{}
}

// Forward applies ReLU activation: f(x) = max(0, x).
func (r *ReLU[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	backend := input.Backend()
	return tensor.New[float32, B](backend.ReLU(input.Raw()), backend)
}

// String returns a string representation of the layer.
func (r *ReLU[B]) String() string {
	return "ReLU()"
}

// LeakyReLU is a leaky rectifier.
//
// Applies the element-wise function: f(x) = x if x >= 0, slope*x otherwise.
//
// Example:
//
//	leaky := nn.NewLeakyReLU[Backend](0.2)
//	output := leaky.Forward(input)
type LeakyReLU[B tensor.Backend] struct {
	stateless[B]
	slope float32
}

// NewLeakyReLU creates a leaky ReLU with the given negative slope.
func NewLeakyReLU[B tensor.Backend](slope float32) *LeakyReLU[B] {
	return &LeakyReLU[B]{slope: slope}
}

// Forward applies the leaky rectifier.
func (l *LeakyReLU[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	backend := input.Backend()
	return tensor.New[float32, B](backend.LeakyReLU(input.Raw(), l.slope), backend)
}

// Slope returns the negative slope.
func (l *LeakyReLU[B]) Slope() float32 {
	return l.slope
}

// String returns a string representation of the layer.
func (l *LeakyReLU[B]) String() string {
	return fmt.Sprintf("LeakyReLU(negative_slope=%g)", l.slope)
}

// Tanh is a hyperbolic tangent activation module.
//
// Applies the element-wise function: tanh(x) = (exp(x) - exp(-x)) / (exp(x) + exp(-x))
//
// Tanh squashes values to the range [-1, 1]; generators use it as the
// final image activation.
type Tanh[B tensor.Backend] struct {
	stateless[B]
}

// NewTanh creates a new Tanh activation module.
func NewTanh[B tensor.Backend]() *Tanh[B] {
	return &Tanh[B]{}
}

// Forward applies Tanh activation.
func (t *Tanh[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	backend := input.Backend()
	return tensor.New[float32, B](backend.Tanh(input.Raw()), backend)
}

// String returns a string representation of the layer.
func (t *Tanh[B]) String() string {
	return "Tanh()"
}
