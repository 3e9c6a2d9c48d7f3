// Package nn implements the neural network layers used to assemble GAN
// generators and discriminators.
//
// This package provides building blocks for constructing convolutional networks:
//   - Module interface: Base interface for all NN components
//   - Parameter: Named weight tensors
//   - Conv2D, ConvTranspose2D, Upsample: Spatial layers
//   - InstanceNorm2D, BatchNorm2D: Normalization with running statistics
//   - Activations: ReLU, LeakyReLU, Tanh
//   - Sequential: Container for stacking layers
//
// Design inspired by PyTorch's nn.Module but adapted for Go generics.
package nn

import (
	"fmt"

	"github.com/born-ml/gan/internal/tensor"
)

// Module is the base interface for all neural network components.
//
// Every NN module must implement:
//   - Forward: Compute output from input
//   - Parameters: Return all trainable parameters
//   - StateDict / LoadStateDict: Export and import named tensors
//
// Modules can be composed to build complex architectures:
//
//	block := nn.NewSequential[Backend](
//	    nn.NewConvTranspose2D(128, 256, 4, 4, 2, 1, false, backend),
//	    nn.NewInstanceNorm2D(256, backend),
//	    nn.NewLeakyReLU[Backend](0.2),
//	)
//
// Type parameter B must satisfy the tensor.Backend interface.
type Module[B tensor.Backend] interface {
	// Forward computes the output of the module given an input tensor.
	//
	// Spatial modules expect [batch, channels, height, width].
	Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// Parameters returns all trainable parameters of this module.
	//
	// Returns an empty slice for modules without trainable parameters
	// (e.g., activation functions).
	Parameters() []*Parameter[B]

	// StateDict returns the module's named tensors: parameters and
	// persistent buffers such as running statistics. The returned tensors
	// alias the module's storage.
	StateDict() map[string]*tensor.RawTensor

	// LoadStateDict copies tensors from stateDict into the module.
	LoadStateDict(stateDict map[string]*tensor.RawTensor) error
}

// Trainable is implemented by modules whose forward pass depends on the
// training/evaluation mode.
type Trainable interface {
	SetTraining(training bool)
}

// SetTraining switches m and its children into training or evaluation mode.
// Modules that do not implement Trainable are left untouched.
func SetTraining[B tensor.Backend](m Module[B], training bool) {
	if t, ok := m.(Trainable); ok {
		t.SetTraining(training)
	}
}

// CountParameters returns the total number of scalar weights in params.
func CountParameters[B tensor.Backend](params []*Parameter[B]) int {
	total := 0
	for _, p := range params {
		total += p.NumElements()
	}
	return total
}

// loadTensor copies stateDict[name] into dst after checking shape and dtype.
func loadTensor(stateDict map[string]*tensor.RawTensor, name string, dst *tensor.RawTensor) error {
	src, ok := stateDict[name]
	if !ok {
		return fmt.Errorf("missing tensor %q", name)
	}
	if !src.Shape().Equal(dst.Shape()) {
		return fmt.Errorf("tensor %q: shape mismatch: expected %v, got %v", name, dst.Shape(), src.Shape())
	}
	if src.DType() != dst.DType() {
		return fmt.Errorf("tensor %q: dtype mismatch: expected %s, got %s", name, dst.DType(), src.DType())
	}
	copy(dst.Data(), src.Data())
	return nil
}
