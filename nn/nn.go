// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/gan/internal/nn"
	"github.com/born-ml/gan/internal/tensor"
)

// Module interface defines the common interface for all neural network modules.
type Module[B tensor.Backend] = nn.Module[B]

// Trainable is implemented by modules whose forward pass depends on
// training mode.
type Trainable = nn.Trainable

// Parameter represents a trainable parameter in a neural network.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// NewParameter creates a new parameter with the given name and tensor.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}

// SetTraining switches m between training and evaluation mode when it
// implements Trainable.
func SetTraining[B tensor.Backend](m Module[B], training bool) {
	nn.SetTraining(m, training)
}

// CountParameters returns the total number of scalar parameters.
func CountParameters[B tensor.Backend](params []*Parameter[B]) int {
	return nn.CountParameters(params)
}

// Layers

// Conv2D represents a 2D convolutional layer.
type Conv2D[B tensor.Backend] = nn.Conv2D[B]

// NewConv2D creates a new 2D convolutional layer.
//
// Example:
//
//	backend := cpu.New()
//	conv := nn.NewConv2D(3, 64, 4, 4, 2, 1, true, backend) // in=3, out=64, kernel=4x4, stride=2, padding=1, bias
func NewConv2D[B tensor.Backend](
	inChannels, outChannels int,
	kernelH, kernelW int,
	stride, padding int,
	useBias bool,
	backend B,
) *Conv2D[B] {
	return nn.NewConv2D(inChannels, outChannels, kernelH, kernelW, stride, padding, useBias, backend)
}

// ConvTranspose2D represents a 2D transposed convolution; its weight is
// laid out [in, out, kh, kw].
type ConvTranspose2D[B tensor.Backend] = nn.ConvTranspose2D[B]

// NewConvTranspose2D creates a new 2D transposed convolution.
func NewConvTranspose2D[B tensor.Backend](
	inChannels, outChannels int,
	kernelH, kernelW int,
	stride, padding int,
	useBias bool,
	backend B,
) *ConvTranspose2D[B] {
	return nn.NewConvTranspose2D(inChannels, outChannels, kernelH, kernelW, stride, padding, useBias, backend)
}

// Conv2DOutputSize returns the spatial output size of a convolution.
func Conv2DOutputSize(inputH, inputW int, kernel [2]int, stride, padding int) [2]int {
	return nn.Conv2DOutputSize(inputH, inputW, kernel, stride, padding)
}

// ConvTranspose2DOutputSize returns the spatial output size of a
// transposed convolution.
func ConvTranspose2DOutputSize(inputH, inputW int, kernel [2]int, stride, padding int) [2]int {
	return nn.ConvTranspose2DOutputSize(inputH, inputW, kernel, stride, padding)
}

// Upsample scales H and W by an integer factor.
type Upsample[B tensor.Backend] = nn.Upsample[B]

// NewUpsample creates an upsampling layer.
func NewUpsample[B tensor.Backend](scale int, mode tensor.InterpolationMode) *Upsample[B] {
	return nn.NewUpsample[B](scale, mode)
}

// Normalization

// Normalization defaults.
const (
	DefaultNormEps      = nn.DefaultNormEps
	DefaultNormMomentum = nn.DefaultNormMomentum
)

// InstanceNorm2D normalizes every (sample, channel) plane.
type InstanceNorm2D[B tensor.Backend] = nn.InstanceNorm2D[B]

// NewInstanceNorm2D creates an instance normalization layer.
func NewInstanceNorm2D[B tensor.Backend](numFeatures int, affine, trackRunningStats bool, backend B) *InstanceNorm2D[B] {
	return nn.NewInstanceNorm2D(numFeatures, affine, trackRunningStats, backend)
}

// BatchNorm2D normalizes every channel over the batch.
type BatchNorm2D[B tensor.Backend] = nn.BatchNorm2D[B]

// NewBatchNorm2D creates a batch normalization layer.
func NewBatchNorm2D[B tensor.Backend](numFeatures int, affine, trackRunningStats bool, backend B) *BatchNorm2D[B] {
	return nn.NewBatchNorm2D(numFeatures, affine, trackRunningStats, backend)
}

// Activations

// ReLU is max(0, x).
type ReLU[B tensor.Backend] = nn.ReLU[B]

// NewReLU creates a ReLU activation.
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return nn.NewReLU[B]()
}

// LeakyReLU is x for x >= 0 and slope*x otherwise.
type LeakyReLU[B tensor.Backend] = nn.LeakyReLU[B]

// NewLeakyReLU creates a leaky ReLU activation.
func NewLeakyReLU[B tensor.Backend](slope float32) *LeakyReLU[B] {
	return nn.NewLeakyReLU[B](slope)
}

// Tanh bounds its input to [-1, 1].
type Tanh[B tensor.Backend] = nn.Tanh[B]

// NewTanh creates a Tanh activation.
func NewTanh[B tensor.Backend]() *Tanh[B] {
	return nn.NewTanh[B]()
}

// Containers

// Sequential applies modules in order.
type Sequential[B tensor.Backend] = nn.Sequential[B]

// NewSequential creates a container from modules.
func NewSequential[B tensor.Backend](modules ...Module[B]) *Sequential[B] {
	return nn.NewSequential(modules...)
}

// Initialization

// Seed reseeds the weight initializer.
func Seed(seed int64) {
	nn.Seed(seed)
}

// Xavier returns a Xavier/Glorot uniform tensor.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Xavier(fanIn, fanOut, shape, backend)
}

// Zeros returns a zero tensor.
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Zeros(shape, backend)
}

// Ones returns a tensor of ones.
func Ones[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Ones(shape, backend)
}
