package nn

import (
	"fmt"

	"github.com/born-ml/gan/internal/tensor"
)

// Conv2D is a 2D convolutional layer.
//
// Performs convolution: output = Conv2D(input, weight) + bias
//
// Input shape:  [batch, in_channels, height, width]
// Weight shape: [out_channels, in_channels, kernel_h, kernel_w]
// Bias shape:   [out_channels]
// Output shape: [batch, out_channels, out_h, out_w]
//
// Where:
//
//	out_h = (height + 2*padding - kernel_h) / stride + 1
//	out_w = (width + 2*padding - kernel_w) / stride + 1
//
// Example:
//
//	// Downsampling stage: 3 -> 64 channels, 4x4 kernel, stride 2
//	conv := nn.NewConv2D(3, 64, 4, 4, 2, 1, true, backend)
//
//	input := tensor.Zeros[float32](tensor.Shape{1, 3, 256, 256}, backend)
//	output := conv.Forward(input) // [1, 64, 128, 128]
type Conv2D[B tensor.Backend] struct {
	inChannels  int
	outChannels int
	kernelSize  [2]int
	stride      int
	padding     int
	useBias     bool

	weight *Parameter[B] // [out_channels, in_channels, kernel_h, kernel_w]
	bias   *Parameter[B] // [out_channels] or nil

	backend B
}

// NewConv2D creates a new 2D convolutional layer with Xavier initialization.
//
// Parameters:
//   - inChannels: Number of input channels
//   - outChannels: Number of output channels (number of filters)
//   - kernelH, kernelW: Kernel dimensions
//   - stride: Stride for convolution (commonly 1 or 2)
//   - padding: Zero padding to apply to input (commonly 0, 1, 3)
//   - useBias: Whether to include bias term
//   - backend: Backend for computation
//
// Initialization:
//   - Weights: Xavier/Glorot uniform initialization
//   - Bias: Zeros
func NewConv2D[B tensor.Backend](
	inChannels, outChannels int,
	kernelH, kernelW int,
	stride, padding int,
	useBias bool,
	backend B,
) *Conv2D[B] {
	validateConvArgs("conv2d", inChannels, outChannels, kernelH, kernelW, stride, padding)

	weightShape := tensor.Shape{outChannels, inChannels, kernelH, kernelW}
	fanIn := inChannels * kernelH * kernelW
	fanOut := outChannels * kernelH * kernelW
	weight := NewParameter("weight", Xavier(fanIn, fanOut, weightShape, backend))

	var bias *Parameter[B]
	if useBias {
		bias = NewParameter("bias", Zeros(tensor.Shape{outChannels}, backend))
	}

	return &Conv2D[B]{
		inChannels:  inChannels,
		outChannels: outChannels,
		kernelSize:  [2]int{kernelH, kernelW},
		stride:      stride,
		padding:     padding,
		useBias:     useBias,
		weight:      weight,
		bias:        bias,
		backend:     backend,
	}
}

func validateConvArgs(op string, inChannels, outChannels, kernelH, kernelW, stride, padding int) {
	if inChannels <= 0 || outChannels <= 0 {
		panic(fmt.Sprintf("%s: invalid channels in=%d, out=%d", op, inChannels, outChannels))
	}
	if kernelH <= 0 || kernelW <= 0 {
		panic(fmt.Sprintf("%s: invalid kernel size h=%d, w=%d", op, kernelH, kernelW))
	}
	if stride <= 0 {
		panic(fmt.Sprintf("%s: invalid stride %d", op, stride))
	}
	if padding < 0 {
		panic(fmt.Sprintf("%s: invalid padding %d", op, padding))
	}
}

// Forward performs the forward pass.
//
// Input: [batch, in_channels, height, width]
// Output: [batch, out_channels, out_h, out_w].
func (c *Conv2D[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	checkInput("conv2d", input, c.inChannels)

	output := tensor.New[float32, B](
		c.backend.Conv2D(input.Raw(), c.weight.Tensor().Raw(), c.stride, c.padding),
		c.backend,
	)

	if c.useBias {
		// [out_channels] -> [1, out_channels, 1, 1] for broadcasting
		output = output.Add(c.bias.Tensor().Reshape(1, c.outChannels, 1, 1))
	}

	return output
}

// checkInput panics unless input is [N, channels, H, W].
func checkInput[B tensor.Backend](op string, input *tensor.Tensor[float32, B], channels int) {
	shape := input.Shape()
	if len(shape) != 4 {
		panic(fmt.Sprintf("%s: expected 4D input [N,C,H,W], got %dD", op, len(shape)))
	}
	if shape[1] != channels {
		panic(fmt.Sprintf("%s: input channels %d != expected %d", op, shape[1], channels))
	}
}

// Parameters returns all trainable parameters.
func (c *Conv2D[B]) Parameters() []*Parameter[B] {
	if c.useBias {
		return []*Parameter[B]{c.weight, c.bias}
	}
	return []*Parameter[B]{c.weight}
}

// StateDict returns "weight" and, when present, "bias".
func (c *Conv2D[B]) StateDict() map[string]*tensor.RawTensor {
	return parameterState(c.Parameters())
}

// LoadStateDict loads "weight" and, when present, "bias".
func (c *Conv2D[B]) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	return loadParameters(stateDict, c.Parameters())
}

// String returns a string representation of the layer.
func (c *Conv2D[B]) String() string {
	return fmt.Sprintf("Conv2D(in_channels=%d, out_channels=%d, kernel_size=(%d, %d), stride=%d, padding=%d, bias=%v)",
		c.inChannels, c.outChannels,
		c.kernelSize[0], c.kernelSize[1],
		c.stride, c.padding, c.useBias)
}

// OutChannels returns the number of output channels.
func (c *Conv2D[B]) OutChannels() int {
	return c.outChannels
}

// InChannels returns the number of input channels.
func (c *Conv2D[B]) InChannels() int {
	return c.inChannels
}

// KernelSize returns the kernel size [height, width].
func (c *Conv2D[B]) KernelSize() [2]int {
	return c.kernelSize
}

// Weight returns the weight parameter.
func (c *Conv2D[B]) Weight() *Parameter[B] {
	return c.weight
}

// Bias returns the bias parameter, or nil when the layer has no bias.
func (c *Conv2D[B]) Bias() *Parameter[B] {
	return c.bias
}

// ComputeOutputSize computes output spatial dimensions for given input size.
//
// Returns: [out_height, out_width].
func (c *Conv2D[B]) ComputeOutputSize(inputH, inputW int) [2]int {
	return Conv2DOutputSize(inputH, inputW, c.kernelSize, c.stride, c.padding)
}

// Conv2DOutputSize is the convolution output-size formula.
//
// A dimension is 0 when the kernel does not fit the padded input.
func Conv2DOutputSize(inputH, inputW int, kernel [2]int, stride, padding int) [2]int {
	return [2]int{
		convOutputDim(inputH, kernel[0], stride, padding),
		convOutputDim(inputW, kernel[1], stride, padding),
	}
}

func convOutputDim(size, kernel, stride, padding int) int {
	span := size + 2*padding - kernel
	if span < 0 {
		return 0
	}
	return span/stride + 1
}

func parameterState[B tensor.Backend](params []*Parameter[B]) map[string]*tensor.RawTensor {
	stateDict := make(map[string]*tensor.RawTensor, len(params))
	for _, p := range params {
		stateDict[p.Name()] = p.Tensor().Raw()
	}
	return stateDict
}

func loadParameters[B tensor.Backend](stateDict map[string]*tensor.RawTensor, params []*Parameter[B]) error {
	for _, p := range params {
		if err := loadTensor(stateDict, p.Name(), p.Tensor().Raw()); err != nil {
			return err
		}
	}
	return nil
}
