package tensor

// InterpolationMode selects how Upsample2D computes new pixels.
type InterpolationMode int

// Supported interpolation modes.
const (
	Nearest InterpolationMode = iota
	Bilinear
)

// String returns the mode name.
func (m InterpolationMode) String() string {
	switch m {
	case Nearest:
		return "nearest"
	case Bilinear:
		return "bilinear"
	default:
		return "unknown"
	}
}

// Backend defines the interface that all compute backends must implement.
// Backends handle the actual computation for tensor operations.
//
// All spatial operations use NCHW layout.
type Backend interface {
	// Element-wise binary operations (NumPy-style broadcasting)
	Add(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor

	// Shape operations
	Reshape(t *RawTensor, newShape Shape) *RawTensor

	// Convolutional operations
	//
	// Conv2D kernel layout:          [C_out, C_in, K_h, K_w]
	// ConvTranspose2D kernel layout: [C_in, C_out, K_h, K_w]
	Conv2D(input, kernel *RawTensor, stride, padding int) *RawTensor
	ConvTranspose2D(input, kernel *RawTensor, stride, padding int) *RawTensor
	Upsample2D(input *RawTensor, scale int, mode InterpolationMode) *RawTensor

	// Normalization
	//
	// Moments2D returns biased mean and variance of [N, C, H, W] input.
	// perInstance=false reduces over (N, H, W) into [C];
	// perInstance=true reduces over (H, W) into [N, C].
	Moments2D(x *RawTensor, perInstance bool) (mean, variance *RawTensor)
	// Normalize2D computes (x - mean) / sqrt(variance + eps) * weight + bias.
	// mean/variance are [C] or [N, C]; weight/bias are [C] or nil.
	Normalize2D(x, mean, variance, weight, bias *RawTensor, eps float32) *RawTensor

	// Activation functions
	ReLU(x *RawTensor) *RawTensor
	LeakyReLU(x *RawTensor, slope float32) *RawTensor
	Tanh(x *RawTensor) *RawTensor

	// Metadata
	Name() string
	Device() Device
}
