package nn

import (
	"fmt"

	"github.com/born-ml/gan/internal/tensor"
)

// Upsample scales the spatial dimensions of [N, C, H, W] input by an
// integer factor.
//
// Example:
//
//	up := nn.NewUpsample[Backend](2, tensor.Nearest)
//	output := up.Forward(input) // [N, C, 2H, 2W]
type Upsample[B tensor.Backend] struct {
	stateless[B]
	scale int
	mode  tensor.InterpolationMode
}

// NewUpsample creates an upsampling layer.
func NewUpsample[B tensor.Backend](scale int, mode tensor.InterpolationMode) *Upsample[B] {
	if scale <= 0 {
		panic(fmt.Sprintf("upsample: invalid scale factor %d", scale))
	}
	return &Upsample[B]{scale: scale, mode: mode}
}

// Forward upsamples the input.
func (u *Upsample[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	backend := input.Backend()
	return tensor.New[float32, B](backend.Upsample2D(input.Raw(), u.scale, u.mode), backend)
}

// Scale returns the upsampling factor.
func (u *Upsample[B]) Scale() int {
	return u.scale
}

// Mode returns the interpolation mode.
func (u *Upsample[B]) Mode() tensor.InterpolationMode {
	return u.mode
}

// String returns a string representation of the layer.
func (u *Upsample[B]) String() string {
	return fmt.Sprintf("Upsample(scale_factor=%d, mode=%s)", u.scale, u.mode)
}
