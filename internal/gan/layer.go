package gan

import (
	"fmt"
	"slices"
)

// LayerKind identifies a primitive layer.
type LayerKind int

// Primitive layers.
const (
	LayerUpsample LayerKind = iota
	LayerConv
	LayerConvTranspose
	LayerInstanceNorm
	LayerBatchNorm
	LayerReLU
	LayerLeakyReLU
	LayerTanh

	layerKindCount
)

var layerKindList = [...]string{
	LayerUpsample:      "upsample",
	LayerConv:          "conv",
	LayerConvTranspose: "conv_transpose",
	LayerInstanceNorm:  "instance_norm",
	LayerBatchNorm:     "batch_norm",
	LayerReLU:          "relu",
	LayerLeakyReLU:     "leaky_relu",
	LayerTanh:          "tanh",
}

var _ = [1]struct{}{}[len(layerKindList)-int(layerKindCount)]

func (k LayerKind) String() string {
	if k < 0 || k >= layerKindCount {
		return fmt.Sprintf("LayerKind(%d)", int(k))
	}
	return layerKindList[k]
}

// IsNormalization reports whether k is a normalization layer.
func (k LayerKind) IsNormalization() bool {
	return k == LayerInstanceNorm || k == LayerBatchNorm
}

// IsActivation reports whether k is an activation.
func (k LayerKind) IsActivation() bool {
	return k == LayerReLU || k == LayerLeakyReLU || k == LayerTanh
}

// HasChannels reports whether layers of kind k carry channel counts.
func (k LayerKind) HasChannels() bool {
	return k == LayerConv || k == LayerConvTranspose || k.IsNormalization()
}

// LayerSpec describes one primitive layer. Only the fields relevant to
// Kind are set; the rest stay zero.
type LayerSpec struct {
	Kind LayerKind

	// Convolutions; normalizations set both to the feature count.
	InChannels  int
	OutChannels int

	// Convolutions.
	Kernel  int
	Stride  int
	Padding int
	Bias    bool

	// Upsample.
	Scale int
	Mode  UpsampleMode

	// Normalizations.
	Affine            bool
	TrackRunningStats bool

	// Leaky rectifier.
	Slope float32
}

// Conv returns a square convolution.
func Conv(in, out, kernel, stride, padding int, bias bool) LayerSpec {
	return LayerSpec{Kind: LayerConv, InChannels: in, OutChannels: out, Kernel: kernel, Stride: stride, Padding: padding, Bias: bias}
}

// ConvTranspose returns a square transposed convolution.
func ConvTranspose(in, out, kernel, stride, padding int, bias bool) LayerSpec {
	return LayerSpec{Kind: LayerConvTranspose, InChannels: in, OutChannels: out, Kernel: kernel, Stride: stride, Padding: padding, Bias: bias}
}

// Upsample returns an integer-factor upsample.
func Upsample(scale int, mode UpsampleMode) LayerSpec {
	return LayerSpec{Kind: LayerUpsample, Scale: scale, Mode: mode}
}

// InstanceNorm returns an affine instance normalization tracking running statistics.
func InstanceNorm(channels int) LayerSpec {
	return LayerSpec{Kind: LayerInstanceNorm, InChannels: channels, OutChannels: channels, Affine: true, TrackRunningStats: true}
}

// BatchNorm returns a batch normalization with default settings.
func BatchNorm(channels int) LayerSpec {
	return LayerSpec{Kind: LayerBatchNorm, InChannels: channels, OutChannels: channels, Affine: true, TrackRunningStats: true}
}

// Rectifier returns a ReLU.
func Rectifier() LayerSpec { return LayerSpec{Kind: LayerReLU} }

// LeakyRectifier returns a leaky ReLU with the given negative slope.
func LeakyRectifier(slope float32) LayerSpec { return LayerSpec{Kind: LayerLeakyReLU, Slope: slope} }

// Bounded returns the tanh activation.
func Bounded() LayerSpec { return LayerSpec{Kind: LayerTanh} }

// NumParameters returns the number of trainable weights the layer owns.
func (l LayerSpec) NumParameters() int {
	switch l.Kind {
	case LayerConv, LayerConvTranspose:
		n := l.InChannels * l.OutChannels * l.Kernel * l.Kernel
		if l.Bias {
			n += l.OutChannels
		}
		return n
	case LayerInstanceNorm, LayerBatchNorm:
		if l.Affine {
			return 2 * l.OutChannels
		}
	}
	return 0
}

func (l LayerSpec) String() string {
	switch l.Kind {
	case LayerConv, LayerConvTranspose:
		return fmt.Sprintf("%s(%d->%d, k=%d, s=%d, p=%d, bias=%v)",
			l.Kind, l.InChannels, l.OutChannels, l.Kernel, l.Stride, l.Padding, l.Bias)
	case LayerUpsample:
		return fmt.Sprintf("upsample(x%d, %s)", l.Scale, l.Mode)
	case LayerInstanceNorm, LayerBatchNorm:
		return fmt.Sprintf("%s(%d, affine=%v, track_running_stats=%v)", l.Kind, l.OutChannels, l.Affine, l.TrackRunningStats)
	case LayerLeakyReLU:
		return fmt.Sprintf("leaky_relu(%g)", l.Slope)
	default:
		return l.Kind.String()
	}
}

// LayerSequence is an ordered list of primitive layers. Order is significant.
type LayerSequence []LayerSpec

// Clone returns a copy of the sequence.
func (s LayerSequence) Clone() LayerSequence {
	return slices.Clone(s)
}

// Count returns the number of layers satisfying pred.
func (s LayerSequence) Count(pred func(LayerKind) bool) int {
	n := 0
	for _, l := range s {
		if pred(l.Kind) {
			n++
		}
	}
	return n
}

// Kinds returns the layer kinds in order.
func (s LayerSequence) Kinds() []LayerKind {
	kinds := make([]LayerKind, len(s))
	for i, l := range s {
		kinds[i] = l.Kind
	}
	return kinds
}

// InChannels returns the input channels of the first channel-carrying
// layer, or 0 if there is none.
func (s LayerSequence) InChannels() int {
	for _, l := range s {
		if l.Kind.HasChannels() {
			return l.InChannels
		}
	}
	return 0
}

// OutChannels returns the output channels of the last channel-carrying
// layer, or 0 if there is none.
func (s LayerSequence) OutChannels() int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].Kind.HasChannels() {
			return s[i].OutChannels
		}
	}
	return 0
}

// NumParameters returns the total trainable weights of the sequence.
func (s LayerSequence) NumParameters() int {
	n := 0
	for _, l := range s {
		n += l.NumParameters()
	}
	return n
}
