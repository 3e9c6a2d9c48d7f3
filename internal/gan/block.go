package gan

import (
	"fmt"

	"github.com/born-ml/gan/internal/nn"
	"github.com/born-ml/gan/internal/tensor"
)

// ConvBlock is one stage materialized on a backend.
//
// Apply feeds the input through each layer in order. Normalization layers
// own their running statistics and update them on training-mode calls.
type ConvBlock[B tensor.Backend] struct {
	layers LayerSequence
	main   *nn.Sequential[B]
}

// NewConvBlock builds the stage's layers with Build and materializes them.
func NewConvBlock[B tensor.Backend](stage StageDescriptor, cfg Config, backend B) (*ConvBlock[B], error) {
	layers, err := Build(stage, cfg)
	if err != nil {
		return nil, err
	}
	return newBlock(layers, backend), nil
}

// newBlock materializes a layer sequence.
func newBlock[B tensor.Backend](layers LayerSequence, backend B) *ConvBlock[B] {
	main := nn.NewSequential[B]()
	for _, spec := range layers {
		main.Add(Materialize(spec, backend))
	}
	return &ConvBlock[B]{layers: layers.Clone(), main: main}
}

// Materialize creates the engine layer described by spec.
//
// Panics on an unrecognized kind or on settings the engine rejects;
// specs from Build or a validated Architecture never trigger either.
func Materialize[B tensor.Backend](spec LayerSpec, backend B) nn.Module[B] {
	switch spec.Kind {
	case LayerUpsample:
		return nn.NewUpsample[B](spec.Scale, spec.Mode.interpolation())
	case LayerConv:
		return nn.NewConv2D(spec.InChannels, spec.OutChannels, spec.Kernel, spec.Kernel, spec.Stride, spec.Padding, spec.Bias, backend)
	case LayerConvTranspose:
		return nn.NewConvTranspose2D(spec.InChannels, spec.OutChannels, spec.Kernel, spec.Kernel, spec.Stride, spec.Padding, spec.Bias, backend)
	case LayerInstanceNorm:
		return nn.NewInstanceNorm2D(spec.OutChannels, spec.Affine, spec.TrackRunningStats, backend)
	case LayerBatchNorm:
		return nn.NewBatchNorm2D(spec.OutChannels, spec.Affine, spec.TrackRunningStats, backend)
	case LayerReLU:
		return nn.NewReLU[B]()
	case LayerLeakyReLU:
		return nn.NewLeakyReLU[B](spec.Slope)
	case LayerTanh:
		return nn.NewTanh[B]()
	default:
		panic(fmt.Sprintf("gan: cannot materialize layer kind %v", spec.Kind))
	}
}

// Apply runs the layers in order.
func (b *ConvBlock[B]) Apply(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return b.main.Forward(input)
}

// Forward is Apply; it makes ConvBlock an nn.Module.
func (b *ConvBlock[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return b.Apply(input)
}

// Sequence returns a copy of the layer descriptors.
func (b *ConvBlock[B]) Sequence() LayerSequence {
	return b.layers.Clone()
}

// Layer returns the materialized layer at index i.
func (b *ConvBlock[B]) Layer(i int) nn.Module[B] {
	return b.main.Module(i)
}

// Len returns the number of layers.
func (b *ConvBlock[B]) Len() int {
	return b.main.Len()
}

// Parameters returns the trainable parameters of all layers.
func (b *ConvBlock[B]) Parameters() []*nn.Parameter[B] {
	return b.main.Parameters()
}

// StateDict returns tensors keyed "<layer>.<name>".
func (b *ConvBlock[B]) StateDict() map[string]*tensor.RawTensor {
	return b.main.StateDict()
}

// LoadStateDict loads tensors keyed "<layer>.<name>".
func (b *ConvBlock[B]) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	return b.main.LoadStateDict(stateDict)
}

// SetTraining switches normalization layers between input statistics and
// running estimates.
func (b *ConvBlock[B]) SetTraining(training bool) {
	b.main.SetTraining(training)
}
