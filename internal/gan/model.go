package gan

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/born-ml/gan/internal/nn"
	"github.com/born-ml/gan/internal/tensor"
)

// Model is an Architecture materialized on a backend.
//
// A Model starts in training mode. It is not safe for concurrent
// training-mode Forward calls: normalization statistics are updated in place.
type Model[B tensor.Backend] struct {
	arch     *Architecture
	blocks   []*ConvBlock[B]
	training bool
	backend  B
}

// NewModel materializes every stage of arch.
func NewModel[B tensor.Backend](arch *Architecture, backend B) (*Model[B], error) {
	if err := arch.Validate(); err != nil {
		return nil, err
	}

	m := &Model[B]{arch: arch, training: true, backend: backend}
	for _, stage := range arch.stages {
		m.blocks = append(m.blocks, newBlock(stage.Layers, backend))
	}
	return m, nil
}

// Option configures the convenience constructors.
type Option func(*options)

type options struct {
	baseWidth int
}

// WithBaseWidth overrides the base channel width (128 for generators,
// 64 for the discriminator).
func WithBaseWidth(width int) Option {
	return func(o *options) {
		o.baseWidth = width
	}
}

func applyOptions(defaultWidth int, opts []Option) options {
	o := options{baseWidth: defaultWidth}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewCompactGenerator builds and materializes the compact generator.
func NewCompactGenerator[B tensor.Backend](cfg Config, backend B, opts ...Option) (*Model[B], error) {
	o := applyOptions(DefaultGeneratorWidth, opts)
	arch, err := CompactGenerator(cfg, o.baseWidth)
	if err != nil {
		return nil, err
	}
	return NewModel(arch, backend)
}

// NewExtendedGenerator builds and materializes the extended generator.
func NewExtendedGenerator[B tensor.Backend](cfg Config, backend B, opts ...Option) (*Model[B], error) {
	o := applyOptions(DefaultGeneratorWidth, opts)
	arch, err := ExtendedGenerator(cfg, o.baseWidth)
	if err != nil {
		return nil, err
	}
	return NewModel(arch, backend)
}

// NewDiscriminator builds and materializes the discriminator.
func NewDiscriminator[B tensor.Backend](cfg Config, backend B, opts ...Option) (*Model[B], error) {
	o := applyOptions(DefaultDiscriminatorWidth, opts)
	arch, err := Discriminator(cfg, o.baseWidth)
	if err != nil {
		return nil, err
	}
	return NewModel(arch, backend)
}

// Architecture returns the model's architecture.
func (m *Model[B]) Architecture() *Architecture {
	return m.arch
}

// Backend returns the model's backend.
func (m *Model[B]) Backend() B {
	return m.backend
}

// Forward applies the input adapter and then every stage in order.
//
// Generators take [N, LatentDim] latents (any shape whose element count
// fits the adapter); the discriminator takes [N, 3, H, W] images. Shape
// mismatches panic in the engine.
func (m *Model[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	x := input
	if m.arch.input.Reshapes() {
		x = x.Reshape(-1, m.arch.input.LatentChannels, 1, 1)
	}
	for _, block := range m.blocks {
		x = block.Apply(x)
	}
	return x
}

// Block returns the materialized stage i.
func (m *Model[B]) Block(i int) *ConvBlock[B] {
	return m.blocks[i]
}

// SetTraining switches every normalization layer between input statistics
// (training) and running estimates (evaluation).
func (m *Model[B]) SetTraining(training bool) {
	m.training = training
	for _, block := range m.blocks {
		block.SetTraining(training)
	}
}

// Training reports whether the model is in training mode.
func (m *Model[B]) Training() bool {
	return m.training
}

// Parameters returns all trainable parameters in stage order.
func (m *Model[B]) Parameters() []*nn.Parameter[B] {
	var params []*nn.Parameter[B]
	for _, block := range m.blocks {
		params = append(params, block.Parameters()...)
	}
	return params
}

// NumParameters returns the total trainable weights.
func (m *Model[B]) NumParameters() int {
	return nn.CountParameters(m.Parameters())
}

// StateDict returns every parameter and running statistic keyed
// "<stage>.<layer>.<name>". The tensors alias the model's storage.
func (m *Model[B]) StateDict() map[string]*tensor.RawTensor {
	stateDict := make(map[string]*tensor.RawTensor)
	for i, block := range m.blocks {
		for name, raw := range block.StateDict() {
			stateDict[fmt.Sprintf("%d.%s", i, name)] = raw
		}
	}
	return stateDict
}

// StateDictKeys returns the sorted state dict keys.
func (m *Model[B]) StateDictKeys() []string {
	keys := make([]string, 0)
	for k := range m.StateDict() {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// LoadStateDict copies tensors into the model.
//
// The key set must match StateDict exactly and every shape and dtype must
// agree. Nothing is copied unless all tensors pass.
func (m *Model[B]) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	own := m.StateDict()

	var missing, unexpected []string
	for k := range own {
		if _, ok := stateDict[k]; !ok {
			missing = append(missing, k)
		}
	}
	for k := range stateDict {
		if _, ok := own[k]; !ok {
			unexpected = append(unexpected, k)
		}
	}
	if len(missing) > 0 || len(unexpected) > 0 {
		slices.Sort(missing)
		slices.Sort(unexpected)
		return fmt.Errorf("%s: state dict mismatch: missing [%s], unexpected [%s]",
			m.arch.name, strings.Join(missing, ", "), strings.Join(unexpected, ", "))
	}

	for i, block := range m.blocks {
		current := block.StateDict()
		for _, name := range slices.Sorted(maps.Keys(current)) {
			src, dst := stateDict[fmt.Sprintf("%d.%s", i, name)], current[name]
			if err := checkTensor(name, src, dst); err != nil {
				return fmt.Errorf("%s: stage %d (%s): %w", m.arch.name, i, m.arch.stages[i].Name, err)
			}
		}
	}

	for i, block := range m.blocks {
		prefix := fmt.Sprintf("%d.", i)
		blockState := make(map[string]*tensor.RawTensor)
		for k, raw := range stateDict {
			if name, ok := strings.CutPrefix(k, prefix); ok {
				blockState[name] = raw
			}
		}
		if err := block.LoadStateDict(blockState); err != nil {
			return fmt.Errorf("%s: stage %d (%s): %w", m.arch.name, i, m.arch.stages[i].Name, err)
		}
	}
	return nil
}

func checkTensor(name string, src, dst *tensor.RawTensor) error {
	switch {
	case src == nil:
		return fmt.Errorf("tensor %q is nil", name)
	case !src.Shape().Equal(dst.Shape()):
		return fmt.Errorf("tensor %q: shape mismatch: expected %v, got %v", name, dst.Shape(), src.Shape())
	case src.DType() != dst.DType():
		return fmt.Errorf("tensor %q: dtype mismatch: expected %s, got %s", name, dst.DType(), src.DType())
	}
	return nil
}
