package gan

import "fmt"

// Stage is one architectural unit: either built from a StageDescriptor by
// Build, or a fixed bare layer sequence.
type Stage struct {
	Name       string
	Descriptor *StageDescriptor // nil for fixed stages
	Layers     LayerSequence
}

// Built reports whether the stage came from the layer builder.
func (s Stage) Built() bool {
	return s.Descriptor != nil
}

// KindName returns the stage kind, or "fixed" for bare stages.
func (s Stage) KindName() string {
	if s.Descriptor == nil {
		return "fixed"
	}
	return s.Descriptor.Kind.String()
}

// InChannels returns the channels the stage consumes.
func (s Stage) InChannels() int {
	return s.Layers.InChannels()
}

// OutChannels returns the channels the stage produces.
func (s Stage) OutChannels() int {
	return s.Layers.OutChannels()
}

func (s Stage) clone() Stage {
	out := Stage{Name: s.Name, Layers: s.Layers.Clone()}
	if s.Descriptor != nil {
		d := *s.Descriptor
		out.Descriptor = &d
	}
	return out
}

// InputAdapter describes how a Model's input is brought into NCHW form.
type InputAdapter struct {
	// LatentChannels, when positive, reshapes flat [N, D] latents into
	// [-1, LatentChannels, 1, 1]. Zero means the input is already an image.
	LatentChannels int

	// ImageChannels is the channel count expected from image input.
	ImageChannels int
}

// Reshapes reports whether the adapter reshapes latent vectors.
func (a InputAdapter) Reshapes() bool {
	return a.LatentChannels > 0
}

// Channels returns the channels produced by the adapter.
func (a InputAdapter) Channels() int {
	if a.Reshapes() {
		return a.LatentChannels
	}
	return a.ImageChannels
}

// Architecture is an immutable ordered list of stages plus an input adapter.
//
// Architectures are produced by CompactGenerator, ExtendedGenerator and
// Discriminator, or by NewArchitecture for custom stacks.
type Architecture struct {
	name   string
	input  InputAdapter
	stages []Stage
}

// NewArchitecture validates and returns an architecture. Stages are copied.
func NewArchitecture(name string, input InputAdapter, stages []Stage) (*Architecture, error) {
	a := &Architecture{name: name, input: input, stages: make([]Stage, len(stages))}
	for i, s := range stages {
		a.stages[i] = s.clone()
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Name returns the architecture name.
func (a *Architecture) Name() string {
	return a.name
}

// Input returns the input adapter.
func (a *Architecture) Input() InputAdapter {
	return a.input
}

// NumStages returns the number of stages.
func (a *Architecture) NumStages() int {
	return len(a.stages)
}

// Stage returns a copy of stage i.
func (a *Architecture) Stage(i int) Stage {
	return a.stages[i].clone()
}

// Stages returns a copy of all stages.
func (a *Architecture) Stages() []Stage {
	out := make([]Stage, len(a.stages))
	for i, s := range a.stages {
		out[i] = s.clone()
	}
	return out
}

// OutChannels returns the channels of the final stage.
func (a *Architecture) OutChannels() int {
	if len(a.stages) == 0 {
		return 0
	}
	return a.stages[len(a.stages)-1].OutChannels()
}

// NumParameters returns the total trainable weights.
func (a *Architecture) NumParameters() int {
	n := 0
	for _, s := range a.stages {
		n += s.Layers.NumParameters()
	}
	return n
}

// Validate checks every layer's settings and channel continuity inside
// and across stages.
//
// The input adapter is not part of the check: the compact generator
// reshapes to its base width while its first stage consumes LatentDim
// channels, and the two only agree when they are equal.
func (a *Architecture) Validate() error {
	if len(a.stages) == 0 {
		return configError("stages", 0, "architecture has no stages")
	}

	channels := 0
	for i, s := range a.stages {
		if len(s.Layers) == 0 {
			return configError("stage", s.Name, "stage has no layers")
		}
		for j, l := range s.Layers {
			if err := validateLayer(l, fmt.Sprintf("stage %d (%s) layer %d", i, s.Name, j)); err != nil {
				return err
			}
			if !l.Kind.HasChannels() {
				continue
			}
			if channels != 0 && l.InChannels != channels {
				return configError("in_channels", l.InChannels,
					fmt.Sprintf("stage %d (%s) layer %d expects %d channels from the previous layer", i, s.Name, j, channels))
			}
			channels = l.OutChannels
		}
	}
	return nil
}

// validateLayer rejects settings the engine cannot materialize.
func validateLayer(l LayerSpec, where string) error {
	if l.Kind < 0 || l.Kind >= layerKindCount {
		return configError("kind", int(l.Kind), where+" has an unknown layer kind")
	}

	if l.Kind.HasChannels() && (l.InChannels <= 0 || l.OutChannels <= 0) {
		return configError("channels", fmt.Sprintf("%d->%d", l.InChannels, l.OutChannels),
			where+" must have positive channels")
	}

	switch l.Kind {
	case LayerConv, LayerConvTranspose:
		switch {
		case l.Kernel <= 0:
			return configError("kernel", l.Kernel, where+" must have a positive kernel size")
		case l.Stride <= 0:
			return configError("stride", l.Stride, where+" must have a positive stride")
		case l.Padding < 0:
			return configError("padding", l.Padding, where+" must not have negative padding")
		}
	case LayerUpsample:
		if l.Scale <= 0 {
			return configError("scale", l.Scale, where+" must have a positive scale factor")
		}
		if l.Mode < 0 || l.Mode >= upsampleModeCount {
			return configError("upsample_mode", int(l.Mode), where+" has an unknown upsample mode")
		}
	case LayerInstanceNorm, LayerBatchNorm:
		if l.InChannels != l.OutChannels {
			return configError("channels", fmt.Sprintf("%d->%d", l.InChannels, l.OutChannels),
				where+" must normalize as many channels as it receives")
		}
	}
	return nil
}

// assembler collects stages and keeps the first error.
type assembler struct {
	cfg    Config
	stages []Stage
	err    error
}

// built appends a stage produced by Build.
func (a *assembler) built(name string, d StageDescriptor) {
	if a.err != nil {
		return
	}
	layers, err := Build(d, a.cfg)
	if err != nil {
		a.err = fmt.Errorf("stage %s: %w", name, err)
		return
	}
	a.stages = append(a.stages, Stage{Name: name, Descriptor: &d, Layers: layers})
}

// fixed appends a bare stage.
func (a *assembler) fixed(name string, layers ...LayerSpec) {
	if a.err != nil {
		return
	}
	a.stages = append(a.stages, Stage{Name: name, Layers: layers})
}

func (a *assembler) finish(name string, input InputAdapter) (*Architecture, error) {
	if a.err != nil {
		return nil, a.err
	}
	return NewArchitecture(name, input, a.stages)
}
