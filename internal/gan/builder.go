package gan

// spatialRule emits the resolution-changing layers of a stage.
type spatialRule func(stage StageDescriptor, cfg Config) LayerSequence

// spatialRules is indexed by StageKind.
var spatialRules = [...]spatialRule{
	StageUp: func(stage StageDescriptor, cfg Config) LayerSequence {
		if cfg.GeneratorUpsample {
			return LayerSequence{
				Upsample(2, cfg.UpsampleMode),
				Conv(stage.InChannels, stage.OutChannels, 3, 1, 1, stage.UseBias),
			}
		}
		return LayerSequence{ConvTranspose(stage.InChannels, stage.OutChannels, 4, 2, 1, stage.UseBias)}
	},
	StageDown: func(stage StageDescriptor, _ Config) LayerSequence {
		return LayerSequence{Conv(stage.InChannels, stage.OutChannels, 4, 2, 1, stage.UseBias)}
	},
	StageSame: func(stage StageDescriptor, _ Config) LayerSequence {
		return LayerSequence{Conv(stage.InChannels, stage.OutChannels, 3, 1, 1, stage.UseBias)}
	},
}

// normalizedKinds is indexed by StageKind. Down stages are never normalized.
var normalizedKinds = [...]bool{
	StageUp:   true,
	StageDown: false,
	StageSame: true,
}

// normalizationRules is indexed by Normalization.
var normalizationRules = [...]func(channels int) LayerSequence{
	NormNone:     func(int) LayerSequence { return nil },
	NormInstance: func(channels int) LayerSequence { return LayerSequence{InstanceNorm(channels)} },
	NormBatch:    func(channels int) LayerSequence { return LayerSequence{BatchNorm(channels)} },
}

// activationRules is indexed by Nonlinearity.
var activationRules = [...]func(cfg Config) LayerSpec{
	ReLU:      func(Config) LayerSpec { return Rectifier() },
	LeakyReLU: func(cfg Config) LayerSpec { return LeakyRectifier(cfg.Slope) },
}

// Compile-time check: every enum value has a rule.
var (
	_ = [1]struct{}{}[len(spatialRules)-int(stageKindCount)]
	_ = [1]struct{}{}[len(normalizedKinds)-int(stageKindCount)]
	_ = [1]struct{}{}[len(normalizationRules)-int(normalizationCount)]
	_ = [1]struct{}{}[len(activationRules)-int(nonlinearityCount)]
)

// Build returns the primitive layers implementing stage under cfg.
//
// Rules, in order:
//   - up: [upsample x2, conv 3x3 s1 p1] if cfg.GeneratorUpsample, else
//     [conv_transpose 4x4 s2 p1]; then normalization.
//   - down: [conv 4x4 s2 p1]; never normalized.
//   - same: [conv 3x3 s1 p1]; then normalization.
//   - always: exactly one activation, leaky_relu(cfg.Slope) or relu.
//
// Normalization is instance_norm or batch_norm over the output channels,
// or nothing for NormNone. Build returns a *ConfigurationError for
// non-positive channel counts or unrecognized enum values.
func Build(stage StageDescriptor, cfg Config) (LayerSequence, error) {
	if err := stage.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.validateEnums(); err != nil {
		return nil, err
	}

	seq := spatialRules[stage.Kind](stage, cfg)
	if normalizedKinds[stage.Kind] {
		seq = append(seq, normalizationRules[cfg.Normalization](stage.OutChannels)...)
	}
	return append(seq, activationRules[cfg.Nonlinearity](cfg)), nil
}
