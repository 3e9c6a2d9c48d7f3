package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/born-ml/gan/internal/backend/cpu"
	"github.com/born-ml/gan/internal/config"
	"github.com/born-ml/gan/internal/gan"
	"github.com/born-ml/gan/internal/serialization"
	"github.com/born-ml/gan/internal/tensor"
)

// Metadata keys written by init.
const (
	metaConfig    = "config"
	metaBaseWidth = "base_width"
	metaRunID     = "run_id"
	metaSeed      = "seed"
)

// modelKind selects one of the three architectures.
type modelKind string

const (
	kindCompact       modelKind = "compact"
	kindExtended      modelKind = "extended"
	kindDiscriminator modelKind = "discriminator"
)

func parseModelKind(s string) (modelKind, error) {
	switch k := modelKind(s); k {
	case kindCompact, kindExtended, kindDiscriminator:
		return k, nil
	}
	return "", fmt.Errorf("unknown model %q (expected compact, extended or discriminator)", s)
}

// archName is the architecture name stored as the weight file model type.
func (k modelKind) archName() string {
	switch k {
	case kindCompact:
		return gan.CompactGeneratorName
	case kindExtended:
		return gan.ExtendedGeneratorName
	default:
		return gan.DiscriminatorName
	}
}

func (k modelKind) defaultWidth() int {
	if k == kindDiscriminator {
		return gan.DefaultDiscriminatorWidth
	}
	return gan.DefaultGeneratorWidth
}

// architecture builds the static description for kind.
func architecture(kind modelKind, cfg gan.Config, base int) (*gan.Architecture, error) {
	switch kind {
	case kindCompact:
		return gan.CompactGenerator(cfg, base)
	case kindExtended:
		return gan.ExtendedGenerator(cfg, base)
	default:
		return gan.Discriminator(cfg, base)
	}
}

// modelSettings is what a command needs to rebuild a model.
type modelSettings struct {
	kind modelKind
	cfg  gan.Config
	base int
}

func newModel(s modelSettings) (*gan.Model[*cpu.CPUBackend], error) {
	arch, err := architecture(s.kind, s.cfg, s.base)
	if err != nil {
		return nil, err
	}
	return gan.NewModel(arch, cpu.New())
}

// modelFlags registers the flags shared by init, sample and score.
type modelFlags struct {
	configPath string
	base       int
	weights    string
}

func (f *modelFlags) register(cmd *cobra.Command, withWeights bool) {
	cmd.Flags().StringVar(&f.configPath, "config", "", "YAML configuration file")
	cmd.Flags().IntVar(&f.base, "base", 0, "Base channel width (default 128 for generators, 64 for the discriminator)")
	if withWeights {
		cmd.Flags().StringVar(&f.weights, "weights", "", "Load weights from a .born file")
	}
}

// settings resolves the configuration for kind. Without --weights it comes
// from --config and the environment. With --weights the file's config and
// base width are used unless overridden by flags.
func (f *modelFlags) settings(cmd *cobra.Command, kind modelKind) (modelSettings, map[string]*tensor.RawTensor, error) {
	s := modelSettings{kind: kind, base: f.base}

	if f.weights == "" {
		cfg, err := config.Load(f.configPath)
		if err != nil {
			return s, nil, err
		}
		s.cfg = cfg
		if s.base == 0 {
			s.base = kind.defaultWidth()
		}
		return s, nil, nil
	}

	header, stateDict, err := serialization.ReadFile(f.weights)
	if err != nil {
		return s, nil, fmt.Errorf("%s: %w", f.weights, err)
	}
	if header.ModelType != kind.archName() {
		return s, nil, fmt.Errorf("%s holds %s weights, expected %s", f.weights, header.ModelType, kind.archName())
	}
	slog.Debug("loaded weights", "path", f.weights, "tensors", len(stateDict), "run_id", header.Metadata[metaRunID])

	if cmd.Flags().Changed("config") {
		s.cfg, err = config.Load(f.configPath)
	} else {
		s.cfg, err = config.Parse([]byte(header.Metadata[metaConfig]))
	}
	if err != nil {
		return s, nil, err
	}

	if s.base == 0 {
		s.base = kind.defaultWidth()
		if v, ok := header.Metadata[metaBaseWidth]; ok {
			if s.base, err = strconv.Atoi(v); err != nil {
				return s, nil, fmt.Errorf("%s: invalid %s %q", f.weights, metaBaseWidth, v)
			}
		}
	}
	return s, stateDict, nil
}

// loadModel materializes the model and loads weights when present.
func (f *modelFlags) loadModel(cmd *cobra.Command, kind modelKind) (*gan.Model[*cpu.CPUBackend], modelSettings, error) {
	s, stateDict, err := f.settings(cmd, kind)
	if err != nil {
		return nil, s, err
	}
	model, err := newModel(s)
	if err != nil {
		return nil, s, err
	}
	if stateDict != nil {
		if err := model.LoadStateDict(stateDict); err != nil {
			return nil, s, fmt.Errorf("%s: %w", f.weights, err)
		}
	}
	return model, s, nil
}
