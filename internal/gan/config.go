package gan

import (
	"fmt"
	"strings"

	"github.com/born-ml/gan/internal/tensor"
)

// Normalization selects the normalization layer appended to up and same stages.
type Normalization int

// Supported normalizations.
const (
	NormNone Normalization = iota
	NormInstance
	NormBatch

	normalizationCount
)

// Nonlinearity selects the activation closing every built stage.
type Nonlinearity int

// Supported nonlinearities.
const (
	ReLU Nonlinearity = iota
	LeakyReLU

	nonlinearityCount
)

// UpsampleMode selects the interpolation of upsample layers.
type UpsampleMode int

// Supported upsample modes.
const (
	UpsampleNearest UpsampleMode = iota
	UpsampleBilinear

	upsampleModeCount
)

// enumNames maps canonical names and accepted aliases to enum values.
type enumNames[E ~int] struct {
	field     string
	canonical []string
	aliases   map[string]E
}

func (n enumNames[E]) name(v E) string {
	if v < 0 || int(v) >= len(n.canonical) {
		return fmt.Sprintf("%s(%d)", n.field, int(v))
	}
	return n.canonical[v]
}

func (n enumNames[E]) parse(s string) (E, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, c := range n.canonical {
		if key == c {
			return E(i), nil
		}
	}
	if v, ok := n.aliases[key]; ok {
		return v, nil
	}
	return 0, configError(n.field, s, "unrecognized value (expected one of "+strings.Join(n.canonical, ", ")+")")
}

func (n enumNames[E]) valid(v E) bool {
	return v >= 0 && int(v) < len(n.canonical)
}

var (
	normalizationList = [...]string{NormNone: "none", NormInstance: "instance", NormBatch: "batch"}
	nonlinearityList  = [...]string{ReLU: "relu", LeakyReLU: "leaky_relu"}
	upsampleModeList  = [...]string{UpsampleNearest: "nearest", UpsampleBilinear: "bilinear"}
)

// Compile-time check: every enum value has a name.
var (
	_ = [1]struct{}{}[len(normalizationList)-int(normalizationCount)]
	_ = [1]struct{}{}[len(nonlinearityList)-int(nonlinearityCount)]
	_ = [1]struct{}{}[len(upsampleModeList)-int(upsampleModeCount)]
)

var (
	normalizationNames = enumNames[Normalization]{
		field:     "normalization",
		canonical: normalizationList[:],
		aliases:   map[string]Normalization{"inorm": NormInstance, "bnorm": NormBatch},
	}
	nonlinearityNames = enumNames[Nonlinearity]{
		field:     "nonlinearity",
		canonical: nonlinearityList[:],
		aliases:   map[string]Nonlinearity{"leakyrelu": LeakyReLU},
	}
	upsampleModeNames = enumNames[UpsampleMode]{
		field:     "upsample_mode",
		canonical: upsampleModeList[:],
	}
)

// ParseNormalization parses "none", "instance" or "batch" (aliases "inorm", "bnorm").
func ParseNormalization(s string) (Normalization, error) { return normalizationNames.parse(s) }

// ParseNonlinearity parses "relu" or "leaky_relu" (alias "leakyrelu").
func ParseNonlinearity(s string) (Nonlinearity, error) { return nonlinearityNames.parse(s) }

// ParseUpsampleMode parses "nearest" or "bilinear".
func ParseUpsampleMode(s string) (UpsampleMode, error) { return upsampleModeNames.parse(s) }

func (n Normalization) String() string { return normalizationNames.name(n) }
func (n Nonlinearity) String() string  { return nonlinearityNames.name(n) }
func (m UpsampleMode) String() string  { return upsampleModeNames.name(m) }

// MarshalText implements encoding.TextMarshaler.
func (n Normalization) MarshalText() ([]byte, error) { return []byte(n.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *Normalization) UnmarshalText(text []byte) error {
	v, err := ParseNormalization(string(text))
	if err != nil {
		return err
	}
	*n = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (n Nonlinearity) MarshalText() ([]byte, error) { return []byte(n.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *Nonlinearity) UnmarshalText(text []byte) error {
	v, err := ParseNonlinearity(string(text))
	if err != nil {
		return err
	}
	*n = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (m UpsampleMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *UpsampleMode) UnmarshalText(text []byte) error {
	v, err := ParseUpsampleMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// interpolation maps the mode onto the engine's interpolation.
func (m UpsampleMode) interpolation() tensor.InterpolationMode {
	if m == UpsampleBilinear {
		return tensor.Bilinear
	}
	return tensor.Nearest
}

// Config drives architecture assembly.
//
// Config is a plain value: copy it freely, it is never mutated by the
// constructors that receive it.
type Config struct {
	// LatentDim is the length of the input noise vector.
	LatentDim int

	// GeneratorUpsample selects upsample + 3x3 convolution for up stages
	// instead of a 4x4 stride-2 transposed convolution.
	GeneratorUpsample bool

	// UpsampleMode is the interpolation used when GeneratorUpsample is set.
	UpsampleMode UpsampleMode

	// Normalization appended to up and same stages.
	Normalization Normalization

	// Nonlinearity closing every built stage.
	Nonlinearity Nonlinearity

	// Slope is the negative slope of the leaky rectifier.
	Slope float32
}

// DefaultConfig returns the reference configuration: 128-dim latent,
// transposed convolutions, instance normalization and leaky ReLU(0.2).
func DefaultConfig() Config {
	return Config{
		LatentDim:     128,
		UpsampleMode:  UpsampleNearest,
		Normalization: NormInstance,
		Nonlinearity:  LeakyReLU,
		Slope:         0.2,
	}
}

// Validate checks every field.
func (c Config) Validate() error {
	if c.LatentDim <= 0 {
		return configError("latent_dim", c.LatentDim, "must be positive")
	}
	return c.validateEnums()
}

// validateEnums checks only the fields the layer builder dispatches on.
func (c Config) validateEnums() error {
	if !normalizationNames.valid(c.Normalization) {
		return configError("normalization", int(c.Normalization), "unrecognized value")
	}
	if !nonlinearityNames.valid(c.Nonlinearity) {
		return configError("nonlinearity", int(c.Nonlinearity), "unrecognized value")
	}
	if !upsampleModeNames.valid(c.UpsampleMode) {
		return configError("upsample_mode", int(c.UpsampleMode), "unrecognized value")
	}
	return nil
}

// String returns a compact description of the configuration.
func (c Config) String() string {
	return fmt.Sprintf("latent_dim=%d generator_upsample=%v upsample_mode=%s normalization=%s nonlinearity=%s slope=%g",
		c.LatentDim, c.GeneratorUpsample, c.UpsampleMode, c.Normalization, c.Nonlinearity, c.Slope)
}
