package gan

import "fmt"

// Default base widths.
const (
	DefaultGeneratorWidth     = 128
	DefaultDiscriminatorWidth = 64
)

// Architecture names.
const (
	CompactGeneratorName  = "compact_generator"
	ExtendedGeneratorName = "extended_generator"
	DiscriminatorName     = "discriminator"
)

// compactInputSlope is the fixed slope after the compact generator's
// input projection, independent of Config.Slope.
const compactInputSlope = 0.02

// extendedWidths is the extended generator's width schedule.
var extendedWidths = [...]int{128, 256, 512, 512, 256, 128}

func checkWidth(width int) error {
	if width <= 0 {
		return configError("base_width", width, "must be positive")
	}
	return nil
}

// rgbProjection is the generators' final 7x7 projection to [-1, 1] RGB.
func rgbProjection(in int) []LayerSpec {
	return []LayerSpec{Conv(in, 3, 7, 1, 3, false), Bounded()}
}

// CompactGenerator assembles the compact generator with base width inCh.
//
// Stages:
//   - input: conv 1x1 LatentDim->inCh without bias, leaky_relu(0.02)
//   - up1..up4: widths double for the first two stages, then hold
//   - up5..up7: widths hold, the last halves
//   - output: conv 7x7 ->3 without bias, tanh
//
// Latents are reshaped to [-1, inCh, 1, 1], so LatentDim must equal inCh
// for the forward pass to line up. With inCh = 128 the up stages produce
// 256, 512, 512, 512, 512, 512, 256 channels and a 128x128 image.
func CompactGenerator(cfg Config, inCh int) (*Architecture, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := checkWidth(inCh); err != nil {
		return nil, err
	}

	a := assembler{cfg: cfg}
	a.fixed("input", Conv(cfg.LatentDim, inCh, 1, 1, 0, false), LeakyRectifier(compactInputSlope))

	base := inCh
	stage := 0
	for i := 0; i < 4; i++ {
		out := base
		if i < 2 {
			out = base * 2
		}
		stage++
		a.built(fmt.Sprintf("up%d", stage), Up(base, out, false))
		base = out
	}
	for i := 0; i < 3; i++ {
		out := base
		if i > 1 {
			out = base / 2
		}
		stage++
		a.built(fmt.Sprintf("up%d", stage), Up(base, out, false))
		base = out
	}

	a.fixed("output", rgbProjection(base)...)
	return a.finish(CompactGeneratorName, InputAdapter{LatentChannels: inCh})
}

// ExtendedGenerator assembles the extended generator with base width inCh.
//
// Stages:
//   - input: up-stage LatentDim->inCh
//   - for each width in 128, 256, 512, 512, 256, 128: an up-stage
//     ->width, a same-stage width->width and a bare conv 3x3 width->width
//   - output: conv 7x7 ->3 without bias, tanh
//
// Latents are reshaped to [-1, LatentDim, 1, 1]. The output is 128x128.
func ExtendedGenerator(cfg Config, inCh int) (*Architecture, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := checkWidth(inCh); err != nil {
		return nil, err
	}

	a := assembler{cfg: cfg}
	a.built("input", Up(cfg.LatentDim, inCh, false))

	base := inCh
	for i, width := range extendedWidths {
		a.built(fmt.Sprintf("up%d", i+1), Up(base, width, false))
		a.built(fmt.Sprintf("same%d", i+1), Same(width, width, false))
		a.fixed(fmt.Sprintf("conv%d", i+1), Conv(width, width, 3, 1, 1, false))
		base = width
	}

	a.fixed("output", rgbProjection(base)...)
	return a.finish(ExtendedGeneratorName, InputAdapter{LatentChannels: cfg.LatentDim})
}
