package gan

import "fmt"

// discriminatorCap is the width at which doubling stops.
const discriminatorCap = 512

// Discriminator assembles the discriminator with base width outCh.
//
// Stages:
//   - input: down-stage 3->outCh with bias
//   - down1..down6: the width doubles while it is below 512
//   - output: conv 1x1 ->1 without bias and without activation
//
// The result is a [N, 1, H/128, W/128] score map, not a pooled scalar.
// With outCh = 64 the widths are 64, 128, 256, 512, 512, 512, 512.
func Discriminator(cfg Config, outCh int) (*Architecture, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := checkWidth(outCh); err != nil {
		return nil, err
	}

	a := assembler{cfg: cfg}
	a.built("input", Down(3, outCh, true))

	width := outCh
	for i := 0; i < 6; i++ {
		in := width
		if width < discriminatorCap {
			width *= 2
		}
		a.built(fmt.Sprintf("down%d", i+1), Down(in, width, true))
	}

	a.fixed("output", Conv(width, 1, 1, 1, 0, false))
	return a.finish(DiscriminatorName, InputAdapter{ImageChannels: 3})
}
