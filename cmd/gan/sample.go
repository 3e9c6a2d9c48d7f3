package main

import (
	"fmt"
	"image/png"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/born-ml/gan/internal/nn"
	"github.com/born-ml/gan/internal/tensor"
)

func newSampleCmd() *cobra.Command {
	var (
		flags     modelFlags
		model     string
		out       string
		n         int
		cols      int
		scale     int
		seed      int64
		trainMode bool
	)

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Generate images and write them as a PNG grid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kind, err := parseModelKind(model)
			if err != nil {
				return err
			}
			if kind == kindDiscriminator {
				return fmt.Errorf("sample needs a generator, got %s", kind)
			}
			if n <= 0 {
				return fmt.Errorf("invalid sample count %d", n)
			}

			if !cmd.Flags().Changed("seed") {
				seed = time.Now().UnixNano()
			}
			nn.Seed(seed)

			m, s, err := flags.loadModel(cmd, kind)
			if err != nil {
				return err
			}
			m.SetTraining(trainMode)

			input := modelInput(kind, s.cfg, n, 0)
			want, err := m.Architecture().OutputShape(input)
			if err != nil {
				return err
			}

			//nolint:gosec // G404: sampling noise, not security sensitive
			rng := rand.New(rand.NewSource(seed))
			z := tensor.RandnFrom[float32](rng, input, m.Backend())

			start := time.Now()
			images := m.Forward(z)
			slog.Debug("generated", "model", m.Architecture().Name(), "shape", images.Shape(), "elapsed", time.Since(start))
			if !images.Shape().Equal(want) {
				return fmt.Errorf("generator produced %v, expected %v", images.Shape(), want)
			}

			frames, err := tensorImages(images)
			if err != nil {
				return err
			}
			if cols <= 0 {
				cols = gridColumns(len(frames))
			}
			grid := upscale(tileGrid(frames, cols), scale)

			//nolint:gosec // G304: output path comes from the command line
			file, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", out, err)
			}
			if err := png.Encode(file, grid); err != nil {
				_ = file.Close()
				return fmt.Errorf("failed to encode %s: %w", out, err)
			}
			if err := file.Close(); err != nil {
				return err
			}

			size := grid.Bounds().Size()
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d images, %dx%d, seed %d\n", out, n, size.X, size.Y, seed)
			return nil
		},
	}

	flags.register(cmd, true)
	cmd.Flags().StringVar(&model, "model", string(kindCompact), "Generator: compact or extended")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output PNG file")
	cmd.Flags().IntVar(&n, "n", 4, "Number of images")
	cmd.Flags().IntVar(&cols, "cols", 0, "Grid columns (default: square grid)")
	cmd.Flags().IntVar(&scale, "scale", 1, "Integer nearest-neighbour upscaling factor")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Seed for the latent vectors and fresh weights (default: time based)")
	cmd.Flags().BoolVar(&trainMode, "train-mode", false, "Normalize with per-sample statistics instead of running estimates")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}
