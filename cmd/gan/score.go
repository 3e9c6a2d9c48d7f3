package main

import (
	"fmt"
	"image"
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newScoreCmd() *cobra.Command {
	var (
		flags modelFlags
		size  int
	)

	cmd := &cobra.Command{
		Use:   "score IMAGE",
		Short: "Run the discriminator on an image and print its score map",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			//nolint:gosec // G304: image path comes from the command line
			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			img, format, err := image.Decode(file)
			_ = file.Close()
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			m, _, err := flags.loadModel(cmd, kindDiscriminator)
			if err != nil {
				return err
			}
			m.SetTraining(false)

			x, err := imageTensor(img, size, m.Backend())
			if err != nil {
				return err
			}
			if _, err := m.Architecture().OutputShape(x.Shape()); err != nil {
				return err
			}

			scores := m.Forward(x)
			shape := scores.Shape()
			data := scores.Data()

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s (%s %dx%d -> %dx%d): score map %v\n",
				args[0], format, img.Bounds().Dx(), img.Bounds().Dy(), size, size, []int(shape))

			var sum float64
			h, cols := shape[2], shape[3]
			for y := 0; y < h; y++ {
				row := make([]string, cols)
				for x := 0; x < cols; x++ {
					v := data[y*cols+x]
					sum += float64(v)
					row[x] = strconv.FormatFloat(float64(v), 'f', 4, 32)
				}
				fmt.Fprintln(w, strings.Join(row, " "))
			}
			fmt.Fprintf(w, "mean %.4f\n", sum/float64(len(data)))
			return nil
		},
	}

	flags.register(cmd, true)
	cmd.Flags().IntVar(&size, "size", 256, "Resize the image to size x size before scoring")

	return cmd
}
