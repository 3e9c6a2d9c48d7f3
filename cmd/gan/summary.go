package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/born-ml/gan/internal/config"
	"github.com/born-ml/gan/internal/gan"
	"github.com/born-ml/gan/internal/tensor"
)

func newSummaryCmd() *cobra.Command {
	var (
		configPath string
		model      string
		base       int
		size       int
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the stages of an architecture",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kind, err := parseModelKind(model)
			if err != nil {
				return err
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if base == 0 {
				base = kind.defaultWidth()
			}
			arch, err := architecture(kind, cfg, base)
			if err != nil {
				return err
			}
			return writeSummary(cmd.OutOrStdout(), arch, modelInput(kind, cfg, 1, size))
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "YAML configuration file")
	cmd.Flags().StringVar(&model, "model", string(kindCompact), "Architecture: compact, extended or discriminator")
	cmd.Flags().IntVar(&base, "base", 0, "Base channel width (default 128 for generators, 64 for the discriminator)")
	cmd.Flags().IntVar(&size, "size", 256, "Discriminator input size")

	return cmd
}

// modelInput is the input shape of kind for a batch of n.
func modelInput(kind modelKind, cfg gan.Config, n, size int) tensor.Shape {
	if kind == kindDiscriminator {
		return tensor.Shape{n, 3, size, size}
	}
	return tensor.Shape{n, cfg.LatentDim}
}

func writeSummary(w io.Writer, arch *gan.Architecture, input tensor.Shape) error {
	rows, err := arch.Summary(input)
	if err != nil {
		return err
	}

	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		kinds := r.Layers.Kinds()
		names := make([]string, len(kinds))
		for i, k := range kinds {
			names[i] = k.String()
		}
		data = append(data, []string{
			strconv.Itoa(r.Index),
			r.Name,
			r.Kind,
			strings.Join(names, " > "),
			strconv.Itoa(r.InChannels),
			strconv.Itoa(r.OutChannels),
			fmt.Sprint([]int(r.Output)),
			strconv.Itoa(r.Parameters),
		})
	}

	fmt.Fprintf(w, "%s, input %v\n", arch.Name(), []int(input))

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "STAGE", "KIND", "LAYERS", "IN", "OUT", "OUTPUT", "PARAMS"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.AppendBulk(data)
	table.Render()

	fmt.Fprintf(w, "total parameters: %d\n", arch.NumParameters())
	return nil
}
