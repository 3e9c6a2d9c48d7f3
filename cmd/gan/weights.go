package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/born-ml/gan/internal/config"
	"github.com/born-ml/gan/internal/nn"
	"github.com/born-ml/gan/internal/serialization"
)

func newInitCmd() *cobra.Command {
	var (
		flags modelFlags
		model string
		out   string
		seed  int64
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write freshly initialized weights to a .born file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kind, err := parseModelKind(model)
			if err != nil {
				return err
			}

			metadata := map[string]string{metaRunID: uuid.NewString()}
			if cmd.Flags().Changed("seed") {
				nn.Seed(seed)
				metadata[metaSeed] = strconv.FormatInt(seed, 10)
			}

			m, s, err := flags.loadModel(cmd, kind)
			if err != nil {
				return err
			}

			cfgYAML, err := config.Marshal(s.cfg)
			if err != nil {
				return err
			}
			metadata[metaConfig] = string(cfgYAML)
			metadata[metaBaseWidth] = strconv.Itoa(s.base)

			if err := serialization.WriteFile(out, m.StateDict(), m.Architecture().Name(), metadata); err != nil {
				return fmt.Errorf("%s: %w", out, err)
			}

			slog.Info("wrote weights", "path", out, "model", m.Architecture().Name(),
				"parameters", m.NumParameters(), "run_id", metadata[metaRunID])
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s, %d parameters\n", out, m.Architecture().Name(), m.NumParameters())
			return nil
		},
	}

	flags.register(cmd, false)
	cmd.Flags().StringVar(&model, "model", string(kindCompact), "Architecture: compact, extended or discriminator")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output .born file")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Seed for weight initialization")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}
