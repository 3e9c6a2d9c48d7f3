// Package config loads gan.Config values from YAML files and GAN_*
// environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/gan/internal/gan"
)

// File is the YAML form of gan.Config. Absent keys keep their defaults.
type File struct {
	LatentDim         *int               `yaml:"latent_dim,omitempty"`
	GeneratorUpsample *bool              `yaml:"generator_upsample,omitempty"`
	UpsampleMode      *gan.UpsampleMode  `yaml:"upsample_mode,omitempty"`
	Normalization     *gan.Normalization `yaml:"normalization,omitempty"`
	Nonlinearity      *gan.Nonlinearity  `yaml:"nonlinearity,omitempty"`
	Slope             *float32           `yaml:"slope,omitempty"`
}

// FromConfig returns a File with every field set from cfg.
func FromConfig(cfg gan.Config) File {
	return File{
		LatentDim:         &cfg.LatentDim,
		GeneratorUpsample: &cfg.GeneratorUpsample,
		UpsampleMode:      &cfg.UpsampleMode,
		Normalization:     &cfg.Normalization,
		Nonlinearity:      &cfg.Nonlinearity,
		Slope:             &cfg.Slope,
	}
}

// Apply overlays the fields present in f onto cfg.
func (f File) Apply(cfg gan.Config) gan.Config {
	if f.LatentDim != nil {
		cfg.LatentDim = *f.LatentDim
	}
	if f.GeneratorUpsample != nil {
		cfg.GeneratorUpsample = *f.GeneratorUpsample
	}
	if f.UpsampleMode != nil {
		cfg.UpsampleMode = *f.UpsampleMode
	}
	if f.Normalization != nil {
		cfg.Normalization = *f.Normalization
	}
	if f.Nonlinearity != nil {
		cfg.Nonlinearity = *f.Nonlinearity
	}
	if f.Slope != nil {
		cfg.Slope = *f.Slope
	}
	return cfg
}

// Decode reads a YAML document from r. Unknown keys are rejected.
func Decode(r io.Reader) (File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return File{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return f, nil
}

// Parse decodes data over gan.DefaultConfig and validates the result.
// Environment variables are not consulted.
func Parse(data []byte) (gan.Config, error) {
	f, err := Decode(bytes.NewReader(data))
	if err != nil {
		return gan.Config{}, err
	}
	cfg := f.Apply(gan.DefaultConfig())
	if err := cfg.Validate(); err != nil {
		return gan.Config{}, err
	}
	return cfg, nil
}

// Marshal encodes cfg as a YAML document accepted by Parse.
func Marshal(cfg gan.Config) ([]byte, error) {
	data, err := yaml.Marshal(FromConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Load builds a configuration from gan.DefaultConfig, the YAML file at path
// (skipped when path is empty) and the GAN_* environment overrides, in that
// order, and validates the result.
func Load(path string) (gan.Config, error) {
	cfg := gan.DefaultConfig()

	if path != "" {
		//nolint:gosec // G304: config path comes from the command line
		file, err := os.Open(path)
		if err != nil {
			return gan.Config{}, fmt.Errorf("failed to open config: %w", err)
		}
		f, err := Decode(file)
		_ = file.Close()
		if err != nil {
			return gan.Config{}, fmt.Errorf("%s: %w", path, err)
		}
		cfg = f.Apply(cfg)
		slog.Debug("loaded config file", "path", path)
	}

	cfg = ApplyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return gan.Config{}, err
	}
	return cfg, nil
}
