package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/born-ml/gan/internal/gan"
)

// Environment variables overriding configuration fields.
const (
	EnvLatentDim         = "GAN_LATENT_DIM"
	EnvGeneratorUpsample = "GAN_GENERATOR_UPSAMPLE"
	EnvUpsampleMode      = "GAN_UPSAMPLE_MODE"
	EnvNormalization     = "GAN_NORMALIZATION"
	EnvNonlinearity      = "GAN_NONLINEARITY"
	EnvSlope             = "GAN_SLOPE"
)

// Var returns an environment variable stripped of surrounding quotes and
// whitespace.
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}

// ApplyEnv overlays the GAN_* variables that are set onto cfg. Values that
// fail to parse are logged and ignored.
func ApplyEnv(cfg gan.Config) gan.Config {
	if s := Var(EnvLatentDim); s != "" {
		if n, err := strconv.Atoi(s); err != nil || n <= 0 {
			slog.Warn("invalid environment variable, ignoring", "key", EnvLatentDim, "value", s)
		} else {
			cfg.LatentDim = n
		}
	}

	if s := Var(EnvGeneratorUpsample); s != "" {
		if b, err := strconv.ParseBool(s); err != nil {
			slog.Warn("invalid environment variable, ignoring", "key", EnvGeneratorUpsample, "value", s)
		} else {
			cfg.GeneratorUpsample = b
		}
	}

	if s := Var(EnvUpsampleMode); s != "" {
		if m, err := gan.ParseUpsampleMode(s); err != nil {
			slog.Warn("invalid environment variable, ignoring", "key", EnvUpsampleMode, "value", s, "error", err)
		} else {
			cfg.UpsampleMode = m
		}
	}

	if s := Var(EnvNormalization); s != "" {
		if n, err := gan.ParseNormalization(s); err != nil {
			slog.Warn("invalid environment variable, ignoring", "key", EnvNormalization, "value", s, "error", err)
		} else {
			cfg.Normalization = n
		}
	}

	if s := Var(EnvNonlinearity); s != "" {
		if n, err := gan.ParseNonlinearity(s); err != nil {
			slog.Warn("invalid environment variable, ignoring", "key", EnvNonlinearity, "value", s, "error", err)
		} else {
			cfg.Nonlinearity = n
		}
	}

	if s := Var(EnvSlope); s != "" {
		if f, err := strconv.ParseFloat(s, 32); err != nil {
			slog.Warn("invalid environment variable, ignoring", "key", EnvSlope, "value", s)
		} else {
			cfg.Slope = float32(f)
		}
	}

	return cfg
}

// EnvVar describes one override.
type EnvVar struct {
	Name        string
	Value       string
	Description string
}

// AsMap lists every override with its current value.
func AsMap() map[string]EnvVar {
	vars := []EnvVar{
		{EnvLatentDim, Var(EnvLatentDim), "Length of the latent vector"},
		{EnvGeneratorUpsample, Var(EnvGeneratorUpsample), "Use upsample + 3x3 conv instead of transposed conv"},
		{EnvUpsampleMode, Var(EnvUpsampleMode), "Upsample interpolation (nearest, bilinear)"},
		{EnvNormalization, Var(EnvNormalization), "Normalization (none, instance, batch)"},
		{EnvNonlinearity, Var(EnvNonlinearity), "Nonlinearity (relu, leaky_relu)"},
		{EnvSlope, Var(EnvSlope), "Negative slope of the leaky rectifier"},
	}
	m := make(map[string]EnvVar, len(vars))
	for _, v := range vars {
		m[v.Name] = v
	}
	return m
}
