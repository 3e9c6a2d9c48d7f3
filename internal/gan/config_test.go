package gan

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNormalization(t *testing.T) {
	tests := []struct {
		in   string
		want Normalization
	}{
		{"none", NormNone},
		{"instance", NormInstance},
		{"inorm", NormInstance},
		{"batch", NormBatch},
		{"bnorm", NormBatch},
		{" BNorm ", NormBatch},
	}
	for _, tt := range tests {
		got, err := ParseNormalization(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseNormalization("layer")
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.EqualError(t, err, "gan: invalid normalization layer: unrecognized value (expected one of none, instance, batch)")
}

func TestParseNonlinearity(t *testing.T) {
	for in, want := range map[string]Nonlinearity{"relu": ReLU, "leaky_relu": LeakyReLU, "leakyrelu": LeakyReLU} {
		got, err := ParseNonlinearity(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseNonlinearity("gelu")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestParseUpsampleMode(t *testing.T) {
	got, err := ParseUpsampleMode("bilinear")
	require.NoError(t, err)
	assert.Equal(t, UpsampleBilinear, got)

	_, err = ParseUpsampleMode("bicubic")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestEnums_TextRoundTrip(t *testing.T) {
	for n := Normalization(0); n < normalizationCount; n++ {
		text, err := n.MarshalText()
		require.NoError(t, err)
		var back Normalization
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, n, back)
	}

	var act Nonlinearity
	require.NoError(t, act.UnmarshalText([]byte("leakyrelu")))
	assert.Equal(t, LeakyReLU, act)
	assert.Error(t, act.UnmarshalText([]byte("swish")))
	assert.Equal(t, LeakyReLU, act, "failed unmarshal must not modify the value")

	var mode UpsampleMode
	require.NoError(t, mode.UnmarshalText([]byte("nearest")))
	assert.Equal(t, UpsampleNearest, mode)
}

func TestEnums_String(t *testing.T) {
	assert.Equal(t, "instance", NormInstance.String())
	assert.Equal(t, "leaky_relu", LeakyReLU.String())
	assert.Equal(t, "bilinear", UpsampleBilinear.String())
	assert.Equal(t, "normalization(7)", Normalization(7).String())
	assert.Equal(t, "same", StageSame.String())
	assert.Equal(t, "StageKind(9)", StageKind(9).String())
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.LatentDim = 0
	err := cfg.Validate()
	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "latent_dim", cfgErr.Field)
	assert.Equal(t, 0, cfgErr.Value)

	cfg = DefaultConfig()
	cfg.Normalization = normalizationCount
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 128, cfg.LatentDim)
	assert.False(t, cfg.GeneratorUpsample)
	assert.Equal(t, NormInstance, cfg.Normalization)
	assert.Equal(t, LeakyReLU, cfg.Nonlinearity)
	assert.Equal(t, float32(0.2), cfg.Slope)
	assert.Equal(t, "latent_dim=128 generator_upsample=false upsample_mode=nearest normalization=instance nonlinearity=leaky_relu slope=0.2", cfg.String())
}

func TestParseStageKind(t *testing.T) {
	k, err := ParseStageKind("down")
	require.NoError(t, err)
	assert.Equal(t, StageDown, k)

	_, err = ParseStageKind("sideways")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
