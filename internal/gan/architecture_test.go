package gan

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/gan/internal/tensor"
)

func TestNewArchitecture_Continuity(t *testing.T) {
	stages := []Stage{
		{Name: "a", Layers: LayerSequence{Conv(3, 8, 3, 1, 1, false), Rectifier()}},
		{Name: "b", Layers: LayerSequence{Conv(16, 4, 3, 1, 1, false)}},
	}

	_, err := NewArchitecture("broken", InputAdapter{ImageChannels: 3}, stages)
	require.Error(t, err)

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "in_channels", cfgErr.Field)
	assert.Equal(t, 16, cfgErr.Value)
	assert.Contains(t, cfgErr.Reason, "stage 1 (b)")
}

func TestNewArchitecture_Errors(t *testing.T) {
	_, err := NewArchitecture("empty", InputAdapter{}, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewArchitecture("hollow", InputAdapter{}, []Stage{{Name: "x"}})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewArchitecture("zero", InputAdapter{}, []Stage{{Name: "x", Layers: LayerSequence{Conv(0, 1, 1, 1, 0, false)}}})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewArchitecture_InvalidLayers(t *testing.T) {
	tests := []struct {
		name  string
		layer LayerSpec
		field string
	}{
		{"unknown kind", LayerSpec{Kind: LayerKind(42)}, "kind"},
		{"negative kind", LayerSpec{Kind: -1}, "kind"},
		{"zero kernel", Conv(4, 4, 0, 1, 1, false), "kernel"},
		{"zero stride", Conv(4, 4, 3, 0, 1, false), "stride"},
		{"negative padding", ConvTranspose(4, 4, 4, 2, -1, false), "padding"},
		{"zero scale", Upsample(0, UpsampleNearest), "scale"},
		{"unknown mode", Upsample(2, upsampleModeCount), "upsample_mode"},
		{"norm without channels", LayerSpec{Kind: LayerBatchNorm}, "channels"},
		{"norm width change", LayerSpec{Kind: LayerInstanceNorm, InChannels: 4, OutChannels: 8}, "channels"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stages := []Stage{{Name: "x", Layers: LayerSequence{Conv(3, 4, 3, 1, 1, false), tt.layer}}}

			_, err := NewArchitecture("invalid", InputAdapter{ImageChannels: 3}, stages)
			require.Error(t, err)

			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr), err.Error())
			assert.Equal(t, tt.field, cfgErr.Field)
			assert.Contains(t, cfgErr.Reason, "stage 0 (x) layer 1")
		})
	}
}

func TestArchitecture_Immutable(t *testing.T) {
	arch, err := Discriminator(referenceConfig(), DefaultDiscriminatorWidth)
	require.NoError(t, err)

	stages := arch.Stages()
	stages[0].Layers[0].OutChannels = 999
	stages[0].Descriptor.OutChannels = 999
	stages[1].Name = "renamed"

	assert.Equal(t, 64, arch.Stage(0).OutChannels())
	assert.Equal(t, 64, arch.Stage(0).Descriptor.OutChannels)
	assert.Equal(t, "down1", arch.Stage(1).Name)
	require.NoError(t, arch.Validate())
}

func TestArchitecture_Summary(t *testing.T) {
	arch, err := Discriminator(referenceConfig(), DefaultDiscriminatorWidth)
	require.NoError(t, err)

	rows, err := arch.Summary(tensor.Shape{1, 3, 256, 256})
	require.NoError(t, err)
	require.Len(t, rows, 8)

	first := rows[0]
	assert.Equal(t, "input", first.Name)
	assert.Equal(t, "down", first.Kind)
	assert.Equal(t, 3, first.InChannels)
	assert.Equal(t, 64, first.OutChannels)
	assert.Equal(t, tensor.Shape{1, 64, 128, 128}, first.Output)
	assert.Equal(t, 3*64*16+64, first.Parameters)
	assert.Len(t, first.Layers, 2)

	last := rows[7]
	assert.Equal(t, "fixed", last.Kind)
	assert.Equal(t, tensor.Shape{1, 1, 2, 2}, last.Output)
	assert.Equal(t, 512, last.Parameters)

	total := 0
	for _, r := range rows {
		total += r.Parameters
	}
	assert.Equal(t, arch.NumParameters(), total)
}

func TestLayerSpec_OutputShape(t *testing.T) {
	tests := []struct {
		name  string
		spec  LayerSpec
		input tensor.Shape
		want  tensor.Shape
	}{
		{"transpose_doubles", ConvTranspose(8, 4, 4, 2, 1, false), tensor.Shape{2, 8, 3, 5}, tensor.Shape{2, 4, 6, 10}},
		{"down_halves", Conv(8, 16, 4, 2, 1, true), tensor.Shape{2, 8, 6, 10}, tensor.Shape{2, 16, 3, 5}},
		{"same", Conv(8, 8, 3, 1, 1, true), tensor.Shape{1, 8, 7, 7}, tensor.Shape{1, 8, 7, 7}},
		{"upsample", Upsample(2, UpsampleNearest), tensor.Shape{1, 5, 4, 4}, tensor.Shape{1, 5, 8, 8}},
		{"norm", BatchNorm(5), tensor.Shape{3, 5, 4, 4}, tensor.Shape{3, 5, 4, 4}},
		{"activation", LeakyRectifier(0.2), tensor.Shape{3, 5, 4, 4}, tensor.Shape{3, 5, 4, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.spec.OutputShape(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := InstanceNorm(4).OutputShape(tensor.Shape{1, 5, 2, 2})
	assert.Error(t, err)
	_, err = Rectifier().OutputShape(tensor.Shape{1, 5})
	assert.Error(t, err)
}
