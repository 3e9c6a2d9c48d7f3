package gan

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_Rules(t *testing.T) {
	tests := []struct {
		name  string
		stage StageDescriptor
		cfg   Config
		want  LayerSequence
	}{
		{
			name:  "up_transpose_instance_leaky",
			stage: Up(128, 256, false),
			cfg:   Config{LatentDim: 128, Normalization: NormInstance, Nonlinearity: LeakyReLU, Slope: 0.2},
			want: LayerSequence{
				ConvTranspose(128, 256, 4, 2, 1, false),
				InstanceNorm(256),
				LeakyRectifier(0.2),
			},
		},
		{
			name:  "up_upsample_batch_relu",
			stage: Up(64, 32, true),
			cfg:   Config{LatentDim: 8, GeneratorUpsample: true, UpsampleMode: UpsampleBilinear, Normalization: NormBatch, Nonlinearity: ReLU, Slope: 0.2},
			want: LayerSequence{
				Upsample(2, UpsampleBilinear),
				Conv(64, 32, 3, 1, 1, true),
				BatchNorm(32),
				Rectifier(),
			},
		},
		{
			name:  "up_none",
			stage: Up(4, 4, false),
			cfg:   Config{LatentDim: 8, Normalization: NormNone, Nonlinearity: ReLU},
			want: LayerSequence{
				ConvTranspose(4, 4, 4, 2, 1, false),
				Rectifier(),
			},
		},
		{
			name:  "down_never_normalized",
			stage: Down(3, 64, true),
			cfg:   Config{LatentDim: 8, Normalization: NormInstance, Nonlinearity: LeakyReLU, Slope: 0.2},
			want: LayerSequence{
				Conv(3, 64, 4, 2, 1, true),
				LeakyRectifier(0.2),
			},
		},
		{
			name:  "same_instance_relu",
			stage: Same(256, 256, false),
			cfg:   Config{LatentDim: 8, Normalization: NormInstance, Nonlinearity: ReLU, Slope: 0.5},
			want: LayerSequence{
				Conv(256, 256, 3, 1, 1, false),
				InstanceNorm(256),
				Rectifier(),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Build(tt.stage, tt.cfg)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Build() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuild_PlacementGrid(t *testing.T) {
	for kind := StageKind(0); kind < stageKindCount; kind++ {
		for norm := Normalization(0); norm < normalizationCount; norm++ {
			for act := Nonlinearity(0); act < nonlinearityCount; act++ {
				for _, upsample := range []bool{false, true} {
					cfg := Config{LatentDim: 16, GeneratorUpsample: upsample, Normalization: norm, Nonlinearity: act, Slope: 0.1}
					stage := StageDescriptor{Kind: kind, InChannels: 8, OutChannels: 16}

					seq, err := Build(stage, cfg)
					require.NoError(t, err)

					wantNorm := 0
					if kind != StageDown && norm != NormNone {
						wantNorm = 1
					}
					assert.Equal(t, wantNorm, seq.Count(LayerKind.IsNormalization), "%v/%v/%v", kind, norm, act)

					last := seq[len(seq)-1]
					assert.Equal(t, 1, seq.Count(LayerKind.IsActivation))
					assert.True(t, last.Kind.IsActivation())
					assert.Equal(t, act == LeakyReLU, last.Kind == LayerLeakyReLU)
					if act == LeakyReLU {
						assert.Equal(t, float32(0.1), last.Slope)
					}

					assert.Equal(t, 8, seq.InChannels())
					assert.Equal(t, 16, seq.OutChannels())
				}
			}
		}
	}
}

func TestBuild_Errors(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name  string
		stage StageDescriptor
		cfg   Config
		field string
	}{
		{"zero_in", Up(0, 8, false), cfg, "in_channels"},
		{"negative_out", Down(8, -1, false), cfg, "out_channels"},
		{"unknown_kind", StageDescriptor{Kind: StageKind(7), InChannels: 1, OutChannels: 1}, cfg, "stage_kind"},
		{"unknown_normalization", Same(1, 1, false), Config{LatentDim: 1, Normalization: Normalization(9)}, "normalization"},
		{"unknown_nonlinearity", Same(1, 1, false), Config{LatentDim: 1, Nonlinearity: Nonlinearity(-1)}, "nonlinearity"},
		{"unknown_upsample_mode", Up(1, 1, false), Config{LatentDim: 1, UpsampleMode: UpsampleMode(5)}, "upsample_mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, err := Build(tt.stage, tt.cfg)
			require.Error(t, err)
			assert.Nil(t, seq)
			assert.True(t, errors.Is(err, ErrInvalidConfig))

			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestBuild_Deterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GeneratorUpsample = true

	a, err := Build(Up(64, 128, false), cfg)
	require.NoError(t, err)
	b, err := Build(Up(64, 128, false), cfg)
	require.NoError(t, err)

	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("Build() not deterministic (-first +second):\n%s", diff)
	}

	// Results do not share storage.
	a[0].Scale = 4
	assert.Equal(t, 2, b[0].Scale)
}

func TestLayerSpec_NumParameters(t *testing.T) {
	assert.Equal(t, 128*256*16, ConvTranspose(128, 256, 4, 2, 1, false).NumParameters())
	assert.Equal(t, 3*64*16+64, Conv(3, 64, 4, 2, 1, true).NumParameters())
	assert.Equal(t, 2*256, InstanceNorm(256).NumParameters())
	assert.Equal(t, 0, Upsample(2, UpsampleNearest).NumParameters())
	assert.Equal(t, 0, LeakyRectifier(0.2).NumParameters())
}

func TestLayerSpec_String(t *testing.T) {
	assert.Equal(t, "conv_transpose(128->256, k=4, s=2, p=1, bias=false)", ConvTranspose(128, 256, 4, 2, 1, false).String())
	assert.Equal(t, "upsample(x2, bilinear)", Upsample(2, UpsampleBilinear).String())
	assert.Equal(t, "instance_norm(64, affine=true, track_running_stats=true)", InstanceNorm(64).String())
	assert.Equal(t, "leaky_relu(0.02)", LeakyRectifier(0.02).String())
	assert.Equal(t, "tanh", Bounded().String())
}
