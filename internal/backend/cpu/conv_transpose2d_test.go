package cpu

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/gan/internal/tensor"
)

// naiveConvTranspose2D scatters every input pixel through the kernel.
func naiveConvTranspose2D(input, kernel *tensor.RawTensor, stride, padding int) []float32 {
	is, ks := input.Shape(), kernel.Shape()
	N, C, H, W := is[0], is[1], is[2], is[3]
	COut, KH, KW := ks[1], ks[2], ks[3]
	HOut := (H-1)*stride - 2*padding + KH
	WOut := (W-1)*stride - 2*padding + KW

	in, k := input.AsFloat32(), kernel.AsFloat32()
	out := make([]float32, N*COut*HOut*WOut)
	for n := 0; n < N; n++ {
		for c := 0; c < C; c++ {
			for ih := 0; ih < H; ih++ {
				for iw := 0; iw < W; iw++ {
					v := in[((n*C+c)*H+ih)*W+iw]
					for o := 0; o < COut; o++ {
						for kh := 0; kh < KH; kh++ {
							for kw := 0; kw < KW; kw++ {
								oh, ow := ih*stride-padding+kh, iw*stride-padding+kw
								if oh < 0 || oh >= HOut || ow < 0 || ow >= WOut {
									continue
								}
								out[((n*COut+o)*HOut+oh)*WOut+ow] += v * k[((c*COut+o)*KH+kh)*KW+kw]
							}
						}
					}
				}
			}
		}
	}
	return out
}

func TestCPUBackend_ConvTranspose2D_KnownValues(t *testing.T) {
	backend := New()
	input := rawFrom(t, tensor.Shape{1, 1, 2, 2}, []float32{1, 2, 3, 4})
	ones := rawFrom(t, tensor.Shape{1, 1, 2, 2}, []float32{1, 1, 1, 1})

	t.Run("Stride2", func(t *testing.T) {
		output := backend.ConvTranspose2D(input, ones, 2, 0)

		assert.Equal(t, tensor.Shape{1, 1, 4, 4}, output.Shape())
		assert.Equal(t, []float32{
			1, 1, 2, 2,
			1, 1, 2, 2,
			3, 3, 4, 4,
			3, 3, 4, 4,
		}, output.AsFloat32())
	})

	t.Run("Stride1Overlap", func(t *testing.T) {
		output := backend.ConvTranspose2D(input, ones, 1, 0)

		assert.Equal(t, tensor.Shape{1, 1, 3, 3}, output.Shape())
		assert.Equal(t, []float32{1, 3, 2, 4, 10, 6, 3, 7, 4}, output.AsFloat32())
	})
}

func TestCPUBackend_ConvTranspose2D_MatchesReference(t *testing.T) {
	backend := New()
	rng := rand.New(rand.NewSource(11))

	tests := []struct {
		name    string
		input   tensor.Shape
		kernel  tensor.Shape
		stride  int
		padding int
		want    tensor.Shape
	}{
		{"up_from_1x1", tensor.Shape{2, 4, 1, 1}, tensor.Shape{4, 3, 4, 4}, 2, 1, tensor.Shape{2, 3, 2, 2}},
		{"up_4x4", tensor.Shape{2, 3, 4, 4}, tensor.Shape{3, 5, 4, 4}, 2, 1, tensor.Shape{2, 5, 8, 8}},
		{"stride1", tensor.Shape{1, 2, 3, 3}, tensor.Shape{2, 2, 3, 3}, 1, 1, tensor.Shape{1, 2, 3, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := rawRandom(t, rng, tt.input)
			kernel := rawRandom(t, rng, tt.kernel)

			output := backend.ConvTranspose2D(input, kernel, tt.stride, tt.padding)

			require.Equal(t, tt.want, output.Shape())
			want := naiveConvTranspose2D(input, kernel, tt.stride, tt.padding)
			got := output.AsFloat32()
			for i := range want {
				assert.InDelta(t, want[i], got[i], 1e-4, "mismatch at %d", i)
			}
		})
	}
}

func TestCPUBackend_ConvTranspose2D_ChannelMismatch(t *testing.T) {
	backend := New()
	input := rawFrom(t, tensor.Shape{1, 3, 1, 1}, make([]float32, 3))
	kernel := rawFrom(t, tensor.Shape{2, 1, 4, 4}, make([]float32, 32))

	assert.PanicsWithValue(t, "conv_transpose2d: input channels 3 != kernel channels 2", func() {
		backend.ConvTranspose2D(input, kernel, 2, 1)
	})
}
