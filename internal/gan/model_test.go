package gan

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/gan/internal/backend/cpu"
	"github.com/born-ml/gan/internal/nn"
	"github.com/born-ml/gan/internal/tensor"
)

func smallGenerator(t *testing.T, backend *cpu.CPUBackend) *Model[*cpu.CPUBackend] {
	t.Helper()
	cfg := referenceConfig()
	cfg.LatentDim = 4
	model, err := NewCompactGenerator(cfg, backend, WithBaseWidth(4))
	require.NoError(t, err)
	return model
}

func TestModel_StateDictKeys(t *testing.T) {
	model := smallGenerator(t, cpu.New())

	keys := model.StateDictKeys()

	assert.Contains(t, keys, "0.0.weight")
	assert.NotContains(t, keys, "0.0.bias", "input projection has no bias")
	for _, k := range []string{"1.0.weight", "1.1.weight", "1.1.bias", "1.1.running_mean", "1.1.running_var"} {
		assert.Contains(t, keys, k)
	}
	assert.Contains(t, keys, "8.0.weight")
	// 1 input conv + 7 * (conv_transpose + 4 norm tensors) + 1 output conv
	assert.Len(t, keys, 1+7*5+1)
}

func TestModel_NumParameters(t *testing.T) {
	model := smallGenerator(t, cpu.New())

	assert.Equal(t, model.Architecture().NumParameters(), model.NumParameters())
	assert.Equal(t, len(model.Parameters()), 1+7*3+1)
}

func TestModel_LoadStateDict(t *testing.T) {
	backend := cpu.New()

	nn.Seed(1)
	src := smallGenerator(t, backend)
	nn.Seed(2)
	dst := smallGenerator(t, backend)

	z := tensor.Randn[float32](tensor.Shape{2, 4}, backend)
	src.Forward(z) // update running statistics

	require.NoError(t, dst.LoadStateDict(src.StateDict()))

	src.SetTraining(false)
	dst.SetTraining(false)
	if diff := cmp.Diff(src.Forward(z).Data(), dst.Forward(z).Data()); diff != "" {
		t.Errorf("outputs differ after loading (-src +dst):\n%s", diff)
	}
}

func TestModel_LoadStateDictErrors(t *testing.T) {
	backend := cpu.New()
	model := smallGenerator(t, backend)

	state := model.StateDict()
	delete(state, "3.1.running_var")
	state["9.0.weight"] = tensor.Zeros[float32](tensor.Shape{1}, backend).Raw()

	err := model.LoadStateDict(state)
	assert.ErrorContains(t, err, "missing [3.1.running_var]")
	assert.ErrorContains(t, err, "unexpected [9.0.weight]")

	state = model.StateDict()
	state["1.0.weight"] = tensor.Zeros[float32](tensor.Shape{4, 8, 3, 3}, backend).Raw()
	err = model.LoadStateDict(state)
	assert.ErrorContains(t, err, "stage 1 (up1)")
	assert.ErrorContains(t, err, "shape mismatch")
}

func TestModel_LoadStateDictIsAtomic(t *testing.T) {
	backend := cpu.New()
	model := smallGenerator(t, backend)
	before := slices.Clone(model.StateDict()["1.0.weight"].Data())

	state := model.StateDict()
	replaced := tensor.Ones[float32](state["1.0.weight"].Shape(), backend)
	state["1.0.weight"] = replaced.Raw()
	state["8.0.weight"] = tensor.Zeros[float32](tensor.Shape{1, 3, 3}, backend).Raw()

	err := model.LoadStateDict(state)
	assert.ErrorContains(t, err, "stage 8 (output)")
	assert.ErrorContains(t, err, "shape mismatch")
	assert.Equal(t, before, model.StateDict()["1.0.weight"].Data())

	state["8.0.weight"] = tensor.Zeros[float64](model.StateDict()["8.0.weight"].Shape(), backend).Raw()
	err = model.LoadStateDict(state)
	assert.ErrorContains(t, err, "dtype mismatch")
	assert.Equal(t, before, model.StateDict()["1.0.weight"].Data())
}

func TestNewModel_CustomBatchNorm(t *testing.T) {
	norm := BatchNorm(4)
	norm.Affine = false
	norm.TrackRunningStats = false

	arch, err := NewArchitecture("custom", InputAdapter{ImageChannels: 3}, []Stage{
		{Name: "x", Layers: LayerSequence{Conv(3, 4, 3, 1, 1, false), norm, Rectifier()}},
	})
	require.NoError(t, err)

	model, err := NewModel(arch, cpu.New())
	require.NoError(t, err)

	assert.Equal(t, 3*4*9, arch.NumParameters())
	assert.Equal(t, arch.NumParameters(), model.NumParameters())
	assert.Equal(t, []string{"0.0.weight"}, model.StateDictKeys())
}

func TestModel_SetTraining(t *testing.T) {
	model := smallGenerator(t, cpu.New())
	require.True(t, model.Training())

	norm, ok := model.Block(1).Layer(1).(*nn.InstanceNorm2D[*cpu.CPUBackend])
	require.True(t, ok)
	assert.True(t, norm.Training())

	model.SetTraining(false)
	assert.False(t, model.Training())
	assert.False(t, norm.Training())
}

func TestModel_EvalIsDeterministic(t *testing.T) {
	backend := cpu.New()
	model := smallGenerator(t, backend)
	model.SetTraining(false)

	z := tensor.Randn[float32](tensor.Shape{1, 4}, backend)
	before := model.StateDict()["1.1.running_mean"].Clone()

	a := model.Forward(z).Data()
	b := model.Forward(z).Data()

	assert.Equal(t, a, b)
	assert.Equal(t, before.AsFloat32(), model.StateDict()["1.1.running_mean"].AsFloat32())
}

func TestModel_TrainingUpdatesRunningStats(t *testing.T) {
	backend := cpu.New()
	model := smallGenerator(t, backend)

	before := model.StateDict()["1.1.running_var"].Clone()
	model.Forward(tensor.Randn[float32](tensor.Shape{2, 4}, backend))

	assert.NotEqual(t, before.AsFloat32(), model.StateDict()["1.1.running_var"].AsFloat32())
}

func TestModel_SeededConstructionIsDeterministic(t *testing.T) {
	backend := cpu.New()

	nn.Seed(7)
	a := smallGenerator(t, backend)
	nn.Seed(7)
	b := smallGenerator(t, backend)

	for _, k := range a.StateDictKeys() {
		assert.Equal(t, a.StateDict()[k].AsFloat32(), b.StateDict()[k].AsFloat32(), k)
	}
}

func TestNewConvBlock(t *testing.T) {
	backend := cpu.New()
	cfg := referenceConfig()
	cfg.GeneratorUpsample = true

	block, err := NewConvBlock(Up(4, 8, false), cfg, backend)
	require.NoError(t, err)

	assert.Equal(t, []LayerKind{LayerUpsample, LayerConv, LayerInstanceNorm, LayerLeakyReLU}, block.Sequence().Kinds())
	assert.Equal(t, 4, block.Len())
	assert.IsType(t, &nn.Upsample[*cpu.CPUBackend]{}, block.Layer(0))
	assert.IsType(t, &nn.Conv2D[*cpu.CPUBackend]{}, block.Layer(1))
	assert.IsType(t, &nn.LeakyReLU[*cpu.CPUBackend]{}, block.Layer(3))

	out := block.Apply(tensor.Randn[float32](tensor.Shape{2, 4, 3, 3}, backend))
	assert.Equal(t, tensor.Shape{2, 8, 6, 6}, out.Shape())

	// Sequence returns a copy.
	seq := block.Sequence()
	seq[0].Scale = 8
	assert.Equal(t, 2, block.Sequence()[0].Scale)

	_, err = NewConvBlock(Up(4, 0, false), cfg, backend)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestMaterialize(t *testing.T) {
	backend := cpu.New()

	tests := []struct {
		spec LayerSpec
		want nn.Module[*cpu.CPUBackend]
	}{
		{ConvTranspose(2, 4, 4, 2, 1, false), &nn.ConvTranspose2D[*cpu.CPUBackend]{}},
		{BatchNorm(4), &nn.BatchNorm2D[*cpu.CPUBackend]{}},
		{InstanceNorm(4), &nn.InstanceNorm2D[*cpu.CPUBackend]{}},
		{Rectifier(), &nn.ReLU[*cpu.CPUBackend]{}},
		{Bounded(), &nn.Tanh[*cpu.CPUBackend]{}},
	}
	for _, tt := range tests {
		assert.IsType(t, tt.want, Materialize(tt.spec, backend), tt.spec.String())
	}

	assert.Panics(t, func() { Materialize(LayerSpec{Kind: layerKindCount}, backend) })
}
