package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/gan/internal/parallel"
	"github.com/born-ml/gan/internal/tensor"
)

// Moments2D computes the biased mean and variance of [N, C, H, W] input.
//
// perInstance=false reduces over (N, H, W) and returns [C] tensors
// (batch statistics). perInstance=true reduces over (H, W) and returns
// [N, C] tensors (instance statistics).
//
// Accumulation is done in float64.
func (cpu *CPUBackend) Moments2D(x *tensor.RawTensor, perInstance bool) (mean, variance *tensor.RawTensor) {
	require4D("moments2d", "input", x)
	requireFloat32("moments2d", x)

	shape := x.Shape()
	N, C, HW := shape[0], shape[1], shape[2]*shape[3]
	src := x.AsFloat32()

	statShape := tensor.Shape{C}
	if perInstance {
		statShape = tensor.Shape{N, C}
	}
	mean = cpu.newFloat32("moments2d", statShape)
	variance = cpu.newFloat32("moments2d", statShape)
	meanData := mean.AsFloat32()
	varData := variance.AsFloat32()

	if perInstance {
		parallel.ForBatch(N, C, func(n, c int) {
			m, v := planeMoments(src[(n*C+c)*HW:][:HW])
			meanData[n*C+c] = float32(m)
			varData[n*C+c] = float32(v)
		}, cpu.parallel)
		return mean, variance
	}

	parallel.For(C, func(c int) {
		var sum, sumSq float64
		for n := 0; n < N; n++ {
			for _, val := range src[(n*C+c)*HW:][:HW] {
				sum += float64(val)
				sumSq += float64(val) * float64(val)
			}
		}
		count := float64(N * HW)
		m := sum / count
		meanData[c] = float32(m)
		varData[c] = float32(math.Max(sumSq/count-m*m, 0))
	}, cpu.parallel)

	return mean, variance
}

func planeMoments(plane []float32) (mean, variance float64) {
	var sum, sumSq float64
	for _, val := range plane {
		sum += float64(val)
		sumSq += float64(val) * float64(val)
	}
	count := float64(len(plane))
	mean = sum / count
	return mean, math.Max(sumSq/count-mean*mean, 0)
}

// Normalize2D computes (x - mean) / sqrt(variance + eps) * weight + bias
// for every [N, C] plane of x.
//
// mean and variance are either [C] (shared across the batch) or [N, C]
// (one pair per instance). weight and bias are [C] or nil (identity affine).
func (cpu *CPUBackend) Normalize2D(x, mean, variance, weight, bias *tensor.RawTensor, eps float32) *tensor.RawTensor {
	require4D("normalize2d", "input", x)
	requireFloat32("normalize2d", x)

	shape := x.Shape()
	N, C, HW := shape[0], shape[1], shape[2]*shape[3]

	perInstance := false
	switch {
	case mean.Shape().Equal(tensor.Shape{C}) && variance.Shape().Equal(tensor.Shape{C}):
	case mean.Shape().Equal(tensor.Shape{N, C}) && variance.Shape().Equal(tensor.Shape{N, C}):
		perInstance = true
	default:
		panic(fmt.Sprintf("normalize2d: statistics shapes %v/%v do not match input %v", mean.Shape(), variance.Shape(), shape))
	}
	for name, p := range map[string]*tensor.RawTensor{"weight": weight, "bias": bias} {
		if p != nil && !p.Shape().Equal(tensor.Shape{C}) {
			panic(fmt.Sprintf("normalize2d: %s shape %v, expected [%d]", name, p.Shape(), C))
		}
	}

	output := cpu.newFloat32("normalize2d", shape)
	src := x.AsFloat32()
	dst := output.AsFloat32()
	meanData := mean.AsFloat32()
	varData := variance.AsFloat32()

	parallel.ForBatch(N, C, func(n, c int) {
		stat := c
		if perInstance {
			stat = n*C + c
		}

		scale := float32(1 / math.Sqrt(float64(varData[stat])+float64(eps)))
		shift := float32(0)
		if weight != nil {
			scale *= weight.AsFloat32()[c]
		}
		if bias != nil {
			shift = bias.AsFloat32()[c]
		}
		m := meanData[stat]

		plane := (n*C + c) * HW
		for i := plane; i < plane+HW; i++ {
			dst[i] = (src[i]-m)*scale + shift
		}
	}, cpu.parallel)

	return output
}

func (cpu *CPUBackend) newFloat32(op string, shape tensor.Shape) *tensor.RawTensor {
	raw, err := tensor.NewRaw(shape, tensor.Float32, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", op, err))
	}
	return raw
}
