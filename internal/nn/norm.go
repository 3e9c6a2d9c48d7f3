package nn

import (
	"fmt"

	"github.com/born-ml/gan/internal/tensor"
)

// Normalization defaults.
const (
	DefaultNormEps      = 1e-5
	DefaultNormMomentum = 0.1
)

// norm2d holds the state shared by instance and batch normalization.
//
// In training mode statistics come from the input and, when tracking is on,
// are folded into the running estimates:
//
//	running = (1 - momentum)*running + momentum*observed
//
// with the unbiased variance. In evaluation mode with tracking on, the
// running estimates are used instead.
type norm2d[B tensor.Backend] struct {
	op                string
	numFeatures       int
	perInstance       bool
	eps               float32
	momentum          float32
	affine            bool
	trackRunningStats bool
	training          bool

	weight      *Parameter[B]              // [num_features] or nil
	bias        *Parameter[B]              // [num_features] or nil
	runningMean *tensor.Tensor[float32, B] // [num_features] or nil
	runningVar  *tensor.Tensor[float32, B] // [num_features] or nil

	backend B
}

func newNorm2D[B tensor.Backend](op string, numFeatures int, perInstance, affine, trackRunningStats bool, backend B) norm2d[B] {
	if numFeatures <= 0 {
		panic(fmt.Sprintf("%s: invalid num_features %d", op, numFeatures))
	}

	n := norm2d[B]{
		op:                op,
		numFeatures:       numFeatures,
		perInstance:       perInstance,
		eps:               DefaultNormEps,
		momentum:          DefaultNormMomentum,
		affine:            affine,
		trackRunningStats: trackRunningStats,
		training:          true,
		backend:           backend,
	}
	shape := tensor.Shape{numFeatures}
	if affine {
		n.weight = NewParameter("weight", Ones(shape, backend))
		n.bias = NewParameter("bias", Zeros(shape, backend))
	}
	if trackRunningStats {
		n.runningMean = Zeros(shape, backend)
		n.runningVar = Ones(shape, backend)
	}
	return n
}

// Forward normalizes each channel of [N, C, H, W] input.
func (n *norm2d[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	checkInput(n.op, input, n.numFeatures)

	var mean, variance *tensor.RawTensor
	if n.training || !n.trackRunningStats {
		shape := input.Shape()
		count := shape[2] * shape[3]
		if !n.perInstance {
			count *= shape[0]
		}
		if count <= 1 {
			panic(fmt.Sprintf("%s: expected more than 1 value per channel when using input statistics, got input shape %v",
				n.op, shape))
		}

		mean, variance = n.backend.Moments2D(input.Raw(), n.perInstance)
		if n.training && n.trackRunningStats {
			n.updateRunningStats(mean, variance, count)
		}
	} else {
		mean, variance = n.runningMean.Raw(), n.runningVar.Raw()
	}

	var weight, bias *tensor.RawTensor
	if n.affine {
		weight, bias = n.weight.Tensor().Raw(), n.bias.Tensor().Raw()
	}

	return tensor.New[float32, B](
		n.backend.Normalize2D(input.Raw(), mean, variance, weight, bias, n.eps),
		n.backend,
	)
}

// updateRunningStats folds observed statistics into the running estimates.
// Per-instance statistics are averaged over the batch first.
func (n *norm2d[B]) updateRunningStats(mean, variance *tensor.RawTensor, count int) {
	meanData := mean.AsFloat32()
	varData := variance.AsFloat32()
	groups := len(meanData) / n.numFeatures
	unbiased := float32(count) / float32(count-1)

	runMean := n.runningMean.Data()
	runVar := n.runningVar.Data()
	for c := 0; c < n.numFeatures; c++ {
		var m, v float32
		for g := 0; g < groups; g++ {
			m += meanData[g*n.numFeatures+c]
			v += varData[g*n.numFeatures+c]
		}
		m /= float32(groups)
		v = v / float32(groups) * unbiased

		runMean[c] = (1-n.momentum)*runMean[c] + n.momentum*m
		runVar[c] = (1-n.momentum)*runVar[c] + n.momentum*v
	}
}

// SetTraining switches between input statistics and running estimates.
func (n *norm2d[B]) SetTraining(training bool) {
	n.training = training
}

// Training reports whether the layer is in training mode.
func (n *norm2d[B]) Training() bool {
	return n.training
}

// Parameters returns the affine weight and bias, if any.
func (n *norm2d[B]) Parameters() []*Parameter[B] {
	if !n.affine {
		return nil
	}
	return []*Parameter[B]{n.weight, n.bias}
}

// StateDict returns the affine parameters and running statistics.
func (n *norm2d[B]) StateDict() map[string]*tensor.RawTensor {
	stateDict := parameterState(n.Parameters())
	if n.trackRunningStats {
		stateDict["running_mean"] = n.runningMean.Raw()
		stateDict["running_var"] = n.runningVar.Raw()
	}
	return stateDict
}

// LoadStateDict loads the affine parameters and running statistics.
func (n *norm2d[B]) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	if err := loadParameters(stateDict, n.Parameters()); err != nil {
		return err
	}
	if n.trackRunningStats {
		if err := loadTensor(stateDict, "running_mean", n.runningMean.Raw()); err != nil {
			return err
		}
		if err := loadTensor(stateDict, "running_var", n.runningVar.Raw()); err != nil {
			return err
		}
	}
	return nil
}

// NumFeatures returns the number of normalized channels.
func (n *norm2d[B]) NumFeatures() int {
	return n.numFeatures
}

// RunningMean returns the running mean, or nil when statistics are not tracked.
func (n *norm2d[B]) RunningMean() *tensor.Tensor[float32, B] {
	return n.runningMean
}

// RunningVar returns the running variance, or nil when statistics are not tracked.
func (n *norm2d[B]) RunningVar() *tensor.Tensor[float32, B] {
	return n.runningVar
}

// InstanceNorm2D normalizes every (sample, channel) plane with its own
// mean and variance.
//
// Example:
//
//	norm := nn.NewInstanceNorm2D(256, true, true, backend)
//	output := norm.Forward(input) // [N, 256, H, W]
type InstanceNorm2D[B tensor.Backend] struct {
	norm2d[B]
}

// NewInstanceNorm2D creates an instance normalization layer.
//
// affine adds a learnable per-channel scale and shift; trackRunningStats
// keeps running estimates used in evaluation mode.
func NewInstanceNorm2D[B tensor.Backend](numFeatures int, affine, trackRunningStats bool, backend B) *InstanceNorm2D[B] {
	return &InstanceNorm2D[B]{newNorm2D("instance_norm2d", numFeatures, true, affine, trackRunningStats, backend)}
}

// String returns a string representation of the layer.
func (n *InstanceNorm2D[B]) String() string {
	return fmt.Sprintf("InstanceNorm2D(%d, eps=%g, momentum=%g, affine=%v, track_running_stats=%v)",
		n.numFeatures, n.eps, n.momentum, n.affine, n.trackRunningStats)
}

// BatchNorm2D normalizes every channel with statistics over the batch and
// spatial dimensions.
//
// Example:
//
//	norm := nn.NewBatchNorm2D(256, true, true, backend)
//	output := norm.Forward(input) // [N, 256, H, W]
type BatchNorm2D[B tensor.Backend] struct {
	norm2d[B]
}

// NewBatchNorm2D creates a batch normalization layer. The flags have the
// same meaning as for NewInstanceNorm2D.
func NewBatchNorm2D[B tensor.Backend](numFeatures int, affine, trackRunningStats bool, backend B) *BatchNorm2D[B] {
	return &BatchNorm2D[B]{newNorm2D("batch_norm2d", numFeatures, false, affine, trackRunningStats, backend)}
}

// String returns a string representation of the layer.
func (n *BatchNorm2D[B]) String() string {
	return fmt.Sprintf("BatchNorm2D(%d, eps=%g, momentum=%g, affine=%v, track_running_stats=%v)",
		n.numFeatures, n.eps, n.momentum, n.affine, n.trackRunningStats)
}
