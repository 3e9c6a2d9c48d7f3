package gan

import (
	"fmt"

	"github.com/born-ml/gan/internal/nn"
	"github.com/born-ml/gan/internal/tensor"
)

// StageShape is the output shape of one stage.
type StageShape struct {
	Name   string
	Output tensor.Shape
}

// OutputShape propagates an NCHW shape through the layer.
func (l LayerSpec) OutputShape(input tensor.Shape) (tensor.Shape, error) {
	if len(input) != 4 {
		return nil, fmt.Errorf("%s: expected 4D input [N,C,H,W], got %v", l.Kind, input)
	}
	if l.Kind.HasChannels() && input[1] != l.InChannels {
		return nil, fmt.Errorf("%s: input channels %d != expected %d", l.Kind, input[1], l.InChannels)
	}

	out := input.Clone()
	switch l.Kind {
	case LayerConv:
		size := nn.Conv2DOutputSize(input[2], input[3], [2]int{l.Kernel, l.Kernel}, l.Stride, l.Padding)
		out[1], out[2], out[3] = l.OutChannels, size[0], size[1]
	case LayerConvTranspose:
		size := nn.ConvTranspose2DOutputSize(input[2], input[3], [2]int{l.Kernel, l.Kernel}, l.Stride, l.Padding)
		out[1], out[2], out[3] = l.OutChannels, size[0], size[1]
	case LayerUpsample:
		out[2], out[3] = input[2]*l.Scale, input[3]*l.Scale
	}

	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("%s: input %v gives invalid output %v", l.Kind, input, out)
	}
	return out, nil
}

// adapt applies the input adapter to a shape.
func (a InputAdapter) adapt(input tensor.Shape) (tensor.Shape, error) {
	if !a.Reshapes() {
		return input.Clone(), nil
	}
	shape, err := tensor.Shape{-1, a.LatentChannels, 1, 1}.Resolve(input.NumElements())
	if err != nil {
		return nil, fmt.Errorf("input: %w", err)
	}
	return shape, nil
}

// InferShapes returns every stage's output shape for the given model
// input, without allocating tensors.
//
// Generators take latent shapes such as [N, LatentDim]; the discriminator
// takes [N, 3, H, W]. Channel mismatches and non-positive sizes are errors.
func (a *Architecture) InferShapes(input tensor.Shape) ([]StageShape, error) {
	shape, err := a.input.adapt(input)
	if err != nil {
		return nil, err
	}

	shapes := make([]StageShape, 0, len(a.stages))
	for i, stage := range a.stages {
		for j, layer := range stage.Layers {
			shape, err = layer.OutputShape(shape)
			if err != nil {
				return nil, fmt.Errorf("stage %d (%s) layer %d: %w", i, stage.Name, j, err)
			}
		}
		shapes = append(shapes, StageShape{Name: stage.Name, Output: shape})
	}
	return shapes, nil
}

// OutputShape returns the final output shape for the given model input.
func (a *Architecture) OutputShape(input tensor.Shape) (tensor.Shape, error) {
	shapes, err := a.InferShapes(input)
	if err != nil {
		return nil, err
	}
	return shapes[len(shapes)-1].Output, nil
}

// SummaryRow describes one stage.
type SummaryRow struct {
	Index       int
	Name        string
	Kind        string // "up", "down", "same" or "fixed"
	Layers      LayerSequence
	InChannels  int
	OutChannels int
	Output      tensor.Shape
	Parameters  int
}

// Summary returns one row per stage for the given model input.
func (a *Architecture) Summary(input tensor.Shape) ([]SummaryRow, error) {
	shapes, err := a.InferShapes(input)
	if err != nil {
		return nil, err
	}

	rows := make([]SummaryRow, len(a.stages))
	for i, stage := range a.stages {
		rows[i] = SummaryRow{
			Index:       i,
			Name:        stage.Name,
			Kind:        stage.KindName(),
			Layers:      stage.Layers.Clone(),
			InChannels:  stage.InChannels(),
			OutChannels: stage.OutChannels(),
			Output:      shapes[i].Output,
			Parameters:  stage.Layers.NumParameters(),
		}
	}
	return rows, nil
}
