// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package gan

import (
	"github.com/born-ml/gan/internal/gan"
	"github.com/born-ml/gan/internal/nn"
	"github.com/born-ml/gan/internal/tensor"
)

// Configuration

// Config drives architecture assembly.
type Config = gan.Config

// DefaultConfig returns a 128-dim latent, transposed convolutions, instance
// normalization and leaky ReLU(0.2).
func DefaultConfig() Config {
	return gan.DefaultConfig()
}

// Normalization selects the normalization of up and same stages.
type Normalization = gan.Normalization

// Normalizations.
const (
	NormNone     = gan.NormNone
	NormInstance = gan.NormInstance
	NormBatch    = gan.NormBatch
)

// ParseNormalization accepts none, instance, batch and the aliases inorm
// and bnorm.
func ParseNormalization(s string) (Normalization, error) {
	return gan.ParseNormalization(s)
}

// Nonlinearity selects the activation closing every stage.
type Nonlinearity = gan.Nonlinearity

// Nonlinearities.
const (
	ReLU      = gan.ReLU
	LeakyReLU = gan.LeakyReLU
)

// ParseNonlinearity accepts relu, leaky_relu and the alias leakyrelu.
func ParseNonlinearity(s string) (Nonlinearity, error) {
	return gan.ParseNonlinearity(s)
}

// UpsampleMode selects the interpolation of upsample layers.
type UpsampleMode = gan.UpsampleMode

// Upsample modes.
const (
	UpsampleNearest  = gan.UpsampleNearest
	UpsampleBilinear = gan.UpsampleBilinear
)

// ParseUpsampleMode accepts nearest and bilinear.
func ParseUpsampleMode(s string) (UpsampleMode, error) {
	return gan.ParseUpsampleMode(s)
}

// Errors

// ErrInvalidConfig is matched by every ConfigurationError.
var ErrInvalidConfig = gan.ErrInvalidConfig

// ConfigurationError reports the offending field and value.
type ConfigurationError = gan.ConfigurationError

// Stages and layers

// StageKind is up, down or same.
type StageKind = gan.StageKind

// Stage kinds.
const (
	StageUp   = gan.StageUp
	StageDown = gan.StageDown
	StageSame = gan.StageSame
)

// ParseStageKind is the inverse of StageKind.String.
func ParseStageKind(s string) (StageKind, error) {
	return gan.ParseStageKind(s)
}

// StageDescriptor describes one buildable stage.
type StageDescriptor = gan.StageDescriptor

// Up describes a stage doubling the resolution.
func Up(in, out int, bias bool) StageDescriptor { return gan.Up(in, out, bias) }

// Down describes a stage halving the resolution.
func Down(in, out int, bias bool) StageDescriptor { return gan.Down(in, out, bias) }

// Same describes a stage keeping the resolution.
func Same(in, out int, bias bool) StageDescriptor { return gan.Same(in, out, bias) }

// LayerKind identifies a primitive layer.
type LayerKind = gan.LayerKind

// Primitive layers.
const (
	LayerUpsample      = gan.LayerUpsample
	LayerConv          = gan.LayerConv
	LayerConvTranspose = gan.LayerConvTranspose
	LayerInstanceNorm  = gan.LayerInstanceNorm
	LayerBatchNorm     = gan.LayerBatchNorm
	LayerReLU          = gan.LayerReLU
	LayerLeakyReLU     = gan.LayerLeakyReLU
	LayerTanh          = gan.LayerTanh
)

// LayerSpec is the static description of one primitive layer.
type LayerSpec = gan.LayerSpec

// LayerSequence is an ordered list of layers.
type LayerSequence = gan.LayerSequence

// Build returns the layer sequence of a stage.
func Build(stage StageDescriptor, cfg Config) (LayerSequence, error) {
	return gan.Build(stage, cfg)
}

// Architectures

// Default base widths.
const (
	DefaultGeneratorWidth     = gan.DefaultGeneratorWidth
	DefaultDiscriminatorWidth = gan.DefaultDiscriminatorWidth
)

// Architecture names.
const (
	CompactGeneratorName  = gan.CompactGeneratorName
	ExtendedGeneratorName = gan.ExtendedGeneratorName
	DiscriminatorName     = gan.DiscriminatorName
)

// Architecture is an immutable, validated list of stages.
type Architecture = gan.Architecture

// Stage is one named entry of an Architecture.
type Stage = gan.Stage

// InputAdapter describes how inputs are shaped before the first stage.
type InputAdapter = gan.InputAdapter

// StageShape is the output shape of one stage.
type StageShape = gan.StageShape

// SummaryRow describes one stage for display.
type SummaryRow = gan.SummaryRow

// NewArchitecture validates stages and returns an Architecture.
func NewArchitecture(name string, input InputAdapter, stages []Stage) (*Architecture, error) {
	return gan.NewArchitecture(name, input, stages)
}

// CompactGenerator describes the compact generator with base width inCh.
func CompactGenerator(cfg Config, inCh int) (*Architecture, error) {
	return gan.CompactGenerator(cfg, inCh)
}

// ExtendedGenerator describes the extended generator with first width inCh.
func ExtendedGenerator(cfg Config, inCh int) (*Architecture, error) {
	return gan.ExtendedGenerator(cfg, inCh)
}

// Discriminator describes the discriminator with first width outCh.
func Discriminator(cfg Config, outCh int) (*Architecture, error) {
	return gan.Discriminator(cfg, outCh)
}

// Models

// Model is an Architecture materialized on a backend.
type Model[B tensor.Backend] = gan.Model[B]

// ConvBlock is one materialized stage.
type ConvBlock[B tensor.Backend] = gan.ConvBlock[B]

// Option configures model constructors.
type Option = gan.Option

// WithBaseWidth overrides the base channel width.
func WithBaseWidth(width int) Option {
	return gan.WithBaseWidth(width)
}

// NewModel materializes arch on backend.
func NewModel[B tensor.Backend](arch *Architecture, backend B) (*Model[B], error) {
	return gan.NewModel(arch, backend)
}

// NewCompactGenerator builds and materializes the compact generator.
func NewCompactGenerator[B tensor.Backend](cfg Config, backend B, opts ...Option) (*Model[B], error) {
	return gan.NewCompactGenerator(cfg, backend, opts...)
}

// NewExtendedGenerator builds and materializes the extended generator.
func NewExtendedGenerator[B tensor.Backend](cfg Config, backend B, opts ...Option) (*Model[B], error) {
	return gan.NewExtendedGenerator(cfg, backend, opts...)
}

// NewDiscriminator builds and materializes the discriminator.
func NewDiscriminator[B tensor.Backend](cfg Config, backend B, opts ...Option) (*Model[B], error) {
	return gan.NewDiscriminator(cfg, backend, opts...)
}

// NewConvBlock builds and materializes a single stage.
func NewConvBlock[B tensor.Backend](stage StageDescriptor, cfg Config, backend B) (*ConvBlock[B], error) {
	return gan.NewConvBlock(stage, cfg, backend)
}

// Materialize creates the engine module for one layer.
func Materialize[B tensor.Backend](spec LayerSpec, backend B) nn.Module[B] {
	return gan.Materialize(spec, backend)
}
