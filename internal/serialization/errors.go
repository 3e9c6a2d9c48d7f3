package serialization

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrChecksumMismatch   = errors.New("checksum mismatch: file may be corrupted")
	ErrOffsetOverlap      = errors.New("tensor offsets overlap")
	ErrOutOfBounds        = errors.New("tensor extends beyond data section")
	ErrNegativeOffset     = errors.New("negative offset or size")
	ErrTooManyTensors     = errors.New("too many tensors in file")
	ErrTensorNameTooLong  = errors.New("tensor name too long")
	ErrInvalidTensorName  = errors.New("invalid tensor name")
	ErrInvalidTensorMeta  = errors.New("invalid tensor metadata")
	ErrHeaderTooLarge     = errors.New("header exceeds maximum size")
	ErrInvalidMagic       = errors.New("invalid magic bytes")
	ErrUnsupportedVersion = errors.New("unsupported format version")
)

// Validation error types.
const (
	errTypeOffsetOverlap  = "offset_overlap"
	errTypeOutOfBounds    = "out_of_bounds"
	errTypeNegativeOffset = "negative_offset"
	errTypeTooMany        = "too_many_tensors"
	errTypeNameTooLong    = "name_too_long"
	errTypeInvalidName    = "invalid_name"
	errTypeInvalidTensor  = "invalid_tensor"
)

var validationSentinels = map[string]error{
	errTypeOffsetOverlap:  ErrOffsetOverlap,
	errTypeOutOfBounds:    ErrOutOfBounds,
	errTypeNegativeOffset: ErrNegativeOffset,
	errTypeTooMany:        ErrTooManyTensors,
	errTypeNameTooLong:    ErrTensorNameTooLong,
	errTypeInvalidName:    ErrInvalidTensorName,
	errTypeInvalidTensor:  ErrInvalidTensorMeta,
}

// ValidationError provides detailed information about validation failures.
type ValidationError struct {
	Type    string // Type of error (e.g., "offset_overlap", "out_of_bounds")
	Tensor  string // Primary tensor name involved
	Tensor2 string // Secondary tensor name (for overlap errors)
	Details string // Additional details
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Tensor2 != "" {
		return fmt.Sprintf("%s: tensors %q and %q: %s", e.Type, e.Tensor, e.Tensor2, e.Details)
	}
	if e.Tensor != "" {
		return fmt.Sprintf("%s: tensor %q: %s", e.Type, e.Tensor, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Details)
}

// Unwrap returns the sentinel matching Type, so errors.Is works on
// validation failures.
func (e *ValidationError) Unwrap() error {
	return validationSentinels[e.Type]
}
