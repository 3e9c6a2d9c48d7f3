package serialization

import (
	"fmt"
	"sort"
	"strings"

	"github.com/born-ml/gan/internal/tensor"
)

// Validation limits for security and resource protection.
const (
	MaxHeaderSize    = 100 * 1024 * 1024 // 100MB - maximum header size
	MaxTensorCount   = 100_000           // Maximum number of tensors in a file
	MaxTensorNameLen = 4096              // Maximum tensor name length
)

// ValidationLevel controls the strictness of validation.
type ValidationLevel int

const (
	// ValidationStrict checks names, tensor metadata, offsets and the checksum.
	ValidationStrict ValidationLevel = iota
	// ValidationNormal skips the offset overlap and bounds checks.
	ValidationNormal
	// ValidationNone skips validation, including the checksum.
	ValidationNone
)

// ValidateTensorOffsets checks for overlapping tensor offsets and out-of-bounds access.
func ValidateTensorOffsets(tensors []TensorMeta, dataSize int64) error {
	if len(tensors) > MaxTensorCount {
		return &ValidationError{
			Type:    errTypeTooMany,
			Details: fmt.Sprintf("got %d, max %d", len(tensors), MaxTensorCount),
		}
	}

	sorted := make([]TensorMeta, len(tensors))
	copy(sorted, tensors)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})

	for i, t := range sorted {
		if t.Offset < 0 || t.Size < 0 {
			return &ValidationError{
				Type:    errTypeNegativeOffset,
				Tensor:  t.Name,
				Details: fmt.Sprintf("offset=%d, size=%d (negative values not allowed)", t.Offset, t.Size),
			}
		}

		if t.Offset+t.Size > dataSize {
			return &ValidationError{
				Type:    errTypeOutOfBounds,
				Tensor:  t.Name,
				Details: fmt.Sprintf("offset %d + size %d > data_size %d", t.Offset, t.Size, dataSize),
			}
		}

		if i < len(sorted)-1 {
			next := sorted[i+1]
			if t.Offset+t.Size > next.Offset {
				return &ValidationError{
					Type:    errTypeOffsetOverlap,
					Tensor:  t.Name,
					Tensor2: next.Name,
					Details: fmt.Sprintf("regions [%d-%d] and [%d-%d] overlap",
						t.Offset, t.Offset+t.Size, next.Offset, next.Offset+next.Size),
				}
			}
		}
	}

	return nil
}

// ValidateTensorName rejects over-long names and names containing path
// traversal, separators or null bytes.
func ValidateTensorName(name string) error {
	if len(name) > MaxTensorNameLen {
		return &ValidationError{
			Type:    errTypeNameTooLong,
			Tensor:  name,
			Details: fmt.Sprintf("length %d > max %d", len(name), MaxTensorNameLen),
		}
	}

	switch {
	case name == "":
		return &ValidationError{Type: errTypeInvalidName, Details: "empty tensor name"}
	case strings.Contains(name, ".."):
		return &ValidationError{Type: errTypeInvalidName, Tensor: name, Details: "contains '..' (path traversal attempt)"}
	case strings.ContainsAny(name, "/\\"):
		return &ValidationError{Type: errTypeInvalidName, Tensor: name, Details: "contains path separator (/ or \\)"}
	case strings.Contains(name, "\x00"):
		return &ValidationError{Type: errTypeInvalidName, Tensor: name, Details: "contains null byte"}
	}

	return nil
}

// ValidateTensorMeta checks that a tensor's dtype is known, its shape is
// valid and its byte size matches the shape.
func ValidateTensorMeta(t TensorMeta) error {
	dtype, ok := tensor.ParseDataType(t.DType)
	if !ok {
		return &ValidationError{
			Type:    errTypeInvalidTensor,
			Tensor:  t.Name,
			Details: fmt.Sprintf("unsupported dtype %q", t.DType),
		}
	}

	shape := tensor.Shape(t.Shape)
	if err := shape.Validate(); err != nil {
		return &ValidationError{
			Type:    errTypeInvalidTensor,
			Tensor:  t.Name,
			Details: err.Error(),
		}
	}

	if want := int64(shape.NumElements() * dtype.Size()); t.Size != want {
		return &ValidationError{
			Type:    errTypeInvalidTensor,
			Tensor:  t.Name,
			Details: fmt.Sprintf("size %d != %d for %s%v", t.Size, want, t.DType, t.Shape),
		}
	}

	return nil
}

// ValidateHeader performs header validation at the given level.
func ValidateHeader(h *Header, dataSize int64, level ValidationLevel) error {
	if level == ValidationNone {
		return nil
	}

	if len(h.Tensors) > MaxTensorCount {
		return &ValidationError{
			Type:    errTypeTooMany,
			Details: fmt.Sprintf("got %d, max %d", len(h.Tensors), MaxTensorCount),
		}
	}

	seen := make(map[string]struct{}, len(h.Tensors))
	for _, t := range h.Tensors {
		if err := ValidateTensorName(t.Name); err != nil {
			return err
		}
		if _, dup := seen[t.Name]; dup {
			return &ValidationError{Type: errTypeInvalidName, Tensor: t.Name, Details: "duplicate tensor name"}
		}
		seen[t.Name] = struct{}{}

		if err := ValidateTensorMeta(t); err != nil {
			return err
		}
	}

	if level == ValidationStrict {
		if err := ValidateTensorOffsets(h.Tensors, dataSize); err != nil {
			return err
		}
	}

	return nil
}
