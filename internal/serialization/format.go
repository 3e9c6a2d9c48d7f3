package serialization

import (
	"time"
)

// Format constants.
const (
	MagicBytes      = "BORN"
	FormatVersion   = 2    // Only v2 (checksummed) files are read and written
	HeaderAlignment = 64   // Tensor data starts on a 64-byte boundary
	FixedHeaderSize = 64   // Size of the binary prefix before the JSON header
	ChecksumSize    = 32   // SHA-256
	ChecksumOffset  = 0x20 // Checksum position inside the fixed header
)

// Flags for the .born format.
const (
	FlagHasMetadata uint32 = 1 << 2 // custom metadata included
)

// WriterVersion identifies the library that produced a file.
const WriterVersion = "gan/0.3.0"

// Header represents the JSON header in a .born file.
type Header struct {
	FormatVersion int               `json:"format_version"`
	WriterVersion string            `json:"writer_version"`
	ModelType     string            `json:"model_type"` // Architecture name, e.g. "discriminator"
	CreatedAt     time.Time         `json:"created_at"`
	Tensors       []TensorMeta      `json:"tensors"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// TensorMeta describes a tensor in the .born file.
type TensorMeta struct {
	Name   string `json:"name"`   // State dict key, e.g. "3.1.weight"
	DType  string `json:"dtype"`  // "float32" or "float64"
	Shape  []int  `json:"shape"`  // Tensor shape
	Offset int64  `json:"offset"` // Bytes from the start of the data section
	Size   int64  `json:"size"`   // Size in bytes
}

// Tensor returns the metadata entry for name.
func (h *Header) Tensor(name string) (TensorMeta, bool) {
	for _, t := range h.Tensors {
		if t.Name == name {
			return t, true
		}
	}
	return TensorMeta{}, false
}

// alignUp rounds n up to the next multiple of HeaderAlignment.
func alignUp(n int64) int64 {
	return (n + HeaderAlignment - 1) / HeaderAlignment * HeaderAlignment
}
