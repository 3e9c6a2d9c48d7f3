package serialization

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/born-ml/gan/internal/tensor"
)

// BornReader reads model weights from .born files.
type BornReader struct {
	src        io.ReadSeeker
	closer     io.Closer
	header     Header
	flags      uint32
	dataOffset int64 // Absolute offset of the data section
	dataSize   int64
	checksum   [ChecksumSize]byte
	closed     bool
}

// NewBornReader opens path and validates it with ValidationStrict.
func NewBornReader(path string) (*BornReader, error) {
	return NewBornReaderWithOptions(path, ValidationStrict)
}

// NewBornReaderWithOptions opens path and validates it at the given level.
func NewBornReaderWithOptions(path string, level ValidationLevel) (*BornReader, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model loading
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	r, err := NewReader(file, level)
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	r.closer = file
	return r, nil
}

// NewReader parses a .born stream. The data section checksum is verified
// unless level is ValidationNone.
func NewReader(src io.ReadSeeker, level ValidationLevel) (*BornReader, error) {
	r := &BornReader{src: src}
	if err := r.parseHeader(level); err != nil {
		return nil, err
	}
	if level != ValidationNone {
		if err := r.verifyChecksum(); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *BornReader) parseHeader(level ValidationLevel) error {
	var fixed [FixedHeaderSize]byte
	if _, err := io.ReadFull(r.src, fixed[:]); err != nil {
		return fmt.Errorf("failed to read fixed header: %w", err)
	}

	if !bytes.Equal(fixed[0:4], []byte(MagicBytes)) {
		return fmt.Errorf("%w: got %q", ErrInvalidMagic, fixed[0:4])
	}
	if version := binary.LittleEndian.Uint32(fixed[4:8]); version != FormatVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}
	r.flags = binary.LittleEndian.Uint32(fixed[8:12])

	headerSize := binary.LittleEndian.Uint64(fixed[16:24])
	if headerSize > MaxHeaderSize {
		return fmt.Errorf("%w: %d bytes", ErrHeaderTooLarge, headerSize)
	}
	dataSize := binary.LittleEndian.Uint64(fixed[24:32])
	if dataSize > 1<<62 {
		return fmt.Errorf("data section size %d is invalid", dataSize)
	}
	r.dataSize = int64(dataSize)
	copy(r.checksum[:], fixed[ChecksumOffset:ChecksumOffset+ChecksumSize])

	headerJSON := make([]byte, headerSize)
	if _, err := io.ReadFull(r.src, headerJSON); err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}
	if err := json.Unmarshal(headerJSON, &r.header); err != nil {
		return fmt.Errorf("failed to parse header: %w", err)
	}
	if r.header.FormatVersion != FormatVersion {
		return fmt.Errorf("%w: header declares %d", ErrUnsupportedVersion, r.header.FormatVersion)
	}

	r.dataOffset = alignUp(int64(FixedHeaderSize) + int64(headerSize))

	return ValidateHeader(&r.header, r.dataSize, level)
}

func (r *BornReader) verifyChecksum() error {
	if _, err := r.src.Seek(r.dataOffset, io.SeekStart); err != nil {
		return fmt.Errorf("failed to seek to tensor data: %w", err)
	}
	computed, err := ComputeChecksumN(r.src, r.dataSize)
	if err != nil {
		return fmt.Errorf("failed to read tensor data for checksum: %w", err)
	}
	return ValidateChecksum(computed, r.checksum)
}

// Header returns the file header.
func (r *BornReader) Header() Header {
	return r.header
}

// Metadata returns the metadata map from the header.
func (r *BornReader) Metadata() map[string]string {
	return r.header.Metadata
}

// HasMetadata reports whether the writer flagged custom metadata.
func (r *BornReader) HasMetadata() bool {
	return r.flags&FlagHasMetadata != 0
}

// TensorNames returns the tensor names in file order.
func (r *BornReader) TensorNames() []string {
	names := make([]string, len(r.header.Tensors))
	for i, meta := range r.header.Tensors {
		names[i] = meta.Name
	}
	return names
}

// ReadTensor loads a single tensor into a fresh CPU RawTensor.
func (r *BornReader) ReadTensor(name string) (*tensor.RawTensor, error) {
	if r.closed {
		return nil, fmt.Errorf("reader is closed")
	}

	meta, ok := r.header.Tensor(name)
	if !ok {
		return nil, fmt.Errorf("tensor %s not found", name)
	}
	return r.readTensor(meta)
}

func (r *BornReader) readTensor(meta TensorMeta) (*tensor.RawTensor, error) {
	dtype, ok := tensor.ParseDataType(meta.DType)
	if !ok {
		return nil, fmt.Errorf("unsupported dtype %q for tensor %s", meta.DType, meta.Name)
	}

	raw, err := tensor.NewRaw(tensor.Shape(meta.Shape), dtype, tensor.CPU)
	if err != nil {
		return nil, fmt.Errorf("invalid shape for tensor %s: %w", meta.Name, err)
	}
	if int64(raw.ByteSize()) != meta.Size {
		return nil, fmt.Errorf("tensor %s: size %d does not match shape %v", meta.Name, meta.Size, meta.Shape)
	}

	if _, err := r.src.Seek(r.dataOffset+meta.Offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to seek to tensor data: %w", err)
	}
	if _, err := io.ReadFull(r.src, raw.Data()); err != nil {
		return nil, fmt.Errorf("failed to read tensor %s: %w", meta.Name, err)
	}

	return raw, nil
}

// ReadStateDict reads all tensors into a state dictionary.
func (r *BornReader) ReadStateDict() (map[string]*tensor.RawTensor, error) {
	if r.closed {
		return nil, fmt.Errorf("reader is closed")
	}

	stateDict := make(map[string]*tensor.RawTensor, len(r.header.Tensors))
	for _, meta := range r.header.Tensors {
		raw, err := r.readTensor(meta)
		if err != nil {
			return nil, err
		}
		stateDict[meta.Name] = raw
	}

	return stateDict, nil
}

// Close closes the underlying file, if the reader owns one.
func (r *BornReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

// ReadFile reads the header and state dict stored at path.
func ReadFile(path string) (Header, map[string]*tensor.RawTensor, error) {
	reader, err := NewBornReader(path)
	if err != nil {
		return Header{}, nil, err
	}
	defer func() {
		_ = reader.Close()
	}()

	stateDict, err := reader.ReadStateDict()
	if err != nil {
		return Header{}, nil, err
	}
	return reader.Header(), stateDict, nil
}
