// Package serialization reads and writes model weights in the .born format.
//
// A .born v2 file has four sections:
//
//	[0x00: Magic "BORN"]
//	[0x04: Version (uint32 LE)]
//	[0x08: Flags (uint32 LE)]
//	[0x0C: Reserved]
//	[0x10: JSON header size (uint64 LE)]
//	[0x18: Data section size (uint64 LE)]
//	[0x20: SHA-256 of the data section (32 bytes)]
//	[0x40: JSON header]
//	[padding to a 64-byte boundary]
//	[Tensor data: raw little-endian bytes]
//
// Tensors are stored in name order, so writing the same state dict twice
// produces the same data section and checksum.
//
// Example usage:
//
//	model, err := gan.NewDiscriminator(cfg, backend)
//	err := serialization.WriteFile("disc.born", model.StateDict(),
//	    model.Architecture().Name(), map[string]string{"config": cfg.String()})
//
//	reader, err := serialization.NewBornReader("disc.born")
//	defer reader.Close()
//	stateDict, err := reader.ReadStateDict()
//	err = model.LoadStateDict(stateDict)
package serialization
