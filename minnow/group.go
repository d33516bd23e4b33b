package minnow

import "github.com/nbodycat/minnow/format"

// group is the shared capability of every codec's state machine: a group
// accumulates blocks while a file is being written, and the same struct
// (rebuilt from its footer tail record) answers random-access reads once
// the file is closed. Dispatch is by tagged enum (format.Code), not runtime
// inheritance (spec Design Notes, "Dispatch on group codec").
type group interface {
	// code is the group's codec/type tag, stored in the footer's
	// group_types table.
	code() format.Code

	// startBlock is the global block index of this group's first block.
	startBlock() int64

	// blockCount is the number of blocks currently in the group.
	blockCount() int64

	// writeBlock encodes one block's payload, appends it to the group's
	// internal bookkeeping, and returns the bytes to write to the file.
	writeBlock(a Array) ([]byte, error)

	// tailBytes serializes the group's footer tail record once the group
	// is closed (no more blocks will be appended).
	tailBytes() []byte

	// blockByteOffset returns the byte offset, relative to the group's
	// first payload byte, of the block at localIdx (0-based within the
	// group).
	blockByteOffset(localIdx int) int64

	// blockByteLength returns the on-disk byte length of the block record
	// at localIdx, i.e. how many bytes to read starting at
	// blockByteOffset(localIdx).
	blockByteLength(localIdx int) int64

	// readBlock decodes a block record previously located via
	// blockByteOffset/blockByteLength.
	readBlock(record []byte, localIdx int) (Array, error)
}
