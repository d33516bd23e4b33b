// Package compress provides the optional compression applied to minnow
// header blobs.
//
// Group and block payloads are never compressed by this package: a group's
// blocks must stay byte-addressable at group_offset + block_offset without
// decompressing the whole group first (spec.md §2, "random block access
// without streaming the whole file"). Header blobs have no such constraint —
// each one already carries an independent (offset, size) footer entry — so
// compressing them is the only place this package is wired in.
package compress

import (
	"fmt"

	"github.com/nbodycat/minnow/format"
)

// Codec compresses and decompresses a single header blob.
type Codec interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOp(),
	format.CompressionZstd: NewZstd(),
	format.CompressionS2:   NewS2(),
	format.CompressionLZ4:  NewLZ4(),
}

// GetCodec retrieves the built-in Codec for the given compression type.
func GetCodec(c format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[c]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("compress: unsupported compression type: %s", c)
}
