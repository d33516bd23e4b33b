// Package endian provides the byte-order abstraction used to read and write
// minnow's fixed-size binary records.
//
// minnow files are little-endian only (see the Non-goals in the design
// notes), but the codec layer is written against the EndianEngine interface
// rather than calling binary.LittleEndian directly, since every fixed-size
// record, index entry, and tail record goes through the same Put/Get calls.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into the single interface the codec layer needs for both in-place writes
// (PutUint64 into a pre-sized slice) and growing writes (AppendUint64).
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// LittleEndian is the engine used throughout minnow and minh; the on-disk
// format defines no other byte order.
var LittleEndian EndianEngine = binary.LittleEndian

// Get returns the little-endian engine. It exists so call sites read as
// endian.Get() rather than reaching for the package variable directly,
// mirroring how the codec layer threads an engine through constructors.
func Get() EndianEngine {
	return LittleEndian
}
