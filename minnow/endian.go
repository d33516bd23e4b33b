package minnow

import "github.com/nbodycat/minnow/endian"

// endianEngine returns the byte order used for every fixed-size record in a
// minnow file. The format is little-endian only (spec Non-goals: "endian
// portability beyond little-endian"), so this is never configurable.
func endianEngine() endian.EndianEngine {
	return endian.Get()
}
