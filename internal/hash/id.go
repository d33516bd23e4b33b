// Package hash provides the xxHash64 fingerprint used for header blob
// integrity spot-checks.
package hash

import "github.com/cespare/xxhash/v2"

// Checksum returns the xxHash64 of data, used by minnow.Reader.HeaderChecksum
// to let callers cheaply verify a header blob wasn't corrupted in transit.
// It is informational only and is not part of the on-disk footer.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}
