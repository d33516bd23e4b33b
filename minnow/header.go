package minnow

import "github.com/nbodycat/minnow/errs"

// Magic and version identify a minnow file. A file whose magic does not
// match this exact value is either foreign or was left mid-write by a
// crashed process (NewWriter writes a zero placeholder; Writer.Close writes
// the real first 48 bytes last).
const (
	Magic   int64 = 0xacedad
	Version int64 = 1

	// HeaderSize is the fixed size in bytes of the leading file header.
	HeaderSize = 48
)

// Header is the fixed 48-byte record at the start of every minnow file.
type Header struct {
	Magic      int64
	Version    int64
	Groups     int64
	Headers    int64
	Blocks     int64
	TailStart  int64
}

// Parse reads a Header from exactly HeaderSize bytes.
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrShortFile
	}

	engine := endianEngine()
	h.Magic = int64(engine.Uint64(data[0:8]))
	h.Version = int64(engine.Uint64(data[8:16]))
	h.Groups = int64(engine.Uint64(data[16:24]))
	h.Headers = int64(engine.Uint64(data[24:32]))
	h.Blocks = int64(engine.Uint64(data[32:40]))
	h.TailStart = int64(engine.Uint64(data[40:48]))

	if h.Magic != Magic {
		return errs.ErrBadMagic
	}
	if h.Version != Version {
		return errs.ErrBadVersion
	}

	return nil
}

// Bytes serializes the header into a fresh HeaderSize-byte slice.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)

	engine := endianEngine()
	engine.PutUint64(b[0:8], uint64(h.Magic))
	engine.PutUint64(b[8:16], uint64(h.Version))
	engine.PutUint64(b[16:24], uint64(h.Groups))
	engine.PutUint64(b[24:32], uint64(h.Headers))
	engine.PutUint64(b[32:40], uint64(h.Blocks))
	engine.PutUint64(b[40:48], uint64(h.TailStart))

	return b
}

// zeroHeader returns the all-zero placeholder written at the start of a
// fresh file; it is back-patched with real values at Close.
func zeroHeader() Header {
	return Header{}
}
