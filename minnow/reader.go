package minnow

import (
	"fmt"
	"io"
	"sync"

	"github.com/nbodycat/minnow/compress"
	"github.com/nbodycat/minnow/errs"
	"github.com/nbodycat/minnow/format"
	"github.com/nbodycat/minnow/internal/hash"
)

// Reader answers random-access header(i) and data(b) requests against an
// already-closed minnow file. It is immutable after construction, so
// independent Reader instances over the same file are safe to use from
// separate goroutines provided each owns its own io.ReaderAt (spec §5).
type Reader struct {
	ra   io.ReaderAt
	size int64

	header Header

	headerOffsets []int64
	headerSizes   []int64

	groupOffsets []int64
	groups       []group

	// blockIndex maps a global block index to its owning entry in groups.
	blockIndex []int

	closed bool
}

// NewReader opens a Reader over ra, a file of the given total size. Every
// failure path is wrapped in errs.ErrOpenFailed alongside the specific
// sentinel, so callers that only check "could this be opened at all" can
// test against the one error while errors.Is still matches the detail.
func NewReader(ra io.ReaderAt, size int64) (*Reader, error) {
	if size < HeaderSize {
		return nil, fmt.Errorf("%w: %w", errs.ErrOpenFailed, errs.ErrShortFile)
	}

	headerBuf := make([]byte, HeaderSize)
	if _, err := ra.ReadAt(headerBuf, 0); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrOpenFailed, err)
	}

	var h Header
	if err := h.Parse(headerBuf); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrOpenFailed, err)
	}

	footerLen := size - h.TailStart
	if footerLen < 0 {
		return nil, fmt.Errorf("%w: %w", errs.ErrOpenFailed, errs.ErrShortFooter)
	}

	footer := make([]byte, footerLen)
	if _, err := ra.ReadAt(footer, h.TailStart); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrOpenFailed, err)
	}

	r := &Reader{ra: ra, size: size, header: h}
	if err := r.parseFooter(footer); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrOpenFailed, err)
	}

	return r, nil
}

// seekerReaderAt adapts an io.ReadSeeker to io.ReaderAt by serializing
// seek+read pairs under a mutex, for sources that don't natively support
// random access (spec §5: "or by wrapping seek+read under a mutex").
type seekerReaderAt struct {
	mu sync.Mutex
	rs io.ReadSeeker
}

func (s *seekerReaderAt) ReadAt(p []byte, off int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.rs.Seek(off, io.SeekStart); err != nil {
		return 0, err
	}

	return io.ReadFull(s.rs, p)
}

// NewReaderFromSeeker opens a Reader over an io.ReadSeeker that doesn't
// implement io.ReaderAt directly, e.g. a network stream exposed only as
// Read+Seek.
func NewReaderFromSeeker(rs io.ReadSeeker, size int64) (*Reader, error) {
	return NewReader(&seekerReaderAt{rs: rs}, size)
}

func (r *Reader) parseFooter(footer []byte) error {
	engine := endianEngine()

	headers := int(r.header.Headers)
	groups := int(r.header.Groups)

	need := func(n int) error {
		if len(footer) < n {
			return errs.ErrShortFooter
		}
		return nil
	}

	off := 0
	readI64s := func(n int) ([]int64, error) {
		if err := need(off + 8*n); err != nil {
			return nil, err
		}
		out := make([]int64, n)
		for i := 0; i < n; i++ {
			out[i] = int64(engine.Uint64(footer[off : off+8]))
			off += 8
		}
		return out, nil
	}

	var err error
	if r.headerOffsets, err = readI64s(headers); err != nil {
		return err
	}
	if r.headerSizes, err = readI64s(headers); err != nil {
		return err
	}
	if r.groupOffsets, err = readI64s(groups); err != nil {
		return err
	}
	groupTypesRaw, err := readI64s(groups)
	if err != nil {
		return err
	}
	groupBlocksRaw, err := readI64s(groups)
	if err != nil {
		return err
	}

	r.groups = make([]group, groups)
	for g := 0; g < groups; g++ {
		typeCode := format.Code(groupTypesRaw[g])

		var gr group
		var consumed int

		switch typeCode {
		case format.CodeIntGroup:
			ig, n, perr := parseIntGroupTail(footer[off:])
			if perr != nil {
				return perr
			}
			gr, consumed = ig, n
		case format.CodeFloatGroup:
			fg, n, perr := parseFloatGroupTail(footer[off:])
			if perr != nil {
				return perr
			}
			gr, consumed = fg, n
		default:
			if err := need(off + 24); err != nil {
				return err
			}
			fg, perr := parseFixedSizeGroupTail(typeCode, footer[off:off+24])
			if perr != nil {
				return perr
			}
			gr, consumed = fg, 24
		}

		off += consumed
		r.groups[g] = gr

		blocks := groupBlocksRaw[g]
		for k := int64(0); k < blocks; k++ {
			r.blockIndex = append(r.blockIndex, g)
		}
	}

	return nil
}

// Header reads header record i, transparently decompressing it according to
// its leading codec tag (see Writer.Header / WithHeaderCompression).
func (r *Reader) Header(i int) ([]byte, error) {
	if i < 0 || i >= len(r.headerOffsets) {
		return nil, errs.ErrHeaderIndexOutOfRange
	}

	buf := make([]byte, r.headerSizes[i])
	if _, err := r.ra.ReadAt(buf, r.headerOffsets[i]); err != nil {
		if err == io.EOF {
			return nil, errs.ErrShortRead
		}
		return nil, err
	}
	if len(buf) < 1 {
		return nil, errs.ErrShortRead
	}

	tag := format.CompressionType(buf[0])
	codec, err := compress.GetCodec(tag)
	if err != nil {
		return nil, err
	}

	return codec.Decompress(buf[1:])
}

// HeaderChecksum returns the xxHash64 checksum of header record i. This is
// an informational convenience, not part of the on-disk footer.
func (r *Reader) HeaderChecksum(i int) (uint64, error) {
	data, err := r.Header(i)
	if err != nil {
		return 0, err
	}

	return hash.Checksum(data), nil
}

// Data locates and decodes block b.
func (r *Reader) Data(b int64) (Array, error) {
	if b < 0 || int(b) >= len(r.blockIndex) {
		return Array{}, errs.ErrBlockIndexOutOfRange
	}

	g := r.blockIndex[b]
	grp := r.groups[g]
	localIdx := int(b - grp.startBlock())

	offset := r.groupOffsets[g] + grp.blockByteOffset(localIdx)
	length := grp.blockByteLength(localIdx)

	if offset < 0 || offset+length > r.size {
		return Array{}, errs.ErrSeekPastEOF
	}

	buf := make([]byte, length)
	if _, err := r.ra.ReadAt(buf, offset); err != nil {
		if err == io.EOF {
			return Array{}, errs.ErrShortRead
		}
		return Array{}, err
	}

	return grp.readBlock(buf, localIdx)
}

// DataType returns the type/codec code of block b.
func (r *Reader) DataType(b int64) (format.Code, error) {
	if b < 0 || int(b) >= len(r.blockIndex) {
		return 0, errs.ErrBlockIndexOutOfRange
	}

	return r.groups[r.blockIndex[b]].code(), nil
}

// TotalBlocks returns the total number of blocks across all groups.
func (r *Reader) TotalBlocks() int64 { return r.header.Blocks }

// TotalHeaders returns the number of header records.
func (r *Reader) TotalHeaders() int64 { return r.header.Headers }

// TotalGroups returns the number of groups.
func (r *Reader) TotalGroups() int64 { return r.header.Groups }

// Close marks the reader closed. If the underlying source is an io.Closer,
// it is closed too.
func (r *Reader) Close() error {
	if r.closed {
		return errs.ErrReaderClosed
	}
	r.closed = true

	if c, ok := r.ra.(io.Closer); ok {
		return c.Close()
	}

	return nil
}
