package minnow

import (
	"io"

	"github.com/nbodycat/minnow/compress"
	"github.com/nbodycat/minnow/endian"
	"github.com/nbodycat/minnow/errs"
	"github.com/nbodycat/minnow/format"
	"github.com/nbodycat/minnow/internal/options"
)

// WriterOption configures a Writer at construction time.
type WriterOption = options.Option[*writerConfig]

type writerConfig struct {
	headerCodec format.CompressionType
}

// WithHeaderCompression compresses every header blob written via
// Writer.Header with the given codec before it hits disk. Group and block
// payloads are never affected — compressing them would defeat random block
// access (spec §2). Each stored header blob is prefixed with a one-byte tag
// identifying the codec so Reader.Header can decompress transparently.
func WithHeaderCompression(ct format.CompressionType) WriterOption {
	return options.New[*writerConfig](func(c *writerConfig) error {
		if _, err := compress.GetCodec(ct); err != nil {
			return err
		}
		c.headerCodec = ct
		return nil
	})
}

// IntGroupOption configures an int_group at creation time.
type IntGroupOption = options.Option[*intGroupConfig]

type intGroupConfig struct {
	periodic bool
	pixels   int64
}

// WithPeriodicMin opts an int_group into periodic_min semantics: each
// block's "min" is computed on a ring of circumference pixels instead of a
// plain minimum, and stored values wrap modulo pixels. This is an explicit
// per-group choice (spec Design Notes: "expose it as an explicit int_group
// option rather than inferring it"), never inferred from the data.
func WithPeriodicMin(pixels int64) IntGroupOption {
	return options.NoError[*intGroupConfig](func(c *intGroupConfig) {
		c.periodic = true
		c.pixels = pixels
	})
}

// Writer assembles a minnow file. Exactly one group may be open ("current")
// at a time; opening a new group or writing a header implicitly closes
// whatever group was open, matching the state machine in spec §4.2
// ("opening a new group closes the previous one implicitly... headers may
// be written at any time between group payloads but not within a group").
type Writer struct {
	w   io.WriteSeeker
	pos int64

	headerOffsets []int64
	headerSizes   []int64

	closedGroups  []group
	groupOffsets  []int64
	current       group
	currentOffset int64

	totalBlocks int64
	headerCodec format.CompressionType
	closed      bool
}

// NewWriter creates a Writer over w, immediately writing the 48-byte
// zero-valued header placeholder that Close backpatches.
func NewWriter(w io.WriteSeeker, opts ...WriterOption) (*Writer, error) {
	cfg := &writerConfig{headerCodec: format.CompressionNone}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	placeholder := zeroHeader().Bytes()
	if _, err := w.Write(placeholder); err != nil {
		return nil, err
	}

	return &Writer{w: w, pos: int64(len(placeholder)), headerCodec: cfg.headerCodec}, nil
}

func (wr *Writer) write(b []byte) error {
	n, err := wr.w.Write(b)
	wr.pos += int64(n)
	if err != nil {
		return err
	}
	if n != len(b) {
		return errs.ErrShortWrite
	}

	return nil
}

// finalizeCurrent closes the group currently open, if any, moving it into
// the closed-groups list so Close can fold it into the footer.
func (wr *Writer) finalizeCurrent() {
	if wr.current == nil {
		return
	}

	wr.closedGroups = append(wr.closedGroups, wr.current)
	wr.groupOffsets = append(wr.groupOffsets, wr.currentOffset)
	wr.current = nil
}

// Header appends an opaque byte blob as a new header record and returns its
// assigned index. The stored blob always starts with a one-byte codec tag;
// if the writer was constructed with WithHeaderCompression, the bytes after
// the tag are compressed with that codec.
func (wr *Writer) Header(data []byte) (int, error) {
	if wr.closed {
		return 0, errs.ErrWriterClosed
	}

	wr.finalizeCurrent()

	codec, err := compress.GetCodec(wr.headerCodec)
	if err != nil {
		return 0, err
	}

	compressed, err := codec.Compress(data)
	if err != nil {
		return 0, err
	}

	stored := make([]byte, 1+len(compressed))
	stored[0] = byte(wr.headerCodec)
	copy(stored[1:], compressed)

	idx := len(wr.headerOffsets)
	wr.headerOffsets = append(wr.headerOffsets, wr.pos)
	wr.headerSizes = append(wr.headerSizes, int64(len(stored)))

	if err := wr.write(stored); err != nil {
		return 0, err
	}

	return idx, nil
}

// FixedSizeGroup opens a new raw-numeric group, closing whatever group was
// previously open.
func (wr *Writer) FixedSizeGroup(typeCode format.Code, n int64) error {
	if wr.closed {
		return errs.ErrWriterClosed
	}
	if !typeCode.IsFixed() {
		return errs.ErrGroupTypeMismatch
	}

	wr.finalizeCurrent()
	wr.current = newFixedSizeGroup(typeCode, n, wr.totalBlocks)
	wr.currentOffset = wr.pos

	return nil
}

// IntGroup opens a new bit-packed integer group.
func (wr *Writer) IntGroup(opts ...IntGroupOption) error {
	if wr.closed {
		return errs.ErrWriterClosed
	}

	cfg := &intGroupConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return err
	}

	wr.finalizeCurrent()
	wr.current = newIntGroup(wr.totalBlocks, cfg.periodic, cfg.pixels)
	wr.currentOffset = wr.pos

	return nil
}

// FloatGroup opens a new quantized-float group with per-block element count
// n and quantization parameters (low, high, dx).
func (wr *Writer) FloatGroup(n int64, low, high, dx float32) error {
	if wr.closed {
		return errs.ErrWriterClosed
	}

	g, err := newFloatGroup(wr.totalBlocks, n, low, high, dx)
	if err != nil {
		return err
	}

	wr.finalizeCurrent()
	wr.current = g
	wr.currentOffset = wr.pos

	return nil
}

// Data appends a payload block to the currently open group.
func (wr *Writer) Data(a Array) error {
	if wr.closed {
		return errs.ErrWriterClosed
	}
	if wr.current == nil {
		return errs.ErrNoGroupOpen
	}

	payload, err := wr.current.writeBlock(a)
	if err != nil {
		return err
	}

	if err := wr.write(payload); err != nil {
		return err
	}

	wr.totalBlocks++

	return nil
}

// Close writes the footer, backpatches the fixed header, and marks the
// writer closed. The underlying io.WriteSeeker is not closed; callers that
// need the file descriptor closed should wrap or do so themselves.
func (wr *Writer) Close() error {
	if wr.closed {
		return errs.ErrWriterClosed
	}

	wr.finalizeCurrent()

	tailStart := wr.pos

	engine := endianEngine()
	groups := wr.closedGroups

	footer := make([]byte, 0, 8*(2*len(wr.headerOffsets)+3*len(groups)))
	footer = appendInt64s(footer, engine, wr.headerOffsets)
	footer = appendInt64s(footer, engine, wr.headerSizes)
	footer = appendInt64s(footer, engine, wr.groupOffsets)

	groupTypes := make([]int64, len(groups))
	groupBlocks := make([]int64, len(groups))
	for i, g := range groups {
		groupTypes[i] = int64(g.code())
		groupBlocks[i] = g.blockCount()
	}
	footer = appendInt64s(footer, engine, groupTypes)
	footer = appendInt64s(footer, engine, groupBlocks)

	for _, g := range groups {
		footer = append(footer, g.tailBytes()...)
	}

	if err := wr.write(footer); err != nil {
		return err
	}

	h := Header{
		Magic:     Magic,
		Version:   Version,
		Groups:    int64(len(groups)),
		Headers:   int64(len(wr.headerOffsets)),
		Blocks:    wr.totalBlocks,
		TailStart: tailStart,
	}

	if _, err := wr.w.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if _, err := wr.w.Write(h.Bytes()); err != nil {
		return err
	}

	wr.closed = true

	return nil
}

func appendInt64s(dst []byte, engine endian.EndianEngine, xs []int64) []byte {
	for _, x := range xs {
		var b [8]byte
		engine.PutUint64(b[:], uint64(x))
		dst = append(dst, b[:]...)
	}

	return dst
}
