package minh

import (
	"io"
	"math"
	"strings"

	"github.com/nbodycat/minnow/minnow"
	"github.com/nbodycat/minnow/endian"
	"github.com/nbodycat/minnow/errs"
	"github.com/nbodycat/minnow/format"
)

// Magic, version, and file_type values for a minh file's header 0. Only
// file_type=0 (basic) is produced by this writer; file_type=1 ("boundary")
// is reserved (spec §9, "treat as reserved").
const (
	Magic    int64 = 0xbaff1ed
	Version  int64 = 0
	FileTypeBasic int64 = 0

	nameSeparator = "$"
)

// Writer assembles a minh file on top of a minnow.Writer. Workflow: Create,
// then Header (once), then optionally Geometry, then zero or more Block
// calls, then Close (spec §4.4, "Writer workflow").
type Writer struct {
	mw *minnow.Writer

	names []string
	cols  []ColumnDescriptor
	ncols int

	geometry Geometry

	rowCounts []int64

	headerWritten bool
	closed        bool
}

// Create opens a new minh file over w, writing the magic/version/file_type
// header.
func Create(w io.WriteSeeker) (*Writer, error) {
	mw, err := minnow.NewWriter(w)
	if err != nil {
		return nil, err
	}

	wr := &Writer{mw: mw}

	engine := endian.Get()
	b := make([]byte, 24)
	engine.PutUint64(b[0:8], uint64(Magic))
	engine.PutUint64(b[8:16], uint64(Version))
	engine.PutUint64(b[16:24], uint64(FileTypeBasic))

	if _, err := wr.mw.Header(b); err != nil {
		return nil, err
	}

	return wr, nil
}

// Header declares the schema: a free-form text blob, the column names, and
// the column descriptors, in that order (headers 1, 2, 3).
func (w *Writer) Header(names []string, text string, cols []ColumnDescriptor) error {
	if w.closed {
		return errs.ErrWriterClosed
	}
	if w.headerWritten {
		return errs.ErrSchemaMismatch
	}
	if len(names) != len(cols) {
		return errs.ErrSchemaMismatch
	}
	for _, c := range cols {
		if err := c.validate(); err != nil {
			return err
		}
	}

	if _, err := w.mw.Header([]byte(text)); err != nil {
		return err
	}
	if _, err := w.mw.Header([]byte(strings.Join(names, nameSeparator))); err != nil {
		return err
	}

	descBytes := make([]byte, 0, ColumnDescriptorSize*len(cols))
	for _, c := range cols {
		descBytes = append(descBytes, c.Bytes()...)
	}
	if _, err := w.mw.Header(descBytes); err != nil {
		return err
	}

	w.names = append([]string(nil), names...)
	w.cols = append([]ColumnDescriptor(nil), cols...)
	w.ncols = len(cols)
	w.headerWritten = true

	return nil
}

// Geometry records the periodic box geometry. It is cached and written at
// Close; the default (all zero) means "no geometry" / not a boundary file.
func (w *Writer) Geometry(g Geometry) {
	w.geometry = g
}

// Block writes one logical row-range block: one array per declared column,
// in schema order. All arrays must have equal length and a type consistent
// with their column's declared codec.
func (w *Writer) Block(arrays []minnow.Array) error {
	if w.closed {
		return errs.ErrWriterClosed
	}
	if !w.headerWritten {
		return errs.ErrSchemaMismatch
	}
	if len(arrays) != w.ncols {
		return errs.ErrSchemaMismatch
	}

	length := int64(-1)
	for _, a := range arrays {
		if length == -1 {
			length = int64(a.Len())
		} else if int64(a.Len()) != length {
			return errs.ErrSchemaMismatch
		}
	}

	for c, col := range w.cols {
		a := arrays[c]
		if err := w.writeColumnBlock(col, a, length); err != nil {
			return err
		}
	}

	w.rowCounts = append(w.rowCounts, length)

	return nil
}

func (w *Writer) writeColumnBlock(col ColumnDescriptor, a minnow.Array, length int64) error {
	switch {
	case col.Type.IsFixed():
		if a.Code != col.Type {
			return errs.ErrSchemaMismatch
		}
		if err := w.mw.FixedSizeGroup(col.Type, length); err != nil {
			return err
		}

		return w.mw.Data(a)

	case col.Type == format.CodeIntGroup:
		if !isIntegerCode(a.Code) {
			return errs.ErrSchemaMismatch
		}
		if err := w.mw.IntGroup(); err != nil {
			return err
		}

		return w.mw.Data(minnow.ArrayI64(a.AsI64()))

	case col.Type == format.CodeFloatGroup:
		if a.Code != format.CodeFloat32 {
			return errs.ErrSchemaMismatch
		}

		xs := a.F32
		if col.Log {
			transformed := make([]float32, len(xs))
			for i, v := range xs {
				if v <= 0 {
					return errs.ErrNonPositiveLog
				}
				transformed[i] = float32(math.Log10(float64(v)))
			}
			xs = transformed
		}

		if err := w.mw.FloatGroup(length, col.Low, col.High, col.Dx); err != nil {
			return err
		}

		return w.mw.Data(minnow.ArrayF32(xs))

	default:
		return errs.ErrSchemaMismatch
	}
}

func isIntegerCode(c format.Code) bool {
	switch c {
	case format.CodeInt64, format.CodeInt32, format.CodeInt16, format.CodeInt8,
		format.CodeUint64, format.CodeUint32, format.CodeUint16, format.CodeUint8:
		return true
	default:
		return false
	}
}

// Close writes the geometry, block-count, and per-block row-count headers
// (4, 5, 6) and closes the underlying minnow writer.
func (w *Writer) Close() error {
	if w.closed {
		return errs.ErrWriterClosed
	}

	engine := endian.Get()

	geomBytes := make([]byte, 16)
	engine.PutUint32(geomBytes[0:4], math.Float32bits(w.geometry.L))
	engine.PutUint32(geomBytes[4:8], math.Float32bits(w.geometry.Boundary))
	engine.PutUint64(geomBytes[8:16], uint64(w.geometry.Cells))
	if _, err := w.mw.Header(geomBytes); err != nil {
		return err
	}

	countBytes := make([]byte, 8)
	engine.PutUint64(countBytes, uint64(len(w.rowCounts)))
	if _, err := w.mw.Header(countBytes); err != nil {
		return err
	}

	rowBytes := make([]byte, 8*len(w.rowCounts))
	for i, n := range w.rowCounts {
		engine.PutUint64(rowBytes[i*8:], uint64(n))
	}
	if _, err := w.mw.Header(rowBytes); err != nil {
		return err
	}

	w.closed = true

	return w.mw.Close()
}
