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

// Reader answers random-access, per-column-block queries against a closed
// minh file.
type Reader struct {
	mr *minnow.Reader

	text string
	names []string
	cols  []ColumnDescriptor
	byName map[string]int

	geometry Geometry

	blocks     int64
	rowCounts  []int64
	totalRows  int64

	closed bool
}

// Open parses headers 0..6 and builds the column index.
func Open(ra io.ReaderAt, size int64) (*Reader, error) {
	mr, err := minnow.NewReader(ra, size)
	if err != nil {
		return nil, err
	}

	r := &Reader{mr: mr}

	h0, err := mr.Header(0)
	if err != nil {
		return nil, err
	}
	if err := r.parseFixedHeader(h0); err != nil {
		return nil, err
	}

	textBytes, err := mr.Header(1)
	if err != nil {
		return nil, err
	}
	r.text = string(textBytes)

	nameBytes, err := mr.Header(2)
	if err != nil {
		return nil, err
	}
	if len(nameBytes) > 0 {
		r.names = strings.Split(string(nameBytes), nameSeparator)
	}

	descBytes, err := mr.Header(3)
	if err != nil {
		return nil, err
	}
	if len(descBytes)%ColumnDescriptorSize != 0 {
		return nil, errs.ErrShortFooter
	}
	ncols := len(descBytes) / ColumnDescriptorSize
	if ncols != len(r.names) {
		return nil, errs.ErrSchemaMismatch
	}

	r.byName = make(map[string]int, ncols)
	for c := 0; c < ncols; c++ {
		desc, err := ParseColumnDescriptor(descBytes[c*ColumnDescriptorSize : (c+1)*ColumnDescriptorSize])
		if err != nil {
			return nil, err
		}
		r.cols = append(r.cols, desc)
		r.byName[r.names[c]] = c
	}

	geomBytes, err := mr.Header(4)
	if err != nil {
		return nil, err
	}
	if err := r.parseGeometry(geomBytes); err != nil {
		return nil, err
	}

	countBytes, err := mr.Header(5)
	if err != nil {
		return nil, err
	}
	engine := endian.Get()
	if len(countBytes) < 8 {
		return nil, errs.ErrShortFooter
	}
	r.blocks = int64(engine.Uint64(countBytes))

	rowBytes, err := mr.Header(6)
	if err != nil {
		return nil, err
	}
	if int64(len(rowBytes)) < 8*r.blocks {
		return nil, errs.ErrShortFooter
	}
	for b := int64(0); b < r.blocks; b++ {
		n := int64(engine.Uint64(rowBytes[b*8:]))
		r.rowCounts = append(r.rowCounts, n)
		r.totalRows += n
	}

	return r, nil
}

func (r *Reader) parseFixedHeader(data []byte) error {
	if len(data) < 24 {
		return errs.ErrShortFile
	}

	engine := endian.Get()
	magic := int64(engine.Uint64(data[0:8]))
	version := int64(engine.Uint64(data[8:16]))
	fileType := int64(engine.Uint64(data[16:24]))

	if magic != Magic {
		return errs.ErrBadMagic
	}
	if version != Version {
		return errs.ErrBadVersion
	}
	if fileType != FileTypeBasic {
		// Only the basic layout is produced by this writer; the boundary
		// layout (file_type=1) is reserved (spec §9).
		return errs.ErrSchemaMismatch
	}

	return nil
}

func (r *Reader) parseGeometry(data []byte) error {
	if len(data) < 16 {
		return errs.ErrShortFooter
	}

	engine := endian.Get()
	r.geometry.L = math.Float32frombits(engine.Uint32(data[0:4]))
	r.geometry.Boundary = math.Float32frombits(engine.Uint32(data[4:8]))
	r.geometry.Cells = int64(engine.Uint64(data[8:16]))

	return nil
}

// Columns returns the declared column names, in schema order.
func (r *Reader) Columns() []string { return r.names }

// Text returns the free-form text blob from header 1.
func (r *Reader) Text() string { return r.text }

// Geometry returns the periodic box geometry.
func (r *Reader) Geometry() Geometry { return r.geometry }

// IsBoundary reports whether this file carries boundary-padded geometry.
func (r *Reader) IsBoundary() bool { return r.geometry.IsBoundary() }

// Blocks returns the number of logical row-range blocks.
func (r *Reader) Blocks() int64 { return r.blocks }

// Len returns the total row count across all blocks.
func (r *Reader) Len() int64 { return r.totalRows }

// BlockLen returns the row count of logical block b.
func (r *Reader) BlockLen(b int64) (int64, error) {
	if b < 0 || b >= r.blocks {
		return 0, errs.ErrBlockNotFound
	}

	return r.rowCounts[b], nil
}

// Block fetches one column's data for logical row-block b, applying the
// 10^x post-transform if the column was declared with Log.
func (r *Reader) Block(b int64, name string) (minnow.Array, error) {
	c, ok := r.byName[name]
	if !ok {
		return minnow.Array{}, errs.ErrColumnNotFound
	}
	if b < 0 || b >= r.blocks {
		return minnow.Array{}, errs.ErrBlockNotFound
	}

	idx := b*int64(len(r.names)) + int64(c)

	a, err := r.mr.Data(idx)
	if err != nil {
		return minnow.Array{}, err
	}

	if r.cols[c].Log && a.Code == format.CodeFloat32 {
		out := make([]float32, len(a.F32))
		for i, v := range a.F32 {
			out[i] = float32(math.Pow(10, float64(v)))
		}
		a.F32 = out
	}

	return a, nil
}

// Read horizontally concatenates Block(b, name) over all blocks, in order.
func (r *Reader) Read(name string) (minnow.Array, error) {
	c, ok := r.byName[name]
	if !ok {
		return minnow.Array{}, errs.ErrColumnNotFound
	}

	col := r.cols[c]

	var result minnow.Array
	result.Code = col.Type
	if col.Type == format.CodeFloatGroup {
		result.Code = format.CodeFloat32
	} else if col.Type == format.CodeIntGroup {
		result.Code = format.CodeInt64
	}

	for b := int64(0); b < r.blocks; b++ {
		a, err := r.Block(b, name)
		if err != nil {
			return minnow.Array{}, err
		}

		switch result.Code {
		case format.CodeFloat32:
			result.F32 = append(result.F32, a.F32...)
		case format.CodeInt64:
			result.I64 = append(result.I64, a.I64...)
		case format.CodeInt32:
			result.I32 = append(result.I32, a.I32...)
		case format.CodeInt16:
			result.I16 = append(result.I16, a.I16...)
		case format.CodeInt8:
			result.I8 = append(result.I8, a.I8...)
		case format.CodeUint64:
			result.U64 = append(result.U64, a.U64...)
		case format.CodeUint32:
			result.U32 = append(result.U32, a.U32...)
		case format.CodeUint16:
			result.U16 = append(result.U16, a.U16...)
		case format.CodeUint8:
			result.U8 = append(result.U8, a.U8...)
		case format.CodeFloat64:
			result.F64 = append(result.F64, a.F64...)
		}
	}

	return result, nil
}

// Close closes the underlying minnow reader.
func (r *Reader) Close() error {
	if r.closed {
		return errs.ErrReaderClosed
	}
	r.closed = true

	return r.mr.Close()
}
