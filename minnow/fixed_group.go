package minnow

import (
	"math"

	"github.com/nbodycat/minnow/errs"
	"github.com/nbodycat/minnow/format"
	"github.com/nbodycat/minnow/internal/pool"
)

// fixedSizeGroup is the raw little-endian codec: every block has the same
// element count N and type, and block offsets are a simple arithmetic
// progression (spec §4.3.1).
type fixedSizeGroup struct {
	typeCode format.Code
	n        int64 // elements per block
	start    int64
	count    int64
}

var _ group = (*fixedSizeGroup)(nil)

func newFixedSizeGroup(typeCode format.Code, n, start int64) *fixedSizeGroup {
	return &fixedSizeGroup{typeCode: typeCode, n: n, start: start}
}

func (g *fixedSizeGroup) code() format.Code   { return g.typeCode }
func (g *fixedSizeGroup) startBlock() int64   { return g.start }
func (g *fixedSizeGroup) blockCount() int64   { return g.count }
func (g *fixedSizeGroup) blockBytes() int64   { return g.n * int64(g.typeCode.ElemSize()) }

func (g *fixedSizeGroup) blockByteOffset(localIdx int) int64 {
	return int64(localIdx) * g.blockBytes()
}

func (g *fixedSizeGroup) blockByteLength(localIdx int) int64 {
	return g.blockBytes()
}

func (g *fixedSizeGroup) writeBlock(a Array) ([]byte, error) {
	if a.Code != g.typeCode {
		return nil, errs.ErrGroupTypeMismatch
	}
	if int64(a.Len()) != g.n {
		return nil, errs.ErrBlockLengthMismatch
	}

	engine := endianEngine()

	bb := pool.GetBlockBuffer()
	defer pool.PutBlockBuffer(bb)
	bb.ExtendOrGrow(int(g.blockBytes()))
	out := bb.Bytes()

	switch g.typeCode {
	case format.CodeInt64:
		for i, v := range a.I64 {
			engine.PutUint64(out[i*8:], uint64(v))
		}
	case format.CodeUint64:
		for i, v := range a.U64 {
			engine.PutUint64(out[i*8:], v)
		}
	case format.CodeFloat64:
		for i, v := range a.F64 {
			engine.PutUint64(out[i*8:], math.Float64bits(v))
		}
	case format.CodeInt32:
		for i, v := range a.I32 {
			engine.PutUint32(out[i*4:], uint32(v))
		}
	case format.CodeUint32:
		for i, v := range a.U32 {
			engine.PutUint32(out[i*4:], v)
		}
	case format.CodeFloat32:
		for i, v := range a.F32 {
			engine.PutUint32(out[i*4:], math.Float32bits(v))
		}
	case format.CodeInt16:
		for i, v := range a.I16 {
			engine.PutUint16(out[i*2:], uint16(v))
		}
	case format.CodeUint16:
		for i, v := range a.U16 {
			engine.PutUint16(out[i*2:], v)
		}
	case format.CodeInt8:
		for i, v := range a.I8 {
			out[i] = byte(v)
		}
	case format.CodeUint8:
		copy(out, a.U8)
	default:
		return nil, errs.ErrGroupTypeMismatch
	}

	g.count++

	record := make([]byte, len(out))
	copy(record, out)

	return record, nil
}

func (g *fixedSizeGroup) readBlock(record []byte, localIdx int) (Array, error) {
	engine := endianEngine()
	n := int(g.n)

	switch g.typeCode {
	case format.CodeInt64:
		xs := make([]int64, n)
		for i := range xs {
			xs[i] = int64(engine.Uint64(record[i*8:]))
		}
		return ArrayI64(xs), nil
	case format.CodeUint64:
		xs := make([]uint64, n)
		for i := range xs {
			xs[i] = engine.Uint64(record[i*8:])
		}
		return ArrayU64(xs), nil
	case format.CodeFloat64:
		xs := make([]float64, n)
		for i := range xs {
			xs[i] = math.Float64frombits(engine.Uint64(record[i*8:]))
		}
		return ArrayF64(xs), nil
	case format.CodeInt32:
		xs := make([]int32, n)
		for i := range xs {
			xs[i] = int32(engine.Uint32(record[i*4:]))
		}
		return ArrayI32(xs), nil
	case format.CodeUint32:
		xs := make([]uint32, n)
		for i := range xs {
			xs[i] = engine.Uint32(record[i*4:])
		}
		return ArrayU32(xs), nil
	case format.CodeFloat32:
		xs := make([]float32, n)
		for i := range xs {
			xs[i] = math.Float32frombits(engine.Uint32(record[i*4:]))
		}
		return ArrayF32(xs), nil
	case format.CodeInt16:
		xs := make([]int16, n)
		for i := range xs {
			xs[i] = int16(engine.Uint16(record[i*2:]))
		}
		return ArrayI16(xs), nil
	case format.CodeUint16:
		xs := make([]uint16, n)
		for i := range xs {
			xs[i] = engine.Uint16(record[i*2:])
		}
		return ArrayU16(xs), nil
	case format.CodeInt8:
		xs := make([]int8, n)
		for i := range xs {
			xs[i] = int8(record[i])
		}
		return ArrayI8(xs), nil
	case format.CodeUint8:
		xs := make([]uint8, n)
		copy(xs, record)
		return ArrayU8(xs), nil
	default:
		return Array{}, errs.ErrGroupTypeMismatch
	}
}

// tailBytes writes (N i64, start_block i64, block_count i64), 24 bytes.
func (g *fixedSizeGroup) tailBytes() []byte {
	b := make([]byte, 24)
	engine := endianEngine()
	engine.PutUint64(b[0:8], uint64(g.n))
	engine.PutUint64(b[8:16], uint64(g.start))
	engine.PutUint64(b[16:24], uint64(g.count))

	return b
}

// parseFixedSizeGroupTail reconstructs a fixedSizeGroup from its 24-byte
// footer tail record, for reading.
func parseFixedSizeGroupTail(typeCode format.Code, data []byte) (*fixedSizeGroup, error) {
	if !typeCode.IsFixed() {
		return nil, errs.ErrCorruptGroup
	}
	if len(data) < 24 {
		return nil, errs.ErrShortFooter
	}

	engine := endianEngine()
	g := &fixedSizeGroup{typeCode: typeCode}
	g.n = int64(engine.Uint64(data[0:8]))
	g.start = int64(engine.Uint64(data[8:16]))
	g.count = int64(engine.Uint64(data[16:24]))

	if g.n < 0 || g.start < 0 || g.count < 0 {
		return nil, errs.ErrCorruptGroup
	}

	return g, nil
}
