package minnow

import (
	"math"

	"github.com/nbodycat/minnow/bitpack"
	"github.com/nbodycat/minnow/errs"
	"github.com/nbodycat/minnow/format"
	"github.com/nbodycat/minnow/internal/pool"
)

// floatGroup is the quantized-float codec (spec §4.3.3): values in
// [low, high) are mapped through a fixed-step grid of width dx onto
// bit-packed integers. It has no awareness of log-space transforms — that
// post/pre-processing is a minh-layer concern, applied to the array before
// it reaches Writer.Data and after Reader.Data returns (mirrors the
// original source's Writer.block, which log-transforms and clamps before
// ever calling into the numeric container).
type floatGroup struct {
	start int64
	count int64

	n    int64
	low  float32
	high float32
	dx   float32

	nbins int64
	width int

	payloads []int64
}

var _ group = (*floatGroup)(nil)

func newFloatGroup(start, n int64, low, high, dx float32) (*floatGroup, error) {
	if !(low < high) || !(dx > 0) {
		return nil, errs.ErrInvalidQuantStep
	}

	nbins := int64(math.Ceil(float64(high-low) / float64(dx)))
	w := bitpack.PrecisionNeeded(uint64(nbins - 1))

	return &floatGroup{start: start, n: n, low: low, high: high, dx: dx, nbins: nbins, width: w}, nil
}

func (g *floatGroup) code() format.Code { return format.CodeFloatGroup }
func (g *floatGroup) startBlock() int64 { return g.start }
func (g *floatGroup) blockCount() int64 { return g.count }

func (g *floatGroup) recordSize(localIdx int) int64 {
	return g.payloads[localIdx]
}

func (g *floatGroup) blockByteOffset(localIdx int) int64 {
	var off int64
	for i := 0; i < localIdx; i++ {
		off += g.recordSize(i)
	}

	return off
}

func (g *floatGroup) blockByteLength(localIdx int) int64 {
	return g.recordSize(localIdx)
}

func (g *floatGroup) writeBlock(a Array) ([]byte, error) {
	if a.Code != format.CodeFloat32 {
		return nil, errs.ErrGroupTypeMismatch
	}
	if int64(len(a.F32)) != g.n {
		return nil, errs.ErrBlockLengthMismatch
	}

	bins := make([]uint64, len(a.F32))
	for i, v := range a.F32 {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return nil, errs.ErrNonFiniteValue
		}

		cv := v
		if cv >= g.high {
			cv = math.Nextafter32(g.high, float32(math.Inf(-1)))
		}
		if cv < g.low {
			cv = g.low
		}

		bin := int64((cv - g.low) / g.dx)
		if bin < 0 {
			bin = 0
		}
		if bin > g.nbins-1 {
			bin = g.nbins - 1
		}

		bins[i] = uint64(bin)
	}

	packed := bitpack.Pack(g.width, bins)

	bb := pool.GetBlockBuffer()
	defer pool.PutBlockBuffer(bb)
	bb.ExtendOrGrow(len(packed))
	copy(bb.Bytes(), packed)

	record := make([]byte, len(packed))
	copy(record, bb.Bytes())

	g.payloads = append(g.payloads, int64(len(packed)))
	g.count++

	return record, nil
}

func (g *floatGroup) readBlock(record []byte, localIdx int) (Array, error) {
	bins := bitpack.Unpack(record, g.width, int(g.n))

	xs := make([]float32, len(bins))
	for i, b := range bins {
		xs[i] = g.low + (float32(b)+0.5)*g.dx
	}

	return ArrayF32(xs), nil
}

// tailBytes writes (start_block, block_count, low, high, dx, N) then
// block_count repetitions of (payload_bytes i64).
func (g *floatGroup) tailBytes() []byte {
	engine := endianEngine()
	b := make([]byte, 40+8*len(g.payloads))

	engine.PutUint64(b[0:8], uint64(g.start))
	engine.PutUint64(b[8:16], uint64(g.count))
	engine.PutUint32(b[16:20], math.Float32bits(g.low))
	engine.PutUint32(b[20:24], math.Float32bits(g.high))
	engine.PutUint32(b[24:28], math.Float32bits(g.dx))
	engine.PutUint64(b[32:40], uint64(g.n))

	off := 40
	for _, p := range g.payloads {
		engine.PutUint64(b[off:off+8], uint64(p))
		off += 8
	}

	return b
}

// parseFloatGroupTail reconstructs a floatGroup from its footer tail record.
func parseFloatGroupTail(data []byte) (*floatGroup, int, error) {
	if len(data) < 40 {
		return nil, 0, errs.ErrShortFooter
	}

	engine := endianEngine()
	g := &floatGroup{}
	g.start = int64(engine.Uint64(data[0:8]))
	g.count = int64(engine.Uint64(data[8:16]))
	g.low = math.Float32frombits(engine.Uint32(data[16:20]))
	g.high = math.Float32frombits(engine.Uint32(data[20:24]))
	g.dx = math.Float32frombits(engine.Uint32(data[24:28]))
	g.n = int64(engine.Uint64(data[32:40]))

	if !(g.low < g.high) || !(g.dx > 0) || g.count < 0 || g.n < 0 {
		return nil, 0, errs.ErrCorruptGroup
	}

	g.nbins = int64(math.Ceil(float64(g.high-g.low) / float64(g.dx)))
	g.width = bitpack.PrecisionNeeded(uint64(g.nbins - 1))

	off := 40
	for i := int64(0); i < g.count; i++ {
		if off+8 > len(data) {
			return nil, 0, errs.ErrShortFooter
		}
		g.payloads = append(g.payloads, int64(engine.Uint64(data[off:off+8])))
		off += 8
	}

	return g, off, nil
}
