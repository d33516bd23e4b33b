// Package minh implements the columnar table schema layered on minnow:
// named, typed columns split into row-range blocks, with optional lossy
// quantization of floating-point columns and a periodic 3-D spatial box
// geometry (spec §4.4).
package minh

import (
	"math"

	"github.com/nbodycat/minnow/endian"
	"github.com/nbodycat/minnow/errs"
	"github.com/nbodycat/minnow/format"
)

// ColumnDescriptorSize is the fixed on-disk size of one column descriptor
// record. The in-memory struct is far smaller; the 256-byte shape is kept
// to preserve format compatibility even as fields are added (spec Design
// Notes: "keep the 256-byte record shape on disk even if the in-memory
// struct is smaller").
const ColumnDescriptorSize = 256

// ColumnDescriptor describes one column's storage codec and, for float_group
// columns, its quantization domain. low/high/dx are ignored for fixed-size
// and int_group columns.
type ColumnDescriptor struct {
	Type format.Code
	Log  bool
	Low  float32
	High float32
	Dx   float32
}

// Bytes serializes the descriptor into a fresh 256-byte record: 24 bytes of
// (type, log, low, high, dx) followed by zeroed padding.
func (c ColumnDescriptor) Bytes() []byte {
	b := make([]byte, ColumnDescriptorSize)
	engine := endian.Get()

	engine.PutUint64(b[0:8], uint64(c.Type))

	logVal := uint32(0)
	if c.Log {
		logVal = 1
	}
	engine.PutUint32(b[8:12], logVal)
	engine.PutUint32(b[12:16], math.Float32bits(c.Low))
	engine.PutUint32(b[16:20], math.Float32bits(c.High))
	engine.PutUint32(b[20:24], math.Float32bits(c.Dx))

	return b
}

// ParseColumnDescriptor reads a ColumnDescriptor from an exactly
// ColumnDescriptorSize-byte record, ignoring the reserved padding.
func ParseColumnDescriptor(data []byte) (ColumnDescriptor, error) {
	if len(data) != ColumnDescriptorSize {
		return ColumnDescriptor{}, errs.ErrShortFooter
	}

	engine := endian.Get()

	var c ColumnDescriptor
	c.Type = format.Code(engine.Uint64(data[0:8]))
	c.Log = engine.Uint32(data[8:12]) != 0
	c.Low = math.Float32frombits(engine.Uint32(data[12:16]))
	c.High = math.Float32frombits(engine.Uint32(data[16:20]))
	c.Dx = math.Float32frombits(engine.Uint32(data[20:24]))

	return c, nil
}

// validate checks the low<high, dx>0 invariant required of float_group
// columns (spec §3, "Minh column descriptor").
func (c ColumnDescriptor) validate() error {
	if c.Type != format.CodeFloatGroup {
		return nil
	}
	if !(c.Low < c.High) || !(c.Dx > 0) {
		return errs.ErrInvalidQuantStep
	}

	return nil
}
