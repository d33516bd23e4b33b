package minnow

import "github.com/nbodycat/minnow/format"

// Array is a tagged variant holding one block's worth of homogeneous
// numeric data. Only the field matching Code is populated. This is the
// user-facing shape; internally, codecs work with the field directly or
// with raw bytes, never with runtime type assertions (spec Design Notes:
// "choose raw bytes + type_code at the codec boundary, the tagged variant
// at the user API").
type Array struct {
	Code format.Code

	I64 []int64
	I32 []int32
	I16 []int16
	I8  []int8
	U64 []uint64
	U32 []uint32
	U16 []uint16
	U8  []uint8
	F64 []float64
	F32 []float32
}

func ArrayI64(xs []int64) Array { return Array{Code: format.CodeInt64, I64: xs} }
func ArrayI32(xs []int32) Array { return Array{Code: format.CodeInt32, I32: xs} }
func ArrayI16(xs []int16) Array { return Array{Code: format.CodeInt16, I16: xs} }
func ArrayI8(xs []int8) Array   { return Array{Code: format.CodeInt8, I8: xs} }
func ArrayU64(xs []uint64) Array { return Array{Code: format.CodeUint64, U64: xs} }
func ArrayU32(xs []uint32) Array { return Array{Code: format.CodeUint32, U32: xs} }
func ArrayU16(xs []uint16) Array { return Array{Code: format.CodeUint16, U16: xs} }
func ArrayU8(xs []uint8) Array   { return Array{Code: format.CodeUint8, U8: xs} }
func ArrayF64(xs []float64) Array { return Array{Code: format.CodeFloat64, F64: xs} }
func ArrayF32(xs []float32) Array { return Array{Code: format.CodeFloat32, F32: xs} }

// Len returns the element count of the populated field.
func (a Array) Len() int {
	switch a.Code {
	case format.CodeInt64:
		return len(a.I64)
	case format.CodeInt32:
		return len(a.I32)
	case format.CodeInt16:
		return len(a.I16)
	case format.CodeInt8:
		return len(a.I8)
	case format.CodeUint64:
		return len(a.U64)
	case format.CodeUint32:
		return len(a.U32)
	case format.CodeUint16:
		return len(a.U16)
	case format.CodeUint8:
		return len(a.U8)
	case format.CodeFloat64:
		return len(a.F64)
	case format.CodeFloat32:
		return len(a.F32)
	default:
		return 0
	}
}

// AsI64 widens any fixed-width integer array to []int64, the common form
// used by the int_group codec. Panics if a is not an integer array.
func (a Array) AsI64() []int64 {
	switch a.Code {
	case format.CodeInt64:
		return a.I64
	case format.CodeInt32:
		out := make([]int64, len(a.I32))
		for i, v := range a.I32 {
			out[i] = int64(v)
		}
		return out
	case format.CodeInt16:
		out := make([]int64, len(a.I16))
		for i, v := range a.I16 {
			out[i] = int64(v)
		}
		return out
	case format.CodeInt8:
		out := make([]int64, len(a.I8))
		for i, v := range a.I8 {
			out[i] = int64(v)
		}
		return out
	case format.CodeUint64:
		out := make([]int64, len(a.U64))
		for i, v := range a.U64 {
			out[i] = int64(v)
		}
		return out
	case format.CodeUint32:
		out := make([]int64, len(a.U32))
		for i, v := range a.U32 {
			out[i] = int64(v)
		}
		return out
	case format.CodeUint16:
		out := make([]int64, len(a.U16))
		for i, v := range a.U16 {
			out[i] = int64(v)
		}
		return out
	case format.CodeUint8:
		out := make([]int64, len(a.U8))
		for i, v := range a.U8 {
			out[i] = int64(v)
		}
		return out
	default:
		panic("minnow: AsI64 called on a non-integer array")
	}
}
