// Package format defines the small value types shared across minnow and minh:
// the primitive/codec type codes stamped into block and column headers, and
// the compression tags used for header blobs.
package format

// Code identifies the element type or codec of a group. Codes 0..9 are
// fixed-width primitive types in declaration order; 10 and 11 are the
// variable-width codecs layered on top of them.
type Code uint8

const (
	CodeInt64   Code = 0
	CodeInt32   Code = 1
	CodeInt16   Code = 2
	CodeInt8    Code = 3
	CodeUint64  Code = 4
	CodeUint32  Code = 5
	CodeUint16  Code = 6
	CodeUint8   Code = 7
	CodeFloat64 Code = 8
	CodeFloat32 Code = 9

	CodeIntGroup   Code = 10
	CodeFloatGroup Code = 11
)

func (c Code) String() string {
	switch c {
	case CodeInt64:
		return "i64"
	case CodeInt32:
		return "i32"
	case CodeInt16:
		return "i16"
	case CodeInt8:
		return "i8"
	case CodeUint64:
		return "u64"
	case CodeUint32:
		return "u32"
	case CodeUint16:
		return "u16"
	case CodeUint8:
		return "u8"
	case CodeFloat64:
		return "f64"
	case CodeFloat32:
		return "f32"
	case CodeIntGroup:
		return "int_group"
	case CodeFloatGroup:
		return "float_group"
	default:
		return "unknown"
	}
}

// IsFixed reports whether c is one of the ten fixed-width primitive types,
// as opposed to a variable-width codec.
func (c Code) IsFixed() bool {
	return c <= CodeFloat32
}

// ElemSize returns the on-disk size in bytes of one element of a fixed-width
// type. It panics if c is not a fixed type.
func (c Code) ElemSize() int {
	switch c {
	case CodeInt64, CodeUint64, CodeFloat64:
		return 8
	case CodeInt32, CodeUint32, CodeFloat32:
		return 4
	case CodeInt16, CodeUint16:
		return 2
	case CodeInt8, CodeUint8:
		return 1
	default:
		panic("format: ElemSize called on a non-fixed code")
	}
}

// CompressionType selects the codec applied to a minnow header blob.
type CompressionType uint8

const (
	CompressionNone CompressionType = 0
	CompressionZstd CompressionType = 1
	CompressionS2   CompressionType = 2
	CompressionLZ4  CompressionType = 3
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
