// Package errs defines the sentinel errors returned by minnow and minh.
//
// Callers should use errors.Is to test for a specific sentinel; call sites
// wrap these with additional context via fmt.Errorf("%w: ...", errs.ErrX, ...).
package errs

import "errors"

// Open errors: the file (or the handle wrapping it) could not be opened at all.
var (
	ErrOpenFailed   = errors.New("minnow: open failed")
	ErrShortFile    = errors.New("minnow: file shorter than fixed header")
	ErrBadMagic     = errors.New("minnow: bad magic number")
	ErrBadVersion   = errors.New("minnow: unsupported version")
	ErrShortFooter  = errors.New("minnow: footer truncated")
	ErrCorruptGroup = errors.New("minnow: group tail record is corrupt")
)

// Index errors: a lookup by numeric index or column name is out of range.
var (
	ErrHeaderIndexOutOfRange = errors.New("minnow: header index out of range")
	ErrBlockIndexOutOfRange  = errors.New("minnow: block index out of range")
	ErrColumnNotFound        = errors.New("minh: column not found")
	ErrBlockNotFound         = errors.New("minh: block index out of range")
)

// Schema/writer state errors.
var (
	ErrNoGroupOpen       = errors.New("minnow: no group is open")
	ErrGroupClosed       = errors.New("minnow: current group is closed, open a new one")
	ErrGroupTypeMismatch = errors.New("minnow: data array type does not match open group")
	ErrBlockLengthMismatch = errors.New("minnow: data array length does not match group's fixed length")
	ErrSchemaMismatch    = errors.New("minh: column count or type does not match schema")
	ErrWriterClosed      = errors.New("minnow: writer already closed")
	ErrReaderClosed      = errors.New("minnow: reader already closed")
)

// Domain errors: values fall outside what a codec can represent losslessly
// (or, for float_group, within the declared domain).
var (
	ErrNonFiniteValue    = errors.New("minnow: non-finite value is not representable")
	ErrNonPositiveLog    = errors.New("minh: log column requires strictly positive values")
	ErrIntOverflow64     = errors.New("minnow: int_group range exceeds 64-bit precision")
	ErrInvalidQuantStep  = errors.New("minnow: float_group requires low < high and dx > 0")
)

// I/O errors.
var (
	ErrShortRead    = errors.New("minnow: short read")
	ErrShortWrite   = errors.New("minnow: short write")
	ErrSeekPastEOF  = errors.New("minnow: seek past end of file")
)
