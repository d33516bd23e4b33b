package compress

import "github.com/klauspost/compress/s2"

// S2 compresses header blobs with Snappy-compatible S2 compression.
type S2 struct{}

var _ Codec = S2{}

// NewS2 creates an S2 header-blob codec.
func NewS2() S2 { return S2{} }

func (c S2) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

func (c S2) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Decode(nil, data)
}
