package compress

// ZstdCompressor handles Zstandard-compressed binary arrays.
//
// Zstandard is not part of the original mzML compression vocabulary, but
// some writers emit it for large profile-mode arrays and tag the array with a
// term containing "zstd". Decompression uses pooled decoders; see
// zstd_pure.go, or zstd_cgo.go when built with the gozstd tag.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Example:
//
//	codec := NewZstdCompressor()
//	raw, err := codec.Decompress(payload)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
