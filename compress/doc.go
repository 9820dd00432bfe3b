// Package compress provides the decompression codecs for mzML binary data arrays.
//
// An mzML <binaryDataArray> declares its compression through a cvParam. After
// base64 decoding, the payload is handed to the Decompressor matching that
// declaration and the result is reinterpreted as floats by the encoding
// package.
//
// # Supported Algorithms
//
//   - None (format.CompressionNone): "no compression", or no compression term
//   - Zlib (format.CompressionZlib): "zlib compression", the standard mzML scheme
//   - Zstd (format.CompressionZstd): terms containing "zstd"
//   - LZ4 (format.CompressionLZ4): terms containing "lz4", single LZ4 block
//
// MS-Numpress encodings are not codecs in this sense (they replace the float
// reinterpretation step) and are rejected by the caller with
// errs.ErrUnsupportedCompression.
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZlib)
//	if err != nil {
//	    return err
//	}
//	raw, err := codec.Decompress(payload)
//	if err != nil {
//	    return fmt.Errorf("decompression failed: %w", err)
//	}
//
// # Build Tags
//
// Zstd decompression uses github.com/klauspost/compress/zstd by default.
// Building with -tags gozstd (and cgo enabled) switches to the libzstd binding
// github.com/valyala/gozstd.
//
// # Thread Safety
//
// All codec implementations are stateless values backed by sync.Pool and can be
// shared across goroutines.
package compress
