package compress

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/arloliu/mzml/errs"
	"github.com/klauspost/compress/zlib"
)

// zlibReaderPool pools zlib readers. A pooled reader is re-targeted with
// zlib.Resetter instead of allocating a new inflater per array.
var zlibReaderPool sync.Pool

// zlibWriterPool pools zlib writers used to build compressed fixtures.
var zlibWriterPool = sync.Pool{
	New: func() any {
		return zlib.NewWriter(nil)
	},
}

// ZlibCompressor handles zlib-wrapped DEFLATE, the compression mzML writers
// declare with the "zlib compression" term.
type ZlibCompressor struct{}

var _ Codec = (*ZlibCompressor)(nil)

// NewZlibCompressor creates a new zlib compressor.
func NewZlibCompressor() ZlibCompressor {
	return ZlibCompressor{}
}

// Compress compresses the input data into a zlib stream.
func (c ZlibCompressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	w, _ := zlibWriterPool.Get().(*zlib.Writer)
	defer zlibWriterPool.Put(w)
	w.Reset(&buf)

	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("zlib compression failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("zlib compression failed: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress inflates a zlib stream.
//
// A truncated stream, a bad header or a checksum mismatch is reported as an
// error wrapping errs.ErrCompression.
func (c ZlibCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty zlib stream", errs.ErrCompression)
	}

	src := bytes.NewReader(data)

	var r io.ReadCloser
	if pooled, ok := zlibReaderPool.Get().(io.ReadCloser); ok {
		if err := pooled.(zlib.Resetter).Reset(src, nil); err != nil {
			return nil, fmt.Errorf("%w: zlib: %w", errs.ErrCompression, err)
		}
		r = pooled
	} else {
		fresh, err := zlib.NewReader(src)
		if err != nil {
			return nil, fmt.Errorf("%w: zlib: %w", errs.ErrCompression, err)
		}
		r = fresh
	}

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: zlib: %w", errs.ErrCompression, err)
	}
	if err := r.Close(); err != nil {
		return nil, fmt.Errorf("%w: zlib: %w", errs.ErrCompression, err)
	}
	zlibReaderPool.Put(r)

	return out, nil
}
