package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/mzml/errs"
	"github.com/arloliu/mzml/internal/pool"
)

const (
	// DefaultChunkSize is the size of each positioned read.
	DefaultChunkSize = 8 * 1024
	// DefaultMaxElementBytes bounds how far past the offset the extractor reads.
	DefaultMaxElementBytes = 64 * 1024 * 1024
)

// Extractor retrieves one complete XML element that starts at a known byte offset.
//
// It holds no file state; Extract may be called concurrently with the same or
// different readers.
type Extractor struct {
	chunkSize int
	maxBytes  int64
}

// New creates an Extractor reading chunkSize bytes per step and at most
// maxBytes bytes per element.
func New(chunkSize int, maxBytes int64) (Extractor, error) {
	if chunkSize <= 0 {
		return Extractor{}, fmt.Errorf("%w: chunk size must be positive, got %d", errs.ErrInvalidOption, chunkSize)
	}
	if maxBytes <= 0 {
		return Extractor{}, fmt.Errorf("%w: max element bytes must be positive, got %d", errs.ErrInvalidOption, maxBytes)
	}

	return Extractor{chunkSize: chunkSize, maxBytes: maxBytes}, nil
}

// Default returns an Extractor with DefaultChunkSize and DefaultMaxElementBytes.
func Default() Extractor {
	return Extractor{chunkSize: DefaultChunkSize, maxBytes: DefaultMaxElementBytes}
}

// ChunkSize returns the read step.
func (e Extractor) ChunkSize() int { return e.chunkSize }

// MaxBytes returns the per-element read ceiling.
func (e Extractor) MaxBytes() int64 { return e.maxBytes }

// Extract returns the bytes of the element named element starting at offset,
// up to and including its closing tag.
//
// limit, when positive, is an absolute offset the element cannot extend past
// (typically the next element's offset or the file size); it tightens the
// ceiling of MaxBytes. The returned slice is owned by the caller.
//
// Errors:
//   - errs.ErrBoundaryNotFound when the closing tag is not found before the
//     ceiling or end of input
//   - errs.ErrFormat when the bytes at offset do not open the element
func (e Extractor) Extract(r io.ReaderAt, offset, limit int64, element string) ([]byte, error) {
	if offset < 0 {
		return nil, fmt.Errorf("%w: negative offset %d", errs.ErrFormat, offset)
	}

	ceiling := e.maxBytes
	if limit > 0 {
		if limit <= offset {
			return nil, fmt.Errorf("%w: limit %d not after offset %d", errs.ErrBoundaryNotFound, limit, offset)
		}
		ceiling = min(ceiling, limit-offset)
	}

	opening := "<" + element
	marker := []byte("</" + element + ">")

	buf := pool.GetElementBuffer()
	defer pool.PutElementBuffer(buf)

	var total int64
	checked := false
	for total < ceiling {
		want := int(min(int64(e.chunkSize), ceiling-total))
		prev := buf.Len()

		n, err := buf.AppendReadAt(r, offset+total, want)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read at %d: %w", offset+total, err)
		}
		total += int64(n)

		if !checked {
			if err := checkOpening(buf.Bytes(), opening); err != nil {
				return nil, err
			}
			checked = buf.Len() > len(opening)
		}

		// The marker may straddle the previous chunk, so the window starts
		// len(marker)-1 bytes before the new data.
		windowStart := max(prev-len(marker)+1, 0)
		if i := bytes.Index(buf.B[windowStart:], marker); i >= 0 {
			end := windowStart + i + len(marker)
			out := make([]byte, end)
			copy(out, buf.B[:end])

			return out, nil
		}

		if n == 0 || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: end of input after %d bytes looking for %s", errs.ErrBoundaryNotFound, total, marker)
		}
	}

	return nil, fmt.Errorf("%w: %s not found within %d bytes", errs.ErrBoundaryNotFound, marker, ceiling)
}

// checkOpening verifies the buffer starts with the opening tag. It only
// rejects once enough bytes are present to decide.
func checkOpening(b []byte, opening string) error {
	if len(b) < len(opening) {
		if !bytes.HasPrefix([]byte(opening), b) {
			return fmt.Errorf("%w: offset does not point at %s>", errs.ErrFormat, opening)
		}

		return nil
	}
	if !bytes.HasPrefix(b, []byte(opening)) {
		return fmt.Errorf("%w: offset does not point at %s> (found %q)", errs.ErrFormat, opening, preview(b))
	}
	// "<spectrumList" also starts with "<spectrum".
	if len(b) > len(opening) {
		switch b[len(opening)] {
		case ' ', '\t', '\n', '\r', '>', '/':
		default:
			return fmt.Errorf("%w: offset does not point at %s> (found %q)", errs.ErrFormat, opening, preview(b))
		}
	}

	return nil
}

func preview(b []byte) []byte {
	const n = 32
	if len(b) > n {
		return b[:n]
	}

	return b
}
