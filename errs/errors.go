// Package errs defines the error values returned by the mzml packages.
//
// Every failure is reported through one of the sentinel errors below so that
// callers can branch with errors.Is. Failures that concern a specific element
// or binary array are additionally wrapped in ElementError or ArrayError,
// which carry the id, byte offset or array kind needed to localize the problem
// without re-reading the file.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat is returned when the envelope or an extracted fragment is not well-formed.
	ErrFormat = errors.New("malformed mzML")
	// ErrIndexMissing is returned when an indexed file lacks its spectrum index.
	ErrIndexMissing = errors.New("index missing")
	// ErrNotIndexed is returned for random access on a file without an offset index.
	ErrNotIndexed = errors.New("file is not indexed")
	// ErrUnknownID is returned when an id is absent from the offset table.
	ErrUnknownID = errors.New("unknown id")
	// ErrBoundaryNotFound is returned when an element's closing tag is not found before the read ceiling or EOF.
	ErrBoundaryNotFound = errors.New("element boundary not found")
	// ErrBase64Decode is returned when a binary array is not valid standard base64.
	ErrBase64Decode = errors.New("invalid base64 payload")
	// ErrCompression is returned when a compressed binary array cannot be inflated.
	ErrCompression = errors.New("decompression failed")
	// ErrUnsupportedCompression is returned for compression schemes without a codec.
	ErrUnsupportedCompression = errors.New("unsupported compression")
	// ErrUnsupportedPrecision is returned for binary data types other than 32/64-bit floats.
	ErrUnsupportedPrecision = errors.New("unsupported precision")
	// ErrMissingArray is returned when a required binary array is absent.
	ErrMissingArray = errors.New("binary array missing")
	// ErrArrayLengthMismatch is returned when paired arrays decode to different lengths.
	ErrArrayLengthMismatch = errors.New("array length mismatch")
	// ErrInvalidOption is returned by option constructors given out-of-range values.
	ErrInvalidOption = errors.New("invalid option")
	// ErrClosed is returned by operations on a closed store.
	ErrClosed = errors.New("store is closed")
)

// ElementError locates a failure to a single spectrum or chromatogram element.
type ElementError struct {
	Element string // "spectrum" or "chromatogram"
	ID      string
	Offset  int64 // byte offset of the element, -1 when unknown
	Err     error
}

func (e *ElementError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("%s %q: %v", e.Element, e.ID, e.Err)
	}

	return fmt.Sprintf("%s %q at offset %d: %v", e.Element, e.ID, e.Offset, e.Err)
}

func (e *ElementError) Unwrap() error { return e.Err }

// ArrayError locates a failure to one binary array of an element.
type ArrayError struct {
	Kind string // e.g. "m/z array"
	Err  error
}

func (e *ArrayError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *ArrayError) Unwrap() error { return e.Err }
