package spectrum

import (
	"fmt"
	"strings"

	"github.com/arloliu/mzml/compress"
	"github.com/arloliu/mzml/cv"
	"github.com/arloliu/mzml/encoding"
	"github.com/arloliu/mzml/endian"
	"github.com/arloliu/mzml/errs"
	"github.com/arloliu/mzml/format"
)

// BinaryArray is one <binaryDataArray>: base64 text plus the cvParams that
// declare its kind, precision and compression.
type BinaryArray struct {
	EncodedLength int       `xml:"encodedLength,attr"`
	ArrayLength   int       `xml:"arrayLength,attr"`
	Params        cv.Params `xml:"cvParam"`
	Text          string    `xml:"binary"`
}

// Encoding describes how a binary array was written.
type Encoding struct {
	Precision   format.Precision
	Compression format.CompressionType
}

// Kind returns the name of the cvParam ending in "array" (e.g. "m/z array"), or "" if none.
func (a *BinaryArray) Kind() string {
	for _, p := range a.Params {
		if strings.HasSuffix(p.Name, "array") {
			return p.Name
		}
	}

	return ""
}

// Is reports whether any cvParam name of the array contains kind.
func (a *BinaryArray) Is(kind string) bool {
	return a.Params.Contains(kind)
}

// Encoding inspects the cvParams for the precision and compression terms.
//
// Precision defaults to 64-bit float when neither float term is present.
// Integer and half-precision terms yield ErrUnsupportedPrecision, and
// MS-Numpress terms yield ErrUnsupportedCompression.
func (a *BinaryArray) Encoding() (Encoding, error) {
	enc := Encoding{
		Precision:   format.PrecisionFloat64,
		Compression: format.CompressionNone,
	}

	for _, p := range a.Params {
		name := p.Name
		switch {
		case strings.Contains(name, format.CVFloat32):
			enc.Precision = format.PrecisionFloat32
		case strings.Contains(name, format.CVFloat64):
			enc.Precision = format.PrecisionFloat64
		case strings.Contains(name, format.CVNumpress):
			return enc, fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, name)
		case strings.Contains(name, format.CVZlib):
			enc.Compression = format.CompressionZlib
		case strings.Contains(name, format.CVZstd):
			enc.Compression = format.CompressionZstd
		case strings.Contains(strings.ToLower(name), format.CVLZ4):
			enc.Compression = format.CompressionLZ4
		}

		for _, term := range format.UnsupportedPrecisionTerms {
			if strings.Contains(name, term) {
				return enc, fmt.Errorf("%w: %s", errs.ErrUnsupportedPrecision, name)
			}
		}
	}

	return enc, nil
}

// Decode returns the array's values as float64.
//
// Steps: base64 decode, decompress per the declared compression, then
// reinterpret as little-endian floats of the declared precision. Trailing
// bytes that do not form a complete value are dropped.
//
// Errors are wrapped in *errs.ArrayError naming the array kind and match
// ErrBase64Decode, ErrCompression, ErrUnsupportedCompression or
// ErrUnsupportedPrecision.
func (a *BinaryArray) Decode() ([]float64, error) {
	wrap := func(err error) error {
		return &errs.ArrayError{Kind: a.kindOrUnknown(), Err: err}
	}

	enc, err := a.Encoding()
	if err != nil {
		return nil, wrap(err)
	}

	raw, err := encoding.DecodeBase64(a.Text)
	if err != nil {
		return nil, wrap(err)
	}

	if enc.Compression != format.CompressionNone && len(raw) > 0 {
		raw, err = compress.Decompress(enc.Compression, raw)
		if err != nil {
			return nil, wrap(err)
		}
	}

	dec, err := encoding.NewFloatDecoder(endian.GetLittleEndianEngine(), enc.Precision)
	if err != nil {
		return nil, wrap(err)
	}
	values, _ := dec.Decode(raw)

	return values, nil
}

func (a *BinaryArray) kindOrUnknown() string {
	if k := a.Kind(); k != "" {
		return k
	}

	return "binary array"
}

// findArray returns the first array with a cvParam name containing kind.
func findArray(arrays []BinaryArray, kind string) (*BinaryArray, bool) {
	for i := range arrays {
		if arrays[i].Is(kind) {
			return &arrays[i], true
		}
	}

	return nil, false
}

// decodePair decodes the two arrays that make up a spectrum or chromatogram
// and checks that both have the declared length. A per-array arrayLength
// attribute overrides the element's defaultArrayLength.
func decodePair(arrays []BinaryArray, xKind, yKind string, declared int) ([]float64, []float64, error) {
	xa, ok := findArray(arrays, xKind)
	if !ok {
		return nil, nil, &errs.ArrayError{Kind: xKind, Err: errs.ErrMissingArray}
	}
	ya, ok := findArray(arrays, yKind)
	if !ok {
		return nil, nil, &errs.ArrayError{Kind: yKind, Err: errs.ErrMissingArray}
	}

	xs, err := xa.Decode()
	if err != nil {
		return nil, nil, err
	}
	ys, err := ya.Decode()
	if err != nil {
		return nil, nil, err
	}

	if len(xs) != len(ys) {
		return nil, nil, fmt.Errorf("%w: %s has %d values, %s has %d",
			errs.ErrArrayLengthMismatch, xKind, len(xs), yKind, len(ys))
	}
	if xa.ArrayLength > 0 {
		declared = xa.ArrayLength
	}
	if len(xs) != declared {
		return nil, nil, fmt.Errorf("%w: decoded %d values, declared length is %d",
			errs.ErrArrayLengthMismatch, len(xs), declared)
	}

	return xs, ys, nil
}
