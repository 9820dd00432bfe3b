package encoding

import (
	"fmt"
	"iter"
	"math"

	"github.com/arloliu/mzml/endian"
	"github.com/arloliu/mzml/errs"
	"github.com/arloliu/mzml/format"
)

// FloatDecoder reinterprets a byte payload as contiguous IEEE-754 floats.
//
// 32-bit values are widened to float64 so callers always receive a uniform
// output type. The decoder is immutable and stateless; it is returned by value
// and may be shared between goroutines.
type FloatDecoder struct {
	engine    endian.EndianEngine
	precision format.Precision
	width     int
}

// NewFloatDecoder creates a decoder for the given byte order and precision.
//
// Parameters:
//   - engine: Endian engine for byte order (mzML is always little-endian)
//   - precision: Width of each encoded value
//
// Returns:
//   - FloatDecoder: A new decoder instance
//   - error: ErrUnsupportedPrecision if precision is not a float width
func NewFloatDecoder(engine endian.EndianEngine, precision format.Precision) (FloatDecoder, error) {
	width := precision.Width()
	if width == 0 {
		return FloatDecoder{}, fmt.Errorf("%w: %s", errs.ErrUnsupportedPrecision, precision)
	}

	return FloatDecoder{engine: engine, precision: precision, width: width}, nil
}

// Count returns the number of complete values in data.
func (d FloatDecoder) Count(data []byte) int {
	return len(data) / d.width
}

// Trailing returns the number of bytes at the end of data that do not form a complete value.
func (d FloatDecoder) Trailing(data []byte) int {
	return len(data) % d.width
}

// All returns an iterator over every complete value in data.
// Trailing bytes that do not form a complete value are not yielded.
func (d FloatDecoder) All(data []byte) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		count := d.Count(data)
		for i := range count {
			if !yield(d.at(data, i)) {
				return
			}
		}
	}
}

// At returns the value at index, or false when index is out of range.
func (d FloatDecoder) At(data []byte, index int) (float64, bool) {
	if index < 0 || index >= d.Count(data) {
		return 0, false
	}

	return d.at(data, index), true
}

// Decode returns every complete value in data as a new slice.
//
// Returns:
//   - []float64: Decoded values (len = len(data) / width)
//   - int: Number of trailing bytes dropped
func (d FloatDecoder) Decode(data []byte) ([]float64, int) {
	count := d.Count(data)
	out := make([]float64, count)
	for i := range count {
		out[i] = d.at(data, i)
	}

	return out, d.Trailing(data)
}

func (d FloatDecoder) at(data []byte, i int) float64 {
	start := i * d.width
	if d.width == 4 {
		return float64(math.Float32frombits(d.engine.Uint32(data[start : start+4])))
	}

	return math.Float64frombits(d.engine.Uint64(data[start : start+8]))
}

// AppendFloats appends values to dst in the given precision and byte order.
// It is the inverse of FloatDecoder.Decode and is used to build fixtures.
func AppendFloats(dst []byte, engine endian.EndianEngine, precision format.Precision, values []float64) []byte {
	for _, v := range values {
		if precision == format.PrecisionFloat32 {
			dst = engine.AppendUint32(dst, math.Float32bits(float32(v)))
			continue
		}
		dst = engine.AppendUint64(dst, math.Float64bits(v))
	}

	return dst
}
