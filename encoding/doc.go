// Package encoding decodes the payload of mzML binary data arrays.
//
// A <binary> element holds base64 text. After base64 decoding (DecodeBase64)
// and optional decompression (see the compress package), the bytes are a
// contiguous run of little-endian IEEE-754 floats that FloatDecoder
// reinterprets as []float64:
//
//	raw, err := encoding.DecodeBase64(text)
//	if err != nil {
//	    return err
//	}
//	dec, err := encoding.NewFloatDecoder(endian.GetLittleEndianEngine(), format.PrecisionFloat32)
//	if err != nil {
//	    return err
//	}
//	values, trailing := dec.Decode(raw)
//
// Trailing bytes that do not form a complete value are dropped and reported
// as a count; producers always write an exact multiple of the value width, so
// a non-zero count indicates a damaged array rather than a decode error.
package encoding
