// Package spectrum models mzML spectra at two levels of detail.
//
// Metadata carries what the envelope parse yields without touching binary
// data: index, native id, declared peak count, cvParams, precursors and
// acquisition entries. Scan embeds Metadata and adds the binary data arrays
// of a spectrum fetched from disk.
//
// Both satisfy MassScan (retention time, MS level, cvParam lookup); only Scan
// satisfies MassSpectrumData (Peaks). Because Scan embeds Metadata, the
// metadata logic has a single implementation:
//
//	func summarize(s spectrum.MassScan) string {
//	    rt, _ := s.RetentionTime()
//	    level, _ := s.MSLevel()
//	    return fmt.Sprintf("%s ms%d @ %.3f min", s.ScanID(), level, rt.Minutes())
//	}
//
// Binary arrays are decoded lazily by BinaryArray.Decode: base64, then the
// declared compression (zlib, zstd or lz4), then little-endian 32- or 64-bit
// float reinterpretation widened to float64.
package spectrum
