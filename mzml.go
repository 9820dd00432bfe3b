// Package mzml provides lazy random access to indexed mzML mass-spectrometry files.
//
// An mzML file stores thousands of spectra as sibling XML elements, each with
// base64-encoded (optionally zlib-compressed) binary peak arrays. Indexed
// files (root element indexedmzML) end with a table of byte offsets for every
// spectrum and chromatogram. This package uses that table to read a single
// spectrum without parsing the rest of the file.
//
// # Core Features
//
//   - One streaming pass at open time collects metadata and the offset index
//   - Hash-based offset lookup (64-bit xxHash64) with a collision overflow path
//   - Bounded, chunked extraction of a single element via positioned reads
//   - Binary arrays in 32- or 64-bit float, uncompressed, zlib, zstd or LZ4
//   - Safe concurrent fetches; no shared file cursor
//   - Optional memory-mapped access
//
// # Basic Usage
//
//	store, err := mzml.Open("run.mzML")
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	for md := range store.IterMetadata() {
//	    rt, _ := md.RetentionTime()
//	    fmt.Printf("%s %.2f min\n", md.ScanID(), rt.Minutes())
//	}
//
//	scan, err := store.Fetch("controllerType=0 controllerNumber=1 scan=42")
//	if err != nil {
//	    return err
//	}
//	peaks, err := scan.Peaks()
//
// # Package Structure
//
// This package provides top-level wrappers around the reader package. The
// spectrum package holds the data model and capability interfaces, errs the
// error values, and extract, index, compress and encoding the building blocks.
package mzml

import (
	"io"

	"github.com/arloliu/mzml/internal/hash"
	"github.com/arloliu/mzml/reader"
	"github.com/arloliu/mzml/spectrum"
)

// Open opens an mzML file with positioned file reads.
//
// Example:
//
//	store, err := mzml.Open("run.mzML", reader.WithChunkSize(16*1024))
func Open(path string, opts ...reader.Option) (*reader.Store, error) {
	return reader.Open(path, opts...)
}

// OpenMapped opens an mzML file through a read-only memory mapping.
//
// Mapping suits many small random fetches against a file that fits the page
// cache; Open suits everything else.
func OpenMapped(path string, opts ...reader.Option) (*reader.Store, error) {
	return reader.OpenMapped(path, opts...)
}

// NewStore creates a store over any io.ReaderAt holding size bytes of mzML.
func NewStore(src io.ReaderAt, size int64, opts ...reader.Option) (*reader.Store, error) {
	return reader.New(src, size, opts...)
}

// ParseScan parses a self-contained <spectrum> fragment.
func ParseScan(fragment []byte) (*spectrum.Scan, error) {
	return spectrum.ParseScan(fragment)
}

// ScanKey returns the 64-bit key under which a native id is stored in the
// offset tables.
func ScanKey(id string) uint64 {
	return hash.Key(id)
}
