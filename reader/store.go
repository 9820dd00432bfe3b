package reader

import (
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"
	"sync/atomic"

	"golang.org/x/text/encoding"

	"github.com/arloliu/mzml/errs"
	"github.com/arloliu/mzml/extract"
	"github.com/arloliu/mzml/index"
	"github.com/arloliu/mzml/internal/envelope"
	"github.com/arloliu/mzml/internal/mmap"
	"github.com/arloliu/mzml/internal/options"
	"github.com/arloliu/mzml/spectrum"
)

const (
	elementSpectrum     = "spectrum"
	elementChromatogram = "chromatogram"
)

// Store gives random access to the spectra of one mzML file.
//
// Metadata for every spectrum is parsed once when the store is created; the
// binary data of a spectrum is read from the source only when it is fetched.
// All reads go through io.ReaderAt, so a Store is safe for concurrent use and
// parallel fetches do not serialize on a shared file position. Close may be
// called while fetches are running; those fetches fail with errs.ErrClosed.
type Store struct {
	meta          []spectrum.Metadata
	byID          map[string]int
	chromIDs      []string
	offsets       index.Offsets
	src           io.ReaderAt
	size          int64
	closer        io.Closer
	indexed       bool
	declared      int
	declaredChrom int
	extractor     extract.Extractor
	charset       encoding.Encoding // nil for UTF-8
	charsetName   string
	logger        *slog.Logger
	closed        atomic.Bool
}

// Open opens the mzML file at path with positioned file reads.
func Open(path string, opts ...Option) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	s, err := newStore(f, fi.Size(), f, opts)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	s.logger.Debug("opened mzML file", "path", path, "size", fi.Size())

	return s, nil
}

// OpenMapped opens the mzML file at path through a read-only memory mapping.
func OpenMapped(path string, opts ...Option) (*Store, error) {
	m, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	_ = m.Advise(mmap.AccessSequential)

	s, err := newStore(m, int64(m.Size()), m, opts)
	if err != nil {
		_ = m.Close()
		return nil, err
	}
	// after the envelope pass, fetches jump around
	_ = m.Advise(mmap.AccessRandom)
	s.logger.Debug("mapped mzML file", "path", path, "size", m.Size())

	return s, nil
}

// New creates a Store over size bytes of src. The caller keeps ownership of
// src; Close does not close it.
func New(src io.ReaderAt, size int64, opts ...Option) (*Store, error) {
	return newStore(src, size, nil, opts)
}

func newStore(src io.ReaderAt, size int64, closer io.Closer, opts []Option) (*Store, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	extractor, err := extract.New(cfg.chunkSize, cfg.maxBytes)
	if err != nil {
		return nil, err
	}

	env, err := envelope.Parse(io.NewSectionReader(src, 0, size))
	if err != nil {
		return nil, err
	}

	offsets, err := index.Build(env.Sections, env.Indexed)
	if err != nil {
		return nil, err
	}

	s := &Store{
		meta:          env.Spectra,
		byID:          make(map[string]int, len(env.Spectra)),
		chromIDs:      env.ChromatogramIDs,
		offsets:       offsets,
		src:           src,
		size:          size,
		closer:        closer,
		indexed:       env.Indexed || len(env.Sections) > 0,
		declared:      env.DeclaredSpectra,
		declaredChrom: env.DeclaredChromatograms,
		extractor:     extractor,
		charset:       env.Encoding,
		charsetName:   env.Charset,
		logger:        cfg.logger,
	}
	for i := range s.meta {
		s.byID[s.meta[i].ID] = i
	}

	s.logOpen()

	return s, nil
}

func (s *Store) logOpen() {
	s.logger.Debug("mzML envelope parsed",
		"spectra", len(s.meta),
		"chromatograms", len(s.chromIDs),
		"indexed", s.indexed,
		"charset", s.charsetName,
		"scan_offsets", s.offsets.Scans.Len(),
		"chromatogram_offsets", s.offsets.Chromatograms.Len())

	if !s.indexed {
		s.logger.Warn("file has no offset index; random access is unavailable",
			"spectra", len(s.meta))
	}
	if n := s.offsets.Scans.Duplicates(); n > 0 {
		s.logger.Warn("duplicate ids in spectrum index; later entries win", "duplicates", n)
	}
	if n := s.offsets.Chromatograms.Duplicates(); n > 0 {
		s.logger.Warn("duplicate ids in chromatogram index; later entries win", "duplicates", n)
	}
	if s.declared >= 0 && s.declared != len(s.meta) {
		s.logger.Warn("spectrumList count differs from spectra found",
			"declared", s.declared, "found", len(s.meta))
	}
	if s.indexed && s.offsets.Scans.Len() != len(s.byID) {
		s.logger.Warn("spectrum index and spectrum list disagree",
			"indexed", s.offsets.Scans.Len(), "listed", len(s.byID))
	}
}

// Len returns the number of spectra found in the file.
func (s *Store) Len() int {
	return len(s.meta)
}

// DeclaredCount returns the count attribute of spectrumList, or -1 if absent.
func (s *Store) DeclaredCount() int {
	return s.declared
}

// Indexed reports whether the file carries an offset index, either as an
// indexedmzML wrapper or as a bare index element.
func (s *Store) Indexed() bool {
	return s.indexed
}

// ScanOffsets returns the spectrum id to offset table.
func (s *Store) ScanOffsets() *index.Table {
	return s.offsets.Scans
}

// ChromatogramOffsets returns the chromatogram id to offset table.
func (s *Store) ChromatogramOffsets() *index.Table {
	return s.offsets.Chromatograms
}

// ChromatogramIDs returns the chromatogram ids in document order.
func (s *Store) ChromatogramIDs() []string {
	return s.chromIDs
}

// IterMetadata yields the metadata of every spectrum in document order
// without any I/O. It can be ranged over any number of times.
func (s *Store) IterMetadata() iter.Seq[*spectrum.Metadata] {
	return func(yield func(*spectrum.Metadata) bool) {
		for i := range s.meta {
			if !yield(&s.meta[i]) {
				return
			}
		}
	}
}

// IterData fetches every spectrum in document order.
//
// A spectrum that fails to load is yielded with its error and iteration
// continues; the scan is nil in that case.
func (s *Store) IterData() iter.Seq2[*spectrum.Scan, error] {
	return func(yield func(*spectrum.Scan, error) bool) {
		for i := range s.meta {
			scan, err := s.Fetch(s.meta[i].ID)
			if !yield(scan, err) {
				return
			}
		}
	}
}

// FetchMetadata returns the metadata of the spectrum with the given id
// without any I/O.
func (s *Store) FetchMetadata(id string) (*spectrum.Metadata, error) {
	i, ok := s.byID[id]
	if !ok {
		return nil, &errs.ElementError{Element: elementSpectrum, ID: id, Offset: -1, Err: errs.ErrUnknownID}
	}

	return &s.meta[i], nil
}

// Fetch reads and parses the spectrum with the given id.
//
// Errors are *errs.ElementError wrapping errs.ErrUnknownID (and
// errs.ErrNotIndexed for files without an index), errs.ErrBoundaryNotFound,
// errs.ErrFormat or errs.ErrClosed.
func (s *Store) Fetch(id string) (*spectrum.Scan, error) {
	frag, off, err := s.element(s.offsets.Scans, elementSpectrum, id)
	if err != nil {
		return nil, err
	}

	scan, err := spectrum.ParseScan(frag)
	if err != nil {
		return nil, &errs.ElementError{Element: elementSpectrum, ID: id, Offset: off, Err: err}
	}
	if scan.ID != id {
		return nil, &errs.ElementError{Element: elementSpectrum, ID: id, Offset: off,
			Err: fmt.Errorf("%w: offset holds spectrum %q", errs.ErrFormat, scan.ID)}
	}

	return scan, nil
}

// FetchChromatogram reads and parses the chromatogram with the given id.
func (s *Store) FetchChromatogram(id string) (*spectrum.Chromatogram, error) {
	frag, off, err := s.element(s.offsets.Chromatograms, elementChromatogram, id)
	if err != nil {
		return nil, err
	}

	c, err := spectrum.ParseChromatogram(frag)
	if err != nil {
		return nil, &errs.ElementError{Element: elementChromatogram, ID: id, Offset: off, Err: err}
	}
	if c.ID != id {
		return nil, &errs.ElementError{Element: elementChromatogram, ID: id, Offset: off,
			Err: fmt.Errorf("%w: offset holds chromatogram %q", errs.ErrFormat, c.ID)}
	}

	return c, nil
}

// element extracts the raw bytes of one element. The read ceiling is the
// next known element offset, or the end of the source.
func (s *Store) element(table *index.Table, element, id string) ([]byte, int64, error) {
	if s.closed.Load() {
		return nil, -1, &errs.ElementError{Element: element, ID: id, Offset: -1, Err: errs.ErrClosed}
	}
	if !s.indexed {
		return nil, -1, &errs.ElementError{Element: element, ID: id, Offset: -1,
			Err: fmt.Errorf("%w: %w", errs.ErrNotIndexed, errs.ErrUnknownID)}
	}

	off, ok := table.Lookup(id)
	if !ok {
		return nil, -1, &errs.ElementError{Element: element, ID: id, Offset: -1, Err: errs.ErrUnknownID}
	}

	limit := s.size
	if next, ok := s.offsets.Next(off); ok && next < limit {
		limit = next
	}

	frag, err := s.extractor.Extract(s.src, off, limit, element)
	if err != nil {
		// the source was released underneath this read
		if s.closed.Load() {
			err = fmt.Errorf("%w: %w", errs.ErrClosed, err)
		}
		return nil, off, &errs.ElementError{Element: element, ID: id, Offset: off, Err: err}
	}
	if s.charset != nil {
		if frag, err = s.charset.NewDecoder().Bytes(frag); err != nil {
			return nil, off, &errs.ElementError{Element: element, ID: id, Offset: off,
				Err: fmt.Errorf("%w: %w", errs.ErrFormat, err)}
		}
	}

	return frag, off, nil
}

// Close releases the underlying file or mapping. It is idempotent. A store
// created with New leaves its source open.
func (s *Store) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	if s.closer != nil {
		return s.closer.Close()
	}

	return nil
}
