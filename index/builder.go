package index

import (
	"fmt"

	"github.com/arloliu/mzml/errs"
)

// Offsets holds the offset tables of one file.
type Offsets struct {
	Scans         *Table
	Chromatograms *Table
}

// Build selects the spectrum and chromatogram sections and builds their tables.
//
// sections is the normalized content of either an <indexList> or a single
// bare <index> element; it is empty for a file without an index.
//
// Contract:
//   - indexed and no "spectrum" section: ErrIndexMissing
//   - indexed and no "chromatogram" section: empty chromatogram table
//   - not indexed: both tables empty (the caller must surface degraded mode)
//   - duplicate ids within a section: the entry parsed last wins
func Build(sections []Section, indexed bool) (Offsets, error) {
	specSec, ok := Find(sections, SectionSpectrum)
	if !ok && !indexed {
		return Offsets{
			Scans:         EmptyTable(SectionSpectrum),
			Chromatograms: EmptyTable(SectionChromatogram),
		}, nil
	}
	if !ok {
		return Offsets{}, fmt.Errorf("%w: no %q index among %d index section(s)",
			errs.ErrIndexMissing, SectionSpectrum, len(sections))
	}

	scans, err := NewTable(*specSec)
	if err != nil {
		return Offsets{}, err
	}

	chroms := EmptyTable(SectionChromatogram)
	if chromSec, ok := Find(sections, SectionChromatogram); ok {
		chroms, err = NewTable(*chromSec)
		if err != nil {
			return Offsets{}, err
		}
	}

	return Offsets{Scans: scans, Chromatograms: chroms}, nil
}

// Next returns the smallest element offset in either table strictly greater
// than offset. Elements never overlap, so an element starting at offset ends
// before the returned position.
func (o Offsets) Next(offset int64) (int64, bool) {
	a, okA := o.Scans.next(offset)
	b, okB := o.Chromatograms.next(offset)
	switch {
	case okA && okB:
		return min(a, b), true
	case okA:
		return a, true
	case okB:
		return b, true
	default:
		return 0, false
	}
}
