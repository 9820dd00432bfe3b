package spectrum

import (
	"github.com/arloliu/mzml/format"
)

// Scan is a spectrum together with its binary data arrays. It embeds
// Metadata, so the MassScan methods are shared rather than reimplemented.
//
// A Scan is produced per fetch and owned by the caller.
type Scan struct {
	Metadata
	Arrays []BinaryArray `xml:"binaryDataArrayList>binaryDataArray"`
}

// Peak is one (m/z, intensity) pair.
type Peak struct {
	MZ        float64
	Intensity float64
}

// Peaks decodes the m/z and intensity arrays and zips them index-wise.
//
// Errors match errs.ErrMissingArray when either array is absent and
// errs.ErrArrayLengthMismatch when the decoded lengths differ from each
// other or from the declared peak count; decode failures are returned as
// *errs.ArrayError.
func (s *Scan) Peaks() ([]Peak, error) {
	mz, intensity, err := s.Columns()
	if err != nil {
		return nil, err
	}

	peaks := make([]Peak, len(mz))
	for i := range mz {
		peaks[i] = Peak{MZ: mz[i], Intensity: intensity[i]}
	}

	return peaks, nil
}

// Columns decodes the m/z and intensity arrays without zipping them.
func (s *Scan) Columns() (mz []float64, intensity []float64, err error) {
	return decodePair(s.Arrays, format.CVMZArray, format.CVIntensity, s.DefaultArrayLength)
}

// Array returns the first array whose cvParams contain kind.
func (s *Scan) Array(kind string) (*BinaryArray, bool) {
	return findArray(s.Arrays, kind)
}
