package spectrum

import (
	"encoding/xml"
	"fmt"

	"github.com/arloliu/mzml/errs"
)

// ParseScan unmarshals a self-contained <spectrum> fragment.
func ParseScan(fragment []byte) (*Scan, error) {
	var s Scan
	if err := xml.Unmarshal(fragment, &s); err != nil {
		return nil, fmt.Errorf("%w: spectrum fragment: %w", errs.ErrFormat, err)
	}

	return &s, nil
}

// ParseChromatogram unmarshals a self-contained <chromatogram> fragment.
func ParseChromatogram(fragment []byte) (*Chromatogram, error) {
	var c Chromatogram
	if err := xml.Unmarshal(fragment, &c); err != nil {
		return nil, fmt.Errorf("%w: chromatogram fragment: %w", errs.ErrFormat, err)
	}

	return &c, nil
}
