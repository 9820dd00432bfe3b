package spectrum

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/arloliu/mzml/cv"
	"github.com/arloliu/mzml/format"
)

// Metadata is everything about a <spectrum> that can be read without
// touching its binary arrays. The Store builds one Metadata per spectrum
// at open time; the id is unique within a file and is the key into the
// spectrum offset table.
type Metadata struct {
	Index              int           `xml:"index,attr"`
	ID                 string        `xml:"id,attr"`
	DefaultArrayLength int           `xml:"defaultArrayLength,attr"`
	Params             cv.Params     `xml:"cvParam"`
	Precursors         []Precursor   `xml:"precursorList>precursor"`
	Acquisitions       []Acquisition `xml:"scanList>scan"`
}

// Acquisition is one <scan> entry of a spectrum's scan list.
type Acquisition struct {
	Params cv.Params `xml:"cvParam"`
}

// Precursor describes the ion selection that produced a tandem spectrum.
type Precursor struct {
	SpectrumRef     string        `xml:"spectrumRef,attr"`
	IsolationWindow cv.Params     `xml:"isolationWindow>cvParam"`
	SelectedIons    []SelectedIon `xml:"selectedIonList>selectedIon"`
}

// SelectedIon is one <selectedIon> of a precursor.
type SelectedIon struct {
	Params cv.Params `xml:"cvParam"`
}

// SelectedIonMZ returns the m/z of the first selected ion.
func (p *Precursor) SelectedIonMZ() (float64, bool) {
	return p.selectedIonFloat(format.CVSelectedIonMZ)
}

// Charge returns the charge state of the first selected ion.
func (p *Precursor) Charge() (int, bool) {
	v, ok := p.selectedIonFloat(format.CVChargeState)
	return int(v), ok
}

// IsolationTargetMZ returns the isolation window target m/z.
func (p *Precursor) IsolationTargetMZ() (float64, bool) {
	param, ok := p.IsolationWindow.FindContains(format.CVTargetMZ)
	if !ok {
		return 0, false
	}

	return param.Float()
}

func (p *Precursor) selectedIonFloat(name string) (float64, bool) {
	if len(p.SelectedIons) == 0 {
		return 0, false
	}
	param, ok := p.SelectedIons[0].Params.FindContains(name)
	if !ok {
		return 0, false
	}

	return param.Float()
}

// ScanID returns the native id of the spectrum.
func (m *Metadata) ScanID() string {
	return m.ID
}

// PeakCount returns the declared number of peaks (defaultArrayLength).
func (m *Metadata) PeakCount() int {
	return m.DefaultArrayLength
}

// RetentionTime returns the "scan start time" of the first acquisition entry.
//
// The unit "second" or "minute" is honored; any other or absent unit is read
// as minutes. It returns false when the entry or the parameter is absent, or
// when the value does not parse, is NaN or infinite, or does not fit in a
// time.Duration.
func (m *Metadata) RetentionTime() (time.Duration, bool) {
	if len(m.Acquisitions) == 0 {
		return 0, false
	}
	param, ok := m.Acquisitions[0].Params.FindContains(format.CVScanStartTime)
	if !ok {
		return 0, false
	}
	v, ok := param.Float()
	if !ok {
		return 0, false
	}

	unit := time.Minute
	if param.UnitName == format.UnitSecond {
		unit = time.Second
	}

	return toDuration(v, unit)
}

// toDuration converts v units to a Duration, failing for NaN, infinities and
// values outside the Duration range.
func toDuration(v float64, unit time.Duration) (time.Duration, bool) {
	ns := v * float64(unit)
	if math.IsNaN(ns) || ns >= float64(math.MaxInt64) || ns < float64(math.MinInt64) {
		return 0, false
	}

	return time.Duration(ns), true
}

// MSLevel returns the "ms level" parameter.
func (m *Metadata) MSLevel() (uint16, bool) {
	param, ok := m.Params.FindContains(format.CVMSLevel)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseUint(strings.TrimSpace(param.Value), 10, 16)
	if err != nil {
		return 0, false
	}

	return uint16(v), true
}

// FindCV returns the spectrum-level parameter whose name equals name.
// Parameters nested in acquisition entries are not searched.
func (m *Metadata) FindCV(name string) (cv.Param, bool) {
	return m.Params.Find(name)
}

// CVs returns the spectrum-level parameters.
func (m *Metadata) CVs() cv.Params {
	return m.Params
}

// IsTandem reports whether the spectrum has at least one precursor.
func (m *Metadata) IsTandem() bool {
	return len(m.Precursors) > 0
}
