// Package cv holds controlled-vocabulary parameters, the name/value/unit
// annotations mzML attaches to spectra, scans, binary arrays and isolation windows.
package cv

import (
	"strconv"
	"strings"
)

// Param is a single <cvParam> element. It is immutable once parsed.
type Param struct {
	CVRef         string `xml:"cvRef,attr"`
	Accession     string `xml:"accession,attr"`
	Name          string `xml:"name,attr"`
	Value         string `xml:"value,attr"`
	UnitAccession string `xml:"unitAccession,attr"`
	UnitName      string `xml:"unitName,attr"`
}

// HasUnit reports whether the parameter declares a unit.
func (p Param) HasUnit() bool {
	return p.UnitName != ""
}

// Float parses Value as a float64.
func (p Param) Float() (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(p.Value), 64)
	if err != nil {
		return 0, false
	}

	return v, true
}

// Params is an ordered list of parameters attached to one element.
type Params []Param

// Find returns the first parameter whose name equals name exactly.
func (ps Params) Find(name string) (Param, bool) {
	for _, p := range ps {
		if p.Name == name {
			return p, true
		}
	}

	return Param{}, false
}

// FindContains returns the first parameter whose name contains substr.
func (ps Params) FindContains(substr string) (Param, bool) {
	for _, p := range ps {
		if strings.Contains(p.Name, substr) {
			return p, true
		}
	}

	return Param{}, false
}

// Contains reports whether any parameter name contains substr.
func (ps Params) Contains(substr string) bool {
	_, ok := ps.FindContains(substr)
	return ok
}
