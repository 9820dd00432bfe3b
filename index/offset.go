package index

// Section names used by the name attribute of <index>.
const (
	SectionSpectrum     = "spectrum"
	SectionChromatogram = "chromatogram"
)

// Offset is one <offset idRef="...">N</offset> entry: the byte position of
// the opening '<' of the element whose id is RefID.
//
// Two offsets are the same entry when their RefID is equal, regardless of
// the byte position.
type Offset struct {
	RefID  string `xml:"idRef,attr"`
	Offset int64  `xml:",chardata"`
}

// Section is one <index name="..."> element.
type Section struct {
	Name    string   `xml:"name,attr"`
	Offsets []Offset `xml:"offset"`
}

// Find returns the first section with the given name.
func Find(sections []Section, name string) (*Section, bool) {
	for i := range sections {
		if sections[i].Name == name {
			return &sections[i], true
		}
	}

	return nil, false
}
