// Package testutil builds synthetic mzML documents with exact byte offsets for tests.
package testutil

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	textenc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"github.com/arloliu/mzml/compress"
	"github.com/arloliu/mzml/encoding"
	"github.com/arloliu/mzml/endian"
	"github.com/arloliu/mzml/format"
)

// Array describes one binary data array.
type Array struct {
	Kind        string // cvParam name, e.g. "m/z array"
	Values      []float64
	Precision   format.Precision       // zero means 64-bit float
	Compression format.CompressionType // zero means none
	ExtraTerms  []string               // additional cvParam names, e.g. "32-bit integer"
	Unit        string                 // unitName on the kind cvParam
	RawText     *string                // overrides the encoded base64 text when set
}

// Spectrum describes one <spectrum> element.
type Spectrum struct {
	ID                 string
	MSLevel            int    // 0 omits the "ms level" param
	RT                 string // "" omits "scan start time"
	RTUnit             string // "" omits the unitName attribute
	DefaultArrayLength *int   // nil means len(Arrays[0].Values)
	PrecursorRef       string // non-empty adds a precursor
	SelectedMZ         string
	Charge             string
	Arrays             []Array
	Padding            int // bytes of ignorable userParam text inside the element
}

// Chromatogram describes one <chromatogram> element.
type Chromatogram struct {
	ID     string
	Arrays []Array
}

// Document describes a whole file.
type Document struct {
	Spectra       []Spectrum
	Chromatograms []Chromatogram
	NotIndexed    bool // root <mzML> without index
	BareIndex     bool // single <index> instead of <indexList>
	OmitScanIndex bool
	OmitChromIdx  bool
	DeclaredCount *int // overrides spectrumList count
	// ExtraScanOffsets are appended to the spectrum index after the real entries.
	ExtraScanOffsets []Offset
	// Charset is the declared document encoding; the document is written in
	// it and offsets count encoded bytes. Empty means UTF-8.
	Charset string
}

// docWriter encodes everything written to it, so Len is an encoded offset.
type docWriter struct {
	bytes.Buffer
	enc *textenc.Encoder
}

func (w *docWriter) Write(p []byte) (int, error) {
	if w.enc == nil {
		return w.Buffer.Write(p)
	}
	q, err := w.enc.Bytes(p)
	if err != nil {
		return 0, err
	}
	w.Buffer.Write(q)

	return len(p), nil
}

func (w *docWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

// Offset is an index entry written verbatim.
type Offset struct {
	RefID  string
	Offset int64
}

// Built is a rendered document.
type Built struct {
	Data         []byte
	ScanOffsets  map[string]int64
	ChromOffsets map[string]int64
}

// EncodeArray returns the base64 text of values in the given precision and compression.
func EncodeArray(values []float64, precision format.Precision, compression format.CompressionType) string {
	if precision == 0 {
		precision = format.PrecisionFloat64
	}
	if compression == 0 {
		compression = format.CompressionNone
	}

	raw := encoding.AppendFloats(nil, endian.GetLittleEndianEngine(), precision, values)
	if compression != format.CompressionNone {
		codec, err := compress.GetCodec(compression)
		if err != nil {
			panic(err)
		}
		raw, err = codec.Compress(raw)
		if err != nil {
			panic(err)
		}
	}

	return encoding.EncodeBase64(raw)
}

// ArrayXML renders a <binaryDataArray>.
func ArrayXML(a Array) string {
	precision := a.Precision
	if precision == 0 {
		precision = format.PrecisionFloat64
	}
	compression := a.Compression
	if compression == 0 {
		compression = format.CompressionNone
	}

	text := EncodeArray(a.Values, precision, compression)
	if a.RawText != nil {
		text = *a.RawText
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "          <binaryDataArray encodedLength=\"%d\">\n", len(text))
	fmt.Fprintf(&b, "            <cvParam cvRef=\"MS\" name=\"%s\" value=\"\"/>\n", precision)
	switch compression {
	case format.CompressionZlib:
		b.WriteString("            <cvParam cvRef=\"MS\" accession=\"MS:1000574\" name=\"zlib compression\" value=\"\"/>\n")
	case format.CompressionZstd:
		b.WriteString("            <cvParam cvRef=\"MS\" name=\"zstd compression\" value=\"\"/>\n")
	case format.CompressionLZ4:
		b.WriteString("            <cvParam cvRef=\"MS\" name=\"lz4 compression\" value=\"\"/>\n")
	default:
		b.WriteString("            <cvParam cvRef=\"MS\" accession=\"MS:1000576\" name=\"no compression\" value=\"\"/>\n")
	}
	for _, term := range a.ExtraTerms {
		fmt.Fprintf(&b, "            <cvParam cvRef=\"MS\" name=\"%s\" value=\"\"/>\n", term)
	}
	if a.Unit != "" {
		fmt.Fprintf(&b, "            <cvParam cvRef=\"MS\" name=\"%s\" value=\"\" unitCvRef=\"UO\" unitName=\"%s\"/>\n", a.Kind, a.Unit)
	} else {
		fmt.Fprintf(&b, "            <cvParam cvRef=\"MS\" name=\"%s\" value=\"\"/>\n", a.Kind)
	}
	fmt.Fprintf(&b, "            <binary>%s</binary>\n", text)
	b.WriteString("          </binaryDataArray>\n")

	return b.String()
}

// SpectrumXML renders a <spectrum> element at position idx.
func SpectrumXML(idx int, s Spectrum) string {
	declared := 0
	if s.DefaultArrayLength != nil {
		declared = *s.DefaultArrayLength
	} else if len(s.Arrays) > 0 {
		declared = len(s.Arrays[0].Values)
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "<spectrum index=\"%d\" id=\"%s\" defaultArrayLength=\"%d\">\n", idx, s.ID, declared)
	if s.MSLevel > 0 {
		fmt.Fprintf(&b, "        <cvParam cvRef=\"MS\" accession=\"MS:1000511\" name=\"ms level\" value=\"%d\"/>\n", s.MSLevel)
	}
	b.WriteString("        <cvParam cvRef=\"MS\" accession=\"MS:1000127\" name=\"centroid spectrum\" value=\"\"/>\n")
	if s.Padding > 0 {
		fmt.Fprintf(&b, "        <userParam name=\"padding\" value=\"%s\"/>\n", bytes.Repeat([]byte{'x'}, s.Padding))
	}
	b.WriteString("        <scanList count=\"1\">\n")
	b.WriteString("          <cvParam cvRef=\"MS\" accession=\"MS:1000795\" name=\"no combination\" value=\"\"/>\n")
	b.WriteString("          <scan>\n")
	if s.RT != "" {
		unit := ""
		if s.RTUnit != "" {
			unit = fmt.Sprintf(" unitCvRef=\"UO\" unitName=\"%s\"", s.RTUnit)
		}
		fmt.Fprintf(&b, "            <cvParam cvRef=\"MS\" accession=\"MS:1000016\" name=\"scan start time\" value=\"%s\"%s/>\n", s.RT, unit)
	}
	b.WriteString("          </scan>\n")
	b.WriteString("        </scanList>\n")
	if s.PrecursorRef != "" {
		b.WriteString("        <precursorList count=\"1\">\n")
		fmt.Fprintf(&b, "          <precursor spectrumRef=\"%s\">\n", s.PrecursorRef)
		b.WriteString("            <isolationWindow>\n")
		fmt.Fprintf(&b, "              <cvParam cvRef=\"MS\" name=\"isolation window target m/z\" value=\"%s\" unitName=\"m/z\"/>\n", s.SelectedMZ)
		b.WriteString("            </isolationWindow>\n")
		b.WriteString("            <selectedIonList count=\"1\">\n")
		b.WriteString("              <selectedIon>\n")
		fmt.Fprintf(&b, "                <cvParam cvRef=\"MS\" name=\"selected ion m/z\" value=\"%s\" unitName=\"m/z\"/>\n", s.SelectedMZ)
		if s.Charge != "" {
			fmt.Fprintf(&b, "                <cvParam cvRef=\"MS\" name=\"charge state\" value=\"%s\"/>\n", s.Charge)
		}
		b.WriteString("              </selectedIon>\n")
		b.WriteString("            </selectedIonList>\n")
		b.WriteString("          </precursor>\n")
		b.WriteString("        </precursorList>\n")
	}
	fmt.Fprintf(&b, "        <binaryDataArrayList count=\"%d\">\n", len(s.Arrays))
	for _, a := range s.Arrays {
		b.WriteString(ArrayXML(a))
	}
	b.WriteString("        </binaryDataArrayList>\n")
	b.WriteString("      </spectrum>")

	return b.String()
}

// ChromatogramXML renders a <chromatogram> element at position idx.
func ChromatogramXML(idx int, c Chromatogram) string {
	declared := 0
	if len(c.Arrays) > 0 {
		declared = len(c.Arrays[0].Values)
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "<chromatogram index=\"%d\" id=\"%s\" defaultArrayLength=\"%d\">\n", idx, c.ID, declared)
	b.WriteString("        <cvParam cvRef=\"MS\" accession=\"MS:1000235\" name=\"total ion current chromatogram\" value=\"\"/>\n")
	fmt.Fprintf(&b, "        <binaryDataArrayList count=\"%d\">\n", len(c.Arrays))
	for _, a := range c.Arrays {
		b.WriteString(ArrayXML(a))
	}
	b.WriteString("        </binaryDataArrayList>\n")
	b.WriteString("      </chromatogram>")

	return b.String()
}

// Build renders the document and records the offset of every element.
func (d Document) Build() Built {
	built := Built{
		ScanOffsets:  make(map[string]int64, len(d.Spectra)),
		ChromOffsets: make(map[string]int64, len(d.Chromatograms)),
	}

	var b docWriter
	charset := "utf-8"
	if d.Charset != "" {
		enc, err := ianaindex.IANA.Encoding(d.Charset)
		if err != nil || enc == nil {
			panic(fmt.Sprintf("testutil: no encoder for %q", d.Charset))
		}
		charset = d.Charset
		b.enc = enc.NewEncoder()
	}
	fmt.Fprintf(&b, "<?xml version=\"1.0\" encoding=\"%s\"?>\n", charset)
	if !d.NotIndexed {
		b.WriteString("<indexedmzML xmlns=\"http://psi.hupo.org/ms/mzml\" xmlns:xsi=\"http://www.w3.org/2001/XMLSchema-instance\">\n")
	}
	b.WriteString("  <mzML xmlns=\"http://psi.hupo.org/ms/mzml\" id=\"fixture\" version=\"1.1.0\">\n")
	b.WriteString("    <cvList count=\"1\">\n      <cv id=\"MS\" fullName=\"Proteomics Standards Initiative Mass Spectrometry Ontology\"/>\n    </cvList>\n")
	b.WriteString("    <softwareList count=\"1\">\n      <software id=\"mzml-fixture\" version=\"1.0\"/>\n    </softwareList>\n")
	b.WriteString("    <run id=\"run1\">\n")

	declared := len(d.Spectra)
	if d.DeclaredCount != nil {
		declared = *d.DeclaredCount
	}
	fmt.Fprintf(&b, "    <spectrumList count=\"%d\" defaultDataProcessingRef=\"dp\">\n", declared)
	for i, s := range d.Spectra {
		b.WriteString("      ")
		built.ScanOffsets[s.ID] = int64(b.Len())
		b.WriteString(SpectrumXML(i, s))
		b.WriteString("\n")
	}
	b.WriteString("    </spectrumList>\n")

	fmt.Fprintf(&b, "    <chromatogramList count=\"%d\" defaultDataProcessingRef=\"dp\">\n", len(d.Chromatograms))
	for i, c := range d.Chromatograms {
		b.WriteString("      ")
		built.ChromOffsets[c.ID] = int64(b.Len())
		b.WriteString(ChromatogramXML(i, c))
		b.WriteString("\n")
	}
	b.WriteString("    </chromatogramList>\n")
	b.WriteString("    </run>\n  </mzML>\n")

	if d.NotIndexed {
		return Built{Data: b.Bytes(), ScanOffsets: map[string]int64{}, ChromOffsets: map[string]int64{}}
	}

	indexListOffset := b.Len()
	writeIndex := func(name string, ids []string, offsets map[string]int64, extra []Offset) {
		fmt.Fprintf(&b, "    <index name=\"%s\">\n", name)
		for _, id := range ids {
			fmt.Fprintf(&b, "      <offset idRef=\"%s\">%d</offset>\n", id, offsets[id])
		}
		for _, e := range extra {
			fmt.Fprintf(&b, "      <offset idRef=\"%s\">%d</offset>\n", e.RefID, e.Offset)
		}
		b.WriteString("    </index>\n")
	}

	scanIDs := make([]string, len(d.Spectra))
	for i, s := range d.Spectra {
		scanIDs[i] = s.ID
	}
	chromIDs := make([]string, len(d.Chromatograms))
	for i, c := range d.Chromatograms {
		chromIDs[i] = c.ID
	}

	if d.BareIndex {
		if !d.OmitScanIndex {
			writeIndex("spectrum", scanIDs, built.ScanOffsets, d.ExtraScanOffsets)
		}
	} else {
		count := 2
		if d.OmitScanIndex {
			count--
		}
		if d.OmitChromIdx {
			count--
		}
		fmt.Fprintf(&b, "  <indexList count=\"%d\">\n", count)
		if !d.OmitScanIndex {
			writeIndex("spectrum", scanIDs, built.ScanOffsets, d.ExtraScanOffsets)
		}
		if !d.OmitChromIdx {
			writeIndex("chromatogram", chromIDs, built.ChromOffsets, nil)
		}
		b.WriteString("  </indexList>\n")
	}
	fmt.Fprintf(&b, "  <indexListOffset>%d</indexListOffset>\n", indexListOffset)
	b.WriteString("  <fileChecksum>0000000000000000000000000000000000000000</fileChecksum>\n")
	b.WriteString("</indexedmzML>\n")

	built.Data = b.Bytes()

	return built
}

// WriteFile writes data into a temporary directory and returns the path.
func WriteFile(t testing.TB, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	return path
}

// Ramp returns n values start, start+step, ...
func Ramp(n int, start, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}

	return out
}

// Float32Exact rounds values to float32 precision so 32-bit fixtures compare exactly.
func Float32Exact(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(float32(v))
	}

	return out
}

// Peaks returns a standard m/z + intensity pair of arrays with n points.
func Peaks(n int, firstMZ float64, precision format.Precision, compression format.CompressionType) []Array {
	return []Array{
		{Kind: "m/z array", Values: Ramp(n, firstMZ, 0.5), Precision: precision, Compression: compression},
		{Kind: "intensity array", Values: Ramp(n, 1000, 10), Precision: precision, Compression: compression},
	}
}

// ScanIDs returns n Thermo-style native ids ending in scan=1 through scan=n.
func ScanIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = "controllerType=0 controllerNumber=1 scan=" + strconv.Itoa(i+1)
	}

	return ids
}

// Sum adds values in order. Fixture values are exact in binary, so the
// result does not depend on summation order.
func Sum(values []float64) float64 {
	var s float64
	for _, v := range values {
		s += v
	}

	return s
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}

// StringPtr returns a pointer to v.
func StringPtr(v string) *string {
	return &v
}
