// Package envelope performs the one streaming pass over an mzML document that
// opening a store requires: spectrum metadata, chromatogram ids, declared
// counts and the offset index sections.
package envelope

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"

	"github.com/arloliu/mzml/errs"
	"github.com/arloliu/mzml/index"
	"github.com/arloliu/mzml/spectrum"
)

// Root element names.
const (
	RootIndexed = "indexedmzML"
	RootPlain   = "mzML"
)

// Envelope is the result of the open-time pass.
type Envelope struct {
	// Indexed is true when the root element is indexedmzML.
	Indexed bool
	// Spectra holds the metadata of every spectrum in document order.
	Spectra []spectrum.Metadata
	// ChromatogramIDs holds chromatogram ids in document order.
	ChromatogramIDs []string
	// DeclaredSpectra is the count attribute of spectrumList, or -1 if absent.
	DeclaredSpectra int
	// DeclaredChromatograms is the count attribute of chromatogramList, or -1 if absent.
	DeclaredChromatograms int
	// Sections are the index sections found under indexList or as a bare index.
	Sections []index.Section
	// IndexListOffset is the value of indexListOffset, or -1 if absent.
	IndexListOffset int64
	// Checksum is the fileChecksum text, if any.
	Checksum string
	// Charset is the encoding label of the XML declaration when it is not
	// UTF-8, and Encoding decodes it. Both are zero for UTF-8 documents.
	Charset  string
	Encoding encoding.Encoding
}

type chromatogramHeader struct {
	ID string `xml:"id,attr"`
}

// Parse reads the whole document once.
//
// Binary arrays are tokenized but not decoded. Any XML error, an unexpected
// root element or a malformed count/offset is returned wrapping
// errs.ErrFormat together with the input byte offset.
func Parse(r io.Reader) (*Envelope, error) {
	env := &Envelope{
		DeclaredSpectra:       -1,
		DeclaredChromatograms: -1,
		IndexListOffset:       -1,
	}

	dec := xml.NewDecoder(r)
	dec.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		enc, err := Lookup(label)
		if err != nil {
			return nil, err
		}
		env.Charset, env.Encoding = label, enc

		return enc.NewDecoder().Reader(input), nil
	}
	fail := func(err error) error {
		return fmt.Errorf("%w: at byte %d: %w", errs.ErrFormat, dec.InputOffset(), err)
	}

	rootSeen := false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fail(err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		if !rootSeen {
			rootSeen = true
			switch se.Name.Local {
			case RootIndexed:
				env.Indexed = true
			case RootPlain:
				env.Indexed = false
			default:
				return nil, fail(fmt.Errorf("unexpected root element <%s>", se.Name.Local))
			}

			continue
		}

		switch se.Name.Local {
		case "spectrumList":
			if env.DeclaredSpectra, err = countAttr(se); err != nil {
				return nil, fail(err)
			}
		case "chromatogramList":
			if env.DeclaredChromatograms, err = countAttr(se); err != nil {
				return nil, fail(err)
			}
		case "spectrum":
			var md spectrum.Metadata
			if err := dec.DecodeElement(&md, &se); err != nil {
				return nil, fail(err)
			}
			env.Spectra = append(env.Spectra, md)
		case "chromatogram":
			var ch chromatogramHeader
			if err := dec.DecodeElement(&ch, &se); err != nil {
				return nil, fail(err)
			}
			env.ChromatogramIDs = append(env.ChromatogramIDs, ch.ID)
		case "index":
			var sec index.Section
			if err := dec.DecodeElement(&sec, &se); err != nil {
				return nil, fail(err)
			}
			env.Sections = append(env.Sections, sec)
		case "indexListOffset":
			var text string
			if err := dec.DecodeElement(&text, &se); err != nil {
				return nil, fail(err)
			}
			v, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
			if err != nil || v < 0 {
				return nil, fail(fmt.Errorf("bad indexListOffset %q", text))
			}
			env.IndexListOffset = v
		case "fileChecksum":
			var text string
			if err := dec.DecodeElement(&text, &se); err != nil {
				return nil, fail(err)
			}
			env.Checksum = strings.TrimSpace(text)
		}
	}

	if !rootSeen {
		return nil, fail(errors.New("no root element"))
	}

	return env, nil
}

func countAttr(se xml.StartElement) (int, error) {
	for _, a := range se.Attr {
		if a.Name.Local != "count" {
			continue
		}
		v, err := strconv.Atoi(strings.TrimSpace(a.Value))
		if err != nil || v < 0 {
			return 0, fmt.Errorf("bad count %q on <%s>", a.Value, se.Name.Local)
		}

		return v, nil
	}

	return -1, nil
}
