package envelope

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// Lookup returns the encoding registered under an IANA charset label such as
// "ISO-8859-1" or "windows-1252".
//
// Offsets in the index count raw file bytes, and the extractor searches raw
// bytes for ASCII tags, so only ASCII-compatible encodings keep both working.
// The XML declaration itself must be readable as ASCII for the label to be
// seen at all.
func Lookup(label string) (encoding.Encoding, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported document encoding %q: %w", label, err)
	}
	// known label without a Go implementation
	if enc == nil {
		return nil, fmt.Errorf("unsupported document encoding %q", label)
	}

	return enc, nil
}
