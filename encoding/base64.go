package encoding

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/arloliu/mzml/errs"
)

// DecodeBase64 decodes the text content of a <binary> element using the
// standard alphabet. Whitespace around and inside the payload (line wrapping
// added by some writers) is ignored.
func DecodeBase64(text string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if strings.ContainsAny(text, " \t\r\n") {
		text = strings.Map(func(r rune) rune {
			switch r {
			case ' ', '\t', '\r', '\n':
				return -1
			}
			return r
		}, text)
	}

	data, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrBase64Decode, err)
	}

	return data, nil
}

// EncodeBase64 is the inverse of DecodeBase64.
func EncodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}
