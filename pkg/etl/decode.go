package etl

import (
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/gridscope/ferceqr/pkg/errors"
)

// fallbackEncodings are tried, in order, when a seller's CSV payload is not
// valid UTF-8. FERC does not enforce an encoding on filings and Windows-1252
// exports are common.
var fallbackEncodings = []struct {
	name    string
	decoder func() *encoding.Decoder
}{
	{"cp1252", charmap.Windows1252.NewDecoder},
	{"latin-1", charmap.ISO8859_1.NewDecoder},
}

// decodePayload returns the payload as UTF-8 text, retrying the fallback
// encodings when the bytes are not already valid UTF-8.
func decodePayload(payload []byte, sourceName string) ([]byte, error) {
	if utf8.Valid(payload) {
		return payload, nil
	}

	tried := []string{"utf-8"}
	for _, enc := range fallbackEncodings {
		decoded, err := enc.decoder().Bytes(payload)
		if err == nil && utf8.Valid(decoded) {
			return decoded, nil
		}
		tried = append(tried, enc.name)
	}

	return nil, &errors.DecodeError{Source: sourceName, Encodings: tried}
}
