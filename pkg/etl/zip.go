package etl

import (
	"archive/zip"
	"bytes"
	"io"

	"github.com/gridscope/ferceqr/pkg/constants"
	"github.com/gridscope/ferceqr/pkg/errors"
)

// eocdSignature is the end of central directory record magic.
var eocdSignature = []byte("PK\x05\x06")

// extractRecordType pulls the record type's CSV bytes out of one seller ZIP
// member of the outer quarterly archive. It verifies the inner ZIP before
// opening it: directory members are rejected, the decompressed size must
// match the declared size, and the EOCD signature must be present in the
// tail. FERC-published archives fail all three in the wild.
func extractRecordType(member *zip.File, schema *Schema) ([]byte, error) {
	if member.FileInfo().IsDir() {
		return nil, errors.NewMissingRecordTypeError(member.Name, schema.RecordType)
	}

	rc, err := member.Open()
	if err != nil {
		return nil, errors.WrapIO("open", member.Name, err)
	}
	defer rc.Close()

	innerBytes, err := io.ReadAll(rc)
	if err != nil {
		return nil, errors.WrapIO("read", member.Name, err)
	}

	if uint64(len(innerBytes)) != member.UncompressedSize64 {
		return nil, &errors.TruncatedZipError{
			ZipName:  member.Name,
			Expected: member.UncompressedSize64,
			Got:      uint64(len(innerBytes)),
		}
	}

	tail := innerBytes
	if len(tail) > constants.EOCDSearchWindow {
		tail = tail[len(tail)-constants.EOCDSearchWindow:]
	}
	if !bytes.Contains(tail, eocdSignature) {
		return nil, errors.NewMissingEOCDError(member.Name)
	}

	inner, err := zip.NewReader(bytes.NewReader(innerBytes), int64(len(innerBytes)))
	if err != nil {
		return nil, errors.WrapParse("zip", member.Name, err)
	}

	var match *zip.File
	for _, f := range inner.File {
		if !schema.Pattern.MatchString(f.Name) {
			continue
		}
		if match != nil {
			return nil, errors.NewValidationError("archive", member.Name,
				"multiple "+schema.RecordType+" datasets in one seller ZIP")
		}
		match = f
	}
	if match == nil {
		return nil, errors.NewMissingRecordTypeError(member.Name, schema.RecordType)
	}

	mrc, err := match.Open()
	if err != nil {
		return nil, errors.WrapIO("open", match.Name, err)
	}
	defer mrc.Close()

	payload, err := io.ReadAll(mrc)
	if err != nil {
		return nil, errors.WrapIO("read", match.Name, err)
	}
	return payload, nil
}
