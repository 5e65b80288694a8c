package font

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/go-text/typesetting/font/opentype"
	tdfont "github.com/tdewolff/font"
)

// isWOFF2 reports whether data is a WOFF2 container.
func isWOFF2(data []byte) bool {
	return len(data) >= 4 && string(data[:4]) == "wOF2"
}

// isWOFF reports whether data is a WOFF 1.0 container.
func isWOFF(data []byte) bool {
	return len(data) >= 4 && string(data[:4]) == "wOFF"
}

// unwrapWOFF converts a WOFF 1.0 container to plain SFNT data.
// Metadata and private blocks are dropped.
func unwrapWOFF(data []byte) ([]byte, error) {
	ld, err := opentype.NewLoader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidWOFF, err)
	}
	tags := ld.Tables()
	if len(tags) == 0 {
		return nil, fmt.Errorf("%w: no tables", ErrInvalidWOFF)
	}

	tables := make([]opentype.Table, 0, len(tags))
	for _, tag := range tags {
		raw, err := ld.RawTable(tag)
		if err != nil {
			return nil, fmt.Errorf("%w: table %q: %w", ErrInvalidWOFF, tag, err)
		}
		tables = append(tables, opentype.Table{Tag: tag, Content: raw})
	}

	out := opentype.WriteTTF(tables)
	// WriteTTF always stamps the TrueType version; CFF fonts need OTTO.
	binary.BigEndian.PutUint32(out[0:4], uint32(ld.Type))
	return out, nil
}

// unwrapWOFF2 decodes a WOFF2 container, including the transformed glyf
// and loca tables, to plain SFNT data.
func unwrapWOFF2(data []byte) ([]byte, error) {
	out, err := tdfont.ToSFNT(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidWOFF, err)
	}
	return out, nil
}
