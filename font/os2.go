package font

import (
	"encoding/binary"

	"github.com/go-text/typesetting/font/opentype"
)

var tagOS2 = opentype.MustNewTag("OS/2")

// winMetrics reads usWinAscent and usWinDescent from the OS/2 table.
// Both are unsigned; usWinDescent is a positive distance below the baseline.
func winMetrics(ld *opentype.Loader) (ascent, descent int, ok bool) {
	os2, err := ld.RawTable(tagOS2)
	if err != nil || len(os2) < 78 {
		return 0, 0, false
	}
	ascent = int(binary.BigEndian.Uint16(os2[74:76]))
	descent = int(binary.BigEndian.Uint16(os2[76:78]))
	if ascent == 0 && descent == 0 {
		return 0, 0, false
	}
	return ascent, descent, true
}
