package models

import (
	"fmt"
	"strings"
)

const hexColumns = 16

// HexDump renders mem as 16-byte rows addressed from base.
// The hex column is always padded to 48 characters so partial rows line up.
func HexDump(base uint64, mem []byte) []string {
	var out []string
	for off := 0; off < len(mem); off += hexColumns {
		end := off + hexColumns
		if end > len(mem) {
			end = len(mem)
		}
		var hx, asc strings.Builder
		for _, b := range mem[off:end] {
			fmt.Fprintf(&hx, "%02x ", b)
			if b >= 0x20 && b < 0x7f {
				asc.WriteByte(b)
			} else {
				asc.WriteByte('.')
			}
		}
		out = append(out, fmt.Sprintf("%08x: %-48s %s", base+uint64(off), hx.String(), asc.String()))
	}
	return out
}
