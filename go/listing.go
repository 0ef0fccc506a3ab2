package scare

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/scare-emu/scare/go/models"
)

type ListingLine struct {
	Num   int
	Src   string
	Addr  uint64
	Bytes []byte
}

// Listing attributes the assembled program back to its source lines.
// Each line's size is the growth between assembling the prefix before it and
// the prefix including it. When a prefix can't assemble on its own (a forward
// label reference), the size is the growth from appending the line to the
// whole program, or zero if that fails too. The last line takes whatever is
// left so the whole program is always shown. Branches whose encoding depends
// on later code can be misattributed.
func (s *Session) Listing() ([]ListingLine, error) {
	if len(s.lines) == 0 {
		return nil, nil
	}
	full, err := s.Assemble(s.lines)
	if err != nil {
		return nil, err
	}
	prefix := make([]int, len(s.lines)+1)
	ok := make([]bool, len(s.lines)+1)
	ok[0] = true
	for i := 1; i <= len(s.lines); i++ {
		if i == len(s.lines) {
			prefix[i], ok[i] = len(full), true
			break
		}
		if code, err := s.Assemble(s.lines[:i]); err == nil {
			prefix[i], ok[i] = len(code), true
		}
	}
	out := make([]ListingLine, len(s.lines))
	off := 0
	for i, src := range s.lines {
		n := -1
		if i == len(s.lines)-1 {
			n = len(full) - off
		} else if ok[i] && ok[i+1] {
			n = prefix[i+1] - prefix[i]
		}
		if n < 0 {
			n = 0
			grown := append(s.Lines(), src)
			if code, err := s.Assemble(grown); err == nil && len(code) >= len(full) {
				n = len(code) - len(full)
			}
		}
		if off+n > len(full) {
			n = len(full) - off
		}
		out[i] = ListingLine{
			Num:   i + 1,
			Src:   src,
			Addr:  s.Base + uint64(off),
			Bytes: full[off : off+n],
		}
		off += n
	}
	return out, nil
}

// FormatListing renders listing lines either annotated with addresses and
// bytes or as plan9 WORD literals.
func FormatListing(p models.Palette, lines []ListingLine, plan9 bool) []string {
	var out []string
	if plan9 {
		empty := true
		for _, l := range lines {
			if len(l.Src) > 0 {
				rev := make([]byte, len(l.Bytes))
				for i, b := range l.Bytes {
					rev[len(rev)-1-i] = b
				}
				out = append(out, fmt.Sprintf("\tWORD $0x%s // %s", hex.EncodeToString(rev), l.Src))
				empty = false
			} else {
				if !empty {
					out = append(out, "")
				}
				empty = true
			}
		}
		return out
	}
	width := 0
	for _, l := range lines {
		if w := runewidth.StringWidth(l.Src); w > width {
			width = w
		}
	}
	for _, l := range lines {
		pad := strings.Repeat(" ", width-runewidth.StringWidth(l.Src))
		out = append(out, fmt.Sprintf("%s%s %s %s%s",
			p.Paint(models.ColLineNum, fmt.Sprintf("%03d", l.Num)),
			p.Paint(models.ColPipe, "│"),
			p.Paint(models.ColAsm, l.Src),
			pad,
			p.Paint(models.ColComment, fmt.Sprintf("; %04X: ", l.Addr))+p.Paint(models.ColBytes, hex.EncodeToString(l.Bytes)),
		))
	}
	return out
}
