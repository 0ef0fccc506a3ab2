package models

import (
	"encoding/hex"
	"fmt"
	"strings"
)

type Ins interface {
	Addr() uint64
	Bytes() []byte
	Mnemonic() string
	OpStr() string
}

// InsLine renders one decoded instruction as "0xADDR: bytes mnemonic operands".
func InsLine(p Palette, ins Ins, width int) string {
	b := hex.EncodeToString(ins.Bytes())
	if pad := width*2 - len(b); pad > 0 {
		b += strings.Repeat(" ", pad)
	}
	asm := strings.TrimRight(ins.Mnemonic()+" "+ins.OpStr(), " ")
	return fmt.Sprintf("0x%x: %s %s", ins.Addr(), p.Paint(ColBytes, b), p.Paint(ColAsm, asm))
}

// InsLines renders a run of instructions with the byte column sized to the widest one.
func InsLines(p Palette, dis []Ins) []string {
	width := 0
	for _, ins := range dis {
		if n := len(ins.Bytes()); n > width {
			width = n
		}
	}
	out := make([]string, len(dis))
	for i, ins := range dis {
		out[i] = InsLine(p, ins, width)
	}
	return out
}
