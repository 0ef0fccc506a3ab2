package models

import (
	"github.com/mgutz/ansi"
)

var (
	ColRegName = ansi.ColorCode("white+h")
	ColGReg    = ansi.ColorCode("green+b")
	ColZero    = ansi.ColorCode("black+h")
	ColIP      = ansi.ColorCode("magenta+b")
	ColSP      = ansi.ColorCode("yellow+b")
	ColErr     = ansi.ColorCode("red+b")
	ColInfo    = ansi.ColorCode("cyan")
	ColArch    = ansi.ColorCode("blue+b")
	ColLineNum = ansi.ColorCode("black+h")
	ColPipe    = ansi.ColorCode("blue")
	ColAsm     = ansi.ColorCode("white")
	ColComment = ansi.ColorCode("black+h")
	ColBytes   = ansi.ColorCode("cyan")
)

// Palette paints strings with ANSI codes when enabled.
type Palette struct {
	Enabled bool
}

func (p Palette) Paint(color, s string) string {
	if !p.Enabled || color == "" {
		return s
	}
	return color + s + ansi.Reset
}
