package models

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

type RegClass int

const (
	GeneralPurpose RegClass = iota
	InstructionPointer
	StackPointer
)

func (c RegClass) String() string {
	switch c {
	case GeneralPurpose:
		return "general-purpose"
	case InstructionPointer:
		return "instruction-pointer"
	case StackPointer:
		return "stack-pointer"
	}
	return fmt.Sprintf("RegClass(%d)", int(c))
}

type Reg struct {
	Name  string
	Enum  int
	Class RegClass
	Bits  int
}

// RegVal holds a register value. Hi is only used by 128-bit registers.
type RegVal struct {
	Reg
	Val uint64
	Hi  uint64
}

func (r RegVal) Hex() (string, error) {
	return regHex(r.Val, r.Hi, r.Bits)
}

func regHex(val, hi uint64, bits int) (string, error) {
	switch bits {
	case 8, 16, 32, 64:
		mask := ^uint64(0) >> uint(64-bits)
		return fmt.Sprintf("%0*x", bits/4, val&mask), nil
	case 128:
		return fmt.Sprintf("%016x%016x", hi, val), nil
	}
	return "", errors.Errorf("unknown register size: %d", bits)
}

// FormatReg zero-pads the value to bits/4 hex digits and colors it by class.
// General purpose registers holding zero are dimmed.
func FormatReg(p Palette, val, hi uint64, class RegClass, bits int) (string, error) {
	s, err := regHex(val, hi, bits)
	if err != nil {
		return "", err
	}
	var color string
	switch class {
	case GeneralPurpose:
		if val == 0 && hi == 0 {
			color = ColZero
		} else {
			color = ColGReg
		}
	case InstructionPointer:
		color = ColIP
	case StackPointer:
		color = ColSP
	default:
		return "", errors.Errorf("unknown register type: %v", class)
	}
	return p.Paint(color, s), nil
}

// RegTable renders register values following a row layout.
// Names are right aligned per column; names missing from vals are skipped.
func RegTable(p Palette, vals []RegVal, layout [][]string) ([]string, error) {
	byName := make(map[string]RegVal, len(vals))
	for _, v := range vals {
		byName[v.Name] = v
	}
	var widths []int
	for _, row := range layout {
		for i, name := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if len(name) > widths[i] {
				widths[i] = len(name)
			}
		}
	}
	var out []string
	for _, row := range layout {
		cells := make([]string, 0, len(row))
		for i, name := range row {
			v, ok := byName[name]
			if !ok {
				continue
			}
			s, err := FormatReg(p, v.Val, v.Hi, v.Class, v.Bits)
			if err != nil {
				return nil, errors.Wrap(err, name)
			}
			label := strings.Repeat(" ", widths[i]-len(name)) + name + ":"
			cells = append(cells, p.Paint(ColRegName, label)+" "+s)
		}
		if len(cells) > 0 {
			out = append(out, strings.Join(cells, " "))
		}
	}
	return out, nil
}
