package mock

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/scare-emu/scare/go/models"
)

// Asm is a scripted assembler. Statements are separated by ';' and each
// encodes to its own trimmed text. Statements starting with "bad" fail,
// a "name:" prefix defines a label and "jmp name" fails unless the label is defined.
type Asm struct {
	Calls  int
	Closed bool
}

func (a *Asm) Close() error {
	a.Closed = true
	return nil
}

func (a *Asm) Asm(src string, addr uint64) ([]byte, error) {
	a.Calls++
	var stmts []string
	labels := make(map[string]bool)
	for _, s := range strings.Split(src, ";") {
		s = strings.TrimSpace(s)
		if i := strings.Index(s, ":"); i > 0 && !strings.ContainsAny(s[:i], " \t") {
			name := s[:i]
			if labels[name] {
				return nil, errors.Errorf("symbol redefined: %s", name)
			}
			labels[name] = true
			if s = strings.TrimSpace(s[i+1:]); s == "" {
				continue
			}
		}
		stmts = append(stmts, s)
	}
	var out []byte
	for _, s := range stmts {
		if strings.HasPrefix(s, "bad") {
			return nil, errors.Errorf("invalid operand: %s", s)
		}
		if strings.HasPrefix(s, "jmp ") {
			target := strings.TrimSpace(strings.TrimPrefix(s, "jmp "))
			if !labels[target] {
				return nil, errors.Errorf("undefined symbol: %s", target)
			}
		}
		out = append(out, s...)
	}
	return out, nil
}

var _ models.Assembler = &Asm{}

type Ins struct {
	addr uint64
	b    byte
}

func (i *Ins) Addr() uint64     { return i.addr }
func (i *Ins) Bytes() []byte    { return []byte{i.b} }
func (i *Ins) Mnemonic() string { return "db" }
func (i *Ins) OpStr() string    { return fmt.Sprintf("0x%02x", i.b) }

// Dis decodes every byte as a one byte data directive.
type Dis struct{}

func (d *Dis) Dis(mem []byte, addr uint64) ([]models.Ins, error) {
	out := make([]models.Ins, len(mem))
	for i, b := range mem {
		out[i] = &Ins{addr + uint64(i), b}
	}
	return out, nil
}
