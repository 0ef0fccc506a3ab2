package x86

import (
	"testing"

	"github.com/scare-emu/scare/go/models"
)

var testAsm = `
mov eax, 100
l1:
dec eax
cmp eax, 0
jg l1
`

func TestX86(t *testing.T)     { Arch.SmokeTest(t) }
func TestX86Exec(t *testing.T) { Arch.TestExec(t, testAsm) }

func TestX86Regs(t *testing.T) {
	if r, ok := Arch.Reg("EIP"); !ok || r.Class != models.InstructionPointer {
		t.Fatal("eip lookup failed")
	}
	if r, ok := Arch.Reg("xmm31"); !ok || r.Bits != 128 {
		t.Fatal("xmm31 lookup failed")
	}
	if _, ok := Arch.Reg("rax"); ok {
		t.Fatal("x86 should not have rax")
	}
}
