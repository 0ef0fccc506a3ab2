package expr

import (
	"testing"

	"github.com/scare-emu/scare/go/models"
)

func TestEvalLiterals(t *testing.T) {
	e := New()
	defer e.Close()
	tests := map[string]uint64{
		"10":       10,
		"0x400000": 0x400000,
		"0b101":    5,
		" 0x10 ":   0x10,
		"-1":       0xffffffffffffffff,
	}
	for in, want := range tests {
		got, err := e.Eval(in, nil)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if got != want {
			t.Errorf("Eval(%q) = %#x, want %#x", in, got, want)
		}
	}
}

func TestEvalArithmetic(t *testing.T) {
	e := New()
	defer e.Close()
	tests := map[string]uint64{
		"0x400000 + 0x1000": 0x401000,
		"8 * 1024 * 1024":   0x800000,
		"7 / 2":             3,
		"int('0x20')":       0x20,
	}
	for in, want := range tests {
		got, err := e.Eval(in, nil)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if got != want {
			t.Errorf("Eval(%q) = %#x, want %#x", in, got, want)
		}
	}
}

func TestEvalRegisters(t *testing.T) {
	e := New()
	defer e.Close()
	regs := []models.RegVal{{Reg: models.Reg{Name: "rsp", Bits: 64}, Val: 0x401000}}
	got, err := e.Eval("rsp - 8", regs)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0x400ff8 {
		t.Fatalf("got %#x", got)
	}
	for _, in := range []string{"rsp - 8", "rsp -8", "rsp-8", "rsp- 8", "(rsp - 16) + 8"} {
		got, err := e.Eval(in, regs)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if got != 0x400ff8 {
			t.Errorf("Eval(%q) = %#x", in, got)
		}
	}
	// registers from a previous call are unbound
	if _, err := e.Eval("rsp - 8", nil); err == nil {
		t.Fatal("expected error for unbound register")
	}
}

func TestEvalErrors(t *testing.T) {
	e := New()
	defer e.Close()
	for _, in := range []string{"", "1 +", "'abc'", "nil"} {
		if _, err := e.Eval(in, nil); err == nil {
			t.Errorf("Eval(%q) should fail", in)
		}
	}
}
