package models

import (
	"io"
	"sort"
	"strings"
	"testing"

	"github.com/lunixbochs/fvbommel-util/sortorder"
	"github.com/pkg/errors"

	"github.com/scare-emu/scare/go/models/cpu"
)

type Assembler interface {
	Asm(asm string, addr uint64) ([]byte, error)
}

type Disassembler interface {
	Dis(mem []byte, addr uint64) ([]Ins, error)
}

// RegSet is an optional group of registers shown only when its config toggle is set.
type RegSet struct {
	Option string
	Regs   []Reg
	Layout [][]string
}

type Arch struct {
	Name string
	Bits int
	// Thumb starts execution with the low address bit set.
	Thumb bool

	Cpu cpu.Builder
	Dis Disassembler
	Asm Assembler

	PC, SP int
	Regs   []Reg
	// Layout lists register names row by row for the register dump.
	Layout [][]string
	Ext    *RegSet

	// Variants maps a cpu name (emu/cpu) to an alternate arch definition.
	Variants map[string]*Arch

	index map[string]Reg
}

func (a *Arch) buildIndex() {
	a.index = make(map[string]Reg, len(a.Regs))
	for _, r := range a.Regs {
		a.index[r.Name] = r
	}
	if a.Ext != nil {
		for _, r := range a.Ext.Regs {
			a.index[r.Name] = r
		}
	}
}

// Reg looks up a register by name in the base and extended sets.
func (a *Arch) Reg(name string) (Reg, bool) {
	if a.index == nil {
		a.buildIndex()
	}
	r, ok := a.index[strings.ToLower(name)]
	return r, ok
}

func (a *Arch) RegByEnum(enum int) (Reg, bool) {
	for _, r := range a.Regs {
		if r.Enum == enum {
			return r, true
		}
	}
	return Reg{}, false
}

// Variant resolves a cpu name. The empty name is the arch itself.
func (a *Arch) Variant(name string) (*Arch, error) {
	name = strings.ToLower(name)
	if name == "" || name == a.Name {
		return a, nil
	}
	if v, ok := a.Variants[name]; ok {
		return v, nil
	}
	return nil, errors.Errorf("Invalid cpu! Supported cpus: %s", strings.Join(a.CpuNames(), ", "))
}

func (a *Arch) CpuNames() []string {
	names := make([]string, 0, len(a.Variants))
	for name := range a.Variants {
		names = append(names, name)
	}
	sort.Sort(sortorder.Natural(names))
	return names
}

// SmokeTest checks the emulator can round-trip the stack pointer and read every listed register.
func (a *Arch) SmokeTest(t *testing.T) {
	c, err := a.Cpu.New()
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	if err := c.RegWrite(a.SP, 0x1000); err != nil {
		t.Fatal(err)
	}
	val, err := c.RegRead(a.SP)
	if err != nil {
		t.Fatal(err)
	}
	if val != 0x1000 {
		t.Fatal(a.Name + " failed to read/write stack pointer")
	}
	for _, r := range a.Regs {
		if _, err := c.RegRead(r.Enum); err != nil {
			t.Fatalf("%s: reading %s: %v", a.Name, r.Name, err)
		}
	}
}

// TestExec assembles src, runs it in a fresh machine and checks the pc lands on the end.
func (a *Arch) TestExec(t *testing.T, src string) {
	const base = 0x1000
	code, err := a.Asm.Asm(src, base)
	if err != nil {
		t.Fatal(err)
	}
	c, err := a.Cpu.New()
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	if err := c.MemMap(base, 0x2000, cpu.PROT_ALL); err != nil {
		t.Fatal(err)
	}
	if err := c.MemWrite(base, code); err != nil {
		t.Fatal(err)
	}
	if err := c.RegWrite(a.SP, base+0x2000); err != nil {
		t.Fatal(err)
	}
	begin := uint64(base)
	if a.Thumb {
		begin |= 1
	}
	if err := c.Start(begin, base+uint64(len(code))); err != nil {
		t.Fatal(err)
	}
	pc, err := c.RegRead(a.PC)
	if err != nil {
		t.Fatal(err)
	}
	if pc != base+uint64(len(code)) {
		t.Fatalf("%s: pc stopped at %#x", a.Name, pc)
	}
	dis, err := a.Dis.Dis(code, base)
	if err != nil {
		t.Fatal(err)
	}
	if len(dis) == 0 {
		t.Fatalf("%s: no instructions disassembled", a.Name)
	}
}

var archAliases = map[string]string{
	"x86_64":  "x64",
	"x86-64":  "x64",
	"amd64":   "x64",
	"i386":    "x86",
	"arm":     "arm32",
	"aarch64": "arm64",
}

// ArchSet is the closed set of architectures the REPL can drive.
type ArchSet map[string]*Arch

func (s ArchSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Sort(sortorder.Natural(names))
	return names
}

// Canonical maps aliases like x86_64 or aarch64 to the registered name.
func (s ArchSet) Canonical(name string) (string, bool) {
	name = strings.ToLower(name)
	if alias, ok := archAliases[name]; ok {
		name = alias
	}
	_, ok := s[name]
	return name, ok
}

func (s ArchSet) Lookup(name, variant string) (*Arch, error) {
	canon, ok := s.Canonical(name)
	if !ok {
		return nil, errors.Errorf("Invalid arch! Supported arches: %s", strings.Join(s.Names(), ", "))
	}
	return s[canon].Variant(variant)
}

// Close releases the assembler and disassembler engines of every arch and variant.
func (s ArchSet) Close() error {
	var first error
	closeArch := func(a *Arch) {
		for _, e := range []interface{}{a.Asm, a.Dis} {
			if c, ok := e.(io.Closer); ok {
				if err := c.Close(); err != nil && first == nil {
					first = errors.Wrap(err, a.Name)
				}
			}
		}
	}
	for _, a := range s {
		closeArch(a)
		for _, v := range a.Variants {
			closeArch(v)
		}
	}
	return first
}
