package scare

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"

	"github.com/scare-emu/scare/go/export"
	"github.com/scare-emu/scare/go/models"
	"github.com/scare-emu/scare/go/models/mock"
)

const base = 0x400000

func newSession() (*Session, *mock.Builder) {
	a := mock.Arch("mock")
	return NewSession(a, models.NewConfig(false)), a.Cpu.(*mock.Builder)
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestBuildRoundTrip(t *testing.T) {
	s, _ := newSession()
	for _, line := range []string{"nop", "mov r0, 1", "L:", "ret"} {
		ran, err := s.Build(AppendAndBuild, line)
		if err != nil {
			t.Fatal(err)
		}
		if !ran {
			t.Fatalf("%q did not run", line)
		}
		direct, err := s.Assemble(s.Lines())
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(direct, s.Code()) {
			t.Fatalf("machine code %q does not match buffer %q", s.Code(), direct)
		}
	}
	if s.Status() != Ran {
		t.Fatalf("status is %v", s.Status())
	}
	if s.Addr() != base+uint64(len(s.Code())) {
		t.Fatalf("addr %#x", s.Addr())
	}
}

func TestBuildRollback(t *testing.T) {
	s, _ := newSession()
	if _, err := s.Build(AppendAndBuild, "nop"); err != nil {
		t.Fatal(err)
	}
	lines, code := s.Lines(), s.Code()
	_, err := s.Build(AppendAndBuild, "bad op")
	if err == nil {
		t.Fatal("expected assembly error")
	}
	if e, ok := err.(*models.EngineError); !ok || e.Op != "asm" {
		t.Fatalf("expected asm engine error, got %#v", err)
	}
	if !equal(lines, s.Lines()) || !bytes.Equal(code, s.Code()) {
		t.Fatal("failed append changed the session")
	}
}

func TestBack(t *testing.T) {
	s, _ := newSession()
	for _, line := range []string{"a", "b", "c"} {
		if _, err := s.Build(AppendAndBuild, line); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Back(4); err == nil {
		t.Fatal("expected too far back error")
	}
	if len(s.Lines()) != 3 {
		t.Fatal("failed back changed the buffer")
	}
	if err := s.Back(0); err != nil || len(s.Lines()) != 3 {
		t.Fatal("back 0 should keep every line")
	}
	if err := s.Back(2); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Build(RebuildOnly, ""); err != nil {
		t.Fatal(err)
	}
	if !equal(s.Lines(), []string{"a"}) || string(s.Code()) != "a" {
		t.Fatalf("got %q / %q", s.Lines(), s.Code())
	}
	if err := s.Back(1); err != nil {
		t.Fatal(err)
	}
	ran, err := s.Build(RebuildOnly, "")
	if err != nil || ran {
		t.Fatal("empty rebuild should do nothing")
	}
	if s.Addr() != base {
		t.Fatalf("empty buffer should reset addr, got %#x", s.Addr())
	}
	if len(s.Code()) != 0 {
		t.Fatalf("machine code %q left over for an empty program", s.Code())
	}
	dir, err := ioutil.TempDir("", "scare-back")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "prog.bin")
	_, err = export.ExportFile(path, s.Code(), "bin", s.Arch().Name)
	if err == nil || err.Error() != "No machine code to export!" {
		t.Fatalf("export after backing out every line: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("failed export created the file")
	}
}

func TestRunFailure(t *testing.T) {
	s, b := newSession()
	b.Hook = func(c *mock.Cpu) {
		c.FailStart = errors.New("Invalid instruction (UC_ERR_INSN_INVALID)")
		c.FailPC = base + 1
	}
	_, err := s.Build(AppendAndBuild, "ud2")
	if e, ok := err.(*models.EngineError); !ok || e.Op != "run" {
		t.Fatalf("expected run engine error, got %v", err)
	}
	if s.Status() != ReadyToRun {
		t.Fatalf("status is %v", s.Status())
	}
	if s.Addr() != base+1 {
		t.Fatalf("pc not recorded after failure: %#x", s.Addr())
	}
	if !equal(s.Lines(), []string{"ud2"}) {
		t.Fatal("run failure should keep the line")
	}
	// the image is reused on the next run
	if _, err := s.Build(RebuildOnly, ""); err != nil {
		t.Fatal(err)
	}
	if b.Last.Starts != 2 || s.Status() != Ran {
		t.Fatal("second run did not reuse the emulator")
	}
}

func TestStatusLifecycle(t *testing.T) {
	s, b := newSession()
	if s.Status() != Uninitialized {
		t.Fatal("new session should be uninitialized")
	}
	if err := s.RegWrite("r0", 5); err != nil {
		t.Fatal(err)
	}
	if s.Status() != ReadyToRun {
		t.Fatal("register write should allocate the image")
	}
	if _, err := s.Build(AppendAndBuild, "nop"); err != nil {
		t.Fatal(err)
	}
	v, err := s.RegRead("R0")
	if err != nil || v.Val != 5 {
		t.Fatal("register write before the first run was lost")
	}
	sp, _ := s.RegRead("sp")
	if sp.Val != 0x401000 {
		t.Fatalf("stack pointer %#x", sp.Val)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if s.Status() != Uninitialized || !b.Last.Closed {
		t.Fatal("close should release the emulator")
	}
}

func TestRegisters(t *testing.T) {
	s, b := newSession()
	if _, err := s.RegRead("rax"); err == nil {
		t.Fatal("expected invalid register error")
	}
	if err := s.RegWrite("v0", 1); err == nil {
		t.Fatal("128-bit registers can't be set")
	}
	if _, err := s.Cpu(); err != nil {
		t.Fatal(err)
	}
	b.Last.SetWide(mock.RegV0, 1, 2)
	ext, err := s.ExtDump()
	if err != nil {
		t.Fatal(err)
	}
	if len(ext) != 1 || ext[0].Val != 1 || ext[0].Hi != 2 {
		t.Fatalf("bad vector dump %+v", ext)
	}
	regs, err := s.RegDump()
	if err != nil || len(regs) != 4 {
		t.Fatalf("bad register dump %+v", regs)
	}
}

func TestMemory(t *testing.T) {
	s, _ := newSession()
	if err := s.MemWrite(base+0x100, []byte{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	mem, err := s.MemRead(base+0x100, 3)
	if err != nil || !bytes.Equal(mem, []byte{1, 2, 3}) {
		t.Fatal("memory round trip failed")
	}
	if _, err := s.MemRead(0, 4); err == nil {
		t.Fatal("expected unmapped read error")
	}
	dis, err := s.Dis(base+0x100, 3)
	if err != nil || len(dis) != 3 || dis[2].Addr() != base+0x102 {
		t.Fatalf("bad disassembly %v", dis)
	}
}

func TestInitFailure(t *testing.T) {
	s, b := newSession()
	b.Fail = errors.New("no backend")
	_, err := s.Build(AppendAndBuild, "nop")
	if e, ok := err.(*models.EngineError); !ok || e.Op != "init" {
		t.Fatalf("expected init error, got %v", err)
	}
	if s.Status() != Uninitialized {
		t.Fatal("failed init changed the status")
	}
}
