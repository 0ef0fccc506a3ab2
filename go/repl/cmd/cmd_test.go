package cmd

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	scare "github.com/scare-emu/scare/go"
	"github.com/scare-emu/scare/go/expr"
	"github.com/scare-emu/scare/go/models"
	"github.com/scare-emu/scare/go/models/mock"
)

func newContext(withSession bool) (*Context, *bytes.Buffer) {
	var out bytes.Buffer
	arches := mock.Arches()
	c := NewContext(&out, models.NewConfig(false), arches, expr.New())
	if withSession {
		c.Config.SetString(models.OptArch, "mock")
		c.Session = scare.NewSession(arches["mock"], c.Config)
	}
	return c, &out
}

func run(t *testing.T, c *Context, line string) scare.Disposition {
	d, err := Run(c, line)
	if err != nil {
		t.Fatalf("%s: %v", line, err)
	}
	return d
}

func TestRunDispositions(t *testing.T) {
	c, out := newContext(true)
	tests := map[string]scare.Disposition{
		"":       scare.None,
		"   ":    scare.None,
		"nop":    scare.AppendAndBuild,
		"/run":   scare.RebuildOnly,
		"/reset": scare.Reinitialize,
		"/bogus": scare.None,
	}
	for line, want := range tests {
		if got := run(t, c, line); got != want {
			t.Errorf("%q: got %v, want %v", line, got, want)
		}
	}
	if !strings.Contains(out.String(), "Unknown command: /bogus") {
		t.Fatalf("missing unknown command hint: %q", out.String())
	}
	for _, q := range []string{"/q", "/x", "/exit", "/quit"} {
		if _, err := Run(c, q); err != ErrQuit {
			t.Errorf("%s did not quit", q)
		}
	}
}

func TestHelp(t *testing.T) {
	c, out := newContext(false)
	for _, h := range []string{"/", "/?", "/h", "/help"} {
		out.Reset()
		run(t, c, h)
		if !strings.Contains(out.String(), "/back n") || !strings.Contains(out.String(), "Config Commands") {
			t.Fatalf("%s: bad help output %q", h, out.String())
		}
	}
}

func TestNoSession(t *testing.T) {
	c, _ := newContext(false)
	for _, line := range []string{"nop", "/regs", "/info", "/back 1", "/list"} {
		if _, err := Run(c, line); err != ErrNoEmulator {
			t.Errorf("%q: expected ErrNoEmulator, got %v", line, err)
		}
	}
	if _, err := Run(c, "/c"); err != nil {
		t.Fatal("config should work without a session")
	}
}

func TestConfigCmd(t *testing.T) {
	c, out := newContext(false)
	run(t, c, "/c")
	if !strings.Contains(out.String(), "emu/memsize = 0x800000") {
		t.Fatalf("bad config listing %q", out.String())
	}
	before := c.Config.Lines()
	if _, err := Run(c, "/c emu/bogus 1"); err == nil {
		t.Fatal("expected unknown key error")
	}
	if _, err := Run(c, "/c emu/baseaddr 0xzz"); err == nil {
		t.Fatal("expected bad value error")
	}
	after := c.Config.Lines()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("failed set changed %q to %q", before[i], after[i])
		}
	}
	run(t, c, "/config emu/stackaddr 0x1000+0x10")
	if c.Config.Int(models.OptStackAddr) != 0x1010 {
		t.Fatalf("stackaddr is %#x", c.Config.Int(models.OptStackAddr))
	}
	out.Reset()
	run(t, c, "/c emu/arch mock thumb")
	if out.String() != "emu/arch->mock/thumb\n" {
		t.Fatalf("bad echo %q", out.String())
	}
	if c.Config.Str(models.OptArch) != "mock" || c.Config.Str(models.OptCpu) != "thumb" {
		t.Fatal("arch not set")
	}
	if _, err := Run(c, "/c emu/arch mips"); err == nil {
		t.Fatal("expected invalid arch")
	}
	if _, err := Run(c, "/c emu/arch mock2 thumb"); err == nil {
		t.Fatal("expected invalid cpu")
	}
	if c.Config.Str(models.OptArch) != "mock" {
		t.Fatal("invalid arch changed the config")
	}
	_, err := Run(c, "/c a b c d")
	if _, ok := err.(*UsageError); !ok {
		t.Fatalf("expected usage error, got %v", err)
	}
	out.Reset()
	run(t, c, "/c emu/arch")
	if out.String() != "emu/arch = mock\n" {
		t.Fatalf("bad single option output %q", out.String())
	}
}

func TestBackCmd(t *testing.T) {
	c, out := newContext(true)
	for _, line := range []string{"a", "b", "c"} {
		if _, err := c.Session.Build(scare.AppendAndBuild, line); err != nil {
			t.Fatal(err)
		}
	}
	if d := run(t, c, "/back 1"); d != scare.RebuildOnly {
		t.Fatalf("got %v", d)
	}
	if !strings.Contains(out.String(), "Moved back 1 lines to line 2") {
		t.Fatalf("bad output %q", out.String())
	}
	if _, err := Run(c, "/back 9"); err == nil {
		t.Fatal("expected too far back error")
	}
	if len(c.Session.Lines()) != 2 {
		t.Fatal("failed back changed the buffer")
	}
	_, err := Run(c, "/back")
	if _, ok := err.(*UsageError); !ok {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestRegCmds(t *testing.T) {
	c, out := newContext(true)
	run(t, c, "/set r0 0x10")
	out.Reset()
	run(t, c, "/get r0 sp")
	want := "r0: 00000000000000000000000000000010\nsp: 00000000000000000000000000401000\n"
	if out.String() != want {
		t.Fatalf("got %q", out.String())
	}
	out.Reset()
	run(t, c, "/regs")
	if !strings.Contains(out.String(), "r0: 00000010") || strings.Contains(out.String(), "v0:") {
		t.Fatalf("bad register dump %q", out.String())
	}
	c.Config.SetInt(models.OptXmm, 1)
	out.Reset()
	run(t, c, "/regs")
	if !strings.Contains(out.String(), "v0: 00000000000000000000000000000000") {
		t.Fatalf("vector registers missing %q", out.String())
	}
	if _, err := Run(c, "/set nope 1"); err == nil {
		t.Fatal("expected invalid register error")
	}
	if _, err := Run(c, "/get"); err == nil {
		t.Fatal("expected usage error")
	}
}

func TestMemCmds(t *testing.T) {
	c, out := newContext(true)
	run(t, c, "/write 0x400100 414243")
	out.Reset()
	run(t, c, "/read 0x400100 3")
	if !strings.HasPrefix(out.String(), "00400100: 41 42 43 ") || !strings.HasSuffix(out.String(), " ABC\n") {
		t.Fatalf("bad dump %q", out.String())
	}
	out.Reset()
	run(t, c, "/read $sp 1")
	if !strings.HasPrefix(out.String(), "00401000: ") {
		t.Fatalf("bad register relative dump %q", out.String())
	}
	out.Reset()
	run(t, c, "/dis 0x400100 2")
	if out.String() != "0x400100: 41 db 0x41\n0x400101: 42 db 0x42\n" {
		t.Fatalf("bad disassembly %q", out.String())
	}
	if _, err := Run(c, "/write 0x400100 zz"); err == nil {
		t.Fatal("expected bad hex error")
	}
	if _, err := Run(c, "/read 0x0 4"); err == nil {
		t.Fatal("expected unmapped read error")
	}

	dir, err := ioutil.TempDir("", "scare-cmd")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "dump.bin")
	run(t, c, "/read 0x400100 3 "+path)
	if data, err := ioutil.ReadFile(path); err != nil || string(data) != "ABC" {
		t.Fatalf("bad memory file %q", data)
	}
	src := "./" + filepath.Base(path)
	wd, _ := os.Getwd()
	os.Chdir(dir)
	defer os.Chdir(wd)
	run(t, c, "/write 0x400200 "+src)
	if mem, _ := c.Session.MemRead(0x400200, 3); string(mem) != "ABC" {
		t.Fatalf("file write failed: %q", mem)
	}
}

func TestListCmd(t *testing.T) {
	c, out := newContext(true)
	run(t, c, "/list")
	if out.String() != "No instructions!\n" {
		t.Fatalf("got %q", out.String())
	}
	c.Session.SetLines([]string{"nop", "ret"})
	out.Reset()
	run(t, c, "/l plan9")
	if out.String() != "\tWORD $0x706f6e // nop\n\tWORD $0x746572 // ret\n" {
		t.Fatalf("got %q", out.String())
	}
	if _, err := Run(c, "/list bogus"); err == nil {
		t.Fatal("expected usage error")
	}
}

func TestInfoCmd(t *testing.T) {
	c, out := newContext(true)
	run(t, c, "/info")
	for _, want := range []string{"arch_name: mock", "base_addr: 00400000", "status: UNINITIALIZED"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("info missing %q: %q", want, out.String())
		}
	}
}

func TestFileCmds(t *testing.T) {
	c, out := newContext(true)
	dir, err := ioutil.TempDir("", "scare-cmd")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	if _, err := c.Session.Build(scare.AppendAndBuild, "nop"); err != nil {
		t.Fatal(err)
	}
	src := filepath.Join(dir, "prog.asm")
	run(t, c, "/save "+src)
	c.Session.SetLines(nil)
	run(t, c, "/load "+src)
	if lines := c.Session.Lines(); len(lines) != 1 || lines[0] != "nop" {
		t.Fatalf("load got %q", lines)
	}

	bin := filepath.Join(dir, "prog.elf")
	if _, err := Run(c, "/export elf64 "+bin); err == nil {
		t.Fatal("mock arch can't be exported as elf64")
	}
	if _, err := os.Stat(bin); !os.IsNotExist(err) {
		t.Fatal("failed export created the file")
	}
	raw := filepath.Join(dir, "prog.bin")
	run(t, c, "/export raw "+raw)
	if data, _ := ioutil.ReadFile(raw); string(data) != "nop" {
		t.Fatalf("raw export got %q", data)
	}

	state := filepath.Join(dir, "prog.state")
	run(t, c, "/set r1 7")
	run(t, c, "/savestate "+state)
	run(t, c, "/set r1 0")
	run(t, c, "/loadstate "+state)
	if v, _ := c.Session.RegRead("r1"); v.Val != 7 {
		t.Fatal("loadstate did not restore r1")
	}
	if !strings.Contains(out.String(), "Saved state to ") {
		t.Fatalf("got %q", out.String())
	}
}

func TestPrintError(t *testing.T) {
	c, out := newContext(false)
	c.PrintError(models.NewEngineError("asm", ErrNoEmulator))
	if out.String() != "[[: asm Error :]]\nNo emulator running!\n" {
		t.Fatalf("got %q", out.String())
	}
	out.Reset()
	c.PrintError(&UsageError{Cmd: Commands["back"]})
	if out.String() != "Usage: /back n\n" {
		t.Fatalf("got %q", out.String())
	}
}
