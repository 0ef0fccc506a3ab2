package cmd

import (
	"bytes"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/scare-emu/scare/go/models/mock"
	"github.com/scare-emu/scare/go/repl"
)

type script struct {
	lines  []string
	closed bool
}

func (s *script) Readline() (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func (s *script) SetPrompt(string) {}
func (s *script) Close() error     { s.closed = true; return nil }

func newCmd(lines ...string) (*ScareCmd, *script, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	in := &script{lines: lines}
	c := NewScareCmd()
	c.Arches = mock.Arches()
	c.Stdout, c.Stderr = &stdout, &stderr
	c.IsTerminal = false
	c.NewReader = func() (repl.LineReader, error) { return in, nil }
	return c, in, &stdout, &stderr
}

func TestFlags(t *testing.T) {
	c, in, out, _ := newCmd("nop", "/get pc sp")
	if status := c.Run([]string{"scare", "-a", "MOCK", "-base", "0x1000*2", "-stack", "0x3000"}); status != 0 {
		t.Fatalf("exit status %d", status)
	}
	if !in.closed {
		t.Fatal("reader not closed")
	}
	for _, want := range []string{
		"pc: 00000000000000000000000000002003",
		"sp: 00000000000000000000000000003000",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("missing %q in %q", want, out.String())
		}
	}
	if strings.Contains(out.String(), "Please select an architecture") {
		t.Error("-a did not select an architecture")
	}
	for _, name := range []string{"mock", "mock2"} {
		if !c.Arches[name].Asm.(*mock.Asm).Closed {
			t.Errorf("%s assembler left open", name)
		}
	}
	if !c.Arches["mock"].Variants["thumb"].Asm.(*mock.Asm).Closed {
		t.Error("variant assembler left open")
	}
}

func TestNoArch(t *testing.T) {
	c, _, out, _ := newCmd("/q")
	if status := c.Run([]string{"scare"}); status != 0 {
		t.Fatalf("exit status %d", status)
	}
	if !strings.Contains(out.String(), "Supported arches: mock, mock2") {
		t.Fatalf("got %q", out.String())
	}
}

func TestInFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "scare")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "prog.asm")
	if err := ioutil.WriteFile(path, []byte("nop ; comment\nret\n"), 0644); err != nil {
		t.Fatal(err)
	}
	c, _, out, _ := newCmd("/get pc")
	if status := c.Run([]string{"scare", "-a", "mock", "-f", path}); status != 0 {
		t.Fatalf("exit status %d", status)
	}
	if !strings.Contains(out.String(), "pc: 00000000000000000000000000400006") {
		t.Fatalf("file was not built: %q", out.String())
	}
}

func TestBadFlags(t *testing.T) {
	tests := [][]string{
		{"scare", "-a", "mips"},
		{"scare", "-a", "mock2", "-c", "thumb"},
		{"scare", "-base", "0x"},
	}
	for _, argv := range tests {
		c, _, _, stderr := newCmd()
		if status := c.Run(argv); status != 1 {
			t.Errorf("%q: exit status %d", argv, status)
		}
		if !strings.Contains(stderr.String(), "Error: ") {
			t.Errorf("%q: no error printed", argv)
		}
	}
	c, _, _, stderr := newCmd()
	if status := c.Run([]string{"scare", "-h"}); status != 0 {
		t.Fatalf("-h exit status %d", status)
	}
	if !strings.Contains(stderr.String(), "-memsize") {
		t.Fatalf("bad usage %q", stderr.String())
	}
	c, _, _, _ = newCmd()
	if status := c.Run([]string{"scare", "-bogus"}); status != 2 {
		t.Fatalf("bad flag exit status %d", status)
	}
}
