package models

import (
	"strings"
	"testing"
)

func TestHexDumpRows(t *testing.T) {
	mem := []byte("ABCDEFGHIJKLMNOP\x00")
	lines := HexDump(0x400000, mem)
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "00400000: 41 42 43") {
		t.Errorf("bad first row: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "00400010: 00 ") {
		t.Errorf("bad second row: %q", lines[1])
	}
	// ascii column starts at the same offset on both rows
	a := strings.LastIndex(lines[0], " ")
	b := strings.LastIndex(lines[1], " ")
	if a != b {
		t.Errorf("hex column width differs: %d != %d", a, b)
	}
	if !strings.HasSuffix(lines[0], "ABCDEFGHIJKLMNOP") || !strings.HasSuffix(lines[1], " .") {
		t.Errorf("bad ascii column: %q %q", lines[0], lines[1])
	}
}

func TestHexDumpNonPrintable(t *testing.T) {
	lines := HexDump(0, []byte{0x7f, 0x80, 'a', '\n'})
	if !strings.HasSuffix(lines[0], " ..a.") {
		t.Fatalf("bad ascii rendering: %q", lines[0])
	}
}

func TestHexDumpEmpty(t *testing.T) {
	if lines := HexDump(0, nil); len(lines) != 0 {
		t.Fatalf("expected no rows, got %v", lines)
	}
}
