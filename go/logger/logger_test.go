package logger

import (
	"testing"

	"github.com/charmbracelet/log"
)

func TestInitLevels(t *testing.T) {
	Init(true, true)
	if log.GetLevel() != log.DebugLevel {
		t.Fatal("debug logging not enabled")
	}
	Init(false, true)
	if log.GetLevel() != log.WarnLevel {
		t.Fatal("expected warn level without -v")
	}
}
