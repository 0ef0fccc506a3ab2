package scare

import (
	"github.com/charmbracelet/log"
)

// Disposition tells the build loop what to do after a line was interpreted.
type Disposition int

const (
	// None means the line was fully handled.
	None Disposition = iota
	// AppendAndBuild appends the line as assembly and builds.
	AppendAndBuild
	// RebuildOnly builds the buffer as it stands.
	RebuildOnly
	// Reinitialize replaces the session with a fresh one.
	Reinitialize
)

func (d Disposition) String() string {
	switch d {
	case None:
		return "NONE"
	case AppendAndBuild:
		return "APPEND_AND_BUILD"
	case RebuildOnly:
		return "REBUILD_ONLY"
	case Reinitialize:
		return "REINITIALIZE"
	}
	return "UNKNOWN"
}

// Build appends line when asked, reassembles the whole buffer and runs it.
// A failed assembly drops the appended line and keeps the previous machine code.
// It reports whether the program ran to completion.
func (s *Session) Build(d Disposition, line string) (ran bool, err error) {
	if d != AppendAndBuild && d != RebuildOnly {
		return false, nil
	}
	if d == AppendAndBuild {
		s.lines = append(s.lines, line)
	}
	if len(s.lines) == 0 {
		s.code = nil
		s.addr = s.Base
		return false, nil
	}
	code, err := s.Assemble(s.lines)
	if err != nil {
		if d == AppendAndBuild {
			s.lines = s.lines[:len(s.lines)-1]
		}
		log.Debug("assembly failed", "lines", len(s.lines), "err", err)
		return false, err
	}
	s.code = code
	log.Debug("assembled", "lines", len(s.lines), "bytes", len(code))
	if err := s.Run(); err != nil {
		return false, err
	}
	return true, nil
}
