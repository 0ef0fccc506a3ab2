package scare

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"github.com/scare-emu/scare/go/models"
	"github.com/scare-emu/scare/go/models/cpu"
)

type Status int

const (
	Uninitialized Status = iota
	ReadyToRun
	Ran
)

func (s Status) String() string {
	switch s {
	case Uninitialized:
		return "UNINITIALIZED"
	case ReadyToRun:
		return "READY_TO_RUN"
	case Ran:
		return "RAN"
	}
	return "UNKNOWN"
}

var ErrNoWideRegs = errors.New("this emulator backend cannot read 128-bit registers")

// Session holds one program being built and the machine it runs in.
type Session struct {
	arch *models.Arch

	Base    uint64
	Stack   uint64
	MemSize uint64

	lines  []string
	code   []byte
	status Status
	addr   uint64
	cpu    cpu.Cpu
}

func NewSession(arch *models.Arch, cfg *models.Config) *Session {
	base := cfg.Int(models.OptBaseAddr)
	return &Session{
		arch:    arch,
		Base:    base,
		Stack:   cfg.Int(models.OptStackAddr),
		MemSize: cfg.Int(models.OptMemSize),
		addr:    base,
	}
}

func (s *Session) Arch() *models.Arch {
	return s.arch
}

func (s *Session) Lines() []string {
	return append([]string(nil), s.lines...)
}

// SetLines replaces the program without building it.
func (s *Session) SetLines(lines []string) {
	s.lines = append([]string(nil), lines...)
	s.addr = s.Base
}

func (s *Session) Code() []byte {
	return s.code
}

func (s *Session) Status() Status {
	return s.status
}

// Addr is the instruction pointer after the last run.
func (s *Session) Addr() uint64 {
	return s.addr
}

// Back drops the last n lines. Asking for more lines than exist changes nothing.
func (s *Session) Back(n int) error {
	if n < 0 {
		return errors.Errorf("Can't go back %d lines", n)
	}
	if n > len(s.lines) {
		return errors.Errorf("Too far back! You're currently on line %d", len(s.lines))
	}
	s.lines = s.lines[:len(s.lines)-n]
	return nil
}

// Assemble joins lines into one program at the base address.
func (s *Session) Assemble(lines []string) ([]byte, error) {
	code, err := s.arch.Asm.Asm(strings.Join(lines, "; "), s.Base)
	if err != nil {
		return nil, models.NewEngineError("asm", err)
	}
	return code, nil
}

// Cpu returns the emulated machine, allocating the memory image on first use.
func (s *Session) Cpu() (cpu.Cpu, error) {
	if s.cpu != nil {
		return s.cpu, nil
	}
	c, err := s.arch.Cpu.New()
	if err != nil {
		return nil, models.NewEngineError("init", err)
	}
	if err := c.MemMap(s.Base, s.MemSize, cpu.PROT_ALL); err != nil {
		c.Close()
		return nil, models.NewEngineError("init", errors.Wrapf(err, "mapping %#x bytes at %#x", s.MemSize, s.Base))
	}
	if err := c.RegWrite(s.arch.SP, s.Stack); err != nil {
		c.Close()
		return nil, models.NewEngineError("init", err)
	}
	log.Debug("allocated memory image", "arch", s.arch.Name, "base", s.Base, "size", s.MemSize)
	s.cpu = c
	s.status = ReadyToRun
	return c, nil
}

// Run loads the current machine code at the base address and executes all of it.
// The instruction pointer is recorded even when execution fails.
func (s *Session) Run() error {
	c, err := s.Cpu()
	if err != nil {
		return err
	}
	if err := c.MemWrite(s.Base, s.code); err != nil {
		return models.NewEngineError("run", err)
	}
	if err := c.RegWrite(s.arch.SP, s.Stack); err != nil {
		return models.NewEngineError("run", err)
	}
	begin, end := s.Base, s.Base+uint64(len(s.code))
	if s.arch.Thumb {
		begin |= 1
	}
	log.Debug("run", "begin", begin, "end", end)
	runErr := c.Start(begin, end)
	if pc, err := c.RegRead(s.arch.PC); err == nil {
		s.addr = pc
	}
	if runErr != nil {
		return models.NewEngineError("run", runErr)
	}
	s.status = Ran
	return nil
}

func (s *Session) Close() error {
	if s.cpu == nil {
		return nil
	}
	err := s.cpu.Close()
	s.cpu = nil
	s.status = Uninitialized
	return errors.Wrap(err, "closing emulator")
}

func (s *Session) lookupReg(name string) (models.Reg, error) {
	r, ok := s.arch.Reg(name)
	if !ok {
		return r, errors.Errorf("Invalid register: %s", name)
	}
	return r, nil
}

func (s *Session) readReg(c cpu.Cpu, r models.Reg) (models.RegVal, error) {
	if r.Bits == 128 {
		wide, ok := c.(cpu.WideRegReader)
		if !ok {
			return models.RegVal{}, ErrNoWideRegs
		}
		lo, hi, err := wide.RegReadWide(r.Enum)
		if err != nil {
			return models.RegVal{}, models.NewEngineError("readReg", err)
		}
		return models.RegVal{Reg: r, Val: lo, Hi: hi}, nil
	}
	val, err := c.RegRead(r.Enum)
	if err != nil {
		return models.RegVal{}, models.NewEngineError("readReg", err)
	}
	return models.RegVal{Reg: r, Val: val}, nil
}

func (s *Session) RegRead(name string) (models.RegVal, error) {
	r, err := s.lookupReg(name)
	if err != nil {
		return models.RegVal{}, err
	}
	c, err := s.Cpu()
	if err != nil {
		return models.RegVal{}, err
	}
	return s.readReg(c, r)
}

func (s *Session) RegWrite(name string, val uint64) error {
	r, err := s.lookupReg(name)
	if err != nil {
		return err
	}
	if r.Bits > 64 {
		return errors.Errorf("%s is a %d-bit register and can't be set", r.Name, r.Bits)
	}
	c, err := s.Cpu()
	if err != nil {
		return err
	}
	return models.NewEngineError("writeReg", c.RegWrite(r.Enum, val))
}

func (s *Session) dump(regs []models.Reg) ([]models.RegVal, error) {
	c, err := s.Cpu()
	if err != nil {
		return nil, err
	}
	out := make([]models.RegVal, 0, len(regs))
	for _, r := range regs {
		v, err := s.readReg(c, r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// RegDump reads the base register directory.
func (s *Session) RegDump() ([]models.RegVal, error) {
	return s.dump(s.arch.Regs)
}

// ExtDump reads the optional vector registers.
func (s *Session) ExtDump() ([]models.RegVal, error) {
	if s.arch.Ext == nil {
		return nil, nil
	}
	return s.dump(s.arch.Ext.Regs)
}

func (s *Session) MemRead(addr, size uint64) ([]byte, error) {
	c, err := s.Cpu()
	if err != nil {
		return nil, err
	}
	mem, err := c.MemRead(addr, size)
	return mem, models.NewEngineError("readMem", err)
}

func (s *Session) MemWrite(addr uint64, p []byte) error {
	c, err := s.Cpu()
	if err != nil {
		return err
	}
	return models.NewEngineError("writeMem", c.MemWrite(addr, p))
}

func (s *Session) Dis(addr, size uint64) ([]models.Ins, error) {
	mem, err := s.MemRead(addr, size)
	if err != nil {
		return nil, err
	}
	dis, err := s.arch.Dis.Dis(mem, addr)
	return dis, models.NewEngineError("dis", err)
}
