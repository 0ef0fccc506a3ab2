package mock

import (
	"github.com/pkg/errors"

	"github.com/scare-emu/scare/go/models/cpu"
)

type region struct {
	addr uint64
	mem  []byte
}

// Cpu is a flat memory emulator that "executes" by jumping to the end address.
type Cpu struct {
	PC int

	// FailStart makes the next Start return this error.
	FailStart error
	// FailPC is where the PC stops when FailStart is set.
	FailPC uint64

	Starts int
	Closed bool

	regions []region
	regs    map[int]uint64
	wide    map[int]uint64
}

func NewCpu(pc int) *Cpu {
	return &Cpu{PC: pc, regs: make(map[int]uint64), wide: make(map[int]uint64)}
}

func (c *Cpu) find(addr, size uint64) ([]byte, error) {
	for _, r := range c.regions {
		if addr >= r.addr && addr+size <= r.addr+uint64(len(r.mem)) {
			off := addr - r.addr
			return r.mem[off : off+size], nil
		}
	}
	return nil, errors.Errorf("Invalid memory read (UC_ERR_READ_UNMAPPED) at %#x", addr)
}

func (c *Cpu) MemMap(addr, size uint64, prot int) error {
	for _, r := range c.regions {
		if addr < r.addr+uint64(len(r.mem)) && r.addr < addr+size {
			return errors.New("Invalid memory mapping (UC_ERR_MAP)")
		}
	}
	c.regions = append(c.regions, region{addr, make([]byte, size)})
	return nil
}

func (c *Cpu) MemRead(addr, size uint64) ([]byte, error) {
	mem, err := c.find(addr, size)
	if err != nil {
		return nil, err
	}
	out := make([]byte, size)
	copy(out, mem)
	return out, nil
}

func (c *Cpu) MemWrite(addr uint64, p []byte) error {
	mem, err := c.find(addr, uint64(len(p)))
	if err != nil {
		return errors.Errorf("Invalid memory write (UC_ERR_WRITE_UNMAPPED) at %#x", addr)
	}
	copy(mem, p)
	return nil
}

func (c *Cpu) RegRead(reg int) (uint64, error) {
	return c.regs[reg], nil
}

func (c *Cpu) RegWrite(reg int, val uint64) error {
	c.regs[reg] = val
	return nil
}

func (c *Cpu) RegReadWide(reg int) (lo, hi uint64, err error) {
	return c.regs[reg], c.wide[reg], nil
}

func (c *Cpu) SetWide(reg int, lo, hi uint64) {
	c.regs[reg] = lo
	c.wide[reg] = hi
}

func (c *Cpu) Start(begin, until uint64) error {
	c.Starts++
	if c.FailStart != nil {
		err := c.FailStart
		c.FailStart = nil
		c.regs[c.PC] = c.FailPC
		return err
	}
	if _, err := c.find(begin, until-begin); err != nil {
		return errors.Errorf("Invalid memory fetch (UC_ERR_FETCH_UNMAPPED) at %#x", begin)
	}
	c.regs[c.PC] = until
	return nil
}

func (c *Cpu) Stop() error { return nil }

func (c *Cpu) Close() error {
	c.Closed = true
	return nil
}

var _ cpu.WideRegReader = &Cpu{}

// Builder hands out fresh Cpus and remembers the last one for inspection.
type Builder struct {
	PC   int
	Last *Cpu
	// Hook runs on every new Cpu before it is returned.
	Hook func(*Cpu)
	Fail error
}

func (b *Builder) New() (cpu.Cpu, error) {
	if b.Fail != nil {
		return nil, b.Fail
	}
	b.Last = NewCpu(b.PC)
	if b.Hook != nil {
		b.Hook(b.Last)
	}
	return b.Last, nil
}
