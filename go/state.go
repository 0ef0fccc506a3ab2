package scare

import (
	"github.com/pkg/errors"

	"github.com/scare-emu/scare/go/models"
	"github.com/scare-emu/scare/go/models/cpu"
)

// SaveState snapshots the registers and memory image.
func (s *Session) SaveState() ([]byte, error) {
	c, err := s.Cpu()
	if err != nil {
		return nil, err
	}
	st := &models.State{Arch: s.arch.Name, Base: s.Base, Addr: s.addr}
	regs := s.arch.Regs
	if s.arch.Ext != nil {
		if _, ok := c.(cpu.WideRegReader); ok {
			regs = append(append([]models.Reg(nil), regs...), s.arch.Ext.Regs...)
		}
	}
	vals, err := s.dump(regs)
	if err != nil {
		return nil, err
	}
	for _, v := range vals {
		st.Regs = append(st.Regs, models.SavedReg{Enum: uint32(v.Enum), Val: v.Val, Hi: v.Hi})
	}
	if st.Mem, err = s.MemRead(s.Base, s.MemSize); err != nil {
		return nil, err
	}
	return st.Save()
}

// LoadState restores a snapshot taken with the same arch and memory layout.
func (s *Session) LoadState(data []byte) error {
	st, err := models.LoadState(data)
	if err != nil {
		return err
	}
	if st.Arch != s.arch.Name {
		return errors.Errorf("savestate is for %s, not %s", st.Arch, s.arch.Name)
	}
	if st.Base != s.Base || uint64(len(st.Mem)) != s.MemSize {
		return errors.Errorf("savestate image %#x+%#x does not match emu/baseaddr and emu/memsize", st.Base, len(st.Mem))
	}
	c, err := s.Cpu()
	if err != nil {
		return err
	}
	if err := c.MemWrite(s.Base, st.Mem); err != nil {
		return models.NewEngineError("loadstate", err)
	}
	for _, r := range st.Regs {
		reg, ok := s.arch.RegByEnum(int(r.Enum))
		if !ok {
			// vector registers can only be read back
			continue
		}
		if err := c.RegWrite(reg.Enum, r.Val); err != nil {
			return models.NewEngineError("loadstate", err)
		}
	}
	s.addr = st.Addr
	return nil
}
