package cmd

import (
	"fmt"

	scare "github.com/scare-emu/scare/go"
	"github.com/scare-emu/scare/go/models"
)

// PrintRegs dumps the register table, followed by the vector registers
// when their config toggle is on.
func PrintRegs(c *Context) error {
	s, p := c.Session, c.Palette()
	a := s.Arch()
	vals, err := s.RegDump()
	if err != nil {
		return err
	}
	lines, err := models.RegTable(p, vals, a.Layout)
	if err != nil {
		return models.NewEngineError("printRegs", err)
	}
	for _, line := range lines {
		c.Printf("%s\n", line)
	}
	if a.Ext == nil || !c.Config.Bool(a.Ext.Option) {
		return nil
	}
	ext, err := s.ExtDump()
	if err == scare.ErrNoWideRegs {
		c.Printf("%s: %v\n", a.Ext.Option, err)
		return nil
	} else if err != nil {
		return err
	}
	lines, err = models.RegTable(p, ext, a.Ext.Layout)
	if err != nil {
		return models.NewEngineError("printRegs", err)
	}
	for _, line := range lines {
		c.Printf("%s\n", line)
	}
	return nil
}

var RegsCmd = cmd(&Command{
	Name:         "regs",
	Desc:         "Print register state",
	NeedsSession: true,
	Run: func(c *Context) error {
		return PrintRegs(c)
	},
})

var SetCmd = cmd(&Command{
	Name:         "set",
	Desc:         "Set a register",
	Usage:        "register value",
	NeedsSession: true,
	Run: func(c *Context, reg string, val uint64) error {
		return c.Session.RegWrite(reg, val)
	},
})

var GetCmd = cmd(&Command{
	Name:         "get",
	Desc:         "Print register state",
	Usage:        "register [register...]",
	NeedsSession: true,
	Run: func(c *Context, regs ...string) error {
		if len(regs) == 0 {
			return usage(Commands["get"], "")
		}
		p := c.Palette()
		for _, name := range regs {
			v, err := c.Session.RegRead(name)
			if err != nil {
				return err
			}
			c.Printf("%s %s\n", p.Paint(models.ColRegName, v.Name+":"), fmt.Sprintf("%016x%016x", v.Hi, v.Val))
		}
		return nil
	},
})
