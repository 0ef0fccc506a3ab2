package cmd

import (
	"encoding/hex"
	"io/ioutil"
	"strings"

	"github.com/pkg/errors"

	"github.com/scare-emu/scare/go/models"
)

var ReadCmd = cmd(&Command{
	Name:         "read",
	Desc:         "Read NUM bytes from 0xaddress or $register, optionally into FILE",
	Usage:        "{0xaddress|$register} NUM [FILE]",
	NeedsSession: true,
	Run: func(c *Context, args ...string) error {
		if len(args) < 2 || len(args) > 3 {
			return usage(Commands["read"], "")
		}
		addr, err := c.Loc(args[0])
		if err != nil {
			return usage(Commands["read"], "%v", err)
		}
		size, err := c.Eval(args[1])
		if err != nil {
			return usage(Commands["read"], "%v", err)
		}
		mem, err := c.Session.MemRead(uint64(addr), size)
		if err != nil {
			return err
		}
		if len(args) == 3 {
			if err := ioutil.WriteFile(args[2], mem, 0644); err != nil {
				return errors.Wrap(err, "writing memory to file")
			}
			c.Printf("Wrote %d bytes to %s\n", len(mem), args[2])
			return nil
		}
		for _, line := range models.HexDump(uint64(addr), mem) {
			c.Printf("%s\n", line)
		}
		return nil
	},
})

var WriteCmd = cmd(&Command{
	Name:         "write",
	Desc:         "Write hex bytes or the contents of ./file to 0xaddress or $register",
	Usage:        "{0xaddress|$register} {hexdata|./file}",
	NeedsSession: true,
	Run: func(c *Context, addr Loc, data string) error {
		var p []byte
		var err error
		if strings.HasPrefix(data, ".") {
			if p, err = ioutil.ReadFile(data); err != nil {
				return errors.Wrap(err, "reading data file")
			}
			c.Printf("%s: %d bytes\n", data, len(p))
		} else if p, err = hex.DecodeString(data); err != nil {
			return usage(Commands["write"], "bad hex data: %v", err)
		}
		return c.Session.MemWrite(uint64(addr), p)
	},
})

var DisCmd = cmd(&Command{
	Name:         "dis",
	Desc:         "Disassemble NUM bytes from 0xaddress or $register",
	Usage:        "{0xaddress|$register} NUM",
	NeedsSession: true,
	Run: func(c *Context, addr Loc, size uint64) error {
		dis, err := c.Session.Dis(uint64(addr), size)
		if err != nil {
			return err
		}
		for _, line := range models.InsLines(c.Palette(), dis) {
			c.Printf("%s\n", line)
		}
		return nil
	},
})
