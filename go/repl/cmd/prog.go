package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/k0kubun/pp/v3"

	scare "github.com/scare-emu/scare/go"
	"github.com/scare-emu/scare/go/models"
)

var InfoCmd = cmd(&Command{
	Name:         "info",
	Desc:         "Info about the emulator state",
	NeedsSession: true,
	Run: func(c *Context) error {
		s, p := c.Session, c.Palette()
		printer := pp.New()
		printer.SetColoringEnabled(p.Enabled)
		rows := []struct{ name, val string }{
			{"arch_name", s.Arch().Name},
			{"base_addr", fmt.Sprintf("%08x", s.Base)},
			{"stack_addr", fmt.Sprintf("%08x", s.Stack)},
			{"mem_size", fmt.Sprintf("%08x", s.MemSize)},
			{"asm_code", printer.Sprint(s.Lines())},
			{"machine_code", hex.EncodeToString(s.Code())},
			{"status", s.Status().String()},
		}
		for i, row := range rows {
			edge := "│"
			if i == 0 {
				edge = "┌"
			} else if i == len(rows)-1 {
				edge = "└"
			}
			c.Printf("%s %s %s\n", edge, p.Paint(models.ColInfo, fmt.Sprintf("%12s:", row.name)), row.val)
		}
		return nil
	},
})

var BackCmd = cmd(&Command{
	Name:         "back",
	Desc:         "Go back n number of lines",
	Usage:        "n",
	NeedsSession: true,
	Run: func(c *Context, n int) (scare.Disposition, error) {
		if err := c.Session.Back(n); err != nil {
			return scare.None, err
		}
		c.Printf("Moved back %d lines to line %d\n", n, len(c.Session.Lines()))
		return scare.RebuildOnly, nil
	},
})

var LoadCmd = cmd(&Command{
	Name:         "load",
	Desc:         "Load listing from file.asm (overwrites current program)",
	Usage:        "file.asm",
	NeedsSession: true,
	Run: func(c *Context, path string) error {
		if err := c.Session.Load(path); err != nil {
			return err
		}
		c.Printf("Loaded %s\n", path)
		return nil
	},
})

var SaveCmd = cmd(&Command{
	Name:         "save",
	Desc:         "Save assembly source to file.asm",
	Usage:        "file.asm",
	NeedsSession: true,
	Run: func(c *Context, path string) error {
		if err := c.Session.Save(path); err != nil {
			return err
		}
		c.Printf("Saved %s\n", path)
		return nil
	},
})

var RunCmd = cmd(&Command{
	Name:         "run",
	Desc:         "Run the current program",
	NeedsSession: true,
	Run: func(c *Context) (scare.Disposition, error) {
		return scare.RebuildOnly, nil
	},
})

var ResetCmd = cmd(&Command{
	Name: "reset",
	Desc: "Reset the emulator to a clean state",
	Run: func(c *Context) (scare.Disposition, error) {
		return scare.Reinitialize, nil
	},
})

var ListCmd = cmd(&Command{
	Name:         "list",
	Aliases:      []string{"l"},
	Desc:         "List the current program",
	Usage:        "[plan9]",
	NeedsSession: true,
	Run: func(c *Context, args ...string) error {
		plan9 := false
		for _, a := range args {
			if a != "plan9" {
				return usage(Commands["list"], "unknown listing mode %q", a)
			}
			plan9 = true
		}
		lines, err := c.Session.Listing()
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			c.Printf("No instructions!\n")
			return nil
		}
		for _, line := range scare.FormatListing(c.Palette(), lines, plan9) {
			c.Printf("%s\n", line)
		}
		return nil
	},
})
