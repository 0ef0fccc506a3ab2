package cmd

import (
	"io/ioutil"

	"github.com/pkg/errors"
)

var SaveStateCmd = cmd(&Command{
	Name:         "savestate",
	Desc:         "Save registers and memory to FILE",
	Usage:        "FILE",
	NeedsSession: true,
	Run: func(c *Context, path string) error {
		data, err := c.Session.SaveState()
		if err != nil {
			return err
		}
		if err := ioutil.WriteFile(path, data, 0644); err != nil {
			return errors.Wrap(err, "writing savestate")
		}
		c.Printf("Saved state to %s\n", path)
		return nil
	},
})

var LoadStateCmd = cmd(&Command{
	Name:         "loadstate",
	Desc:         "Restore registers and memory from FILE",
	Usage:        "FILE",
	NeedsSession: true,
	Run: func(c *Context, path string) error {
		data, err := ioutil.ReadFile(path)
		if err != nil {
			return errors.Wrap(err, "reading savestate")
		}
		if err := c.Session.LoadState(data); err != nil {
			return err
		}
		c.Printf("Loaded state from %s\n", path)
		return nil
	},
})
