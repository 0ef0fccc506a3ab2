package cmd

import (
	"strings"

	"github.com/scare-emu/scare/go/export"
)

var ExportCmd = cmd(&Command{
	Name:         "export",
	Desc:         "Export machine code as FILETYPE (" + strings.Join(export.Formats(), ", ") + ") to FILENAME",
	Usage:        "FILETYPE FILENAME",
	NeedsSession: true,
	Run: func(c *Context, fileType, path string) error {
		code := c.Session.Code()
		n, err := export.ExportFile(path, code, fileType, c.Session.Arch().Name)
		if err != nil {
			return err
		}
		c.Printf("Exported %d bytes of code as %s to %s (%d bytes)\n", len(code), fileType, path, n)
		return nil
	},
})
