package cmd

import (
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"
)

const Version = "0.3.0"

var QuitCmd = cmd(&Command{
	Name:    "quit",
	Aliases: []string{"q", "x", "exit"},
	Desc:    "Quit the program",
	Run: func(c *Context, args ...string) error {
		return ErrQuit
	},
})

const configHelp = `[[: Config Commands :]] (Use /c or /config)
NOTE: Run /reset if you are changing emu/* options, otherwise the emulator may not start!

/c               -- Print all config options
/c emu/arch      -- Print Arch Value
/c emu/arch x64  -- Set Arch to x64
/c emu/arch arm32 thumb -- Set Arch to arm32 in thumb mode
/c x86/xmm 1     -- Enable x86/xmm
/c arm64/neon 1  -- Enable arm64/neon
`

var HelpCmd = cmd(&Command{
	Name:    "help",
	Aliases: []string{"", "?", "h"},
	Desc:    "Open help menu",
	Run: func(c *Context, args ...string) error {
		names := make([]string, 0, len(Commands))
		for name := range Commands {
			names = append(names, name)
		}
		sort.Strings(names)
		var usages []string
		width := 0
		for _, name := range names {
			cmd := Commands[name]
			var forms []string
			for _, alias := range append([]string{cmd.Name}, cmd.Aliases...) {
				forms = append(forms, "/"+alias)
			}
			u := strings.Join(forms, " ")
			if cmd.Usage != "" {
				u += " " + cmd.Usage
			}
			usages = append(usages, u)
			if w := runewidth.StringWidth(u); w > width {
				width = w
			}
		}
		c.Printf("\nscare Help\n\n")
		for i, name := range names {
			pad := strings.Repeat(" ", width-runewidth.StringWidth(usages[i]))
			c.Printf("%s%s -- %s\n", usages[i], pad, Commands[name].Desc)
		}
		c.Printf("\n%s", configHelp)
		return nil
	},
})
