package cmd

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/scare-emu/scare/go/models"
)

var ConfigCmd = cmd(&Command{
	Name:    "config",
	Aliases: []string{"c"},
	Desc:    "Print or set config options",
	Usage:   "[name [value [extra]]]",
	Run: func(c *Context, args ...string) error {
		cfg := c.Config
		switch len(args) {
		case 0:
			c.Printf("Current Config Options\n")
			for _, line := range cfg.Lines() {
				c.Printf("%s\n", line)
			}
			return nil
		case 1:
			opt, ok := cfg.Get(args[0])
			if !ok {
				return errors.Errorf("Invalid config opt name: %s", args[0])
			}
			c.Printf("%s = %s\n", opt.Name, opt)
			return nil
		case 2, 3:
		default:
			return usage(Commands["config"], "too many arguments")
		}
		name, val, extra := args[0], args[1], ""
		if len(args) == 3 {
			extra = args[2]
		}
		if _, ok := cfg.Get(name); !ok {
			return errors.Errorf("Invalid config opt name: %s", name)
		}
		switch name {
		case models.OptArch:
			if _, err := c.Arches.Lookup(val, extra); err != nil {
				return err
			}
			canon, _ := c.Arches.Canonical(val)
			cfg.SetString(models.OptArch, canon)
			cfg.SetString(models.OptCpu, strings.ToLower(extra))
		case models.OptCpu:
			arch := cfg.Str(models.OptArch)
			if arch == "" {
				return errors.New("Set emu/arch before emu/cpu")
			}
			if _, err := c.Arches.Lookup(arch, val); err != nil {
				return err
			}
			cfg.SetString(models.OptCpu, strings.ToLower(val))
		default:
			if err := cfg.Set(name, val, c.Eval); err != nil {
				return err
			}
		}
		if extra != "" {
			c.Printf("%s->%s/%s\n", name, val, extra)
		} else {
			c.Printf("%s->%s\n", name, val)
		}
		return nil
	},
})
