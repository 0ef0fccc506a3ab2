package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"

	"github.com/scare-emu/scare/go/arch"
	"github.com/scare-emu/scare/go/expr"
	"github.com/scare-emu/scare/go/logger"
	"github.com/scare-emu/scare/go/models"
	"github.com/scare-emu/scare/go/repl"
	replcmd "github.com/scare-emu/scare/go/repl/cmd"
)

type ScareCmd struct {
	Flags  *flag.FlagSet
	Arches models.ArchSet

	Stdout, Stderr io.Writer
	// IsTerminal decides the default for ui/color.
	IsTerminal bool
	NewReader  func() (repl.LineReader, error)

	verbose bool
}

func NewScareCmd() *ScareCmd {
	return &ScareCmd{
		Flags:      flag.NewFlagSet("scare", flag.ContinueOnError),
		Arches:     arch.Arches,
		Stdout:     colorable.NewColorableStdout(),
		Stderr:     colorable.NewColorableStderr(),
		IsTerminal: isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
		NewReader: func() (repl.LineReader, error) {
			return repl.NewReadline()
		},
	}
}

// PrintError prints a fatal error, with its stack when -v is set.
func (c *ScareCmd) PrintError(err error) {
	fmt.Fprintf(c.Stderr, "%s\n", strings.Repeat("-", 40))
	if c.verbose {
		fmt.Fprintf(c.Stderr, "Error: %+v\n", err)
	} else {
		fmt.Fprintf(c.Stderr, "Error: %s\n", err)
	}
}

// Run parses argv, starts the REPL and returns the process exit status.
func (c *ScareCmd) Run(argv []string) int {
	fs := c.Flags
	fs.SetOutput(c.Stderr)
	archName := fs.String("a", "", "target architecture ("+strings.Join(c.Arches.Names(), ", ")+")")
	cpuName := fs.String("c", "", "target cpu variant (arm32: thumb)")
	inFile := fs.String("f", "", "assembly file to load and run")
	base := fs.String("base", "", "base address expression (default 0x400000)")
	stack := fs.String("stack", "", "stack address expression (default 0x401000)")
	memsize := fs.String("memsize", "", "emulator memory size expression (default 0x800000 [8MB])")
	verbose := fs.Bool("v", false, "debug logging")
	noColor := fs.Bool("nocolor", false, "disable colored output")

	fs.Usage = func() {
		fmt.Fprintf(c.Stderr, "Usage: %s [options]\n\nOptions:\n", argv[0])
		var flags []*flag.Flag
		fs.VisitAll(func(f *flag.Flag) {
			flags = append(flags, f)
		})
		models.PrintFlags(c.Stderr, flags)
		fmt.Fprintf(c.Stderr, "\nExample:\n  %s -a x64 -base 0x1000*4\n", argv[0])
	}
	if err := fs.Parse(argv[1:]); err == flag.ErrHelp {
		return 0
	} else if err != nil {
		return 2
	}
	c.verbose = *verbose

	color := c.IsTerminal && !*noColor
	logger.Init(*verbose, !color)
	cfg := models.NewConfig(color)

	defer func() {
		if err := c.Arches.Close(); err != nil {
			log.Warn("closing engines", "err", err)
		}
	}()
	ev := expr.New()
	defer ev.Close()
	addrs := []struct {
		flag, opt, val string
	}{
		{"base", models.OptBaseAddr, *base},
		{"stack", models.OptStackAddr, *stack},
		{"memsize", models.OptMemSize, *memsize},
	}
	for _, a := range addrs {
		if a.val == "" {
			continue
		}
		n, err := ev.Eval(a.val, nil)
		if err != nil {
			c.PrintError(errors.Wrapf(err, "-%s", a.flag))
			return 1
		}
		cfg.SetInt(a.opt, n)
	}
	if *archName != "" {
		if _, err := c.Arches.Lookup(*archName, *cpuName); err != nil {
			c.PrintError(err)
			return 1
		}
		canon, _ := c.Arches.Canonical(*archName)
		cfg.SetString(models.OptArch, canon)
		cfg.SetString(models.OptCpu, strings.ToLower(*cpuName))
	}

	rl, err := c.NewReader()
	if err != nil {
		c.PrintError(errors.Wrap(err, "opening terminal"))
		return 1
	}
	r := repl.NewRepl(replcmd.NewContext(c.Stdout, cfg, c.Arches, ev), rl)
	defer func() {
		if r.Session != nil {
			r.Session.Close()
		}
	}()
	if err := r.Sync(false); err != nil {
		rl.Close()
		c.PrintError(err)
		return 1
	}
	r.Banner()
	if err := r.LoadRC(); err == replcmd.ErrQuit {
		rl.Close()
		return 0
	} else if err != nil {
		r.PrintError(err)
	}
	if *inFile != "" {
		if r.Session == nil {
			r.Printf("-f needs an architecture, use -a\n")
		} else if err := r.Session.Load(*inFile); err != nil {
			r.PrintError(err)
		} else if err := r.Feed("/run"); err == replcmd.ErrQuit {
			rl.Close()
			return 0
		}
	}
	if err := r.Run(); err != nil {
		c.PrintError(err)
		return 1
	}
	return 0
}
