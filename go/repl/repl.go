package repl

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/chzyer/readline"
	"github.com/pkg/errors"
	"github.com/shibukawa/configdir"

	scare "github.com/scare-emu/scare/go"
	"github.com/scare-emu/scare/go/models"
	"github.com/scare-emu/scare/go/repl/cmd"
)

// LineReader is the subset of *readline.Instance the loop needs.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
	Close() error
}

type Repl struct {
	*cmd.Context
	rl LineReader

	// arch and cpu the current session was created from
	arch, cpu string
}

func NewRepl(c *cmd.Context, rl LineReader) *Repl {
	r := &Repl{Context: c, rl: rl}
	if c.Session != nil {
		r.arch, r.cpu = c.Config.Str(models.OptArch), c.Config.Str(models.OptCpu)
	}
	return r
}

// NewReadline opens the terminal with history kept in the user cache folder.
func NewReadline() (*readline.Instance, error) {
	configDirs := configdir.New("scare", "repl")
	cacheDir := configDirs.QueryCacheFolder()
	historyPath := ""
	if err := cacheDir.MkdirAll(); err == nil {
		historyPath = filepath.Join(cacheDir.Path, "history")
	}
	return readline.NewEx(&readline.Config{
		InterruptPrompt: "^C",
		HistoryFile:     historyPath,
	})
}

// Sync makes the session match emu/arch and emu/cpu, replacing it when they
// changed or when reset is set.
func (r *Repl) Sync(reset bool) error {
	cfg := r.Config
	arch, cpu := cfg.Str(models.OptArch), cfg.Str(models.OptCpu)
	if arch == "" {
		return nil
	}
	if r.Session != nil && !reset && arch == r.arch && cpu == r.cpu {
		return nil
	}
	a, err := r.Arches.Lookup(arch, cpu)
	if err != nil {
		return err
	}
	if r.Session != nil {
		if err := r.Session.Close(); err != nil {
			log.Warn("closing session", "err", err)
		}
	}
	r.Session = scare.NewSession(a, cfg)
	r.arch, r.cpu = arch, cpu
	log.Debug("new session", "arch", arch, "cpu", cpu, "base", r.Session.Base)
	return nil
}

// Feed interprets one line of input. It only returns cmd.ErrQuit; every
// other failure is printed.
func (r *Repl) Feed(line string) error {
	d, err := cmd.Run(r.Context, line)
	if errors.Cause(err) == cmd.ErrQuit {
		return cmd.ErrQuit
	} else if err != nil {
		r.PrintError(err)
		return nil
	}
	if err := r.Sync(d == scare.Reinitialize); err != nil {
		r.PrintError(err)
		return nil
	}
	if r.Session == nil {
		return nil
	}
	ran, err := r.Session.Build(d, line)
	if err != nil {
		r.PrintError(err)
		return nil
	}
	if ran {
		if err := cmd.PrintRegs(r.Context); err != nil {
			r.PrintError(err)
		}
	}
	return nil
}

// FeedLines feeds a script, stopping early on quit.
func (r *Repl) FeedLines(lines []string) error {
	for _, line := range lines {
		if err := r.Feed(line); err != nil {
			return err
		}
	}
	return nil
}

// LoadRC feeds the first scarerc found in the user config folders.
func (r *Repl) LoadRC() error {
	configDirs := configdir.New("scare", "")
	folder := configDirs.QueryFolderContainsFile("scarerc")
	if folder == nil {
		return nil
	}
	data, err := folder.ReadFile("scarerc")
	if err != nil {
		return errors.Wrap(err, "reading scarerc")
	}
	log.Debug("loading scarerc", "path", filepath.Join(folder.Path, "scarerc"))
	text := strings.TrimSuffix(string(data), "\n")
	return r.FeedLines(strings.Split(text, "\n"))
}

func (r *Repl) Prompt() string {
	p := r.Palette()
	arch := "NoArch"
	addr := r.Config.Int(models.OptBaseAddr)
	if r.Session != nil {
		arch = r.Session.Arch().Name
		addr = r.Session.Addr()
	}
	return fmt.Sprintf("[%s]%s> ", p.Paint(models.ColArch, arch), p.Paint(models.ColIP, fmt.Sprintf("%02x", addr)))
}

const splash = `┌──────┐┌──────┐┌──────┐┌──────┐┌──────┐
└──────┐│       ┌──────││       │      │
│      ││       │      ││       │──────┘
└──────┘└──────┘└──────┘└       └──────┘
Simple Configurable Asm REPL && Emulator
                [v%s]
`

// Banner prints the start-up splash and, without an arch, how to pick one.
func (r *Repl) Banner() {
	p := r.Palette()
	r.Printf("Type / for help\n\n")
	if r.Session == nil {
		r.Printf("Please select an architecture! Use `/c emu/arch ARCH`.\nSupported arches: %s\n",
			strings.Join(r.Arches.Names(), ", "))
	}
	r.Printf("%s", p.Paint(models.ColArch, fmt.Sprintf(splash, cmd.Version)))
}

// Run reads lines until quit or end of input.
func (r *Repl) Run() error {
	defer r.rl.Close()
	for {
		r.rl.SetPrompt(r.Prompt())
		line, err := r.rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		} else if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		if err := r.Feed(line); err == cmd.ErrQuit {
			return nil
		}
	}
}
