package cmd

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/pkg/errors"

	scare "github.com/scare-emu/scare/go"
)

type Command struct {
	Name    string
	Aliases []string
	Desc    string
	Usage   string
	// NeedsSession commands refuse to run until an arch is selected.
	NeedsSession bool
	// Run is either func(*Context, ...string) or a func taking typed
	// arguments decoded by argjoy. It returns error or (scare.Disposition, error).
	Run interface{}
}

func (c *Command) UsageLine() string {
	if c.Usage == "" {
		return "/" + c.Name
	}
	return "/" + c.Name + " " + c.Usage
}

var Commands = make(map[string]*Command)
var lookup = make(map[string]*Command)

func cmd(c *Command) *Command {
	fn := reflect.ValueOf(c.Run)
	if !fn.IsValid() || fn.Kind() != reflect.Func {
		panic(fmt.Sprintf("Command.Run must be a func: got (%T) %#v\n", c.Run, c.Run))
	}
	Commands[c.Name] = c
	for _, name := range append([]string{c.Name}, c.Aliases...) {
		if _, ok := lookup[name]; ok {
			panic("Duplicate command " + name)
		}
		lookup[name] = c
	}
	return c
}

var (
	ErrQuit       = errors.New("quit")
	ErrNoEmulator = errors.New("No emulator running!")
)

// UsageError reports a malformed command invocation.
type UsageError struct {
	Cmd *Command
	Err error
}

func (e *UsageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v\nUsage: %s", e.Err, e.Cmd.UsageLine())
	}
	return "Usage: " + e.Cmd.UsageLine()
}

func (e *UsageError) Cause() error {
	return e.Err
}

func usage(c *Command, format string, a ...interface{}) error {
	if format == "" {
		return &UsageError{Cmd: c}
	}
	return &UsageError{Cmd: c, Err: errors.Errorf(format, a...)}
}

func (c *Context) call(cmd *Command, args []string) (scare.Disposition, error) {
	var out []interface{}
	switch fn := cmd.Run.(type) {
	case func(*Context, ...string) error:
		out = []interface{}{fn(c, args...)}
	case func(*Context, ...string) (scare.Disposition, error):
		d, err := fn(c, args...)
		out = []interface{}{d, err}
	default:
		ft := reflect.TypeOf(cmd.Run)
		if ft.NumIn()-1 != len(args) {
			return scare.None, usage(cmd, "")
		}
		in := make([]interface{}, 0, len(args)+1)
		in = append(in, c)
		for _, a := range args {
			in = append(in, a)
		}
		var err error
		if out, err = c.aj.Call(cmd.Run, in...); err != nil {
			return scare.None, &UsageError{Cmd: cmd, Err: err}
		}
	}
	d := scare.None
	var err error
	for _, v := range out {
		switch v := v.(type) {
		case scare.Disposition:
			d = v
		case error:
			err = v
		}
	}
	return d, err
}

// Run interprets one line of input. Lines without the leading '/' are assembly.
func Run(c *Context, line string) (scare.Disposition, error) {
	if strings.TrimSpace(line) == "" {
		return scare.None, nil
	}
	if !strings.HasPrefix(line, "/") {
		if c.Session == nil {
			return scare.None, ErrNoEmulator
		}
		return scare.AppendAndBuild, nil
	}
	args := strings.Fields(line)
	name, args := strings.TrimPrefix(args[0], "/"), args[1:]
	cmd, ok := lookup[name]
	if !ok {
		c.Printf("Unknown command: /%s (type / for help)\n", name)
		return scare.None, nil
	}
	if cmd.NeedsSession && c.Session == nil {
		return scare.None, ErrNoEmulator
	}
	return c.call(cmd, args)
}
