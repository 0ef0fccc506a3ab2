package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/lunixbochs/argjoy"
	"github.com/pkg/errors"

	scare "github.com/scare-emu/scare/go"
	"github.com/scare-emu/scare/go/expr"
	"github.com/scare-emu/scare/go/models"
)

// Context is handed to every command and to the build loop.
type Context struct {
	io.Writer
	Config  *models.Config
	Session *scare.Session
	Arches  models.ArchSet
	Expr    *expr.Evaluator

	aj argjoy.Argjoy
}

func NewContext(w io.Writer, cfg *models.Config, arches models.ArchSet, ev *expr.Evaluator) *Context {
	c := &Context{Writer: w, Config: cfg, Arches: arches, Expr: ev}
	c.aj.Register(c.argCodec)
	return c
}

func (c *Context) Printf(format string, a ...interface{}) (n int, err error) {
	return fmt.Fprintf(c, format, a...)
}

func (c *Context) Println(a ...interface{}) (n int, err error) {
	return fmt.Fprintln(c, a...)
}

func (c *Context) Palette() models.Palette {
	return models.Palette{Enabled: c.Config.Bool(models.OptColor)}
}

// PrintError reports a command or build failure.
func (c *Context) PrintError(err error) {
	p := c.Palette()
	switch e := err.(type) {
	case *models.EngineError:
		c.Printf("%s\n%v\n", p.Paint(models.ColErr, fmt.Sprintf("[[: %s Error :]]", e.Op)), e.Err)
	default:
		c.Printf("%v\n", err)
	}
}

// Eval evaluates a numeric argument. Register values are visible once the
// emulator has been allocated.
func (c *Context) Eval(s string) (uint64, error) {
	var regs []models.RegVal
	if c.Session != nil && c.Session.Status() != scare.Uninitialized {
		regs, _ = c.Session.RegDump()
	}
	return c.Expr.Eval(s, regs)
}

// Loc is an address given as an expression or as $register.
type Loc uint64

func (c *Context) Loc(s string) (Loc, error) {
	if strings.HasPrefix(s, "$") {
		if c.Session == nil {
			return 0, ErrNoEmulator
		}
		v, err := c.Session.RegRead(s[1:])
		if err != nil {
			return 0, err
		}
		return Loc(v.Val), nil
	}
	n, err := c.Eval(s)
	return Loc(n), err
}

func (c *Context) argCodec(arg interface{}, vals []interface{}) error {
	s, ok := vals[0].(string)
	if !ok {
		return argjoy.NoMatch
	}
	switch v := arg.(type) {
	case *Loc:
		l, err := c.Loc(s)
		if err != nil {
			return errors.Wrapf(err, "bad address %q", s)
		}
		*v = l
	case *uint64:
		n, err := c.Eval(s)
		if err != nil {
			return err
		}
		*v = n
	case *int:
		n, err := c.Eval(s)
		if err != nil {
			return err
		}
		*v = int(n)
	case *string:
		*v = s
	default:
		return argjoy.NoMatch
	}
	return nil
}
