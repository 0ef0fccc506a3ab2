package models

import (
	"fmt"
	"sort"

	"github.com/lunixbochs/fvbommel-util/sortorder"
	"github.com/pkg/errors"
)

const (
	OptArch      = "emu/arch"
	OptCpu       = "emu/cpu"
	OptBaseAddr  = "emu/baseaddr"
	OptStackAddr = "emu/stackaddr"
	OptMemSize   = "emu/memsize"
	OptXmm       = "x86/xmm"
	OptNeon      = "arm64/neon"
	OptColor     = "ui/color"
)

type OptKind int

const (
	IntOpt OptKind = iota
	StrOpt
)

type Option struct {
	Name string
	Kind OptKind
	// Hex options print as addresses.
	Hex bool
	Int uint64
	Str string
}

func (o *Option) String() string {
	if o.Kind == StrOpt {
		return o.Str
	}
	if o.Hex {
		return fmt.Sprintf("0x%x", o.Int)
	}
	return fmt.Sprintf("%d", o.Int)
}

// Config is the process-wide option store. The key set is fixed at construction.
type Config struct {
	opts map[string]*Option
}

func NewConfig(color bool) *Config {
	c := &Config{opts: make(map[string]*Option)}
	add := func(o Option) { c.opts[o.Name] = &o }
	add(Option{Name: OptArch, Kind: StrOpt})
	add(Option{Name: OptCpu, Kind: StrOpt})
	add(Option{Name: OptBaseAddr, Hex: true, Int: 0x400000})
	add(Option{Name: OptStackAddr, Hex: true, Int: 0x401000})
	add(Option{Name: OptMemSize, Hex: true, Int: 0x800000})
	add(Option{Name: OptXmm})
	add(Option{Name: OptNeon})
	var col uint64
	if color {
		col = 1
	}
	add(Option{Name: OptColor, Int: col})
	return c
}

func (c *Config) Names() []string {
	names := make([]string, 0, len(c.opts))
	for name := range c.opts {
		names = append(names, name)
	}
	sort.Sort(sortorder.Natural(names))
	return names
}

func (c *Config) Get(name string) (*Option, bool) {
	o, ok := c.opts[name]
	return o, ok
}

func (c *Config) lookup(name string, kind OptKind) (*Option, error) {
	o, ok := c.opts[name]
	if !ok {
		return nil, errors.Errorf("Invalid config opt name: %s", name)
	}
	if o.Kind != kind {
		return nil, errors.Errorf("config opt %s has the wrong type", name)
	}
	return o, nil
}

// Int returns the value of an integer option, or 0 when unknown.
func (c *Config) Int(name string) uint64 {
	if o, err := c.lookup(name, IntOpt); err == nil {
		return o.Int
	}
	return 0
}

func (c *Config) Str(name string) string {
	if o, err := c.lookup(name, StrOpt); err == nil {
		return o.Str
	}
	return ""
}

func (c *Config) Bool(name string) bool {
	return c.Int(name) != 0
}

func (c *Config) SetInt(name string, val uint64) error {
	o, err := c.lookup(name, IntOpt)
	if err != nil {
		return err
	}
	o.Int = val
	return nil
}

func (c *Config) SetString(name, val string) error {
	o, err := c.lookup(name, StrOpt)
	if err != nil {
		return err
	}
	o.Str = val
	return nil
}

// Set parses value according to the option type. Integer values go through eval.
// Nothing is mutated when the name is unknown or the value does not parse.
func (c *Config) Set(name, value string, eval func(string) (uint64, error)) error {
	o, ok := c.opts[name]
	if !ok {
		return errors.Errorf("Invalid config opt name: %s", name)
	}
	if o.Kind == StrOpt {
		o.Str = value
		return nil
	}
	n, err := eval(value)
	if err != nil {
		return errors.Wrapf(err, "bad value for %s", name)
	}
	o.Int = n
	return nil
}

// Lines renders every option as "name = value" in natural order.
func (c *Config) Lines() []string {
	names := c.Names()
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = fmt.Sprintf("%s = %s", name, c.opts[name])
	}
	return out
}
