package expr

import (
	"strconv"
	"strings"

	"github.com/lunixbochs/luaish"
	"github.com/pkg/errors"

	"github.com/scare-emu/scare/go/models"
)

// Evaluator turns numeric arguments into integers.
// Plain literals are parsed directly and anything else runs as a lua expression
// with register values bound as globals. The expression is parenthesised so
// "rsp -8" is a subtraction rather than a call.
type Evaluator struct {
	L *lua.LState

	bound []string
}

func New() *Evaluator {
	e := &Evaluator{L: lua.NewState()}
	e.L.SetGlobal("int", e.L.NewFunction(intFunc))
	return e
}

func intFunc(L *lua.LState) int {
	switch v := L.CheckAny(1).(type) {
	case lua.LString:
		n, err := strconv.ParseInt(string(v), 0, 64)
		if err == nil {
			L.Push(lua.LInt(n))
			return 1
		}
	case lua.LFloat:
		L.Push(lua.LInt(v))
		return 1
	case lua.LInt:
		L.Push(v)
		return 1
	}
	return 0
}

func (e *Evaluator) Close() {
	e.L.Close()
}

// parseLiteral handles decimal, 0x, 0o and 0b literals without touching lua.
func parseLiteral(s string) (uint64, bool) {
	if n, err := strconv.ParseUint(s, 0, 64); err == nil {
		return n, true
	}
	if n, err := strconv.ParseInt(s, 0, 64); err == nil {
		return uint64(n), true
	}
	return 0, false
}

// bind replaces the register globals from the previous call.
func (e *Evaluator) bind(regs []models.RegVal) {
	for _, name := range e.bound {
		e.L.SetGlobal(name, lua.LNil)
	}
	e.bound = e.bound[:0]
	for _, r := range regs {
		e.L.SetGlobal(r.Name, lua.LInt(r.Val))
		e.bound = append(e.bound, r.Name)
	}
}

func (e *Evaluator) Eval(s string, regs []models.RegVal) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty expression")
	}
	if n, ok := parseLiteral(s); ok {
		return n, nil
	}
	e.bind(regs)
	fn, err := e.L.LoadString("return (" + s + ")")
	if err != nil {
		return 0, errors.Wrapf(err, "bad expression %q", s)
	}
	top := e.L.GetTop()
	e.L.Push(fn)
	if err := e.L.PCall(0, 1, nil); err != nil {
		e.L.SetTop(top)
		return 0, errors.Wrapf(err, "evaluating %q", s)
	}
	ret := e.L.Get(-1)
	e.L.SetTop(top)
	switch v := ret.(type) {
	case lua.LInt:
		return uint64(v), nil
	case lua.LFloat:
		return uint64(int64(v)), nil
	}
	return 0, errors.Errorf("%q is not a number: %v", s, ret)
}
