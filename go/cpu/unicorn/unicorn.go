package unicorn

import (
	"github.com/pkg/errors"
	uc "github.com/unicorn-engine/unicorn/bindings/go/unicorn"

	"github.com/scare-emu/scare/go/models/cpu"
)

type Builder struct {
	Arch, Mode int
}

func (b *Builder) New() (cpu.Cpu, error) {
	u, err := uc.NewUnicorn(b.Arch, b.Mode)
	if err != nil {
		return nil, errors.Wrap(err, "NewUnicorn() failed")
	}
	return &UnicornCpu{u}, nil
}

// UnicornCpu adapts a unicorn instance to cpu.Cpu.
// The Go bindings only expose 64-bit register reads, so it is not a cpu.WideRegReader.
type UnicornCpu struct {
	uc.Unicorn
}

func (u *UnicornCpu) MemMap(addr, size uint64, prot int) error {
	return u.Unicorn.MemMapProt(addr, size, prot)
}

func (u *UnicornCpu) Start(begin, until uint64) error {
	// stop any leftover run before reusing the engine
	u.Unicorn.Stop()
	return u.Unicorn.Start(begin, until)
}
