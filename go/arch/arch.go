package arch

import (
	"github.com/scare-emu/scare/go/arch/arm"
	"github.com/scare-emu/scare/go/arch/arm64"
	"github.com/scare-emu/scare/go/arch/x86"
	"github.com/scare-emu/scare/go/arch/x86_64"
	"github.com/scare-emu/scare/go/models"
)

// Arches is every architecture the REPL can select with emu/arch.
var Arches = models.ArchSet{
	"arm32": arm.Arch,
	"arm64": arm64.Arch,
	"x86":   x86.Arch,
	"x64":   x86_64.Arch,
}

func GetArch(name, cpu string) (*models.Arch, error) {
	return Arches.Lookup(name, cpu)
}
