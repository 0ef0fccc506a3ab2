package mock

import (
	"github.com/scare-emu/scare/go/models"
)

const (
	RegPC = iota + 1
	RegSP
	RegR0
	RegR1
	RegV0
)

// Arch builds a small 32-bit architecture backed by the scripted engines.
func Arch(name string) *models.Arch {
	return &models.Arch{
		Name: name,
		Bits: 32,
		Cpu:  &Builder{PC: RegPC},
		Asm:  &Asm{},
		Dis:  &Dis{},
		PC:   RegPC,
		SP:   RegSP,
		Regs: []models.Reg{
			{Name: "r0", Enum: RegR0, Class: models.GeneralPurpose, Bits: 32},
			{Name: "r1", Enum: RegR1, Class: models.GeneralPurpose, Bits: 32},
			{Name: "sp", Enum: RegSP, Class: models.StackPointer, Bits: 32},
			{Name: "pc", Enum: RegPC, Class: models.InstructionPointer, Bits: 32},
		},
		Layout: [][]string{{"r0", "r1"}, {"sp", "pc"}},
		Ext: &models.RegSet{
			Option: models.OptXmm,
			Regs:   []models.Reg{{Name: "v0", Enum: RegV0, Class: models.GeneralPurpose, Bits: 128}},
			Layout: [][]string{{"v0"}},
		},
	}
}

// Arches returns a two entry arch set so arch switching can be tested.
func Arches() models.ArchSet {
	thumb := Arch("mock")
	thumb.Thumb = true
	a := Arch("mock")
	a.Variants = map[string]*models.Arch{"thumb": thumb}
	return models.ArchSet{
		"mock":  a,
		"mock2": Arch("mock2"),
	}
}
