package arm64

import (
	"fmt"

	ks "github.com/keystone-engine/keystone/bindings/go/keystone"
	cs "github.com/lunixbochs/capstr"
	uc "github.com/unicorn-engine/unicorn/bindings/go/unicorn"

	"github.com/scare-emu/scare/go/cpu"
	"github.com/scare-emu/scare/go/cpu/unicorn"
	"github.com/scare-emu/scare/go/models"
)

func gpr(name string, enum int) models.Reg {
	return models.Reg{Name: name, Enum: enum, Class: models.GeneralPurpose, Bits: 64}
}

var Arch = &models.Arch{
	Name: "arm64",
	Bits: 64,
	Cpu:  &unicorn.Builder{Arch: uc.ARCH_ARM64, Mode: uc.MODE_ARM},
	Dis:  &cpu.Capstr{Arch: cs.ARCH_ARM64, Mode: cs.MODE_ARM},
	Asm:  &cpu.Keystone{Arch: ks.ARCH_ARM64, Mode: ks.MODE_LITTLE_ENDIAN},
	PC:   uc.ARM64_REG_PC,
	SP:   uc.ARM64_REG_SP,
	Regs: []models.Reg{
		gpr("x0", uc.ARM64_REG_X0),
		gpr("x1", uc.ARM64_REG_X1),
		gpr("x2", uc.ARM64_REG_X2),
		gpr("x3", uc.ARM64_REG_X3),
		gpr("x4", uc.ARM64_REG_X4),
		gpr("x5", uc.ARM64_REG_X5),
		gpr("x6", uc.ARM64_REG_X6),
		gpr("x7", uc.ARM64_REG_X7),
		gpr("x8", uc.ARM64_REG_X8),
		gpr("x9", uc.ARM64_REG_X9),
		gpr("x10", uc.ARM64_REG_X10),
		gpr("x11", uc.ARM64_REG_X11),
		gpr("x12", uc.ARM64_REG_X12),
		gpr("x13", uc.ARM64_REG_X13),
		gpr("x14", uc.ARM64_REG_X14),
		gpr("x15", uc.ARM64_REG_X15),
		gpr("x16", uc.ARM64_REG_X16),
		gpr("x17", uc.ARM64_REG_X17),
		gpr("x18", uc.ARM64_REG_X18),
		gpr("x19", uc.ARM64_REG_X19),
		gpr("x20", uc.ARM64_REG_X20),
		gpr("x21", uc.ARM64_REG_X21),
		gpr("x22", uc.ARM64_REG_X22),
		gpr("x23", uc.ARM64_REG_X23),
		gpr("x24", uc.ARM64_REG_X24),
		gpr("x25", uc.ARM64_REG_X25),
		gpr("x26", uc.ARM64_REG_X26),
		gpr("x27", uc.ARM64_REG_X27),
		gpr("x28", uc.ARM64_REG_X28),
		gpr("x29", uc.ARM64_REG_X29),
		gpr("x30", uc.ARM64_REG_X30),
		{Name: "sp", Enum: uc.ARM64_REG_SP, Class: models.StackPointer, Bits: 64},
		{Name: "pc", Enum: uc.ARM64_REG_PC, Class: models.InstructionPointer, Bits: 64},
		gpr("cpsr", uc.ARM64_REG_NZCV),
	},
	Layout: [][]string{
		{"x0", "x8", "x16", "x24"},
		{"x1", "x9", "x17", "x25"},
		{"x2", "x10", "x18", "x26"},
		{"x3", "x11", "x19", "x27"},
		{"x4", "x12", "x20", "x28"},
		{"x5", "x13", "x21", "x29"},
		{"x6", "x14", "x22", "x30"},
		{"x7", "x15", "x23", "sp"},
		{"pc", "cpsr"},
	},
	Ext: neon(),
}

// neon registers are shown when arm64/neon is set.
func neon() *models.RegSet {
	set := &models.RegSet{Option: models.OptNeon}
	for i := 0; i < 32; i++ {
		set.Regs = append(set.Regs, models.Reg{
			Name:  fmt.Sprintf("v%d", i),
			Enum:  uc.ARM64_REG_V0 + i,
			Class: models.GeneralPurpose,
			Bits:  128,
		})
	}
	for i := 0; i < 16; i++ {
		set.Layout = append(set.Layout, []string{fmt.Sprintf("v%d", i), fmt.Sprintf("v%d", i+16)})
	}
	return set
}
