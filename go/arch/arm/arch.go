package arm

import (
	ks "github.com/keystone-engine/keystone/bindings/go/keystone"
	cs "github.com/lunixbochs/capstr"
	uc "github.com/unicorn-engine/unicorn/bindings/go/unicorn"

	"github.com/scare-emu/scare/go/cpu"
	"github.com/scare-emu/scare/go/cpu/unicorn"
	"github.com/scare-emu/scare/go/models"
)

func gpr(name string, enum int) models.Reg {
	return models.Reg{Name: name, Enum: enum, Class: models.GeneralPurpose, Bits: 32}
}

var regs = []models.Reg{
	gpr("r0", uc.ARM_REG_R0),
	gpr("r1", uc.ARM_REG_R1),
	gpr("r2", uc.ARM_REG_R2),
	gpr("r3", uc.ARM_REG_R3),
	gpr("r4", uc.ARM_REG_R4),
	gpr("r5", uc.ARM_REG_R5),
	gpr("r6", uc.ARM_REG_R6),
	gpr("r7", uc.ARM_REG_R7),
	gpr("r8", uc.ARM_REG_R8),
	gpr("r9", uc.ARM_REG_R9),
	gpr("r10", uc.ARM_REG_R10),
	gpr("r11", uc.ARM_REG_R11),
	gpr("r12", uc.ARM_REG_R12),
	{Name: "sp", Enum: uc.ARM_REG_SP, Class: models.StackPointer, Bits: 32},
	gpr("lr", uc.ARM_REG_LR),
	{Name: "pc", Enum: uc.ARM_REG_PC, Class: models.InstructionPointer, Bits: 32},
	gpr("cpsr", uc.ARM_REG_CPSR),
}

var layout = [][]string{
	{"r0", "r4", "r8", "r12"},
	{"r1", "r5", "r9", "sp"},
	{"r2", "r6", "r10", "lr"},
	{"r3", "r7", "r11", "pc"},
	{"cpsr"},
}

var Thumb = &models.Arch{
	Name:   "arm32",
	Bits:   32,
	Thumb:  true,
	Cpu:    &unicorn.Builder{Arch: uc.ARCH_ARM, Mode: uc.MODE_THUMB},
	Dis:    &cpu.Capstr{Arch: cs.ARCH_ARM, Mode: cs.MODE_THUMB},
	Asm:    &cpu.Keystone{Arch: ks.ARCH_ARM, Mode: ks.MODE_THUMB},
	PC:     uc.ARM_REG_PC,
	SP:     uc.ARM_REG_SP,
	Regs:   regs,
	Layout: layout,
}

var Arch = &models.Arch{
	Name:   "arm32",
	Bits:   32,
	Cpu:    &unicorn.Builder{Arch: uc.ARCH_ARM, Mode: uc.MODE_ARM},
	Dis:    &cpu.Capstr{Arch: cs.ARCH_ARM, Mode: cs.MODE_ARM},
	Asm:    &cpu.Keystone{Arch: ks.ARCH_ARM, Mode: ks.MODE_ARM},
	PC:     uc.ARM_REG_PC,
	SP:     uc.ARM_REG_SP,
	Regs:   regs,
	Layout: layout,
	Variants: map[string]*models.Arch{
		"thumb": Thumb,
	},
}
