package x86_64

import (
	ks "github.com/keystone-engine/keystone/bindings/go/keystone"
	cs "github.com/lunixbochs/capstr"
	uc "github.com/unicorn-engine/unicorn/bindings/go/unicorn"

	"github.com/scare-emu/scare/go/arch/x86"
	"github.com/scare-emu/scare/go/cpu"
	"github.com/scare-emu/scare/go/cpu/unicorn"
	"github.com/scare-emu/scare/go/models"
)

func gpr(name string, enum int) models.Reg {
	return models.Reg{Name: name, Enum: enum, Class: models.GeneralPurpose, Bits: 64}
}

var Arch = &models.Arch{
	Name: "x64",
	Bits: 64,
	Cpu:  &unicorn.Builder{Arch: uc.ARCH_X86, Mode: uc.MODE_64},
	Dis:  &cpu.Capstr{Arch: cs.ARCH_X86, Mode: cs.MODE_64},
	Asm:  &cpu.Keystone{Arch: ks.ARCH_X86, Mode: ks.MODE_64},
	PC:   uc.X86_REG_RIP,
	SP:   uc.X86_REG_RSP,
	Regs: []models.Reg{
		gpr("rax", uc.X86_REG_RAX),
		gpr("rbx", uc.X86_REG_RBX),
		gpr("rcx", uc.X86_REG_RCX),
		gpr("rdx", uc.X86_REG_RDX),
		gpr("rsi", uc.X86_REG_RSI),
		gpr("rdi", uc.X86_REG_RDI),
		gpr("rbp", uc.X86_REG_RBP),
		{Name: "rsp", Enum: uc.X86_REG_RSP, Class: models.StackPointer, Bits: 64},
		gpr("r8", uc.X86_REG_R8),
		gpr("r9", uc.X86_REG_R9),
		gpr("r10", uc.X86_REG_R10),
		gpr("r11", uc.X86_REG_R11),
		gpr("r12", uc.X86_REG_R12),
		gpr("r13", uc.X86_REG_R13),
		gpr("r14", uc.X86_REG_R14),
		gpr("r15", uc.X86_REG_R15),
		{Name: "rip", Enum: uc.X86_REG_RIP, Class: models.InstructionPointer, Bits: 64},
		gpr("rfl", uc.X86_REG_EFLAGS),
	},
	Layout: [][]string{
		{"rax", "rip", "r11"},
		{"rbx", "rsp", "r12"},
		{"rcx", "rbp", "r13"},
		{"rdx", "r8", "r14"},
		{"rsi", "r9", "r15"},
		{"rdi", "r10", "rfl"},
	},
	Ext: x86.XmmRegs,
}
