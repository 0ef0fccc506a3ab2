package x86

import (
	"fmt"

	ks "github.com/keystone-engine/keystone/bindings/go/keystone"
	cs "github.com/lunixbochs/capstr"
	uc "github.com/unicorn-engine/unicorn/bindings/go/unicorn"

	"github.com/scare-emu/scare/go/cpu"
	"github.com/scare-emu/scare/go/cpu/unicorn"
	"github.com/scare-emu/scare/go/models"
)

var Arch = &models.Arch{
	Name: "x86",
	Bits: 32,
	Cpu:  &unicorn.Builder{Arch: uc.ARCH_X86, Mode: uc.MODE_32},
	Dis:  &cpu.Capstr{Arch: cs.ARCH_X86, Mode: cs.MODE_32},
	Asm:  &cpu.Keystone{Arch: ks.ARCH_X86, Mode: ks.MODE_32},
	PC:   uc.X86_REG_EIP,
	SP:   uc.X86_REG_ESP,
	Regs: []models.Reg{
		{Name: "eax", Enum: uc.X86_REG_EAX, Class: models.GeneralPurpose, Bits: 32},
		{Name: "ecx", Enum: uc.X86_REG_ECX, Class: models.GeneralPurpose, Bits: 32},
		{Name: "edx", Enum: uc.X86_REG_EDX, Class: models.GeneralPurpose, Bits: 32},
		{Name: "ebx", Enum: uc.X86_REG_EBX, Class: models.GeneralPurpose, Bits: 32},
		{Name: "esp", Enum: uc.X86_REG_ESP, Class: models.StackPointer, Bits: 32},
		{Name: "ebp", Enum: uc.X86_REG_EBP, Class: models.GeneralPurpose, Bits: 32},
		{Name: "esi", Enum: uc.X86_REG_ESI, Class: models.GeneralPurpose, Bits: 32},
		{Name: "edi", Enum: uc.X86_REG_EDI, Class: models.GeneralPurpose, Bits: 32},
		{Name: "eip", Enum: uc.X86_REG_EIP, Class: models.InstructionPointer, Bits: 32},
		{Name: "efl", Enum: uc.X86_REG_EFLAGS, Class: models.GeneralPurpose, Bits: 32},
	},
	Layout: [][]string{
		{"eax"}, {"ecx"}, {"edx"}, {"ebx"}, {"esp"},
		{"ebp"}, {"esi"}, {"edi"}, {"eip"}, {"efl"},
	},
	Ext: XmmRegs,
}

// XmmRegs is shared with x86_64 and shown when x86/xmm is set.
var XmmRegs = xmm()

func xmm() *models.RegSet {
	set := &models.RegSet{Option: models.OptXmm}
	for i := 0; i < 32; i++ {
		set.Regs = append(set.Regs, models.Reg{
			Name:  fmt.Sprintf("xmm%d", i),
			Enum:  uc.X86_REG_XMM0 + i,
			Class: models.GeneralPurpose,
			Bits:  128,
		})
	}
	for i := 0; i < 16; i++ {
		set.Layout = append(set.Layout, []string{fmt.Sprintf("xmm%d", i), fmt.Sprintf("xmm%d", i+16)})
	}
	return set
}
