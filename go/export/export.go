package export

import (
	"bytes"
	"encoding/binary"
	"os"
	"sort"

	"github.com/lunixbochs/struc"
	"github.com/pkg/errors"
)

const (
	EM_X86_64  = 0x3e
	EM_AARCH64 = 0xb7

	IMAGE_FILE_MACHINE_I386 = 0x14c
)

// ELF64 template: one PT_LOAD segment covering the file at 0x400000.
type elf64Header struct {
	Ident     [16]byte
	Type      uint16
	Machine   uint16
	Version   uint32
	Entry     uint64
	Phoff     uint64
	Shoff     uint64
	Flags     uint32
	Ehsize    uint16
	Phentsize uint16
	Phnum     uint16
	Shentsize uint16
	Shnum     uint16
	Shstrndx  uint16
}

type elf64Phdr struct {
	Type   uint32
	Flags  uint32
	Offset uint64
	Vaddr  uint64
	Paddr  uint64
	Filesz uint64
	Memsz  uint64
	Align  uint64
}

const elf64HeaderSize = 0x78

func elf64(machine uint16) ([]byte, error) {
	hdr := &elf64Header{
		Ident:     [16]byte{0x7f, 'E', 'L', 'F', 2, 1, 1},
		Type:      2,
		Machine:   machine,
		Version:   1,
		Entry:     0x400000 + elf64HeaderSize,
		Phoff:     0x40,
		Ehsize:    0x40,
		Phentsize: 0x38,
		Phnum:     1,
	}
	phdr := &elf64Phdr{
		Type:   1,
		Flags:  5,
		Vaddr:  0x400000,
		Paddr:  0x400000,
		Filesz: 0x10000,
		Memsz:  0x10000,
		Align:  0x200,
	}
	var buf bytes.Buffer
	if err := struc.PackWithOrder(&buf, hdr, binary.LittleEndian); err != nil {
		return nil, err
	}
	if err := struc.PackWithOrder(&buf, phdr, binary.LittleEndian); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PE32 template: MZ header overlapping the PE header, no sections,
// optional header truncated to 0x60 bytes.
type pe32Header struct {
	Mz              [2]byte
	MzPad           uint16
	Signature       [4]byte
	Machine         uint16
	NumSections     uint16
	TimeDateStamp   uint32
	PtrSymbols      uint32
	NumSymbols      uint32
	SizeOptHeader   uint16
	Characteristics uint16

	Magic              uint16
	MajorLinker        uint8
	MinorLinker        uint8
	SizeOfCode         uint32
	SizeOfInitData     uint32
	SizeOfUninitData   uint32
	EntryPoint         uint32
	BaseOfCode         uint32
	BaseOfData         uint32
	ImageBase          uint32
	SectionAlignment   uint32
	FileAlignment      uint32
	MajorOSVersion     uint16
	MinorOSVersion     uint16
	MajorImageVersion  uint16
	MinorImageVersion  uint16
	MajorSubsysVersion uint16
	MinorSubsysVersion uint16
	Win32Version       uint32
	SizeOfImage        uint32
	SizeOfHeaders      uint32
	Checksum           uint32
	Subsystem          uint16
	DllCharacteristics uint16
	StackReserve       uint32
	StackCommit        uint32
	HeapReserve        uint32
	HeapCommit         uint32
	LoaderFlags        uint32
	NumRvaAndSizes     uint32
}

const pe32HeaderSize = 0x7c

func pe32(machine uint16) ([]byte, error) {
	hdr := &pe32Header{
		Mz:                 [2]byte{'M', 'Z'},
		MzPad:              0x0100,
		Signature:          [4]byte{'P', 'E'},
		Machine:            machine,
		SizeOptHeader:      0x60,
		Characteristics:    0x0103,
		Magic:              0x10b,
		EntryPoint:         pe32HeaderSize,
		ImageBase:          0x400000,
		SectionAlignment:   4,
		FileAlignment:      4,
		MajorSubsysVersion: 5,
		SizeOfImage:        0x80,
		SizeOfHeaders:      pe32HeaderSize,
		Subsystem:          2,
		DllCharacteristics: 0x0400,
		StackReserve:       0x100000,
		StackCommit:        0x1000,
		HeapReserve:        0x100000,
	}
	var buf bytes.Buffer
	if err := struc.PackWithOrder(&buf, hdr, binary.LittleEndian); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type format struct {
	machines map[string]uint16
	header   func(machine uint16) ([]byte, error)
}

var formats = map[string]*format{
	"bin": nil,
	"raw": nil,
	"elf64": {
		machines: map[string]uint16{"x64": EM_X86_64, "arm64": EM_AARCH64},
		header:   elf64,
	},
	"pe32": {
		machines: map[string]uint16{"x86": IMAGE_FILE_MACHINE_I386, "x64": IMAGE_FILE_MACHINE_I386},
		header:   pe32,
	},
}

func Formats() []string {
	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Export wraps machine code in the requested container.
func Export(code []byte, fileType, arch string) ([]byte, error) {
	if len(code) == 0 {
		return nil, errors.New("No machine code to export!")
	}
	f, ok := formats[fileType]
	if !ok {
		return nil, errors.Errorf("Unsupported file type: %s", fileType)
	}
	if f == nil {
		return append([]byte(nil), code...), nil
	}
	machine, ok := f.machines[arch]
	if !ok {
		return nil, errors.Errorf("Unsupported Arch for %s: %s", fileType, arch)
	}
	hdr, err := f.header(machine)
	if err != nil {
		return nil, errors.Wrap(err, "building header")
	}
	return append(hdr, code...), nil
}

// ExportFile writes the exported image to path. The file is only created once
// the image has been built.
func ExportFile(path string, code []byte, fileType, arch string) (n int, err error) {
	out, err := Export(code, fileType, arch)
	if err != nil {
		return 0, err
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, errors.Wrap(err, "creating export file")
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "closing export file")
		}
	}()
	n, err = f.Write(out)
	return n, errors.Wrap(err, "writing export file")
}
