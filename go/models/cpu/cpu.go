package cpu

// This interface abstracts the minimum functionality the REPL requires from a CPU emulator.
type Cpu interface {
	// memory mapping
	MemMap(addr, size uint64, prot int) error

	// memory IO
	MemRead(addr, size uint64) ([]byte, error)
	MemWrite(addr uint64, p []byte) error

	// register IO
	RegRead(reg int) (uint64, error)
	RegWrite(reg int, val uint64) error

	// execution
	Start(begin, until uint64) error
	Stop() error

	// cleanup
	Close() error
}

// WideRegReader is implemented by backends that can read 128-bit vector registers.
type WideRegReader interface {
	RegReadWide(reg int) (lo, hi uint64, err error)
}

// Builder allocates a fresh emulated machine.
type Builder interface {
	New() (Cpu, error)
}
