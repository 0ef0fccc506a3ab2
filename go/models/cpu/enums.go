package cpu

// these constants are used for memory protections
// and match unicorn's UC_PROT_* values
const (
	PROT_NONE  = 0
	PROT_READ  = 1
	PROT_WRITE = 2
	PROT_EXEC  = 4
	PROT_ALL   = 7
)
