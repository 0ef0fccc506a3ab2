package models

import (
	"fmt"
)

// EngineError marks a failure reported by the assembler, disassembler or emulator.
type EngineError struct {
	Op  string
	Err error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("[[: %s Error :]]\n%v", e.Op, e.Err)
}

func (e *EngineError) Cause() error {
	return e.Err
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

func NewEngineError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &EngineError{Op: op, Err: err}
}
