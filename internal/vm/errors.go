package vm

import (
	"errors"
	"fmt"

	"github.com/Grandduchy/CHIP-8-Emulator/internal/instruction"
	"github.com/Grandduchy/CHIP-8-Emulator/internal/memory"
)

// ROM loading errors. A failed load leaves the machine unchanged.
var (
	ErrRomTooLarge   = errors.New("rom too large")
	ErrRomUnreadable = errors.New("rom unreadable")
)

// Execution errors, returned by Step wrapped in an *ExecError.
var (
	ErrMemoryOutOfBounds = memory.ErrOutOfBounds
	ErrStackOverflow     = errors.New("stack overflow")
	ErrStackUnderflow    = errors.New("stack underflow")
	ErrUnknownOpcode     = instruction.ErrUnknownOpcode
)

// ExecError describes a failed instruction. The machine stays usable after
// an ExecError, the failed instruction had no effect apart from advancing
// the program counter as documented for Step.
type ExecError struct {
	PC   uint16 // address of the instruction
	Word uint16 // raw instruction word, zero if it could not be fetched
	Err  error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("executing $%04X at $%03X: %v", e.Word, e.PC, e.Err)
}

// Unwrap returns the underlying error.
func (e *ExecError) Unwrap() error {
	return e.Err
}
