package chip8

import (
	"errors"
	"fmt"
)

var (
	ErrROMUnreadable  = errors.New("rom unreadable")
	ErrROMTooLarge    = errors.New("rom too large")
	ErrStackOverflow  = errors.New("stack overflow")
	ErrStackUnderflow = errors.New("stack underflow")
	ErrPCOutOfRange   = errors.New("program counter out of range")
	ErrNotLoaded      = errors.New("no program loaded")
)

// Fault describes a runtime error raised while executing an instruction.
// It unwraps to one of the sentinel errors above.
type Fault struct {
	PC     uint16 // address of the faulting instruction
	Opcode uint16
	Err    error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("fault at %03X (opcode %04X): %v", f.PC, f.Opcode, f.Err)
}

func (f *Fault) Unwrap() error { return f.Err }
