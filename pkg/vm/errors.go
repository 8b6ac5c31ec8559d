package vm

import "errors"

// Decoder and handler errors. All of them are locally fatal to the
// current instruction and, per spec.md §7, unwind the current run
// loop activation exactly as HALT does.
var (
	ErrUnknownOpcode      = errors.New("vm: unknown opcode")
	ErrUnknownRegister    = errors.New("vm: unknown register code")
	ErrUnknownOperandType = errors.New("vm: unknown operand type code")
	ErrArithmetic         = errors.New("vm: arithmetic error")
)

// errHalted and errIRET are control-flow signals, not faults. The run
// loop distinguishes them from the errors above with errors.Is.
var (
	errHalted = errors.New("vm: halt")
	errIRET   = errors.New("vm: iret")
)
