package vm

import (
	"fmt"
	"strings"
)

// Disassemble formats one decoded instruction as a trace line, for
// the CLI's -d flag. It reports the mnemonic and, for register
// operands, the register name; value operands print as a hex literal.
func Disassemble(instructionSet InstructionSet, opcode byte, operands []Operand) string {
	descriptor, ok := instructionSet[opcode]
	if !ok {
		return fmt.Sprintf("0x%02x ???", opcode)
	}
	if len(operands) == 0 {
		return descriptor.Mnemonic
	}
	parts := make([]string, len(operands))
	for i, op := range operands {
		if reg, ok := op.Register(); ok {
			parts[i] = reg.Name()
		} else {
			parts[i] = fmt.Sprintf("0x%04x", op.Value())
		}
	}
	return fmt.Sprintf("%s %s", descriptor.Mnemonic, strings.Join(parts, ", "))
}

// DisassembleAt decodes and formats the single instruction at address
// on a scratch register file (the real machine's registers are never
// touched), and returns the address immediately following it. Returns
// an error if the bytes at address cannot be decoded.
func DisassembleAt(ram *Ram, instructionSet InstructionSet, operandTypes OperandTypeSet, address uint32) (text string, next uint32, err error) {
	regs := NewRegisterFile()
	cu := NewControlUnit(ram, regs, instructionSet, operandTypes)
	cu.SetProgramCounter(address)

	data, err := ram.Get(address, 1)
	if err != nil {
		return "", 0, err
	}
	opcode := byte(data)
	descriptor, ok := instructionSet[opcode]
	if !ok {
		return "", 0, fmt.Errorf("%w: 0x%02x", ErrUnknownOpcode, opcode)
	}

	// decodeOperands leaves R5 pointing at the next opcode already (it
	// advances past the last operand byte in both the register and
	// value shapes); a zero-operand instruction never touches R5 via
	// Clock(), so here it still sits on the opcode byte itself.
	next = address + 1
	var operands []Operand
	if descriptor.NumOperands > 0 {
		operands, err = cu.decodeOperands(descriptor.NumOperands)
		if err != nil {
			return "", 0, err
		}
		next = regs[R5].Get()
	}
	return Disassemble(instructionSet, opcode, operands), next, nil
}
