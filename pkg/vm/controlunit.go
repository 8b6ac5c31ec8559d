package vm

import "fmt"

// ControlUnit implements the fetch-decode-execute tick and the
// variable-length operand decoder described in spec.md §4.9. It uses
// R4 as the memory byte register and R5 as the program counter.
type ControlUnit struct {
	m              *Ram
	regs           RegisterFile
	r4             *Register
	r5             *Register
	instructionSet InstructionSet
	operandTypes   OperandTypeSet
}

// NewControlUnit returns a ControlUnit over the given memory,
// register file, instruction set, and operand-type set.
func NewControlUnit(m *Ram, regs RegisterFile, instructionSet InstructionSet, operandTypes OperandTypeSet) *ControlUnit {
	return &ControlUnit{
		m:              m,
		regs:           regs,
		r4:             regs[R4],
		r5:             regs[R5],
		instructionSet: instructionSet,
		operandTypes:   operandTypes,
	}
}

// SetProgramCounter writes address into R5.
func (cu *ControlUnit) SetProgramCounter(address uint32) {
	cu.r5.Set(address)
}

// loadToMBR reads the byte Ram at R5 into R4.
func (cu *ControlUnit) loadToMBR() error {
	data, err := cu.m.Get(cu.r5.Get(), cu.r4.Width())
	if err != nil {
		return err
	}
	cu.r4.Set(data)
	return nil
}

func (cu *ControlUnit) incrementPC() {
	cu.r5.Set(cu.r5.Get() + 1)
}

// registerOperand advances R5 by one, loads R4, validates the fetched
// byte as a register code, and returns a reference to that register.
func (cu *ControlUnit) registerOperand() (Operand, error) {
	cu.incrementPC()
	if err := cu.loadToMBR(); err != nil {
		return nil, err
	}
	code := byte(cu.r4.Get())
	reg, ok := cu.regs.Lookup(code)
	if !ok {
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownRegister, code)
	}
	return RegisterOperand(reg), nil
}

// valueOperand advances R5 by one, then reads a 2-byte little-endian
// value at the (now current) R5, advancing R5 past it.
func (cu *ControlUnit) valueOperand() (Operand, error) {
	cu.incrementPC()
	if err := cu.loadToMBR(); err != nil {
		return nil, err
	}
	size := cu.operandTypes[OperandTypeValue].OperandSizeBytes
	value, err := cu.m.Get(cu.r5.Get(), size)
	if err != nil {
		return nil, err
	}
	for i := 0; i < size; i++ {
		cu.incrementPC()
	}
	return LiteralOperand(value), nil
}

// decodeOperands decodes the operand list of an instruction that has
// numOperands operands: every operand but the last is a register code;
// the last operand's shape is determined by the operand-type code that
// immediately follows the opcode.
func (cu *ControlUnit) decodeOperands(numOperands int) ([]Operand, error) {
	operands := make([]Operand, 0, numOperands)

	cu.incrementPC()
	if err := cu.loadToMBR(); err != nil {
		return nil, err
	}
	lastOperandType := cu.r4.Get()

	for i := 0; i < numOperands-1; i++ {
		op, err := cu.registerOperand()
		if err != nil {
			return nil, err
		}
		operands = append(operands, op)
	}

	switch byte(lastOperandType) {
	case OperandTypeRegister:
		op, err := cu.registerOperand()
		if err != nil {
			return nil, err
		}
		operands = append(operands, op)
		cu.incrementPC()
	case OperandTypeValue:
		op, err := cu.valueOperand()
		if err != nil {
			return nil, err
		}
		operands = append(operands, op)
	default:
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownOperandType, lastOperandType)
	}
	return operands, nil
}

// Clock fetches, decodes, and dispatches exactly one instruction.
func (cu *ControlUnit) Clock() error {
	if err := cu.loadToMBR(); err != nil {
		return err
	}
	opcode := byte(cu.r4.Get())
	descriptor, ok := cu.instructionSet[opcode]
	if !ok {
		return fmt.Errorf("%w: 0x%02x", ErrUnknownOpcode, opcode)
	}
	var operands []Operand
	if descriptor.NumOperands > 0 {
		var err error
		operands, err = cu.decodeOperands(descriptor.NumOperands)
		if err != nil {
			return err
		}
	}
	return descriptor.Handler(operands)
}
