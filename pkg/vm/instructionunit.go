package vm

// InstructionUnit implements the control-flow primitives: NOP, HLT,
// MOV, and the branch family (B, BL, BEQ, BNE, BX).
type InstructionUnit struct {
	z  *Flag
	r3 *Register // link register
	r5 *Register // program counter
	r6 *Register // current program base address
}

// NewInstructionUnit returns an InstructionUnit wired to the given
// zero flag and link/PC/base registers.
func NewInstructionUnit(z *Flag, r3, r5, r6 *Register) *InstructionUnit {
	return &InstructionUnit{z: z, r3: r3, r5: r5, r6: r6}
}

// NOP does nothing.
func (iu *InstructionUnit) NOP(operands []Operand) error {
	return nil
}

// HLT signals the run loop to halt.
func (iu *InstructionUnit) HLT(operands []Operand) error {
	return errHalted
}

// MOV writes source's value into dest.
func (iu *InstructionUnit) MOV(operands []Operand) error {
	dest, ok := operands[0].Register()
	if !ok {
		return ErrUnknownRegister
	}
	dest.Set(operands[1].Value())
	return nil
}

// jumpRelative writes address + R6 (the program base) into R5.
func (iu *InstructionUnit) jumpRelative(address uint32) {
	iu.r5.Set(address + iu.r6.Get())
}

// B branches unconditionally, relative to the program base.
func (iu *InstructionUnit) B(operands []Operand) error {
	iu.jumpRelative(operands[0].Value())
	return nil
}

// BL captures the return address (the current R5, already advanced
// past this instruction by the decoder) into R3, then branches like B.
func (iu *InstructionUnit) BL(operands []Operand) error {
	iu.r3.Set(iu.r5.Get())
	iu.jumpRelative(operands[0].Value())
	return nil
}

// BEQ branches like B if the zero flag is set; otherwise falls through.
func (iu *InstructionUnit) BEQ(operands []Operand) error {
	if iu.z.IsSet() {
		iu.jumpRelative(operands[0].Value())
	}
	return nil
}

// BNE branches like B if the zero flag is clear; otherwise falls through.
func (iu *InstructionUnit) BNE(operands []Operand) error {
	if !iu.z.IsSet() {
		iu.jumpRelative(operands[0].Value())
	}
	return nil
}

// BX returns from a subroutine: writes R3 into R5 without adding the
// program base (R3 already holds an absolute address).
func (iu *InstructionUnit) BX(operands []Operand) error {
	iu.r5.Set(iu.r3.Get())
	return nil
}
