package vm

// ArithmeticLogicUnit implements the binary and unary integer/bitwise
// operations. Every binary op takes (destination, first source,
// second source); the second source may be a register or a literal.
// Results are written through Register.Set (truncating to the
// destination's width); the zero flag is assigned from the
// untruncated result.
type ArithmeticLogicUnit struct {
	z *Flag
}

// NewArithmeticLogicUnit returns an ALU that reports results through z.
func NewArithmeticLogicUnit(z *Flag) *ArithmeticLogicUnit {
	return &ArithmeticLogicUnit{z: z}
}

func (a *ArithmeticLogicUnit) writeResult(operands []Operand, result uint32) error {
	dest, ok := operands[0].Register()
	if !ok {
		return ErrUnknownRegister
	}
	dest.Set(result)
	a.z.SetIsZero(result)
	return nil
}

// ADD implements the ADD opcode.
func (a *ArithmeticLogicUnit) ADD(operands []Operand) error {
	return a.writeResult(operands, operands[1].Value()+operands[2].Value())
}

// SUB implements the SUB opcode.
func (a *ArithmeticLogicUnit) SUB(operands []Operand) error {
	return a.writeResult(operands, operands[1].Value()-operands[2].Value())
}

// MUL implements the MUL opcode.
func (a *ArithmeticLogicUnit) MUL(operands []Operand) error {
	return a.writeResult(operands, operands[1].Value()*operands[2].Value())
}

// DIV implements the DIV opcode: truncating integer division. A zero
// divisor fails with ErrArithmetic and leaves the destination and
// flag untouched.
func (a *ArithmeticLogicUnit) DIV(operands []Operand) error {
	divisor := operands[2].Value()
	if divisor == 0 {
		return ErrArithmetic
	}
	return a.writeResult(operands, operands[1].Value()/divisor)
}

// MOD implements the MOD opcode. A zero divisor fails with
// ErrArithmetic and leaves the destination and flag untouched.
func (a *ArithmeticLogicUnit) MOD(operands []Operand) error {
	divisor := operands[2].Value()
	if divisor == 0 {
		return ErrArithmetic
	}
	return a.writeResult(operands, operands[1].Value()%divisor)
}

// AND implements the AND opcode.
func (a *ArithmeticLogicUnit) AND(operands []Operand) error {
	return a.writeResult(operands, operands[1].Value()&operands[2].Value())
}

// ORR implements the ORR opcode.
func (a *ArithmeticLogicUnit) ORR(operands []Operand) error {
	return a.writeResult(operands, operands[1].Value()|operands[2].Value())
}

// XOR implements the XOR opcode.
func (a *ArithmeticLogicUnit) XOR(operands []Operand) error {
	return a.writeResult(operands, operands[1].Value()^operands[2].Value())
}

// NOT implements the NOT opcode: unary bitwise complement of the
// untruncated operand value, truncated when written to destination.
func (a *ArithmeticLogicUnit) NOT(operands []Operand) error {
	return a.writeResult(operands, ^operands[1].Value())
}

// LSL implements the LSL (logical shift left) opcode.
func (a *ArithmeticLogicUnit) LSL(operands []Operand) error {
	return a.writeResult(operands, operands[1].Value()<<operands[2].Value())
}

// LSR implements the LSR (logical shift right) opcode.
func (a *ArithmeticLogicUnit) LSR(operands []Operand) error {
	return a.writeResult(operands, operands[1].Value()>>operands[2].Value())
}

// CMP implements the CMP opcode: assigns Z from left - right but
// stores no result and never errors on overflow.
func (a *ArithmeticLogicUnit) CMP(operands []Operand) error {
	result := operands[0].Value() - operands[1].Value()
	a.z.SetIsZero(result)
	return nil
}
