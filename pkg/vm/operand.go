package vm

// Operand is a decoded instruction operand: either a reference to a
// register or an immediate value. This is the tagged-operand model
// suggested by spec.md §9 in place of dynamically-typed arguments.
type Operand interface {
	// Value returns the operand's current numeric value: Get() for a
	// register operand, or the literal itself for a value operand.
	Value() uint32

	// Register returns the underlying register and true if this
	// operand refers to one. Instructions that write back to their
	// operand (destinations) require this to succeed.
	Register() (*Register, bool)
}

// registerOperand is an operand that refers to a register.
type registerOperand struct {
	reg *Register
}

func (o registerOperand) Value() uint32 {
	return o.reg.Get()
}

func (o registerOperand) Register() (*Register, bool) {
	return o.reg, true
}

// RegisterOperand wraps reg as an Operand.
func RegisterOperand(reg *Register) Operand {
	return registerOperand{reg: reg}
}

// literalOperand is an immediate value baked into the instruction
// stream.
type literalOperand uint32

func (o literalOperand) Value() uint32 {
	return uint32(o)
}

func (o literalOperand) Register() (*Register, bool) {
	return nil, false
}

// LiteralOperand wraps value as an Operand.
func LiteralOperand(value uint32) Operand {
	return literalOperand(value)
}
