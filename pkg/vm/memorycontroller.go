package vm

// MemoryController implements LDR/STR between a register and Ram,
// at register-width granularity for loads and variable-width
// serialization for stores.
type MemoryController struct {
	z *Flag
	m *Ram
}

// NewMemoryController returns a MemoryController over m, mirroring
// the owning CPU's zero flag the way the original wires one in (even
// though neither LDR nor STR currently touches it).
func NewMemoryController(z *Flag, m *Ram) *MemoryController {
	return &MemoryController{z: z, m: m}
}

// LDR reads Width(dest) bytes from Ram at the resolved address and
// writes them into dest.
func (mc *MemoryController) LDR(operands []Operand) error {
	dest, ok := operands[0].Register()
	if !ok {
		return ErrUnknownRegister
	}
	data, err := mc.m.Get(operands[1].Value(), dest.Width())
	if err != nil {
		return err
	}
	dest.Set(data)
	return nil
}

// STR writes src's value starting at the resolved address, using
// Ram's variable-width integer serialization.
func (mc *MemoryController) STR(operands []Operand) error {
	src, ok := operands[0].Register()
	if !ok {
		return ErrUnknownRegister
	}
	return mc.m.SetValue(operands[1].Value(), src.Get())
}
