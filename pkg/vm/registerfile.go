package vm

// Register codes. The set is fixed: the RegisterFile's shape never
// changes after construction, only register contents do.
const (
	R0 = byte(0x00) // general purpose
	R1 = byte(0x01) // general purpose
	R2 = byte(0x02) // output mirror
	R3 = byte(0x03) // link register
	R4 = byte(0x04) // memory byte register
	R5 = byte(0x05) // program counter
	R6 = byte(0x06) // current program base address
)

// RegisterFile maps a register code to its Register.
type RegisterFile map[byte]*Register

// NewRegisterFile builds the fixed R0..R6 register set.
func NewRegisterFile() RegisterFile {
	return RegisterFile{
		R0: NewRegister("R0", 2),
		R1: NewRegister("R1", 2),
		R2: NewRegister("R2", 2),
		R3: NewRegister("R3", 2),
		R4: NewRegister("R4", 1),
		R5: NewRegister("R5", 2),
		R6: NewRegister("R6", 2),
	}
}

// Lookup returns the register for code, and whether it exists.
func (rf RegisterFile) Lookup(code byte) (*Register, bool) {
	r, ok := rf[code]
	return r, ok
}

// Snapshot captures the current value of every register, ordered
// R0..R6, for context save/restore around interrupts.
func (rf RegisterFile) Snapshot() CPUContext {
	var ctx CPUContext
	for i, code := range [...]byte{R0, R1, R2, R3, R4, R5, R6} {
		ctx[i] = rf[code].Get()
	}
	return ctx
}

// Restore writes a previously captured snapshot back into R0..R6.
func (rf RegisterFile) Restore(ctx CPUContext) {
	for i, code := range [...]byte{R0, R1, R2, R3, R4, R5, R6} {
		rf[code].Set(ctx[i])
	}
}

// CPUContext is a snapshot of R0..R6 at a point in time.
type CPUContext [7]uint32
