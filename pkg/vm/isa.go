package vm

// The following constants define the instruction set's opcodes, one
// byte each, exactly as spec.md §6 lists them.
const (
	OpcodeNOP  = byte(0x00)
	OpcodeHLT  = byte(0x01)
	OpcodeMOV  = byte(0x02)
	OpcodeBEQ  = byte(0x03)
	OpcodeBNE  = byte(0x04)
	OpcodeB    = byte(0x05)
	OpcodeBL   = byte(0x06)
	OpcodeBX   = byte(0x07)
	OpcodeADD  = byte(0x08)
	OpcodeSUB  = byte(0x09)
	OpcodeMUL  = byte(0x0A)
	OpcodeDIV  = byte(0x0B)
	OpcodeMOD  = byte(0x0C)
	OpcodeAND  = byte(0x0D)
	OpcodeORR  = byte(0x0E)
	OpcodeXOR  = byte(0x0F)
	OpcodeNOT  = byte(0x10)
	OpcodeLSL  = byte(0x11)
	OpcodeLSR  = byte(0x12)
	OpcodeCMP  = byte(0x13)
	OpcodeLDR  = byte(0x14)
	OpcodeSTR  = byte(0x15)
	OpcodeINP  = byte(0x16)
	OpcodeOUT  = byte(0x17)
	OpcodeOUTC = byte(0x18)
	OpcodeIRET = byte(0xFF)
)

// Operand type codes, as spec.md §3/§6 define them.
const (
	OperandTypeRegister = byte(0x00)
	OperandTypeValue    = byte(0x01)
)

// OperandType records the wire shape of an operand: its name (for
// tracing) and the number of bytes it occupies when it is the last
// operand of an instruction.
type OperandType struct {
	Name             string
	OperandSizeBytes int
}

// OperandTypeSet is the fixed register/value operand-type table.
type OperandTypeSet map[byte]OperandType

// NewOperandTypeSet returns the fixed operand-type table from spec.md §3.
func NewOperandTypeSet() OperandTypeSet {
	return OperandTypeSet{
		OperandTypeRegister: {Name: "register", OperandSizeBytes: 1},
		OperandTypeValue:    {Name: "value", OperandSizeBytes: 2},
	}
}

// Handler executes a decoded instruction against its operands.
type Handler func(operands []Operand) error

// InstructionDescriptor is the (mnemonic, handler, operand count)
// triple keyed by opcode in an InstructionSet.
type InstructionDescriptor struct {
	Mnemonic    string
	Handler     Handler
	NumOperands int
}

// InstructionSet maps opcode to its descriptor.
type InstructionSet map[byte]InstructionDescriptor

// newInstructionSet wires every opcode to the component method that
// implements it. It mirrors CentralProcessingUnit's __instruction_set
// dict in the original implementation.
func newInstructionSet(alu *ArithmeticLogicUnit, iu *InstructionUnit, mc *MemoryController, io *IoController, ic *InterruptController) InstructionSet {
	return InstructionSet{
		OpcodeNOP:  {Mnemonic: "NOP", Handler: iu.NOP, NumOperands: 0},
		OpcodeHLT:  {Mnemonic: "HLT", Handler: iu.HLT, NumOperands: 0},
		OpcodeMOV:  {Mnemonic: "MOV", Handler: iu.MOV, NumOperands: 2},
		OpcodeBEQ:  {Mnemonic: "BEQ", Handler: iu.BEQ, NumOperands: 1},
		OpcodeBNE:  {Mnemonic: "BNE", Handler: iu.BNE, NumOperands: 1},
		OpcodeB:    {Mnemonic: "B", Handler: iu.B, NumOperands: 1},
		OpcodeBL:   {Mnemonic: "BL", Handler: iu.BL, NumOperands: 1},
		OpcodeBX:   {Mnemonic: "BX", Handler: iu.BX, NumOperands: 0},
		OpcodeADD:  {Mnemonic: "ADD", Handler: alu.ADD, NumOperands: 3},
		OpcodeSUB:  {Mnemonic: "SUB", Handler: alu.SUB, NumOperands: 3},
		OpcodeMUL:  {Mnemonic: "MUL", Handler: alu.MUL, NumOperands: 3},
		OpcodeDIV:  {Mnemonic: "DIV", Handler: alu.DIV, NumOperands: 3},
		OpcodeMOD:  {Mnemonic: "MOD", Handler: alu.MOD, NumOperands: 3},
		OpcodeAND:  {Mnemonic: "AND", Handler: alu.AND, NumOperands: 3},
		OpcodeORR:  {Mnemonic: "ORR", Handler: alu.ORR, NumOperands: 3},
		OpcodeXOR:  {Mnemonic: "XOR", Handler: alu.XOR, NumOperands: 3},
		OpcodeNOT:  {Mnemonic: "NOT", Handler: alu.NOT, NumOperands: 2},
		OpcodeLSL:  {Mnemonic: "LSL", Handler: alu.LSL, NumOperands: 3},
		OpcodeLSR:  {Mnemonic: "LSR", Handler: alu.LSR, NumOperands: 3},
		OpcodeCMP:  {Mnemonic: "CMP", Handler: alu.CMP, NumOperands: 2},
		OpcodeLDR:  {Mnemonic: "LDR", Handler: mc.LDR, NumOperands: 2},
		OpcodeSTR:  {Mnemonic: "STR", Handler: mc.STR, NumOperands: 2},
		OpcodeINP:  {Mnemonic: "INP", Handler: io.INP, NumOperands: 1},
		OpcodeOUT:  {Mnemonic: "OUT", Handler: io.OUT, NumOperands: 1},
		OpcodeOUTC: {Mnemonic: "OUTC", Handler: io.OUTC, NumOperands: 1},
		OpcodeIRET: {Mnemonic: "IRET", Handler: ic.IRET, NumOperands: 0},
	}
}
