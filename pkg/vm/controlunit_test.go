package vm

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"
)

func newControlUnitFixture(ram *Ram, regs RegisterFile, out *bytes.Buffer) *ControlUnit {
	z := &Flag{}
	alu := NewArithmeticLogicUnit(z)
	iu := NewInstructionUnit(z, regs[R3], regs[R5], regs[R6])
	mc := NewMemoryController(z, ram)
	ioc := NewIoController(regs[R2], strings.NewReader(""), out)
	ic := NewInterruptController(regs, log.New(noopWriter{}, "", 0))
	instructionSet := newInstructionSet(alu, iu, mc, ioc, ic)
	return NewControlUnit(ram, regs, instructionSet, NewOperandTypeSet())
}

func TestControlUnitExecutesAddLiteralsProgram(t *testing.T) {
	ram := NewRam(64)
	regs := NewRegisterFile()
	var out bytes.Buffer
	cu := newControlUnitFixture(ram, regs, &out)

	image := []byte{
		0x02, 0x01, 0x00, 0x05, 0x00, // MOV R0, 5
		0x02, 0x01, 0x01, 0x03, 0x00, // MOV R1, 3
		0x08, 0x00, 0x00, 0x00, 0x01, // ADD R0, R0, R1
		0x17, 0x00, 0x00, // OUT R0
		0x01, // HLT
	}
	if err := ram.Set(0, image); err != nil {
		t.Fatalf("Set: %v", err)
	}
	cu.SetProgramCounter(0)

	for {
		err := cu.Clock()
		if errors.Is(err, errHalted) {
			break
		}
		if err != nil {
			t.Fatalf("Clock: %v", err)
		}
	}

	if got := regs[R0].Get(); got != 8 {
		t.Errorf("R0 = %d, want 8", got)
	}
	if got := out.String(); got != "8\n" {
		t.Errorf("output = %q, want %q", got, "8\n")
	}
}

func TestControlUnitZeroOperandInstructionDoesNotAdvancePC(t *testing.T) {
	ram := NewRam(8)
	regs := NewRegisterFile()
	cu := newControlUnitFixture(ram, regs, &bytes.Buffer{})

	if err := ram.Set(0, []byte{OpcodeHLT}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	cu.SetProgramCounter(0)
	if err := cu.Clock(); !errors.Is(err, errHalted) {
		t.Fatalf("Clock: %v", err)
	}
	if got := regs[R5].Get(); got != 0 {
		t.Errorf("R5 = %d after a zero-operand instruction, want 0 (unchanged)", got)
	}
}

func TestControlUnitDivideByZeroIsRecoverable(t *testing.T) {
	ram := NewRam(64)
	regs := NewRegisterFile()
	cu := newControlUnitFixture(ram, regs, &bytes.Buffer{})

	image := []byte{
		0x0B, 0x00, 0x00, 0x00, 0x01, // DIV R0, R0, R1 (R1 == 0)
		0x01, // HLT
	}
	if err := ram.Set(0, image); err != nil {
		t.Fatalf("Set: %v", err)
	}
	cu.SetProgramCounter(0)

	err := cu.Clock()
	if !errors.Is(err, ErrArithmetic) {
		t.Fatalf("Clock: %v, want ErrArithmetic", err)
	}

	// The decoder must have already advanced PC past the faulted
	// instruction: a caller retrying Clock() resumes at the next one.
	if err := cu.Clock(); !errors.Is(err, errHalted) {
		t.Fatalf("Clock after fault: %v, want errHalted (the following HLT)", err)
	}
}
