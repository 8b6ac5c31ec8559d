package vm

import (
	"errors"
	"io"
	"log"
	"os"
)

// CentralProcessingUnit wires together every component described in
// spec.md §2 and drives the fetch-decode-execute loop described in
// §4.9 and §5.
type CentralProcessingUnit struct {
	z    *Flag
	ram  *Ram
	regs RegisterFile

	alu *ArithmeticLogicUnit
	iu  *InstructionUnit
	mc  *MemoryController
	io  *IoController
	ic  *InterruptController
	cu  *ControlUnit

	instructionSet InstructionSet
	operandTypes   OperandTypeSet

	logger *log.Logger
}

// NewCPU constructs a fully wired CentralProcessingUnit. A zero
// ramSize uses DefaultRamSize; a nil in/out default to os.Stdin and
// os.Stdout; a nil logger defaults to one writing to os.Stderr with
// no timestamp prefix, keeping log output script-friendly.
func NewCPU(ramSize int, in io.Reader, out io.Writer, logger *log.Logger) *CentralProcessingUnit {
	if ramSize <= 0 {
		ramSize = DefaultRamSize
	}
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	if logger == nil {
		logger = log.New(os.Stderr, "", 0)
	}

	z := &Flag{}
	ram := NewRam(ramSize)
	regs := NewRegisterFile()

	alu := NewArithmeticLogicUnit(z)
	iu := NewInstructionUnit(z, regs[R3], regs[R5], regs[R6])
	mc := NewMemoryController(z, ram)
	ioc := NewIoController(regs[R2], in, out)
	ic := NewInterruptController(regs, logger)

	instructionSet := newInstructionSet(alu, iu, mc, ioc, ic)
	operandTypes := NewOperandTypeSet()
	cu := NewControlUnit(ram, regs, instructionSet, operandTypes)

	return &CentralProcessingUnit{
		z: z, ram: ram, regs: regs,
		alu: alu, iu: iu, mc: mc, io: ioc, ic: ic, cu: cu,
		instructionSet: instructionSet, operandTypes: operandTypes,
		logger: logger,
	}
}

// DisassembleAt formats the instruction at address without running
// anything; see DisassembleAt for the returned next address.
func (c *CentralProcessingUnit) DisassembleAt(address uint32) (text string, next uint32, err error) {
	return DisassembleAt(c.ram, c.instructionSet, c.operandTypes, address)
}

// LoadProgram writes bytes into Ram starting at address, for initial
// boot images. Interrupt-delivered LOADs go through the run loop
// instead, via InterruptController.
func (c *CentralProcessingUnit) LoadProgram(address uint32, bytes []byte) error {
	return c.ram.Set(address, bytes)
}

// Start binds the interrupt listener and runs the boot program at
// address. It returns only when the listener cannot bind: every saved
// context comes from a RUN dispatch, so an IRET outside any RUN frame
// finds an empty context stack, faults, and restarts execution at
// 0x00 like any other instruction fault.
func (c *CentralProcessingUnit) Start(address uint32) error {
	if err := c.ic.StartListener(); err != nil {
		return err
	}
	c.run(address)
	return nil
}

// run is the fetch-decode-execute loop. The original implementation
// expresses "HLT restarts execution at 0x00" as a tail-recursive call
// to itself; since that call is always the last action taken and its
// result is never used, it collapses into resetting pc and looping
// rather than growing a call stack. A RUN interrupt is genuine
// nesting — it must return control to the interrupted program when
// the nested frame IRETs — so that case is tracked with an explicit
// depth counter instead of a recursive call, matching the original
// sequencing, even across interrupt frames, while keeping the program
// call stack flat.
func (c *CentralProcessingUnit) run(bootAddress uint32) {
	pc := bootAddress
	depth := 0
	setBase := true

outer:
	for {
		c.cu.SetProgramCounter(pc)
		if setBase {
			c.regs[R6].Set(pc)
		}
		setBase = true

		for {
			if c.ic.HasInterrupt() {
				interrupt := c.ic.NextInterrupt()
				switch interrupt.Command {
				case InterruptLoad:
					if err := c.ram.Set(interrupt.Address, interrupt.Arguments); err != nil {
						c.logger.Printf("LOAD failed: %v", err)
					}
				case InterruptRun:
					c.ic.SaveContext(c.regs.Snapshot())
					depth++
					pc = interrupt.Address
					continue outer
				default:
					c.logger.Printf("unknown interrupt command: 0x%02x", interrupt.Command)
				}
				continue
			}

			err := c.cu.Clock()
			if err == nil {
				continue
			}
			if errors.Is(err, errIRET) {
				if depth == 0 {
					return
				}
				depth--
				pc = c.regs[R5].Get()
				setBase = false
				continue outer
			}
			if errors.Is(err, errHalted) {
				c.logger.Printf("HLT, restarting at 0x00")
			} else {
				c.logger.Printf("instruction fault, restarting at 0x00: %v", err)
			}
			pc = 0x00
			continue outer
		}
	}
}
