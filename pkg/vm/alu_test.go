package vm

import (
	"errors"
	"testing"
)

func newALUFixture() (*ArithmeticLogicUnit, *Flag, *Register) {
	z := &Flag{}
	alu := NewArithmeticLogicUnit(z)
	dest := NewRegister("R0", 2)
	return alu, z, dest
}

func TestALUBinaryOps(t *testing.T) {
	tests := []struct {
		name  string
		op    func(*ArithmeticLogicUnit, []Operand) error
		a, b  uint32
		want  uint32
		wantZ bool
	}{
		{"ADD", (*ArithmeticLogicUnit).ADD, 5, 3, 8, false},
		{"ADD to zero", (*ArithmeticLogicUnit).ADD, 0, 0, 0, true},
		{"SUB", (*ArithmeticLogicUnit).SUB, 8, 3, 5, false},
		{"SUB to zero", (*ArithmeticLogicUnit).SUB, 4, 4, 0, true},
		{"MUL", (*ArithmeticLogicUnit).MUL, 6, 7, 42, false},
		{"AND", (*ArithmeticLogicUnit).AND, 0b1100, 0b1010, 0b1000, false},
		{"ORR", (*ArithmeticLogicUnit).ORR, 0b1100, 0b0010, 0b1110, false},
		{"XOR", (*ArithmeticLogicUnit).XOR, 0b1100, 0b1010, 0b0110, false},
		{"LSL", (*ArithmeticLogicUnit).LSL, 1, 4, 16, false},
		{"LSR", (*ArithmeticLogicUnit).LSR, 16, 4, 1, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			alu, z, dest := newALUFixture()
			operands := []Operand{RegisterOperand(dest), LiteralOperand(tc.a), LiteralOperand(tc.b)}
			if err := tc.op(alu, operands); err != nil {
				t.Fatalf("op: %v", err)
			}
			if got := dest.Get(); got != tc.want {
				t.Errorf("dest = 0x%x, want 0x%x", got, tc.want)
			}
			if z.IsSet() != tc.wantZ {
				t.Errorf("zero flag = %v, want %v", z.IsSet(), tc.wantZ)
			}
		})
	}
}

func TestALUNot(t *testing.T) {
	alu, _, dest := newALUFixture()
	src := NewRegister("R1", 2)
	src.Set(0x00FF)
	operands := []Operand{RegisterOperand(dest), RegisterOperand(src)}
	if err := alu.NOT(operands); err != nil {
		t.Fatalf("NOT: %v", err)
	}
	if got, want := dest.Get(), uint32(0xFF00); got != want {
		t.Errorf("dest = 0x%x, want 0x%x", got, want)
	}
}

func TestALUDivisionByZeroLeavesStateUnchanged(t *testing.T) {
	for _, op := range []struct {
		name string
		fn   func(*ArithmeticLogicUnit, []Operand) error
	}{
		{"DIV", (*ArithmeticLogicUnit).DIV},
		{"MOD", (*ArithmeticLogicUnit).MOD},
	} {
		t.Run(op.name, func(t *testing.T) {
			alu, z, dest := newALUFixture()
			dest.Set(0xBEEF)
			z.SetIsZero(1) // force a known, non-matching flag state
			operands := []Operand{RegisterOperand(dest), LiteralOperand(10), LiteralOperand(0)}
			err := op.fn(alu, operands)
			if !errors.Is(err, ErrArithmetic) {
				t.Fatalf("error = %v, want ErrArithmetic", err)
			}
			if got := dest.Get(); got != 0xBEEF {
				t.Errorf("dest was mutated to 0x%x on divide-by-zero", got)
			}
			if z.IsSet() {
				t.Errorf("zero flag was mutated on divide-by-zero")
			}
		})
	}
}

func TestALUDivAndMod(t *testing.T) {
	alu, _, dest := newALUFixture()
	operands := []Operand{RegisterOperand(dest), LiteralOperand(17), LiteralOperand(5)}
	if err := alu.DIV(operands); err != nil {
		t.Fatalf("DIV: %v", err)
	}
	if got := dest.Get(); got != 3 {
		t.Errorf("DIV(17, 5) = %d, want 3", got)
	}
	if err := alu.MOD(operands); err != nil {
		t.Fatalf("MOD: %v", err)
	}
	if got := dest.Get(); got != 2 {
		t.Errorf("MOD(17, 5) = %d, want 2", got)
	}
}

func TestALUCmpSetsZeroButWritesNoDestination(t *testing.T) {
	alu, z, _ := newALUFixture()
	operands := []Operand{LiteralOperand(5), LiteralOperand(5)}
	if err := alu.CMP(operands); err != nil {
		t.Fatalf("CMP: %v", err)
	}
	if !z.IsSet() {
		t.Errorf("CMP(5, 5) did not set the zero flag")
	}

	operands = []Operand{LiteralOperand(3), LiteralOperand(5)}
	if err := alu.CMP(operands); err != nil {
		t.Fatalf("CMP: %v", err)
	}
	if z.IsSet() {
		t.Errorf("CMP(3, 5) should not set the zero flag (unsigned wraparound is not checked)")
	}
}
