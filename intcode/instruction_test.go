package intcode

import (
	"errors"
	"testing"

	"github.com/alecthomas/repr"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		memory []int64
		want   Instruction
	}{
		{[]int64{1, 1, 2, 3}, NewInstruction(OpAdd, Position(1), Position(2), Position(3))},
		{[]int64{1101, 1, 2, 3}, NewInstruction(OpAdd, Immediate(1), Immediate(2), Position(3))},
		{[]int64{1001, 1, 2, 3}, NewInstruction(OpAdd, Position(1), Immediate(2), Position(3))},
		{[]int64{101, 1, 2, 3}, NewInstruction(OpAdd, Immediate(1), Position(2), Position(3))},
		{[]int64{2, 5, 6, 7}, NewInstruction(OpMul, Position(5), Position(6), Position(7))},
		{[]int64{3, 1}, NewInstruction(OpReadInput, Position(1))},
		{[]int64{4, 1}, NewInstruction(OpWriteOutput, Position(1))},
		{[]int64{104, -7}, NewInstruction(OpWriteOutput, Immediate(-7))},
		{[]int64{99}, NewInstruction(OpHalt)},
		// write targets stay in position mode whatever their digit says
		{[]int64{11101, 1, 2, 3}, NewInstruction(OpAdd, Immediate(1), Immediate(2), Position(3))},
		{[]int64{103, 9}, NewInstruction(OpReadInput, Position(9))},
		{[]int64{21101, 1, 2, 3}, NewInstruction(OpAdd, Immediate(1), Immediate(2), Position(3))},
	}

	for i, tt := range tests {
		got, err := Decode(tt.memory, 0)
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %v", i, err)
		}
		if got != tt.want {
			t.Errorf("tests[%d] - got %s, want %s", i, repr.String(got), repr.String(tt.want))
		}
	}
}

func TestDecodeSequence(t *testing.T) {
	memory := []int64{
		1, 1, 2, 3,
		2, 1, 2, 3,
		3, 1,
		4, 1,
		1101, 1, 2, 3,
		1001, 1, 2, 3,
		99,
	}
	want := []Instruction{
		NewInstruction(OpAdd, Position(1), Position(2), Position(3)),
		NewInstruction(OpMul, Position(1), Position(2), Position(3)),
		NewInstruction(OpReadInput, Position(1)),
		NewInstruction(OpWriteOutput, Position(1)),
		NewInstruction(OpAdd, Immediate(1), Immediate(2), Position(3)),
		NewInstruction(OpAdd, Position(1), Immediate(2), Position(3)),
		NewInstruction(OpHalt),
	}

	pc := 0
	for i, w := range want {
		got, err := Decode(memory, pc)
		if err != nil {
			t.Fatalf("instr %d at pc=%d: %v", i, pc, err)
		}
		if got != w {
			t.Fatalf("instr %d at pc=%d: got %s, want %s", i, pc, got, w)
		}
		pc += got.Size()
	}
	if pc != len(memory) {
		t.Fatalf("pc = %d after walk, want %d", pc, len(memory))
	}
}

func TestDecodeFaults(t *testing.T) {
	tests := []struct {
		name   string
		memory []int64
		pc     int
		kind   FaultKind
		target error
	}{
		{"unknown opcode", []int64{7, 0, 0, 0}, 0, FaultUnsupportedOpcode, ErrUnsupportedOpcode},
		{"opcode zero", []int64{0}, 0, FaultUnsupportedOpcode, ErrUnsupportedOpcode},
		{"negative word", []int64{-1, 0, 0, 0}, 0, FaultUnsupportedOpcode, ErrUnsupportedOpcode},
		{"mode two on read operand", []int64{201, 0, 0, 0}, 0, FaultInvalidAddressingMode, ErrInvalidAddressingMode},
		{"mode nine on second operand", []int64{9002, 0, 0, 0}, 0, FaultInvalidAddressingMode, ErrInvalidAddressingMode},
		{"truncated instruction", []int64{1, 0, 0}, 0, FaultOutOfBounds, ErrOutOfBounds},
		{"pc past end", []int64{99}, 1, FaultOutOfBounds, ErrOutOfBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.memory, tt.pc)
			if !errors.Is(err, tt.target) {
				t.Fatalf("got %v, want %v", err, tt.target)
			}
			var fault *Fault
			if !errors.As(err, &fault) {
				t.Fatalf("error %T is not a *Fault", err)
			}
			if fault.Kind != tt.kind {
				t.Errorf("kind = %s, want %s", fault.Kind, tt.kind)
			}
			if fault.PC != tt.pc {
				t.Errorf("pc = %d, want %d", fault.PC, tt.pc)
			}
		})
	}
}

func TestInstructionString(t *testing.T) {
	instr := NewInstruction(OpAdd, Position(4), Immediate(-3), Position(0))
	if got, want := instr.String(), "ADD [4], #-3, [0]"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := NewInstruction(OpHalt).String(), "HALT"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
