package intcode

import (
	"fmt"
	"strings"
)

type Op int64

const (
	OpAdd         Op = 1
	OpMul         Op = 2
	OpReadInput   Op = 3
	OpWriteOutput Op = 4
	OpHalt        Op = 99
)

func (op Op) String() string {
	switch op {
	case OpAdd:
		return "ADD"
	case OpMul:
		return "MUL"
	case OpReadInput:
		return "IN"
	case OpWriteOutput:
		return "OUT"
	case OpHalt:
		return "HALT"
	}
	return "UNKNOWN"
}

// Size is the number of memory cells the instruction occupies, opcode word included.
func (op Op) Size() int {
	switch op {
	case OpAdd, OpMul:
		return 4
	case OpReadInput, OpWriteOutput:
		return 2
	case OpHalt:
		return 1
	}
	return 0
}

// Arity is the number of parameters following the opcode word.
func (op Op) Arity() int {
	if size := op.Size(); size > 0 {
		return size - 1
	}
	return 0
}

// writeTarget returns the parameter index the instruction stores into, or -1.
func (op Op) writeTarget() int {
	switch op {
	case OpAdd, OpMul:
		return 2
	case OpReadInput:
		return 0
	}
	return -1
}

type Mode int64

const (
	ModePosition  Mode = 0
	ModeImmediate Mode = 1
)

func (m Mode) String() string {
	switch m {
	case ModePosition:
		return "position"
	case ModeImmediate:
		return "immediate"
	}
	return fmt.Sprintf("mode(%d)", int64(m))
}

type Parameter struct {
	Mode  Mode
	Value int64
}

func Position(index int64) Parameter {
	return Parameter{Mode: ModePosition, Value: index}
}

func Immediate(value int64) Parameter {
	return Parameter{Mode: ModeImmediate, Value: value}
}

func (p Parameter) String() string {
	if p.Mode == ModeImmediate {
		return fmt.Sprintf("#%d", p.Value)
	}
	return fmt.Sprintf("[%d]", p.Value)
}

// Instruction is a single decoded operation. Only the first Op.Arity()
// entries of Params are meaningful.
type Instruction struct {
	Op     Op
	Params [3]Parameter
}

func NewInstruction(op Op, params ...Parameter) Instruction {
	instr := Instruction{Op: op}
	copy(instr.Params[:], params)
	return instr
}

func (instr Instruction) Size() int {
	return instr.Op.Size()
}

func (instr Instruction) Operands() []Parameter {
	return instr.Params[:instr.Op.Arity()]
}

func (instr Instruction) String() string {
	var b strings.Builder
	b.WriteString(instr.Op.String())
	for i, p := range instr.Operands() {
		if i == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	return b.String()
}

// splitWord separates an instruction word into its opcode and the packed
// decimal mode digits.
func splitWord(word int64) (Op, int64) {
	return Op(word % 100), word / 100
}

// Decode reads the instruction starting at pc. Memory is not modified.
func Decode(memory []int64, pc int) (Instruction, error) {
	if pc < 0 || pc >= len(memory) {
		return Instruction{}, &Fault{Kind: FaultOutOfBounds, PC: pc, Address: int64(pc)}
	}
	word := memory[pc]
	if word < 0 {
		return Instruction{}, &Fault{Kind: FaultUnsupportedOpcode, PC: pc, Word: word}
	}

	op, modes := splitWord(word)
	if op.Size() == 0 {
		return Instruction{}, &Fault{Kind: FaultUnsupportedOpcode, PC: pc, Word: word}
	}
	if pc+op.Size() > len(memory) {
		return Instruction{}, &Fault{Kind: FaultOutOfBounds, PC: pc, Address: int64(len(memory))}
	}

	instr := Instruction{Op: op}
	target := op.writeTarget()
	for i := 0; i < op.Arity(); i++ {
		mode := Mode(modes % 10)
		modes /= 10

		raw := memory[pc+1+i]
		if i == target {
			instr.Params[i] = Position(raw)
			continue
		}
		switch mode {
		case ModePosition, ModeImmediate:
			instr.Params[i] = Parameter{Mode: mode, Value: raw}
		default:
			return Instruction{}, &Fault{Kind: FaultInvalidAddressingMode, PC: pc, Word: word, Mode: mode}
		}
	}
	return instr, nil
}
