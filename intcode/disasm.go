package intcode

import (
	"fmt"
	"io"
)

// Line is one entry of a listing: either a decoded instruction or a raw data cell.
type Line struct {
	Addr  int
	Instr *Instruction
	Data  int64
}

func (l Line) String() string {
	if l.Instr != nil {
		return fmt.Sprintf("%04d: %s", l.Addr, l.Instr)
	}
	return fmt.Sprintf("%04d: DATA %d", l.Addr, l.Data)
}

// Disassemble walks memory linearly. Cells that do not decode are emitted as
// data and the walk resumes at the next cell.
func Disassemble(memory []int64) []Line {
	var lines []Line
	for pc := 0; pc < len(memory); {
		instr, err := Decode(memory, pc)
		if err != nil {
			lines = append(lines, Line{Addr: pc, Data: memory[pc]})
			pc++
			continue
		}
		lines = append(lines, Line{Addr: pc, Instr: &instr})
		pc += instr.Size()
	}
	return lines
}

func WriteListing(w io.Writer, memory []int64) error {
	for _, line := range Disassemble(memory) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
