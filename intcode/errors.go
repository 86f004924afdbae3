package intcode

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"
)

type FaultKind int

const (
	FaultUnsupportedOpcode FaultKind = iota
	FaultInvalidAddressingMode
	FaultOutOfBounds
	FaultWriteToImmediate
	FaultInputExhausted
)

var (
	ErrUnsupportedOpcode     = errors.New("unsupported opcode")
	ErrInvalidAddressingMode = errors.New("invalid addressing mode")
	ErrOutOfBounds           = errors.New("memory access out of bounds")
	ErrWriteToImmediate      = errors.New("write through immediate parameter")
	ErrInputExhausted        = errors.New("input exhausted")
)

func (k FaultKind) sentinel() error {
	switch k {
	case FaultUnsupportedOpcode:
		return ErrUnsupportedOpcode
	case FaultInvalidAddressingMode:
		return ErrInvalidAddressingMode
	case FaultOutOfBounds:
		return ErrOutOfBounds
	case FaultWriteToImmediate:
		return ErrWriteToImmediate
	case FaultInputExhausted:
		return ErrInputExhausted
	}
	return nil
}

func (k FaultKind) String() string {
	if err := k.sentinel(); err != nil {
		return err.Error()
	}
	return "unknown fault"
}

// Fault is a fatal execution error. PC is the address of the instruction
// that was being decoded or evaluated.
type Fault struct {
	Kind    FaultKind
	PC      int
	Word    int64 // raw instruction word, for decode faults
	Mode    Mode  // offending mode digit
	Address int64 // offending memory index
}

func (f *Fault) Error() string {
	switch f.Kind {
	case FaultUnsupportedOpcode:
		return fmt.Sprintf("pc=%d: %s %d (word %d)", f.PC, f.Kind, f.Word%100, f.Word)
	case FaultInvalidAddressingMode:
		return fmt.Sprintf("pc=%d: %s %d (word %d)", f.PC, f.Kind, int64(f.Mode), f.Word)
	case FaultOutOfBounds:
		return fmt.Sprintf("pc=%d: %s: index %d", f.PC, f.Kind, f.Address)
	}
	return fmt.Sprintf("pc=%d: %s", f.PC, f.Kind)
}

func (f *Fault) Unwrap() error {
	return f.Kind.sentinel()
}

// SyntaxError reports malformed program text.
type SyntaxError struct {
	Message string
	Pos     lexer.Position
	Source  string
	Help    string
	Snippet string
}

func (e *SyntaxError) Error() string {
	return formatSyntaxError(e)
}

func formatSyntaxError(err *SyntaxError) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\x1b[1;31msyntax error\x1b[0m: %s\n", err.Message)

	lines := strings.Split(err.Source, "\n")
	if err.Pos.Line > 0 && err.Pos.Line <= len(lines) {
		lineNum := err.Pos.Line
		line := lines[lineNum-1]

		fmt.Fprintf(&b, "\x1b[1;34m-->\x1b[0m %s:%d:%d\n", err.Pos.Filename, err.Pos.Line, err.Pos.Column)

		// Program text is usually one very long line, so show a window around the column.
		start, end := excerptWindow(line, err.Pos.Column)
		prefix := ""
		if start > 0 {
			prefix = "..."
		}
		fmt.Fprintf(&b, "%4d | %s%s\n", lineNum, prefix, line[start:end])

		col := err.Pos.Column - 1 - start + len(prefix)
		if col < 0 {
			col = 0
		}
		pointer := strings.Repeat(" ", col) + "\x1b[1;31m^"
		if n := utf8.RuneCountInString(err.Snippet); n > 1 {
			pointer += strings.Repeat("~", n-1)
		}
		fmt.Fprintf(&b, "     | %s\x1b[0m\n", pointer)
	}

	if err.Help != "" {
		fmt.Fprintf(&b, "\n\x1b[1;32mhelp\x1b[0m: %s\n", err.Help)
	}

	return b.String()
}

const excerptRadius = 30

func excerptWindow(line string, column int) (int, int) {
	start := column - 1 - excerptRadius
	if start < 0 {
		start = 0
	}
	end := column - 1 + excerptRadius
	if end > len(line) {
		end = len(line)
	}
	if start > end {
		start = end
	}
	return start, end
}
