package intcode

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	programLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Int", Pattern: `-?\d+`},
		{Name: "Punct", Pattern: `,`},
	})

	programParser = participle.MustBuild[programText](
		participle.Lexer(programLexer),
	)
)

type programText struct {
	Cells []*cell `parser:"@@ ( \",\" @@ )*"`
}

type cell struct {
	Pos   lexer.Position
	Value string `parser:"@Int"`
}

// Parse turns comma separated program text into an initial memory image.
// A single trailing newline is ignored.
func Parse(filename, source string) ([]int64, error) {
	text := strings.TrimSuffix(source, "\n")
	if text == "" {
		return nil, &SyntaxError{
			Message: "empty program",
			Pos:     lexer.Position{Filename: filename, Line: 1, Column: 1},
			Source:  text,
			Help:    "a program is a comma separated list of integers, e.g. 1,0,0,0,99",
		}
	}

	program, err := programParser.ParseString(filename, text)
	if err != nil {
		var perr participle.Error
		if errors.As(err, &perr) {
			return nil, &SyntaxError{
				Message: perr.Message(),
				Pos:     perr.Position(),
				Source:  text,
				Help:    "cells are base-10 integers separated by a single ',' with no whitespace",
			}
		}
		return nil, fmt.Errorf("parse error: %w", err)
	}

	memory := make([]int64, len(program.Cells))
	for i, c := range program.Cells {
		value, err := strconv.ParseInt(c.Value, 10, 64)
		if err != nil {
			return nil, &SyntaxError{
				Message: fmt.Sprintf("cell %d: %q does not fit in a 64-bit integer", i, c.Value),
				Pos:     c.Pos,
				Source:  text,
				Snippet: c.Value,
			}
		}
		memory[i] = value
	}
	return memory, nil
}

// Format renders memory back into program text.
func Format(memory []int64) string {
	var b strings.Builder
	for i, v := range memory {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(v, 10))
	}
	return b.String()
}
