package main

import (
	"fmt"

	"hadydotai/aoc2019/intcode"
	"hadydotai/aoc2019/logging"

	"github.com/alecthomas/repr"
)

type DebugCommand struct {
	Inputs      []int64 `short:"i" long:"input" description:"Value for read-input instructions, consumed in the order given (repeatable)"`
	Breakpoints []int   `short:"b" long:"break" description:"Address to stop at when continuing (repeatable)"`
	Args        struct {
		ProgramFile string `positional-arg-name:"PROGRAM" required:"yes"`
	} `positional-args:"yes"`
}

var debugCommand DebugCommand

func (cmd *DebugCommand) Execute(args []string) error {
	program, err := loadProgram(cmd.Args.ProgramFile)
	if err != nil {
		return err
	}
	logging.Log(logging.LogLevelInfo, "Starting step debugger", "file", cmd.Args.ProgramFile, "cells", len(program))

	repl := NewREPL(program, cmd.Inputs)
	for _, pc := range cmd.Breakpoints {
		repl.vm.SetBreakpoint(pc, true)
	}
	return repl.Start()
}

type DisasmCommand struct {
	Repr bool `long:"repr" description:"Dump decoded instructions as Go values instead of a listing"`
	Args struct {
		ProgramFile string `positional-arg-name:"PROGRAM" required:"yes"`
	} `positional-args:"yes"`
}

var disasmCommand DisasmCommand

func (cmd *DisasmCommand) Execute(args []string) error {
	program, err := loadProgram(cmd.Args.ProgramFile)
	if err != nil {
		return err
	}
	if !cmd.Repr {
		return intcode.WriteListing(stdout, program)
	}
	for _, line := range intcode.Disassemble(program) {
		if line.Instr == nil {
			fmt.Fprintf(stdout, "%04d: %d\n", line.Addr, line.Data)
			continue
		}
		fmt.Fprintf(stdout, "%04d: %s\n", line.Addr, repr.String(*line.Instr))
	}
	return nil
}

func init() {
	flagsparser.AddCommand(
		"debug",
		"Step through a program interactively",
		"Starts a step debugger on the program with breakpoints, step back and memory inspection",
		&debugCommand,
	)
	flagsparser.AddCommand(
		"disasm",
		"Print a decoded listing of a program",
		"Walks the program linearly, printing each decodable instruction and every other cell as data",
		&disasmCommand,
	)
}
