package main

import (
	"fmt"

	"hadydotai/aoc2019/batch"
	"hadydotai/aoc2019/intcode"
	"hadydotai/aoc2019/logging"
)

type RunCommand struct {
	Inputs  []int64  `short:"i" long:"input" description:"Value for read-input instructions, consumed in the order given (repeatable)"`
	Patches []string `short:"p" long:"patch" description:"Overwrite a memory cell before running, as ADDR=VALUE (repeatable)"`
	Report  string   `short:"r" long:"report" description:"What to print once the program halts (default: memory0 without inputs, last-output with)" choice:"memory0" choice:"last-output" choice:"outputs" choice:"memory"`
	Args    struct {
		ProgramFile string `positional-arg-name:"PROGRAM" required:"yes"`
	} `positional-args:"yes"`
}

var runCommand RunCommand

func (cmd *RunCommand) Execute(args []string) error {
	patches, err := parsePatches(cmd.Patches)
	if err != nil {
		return err
	}
	report := batch.Report(cmd.Report)
	if report == "" {
		report = batch.DefaultReport(cmd.Inputs)
	}
	return runProgram(cmd.Args.ProgramFile, cmd.Inputs, patches, report)
}

func runProgram(path string, inputs []int64, patches map[int]int64, report batch.Report) error {
	program, err := loadProgram(path)
	if err != nil {
		return err
	}
	if len(patches) > 0 {
		program, err = intcode.Patch(program, patches)
		if err != nil {
			return err
		}
	}

	logging.Log(logging.LogLevelInfo, "Running program", "file", path, "inputs", len(inputs), "report", string(report))
	memory, outputs, err := intcode.Execute(program, inputs)
	if err != nil {
		return fmt.Errorf("program %s faulted: %w", path, err)
	}

	value, err := report.Render(memory, outputs)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, value)
	return nil
}

type AlarmCommand struct {
	Noun int64 `short:"n" long:"noun" description:"Value written to memory[1]" default:"12"`
	Verb int64 `short:"v" long:"verb" description:"Value written to memory[2]" default:"2"`
	Args struct {
		ProgramFile string `positional-arg-name:"PROGRAM" required:"yes"`
	} `positional-args:"yes"`
}

var alarmCommand AlarmCommand

func (cmd *AlarmCommand) Execute(args []string) error {
	patches := map[int]int64{intcode.NounAddr: cmd.Noun, intcode.VerbAddr: cmd.Verb}
	return runProgram(cmd.Args.ProgramFile, nil, patches, batch.ReportMemory0)
}

type DiagnoseCommand struct {
	Input int64 `short:"i" long:"input" description:"System ID supplied to the diagnostic program" default:"1"`
	Args  struct {
		ProgramFile string `positional-arg-name:"PROGRAM" required:"yes"`
	} `positional-args:"yes"`
}

var diagnoseCommand DiagnoseCommand

func (cmd *DiagnoseCommand) Execute(args []string) error {
	return runProgram(cmd.Args.ProgramFile, []int64{cmd.Input}, nil, batch.ReportLastOutput)
}

func init() {
	flagsparser.AddCommand(
		"run",
		"Run an Intcode program",
		"Loads a comma separated Intcode program, runs it until it halts and prints the selected report",
		&runCommand,
	)
	flagsparser.AddCommand(
		"alarm",
		"Restore the 1202 program alarm state and run",
		"Writes the noun and verb into memory[1] and memory[2], runs the program and prints memory[0]",
		&alarmCommand,
	)
	flagsparser.AddCommand(
		"diagnose",
		"Run a diagnostic program",
		"Runs the program with a single system ID as input and prints the final diagnostic code it outputs",
		&diagnoseCommand,
	)
}
