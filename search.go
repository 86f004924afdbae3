package main

import (
	"errors"
	"fmt"

	"hadydotai/aoc2019/batch"
	"hadydotai/aoc2019/intcode"
	"hadydotai/aoc2019/logging"
)

type SearchCommand struct {
	Target int64 `short:"t" long:"target" description:"Value memory[0] must hold after the run" default:"19690720"`
	Min    int64 `long:"min" description:"Smallest noun and verb to try" default:"0"`
	Max    int64 `long:"max" description:"Largest noun and verb to try" default:"99"`
	Args   struct {
		ProgramFile string `positional-arg-name:"PROGRAM" required:"yes"`
	} `positional-args:"yes"`
}

var searchCommand SearchCommand

func (cmd *SearchCommand) Execute(args []string) error {
	if cmd.Min > cmd.Max {
		return fmt.Errorf("--min %d exceeds --max %d", cmd.Min, cmd.Max)
	}
	program, err := loadProgram(cmd.Args.ProgramFile)
	if err != nil {
		return err
	}

	logging.Log(logging.LogLevelInfo, "Searching noun/verb", "target", cmd.Target, "min", cmd.Min, "max", cmd.Max)
	noun, verb, err := intcode.SearchNounVerb(program, cmd.Target, cmd.Min, cmd.Max)
	if errors.Is(err, intcode.ErrNoSolution) {
		return fmt.Errorf("no noun/verb in [%d, %d] gives %d", cmd.Min, cmd.Max, cmd.Target)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, intcode.NounVerbCode(noun, verb))
	return nil
}

type BatchCommand struct {
	Args struct {
		Manifest string `positional-arg-name:"MANIFEST" required:"yes"`
	} `positional-args:"yes"`
}

var batchCommand BatchCommand

func (cmd *BatchCommand) Execute(args []string) error {
	manifest, err := batch.LoadManifest(cmd.Args.Manifest)
	if err != nil {
		return err
	}

	failed := 0
	results := manifest.Run()
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(stdout, "%s: error: %v\n", r.Name, r.Err)
			continue
		}
		fmt.Fprintf(stdout, "%s: %s\n", r.Name, r.Value)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d jobs failed", failed, len(results))
	}
	return nil
}

func init() {
	flagsparser.AddCommand(
		"search",
		"Find the noun and verb that produce a target",
		"Tries every noun/verb pair in the range, prints 100*noun+verb for the first run whose memory[0] equals the target",
		&searchCommand,
	)
	flagsparser.AddCommand(
		"batch",
		"Run the jobs listed in a YAML manifest",
		"Each job names a program and how to run it (inputs, patches, search) and what to report",
		&batchCommand,
	)
}
