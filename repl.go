package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"hadydotai/aoc2019/intcode"

	"github.com/alecthomas/repr"
	"github.com/chzyer/readline"
)

type REPL struct {
	vm  *intcode.Machine
	out io.Writer
}

func NewREPL(program, inputs []int64) *REPL {
	return &REPL{
		vm:  intcode.NewMachine(program, inputs, intcode.WithHistory()),
		out: stdout,
	}
}

// completer implements readline.AutoCompleter
type completer struct{}

var replCommands = []string{
	"step", "s", "n",
	"back", "b",
	"continue", "c",
	"break",
	"clear",
	"mem",
	"pc",
	"decode",
	"list", "l",
	"out",
	"in",
	"restart", "r",
	"quit", "q",
	"help", "h",
}

func (c completer) Do(line []rune, pos int) (newLine [][]rune, length int) {
	input := string(line[:pos])
	for _, cmd := range replCommands {
		if strings.HasPrefix(cmd, input) {
			newLine = append(newLine, []rune(cmd[len(input):]))
		}
	}
	return newLine, len(input)
}

func (r *REPL) printHelp() {
	help := `
Available Commands:
  step, s, n          Execute next instruction
  back, b             Step back to previous state
  continue, c         Run until halt, fault or breakpoint
  break <pc>          Set breakpoint at address
  clear <pc>          Remove breakpoint at address
  mem [addr [count]]  Show memory cells (default: 8 cells from pc)
  pc                  Show current program counter
  decode [pc]         Dump the decoded instruction at pc
  list, l             Disassemble the program, highlighting pc
  out                 Show values written so far
  in                  Show inputs not consumed yet
  restart, r          Restart program execution
  help, h             Show this help message
  quit, q             Exit debugger

Tips:
  - Use Tab for command completion
  - Use Up/Down arrows for command history
`
	fmt.Fprintln(r.out, help)
}

func (r *REPL) Start() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[32m⟩\033[0m ",
		HistoryFile:     filepath.Join(os.TempDir(), ".intcode_debugger_history"),
		HistoryLimit:    1000,
		AutoComplete:    completer{},
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to start debugger prompt: %w", err)
	}
	defer rl.Close()

	fmt.Fprintln(r.out, "\033[1;36mIntcode Debugger\033[0m")
	fmt.Fprintln(r.out, "Type 'help' or 'h' for available commands")
	fmt.Fprintln(r.out)
	r.printState()

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF, readline.ErrInterrupt
			return nil
		}
		if quit := r.execute(strings.Fields(strings.TrimSpace(line))); quit {
			return nil
		}
	}
}

// execute runs one debugger command and reports whether the session should end.
func (r *REPL) execute(args []string) bool {
	if len(args) == 0 {
		return false
	}

	switch args[0] {
	case "help", "h":
		r.printHelp()

	case "step", "s", "n":
		if r.vm.Status() != intcode.StatusRunning {
			r.printStopped()
			return false
		}
		instr, err := r.vm.Step()
		if err != nil {
			r.printFault(err)
			return false
		}
		fmt.Fprintf(r.out, "\033[1;33mexecuted\033[0m %s\n", instr)
		r.printState()

	case "back", "b":
		if !r.vm.StepBack() {
			fmt.Fprintln(r.out, "\033[31mNothing to step back to\033[0m")
			return false
		}
		r.printState()

	case "continue", "c":
		if r.vm.Status() != intcode.StatusRunning {
			r.printStopped()
			return false
		}
		if err := r.vm.Continue(); err != nil {
			r.printFault(err)
			return false
		}
		if r.vm.Status() == intcode.StatusRunning {
			fmt.Fprintf(r.out, "\033[31m●\033[0m Breakpoint at %d\n", r.vm.PC())
		}
		r.printState()

	case "break", "clear":
		if len(args) < 2 {
			fmt.Fprintf(r.out, "Usage: %s <pc>\n", args[0])
			return false
		}
		pc, err := strconv.Atoi(args[1])
		if err != nil || pc < 0 {
			fmt.Fprintf(r.out, "Invalid address: %s\n", args[1])
			return false
		}
		enabled := args[0] == "break"
		r.vm.SetBreakpoint(pc, enabled)
		if enabled {
			fmt.Fprintf(r.out, "Breakpoint set at %d\n", pc)
		} else {
			fmt.Fprintf(r.out, "Breakpoint cleared at %d\n", pc)
		}

	case "mem":
		r.printMemory(args[1:])

	case "pc":
		fmt.Fprintf(r.out, "PC: %d (%s)\n", r.vm.PC(), r.vm.Status())

	case "decode":
		pc := r.vm.PC()
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				fmt.Fprintf(r.out, "Invalid address: %s\n", args[1])
				return false
			}
			pc = n
		}
		instr, err := intcode.Decode(r.vm.State().Memory, pc)
		if err != nil {
			fmt.Fprintf(r.out, "\033[31m%v\033[0m\n", err)
			return false
		}
		fmt.Fprintln(r.out, repr.String(instr, repr.Indent("  ")))

	case "list", "l":
		r.printListing()

	case "out":
		fmt.Fprintln(r.out, "Outputs:", formatValues(r.vm.Outputs()))

	case "in":
		fmt.Fprintln(r.out, "Inputs:", formatValues(r.vm.State().Inputs))

	case "restart", "r":
		r.vm.Reset()
		fmt.Fprintln(r.out, "Program restarted")
		r.printState()

	case "quit", "q":
		fmt.Fprintln(r.out, "\033[32mGoodbye!\033[0m")
		return true

	default:
		fmt.Fprintf(r.out, "\033[31mUnknown command: %s\033[0m\n", args[0])
	}
	return false
}

func (r *REPL) printState() {
	state := r.vm.State()
	switch state.Status {
	case intcode.StatusHalted:
		fmt.Fprintln(r.out, "\033[31mProgram finished execution\033[0m")
	case intcode.StatusFaulted:
		fmt.Fprintf(r.out, "\033[31mProgram faulted: %v\033[0m\n", state.Fault)
	default:
		next := "?"
		if instr, err := intcode.Decode(state.Memory, state.PC); err == nil {
			next = instr.String()
		}
		fmt.Fprintf(r.out, "\033[1;35mPC: %d\033[0m (\033[1;33mNext: %s\033[0m)\n", state.PC, next)
	}
	fmt.Fprintf(r.out, "\033[1;32mOutputs:\033[0m %s\n", formatValues(state.Outputs))
	fmt.Fprintf(r.out, "\033[1;36mInputs:\033[0m %s\n", formatValues(state.Inputs))
}

func (r *REPL) printStopped() {
	fmt.Fprintf(r.out, "\033[31mProgram is %s, use 'restart' or 'back'\033[0m\n", r.vm.Status())
}

func (r *REPL) printFault(err error) {
	var fault *intcode.Fault
	if errors.As(err, &fault) {
		fmt.Fprintf(r.out, "\033[31mFault: %v\033[0m\n", fault)
		return
	}
	fmt.Fprintf(r.out, "\033[31mError: %v\033[0m\n", err)
}

func (r *REPL) printMemory(args []string) {
	memory := r.vm.State().Memory
	start, count := r.vm.PC(), 8
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(r.out, "Invalid address: %s\n", args[0])
			return
		}
		start = n
	}
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n <= 0 {
			fmt.Fprintf(r.out, "Invalid count: %s\n", args[1])
			return
		}
		count = n
	}
	if start < 0 || start >= len(memory) {
		fmt.Fprintf(r.out, "\033[31mAddress %d outside memory (0..%d)\033[0m\n", start, len(memory)-1)
		return
	}
	end := start + min(count, len(memory)-start)
	for addr := start; addr < end; addr++ {
		marker := "  "
		if addr == r.vm.PC() {
			marker = "\033[1;33m→\033[0m "
		}
		fmt.Fprintf(r.out, "%s%04d: %d\n", marker, addr, memory[addr])
	}
}

func (r *REPL) printListing() {
	pc := r.vm.PC()
	for _, line := range intcode.Disassemble(r.vm.State().Memory) {
		switch {
		case line.Addr == pc:
			fmt.Fprintf(r.out, "\033[43m%s\033[0m\n", line)
		case r.vm.HasBreakpoint(line.Addr):
			fmt.Fprintf(r.out, "\033[31m●\033[0m %s\n", line)
		default:
			fmt.Fprintf(r.out, "  %s\n", line)
		}
	}
}

func formatValues(values []int64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatInt(v, 10)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
