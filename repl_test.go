package main

import (
	"bytes"
	"strings"
	"testing"

	"hadydotai/aoc2019/intcode"
)

func newTestREPL(program, inputs []int64) (*REPL, *bytes.Buffer) {
	var buf bytes.Buffer
	r := NewREPL(program, inputs)
	r.out = &buf
	return r, &buf
}

func run(r *REPL, line string) bool {
	return r.execute(strings.Fields(line))
}

func TestREPLStepAndBack(t *testing.T) {
	r, out := newTestREPL([]int64{3, 0, 4, 0, 99}, []int64{42})

	run(r, "step")
	if r.vm.PC() != 2 {
		t.Fatalf("pc = %d after step", r.vm.PC())
	}
	if got := out.String(); !strings.Contains(got, "executed") || !strings.Contains(got, "IN [0]") {
		t.Errorf("step output: %q", out.String())
	}

	run(r, "back")
	if r.vm.PC() != 0 {
		t.Fatalf("pc = %d after back", r.vm.PC())
	}

	out.Reset()
	run(r, "c")
	if r.vm.Status() != intcode.StatusHalted {
		t.Fatalf("status = %s", r.vm.Status())
	}
	run(r, "out")
	if !strings.Contains(out.String(), "Outputs: [42]") {
		t.Errorf("out: %q", out.String())
	}

	out.Reset()
	run(r, "step")
	if !strings.Contains(out.String(), "Program is halted") {
		t.Errorf("step after halt: %q", out.String())
	}

	run(r, "restart")
	if r.vm.Status() != intcode.StatusRunning || r.vm.PC() != 0 {
		t.Fatalf("restart: status=%s pc=%d", r.vm.Status(), r.vm.PC())
	}
}

func TestREPLBreakpoints(t *testing.T) {
	r, out := newTestREPL([]int64{104, 1, 104, 2, 104, 3, 99}, nil)

	run(r, "break 4")
	run(r, "continue")
	if r.vm.PC() != 4 || r.vm.Status() != intcode.StatusRunning {
		t.Fatalf("stopped at pc=%d status=%s", r.vm.PC(), r.vm.Status())
	}
	if !strings.Contains(out.String(), "Breakpoint at 4") {
		t.Errorf("continue output: %q", out.String())
	}

	run(r, "clear 4")
	run(r, "restart")
	run(r, "continue")
	if r.vm.Status() != intcode.StatusHalted {
		t.Fatalf("status = %s", r.vm.Status())
	}
}

func TestREPLFault(t *testing.T) {
	r, out := newTestREPL([]int64{3, 0, 99}, nil)
	run(r, "s")
	if r.vm.Status() != intcode.StatusFaulted {
		t.Fatalf("status = %s", r.vm.Status())
	}
	if !strings.Contains(out.String(), "Fault: pc=0: input exhausted") {
		t.Errorf("fault output: %q", out.String())
	}
	run(r, "b")
	if r.vm.Status() != intcode.StatusRunning {
		t.Fatalf("back did not recover the pre-fault state: %s", r.vm.Status())
	}
}

func TestREPLInspection(t *testing.T) {
	r, out := newTestREPL([]int64{1101, 2, 3, 5, 99, 0}, []int64{7})

	run(r, "mem 3 2")
	if got := out.String(); !strings.Contains(got, "0003: 5") || !strings.Contains(got, "0004: 99") || strings.Contains(got, "0005") {
		t.Errorf("mem: %q", got)
	}

	out.Reset()
	run(r, "mem 4 9223372036854775807")
	if got := out.String(); !strings.Contains(got, "0004: 99") || !strings.Contains(got, "0005: 0") {
		t.Errorf("mem with huge count: %q", got)
	}

	out.Reset()
	run(r, "decode")
	if got := out.String(); !strings.Contains(got, "intcode.Instruction{") {
		t.Errorf("decode: %q", got)
	}

	out.Reset()
	run(r, "decode 5")
	if !strings.Contains(out.String(), "unsupported opcode") {
		t.Errorf("decode 5: %q", out.String())
	}

	out.Reset()
	run(r, "in")
	if !strings.Contains(out.String(), "Inputs: [7]") {
		t.Errorf("in: %q", out.String())
	}

	out.Reset()
	run(r, "list")
	if got := out.String(); !strings.Contains(got, "ADD #2, #3, [5]") || !strings.Contains(got, "DATA 0") {
		t.Errorf("list: %q", got)
	}

	out.Reset()
	run(r, "frobnicate")
	if !strings.Contains(out.String(), "Unknown command: frobnicate") {
		t.Errorf("unknown: %q", out.String())
	}

	if !run(r, "quit") {
		t.Error("quit did not end the session")
	}
}

func TestCompleter(t *testing.T) {
	got, length := completer{}.Do([]rune("co"), 2)
	if length != 2 || len(got) != 1 || string(got[0]) != "ntinue" {
		t.Errorf("got %q (%d)", got, length)
	}
}
