package intcode

import (
	"errors"
	"slices"
	"testing"
)

// nounVerbProgram leaves 100*noun+verb in memory[0].
var nounVerbProgram = []int64{
	1101, 0, 0, 13, // mem[13] = noun + verb
	1002, 1, 99, 14, // mem[14] = mem[1] * 99
	1, 13, 14, 0, // mem[0] = mem[13] + mem[14]
	99,
	0, 0,
}

func TestSearchNounVerb(t *testing.T) {
	noun, verb, err := SearchNounVerb(nounVerbProgram, 1202, 0, 99)
	if err != nil {
		t.Fatal(err)
	}
	if noun != 12 || verb != 2 {
		t.Fatalf("got noun=%d verb=%d, want 12, 2", noun, verb)
	}
	if got := NounVerbCode(noun, verb); got != 1202 {
		t.Fatalf("code = %d", got)
	}
}

func TestSearchNounVerbSkipsFaults(t *testing.T) {
	// memory[0] = mem[noun] + mem[verb]; any noun or verb past 4 faults.
	program := []int64{1, 0, 0, 0, 99}

	matches := 0
	for noun := int64(0); noun <= 99; noun++ {
		for verb := int64(0); verb <= 99; verb++ {
			if got, err := RunWith(program, noun, verb); err == nil && got == 198 {
				matches++
			}
		}
	}
	if matches != 1 {
		t.Fatalf("expected exactly one matching pair, found %d", matches)
	}

	noun, verb, err := SearchNounVerb(program, 198, 0, 99)
	if err != nil {
		t.Fatal(err)
	}
	if got := NounVerbCode(noun, verb); got != 404 {
		t.Fatalf("got %d, want 404", got)
	}
	if program[1] != 0 || program[2] != 0 {
		t.Fatalf("search mutated the program: %v", program)
	}
}

func TestSearchNounVerbNoSolution(t *testing.T) {
	_, _, err := SearchNounVerb([]int64{1, 0, 0, 0, 99}, -5, 0, 99)
	if !errors.Is(err, ErrNoSolution) {
		t.Fatalf("got %v, want %v", err, ErrNoSolution)
	}
}

func TestSearchNounVerbShortProgram(t *testing.T) {
	_, _, err := SearchNounVerb([]int64{99, 0}, 0, 0, 99)
	if err == nil || errors.Is(err, ErrNoSolution) {
		t.Fatalf("expected an abort, got %v", err)
	}
}

func TestPatch(t *testing.T) {
	program := []int64{1, 0, 0, 0, 99}
	patched, err := Patch(program, map[int]int64{1: 12, 2: 2})
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(patched, []int64{1, 12, 2, 0, 99}) {
		t.Fatalf("patched = %v", patched)
	}
	if !slices.Equal(program, []int64{1, 0, 0, 0, 99}) {
		t.Fatalf("original mutated: %v", program)
	}
	if _, err := Patch(program, map[int]int64{5: 1}); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("got %v, want %v", err, ErrOutOfBounds)
	}
}

func TestDisassemble(t *testing.T) {
	lines := Disassemble([]int64{1002, 4, 3, 4, 99, 7, 33})
	var got []string
	for _, l := range lines {
		got = append(got, l.String())
	}
	want := []string{
		"0000: MUL [4], #3, [4]",
		"0004: HALT",
		"0005: DATA 7",
		"0006: DATA 33",
	}
	if !slices.Equal(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}
