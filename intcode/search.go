package intcode

import (
	"errors"
	"fmt"
	"slices"

	"hadydotai/aoc2019/logging"
)

const (
	NounAddr = 1
	VerbAddr = 2
)

var ErrNoSolution = errors.New("no noun/verb pair produces the target")

// Patch returns a copy of program with the given cells overwritten.
func Patch(program []int64, patches map[int]int64) ([]int64, error) {
	patched := slices.Clone(program)
	for addr, value := range patches {
		if addr < 0 || addr >= len(patched) {
			return nil, fmt.Errorf("patch address %d (program has %d cells): %w", addr, len(patched), ErrOutOfBounds)
		}
		patched[addr] = value
	}
	return patched, nil
}

// RunWith patches noun and verb into program, executes it and returns memory[0].
func RunWith(program []int64, noun, verb int64) (int64, error) {
	patched, err := Patch(program, map[int]int64{NounAddr: noun, VerbAddr: verb})
	if err != nil {
		return 0, err
	}
	memory, _, err := Execute(patched, nil)
	if err != nil {
		return 0, err
	}
	return memory[0], nil
}

// SearchNounVerb tries every noun and verb in [lo, hi] until memory[0]
// equals target. Candidates that fault count as misses; any other error
// aborts the search.
func SearchNounVerb(program []int64, target, lo, hi int64) (int64, int64, error) {
	if len(program) <= VerbAddr {
		return 0, 0, fmt.Errorf("program has %d cells, need at least %d: %w", len(program), VerbAddr+1, ErrOutOfBounds)
	}
	faults := 0
	for noun := lo; noun <= hi; noun++ {
		for verb := lo; verb <= hi; verb++ {
			got, err := RunWith(program, noun, verb)
			if err != nil {
				var fault *Fault
				if errors.As(err, &fault) {
					faults++
					continue
				}
				return 0, 0, err
			}
			if got == target {
				logging.Log(logging.LogLevelInfo, "search matched", "noun", noun, "verb", verb, "faulted-candidates", faults)
				return noun, verb, nil
			}
		}
	}
	logging.Log(logging.LogLevelInfo, "search exhausted", "target", target, "faulted-candidates", faults)
	return 0, 0, ErrNoSolution
}

func NounVerbCode(noun, verb int64) int64 {
	return 100*noun + verb
}
