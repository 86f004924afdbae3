package batch

import (
	"fmt"
	"strconv"
	"strings"

	"hadydotai/aoc2019/intcode"
)

// Report selects which part of a finished run is printed.
type Report string

const (
	ReportMemory0    Report = "memory0"
	ReportLastOutput Report = "last-output"
	ReportOutputs    Report = "outputs"
	ReportMemory     Report = "memory"
)

func reportNames() []string {
	return []string{string(ReportMemory0), string(ReportLastOutput), string(ReportOutputs), string(ReportMemory)}
}

func (r Report) Valid() bool {
	switch r {
	case ReportMemory0, ReportLastOutput, ReportOutputs, ReportMemory:
		return true
	}
	return false
}

// DefaultReport picks memory[0] for programs without input and the final
// output value otherwise.
func DefaultReport(inputs []int64) Report {
	if len(inputs) == 0 {
		return ReportMemory0
	}
	return ReportLastOutput
}

func (r Report) Render(memory, outputs []int64) (string, error) {
	switch r {
	case ReportMemory0:
		if len(memory) == 0 {
			return "", fmt.Errorf("report %s: memory is empty", r)
		}
		return strconv.FormatInt(memory[0], 10), nil
	case ReportLastOutput:
		if len(outputs) == 0 {
			return "", fmt.Errorf("report %s: program produced no output", r)
		}
		return strconv.FormatInt(outputs[len(outputs)-1], 10), nil
	case ReportOutputs:
		values := make([]string, len(outputs))
		for i, v := range outputs {
			values[i] = strconv.FormatInt(v, 10)
		}
		return strings.Join(values, "\n"), nil
	case ReportMemory:
		return intcode.Format(memory), nil
	}
	return "", fmt.Errorf("unknown report %q", string(r))
}
