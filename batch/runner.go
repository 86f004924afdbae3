package batch

import (
	"fmt"
	"os"
	"strconv"

	"hadydotai/aoc2019/intcode"
	"hadydotai/aoc2019/logging"
)

type Result struct {
	Name  string
	Value string
	Err   error
}

// Run executes every job in order. A failing job is recorded in its Result
// and does not stop the rest.
func (m *Manifest) Run() []Result {
	results := make([]Result, 0, len(m.Jobs))
	for _, job := range m.Jobs {
		logging.Log(logging.LogLevelInfo, "Running job", "job", job.Name, "program", job.Program)
		source, err := os.ReadFile(job.Program)
		if err != nil {
			err = fmt.Errorf("failed to read program %s: %w", job.Program, err)
			logging.LogErr(err, "job failed")
			results = append(results, Result{Name: job.Name, Err: err})
			continue
		}
		value, err := RunJob(job, string(source))
		if err != nil {
			logging.LogErr(err, "job failed")
		}
		results = append(results, Result{Name: job.Name, Value: value, Err: err})
	}
	return results
}

// RunJob executes a single job against already loaded program text.
func RunJob(job *Job, source string) (string, error) {
	program, err := intcode.Parse(job.Program, source)
	if err != nil {
		return "", err
	}

	if job.Search != nil {
		noun, verb, err := intcode.SearchNounVerb(program, job.Search.Target, job.Search.Min, job.Search.Max)
		if err != nil {
			return "", fmt.Errorf("job %s: %w", job.Name, err)
		}
		return strconv.FormatInt(intcode.NounVerbCode(noun, verb), 10), nil
	}

	if len(job.Patch) > 0 {
		program, err = intcode.Patch(program, job.Patch)
		if err != nil {
			return "", fmt.Errorf("job %s: %w", job.Name, err)
		}
	}
	memory, outputs, err := intcode.Execute(program, job.Inputs)
	if err != nil {
		return "", fmt.Errorf("job %s: %w", job.Name, err)
	}
	return job.Report.Render(memory, outputs)
}
