package batch

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultSearchTarget int64 = 19690720
	DefaultSearchMin    int64 = 0
	DefaultSearchMax    int64 = 99
)

// Manifest is a parsed job file.
type Manifest struct {
	Path string
	Jobs []*Job
}

// Job describes one program run. Program is resolved relative to the manifest.
type Job struct {
	Name    string
	Program string
	Inputs  []int64
	Patch   map[int]int64
	Report  Report
	Search  *Search
}

type Search struct {
	Target int64
	Min    int64
	Max    int64
}

type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

type manifestFile struct {
	Jobs []jobFile `yaml:"jobs"`
}

type jobFile struct {
	Name    string        `yaml:"name"`
	Program string        `yaml:"program"`
	Inputs  []int64       `yaml:"inputs"`
	Patch   map[int]int64 `yaml:"patch"`
	Report  string        `yaml:"report"`
	Search  *searchFile   `yaml:"search"`
}

type searchFile struct {
	Target *int64 `yaml:"target"`
	Min    *int64 `yaml:"min"`
	Max    *int64 `yaml:"max"`
}

// LoadManifest reads and validates a job file from disk.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	return DecodeManifest(absPath, file)
}

// DecodeManifest parses a job file from r. path is only used to resolve
// relative program paths and in messages.
func DecodeManifest(path string, r io.Reader) (*Manifest, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", path)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", path, err)
	}

	manifest := raw.toManifest(path)
	if err := manifest.validate(raw); err != nil {
		return nil, err
	}
	return manifest, nil
}

func (raw manifestFile) toManifest(path string) *Manifest {
	m := &Manifest{Path: path}
	dir := filepath.Dir(path)
	for _, j := range raw.Jobs {
		job := &Job{
			Name:    j.Name,
			Program: j.Program,
			Inputs:  j.Inputs,
			Patch:   j.Patch,
			Report:  Report(j.Report),
		}
		if job.Program != "" && !filepath.IsAbs(job.Program) {
			job.Program = filepath.Join(dir, job.Program)
		}
		if job.Report == "" {
			job.Report = DefaultReport(job.Inputs)
		}
		if j.Search != nil {
			job.Search = &Search{Target: DefaultSearchTarget, Min: DefaultSearchMin, Max: DefaultSearchMax}
			if j.Search.Target != nil {
				job.Search.Target = *j.Search.Target
			}
			if j.Search.Min != nil {
				job.Search.Min = *j.Search.Min
			}
			if j.Search.Max != nil {
				job.Search.Max = *j.Search.Max
			}
		}
		m.Jobs = append(m.Jobs, job)
	}
	return m
}

func (m *Manifest) validate(raw manifestFile) error {
	var errs ValidationError
	if len(m.Jobs) == 0 {
		errs.Issues = append(errs.Issues, "jobs must list at least one job")
	}
	seen := make(map[string]int)
	for i, job := range m.Jobs {
		if job.Name == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("jobs[%d].name must be provided", i))
		} else if prev, ok := seen[job.Name]; ok {
			errs.Issues = append(errs.Issues, fmt.Sprintf("jobs[%d].name %q duplicates jobs[%d]", i, job.Name, prev))
		} else {
			seen[job.Name] = i
		}
		if raw.Jobs[i].Program == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("jobs[%d].program must be provided", i))
		}
		if !job.Report.Valid() {
			errs.Issues = append(errs.Issues, fmt.Sprintf("jobs[%d].report %q must be one of %s", i, job.Report, strings.Join(reportNames(), ", ")))
		}
		for addr := range job.Patch {
			if addr < 0 {
				errs.Issues = append(errs.Issues, fmt.Sprintf("jobs[%d].patch address %d must not be negative", i, addr))
			}
		}
		if job.Search != nil {
			if len(job.Patch) > 0 {
				errs.Issues = append(errs.Issues, fmt.Sprintf("jobs[%d] cannot combine search and patch", i))
			}
			if len(raw.Jobs[i].Inputs) > 0 {
				errs.Issues = append(errs.Issues, fmt.Sprintf("jobs[%d] cannot combine search and inputs", i))
			}
			if raw.Jobs[i].Report != "" {
				errs.Issues = append(errs.Issues, fmt.Sprintf("jobs[%d] cannot combine search and report", i))
			}
			if job.Search.Min > job.Search.Max {
				errs.Issues = append(errs.Issues, fmt.Sprintf("jobs[%d].search.min %d exceeds max %d", i, job.Search.Min, job.Search.Max))
			}
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}
