package intcode

import (
	"errors"
	"slices"

	"hadydotai/aoc2019/logging"
)

type Status int

const (
	StatusRunning Status = iota
	StatusHalted
	StatusFaulted
)

func (s Status) String() string {
	return [...]string{"running", "halted", "faulted"}[s]
}

// State is everything a run owns. Inputs holds the values not yet consumed.
type State struct {
	PC      int
	Memory  []int64
	Inputs  []int64
	Outputs []int64
	Status  Status
	Fault   *Fault
	Steps   int
}

func (s *State) Clone() *State {
	newState := &State{
		PC:      s.PC,
		Memory:  make([]int64, len(s.Memory)),
		Inputs:  make([]int64, len(s.Inputs)),
		Outputs: make([]int64, len(s.Outputs)),
		Status:  s.Status,
		Fault:   s.Fault,
		Steps:   s.Steps,
	}
	copy(newState.Memory, s.Memory)
	copy(newState.Inputs, s.Inputs)
	copy(newState.Outputs, s.Outputs)
	return newState
}

type Option func(*Machine)

// WithHistory records a snapshot before every step so StepBack can undo it.
func WithHistory() Option {
	return func(m *Machine) {
		m.keepHistory = true
	}
}

type Machine struct {
	currentState *State
	initialState *State
	history      []*State

	keepHistory bool
	breakpoints map[int]bool
}

// NewMachine prepares a run over private copies of program and inputs.
func NewMachine(program, inputs []int64, opts ...Option) *Machine {
	initial := &State{
		Memory:  slices.Clone(program),
		Inputs:  slices.Clone(inputs),
		Outputs: []int64{},
	}
	if initial.Memory == nil {
		initial.Memory = []int64{}
	}
	if initial.Inputs == nil {
		initial.Inputs = []int64{}
	}
	m := &Machine{
		initialState: initial,
		breakpoints:  make(map[int]bool),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.Reset()
	return m
}

// Reset rewinds to the initial memory image and input queue. Breakpoints survive.
func (m *Machine) Reset() {
	m.currentState = m.initialState.Clone()
	m.history = m.history[:0]
}

func (m *Machine) State() *State {
	return m.currentState.Clone()
}

func (m *Machine) Status() Status {
	return m.currentState.Status
}

func (m *Machine) PC() int {
	return m.currentState.PC
}

// Memory returns a copy of the current memory image.
func (m *Machine) Memory() []int64 {
	return slices.Clone(m.currentState.Memory)
}

// Outputs returns a copy of the values written so far.
func (m *Machine) Outputs() []int64 {
	return slices.Clone(m.currentState.Outputs)
}

func (m *Machine) SetBreakpoint(pc int, enabled bool) {
	m.breakpoints[pc] = enabled
	if !enabled {
		delete(m.breakpoints, pc)
	}
}

func (m *Machine) HasBreakpoint(pc int) bool {
	return m.breakpoints[pc]
}

func (m *Machine) Breakpoints() []int {
	pcs := make([]int, 0, len(m.breakpoints))
	for pc := range m.breakpoints {
		pcs = append(pcs, pc)
	}
	slices.Sort(pcs)
	return pcs
}

// Step decodes and evaluates a single instruction. Stepping a machine that is
// no longer running returns the error it stopped with, or nil once halted.
func (m *Machine) Step() (Instruction, error) {
	state := m.currentState
	switch state.Status {
	case StatusHalted:
		return Instruction{}, nil
	case StatusFaulted:
		return Instruction{}, state.Fault
	}

	if m.keepHistory {
		m.history = append(m.history, state.Clone())
	}

	pc := state.PC
	instr, err := Decode(state.Memory, pc)
	if err != nil {
		return Instruction{}, m.fail(err)
	}
	state.PC += instr.Size()
	state.Steps++
	if logging.Enabled(logging.LogLevelDebug) {
		logging.Log(logging.LogLevelDebug, "step", "pc", pc, "instr", instr.String())
	}

	if instr.Op == OpHalt {
		state.Status = StatusHalted
		logging.Log(logging.LogLevelInfo, "halted", "pc", pc, "steps", state.Steps, "outputs", len(state.Outputs))
		return instr, nil
	}
	if err := m.evaluate(pc, instr); err != nil {
		return instr, m.fail(err)
	}
	return instr, nil
}

// StepBack restores the state from before the last Step. It reports false
// when there is nothing to undo or history is disabled.
func (m *Machine) StepBack() bool {
	if len(m.history) == 0 {
		return false
	}
	m.currentState = m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]
	return true
}

// Run steps until halt or fault.
func (m *Machine) Run() error {
	for m.currentState.Status == StatusRunning {
		if _, err := m.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Continue steps at least once, then keeps going until the machine stops or
// reaches an enabled breakpoint.
func (m *Machine) Continue() error {
	for m.currentState.Status == StatusRunning {
		if _, err := m.Step(); err != nil {
			return err
		}
		if m.breakpoints[m.currentState.PC] {
			return nil
		}
	}
	return nil
}

func (m *Machine) fail(err error) error {
	var fault *Fault
	if !errors.As(err, &fault) {
		return err
	}
	m.currentState.PC = fault.PC
	m.currentState.Status = StatusFaulted
	m.currentState.Fault = fault
	logging.Log(logging.LogLevelInfo, "faulted", "pc", fault.PC, "reason", fault.Kind.String())
	return fault
}

func (m *Machine) resolve(pc int, p Parameter) (int64, error) {
	switch p.Mode {
	case ModeImmediate:
		return p.Value, nil
	case ModePosition:
		mem := m.currentState.Memory
		if p.Value < 0 || p.Value >= int64(len(mem)) {
			return 0, &Fault{Kind: FaultOutOfBounds, PC: pc, Address: p.Value}
		}
		return mem[p.Value], nil
	}
	return 0, &Fault{Kind: FaultInvalidAddressingMode, PC: pc, Mode: p.Mode}
}

func (m *Machine) store(pc int, p Parameter, value int64) error {
	if p.Mode != ModePosition {
		return &Fault{Kind: FaultWriteToImmediate, PC: pc}
	}
	mem := m.currentState.Memory
	if p.Value < 0 || p.Value >= int64(len(mem)) {
		return &Fault{Kind: FaultOutOfBounds, PC: pc, Address: p.Value}
	}
	mem[p.Value] = value
	return nil
}

func (m *Machine) evaluate(pc int, instr Instruction) error {
	switch instr.Op {
	case OpAdd, OpMul:
		a, err := m.resolve(pc, instr.Params[0])
		if err != nil {
			return err
		}
		b, err := m.resolve(pc, instr.Params[1])
		if err != nil {
			return err
		}
		// int64 arithmetic wraps on overflow.
		result := a + b
		if instr.Op == OpMul {
			result = a * b
		}
		return m.store(pc, instr.Params[2], result)
	case OpReadInput:
		state := m.currentState
		if len(state.Inputs) == 0 {
			return &Fault{Kind: FaultInputExhausted, PC: pc}
		}
		if err := m.store(pc, instr.Params[0], state.Inputs[0]); err != nil {
			return err
		}
		state.Inputs = state.Inputs[1:]
		return nil
	case OpWriteOutput:
		value, err := m.resolve(pc, instr.Params[0])
		if err != nil {
			return err
		}
		m.currentState.Outputs = append(m.currentState.Outputs, value)
		return nil
	case OpHalt:
		return nil
	}
	return &Fault{Kind: FaultUnsupportedOpcode, PC: pc, Word: int64(instr.Op)}
}

// Execute runs program to completion over a private copy of its memory and
// returns the final memory image and every output value. A fault discards
// both and is returned as *Fault.
func Execute(program, inputs []int64) ([]int64, []int64, error) {
	m := NewMachine(program, inputs)
	if err := m.Run(); err != nil {
		return nil, nil, err
	}
	return m.currentState.Memory, m.currentState.Outputs, nil
}
