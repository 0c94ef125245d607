package engine

import (
	"github.com/j8sim/engine/internal/bytecode"
	"github.com/j8sim/engine/internal/config"
	"github.com/j8sim/engine/internal/stdlib"
	"github.com/j8sim/engine/internal/vm"
)

// Simulator wraps one interpreter instance with the driver-level controls
// spec.md §6 names: step/step_back/reset/run/pause plus the two can_*
// guards and a state snapshot getter.
type Simulator struct {
	prog *bytecode.CompiledProgram
	cfg  *config.Config
	ip   *vm.Interpreter

	running bool
}

// NewSimulator implements spec.md §6's new_simulator(CompiledProgram) ->
// Simulator. A nil cfg runs with config.Default().
func NewSimulator(prog *bytecode.CompiledProgram, cfg *config.Config) *Simulator {
	if cfg == nil {
		cfg = config.Default()
	}
	sim := &Simulator{prog: prog, cfg: cfg}
	sim.ip = sim.newInterpreter()
	return sim
}

func (s *Simulator) newInterpreter() *vm.Interpreter {
	state := vm.NewVMState(s.prog)
	state.MsPerTick = int64(s.cfg.MsPerTick)
	ip := vm.NewInterpreterWithCapacity(state, s.cfg.HistoryCapacity)
	ip.SetStdlib(stdlib.New())
	return ip
}

// Step advances the selected thread by exactly one instruction, per
// spec.md §4.4's nine-step algorithm.
func (s *Simulator) Step() vm.StepResult {
	result := s.ip.Step()
	if s.ip.State().Status == vm.RunCompleted || s.ip.State().Status == vm.RunError {
		s.running = false
	}
	return result
}

// StepBack rewinds to the previous snapshot in the history ring, per
// spec.md §4.7.
func (s *Simulator) StepBack() vm.StepResult {
	return s.ip.StepBack()
}

// Reset discards all progress and history, recreating a fresh VMState from
// the same compiled program, per spec.md §6.
func (s *Simulator) Reset() {
	s.running = false
	s.ip.Reset(vm.NewVMState(s.prog))
	s.ip = s.newInterpreter()
}

// Run steps until the simulation finishes, Pause is called, or the
// configured step-count safety cap is reached, per spec.md §4.6 ("a driver
// caps total steps... to guarantee progress without a literal deadlock
// detector").
func (s *Simulator) Run() []vm.StepResult {
	s.running = true
	var results []vm.StepResult
	taken := 0
	for s.running && s.CanStepForward() && taken < s.cfg.MaxSteps {
		results = append(results, s.Step())
		taken++
	}
	s.running = false
	return results
}

// Pause stops an in-progress Run before its next Step.
func (s *Simulator) Pause() {
	s.running = false
}

// CanStepForward reports whether the simulation has not yet reached a
// terminal state.
func (s *Simulator) CanStepForward() bool {
	return s.ip.CanStepForward()
}

// CanStepBack reports whether any history snapshot remains to step back to.
func (s *Simulator) CanStepBack() bool {
	return s.ip.CanStepBack()
}

// GetState returns a deep-cloned snapshot of the current VM state, safe for
// the caller to retain or mutate without affecting the live simulation, per
// spec.md §6.
func (s *Simulator) GetState() *Snapshot {
	return newSnapshot(s.ip.State())
}
