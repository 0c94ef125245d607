package vm

import "fmt"

// DefaultHistoryCapacity is the bounded ring buffer size from spec.md §4.4
// step 2 ("default capacity 500; oldest evicted").
const DefaultHistoryCapacity = 500

// StepResult is returned by every Step/StepBack call, per spec.md §6's
// ExecutionResult.
type StepResult struct {
	State       *VMState
	Instruction *InstructionView
	Description string
}

// InstructionView is a read-only snapshot of the instruction that executed,
// decoupled from bytecode.Instruction so the engine package does not need
// to import bytecode for display purposes.
type InstructionView struct {
	Opcode string
	Line   int
	Text   string
}

// Interpreter owns one VMState plus its reverse-execution history, per
// spec.md §4.4/§4.7.
type Interpreter struct {
	state           *VMState
	history         []*VMState
	historyCapacity int
	stdlib          StdlibInvoker
}

// NewInterpreter wraps state with a bounded history ring of the default
// capacity.
func NewInterpreter(state *VMState) *Interpreter {
	return NewInterpreterWithCapacity(state, DefaultHistoryCapacity)
}

// NewInterpreterWithCapacity is NewInterpreter with an overridden history
// ring size, wired from internal/config so an embedder can trade memory
// for deeper step-back without recompiling.
func NewInterpreterWithCapacity(state *VMState, historyCapacity int) *Interpreter {
	if historyCapacity <= 0 {
		historyCapacity = DefaultHistoryCapacity
	}
	return &Interpreter{state: state, historyCapacity: historyCapacity}
}

func (ip *Interpreter) State() *VMState { return ip.state }

func (ip *Interpreter) CanStepForward() bool {
	return ip.state.Status != RunCompleted && ip.state.Status != RunError
}

func (ip *Interpreter) CanStepBack() bool { return len(ip.history) > 0 }

// Reset reinitialises history; the caller is expected to replace ip.state
// with a freshly constructed VMState (NewVMState), per spec.md §6
// ("reinitialises; clears history").
func (ip *Interpreter) Reset(state *VMState) {
	ip.state = state
	ip.history = nil
}

// pushHistory snapshots the current state before mutation, evicting the
// oldest entry once the ring is full, per spec.md §4.4 step 2.
func (ip *Interpreter) pushHistory() {
	ip.history = append(ip.history, ip.state.Clone())
	if len(ip.history) > ip.historyCapacity {
		ip.history = ip.history[1:]
	}
}

// StepBack pops the most recent snapshot and installs it as the current
// state, per spec.md §4.7.
func (ip *Interpreter) StepBack() StepResult {
	if len(ip.history) == 0 {
		return StepResult{State: ip.state.Clone(), Description: "no history to step back to"}
	}
	prev := ip.history[len(ip.history)-1]
	ip.history = ip.history[:len(ip.history)-1]
	ip.state = prev
	return StepResult{State: ip.state.Clone(), Description: "stepped back"}
}

// Step executes exactly one instruction of the scheduler's selected
// thread, implementing the nine-step algorithm from spec.md §4.4 verbatim.
func (ip *Interpreter) Step() StepResult {
	st := ip.state

	// 1. terminal states are a no-op.
	if st.Status == RunCompleted || st.Status == RunError {
		return StepResult{State: st.Clone(), Description: "simulation has already finished"}
	}

	// 2. snapshot before mutation.
	ip.pushHistory()

	// 3. tick_threads.
	ip.tickThreads()

	// 4. select an executable thread.
	thread, waiting := ip.selectThread()
	if thread == nil {
		if waiting {
			st.StepNumber++
			return StepResult{State: st.Clone(), Description: "all threads waiting; advancing the clock"}
		}
		st.Status = RunCompleted
		return StepResult{State: st.Clone(), Description: "all threads terminated"}
	}

	// 5. mark running; handle an empty frame stack.
	thread.Status = StatusRunning
	frame := thread.TopFrame()
	if frame == nil {
		thread.Status = StatusTerminated
		st.ReleaseAllMonitors(thread.ID)
		ip.rotateActive()
		return StepResult{State: st.Clone(), Description: fmt.Sprintf("thread %q has no frames; terminated", thread.Name)}
	}

	// 6. fetch and dispatch.
	if frame.PC < 0 || frame.PC >= len(st.Program.Instructions) {
		thread.Status = StatusTerminated
		st.ReleaseAllMonitors(thread.ID)
		ip.rotateActive()
		return StepResult{State: st.Clone(), Description: "program counter out of range; thread terminated"}
	}
	instr := st.Program.Instructions[frame.PC]
	desc := ip.execute(thread, frame, instr)

	// 7. bookkeeping.
	st.StepNumber++
	thread.StepCount++
	if len(thread.Frames) == 0 {
		thread.Status = StatusTerminated
		st.ReleaseAllMonitors(thread.ID)
	} else if thread.Status == StatusRunning {
		thread.Status = StatusRunnable
	}

	// 8. rotate.
	ip.rotateActive()

	// 9. return.
	return StepResult{
		State:       st.Clone(),
		Instruction: &InstructionView{Opcode: instr.Op.String(), Line: instr.Line, Text: instr.String()},
		Description: desc,
	}
}

// tickThreads promotes timer- and join-blocked threads, per spec.md §4.4
// step 3.
func (ip *Interpreter) tickThreads() {
	st := ip.state
	for _, t := range st.Threads {
		if t.Status == StatusTimedWaiting && t.SleepUntilStep <= st.StepNumber {
			t.Status = StatusRunnable
		}
		if t.Status == StatusWaiting && t.WaitingOnThread != 0 {
			target := st.ThreadByID(t.WaitingOnThread)
			if target == nil || target.Status == StatusTerminated {
				t.Status = StatusRunnable
				t.WaitingOnThread = 0
			}
		}
	}
}

// selectThread implements step 4's round-robin rotation. The second return
// value is true when the caller should advance the clock and retry rather
// than terminate.
func (ip *Interpreter) selectThread() (*ThreadState, bool) {
	st := ip.state
	n := len(st.Threads)
	if n == 0 {
		return nil, false
	}

	if st.ActiveThreadIndex >= 0 && st.ActiveThreadIndex < n {
		active := st.Threads[st.ActiveThreadIndex]
		if active.IsRunnableOrRunning() {
			return active, false
		}
	}

	anyAlive := false
	for i := 0; i < n; i++ {
		idx := (st.ActiveThreadIndex + i) % n
		t := st.Threads[idx]
		if t.Status != StatusTerminated {
			anyAlive = true
		}
		if t.IsRunnableOrRunning() {
			st.ActiveThreadIndex = idx
			return t, false
		}
	}
	return nil, anyAlive
}

// rotateActive advances ActiveThreadIndex to the next thread in
// declaration order, per spec.md §5 ("strict round-robin over the threads
// array in declaration order").
func (ip *Interpreter) rotateActive() {
	st := ip.state
	if len(st.Threads) == 0 {
		return
	}
	st.ActiveThreadIndex = (st.ActiveThreadIndex + 1) % len(st.Threads)
}
