package vm

import (
	"github.com/j8sim/engine/internal/bytecode"
)

// RunStatus is the simulator's own top-level status, distinct from a
// thread's Status, per spec.md §6's ExecutionResult/"status=error".
type RunStatus string

const (
	RunPaused    RunStatus = "paused"
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunError     RunStatus = "error"
)

// VMState is the interpreter's entire mutable world: the class table
// (immutable, shared by reference across clones), the heap, static fields,
// the thread list, the monitor table, and program output, per spec.md
// §4.4/§5.
type VMState struct {
	Program *bytecode.CompiledProgram

	Heap *Heap

	StaticFields map[string]map[string]Value // class -> field -> value

	Threads           []*ThreadState
	NextThreadID      int
	ActiveThreadIndex int

	Monitors map[int]int // object id -> holder thread id (absent/0 = free)

	StepNumber int64
	Status     RunStatus
	Error      string
	Output     []string

	// MsPerTick converts a Thread.sleep(ms) argument into simulated steps,
	// per spec.md §5; wired from internal/config, defaulting to 50.
	MsPerTick int64
}

// NewVMState constructs the state new_simulator() installs: classes
// loaded, static fields seeded to zero values, and a single main thread
// whose stack holds one frame entering main(String[]), per spec.md §6.
func NewVMState(prog *bytecode.CompiledProgram) *VMState {
	st := &VMState{
		Program:      prog,
		Heap:         NewHeap(),
		StaticFields: make(map[string]map[string]Value),
		Monitors:     make(map[int]int),
		Status:       RunPaused,
		Output:       []string{""},
		MsPerTick:    50,
	}
	st.seedStaticFields()
	st.spawnMainThread()
	return st
}

func (st *VMState) seedStaticFields() {
	for _, className := range st.Program.ClassOrder {
		st.StaticFields[className] = make(map[string]Value)
	}
}

func (st *VMState) spawnMainThread() {
	class, ok := st.Program.Classes[st.Program.MainClass]
	if !ok {
		return
	}
	sig := "main(1)"
	var main *bytecode.CompiledMethod
	for _, m := range class.Methods {
		if m.Name == "main" {
			main = m
			sig = m.Signature
			break
		}
	}
	_ = sig
	if main == nil {
		return
	}

	argsArray := st.Heap.NewArray("String", 0)
	frame := NewFrame(st.Program.MainClass, main.Signature, main.StartIndex, main.NumLocals)
	if main.NumLocals > 0 {
		frame.Locals[0] = ArrayValue(argsArray.ID)
	}

	thread := &ThreadState{ID: st.NextThreadID, Name: "main", Status: StatusRunnable, Priority: 5}
	thread.PushFrame(frame)
	st.Threads = append(st.Threads, thread)
	st.NextThreadID++
}

// SpawnThread creates a new ThreadState entering runMethod on the receiver
// heap object, as Thread.start() does per spec.md §4.5.
func (st *VMState) SpawnThread(name string, runMethod *bytecode.CompiledMethod, className string, receiver Value, daemon bool, priority int) *ThreadState {
	frame := NewFrame(className, runMethod.Signature, runMethod.StartIndex, runMethod.NumLocals)
	if runMethod.NumLocals > 0 {
		frame.Locals[0] = receiver
	}
	thread := &ThreadState{ID: st.NextThreadID, Name: name, Status: StatusRunnable, Priority: priority, Daemon: daemon}
	thread.PushFrame(frame)
	st.Threads = append(st.Threads, thread)
	st.NextThreadID++
	return thread
}

func (st *VMState) ThreadByID(id int) *ThreadState {
	for _, t := range st.Threads {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// AcquireMonitor implements MONITORENTER's ownership rule: reentrance is
// list membership, not a count, per spec.md §4.4.1/§9.
func (st *VMState) AcquireMonitor(objID, threadID int) bool {
	holder, held := st.Monitors[objID]
	if !held || holder == threadID {
		st.Monitors[objID] = threadID
		thread := st.ThreadByID(threadID)
		if thread != nil && !containsInt(thread.HoldingMonitors, objID) {
			thread.HoldingMonitors = append(thread.HoldingMonitors, objID)
		}
		return true
	}
	return false
}

// ReleaseMonitor implements MONITOREXIT: releases ownership and wakes
// exactly one BLOCKED waiter, per spec.md §4.4.1.
func (st *VMState) ReleaseMonitor(objID, threadID int) {
	if st.Monitors[objID] != threadID {
		return
	}
	delete(st.Monitors, objID)
	thread := st.ThreadByID(threadID)
	if thread != nil {
		thread.HoldingMonitors = removeInt(thread.HoldingMonitors, objID)
	}
	for _, t := range st.Threads {
		if t.Status == StatusBlocked && t.WaitingOnMonitor == objID {
			t.Status = StatusRunnable
			t.WaitingOnMonitor = 0
			return
		}
	}
}

// ReleaseAllMonitors releases every monitor a terminating thread holds,
// waking one waiter per monitor, per spec.md §4.4 step 5/7.
func (st *VMState) ReleaseAllMonitors(threadID int) {
	thread := st.ThreadByID(threadID)
	if thread == nil {
		return
	}
	held := append([]int(nil), thread.HoldingMonitors...)
	for _, objID := range held {
		st.ReleaseMonitor(objID, threadID)
	}
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

func removeInt(xs []int, x int) []int {
	out := xs[:0]
	for _, v := range xs {
		if v != x {
			out = append(out, v)
		}
	}
	return out
}

// Clone produces a full deep copy of the state, used both by history
// snapshots and by Simulator.GetState, per spec.md §4.7/§6. Program is
// shared by reference: it is immutable after compilation.
func (st *VMState) Clone() *VMState {
	clone := &VMState{
		Program:           st.Program,
		Heap:              st.Heap.Clone(),
		StaticFields:      make(map[string]map[string]Value, len(st.StaticFields)),
		NextThreadID:      st.NextThreadID,
		ActiveThreadIndex: st.ActiveThreadIndex,
		Monitors:          make(map[int]int, len(st.Monitors)),
		StepNumber:        st.StepNumber,
		Status:            st.Status,
		Error:             st.Error,
		MsPerTick:         st.MsPerTick,
	}
	for class, fields := range st.StaticFields {
		m := make(map[string]Value, len(fields))
		for k, v := range fields {
			m[k] = v
		}
		clone.StaticFields[class] = m
	}
	for objID, threadID := range st.Monitors {
		clone.Monitors[objID] = threadID
	}
	clone.Threads = make([]*ThreadState, len(st.Threads))
	for i, t := range st.Threads {
		clone.Threads[i] = t.clone()
	}
	clone.Output = make([]string, len(st.Output))
	copy(clone.Output, st.Output)
	return clone
}
