package engine

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/j8sim/engine/internal/vm"
)

// Snapshot is a deep-cloned, read-only view of one VMState, returned by
// Simulator.GetState per spec.md §6. It keeps the native *vm.VMState for
// in-process callers (the quantified invariants in spec.md §8 are checked
// directly against it) and offers ToJSON/FromJSON as a convenience for
// callers crossing a process or language boundary; the interpreter's own
// reverse-execution history never goes through JSON, only Clone.
type Snapshot struct {
	State *vm.VMState
}

func newSnapshot(st *vm.VMState) *Snapshot {
	return &Snapshot{State: st.Clone()}
}

// ThreadView is the JSON-friendly projection of one ThreadState.
type ThreadView struct {
	ID     int
	Name   string
	Status string
}

// ToJSON renders the snapshot's externally interesting fields: status,
// step number, stdout so far, and a thread summary. The full object graph
// (every HeapObject's fields) is deliberately not flattened into this
// boundary format; embedders that need it should walk State.Heap directly.
func (s *Snapshot) ToJSON() (string, error) {
	json := `{}`
	var err error
	if json, err = sjson.Set(json, "status", string(s.State.Status)); err != nil {
		return "", err
	}
	if json, err = sjson.Set(json, "stepNumber", s.State.StepNumber); err != nil {
		return "", err
	}
	if json, err = sjson.Set(json, "error", s.State.Error); err != nil {
		return "", err
	}
	if json, err = sjson.Set(json, "output", s.State.Output); err != nil {
		return "", err
	}
	threads := make([]ThreadView, len(s.State.Threads))
	for i, t := range s.State.Threads {
		threads[i] = ThreadView{ID: t.ID, Name: t.Name, Status: string(t.Status)}
	}
	if json, err = sjson.Set(json, "threads", threads); err != nil {
		return "", err
	}
	return json, nil
}

// SnapshotSummary is what FromJSON recovers: the subset of a Snapshot that
// survives the JSON boundary without the live Program/Heap backing it.
type SnapshotSummary struct {
	Status     string
	StepNumber int64
	Error      string
	Output     []string
	Threads    []ThreadView
}

// FromJSON parses a ToJSON blob back into a SnapshotSummary. It cannot
// reconstruct a *vm.VMState, since the heap and class table are not part of
// the boundary format; it exists for consumers (a UI, a test fixture) that
// only need the externally visible run status.
func FromJSON(data string) (*SnapshotSummary, error) {
	r := gjson.Parse(data)
	summary := &SnapshotSummary{
		Status:     r.Get("status").String(),
		StepNumber: r.Get("stepNumber").Int(),
		Error:      r.Get("error").String(),
	}
	for _, o := range r.Get("output").Array() {
		summary.Output = append(summary.Output, o.String())
	}
	for _, th := range r.Get("threads").Array() {
		summary.Threads = append(summary.Threads, ThreadView{
			ID:     int(th.Get("ID").Int()),
			Name:   th.Get("Name").String(),
			Status: th.Get("Status").String(),
		})
	}
	return summary, nil
}
