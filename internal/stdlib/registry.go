// Package stdlib emulates the slice of the JDK the interpreter recognises
// by name, per spec.md §4.5: a dispatch table keyed by (receiver class
// pattern, method name, arity) that intercepts INVOKE_* before user-defined
// method lookup.
package stdlib

import (
	"fmt"

	"github.com/j8sim/engine/internal/vm"
)

// Handler implements one stdlib method. It receives the already-popped
// receiver (NullValue for INVOKE_STATIC) and arguments, and returns the
// value to push plus a human-readable description for the step log.
type Handler func(ip *vm.Interpreter, thread *vm.ThreadState, receiver vm.Value, args []vm.Value) (vm.Value, string)

type family struct {
	name    string
	matches func(class string) bool
	methods map[string]Handler
}

func newFamily(name string, matches func(string) bool) *family {
	return &family{name: name, matches: matches, methods: make(map[string]Handler)}
}

func (f *family) on(method string, argc int, h Handler) {
	f.methods[key(method, argc)] = h
}

func key(method string, argc int) string { return fmt.Sprintf("%s/%d", method, argc) }

// Registry is the complete stdlib emulation, implementing vm.StdlibInvoker.
// Families are checked in registration order; the first family whose class
// matcher accepts receiverClass and whose method table has the requested
// key wins, per spec.md §9's "dispatch table keyed by (class-name-pattern,
// method-name, arity)" redesign note.
type Registry struct {
	families []*family
	thread   *family // kept separately: Thread dispatch also needs an is-subclass-of check
}

// New builds the full registry: one family per spec.md §4.5 bullet.
func New() *Registry {
	r := &Registry{thread: threadFamily()}
	r.families = []*family{
		stringFamily(),
		numberFamily(),
		mathFamily(),
		stringBuilderFamily(),
		mapFamily(),
		mapEntryFamily(),
		setFamily(),
		listFamily(),
		iteratorFamily(),
		collectionsFamily(),
		arraysFamily(),
		r.thread,
		exceptionFamily(),
		scannerFamily(),
	}
	return r
}

// Invoke implements vm.StdlibInvoker.
func (r *Registry) Invoke(ip *vm.Interpreter, thread *vm.ThreadState, receiverClass, methodName string, args []vm.Value, receiver vm.Value, isStatic bool) (bool, vm.Value, string) {
	k := key(methodName, len(args))
	for _, f := range r.families {
		if !f.matches(receiverClass) {
			continue
		}
		if h, ok := f.methods[k]; ok {
			ret, desc := h(ip, thread, receiver, args)
			return true, ret, desc
		}
	}
	// A user class extending Thread under a name that doesn't itself
	// contain "Thread" (e.g. "class Worker extends Thread") still needs
	// Thread's start/join/sleep vocabulary; the plain name-based matchers
	// above can't see the class hierarchy, so fall back to a subclass check.
	if h, ok := r.thread.methods[k]; ok && ip.State().Program.IsSubclassOf(receiverClass, "Thread") {
		ret, desc := h(ip, thread, receiver, args)
		return true, ret, desc
	}
	return false, vm.NullValue(), ""
}
