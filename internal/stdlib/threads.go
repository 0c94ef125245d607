package stdlib

import "github.com/j8sim/engine/internal/vm"

const threadIDField = "$threadId"

// threadFamily implements spec.md §4.5's Thread bullet: java.lang.Thread
// and any user class extending it (see Registry.Invoke's subclass
// fallback). A Thread's heap object carries its scheduler thread id in a
// private $threadId field once started, linking the object-graph view of
// the thread back to the ThreadState the scheduler actually runs.
func threadFamily() *family {
	f := newFamily("Thread", exactly("Thread"))

	initThread := func(ip *vm.Interpreter, recv vm.Value, name string) {
		obj := heapObj(ip, recv)
		if obj == nil {
			return
		}
		if obj.Fields == nil {
			obj.Fields = make(map[string]vm.Value)
		}
		if name == "" {
			name = "Thread-0"
		}
		obj.Fields["$name"] = vm.StringValue(name)
		obj.Fields["$priority"] = vm.IntValue(5)
		obj.Fields["$daemon"] = vm.BoolValue(false)
	}
	f.on("<init>", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		initThread(ip, recv, "")
		return voidVal(), "Thread.<init>"
	})
	f.on("<init>", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		name := ""
		if args[0].Kind == vm.KindString {
			name = args[0].S
		}
		initThread(ip, recv, name)
		return voidVal(), "Thread.<init>"
	})
	f.on("start", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		obj := heapObj(ip, recv)
		if obj == nil {
			return voidVal(), "Thread.start on a non-object receiver"
		}
		runMethod, ownerClass := ip.State().Program.LookupMethod(obj.ClassName, "run(0)")
		if runMethod == nil {
			return voidVal(), "Thread.start found no run() method"
		}
		name := threadFieldStr(obj, "$name", "Thread-0")
		priority := 5
		if p, ok := obj.Fields["$priority"]; ok {
			priority = int(p.AsInt64())
		}
		daemon := false
		if d, ok := obj.Fields["$daemon"]; ok {
			daemon = d.B
		}
		spawned := ip.State().SpawnThread(name, runMethod, ownerClass, recv, daemon, priority)
		obj.Fields[threadIDField] = vm.IntValue(int64(spawned.ID))
		return voidVal(), "Thread.start"
	})
	f.on("sleep", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		ms := argInt(args, 0)
		msPerTick := ip.State().MsPerTick
		if msPerTick <= 0 {
			msPerTick = 50
		}
		ticks := ms / msPerTick
		if ticks < 1 {
			ticks = 1
		}
		th.SleepUntilStep = ip.State().StepNumber + ticks
		th.Status = vm.StatusTimedWaiting
		return voidVal(), "Thread.sleep"
	})
	f.on("join", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		obj := heapObj(ip, recv)
		if obj == nil {
			return voidVal(), "Thread.join on a non-object receiver"
		}
		target, ok := obj.Fields[threadIDField]
		if !ok {
			return voidVal(), "Thread.join on a thread that was never started"
		}
		targetThread := ip.State().ThreadByID(int(target.AsInt64()))
		if targetThread == nil || targetThread.Status == vm.StatusTerminated {
			return voidVal(), "Thread.join on an already-terminated thread"
		}
		th.Status = vm.StatusWaiting
		th.WaitingOnThread = targetThread.ID
		return voidVal(), "Thread.join"
	})
	f.on("wait", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		if recv.Kind != vm.KindRef && recv.Kind != vm.KindArray {
			return voidVal(), "Object.wait on a non-reference receiver"
		}
		ip.State().ReleaseMonitor(recv.Ref, th.ID)
		th.Status = vm.StatusWaiting
		th.WaitingOnMonitor = recv.Ref
		return voidVal(), "Object.wait"
	})
	f.on("notify", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		wakeOneWaiter(ip, recv)
		return voidVal(), "Object.notify"
	})
	f.on("notifyAll", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		wakeAllWaiters(ip, recv)
		return voidVal(), "Object.notifyAll"
	})
	f.on("getName", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		obj := heapObj(ip, recv)
		if obj == nil {
			return vm.StringValue(""), "Thread.getName"
		}
		return vm.StringValue(threadFieldStr(obj, "$name", "Thread-0")), "Thread.getName"
	})
	f.on("getId", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		obj := heapObj(ip, recv)
		if obj == nil {
			return vm.LongValue(0), "Thread.getId"
		}
		return vm.LongValue(obj.Fields[threadIDField].I), "Thread.getId"
	})
	f.on("getState", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		obj := heapObj(ip, recv)
		if obj == nil {
			return vm.StringValue(string(vm.StatusNew)), "Thread.getState"
		}
		target, ok := obj.Fields[threadIDField]
		if !ok {
			return vm.StringValue(string(vm.StatusNew)), "Thread.getState"
		}
		if t := ip.State().ThreadByID(int(target.AsInt64())); t != nil {
			return vm.StringValue(string(t.Status)), "Thread.getState"
		}
		return vm.StringValue(string(vm.StatusNew)), "Thread.getState"
	})
	f.on("isAlive", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		obj := heapObj(ip, recv)
		if obj == nil {
			return boolVal(false), "Thread.isAlive"
		}
		target, ok := obj.Fields[threadIDField]
		if !ok {
			return boolVal(false), "Thread.isAlive"
		}
		t := ip.State().ThreadByID(int(target.AsInt64()))
		return boolVal(t != nil && t.Status != vm.StatusTerminated), "Thread.isAlive"
	})
	f.on("setPriority", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		if obj := heapObj(ip, recv); obj != nil {
			obj.Fields["$priority"] = vm.IntValue(argInt(args, 0))
		}
		return voidVal(), "Thread.setPriority"
	})
	f.on("setDaemon", 1, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		if obj := heapObj(ip, recv); obj != nil {
			obj.Fields["$daemon"] = args[0]
		}
		return voidVal(), "Thread.setDaemon"
	})
	f.on("currentThread", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		for _, obj := range ip.State().Heap.Objects {
			if id, ok := obj.Fields[threadIDField]; ok && int(id.AsInt64()) == th.ID {
				return vm.RefValue(obj.ID), "Thread.currentThread"
			}
		}
		return vm.NullValue(), "Thread.currentThread found no heap object backing the running thread"
	})
	f.on("interrupt", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		obj := heapObj(ip, recv)
		if obj == nil {
			return voidVal(), "Thread.interrupt"
		}
		if target, ok := obj.Fields[threadIDField]; ok {
			if t := ip.State().ThreadByID(int(target.AsInt64())); t != nil {
				t.Interrupted = true
			}
		}
		return voidVal(), "Thread.interrupt"
	})
	f.on("isInterrupted", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		obj := heapObj(ip, recv)
		if obj == nil {
			return boolVal(false), "Thread.isInterrupted"
		}
		target, ok := obj.Fields[threadIDField]
		if !ok {
			return boolVal(false), "Thread.isInterrupted"
		}
		t := ip.State().ThreadByID(int(target.AsInt64()))
		return boolVal(t != nil && t.Interrupted), "Thread.isInterrupted"
	})
	f.on("interrupted", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		was := th.Interrupted
		th.Interrupted = false
		return boolVal(was), "Thread.interrupted"
	})
	f.on("yield", 0, func(ip *vm.Interpreter, th *vm.ThreadState, recv vm.Value, args []vm.Value) (vm.Value, string) {
		return voidVal(), "Thread.yield"
	})
	return f
}

func threadFieldStr(obj *vm.HeapObject, field, fallback string) string {
	if v, ok := obj.Fields[field]; ok && v.Kind == vm.KindString {
		return v.S
	}
	return fallback
}

func wakeOneWaiter(ip *vm.Interpreter, monitor vm.Value) {
	if monitor.Kind != vm.KindRef && monitor.Kind != vm.KindArray {
		return
	}
	for _, t := range ip.State().Threads {
		if t.Status == vm.StatusWaiting && t.WaitingOnMonitor == monitor.Ref {
			t.Status = vm.StatusRunnable
			t.WaitingOnMonitor = 0
			return
		}
	}
}

func wakeAllWaiters(ip *vm.Interpreter, monitor vm.Value) {
	if monitor.Kind != vm.KindRef && monitor.Kind != vm.KindArray {
		return
	}
	for _, t := range ip.State().Threads {
		if t.Status == vm.StatusWaiting && t.WaitingOnMonitor == monitor.Ref {
			t.Status = vm.StatusRunnable
			t.WaitingOnMonitor = 0
		}
	}
}
