package engine

import (
	"strings"
	"testing"

	"github.com/j8sim/engine/internal/config"
	"github.com/j8sim/engine/internal/vm"
)

func mustCompile(t *testing.T, source string) *Simulator {
	t.Helper()
	prog, err := Compile(source)
	if err != nil {
		t.Fatalf("Compile returned an error: %v", err)
	}
	return NewSimulator(prog, config.Default())
}

func runToCompletion(sim *Simulator, maxSteps int) {
	for i := 0; i < maxSteps && sim.CanStepForward(); i++ {
		sim.Step()
	}
}

func TestSimulatorHelloWorld(t *testing.T) {
	sim := mustCompile(t, `
public class HelloWorld {
    public static void main(String[] args) {
        System.out.println("Hello, World!");
    }
}
`)
	runToCompletion(sim, 1000)

	snap := sim.GetState()
	if snap.State.Status != vm.RunCompleted {
		t.Fatalf("Status = %q, want completed", snap.State.Status)
	}
	want := []string{"Hello, World!", ""}
	if len(snap.State.Output) != len(want) || snap.State.Output[0] != want[0] {
		t.Fatalf("Output = %v, want %v", snap.State.Output, want)
	}
}

func TestSimulatorArithmetic(t *testing.T) {
	sim := mustCompile(t, `
public class Arithmetic {
    public static void main(String[] args) {
        int a = 10;
        int b = 5;
        System.out.println(a + b);
        System.out.println(a - b);
        System.out.println(a * b);
        System.out.println(a / b);
    }
}
`)
	runToCompletion(sim, 2000)

	snap := sim.GetState()
	want := []string{"15", "5", "50", "2"}
	for i, line := range want {
		if i >= len(snap.State.Output) || snap.State.Output[i] != line {
			t.Fatalf("Output[%d] = %v, want %q (full output: %v)", i, snap.State.Output, line, snap.State.Output)
		}
	}
}

func TestSimulatorForLoopSum(t *testing.T) {
	sim := mustCompile(t, `
public class LoopSum {
    public static void main(String[] args) {
        int total = 0;
        for (int i = 1; i <= 5; i++) {
            System.out.println(i);
            total = total + i;
        }
        System.out.println(total);
    }
}
`)
	runToCompletion(sim, 5000)

	snap := sim.GetState()
	want := []string{"1", "2", "3", "4", "5", "15"}
	for i, line := range want {
		if i >= len(snap.State.Output) || snap.State.Output[i] != line {
			t.Fatalf("Output[%d] = %v, want %q (full output: %v)", i, snap.State.Output, line, snap.State.Output)
		}
	}
}

func TestSimulatorStepBackRestoresPriorSnapshot(t *testing.T) {
	sim := mustCompile(t, `
public class Stepper {
    public static void main(String[] args) {
        int a = 1;
        int b = 2;
        System.out.println(a + b);
    }
}
`)
	before := sim.GetState()
	sim.Step()
	after := sim.StepBack()
	if after.State.StepNumber != before.State.StepNumber {
		t.Fatalf("StepNumber after step_back = %d, want %d", after.State.StepNumber, before.State.StepNumber)
	}
}

func TestSimulatorResetClearsHistory(t *testing.T) {
	sim := mustCompile(t, `
public class Resettable {
    public static void main(String[] args) {
        System.out.println("before reset");
    }
}
`)
	sim.Step()
	sim.Step()
	sim.Reset()

	if sim.CanStepBack() {
		t.Fatal("CanStepBack() after Reset() = true, want false")
	}
	if sim.GetState().State.StepNumber != 0 {
		t.Fatalf("StepNumber after Reset() = %d, want 0", sim.GetState().State.StepNumber)
	}
}

func TestSnapshotToJSONRoundTrip(t *testing.T) {
	sim := mustCompile(t, `
public class HelloWorld {
    public static void main(String[] args) {
        System.out.println("Hello, World!");
    }
}
`)
	runToCompletion(sim, 1000)

	snap := sim.GetState()
	blob, err := snap.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON returned an error: %v", err)
	}
	if !strings.Contains(blob, "completed") {
		t.Fatalf("ToJSON output missing status: %s", blob)
	}

	summary, err := FromJSON(blob)
	if err != nil {
		t.Fatalf("FromJSON returned an error: %v", err)
	}
	if summary.Status != string(vm.RunCompleted) {
		t.Fatalf("Status = %q, want %q", summary.Status, vm.RunCompleted)
	}
	if len(summary.Threads) != 1 {
		t.Fatalf("Threads = %v, want exactly one", summary.Threads)
	}
}
