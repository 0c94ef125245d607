package engine

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/j8sim/engine/internal/config"
)

// These mirror the six end-to-end scenarios in spec.md §8: the snapshot is
// each scenario's full output plus final status, so a pipeline regression
// shows up as a snapshot diff.
//
// TestScenarioMonitorCoordination checks output parity only: its
// `synchronized` block compiles away (see DESIGN.md's Open Question 2), so
// it does not exercise monitor mutual exclusion. That invariant is tested
// directly in internal/vm/monitor_test.go against a hand-built instruction
// stream.

func runScenario(t *testing.T, name, source string) {
	t.Helper()
	prog, err := Compile(source)
	if err != nil {
		t.Fatalf("%s: Compile returned an error: %v", name, err)
	}
	sim := NewSimulator(prog, config.Default())
	sim.Run()

	state := sim.GetState().State
	summary := fmt.Sprintf("status=%s\noutput=%s", state.Status, strings.Join(state.Output, "|"))
	snaps.MatchSnapshot(t, name, summary)
}

func TestScenarioHelloWorld(t *testing.T) {
	runScenario(t, "hello_world", `
public class HelloWorld {
    public static void main(String[] args) {
        System.out.println("Hello, World!");
    }
}
`)
}

func TestScenarioArithmetic(t *testing.T) {
	runScenario(t, "arithmetic", `
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
}

func TestScenarioRecursiveFactorial(t *testing.T) {
	runScenario(t, "recursive_factorial", `
public class Factorial {
    static int factorial(int n) {
        if (n <= 1) {
            return 1;
        }
        return n * factorial(n - 1);
    }

    public static void main(String[] args) {
        System.out.println(factorial(5));
    }
}
`)
}

func TestScenarioForLoopSum(t *testing.T) {
	runScenario(t, "for_loop_sum", `
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
}

func TestScenarioBinaryTreeDFS(t *testing.T) {
	runScenario(t, "binary_tree_dfs", `
public class TreeNode {
    int value;
    TreeNode left;
    TreeNode right;

    TreeNode(int value) {
        this.value = value;
    }
}

public class BinaryTreeDFS {
    static void preorder(TreeNode node) {
        if (node == null) {
            return;
        }
        System.out.println(node.value);
        preorder(node.left);
        preorder(node.right);
    }

    public static void main(String[] args) {
        TreeNode root = new TreeNode(1);
        root.left = new TreeNode(2);
        root.right = new TreeNode(3);
        root.left.left = new TreeNode(4);
        root.left.right = new TreeNode(5);
        root.right.right = new TreeNode(6);

        System.out.println("DFS Preorder:");
        preorder(root);
    }
}
`)
}

func TestScenarioMonitorCoordination(t *testing.T) {
	runScenario(t, "monitor_coordination", `
public class Appender extends Thread {
    List<Integer> target;

    Appender(List<Integer> target) {
        this.target = target;
    }

    public void run() {
        for (int i = 0; i < 3; i++) {
            synchronized (target) {
                target.add(i);
            }
        }
    }
}

public class MonitorCoordination {
    public static void main(String[] args) throws InterruptedException {
        List<Integer> shared = new ArrayList<Integer>();
        Appender a = new Appender(shared);
        Appender b = new Appender(shared);
        a.start();
        b.start();
        a.join();
        b.join();
        System.out.println(shared.size());
    }
}
`)
}
