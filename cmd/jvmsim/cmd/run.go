package cmd

import (
	"fmt"
	"strings"

	"github.com/j8sim/engine/engine"
	"github.com/j8sim/engine/internal/config"
	"github.com/j8sim/engine/internal/vm"
	"github.com/spf13/cobra"
)

var (
	runEvalExpr string
	runConfig   string
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a source file or expression to completion",
	Long: `Compile and run a program until it completes, errors, or hits the
step-count safety cap, then print its output.

Examples:
  # Run a script file
  jvmsim run Program.java

  # Evaluate inline code
  jvmsim run -e "class M { public static void main(String[] a) { System.out.println(1); } }"

  # Run with a tuned driver configuration
  jvmsim run --config sim.yaml Program.java`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSource,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runEvalExpr, "eval", "e", "", "run inline code instead of reading from file")
	runCmd.Flags().StringVar(&runConfig, "config", "", "YAML file overriding history/step/tick defaults")
}

func runSource(cmd *cobra.Command, args []string) error {
	input, filename, err := readSource(runEvalExpr, args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(runConfig)
	if err != nil {
		return err
	}

	prog, err := engine.Compile(input)
	if err != nil {
		return fmt.Errorf("compiling %s: %w", filename, err)
	}

	sim := engine.NewSimulator(prog, cfg)
	sim.Run()

	state := sim.GetState().State
	fmt.Print(strings.Join(state.Output, "\n"))

	switch state.Status {
	case vm.RunError:
		return fmt.Errorf("runtime error: %s", state.Error)
	case vm.RunCompleted:
		return nil
	default:
		return fmt.Errorf("execution did not complete within the step cap (status=%s)", state.Status)
	}
}
