package cmd

import (
	"fmt"

	"github.com/j8sim/engine/engine"
	"github.com/j8sim/engine/internal/config"
	"github.com/j8sim/engine/internal/vm"
	"github.com/spf13/cobra"
)

var (
	stepEvalExpr string
	stepConfig   string
	stepCount    int
)

var stepCmd = &cobra.Command{
	Use:   "step [file]",
	Short: "Single-step a program, printing one result per instruction",
	Long: `Compile a program and execute it one instruction at a time, printing
each step's instruction and description. Useful for scripting a
step-through of a program from a shell, one line per step.`,
	Args: cobra.MaximumNArgs(1),
	RunE: stepSource,
}

func init() {
	rootCmd.AddCommand(stepCmd)
	stepCmd.Flags().StringVarP(&stepEvalExpr, "eval", "e", "", "step inline code instead of reading from file")
	stepCmd.Flags().StringVar(&stepConfig, "config", "", "YAML file overriding history/step/tick defaults")
	stepCmd.Flags().IntVar(&stepCount, "steps", 1, "number of instructions to execute")
}

func stepSource(cmd *cobra.Command, args []string) error {
	input, filename, err := readSource(stepEvalExpr, args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(stepConfig)
	if err != nil {
		return err
	}

	prog, err := engine.Compile(input)
	if err != nil {
		return fmt.Errorf("compiling %s: %w", filename, err)
	}

	sim := engine.NewSimulator(prog, cfg)
	for i := 0; i < stepCount && sim.CanStepForward(); i++ {
		result := sim.Step()
		line := fmt.Sprintf("step %d: %s", result.State.StepNumber, result.Description)
		if result.Instruction != nil {
			line = fmt.Sprintf("step %d: %-20s %s", result.State.StepNumber, result.Instruction.Opcode, result.Description)
		}
		fmt.Println(line)
	}

	final := sim.GetState().State
	if final.Status == vm.RunError {
		return fmt.Errorf("runtime error: %s", final.Error)
	}
	return nil
}
