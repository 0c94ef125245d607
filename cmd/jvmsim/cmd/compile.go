package cmd

import (
	"fmt"

	"github.com/j8sim/engine/engine"
	"github.com/j8sim/engine/internal/bytecode"
	"github.com/spf13/cobra"
)

var (
	compileEvalExpr string
	disasm          bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Compile a source file or expression to bytecode",
	Long: `Run the full front end (lex, parse, compile) and report success or the
first stage's diagnostics. With --disasm, also print every compiled
instruction.`,
	Args: cobra.MaximumNArgs(1),
	RunE: compileSource,
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringVarP(&compileEvalExpr, "eval", "e", "", "compile inline code instead of reading from file")
	compileCmd.Flags().BoolVar(&disasm, "disasm", false, "print the compiled instruction stream")
}

func compileSource(cmd *cobra.Command, args []string) error {
	input, filename, err := readSource(compileEvalExpr, args)
	if err != nil {
		return err
	}

	prog, err := engine.Compile(input)
	if err != nil {
		return fmt.Errorf("compiling %s: %w", filename, err)
	}

	fmt.Printf("compiled %d class(es); main class %s\n", len(prog.Classes), prog.MainClass)

	if disasm {
		fmt.Print(bytecode.NewDisassembler(prog).Disassemble())
	}
	return nil
}
