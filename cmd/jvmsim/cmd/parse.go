package cmd

import (
	"fmt"

	cerrors "github.com/j8sim/engine/internal/errors"
	"github.com/j8sim/engine/internal/lexer"
	"github.com/j8sim/engine/internal/parser"
	"github.com/spf13/cobra"
)

var parseEvalExpr string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a source file or expression and print its AST",
	Args:  cobra.MaximumNArgs(1),
	RunE:  parseSource,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseEvalExpr, "eval", "e", "", "parse inline code instead of reading from file")
}

func parseSource(cmd *cobra.Command, args []string) error {
	input, filename, err := readSource(parseEvalExpr, args)
	if err != nil {
		return err
	}

	l := lexer.New(input)
	p := parser.New(l)
	prog := p.ParseProgram()

	if errs := p.Errors(); len(errs) > 0 {
		diags := make([]*cerrors.CompilerError, len(errs))
		for i, e := range errs {
			diags[i] = cerrors.NewCompilerError(e.Pos, e.Message, input, filename)
		}
		fmt.Print(cerrors.FormatErrorsWithContext(diags, 1, false))
		fmt.Println()
		return fmt.Errorf("parsing %s failed with %d error(s)", filename, len(errs))
	}

	fmt.Println(prog.String())
	return nil
}
