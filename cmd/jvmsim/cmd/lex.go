package cmd

import (
	"fmt"

	cerrors "github.com/j8sim/engine/internal/errors"
	"github.com/j8sim/engine/internal/lexer"
	"github.com/spf13/cobra"
)

var (
	lexEvalExpr  string
	lexShowPos   bool
	lexShowType  bool
	lexOnlyErrs  bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a source file or expression",
	Long: `Tokenize (lex) a program and print the resulting tokens.

Examples:
  # Tokenize a script file
  jvmsim lex Program.java

  # Tokenize an inline expression
  jvmsim lex -e "int x = 42;"

  # Show token types and positions
  jvmsim lex --show-type --show-pos Program.java`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexSource,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEvalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&lexShowType, "show-type", false, "show token type names")
	lexCmd.Flags().BoolVar(&lexOnlyErrs, "only-errors", false, "show only illegal tokens")
}

func lexSource(cmd *cobra.Command, args []string) error {
	input, filename, err := readSource(lexEvalExpr, args)
	if err != nil {
		return err
	}

	l := lexer.New(input)
	tokenCount := 0
	for {
		tok := l.NextToken()
		if lexOnlyErrs && tok.Type != lexer.ILLEGAL {
			if tok.Type == lexer.EOF {
				break
			}
			continue
		}
		tokenCount++
		printToken(tok)
		if tok.Type == lexer.EOF {
			break
		}
	}

	if errs := l.Errors(); len(errs) > 0 {
		diags := make([]*cerrors.CompilerError, len(errs))
		for i, e := range errs {
			diags[i] = cerrors.NewCompilerError(e.Pos, e.Message, input, filename)
		}
		fmt.Print(cerrors.FormatErrorsWithContext(diags, 1, false))
		fmt.Println()
		return fmt.Errorf("lexing found %d error(s)", len(errs))
	}
	return nil
}

func printToken(tok lexer.Token) {
	var output string
	if lexShowType {
		output = fmt.Sprintf("[%-12s]", tok.Type)
	}
	if tok.Type == lexer.EOF {
		output += " EOF"
	} else if tok.Type == lexer.ILLEGAL {
		output += fmt.Sprintf(" ILLEGAL: %q", tok.Literal)
	} else if tok.Literal == "" {
		output += fmt.Sprintf(" %s", tok.Type)
	} else {
		output += fmt.Sprintf(" %q", tok.Literal)
	}
	if lexShowPos {
		output += fmt.Sprintf(" @%s", tok.Pos)
	}
	fmt.Println(output)
}
