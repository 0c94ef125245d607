// Command jvmsim is the CLI front end for the Java-8 subset interpreter:
// lex, parse, compile, run, and single-step a program from the shell.
package main

import (
	"fmt"
	"os"

	"github.com/j8sim/engine/cmd/jvmsim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
