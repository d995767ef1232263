// Command peccoc is Pecco's compiler driver: lex/parse/build/run
// subcommands over the pipeline in internal/compiler.
package main

import (
	"fmt"
	"os"

	"github.com/Pecco-314/pecco-lang/cmd/peccoc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
