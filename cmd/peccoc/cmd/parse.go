package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Pecco-314/pecco-lang/internal/ast"
	"github.com/Pecco-314/pecco-lang/internal/lexer"
	"github.com/Pecco-314/pecco-lang/internal/parser"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a Pecco source file and dump its AST",
	Long: `Parse a Pecco program and print its abstract syntax tree.

The parser never resolves operator precedence: expressions print as
flat operator sequences here. Use 'peccoc build --dump-ast' to see the
tree after operator resolution.`,
	Args: cobra.MaximumNArgs(1),
	RunE: parseSource,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "parse inline code instead of reading from file")
}

func parseSource(_ *cobra.Command, args []string) error {
	input, filename, err := readInput(args)
	if err != nil {
		return err
	}

	toks, lexErrs := lexer.Lex(input)
	for _, e := range lexErrs {
		fmt.Fprintf(os.Stderr, "lexer error at %s: %s\n", e.Pos, e.Message)
	}

	p := parser.New(filename, toks)
	prog := p.ParseProgram()

	for _, d := range p.Diagnostics().Items() {
		fmt.Fprintln(os.Stderr, d.Render(input))
	}

	fmt.Print(ast.Dump(prog))

	if len(lexErrs) > 0 || p.Diagnostics().HasErrors() {
		return fmt.Errorf("parsing failed")
	}
	return nil
}
