package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Pecco-314/pecco-lang/internal/lexer"
	"github.com/Pecco-314/pecco-lang/internal/token"
)

var (
	evalExpr   string
	showPos    bool
	showType   bool
	onlyErrors bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Pecco source file",
	Long: `Tokenize (lex) a Pecco program and print the resulting tokens.

Examples:
  peccoc lex script.pecco
  peccoc lex -e "let x = 1 + 2;"
  peccoc lex --show-type --show-pos script.pecco
  peccoc lex --only-errors script.pecco`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexSource,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&showType, "show-type", false, "show token kind names")
	lexCmd.Flags().BoolVar(&onlyErrors, "only-errors", false, "show only illegal tokens")
}

func readInput(args []string) (input, filename string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) == 1 {
		content, err := lexer.ReadSource(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return content, args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e for inline code")
}

func lexSource(cmd *cobra.Command, args []string) error {
	input, filename, err := readInput(args)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		fmt.Printf("Tokenizing: %s\n", filename)
		fmt.Printf("Input length: %d bytes\n", len(input))
		fmt.Println("---")
	}

	toks, errs := lexer.Lex(input)

	errCount := 0
	for _, tok := range toks {
		if onlyErrors && tok.Kind != token.ILLEGAL {
			continue
		}
		if tok.Kind == token.ILLEGAL {
			errCount++
		}
		printToken(tok)
	}

	if verbose {
		fmt.Println("---")
		fmt.Printf("Total tokens: %d\n", len(toks))
		if len(errs) > 0 {
			fmt.Printf("Lexer errors: %d\n", len(errs))
		}
	}

	for _, e := range errs {
		fmt.Fprintf(os.Stderr, "lexer error at %s: %s\n", e.Pos, e.Message)
	}

	if len(errs) > 0 {
		return fmt.Errorf("found %d lexer error(s)", len(errs))
	}
	return nil
}

func printToken(tok token.Token) {
	var output string
	if showType {
		output = fmt.Sprintf("[%-10s]", tok.Kind)
	}
	switch {
	case tok.Kind == token.EOF:
		output += " EOF"
	case tok.Kind == token.ILLEGAL:
		output += fmt.Sprintf(" ILLEGAL: %q", tok.Literal)
	default:
		output += fmt.Sprintf(" %q", tok.Literal)
	}
	if showPos {
		output += fmt.Sprintf(" @%s", tok.Pos)
	}
	fmt.Println(output)
}
