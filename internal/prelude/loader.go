// Package prelude embeds and loads Pecco's built-in operator and
// function declarations (spec.md 4.7). The prelude is ordinary Pecco
// source text containing only declaration-only func/operator
// statements (no bodies); it is lexed and parsed exactly like user
// source, and inserted into the symbol table with Origin Prelude so
// downstream passes and `--hide-prelude` dumps can tell the two apart.
package prelude

import (
	_ "embed"

	"github.com/Pecco-314/pecco-lang/internal/ast"
	"github.com/Pecco-314/pecco-lang/internal/diag"
	"github.com/Pecco-314/pecco-lang/internal/lexer"
	"github.com/Pecco-314/pecco-lang/internal/parser"
	"github.com/Pecco-314/pecco-lang/internal/symbols"
)

//go:embed prelude.pecco
var source string

// Path is the synthetic file path attributed to prelude diagnostics.
const Path = "<prelude>"

// Source returns the embedded prelude source text.
func Source() string { return source }

// Load lexes, parses, and builds symbol-table entries for the prelude
// into table, tagging every inserted symbol with Origin Prelude. It
// returns the parsed Program (callers rarely need it; it exists mainly
// so tests and `--dump-ast` can render the prelude like any other
// compilation unit) along with every diagnostic raised along the way.
func Load(table *symbols.Table) (*ast.Program, *diag.List) {
	var diags diag.List

	toks, lexErrs := lexer.Lex(source)
	for _, e := range lexErrs {
		diags.Addf(diag.Lexer, Path, e.Pos, "%s", e.Message)
	}

	p := parser.New(Path, toks)
	prog := p.ParseProgram()
	diags.Extend(p.Diagnostics())

	b := symbols.NewBuilder(table, Path, symbols.Prelude)
	b.Build(prog)
	diags.Extend(b.Diagnostics())

	return prog, &diags
}
