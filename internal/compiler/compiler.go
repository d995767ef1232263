// Package compiler orchestrates the full pipeline: lex, parse, load
// the prelude, build symbols, resolve operators, type-check, and
// generate IR, halting after whichever stage first accumulates a
// diagnostic (spec.md 5, 7). It is the concrete analogue of the
// teacher's semantic.PassManager, generalized across package
// boundaries rather than a single package's Pass list, since each of
// Pecco's stages is substantial enough to own its own package.
package compiler

import (
	"fmt"

	"github.com/Pecco-314/pecco-lang/internal/ast"
	"github.com/Pecco-314/pecco-lang/internal/codegen"
	"github.com/Pecco-314/pecco-lang/internal/diag"
	"github.com/Pecco-314/pecco-lang/internal/ir"
	"github.com/Pecco-314/pecco-lang/internal/lexer"
	"github.com/Pecco-314/pecco-lang/internal/parser"
	"github.com/Pecco-314/pecco-lang/internal/prelude"
	"github.com/Pecco-314/pecco-lang/internal/resolve"
	"github.com/Pecco-314/pecco-lang/internal/symbols"
	"github.com/Pecco-314/pecco-lang/internal/token"
	"github.com/Pecco-314/pecco-lang/internal/typecheck"
)

// Result holds every artifact a caller (the CLI, or a test) might want
// to inspect after a compile, regardless of which stage halted it.
type Result struct {
	Source      string
	Tokens      []token.Token
	PreludeAST  *ast.Program
	UserAST     *ast.Program
	Table       *symbols.Table
	Module      *ir.Module
	Diagnostics diag.List
	FailedStage diag.Stage
}

// Compile runs every stage over source without the optional peephole
// pass, equivalent to CompileWithConfig(path, source, false).
func Compile(path, source string) *Result {
	return CompileWithConfig(path, source, false)
}

// CompileWithConfig runs every stage over source (already read from
// disk or stdin by the caller) attributed to path for diagnostics.
// When optimize is set (pecco.yaml's
// `optimize: true`, SPEC_FULL.md 1.2), the generated module runs
// through internal/ir.Peephole before verification.
func CompileWithConfig(path, source string, optimize bool) *Result {
	res := &Result{Source: source}

	toks, lexErrs := lexer.Lex(source)
	res.Tokens = toks
	for _, e := range lexErrs {
		res.Diagnostics.Addf(diag.Lexer, path, e.Pos, "%s", e.Message)
	}
	if res.Diagnostics.HasErrors() {
		res.FailedStage = diag.Lexer
		return res
	}

	p := parser.New(path, toks)
	res.UserAST = p.ParseProgram()
	res.Diagnostics.Extend(p.Diagnostics())
	if res.Diagnostics.HasErrors() {
		res.FailedStage = diag.Parser
		return res
	}

	table := symbols.NewTable()
	preludeAST, preludeDiags := prelude.Load(table)
	res.PreludeAST = preludeAST
	res.Diagnostics.Extend(preludeDiags)
	if res.Diagnostics.HasErrors() {
		res.FailedStage = diag.Internal
		return res
	}

	builder := symbols.NewBuilder(table, path, symbols.User)
	builder.Build(res.UserAST)
	res.Table = table
	res.Diagnostics.Extend(builder.Diagnostics())
	if res.Diagnostics.HasErrors() {
		res.FailedStage = diag.Symbols
		return res
	}

	r := resolve.New(table, path)
	r.Program(res.UserAST)
	res.Diagnostics.Extend(r.Diagnostics())
	if res.Diagnostics.HasErrors() {
		res.FailedStage = diag.Resolver
		return res
	}

	checker := typecheck.New(table, path)
	checker.Program(res.UserAST)
	res.Diagnostics.Extend(checker.Diagnostics())
	if res.Diagnostics.HasErrors() {
		res.FailedStage = diag.Types
		return res
	}

	gen := codegen.New(table, path)
	res.Module = gen.Generate(res.UserAST)
	res.Diagnostics.Extend(gen.Diagnostics())
	if res.Diagnostics.HasErrors() {
		res.FailedStage = diag.Codegen
		return res
	}

	if optimize {
		ir.Peephole(res.Module)
	}

	if err := ir.Verify(res.Module); err != nil {
		res.Diagnostics.Add(diag.Fatal(fmt.Sprintf("IR verification failed: %v", err)))
		res.FailedStage = diag.Internal
	}

	return res
}

// Succeeded reports whether every stage completed without a
// diagnostic.
func (r *Result) Succeeded() bool { return !r.Diagnostics.HasErrors() }
