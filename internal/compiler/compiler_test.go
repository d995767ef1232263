package compiler

import (
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/Pecco-314/pecco-lang/internal/ast"
	"github.com/Pecco-314/pecco-lang/internal/diag"
	"github.com/Pecco-314/pecco-lang/internal/ir"
	"github.com/Pecco-314/pecco-lang/internal/symbols"
)

func TestCompileSucceedsAndProducesVerifiedModule(t *testing.T) {
	res := Compile("main.pecco", `
	func add(a : i32, b : i32) : i32 {
		return a + b;
	}
	let x = add(1, 2);
	`)
	if !res.Succeeded() {
		t.Fatalf("expected the pipeline to succeed, got diagnostics: %v", res.Diagnostics.Items())
	}
	if res.Module == nil {
		t.Fatalf("expected a generated module")
	}
	if err := ir.Verify(res.Module); err != nil {
		t.Fatalf("unexpected verification error: %v", err)
	}
}

func TestCompileStopsAtLexerStageOnInvalidEscape(t *testing.T) {
	res := Compile("main.pecco", `let x = "bad \q escape";`)
	if res.Succeeded() {
		t.Fatalf("expected a lexer failure for an invalid escape")
	}
	if res.FailedStage != diag.Lexer {
		t.Fatalf("expected FailedStage Lexer, got %v", res.FailedStage)
	}
}

func TestCompileStopsAtParserStageOnSyntaxError(t *testing.T) {
	res := Compile("main.pecco", `let x = ;`)
	if res.Succeeded() {
		t.Fatalf("expected a parser failure")
	}
	if res.FailedStage != diag.Parser {
		t.Fatalf("expected FailedStage Parser, got %v", res.FailedStage)
	}
}

func TestCompileStopsAtSymbolsStageOnDuplicateFunction(t *testing.T) {
	res := Compile("main.pecco", `
	func f(a : i32) : i32 { return a; }
	func f(a : i32) : i32 { return a; }
	`)
	if res.Succeeded() {
		t.Fatalf("expected a symbols failure for a duplicate overload")
	}
	if res.FailedStage != diag.Symbols {
		t.Fatalf("expected FailedStage Symbols, got %v", res.FailedStage)
	}
}

func TestCompileStopsAtTypesStageOnConditionMismatch(t *testing.T) {
	res := Compile("main.pecco", `
	func f() : void {
		if 1 { return; }
	}
	`)
	if res.Succeeded() {
		t.Fatalf("expected a type-checking failure for a non-bool if condition")
	}
	if res.FailedStage != diag.Types {
		t.Fatalf("expected FailedStage Types, got %v", res.FailedStage)
	}
}

func TestCompileUsesPreludeOperatorsWithoutUserDeclarations(t *testing.T) {
	res := Compile("main.pecco", `let x = 1 + 2 * 3;`)
	if !res.Succeeded() {
		t.Fatalf("expected prelude arithmetic operators to resolve without user declarations: %v", res.Diagnostics.Items())
	}
}

func TestCompileTableDumpHidesPreludeOnRequest(t *testing.T) {
	res := Compile("main.pecco", `func main_entry() : void { return; }`)
	if !res.Succeeded() {
		t.Fatalf("unexpected diagnostics: %v", res.Diagnostics.Items())
	}
	hidden := symbols.Dump(res.Table, true)
	if !strings.Contains(hidden, "main_entry") {
		t.Fatalf("expected the user function to appear in the symbol dump")
	}
	if strings.Contains(hidden, "[prelude]") {
		t.Fatalf("expected prelude entries to be omitted from the symbol dump")
	}
}

func TestCompileEmitsVerifiableIRSnapshot(t *testing.T) {
	res := Compile("main.pecco", `
	func max(a : i32, b : i32) : i32 {
		if a < b {
			return b;
		}
		return a;
	}
	`)
	if !res.Succeeded() {
		t.Fatalf("unexpected diagnostics: %v", res.Diagnostics.Items())
	}
	snaps.MatchSnapshot(t, "max_function_ir", ir.Print(res.Module))
}

func TestCompileWithConfigOptimizeElidesForwardedLoad(t *testing.T) {
	source := `
	func f() : i32 {
		let x = 1;
		return x;
	}
	`
	plain := CompileWithConfig("main.pecco", source, false)
	if !plain.Succeeded() {
		t.Fatalf("unexpected diagnostics: %v", plain.Diagnostics.Items())
	}
	if !strings.Contains(ir.Print(plain.Module), "load") {
		t.Fatalf("expected the unoptimized module to still load x from its stack slot, got:\n%s", ir.Print(plain.Module))
	}

	optimized := CompileWithConfig("main.pecco", source, true)
	if !optimized.Succeeded() {
		t.Fatalf("unexpected diagnostics: %v", optimized.Diagnostics.Items())
	}
	if strings.Contains(ir.Print(optimized.Module), "load") {
		t.Fatalf("expected optimize: true to forward the store directly into ret, got:\n%s", ir.Print(optimized.Module))
	}
}

func TestCompileEmitsVerifiableASTSnapshot(t *testing.T) {
	res := Compile("main.pecco", `
	func max(a : i32, b : i32) : i32 {
		if a < b {
			return b;
		}
		return a;
	}
	`)
	if !res.Succeeded() {
		t.Fatalf("unexpected diagnostics: %v", res.Diagnostics.Items())
	}
	snaps.MatchSnapshot(t, "max_function_ast", ast.Dump(res.UserAST))
}
