package parser

import (
	"testing"

	"github.com/Pecco-314/pecco-lang/internal/ast"
	"github.com/Pecco-314/pecco-lang/internal/lexer"
)

func testParse(t *testing.T, input string) *ast.Program {
	t.Helper()
	toks, lexErrs := lexer.Lex(input)
	if len(lexErrs) != 0 {
		t.Fatalf("unexpected lexer errors: %v", lexErrs)
	}
	p := New("<test>", toks)
	prog := p.ParseProgram()
	if p.Diagnostics().HasErrors() {
		for _, d := range p.Diagnostics().Items() {
			t.Errorf("parser error: %s", d.Header())
		}
		t.FailNow()
	}
	return prog
}

func TestParseLetStatement(t *testing.T) {
	prog := testParse(t, `let x : i32 = 5;`)
	if len(prog.Stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Stmts))
	}
	let, ok := prog.Stmts[0].(*ast.LetStmt)
	if !ok {
		t.Fatalf("expected *ast.LetStmt, got %T", prog.Stmts[0])
	}
	if let.Name != "x" || !let.HasType || let.DeclaredType != "i32" {
		t.Fatalf("unexpected let statement: %+v", let)
	}
	if _, ok := let.Init.(*ast.IntegerLiteral); !ok {
		t.Fatalf("expected integer literal init, got %T", let.Init)
	}
}

func TestParseLetWithoutType(t *testing.T) {
	prog := testParse(t, `let y = 1.5;`)
	let := prog.Stmts[0].(*ast.LetStmt)
	if let.HasType {
		t.Fatalf("expected no declared type")
	}
	if _, ok := let.Init.(*ast.FloatLiteral); !ok {
		t.Fatalf("expected float literal init, got %T", let.Init)
	}
}

func TestParseFuncDecl(t *testing.T) {
	prog := testParse(t, `func add(a : i32, b : i32) : i32 { return a + b; }`)
	fn, ok := prog.Stmts[0].(*ast.FuncDecl)
	if !ok {
		t.Fatalf("expected *ast.FuncDecl, got %T", prog.Stmts[0])
	}
	if fn.Name != "add" || !fn.HasReturn || fn.ReturnType != "i32" {
		t.Fatalf("unexpected func decl: %+v", fn)
	}
	if len(fn.Params) != 2 || fn.Params[0].Name != "a" || fn.Params[0].Type != "i32" {
		t.Fatalf("unexpected params: %+v", fn.Params)
	}
	if fn.Body == nil || len(fn.Body.Stmts) != 1 {
		t.Fatalf("expected one statement in function body")
	}
}

func TestParseDeclarationOnlyFunc(t *testing.T) {
	prog := testParse(t, `func write_i32(x : i32) : void;`)
	fn := prog.Stmts[0].(*ast.FuncDecl)
	if fn.Body != nil {
		t.Fatalf("expected a nil body for a declaration-only function")
	}
}

func TestParseInfixOperatorDecl(t *testing.T) {
	prog := testParse(t, `operator infix + (a : i32, b : i32) : i32 prec 50 assoc_left;`)
	op, ok := prog.Stmts[0].(*ast.OperatorDecl)
	if !ok {
		t.Fatalf("expected *ast.OperatorDecl, got %T", prog.Stmts[0])
	}
	if op.Symbol != "+" || op.Position != ast.OpInfix {
		t.Fatalf("unexpected operator decl: %+v", op)
	}
	if op.Precedence != 50 || op.Assoc != ast.AssocLeft {
		t.Fatalf("expected precedence 50 assoc_left, got %d %v", op.Precedence, op.Assoc)
	}
	if len(op.Params) != 2 {
		t.Fatalf("expected 2 params for an infix operator, got %d", len(op.Params))
	}
}

func TestParsePrefixOperatorDecl(t *testing.T) {
	prog := testParse(t, `operator prefix - (a : i32) : i32;`)
	op := prog.Stmts[0].(*ast.OperatorDecl)
	if op.Position != ast.OpPrefix || len(op.Params) != 1 {
		t.Fatalf("unexpected prefix operator decl: %+v", op)
	}
}

func TestParsePostfixOperatorDecl(t *testing.T) {
	prog := testParse(t, `operator postfix ++ (a : i32) : i32;`)
	op := prog.Stmts[0].(*ast.OperatorDecl)
	if op.Position != ast.OpPostfix || len(op.Params) != 1 {
		t.Fatalf("unexpected postfix operator decl: %+v", op)
	}
}

func TestParseIfElseChain(t *testing.T) {
	prog := testParse(t, `
	if x {
		return 1;
	} else if y {
		return 2;
	} else {
		return 3;
	}
	`)
	ifStmt, ok := prog.Stmts[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected *ast.IfStmt, got %T", prog.Stmts[0])
	}
	elseIf, ok := ifStmt.Else.(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected chained else-if, got %T", ifStmt.Else)
	}
	if _, ok := elseIf.Else.(*ast.BlockStmt); !ok {
		t.Fatalf("expected trailing else block, got %T", elseIf.Else)
	}
}

func TestParseWhile(t *testing.T) {
	prog := testParse(t, `while x < 10 { x = x + 1; }`)
	w, ok := prog.Stmts[0].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("expected *ast.WhileStmt, got %T", prog.Stmts[0])
	}
	if len(w.Body.Stmts) != 1 {
		t.Fatalf("expected one statement in while body")
	}
}

func TestParseExprProducesFlatOpSeq(t *testing.T) {
	prog := testParse(t, `1 + 2 * 3;`)
	stmt := prog.Stmts[0].(*ast.ExprStmt)
	seq, ok := stmt.X.(*ast.OpSeq)
	if !ok {
		t.Fatalf("expected an unresolved *ast.OpSeq, got %T", stmt.X)
	}
	if len(seq.Items) != 5 {
		t.Fatalf("expected 5 flat items (1 + 2 * 3), got %d", len(seq.Items))
	}
	if seq.Items[1].Op != "+" || seq.Items[3].Op != "*" {
		t.Fatalf("unexpected operator items: %+v", seq.Items)
	}
}

func TestParseSingleOperandCollapses(t *testing.T) {
	prog := testParse(t, `42;`)
	stmt := prog.Stmts[0].(*ast.ExprStmt)
	if _, ok := stmt.X.(*ast.IntegerLiteral); !ok {
		t.Fatalf("expected a bare IntegerLiteral, not an OpSeq, got %T", stmt.X)
	}
}

func TestParseChainedCall(t *testing.T) {
	prog := testParse(t, `make_adder(1)(2);`)
	stmt := prog.Stmts[0].(*ast.ExprStmt)
	outer, ok := stmt.X.(*ast.CallExpr)
	if !ok {
		t.Fatalf("expected outer *ast.CallExpr, got %T", stmt.X)
	}
	inner, ok := outer.Callee.(*ast.CallExpr)
	if !ok {
		t.Fatalf("expected inner call as callee, got %T", outer.Callee)
	}
	if _, ok := inner.Callee.(*ast.Identifier); !ok {
		t.Fatalf("expected identifier callee, got %T", inner.Callee)
	}
}

func TestParseCallArguments(t *testing.T) {
	prog := testParse(t, `add(1, 2, x);`)
	stmt := prog.Stmts[0].(*ast.ExprStmt)
	call := stmt.X.(*ast.CallExpr)
	if len(call.Args) != 3 {
		t.Fatalf("expected 3 arguments, got %d", len(call.Args))
	}
}

func TestParseMissingSemicolonRecovers(t *testing.T) {
	toks, lexErrs := lexer.Lex("let x = 1\nlet y = 2;")
	if len(lexErrs) != 0 {
		t.Fatalf("unexpected lexer errors: %v", lexErrs)
	}
	p := New("<test>", toks)
	prog := p.ParseProgram()
	if !p.Diagnostics().HasErrors() {
		t.Fatalf("expected a diagnostic for the missing semicolon")
	}
	if len(prog.Stmts) != 2 {
		t.Fatalf("expected the parser to recover and parse both statements, got %d", len(prog.Stmts))
	}
}
