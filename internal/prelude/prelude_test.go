package prelude

import (
	"testing"

	"github.com/Pecco-314/pecco-lang/internal/ast"
	"github.com/Pecco-314/pecco-lang/internal/symbols"
)

func TestLoadProducesNoDiagnostics(t *testing.T) {
	table := symbols.NewTable()
	_, diags := Load(table)
	if diags.HasErrors() {
		for _, d := range diags.Items() {
			t.Errorf("unexpected prelude diagnostic: %s", d.Header())
		}
		t.FailNow()
	}
}

func TestLoadRegistersArithmeticOperators(t *testing.T) {
	table := symbols.NewTable()
	Load(table)

	plus := table.LookupOperator("+", ast.OpInfix)
	if len(plus) != 2 {
		t.Fatalf("expected '+' to have i32 and f64 overloads, got %d", len(plus))
	}
	neg := table.LookupOperator("-", ast.OpPrefix)
	if len(neg) != 2 {
		t.Fatalf("expected prefix '-' to have i32 and f64 overloads, got %d", len(neg))
	}
	inc := table.LookupOperator("++", ast.OpPostfix)
	if len(inc) != 1 {
		t.Fatalf("expected postfix '++' to have one overload, got %d", len(inc))
	}
}

func TestLoadRegistersAssignmentOperators(t *testing.T) {
	table := symbols.NewTable()
	Load(table)

	assign := table.LookupOperator("=", ast.OpInfix)
	if len(assign) != 4 {
		t.Fatalf("expected '=' to have i32/f64/bool/string overloads, got %d", len(assign))
	}
	plusAssign := table.LookupOperator("+=", ast.OpInfix)
	if len(plusAssign) != 2 {
		t.Fatalf("expected '+=' to have i32 and f64 overloads, got %d", len(plusAssign))
	}
}

func TestLoadRegistersIOFunctions(t *testing.T) {
	table := symbols.NewTable()
	Load(table)

	for _, name := range []string{"exit", "write", "write_i32", "write_f64"} {
		if len(table.LookupFunction(name)) == 0 {
			t.Errorf("expected prelude to declare %q", name)
		}
	}
}

func TestLoadedDeclarationsHaveNoBodies(t *testing.T) {
	table := symbols.NewTable()
	prog, diags := Load(table)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Items())
	}
	for _, stmt := range prog.Stmts {
		switch n := stmt.(type) {
		case *ast.FuncDecl:
			if n.Body != nil {
				t.Errorf("prelude function %q should be declaration-only", n.Name)
			}
		case *ast.OperatorDecl:
			if n.Body != nil {
				t.Errorf("prelude operator %q should be declaration-only", n.Symbol)
			}
		}
	}
}

func TestEverySymbolTaggedPreludeOrigin(t *testing.T) {
	table := symbols.NewTable()
	Load(table)
	for name, sigs := range table.Functions {
		for _, sig := range sigs {
			if sig.Origin != symbols.Prelude {
				t.Errorf("function %q: expected Origin Prelude, got %v", name, sig.Origin)
			}
		}
	}
	for sym, descs := range table.Operators {
		for _, d := range descs {
			if d.Origin != symbols.Prelude {
				t.Errorf("operator %q: expected Origin Prelude, got %v", sym, d.Origin)
			}
		}
	}
}
