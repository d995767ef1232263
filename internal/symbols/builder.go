package symbols

import (
	"github.com/Pecco-314/pecco-lang/internal/ast"
	"github.com/Pecco-314/pecco-lang/internal/diag"
	"github.com/Pecco-314/pecco-lang/internal/token"
	"github.com/Pecco-314/pecco-lang/internal/types"
)

// Builder walks a Program and populates a Table, in the style of one
// pass of the teacher's Pass/PassManager architecture
// (internal/semantic/pass.go): it reads the AST and writes to shared
// state, collecting diagnostics rather than aborting. Pecco runs the
// builder twice against the same Table — once over the prelude
// Program with Origin Prelude, once over the user Program with Origin
// User — so prelude declarations are visible to, and cannot be
// redefined by, user code (spec.md 4.7).
type Builder struct {
	table  *Table
	path   string
	origin Origin
	diags  diag.List
}

// NewBuilder creates a Builder that will populate table, tagging every
// symbol it defines with origin and attributing diagnostics to path.
func NewBuilder(table *Table, path string, origin Origin) *Builder {
	return &Builder{table: table, path: path, origin: origin}
}

// Diagnostics returns the diagnostics recorded while building.
func (b *Builder) Diagnostics() *diag.List { return &b.diags }

func (b *Builder) errorf(pos token.Position, format string, args ...any) {
	b.diags.Addf(diag.Symbols, b.path, pos, format, args...)
}

// Build walks every top-level statement in prog, registering
// functions, operators, and global `let` bindings into the Builder's
// Table. Any other top-level statement (an expression statement, `if`,
// `while`, or a block) registers nothing here — codegen places it in
// the synthetic entry function — but is searched for nested
// declarations. Function and operator declarations live at global
// scope only (spec.md 4.3). The parser's grammar allows a
// `FuncDecl`/`OperatorDecl` to appear anywhere a Stmt can, including
// nested inside a function or operator body, so buildFunction and
// buildOperator additionally walk their own bodies and reject any
// nested declaration found there (spec.md 4.3, "nested function
// declaration" in spec.md 8).
func (b *Builder) Build(prog *ast.Program) {
	for _, stmt := range prog.Stmts {
		b.buildTopLevel(stmt)
	}
}

func (b *Builder) buildTopLevel(stmt ast.Stmt) {
	switch n := stmt.(type) {
	case *ast.LetStmt:
		b.buildGlobalLet(n)
	case *ast.FuncDecl:
		b.buildFunction(n)
	case *ast.OperatorDecl:
		b.buildOperator(n)
	default:
		b.rejectNestedDecls([]ast.Stmt{stmt})
	}
}

func (b *Builder) buildGlobalLet(n *ast.LetStmt) {
	if _, exists := b.table.Global.Variables[n.Name]; exists {
		b.errorf(n.Pos, "%q is already defined in this scope", n.Name)
		return
	}
	declared := n.DeclaredType
	if !n.HasType {
		declared = types.Unknown
	}
	b.table.Global.Define(&VariableBinding{
		Name:   n.Name,
		Type:   declared,
		Pos:    n.Pos,
		Origin: b.origin,
	})
}

func (b *Builder) paramTypes(params []ast.Param) []types.Name {
	out := make([]types.Name, len(params))
	for i, p := range params {
		out[i] = p.Type
	}
	return out
}

func (b *Builder) buildFunction(n *ast.FuncDecl) {
	if !n.HasReturn {
		b.errorf(n.Pos, "function %q is missing a required return type annotation", n.Name)
	}
	for _, p := range n.Params {
		if p.Type == types.Unknown {
			b.errorf(p.Pos, "parameter %q of function %q is missing a required type annotation", p.Name, n.Name)
		}
	}

	pt := b.paramTypes(n.Params)
	if dup := ExactDuplicate(b.table.Functions[n.Name], pt); dup != nil {
		b.errorf(n.Pos, "function %q redeclared with the same parameter types as the declaration at %s", n.Name, dup.Pos)
		return
	}

	b.table.addFunction(&FunctionSignature{
		Name:       n.Name,
		ParamTypes: pt,
		ReturnType: n.ReturnType,
		Pos:        n.Pos,
		Origin:     b.origin,
		Decl:       n,
	})

	if n.Body != nil {
		b.rejectNestedDecls(n.Body.Stmts)
	}
}

func (b *Builder) buildOperator(n *ast.OperatorDecl) {
	for _, p := range n.Params {
		if p.Type == types.Unknown {
			b.errorf(p.Pos, "parameter %q of operator %q is missing a required type annotation", p.Name, n.Symbol)
		}
	}

	pt := b.paramTypes(n.Params)
	if dup := ExactDuplicateOperator(b.table.LookupOperator(n.Symbol, n.Position), pt); dup != nil {
		b.errorf(n.Pos, "operator %q redeclared with the same parameter types as the declaration at %s", n.Symbol, dup.Pos)
		return
	}

	b.table.addOperator(&OperatorDescriptor{
		Symbol:     n.Symbol,
		Position:   n.Position,
		ParamTypes: pt,
		ReturnType: n.ReturnType,
		Precedence: n.Precedence,
		Assoc:      n.Assoc,
		Pos:        n.Pos,
		Origin:     b.origin,
		Decl:       n,
	})

	if n.Body != nil {
		b.rejectNestedDecls(n.Body.Stmts)
	}
}

// rejectNestedDecls walks stmts (recursing into blocks, if/else
// arms, and while bodies) and raises spec.md 8's "nested function
// declaration" diagnostic for every FuncDecl/OperatorDecl found.
// Pecco has no nested-function support: declarations are legal only
// at program top level (spec.md 4.3).
func (b *Builder) rejectNestedDecls(stmts []ast.Stmt) {
	for _, s := range stmts {
		switch n := s.(type) {
		case *ast.FuncDecl:
			b.errorf(n.Pos, "nested function declaration: %q must be declared at the top level", n.Name)
		case *ast.OperatorDecl:
			b.errorf(n.Pos, "nested function declaration: operator %q must be declared at the top level", n.Symbol)
		case *ast.BlockStmt:
			b.rejectNestedDecls(n.Stmts)
		case *ast.IfStmt:
			if n.Then != nil {
				b.rejectNestedDecls(n.Then.Stmts)
			}
			if n.Else != nil {
				b.rejectNestedDecls([]ast.Stmt{n.Else})
			}
		case *ast.WhileStmt:
			if n.Body != nil {
				b.rejectNestedDecls(n.Body.Stmts)
			}
		}
	}
}
